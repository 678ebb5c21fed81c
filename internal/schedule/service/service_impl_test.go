package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	bookingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/booking/domain"
	bookingrepo "github.com/joemerrillis/sniffr-staging-sub001/internal/booking/repository"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/dates"
	scheduledomain "github.com/joemerrillis/sniffr-staging-sub001/internal/schedule/domain"
	schedulerepo "github.com/joemerrillis/sniffr-staging-sub001/internal/schedule/repository"
)

type fixture struct {
	svc      *Service
	db       *gorm.DB
	node     *snowflake.Node
	clientID snowflake.ID
	tenantID snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&scheduledomain.RecurringWindow{},
		&scheduledomain.WindowDog{},
		&bookingdomain.PendingService{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     schedulerepo.Provide(),
		Bookings: bookingrepo.Provide(),
	})

	return &fixture{
		svc:      svc.(*Service),
		db:       db,
		node:     node,
		clientID: node.Generate(),
		tenantID: node.Generate(),
	}
}

func (f *fixture) addWindow(t *testing.T, dayOfWeek int, effectiveStart string, effectiveEnd *string, dogs ...snowflake.ID) *scheduledomain.RecurringWindow {
	t.Helper()

	start, err := dates.Parse(effectiveStart)
	require.NoError(t, err)
	var end *time.Time
	if effectiveEnd != nil {
		parsed, err := dates.Parse(*effectiveEnd)
		require.NoError(t, err)
		end = &parsed
	}

	window := &scheduledomain.RecurringWindow{
		ID:              f.node.Generate(),
		ClientID:        f.clientID,
		TenantID:        f.tenantID,
		ServiceType:     "walk",
		DayOfWeek:       dayOfWeek,
		StartTime:       "09:00",
		EndTime:         "11:00",
		EffectiveStart:  start,
		EffectiveEnd:    end,
		DurationMinutes: 45,
	}
	require.NoError(t, f.db.Create(window).Error)
	for _, dogID := range dogs {
		require.NoError(t, f.db.Create(&scheduledomain.WindowDog{WindowID: window.ID, DogID: dogID}).Error)
	}
	return window
}

func (f *fixture) expand(t *testing.T, start, end string) *scheduledomain.ExpandResult {
	t.Helper()

	from, err := dates.Parse(start)
	require.NoError(t, err)
	to, err := dates.Parse(end)
	require.NoError(t, err)

	result, err := f.svc.Expand(context.Background(), scheduledomain.ExpandRequest{
		ClientID:       f.clientID,
		TenantID:       f.tenantID,
		Start:          from,
		End:            to,
		IncludeCreated: true,
	})
	require.NoError(t, err)
	return result
}

func TestExpand_TuesdayWindowOverMonth(t *testing.T) {
	f := newFixture(t)
	// Tuesdays in March 2025: the 4th, 11th, 18th, 25th.
	f.addWindow(t, 2, "2025-03-01", nil)

	result := f.expand(t, "2025-03-01", "2025-03-31")
	require.Equal(t, 4, result.CreatedCount)
	require.Empty(t, result.Failures)

	for _, created := range result.Created {
		assert.Equal(t, 2, dates.Weekday(created.ServiceDate))
	}
}

func TestExpand_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.addWindow(t, 2, "2025-03-01", nil)

	first := f.expand(t, "2025-03-01", "2025-03-31")
	require.Equal(t, 4, first.CreatedCount)

	second := f.expand(t, "2025-03-01", "2025-03-31")
	assert.Equal(t, 0, second.CreatedCount)
	assert.Empty(t, second.Failures)

	var count int64
	require.NoError(t, f.db.Model(&bookingdomain.PendingService{}).Count(&count).Error)
	assert.EqualValues(t, 4, count)
}

func TestExpand_OverlappingRanges(t *testing.T) {
	f := newFixture(t)
	f.addWindow(t, 2, "2025-03-01", nil)

	first := f.expand(t, "2025-03-01", "2025-03-15")
	require.Equal(t, 2, first.CreatedCount)

	// Second range holds Tuesdays the 11th, 18th and 25th; the 11th already
	// exists from the first run, so only two new instances materialize.
	second := f.expand(t, "2025-03-08", "2025-03-31")
	assert.Equal(t, 2, second.CreatedCount)

	var count int64
	require.NoError(t, f.db.Model(&bookingdomain.PendingService{}).Count(&count).Error)
	assert.EqualValues(t, 4, count)
}

func TestExpand_EffectiveEndBoundary(t *testing.T) {
	f := newFixture(t)
	// 2025-03-11 is a Tuesday; the window expires exactly on it.
	end := "2025-03-11"
	f.addWindow(t, 2, "2025-03-01", &end)

	result := f.expand(t, "2025-03-01", "2025-03-31")
	require.Equal(t, 2, result.CreatedCount)

	got := make([]string, 0, len(result.Created))
	for _, created := range result.Created {
		got = append(got, dates.Format(created.ServiceDate))
	}
	assert.ElementsMatch(t, []string{"2025-03-04", "2025-03-11"}, got)
}

func TestExpand_EffectiveStartBoundary(t *testing.T) {
	f := newFixture(t)
	// Effective start falls mid-range on a Tuesday.
	f.addWindow(t, 2, "2025-03-18", nil)

	result := f.expand(t, "2025-03-01", "2025-03-31")
	require.Equal(t, 2, result.CreatedCount)

	got := make([]string, 0, len(result.Created))
	for _, created := range result.Created {
		got = append(got, dates.Format(created.ServiceDate))
	}
	assert.ElementsMatch(t, []string{"2025-03-18", "2025-03-25"}, got)
}

func TestExpand_SnapshotsDogsAndDetails(t *testing.T) {
	f := newFixture(t)
	rex := f.node.Generate()
	luna := f.node.Generate()
	window := f.addWindow(t, 2, "2025-03-01", nil, rex, luna)

	result := f.expand(t, "2025-03-03", "2025-03-05")
	require.Equal(t, 1, result.CreatedCount)

	created := result.Created[0]
	require.NotNil(t, created.WindowID)
	assert.Equal(t, window.ID, *created.WindowID)
	assert.ElementsMatch(t, []snowflake.ID{rex, luna}, []snowflake.ID(created.DogIDs))

	duration, ok := created.DetailInt(bookingdomain.DetailDurationMinutes)
	require.True(t, ok)
	assert.EqualValues(t, 45, duration)

	startTime, ok := created.DetailString(bookingdomain.DetailStartTime)
	require.True(t, ok)
	assert.Equal(t, "09:00", startTime)
}

func TestExpand_OtherTenantWindowsSkipped(t *testing.T) {
	f := newFixture(t)
	window := f.addWindow(t, 2, "2025-03-01", nil)
	window.TenantID = f.node.Generate()
	require.NoError(t, f.db.Save(window).Error)

	result := f.expand(t, "2025-03-01", "2025-03-31")
	assert.Equal(t, 0, result.CreatedCount)
}

func TestExpand_InvalidRange(t *testing.T) {
	f := newFixture(t)
	start, _ := dates.Parse("2025-03-31")
	end, _ := dates.Parse("2025-03-01")

	_, err := f.svc.Expand(context.Background(), scheduledomain.ExpandRequest{
		ClientID: f.clientID,
		TenantID: f.tenantID,
		Start:    start,
		End:      end,
	})
	assert.ErrorIs(t, err, scheduledomain.ErrInvalidDateRange)
}

// flakyWindowRepo fails dog lookups for one window and delegates the rest.
type flakyWindowRepo struct {
	scheduledomain.Repository
	failFor snowflake.ID
}

func (r *flakyWindowRepo) ListDogs(ctx context.Context, db *gorm.DB, windowIDs []snowflake.ID) (map[snowflake.ID][]snowflake.ID, error) {
	for _, id := range windowIDs {
		if id == r.failFor {
			return nil, errors.New("storage unavailable")
		}
	}
	return r.Repository.ListDogs(ctx, db, windowIDs)
}

func TestExpand_PartialFailureDoesNotAbortRange(t *testing.T) {
	f := newFixture(t)
	broken := f.addWindow(t, 2, "2025-03-01", nil)
	f.addWindow(t, 4, "2025-03-01", nil) // Thursdays: 6th, 13th, 20th, 27th.

	f.svc.repo = &flakyWindowRepo{Repository: schedulerepo.Provide(), failFor: broken.ID}

	result := f.expand(t, "2025-03-01", "2025-03-31")
	assert.Equal(t, 4, result.CreatedCount)
	require.Len(t, result.Failures, 4)
	for _, failure := range result.Failures {
		assert.Equal(t, broken.ID, failure.WindowID)
		assert.Contains(t, failure.Reason, "dog lookup")
	}
}

func TestCreateWindow_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	effective, _ := dates.Parse("2025-03-01")

	base := scheduledomain.WindowRequest{
		ClientID:       f.clientID,
		TenantID:       f.tenantID,
		DayOfWeek:      2,
		StartTime:      "09:00",
		EndTime:        "11:00",
		EffectiveStart: effective,
	}

	window, err := f.svc.CreateWindow(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, "walk", window.ServiceType)
	assert.Equal(t, 30, window.DurationMinutes)

	bad := base
	bad.DayOfWeek = 7
	_, err = f.svc.CreateWindow(ctx, bad)
	assert.ErrorIs(t, err, scheduledomain.ErrInvalidDayOfWeek)

	bad = base
	bad.EndTime = "08:00"
	_, err = f.svc.CreateWindow(ctx, bad)
	assert.ErrorIs(t, err, scheduledomain.ErrInvalidTimeRange)

	bad = base
	before := effective.AddDate(0, 0, -1)
	bad.EffectiveEnd = &before
	_, err = f.svc.CreateWindow(ctx, bad)
	assert.ErrorIs(t, err, scheduledomain.ErrInvalidEffective)
}
