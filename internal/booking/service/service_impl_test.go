package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	approvaldomain "github.com/joemerrillis/sniffr-staging-sub001/internal/approval/domain"
	approvalrepo "github.com/joemerrillis/sniffr-staging-sub001/internal/approval/repository"
	approvalservice "github.com/joemerrillis/sniffr-staging-sub001/internal/approval/service"
	bookingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/booking/domain"
	bookingrepo "github.com/joemerrillis/sniffr-staging-sub001/internal/booking/repository"
)

type fixture struct {
	svc      bookingdomain.Service
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
		&bookingdomain.PendingService{},
		&approvaldomain.DogInteraction{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	approval := approvalservice.New(approvalservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  approvalrepo.Provide(),
	})
	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     bookingrepo.Provide(),
		Approval: approval,
	})

	return &fixture{
		svc:      svc,
		db:       db,
		node:     node,
		clientID: node.Generate(),
		tenantID: node.Generate(),
	}
}

func (f *fixture) book(t *testing.T, dogs ...snowflake.ID) *bookingdomain.PendingService {
	t.Helper()

	svc, err := f.svc.Book(context.Background(), bookingdomain.BookRequest{
		ClientID:    f.clientID,
		TenantID:    f.tenantID,
		ServiceDate: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		ServiceType: "walk",
		DogIDs:      dogs,
	})
	require.NoError(t, err)
	return svc
}

func TestBook_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Book(ctx, bookingdomain.BookRequest{
		TenantID:    f.tenantID,
		ServiceDate: time.Now(),
		ServiceType: "walk",
	})
	assert.ErrorIs(t, err, bookingdomain.ErrInvalidRequest)

	_, err = f.svc.Book(ctx, bookingdomain.BookRequest{
		ClientID:    f.clientID,
		TenantID:    f.tenantID,
		ServiceDate: time.Now(),
		ServiceType: "  ",
	})
	assert.ErrorIs(t, err, bookingdomain.ErrInvalidRequest)
}

func TestBook_TruncatesServiceDate(t *testing.T) {
	f := newFixture(t)

	svc, err := f.svc.Book(context.Background(), bookingdomain.BookRequest{
		ClientID:    f.clientID,
		TenantID:    f.tenantID,
		ServiceDate: time.Date(2025, 3, 4, 14, 30, 12, 0, time.UTC),
		ServiceType: "walk",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), svc.ServiceDate)
	assert.Nil(t, svc.WindowID)
}

func TestConfirm_SetsFlagAndPersists(t *testing.T) {
	f := newFixture(t)
	booked := f.book(t, f.node.Generate())

	result, err := f.svc.Confirm(context.Background(), f.tenantID, booked.ID)
	require.NoError(t, err)
	assert.True(t, result.Service.IsConfirmed)
	assert.False(t, result.NeedsApproval)

	var stored bookingdomain.PendingService
	require.NoError(t, f.db.First(&stored, "id = ?", booked.ID).Error)
	assert.True(t, stored.IsConfirmed)

	_, err = f.svc.Confirm(context.Background(), f.tenantID, booked.ID)
	assert.ErrorIs(t, err, bookingdomain.ErrAlreadyConfirmed)
}

func TestConfirm_FlagsNegativePair(t *testing.T) {
	f := newFixture(t)
	rex := f.node.Generate()
	luna := f.node.Generate()
	booked := f.book(t, rex, luna)

	interaction := &approvaldomain.DogInteraction{
		ID:              f.node.Generate(),
		TenantID:        f.tenantID,
		DogAID:          rex,
		DogBID:          luna,
		Sentiment:       approvaldomain.SentimentNegative,
		InteractionDate: booked.ServiceDate,
	}
	require.NoError(t, f.db.Create(interaction).Error)

	result, err := f.svc.Confirm(context.Background(), f.tenantID, booked.ID)
	require.NoError(t, err)
	// Advisory flag only; confirmation still goes through.
	assert.True(t, result.NeedsApproval)
	assert.True(t, result.Service.IsConfirmed)
}

func TestConfirm_TenantScoped(t *testing.T) {
	f := newFixture(t)
	booked := f.book(t, f.node.Generate())

	_, err := f.svc.Confirm(context.Background(), f.node.Generate(), booked.ID)
	assert.ErrorIs(t, err, bookingdomain.ErrNotFound)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	booked := f.book(t, f.node.Generate())

	require.NoError(t, f.svc.Cancel(context.Background(), f.tenantID, booked.ID))

	err := f.svc.Cancel(context.Background(), f.tenantID, booked.ID)
	assert.ErrorIs(t, err, bookingdomain.ErrNotFound)
}
