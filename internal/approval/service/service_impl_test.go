package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	approvaldomain "github.com/joemerrillis/sniffr-staging-sub001/internal/approval/domain"
	approvalrepo "github.com/joemerrillis/sniffr-staging-sub001/internal/approval/repository"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/dates"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/observability/metrics"
)

func newTestService(t *testing.T) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&approvaldomain.DogInteraction{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  approvalrepo.Provide(),
	})
	return svc.(*Service), db, node
}

func TestNeedsApproval_NegativePair(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	tenantID := node.Generate()
	rex := node.Generate()
	luna := node.Generate()
	day, _ := dates.Parse("2025-04-10")

	require.NoError(t, db.Create(&approvaldomain.DogInteraction{
		ID:              node.Generate(),
		TenantID:        tenantID,
		DogAID:          rex,
		DogBID:          luna,
		Sentiment:       approvaldomain.SentimentNegative,
		InteractionDate: day,
	}).Error)

	assert.True(t, svc.NeedsApproval(ctx, tenantID, []snowflake.ID{rex, luna}, day))
}

func TestNeedsApproval_NoNegativeHistory(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	tenantID := node.Generate()
	rex := node.Generate()
	luna := node.Generate()
	day, _ := dates.Parse("2025-04-10")

	require.NoError(t, db.Create(&approvaldomain.DogInteraction{
		ID:              node.Generate(),
		TenantID:        tenantID,
		DogAID:          rex,
		DogBID:          luna,
		Sentiment:       approvaldomain.SentimentPositive,
		InteractionDate: day,
	}).Error)

	assert.False(t, svc.NeedsApproval(ctx, tenantID, []snowflake.ID{rex, luna}, day))
}

func TestNeedsApproval_DifferentDate(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	tenantID := node.Generate()
	rex := node.Generate()
	luna := node.Generate()
	recorded, _ := dates.Parse("2025-04-09")
	requested, _ := dates.Parse("2025-04-10")

	require.NoError(t, db.Create(&approvaldomain.DogInteraction{
		ID:              node.Generate(),
		TenantID:        tenantID,
		DogAID:          rex,
		DogBID:          luna,
		Sentiment:       approvaldomain.SentimentNegative,
		InteractionDate: recorded,
	}).Error)

	assert.False(t, svc.NeedsApproval(ctx, tenantID, []snowflake.ID{rex, luna}, requested))
}

func TestNeedsApproval_SingleDog(t *testing.T) {
	svc, _, node := newTestService(t)
	day, _ := dates.Parse("2025-04-10")
	assert.False(t, svc.NeedsApproval(context.Background(), node.Generate(), []snowflake.ID{node.Generate()}, day))
}

type failingRepo struct{}

func (failingRepo) ListNegative(context.Context, *gorm.DB, snowflake.ID, []snowflake.ID, time.Time) ([]approvaldomain.DogInteraction, error) {
	return nil, errors.New("storage unavailable")
}

func (failingRepo) Insert(context.Context, *gorm.DB, *approvaldomain.DogInteraction) error {
	return errors.New("storage unavailable")
}

func TestNeedsApproval_FailSafeOnStorageError(t *testing.T) {
	svc, _, node := newTestService(t)
	svc.repo = failingRepo{}

	day, _ := dates.Parse("2025-04-10")
	dogs := []snowflake.ID{node.Generate(), node.Generate()}
	assert.True(t, svc.NeedsApproval(context.Background(), node.Generate(), dogs, day))
}

func TestNeedsApproval_CountsHolds(t *testing.T) {
	svc, db, node := newTestService(t)
	m := metrics.New(prometheus.NewRegistry())
	svc.metrics = m
	ctx := context.Background()

	tenantID := node.Generate()
	rex := node.Generate()
	luna := node.Generate()
	day, _ := dates.Parse("2025-04-10")

	require.NoError(t, db.Create(&approvaldomain.DogInteraction{
		ID:              node.Generate(),
		TenantID:        tenantID,
		DogAID:          rex,
		DogBID:          luna,
		Sentiment:       approvaldomain.SentimentNegative,
		InteractionDate: day,
	}).Error)

	require.True(t, svc.NeedsApproval(ctx, tenantID, []snowflake.ID{rex, luna}, day))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ApprovalHolds))

	// A clear pair passes and leaves the counter untouched.
	require.False(t, svc.NeedsApproval(ctx, tenantID, []snowflake.ID{node.Generate(), node.Generate()}, day))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ApprovalHolds))

	// The fail-safe hold counts too.
	svc.repo = failingRepo{}
	require.True(t, svc.NeedsApproval(ctx, tenantID, []snowflake.ID{rex, luna}, day))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ApprovalHolds))
}

func TestRecord_Validation(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := context.Background()
	day, _ := dates.Parse("2025-04-10")

	_, err := svc.Record(ctx, approvaldomain.RecordRequest{
		DogAID: node.Generate(), DogBID: node.Generate(),
		Sentiment: approvaldomain.SentimentNegative, InteractionDate: day,
	})
	assert.ErrorIs(t, err, approvaldomain.ErrInvalidTenant)

	same := node.Generate()
	_, err = svc.Record(ctx, approvaldomain.RecordRequest{
		TenantID: node.Generate(), DogAID: same, DogBID: same,
		Sentiment: approvaldomain.SentimentNegative, InteractionDate: day,
	})
	assert.ErrorIs(t, err, approvaldomain.ErrInvalidDogPair)

	_, err = svc.Record(ctx, approvaldomain.RecordRequest{
		TenantID: node.Generate(), DogAID: node.Generate(), DogBID: node.Generate(),
		Sentiment: "grumpy", InteractionDate: day,
	})
	assert.ErrorIs(t, err, approvaldomain.ErrInvalidSentiment)
}
