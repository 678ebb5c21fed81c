package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	approvaldomain "github.com/joemerrillis/sniffr-staging-sub001/internal/approval/domain"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/dates"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/observability/metrics"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    approvaldomain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    approvaldomain.Repository
	metrics *metrics.Metrics
}

func New(p Params) approvaldomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("approval.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

// NeedsApproval checks recorded pairwise sentiment among the dog set for the
// given date. A lookup failure reports true: a false positive costs a manual
// review, a false negative puts dogs at risk.
func (s *Service) NeedsApproval(ctx context.Context, tenantID snowflake.ID, dogIDs []snowflake.ID, date time.Time) bool {
	if len(dogIDs) < 2 {
		return false
	}

	rows, err := s.repo.ListNegative(ctx, s.db, tenantID, dogIDs, dates.Truncate(date))
	if err != nil {
		s.log.Warn("interaction lookup failed, holding for approval",
			zap.Int64("tenant_id", tenantID.Int64()),
			zap.Error(err),
		)
		s.countHold()
		return true
	}
	if len(rows) > 0 {
		s.countHold()
		return true
	}
	return false
}

func (s *Service) countHold() {
	if s.metrics != nil {
		s.metrics.ApprovalHolds.Inc()
	}
}

func (s *Service) Record(ctx context.Context, req approvaldomain.RecordRequest) (*approvaldomain.DogInteraction, error) {
	if req.TenantID == 0 {
		return nil, approvaldomain.ErrInvalidTenant
	}
	if req.DogAID == 0 || req.DogBID == 0 || req.DogAID == req.DogBID {
		return nil, approvaldomain.ErrInvalidDogPair
	}
	sentiment, err := parseSentiment(req.Sentiment)
	if err != nil {
		return nil, err
	}

	entity := &approvaldomain.DogInteraction{
		ID:              s.genID.Generate(),
		TenantID:        req.TenantID,
		DogAID:          req.DogAID,
		DogBID:          req.DogBID,
		Sentiment:       sentiment,
		InteractionDate: dates.Truncate(req.InteractionDate),
		Notes:           req.Notes,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func parseSentiment(value approvaldomain.Sentiment) (approvaldomain.Sentiment, error) {
	switch approvaldomain.Sentiment(strings.ToLower(strings.TrimSpace(string(value)))) {
	case approvaldomain.SentimentPositive:
		return approvaldomain.SentimentPositive, nil
	case approvaldomain.SentimentNeutral:
		return approvaldomain.SentimentNeutral, nil
	case approvaldomain.SentimentNegative:
		return approvaldomain.SentimentNegative, nil
	default:
		return "", approvaldomain.ErrInvalidSentiment
	}
}
