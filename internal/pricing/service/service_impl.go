package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/joemerrillis/sniffr-staging-sub001/internal/config"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/observability/metrics"
	pricingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/pricing/domain"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    pricingdomain.Repository
	Cfg     config.Config    `optional:"true"`
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     pricingdomain.Repository
	metrics  *metrics.Metrics
	currency string
}

func New(p Params) pricingdomain.Service {
	currency := p.Cfg.Currency
	if currency == "" {
		currency = "usd"
	}
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("pricing.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		metrics:  p.Metrics,
		currency: currency,
	}
}

// Preview applies the tenant's enabled rules in (priority, id) order against
// a running price that starts at the caller's base. Each adjustment compounds
// on the running price, not the base, so rule order is load-bearing. The
// floor to zero happens once after every rule has applied, and rounding to
// whole cents happens last.
func (s *Service) Preview(ctx context.Context, pc pricingdomain.PriceContext) (*pricingdomain.PriceResult, error) {
	if pc.TenantID == 0 || strings.TrimSpace(pc.ServiceType) == "" {
		return nil, pricingdomain.ErrInvalidContext
	}

	rules, err := s.repo.ListEnabled(ctx, s.db, pc.TenantID)
	if err != nil {
		return nil, err
	}

	running := float64(pc.BasePriceCents)
	result := &pricingdomain.PriceResult{Currency: s.currency}
	if pc.BasePriceCents != 0 {
		result.Breakdown = append(result.Breakdown, pricingdomain.AdjustmentLine{
			RuleName: "base",
			Kind:     pricingdomain.KindFixed,
			Value:    float64(pc.BasePriceCents),
			Running:  running,
		})
	}

	for i := range rules {
		rule := &rules[i]
		if !rule.Matches(&pc) {
			continue
		}
		switch rule.AdjustmentKind {
		case pricingdomain.KindFixed:
			running += rule.AdjustmentValue
		case pricingdomain.KindPercentage:
			running += running * rule.AdjustmentValue / 100
		default:
			continue
		}
		result.Breakdown = append(result.Breakdown, pricingdomain.AdjustmentLine{
			RuleID:   rule.ID,
			RuleName: rule.Name,
			Kind:     rule.AdjustmentKind,
			Value:    rule.AdjustmentValue,
			Running:  running,
		})
	}

	if running < 0 {
		running = 0
	}
	result.TotalCents = roundHalfUp(running)

	if s.metrics != nil {
		s.metrics.PricePreviews.Inc()
	}
	return result, nil
}

// roundHalfUp rounds to whole cents. The input is already floored at zero,
// so half-up and half-away-from-zero agree here.
func roundHalfUp(cents float64) int64 {
	return int64(math.Floor(cents + 0.5))
}

func (s *Service) CreateRule(ctx context.Context, req pricingdomain.RuleRequest) (*pricingdomain.PricingRule, error) {
	entity, err := s.buildRule(req)
	if err != nil {
		return nil, err
	}
	entity.ID = s.genID.Generate()
	now := time.Now().UTC()
	entity.CreatedAt = now
	entity.UpdatedAt = now

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) ListRules(ctx context.Context, tenantID snowflake.ID) ([]pricingdomain.PricingRule, error) {
	if tenantID == 0 {
		return nil, pricingdomain.ErrInvalidContext
	}
	return s.repo.List(ctx, s.db, tenantID)
}

func (s *Service) UpdateRule(ctx context.Context, id snowflake.ID, req pricingdomain.RuleRequest) (*pricingdomain.PricingRule, error) {
	current, err := s.repo.FindByID(ctx, s.db, req.TenantID, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, pricingdomain.ErrRuleNotFound
	}

	entity, err := s.buildRule(req)
	if err != nil {
		return nil, err
	}
	entity.ID = current.ID
	entity.CreatedAt = current.CreatedAt
	entity.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) DeleteRule(ctx context.Context, tenantID, id snowflake.ID) error {
	current, err := s.repo.FindByID(ctx, s.db, tenantID, id)
	if err != nil {
		return err
	}
	if current == nil {
		return pricingdomain.ErrRuleNotFound
	}
	return s.repo.Delete(ctx, s.db, tenantID, id)
}

func (s *Service) buildRule(req pricingdomain.RuleRequest) (*pricingdomain.PricingRule, error) {
	if req.TenantID == 0 {
		return nil, pricingdomain.ErrInvalidRule
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, pricingdomain.ErrInvalidRule
	}
	switch req.RuleType {
	case pricingdomain.RuleServiceType,
		pricingdomain.RuleDayOfWeek,
		pricingdomain.RuleDurationAtLeast,
		pricingdomain.RuleDogCountAtLeast:
	default:
		return nil, pricingdomain.ErrInvalidRule
	}
	switch req.AdjustmentKind {
	case pricingdomain.KindFixed, pricingdomain.KindPercentage:
	default:
		return nil, pricingdomain.ErrInvalidRule
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	return &pricingdomain.PricingRule{
		TenantID:        req.TenantID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Priority:        req.Priority,
		RuleType:        req.RuleType,
		RuleData:        datatypes.JSONMap(req.RuleData),
		AdjustmentKind:  req.AdjustmentKind,
		AdjustmentValue: req.AdjustmentValue,
		Enabled:         enabled,
	}, nil
}
