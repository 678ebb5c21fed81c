package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Preview evaluates the tenant's enabled rules against the context and
	// returns the final price with an itemized breakdown. Read-only.
	Preview(ctx context.Context, pc PriceContext) (*PriceResult, error)

	CreateRule(ctx context.Context, req RuleRequest) (*PricingRule, error)
	ListRules(ctx context.Context, tenantID snowflake.ID) ([]PricingRule, error)
	UpdateRule(ctx context.Context, id snowflake.ID, req RuleRequest) (*PricingRule, error)
	DeleteRule(ctx context.Context, tenantID, id snowflake.ID) error
}

type RuleRequest struct {
	TenantID        snowflake.ID           `json:"tenant_id"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	Priority        int                    `json:"priority"`
	RuleType        RuleType               `json:"rule_type"`
	RuleData        map[string]interface{} `json:"rule_data"`
	AdjustmentKind  AdjustmentKind         `json:"adjustment_kind"`
	AdjustmentValue float64                `json:"adjustment_value"`
	Enabled         *bool                  `json:"enabled"`
}

// SetDate fills the date-derived context fields together so day-of-week
// can never drift from the service date.
func (pc *PriceContext) SetDate(date time.Time) {
	pc.ServiceDate = date
	pc.DayOfWeek = int(date.UTC().Weekday())
}

var (
	ErrInvalidContext = errors.New("invalid_price_context")
	ErrInvalidRule    = errors.New("invalid_pricing_rule")
	ErrRuleNotFound   = errors.New("pricing_rule_not_found")
)
