// Package domain defines tenant pricing rules and the evaluation context
// the engine prices against.
package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type AdjustmentKind string

const (
	KindFixed      AdjustmentKind = "fixed"
	KindPercentage AdjustmentKind = "percentage"
)

// RuleType discriminates the match predicate. The set is closed: new
// predicates are added here and in Matches, not configured at runtime.
type RuleType string

const (
	RuleServiceType     RuleType = "service_type"
	RuleDayOfWeek       RuleType = "day_of_week"
	RuleDurationAtLeast RuleType = "duration_at_least"
	RuleDogCountAtLeast RuleType = "dog_count_at_least"
)

// RuleData keys, interpreted per rule type.
const (
	DataServiceType = "service_type"
	DataDays        = "days"
	DataMinMinutes  = "min_minutes"
	DataMinDogs     = "min_dogs"
)

type PricingRule struct {
	ID              snowflake.ID      `json:"id" gorm:"primaryKey"`
	TenantID        snowflake.ID      `json:"tenant_id" gorm:"not null;index"`
	Name            string            `json:"name" gorm:"type:text;not null"`
	Description     string            `json:"description,omitempty" gorm:"type:text"`
	Priority        int               `json:"priority" gorm:"not null;default:0;index"`
	RuleType        RuleType          `json:"rule_type" gorm:"type:text;not null"`
	RuleData        datatypes.JSONMap `json:"rule_data,omitempty" gorm:"type:jsonb"`
	AdjustmentKind  AdjustmentKind    `json:"adjustment_kind" gorm:"type:text;not null"`
	AdjustmentValue float64           `json:"adjustment_value" gorm:"not null"`
	// gorm skips zero-value fields carrying a default tag on insert, so
	// Enabled must not have one: false has to reach the row.
	Enabled bool `json:"enabled" gorm:"not null"`
	CreatedAt       time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PricingRule) TableName() string { return "pricing_rules" }

// Matches reports whether the rule's predicate holds for the context.
// Unknown rule types never match.
func (r *PricingRule) Matches(pc *PriceContext) bool {
	switch r.RuleType {
	case RuleServiceType:
		want, ok := r.dataString(DataServiceType)
		return ok && strings.EqualFold(want, pc.ServiceType)
	case RuleDayOfWeek:
		days, ok := r.dataInts(DataDays)
		if !ok {
			return false
		}
		for _, day := range days {
			if day == pc.DayOfWeek {
				return true
			}
		}
		return false
	case RuleDurationAtLeast:
		min, ok := r.dataInt(DataMinMinutes)
		return ok && pc.DurationMinutes >= min
	case RuleDogCountAtLeast:
		min, ok := r.dataInt(DataMinDogs)
		return ok && len(pc.DogIDs) >= min
	}
	return false
}

func (r *PricingRule) dataString(key string) (string, bool) {
	raw, ok := r.RuleData[key]
	if !ok {
		return "", false
	}
	value, ok := raw.(string)
	return value, ok
}

// dataInt reads a numeric parameter. Values decoded from jsonb arrive as
// json.Number; in-memory maps may carry plain Go numbers.
func (r *PricingRule) dataInt(key string) (int, bool) {
	raw, ok := r.RuleData[key]
	if !ok {
		return 0, false
	}
	return asInt(raw)
}

func (r *PricingRule) dataInts(key string) ([]int, bool) {
	raw, ok := r.RuleData[key]
	if !ok {
		return nil, false
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		value, ok := asInt(item)
		if !ok {
			return nil, false
		}
		out = append(out, value)
	}
	return out, true
}

func asInt(raw interface{}) (int, bool) {
	switch typed := raw.(type) {
	case json.Number:
		parsed, err := typed.Int64()
		if err != nil {
			return 0, false
		}
		return int(parsed), true
	case float64:
		return int(typed), true
	case int:
		return typed, true
	case int64:
		return int(typed), true
	}
	return 0, false
}

// PriceContext is the per-instance fact sheet the engine evaluates rules
// against. Built fresh per instance, never persisted.
type PriceContext struct {
	TenantID        snowflake.ID   `json:"tenant_id"`
	ClientID        snowflake.ID   `json:"client_id"`
	ServiceType     string         `json:"service_type"`
	ServiceDate     time.Time      `json:"service_date"`
	DayOfWeek       int            `json:"day_of_week"`
	StartTime       string         `json:"start_time,omitempty"`
	DurationMinutes int            `json:"duration_minutes"`
	DogIDs          []snowflake.ID `json:"dog_ids,omitempty"`
	BasePriceCents  int64          `json:"base_price_cents"`
}

// AdjustmentLine is one step of the breakdown: the rule applied and the
// running price after it, in cents, before final rounding.
type AdjustmentLine struct {
	RuleID   snowflake.ID   `json:"rule_id,omitempty"`
	RuleName string         `json:"rule_name"`
	Kind     AdjustmentKind `json:"kind"`
	Value    float64        `json:"value"`
	Running  float64        `json:"running_price"`
}

type PriceResult struct {
	TotalCents int64            `json:"total_cents"`
	Currency   string           `json:"currency,omitempty"`
	Breakdown  []AdjustmentLine `json:"breakdown"`
}
