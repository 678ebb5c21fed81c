package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

// jsonb columns decode numbers as json.Number, not the Go numerics the
// in-memory maps carry. Matching must accept both.
func TestMatches_NumbersDecodedFromStorage(t *testing.T) {
	pc := &PriceContext{
		TenantID:        snowflake.ID(1),
		ServiceType:     "walk",
		DayOfWeek:       2,
		DurationMinutes: 45,
		DogIDs:          []snowflake.ID{1, 2},
	}

	dayRule := &PricingRule{
		RuleType: RuleDayOfWeek,
		RuleData: datatypes.JSONMap{DataDays: []interface{}{json.Number("2"), json.Number("4")}},
	}
	assert.True(t, dayRule.Matches(pc))

	durationRule := &PricingRule{
		RuleType: RuleDurationAtLeast,
		RuleData: datatypes.JSONMap{DataMinMinutes: json.Number("45")},
	}
	assert.True(t, durationRule.Matches(pc))

	dogCountRule := &PricingRule{
		RuleType: RuleDogCountAtLeast,
		RuleData: datatypes.JSONMap{DataMinDogs: json.Number("2")},
	}
	assert.True(t, dogCountRule.Matches(pc))

	badNumber := &PricingRule{
		RuleType: RuleDurationAtLeast,
		RuleData: datatypes.JSONMap{DataMinMinutes: json.Number("not-a-number")},
	}
	assert.False(t, badNumber.Matches(pc))
}

func TestMatches_InMemoryNumbers(t *testing.T) {
	pc := &PriceContext{
		TenantID:        snowflake.ID(1),
		ServiceType:     "walk",
		DayOfWeek:       2,
		DurationMinutes: 45,
	}

	fromFloats := &PricingRule{
		RuleType: RuleDayOfWeek,
		RuleData: datatypes.JSONMap{DataDays: []interface{}{float64(2)}},
	}
	assert.True(t, fromFloats.Matches(pc))

	fromInts := &PricingRule{
		RuleType: RuleDurationAtLeast,
		RuleData: datatypes.JSONMap{DataMinMinutes: 45},
	}
	assert.True(t, fromInts.Matches(pc))
}

func TestSetDate_NormalizesToUTC(t *testing.T) {
	// The same instant as 2025-03-04T00:00Z (a Tuesday), represented in a
	// western zone where the local weekday is still Monday.
	tuesday := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	western := tuesday.In(time.FixedZone("UTC-5", -5*60*60))

	var pc PriceContext
	pc.SetDate(western)
	assert.Equal(t, 2, pc.DayOfWeek)
}
