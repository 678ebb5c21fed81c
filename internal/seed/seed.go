// Package seed loads a small demo dataset for local development.
package seed

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	approvaldomain "github.com/joemerrillis/sniffr-staging-sub001/internal/approval/domain"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/config"
	pricingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/pricing/domain"
	scheduledomain "github.com/joemerrillis/sniffr-staging-sub001/internal/schedule/domain"
)

var Module = fx.Module("seed",
	fx.Invoke(Run),
)

// Run inserts the demo data once. It is gated behind SEED_DEMO and skipped
// whenever any windows already exist.
func Run(db *gorm.DB, cfg config.Config, log *zap.Logger, node *snowflake.Node) error {
	if !cfg.SeedDemo {
		return nil
	}
	log = log.Named("seed")

	var count int64
	if err := db.Model(&scheduledomain.RecurringWindow{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("demo data already present, skipping")
		return nil
	}

	tenantID := node.Generate()
	clientID := node.Generate()
	rex := node.Generate()
	luna := node.Generate()
	now := time.Now().UTC()
	effective := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	window := &scheduledomain.RecurringWindow{
		ID:              node.Generate(),
		ClientID:        clientID,
		TenantID:        tenantID,
		ServiceType:     "walk",
		DayOfWeek:       2,
		StartTime:       "09:00",
		EndTime:         "11:00",
		EffectiveStart:  effective,
		DurationMinutes: 45,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	rules := []pricingdomain.PricingRule{
		{
			ID:              node.Generate(),
			TenantID:        tenantID,
			Name:            "walk base rate",
			Priority:        1,
			RuleType:        pricingdomain.RuleServiceType,
			RuleData:        datatypes.JSONMap{pricingdomain.DataServiceType: "walk"},
			AdjustmentKind:  pricingdomain.KindFixed,
			AdjustmentValue: 2500,
			Enabled:         true,
		},
		{
			ID:              node.Generate(),
			TenantID:        tenantID,
			Name:            "weekend surcharge",
			Priority:        10,
			RuleType:        pricingdomain.RuleDayOfWeek,
			RuleData:        datatypes.JSONMap{pricingdomain.DataDays: []interface{}{0, 6}},
			AdjustmentKind:  pricingdomain.KindPercentage,
			AdjustmentValue: 15,
			Enabled:         true,
		},
		{
			ID:              node.Generate(),
			TenantID:        tenantID,
			Name:            "second dog discount",
			Priority:        20,
			RuleType:        pricingdomain.RuleDogCountAtLeast,
			RuleData:        datatypes.JSONMap{pricingdomain.DataMinDogs: 2},
			AdjustmentKind:  pricingdomain.KindPercentage,
			AdjustmentValue: -10,
			Enabled:         true,
		},
	}

	interaction := &approvaldomain.DogInteraction{
		ID:              node.Generate(),
		TenantID:        tenantID,
		DogAID:          rex,
		DogBID:          luna,
		Sentiment:       approvaldomain.SentimentPositive,
		InteractionDate: effective,
		Notes:           "met at the park, got along fine",
		CreatedAt:       now,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(window).Error; err != nil {
			return err
		}
		dogs := []scheduledomain.WindowDog{
			{WindowID: window.ID, DogID: rex},
			{WindowID: window.ID, DogID: luna},
		}
		if err := tx.Create(&dogs).Error; err != nil {
			return err
		}
		if err := tx.Create(&rules).Error; err != nil {
			return err
		}
		if err := tx.Create(interaction).Error; err != nil {
			return err
		}
		log.Info("demo data loaded",
			zap.Int64("tenant_id", tenantID.Int64()),
			zap.Int64("client_id", clientID.Int64()),
		)
		return nil
	})
}
