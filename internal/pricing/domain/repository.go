package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// ListEnabled returns a tenant's enabled rules ordered by priority
	// ascending, ties broken by id ascending.
	ListEnabled(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]PricingRule, error)
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) ([]PricingRule, error)
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*PricingRule, error)
	Insert(ctx context.Context, db *gorm.DB, rule *PricingRule) error
	Update(ctx context.Context, db *gorm.DB, rule *PricingRule) error
	Delete(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) error
}
