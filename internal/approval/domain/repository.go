package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// ListNegative returns negative interactions recorded for the given
	// date where both dogs belong to dogIDs.
	ListNegative(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, dogIDs []snowflake.ID, date time.Time) ([]DogInteraction, error)
	Insert(ctx context.Context, db *gorm.DB, interaction *DogInteraction) error
}
