package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// Insert persists a pending service. A violation of the
	// (client_id, service_date, window_id) uniqueness constraint is
	// returned as ErrDuplicateService.
	Insert(ctx context.Context, db *gorm.DB, service *PendingService) error
	FindByKey(ctx context.Context, db *gorm.DB, clientID snowflake.ID, date time.Time, windowID snowflake.ID) (*PendingService, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PendingService, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]PendingService, error)
	ListByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID, from, to time.Time) ([]PendingService, error)
	SetConfirmed(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
