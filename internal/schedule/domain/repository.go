package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	ListByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]RecurringWindow, error)
	// ListDogs returns the dog ids attached to each of the given windows.
	ListDogs(ctx context.Context, db *gorm.DB, windowIDs []snowflake.ID) (map[snowflake.ID][]snowflake.ID, error)
	FindByID(ctx context.Context, db *gorm.DB, clientID, id snowflake.ID) (*RecurringWindow, error)
	Insert(ctx context.Context, db *gorm.DB, window *RecurringWindow, dogIDs []snowflake.ID) error
	Update(ctx context.Context, db *gorm.DB, window *RecurringWindow, dogIDs []snowflake.ID) error
	Delete(ctx context.Context, db *gorm.DB, clientID, id snowflake.ID) error
}
