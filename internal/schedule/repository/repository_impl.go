package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	scheduledomain "github.com/joemerrillis/sniffr-staging-sub001/internal/schedule/domain"
)

type repo struct{}

func Provide() scheduledomain.Repository {
	return &repo{}
}

func (r *repo) ListByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]scheduledomain.RecurringWindow, error) {
	var rows []scheduledomain.RecurringWindow
	err := db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("day_of_week ASC, start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListDogs(ctx context.Context, db *gorm.DB, windowIDs []snowflake.ID) (map[snowflake.ID][]snowflake.ID, error) {
	out := make(map[snowflake.ID][]snowflake.ID, len(windowIDs))
	if len(windowIDs) == 0 {
		return out, nil
	}

	var rows []scheduledomain.WindowDog
	err := db.WithContext(ctx).
		Where("window_id IN ?", windowIDs).
		Order("window_id ASC, dog_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.WindowID] = append(out[row.WindowID], row.DogID)
	}
	return out, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, clientID, id snowflake.ID) (*scheduledomain.RecurringWindow, error) {
	var row scheduledomain.RecurringWindow
	err := db.WithContext(ctx).
		Where("client_id = ? AND id = ?", clientID, id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, window *scheduledomain.RecurringWindow, dogIDs []snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(window).Error; err != nil {
			return err
		}
		return replaceDogs(tx, window.ID, dogIDs)
	})
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, window *scheduledomain.RecurringWindow, dogIDs []snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(window).Error; err != nil {
			return err
		}
		if err := tx.Where("window_id = ?", window.ID).Delete(&scheduledomain.WindowDog{}).Error; err != nil {
			return err
		}
		return replaceDogs(tx, window.ID, dogIDs)
	})
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, clientID, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("window_id = ?", id).Delete(&scheduledomain.WindowDog{}).Error; err != nil {
			return err
		}
		return tx.Where("client_id = ? AND id = ?", clientID, id).
			Delete(&scheduledomain.RecurringWindow{}).Error
	})
}

func replaceDogs(tx *gorm.DB, windowID snowflake.ID, dogIDs []snowflake.ID) error {
	if len(dogIDs) == 0 {
		return nil
	}
	rows := make([]scheduledomain.WindowDog, 0, len(dogIDs))
	for _, dogID := range dogIDs {
		rows = append(rows, scheduledomain.WindowDog{WindowID: windowID, DogID: dogID})
	}
	return tx.Create(&rows).Error
}
