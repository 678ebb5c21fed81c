package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	approvaldomain "github.com/joemerrillis/sniffr-staging-sub001/internal/approval/domain"
)

type repo struct{}

func Provide() approvaldomain.Repository {
	return &repo{}
}

func (r *repo) ListNegative(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, dogIDs []snowflake.ID, date time.Time) ([]approvaldomain.DogInteraction, error) {
	if len(dogIDs) == 0 {
		return nil, nil
	}

	var rows []approvaldomain.DogInteraction
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND sentiment = ? AND interaction_date = ?", tenantID, approvaldomain.SentimentNegative, date).
		Where("dog_a_id IN ? AND dog_b_id IN ?", dogIDs, dogIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, interaction *approvaldomain.DogInteraction) error {
	return db.WithContext(ctx).Create(interaction).Error
}
