package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	bookingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/booking/domain"
	pkgdb "github.com/joemerrillis/sniffr-staging-sub001/pkg/db"
)

type repo struct{}

func Provide() bookingdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, service *bookingdomain.PendingService) error {
	err := db.WithContext(ctx).Create(service).Error
	if pkgdb.IsDuplicateKeyErr(err) {
		return bookingdomain.ErrDuplicateService
	}
	return err
}

func (r *repo) FindByKey(ctx context.Context, db *gorm.DB, clientID snowflake.ID, date time.Time, windowID snowflake.ID) (*bookingdomain.PendingService, error) {
	var row bookingdomain.PendingService
	err := db.WithContext(ctx).
		Where("client_id = ? AND service_date = ? AND window_id = ?", clientID, date, windowID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*bookingdomain.PendingService, error) {
	var row bookingdomain.PendingService
	err := db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]bookingdomain.PendingService, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []bookingdomain.PendingService
	err := db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListByClient(ctx context.Context, db *gorm.DB, clientID snowflake.ID, from, to time.Time) ([]bookingdomain.PendingService, error) {
	var rows []bookingdomain.PendingService
	err := db.WithContext(ctx).
		Where("client_id = ? AND service_date >= ? AND service_date <= ?", clientID, from, to).
		Order("service_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) SetConfirmed(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&bookingdomain.PendingService{}).
		Where("id = ?", id).
		Update("is_confirmed", true).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&bookingdomain.PendingService{}).Error
}
