package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	approvaldomain "github.com/joemerrillis/sniffr-staging-sub001/internal/approval/domain"
	bookingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/booking/domain"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/dates"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     bookingdomain.Repository
	Approval approvaldomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     bookingdomain.Repository
	approval approvaldomain.Service
}

func New(p Params) bookingdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("booking.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		approval: p.Approval,
	}
}

func (s *Service) Book(ctx context.Context, req bookingdomain.BookRequest) (*bookingdomain.PendingService, error) {
	if req.ClientID == 0 || req.TenantID == 0 || req.ServiceDate.IsZero() {
		return nil, bookingdomain.ErrInvalidRequest
	}
	serviceType := strings.TrimSpace(req.ServiceType)
	if serviceType == "" {
		return nil, bookingdomain.ErrInvalidRequest
	}

	entity := &bookingdomain.PendingService{
		ID:          s.genID.Generate(),
		ClientID:    req.ClientID,
		TenantID:    req.TenantID,
		ServiceDate: dates.Truncate(req.ServiceDate),
		ServiceType: serviceType,
		DogIDs:      datatypes.JSONSlice[snowflake.ID](req.DogIDs),
		CreatedAt:   time.Now().UTC(),
	}
	if req.Details != nil {
		entity.Details = datatypes.JSONMap(req.Details)
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) Confirm(ctx context.Context, tenantID, id snowflake.ID) (*bookingdomain.ConfirmResult, error) {
	entity, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if entity == nil || entity.TenantID != tenantID {
		return nil, bookingdomain.ErrNotFound
	}
	if entity.IsConfirmed {
		return nil, bookingdomain.ErrAlreadyConfirmed
	}

	needsApproval := s.approval.NeedsApproval(ctx, entity.TenantID, entity.DogIDs, entity.ServiceDate)
	if needsApproval {
		s.log.Info("confirmation flagged for manual review",
			zap.Int64("pending_service_id", id.Int64()),
			zap.Int64("tenant_id", tenantID.Int64()),
		)
	}

	if err := s.repo.SetConfirmed(ctx, s.db, id); err != nil {
		return nil, err
	}
	entity.IsConfirmed = true

	return &bookingdomain.ConfirmResult{
		Service:       entity,
		NeedsApproval: needsApproval,
	}, nil
}

func (s *Service) Cancel(ctx context.Context, tenantID, id snowflake.ID) error {
	entity, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if entity == nil || entity.TenantID != tenantID {
		return bookingdomain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) ListByClient(ctx context.Context, clientID snowflake.ID, from, to time.Time) ([]bookingdomain.PendingService, error) {
	return s.repo.ListByClient(ctx, s.db, clientID, dates.Truncate(from), dates.Truncate(to))
}
