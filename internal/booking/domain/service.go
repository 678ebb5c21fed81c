package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Book creates a pending service directly, outside any recurring window.
	Book(ctx context.Context, req BookRequest) (*PendingService, error)
	// Confirm marks a pending service confirmed and reports whether the
	// approval gate flagged the dog grouping for manual review. The flag is
	// advisory; confirmation proceeds either way.
	Confirm(ctx context.Context, tenantID, id snowflake.ID) (*ConfirmResult, error)
	Cancel(ctx context.Context, tenantID, id snowflake.ID) error
	ListByClient(ctx context.Context, clientID snowflake.ID, from, to time.Time) ([]PendingService, error)
}

type BookRequest struct {
	ClientID    snowflake.ID   `json:"client_id"`
	TenantID    snowflake.ID   `json:"tenant_id"`
	ServiceDate time.Time      `json:"service_date"`
	ServiceType string         `json:"service_type"`
	DogIDs      []snowflake.ID `json:"dog_ids"`
	Details     map[string]any `json:"details"`
}

type ConfirmResult struct {
	Service       *PendingService `json:"service"`
	NeedsApproval bool            `json:"needs_approval"`
}

var (
	ErrDuplicateService = errors.New("duplicate_pending_service")
	ErrNotFound         = errors.New("pending_service_not_found")
	ErrInvalidRequest   = errors.New("invalid_booking_request")
	ErrAlreadyConfirmed = errors.New("already_confirmed")
)
