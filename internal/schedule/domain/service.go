package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"

	bookingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/booking/domain"
)

type Service interface {
	// Expand materializes pending services for every (window, day) pair
	// active inside the inclusive date range. Re-running over an
	// overlapping range never duplicates instances. Failures of single
	// (window, day) pairs are reported, not fatal.
	Expand(ctx context.Context, req ExpandRequest) (*ExpandResult, error)

	CreateWindow(ctx context.Context, req WindowRequest) (*RecurringWindow, error)
	ListWindows(ctx context.Context, clientID snowflake.ID) ([]RecurringWindow, error)
	UpdateWindow(ctx context.Context, id snowflake.ID, req WindowRequest) (*RecurringWindow, error)
	DeleteWindow(ctx context.Context, clientID, id snowflake.ID) error
}

type ExpandRequest struct {
	ClientID snowflake.ID `json:"client_id"`
	TenantID snowflake.ID `json:"tenant_id"`
	Start    time.Time    `json:"start"`
	End      time.Time    `json:"end"`
	// IncludeCreated returns the materialized services in the result.
	IncludeCreated bool `json:"include_created"`
}

// ExpansionFailure names one (window, day) pair that could not be expanded.
type ExpansionFailure struct {
	WindowID snowflake.ID `json:"window_id"`
	Date     time.Time    `json:"date"`
	Reason   string       `json:"reason"`
}

type ExpandResult struct {
	CreatedCount int                            `json:"created_count"`
	Created      []bookingdomain.PendingService `json:"created,omitempty"`
	Failures     []ExpansionFailure             `json:"failures,omitempty"`
}

type WindowRequest struct {
	ClientID        snowflake.ID   `json:"client_id"`
	TenantID        snowflake.ID   `json:"tenant_id"`
	ServiceType     string         `json:"service_type"`
	DayOfWeek       int            `json:"day_of_week"`
	StartTime       string         `json:"start_time"`
	EndTime         string         `json:"end_time"`
	EffectiveStart  time.Time      `json:"effective_start"`
	EffectiveEnd    *time.Time     `json:"effective_end"`
	DurationMinutes int            `json:"duration_minutes"`
	DogIDs          []snowflake.ID `json:"dog_ids"`
}

var (
	ErrInvalidClient    = errors.New("invalid_client")
	ErrInvalidTenant    = errors.New("invalid_tenant")
	ErrInvalidDateRange = errors.New("invalid_date_range")
	ErrInvalidDayOfWeek = errors.New("invalid_day_of_week")
	ErrInvalidTimeRange = errors.New("invalid_time_range")
	ErrInvalidEffective = errors.New("invalid_effective_span")
	ErrWindowNotFound   = errors.New("window_not_found")
)
