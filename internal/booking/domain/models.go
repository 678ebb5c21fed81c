// Package domain contains the pending service model: one concrete dated
// occurrence awaiting confirmation.
package domain

import (
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Detail payload keys snapshotted from the source window at expansion time.
const (
	DetailDurationMinutes = "duration_minutes"
	DetailStartTime       = "start_time"
	DetailEndTime         = "end_time"
	DetailBaseRateCents   = "base_rate_cents"
)

// PendingService is one dated occurrence materialized from a recurring
// window, or booked directly for one-off services. At most one row may exist
// per (client_id, service_date, window_id); the unique index backs that, not
// the in-process read.
type PendingService struct {
	ID          snowflake.ID                      `json:"id" gorm:"primaryKey"`
	ClientID    snowflake.ID                      `json:"client_id" gorm:"not null;index;uniqueIndex:ux_pending_services_key"`
	TenantID    snowflake.ID                      `json:"tenant_id" gorm:"not null;index"`
	ServiceDate time.Time                         `json:"service_date" gorm:"not null;uniqueIndex:ux_pending_services_key"`
	ServiceType string                            `json:"service_type" gorm:"type:text;not null"`
	WindowID    *snowflake.ID                     `json:"window_id,omitempty" gorm:"uniqueIndex:ux_pending_services_key"`
	DogIDs      datatypes.JSONSlice[snowflake.ID] `json:"dog_ids" gorm:"type:jsonb"`
	Details     datatypes.JSONMap                 `json:"details,omitempty" gorm:"type:jsonb"`
	IsConfirmed bool                              `json:"is_confirmed" gorm:"not null;default:false"`
	CreatedAt   time.Time                         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PendingService) TableName() string { return "pending_services" }

// DetailInt reads an integer detail field, reporting whether it was present.
// Values decoded from jsonb arrive as json.Number; in-memory maps may carry
// plain Go numbers.
func (p *PendingService) DetailInt(key string) (int64, bool) {
	raw, ok := p.Details[key]
	if !ok {
		return 0, false
	}
	switch typed := raw.(type) {
	case json.Number:
		parsed, err := typed.Int64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	case float64:
		return int64(typed), true
	case int64:
		return typed, true
	case int:
		return int64(typed), true
	}
	return 0, false
}

// DetailString reads a string detail field.
func (p *PendingService) DetailString(key string) (string, bool) {
	raw, ok := p.Details[key]
	if !ok {
		return "", false
	}
	value, ok := raw.(string)
	return value, ok
}
