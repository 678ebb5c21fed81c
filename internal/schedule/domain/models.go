// Package domain contains the recurring window model: a client's standing
// availability rule (day-of-week, time range, effective date span).
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// RecurringWindow is owned by a client and scoped to a tenant. Windows are
// never mutated by expansion; materialized services snapshot their fields.
type RecurringWindow struct {
	ID              snowflake.ID `json:"id" gorm:"primaryKey"`
	ClientID        snowflake.ID `json:"client_id" gorm:"not null;index"`
	TenantID        snowflake.ID `json:"tenant_id" gorm:"not null;index"`
	ServiceType     string       `json:"service_type" gorm:"type:text;not null;default:'walk'"`
	DayOfWeek       int          `json:"day_of_week" gorm:"not null"`
	StartTime       string       `json:"start_time" gorm:"type:text;not null"`
	EndTime         string       `json:"end_time" gorm:"type:text;not null"`
	EffectiveStart  time.Time    `json:"effective_start" gorm:"not null"`
	EffectiveEnd    *time.Time   `json:"effective_end,omitempty"`
	DurationMinutes int          `json:"duration_minutes" gorm:"not null;default:30"`
	CreatedAt       time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (RecurringWindow) TableName() string { return "recurring_windows" }

// WindowDog attaches a dog to a recurring window.
type WindowDog struct {
	WindowID snowflake.ID `json:"window_id" gorm:"primaryKey;autoIncrement:false"`
	DogID    snowflake.ID `json:"dog_id" gorm:"primaryKey;autoIncrement:false"`
}

func (WindowDog) TableName() string { return "window_dogs" }

// ActiveOn reports whether the window recurs on the given date: the
// day-of-week matches and the date falls inside the effective span.
func (w *RecurringWindow) ActiveOn(day time.Time) bool {
	if int(day.UTC().Weekday()) != w.DayOfWeek {
		return false
	}
	if day.Before(w.EffectiveStart) {
		return false
	}
	if w.EffectiveEnd != nil && day.After(*w.EffectiveEnd) {
		return false
	}
	return true
}
