// Package domain contains the recorded dog-interaction history backing the
// approval gate.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Sentiment string

var (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// DogInteraction records the observed outcome of two dogs sharing a service.
type DogInteraction struct {
	ID              snowflake.ID `json:"id" gorm:"primaryKey"`
	TenantID        snowflake.ID `json:"tenant_id" gorm:"not null;index"`
	DogAID          snowflake.ID `json:"dog_a_id" gorm:"not null;index"`
	DogBID          snowflake.ID `json:"dog_b_id" gorm:"not null;index"`
	Sentiment       Sentiment    `json:"sentiment" gorm:"type:text;not null"`
	InteractionDate time.Time    `json:"interaction_date" gorm:"not null;index"`
	Notes           string       `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt       time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (DogInteraction) TableName() string { return "dog_interactions" }
