package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Service is the approval gate. It is advisory: callers decide what to do
// with a flagged service.
type Service interface {
	// NeedsApproval reports whether grouping the given dogs on the given
	// date must be held for manual review. Lookup failures report true.
	NeedsApproval(ctx context.Context, tenantID snowflake.ID, dogIDs []snowflake.ID, date time.Time) bool
	Record(ctx context.Context, req RecordRequest) (*DogInteraction, error)
}

type RecordRequest struct {
	TenantID        snowflake.ID `json:"tenant_id"`
	DogAID          snowflake.ID `json:"dog_a_id"`
	DogBID          snowflake.ID `json:"dog_b_id"`
	Sentiment       Sentiment    `json:"sentiment"`
	InteractionDate time.Time    `json:"interaction_date"`
	Notes           string       `json:"notes"`
}

var (
	ErrInvalidTenant    = errors.New("invalid_tenant")
	ErrInvalidDogPair   = errors.New("invalid_dog_pair")
	ErrInvalidSentiment = errors.New("invalid_sentiment")
)
