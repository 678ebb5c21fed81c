// Package domain defines the cart view: selected pending services priced
// and grouped for checkout, all or nothing.
package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"

	bookingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/booking/domain"
	pricingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/pricing/domain"
)

type Service interface {
	// Enrich prices every selected pending service and groups the results
	// by (tenant, service type). If any single service fails to price the
	// whole call fails; carts are never partially priced.
	Enrich(ctx context.Context, req EnrichRequest) (*CartResult, error)
}

type EnrichRequest struct {
	ClientID   snowflake.ID   `json:"client_id"`
	ServiceIDs []snowflake.ID `json:"service_ids"`
}

// EnrichedService is a derived view. The stored pending service is never
// mutated by pricing.
type EnrichedService struct {
	bookingdomain.PendingService
	Price *pricingdomain.PriceResult `json:"price"`
}

type CartGroup struct {
	TenantID    snowflake.ID      `json:"tenant_id"`
	ServiceType string            `json:"service_type"`
	TotalCents  int64             `json:"total_cents"`
	Items       []EnrichedService `json:"items"`
}

type CartResult struct {
	Items           []EnrichedService `json:"items"`
	Groups          []CartGroup       `json:"groups"`
	GrandTotalCents int64             `json:"grand_total_cents"`
}

var (
	ErrEmptyCart       = errors.New("empty_cart")
	ErrInvalidClient   = errors.New("invalid_client")
	ErrServiceNotFound = errors.New("pending_service_not_found")
)

// PricingFailedError rejects the whole cart and names the service that
// could not be priced.
type PricingFailedError struct {
	PendingServiceID snowflake.ID
	Err              error
}

func (e *PricingFailedError) Error() string {
	return fmt.Sprintf("cart pricing failed for pending service %s: %v", e.PendingServiceID, e.Err)
}

func (e *PricingFailedError) Unwrap() error { return e.Err }
