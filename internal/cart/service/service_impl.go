package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	bookingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/booking/domain"
	cartdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/cart/domain"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/observability/metrics"
	pricingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/pricing/domain"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Bookings bookingdomain.Repository
	Pricing  pricingdomain.Service
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	bookings bookingdomain.Repository
	pricing  pricingdomain.Service
	metrics  *metrics.Metrics
}

func New(p Params) cartdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("cart.service"),
		bookings: p.Bookings,
		pricing:  p.Pricing,
		metrics:  p.Metrics,
	}
}

type groupKey struct {
	tenantID    snowflake.ID
	serviceType string
}

func (s *Service) Enrich(ctx context.Context, req cartdomain.EnrichRequest) (*cartdomain.CartResult, error) {
	if req.ClientID == 0 {
		return nil, cartdomain.ErrInvalidClient
	}
	if len(req.ServiceIDs) == 0 {
		return nil, cartdomain.ErrEmptyCart
	}

	rows, err := s.bookings.FindByIDs(ctx, s.db, req.ServiceIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[snowflake.ID]*bookingdomain.PendingService, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	result := &cartdomain.CartResult{}
	groupIndex := make(map[groupKey]int)

	// Iterate the requested ids so group order follows the caller's
	// selection order, not storage order.
	for _, id := range req.ServiceIDs {
		svc, ok := byID[id]
		if !ok || svc.ClientID != req.ClientID {
			s.countFailure()
			return nil, fmt.Errorf("%w: %s", cartdomain.ErrServiceNotFound, id)
		}

		price, err := s.pricing.Preview(ctx, buildContext(svc))
		if err != nil {
			s.countFailure()
			s.log.Warn("cart rejected, pending service failed to price",
				zap.Int64("pending_service_id", id.Int64()),
				zap.Error(err),
			)
			return nil, &cartdomain.PricingFailedError{PendingServiceID: id, Err: err}
		}

		item := cartdomain.EnrichedService{PendingService: *svc, Price: price}
		result.Items = append(result.Items, item)
		result.GrandTotalCents += price.TotalCents

		key := groupKey{tenantID: svc.TenantID, serviceType: svc.ServiceType}
		idx, ok := groupIndex[key]
		if !ok {
			idx = len(result.Groups)
			groupIndex[key] = idx
			result.Groups = append(result.Groups, cartdomain.CartGroup{
				TenantID:    svc.TenantID,
				ServiceType: svc.ServiceType,
			})
		}
		result.Groups[idx].TotalCents += price.TotalCents
		result.Groups[idx].Items = append(result.Groups[idx].Items, item)
	}

	if s.metrics != nil {
		s.metrics.CartEnrichments.Inc()
	}
	return result, nil
}

// buildContext derives the pricing fact sheet from the service's detail
// snapshot, falling back to the row's own fields where the snapshot is
// silent.
func buildContext(svc *bookingdomain.PendingService) pricingdomain.PriceContext {
	pc := pricingdomain.PriceContext{
		TenantID:    svc.TenantID,
		ClientID:    svc.ClientID,
		ServiceType: svc.ServiceType,
		DogIDs:      append([]snowflake.ID(nil), svc.DogIDs...),
	}
	pc.SetDate(svc.ServiceDate)

	if duration, ok := svc.DetailInt(bookingdomain.DetailDurationMinutes); ok {
		pc.DurationMinutes = int(duration)
	}
	if start, ok := svc.DetailString(bookingdomain.DetailStartTime); ok {
		pc.StartTime = start
	}
	if base, ok := svc.DetailInt(bookingdomain.DetailBaseRateCents); ok {
		pc.BasePriceCents = base
	}
	return pc
}

func (s *Service) countFailure() {
	if s.metrics != nil {
		s.metrics.CartFailures.Inc()
	}
}
