package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	approvaldomain "github.com/joemerrillis/sniffr-staging-sub001/internal/approval/domain"
	bookingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/booking/domain"
	cartdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/cart/domain"
	pricingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/pricing/domain"
	scheduledomain "github.com/joemerrillis/sniffr-staging-sub001/internal/schedule/domain"
)

var ErrInvalidRequest = errors.New("invalid_request")

type errorPayload struct {
	Type             string `json:"type"`
	Message          string `json:"message"`
	PendingServiceID string `json:"pending_service_id,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware maps domain errors attached by handlers onto one
// JSON error shape.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	var pricingErr *cartdomain.PricingFailedError
	if errors.As(err, &pricingErr) {
		return http.StatusUnprocessableEntity, errorPayload{
			Type:             "cart_pricing_failed",
			Message:          pricingErr.Error(),
			PendingServiceID: pricingErr.PendingServiceID.String(),
		}
	}

	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case errors.Is(err, bookingdomain.ErrDuplicateService),
		errors.Is(err, bookingdomain.ErrAlreadyConfirmed):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, scheduledomain.ErrInvalidClient),
		errors.Is(err, scheduledomain.ErrInvalidTenant),
		errors.Is(err, scheduledomain.ErrInvalidDateRange),
		errors.Is(err, scheduledomain.ErrInvalidDayOfWeek),
		errors.Is(err, scheduledomain.ErrInvalidTimeRange),
		errors.Is(err, scheduledomain.ErrInvalidEffective),
		errors.Is(err, pricingdomain.ErrInvalidContext),
		errors.Is(err, pricingdomain.ErrInvalidRule),
		errors.Is(err, bookingdomain.ErrInvalidRequest),
		errors.Is(err, cartdomain.ErrEmptyCart),
		errors.Is(err, cartdomain.ErrInvalidClient),
		errors.Is(err, approvaldomain.ErrInvalidTenant),
		errors.Is(err, approvaldomain.ErrInvalidDogPair),
		errors.Is(err, approvaldomain.ErrInvalidSentiment):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, scheduledomain.ErrWindowNotFound),
		errors.Is(err, bookingdomain.ErrNotFound),
		errors.Is(err, pricingdomain.ErrRuleNotFound),
		errors.Is(err, cartdomain.ErrServiceNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
