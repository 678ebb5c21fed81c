package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	bookingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/booking/domain"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/dates"
)

type createBookingRequest struct {
	ClientID    snowflake.ID   `json:"client_id"`
	ServiceDate string         `json:"service_date"`
	ServiceType string         `json:"service_type"`
	DogIDs      []snowflake.ID `json:"dog_ids"`
	Details     map[string]any `json:"details"`
}

func (s *Server) CreateBooking(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	date, err := dates.Parse(req.ServiceDate)
	if err != nil {
		AbortWithError(c, bookingdomain.ErrInvalidRequest)
		return
	}

	resp, err := s.bookingSvc.Book(c.Request.Context(), bookingdomain.BookRequest{
		ClientID:    req.ClientID,
		TenantID:    tenantID,
		ServiceDate: date,
		ServiceType: strings.TrimSpace(req.ServiceType),
		DogIDs:      req.DogIDs,
		Details:     req.Details,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBookings(c *gin.Context) {
	if _, ok := requireTenant(c); !ok {
		return
	}
	clientID, ok := queryID(c, "client_id")
	if !ok {
		return
	}
	from, err := dates.Parse(strings.TrimSpace(c.Query("from")))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	to, err := dates.Parse(strings.TrimSpace(c.Query("to")))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.bookingSvc.ListByClient(c.Request.Context(), clientID, from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ConfirmBooking(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := s.bookingSvc.Confirm(c.Request.Context(), tenantID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CancelBooking(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.bookingSvc.Cancel(c.Request.Context(), tenantID, id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"canceled": true}})
}
