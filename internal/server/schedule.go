package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/joemerrillis/sniffr-staging-sub001/internal/dates"
	scheduledomain "github.com/joemerrillis/sniffr-staging-sub001/internal/schedule/domain"
)

type expandRequest struct {
	ClientID       snowflake.ID `json:"client_id"`
	Start          string       `json:"start"`
	End            string       `json:"end"`
	IncludeCreated bool         `json:"include_created"`
}

func (s *Server) ExpandWindows(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	var req expandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	start, err := dates.Parse(req.Start)
	if err != nil {
		AbortWithError(c, scheduledomain.ErrInvalidDateRange)
		return
	}
	end, err := dates.Parse(req.End)
	if err != nil {
		AbortWithError(c, scheduledomain.ErrInvalidDateRange)
		return
	}

	resp, err := s.scheduleSvc.Expand(c.Request.Context(), scheduledomain.ExpandRequest{
		ClientID:       req.ClientID,
		TenantID:       tenantID,
		Start:          start,
		End:            end,
		IncludeCreated: req.IncludeCreated,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type windowRequest struct {
	ClientID        snowflake.ID   `json:"client_id"`
	ServiceType     string         `json:"service_type"`
	DayOfWeek       int            `json:"day_of_week"`
	StartTime       string         `json:"start_time"`
	EndTime         string         `json:"end_time"`
	EffectiveStart  string         `json:"effective_start"`
	EffectiveEnd    string         `json:"effective_end"`
	DurationMinutes int            `json:"duration_minutes"`
	DogIDs          []snowflake.ID `json:"dog_ids"`
}

func (s *Server) buildWindowRequest(c *gin.Context, tenantID snowflake.ID) (scheduledomain.WindowRequest, bool) {
	var req windowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return scheduledomain.WindowRequest{}, false
	}

	effectiveStart, err := dates.Parse(req.EffectiveStart)
	if err != nil {
		AbortWithError(c, scheduledomain.ErrInvalidEffective)
		return scheduledomain.WindowRequest{}, false
	}
	out := scheduledomain.WindowRequest{
		ClientID:        req.ClientID,
		TenantID:        tenantID,
		ServiceType:     strings.TrimSpace(req.ServiceType),
		DayOfWeek:       req.DayOfWeek,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		EffectiveStart:  effectiveStart,
		DurationMinutes: req.DurationMinutes,
		DogIDs:          req.DogIDs,
	}
	if strings.TrimSpace(req.EffectiveEnd) != "" {
		effectiveEnd, err := dates.Parse(req.EffectiveEnd)
		if err != nil {
			AbortWithError(c, scheduledomain.ErrInvalidEffective)
			return scheduledomain.WindowRequest{}, false
		}
		out.EffectiveEnd = &effectiveEnd
	}
	return out, true
}

func (s *Server) CreateWindow(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	req, ok := s.buildWindowRequest(c, tenantID)
	if !ok {
		return
	}

	resp, err := s.scheduleSvc.CreateWindow(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListWindows(c *gin.Context) {
	if _, ok := requireTenant(c); !ok {
		return
	}
	clientID, ok := queryID(c, "client_id")
	if !ok {
		return
	}

	resp, err := s.scheduleSvc.ListWindows(c.Request.Context(), clientID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateWindow(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	req, ok := s.buildWindowRequest(c, tenantID)
	if !ok {
		return
	}

	resp, err := s.scheduleSvc.UpdateWindow(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteWindow(c *gin.Context) {
	if _, ok := requireTenant(c); !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	clientID, ok := queryID(c, "client_id")
	if !ok {
		return
	}

	if err := s.scheduleSvc.DeleteWindow(c.Request.Context(), clientID, id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
