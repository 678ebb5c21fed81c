package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	approvaldomain "github.com/joemerrillis/sniffr-staging-sub001/internal/approval/domain"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/dates"
)

// CheckApproval answers whether a dog grouping on a date needs manual
// review. Query: dog_ids (comma separated), date (YYYY-MM-DD).
func (s *Server) CheckApproval(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	date, err := dates.Parse(strings.TrimSpace(c.Query("date")))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var dogIDs []snowflake.ID
	for _, raw := range strings.Split(c.Query("dog_ids"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		dogIDs = append(dogIDs, id)
	}

	needsApproval := s.approvalSvc.NeedsApproval(c.Request.Context(), tenantID, dogIDs, date)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"needs_approval": needsApproval}})
}

type recordInteractionRequest struct {
	DogAID          snowflake.ID `json:"dog_a_id"`
	DogBID          snowflake.ID `json:"dog_b_id"`
	Sentiment       string       `json:"sentiment"`
	InteractionDate string       `json:"interaction_date"`
	Notes           string       `json:"notes"`
}

func (s *Server) RecordInteraction(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	var req recordInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	date, err := dates.Parse(req.InteractionDate)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.approvalSvc.Record(c.Request.Context(), approvaldomain.RecordRequest{
		TenantID:        tenantID,
		DogAID:          req.DogAID,
		DogBID:          req.DogBID,
		Sentiment:       approvaldomain.Sentiment(strings.TrimSpace(req.Sentiment)),
		InteractionDate: date,
		Notes:           req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
