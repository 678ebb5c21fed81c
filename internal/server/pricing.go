package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/joemerrillis/sniffr-staging-sub001/internal/dates"
	pricingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/pricing/domain"
)

type previewPriceRequest struct {
	ClientID        snowflake.ID   `json:"client_id"`
	ServiceType     string         `json:"service_type"`
	ServiceDate     string         `json:"service_date"`
	StartTime       string         `json:"start_time"`
	DurationMinutes int            `json:"duration_minutes"`
	DogIDs          []snowflake.ID `json:"dog_ids"`
	BasePriceCents  int64          `json:"base_price_cents"`
}

func (s *Server) PreviewPrice(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	var req previewPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	pc := pricingdomain.PriceContext{
		TenantID:        tenantID,
		ClientID:        req.ClientID,
		ServiceType:     strings.TrimSpace(req.ServiceType),
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		DogIDs:          req.DogIDs,
		BasePriceCents:  req.BasePriceCents,
	}
	if req.ServiceDate != "" {
		date, err := dates.Parse(req.ServiceDate)
		if err != nil {
			AbortWithError(c, pricingdomain.ErrInvalidContext)
			return
		}
		pc.SetDate(date)
	}

	resp, err := s.pricingSvc.Preview(c.Request.Context(), pc)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type pricingRuleRequest struct {
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	Priority        int                    `json:"priority"`
	RuleType        string                 `json:"rule_type"`
	RuleData        map[string]interface{} `json:"rule_data"`
	AdjustmentKind  string                 `json:"adjustment_kind"`
	AdjustmentValue float64                `json:"adjustment_value"`
	Enabled         *bool                  `json:"enabled"`
}

func (r *pricingRuleRequest) toDomain(tenantID snowflake.ID) pricingdomain.RuleRequest {
	return pricingdomain.RuleRequest{
		TenantID:        tenantID,
		Name:            r.Name,
		Description:     r.Description,
		Priority:        r.Priority,
		RuleType:        pricingdomain.RuleType(strings.TrimSpace(r.RuleType)),
		RuleData:        r.RuleData,
		AdjustmentKind:  pricingdomain.AdjustmentKind(strings.TrimSpace(r.AdjustmentKind)),
		AdjustmentValue: r.AdjustmentValue,
		Enabled:         r.Enabled,
	}
}

func (s *Server) CreatePricingRule(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	var req pricingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.pricingSvc.CreateRule(c.Request.Context(), req.toDomain(tenantID))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPricingRules(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	resp, err := s.pricingSvc.ListRules(c.Request.Context(), tenantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePricingRule(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req pricingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.pricingSvc.UpdateRule(c.Request.Context(), id, req.toDomain(tenantID))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeletePricingRule(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.pricingSvc.DeleteRule(c.Request.Context(), tenantID, id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
