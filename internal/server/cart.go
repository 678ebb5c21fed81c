package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	cartdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/cart/domain"
)

type enrichCartRequest struct {
	ClientID   snowflake.ID   `json:"client_id"`
	ServiceIDs []snowflake.ID `json:"service_ids"`
}

func (s *Server) EnrichCart(c *gin.Context) {
	if _, ok := requireTenant(c); !ok {
		return
	}

	var req enrichCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.cartSvc.Enrich(c.Request.Context(), cartdomain.EnrichRequest{
		ClientID:   req.ClientID,
		ServiceIDs: req.ServiceIDs,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
