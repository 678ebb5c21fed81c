// Package metrics exposes application-level prometheus instruments.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the domain instruments.
type Metrics struct {
	ExpansionsCreated  prometheus.Counter
	ExpansionFailures  prometheus.Counter
	PricePreviews      prometheus.Counter
	CartEnrichments    prometheus.Counter
	CartFailures       prometheus.Counter
	ApprovalHolds      prometheus.Counter
	httpRequestSeconds *prometheus.HistogramVec
}

// New registers the instruments on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ExpansionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sniffr_expansion_instances_created_total",
			Help: "Pending services materialized by window expansion.",
		}),
		ExpansionFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sniffr_expansion_failures_total",
			Help: "Per (window,day) expansion failures.",
		}),
		PricePreviews: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sniffr_price_previews_total",
			Help: "Price previews evaluated by the pricing engine.",
		}),
		CartEnrichments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sniffr_cart_enrichments_total",
			Help: "Cart enrichment calls completed.",
		}),
		CartFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sniffr_cart_failures_total",
			Help: "Cart enrichment calls rejected.",
		}),
		ApprovalHolds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sniffr_approval_holds_total",
			Help: "Approval checks that flagged a service for review.",
		}),
		httpRequestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sniffr_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		m.ExpansionsCreated,
		m.ExpansionFailures,
		m.PricePreviews,
		m.CartEnrichments,
		m.CartFailures,
		m.ApprovalHolds,
		m.httpRequestSeconds,
	)
	return m
}

// GinMiddleware records request latency per route.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.httpRequestSeconds.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
