package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	approvaldomain "github.com/joemerrillis/sniffr-staging-sub001/internal/approval/domain"
	bookingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/booking/domain"
	cartdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/cart/domain"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/config"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/observability/logger"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/observability/metrics"
	pricingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/pricing/domain"
	scheduledomain "github.com/joemerrillis/sniffr-staging-sub001/internal/schedule/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, m *metrics.Metrics, reg *prometheus.Registry) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log))
	r.Use(metrics.GinMiddleware(m))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", srv.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	genID       *snowflake.Node
	scheduleSvc scheduledomain.Service
	bookingSvc  bookingdomain.Service
	pricingSvc  pricingdomain.Service
	cartSvc     cartdomain.Service
	approvalSvc approvaldomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	GenID       *snowflake.Node
	ScheduleSvc scheduledomain.Service
	BookingSvc  bookingdomain.Service
	PricingSvc  pricingdomain.Service
	CartSvc     cartdomain.Service
	ApprovalSvc approvaldomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		genID:       p.GenID,
		scheduleSvc: p.ScheduleSvc,
		bookingSvc:  p.BookingSvc,
		pricingSvc:  p.PricingSvc,
		cartSvc:     p.CartSvc,
		approvalSvc: p.ApprovalSvc,
	}

	svc.registerAPIRoutes()
	return svc
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")
	v1.Use(TenantMiddleware())

	v1.POST("/schedule/expand", s.ExpandWindows)

	v1.POST("/windows", s.CreateWindow)
	v1.GET("/windows", s.ListWindows)
	v1.PUT("/windows/:id", s.UpdateWindow)
	v1.DELETE("/windows/:id", s.DeleteWindow)

	v1.POST("/pricing/preview", s.PreviewPrice)
	v1.POST("/pricing/rules", s.CreatePricingRule)
	v1.GET("/pricing/rules", s.ListPricingRules)
	v1.PUT("/pricing/rules/:id", s.UpdatePricingRule)
	v1.DELETE("/pricing/rules/:id", s.DeletePricingRule)

	v1.POST("/cart/enrich", s.EnrichCart)

	v1.POST("/bookings", s.CreateBooking)
	v1.GET("/bookings", s.ListBookings)
	v1.POST("/bookings/:id/confirm", s.ConfirmBooking)
	v1.DELETE("/bookings/:id", s.CancelBooking)

	v1.GET("/approvals/check", s.CheckApproval)
	v1.POST("/interactions", s.RecordInteraction)
}
