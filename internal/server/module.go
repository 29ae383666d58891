package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	analysisdomain "github.com/starloomhq/starloom/internal/analysis/domain"
	chartdomain "github.com/starloomhq/starloom/internal/chart/domain"
	"github.com/starloomhq/starloom/internal/config"
	fulfillmentdomain "github.com/starloomhq/starloom/internal/fulfillment/domain"
	paymentdomain "github.com/starloomhq/starloom/internal/payment/domain"
	productdomain "github.com/starloomhq/starloom/internal/product/domain"
	"github.com/starloomhq/starloom/internal/report"
)

type Params struct {
	fx.In

	Log          *zap.Logger
	Cfg          config.Config
	Catalog      productdomain.Catalog
	Charts       chartdomain.Generator
	Analysis     analysisdomain.Service
	Checkout     paymentdomain.CheckoutService
	Orchestrator fulfillmentdomain.Orchestrator
	Exporter     *report.Exporter
}

type Server struct {
	log          *zap.Logger
	cfg          config.Config
	catalog      productdomain.Catalog
	charts       chartdomain.Generator
	analysis     analysisdomain.Service
	checkout     paymentdomain.CheckoutService
	orchestrator fulfillmentdomain.Orchestrator
	exporter     *report.Exporter
}

func New(p Params) *Server {
	return &Server{
		log:          p.Log.Named("server"),
		cfg:          p.Cfg,
		catalog:      p.Catalog,
		charts:       p.Charts,
		analysis:     p.Analysis,
		checkout:     p.Checkout,
		orchestrator: p.Orchestrator,
		exporter:     p.Exporter,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.log))
	r.Use(metricsMiddleware())
	s.RegisterRoutes(r)
	return r
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", s.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/products", s.ListProducts)
		api.POST("/chart", s.CreateChart)
		api.POST("/ai-analysis", s.CreateAnalysis)
		api.POST("/create-checkout-session", s.CreateCheckoutSession)
		api.POST("/verify-payment", s.VerifyPayment)

		flows := api.Group("/flows")
		{
			flows.POST("", s.StartFlow)
			flows.GET("/:id", s.GetFlow)
			flows.POST("/:id/plan", s.SelectFlowPlan)
			flows.POST("/:id/birth-data", s.SubmitFlowBirthData)
			flows.POST("/:id/checkout", s.StartFlowCheckout)
			flows.POST("/:id/return", s.CompleteFlowReturn)
			flows.GET("/:id/report.pdf", s.DownloadFlowReport)
		}
	}
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error("request", fields...)
			return
		}
		log.Info("request", fields...)
	}
}

func RunHTTP(lc fx.Lifecycle, log *zap.Logger, cfg config.Config, s *Server) {
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: s.Router(),
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.Server.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(New),
	fx.Invoke(RunHTTP),
)
