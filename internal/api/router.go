package api

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/comandahq/comanda/config"
	"github.com/comandahq/comanda/internal/api/handler"
	"github.com/comandahq/comanda/internal/metrics"
)

// NewRouter assembles the gin engine with the full middleware chain and
// route table.
func NewRouter(cfg *config.Config, h *handler.Handler, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(RequestLogger())
	r.Use(CORS())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Server.RateLimit > 0 {
		r.Use(RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst))
	}
	r.Use(otelgin.Middleware("comanda"))
	if m != nil {
		r.Use(Instrument(m))
	}

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/auth/google", h.GoogleLogin)

	r.GET("/orders/:restaurant_id", h.ListOrders)
	r.PATCH("/orders/:id", h.UpdateStatus)
	r.PATCH("/orders/:id/status", h.UpdateStatus)
	r.DELETE("/orders/:id", h.DeleteOrder)

	r.GET("/t/:code", h.Track)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/pedidos", h.CreateOrder)
		v1.GET("/metrics/:restaurant_id", h.Report)
	}

	r.GET("/crm/:restaurant_id", h.CRMClients)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "rota não encontrada"})
	})
	return r
}
