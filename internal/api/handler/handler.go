package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/comandahq/comanda/internal/metrics"
	"github.com/comandahq/comanda/internal/service"
	"github.com/comandahq/comanda/internal/status"
)

// Handler groups the HTTP handlers and their dependencies.
type Handler struct {
	orders   *service.OrderService
	metrics  *service.MetricsService
	crm      *service.CRMService
	auth     *service.AuthService
	counters *metrics.Metrics
	db       *gorm.DB
}

func New(orders *service.OrderService, metricsSvc *service.MetricsService, crm *service.CRMService, auth *service.AuthService, counters *metrics.Metrics, db *gorm.DB) *Handler {
	return &Handler{
		orders:   orders,
		metrics:  metricsSvc,
		crm:      crm,
		auth:     auth,
		counters: counters,
		db:       db,
	}
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
			return status.IsAllowed(fl.Field().String())
		})
	}
}
