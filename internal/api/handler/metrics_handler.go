package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comandahq/comanda/internal/service"
	"github.com/comandahq/comanda/pkg/response"
)

// Report serves the plan-gated metrics report.
// @Summary Relatório de métricas
// @Tags métricas
// @Param restaurant_id path string true "Restaurante"
// @Param period query string false "Janela (3d/7d/15d/30d/90d)"
// @Success 200 {object} service.MetricsReport
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/metrics/{restaurant_id} [get]
func (h *Handler) Report(c *gin.Context) {
	report, err := h.metrics.Report(c.Request.Context(), c.Param("restaurant_id"), c.Query("period"))
	if err != nil {
		h.denyOrFail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// CRMClients serves the plan-gated client list, most recently active
// first.
// @Summary Clientes (CRM)
// @Tags crm
// @Param restaurant_id path string true "Restaurante"
// @Success 200 {array} service.ClientSummary
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /crm/{restaurant_id} [get]
func (h *Handler) CRMClients(c *gin.Context) {
	clients, err := h.crm.Clients(c.Request.Context(), c.Param("restaurant_id"))
	if err != nil {
		h.denyOrFail(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *Handler) denyOrFail(c *gin.Context, err error) {
	var denied *service.PlanDeniedError
	switch {
	case errors.As(err, &denied):
		response.PlanDenied(c, denied.Error(), denied.CurrentPlan, denied.UpgradeTo)
	case errors.Is(err, service.ErrRestaurantNotFound):
		response.NotFound(c, service.ErrRestaurantNotFound.Error())
	default:
		response.InternalError(c, err)
	}
}
