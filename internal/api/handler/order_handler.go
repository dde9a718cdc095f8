package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comandahq/comanda/internal/model"
	"github.com/comandahq/comanda/internal/service"
	"github.com/comandahq/comanda/pkg/response"
)

type createOrderRequest struct {
	RestaurantID  string      `json:"restaurant_id" binding:"required"`
	OrderID       string      `json:"order_id"`
	ClientName    string      `json:"client_name" binding:"required"`
	ClientPhone   string      `json:"client_phone"`
	Items         []string    `json:"items"`
	Itens         []string    `json:"itens"` // PT-BR alias some POS integrations send
	Notes         string      `json:"notes"`
	ServiceType   string      `json:"service_type"`
	Address       string      `json:"address"`
	PaymentMethod string      `json:"payment_method"`
	TotalPrice    model.Money `json:"total_price"`
	Subtotal      model.Money `json:"subtotal"`
	Discount      model.Money `json:"discount"`
	DeliveryFee   model.Money `json:"delivery_fee"`
	Origin        string      `json:"origin"`
	Status        string      `json:"status"`
	PDVOrderID    string      `json:"pdv_order_id"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required,orderstatus"`
}

// CreateOrder creates an order, or updates one in place when order_id is
// present.
// @Summary Criar/atualizar pedido
// @Tags pedidos
// @Accept json
// @Produce json
// @Param request body createOrderRequest true "Pedido"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/pedidos [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	items := req.Items
	if len(items) == 0 {
		items = req.Itens
	}

	order, trackingURL, created, err := h.orders.Create(c.Request.Context(), service.OrderInput{
		RestaurantID:  req.RestaurantID,
		OrderID:       req.OrderID,
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		Items:         items,
		Notes:         req.Notes,
		ServiceType:   req.ServiceType,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		TotalPrice:    req.TotalPrice.Float64(),
		Subtotal:      req.Subtotal.Float64(),
		Discount:      req.Discount.Float64(),
		DeliveryFee:   req.DeliveryFee.Float64(),
		Origin:        req.Origin,
		Status:        req.Status,
		PDVOrderID:    req.PDVOrderID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			response.BadRequest(c, service.ErrInvalidStatus.Error())
		case errors.Is(err, service.ErrRestaurantNotFound):
			response.NotFound(c, service.ErrRestaurantNotFound.Error())
		case errors.Is(err, service.ErrOrderNotFound):
			response.NotFound(c, service.ErrOrderNotFound.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}

	code := http.StatusOK
	if created {
		code = http.StatusCreated
		if h.counters != nil {
			h.counters.OrdersCreated.WithLabelValues(order.Origin).Inc()
		}
	}
	c.JSON(code, gin.H{
		"success":      true,
		"tracking_url": trackingURL,
		"order":        order,
	})
}

// ListOrders returns every order of the restaurant, oldest first.
// @Summary Listar pedidos
// @Tags pedidos
// @Param restaurant_id path string true "Restaurante"
// @Success 200 {array} model.Order
// @Router /orders/{restaurant_id} [get]
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), c.Param("restaurant_id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if orders == nil {
		orders = []*model.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateStatus handles PATCH /orders/:id and PATCH /orders/:id/status.
// @Summary Atualizar status do pedido
// @Tags pedidos
// @Param id path string true "Pedido"
// @Param request body statusRequest true "Novo status"
// @Success 200 {object} model.Order
// @Failure 400 {object} map[string]interface{}
// @Router /orders/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, service.ErrInvalidStatus.Error())
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			response.BadRequest(c, service.ErrInvalidStatus.Error())
		case errors.Is(err, service.ErrOrderNotFound):
			response.NotFound(c, service.ErrOrderNotFound.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder removes the order by id.
// @Summary Excluir pedido
// @Tags pedidos
// @Param id path string true "Pedido"
// @Success 204
// @Router /orders/{id} [delete]
func (h *Handler) DeleteOrder(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Track is the public, unauthenticated order lookup behind the tracking
// token.
// @Summary Acompanhar pedido
// @Tags pedidos
// @Param code path string true "Código de acompanhamento"
// @Success 200 {object} service.TrackingInfo
// @Router /t/{code} [get]
func (h *Handler) Track(c *gin.Context) {
	info, err := h.orders.Track(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.NotFound(c, service.ErrOrderNotFound.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}
