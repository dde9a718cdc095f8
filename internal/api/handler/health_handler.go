package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness and pings the database.
// @Summary Health check
// @Tags infra
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	dbStatus := "up"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbStatus = "down"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "comanda",
		"database": dbStatus,
	})
}
