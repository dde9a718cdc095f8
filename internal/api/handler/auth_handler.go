package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comandahq/comanda/internal/service"
	"github.com/comandahq/comanda/pkg/response"
)

type googleLoginRequest struct {
	Email      string `json:"email"`
	Credential string `json:"credential"`
}

// GoogleLogin resolves a Google identity (plain email or ID-token
// credential) to a restaurant account.
// @Summary Login Google
// @Tags auth
// @Accept json
// @Produce json
// @Param request body googleLoginRequest true "Identidade"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/google [post]
func (h *Handler) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	restaurant, profile, err := h.auth.Login(c.Request.Context(), req.Email, req.Credential)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"authorized": false})
			return
		}
		response.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authorized": true,
		"restaurant": restaurant,
		"user":       profile,
	})
}
