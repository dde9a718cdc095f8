package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comandahq/comanda/pkg/logger"
)

// Error writes the `{"error": msg}` shape every endpoint uses.
func Error(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func BadRequest(c *gin.Context, msg string) {
	Error(c, http.StatusBadRequest, msg)
}

func NotFound(c *gin.Context, msg string) {
	Error(c, http.StatusNotFound, msg)
}

// PlanDenied names the current plan and the minimum plan to upgrade to.
func PlanDenied(c *gin.Context, msg, currentPlan, upgradeTo string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"error":        msg,
		"current_plan": currentPlan,
		"upgrade_to":   upgradeTo,
	})
}

// InternalError logs the original error server-side and returns a generic
// message to the caller.
func InternalError(c *gin.Context, err error) {
	logger.Error("internal error",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	Error(c, http.StatusInternalServerError, "erro interno")
}
