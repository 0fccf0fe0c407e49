package api

import (
	"net/http"

	"bitwise74/minus-bot/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) Stats(c *gin.Context) {
	rows, err := service.CollectStats(a.DB)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})

		zap.L().Error("Failed to collect stats", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, rows)
}
