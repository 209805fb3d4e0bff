package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fcandiani/be-deel/internal/cache"
	"github.com/fcandiani/be-deel/internal/engine"
	"github.com/fcandiani/be-deel/internal/metrics"
)

// DepositRequest определяет структуру для входящих данных пополнения.
// Amount - указатель, чтобы отличать пропущенное поле от нуля.
type DepositRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// DepositBalance пополняет баланс профиля из пути :userId.
func DepositBalance(deposits *engine.DepositEngine, profiles *cache.ProfileCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
		if err != nil {
			metrics.DepositsTotal.WithLabelValues("not_found").Inc()
			c.Status(http.StatusNotFound)
			return
		}

		var req DepositRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount == nil {
			metrics.DepositsTotal.WithLabelValues("invalid_input").Inc()
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Поле amount обязательно и должно быть числом"})
			return
		}

		profile, err := deposits.Deposit(c.Request.Context(), uint(targetID), *req.Amount)
		if err != nil {
			metrics.DepositsTotal.WithLabelValues(respondEngineError(c, err)).Inc()
			return
		}

		profiles.Invalidate(c.Request.Context(), profile.ID)

		metrics.DepositsTotal.WithLabelValues("ok").Inc()
		c.JSON(http.StatusOK, profile)
	}
}
