package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fcandiani/be-deel/internal/engine"
)

// respondEngineError переводит ошибку движка в HTTP-ответ и возвращает
// метку исхода для метрик. Контракт статусов:
//
//	NotFound            -> 404 без тела
//	InvalidInput        -> 422 с сообщением
//	лимит пополнения    -> 422 с сообщением
//	недостаток средств  -> 403 с сообщением
//	всё остальное       -> 500 без тела
func respondEngineError(c *gin.Context, err error) string {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		c.Status(http.StatusNotFound)
		return "not_found"
	case errors.Is(err, engine.ErrInvalidInput):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return "invalid_input"
	case errors.Is(err, engine.ErrDepositCapExceeded):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return "cap_exceeded"
	case errors.Is(err, engine.ErrInsufficientFunds):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return "insufficient_funds"
	default:
		c.Status(http.StatusInternalServerError)
		return "internal_error"
	}
}
