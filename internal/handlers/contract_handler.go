package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fcandiani/be-deel/internal/ledger"
	"github.com/fcandiani/be-deel/internal/middleware"
)

// GetContract возвращает договор по id, только если вызывающий - его
// клиент или исполнитель. Чужие договоры неотличимы от несуществующих.
func GetContract(store *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := middleware.ProfileFromContext(c)
		if !ok {
			c.Status(http.StatusUnauthorized)
			return
		}
		contractID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}

		contract, err := store.ContractForProfile(c.Request.Context(), uint(contractID), profile.ID)
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, contract)
	}
}

// GetActiveContract возвращает нерасторгнутый договор вызывающего,
// 404 - если такого нет.
func GetActiveContract(store *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := middleware.ProfileFromContext(c)
		if !ok {
			c.Status(http.StatusUnauthorized)
			return
		}

		contract, err := store.ActiveContractForProfile(c.Request.Context(), profile.ID)
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, contract)
	}
}
