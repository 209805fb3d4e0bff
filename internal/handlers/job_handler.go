package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fcandiani/be-deel/internal/cache"
	"github.com/fcandiani/be-deel/internal/engine"
	"github.com/fcandiani/be-deel/internal/ledger"
	"github.com/fcandiani/be-deel/internal/metrics"
	"github.com/fcandiani/be-deel/internal/middleware"
)

// ListUnpaidJobs возвращает неоплаченные работы по активным договорам
// вызывающего (с любой стороны договора).
func ListUnpaidJobs(store *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := middleware.ProfileFromContext(c)
		if !ok {
			c.Status(http.StatusUnauthorized)
			return
		}

		jobs, err := store.UnpaidJobsForProfile(c.Request.Context(), profile.ID)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, jobs)
	}
}

// PayJob проводит оплату работы от имени вызывающего клиента.
func PayJob(payments *engine.PaymentEngine, profiles *cache.ProfileCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := middleware.ProfileFromContext(c)
		if !ok {
			c.Status(http.StatusUnauthorized)
			return
		}
		jobID, err := strconv.ParseUint(c.Param("job_id"), 10, 64)
		if err != nil {
			metrics.PaymentsTotal.WithLabelValues("not_found").Inc()
			c.Status(http.StatusNotFound)
			return
		}

		job, err := payments.PayForJob(c.Request.Context(), profile.ID, uint(jobID))
		if err != nil {
			metrics.PaymentsTotal.WithLabelValues(respondEngineError(c, err)).Inc()
			return
		}

		// Балансы обеих сторон изменились - кэш профилей устарел.
		profiles.Invalidate(c.Request.Context(), profile.ID, job.Contract.ContractorID)

		metrics.PaymentsTotal.WithLabelValues("ok").Inc()
		c.JSON(http.StatusOK, job)
	}
}
