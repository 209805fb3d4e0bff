package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fcandiani/be-deel/internal/cache"
	"github.com/fcandiani/be-deel/internal/engine"
	"github.com/fcandiani/be-deel/internal/handlers"
	"github.com/fcandiani/be-deel/internal/ledger"
	"github.com/fcandiani/be-deel/internal/middleware"
)

// Deps - зависимости маршрутов. Движки и хранилище внедряются явно,
// без app-wide реестра моделей.
type Deps struct {
	Store    *ledger.Store
	Payments *engine.PaymentEngine
	Deposits *engine.DepositEngine
	Profiles *cache.ProfileCache
	JWTKey   []byte
}

// SetupRouter инициализирует все маршруты приложения.
func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID())

	// Метрики без аутентификации.
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// --- Защищённая группа маршрутов ---
	// Middleware GetProfile разрешает профиль вызывающего; дальше
	// обработчики доверяют этой identity.
	authed := r.Group("/")
	authed.Use(middleware.GetProfile(deps.Store, deps.Profiles, deps.JWTKey))
	{
		authed.GET("/contracts/:id", handlers.GetContract(deps.Store))
		authed.GET("/contracts", handlers.GetActiveContract(deps.Store))
		authed.GET("/jobs/unpaid", handlers.ListUnpaidJobs(deps.Store))
		authed.POST("/jobs/:job_id/pay", handlers.PayJob(deps.Payments, deps.Profiles))
		authed.POST("/balances/deposit/:userId", handlers.DepositBalance(deps.Deposits, deps.Profiles))
	}

	return r
}
