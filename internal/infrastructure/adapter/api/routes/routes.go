package routes

import (
	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/api/handler"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the HTTP handlers served by the API
type Handlers struct {
	Payment      *handler.PaymentHandler
	Notification *handler.NotificationHandler
	Health       *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, handlers Handlers) {
	router.GET("/health", handlers.Health.Health)

	// Bot-facing API
	v1 := router.Group("/api/v1")
	{
		// POST /api/v1/payments/init
		v1.POST("/payments/init", handlers.Payment.InitPayment)
	}

	// Gateway callbacks, path fixed by the terminal settings
	v2 := router.Group("/api/v2")
	{
		// POST /api/v2/Notification
		v2.POST("/Notification", handlers.Notification.ReceiveNotification)
	}
}

// SetupMetrics exposes the registry in the Prometheus text format at path
func SetupMetrics(router *gin.Engine, path string, registry *prometheus.Registry) {
	router.GET(path, gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}

// SetupMiddlewares configures global middlewares for the API. ErrorHandler
// runs inside Logger so recovered panics still get an access log line.
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.ErrorHandler(logger))
}
