package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wss/backend/internal/infrastructure/logger"
	"github.com/wss/backend/internal/interfaces/http/handler"
	"github.com/wss/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Config bundles everything the router needs
type Config struct {
	Logger       *zap.Logger
	Transactions *handler.TransactionHandler
	Registry     *prometheus.Registry
	Production   bool
}

// New builds the gin engine with all middleware and routes registered
func New(cfg Config) *gin.Engine {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
	)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Registry != nil {
		engine.GET("/metrics", gin.WrapH(
			promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}),
		))
	}

	api := engine.Group("/api")
	{
		tx := api.Group("/transactions")
		{
			tx.POST("/new-orders", cfg.Transactions.NewOrder)
			tx.POST("/payments", cfg.Transactions.Payment)
			tx.POST("/deliveries", cfg.Transactions.Delivery)
			tx.GET("/order-status", cfg.Transactions.OrderStatus)
			tx.GET("/stock-levels", cfg.Transactions.StockLevel)
		}
	}

	return engine
}
