package http

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RouterOptions tunes the engine built by NewRouter.
type RouterOptions struct {
	Production         bool
	RateLimitPerMinute int
}

// NewRouter returns a configured gin engine serving h.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	if opts.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(RequestID())
	r.Use(Logger())
	r.Use(Recovery())
	r.Use(CORS())
	if opts.RateLimitPerMinute > 0 {
		r.Use(NewRateLimiter(opts.RateLimitPerMinute, time.Minute).Middleware())
	}

	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/productos", h.ListProducts)
		api.GET("/productos/:id", h.GetProduct)
		api.GET("/precios-especiales", h.ListSpecialPrices)
		api.POST("/precios-especiales", h.UpsertSpecialPrice)
	}

	return r
}
