package api

import (
	"anxonews-server/internal/ratelimit"
	subscribeHandler "anxonews-server/internal/subscribe/handler"
	"net/http"

	"github.com/gin-gonic/gin"
)

type API struct {
	router           *gin.RouterGroup
	subscribeHandler subscribeHandler.Handler
	rateLimiter      *ratelimit.Service
}

func New(router *gin.RouterGroup, subscribeHandler subscribeHandler.Handler, rateLimiter *ratelimit.Service) API {
	return API{
		router:           router,
		subscribeHandler: subscribeHandler,
		rateLimiter:      rateLimiter,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api")
	{
		apiGroup.POST("/subscribe", a.rateLimiter.Middleware(), a.subscribeHandler.HandleSubscribe)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
