// Package api contains the ops endpoints served next to the bot
package api

import (
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func NewRouter(db *gorm.DB) *API {
	a := &API{DB: db}

	router := gin.New()
	a.Router = router

	router.Use(
		gin.Recovery(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
		}),
	)

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 	-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// GET /api/stats 	-> Rolling creation counts
		main.GET("/stats", cacheFor(30), a.Stats)
	}

	return a
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
