package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/glowbook/artist-scheduler/internal/cache"
	"github.com/glowbook/artist-scheduler/internal/config"
	dbpkg "github.com/glowbook/artist-scheduler/internal/db"
	"github.com/glowbook/artist-scheduler/internal/logger"
	"github.com/glowbook/artist-scheduler/internal/middleware"
	"github.com/glowbook/artist-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	logger.Init(cfg.Env)
	defer logger.Get().Sync()

	db := dbpkg.NewDB(cfg)
	redisClient := cache.NewClient(cfg)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, redisClient, cfg)

	logger.Get().Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Get().Fatal("failed to start server", zap.Error(err))
	}
}
