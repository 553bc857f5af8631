package http

import (
	"context"
	"net/http"

	"github.com/dkeye/arena/internal/adapters/signal"
	"github.com/dkeye/arena/internal/app"
	"github.com/dkeye/arena/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SignalOptions maps relay settings from the config.
func SignalOptions(cfg *config.Config) signal.Options {
	opts := signal.DefaultOptions()
	if cfg.ReadLimit > 0 {
		opts.ReadLimit = cfg.ReadLimit
	}
	if cfg.PingPeriod > 0 {
		opts.PingPeriod = cfg.PingPeriod
	}
	opts.OfferLimit = cfg.OfferLimit
	opts.OfferWindow = cfg.OfferWindow
	return opts
}

func SetupRouter(ctx context.Context, cfg *config.Config, reg *app.Registry, policy app.Policy) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	ctrl := signal.NewSignalWSController(reg, policy, SignalOptions(cfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": reg.Rooms()})
	})

	api.GET("/ws/signal", func(c *gin.Context) {
		log.Debug().Str("module", "adapters.http").Str("remote", c.ClientIP()).Msg("ws signal endpoint hit")
		ctrl.HandleSignal(ctx, c)
	})

	log.Info().Str("module", "adapters.http").Str("mode", cfg.Mode).Msg("router setup")
	return r
}
