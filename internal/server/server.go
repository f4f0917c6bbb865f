// Package server exposes the media browser over HTTP for a presentation layer.
//
// This package enables mediamix to:
// - Serve the feed, pagination state and favorites as JSON
// - Accept search, category, scroll, favorite and theme intents
// - Export Prometheus metrics and a health check
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gauthierbraillon/mediamix/internal/app"
)

const serviceName = "mediamix"

// NewRouter builds the gin engine serving a.
func NewRouter(a *app.App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(config))
	r.Use(PrometheusMiddleware())

	h := &handler{app: a}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/feed", h.getFeed)
		api.POST("/search", h.search)
		api.POST("/category", h.category)
		api.POST("/scroll", h.scroll)
		api.GET("/favorites", h.listFavorites)
		api.POST("/favorites/toggle", h.toggleFavorite)
		api.GET("/theme", h.getTheme)
		api.POST("/theme/toggle", h.toggleTheme)
		api.GET("/recent", h.recent)
		api.GET("/categories", h.categories)
		api.POST("/download", h.download)
		api.POST("/cache/clear", h.clearCache)
	}

	return r
}

// Run serves a on addr until ctx is cancelled.
func Run(ctx context.Context, a *app.App, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(a),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Printf("[server] shutting down")
	return srv.Shutdown(shutdownCtx)
}
