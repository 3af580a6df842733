package http

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// auxCORS returns the CORS middleware of the health and readiness routes, or
// nil when allowOrigins lists no origin. The intake route sets its own headers.
//
// "*" allows any origin without credentials; an explicit list allows credentials.
func auxCORS(allowOrigins string, logger *slog.Logger) gin.HandlerFunc {
	origins := parseOrigins(allowOrigins)
	if len(origins) == 0 {
		return nil
	}

	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}

	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		logger.Info("CORS enabled for all origins")
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
		logger.Info("CORS enabled", slog.Any("origins", origins))
	}

	return cors.New(cfg)
}

// parseOrigins splits a comma-separated origin list, dropping blank entries.
func parseOrigins(list string) []string {
	var origins []string
	for part := range strings.SplitSeq(list, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
