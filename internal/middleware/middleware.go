package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"letly-be-svc/internal/config"
	"letly-be-svc/pkg/logger"
	"letly-be-svc/pkg/utils"
)

// CORS allows the configured front-end origins
func CORS(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	origins := cfg.Origins()
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	return cors.New(corsConfig)
}

// LoggerMiddleware logs one line per request
func LoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		entry := log.WithFields(logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"ip":         c.ClientIP(),
			"latency_ms": time.Since(start).Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("Request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request completed")
		}
	}
}

// ErrorHandler turns a panic into a 500 envelope
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error", nil)
		c.Abort()
	})
}

// NoRouteHandler answers unknown paths
func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.NotFoundResponse(c, "Route not found", nil)
	}
}

// NoMethodHandler answers known paths called with the wrong method
func NoMethodHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusMethodNotAllowed, "Method not allowed", nil)
	}
}
