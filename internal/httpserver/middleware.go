package httpserver

import (
	"net/http"
	"time"

	"optic-storefront/internal/metrics"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const sessionKey = "session_id"

func requestLogger(logger *log.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(log.Fields{
			"status":  c.Writer.Status(),
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry.Warn(c.Errors.String())
			return
		}
		entry.Info("request")
	}
}

func requestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// sessionMiddleware resolves the browser session, issuing a cookie on first use.
func sessionMiddleware(sessions sessionManager, logger *log.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := sessions.Ensure(c.Writer, c.Request)
		if err != nil {
			logger.WithError(err).Error("session unavailable")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

// existingSession admits only requests that already carry a valid session.
func existingSession(sessions sessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := sessions.Lookup(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
