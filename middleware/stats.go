package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/aeo-assessment/backend/logging"
)

// Stats records each client as a visitor before the handler runs.
// Assessment outcomes are tracked by the assess handler itself, which
// knows the analysis duration and maturity level.
func Stats(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats.TrackVisitor(c.ClientIP())
		c.Next()
	}
}

// CORS sets permissive cross-origin headers and short-circuits preflight
// requests.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
