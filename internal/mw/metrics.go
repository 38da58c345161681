package mw

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"seatapp-web/internal/metrics"
)

// Metrics records Prometheus request metrics, labelled by route pattern so
// unknown paths do not blow up label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
