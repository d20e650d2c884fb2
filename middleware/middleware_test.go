package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/aeo-assessment/backend/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doRequest(r *gin.Engine, method, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitPerIP(t *testing.T) {
	rl := NewRateLimiter(0.001, 1) // effectively one request per IP

	r := gin.New()
	r.Use(rl.RateLimit())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, doRequest(r, "GET", "/", "203.0.113.7:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r, "GET", "/", "203.0.113.7:1000").Code)

	// A different client still has its own bucket.
	assert.Equal(t, http.StatusOK, doRequest(r, "GET", "/", "198.51.100.2:1000").Code)
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doRequest(r, "OPTIONS", "/", "203.0.113.7:1000")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = doRequest(r, "GET", "/", "203.0.113.7:1000")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestErrorHandlerRecoversPanic(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) { panic("handler exploded") })

	w := doRequest(r, "GET", "/boom", "203.0.113.7:1000")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "unexpected error")
}

func TestStatsTracksVisitors(t *testing.T) {
	stats := &logging.Statistics{
		UniqueVisitors: map[string]time.Time{},
		PopularDomains: map[string]int{},
		MaturityLevels: map[string]int{},
	}

	r := gin.New()
	r.Use(Stats(stats))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	doRequest(r, "GET", "/", "203.0.113.7:1000")
	doRequest(r, "GET", "/", "203.0.113.7:1000")
	doRequest(r, "GET", "/", "198.51.100.2:1000")

	assert.Equal(t, 2, stats.GetUniqueVisitorsCount())
}
