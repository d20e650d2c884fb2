package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/aeo-assessment/backend/assessment"
	"github.com/aeo-assessment/backend/logging"
	"github.com/aeo-assessment/backend/middleware"
	"github.com/aeo-assessment/backend/reports"
	"github.com/aeo-assessment/backend/signals"
	"github.com/aeo-assessment/backend/stats"
)

var (
	engine      *assessment.Engine
	reportStore *reports.Store
	statsStore  *stats.Storage
	visitorLog  *logging.Statistics
)

func loadEnv() {
	// Try to load .env.development first (for local development)
	if err := godotenv.Load(".env.development"); err != nil {
		// If .env.development doesn't exist, try regular .env
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
}

func setupGinMode() {
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func main() {
	loadEnv()
	setupGinMode()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	// Initialize services
	sig := signals.NewClient(
		signals.WithPageSpeedKey(os.Getenv("PAGESPEED_API_KEY")),
		signals.WithKnowledgeGraphKey(os.Getenv("GOOGLE_KNOWLEDGE_GRAPH_KEY")),
	)
	engine = assessment.NewEngine(sig)

	var err error
	reportStore, err = reports.NewStore(dataDir)
	if err != nil {
		log.Fatal("Failed to initialize report store:", err)
	}

	statsStore, err = stats.NewStorage(dataDir)
	if err != nil {
		log.Fatal("Failed to initialize statistics storage:", err)
	}

	visitorLog = logging.Initialize()

	rateLimiter := middleware.NewRateLimiter(2, 5) // 2 requests per second, bucket size of 5

	r := gin.Default()

	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.RateLimit())
	r.Use(middleware.Stats(visitorLog))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		api.POST("/assess", assessURL)
		api.GET("/reports/:id", getReport)

		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"visitors": visitorLog.GetStatistics(),
				"monthly":  statsStore.GetCurrentStats(),
			})
		})
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8082"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%s\n", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt, then drain in-flight requests and flush state.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Println("Server shutdown error:", err)
	}
	if err := statsStore.Shutdown(); err != nil {
		log.Println("Statistics flush error:", err)
	}
	if err := visitorLog.Save(); err != nil {
		log.Println("Visitor log flush error:", err)
	}
}

func assessURL(c *gin.Context) {
	log.Printf("Assessment request received from: %s\n", c.ClientIP())
	var request struct {
		URL string `json:"url" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid URL provided",
		})
		return
	}

	start := time.Now()
	report, err := engine.Analyze(c.Request.Context(), request.URL)
	elapsed := time.Since(start)

	statsStore.RecordAssessment(elapsed, err != nil)

	if err != nil {
		visitorLog.TrackAssessment(request.URL, float64(elapsed.Milliseconds()), "", true)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to assess URL: " + err.Error(),
		})
		return
	}

	visitorLog.TrackAssessment(report.URL, float64(elapsed.Milliseconds()), report.MaturityLevel, false)

	id, err := reportStore.Put(report)
	if err != nil {
		// The assessment itself succeeded; return it even if persistence failed.
		log.Println("Failed to store report:", err)
		c.JSON(http.StatusOK, gin.H{
			"report": report,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     id,
		"report": report,
	})
}

func getReport(c *gin.Context) {
	report, ok, err := reportStore.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid report id",
		})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Report not found",
		})
		return
	}

	statsStore.RecordReportServed()
	c.JSON(http.StatusOK, report)
}
