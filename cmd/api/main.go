package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartgrid/internal/api/handlers"
	"smartgrid/internal/api/middleware"
	"smartgrid/internal/grid"
	"smartgrid/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	st, closeStore := openStore()
	defer closeStore()

	service := grid.NewService(st)
	router := setupRouter(service)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown: %v", err)
	}
	log.Println("Server exiting")
}

// openStore connects to Postgres when GRID_DSN is set. Without a DSN, or when
// the connection fails, the API runs on the in-memory store so the simulator
// can still be exercised locally.
func openStore() (store.Store, func()) {
	dsn := os.Getenv("GRID_DSN")
	if dsn == "" {
		log.Printf("GRID_DSN not set, using in-memory store")
		return store.NewMemory(), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := store.OpenPostgres(ctx, dsn)
	if err != nil {
		log.Printf("Database initialization failed, continuing with in-memory store: %v", err)
		return store.NewMemory(), func() {}
	}
	log.Printf("Database initialized successfully")
	return pg, func() {
		if err := pg.Close(); err != nil {
			log.Printf("Closing database: %v", err)
		}
	}
}

func setupRouter(service *grid.Service) *gin.Engine {
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	sensorHandler := handlers.NewSensorDataHandler(service)
	controlHandler := handlers.NewControlHandler(service)
	statusHandler := handlers.NewGridStatusHandler(service)

	api := router.Group("/api")
	{
		api.POST("/sensordata", sensorHandler.PostSensorData)
		api.POST("/control/optimize", controlHandler.PostOptimizationActions)
		api.GET("/gridstatus", statusHandler.GetGridStatus)
	}

	return router
}
