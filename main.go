package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-alt/invoice-generator-go/config"
	"github.com/dev-alt/invoice-generator-go/draft"
	"github.com/dev-alt/invoice-generator-go/gateway"
	"github.com/dev-alt/invoice-generator-go/handler"
	"github.com/dev-alt/invoice-generator-go/middleware"
	"github.com/dev-alt/invoice-generator-go/pkg/logger"
	"github.com/dev-alt/invoice-generator-go/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded", "backend", cfg.Backend.BaseURL)

	// Session store: the only durable client-side state
	sessionStore := session.NewStore(cfg.Session.FilePath)

	// Gateway: the single choke point for backend calls
	client := gateway.NewClient(cfg.Backend.BaseURL, sessionStore,
		gateway.WithTimeout(time.Duration(cfg.Backend.TimeoutSeconds)*time.Second),
		gateway.WithUnauthorizedHook(func() {
			slog.Warn("session invalidated by backend, next navigation redirects to login")
		}),
	)

	// Draft editor: owns the invoice being composed
	editor := draft.NewEditor()
	editor.Subscribe(func(snap draft.Snapshot) {
		slog.Debug("draft snapshot published",
			"state", snap.State.String(),
			"items", len(snap.Invoice.Items),
			"total", snap.Invoice.TotalAmount,
		)
	})

	// Initialize handlers
	authHandler := handler.NewAuthHandler(client, sessionStore)
	draftHandler := handler.NewDraftHandler(editor, client)
	invoiceHandler := handler.NewInvoiceHandler(client)
	templateHandler := handler.NewTemplateHandler(client)
	currencyHandler := handler.NewCurrencyHandler()

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(corsMiddleware())                       // CORS
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute
	router.Use(middleware.Guard(sessionStore))         // Navigation route guard

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/me", authHandler.Me)

		api.GET("/currencies", currencyHandler.List)

		api.GET("/draft", draftHandler.Get)
		api.PUT("/draft/fields", draftHandler.SetField)
		api.PUT("/draft/tax-rate", draftHandler.SetTaxRate)
		api.POST("/draft/items", draftHandler.AddItem)
		api.PATCH("/draft/items/:id", draftHandler.UpdateItem)
		api.DELETE("/draft/items/:id", draftHandler.RemoveItem)
		api.PUT("/draft/currency", draftHandler.SetCurrency)
		api.PUT("/draft/template", draftHandler.SetTemplate)
		api.POST("/draft/submit", draftHandler.Submit)

		api.GET("/invoices", invoiceHandler.List)
		api.GET("/invoices/:id", invoiceHandler.Get)
		api.PUT("/invoices/:id", invoiceHandler.Update)
		api.DELETE("/invoices/:id", invoiceHandler.Delete)
		api.POST("/invoices/:id/generate-pdf", invoiceHandler.GeneratePDF)
		api.GET("/invoices/:id/download-pdf", invoiceHandler.DownloadPDF)
		api.GET("/invoices/:id/preview-pdf", invoiceHandler.PreviewPDF)

		api.GET("/templates", templateHandler.List)
		api.POST("/templates", templateHandler.Upload)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
