package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"credifit-consignado/internal/adapters/http/middleware"
	"credifit-consignado/internal/adapters/http/routes"
	"credifit-consignado/internal/adapters/persistence/models"
	"credifit-consignado/internal/adapters/persistence/repositories"
	"credifit-consignado/internal/config"
	"credifit-consignado/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed demo directory data in dev mode
	if cfg.IsDev() {
		if err := config.SeedDemoData(db); err != nil {
			log.Printf("⚠️ Warning: Failed to seed demo data: %v", err)
		}
	}

	// Start the settlement reconciler for loans stuck in APPROVED
	if cfg.Reconcile.Enabled {
		var gateway services.PaymentGateway
		if cfg.External.SimulatePayments {
			gateway = services.NewSimulatedPaymentGateway()
		} else {
			gateway = services.NewPaymentService(cfg.External.PaymentAPIURL)
		}

		reconciler := services.NewReconcileService(
			repositories.NewLoanRepository(db),
			gateway,
			time.Duration(cfg.Reconcile.GraceMins)*time.Minute,
		)
		if err := reconciler.Start(cfg.Reconcile.CronSpec); err != nil {
			log.Fatalf("❌ Failed to start settlement reconciler: %v", err)
		}
		defer reconciler.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Credifit Consignado API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
