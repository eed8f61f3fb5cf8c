package routes

import (
	"time"

	"credifit-consignado/internal/adapters/http/handlers"
	"credifit-consignado/internal/adapters/http/middleware"
	"credifit-consignado/internal/adapters/persistence/repositories"
	"credifit-consignado/internal/config"
	"credifit-consignado/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	companyRepo := repositories.NewCompanyRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	loanRepo := repositories.NewLoanRepository(db)

	// External collaborators
	var scoreCache services.ScoreCache
	if cfg.Redis.Addr != "" {
		scoreCache = services.NewRedisScoreCache(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			time.Duration(cfg.Redis.ScoreTTLMins)*time.Minute,
		)
	}
	scoreProvider := services.NewScoreService(cfg.External.ScoreAPIURL, scoreCache)

	var gateway services.PaymentGateway
	if cfg.External.SimulatePayments {
		gateway = services.NewSimulatedPaymentGateway()
	} else {
		gateway = services.NewPaymentService(cfg.External.PaymentAPIURL)
	}

	// Initialize services
	companyService := services.NewCompanyService(companyRepo)
	employeeService := services.NewEmployeeService(employeeRepo, companyRepo)
	loanService := services.NewLoanService(employeeRepo, loanRepo, scoreProvider, gateway)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	companyHandler := handlers.NewCompanyHandler(companyService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	loanHandler := handlers.NewLoanHandler(loanService)

	// Public endpoints
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api/v1")

	// Companies
	companies := api.Group("/companies")
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.Get)
	companies.Get("/:id/employees", employeeHandler.ListByCompany)
	companies.Patch("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	// Employees
	employees := api.Group("/employees")
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/cpf/:cpf", employeeHandler.GetByCPF)
	employees.Get("/:id", employeeHandler.Get)
	employees.Patch("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)

	// Loans (origination endpoints get a tighter rate budget)
	loans := api.Group("/loans")
	loans.Post("/quote", middleware.OriginationRateLimiter(), loanHandler.Quote)
	loans.Post("/", middleware.OriginationRateLimiter(), loanHandler.Create)
	loans.Get("/", loanHandler.List)
	loans.Get("/:id", loanHandler.Get)
}
