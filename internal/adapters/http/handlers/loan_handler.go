package handlers

import (
	"errors"

	"credifit-consignado/internal/adapters/persistence/models"
	"credifit-consignado/internal/core/domain"
	"credifit-consignado/internal/core/services"
	"credifit-consignado/internal/pkg/pagination"
	"credifit-consignado/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
	}
}

// QuoteRequest represents a loan quote request
type QuoteRequest struct {
	EmployeeID string `json:"employee_id"`
}

// Quote computes margin, score and term options for an employee
func (h *LoanHandler) Quote(c *fiber.Ctx) error {
	var req QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.EmployeeID == "" {
		return response.BadRequest(c, "Employee ID is required")
	}

	quote, err := h.loanService.QuoteLoan(c.Context(), req.EmployeeID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to compute quote")
	}

	return response.Success(c, "Quote computed successfully", quote)
}

// CreateLoanRequest represents a loan creation request
type CreateLoanRequest struct {
	EmployeeID       string          `json:"employee_id"`
	RequestedAmount  decimal.Decimal `json:"requested_amount"`
	InstallmentCount int             `json:"installment_count"`
}

// Create requests a new consignado loan
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var req CreateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.EmployeeID == "" {
		return response.BadRequest(c, "Employee ID is required")
	}
	if !req.RequestedAmount.IsPositive() {
		return response.BadRequest(c, "Requested amount must be greater than 0")
	}
	if !domain.ValidInstallmentCount(req.InstallmentCount) {
		return response.BadRequest(c, "Installment count must be between 1 and 4")
	}

	loan, err := h.loanService.CreateLoan(c.Context(), services.CreateLoanInput{
		EmployeeID:       req.EmployeeID,
		RequestedAmount:  req.RequestedAmount,
		InstallmentCount: req.InstallmentCount,
	})
	if err != nil {
		var rejection *domain.RejectionError
		switch {
		case errors.Is(err, domain.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		case errors.As(err, &rejection):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success":          false,
				"error":            rejection.Error(),
				"rejected_loan_id": rejection.LoanID,
			})
		case errors.Is(err, domain.ErrAmountExceedsMargin),
			errors.Is(err, domain.ErrInvalidInstallmentCount):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to create loan")
		}
	}

	return response.Created(c, "Loan created successfully", fiber.Map{
		"loan": loan.ToResponse(),
	})
}

// Get fetches a loan by ID with employee summary and installments
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	loan, err := h.loanService.GetLoan(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to fetch loan")
	}

	return response.Success(c, "Loan fetched successfully", fiber.Map{
		"loan": loan.ToResponse(),
	})
}

// List lists loans, newest first
func (h *LoanHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	loans, total, err := h.loanService.ListLoans(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	responses := make([]*models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		responses = append(responses, loan.ToResponse())
	}

	return c.JSON(pagination.NewResponse(responses, params, total))
}
