package handlers

import (
	"errors"

	"credifit-consignado/internal/adapters/persistence/models"
	"credifit-consignado/internal/core/domain"
	"credifit-consignado/internal/core/services"
	"credifit-consignado/internal/pkg/pagination"
	"credifit-consignado/internal/pkg/password"
	"credifit-consignado/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// CreateEmployeeRequest represents an employee registration request
type CreateEmployeeRequest struct {
	FullName  string          `json:"full_name"`
	CPF       string          `json:"cpf"`
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	Salary    decimal.Decimal `json:"salary"`
	CompanyID string          `json:"company_id"`
}

// Create registers a new employee
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.FullName == "" {
		return response.BadRequest(c, "Full name is required")
	}
	if !cpfPattern.MatchString(req.CPF) {
		return response.BadRequest(c, "CPF must have exactly 11 digits")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if !password.ValidatePassword(req.Password) {
		return response.BadRequest(c, "Password must have at least 6 characters")
	}
	if !req.Salary.IsPositive() {
		return response.BadRequest(c, "Salary must be greater than 0")
	}
	if req.CompanyID == "" {
		return response.BadRequest(c, "Company ID is required")
	}

	employee, err := h.employeeService.Create(c.Context(), services.CreateEmployeeInput{
		FullName:  req.FullName,
		CPF:       req.CPF,
		Email:     req.Email,
		Password:  req.Password,
		Salary:    req.Salary,
		CompanyID: req.CompanyID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCompanyNotFound):
			return response.NotFound(c, "Company not found")
		case errors.Is(err, domain.ErrCPFTaken), errors.Is(err, domain.ErrEmailTaken):
			return response.Conflict(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to create employee")
		}
	}

	return response.Created(c, "Employee created successfully", fiber.Map{
		"employee": employee.ToSummary(),
	})
}

// Get fetches an employee by ID
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	employee, err := h.employeeService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to fetch employee")
	}

	return response.Success(c, "Employee fetched successfully", fiber.Map{
		"employee": employee.ToSummary(),
	})
}

// GetByCPF fetches an employee by CPF
func (h *EmployeeHandler) GetByCPF(c *fiber.Ctx) error {
	cpf := c.Params("cpf")
	if !cpfPattern.MatchString(cpf) {
		return response.BadRequest(c, "CPF must have exactly 11 digits")
	}

	employee, err := h.employeeService.GetByCPF(c.Context(), cpf)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to fetch employee")
	}

	return response.Success(c, "Employee fetched successfully", fiber.Map{
		"employee": employee.ToSummary(),
	})
}

// List lists employees
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	employees, total, err := h.employeeService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list employees")
	}

	summaries := make([]*models.EmployeeSummary, 0, len(employees))
	for _, employee := range employees {
		summaries = append(summaries, employee.ToSummary())
	}

	return c.JSON(pagination.NewResponse(summaries, params, total))
}

// ListByCompany lists employees of a company
func (h *EmployeeHandler) ListByCompany(c *fiber.Ctx) error {
	companyID := c.Params("id")

	employees, err := h.employeeService.ListByCompany(c.Context(), companyID)
	if err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return response.NotFound(c, "Company not found")
		}
		return response.InternalServerError(c, "Failed to list employees")
	}

	summaries := make([]*models.EmployeeSummary, 0, len(employees))
	for _, employee := range employees {
		summaries = append(summaries, employee.ToSummary())
	}

	return response.Success(c, "Employees fetched successfully", fiber.Map{
		"employees": summaries,
	})
}

// UpdateEmployeeRequest represents an employee update request
type UpdateEmployeeRequest struct {
	FullName  *string          `json:"full_name"`
	CPF       *string          `json:"cpf"`
	Email     *string          `json:"email"`
	Password  *string          `json:"password"`
	Salary    *decimal.Decimal `json:"salary"`
	CompanyID *string          `json:"company_id"`
}

// Update updates an employee
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.CPF != nil && !cpfPattern.MatchString(*req.CPF) {
		return response.BadRequest(c, "CPF must have exactly 11 digits")
	}
	if req.Password != nil && !password.ValidatePassword(*req.Password) {
		return response.BadRequest(c, "Password must have at least 6 characters")
	}
	if req.Salary != nil && !req.Salary.IsPositive() {
		return response.BadRequest(c, "Salary must be greater than 0")
	}

	employee, err := h.employeeService.Update(c.Context(), id, services.UpdateEmployeeInput{
		FullName:  req.FullName,
		CPF:       req.CPF,
		Email:     req.Email,
		Password:  req.Password,
		Salary:    req.Salary,
		CompanyID: req.CompanyID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		case errors.Is(err, domain.ErrCompanyNotFound):
			return response.NotFound(c, "Company not found")
		case errors.Is(err, domain.ErrCPFTaken), errors.Is(err, domain.ErrEmailTaken):
			return response.Conflict(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update employee")
		}
	}

	return response.Success(c, "Employee updated successfully", fiber.Map{
		"employee": employee.ToSummary(),
	})
}

// Delete removes an employee without loans on record
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.employeeService.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		case errors.Is(err, domain.ErrEmployeeHasLoans):
			return response.Conflict(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to delete employee")
		}
	}

	return response.Success(c, "Employee deleted successfully", nil)
}
