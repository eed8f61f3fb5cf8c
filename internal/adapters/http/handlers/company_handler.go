package handlers

import (
	"errors"
	"regexp"

	"credifit-consignado/internal/core/domain"
	"credifit-consignado/internal/core/services"
	"credifit-consignado/internal/pkg/pagination"
	"credifit-consignado/internal/pkg/password"
	"credifit-consignado/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

var (
	cnpjPattern = regexp.MustCompile(`^\d{14}$`)
	cpfPattern  = regexp.MustCompile(`^\d{11}$`)
)

// CompanyHandler handles company endpoints
type CompanyHandler struct {
	companyService *services.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// CreateCompanyRequest represents a company registration request
type CreateCompanyRequest struct {
	CNPJ               string `json:"cnpj"`
	LegalName          string `json:"legal_name"`
	RepresentativeName string `json:"representative_name"`
	CPF                string `json:"cpf"`
	Email              string `json:"email"`
	Password           string `json:"password"`
}

// Create registers a new partner company
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var req CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if !cnpjPattern.MatchString(req.CNPJ) {
		return response.BadRequest(c, "CNPJ must have exactly 14 digits")
	}
	if req.LegalName == "" {
		return response.BadRequest(c, "Legal name is required")
	}
	if req.RepresentativeName == "" {
		return response.BadRequest(c, "Representative name is required")
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

	company, err := h.companyService.Create(c.Context(), services.CreateCompanyInput{
		CNPJ:               req.CNPJ,
		LegalName:          req.LegalName,
		RepresentativeName: req.RepresentativeName,
		CPF:                req.CPF,
		Email:              req.Email,
		Password:           req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCNPJTaken),
			errors.Is(err, domain.ErrCPFTaken),
			errors.Is(err, domain.ErrEmailTaken):
			return response.Conflict(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to create company")
		}
	}

	return response.Created(c, "Company created successfully", fiber.Map{
		"company": company,
	})
}

// Get fetches a company by ID
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	company, err := h.companyService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return response.NotFound(c, "Company not found")
		}
		return response.InternalServerError(c, "Failed to fetch company")
	}

	return response.Success(c, "Company fetched successfully", fiber.Map{
		"company": company,
	})
}

// List lists companies
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	companies, total, err := h.companyService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list companies")
	}

	return c.JSON(pagination.NewResponse(companies, params, total))
}

// UpdateCompanyRequest represents a company update request
type UpdateCompanyRequest struct {
	LegalName          *string `json:"legal_name"`
	RepresentativeName *string `json:"representative_name"`
	Email              *string `json:"email"`
	Password           *string `json:"password"`
}

// Update updates a company
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Password != nil && !password.ValidatePassword(*req.Password) {
		return response.BadRequest(c, "Password must have at least 6 characters")
	}

	company, err := h.companyService.Update(c.Context(), id, services.UpdateCompanyInput{
		LegalName:          req.LegalName,
		RepresentativeName: req.RepresentativeName,
		Email:              req.Email,
		Password:           req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCompanyNotFound):
			return response.NotFound(c, "Company not found")
		case errors.Is(err, domain.ErrEmailTaken):
			return response.Conflict(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update company")
		}
	}

	return response.Success(c, "Company updated successfully", fiber.Map{
		"company": company,
	})
}

// Delete removes a company without registered employees
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.companyService.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrCompanyNotFound):
			return response.NotFound(c, "Company not found")
		case errors.Is(err, domain.ErrCompanyHasEmployees):
			return response.Conflict(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to delete company")
		}
	}

	return response.Success(c, "Company deleted successfully", nil)
}
