package services

import (
	"context"
	"errors"

	"credifit-consignado/internal/adapters/persistence/models"
	"credifit-consignado/internal/adapters/persistence/repositories"
	"credifit-consignado/internal/core/domain"
	"credifit-consignado/internal/pkg/password"

	"gorm.io/gorm"
)

// CompanyService handles partner company registration and maintenance
type CompanyService struct {
	companyRepo repositories.CompanyRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repositories.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// CreateCompanyInput for registering a company
type CreateCompanyInput struct {
	CNPJ               string
	LegalName          string
	RepresentativeName string
	CPF                string
	Email              string
	Password           string
}

// UpdateCompanyInput for updating a company; nil fields are unchanged
type UpdateCompanyInput struct {
	LegalName          *string
	RepresentativeName *string
	Email              *string
	Password           *string
}

// Create registers a new partner company. CNPJ, representative CPF and
// email must all be unique across companies.
func (s *CompanyService) Create(ctx context.Context, input CreateCompanyInput) (*models.Company, error) {
	if taken, err := s.companyRepo.ExistsByCNPJ(ctx, input.CNPJ); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrCNPJTaken
	}

	if taken, err := s.companyRepo.ExistsByCPF(ctx, input.CPF); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrCPFTaken
	}

	if taken, err := s.companyRepo.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	company := &models.Company{
		CNPJ:               input.CNPJ,
		LegalName:          input.LegalName,
		RepresentativeName: input.RepresentativeName,
		CPF:                input.CPF,
		Email:              input.Email,
		Password:           hashed,
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetByID gets a company by ID
func (s *CompanyService) GetByID(ctx context.Context, id string) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

// List lists companies with pagination
func (s *CompanyService) List(ctx context.Context, offset, limit int) ([]*models.Company, int64, error) {
	return s.companyRepo.List(ctx, offset, limit)
}

// Update updates a company's mutable fields
func (s *CompanyService) Update(ctx context.Context, id string, input UpdateCompanyInput) (*models.Company, error) {
	company, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != company.Email {
		if taken, err := s.companyRepo.ExistsByEmail(ctx, *input.Email); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.ErrEmailTaken
		}
		company.Email = *input.Email
	}
	if input.LegalName != nil {
		company.LegalName = *input.LegalName
	}
	if input.RepresentativeName != nil {
		company.RepresentativeName = *input.RepresentativeName
	}
	if input.Password != nil {
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		company.Password = hashed
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete removes a company. Deletion is blocked while employees still
// reference it, which transitively protects loans and installments.
func (s *CompanyService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.companyRepo.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCompanyHasEmployees
	}

	return s.companyRepo.Delete(ctx, id)
}
