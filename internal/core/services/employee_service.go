package services

import (
	"context"
	"errors"

	"credifit-consignado/internal/adapters/persistence/models"
	"credifit-consignado/internal/adapters/persistence/repositories"
	"credifit-consignado/internal/core/domain"
	"credifit-consignado/internal/pkg/password"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EmployeeService handles employee registration and maintenance. It is
// also the employee directory the underwriting core reads from.
type EmployeeService struct {
	employeeRepo repositories.EmployeeRepository
	companyRepo  repositories.CompanyRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo repositories.EmployeeRepository, companyRepo repositories.CompanyRepository) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
	}
}

// CreateEmployeeInput for registering an employee
type CreateEmployeeInput struct {
	FullName  string
	CPF       string
	Email     string
	Password  string
	Salary    decimal.Decimal
	CompanyID string
}

// UpdateEmployeeInput for updating an employee; nil fields are unchanged
type UpdateEmployeeInput struct {
	FullName  *string
	CPF       *string
	Email     *string
	Password  *string
	Salary    *decimal.Decimal
	CompanyID *string
}

// Create registers a new employee under an existing company. CPF and
// email must be unique across employees.
func (s *EmployeeService) Create(ctx context.Context, input CreateEmployeeInput) (*models.Employee, error) {
	if _, err := s.companyRepo.GetByID(ctx, input.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}

	if taken, err := s.employeeRepo.ExistsByCPF(ctx, input.CPF); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrCPFTaken
	}

	if taken, err := s.employeeRepo.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	employee := &models.Employee{
		FullName:  input.FullName,
		CPF:       input.CPF,
		Email:     input.Email,
		Password:  hashed,
		Salary:    input.Salary,
		CompanyID: input.CompanyID,
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return s.employeeRepo.GetByID(ctx, employee.ID)
}

// GetByID gets an employee by ID with the owning company
func (s *EmployeeService) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

// GetByCPF gets an employee by CPF
func (s *EmployeeService) GetByCPF(ctx context.Context, cpf string) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

// List lists employees with pagination
func (s *EmployeeService) List(ctx context.Context, offset, limit int) ([]*models.Employee, int64, error) {
	return s.employeeRepo.List(ctx, offset, limit)
}

// ListByCompany lists employees of a company
func (s *EmployeeService) ListByCompany(ctx context.Context, companyID string) ([]*models.Employee, error) {
	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}
	return s.employeeRepo.ListByCompany(ctx, companyID)
}

// Update updates an employee's mutable fields
func (s *EmployeeService) Update(ctx context.Context, id string, input UpdateEmployeeInput) (*models.Employee, error) {
	employee, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CompanyID != nil && *input.CompanyID != employee.CompanyID {
		if _, err := s.companyRepo.GetByID(ctx, *input.CompanyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrCompanyNotFound
			}
			return nil, err
		}
		employee.CompanyID = *input.CompanyID
	}
	if input.CPF != nil && *input.CPF != employee.CPF {
		if taken, err := s.employeeRepo.ExistsByCPF(ctx, *input.CPF); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.ErrCPFTaken
		}
		employee.CPF = *input.CPF
	}
	if input.Email != nil && *input.Email != employee.Email {
		if taken, err := s.employeeRepo.ExistsByEmail(ctx, *input.Email); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.ErrEmailTaken
		}
		employee.Email = *input.Email
	}
	if input.FullName != nil {
		employee.FullName = *input.FullName
	}
	if input.Salary != nil {
		employee.Salary = *input.Salary
	}
	if input.Password != nil {
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		employee.Password = hashed
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return s.employeeRepo.GetByID(ctx, id)
}

// Delete removes an employee. Deletion is blocked while loans reference
// them, so loan and installment history stays intact.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.employeeRepo.CountLoans(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrEmployeeHasLoans
	}

	return s.employeeRepo.Delete(ctx, id)
}
