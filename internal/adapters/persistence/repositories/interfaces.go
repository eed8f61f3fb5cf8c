package repositories

import (
	"context"
	"time"

	"credifit-consignado/internal/adapters/persistence/models"
)

// CompanyRepository defines company repository interface
type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id string) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*models.Company, int64, error)
	ExistsByCNPJ(ctx context.Context, cnpj string) (bool, error)
	ExistsByCPF(ctx context.Context, cpf string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountEmployees(ctx context.Context, companyID string) (int64, error)
}

// EmployeeRepository defines employee repository interface.
// The underwriting core consumes it as a read-only employee directory.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	GetByCPF(ctx context.Context, cpf string) (*models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*models.Employee, int64, error)
	ListByCompany(ctx context.Context, companyID string) ([]*models.Employee, error)
	ExistsByCPF(ctx context.Context, cpf string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountLoans(ctx context.Context, employeeID string) (int64, error)
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	// Create persists a loan with no installments (rejected audit records).
	Create(ctx context.Context, loan *models.Loan) error
	// CreateWithInstallments persists a loan and its schedule atomically.
	CreateWithInstallments(ctx context.Context, loan *models.Loan, installments []*models.Installment) error
	GetByID(ctx context.Context, id string) (*models.Loan, error)
	List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error
	// ListApprovedBefore returns approved, unsettled loans requested
	// before the cutoff, for settlement reconciliation.
	ListApprovedBefore(ctx context.Context, cutoff time.Time) ([]*models.Loan, error)
}
