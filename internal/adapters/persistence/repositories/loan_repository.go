package repositories

import (
	"context"
	"time"

	"credifit-consignado/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// loanRepository handles loan and installment data access
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create creates a loan with no installments (rejected audit records)
func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// CreateWithInstallments creates a loan and its installment schedule in
// one transaction. A loan row without its installments is a consistency
// violation, so the write is all-or-nothing.
func (r *loanRepository) CreateWithInstallments(ctx context.Context, loan *models.Loan, installments []*models.Installment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(loan).Error; err != nil {
			return err
		}
		for _, installment := range installments {
			installment.LoanID = loan.ID
			if err := tx.Create(installment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID gets a loan by ID with employee, company and installments
func (r *loanRepository) GetByID(ctx context.Context, id string) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.Company").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("installment_number ASC")
		}).
		First(&loan, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// List lists loans with pagination, newest first
func (r *loanRepository) List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	var loans []*models.Loan
	var total int64

	r.db.WithContext(ctx).Model(&models.Loan{}).Count(&total)

	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.Company").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("installment_number ASC")
		}).
		Order("requested_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&loans).Error

	return loans, total, err
}

// MarkPaid transitions an approved loan to PAID with a payment timestamp
func (r *loanRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("id = ? AND status = ?", id, models.LoanStatusApproved).
		Updates(map[string]interface{}{
			"status":  models.LoanStatusPaid,
			"paid_at": paidAt,
		}).Error
}

// ListApprovedBefore returns approved loans requested before the cutoff
func (r *loanRepository) ListApprovedBefore(ctx context.Context, cutoff time.Time) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("status = ? AND requested_at < ?", models.LoanStatusApproved, cutoff).
		Order("requested_at ASC").
		Find(&loans).Error
	return loans, err
}
