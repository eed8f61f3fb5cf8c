package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"credifit-consignado/internal/adapters/persistence/models"
	"credifit-consignado/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LoanService underwrites consignado loan requests: margin check, score
// lookup, eligibility decision, installment generation and best-effort
// settlement.
type LoanService struct {
	employees     EmployeeDirectory
	loans         LoanStore
	scoreProvider ScoreProvider
	gateway       PaymentGateway
	now           func() time.Time
}

// NewLoanService creates a new loan service
func NewLoanService(
	employees EmployeeDirectory,
	loans LoanStore,
	scoreProvider ScoreProvider,
	gateway PaymentGateway,
) *LoanService {
	return &LoanService{
		employees:     employees,
		loans:         loans,
		scoreProvider: scoreProvider,
		gateway:       gateway,
		now:           time.Now,
	}
}

// CreateLoanInput for requesting a loan
type CreateLoanInput struct {
	EmployeeID       string
	RequestedAmount  decimal.Decimal
	InstallmentCount int
}

// Quote is an ephemeral eligibility and pricing preview; nothing about
// it is persisted.
type Quote struct {
	MaxAmount           decimal.Decimal            `json:"max_amount"`
	AvailableMargin     decimal.Decimal            `json:"available_margin"`
	Score               int                        `json:"score"`
	Eligible            bool                       `json:"eligible"`
	IneligibilityReason string                     `json:"ineligibility_reason,omitempty"`
	InstallmentOptions  []domain.InstallmentOption `json:"installment_options"`
}

// QuoteLoan computes the available margin, score and term options for an
// employee. Ineligible employees get the reason but no option amounts.
func (s *LoanService) QuoteLoan(ctx context.Context, employeeID string) (*Quote, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}

	margin := domain.AvailableMargin(employee.Salary)
	score := s.scoreProvider.FetchScore(ctx, employee.CPF)
	band := domain.ScorePolicy(employee.Salary)

	quote := &Quote{
		MaxAmount:          margin,
		AvailableMargin:    margin,
		Score:              score,
		Eligible:           score >= band.MinimumScore,
		InstallmentOptions: []domain.InstallmentOption{},
	}

	if !quote.Eligible {
		quote.IneligibilityReason = fmt.Sprintf(
			"insufficient score: required %d, actual %d", band.MinimumScore, score)
		return quote, nil
	}

	quote.InstallmentOptions = domain.QuoteOptions(margin, s.now())
	return quote, nil
}

// CreateLoan underwrites a loan request.
//
// The margin precondition is checked before any score lookup; a request
// over margin fails with nothing persisted. An insufficient score
// persists a REJECTED audit record and returns a RejectionError carrying
// its id. An approved loan and its installment schedule are written
// atomically, then settlement is attempted once, best-effort: only a
// confirmed success moves the loan to PAID, any failure leaves it
// APPROVED and never fails the creation.
func (s *LoanService) CreateLoan(ctx context.Context, input CreateLoanInput) (*models.Loan, error) {
	if !domain.ValidInstallmentCount(input.InstallmentCount) {
		return nil, domain.ErrInvalidInstallmentCount
	}

	employee, err := s.employees.GetByID(ctx, input.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}

	margin := domain.AvailableMargin(employee.Salary)
	if input.RequestedAmount.GreaterThan(margin) {
		return nil, fmt.Errorf("%w: requested %s, available margin %s",
			domain.ErrAmountExceedsMargin,
			input.RequestedAmount.StringFixed(2),
			margin.StringFixed(2))
	}

	score := s.scoreProvider.FetchScore(ctx, employee.CPF)
	band := domain.ScorePolicy(employee.Salary)

	if score < band.MinimumScore {
		return nil, s.persistRejection(ctx, input, score, band.MinimumScore)
	}

	loan := &models.Loan{
		RequestedAmount:  input.RequestedAmount,
		ApprovedAmount:   decimal.NewNullDecimal(input.RequestedAmount),
		InstallmentCount: input.InstallmentCount,
		Status:           models.LoanStatusApproved,
		QueriedScore:     &score,
		EmployeeID:       input.EmployeeID,
	}

	schedule := domain.GenerateSchedule(input.RequestedAmount, input.InstallmentCount, s.now())
	installments := make([]*models.Installment, 0, len(schedule))
	for _, spec := range schedule {
		installments = append(installments, &models.Installment{
			Number:  spec.Number,
			Amount:  spec.Amount,
			DueDate: spec.DueDate,
			Status:  models.InstallmentStatusPending,
		})
	}

	if err := s.loans.CreateWithInstallments(ctx, loan, installments); err != nil {
		return nil, err
	}

	s.attemptSettlement(ctx, loan)

	return s.loans.GetByID(ctx, loan.ID)
}

// persistRejection writes the REJECTED audit record and builds the
// rejection error around its id. The record is durable even though the
// operation fails: rejected attempts stay queryable.
func (s *LoanService) persistRejection(ctx context.Context, input CreateLoanInput, score, requiredScore int) error {
	rejected := &models.Loan{
		RequestedAmount:  input.RequestedAmount,
		InstallmentCount: input.InstallmentCount,
		Status:           models.LoanStatusRejected,
		QueriedScore:     &score,
		EmployeeID:       input.EmployeeID,
	}

	if err := s.loans.Create(ctx, rejected); err != nil {
		return err
	}

	return &domain.RejectionError{
		LoanID:        rejected.ID,
		RequiredScore: requiredScore,
		ActualScore:   score,
	}
}

// attemptSettlement tries to disburse the loan exactly once. The loan
// has already been created; a gateway failure or decline is logged and
// the loan stays APPROVED for a later reconciliation pass.
func (s *LoanService) attemptSettlement(ctx context.Context, loan *models.Loan) {
	result, err := s.gateway.Settle(ctx, SettlementRequest{
		Amount:     loan.RequestedAmount,
		EmployeeID: loan.EmployeeID,
		LoanID:     loan.ID,
	})
	if err != nil {
		log.Printf("❌ Settlement attempt failed for loan %s: %v", loan.ID, err)
		return
	}

	if !result.Success {
		log.Printf("⚠️ Settlement not confirmed for loan %s: %s (%s)", loan.ID, result.Status, result.Message)
		return
	}

	paidAt := s.now()
	if err := s.loans.MarkPaid(ctx, loan.ID, paidAt); err != nil {
		log.Printf("❌ Failed to mark loan %s as paid: %v", loan.ID, err)
		return
	}

	loan.Status = models.LoanStatusPaid
	loan.PaidAt = &paidAt
	log.Printf("✅ Loan %s settled and marked as paid", loan.ID)
}

// GetLoan fetches a loan with its employee summary and installments
func (s *LoanService) GetLoan(ctx context.Context, id string) (*models.Loan, error) {
	loan, err := s.loans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// ListLoans lists loans with pagination, newest first
func (s *LoanService) ListLoans(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	return s.loans.List(ctx, offset, limit)
}
