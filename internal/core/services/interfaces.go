package services

import (
	"context"
	"time"

	"credifit-consignado/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
)

// EmployeeDirectory is the read-only view of the employee registry the
// underwriting core depends on. Satisfied by the employee repository.
type EmployeeDirectory interface {
	GetByID(ctx context.Context, id string) (*models.Employee, error)
}

// LoanStore is the loan persistence the underwriting core and the
// settlement reconciler depend on. Satisfied by the loan repository.
type LoanStore interface {
	Create(ctx context.Context, loan *models.Loan) error
	CreateWithInstallments(ctx context.Context, loan *models.Loan, installments []*models.Installment) error
	GetByID(ctx context.Context, id string) (*models.Loan, error)
	List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error
	ListApprovedBefore(ctx context.Context, cutoff time.Time) ([]*models.Loan, error)
}

// ScoreProvider fetches a credit score for a CPF. Implementations never
// return an error: on any failure they degrade to a conservative default
// score that is below every policy threshold, so a provider outage biases
// toward rejecting new credit, not approving it blindly.
type ScoreProvider interface {
	FetchScore(ctx context.Context, cpf string) int
}

// SettlementRequest is the disbursement order sent to the payment gateway
type SettlementRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	EmployeeID string          `json:"employee_id"`
	LoanID     string          `json:"loan_id"`
}

// Settlement statuses reported by the payment gateway
const (
	SettlementApproved       = "approved"
	SettlementRejected       = "rejected"
	SettlementTemporaryError = "temporary_error"
	SettlementError          = "error"
)

// SettlementResult is the gateway's answer to a settlement attempt
type SettlementResult struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// PaymentGateway disburses approved loan funds. The outcome is external
// and non-deterministic; a returned error means the gateway could not be
// reached at all.
type PaymentGateway interface {
	Settle(ctx context.Context, req SettlementRequest) (*SettlementResult, error)
}

// ScoreCache caches scores per CPF so repeated quotes within a session
// see the same score. Implementations must tolerate being bypassed:
// cache failures are ignored by callers.
type ScoreCache interface {
	Get(ctx context.Context, cpf string) (int, bool)
	Set(ctx context.Context, cpf string, score int)
}
