package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"credifit-consignado/internal/adapters/persistence/models"
	"credifit-consignado/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ============================================================
// Test doubles
// ============================================================

type mockDirectory struct {
	employees map[string]*models.Employee
}

func (m *mockDirectory) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	employee, ok := m.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return employee, nil
}

type mockLoanStore struct {
	created      []*models.Loan
	installments map[string][]*models.Installment
	paid         map[string]time.Time
	failCreate   bool
}

func newMockLoanStore() *mockLoanStore {
	return &mockLoanStore{
		installments: make(map[string][]*models.Installment),
		paid:         make(map[string]time.Time),
	}
}

func (m *mockLoanStore) Create(ctx context.Context, loan *models.Loan) error {
	if m.failCreate {
		return errors.New("insert failed")
	}
	loan.ID = "loan-" + string(rune('a'+len(m.created)))
	m.created = append(m.created, loan)
	return nil
}

func (m *mockLoanStore) CreateWithInstallments(ctx context.Context, loan *models.Loan, installments []*models.Installment) error {
	if m.failCreate {
		return errors.New("insert failed")
	}
	loan.ID = "loan-" + string(rune('a'+len(m.created)))
	m.created = append(m.created, loan)
	m.installments[loan.ID] = installments
	return nil
}

func (m *mockLoanStore) GetByID(ctx context.Context, id string) (*models.Loan, error) {
	for _, loan := range m.created {
		if loan.ID == id {
			result := *loan
			for _, installment := range m.installments[id] {
				result.Installments = append(result.Installments, *installment)
			}
			if paidAt, ok := m.paid[id]; ok {
				result.Status = models.LoanStatusPaid
				result.PaidAt = &paidAt
			}
			return &result, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLoanStore) List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	return m.created, int64(len(m.created)), nil
}

func (m *mockLoanStore) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	m.paid[id] = paidAt
	return nil
}

func (m *mockLoanStore) ListApprovedBefore(ctx context.Context, cutoff time.Time) ([]*models.Loan, error) {
	var result []*models.Loan
	for _, loan := range m.created {
		if _, settled := m.paid[loan.ID]; settled {
			continue
		}
		if loan.Status == models.LoanStatusApproved && loan.RequestedAt.Before(cutoff) {
			result = append(result, loan)
		}
	}
	return result, nil
}

type stubScoreProvider struct {
	score  int
	called bool
}

func (s *stubScoreProvider) FetchScore(ctx context.Context, cpf string) int {
	s.called = true
	return s.score
}

type stubGateway struct {
	result *SettlementResult
	err    error
	calls  int
}

func (s *stubGateway) Settle(ctx context.Context, req SettlementRequest) (*SettlementResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func approvingGateway() *stubGateway {
	return &stubGateway{result: &SettlementResult{Success: true, Status: SettlementApproved}}
}

func decliningGateway() *stubGateway {
	return &stubGateway{result: &SettlementResult{Success: false, Status: SettlementRejected, Message: "payment rejected by gateway"}}
}

func testEmployee(salary int64) *models.Employee {
	return &models.Employee{
		ID:     "emp-1",
		CPF:    "98765432100",
		Salary: decimal.NewFromInt(salary),
	}
}

func newTestService(employee *models.Employee, store *mockLoanStore, scores *stubScoreProvider, gateway PaymentGateway) *LoanService {
	directory := &mockDirectory{employees: map[string]*models.Employee{}}
	if employee != nil {
		directory.employees[employee.ID] = employee
	}
	service := NewLoanService(directory, store, scores, gateway)
	service.now = func() time.Time {
		return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	}
	return service
}

// ============================================================
// CreateLoan
// ============================================================

func TestCreateLoan_ApprovedAndPaid(t *testing.T) {
	store := newMockLoanStore()
	scores := &stubScoreProvider{score: 650}
	gateway := approvingGateway()
	service := newTestService(testEmployee(5000), store, scores, gateway)

	loan, err := service.CreateLoan(context.Background(), CreateLoanInput{
		EmployeeID:       "emp-1",
		RequestedAmount:  decimal.NewFromInt(1000),
		InstallmentCount: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusPaid, loan.Status)
	assert.NotNil(t, loan.PaidAt)
	require.True(t, loan.ApprovedAmount.Valid)
	assert.Equal(t, "1000.00", loan.ApprovedAmount.Decimal.StringFixed(2))
	require.NotNil(t, loan.QueriedScore)
	assert.Equal(t, 650, *loan.QueriedScore)

	require.Len(t, loan.Installments, 2)
	for i, installment := range loan.Installments {
		assert.Equal(t, i+1, installment.Number)
		assert.Equal(t, "500.00", installment.Amount.StringFixed(2))
		assert.Equal(t, models.InstallmentStatusPending, installment.Status)
	}
	assert.Equal(t, 1, gateway.calls)
}

func TestCreateLoan_GatewayDecline_LeavesApproved(t *testing.T) {
	store := newMockLoanStore()
	service := newTestService(testEmployee(5000), store, &stubScoreProvider{score: 650}, decliningGateway())

	loan, err := service.CreateLoan(context.Background(), CreateLoanInput{
		EmployeeID:       "emp-1",
		RequestedAmount:  decimal.NewFromInt(1000),
		InstallmentCount: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusApproved, loan.Status)
	assert.Nil(t, loan.PaidAt)
	assert.Empty(t, store.paid)
}

func TestCreateLoan_GatewayError_LeavesApproved(t *testing.T) {
	store := newMockLoanStore()
	gateway := &stubGateway{err: errors.New("connection reset")}
	service := newTestService(testEmployee(5000), store, &stubScoreProvider{score: 650}, gateway)

	loan, err := service.CreateLoan(context.Background(), CreateLoanInput{
		EmployeeID:       "emp-1",
		RequestedAmount:  decimal.NewFromInt(1000),
		InstallmentCount: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusApproved, loan.Status)
	assert.Equal(t, 1, gateway.calls)
}

func TestCreateLoan_InsufficientScore_PersistsRejection(t *testing.T) {
	store := newMockLoanStore()
	gateway := approvingGateway()
	service := newTestService(testEmployee(5000), store, &stubScoreProvider{score: 400}, gateway)

	_, err := service.CreateLoan(context.Background(), CreateLoanInput{
		EmployeeID:       "emp-1",
		RequestedAmount:  decimal.NewFromInt(1000),
		InstallmentCount: 2,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrScoreInsufficient)

	var rejection *domain.RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, 600, rejection.RequiredScore)
	assert.Equal(t, 400, rejection.ActualScore)
	assert.NotEmpty(t, rejection.LoanID)

	// the rejected attempt is durable
	require.Len(t, store.created, 1)
	audit := store.created[0]
	assert.Equal(t, models.LoanStatusRejected, audit.Status)
	assert.False(t, audit.ApprovedAmount.Valid)
	require.NotNil(t, audit.QueriedScore)
	assert.Equal(t, 400, *audit.QueriedScore)
	assert.Empty(t, store.installments)
	assert.Equal(t, 0, gateway.calls)
}

func TestCreateLoan_OverMargin_FailsBeforeScoreLookup(t *testing.T) {
	store := newMockLoanStore()
	scores := &stubScoreProvider{score: 900}
	service := newTestService(testEmployee(5000), store, scores, approvingGateway())

	_, err := service.CreateLoan(context.Background(), CreateLoanInput{
		EmployeeID:       "emp-1",
		RequestedAmount:  decimal.NewFromInt(3000), // margin is 1750
		InstallmentCount: 2,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAmountExceedsMargin)
	assert.Contains(t, err.Error(), "3000.00")
	assert.Contains(t, err.Error(), "1750.00")
	assert.False(t, scores.called, "score provider must not be consulted for over-margin requests")
	assert.Empty(t, store.created)
}

func TestCreateLoan_AmountEqualToMargin_Accepted(t *testing.T) {
	store := newMockLoanStore()
	service := newTestService(testEmployee(5000), store, &stubScoreProvider{score: 650}, approvingGateway())

	loan, err := service.CreateLoan(context.Background(), CreateLoanInput{
		EmployeeID:       "emp-1",
		RequestedAmount:  decimal.RequireFromString("1750.00"),
		InstallmentCount: 4,
	})

	require.NoError(t, err)
	require.Len(t, loan.Installments, 4)
	assert.Equal(t, "437.50", loan.Installments[0].Amount.StringFixed(2))
}

func TestCreateLoan_InvalidInstallmentCount(t *testing.T) {
	store := newMockLoanStore()
	service := newTestService(testEmployee(5000), store, &stubScoreProvider{score: 650}, approvingGateway())

	for _, count := range []int{0, 5, -1} {
		_, err := service.CreateLoan(context.Background(), CreateLoanInput{
			EmployeeID:       "emp-1",
			RequestedAmount:  decimal.NewFromInt(100),
			InstallmentCount: count,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInstallmentCount, "count %d", count)
	}
	assert.Empty(t, store.created)
}

func TestCreateLoan_EmployeeNotFound(t *testing.T) {
	store := newMockLoanStore()
	service := newTestService(nil, store, &stubScoreProvider{score: 650}, approvingGateway())

	_, err := service.CreateLoan(context.Background(), CreateLoanInput{
		EmployeeID:       "missing",
		RequestedAmount:  decimal.NewFromInt(100),
		InstallmentCount: 1,
	})

	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	assert.Empty(t, store.created)
}

// ============================================================
// QuoteLoan
// ============================================================

func TestQuoteLoan_Eligible(t *testing.T) {
	service := newTestService(testEmployee(10000), newMockLoanStore(), &stubScoreProvider{score: 750}, approvingGateway())

	quote, err := service.QuoteLoan(context.Background(), "emp-1")

	require.NoError(t, err)
	assert.True(t, quote.Eligible)
	assert.Equal(t, "3500.00", quote.MaxAmount.StringFixed(2))
	assert.Equal(t, "3500.00", quote.AvailableMargin.StringFixed(2))
	assert.Equal(t, 750, quote.Score)
	assert.Empty(t, quote.IneligibilityReason)

	require.Len(t, quote.InstallmentOptions, 4)
	expected := []string{"3500.00", "1750.00", "1166.67", "875.00"}
	for i, option := range quote.InstallmentOptions {
		assert.Equal(t, i+1, option.Count)
		assert.Equal(t, expected[i], option.Amount.StringFixed(2))
	}
}

func TestQuoteLoan_Ineligible_HidesOptions(t *testing.T) {
	store := newMockLoanStore()
	service := newTestService(testEmployee(5000), store, &stubScoreProvider{score: 400}, approvingGateway())

	quote, err := service.QuoteLoan(context.Background(), "emp-1")

	require.NoError(t, err)
	assert.False(t, quote.Eligible)
	assert.Contains(t, quote.IneligibilityReason, "required 600")
	assert.Contains(t, quote.IneligibilityReason, "actual 400")
	assert.Empty(t, quote.InstallmentOptions)
	// quoting never persists anything
	assert.Empty(t, store.created)
}

func TestQuoteLoan_Idempotent(t *testing.T) {
	service := newTestService(testEmployee(5000), newMockLoanStore(), &stubScoreProvider{score: 650}, approvingGateway())

	first, err := service.QuoteLoan(context.Background(), "emp-1")
	require.NoError(t, err)
	second, err := service.QuoteLoan(context.Background(), "emp-1")
	require.NoError(t, err)

	assert.Equal(t, first.Eligible, second.Eligible)
	assert.Equal(t, first.Score, second.Score)
	assert.True(t, first.MaxAmount.Equal(second.MaxAmount))
}

func TestQuoteLoan_EmployeeNotFound(t *testing.T) {
	service := newTestService(nil, newMockLoanStore(), &stubScoreProvider{score: 650}, approvingGateway())

	_, err := service.QuoteLoan(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

// ============================================================
// GetLoan
// ============================================================

func TestGetLoan_NotFound(t *testing.T) {
	service := newTestService(testEmployee(5000), newMockLoanStore(), &stubScoreProvider{score: 650}, approvingGateway())

	_, err := service.GetLoan(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}
