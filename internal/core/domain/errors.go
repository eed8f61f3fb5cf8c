package domain

import (
	"errors"
	"fmt"
)

// Directory errors
var (
	ErrCompanyNotFound     = errors.New("company not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrCNPJTaken           = errors.New("CNPJ already registered")
	ErrCPFTaken            = errors.New("CPF already registered")
	ErrEmailTaken          = errors.New("email already registered")
	ErrCompanyHasEmployees = errors.New("company has registered employees")
	ErrEmployeeHasLoans    = errors.New("employee has loans on record")
)

// Loan errors
var (
	ErrLoanNotFound            = errors.New("loan not found")
	ErrAmountExceedsMargin     = errors.New("requested amount exceeds available margin")
	ErrInvalidInstallmentCount = errors.New("installment count must be between 1 and 4")
	ErrScoreInsufficient       = errors.New("credit score below required minimum")
)

// RejectionError is returned when underwriting rejects a loan request.
// The rejected loan is still persisted as an audit record, so the error
// carries the id of that record alongside the score shortfall.
type RejectionError struct {
	LoanID        string
	RequiredScore int
	ActualScore   int
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("loan rejected: minimum score required %d, actual %d", e.RequiredScore, e.ActualScore)
}

// Is makes errors.Is(err, ErrScoreInsufficient) match a RejectionError.
func (e *RejectionError) Is(target error) bool {
	return target == ErrScoreInsufficient
}
