package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MinInstallments and MaxInstallments bound the term of a consignado loan.
	MinInstallments = 1
	MaxInstallments = 4
)

// InstallmentOption is one quoted term choice: pay maxAmount in Count
// monthly installments of Amount each, first one due on FirstDueDate.
type InstallmentOption struct {
	Count        int             `json:"installment_count"`
	Amount       decimal.Decimal `json:"installment_amount"`
	FirstDueDate time.Time       `json:"first_due_date"`
}

// InstallmentSpec is one scheduled repayment produced by GenerateSchedule.
// The persistence layer turns these into installment rows.
type InstallmentSpec struct {
	Number  int
	Amount  decimal.Decimal
	DueDate time.Time
}

// QuoteOptions computes the four term choices for a quote. The option
// count is fixed at 1..4 regardless of eligibility; callers decide
// whether to expose them. All options share the same first due date
// (one month from today), only the per-installment amount varies.
func QuoteOptions(maxAmount decimal.Decimal, today time.Time) []InstallmentOption {
	firstDue := today.AddDate(0, 1, 0)
	options := make([]InstallmentOption, 0, MaxInstallments)

	for count := MinInstallments; count <= MaxInstallments; count++ {
		options = append(options, InstallmentOption{
			Count:        count,
			Amount:       maxAmount.Div(decimal.NewFromInt(int64(count))).Round(2),
			FirstDueDate: firstDue,
		})
	}

	return options
}

// GenerateSchedule splits an approved amount into count monthly
// installments due one, two, ... months from today. Each installment is
// rounded to 2 decimal places independently; rounding remainders are not
// redistributed, so the scheduled total may differ from the approved
// amount by up to (count-1) cents.
func GenerateSchedule(approvedAmount decimal.Decimal, count int, today time.Time) []InstallmentSpec {
	perInstallment := approvedAmount.Div(decimal.NewFromInt(int64(count))).Round(2)
	schedule := make([]InstallmentSpec, 0, count)

	for i := 1; i <= count; i++ {
		schedule = append(schedule, InstallmentSpec{
			Number:  i,
			Amount:  perInstallment,
			DueDate: today.AddDate(0, i, 0),
		})
	}

	return schedule
}

// ValidInstallmentCount reports whether count is an accepted loan term.
func ValidInstallmentCount(count int) bool {
	return count >= MinInstallments && count <= MaxInstallments
}
