package domain

import "github.com/shopspring/decimal"

// MarginRate is the share of an employee's salary available for
// payroll-deduction loans.
var MarginRate = decimal.NewFromFloat(0.35)

// ScoreBand holds the minimum acceptable credit score for a salary band.
type ScoreBand struct {
	MinimumScore int
	SalaryBand   string
}

// salary band upper bounds, inclusive
var (
	bandUpTo2000  = decimal.NewFromInt(2000)
	bandUpTo4000  = decimal.NewFromInt(4000)
	bandUpTo8000  = decimal.NewFromInt(8000)
	bandUpTo12000 = decimal.NewFromInt(12000)
)

// MinimumScore returns the minimum credit score required for the given salary.
func MinimumScore(salary decimal.Decimal) int {
	return ScorePolicy(salary).MinimumScore
}

// ScorePolicy maps a salary to the score band that governs it. Bands are
// inclusive on their upper bound: a salary of exactly 2000 requires 400,
// 2000.01 already requires 500.
func ScorePolicy(salary decimal.Decimal) ScoreBand {
	switch {
	case salary.LessThanOrEqual(bandUpTo2000):
		return ScoreBand{MinimumScore: 400, SalaryBand: "up to 2,000"}
	case salary.LessThanOrEqual(bandUpTo4000):
		return ScoreBand{MinimumScore: 500, SalaryBand: "2,001 to 4,000"}
	case salary.LessThanOrEqual(bandUpTo8000):
		return ScoreBand{MinimumScore: 600, SalaryBand: "4,001 to 8,000"}
	case salary.LessThanOrEqual(bandUpTo12000):
		return ScoreBand{MinimumScore: 700, SalaryBand: "8,001 to 12,000"}
	default:
		return ScoreBand{MinimumScore: 800, SalaryBand: "above 12,000"}
	}
}

// AvailableMargin computes the loanable margin for a salary (35%),
// rounded to currency precision. Derived on every call, never persisted.
func AvailableMargin(salary decimal.Decimal) decimal.Decimal {
	return salary.Mul(MarginRate).Round(2)
}
