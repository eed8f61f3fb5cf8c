package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

func TestQuoteOptions_FourAscendingCounts(t *testing.T) {
	options := QuoteOptions(decimal.NewFromInt(3500), testToday)

	require.Len(t, options, 4)
	expected := []string{"3500.00", "1750.00", "1166.67", "875.00"}
	firstDue := testToday.AddDate(0, 1, 0)

	for i, option := range options {
		assert.Equal(t, i+1, option.Count)
		assert.Equal(t, expected[i], option.Amount.StringFixed(2))
		// first due date is shared across all options in a quote
		assert.True(t, option.FirstDueDate.Equal(firstDue))
	}
}

func TestQuoteOptions_TotalsWithinRounding(t *testing.T) {
	amount := decimal.RequireFromString("1234.56")
	options := QuoteOptions(amount, testToday)

	for _, option := range options {
		total := option.Amount.Mul(decimal.NewFromInt(int64(option.Count)))
		diff := total.Sub(amount).Abs()
		// per-option rounding may drift by up to (count-1) cents
		maxDrift := decimal.New(int64(option.Count-1), -2)
		assert.True(t, diff.LessThanOrEqual(maxDrift),
			"count %d: total %s drifts %s from %s", option.Count, total, diff, amount)
	}
}

func TestGenerateSchedule(t *testing.T) {
	schedule := GenerateSchedule(decimal.NewFromInt(1000), 2, testToday)

	require.Len(t, schedule, 2)
	for i, spec := range schedule {
		assert.Equal(t, i+1, spec.Number)
		assert.Equal(t, "500.00", spec.Amount.StringFixed(2))
		assert.True(t, spec.DueDate.Equal(testToday.AddDate(0, i+1, 0)))
	}
}

func TestGenerateSchedule_DueDatesStrictlyIncreasing(t *testing.T) {
	schedule := GenerateSchedule(decimal.NewFromInt(999), 4, testToday)

	require.Len(t, schedule, 4)
	for i := 1; i < len(schedule); i++ {
		assert.True(t, schedule[i].DueDate.After(schedule[i-1].DueDate))
	}
}

func TestGenerateSchedule_RoundsEachInstallmentIndependently(t *testing.T) {
	// 1000 / 3 = 333.333... rounds to 333.33; the 0.01 remainder is not
	// redistributed onto the last installment
	schedule := GenerateSchedule(decimal.NewFromInt(1000), 3, testToday)

	require.Len(t, schedule, 3)
	for _, spec := range schedule {
		assert.Equal(t, "333.33", spec.Amount.StringFixed(2))
	}
}

func TestValidInstallmentCount(t *testing.T) {
	assert.False(t, ValidInstallmentCount(0))
	assert.True(t, ValidInstallmentCount(1))
	assert.True(t, ValidInstallmentCount(4))
	assert.False(t, ValidInstallmentCount(5))
	assert.False(t, ValidInstallmentCount(-1))
}
