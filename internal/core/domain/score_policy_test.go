package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestScorePolicy_Bands(t *testing.T) {
	tests := []struct {
		salary   string
		minScore int
		band     string
	}{
		{"500", 400, "up to 2,000"},
		{"2000", 400, "up to 2,000"},
		{"2000.01", 500, "2,001 to 4,000"},
		{"4000", 500, "2,001 to 4,000"},
		{"4000.01", 600, "4,001 to 8,000"},
		{"5000", 600, "4,001 to 8,000"},
		{"8000", 600, "4,001 to 8,000"},
		{"8000.01", 700, "8,001 to 12,000"},
		{"12000", 700, "8,001 to 12,000"},
		{"12000.01", 800, "above 12,000"},
		{"50000", 800, "above 12,000"},
	}

	for _, tt := range tests {
		salary := decimal.RequireFromString(tt.salary)
		band := ScorePolicy(salary)
		assert.Equal(t, tt.minScore, band.MinimumScore, "salary %s", tt.salary)
		assert.Equal(t, tt.band, band.SalaryBand, "salary %s", tt.salary)
	}
}

func TestMinimumScore_MonotonicallyNonDecreasing(t *testing.T) {
	allowed := map[int]bool{400: true, 500: true, 600: true, 700: true, 800: true}

	prev := 0
	for salary := int64(100); salary <= 20000; salary += 100 {
		score := MinimumScore(decimal.NewFromInt(salary))
		assert.True(t, allowed[score], "unexpected minimum score %d", score)
		assert.GreaterOrEqual(t, score, prev, "minimum score decreased at salary %d", salary)
		prev = score
	}
}

func TestAvailableMargin(t *testing.T) {
	tests := []struct {
		salary string
		margin string
	}{
		{"5000", "1750.00"},
		{"10000", "3500.00"},
		{"1000", "350.00"},
		{"3333.33", "1166.67"},
	}

	for _, tt := range tests {
		margin := AvailableMargin(decimal.RequireFromString(tt.salary))
		assert.Equal(t, tt.margin, margin.StringFixed(2), "salary %s", tt.salary)
	}
}
