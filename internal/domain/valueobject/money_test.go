package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSplitEvenly(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		parts    int
		expected []string
	}{
		{"exact division", "90000", 3, []string{"30000.00", "30000.00", "30000.00"}},
		{"remainder goes to last part", "100000", 3, []string{"33333.33", "33333.33", "33333.34"}},
		{"single part", "1234.56", 1, []string{"1234.56"}},
		{"cents remainder", "0.10", 3, []string{"0.03", "0.03", "0.04"}},
		{"sub-cent total is rounded first", "10.005", 2, []string{"5.00", "5.01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitEvenly(decimal.RequireFromString(tt.total), tt.parts)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d parts, got %d", len(tt.expected), len(got))
			}
			for i, want := range tt.expected {
				if FormatMoney(got[i]) != want {
					t.Errorf("part %d: expected %s, got %s", i, want, FormatMoney(got[i]))
				}
			}
		})
	}
}

func TestSplitEvenly_SumsToTotal(t *testing.T) {
	budgets := []string{"0.01", "1", "99.99", "1000", "33333.33", "100000", "123456.78", "999999.99"}

	for _, b := range budgets {
		total := decimal.RequireFromString(b)
		for n := 1; n <= 12; n++ {
			parts := SplitEvenly(total, n)
			if sum := SumMoney(parts...); !sum.Equal(total) {
				t.Errorf("budget %s split %d ways sums to %s", b, n, sum)
			}
		}
	}
}

func TestFloorMoney(t *testing.T) {
	got := FloorMoney(decimal.RequireFromString("33333.3399"))
	if FormatMoney(got) != "33333.33" {
		t.Errorf("expected 33333.33, got %s", FormatMoney(got))
	}
}
