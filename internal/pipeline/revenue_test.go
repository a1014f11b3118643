package pipeline

import (
	"math"
	"strings"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateRevenueSplit(t *testing.T) {
	cases := []struct {
		name            string
		dealValue       float64
		splits          []RevenueSplit
		wantGross       float64
		wantDeductions  float64
		wantNet         float64
		wantMargin      float64
	}{
		{
			name:       "zero_splits",
			dealValue:  1000,
			splits:     nil,
			wantGross:  1000,
			wantNet:    1000,
			wantMargin: 100,
		},
		{
			name:      "mixed_percent_and_dollar",
			dealValue: 1000,
			splits: []RevenueSplit{
				{Amount: 10, Type: SplitTypePercent, With: "Agency"},
				{Amount: 200, Type: SplitTypeDollar, With: "Manager"},
			},
			wantGross:      1000,
			wantDeductions: 300,
			wantNet:        700,
			wantMargin:     70,
		},
		{
			name:      "net_floored_at_zero",
			dealValue: 100,
			splits: []RevenueSplit{
				{Amount: 500, Type: SplitTypeDollar, With: "X"},
			},
			wantGross:      100,
			wantDeductions: 500,
			wantNet:        0,
			wantMargin:     0,
		},
		{
			name:       "zero_deal_value",
			dealValue:  0,
			splits:     []RevenueSplit{{Amount: 50, Type: SplitTypePercent, With: "Agency"}},
			wantGross:  0,
			wantNet:    0,
			wantMargin: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateRevenueSplit(tc.dealValue, tc.splits)
			if !almostEqual(got.GrossRevenue, tc.wantGross) {
				t.Errorf("gross = %v, want %v", got.GrossRevenue, tc.wantGross)
			}
			if !almostEqual(got.TotalDeductions, tc.wantDeductions) {
				t.Errorf("deductions = %v, want %v", got.TotalDeductions, tc.wantDeductions)
			}
			if !almostEqual(got.NetRevenue, tc.wantNet) {
				t.Errorf("net = %v, want %v", got.NetRevenue, tc.wantNet)
			}
			if !almostEqual(got.Margin, tc.wantMargin) {
				t.Errorf("margin = %v, want %v", got.Margin, tc.wantMargin)
			}
			if len(got.Breakdown) != len(tc.splits) {
				t.Errorf("breakdown has %d lines, want %d", len(got.Breakdown), len(tc.splits))
			}
		})
	}
}

func TestValidateRevenueSplitsWarnsWithoutBlocking(t *testing.T) {
	warnings := ValidateRevenueSplits(1000, []RevenueSplit{
		{Amount: 0, Type: SplitTypePercent, With: ""},
		{Amount: 60, Type: SplitTypePercent, With: "Agency"},
		{Amount: 55, Type: SplitTypePercent, With: "Manager"},
		{Amount: 1200, Type: SplitTypeDollar, With: "Editor"},
	})
	wantSubstrings := []string{
		"no recipient label",
		"non-positive amount",
		"exceeding 100%",
		"exceeding the deal value",
	}
	for _, want := range wantSubstrings {
		found := false
		for _, w := range warnings {
			if strings.Contains(w, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected a warning containing %q, got %v", want, warnings)
		}
	}

	if warnings := ValidateRevenueSplits(1000, nil); len(warnings) != 0 {
		t.Errorf("no splits should produce no warnings, got %v", warnings)
	}
}
