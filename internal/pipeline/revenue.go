package pipeline

import (
	"fmt"
	"strings"
)

// SplitTypePercent and SplitTypeDollar are the two ways a revenue split can
// be expressed: a percentage of the deal value or a flat dollar amount.
const (
	SplitTypePercent = "%"
	SplitTypeDollar  = "$"
)

// RevenueSplit is one party's cut of a deal (an agency, a manager, an
// editor, a co-host).
type RevenueSplit struct {
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
	With   string  `json:"with"`
}

// SplitLine is one computed deduction in the breakdown.
type SplitLine struct {
	With      string  `json:"with"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	Deduction float64 `json:"deduction"`
}

// RevenueSummary is the derived gross/net view of a deal after splits.
type RevenueSummary struct {
	GrossRevenue    float64     `json:"grossRevenue"`
	TotalDeductions float64     `json:"totalDeductions"`
	NetRevenue      float64     `json:"netRevenue"`
	Margin          float64     `json:"margin"`
	Breakdown       []SplitLine `json:"splitBreakdown"`
}

// CalculateRevenueSplit computes the gross/net revenue view of a deal.
// Percentage splits deduct amount*dealValue/100, dollar splits deduct the
// amount directly. Net revenue is floored at zero, never negative. Margin
// is net/gross*100 when gross is positive, else zero.
func CalculateRevenueSplit(dealValue float64, splits []RevenueSplit) RevenueSummary {
	summary := RevenueSummary{
		GrossRevenue: dealValue,
		Breakdown:    make([]SplitLine, 0, len(splits)),
	}
	for _, split := range splits {
		var deduction float64
		switch split.Type {
		case SplitTypePercent:
			deduction = split.Amount * dealValue / 100
		case SplitTypeDollar:
			deduction = split.Amount
		}
		summary.TotalDeductions += deduction
		summary.Breakdown = append(summary.Breakdown, SplitLine{
			With:      split.With,
			Type:      split.Type,
			Amount:    split.Amount,
			Deduction: deduction,
		})
	}
	summary.NetRevenue = summary.GrossRevenue - summary.TotalDeductions
	if summary.NetRevenue < 0 {
		summary.NetRevenue = 0
	}
	if summary.GrossRevenue > 0 {
		summary.Margin = summary.NetRevenue / summary.GrossRevenue * 100
	}
	return summary
}

// ValidateRevenueSplits checks splits for common mistakes. Violations are
// warnings only: callers log them and save anyway, they never block a
// write.
func ValidateRevenueSplits(dealValue float64, splits []RevenueSplit) []string {
	var warnings []string
	var percentTotal, dollarTotal float64
	for i, split := range splits {
		if strings.TrimSpace(split.With) == "" {
			warnings = append(warnings, fmt.Sprintf("split %d has no recipient label", i+1))
		}
		if split.Amount <= 0 {
			warnings = append(warnings, fmt.Sprintf("split %d has a non-positive amount", i+1))
		}
		switch split.Type {
		case SplitTypePercent:
			percentTotal += split.Amount
		case SplitTypeDollar:
			dollarTotal += split.Amount
		default:
			warnings = append(warnings, fmt.Sprintf("split %d has unknown type %q", i+1, split.Type))
		}
	}
	if percentTotal > 100 {
		warnings = append(warnings, fmt.Sprintf("percentage splits total %.2f%%, exceeding 100%%", percentTotal))
	}
	if dollarTotal > dealValue {
		warnings = append(warnings, fmt.Sprintf("dollar splits total %.2f, exceeding the deal value %.2f", dollarTotal, dealValue))
	}
	return warnings
}
