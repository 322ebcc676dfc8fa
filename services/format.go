package services

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAED formats an amount in UAE dirham notation with thousands
// grouping and exactly 2 decimal places, e.g. "AED 1,234,567.89".
func FormatAED(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)

	result := "AED " + groupThousands(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every 3 digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}

// FormatPercent renders a percentage with one decimal, e.g. "42.5%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// formatFloatCell renders a float for tabular export: up to 4 decimals with
// trailing zeros trimmed, whole numbers without a decimal point.
func formatFloatCell(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
