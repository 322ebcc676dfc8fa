package services

import "testing"

func TestFormatAED(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "AED 0.00"},
		{950, "AED 950.00"},
		{1234.5, "AED 1,234.50"},
		{1234567.89, "AED 1,234,567.89"},
		{-42000, "-AED 42,000.00"},
	}
	for _, tt := range tests {
		if got := FormatAED(tt.amount); got != tt.want {
			t.Errorf("FormatAED(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(33.333); got != "33.3%" {
		t.Errorf("FormatPercent(33.333) = %q, want 33.3%%", got)
	}
	if got := FormatPercent(0); got != "0.0%" {
		t.Errorf("FormatPercent(0) = %q, want 0.0%%", got)
	}
}

func TestFormatFloatCell(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0"},
		{1, "1"},
		{0.5, "0.5"},
		{0.33333333, "0.3333"},
		{100.1000, "100.1"},
		{-2.5, "-2.5"},
	}
	for _, tt := range tests {
		if got := formatFloatCell(tt.input); got != tt.want {
			t.Errorf("formatFloatCell(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
