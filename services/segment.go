package services

import "math"

// Customer segment tiers.
const (
	SegmentHigh   = "High"
	SegmentMedium = "Medium"
	SegmentLow    = "Low"
)

// Segmentation thresholds.
const (
	highCLVThreshold     = 75000.0
	highWinRateThreshold = 40.0

	mediumCLVThreshold      = 30000.0
	mediumWinRateThreshold  = 60.0
	mediumConvertedRequired = 3.0
)

// SegmentCustomer classifies a client into a tier. Precedence is fixed:
// High requires both the CLV and win-rate bars, Medium takes either a CLV
// floor or a strong win rate with repeat conversions. NaN inputs count as 0.
func SegmentCustomer(clv, winRatePct, convertedQuotations float64) string {
	if math.IsNaN(clv) {
		clv = 0
	}
	if math.IsNaN(winRatePct) {
		winRatePct = 0
	}
	if math.IsNaN(convertedQuotations) {
		convertedQuotations = 0
	}

	switch {
	case clv >= highCLVThreshold && winRatePct >= highWinRateThreshold:
		return SegmentHigh
	case clv >= mediumCLVThreshold ||
		(winRatePct >= mediumWinRateThreshold && convertedQuotations >= mediumConvertedRequired):
		return SegmentMedium
	default:
		return SegmentLow
	}
}
