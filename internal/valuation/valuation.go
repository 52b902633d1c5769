// Package valuation implements the pure computation core: compound
// annual growth rates and Graham-style intrinsic values. It performs no
// I/O and never returns errors; insufficient input yields a zero growth
// rate or a nil value.
package valuation

import "math"

// CAGR returns the compound annual growth rate implied by a start and
// end value separated by a number of periods. It returns 0 when either
// value is not positive or periods is not positive, which covers
// single-observation series and non-positive earnings.
func CAGR(start, end float64, periods int) float64 {
	if start <= 0 || end <= 0 || periods <= 0 {
		return 0
	}
	return math.Pow(end/start, 1/float64(periods)) - 1
}

// AnnualEpsCAGR derives the annualized EPS growth rate from a series of
// annual EPS values ordered oldest to newest. A series with fewer than
// two observations yields 0.
func AnnualEpsCAGR(annual []float64) float64 {
	if len(annual) < 2 {
		return 0
	}
	return CAGR(annual[0], annual[len(annual)-1], len(annual)-1)
}

// IntrinsicValue computes a Graham-style intrinsic value from trailing
// EPS, the EPS growth rate (a fraction, not a percentage) and the
// reference bond yield (a fraction). It returns nil when epsTTM is
// missing or non-positive, when the growth rate is missing, or when the
// yield is non-positive; a nil result is a legitimate "not computable",
// not an error.
//
// The growth multiplier min(8.5 + 2g, 20) is capped above at 20 but has
// no lower floor: a strongly negative growth rate drives the multiplier,
// and the resulting value, below zero.
func IntrinsicValue(epsTTM, epsCAGR *float64, referenceYield float64) *float64 {
	if epsTTM == nil || *epsTTM <= 0 || epsCAGR == nil || referenceYield <= 0 {
		return nil
	}

	g := *epsCAGR * 100
	multiplier := math.Min(8.5+2*g, 20)
	value := (*epsTTM * multiplier * 4.4) / (100 * referenceYield)

	return &value
}
