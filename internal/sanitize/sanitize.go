// Package sanitize scrubs non-finite numbers from outbound payloads. JSON
// has no representation for NaN or Inf, so anything non-finite becomes null
// before it crosses the process boundary.
package sanitize

import (
	"math"

	"github.com/sandesh-malleboina/helper-analytics-for-traders/internal/analytics"
)

// Float returns its input unless the value is NaN or infinite, in which case
// it returns nil.
func Float(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}

// Floats scrubs a slice element-wise in place and returns it. Length and
// index positions are preserved.
func Floats(vs []*float64) []*float64 {
	for i := range vs {
		vs[i] = Float(vs[i])
	}
	return vs
}

// Result scrubs every numeric field of an analytics result in place. When
// either ADF output had to be scrubbed the stationarity verdict is dropped
// too, since it was derived from a non-finite number. Applying Result twice
// changes nothing.
func Result(r *analytics.Result) {
	if r == nil {
		return
	}
	r.HedgeRatio = Float(r.HedgeRatio)
	r.Spread = Floats(r.Spread)
	r.ZScore = Floats(r.ZScore)
	r.Correlation = Floats(r.Correlation)

	adfStat := Float(r.ADFStatistic)
	adfPValue := Float(r.ADFPValue)
	if (r.ADFStatistic != nil && adfStat == nil) || (r.ADFPValue != nil && adfPValue == nil) {
		r.IsStationary = nil
	}
	r.ADFStatistic = adfStat
	r.ADFPValue = adfPValue
}
