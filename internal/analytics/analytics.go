// Package analytics computes pairs-trading statistics over aligned bar
// series: OLS hedge ratio, spread, rolling z-score, rolling Pearson
// correlation and an Augmented Dickey-Fuller stationarity test.
package analytics

import (
	"math"

	"github.com/sandesh-malleboina/helper-analytics-for-traders/internal/resample"
)

// Result is the full analytics payload for one pair. All numeric fields are
// pointers: nil means "not computable", never zero. Array fields are
// index-aligned to the bar sequence the engine was given.
type Result struct {
	HedgeRatio       *float64   `json:"hedge_ratio"`
	Spread           []*float64 `json:"spread"`
	ZScore           []*float64 `json:"zscore"`
	Correlation      []*float64 `json:"correlation"`
	ADFStatistic     *float64   `json:"adf_statistic"`
	ADFPValue        *float64   `json:"adf_pvalue"`
	ADFUsedLag       *int       `json:"adf_used_lag"`
	IsStationary     *bool      `json:"is_stationary"`
	InsufficientData bool       `json:"insufficient_data"`
}

// Engine runs the pair pipeline with a fixed significance level for the
// stationarity verdict.
type Engine struct {
	significance float64
}

func NewEngine(significance float64) *Engine {
	return &Engine{significance: significance}
}

// Analyze aligns the two bar series on bucket start, then computes every
// statistic it has enough data for. Statistics that cannot be computed come
// back nil with InsufficientData set; the ones that could be computed are
// still returned.
func (e *Engine) Analyze(barsA, barsB []resample.Bar, window int) *Result {
	barsA, barsB = resample.Align(barsA, barsB)
	closesA := Closes(barsA)
	closesB := Closes(barsB)

	res := &Result{}

	res.HedgeRatio = HedgeRatio(closesA, closesB)
	if res.HedgeRatio == nil {
		res.InsufficientData = true
	}
	res.Spread = Spread(closesA, closesB, res.HedgeRatio)
	res.ZScore = RollingZScore(res.Spread, window)
	res.Correlation = RollingCorrelation(closesA, closesB, window)

	obs := compact(res.Spread)
	if len(obs) < MinADFObservations || !hasVariance(obs) {
		res.InsufficientData = true
		return res
	}

	adfStat, pValue, usedLag, err := ADF(obs)
	if err != nil {
		res.InsufficientData = true
		return res
	}
	res.ADFStatistic = &adfStat
	res.ADFPValue = &pValue
	res.ADFUsedLag = &usedLag
	stationary := pValue < e.significance
	res.IsStationary = &stationary

	return res
}

// Closes extracts the close series from a bar slice, preserving nils.
func Closes(bars []resample.Bar) []*float64 {
	out := make([]*float64, len(bars))
	for i := range bars {
		out[i] = bars[i].Close
	}
	return out
}

func compact(series []*float64) []float64 {
	out := make([]float64, 0, len(series))
	for _, v := range series {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func hasVariance(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] != values[0] {
			return true
		}
	}
	return false
}

func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
