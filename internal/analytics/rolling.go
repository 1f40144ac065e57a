package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// RollingZScore returns the z-score of each element against the trailing
// window ending at (and including) it. The first window-1 positions are nil,
// as is any position whose window holds fewer than two values or has zero
// standard deviation.
func RollingZScore(series []*float64, window int) []*float64 {
	out := make([]*float64, len(series))
	if window < 1 {
		return out
	}
	for i := window - 1; i < len(series); i++ {
		if series[i] == nil {
			continue
		}
		values := compact(series[i-window+1 : i+1])
		if len(values) < 2 {
			continue
		}
		mean, std := stat.MeanStdDev(values, nil)
		if std == 0 {
			continue
		}
		out[i] = finitePtr((*series[i] - mean) / std)
	}
	return out
}

// RollingCorrelation returns the Pearson correlation of the two series over
// the trailing window ending at each position. Positions before the first
// full window, or whose window holds fewer than two complete pairs, or where
// either side has zero variance, are nil.
func RollingCorrelation(seriesA, seriesB []*float64, window int) []*float64 {
	n := len(seriesA)
	if len(seriesB) < n {
		n = len(seriesB)
	}
	out := make([]*float64, n)
	if window < 1 {
		return out
	}
	for i := window - 1; i < n; i++ {
		var xs, ys []float64
		for j := i - window + 1; j <= i; j++ {
			if seriesA[j] == nil || seriesB[j] == nil {
				continue
			}
			xs = append(xs, *seriesA[j])
			ys = append(ys, *seriesB[j])
		}
		if len(xs) < 2 {
			continue
		}
		r := stat.Correlation(xs, ys, nil)
		if math.IsNaN(r) {
			continue
		}
		out[i] = finitePtr(r)
	}
	return out
}
