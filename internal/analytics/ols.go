package analytics

import (
	"gonum.org/v1/gonum/stat"
)

// HedgeRatio fits closeA = alpha + beta*closeB by ordinary least squares over
// the buckets where both closes are present and returns beta. Fewer than two
// usable points, or a degenerate fit (constant closeB), yields nil.
func HedgeRatio(closesA, closesB []*float64) *float64 {
	var xs, ys []float64
	for i := range closesA {
		if closesA[i] == nil || closesB[i] == nil {
			continue
		}
		xs = append(xs, *closesB[i])
		ys = append(ys, *closesA[i])
	}
	if len(xs) < 2 {
		return nil
	}
	_, beta := stat.LinearRegression(xs, ys, nil, false)
	return finitePtr(beta)
}

// Spread returns closeA - hedge*closeB per bucket, nil where either close is
// missing. A nil hedge ratio yields an all-nil spread of the same length so
// downstream arrays stay index-aligned.
func Spread(closesA, closesB []*float64, hedge *float64) []*float64 {
	out := make([]*float64, len(closesA))
	if hedge == nil {
		return out
	}
	for i := range closesA {
		if closesA[i] == nil || closesB[i] == nil {
			continue
		}
		v := *closesA[i] - *hedge**closesB[i]
		out[i] = finitePtr(v)
	}
	return out
}
