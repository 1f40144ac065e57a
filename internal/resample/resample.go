// Package resample converts irregular tick sequences into fixed-interval
// bar series with deterministic gap handling.
package resample

import (
	"sort"
	"time"

	tickInfra "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/infrastructure/questdb/tick"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/interval"
)

// Bar is one fixed-width bucket of a resampled series. Close is nil for
// buckets that could not inherit a price from any real tick in the range.
type Bar struct {
	BucketStart time.Time
	Close       *float64
	Volume      float64
}

// CoveringRange returns the bucket-aligned [start, end) range covering every
// tick in the given slices. ok is false when no ticks were supplied.
func CoveringRange(width interval.Interval, series ...[]*tickInfra.Tick) (start, end time.Time, ok bool) {
	var first, last time.Time
	for _, ticks := range series {
		for _, t := range ticks {
			if first.IsZero() || t.Timestamp.Before(first) {
				first = t.Timestamp
			}
			if last.IsZero() || t.Timestamp.After(last) {
				last = t.Timestamp
			}
		}
	}
	if first.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	start = width.CalculateBucketTime(first)
	end = width.CalculateBucketTime(last).Add(width.Duration)
	return start, end, true
}

// Resample partitions [rangeStart, rangeEnd) into equal-width buckets and
// produces one Bar per bucket, even when empty. Close is the price of the
// last tick (by timestamp) in the bucket; empty buckets inherit close from
// the nearest preceding bucket with a value, then from the nearest following
// one (forward-fill, then backward-fill). Volume is the sum of sizes in the
// bucket and is never filled: empty buckets report zero. A close of 0 can
// therefore only ever come from a real zero-priced tick, never from an
// empty window.
func Resample(ticks []*tickInfra.Tick, width interval.Interval, rangeStart, rangeEnd time.Time) []Bar {
	rangeStart = width.CalculateBucketTime(rangeStart)
	n := width.BucketCount(rangeStart, rangeEnd)
	if n <= 0 {
		return nil
	}

	bars := make([]Bar, n)
	for i := range bars {
		bars[i].BucketStart = rangeStart.Add(time.Duration(i) * width.Duration)
	}

	// Stable sort keeps input order for equal timestamps, so the last tick
	// of a bucket is well defined even when timestamps collide.
	sorted := make([]*tickInfra.Tick, len(ticks))
	copy(sorted, ticks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	for _, t := range sorted {
		if t.Timestamp.Before(rangeStart) || !t.Timestamp.Before(rangeEnd) {
			continue
		}
		idx := int(t.Timestamp.Sub(rangeStart) / width.Duration)
		if idx < 0 || idx >= n {
			continue
		}
		price := t.Price
		bars[idx].Close = &price
		bars[idx].Volume += t.Size
	}

	forwardFill(bars)
	backwardFill(bars)

	return bars
}

func forwardFill(bars []Bar) {
	var carry *float64
	for i := range bars {
		if bars[i].Close != nil {
			carry = bars[i].Close
			continue
		}
		if carry != nil {
			v := *carry
			bars[i].Close = &v
		}
	}
}

func backwardFill(bars []Bar) {
	var carry *float64
	for i := len(bars) - 1; i >= 0; i-- {
		if bars[i].Close != nil {
			carry = bars[i].Close
			continue
		}
		if carry != nil {
			v := *carry
			bars[i].Close = &v
		}
	}
}

// Align intersects two bar series on BucketStart and drops unmatched
// buckets, returning equal-length, index-aligned slices.
func Align(barsA, barsB []Bar) ([]Bar, []Bar) {
	if aligned(barsA, barsB) {
		return barsA, barsB
	}

	index := make(map[time.Time]Bar, len(barsB))
	for _, b := range barsB {
		index[b.BucketStart] = b
	}

	outA := make([]Bar, 0, len(barsA))
	outB := make([]Bar, 0, len(barsA))
	for _, a := range barsA {
		if b, ok := index[a.BucketStart]; ok {
			outA = append(outA, a)
			outB = append(outB, b)
		}
	}
	return outA, outB
}

func aligned(barsA, barsB []Bar) bool {
	if len(barsA) != len(barsB) {
		return false
	}
	for i := range barsA {
		if !barsA[i].BucketStart.Equal(barsB[i].BucketStart) {
			return false
		}
	}
	return true
}
