package interval

import (
	"time"
)

// CalculateBucketTime calculates the start time of the interval bucket.
func (i Interval) CalculateBucketTime(timestamp time.Time) time.Time {
	return timestamp.Truncate(i.Duration)
}

// GetBucketRange returns the start and end time of the interval bucket.
func (i Interval) GetBucketRange(timestamp time.Time) (start, end time.Time) {
	start = i.CalculateBucketTime(timestamp)
	end = start.Add(i.Duration)
	return start, end
}

// IsInBucket checks if two timestamps fall within the same bucket.
func (i Interval) IsInBucket(timestamp1, timestamp2 time.Time) bool {
	return i.CalculateBucketTime(timestamp1).Equal(i.CalculateBucketTime(timestamp2))
}

// BucketCount returns how many buckets of this width cover [start, end).
func (i Interval) BucketCount(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	d := end.Sub(start)
	n := int(d / i.Duration)
	if d%i.Duration != 0 {
		n++
	}
	return n
}
