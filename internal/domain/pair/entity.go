package pair

import (
	"time"

	"github.com/sandesh-malleboina/helper-analytics-for-traders/internal/analytics"
)

// Request carries every parameter of one pair-analytics query. The service
// holds no session state, so nothing is implicit.
type Request struct {
	SymbolA       string
	SymbolB       string
	BucketWidth   string
	RollingWindow int
}

// Leg is one symbol's resampled series over the aligned bucket range.
type Leg struct {
	Symbol string     `json:"symbol"`
	Close  []*float64 `json:"close"`
	Volume []float64  `json:"volume"`
}

// Analytics is the full response frame for a pair query: the aligned bucket
// timeline, both resampled legs and the statistics computed over them.
type Analytics struct {
	SymbolA       string            `json:"symbol_a"`
	SymbolB       string            `json:"symbol_b"`
	BucketWidth   string            `json:"bucket_width"`
	RollingWindow int               `json:"rolling_window"`
	Buckets       []time.Time       `json:"buckets"`
	LegA          Leg               `json:"leg_a"`
	LegB          Leg               `json:"leg_b"`
	Result        *analytics.Result `json:"analytics"`
}
