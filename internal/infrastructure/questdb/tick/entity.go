package tick

import (
	"time"
)

// Tick represents a single trade (price and size) data point.
// Ticks are immutable once stored; the table is append-only.
type Tick struct {
	Timestamp time.Time
	Symbol    string
	Price     float64
	Size      float64
}
