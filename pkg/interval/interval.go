package interval

import (
	"fmt"
	"time"
)

// Interval represents a fixed bucket width for resampled bar series.
type Interval struct {
	Name     string
	Duration time.Duration
}

// Supported bucket widths. The query contract only accepts these names,
// never free-form durations.
var (
	Interval1s  = Interval{Name: "1s", Duration: time.Second}
	Interval5s  = Interval{Name: "5s", Duration: 5 * time.Second}
	Interval15s = Interval{Name: "15s", Duration: 15 * time.Second}
	Interval1m  = Interval{Name: "1m", Duration: time.Minute}
	Interval5m  = Interval{Name: "5m", Duration: 5 * time.Minute}
	Interval15m = Interval{Name: "15m", Duration: 15 * time.Minute}
	Interval1h  = Interval{Name: "1h", Duration: time.Hour}
)

// AllIntervals lists every supported interval.
var AllIntervals = []Interval{
	Interval1s, Interval5s, Interval15s,
	Interval1m, Interval5m, Interval15m,
	Interval1h,
}

// Interval registry for lookup
var intervalRegistry = make(map[string]Interval)

func init() {
	for _, interval := range AllIntervals {
		intervalRegistry[interval.Name] = interval
	}
}

// GetInterval returns an interval by name.
func GetInterval(name string) (Interval, error) {
	interval, exists := intervalRegistry[name]
	if !exists {
		return Interval{}, fmt.Errorf("unsupported interval: %s", name)
	}
	return interval, nil
}

// IsValidInterval checks if interval name is supported.
func IsValidInterval(name string) bool {
	_, exists := intervalRegistry[name]
	return exists
}

// GetAllIntervalNames returns all supported interval names.
func GetAllIntervalNames() []string {
	names := make([]string, 0, len(AllIntervals))
	for _, interval := range AllIntervals {
		names = append(names, interval.Name)
	}
	return names
}
