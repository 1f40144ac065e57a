package bootstrap

import (
	"github.com/sandesh-malleboina/helper-analytics-for-traders/internal/gateway"
)

// Collector holds the feed gateway components.
type Collector struct {
	Gateway *gateway.Collector
}

// registerCollector registers the feed gateway.
func (b *Bootstrap) registerCollector() {
	b.Collector.Gateway = gateway.NewCollector(
		b.Config.Feed,
		b.Usecase.TickUsecase,
		b.Logger,
	)
}
