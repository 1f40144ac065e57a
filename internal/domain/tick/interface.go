package tick

import (
	"context"

	"github.com/sandesh-malleboina/helper-analytics-for-traders/internal/infrastructure/questdb/tick"
)

// Usecase is the interface for the tick usecase.
//
//go:generate mockgen -source interface.go -destination=mock/usecase_mock.go -package=tick_mock
type Usecase interface {
	Append(ctx context.Context, tick *tick.Tick) error
	AppendBatch(ctx context.Context, ticks []*tick.Tick) (stored int64, dropped int, err error)
	QueryRecent(ctx context.Context, symbol string, limit int) ([]*tick.Tick, error)
	Latest(ctx context.Context, symbol string) (*tick.Tick, error)
	Symbols(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}
