package tick

import (
	"context"
)

// TickRepository is the interface for the tick repository.
//
//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock
type TickRepository interface {
	Insert(ctx context.Context, tick *Tick) error
	InsertBatch(ctx context.Context, ticks []*Tick) (int64, error)
	RecentBySymbol(ctx context.Context, symbol string, limit int) ([]*Tick, error)
	LatestBySymbol(ctx context.Context, symbol string) (*Tick, error)
	DistinctSymbols(ctx context.Context) ([]string, error)
	CountTicks(ctx context.Context) (int64, error)
}
