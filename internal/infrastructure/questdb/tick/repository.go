package tick

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/questdb"
)

// Repository represents the repository for tick data.
type Repository struct {
	client questdb.QuestDBClient
}

// NewRepository creates a new tick repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Insert appends a single tick. The table carries no uniqueness constraint,
// so re-ingesting an identical tick double-weights its bucket volume.
func (r *Repository) Insert(ctx context.Context, tick *Tick) error {
	query := `INSERT INTO ticks (timestamp, symbol, price, size)
			  VALUES ($1, $2, $3, $4)`

	err := r.client.Exec(ctx, query,
		tick.Timestamp, tick.Symbol, tick.Price, tick.Size)

	if err != nil {
		return fmt.Errorf("failed to store tick: %w", err)
	}

	return nil
}

// InsertBatch appends a batch of ticks via CopyFrom and returns the inserted count.
func (r *Repository) InsertBatch(ctx context.Context, ticks []*Tick) (int64, error) {
	if len(ticks) == 0 {
		return 0, nil
	}

	copyCount, err := r.client.CopyFrom(
		ctx,
		pgx.Identifier{"ticks"},
		[]string{"timestamp", "symbol", "price", "size"},
		pgx.CopyFromSlice(len(ticks), func(i int) ([]any, error) {
			tick := ticks[i]
			return []any{
				tick.Timestamp,
				tick.Symbol,
				tick.Price,
				tick.Size,
			}, nil
		}),
	)

	if err != nil {
		return 0, fmt.Errorf("failed to copy ticks: %w", err)
	}

	return copyCount, nil
}

// RecentBySymbol retrieves up to limit most recent ticks for a symbol,
// newest first. Callers needing chronological order re-sort at read time.
func (r *Repository) RecentBySymbol(ctx context.Context, symbol string, limit int) ([]*Tick, error) {
	query := `SELECT timestamp, symbol, price, size
			  FROM ticks
			  WHERE symbol = $1
			  ORDER BY timestamp DESC
			  LIMIT $2`

	rows, err := r.client.Query(ctx, query, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ticks: %w", err)
	}
	defer rows.Close()

	var ticks []*Tick
	for rows.Next() {
		tick := &Tick{}
		err := rows.Scan(&tick.Timestamp, &tick.Symbol, &tick.Price, &tick.Size)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tick: %w", err)
		}
		ticks = append(ticks, tick)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ticks, nil
}

// LatestBySymbol retrieves the most recent tick for a symbol, or nil if none exists.
func (r *Repository) LatestBySymbol(ctx context.Context, symbol string) (*Tick, error) {
	query := `SELECT timestamp, symbol, price, size
			  FROM ticks
			  WHERE symbol = $1
			  ORDER BY timestamp DESC
			  LIMIT 1`

	tick := &Tick{}
	err := r.client.QueryRow(ctx, query, symbol).Scan(
		&tick.Timestamp, &tick.Symbol, &tick.Price, &tick.Size)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest tick: %w", err)
	}

	return tick, nil
}

// DistinctSymbols retrieves all symbols that have at least one stored tick.
func (r *Repository) DistinctSymbols(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT symbol FROM ticks`

	rows, err := r.client.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, symbol)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return symbols, nil
}

// CountTicks retrieves the total number of stored ticks.
func (r *Repository) CountTicks(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM ticks`

	var count int64
	if err := r.client.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ticks: %w", err)
	}

	return count, nil
}
