package tick

import (
	"context"
	"sort"
	"strings"

	"github.com/sandesh-malleboina/helper-analytics-for-traders/internal/infrastructure/questdb/tick"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/errors"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/logger"
)

// Usecase validates and stores ticks and serves bounded recent history.
// The store itself is append-only; all ordering guarantees are applied
// at read time.
type Usecase struct {
	tickRepository tick.TickRepository
	logger         logger.Interface
	tracked        map[string]struct{}
	maxRows        int
}

// NewUsecase creates a new tick usecase. symbols is the canonical tracked
// set; maxRows caps every recent-history read.
func NewUsecase(tickRepository tick.TickRepository, logger logger.Interface, symbols []string, maxRows int) *Usecase {
	tracked := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		tracked[strings.ToUpper(strings.TrimSpace(s))] = struct{}{}
	}
	return &Usecase{
		tickRepository: tickRepository,
		logger:         logger,
		tracked:        tracked,
		maxRows:        maxRows,
	}
}

// Normalize maps a raw symbol onto the canonical tracked set.
func (u *Usecase) Normalize(symbol string) (string, error) {
	canonical := strings.ToUpper(strings.TrimSpace(symbol))
	if _, ok := u.tracked[canonical]; !ok {
		return "", errors.NewDomainf(errors.CodeUnknownSymbol, "symbol %q is not tracked", symbol)
	}
	return canonical, nil
}

// Validate checks a tick against the ingest contract without storing it.
func (u *Usecase) Validate(t *tick.Tick) error {
	if t == nil {
		return errors.NewDomain(errors.CodeInvalidTick, "tick is nil")
	}
	if t.Price <= 0 {
		return errors.NewDomainf(errors.CodeInvalidTick, "price must be positive, got %v", t.Price)
	}
	if t.Size < 0 {
		return errors.NewDomainf(errors.CodeInvalidTick, "size must be non-negative, got %v", t.Size)
	}
	if t.Timestamp.IsZero() {
		return errors.NewDomain(errors.CodeInvalidTick, "timestamp is zero")
	}
	return nil
}

// Append validates and durably stores a single tick.
func (u *Usecase) Append(ctx context.Context, t *tick.Tick) error {
	if err := u.Validate(t); err != nil {
		return err
	}
	canonical, err := u.Normalize(t.Symbol)
	if err != nil {
		return err
	}
	t.Symbol = canonical

	if err := u.tickRepository.Insert(ctx, t); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

// AppendBatch stores a batch, dropping invalid ticks instead of failing the
// whole batch. Returns the stored count and how many were dropped.
func (u *Usecase) AppendBatch(ctx context.Context, ticks []*tick.Tick) (int64, int, error) {
	valid := make([]*tick.Tick, 0, len(ticks))
	dropped := 0
	for _, t := range ticks {
		if err := u.Validate(t); err != nil {
			dropped++
			continue
		}
		canonical, err := u.Normalize(t.Symbol)
		if err != nil {
			dropped++
			continue
		}
		t.Symbol = canonical
		valid = append(valid, t)
	}

	stored, err := u.tickRepository.InsertBatch(ctx, valid)
	if err != nil {
		return 0, dropped, errors.TracerFromError(err)
	}
	return stored, dropped, nil
}

// QueryRecent returns up to limit most recent ticks for a symbol, sorted
// ascending by timestamp regardless of insertion order. limit is capped at
// the configured maximum.
func (u *Usecase) QueryRecent(ctx context.Context, symbol string, limit int) ([]*tick.Tick, error) {
	canonical, err := u.Normalize(symbol)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > u.maxRows {
		limit = u.maxRows
	}

	ticks, err := u.tickRepository.RecentBySymbol(ctx, canonical, limit)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	sort.SliceStable(ticks, func(i, j int) bool {
		return ticks[i].Timestamp.Before(ticks[j].Timestamp)
	})
	return ticks, nil
}

// Latest returns the most recent tick for a symbol, nil if none stored.
func (u *Usecase) Latest(ctx context.Context, symbol string) (*tick.Tick, error) {
	canonical, err := u.Normalize(symbol)
	if err != nil {
		return nil, err
	}
	t, err := u.tickRepository.LatestBySymbol(ctx, canonical)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return t, nil
}

// Symbols returns the distinct stored symbols, falling back to the
// configured tracked set when the store is still empty.
func (u *Usecase) Symbols(ctx context.Context) ([]string, error) {
	symbols, err := u.tickRepository.DistinctSymbols(ctx)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	if len(symbols) == 0 {
		for s := range u.tracked {
			symbols = append(symbols, s)
		}
	}
	sort.Strings(symbols)
	return symbols, nil
}

// Count returns the total number of stored ticks.
func (u *Usecase) Count(ctx context.Context) (int64, error) {
	count, err := u.tickRepository.CountTicks(ctx)
	if err != nil {
		return 0, errors.TracerFromError(err)
	}
	return count, nil
}
