// Package pair orchestrates the pair analytics query pipeline: recent-tick
// reads for both legs, resampling onto one bucket grid, the statistics
// engine and the outbound sanitizer.
package pair

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/sandesh-malleboina/helper-analytics-for-traders/internal/analytics"
	pairDomain "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/domain/pair"
	tickDomain "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/domain/tick"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/internal/resample"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/internal/sanitize"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/config"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/errors"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/interval"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/logger"
)

// Usecase runs pair analytics queries. Every query is synchronous and
// self-contained: both legs are read, resampled onto the same bucket grid,
// analyzed and sanitized before the result leaves the process.
type Usecase struct {
	tickUsecase tickDomain.Usecase
	engine      *analytics.Engine
	logger      logger.Interface
	cfg         config.AnalyticsConfig
}

// NewUsecase creates a new pair analytics usecase.
func NewUsecase(tickUsecase tickDomain.Usecase, engine *analytics.Engine, logger logger.Interface, cfg config.AnalyticsConfig) *Usecase {
	return &Usecase{
		tickUsecase: tickUsecase,
		engine:      engine,
		logger:      logger,
		cfg:         cfg,
	}
}

// Analyze runs the full pipeline for one pair query.
func (u *Usecase) Analyze(ctx context.Context, req pairDomain.Request) (*pairDomain.Analytics, error) {
	if req.BucketWidth == "" {
		req.BucketWidth = u.cfg.DefaultBucketWidth
	}
	if req.RollingWindow <= 0 {
		req.RollingWindow = u.cfg.DefaultRollingWindow
	}

	width, err := interval.GetInterval(req.BucketWidth)
	if err != nil {
		return nil, errors.NewDomainf(errors.CodeInvalidInterval, "unsupported bucket width %q", req.BucketWidth)
	}

	ticksA, err := u.tickUsecase.QueryRecent(ctx, req.SymbolA, u.cfg.MaxRowsPerSymbol)
	if err != nil {
		return nil, err
	}
	if len(ticksA) == 0 {
		return nil, errors.NewDomainf(errors.CodeNoData, "no ticks stored for %s", req.SymbolA)
	}
	ticksB, err := u.tickUsecase.QueryRecent(ctx, req.SymbolB, u.cfg.MaxRowsPerSymbol)
	if err != nil {
		return nil, err
	}
	if len(ticksB) == 0 {
		return nil, errors.NewDomainf(errors.CodeNoData, "no ticks stored for %s", req.SymbolB)
	}

	rangeStart, rangeEnd, ok := resample.CoveringRange(width, ticksA, ticksB)
	if !ok {
		return nil, errors.NewDomain(errors.CodeNoData, "tick range is empty")
	}
	if n := width.BucketCount(rangeStart, rangeEnd); n > u.cfg.MaxBuckets {
		return nil, errors.NewDomainf(errors.CodeInvalidInterval,
			"bucket width %s spans %d buckets over the stored range, limit is %d", req.BucketWidth, n, u.cfg.MaxBuckets)
	}

	// both legs share one grid, so the series are aligned by construction
	barsA := resample.Resample(ticksA, width, rangeStart, rangeEnd)
	barsB := resample.Resample(ticksB, width, rangeStart, rangeEnd)

	result := u.engine.Analyze(barsA, barsB, req.RollingWindow)
	sanitize.Result(result)

	out := &pairDomain.Analytics{
		SymbolA:       ticksA[0].Symbol,
		SymbolB:       ticksB[0].Symbol,
		BucketWidth:   width.Name,
		RollingWindow: req.RollingWindow,
		Buckets:       bucketStarts(barsA),
		LegA:          legFrom(ticksA[0].Symbol, barsA),
		LegB:          legFrom(ticksB[0].Symbol, barsB),
		Result:        result,
	}
	return out, nil
}

// ExportCSV writes the aligned pair frame as CSV, one row per bucket.
func (u *Usecase) ExportCSV(ctx context.Context, req pairDomain.Request, w io.Writer) error {
	frame, err := u.Analyze(ctx, req)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"bucket_start", "close_a", "volume_a", "close_b", "volume_b", "spread", "zscore", "correlation"}
	if err := cw.Write(header); err != nil {
		return errors.TracerFromError(err)
	}
	for i, bucket := range frame.Buckets {
		row := []string{
			bucket.UTC().Format(time.RFC3339),
			csvFloat(frame.LegA.Close[i]),
			strconv.FormatFloat(frame.LegA.Volume[i], 'f', -1, 64),
			csvFloat(frame.LegB.Close[i]),
			strconv.FormatFloat(frame.LegB.Volume[i], 'f', -1, 64),
			csvFloat(frame.Result.Spread[i]),
			csvFloat(frame.Result.ZScore[i]),
			csvFloat(frame.Result.Correlation[i]),
		}
		if err := cw.Write(row); err != nil {
			return errors.TracerFromError(err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

func csvFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func bucketStarts(bars []resample.Bar) []time.Time {
	out := make([]time.Time, len(bars))
	for i := range bars {
		out[i] = bars[i].BucketStart
	}
	return out
}

func legFrom(symbol string, bars []resample.Bar) pairDomain.Leg {
	leg := pairDomain.Leg{
		Symbol: symbol,
		Close:  make([]*float64, len(bars)),
		Volume: make([]float64, len(bars)),
	}
	for i := range bars {
		leg.Close[i] = sanitize.Float(bars[i].Close)
		leg.Volume[i] = bars[i].Volume
	}
	return leg
}
