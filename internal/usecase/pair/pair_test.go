package pair

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/sandesh-malleboina/helper-analytics-for-traders/internal/analytics"
	pairDomain "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/domain/pair"
	tickInfra "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/infrastructure/questdb/tick"
	tickMock "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/infrastructure/questdb/tick/mock"
	tickUC "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/usecase/tick"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/config"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/errors"
)

var testCfg = config.AnalyticsConfig{
	DefaultBucketWidth:   "1m",
	DefaultRollingWindow: 20,
	SignificanceLevel:    0.05,
	MaxRowsPerSymbol:     50000,
	MaxBuckets:           10000,
}

func newTestUsecase(t *testing.T, cfg config.AnalyticsConfig, mockFn func(repo *tickMock.MockTickRepository)) *Usecase {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := tickMock.NewMockTickRepository(ctrl)
	mockFn(repo)

	ticks := tickUC.NewUsecase(repo, nil, []string{"BTCUSDT", "ETHUSDT"}, cfg.MaxRowsPerSymbol)
	return NewUsecase(ticks, analytics.NewEngine(cfg.SignificanceLevel), nil, cfg)
}

func pairTicks(symbol string, base time.Time, prices []float64) []*tickInfra.Tick {
	// newest-first, the way the repository serves recent rows
	out := make([]*tickInfra.Tick, 0, len(prices))
	for i := len(prices) - 1; i >= 0; i-- {
		out = append(out, &tickInfra.Tick{
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Symbol:    symbol,
			Price:     prices[i],
			Size:      1,
		})
	}
	return out
}

func TestUsecase_Analyze_FourTickScenario(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	uc := newTestUsecase(t, testCfg, func(repo *tickMock.MockTickRepository) {
		repo.EXPECT().RecentBySymbol(gomock.Any(), "BTCUSDT", 50000).
			Return(pairTicks("BTCUSDT", base, []float64{100, 101, 99, 102}), nil)
		repo.EXPECT().RecentBySymbol(gomock.Any(), "ETHUSDT", 50000).
			Return(pairTicks("ETHUSDT", base, []float64{50, 50.5, 49.5, 51}), nil)
	})

	out, err := uc.Analyze(context.Background(), pairDomain.Request{
		SymbolA:       "btcusdt",
		SymbolB:       "ETHUSDT",
		BucketWidth:   "1s",
		RollingWindow: 3,
	})

	assert.NoError(t, err)
	assert.Equal(t, "BTCUSDT", out.SymbolA)
	assert.Equal(t, "ETHUSDT", out.SymbolB)
	assert.Equal(t, "1s", out.BucketWidth)
	assert.Len(t, out.Buckets, 4)
	assert.Equal(t, base, out.Buckets[0])

	if assert.NotNil(t, out.Result.HedgeRatio) {
		assert.InDelta(t, 2.0, *out.Result.HedgeRatio, 1e-9)
	}
	assert.Len(t, out.Result.Spread, 4)
	for i, v := range out.Result.Spread {
		if assert.NotNil(t, v, "spread index %d", i) {
			assert.InDelta(t, 0.0, *v, 1e-9)
		}
	}
	// constant spread: window stddev is zero, so no z-score anywhere
	for _, v := range out.Result.ZScore {
		assert.Nil(t, v)
	}
	if assert.Len(t, out.Result.Correlation, 4) {
		assert.Nil(t, out.Result.Correlation[0])
		assert.Nil(t, out.Result.Correlation[1])
		if assert.NotNil(t, out.Result.Correlation[2]) {
			assert.InDelta(t, 1.0, *out.Result.Correlation[2], 1e-9)
		}
	}
	// four buckets cannot feed the unit-root test
	assert.True(t, out.Result.InsufficientData)
	assert.Nil(t, out.Result.ADFPValue)
	assert.Nil(t, out.Result.IsStationary)

	assert.Equal(t, []*float64{fp(100), fp(101), fp(99), fp(102)}, out.LegA.Close)
	assert.Equal(t, []float64{1, 1, 1, 1}, out.LegA.Volume)
}

func fp(v float64) *float64 { return &v }

func TestUsecase_Analyze_Errors(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		cfg      config.AnalyticsConfig
		req      pairDomain.Request
		mockFn   func(repo *tickMock.MockTickRepository)
		wantCode errors.Code
	}{
		{
			name:     "unsupported bucket width",
			cfg:      testCfg,
			req:      pairDomain.Request{SymbolA: "BTCUSDT", SymbolB: "ETHUSDT", BucketWidth: "7m"},
			mockFn:   func(repo *tickMock.MockTickRepository) {},
			wantCode: errors.CodeInvalidInterval,
		},
		{
			name:     "unknown symbol surfaces before any read",
			cfg:      testCfg,
			req:      pairDomain.Request{SymbolA: "DOGEUSDT", SymbolB: "ETHUSDT", BucketWidth: "1m"},
			mockFn:   func(repo *tickMock.MockTickRepository) {},
			wantCode: errors.CodeUnknownSymbol,
		},
		{
			name: "empty leg yields no data",
			cfg:  testCfg,
			req:  pairDomain.Request{SymbolA: "BTCUSDT", SymbolB: "ETHUSDT", BucketWidth: "1m"},
			mockFn: func(repo *tickMock.MockTickRepository) {
				repo.EXPECT().RecentBySymbol(gomock.Any(), "BTCUSDT", 50000).Return(nil, nil)
			},
			wantCode: errors.CodeNoData,
		},
		{
			name: "bucket guard rejects too fine a width over a long range",
			cfg: config.AnalyticsConfig{
				DefaultBucketWidth:   "1m",
				DefaultRollingWindow: 20,
				SignificanceLevel:    0.05,
				MaxRowsPerSymbol:     50000,
				MaxBuckets:           10,
			},
			req: pairDomain.Request{SymbolA: "BTCUSDT", SymbolB: "ETHUSDT", BucketWidth: "1s"},
			mockFn: func(repo *tickMock.MockTickRepository) {
				// two ticks a minute apart span 61 one-second buckets
				repo.EXPECT().RecentBySymbol(gomock.Any(), "BTCUSDT", 50000).Return([]*tickInfra.Tick{
					{Timestamp: base, Symbol: "BTCUSDT", Price: 100, Size: 1},
					{Timestamp: base.Add(time.Minute), Symbol: "BTCUSDT", Price: 101, Size: 1},
				}, nil)
				repo.EXPECT().RecentBySymbol(gomock.Any(), "ETHUSDT", 50000).Return([]*tickInfra.Tick{
					{Timestamp: base, Symbol: "ETHUSDT", Price: 50, Size: 1},
				}, nil)
			},
			wantCode: errors.CodeInvalidInterval,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := newTestUsecase(t, tc.cfg, tc.mockFn)

			out, err := uc.Analyze(context.Background(), tc.req)

			assert.Nil(t, out)
			assert.True(t, errors.IsCode(err, tc.wantCode), "got %v", err)
		})
	}
}

func TestUsecase_Analyze_SecondLegEmpty(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	uc := newTestUsecase(t, testCfg, func(repo *tickMock.MockTickRepository) {
		repo.EXPECT().RecentBySymbol(gomock.Any(), "BTCUSDT", 50000).
			Return(pairTicks("BTCUSDT", base, []float64{100, 101}), nil)
		repo.EXPECT().RecentBySymbol(gomock.Any(), "ETHUSDT", 50000).Return(nil, nil)
	})

	out, err := uc.Analyze(context.Background(), pairDomain.Request{
		SymbolA: "BTCUSDT", SymbolB: "ETHUSDT", BucketWidth: "1m",
	})

	assert.Nil(t, out)
	assert.True(t, errors.IsCode(err, errors.CodeNoData))
	assert.Contains(t, err.Error(), "ETHUSDT")
}

func TestUsecase_Analyze_DefaultsApplied(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	uc := newTestUsecase(t, testCfg, func(repo *tickMock.MockTickRepository) {
		repo.EXPECT().RecentBySymbol(gomock.Any(), "BTCUSDT", 50000).
			Return(pairTicks("BTCUSDT", base, []float64{100, 101}), nil)
		repo.EXPECT().RecentBySymbol(gomock.Any(), "ETHUSDT", 50000).
			Return(pairTicks("ETHUSDT", base, []float64{50, 50.5}), nil)
	})

	out, err := uc.Analyze(context.Background(), pairDomain.Request{
		SymbolA: "BTCUSDT", SymbolB: "ETHUSDT",
	})

	assert.NoError(t, err)
	assert.Equal(t, "1m", out.BucketWidth)
	assert.Equal(t, 20, out.RollingWindow)
}

func TestUsecase_ExportCSV(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	uc := newTestUsecase(t, testCfg, func(repo *tickMock.MockTickRepository) {
		repo.EXPECT().RecentBySymbol(gomock.Any(), "BTCUSDT", 50000).
			Return(pairTicks("BTCUSDT", base, []float64{100, 101, 99, 102}), nil)
		repo.EXPECT().RecentBySymbol(gomock.Any(), "ETHUSDT", 50000).
			Return(pairTicks("ETHUSDT", base, []float64{50, 50.5, 49.5, 51}), nil)
	})

	var buf bytes.Buffer
	err := uc.ExportCSV(context.Background(), pairDomain.Request{
		SymbolA: "BTCUSDT", SymbolB: "ETHUSDT", BucketWidth: "1s", RollingWindow: 3,
	}, &buf)

	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, "bucket_start,close_a,volume_a,close_b,volume_b,spread,zscore,correlation", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2025-03-14T09:00:00Z,100,1,50,1,0,"))
	// z-score column stays empty where the statistic is undefined
	assert.Contains(t, lines[1], ",,")
}
