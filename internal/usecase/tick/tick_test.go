package tick

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	tickInfra "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/infrastructure/questdb/tick"
	tickMock "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/infrastructure/questdb/tick/mock"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/errors"
)

var trackedSymbols = []string{"BTCUSDT", "ETHUSDT"}

func TestUsecase_Append(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name     string
		tick     *tickInfra.Tick
		mockFn   func(repo *tickMock.MockTickRepository)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "valid tick is stored with canonical symbol",
			tick: &tickInfra.Tick{Timestamp: now, Symbol: "btcusdt", Price: 50000, Size: 0.5},
			mockFn: func(repo *tickMock.MockTickRepository) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, tk *tickInfra.Tick) error {
						assert.Equal(t, "BTCUSDT", tk.Symbol)
						return nil
					})
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:   "zero price rejected",
			tick:   &tickInfra.Tick{Timestamp: now, Symbol: "BTCUSDT", Price: 0, Size: 0.5},
			mockFn: func(repo *tickMock.MockTickRepository) {},
			assertFn: func(t *testing.T, err error) {
				assert.True(t, errors.IsCode(err, errors.CodeInvalidTick))
			},
		},
		{
			name:   "negative price rejected",
			tick:   &tickInfra.Tick{Timestamp: now, Symbol: "BTCUSDT", Price: -1, Size: 0.5},
			mockFn: func(repo *tickMock.MockTickRepository) {},
			assertFn: func(t *testing.T, err error) {
				assert.True(t, errors.IsCode(err, errors.CodeInvalidTick))
			},
		},
		{
			name:   "negative size rejected",
			tick:   &tickInfra.Tick{Timestamp: now, Symbol: "BTCUSDT", Price: 1, Size: -0.5},
			mockFn: func(repo *tickMock.MockTickRepository) {},
			assertFn: func(t *testing.T, err error) {
				assert.True(t, errors.IsCode(err, errors.CodeInvalidTick))
			},
		},
		{
			name:   "untracked symbol rejected",
			tick:   &tickInfra.Tick{Timestamp: now, Symbol: "DOGEUSDT", Price: 1, Size: 0.5},
			mockFn: func(repo *tickMock.MockTickRepository) {},
			assertFn: func(t *testing.T, err error) {
				assert.True(t, errors.IsCode(err, errors.CodeUnknownSymbol))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := tickMock.NewMockTickRepository(ctrl)
			tc.mockFn(repo)

			uc := NewUsecase(repo, nil, trackedSymbols, 50000)
			err := uc.Append(context.Background(), tc.tick)
			tc.assertFn(t, err)
		})
	}
}

func TestUsecase_AppendBatch(t *testing.T) {
	now := time.Now()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tickMock.NewMockTickRepository(ctrl)
	repo.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ticks []*tickInfra.Tick) (int64, error) {
			assert.Len(t, ticks, 2)
			return int64(len(ticks)), nil
		})

	uc := NewUsecase(repo, nil, trackedSymbols, 50000)
	stored, dropped, err := uc.AppendBatch(context.Background(), []*tickInfra.Tick{
		{Timestamp: now, Symbol: "btcusdt", Price: 50000, Size: 0.5},
		{Timestamp: now, Symbol: "ETHUSDT", Price: 2500, Size: 1},
		{Timestamp: now, Symbol: "ETHUSDT", Price: -2500, Size: 1}, // invalid price
		{Timestamp: now, Symbol: "DOGEUSDT", Price: 1, Size: 1},   // untracked
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), stored)
	assert.Equal(t, 2, dropped)
}

func TestUsecase_QueryRecent(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	// repository returns newest-first, the usecase must flip to ascending
	newestFirst := []*tickInfra.Tick{
		{Timestamp: base.Add(3 * time.Second), Symbol: "BTCUSDT", Price: 102, Size: 1},
		{Timestamp: base.Add(1 * time.Second), Symbol: "BTCUSDT", Price: 101, Size: 1},
		{Timestamp: base.Add(2 * time.Second), Symbol: "BTCUSDT", Price: 99, Size: 1},
		{Timestamp: base, Symbol: "BTCUSDT", Price: 100, Size: 1},
	}

	testCases := []struct {
		name     string
		symbol   string
		limit    int
		mockFn   func(repo *tickMock.MockTickRepository)
		assertFn func(t *testing.T, ticks []*tickInfra.Tick, err error)
	}{
		{
			name:   "orders ascending by timestamp regardless of store order",
			symbol: "BTCUSDT",
			limit:  100,
			mockFn: func(repo *tickMock.MockTickRepository) {
				repo.EXPECT().RecentBySymbol(gomock.Any(), "BTCUSDT", 100).Return(newestFirst, nil)
			},
			assertFn: func(t *testing.T, ticks []*tickInfra.Tick, err error) {
				assert.NoError(t, err)
				assert.Len(t, ticks, 4)
				for i := 1; i < len(ticks); i++ {
					assert.False(t, ticks[i].Timestamp.Before(ticks[i-1].Timestamp))
				}
				assert.Equal(t, 100.0, ticks[0].Price)
				assert.Equal(t, 102.0, ticks[3].Price)
			},
		},
		{
			name:   "limit above maximum is capped",
			symbol: "BTCUSDT",
			limit:  99999999,
			mockFn: func(repo *tickMock.MockTickRepository) {
				repo.EXPECT().RecentBySymbol(gomock.Any(), "BTCUSDT", 50000).Return(nil, nil)
			},
			assertFn: func(t *testing.T, ticks []*tickInfra.Tick, err error) {
				assert.NoError(t, err)
				assert.Len(t, ticks, 0)
			},
		},
		{
			name:   "zero limit falls back to maximum",
			symbol: "BTCUSDT",
			limit:  0,
			mockFn: func(repo *tickMock.MockTickRepository) {
				repo.EXPECT().RecentBySymbol(gomock.Any(), "BTCUSDT", 50000).Return(nil, nil)
			},
			assertFn: func(t *testing.T, ticks []*tickInfra.Tick, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:   "unknown symbol rejected without touching the store",
			symbol: "DOGEUSDT",
			limit:  100,
			mockFn: func(repo *tickMock.MockTickRepository) {},
			assertFn: func(t *testing.T, ticks []*tickInfra.Tick, err error) {
				assert.True(t, errors.IsCode(err, errors.CodeUnknownSymbol))
				assert.Nil(t, ticks)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := tickMock.NewMockTickRepository(ctrl)
			tc.mockFn(repo)

			uc := NewUsecase(repo, nil, trackedSymbols, 50000)
			ticks, err := uc.QueryRecent(context.Background(), tc.symbol, tc.limit)
			tc.assertFn(t, ticks, err)
		})
	}
}

func TestUsecase_Symbols(t *testing.T) {
	t.Run("store symbols returned sorted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := tickMock.NewMockTickRepository(ctrl)
		repo.EXPECT().DistinctSymbols(gomock.Any()).Return([]string{"ETHUSDT", "BTCUSDT"}, nil)

		uc := NewUsecase(repo, nil, trackedSymbols, 50000)
		symbols, err := uc.Symbols(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, symbols)
	})

	t.Run("empty store falls back to tracked set", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := tickMock.NewMockTickRepository(ctrl)
		repo.EXPECT().DistinctSymbols(gomock.Any()).Return(nil, nil)

		uc := NewUsecase(repo, nil, trackedSymbols, 50000)
		symbols, err := uc.Symbols(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, symbols)
	})
}
