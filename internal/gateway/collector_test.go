package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	tickDomainMock "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/domain/tick/mock"
	tickInfra "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/infrastructure/questdb/tick"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/config"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/logger"
)

func testFeedConfig() config.FeedConfig {
	return config.FeedConfig{
		URL:            "wss://example.invalid/stream",
		Symbols:        []string{"BTCUSDT"},
		BufferSize:     16,
		FlushBatchSize: 3,
		FlushInterval:  10 * time.Millisecond,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     time.Second,
	}
}

func someTick(price float64) *tickInfra.Tick {
	return &tickInfra.Tick{Timestamp: time.Now(), Symbol: "BTCUSDT", Price: price, Size: 1}
}

func TestCollector_FlushOnBatchSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	flushed := make(chan int, 1)
	ticks := tickDomainMock.NewMockUsecase(ctrl)
	ticks.EXPECT().AppendBatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, batch []*tickInfra.Tick) (int64, int, error) {
			flushed <- len(batch)
			return int64(len(batch)), 0, nil
		})

	c := NewCollector(testFeedConfig(), ticks, noopLogger{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for i := 0; i < 3; i++ {
		c.buffer <- someTick(float64(100 + i))
	}
	go c.flushLoop(ctx)

	select {
	case n := <-flushed:
		assert.Equal(t, 3, n)
	case <-time.After(time.Second):
		t.Fatal("batch was never flushed")
	}
}

func TestCollector_FlushOnInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	flushed := make(chan int, 1)
	ticks := tickDomainMock.NewMockUsecase(ctrl)
	ticks.EXPECT().AppendBatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, batch []*tickInfra.Tick) (int64, int, error) {
			select {
			case flushed <- len(batch):
			default:
			}
			return int64(len(batch)), 0, nil
		}).AnyTimes()

	c := NewCollector(testFeedConfig(), ticks, noopLogger{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// one tick, below the batch size: only the interval can flush it
	c.buffer <- someTick(100)
	go c.flushLoop(ctx)

	select {
	case n := <-flushed:
		assert.Equal(t, 1, n)
	case <-time.After(time.Second):
		t.Fatal("interval flush never happened")
	}
}

func TestCollector_DrainsOnShutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	flushed := make(chan int, 1)
	ticks := tickDomainMock.NewMockUsecase(ctrl)
	ticks.EXPECT().AppendBatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, batch []*tickInfra.Tick) (int64, int, error) {
			flushed <- len(batch)
			return int64(len(batch)), 0, nil
		})

	cfg := testFeedConfig()
	cfg.FlushInterval = time.Hour // interval never fires, only the drain can flush
	c := NewCollector(cfg, ticks, noopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.buffer <- someTick(100)
	c.buffer <- someTick(101)

	done := make(chan struct{})
	go func() {
		c.flushLoop(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("flush loop did not stop on cancellation")
	}
	assert.Equal(t, 2, <-flushed)
}

func TestCollector_StoreErrorKeepsLoopAlive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	calls := make(chan struct{}, 2)
	ticks := tickDomainMock.NewMockUsecase(ctrl)
	ticks.EXPECT().AppendBatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, batch []*tickInfra.Tick) (int64, int, error) {
			calls <- struct{}{}
			return 0, 0, assert.AnError
		}).Times(2)

	c := NewCollector(testFeedConfig(), ticks, noopLogger{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.flushLoop(ctx)

	for round := 0; round < 2; round++ {
		for i := 0; i < 3; i++ {
			c.buffer <- someTick(float64(100 + i))
		}
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatalf("flush round %d never happened", round)
		}
	}
}

// noopLogger satisfies logger.Interface for tests that do not care about output.
type noopLogger struct{}

func (noopLogger) Debug(string, ...logger.Field)                          {}
func (noopLogger) DebugContext(context.Context, string, ...logger.Field)  {}
func (noopLogger) Error(error, ...logger.Field)                           {}
func (noopLogger) ErrorContext(context.Context, error, ...logger.Field)   {}
func (noopLogger) GetZap() *zap.Logger                                    { return zap.NewNop() }
func (noopLogger) Info(string, ...logger.Field)                           {}
func (noopLogger) InfoContext(context.Context, string, ...logger.Field)   {}
func (noopLogger) Sync() error                                            { return nil }
func (noopLogger) Warn(string, ...logger.Field)                           {}
func (noopLogger) WarnContext(context.Context, string, ...logger.Field)   {}
func (noopLogger) WithFields(...logger.Field) *logger.Logger              { return nil }
