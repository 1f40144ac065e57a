// Package gateway maintains the upstream trade-stream subscription and
// turns raw exchange events into stored ticks.
package gateway

import (
	"context"
	"math"
	"time"

	"github.com/gorilla/websocket"

	tickDomain "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/domain/tick"
	tickInfra "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/infrastructure/questdb/tick"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/internal/metrics"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/config"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/logger"
)

const (
	handshakeTimeout = 10 * time.Second
	readLimit        = 1 << 20
	readTimeout      = 30 * time.Second
	pingInterval     = 15 * time.Second
	writeTimeout     = 5 * time.Second
)

// Collector subscribes to the combined trade stream, normalizes events and
// batches them into the tick store. A disconnect never kills the process:
// the collector reconnects with exponential backoff and resumes.
type Collector struct {
	cfg    config.FeedConfig
	ticks  tickDomain.Usecase
	logger logger.Interface
	buffer chan *tickInfra.Tick
}

// NewCollector creates a new collector.
func NewCollector(cfg config.FeedConfig, ticks tickDomain.Usecase, logger logger.Interface) *Collector {
	return &Collector{
		cfg:    cfg,
		ticks:  ticks,
		logger: logger,
		buffer: make(chan *tickInfra.Tick, cfg.BufferSize),
	}
}

// Run drives the stream until the context is cancelled. The flush loop runs
// alongside the reader so slow storage never stalls the websocket.
func (c *Collector) Run(ctx context.Context) error {
	flushDone := make(chan struct{})
	go func() {
		defer close(flushDone)
		c.flushLoop(ctx)
	}()

	backoff := c.cfg.InitialBackoff
	for {
		if ctx.Err() != nil {
			<-flushDone
			return ctx.Err()
		}

		err := c.consumeStream(ctx)
		if ctx.Err() != nil {
			<-flushDone
			return ctx.Err()
		}

		metrics.FeedReconnects.Inc()
		c.logger.Warn("trade stream disconnected, retrying",
			logger.NewField("error", err.Error()),
			logger.NewField("backoff", backoff.String()),
		)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			<-flushDone
			return ctx.Err()
		}
		backoff = time.Duration(math.Min(float64(c.cfg.MaxBackoff), float64(backoff)*1.8))
	}
}

func (c *Collector) consumeStream(ctx context.Context) error {
	url := StreamURL(c.cfg.URL, c.cfg.Symbols)

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	c.logger.Info("connected trade stream",
		logger.NewField("url", url),
		logger.NewField("symbols", c.cfg.Symbols),
	)

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	pingCtx, pingCancel := context.WithCancel(ctx)
	defer pingCancel()
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					c.logger.Warn("trade stream ping failed", logger.NewField("error", err.Error()))
					return
				}
			case <-pingCtx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		t, err := ParseTrade(message)
		if err != nil {
			metrics.TicksDropped.WithLabelValues(metrics.DropReasonMalformed).Inc()
			c.logger.Warn("dropping malformed trade event", logger.NewField("error", err.Error()))
			continue
		}

		select {
		case c.buffer <- t:
		default:
			// storage is behind; shedding is better than stalling the read loop
			metrics.TicksDropped.WithLabelValues(metrics.DropReasonBufferFull).Inc()
		}
	}
}

// flushLoop drains the buffer into the store, flushing on batch size or on
// the flush interval, whichever comes first. Storage errors drop the batch
// and keep the loop alive.
func (c *Collector) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]*tickInfra.Tick, 0, c.cfg.FlushBatchSize)
	for {
		select {
		case t := <-c.buffer:
			batch = append(batch, t)
			if len(batch) >= c.cfg.FlushBatchSize {
				c.flush(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				c.flush(ctx, batch)
				batch = batch[:0]
			}
		case <-ctx.Done():
			c.drain(batch)
			return
		}
	}
}

// drain performs one last flush after cancellation so buffered ticks are not
// lost on shutdown.
func (c *Collector) drain(batch []*tickInfra.Tick) {
	for {
		select {
		case t := <-c.buffer:
			batch = append(batch, t)
		default:
			if len(batch) > 0 {
				ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
				c.flush(ctx, batch)
				cancel()
			}
			return
		}
	}
}

func (c *Collector) flush(ctx context.Context, batch []*tickInfra.Tick) {
	stored, dropped, err := c.ticks.AppendBatch(ctx, batch)
	if err != nil {
		metrics.TicksDropped.WithLabelValues(metrics.DropReasonStoreError).Add(float64(len(batch)))
		c.logger.Error(err, logger.NewField("batch_size", len(batch)))
		return
	}

	metrics.BatchFlushes.Inc()
	if dropped > 0 {
		metrics.TicksDropped.WithLabelValues(metrics.DropReasonInvalid).Add(float64(dropped))
	}
	bySymbol := make(map[string]int, 4)
	for _, t := range batch {
		bySymbol[t.Symbol]++
	}
	for symbol, n := range bySymbol {
		metrics.TicksIngested.WithLabelValues(symbol).Add(float64(n))
	}
	c.logger.Debug("flushed tick batch",
		logger.NewField("stored", stored),
		logger.NewField("dropped", dropped),
	)
}
