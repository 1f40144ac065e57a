package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	tickInfra "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/infrastructure/questdb/tick"
)

func TestStreamURL(t *testing.T) {
	url := StreamURL("wss://fstream.binance.com/stream", []string{"BTCUSDT", " ethusdt "})
	assert.Equal(t, "wss://fstream.binance.com/stream?streams=btcusdt@trade/ethusdt@trade", url)
}

func TestParseTrade(t *testing.T) {
	testCases := []struct {
		name     string
		message  string
		assertFn func(t *testing.T, tick *tickInfra.Tick, err error)
	}{
		{
			name:    "well-formed trade event",
			message: `{"stream":"btcusdt@trade","data":{"s":"BTCUSDT","p":"50123.45","q":"0.25","T":1741942800123}}`,
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "BTCUSDT", tick.Symbol)
				assert.Equal(t, 50123.45, tick.Price)
				assert.Equal(t, 0.25, tick.Size)
				assert.Equal(t, time.UnixMilli(1741942800123).UTC(), tick.Timestamp)
			},
		},
		{
			name:    "symbol recovered from stream name when payload omits it",
			message: `{"stream":"ethusdt@trade","data":{"p":"2500.1","q":"1","T":1741942800123}}`,
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "ETHUSDT", tick.Symbol)
			},
		},
		{
			name:    "garbage payload",
			message: `not json at all`,
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.Error(t, err)
				assert.Nil(t, tick)
			},
		},
		{
			name:    "unparseable price",
			message: `{"stream":"btcusdt@trade","data":{"s":"BTCUSDT","p":"not-a-number","q":"1","T":1741942800123}}`,
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.Error(t, err)
				assert.Nil(t, tick)
			},
		},
		{
			name:    "unparseable quantity",
			message: `{"stream":"btcusdt@trade","data":{"s":"BTCUSDT","p":"1","q":"","T":1741942800123}}`,
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.Error(t, err)
				assert.Nil(t, tick)
			},
		},
		{
			name:    "missing trade time",
			message: `{"stream":"btcusdt@trade","data":{"s":"BTCUSDT","p":"1","q":"1"}}`,
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.Error(t, err)
				assert.Nil(t, tick)
			},
		},
		{
			name:    "no symbol anywhere",
			message: `{"stream":"","data":{"p":"1","q":"1","T":1741942800123}}`,
			assertFn: func(t *testing.T, tick *tickInfra.Tick, err error) {
				assert.Error(t, err)
				assert.Nil(t, tick)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tick, err := ParseTrade([]byte(tc.message))
			tc.assertFn(t, tick, err)
		})
	}
}
