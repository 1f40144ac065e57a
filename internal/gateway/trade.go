package gateway

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	tickInfra "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/infrastructure/questdb/tick"
)

// tradeEnvelope is the combined-stream wrapper Binance puts around every
// event: the originating stream name plus the event payload.
type tradeEnvelope struct {
	Stream string     `json:"stream"`
	Data   tradeEvent `json:"data"`
}

type tradeEvent struct {
	Symbol    string `json:"s"`
	Price     string `json:"p"`
	Quantity  string `json:"q"`
	TradeTime int64  `json:"T"`
}

// StreamURL builds the combined trade stream URL for the given symbols.
func StreamURL(base string, symbols []string) string {
	streams := make([]string, len(symbols))
	for i, sym := range symbols {
		streams[i] = strings.ToLower(strings.TrimSpace(sym)) + "@trade"
	}
	return base + "?streams=" + strings.Join(streams, "/")
}

// ParseTrade decodes one combined-stream message into a tick. Prices and
// quantities arrive as decimal strings and the event time as a millisecond
// epoch.
func ParseTrade(message []byte) (*tickInfra.Tick, error) {
	var env tradeEnvelope
	if err := json.Unmarshal(message, &env); err != nil {
		return nil, pkgerrors.Wrap(err, "decode trade envelope")
	}

	symbol := env.Data.Symbol
	if symbol == "" {
		symbol = parseStreamSymbol(env.Stream)
	}
	if symbol == "" {
		return nil, pkgerrors.New("trade event carries no symbol")
	}

	price, err := strconv.ParseFloat(env.Data.Price, 64)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "parse price %q", env.Data.Price)
	}
	qty, err := strconv.ParseFloat(env.Data.Quantity, 64)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "parse quantity %q", env.Data.Quantity)
	}
	if env.Data.TradeTime <= 0 {
		return nil, pkgerrors.Errorf("trade event carries no timestamp")
	}

	return &tickInfra.Tick{
		Timestamp: time.UnixMilli(env.Data.TradeTime).UTC(),
		Symbol:    strings.ToUpper(symbol),
		Price:     price,
		Size:      qty,
	}, nil
}

func parseStreamSymbol(stream string) string {
	parts := strings.Split(stream, "@")
	if len(parts) == 0 {
		return ""
	}
	return strings.ToUpper(parts[0])
}
