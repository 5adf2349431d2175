package client

import (
	"context"
	"encoding/json"

	"cryptocom/pkg/core"
)

// Symbols lists every tradable market.
func (c *Client) Symbols(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, core.OpGetInstruments, nil)
}

// Tickers returns the tickers of all markets.
func (c *Client) Tickers(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, core.OpGetTickers, nil)
}

// Ticker returns the ticker of one market ("ethbtc" on v1, "ETH_BTC" on v2).
func (c *Client) Ticker(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.call(ctx, core.OpGetTickers, core.Params{core.ParamSymbol: symbol})
}

// Klines returns candlesticks for period (e.g. "1min", "1day"). v1 only; v2
// clients fail with core.KindUnsupported without sending anything.
func (c *Client) Klines(ctx context.Context, symbol, period string) (json.RawMessage, error) {
	return c.call(ctx, core.OpGetKlines, core.Params{
		core.ParamSymbol: symbol,
		core.ParamPeriod: period,
	})
}

// Trades returns the latest public trades of a market.
func (c *Client) Trades(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.call(ctx, core.OpGetTrades, core.Params{core.ParamSymbol: symbol})
}

// Prices returns the latest execution price of every market. v1 only.
func (c *Client) Prices(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, core.OpGetPrices, nil)
}

// OrderBook returns the book of a market. depth is the v1 precision step
// ("step0", "step1", "step2"; empty means "step0") or the v2 number of levels
// (empty means the exchange default).
func (c *Client) OrderBook(ctx context.Context, symbol, depth string) (json.RawMessage, error) {
	return c.call(ctx, core.OpGetOrderBook, core.Params{
		core.ParamSymbol: symbol,
		core.ParamDepth:  depth,
	})
}
