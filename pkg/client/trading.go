package client

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/apd/v3"

	"cryptocom/pkg/core"
)

// Balance returns the account balances.
func (c *Client) Balance(ctx context.Context, opts ...QueryOption) (json.RawMessage, error) {
	return c.call(ctx, core.OpGetBalance, applyQuery(nil, opts))
}

// CreateOrder submits req. A LIMIT order without a price fails with
// core.KindInvalidRequest before anything is sent; quantities and prices are
// otherwise passed through unchecked.
func (c *Client) CreateOrder(ctx context.Context, req core.OrderRequest) (json.RawMessage, error) {
	return c.PlaceOrder(ctx, req).Unwrap()
}

// PlaceOrder is CreateOrder returning the full Result, e.g. to decode a
// core.OrderAck.
func (c *Client) PlaceOrder(ctx context.Context, req core.OrderRequest) core.Result {
	if err := req.Validate(); err != nil {
		return c.reject(core.OpCreateOrder, core.NewError(c.config.Generation, core.KindInvalidRequest, err.Error()).
			WithCode(string(core.ErrCodeInvalidRequest)).
			WithCause(err))
	}
	return c.Do(ctx, core.OpCreateOrder, orderParams(req))
}

// CreateLimitOrder buys or sells amount at price.
func (c *Client) CreateLimitOrder(ctx context.Context, symbol string, side core.OrderSide, amount, price apd.Decimal) (json.RawMessage, error) {
	return c.CreateOrder(ctx, core.OrderRequest{
		Symbol:   symbol,
		Side:     side,
		Type:     core.TypeLimit,
		Quantity: amount,
		Price:    price,
	})
}

// CreateMarketOrder executes at the best available price. For buys total is
// the amount of quote currency to spend, for sells the amount to sell.
func (c *Client) CreateMarketOrder(ctx context.Context, symbol string, side core.OrderSide, total apd.Decimal) (json.RawMessage, error) {
	return c.CreateOrder(ctx, core.OrderRequest{
		Symbol:   symbol,
		Side:     side,
		Type:     core.TypeMarket,
		Quantity: total,
	})
}

// GetOrder returns the detail of one order. symbol is ignored on v2.
func (c *Client) GetOrder(ctx context.Context, symbol, orderID string) (json.RawMessage, error) {
	return c.call(ctx, core.OpGetOrder, core.Params{
		core.ParamSymbol:  symbol,
		core.ParamOrderID: orderID,
	})
}

// CancelOrder cancels one order.
func (c *Client) CancelOrder(ctx context.Context, symbol, orderID string) (json.RawMessage, error) {
	return c.call(ctx, core.OpCancelOrder, core.Params{
		core.ParamSymbol:  symbol,
		core.ParamOrderID: orderID,
	})
}

// CancelAllOrders cancels every open order in a market.
func (c *Client) CancelAllOrders(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.call(ctx, core.OpCancelAllOrders, core.Params{core.ParamSymbol: symbol})
}

// OpenOrders lists open orders, optionally for one market ("" for all).
func (c *Client) OpenOrders(ctx context.Context, symbol string, opts ...QueryOption) (json.RawMessage, error) {
	return c.call(ctx, core.OpGetOpenOrders, applyQuery(core.Params{core.ParamSymbol: symbol}, opts))
}

// AllOrders lists orders in any state: executed, pending and cancelled.
func (c *Client) AllOrders(ctx context.Context, symbol string, opts ...QueryOption) (json.RawMessage, error) {
	return c.call(ctx, core.OpGetOrderHistory, applyQuery(core.Params{core.ParamSymbol: symbol}, opts))
}

// ExecutedOrders lists the account's executed trades.
func (c *Client) ExecutedOrders(ctx context.Context, symbol string, opts ...QueryOption) (json.RawMessage, error) {
	return c.call(ctx, core.OpGetExecutedTrades, applyQuery(core.Params{core.ParamSymbol: symbol}, opts))
}

func orderParams(req core.OrderRequest) core.Params {
	p := core.Params{
		core.ParamSymbol: req.Symbol,
		core.ParamSide:   req.Side,
		core.ParamType:   req.Type,
	}
	if !req.Quantity.IsZero() {
		p[core.ParamQuantity] = req.Quantity
	}
	if req.Type == core.TypeLimit {
		p[core.ParamPrice] = req.Price
	}
	if !req.Notional.IsZero() {
		p[core.ParamNotional] = req.Notional
	}
	if req.ClientOrderID != "" {
		p[core.ParamClientOrderID] = req.ClientOrderID
	}
	if req.UseFeeCoin {
		p[core.ParamFeeCoin] = true
	}
	return p
}
