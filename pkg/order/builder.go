// Package order provides a fluent builder for core.OrderRequest.
package order

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"cryptocom/pkg/core"
)

// Builder accumulates the first parse error and reports it on Build.
//
// Example:
//
//	req, err := order.NewBuilder("ETH_BTC").
//	    Buy().
//	    Limit().
//	    Price("0.025").
//	    Quantity("1.5").
//	    WithGeneratedClientOrderID().
//	    Build()
type Builder struct {
	req core.OrderRequest
	err error
}

// NewBuilder creates a builder for a market symbol. Orders default to LIMIT BUY.
func NewBuilder(symbol string) *Builder {
	return &Builder{
		req: core.OrderRequest{
			Symbol: symbol,
			Side:   core.SideBuy,
			Type:   core.TypeLimit,
		},
	}
}

// Side sets the order side.
func (b *Builder) Side(side core.OrderSide) *Builder {
	if b.err != nil {
		return b
	}
	b.req.Side = side
	return b
}

// Buy sets the order side to buy.
func (b *Builder) Buy() *Builder {
	return b.Side(core.SideBuy)
}

// Sell sets the order side to sell.
func (b *Builder) Sell() *Builder {
	return b.Side(core.SideSell)
}

// Type sets the order type.
func (b *Builder) Type(orderType core.OrderType) *Builder {
	if b.err != nil {
		return b
	}
	b.req.Type = orderType
	return b
}

// Market sets the order type to market.
func (b *Builder) Market() *Builder {
	return b.Type(core.TypeMarket)
}

// Limit sets the order type to limit.
func (b *Builder) Limit() *Builder {
	return b.Type(core.TypeLimit)
}

// Price sets the unit price from its decimal text.
func (b *Builder) Price(price string) *Builder {
	return b.parse("price", price, &b.req.Price)
}

// PriceDecimal sets the unit price.
func (b *Builder) PriceDecimal(price apd.Decimal) *Builder {
	if b.err != nil {
		return b
	}
	b.req.Price.Set(&price)
	return b
}

// Quantity sets the amount from its decimal text.
func (b *Builder) Quantity(qty string) *Builder {
	return b.parse("quantity", qty, &b.req.Quantity)
}

// QuantityDecimal sets the amount.
func (b *Builder) QuantityDecimal(qty apd.Decimal) *Builder {
	if b.err != nil {
		return b
	}
	b.req.Quantity.Set(&qty)
	return b
}

// Notional sets the amount to spend on a v2 market buy.
func (b *Builder) Notional(notional string) *Builder {
	return b.parse("notional", notional, &b.req.Notional)
}

// ClientOrderID sets a caller-assigned identifier (v2 only).
func (b *Builder) ClientOrderID(id string) *Builder {
	if b.err != nil {
		return b
	}
	b.req.ClientOrderID = id
	return b
}

// WithGeneratedClientOrderID assigns a random identifier. The exchange limits
// client ids to 36 characters, so the uuid is sent without dashes.
func (b *Builder) WithGeneratedClientOrderID() *Builder {
	return b.ClientOrderID(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// PayFeeWithPlatformCoin pays the fee in the exchange coin (v1 only).
func (b *Builder) PayFeeWithPlatformCoin() *Builder {
	if b.err != nil {
		return b
	}
	b.req.UseFeeCoin = true
	return b
}

// Build validates and returns the order request.
func (b *Builder) Build() (core.OrderRequest, error) {
	if b.err != nil {
		return core.OrderRequest{}, b.err
	}
	if b.req.Quantity.Negative || b.req.Price.Negative || b.req.Notional.Negative {
		return core.OrderRequest{}, fmt.Errorf("amounts must not be negative")
	}
	if b.req.Quantity.IsZero() && b.req.Notional.IsZero() {
		return core.OrderRequest{}, fmt.Errorf("quantity or notional is required")
	}
	if err := b.req.Validate(); err != nil {
		return core.OrderRequest{}, err
	}
	return b.req, nil
}

func (b *Builder) parse(field, text string, dst *apd.Decimal) *Builder {
	if b.err != nil {
		return b
	}
	if _, _, err := dst.SetString(text); err != nil {
		b.err = fmt.Errorf("parse %s: %w", field, err)
	}
	return b
}
