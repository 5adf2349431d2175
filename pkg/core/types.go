package core

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// OrderSide represents the direction of an order (buy or sell).
type OrderSide int

// Order side constants define the direction of a trade.
const (
	// SideBuy indicates an order to purchase an asset.
	SideBuy OrderSide = iota
	// SideSell indicates an order to sell an asset.
	SideSell
)

// String returns the string representation of the order side ("BUY" or "SELL").
func (s OrderSide) String() string {
	return [...]string{"BUY", "SELL"}[s]
}

// MarshalJSON implements json.Marshaler for OrderSide.
func (s OrderSide) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for OrderSide.
// It accepts both uppercase and lowercase formats.
func (s *OrderSide) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"BUY"`, `"buy"`:
		*s = SideBuy
	case `"SELL"`, `"sell"`:
		*s = SideSell
	}
	return nil
}

// OrderType represents the kind of order to place. The wire value differs per
// generation and is resolved by the protocol.
type OrderType int

// Order type constants define how an order is executed.
const (
	// TypeMarket executes immediately at the best available price.
	TypeMarket OrderType = iota
	// TypeLimit executes at a specified price or better.
	TypeLimit
)

// String returns the string representation of the order type.
func (t OrderType) String() string {
	return [...]string{"MARKET", "LIMIT"}[t]
}

// MarshalJSON implements json.Marshaler for OrderType.
func (t OrderType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for OrderType.
// It accepts both uppercase and lowercase formats.
func (t *OrderType) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"MARKET"`, `"market"`:
		*t = TypeMarket
	case `"LIMIT"`, `"limit"`:
		*t = TypeLimit
	}
	return nil
}

// OrderRequest contains the parameters of a new order.
type OrderRequest struct {
	// Symbol is the market, e.g. "ethbtc" on v1 or "ETH_BTC" on v2.
	Symbol string
	// Side is the order direction.
	Side OrderSide
	// Type selects LIMIT or MARKET execution.
	Type OrderType
	// Quantity is the amount to trade. For v1 market buys it is the total to spend.
	Quantity apd.Decimal
	// Price is the unit price; required for LIMIT, ignored for MARKET.
	Price apd.Decimal
	// Notional is the amount to spend on a v2 MARKET buy.
	Notional apd.Decimal
	// ClientOrderID is an optional caller-assigned identifier (v2 only).
	ClientOrderID string
	// UseFeeCoin pays fees in the platform coin (v1 only).
	UseFeeCoin bool
}

// Validate performs the structural checks needed to build the request. Values
// are not range-checked; the exchange is the authority on those.
func (r *OrderRequest) Validate() error {
	if r.Symbol == "" {
		return errors.New("symbol is required")
	}
	if r.Side != SideBuy && r.Side != SideSell {
		return errors.New("invalid order side")
	}
	switch r.Type {
	case TypeLimit:
		if r.Price.IsZero() {
			return errors.New("price is required for limit orders")
		}
	case TypeMarket:
	default:
		return errors.New("invalid order type")
	}
	return nil
}

// ID is an exchange identifier that may arrive as a JSON number (v1) or a
// JSON string (v2).
type ID string

// UnmarshalJSON accepts both numbers and strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	*id = ID(data)
	return nil
}

// OrderAck is the payload of a successful create-order call.
type OrderAck struct {
	// OrderID is the exchange-assigned order identifier.
	OrderID ID `json:"order_id"`
	// ClientOrderID echoes the caller-assigned identifier (v2 only).
	ClientOrderID string `json:"client_oid,omitempty"`
}
