package core

// Operation represents a logical API call independent of the generation that
// serves it.
type Operation int

// Operation constants define all supported exchange operations.
const (
	// OpGetInstruments lists the tradable market symbols.
	OpGetInstruments Operation = iota
	// OpGetTickers retrieves tickers for all markets, or one when a symbol is given.
	OpGetTickers
	// OpGetKlines retrieves candlestick data for a period.
	OpGetKlines
	// OpGetTrades retrieves the most recent public trades of a market.
	OpGetTrades
	// OpGetPrices retrieves the latest execution price of every market.
	OpGetPrices
	// OpGetOrderBook retrieves the order book of a market.
	OpGetOrderBook
	// OpGetBalance retrieves account balances.
	OpGetBalance
	// OpCreateOrder submits a new order.
	OpCreateOrder
	// OpGetOrder retrieves the detail of a single order.
	OpGetOrder
	// OpCancelOrder cancels a single order.
	OpCancelOrder
	// OpCancelAllOrders cancels every order in a market.
	OpCancelAllOrders
	// OpGetOpenOrders lists open orders.
	OpGetOpenOrders
	// OpGetOrderHistory lists orders in any state.
	OpGetOrderHistory
	// OpGetExecutedTrades lists the account's executed trades.
	OpGetExecutedTrades
)

var operationNames = [...]string{
	"GET_INSTRUMENTS",
	"GET_TICKERS",
	"GET_KLINES",
	"GET_TRADES",
	"GET_PRICES",
	"GET_ORDER_BOOK",
	"GET_BALANCE",
	"CREATE_ORDER",
	"GET_ORDER",
	"CANCEL_ORDER",
	"CANCEL_ALL_ORDERS",
	"GET_OPEN_ORDERS",
	"GET_ORDER_HISTORY",
	"GET_EXECUTED_TRADES",
}

// Valid reports whether o is one of the defined operations.
func (o Operation) Valid() bool {
	return o >= 0 && int(o) < len(operationNames)
}

// String returns the string representation of the operation, or "UNKNOWN".
func (o Operation) String() string {
	if !o.Valid() {
		return "UNKNOWN"
	}
	return operationNames[o]
}

// Logical parameter names used by the facade. The endpoint table maps them to
// the wire names of each generation.
const (
	ParamSymbol        = "symbol"
	ParamPeriod        = "period"
	ParamDepth         = "depth"
	ParamCurrency      = "currency"
	ParamSide          = "side"
	ParamType          = "type"
	ParamQuantity      = "quantity"
	ParamPrice         = "price"
	ParamNotional      = "notional"
	ParamClientOrderID = "client_order_id"
	ParamFeeCoin       = "fee_coin"
	ParamOrderID       = "order_id"
	ParamPageSize      = "page_size"
	ParamPage          = "page"
	ParamStart         = "start"
	ParamEnd           = "end"
	ParamSort          = "sort"
)

// Endpoint is one row of a generation's endpoint table.
type Endpoint struct {
	// Path is appended to the generation base URL. For signed v2 calls it is
	// also the envelope "method".
	Path string
	// Private endpoints are signed and require credentials.
	Private bool
	// Params maps logical parameter names to wire names. Logical parameters
	// without an entry are not sent on this generation.
	Params map[string]string
}
