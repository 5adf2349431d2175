package protocol

import (
	"time"

	"cryptocom/pkg/core"
)

// LegacyTimeLayout is the v1 wire format of start/end dates.
const LegacyTimeLayout = "2006-01-02 15:04:05"

// DefaultLegacyBookStep is the v1 order book precision ("step0" is the finest).
const DefaultLegacyBookStep = "step0"

type dialect struct {
	endpoints map[core.Operation]core.Endpoint
	// wireValue converts a logical parameter value to the generation's wire value.
	wireValue func(v any) any
	// defaults are logical params added when the caller did not set them.
	defaults map[core.Operation]core.Params
}

var legacyPaging = map[string]string{
	core.ParamSymbol:   "symbol",
	core.ParamPageSize: "pageSize",
	core.ParamPage:     "page",
}

var legacyRange = map[string]string{
	core.ParamSymbol:   "symbol",
	core.ParamPageSize: "pageSize",
	core.ParamPage:     "page",
	core.ParamStart:    "startDate",
	core.ParamEnd:      "endDate",
}

var currentPaging = map[string]string{
	core.ParamSymbol:   "instrument_name",
	core.ParamPageSize: "page_size",
	core.ParamPage:     "page",
}

var currentRange = map[string]string{
	core.ParamSymbol:   "instrument_name",
	core.ParamPageSize: "page_size",
	core.ParamPage:     "page",
	core.ParamStart:    "start_ts",
	core.ParamEnd:      "end_ts",
}

var dialects = [...]dialect{
	core.GenerationV1: {
		endpoints: map[core.Operation]core.Endpoint{
			core.OpGetInstruments: {Path: "symbols"},
			core.OpGetTickers:     {Path: "ticker", Params: map[string]string{core.ParamSymbol: "symbol"}},
			core.OpGetKlines: {Path: "klines", Params: map[string]string{
				core.ParamSymbol: "symbol",
				core.ParamPeriod: "period",
			}},
			core.OpGetTrades: {Path: "trades", Params: map[string]string{core.ParamSymbol: "symbol"}},
			core.OpGetPrices: {Path: "ticker/price"},
			core.OpGetOrderBook: {Path: "depth", Params: map[string]string{
				core.ParamSymbol: "symbol",
				core.ParamDepth:  "type",
			}},
			core.OpGetBalance: {Path: "account", Private: true},
			core.OpCreateOrder: {Path: "order", Private: true, Params: map[string]string{
				core.ParamSymbol:   "symbol",
				core.ParamSide:     "side",
				core.ParamType:     "type",
				core.ParamQuantity: "volume",
				core.ParamPrice:    "price",
				core.ParamFeeCoin:  "fee_is_user_exchange_coin",
			}},
			core.OpGetOrder: {Path: "showOrder", Private: true, Params: map[string]string{
				core.ParamSymbol:  "symbol",
				core.ParamOrderID: "order_id",
			}},
			core.OpCancelOrder: {Path: "orders/cancel", Private: true, Params: map[string]string{
				core.ParamSymbol:  "symbol",
				core.ParamOrderID: "order_id",
			}},
			core.OpCancelAllOrders: {Path: "cancelAllOrders", Private: true, Params: map[string]string{
				core.ParamSymbol: "symbol",
			}},
			core.OpGetOpenOrders:   {Path: "openOrders", Private: true, Params: legacyPaging},
			core.OpGetOrderHistory: {Path: "allOrders", Private: true, Params: legacyRange},
			core.OpGetExecutedTrades: {Path: "myTrades", Private: true, Params: map[string]string{
				core.ParamSymbol:   "symbol",
				core.ParamPageSize: "pageSize",
				core.ParamPage:     "page",
				core.ParamStart:    "startDate",
				core.ParamEnd:      "endDate",
				core.ParamSort:     "sort",
			}},
		},
		wireValue: legacyValue,
		defaults: map[core.Operation]core.Params{
			core.OpGetOrderBook: {core.ParamDepth: DefaultLegacyBookStep},
		},
	},
	core.GenerationV2: {
		endpoints: map[core.Operation]core.Endpoint{
			core.OpGetInstruments: {Path: "public/get-instruments"},
			core.OpGetTickers:     {Path: "public/get-ticker", Params: map[string]string{core.ParamSymbol: "instrument_name"}},
			core.OpGetTrades:      {Path: "public/get-trades", Params: map[string]string{core.ParamSymbol: "instrument_name"}},
			core.OpGetOrderBook: {Path: "public/get-book", Params: map[string]string{
				core.ParamSymbol: "instrument_name",
				core.ParamDepth:  "depth",
			}},
			core.OpGetBalance: {Path: "private/get-account-summary", Private: true, Params: map[string]string{
				core.ParamCurrency: "currency",
			}},
			core.OpCreateOrder: {Path: "private/create-order", Private: true, Params: map[string]string{
				core.ParamSymbol:        "instrument_name",
				core.ParamSide:          "side",
				core.ParamType:          "type",
				core.ParamQuantity:      "quantity",
				core.ParamPrice:         "price",
				core.ParamNotional:      "notional",
				core.ParamClientOrderID: "client_oid",
			}},
			core.OpGetOrder: {Path: "private/get-order-detail", Private: true, Params: map[string]string{
				core.ParamOrderID: "order_id",
			}},
			core.OpCancelOrder: {Path: "private/cancel-order", Private: true, Params: map[string]string{
				core.ParamSymbol:  "instrument_name",
				core.ParamOrderID: "order_id",
			}},
			core.OpCancelAllOrders: {Path: "private/cancel-all-orders", Private: true, Params: map[string]string{
				core.ParamSymbol: "instrument_name",
			}},
			core.OpGetOpenOrders:     {Path: "private/get-open-orders", Private: true, Params: currentPaging},
			core.OpGetOrderHistory:   {Path: "private/get-order-history", Private: true, Params: currentRange},
			core.OpGetExecutedTrades: {Path: "private/get-trades", Private: true, Params: currentRange},
		},
		wireValue: currentValue,
	},
}

// legacyValue maps order types to 1 (limit) / 2 (market), times to
// "yyyy-MM-dd HH:mm:ss" and flags to 1.
func legacyValue(v any) any {
	switch val := v.(type) {
	case core.OrderType:
		if val == core.TypeMarket {
			return 2
		}
		return 1
	case core.OrderSide:
		return val.String()
	case time.Time:
		return val.Format(LegacyTimeLayout)
	case bool:
		if val {
			return 1
		}
		return 0
	}
	return v
}

// currentValue maps order types to "LIMIT"/"MARKET" and times to unix milliseconds.
func currentValue(v any) any {
	switch val := v.(type) {
	case core.OrderType:
		return val.String()
	case core.OrderSide:
		return val.String()
	case time.Time:
		return val.UnixMilli()
	}
	return v
}
