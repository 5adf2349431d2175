package core

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	req := NewRequest("GET", "public/get-ticker")

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "public/get-ticker", req.Path)
	assert.NotNil(t, req.Query)
	assert.NotNil(t, req.Headers)
	assert.False(t, req.Private)
}

func TestRequest_Setters(t *testing.T) {
	req := NewRequest("POST", "private/create-order")
	result := req.
		SetOperation(OpCreateOrder).
		SetQuery("a", 1).
		SetQueryParams(Params{"b": "2"}).
		SetForm(Params{"c": "3"}).
		SetBody(map[string]string{"d": "4"}).
		SetHeader("Content-Type", "application/json").
		SetPrivate(true)

	assert.Same(t, req, result)
	assert.Equal(t, OpCreateOrder, req.Operation)
	assert.Equal(t, Params{"a": 1, "b": "2"}, req.Query)
	assert.Equal(t, Params{"c": "3"}, req.Form)
	assert.Equal(t, "application/json", req.Headers["Content-Type"])
	assert.True(t, req.Private)
}

func TestParams_SortedKeys(t *testing.T) {
	p := Params{"symbol": "ethbtc", "api_key": "k", "time": 1, "side": "BUY"}
	assert.Equal(t, []string{"api_key", "side", "symbol", "time"}, p.SortedKeys())
	assert.Empty(t, Params{}.SortedKeys())
}

func TestParams_Clone(t *testing.T) {
	p := Params{"a": 1}
	c := p.Clone()
	c["b"] = 2
	assert.Len(t, p, 1)
	assert.Len(t, c, 2)
}

func TestFormatValue(t *testing.T) {
	dec, _, err := apd.NewFromString("0.000100")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "ETH_BTC", "ETH_BTC"},
		{"int", 42, "42"},
		{"int64", int64(1587523073344), "1587523073344"},
		{"uint8", uint8(7), "7"},
		{"float", 0.1, "0.1"},
		{"float_integral", 100.0, "100"},
		{"bool", true, "true"},
		{"json_number", json.Number("1.50"), "1.50"},
		{"decimal_keeps_precision", *dec, "0.000100"},
		{"decimal_pointer", dec, "0.000100"},
		{"stringer", SideSell, "SELL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestResult(t *testing.T) {
	ok := Success(json.RawMessage(`{"order_id":"1"}`))
	assert.True(t, ok.OK())
	payload, err := ok.Unwrap()
	require.NoError(t, err)
	assert.JSONEq(t, `{"order_id":"1"}`, string(payload))

	var ack OrderAck
	require.NoError(t, ok.Decode(&ack))
	assert.Equal(t, ID("1"), ack.OrderID)

	empty := Success(nil)
	assert.Equal(t, "null", string(empty.Payload))

	failed := Failure(NewError(GenerationV1, KindDecode, "bad"))
	assert.False(t, failed.OK())
	_, err = failed.Unwrap()
	assert.True(t, IsKind(err, KindDecode))
	assert.Error(t, failed.Decode(&ack))

	// A nil *Error must not leak as a non-nil error interface.
	_, err = Success(nil).Unwrap()
	assert.NoError(t, err)
}
