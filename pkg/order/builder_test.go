package order

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptocom/pkg/core"
)

func TestBuilder_Build(t *testing.T) {
	tests := []struct {
		name       string
		build      func() (core.OrderRequest, error)
		wantErr    bool
		errContain string
	}{
		{
			name: "valid limit buy",
			build: func() (core.OrderRequest, error) {
				return NewBuilder("ETH_BTC").Buy().Limit().Price("0.025").Quantity("1.5").Build()
			},
		},
		{
			name: "valid market sell",
			build: func() (core.OrderRequest, error) {
				return NewBuilder("ethbtc").Sell().Market().Quantity("2").Build()
			},
		},
		{
			name: "market buy by notional",
			build: func() (core.OrderRequest, error) {
				return NewBuilder("ETH_BTC").Buy().Market().Notional("0.5").Build()
			},
		},
		{
			name: "limit without price",
			build: func() (core.OrderRequest, error) {
				return NewBuilder("ETH_BTC").Limit().Quantity("1").Build()
			},
			wantErr:    true,
			errContain: "price is required",
		},
		{
			name: "missing symbol",
			build: func() (core.OrderRequest, error) {
				return NewBuilder("").Market().Quantity("1").Build()
			},
			wantErr:    true,
			errContain: "symbol is required",
		},
		{
			name: "no amount",
			build: func() (core.OrderRequest, error) {
				return NewBuilder("ETH_BTC").Market().Build()
			},
			wantErr:    true,
			errContain: "quantity or notional",
		},
		{
			name: "negative quantity",
			build: func() (core.OrderRequest, error) {
				return NewBuilder("ETH_BTC").Market().Quantity("-1").Build()
			},
			wantErr:    true,
			errContain: "negative",
		},
		{
			name: "bad price text",
			build: func() (core.OrderRequest, error) {
				return NewBuilder("ETH_BTC").Price("abc").Quantity("1").Build()
			},
			wantErr:    true,
			errContain: "parse price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBuilder_Fields(t *testing.T) {
	req, err := NewBuilder("ethbtc").
		Sell().
		Limit().
		Price("0.0250").
		Quantity("3").
		ClientOrderID("my-order").
		PayFeeWithPlatformCoin().
		Build()
	require.NoError(t, err)

	assert.Equal(t, "ethbtc", req.Symbol)
	assert.Equal(t, core.SideSell, req.Side)
	assert.Equal(t, core.TypeLimit, req.Type)
	assert.Equal(t, "0.0250", req.Price.Text('f'))
	assert.Equal(t, "3", req.Quantity.Text('f'))
	assert.Equal(t, "my-order", req.ClientOrderID)
	assert.True(t, req.UseFeeCoin)
}

func TestBuilder_Decimals(t *testing.T) {
	price, _, _ := apd.NewFromString("101.5")
	qty, _, _ := apd.NewFromString("0.01")

	req, err := NewBuilder("ETH_BTC").PriceDecimal(*price).QuantityDecimal(*qty).Build()
	require.NoError(t, err)
	assert.Equal(t, "101.5", req.Price.Text('f'))
	assert.Equal(t, "0.01", req.Quantity.Text('f'))
}

func TestBuilder_GeneratedClientOrderID(t *testing.T) {
	a, err := NewBuilder("ETH_BTC").Market().Quantity("1").WithGeneratedClientOrderID().Build()
	require.NoError(t, err)
	b, err := NewBuilder("ETH_BTC").Market().Quantity("1").WithGeneratedClientOrderID().Build()
	require.NoError(t, err)

	assert.Len(t, a.ClientOrderID, 32)
	assert.NotContains(t, a.ClientOrderID, "-")
	assert.NotEqual(t, a.ClientOrderID, b.ClientOrderID)
}

func TestBuilder_FirstErrorWins(t *testing.T) {
	_, err := NewBuilder("ETH_BTC").Quantity("x").Price("y").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse quantity")
}
