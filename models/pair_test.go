package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmodel/xerr"
)

func TestParsePair(t *testing.T) {
	for _, id := range []string{"btc/usd", "BTC-USD", "btc_usd", " BTC / usd "} {
		p, err := ParsePair(id)
		require.NoError(t, err, id)
		assert.Equal(t, Pair{Base: "BTC", Quote: "USD"}, p)
	}
	for _, id := range []string{"BTCUSD", "BTC/USD/ETH", "/USD", "BTC-"} {
		_, err := ParsePair(id)
		assert.True(t, errors.Is(err, xerr.ErrInvalidPair), id)
	}
}

func TestPairEqualityIsExact(t *testing.T) {
	assert.NotEqual(t, Pair{Base: "btc", Quote: "usd"}, NewPair("btc", "usd"))
	assert.Equal(t, "ETH-USD", NewPair("eth", "usd").FormatWithSeparator("-"))
	assert.Equal(t, "ETH/USD", NewPair("eth", "usd").String())
}

func TestFromStablePair(t *testing.T) {
	cases := map[string]Pair{
		"BTCUSDT":  {Base: "BTC", Quote: "USD"},
		"eth-usdc": {Base: "ETH", Quote: "USD"},
		"SOL_USDT": {Base: "SOL", Quote: "USD"},
		"LINK/DAI": {Base: "LINK", Quote: "USD"},
	}
	for in, want := range cases {
		got, ok := FromStablePair(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	_, ok := FromStablePair("BTCEUR")
	assert.False(t, ok)
	_, ok = FromStablePair("USDT")
	assert.False(t, ok)
}

func TestFromExchangeSymbol(t *testing.T) {
	cases := []struct {
		exchange, sym string
		want          Pair
	}{
		{"binance", "1000PEPEUSDT", NewPair("PEPE", "USD")},
		{"bybit", "SHIB1000USDT", NewPair("SHIB", "USD")},
		{"kucoin", "XBTUSDTM", NewPair("BTC", "USD")},
		{"okx", "ETH-USDT-SWAP", NewPair("ETH", "USD")},
		{"coinbase", "BTC-USD", NewPair("BTC", "USD")},
		{"kraken", "XBT/USD", NewPair("BTC", "USD")},
	}
	for _, tc := range cases {
		got, err := FromExchangeSymbol(tc.exchange, tc.sym)
		require.NoError(t, err, tc.sym)
		assert.Equal(t, tc.want, got, tc.sym)
	}
	_, err := FromExchangeSymbol("binance", "ETHBTC")
	assert.True(t, errors.Is(err, xerr.ErrInvalidPair))
}

func TestRouted(t *testing.T) {
	p, err := Routed(NewPair("BTC", "USD"), NewPair("ETH", "USD"))
	require.NoError(t, err)
	assert.Equal(t, NewPair("BTC", "ETH"), p)

	_, err = Routed(NewPair("BTC", "USD"), NewPair("ETH", "EUR"))
	assert.True(t, errors.Is(err, xerr.ErrInvalidPair))
}
