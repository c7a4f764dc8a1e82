package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmodel/xerr"
)

func TestOrdinalsAreFrozen(t *testing.T) {
	assert.Equal(t, []string{"spot", "perp"}, InstrumentTypes().Names())
	assert.Equal(t, []string{"update", "snapshot"}, OrderbookUpdateTypes().Names())
	assert.Equal(t, []string{
		"starknet", "solana", "sui", "aptos", "ethereum", "base", "arbitrum",
		"optimism", "zksync", "polygon", "bnb", "avalanche", "gnosis", "worldchain",
	}, Chains().Names())

	assert.Equal(t, []string{"buy", "sell"}, TradeSides().Names())

	assert.Equal(t, uint32(0), uint32(Spot))
	assert.Equal(t, uint32(1), uint32(Perp))
	assert.Equal(t, uint32(4), uint32(Ethereum))
	assert.Equal(t, uint32(13), uint32(Worldchain))
	assert.Equal(t, uint32(1), uint32(Snapshot))
	assert.Equal(t, uint32(1), uint32(Sell))
}

func TestTradeSide(t *testing.T) {
	s, err := ParseTradeSide("SELL")
	require.NoError(t, err)
	assert.Equal(t, Sell, s)
	assert.Equal(t, Buy, s.Opposite())
	assert.Equal(t, Sell, Buy.Opposite())

	unknown := TradeSide(7)
	assert.False(t, unknown.Known())
	assert.Equal(t, unknown, unknown.Opposite())
	assert.Equal(t, "unknown(7)", unknown.String())

	b, err := Sell.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"sell"`, string(b))
	var back TradeSide
	require.NoError(t, back.UnmarshalJSON(b))
	assert.Equal(t, Sell, back)

	_, err = ParseTradeSide("hold")
	assert.True(t, errors.Is(err, xerr.ErrUnknownEnumerant))
}

func TestOrdinalsSpanInt32Enums(t *testing.T) {
	wide := Chain(1 << 20)
	b, err := wide.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "1048576", string(b))

	var back Chain
	require.NoError(t, back.UnmarshalJSON(b))
	assert.Equal(t, wide, back)
	assert.False(t, back.Known())
}

func TestUnknownChainOrdinal(t *testing.T) {
	next := Chain(Chains().Len())
	assert.False(t, next.Known())
	assert.Equal(t, "unknown(14)", next.String())
	assert.False(t, next.IsEVM())

	b, err := next.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "14", string(b))

	var back Chain
	require.NoError(t, back.UnmarshalJSON(b))
	assert.Equal(t, next, back)
}

func TestParseEnums(t *testing.T) {
	c, err := ParseChain("Arbitrum")
	require.NoError(t, err)
	assert.Equal(t, Arbitrum, c)

	it, err := ParseInstrumentType("PERP")
	require.NoError(t, err)
	assert.Equal(t, Perp, it)

	u, err := ParseOrderbookUpdateType("snapshot")
	require.NoError(t, err)
	assert.Equal(t, Snapshot, u)

	_, err = ParseChain("fantom")
	assert.True(t, errors.Is(err, xerr.ErrUnknownEnumerant))
}

func TestInstrumentTypeID(t *testing.T) {
	assert.Equal(t, uint64(1), Spot.ID())
	assert.Equal(t, uint64(2), Perp.ID())

	for _, it := range InstrumentTypes().Values() {
		back, err := InstrumentTypeFromID(it.ID())
		require.NoError(t, err)
		assert.Equal(t, it, back)
	}
	_, err := InstrumentTypeFromID(0)
	assert.True(t, errors.Is(err, xerr.ErrUnknownEnumerant))
	_, err = InstrumentTypeFromID(3)
	assert.True(t, errors.Is(err, xerr.ErrUnknownEnumerant))
}

func TestEVMChains(t *testing.T) {
	for _, c := range []Chain{Starknet, Solana, Sui, Aptos} {
		assert.False(t, c.IsEVM(), c.String())
	}
	for _, c := range Chains().Values() {
		id, ok := c.EVMChainID()
		if !ok {
			continue
		}
		back, ok := ChainFromEVMChainID(id)
		require.True(t, ok)
		assert.Equal(t, c, back)
	}
	id, ok := Arbitrum.EVMChainID()
	require.True(t, ok)
	assert.Equal(t, uint64(42161), id)

	_, ok = ChainFromEVMChainID(999999)
	assert.False(t, ok)
}
