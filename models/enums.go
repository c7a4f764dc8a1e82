package models

import (
	"marketmodel/enum"
	"marketmodel/xerr"
)

// InstrumentType ordinals: spot=0, perp=1. Append only.
type InstrumentType uint32

const (
	Spot InstrumentType = iota
	Perp
)

// Chain ordinals are frozen. New chains go at the end.
type Chain uint32

const (
	Starknet Chain = iota
	Solana
	Sui
	Aptos
	Ethereum
	Base
	Arbitrum
	Optimism
	ZkSync
	Polygon
	Bnb
	Avalanche
	Gnosis
	Worldchain
)

// OrderbookUpdateType ordinals: update=0, snapshot=1.
type OrderbookUpdateType uint32

const (
	Update OrderbookUpdateType = iota
	Snapshot
)

// TradeSide ordinals: buy=0, sell=1.
type TradeSide uint32

const (
	Buy TradeSide = iota
	Sell
)

var (
	tradeSides      = enum.New[TradeSide]("TradeSide", "buy", "sell")
	instrumentTypes = enum.New[InstrumentType]("InstrumentType", "spot", "perp")
	chains          = enum.New[Chain]("Chain",
		"starknet", "solana", "sui", "aptos", "ethereum", "base", "arbitrum",
		"optimism", "zksync", "polygon", "bnb", "avalanche", "gnosis", "worldchain")
	orderbookUpdateTypes = enum.New[OrderbookUpdateType]("OrderbookUpdateType", "update", "snapshot")
)

// InstrumentTypes exposes the registry for listing and validation.
func InstrumentTypes() *enum.Registry[InstrumentType] { return instrumentTypes }

func Chains() *enum.Registry[Chain] { return chains }

func OrderbookUpdateTypes() *enum.Registry[OrderbookUpdateType] { return orderbookUpdateTypes }

func TradeSides() *enum.Registry[TradeSide] { return tradeSides }

func (t InstrumentType) String() string { return instrumentTypes.String(t) }
func (t InstrumentType) Known() bool    { return instrumentTypes.Known(t) }
func (t InstrumentType) IsSpot() bool   { return t == Spot }
func (t InstrumentType) IsPerp() bool   { return t == Perp }

// ID is the 1-based identifier used by storage tables (spot=1, perp=2). It
// is not the wire ordinal.
func (t InstrumentType) ID() uint64 { return uint64(t) + 1 }

// InstrumentTypeFromID is the inverse of ID.
func InstrumentTypeFromID(id uint64) (InstrumentType, error) {
	if id == 0 {
		return 0, xerr.New(xerr.UnknownEnumerant, "InstrumentType: id 0 is not assigned")
	}
	t, err := instrumentTypes.FromWire(id - 1)
	if err != nil {
		return 0, err
	}
	if err := instrumentTypes.Check(t); err != nil {
		return 0, err
	}
	return t, nil
}

func ParseInstrumentType(s string) (InstrumentType, error) { return instrumentTypes.Parse(s) }

func (t InstrumentType) MarshalJSON() ([]byte, error) { return instrumentTypes.MarshalJSON(t) }

func (t *InstrumentType) UnmarshalJSON(data []byte) error {
	v, err := instrumentTypes.UnmarshalJSON(data)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (c Chain) String() string { return chains.String(c) }
func (c Chain) Known() bool    { return chains.Known(c) }

func ParseChain(s string) (Chain, error) { return chains.Parse(s) }

var evmChainIDs = map[Chain]uint64{
	Ethereum:   1,
	Optimism:   10,
	Bnb:        56,
	Gnosis:     100,
	Polygon:    137,
	ZkSync:     324,
	Worldchain: 480,
	Base:       8453,
	Arbitrum:   42161,
	Avalanche:  43114,
}

// IsEVM reports whether the chain runs the EVM. Unknown chains are not.
func (c Chain) IsEVM() bool {
	_, ok := evmChainIDs[c]
	return ok
}

// EVMChainID returns the EIP-155 chain id.
func (c Chain) EVMChainID() (uint64, bool) {
	id, ok := evmChainIDs[c]
	return id, ok
}

func ChainFromEVMChainID(id uint64) (Chain, bool) {
	for c, v := range evmChainIDs {
		if v == id {
			return c, true
		}
	}
	return 0, false
}

func (c Chain) MarshalJSON() ([]byte, error) { return chains.MarshalJSON(c) }

func (c *Chain) UnmarshalJSON(data []byte) error {
	v, err := chains.UnmarshalJSON(data)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (u OrderbookUpdateType) String() string { return orderbookUpdateTypes.String(u) }
func (u OrderbookUpdateType) Known() bool    { return orderbookUpdateTypes.Known(u) }

func ParseOrderbookUpdateType(s string) (OrderbookUpdateType, error) {
	return orderbookUpdateTypes.Parse(s)
}

func (u OrderbookUpdateType) MarshalJSON() ([]byte, error) {
	return orderbookUpdateTypes.MarshalJSON(u)
}

func (u *OrderbookUpdateType) UnmarshalJSON(data []byte) error {
	v, err := orderbookUpdateTypes.UnmarshalJSON(data)
	if err != nil {
		return err
	}
	*u = v
	return nil
}

func (s TradeSide) String() string { return tradeSides.String(s) }
func (s TradeSide) Known() bool    { return tradeSides.Known(s) }

func ParseTradeSide(s string) (TradeSide, error) { return tradeSides.Parse(s) }

// Opposite returns the counterparty side. Unknown sides are returned as is.
func (s TradeSide) Opposite() TradeSide {
	switch s {
	case Buy:
		return Sell
	case Sell:
		return Buy
	}
	return s
}

func (s TradeSide) MarshalJSON() ([]byte, error) { return tradeSides.MarshalJSON(s) }

func (s *TradeSide) UnmarshalJSON(data []byte) error {
	v, err := tradeSides.UnmarshalJSON(data)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
