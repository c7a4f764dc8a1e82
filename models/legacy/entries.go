// Package legacy holds the first schema generation. These layouts are
// historical contracts kept for old producers and archives; they are never
// extended. New code writes the types in package models and converts with
// package bridge.
package legacy

import (
	"marketmodel/models"
	"marketmodel/uint128"
	"marketmodel/union"
)

// BaseEntry is embedded in every legacy price record. Timestamp is in unix
// seconds.
type BaseEntry struct {
	Timestamp int64  `json:"timestamp"`
	Source    string `json:"source"`
	Publisher string `json:"publisher"`
}

// MarketEntry is the legacy price tick. PairID is the BASE/QUOTE string and
// the expiration is in unix milliseconds.
type MarketEntry struct {
	Base                  BaseEntry              `json:"base"`
	PairID                string                 `json:"pair_id"`
	Price                 uint128.UInt128        `json:"price"`
	Volume                uint128.UInt128        `json:"volume"`
	ExpirationTimestampMs union.Optional[uint64] `json:"expiration_timestamp_ms"`
}

type OrderbookSnapshot struct {
	Base           BaseEntry             `json:"base"`
	InstrumentType models.InstrumentType `json:"instrument_type"`
	Pair           models.Pair           `json:"pair"`
	LastUpdateID   uint64                `json:"last_update_id"`
	Bids           []models.BidOrAsk     `json:"bids"`
	Asks           []models.BidOrAsk     `json:"asks"`
}

type OrderbookUpdate struct {
	Base           BaseEntry             `json:"base"`
	InstrumentType models.InstrumentType `json:"instrument_type"`
	Pair           models.Pair           `json:"pair"`
	LastUpdateID   uint64                `json:"last_update_id"`
	Bids           []models.BidOrAsk     `json:"bids"`
	Asks           []models.BidOrAsk     `json:"asks"`
}

// Depth carries no timestamp of its own; it was always stamped by the
// envelope that transported it.
type Depth struct {
	Depth          models.DepthLevel            `json:"depth"`
	Pair           models.Pair                  `json:"pair"`
	Source         string                       `json:"source"`
	InstrumentType models.InstrumentType        `json:"instrument_type"`
	Chain          union.Optional[models.Chain] `json:"chain"`
}
