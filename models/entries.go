package models

import (
	"marketmodel/uint128"
	"marketmodel/union"
)

// Entities are plain values: built once from upstream data, encoded, and
// never mutated. Timestamps are unix milliseconds unless noted.

// BidOrAsk is one order book level.
type BidOrAsk struct {
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// DepthLevel is the liquidity within Percentage of the mid price.
type DepthLevel struct {
	Percentage float64 `json:"percentage"`
	Bid        float64 `json:"bid"`
	Ask        float64 `json:"ask"`
}

// OrderbookData keeps the levels in the order the source supplied them.
type OrderbookData struct {
	UpdateID uint64     `json:"update_id"`
	Bids     []BidOrAsk `json:"bids"`
	Asks     []BidOrAsk `json:"asks"`
}

// PriceEntry is a price tick. Expiration is in unix seconds; an entry
// without one is a spot price.
type PriceEntry struct {
	Source     string                `json:"source"`
	Chain      union.Optional[Chain] `json:"chain"`
	Pair       Pair                  `json:"pair"`
	Timestamp  int64                 `json:"timestamp"`
	Price      uint128.UInt128       `json:"price"`
	Volume     uint128.UInt128       `json:"volume"`
	Expiration union.Optional[int64] `json:"expiration"`
}

// InstrumentType derives the instrument from the expiration arm.
func (e PriceEntry) InstrumentType() InstrumentType {
	if e.Expiration.IsSome() {
		return Perp
	}
	return Spot
}

type OrderbookEntry struct {
	Source         string              `json:"source"`
	InstrumentType InstrumentType      `json:"instrument_type"`
	Pair           Pair                `json:"pair"`
	Type           OrderbookUpdateType `json:"type"`
	Data           OrderbookData       `json:"data"`
	Timestamp      int64               `json:"timestamp"`
}

type DepthEntry struct {
	Source         string                `json:"source"`
	InstrumentType InstrumentType        `json:"instrument_type"`
	Pair           Pair                  `json:"pair"`
	Depth          DepthLevel            `json:"depth"`
	Chain          union.Optional[Chain] `json:"chain"`
	Timestamp      int64                 `json:"timestamp"`
}

// FundingRateEntry is a perpetual funding rate observation. FundingRate is
// the per-period rate, not annualized.
type FundingRateEntry struct {
	Source      string  `json:"source"`
	Pair        Pair    `json:"pair"`
	FundingRate float64 `json:"funding_rate"`
	Timestamp   int64   `json:"timestamp"`
}

// TradeEntry is one executed trade. Addresses are empty for venues that do
// not disclose counterparties.
type TradeEntry struct {
	Source         string         `json:"source"`
	InstrumentType InstrumentType `json:"instrument_type"`
	Pair           Pair           `json:"pair"`
	TradeID        string         `json:"trade_id"`
	BuyerAddress   string         `json:"buyer_address"`
	SellerAddress  string         `json:"seller_address"`
	Side           TradeSide      `json:"side"`
	Size           float64        `json:"size"`
	Price          float64        `json:"price"`
	Timestamp      int64          `json:"timestamp"`
}

// VolumeEntry is the rolling 24h traded volume of a pair.
type VolumeEntry struct {
	Source         string         `json:"source"`
	InstrumentType InstrumentType `json:"instrument_type"`
	Pair           Pair           `json:"pair"`
	VolumeDaily    float64        `json:"volume_daily"`
	Timestamp      int64          `json:"timestamp"`
}

type OpenInterestEntry struct {
	Source       string  `json:"source"`
	Pair         Pair    `json:"pair"`
	OpenInterest float64 `json:"open_interest"`
	Timestamp    int64   `json:"timestamp"`
}

// PositionEntry is an open position as reported by a venue. Timestamp is
// when the venue produced it and ReceivedTimestamp when it was collected.
type PositionEntry struct {
	Source            string         `json:"source"`
	InstrumentType    InstrumentType `json:"instrument_type"`
	Pair              Pair           `json:"pair"`
	Timestamp         int64          `json:"timestamp"`
	ReceivedTimestamp int64          `json:"received_timestamp"`
	Side              TradeSide      `json:"side"`
	NotionalInUSD     float64        `json:"notional_in_usd"`
	Size              float64        `json:"size"`
}

// GlobalExposureEntry is the aggregate exposure of a source to one asset.
type GlobalExposureEntry struct {
	Source    string  `json:"source"`
	Timestamp int64   `json:"timestamp"`
	Asset     string  `json:"asset"`
	Exposure  float64 `json:"exposure"`
}
