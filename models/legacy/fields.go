package legacy

import "marketmodel/schema"

// Field identifiers of the frozen legacy tables.
const (
	BaseTimestamp schema.FieldID = 1
	BaseSource    schema.FieldID = 2
	BasePublisher schema.FieldID = 3

	MarketBase                  schema.FieldID = 1
	MarketPairID                schema.FieldID = 2
	MarketPrice                 schema.FieldID = 3
	MarketVolume                schema.FieldID = 4
	MarketNoExpiration          schema.FieldID = 5
	MarketExpirationTimestampMs schema.FieldID = 6

	// OrderbookSnapshot and OrderbookUpdate share one layout.
	BookBase           schema.FieldID = 1
	BookInstrumentType schema.FieldID = 2
	BookPair           schema.FieldID = 3
	BookLastUpdateID   schema.FieldID = 4
	BookBids           schema.FieldID = 5
	BookAsks           schema.FieldID = 6

	DepthDepth          schema.FieldID = 1
	DepthPair           schema.FieldID = 2
	DepthSource         schema.FieldID = 3
	DepthInstrumentType schema.FieldID = 4
	DepthNoChain        schema.FieldID = 5
	DepthChain          schema.FieldID = 6
)

func bookFields() []schema.Field {
	return []schema.Field{
		{ID: BookBase, Name: "base", Kind: schema.KindStruct, Type: "BaseEntry"},
		{ID: BookInstrumentType, Name: "instrumentType", Kind: schema.KindEnum, Type: "InstrumentType"},
		{ID: BookPair, Name: "pair", Kind: schema.KindStruct, Type: "Pair"},
		{ID: BookLastUpdateID, Name: "lastUpdateId", Kind: schema.KindUint64},
		{ID: BookBids, Name: "bids", Kind: schema.KindList, Type: "BidOrAsk"},
		{ID: BookAsks, Name: "asks", Kind: schema.KindList, Type: "BidOrAsk"},
	}
}

// Entities returns the legacy tables. Nested value types (Pair, BidOrAsk,
// DepthLevel, UInt128) are shared with the current generation.
func Entities() []schema.Entity {
	return []schema.Entity{
		{
			Name: "BaseEntry", Generation: schema.Legacy,
			Fields: []schema.Field{
				{ID: BaseTimestamp, Name: "timestamp", Kind: schema.KindInt64},
				{ID: BaseSource, Name: "source", Kind: schema.KindText},
				{ID: BasePublisher, Name: "publisher", Kind: schema.KindText},
			},
		},
		{
			Name: "MarketEntry", Generation: schema.Legacy,
			Fields: []schema.Field{
				{ID: MarketBase, Name: "base", Kind: schema.KindStruct, Type: "BaseEntry"},
				{ID: MarketPairID, Name: "pairId", Kind: schema.KindText},
				{ID: MarketPrice, Name: "price", Kind: schema.KindUint128},
				{ID: MarketVolume, Name: "volume", Kind: schema.KindUint128},
				{ID: MarketNoExpiration, Name: "noExpiration", Kind: schema.KindVoid, Union: "expiration"},
				{ID: MarketExpirationTimestampMs, Name: "expirationTimestampMs", Kind: schema.KindUint64, Union: "expiration"},
			},
		},
		{Name: "OrderbookSnapshot", Generation: schema.Legacy, Fields: bookFields()},
		{Name: "OrderbookUpdate", Generation: schema.Legacy, Fields: bookFields()},
		{
			Name: "Depth", Generation: schema.Legacy,
			Fields: []schema.Field{
				{ID: DepthDepth, Name: "depth", Kind: schema.KindStruct, Type: "DepthLevel"},
				{ID: DepthPair, Name: "pair", Kind: schema.KindStruct, Type: "Pair"},
				{ID: DepthSource, Name: "source", Kind: schema.KindText},
				{ID: DepthInstrumentType, Name: "instrumentType", Kind: schema.KindEnum, Type: "InstrumentType"},
				{ID: DepthNoChain, Name: "noChain", Kind: schema.KindVoid, Union: "chain"},
				{ID: DepthChain, Name: "chain", Kind: schema.KindEnum, Type: "Chain", Union: "chain"},
			},
		},
	}
}
