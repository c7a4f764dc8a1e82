package models

import "marketmodel/schema"

// Field identifiers. These numbers are the wire contract: never renumber,
// never reuse. A retired field goes into the table's Reserved list.
const (
	PairBase  schema.FieldID = 1
	PairQuote schema.FieldID = 2

	UInt128Low  schema.FieldID = 1
	UInt128High schema.FieldID = 2

	BidOrAskPrice    schema.FieldID = 1
	BidOrAskQuantity schema.FieldID = 2

	DepthLevelPercentage schema.FieldID = 1
	DepthLevelBid        schema.FieldID = 2
	DepthLevelAsk        schema.FieldID = 3

	OrderbookDataUpdateID schema.FieldID = 1
	OrderbookDataBids     schema.FieldID = 2
	OrderbookDataAsks     schema.FieldID = 3

	PriceSource       schema.FieldID = 1
	PriceNoChain      schema.FieldID = 2
	PriceChain        schema.FieldID = 3
	PricePair         schema.FieldID = 4
	PriceTimestamp    schema.FieldID = 5
	PricePrice        schema.FieldID = 6
	PriceVolume       schema.FieldID = 7
	PriceNoExpiration schema.FieldID = 8
	PriceExpiration   schema.FieldID = 9

	OrderbookSource         schema.FieldID = 1
	OrderbookInstrumentType schema.FieldID = 2
	OrderbookPair           schema.FieldID = 3
	OrderbookType           schema.FieldID = 4
	OrderbookDataField      schema.FieldID = 5
	OrderbookTimestamp      schema.FieldID = 6

	DepthSource         schema.FieldID = 1
	DepthInstrumentType schema.FieldID = 2
	DepthPair           schema.FieldID = 3
	DepthDepth          schema.FieldID = 4
	DepthNoChain        schema.FieldID = 5
	DepthChain          schema.FieldID = 6
	DepthTimestamp      schema.FieldID = 7

	FundingRateSource    schema.FieldID = 1
	FundingRatePair      schema.FieldID = 2
	FundingRateRate      schema.FieldID = 3
	FundingRateTimestamp schema.FieldID = 4

	TradeSource         schema.FieldID = 1
	TradeInstrumentType schema.FieldID = 2
	TradePair           schema.FieldID = 3
	TradeID             schema.FieldID = 4
	TradeBuyerAddress   schema.FieldID = 5
	TradeSellerAddress  schema.FieldID = 6
	TradeSideField      schema.FieldID = 7
	TradeSize           schema.FieldID = 8
	TradePrice          schema.FieldID = 9
	TradeTimestamp      schema.FieldID = 10

	VolumeSource         schema.FieldID = 1
	VolumeInstrumentType schema.FieldID = 2
	VolumePair           schema.FieldID = 3
	VolumeDaily          schema.FieldID = 4
	VolumeTimestamp      schema.FieldID = 5

	OpenInterestSource    schema.FieldID = 1
	OpenInterestPair      schema.FieldID = 2
	OpenInterestValue     schema.FieldID = 3
	OpenInterestTimestamp schema.FieldID = 4

	PositionSource            schema.FieldID = 1
	PositionInstrumentType    schema.FieldID = 2
	PositionPair              schema.FieldID = 3
	PositionTimestamp         schema.FieldID = 4
	PositionReceivedTimestamp schema.FieldID = 5
	PositionSide              schema.FieldID = 6
	PositionNotionalInUSD     schema.FieldID = 7
	PositionSize              schema.FieldID = 8

	GlobalExposureSource    schema.FieldID = 1
	GlobalExposureTimestamp schema.FieldID = 2
	GlobalExposureAsset     schema.FieldID = 3
	GlobalExposureExposure  schema.FieldID = 4
)

// Entities returns the tables of the current generation, nested value types
// included.
func Entities() []schema.Entity {
	return []schema.Entity{
		{
			Name: "Pair", Generation: schema.Current,
			Fields: []schema.Field{
				{ID: PairBase, Name: "base", Kind: schema.KindText},
				{ID: PairQuote, Name: "quote", Kind: schema.KindText},
			},
		},
		{
			Name: "UInt128", Generation: schema.Current,
			Fields: []schema.Field{
				{ID: UInt128Low, Name: "low", Kind: schema.KindUint64},
				{ID: UInt128High, Name: "high", Kind: schema.KindUint64},
			},
		},
		{
			Name: "BidOrAsk", Generation: schema.Current,
			Fields: []schema.Field{
				{ID: BidOrAskPrice, Name: "price", Kind: schema.KindFloat64},
				{ID: BidOrAskQuantity, Name: "quantity", Kind: schema.KindFloat64},
			},
		},
		{
			Name: "DepthLevel", Generation: schema.Current,
			Fields: []schema.Field{
				{ID: DepthLevelPercentage, Name: "percentage", Kind: schema.KindFloat64},
				{ID: DepthLevelBid, Name: "bid", Kind: schema.KindFloat64},
				{ID: DepthLevelAsk, Name: "ask", Kind: schema.KindFloat64},
			},
		},
		{
			Name: "OrderbookData", Generation: schema.Current,
			Fields: []schema.Field{
				{ID: OrderbookDataUpdateID, Name: "updateId", Kind: schema.KindUint64},
				{ID: OrderbookDataBids, Name: "bids", Kind: schema.KindList, Type: "BidOrAsk"},
				{ID: OrderbookDataAsks, Name: "asks", Kind: schema.KindList, Type: "BidOrAsk"},
			},
		},
		{
			Name: "PriceEntry", Generation: schema.Current,
			Fields: []schema.Field{
				{ID: PriceSource, Name: "source", Kind: schema.KindText},
				{ID: PriceNoChain, Name: "noChain", Kind: schema.KindVoid, Union: "chain"},
				{ID: PriceChain, Name: "chain", Kind: schema.KindEnum, Type: "Chain", Union: "chain"},
				{ID: PricePair, Name: "pair", Kind: schema.KindStruct, Type: "Pair"},
				{ID: PriceTimestamp, Name: "timestamp", Kind: schema.KindInt64},
				{ID: PricePrice, Name: "price", Kind: schema.KindUint128},
				{ID: PriceVolume, Name: "volume", Kind: schema.KindUint128},
				{ID: PriceNoExpiration, Name: "noExpiration", Kind: schema.KindVoid, Union: "expiration"},
				{ID: PriceExpiration, Name: "expiration", Kind: schema.KindInt64, Union: "expiration"},
			},
		},
		{
			Name: "OrderbookEntry", Generation: schema.Current,
			Fields: []schema.Field{
				{ID: OrderbookSource, Name: "source", Kind: schema.KindText},
				{ID: OrderbookInstrumentType, Name: "instrumentType", Kind: schema.KindEnum, Type: "InstrumentType"},
				{ID: OrderbookPair, Name: "pair", Kind: schema.KindStruct, Type: "Pair"},
				{ID: OrderbookType, Name: "type", Kind: schema.KindEnum, Type: "OrderbookUpdateType"},
				{ID: OrderbookDataField, Name: "data", Kind: schema.KindStruct, Type: "OrderbookData"},
				{ID: OrderbookTimestamp, Name: "timestamp", Kind: schema.KindInt64},
			},
		},
		{
			Name: "DepthEntry", Generation: schema.Current,
			Fields: []schema.Field{
				{ID: DepthSource, Name: "source", Kind: schema.KindText},
				{ID: DepthInstrumentType, Name: "instrumentType", Kind: schema.KindEnum, Type: "InstrumentType"},
				{ID: DepthPair, Name: "pair", Kind: schema.KindStruct, Type: "Pair"},
				{ID: DepthDepth, Name: "depth", Kind: schema.KindStruct, Type: "DepthLevel"},
				{ID: DepthNoChain, Name: "noChain", Kind: schema.KindVoid, Union: "chain"},
				{ID: DepthChain, Name: "chain", Kind: schema.KindEnum, Type: "Chain", Union: "chain"},
				{ID: DepthTimestamp, Name: "timestamp", Kind: schema.KindInt64},
			},
		},
		{
			Name: "FundingRateEntry", Generation: schema.Current,
			Fields: []schema.Field{
				{ID: FundingRateSource, Name: "source", Kind: schema.KindText},
				{ID: FundingRatePair, Name: "pair", Kind: schema.KindStruct, Type: "Pair"},
				{ID: FundingRateRate, Name: "fundingRate", Kind: schema.KindFloat64},
				{ID: FundingRateTimestamp, Name: "timestamp", Kind: schema.KindInt64},
			},
		},
		{
			Name: "TradeEntry", Generation: schema.Current,
			Fields: []schema.Field{
				{ID: TradeSource, Name: "source", Kind: schema.KindText},
				{ID: TradeInstrumentType, Name: "instrumentType", Kind: schema.KindEnum, Type: "InstrumentType"},
				{ID: TradePair, Name: "pair", Kind: schema.KindStruct, Type: "Pair"},
				{ID: TradeID, Name: "tradeId", Kind: schema.KindText},
				{ID: TradeBuyerAddress, Name: "buyerAddress", Kind: schema.KindText},
				{ID: TradeSellerAddress, Name: "sellerAddress", Kind: schema.KindText},
				{ID: TradeSideField, Name: "side", Kind: schema.KindEnum, Type: "TradeSide"},
				{ID: TradeSize, Name: "size", Kind: schema.KindFloat64},
				{ID: TradePrice, Name: "price", Kind: schema.KindFloat64},
				{ID: TradeTimestamp, Name: "timestamp", Kind: schema.KindInt64},
			},
		},
		{
			Name: "VolumeEntry", Generation: schema.Current,
			Fields: []schema.Field{
				{ID: VolumeSource, Name: "source", Kind: schema.KindText},
				{ID: VolumeInstrumentType, Name: "instrumentType", Kind: schema.KindEnum, Type: "InstrumentType"},
				{ID: VolumePair, Name: "pair", Kind: schema.KindStruct, Type: "Pair"},
				{ID: VolumeDaily, Name: "volumeDaily", Kind: schema.KindFloat64},
				{ID: VolumeTimestamp, Name: "timestamp", Kind: schema.KindInt64},
			},
		},
		{
			Name: "OpenInterestEntry", Generation: schema.Current,
			Fields: []schema.Field{
				{ID: OpenInterestSource, Name: "source", Kind: schema.KindText},
				{ID: OpenInterestPair, Name: "pair", Kind: schema.KindStruct, Type: "Pair"},
				{ID: OpenInterestValue, Name: "openInterest", Kind: schema.KindFloat64},
				{ID: OpenInterestTimestamp, Name: "timestamp", Kind: schema.KindInt64},
			},
		},
		{
			Name: "PositionEntry", Generation: schema.Current,
			Fields: []schema.Field{
				{ID: PositionSource, Name: "source", Kind: schema.KindText},
				{ID: PositionInstrumentType, Name: "instrumentType", Kind: schema.KindEnum, Type: "InstrumentType"},
				{ID: PositionPair, Name: "pair", Kind: schema.KindStruct, Type: "Pair"},
				{ID: PositionTimestamp, Name: "timestamp", Kind: schema.KindInt64},
				{ID: PositionReceivedTimestamp, Name: "receivedTimestamp", Kind: schema.KindInt64},
				{ID: PositionSide, Name: "side", Kind: schema.KindEnum, Type: "TradeSide"},
				{ID: PositionNotionalInUSD, Name: "notionalInUsd", Kind: schema.KindFloat64},
				{ID: PositionSize, Name: "size", Kind: schema.KindFloat64},
			},
		},
		{
			Name: "GlobalExposureEntry", Generation: schema.Current,
			Fields: []schema.Field{
				{ID: GlobalExposureSource, Name: "source", Kind: schema.KindText},
				{ID: GlobalExposureTimestamp, Name: "timestamp", Kind: schema.KindInt64},
				{ID: GlobalExposureAsset, Name: "asset", Kind: schema.KindText},
				{ID: GlobalExposureExposure, Name: "exposure", Kind: schema.KindFloat64},
			},
		},
	}
}
