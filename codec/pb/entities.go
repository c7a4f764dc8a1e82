package pb

import (
	"marketmodel/enum"
	"marketmodel/models"
	"marketmodel/models/legacy"
	"marketmodel/schema"
)

// decodeEnum keeps the low 32 bits of the varint, as protobuf parsers do for
// int32 enums. A negative enum arrives sign-extended and survives as the
// unknown ordinal with the same bit pattern.
func decodeEnum[E enum.Ordinal](v value) (E, error) {
	raw, err := v.varint()
	if err != nil {
		return 0, err
	}
	return E(uint32(raw)), nil
}

// appendEnum writes the ordinal as an int32 enum: values past MaxInt32 go out
// sign-extended so they decode back to the same ordinal.
func appendEnum[E enum.Ordinal](b []byte, id schema.FieldID, e E) []byte {
	return appendVarint(b, id, uint64(int64(int32(uint32(e)))))
}

// nested value types

func encodePair(p models.Pair) []byte {
	var b []byte
	b = appendString(b, models.PairBase, p.Base)
	b = appendString(b, models.PairQuote, p.Quote)
	return b
}

func decodePair(v value) (models.Pair, error) {
	msg, err := v.bytes()
	if err != nil {
		return models.Pair{}, err
	}
	var p models.Pair
	err = eachField(msg, func(f value) error {
		var err error
		switch schema.FieldID(f.num) {
		case models.PairBase:
			p.Base, err = f.text()
		case models.PairQuote:
			p.Quote, err = f.text()
		}
		return err
	})
	return p, err
}

func encodeLevel(l models.BidOrAsk) []byte {
	var b []byte
	b = appendDouble(b, models.BidOrAskPrice, l.Price)
	b = appendDouble(b, models.BidOrAskQuantity, l.Quantity)
	return b
}

func decodeLevel(v value) (models.BidOrAsk, error) {
	msg, err := v.bytes()
	if err != nil {
		return models.BidOrAsk{}, err
	}
	var l models.BidOrAsk
	err = eachField(msg, func(f value) error {
		var err error
		switch schema.FieldID(f.num) {
		case models.BidOrAskPrice:
			l.Price, err = f.double()
		case models.BidOrAskQuantity:
			l.Quantity, err = f.double()
		}
		return err
	})
	return l, err
}

// appendLevels writes one occurrence per level, in order.
func appendLevels(b []byte, id schema.FieldID, levels []models.BidOrAsk) []byte {
	for _, l := range levels {
		b = appendMessage(b, id, encodeLevel(l))
	}
	return b
}

func encodeDepthLevel(d models.DepthLevel) []byte {
	var b []byte
	b = appendDouble(b, models.DepthLevelPercentage, d.Percentage)
	b = appendDouble(b, models.DepthLevelBid, d.Bid)
	b = appendDouble(b, models.DepthLevelAsk, d.Ask)
	return b
}

func decodeDepthLevel(v value) (models.DepthLevel, error) {
	msg, err := v.bytes()
	if err != nil {
		return models.DepthLevel{}, err
	}
	var d models.DepthLevel
	err = eachField(msg, func(f value) error {
		var err error
		switch schema.FieldID(f.num) {
		case models.DepthLevelPercentage:
			d.Percentage, err = f.double()
		case models.DepthLevelBid:
			d.Bid, err = f.double()
		case models.DepthLevelAsk:
			d.Ask, err = f.double()
		}
		return err
	})
	return d, err
}

func encodeOrderbookData(d models.OrderbookData) []byte {
	var b []byte
	b = appendVarint(b, models.OrderbookDataUpdateID, d.UpdateID)
	b = appendLevels(b, models.OrderbookDataBids, d.Bids)
	b = appendLevels(b, models.OrderbookDataAsks, d.Asks)
	return b
}

func decodeOrderbookData(v value) (models.OrderbookData, error) {
	msg, err := v.bytes()
	if err != nil {
		return models.OrderbookData{}, err
	}
	var d models.OrderbookData
	err = eachField(msg, func(f value) error {
		switch schema.FieldID(f.num) {
		case models.OrderbookDataUpdateID:
			var err error
			d.UpdateID, err = f.varint()
			return err
		case models.OrderbookDataBids:
			l, err := decodeLevel(f)
			d.Bids = append(d.Bids, l)
			return err
		case models.OrderbookDataAsks:
			l, err := decodeLevel(f)
			d.Asks = append(d.Asks, l)
			return err
		}
		return nil
	})
	return d, err
}

func encodeBase(base legacy.BaseEntry) []byte {
	var b []byte
	b = appendInt64(b, legacy.BaseTimestamp, base.Timestamp)
	b = appendString(b, legacy.BaseSource, base.Source)
	b = appendString(b, legacy.BasePublisher, base.Publisher)
	return b
}

func decodeBase(v value) (legacy.BaseEntry, error) {
	msg, err := v.bytes()
	if err != nil {
		return legacy.BaseEntry{}, err
	}
	var base legacy.BaseEntry
	err = eachField(msg, func(f value) error {
		var err error
		switch schema.FieldID(f.num) {
		case legacy.BaseTimestamp:
			base.Timestamp, err = f.signed()
		case legacy.BaseSource:
			base.Source, err = f.text()
		case legacy.BasePublisher:
			base.Publisher, err = f.text()
		}
		return err
	})
	return base, err
}

// current generation

func encodePriceEntry(e models.PriceEntry) []byte {
	var b []byte
	b = appendString(b, models.PriceSource, e.Source)
	b = appendUnion(b, models.PriceNoChain, models.PriceChain, e.Chain, appendEnum[models.Chain])
	b = appendMessage(b, models.PricePair, encodePair(e.Pair))
	b = appendInt64(b, models.PriceTimestamp, e.Timestamp)
	b = appendUint128(b, models.PricePrice, e.Price)
	b = appendUint128(b, models.PriceVolume, e.Volume)
	b = appendUnion(b, models.PriceNoExpiration, models.PriceExpiration, e.Expiration, appendInt64)
	return b
}

func decodePriceEntry(data []byte) (models.PriceEntry, error) {
	var (
		e          models.PriceEntry
		chain      arm[models.Chain]
		expiration arm[int64]
	)
	err := eachField(data, func(f value) error {
		var err error
		switch schema.FieldID(f.num) {
		case models.PriceSource:
			e.Source, err = f.text()
		case models.PriceNoChain:
			err = chain.absent(f)
		case models.PriceChain:
			err = chain.present(decodeEnum[models.Chain](f))
		case models.PricePair:
			e.Pair, err = decodePair(f)
		case models.PriceTimestamp:
			e.Timestamp, err = f.signed()
		case models.PricePrice:
			e.Price, err = f.words()
		case models.PriceVolume:
			e.Volume, err = f.words()
		case models.PriceNoExpiration:
			err = expiration.absent(f)
		case models.PriceExpiration:
			err = expiration.present(f.signed())
		}
		return err
	})
	if err != nil {
		return models.PriceEntry{}, err
	}
	if e.Chain, err = chain.optional(); err != nil {
		return models.PriceEntry{}, err
	}
	if e.Expiration, err = expiration.optional(); err != nil {
		return models.PriceEntry{}, err
	}
	return e, nil
}

func encodeOrderbookEntry(e models.OrderbookEntry) []byte {
	var b []byte
	b = appendString(b, models.OrderbookSource, e.Source)
	b = appendEnum(b, models.OrderbookInstrumentType, e.InstrumentType)
	b = appendMessage(b, models.OrderbookPair, encodePair(e.Pair))
	b = appendEnum(b, models.OrderbookType, e.Type)
	b = appendMessage(b, models.OrderbookDataField, encodeOrderbookData(e.Data))
	b = appendInt64(b, models.OrderbookTimestamp, e.Timestamp)
	return b
}

func decodeOrderbookEntry(data []byte) (models.OrderbookEntry, error) {
	var e models.OrderbookEntry
	err := eachField(data, func(f value) error {
		var err error
		switch schema.FieldID(f.num) {
		case models.OrderbookSource:
			e.Source, err = f.text()
		case models.OrderbookInstrumentType:
			e.InstrumentType, err = decodeEnum[models.InstrumentType](f)
		case models.OrderbookPair:
			e.Pair, err = decodePair(f)
		case models.OrderbookType:
			e.Type, err = decodeEnum[models.OrderbookUpdateType](f)
		case models.OrderbookDataField:
			e.Data, err = decodeOrderbookData(f)
		case models.OrderbookTimestamp:
			e.Timestamp, err = f.signed()
		}
		return err
	})
	if err != nil {
		return models.OrderbookEntry{}, err
	}
	return e, nil
}

func encodeDepthEntry(e models.DepthEntry) []byte {
	var b []byte
	b = appendString(b, models.DepthSource, e.Source)
	b = appendEnum(b, models.DepthInstrumentType, e.InstrumentType)
	b = appendMessage(b, models.DepthPair, encodePair(e.Pair))
	b = appendMessage(b, models.DepthDepth, encodeDepthLevel(e.Depth))
	b = appendUnion(b, models.DepthNoChain, models.DepthChain, e.Chain, appendEnum[models.Chain])
	b = appendInt64(b, models.DepthTimestamp, e.Timestamp)
	return b
}

func decodeDepthEntry(data []byte) (models.DepthEntry, error) {
	var (
		e     models.DepthEntry
		chain arm[models.Chain]
	)
	err := eachField(data, func(f value) error {
		var err error
		switch schema.FieldID(f.num) {
		case models.DepthSource:
			e.Source, err = f.text()
		case models.DepthInstrumentType:
			e.InstrumentType, err = decodeEnum[models.InstrumentType](f)
		case models.DepthPair:
			e.Pair, err = decodePair(f)
		case models.DepthDepth:
			e.Depth, err = decodeDepthLevel(f)
		case models.DepthNoChain:
			err = chain.absent(f)
		case models.DepthChain:
			err = chain.present(decodeEnum[models.Chain](f))
		case models.DepthTimestamp:
			e.Timestamp, err = f.signed()
		}
		return err
	})
	if err != nil {
		return models.DepthEntry{}, err
	}
	if e.Chain, err = chain.optional(); err != nil {
		return models.DepthEntry{}, err
	}
	return e, nil
}

func encodeFundingRateEntry(e models.FundingRateEntry) []byte {
	var b []byte
	b = appendString(b, models.FundingRateSource, e.Source)
	b = appendMessage(b, models.FundingRatePair, encodePair(e.Pair))
	b = appendDouble(b, models.FundingRateRate, e.FundingRate)
	b = appendInt64(b, models.FundingRateTimestamp, e.Timestamp)
	return b
}

func decodeFundingRateEntry(data []byte) (models.FundingRateEntry, error) {
	var e models.FundingRateEntry
	err := eachField(data, func(f value) error {
		var err error
		switch schema.FieldID(f.num) {
		case models.FundingRateSource:
			e.Source, err = f.text()
		case models.FundingRatePair:
			e.Pair, err = decodePair(f)
		case models.FundingRateRate:
			e.FundingRate, err = f.double()
		case models.FundingRateTimestamp:
			e.Timestamp, err = f.signed()
		}
		return err
	})
	if err != nil {
		return models.FundingRateEntry{}, err
	}
	return e, nil
}

func encodeTradeEntry(e models.TradeEntry) []byte {
	var b []byte
	b = appendString(b, models.TradeSource, e.Source)
	b = appendEnum(b, models.TradeInstrumentType, e.InstrumentType)
	b = appendMessage(b, models.TradePair, encodePair(e.Pair))
	b = appendString(b, models.TradeID, e.TradeID)
	b = appendString(b, models.TradeBuyerAddress, e.BuyerAddress)
	b = appendString(b, models.TradeSellerAddress, e.SellerAddress)
	b = appendEnum(b, models.TradeSideField, e.Side)
	b = appendDouble(b, models.TradeSize, e.Size)
	b = appendDouble(b, models.TradePrice, e.Price)
	b = appendInt64(b, models.TradeTimestamp, e.Timestamp)
	return b
}

func decodeTradeEntry(data []byte) (models.TradeEntry, error) {
	var e models.TradeEntry
	err := eachField(data, func(f value) error {
		var err error
		switch schema.FieldID(f.num) {
		case models.TradeSource:
			e.Source, err = f.text()
		case models.TradeInstrumentType:
			e.InstrumentType, err = decodeEnum[models.InstrumentType](f)
		case models.TradePair:
			e.Pair, err = decodePair(f)
		case models.TradeID:
			e.TradeID, err = f.text()
		case models.TradeBuyerAddress:
			e.BuyerAddress, err = f.text()
		case models.TradeSellerAddress:
			e.SellerAddress, err = f.text()
		case models.TradeSideField:
			e.Side, err = decodeEnum[models.TradeSide](f)
		case models.TradeSize:
			e.Size, err = f.double()
		case models.TradePrice:
			e.Price, err = f.double()
		case models.TradeTimestamp:
			e.Timestamp, err = f.signed()
		}
		return err
	})
	if err != nil {
		return models.TradeEntry{}, err
	}
	return e, nil
}

func encodeVolumeEntry(e models.VolumeEntry) []byte {
	var b []byte
	b = appendString(b, models.VolumeSource, e.Source)
	b = appendEnum(b, models.VolumeInstrumentType, e.InstrumentType)
	b = appendMessage(b, models.VolumePair, encodePair(e.Pair))
	b = appendDouble(b, models.VolumeDaily, e.VolumeDaily)
	b = appendInt64(b, models.VolumeTimestamp, e.Timestamp)
	return b
}

func decodeVolumeEntry(data []byte) (models.VolumeEntry, error) {
	var e models.VolumeEntry
	err := eachField(data, func(f value) error {
		var err error
		switch schema.FieldID(f.num) {
		case models.VolumeSource:
			e.Source, err = f.text()
		case models.VolumeInstrumentType:
			e.InstrumentType, err = decodeEnum[models.InstrumentType](f)
		case models.VolumePair:
			e.Pair, err = decodePair(f)
		case models.VolumeDaily:
			e.VolumeDaily, err = f.double()
		case models.VolumeTimestamp:
			e.Timestamp, err = f.signed()
		}
		return err
	})
	if err != nil {
		return models.VolumeEntry{}, err
	}
	return e, nil
}

func encodeOpenInterestEntry(e models.OpenInterestEntry) []byte {
	var b []byte
	b = appendString(b, models.OpenInterestSource, e.Source)
	b = appendMessage(b, models.OpenInterestPair, encodePair(e.Pair))
	b = appendDouble(b, models.OpenInterestValue, e.OpenInterest)
	b = appendInt64(b, models.OpenInterestTimestamp, e.Timestamp)
	return b
}

func decodeOpenInterestEntry(data []byte) (models.OpenInterestEntry, error) {
	var e models.OpenInterestEntry
	err := eachField(data, func(f value) error {
		var err error
		switch schema.FieldID(f.num) {
		case models.OpenInterestSource:
			e.Source, err = f.text()
		case models.OpenInterestPair:
			e.Pair, err = decodePair(f)
		case models.OpenInterestValue:
			e.OpenInterest, err = f.double()
		case models.OpenInterestTimestamp:
			e.Timestamp, err = f.signed()
		}
		return err
	})
	if err != nil {
		return models.OpenInterestEntry{}, err
	}
	return e, nil
}

func encodePositionEntry(e models.PositionEntry) []byte {
	var b []byte
	b = appendString(b, models.PositionSource, e.Source)
	b = appendEnum(b, models.PositionInstrumentType, e.InstrumentType)
	b = appendMessage(b, models.PositionPair, encodePair(e.Pair))
	b = appendInt64(b, models.PositionTimestamp, e.Timestamp)
	b = appendInt64(b, models.PositionReceivedTimestamp, e.ReceivedTimestamp)
	b = appendEnum(b, models.PositionSide, e.Side)
	b = appendDouble(b, models.PositionNotionalInUSD, e.NotionalInUSD)
	b = appendDouble(b, models.PositionSize, e.Size)
	return b
}

func decodePositionEntry(data []byte) (models.PositionEntry, error) {
	var e models.PositionEntry
	err := eachField(data, func(f value) error {
		var err error
		switch schema.FieldID(f.num) {
		case models.PositionSource:
			e.Source, err = f.text()
		case models.PositionInstrumentType:
			e.InstrumentType, err = decodeEnum[models.InstrumentType](f)
		case models.PositionPair:
			e.Pair, err = decodePair(f)
		case models.PositionTimestamp:
			e.Timestamp, err = f.signed()
		case models.PositionReceivedTimestamp:
			e.ReceivedTimestamp, err = f.signed()
		case models.PositionSide:
			e.Side, err = decodeEnum[models.TradeSide](f)
		case models.PositionNotionalInUSD:
			e.NotionalInUSD, err = f.double()
		case models.PositionSize:
			e.Size, err = f.double()
		}
		return err
	})
	if err != nil {
		return models.PositionEntry{}, err
	}
	return e, nil
}

func encodeGlobalExposureEntry(e models.GlobalExposureEntry) []byte {
	var b []byte
	b = appendString(b, models.GlobalExposureSource, e.Source)
	b = appendInt64(b, models.GlobalExposureTimestamp, e.Timestamp)
	b = appendString(b, models.GlobalExposureAsset, e.Asset)
	b = appendDouble(b, models.GlobalExposureExposure, e.Exposure)
	return b
}

func decodeGlobalExposureEntry(data []byte) (models.GlobalExposureEntry, error) {
	var e models.GlobalExposureEntry
	err := eachField(data, func(f value) error {
		var err error
		switch schema.FieldID(f.num) {
		case models.GlobalExposureSource:
			e.Source, err = f.text()
		case models.GlobalExposureTimestamp:
			e.Timestamp, err = f.signed()
		case models.GlobalExposureAsset:
			e.Asset, err = f.text()
		case models.GlobalExposureExposure:
			e.Exposure, err = f.double()
		}
		return err
	})
	if err != nil {
		return models.GlobalExposureEntry{}, err
	}
	return e, nil
}

// legacy generation

func encodeMarketEntry(e legacy.MarketEntry) []byte {
	var b []byte
	b = appendMessage(b, legacy.MarketBase, encodeBase(e.Base))
	b = appendString(b, legacy.MarketPairID, e.PairID)
	b = appendUint128(b, legacy.MarketPrice, e.Price)
	b = appendUint128(b, legacy.MarketVolume, e.Volume)
	b = appendUnion(b, legacy.MarketNoExpiration, legacy.MarketExpirationTimestampMs, e.ExpirationTimestampMs, appendVarint)
	return b
}

func decodeMarketEntry(data []byte) (legacy.MarketEntry, error) {
	var (
		e          legacy.MarketEntry
		expiration arm[uint64]
	)
	err := eachField(data, func(f value) error {
		var err error
		switch schema.FieldID(f.num) {
		case legacy.MarketBase:
			e.Base, err = decodeBase(f)
		case legacy.MarketPairID:
			e.PairID, err = f.text()
		case legacy.MarketPrice:
			e.Price, err = f.words()
		case legacy.MarketVolume:
			e.Volume, err = f.words()
		case legacy.MarketNoExpiration:
			err = expiration.absent(f)
		case legacy.MarketExpirationTimestampMs:
			err = expiration.present(f.varint())
		}
		return err
	})
	if err != nil {
		return legacy.MarketEntry{}, err
	}
	if e.ExpirationTimestampMs, err = expiration.optional(); err != nil {
		return legacy.MarketEntry{}, err
	}
	return e, nil
}

// book is the layout shared by OrderbookSnapshot and OrderbookUpdate.
type book struct {
	Base           legacy.BaseEntry
	InstrumentType models.InstrumentType
	Pair           models.Pair
	LastUpdateID   uint64
	Bids           []models.BidOrAsk
	Asks           []models.BidOrAsk
}

func encodeBook(e book) []byte {
	var b []byte
	b = appendMessage(b, legacy.BookBase, encodeBase(e.Base))
	b = appendEnum(b, legacy.BookInstrumentType, e.InstrumentType)
	b = appendMessage(b, legacy.BookPair, encodePair(e.Pair))
	b = appendVarint(b, legacy.BookLastUpdateID, e.LastUpdateID)
	b = appendLevels(b, legacy.BookBids, e.Bids)
	b = appendLevels(b, legacy.BookAsks, e.Asks)
	return b
}

func decodeBook(data []byte) (book, error) {
	var e book
	err := eachField(data, func(f value) error {
		switch schema.FieldID(f.num) {
		case legacy.BookBase:
			var err error
			e.Base, err = decodeBase(f)
			return err
		case legacy.BookInstrumentType:
			var err error
			e.InstrumentType, err = decodeEnum[models.InstrumentType](f)
			return err
		case legacy.BookPair:
			var err error
			e.Pair, err = decodePair(f)
			return err
		case legacy.BookLastUpdateID:
			var err error
			e.LastUpdateID, err = f.varint()
			return err
		case legacy.BookBids:
			l, err := decodeLevel(f)
			e.Bids = append(e.Bids, l)
			return err
		case legacy.BookAsks:
			l, err := decodeLevel(f)
			e.Asks = append(e.Asks, l)
			return err
		}
		return nil
	})
	if err != nil {
		return book{}, err
	}
	return e, nil
}

func encodeDepth(e legacy.Depth) []byte {
	var b []byte
	b = appendMessage(b, legacy.DepthDepth, encodeDepthLevel(e.Depth))
	b = appendMessage(b, legacy.DepthPair, encodePair(e.Pair))
	b = appendString(b, legacy.DepthSource, e.Source)
	b = appendEnum(b, legacy.DepthInstrumentType, e.InstrumentType)
	b = appendUnion(b, legacy.DepthNoChain, legacy.DepthChain, e.Chain, appendEnum[models.Chain])
	return b
}

func decodeDepth(data []byte) (legacy.Depth, error) {
	var (
		e     legacy.Depth
		chain arm[models.Chain]
	)
	err := eachField(data, func(f value) error {
		var err error
		switch schema.FieldID(f.num) {
		case legacy.DepthDepth:
			e.Depth, err = decodeDepthLevel(f)
		case legacy.DepthPair:
			e.Pair, err = decodePair(f)
		case legacy.DepthSource:
			e.Source, err = f.text()
		case legacy.DepthInstrumentType:
			e.InstrumentType, err = decodeEnum[models.InstrumentType](f)
		case legacy.DepthNoChain:
			err = chain.absent(f)
		case legacy.DepthChain:
			err = chain.present(decodeEnum[models.Chain](f))
		}
		return err
	})
	if err != nil {
		return legacy.Depth{}, err
	}
	if e.Chain, err = chain.optional(); err != nil {
		return legacy.Depth{}, err
	}
	return e, nil
}
