package parq

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/xitongsys/parquet-go/common"
	"github.com/xitongsys/parquet-go/parquet"

	"marketmodel/schema"
	"marketmodel/xerr"
)

// Column is one leaf column of an entity's parquet file.
type Column struct {
	// ID is the parquet field id written to the footer.
	ID       int32
	Name     string
	Type     string
	Repeated bool
	// Field is the entity field the column is cut from.
	Field schema.FieldID
}

var layouts = map[string]reflect.Type{
	"PriceEntry":          reflect.TypeOf(priceRecord{}),
	"OrderbookEntry":      reflect.TypeOf(orderbookRecord{}),
	"DepthEntry":          reflect.TypeOf(depthRecord{}),
	"FundingRateEntry":    reflect.TypeOf(fundingRateRecord{}),
	"TradeEntry":          reflect.TypeOf(tradeRecord{}),
	"VolumeEntry":         reflect.TypeOf(volumeRecord{}),
	"OpenInterestEntry":   reflect.TypeOf(openInterestRecord{}),
	"PositionEntry":       reflect.TypeOf(positionRecord{}),
	"GlobalExposureEntry": reflect.TypeOf(globalExposureRecord{}),
	"MarketEntry":         reflect.TypeOf(marketRecord{}),
	"OrderbookSnapshot":   reflect.TypeOf(bookRecord{}),
	"OrderbookUpdate":     reflect.TypeOf(bookRecord{}),
	"Depth":               reflect.TypeOf(legacyDepthRecord{}),
}

// Columns lists the columns written for the named entity in file order.
func Columns(entity string) ([]Column, error) {
	rt, ok := layouts[entity]
	if !ok {
		return nil, xerr.New(xerr.UnsupportedType, "parquet: no layout for %s", entity)
	}
	cols := make([]Column, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		tag, err := common.StringToTag(sf.Tag.Get("parquet"))
		if err != nil {
			return nil, fmt.Errorf("parquet: %s.%s: %w", rt.Name(), sf.Name, err)
		}
		field, err := strconv.ParseUint(sf.Tag.Get("field"), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parquet: %s.%s: bad field tag: %w", rt.Name(), sf.Name, err)
		}
		cols = append(cols, Column{
			ID:       tag.FieldID,
			Name:     tag.ExName,
			Type:     tag.Type,
			Repeated: tag.RepetitionType == parquet.FieldRepetitionType_REPEATED,
			Field:    schema.FieldID(field),
		})
	}
	return cols, nil
}
