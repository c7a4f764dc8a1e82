package all_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmodel/codec"
	"marketmodel/codec/all"
	"marketmodel/codec/codectest"
	"marketmodel/models"
)

func TestDefaultBuildHasEveryFormat(t *testing.T) {
	assert.Equal(t, []codec.Format{codec.Protobuf, codec.Borsh, codec.Parquet, codec.JSON}, all.Formats())
}

func TestLookup(t *testing.T) {
	c, err := all.Lookup(codec.Borsh, all.Options{})
	require.NoError(t, err)
	assert.Equal(t, codec.Borsh, c.Format())

	_, err = all.Lookup(codec.Format("avro"), all.Options{})
	assert.Error(t, err)

	_, err = all.Codecs(all.Options{ParquetCompression: "brotli9"})
	assert.Error(t, err)
}

// Every format must decode the same values it was given, so every format
// agrees with every other.
func TestFormatsAgree(t *testing.T) {
	cs, err := all.Codecs(all.Options{ParquetCompression: "gzip", ParquetParallelism: 2})
	require.NoError(t, err)

	for _, v := range codectest.All() {
		var first any
		for _, c := range cs {
			got := codectest.RoundTrip(t, c, v)
			if first == nil {
				first = got
				continue
			}
			assert.Equal(t, first, got, "%s %T", c.Format(), v)
		}
	}
}

func TestLevelOrderKept(t *testing.T) {
	cs, err := all.Codecs(all.Options{})
	require.NoError(t, err)

	want := codectest.Orderbook()
	for _, c := range cs {
		got := codectest.RoundTrip(t, c, want).(models.OrderbookEntry)
		assert.Equal(t, want.Data.Bids, got.Data.Bids, c.Format())
		assert.Equal(t, want.Data.Asks, got.Data.Asks, c.Format())
	}
}
