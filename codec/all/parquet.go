//go:build !noparquet

package all

import (
	"marketmodel/codec"
	"marketmodel/codec/parq"
)

func parquetCodec(opts Options) (codec.Codec, error) {
	cc, err := parq.ParseCompression(opts.ParquetCompression)
	if err != nil {
		return nil, err
	}
	return parq.New(parq.WithCompression(cc), parq.WithParallelism(opts.ParquetParallelism)), nil
}
