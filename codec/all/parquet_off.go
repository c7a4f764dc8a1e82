//go:build noparquet

package all

import "marketmodel/codec"

func parquetCodec(Options) (codec.Codec, error) {
	return nil, nil
}
