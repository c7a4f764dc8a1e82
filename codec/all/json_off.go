//go:build nojson

package all

import "marketmodel/codec"

func jsonCodec(Options) (codec.Codec, error) {
	return nil, nil
}
