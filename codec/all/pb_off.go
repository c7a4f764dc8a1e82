//go:build nopb

package all

import "marketmodel/codec"

func protobufCodec(Options) (codec.Codec, error) {
	return nil, nil
}
