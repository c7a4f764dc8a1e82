//go:build noborsh

package all

import "marketmodel/codec"

func borshCodec(Options) (codec.Codec, error) {
	return nil, nil
}
