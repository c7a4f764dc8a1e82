//go:build !noborsh

package all

import (
	"marketmodel/codec"
	"marketmodel/codec/borsh"
)

func borshCodec(Options) (codec.Codec, error) {
	return borsh.New(), nil
}
