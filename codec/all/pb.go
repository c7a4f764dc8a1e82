//go:build !nopb

package all

import (
	"marketmodel/codec"
	"marketmodel/codec/pb"
)

func protobufCodec(Options) (codec.Codec, error) {
	return pb.New(), nil
}
