//go:build !nojson

package all

import (
	"marketmodel/codec"
	"marketmodel/codec/jsonx"
)

func jsonCodec(opts Options) (codec.Codec, error) {
	return jsonx.New(jsonx.WithIndent(opts.JSONIndent)), nil
}
