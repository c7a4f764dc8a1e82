package pb

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"marketmodel/schema"
	"marketmodel/uint128"
	"marketmodel/union"
	"marketmodel/xerr"
)

func num(id schema.FieldID) protowire.Number {
	return protowire.Number(id)
}

func appendString(b []byte, id schema.FieldID, s string) []byte {
	b = protowire.AppendTag(b, num(id), protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendVarint(b []byte, id schema.FieldID, v uint64) []byte {
	b = protowire.AppendTag(b, num(id), protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendInt64(b []byte, id schema.FieldID, v int64) []byte {
	return appendVarint(b, id, uint64(v))
}

func appendDouble(b []byte, id schema.FieldID, f float64) []byte {
	b = protowire.AppendTag(b, num(id), protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(f))
}

func appendMessage(b []byte, id schema.FieldID, msg []byte) []byte {
	b = protowire.AppendTag(b, num(id), protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

// appendVoid writes the absent arm of a union as an empty message.
func appendVoid(b []byte, id schema.FieldID) []byte {
	return appendMessage(b, id, nil)
}

func appendUint128(b []byte, id schema.FieldID, u uint128.UInt128) []byte {
	low, high := u.Words()
	var msg []byte
	msg = appendVarint(msg, 1, low)
	msg = appendVarint(msg, 2, high)
	return appendMessage(b, id, msg)
}

// appendUnion writes exactly one of the two arms.
func appendUnion[T any](b []byte, absentID, presentID schema.FieldID, o union.Optional[T], payload func([]byte, schema.FieldID, T) []byte) []byte {
	tag, v := union.Split(o)
	if tag == union.Absent {
		return appendVoid(b, absentID)
	}
	return payload(b, presentID, v)
}

// value is the raw encoding of one field occurrence.
type value struct {
	num protowire.Number
	typ protowire.Type
	raw []byte
}

func malformed(format string, args ...any) error {
	return xerr.New(xerr.MalformedPayload, "protobuf: "+format, args...)
}

func (v value) want(typ protowire.Type) error {
	if v.typ != typ {
		return malformed("field %d has wire type %d, want %d", v.num, v.typ, typ)
	}
	return nil
}

func (v value) varint() (uint64, error) {
	if err := v.want(protowire.VarintType); err != nil {
		return 0, err
	}
	x, n := protowire.ConsumeVarint(v.raw)
	if n < 0 {
		return 0, malformed("field %d: %v", v.num, protowire.ParseError(n))
	}
	return x, nil
}

func (v value) signed() (int64, error) {
	x, err := v.varint()
	return int64(x), err
}

func (v value) double() (float64, error) {
	if err := v.want(protowire.Fixed64Type); err != nil {
		return 0, err
	}
	x, n := protowire.ConsumeFixed64(v.raw)
	if n < 0 {
		return 0, malformed("field %d: %v", v.num, protowire.ParseError(n))
	}
	return math.Float64frombits(x), nil
}

func (v value) bytes() ([]byte, error) {
	if err := v.want(protowire.BytesType); err != nil {
		return nil, err
	}
	x, n := protowire.ConsumeBytes(v.raw)
	if n < 0 {
		return nil, malformed("field %d: %v", v.num, protowire.ParseError(n))
	}
	return x, nil
}

func (v value) text() (string, error) {
	x, err := v.bytes()
	return string(x), err
}

// void checks the absent arm carries an empty message. Unknown fields inside
// it are tolerated.
func (v value) void() error {
	msg, err := v.bytes()
	if err != nil {
		return err
	}
	return eachField(msg, func(value) error { return nil })
}

func (v value) words() (uint128.UInt128, error) {
	msg, err := v.bytes()
	if err != nil {
		return uint128.Zero, err
	}
	var low, high uint64
	err = eachField(msg, func(f value) error {
		var err error
		switch f.num {
		case 1:
			low, err = f.varint()
		case 2:
			high, err = f.varint()
		}
		return err
	})
	return uint128.FromWords(low, high), err
}

// eachField walks a message. visit ignores numbers it does not know, which
// skips unknown fields.
func eachField(b []byte, visit func(value) error) error {
	for len(b) > 0 {
		n, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return malformed("%v", protowire.ParseError(tagLen))
		}
		b = b[tagLen:]
		valLen := protowire.ConsumeFieldValue(n, typ, b)
		if valLen < 0 {
			return malformed("field %d: %v", n, protowire.ParseError(valLen))
		}
		if err := visit(value{num: n, typ: typ, raw: b[:valLen]}); err != nil {
			return err
		}
		b = b[valLen:]
	}
	return nil
}

// arm collects the two arms of a union while walking a message. The last arm
// seen wins; no arm at all decodes as absent.
type arm[T any] struct {
	tag     union.Arm
	payload T
}

func (a *arm[T]) absent(v value) error {
	if err := v.void(); err != nil {
		return err
	}
	var zero T
	a.tag, a.payload = union.Absent, zero
	return nil
}

func (a *arm[T]) present(v T, err error) error {
	if err != nil {
		return err
	}
	a.tag, a.payload = union.Present, v
	return nil
}

func (a *arm[T]) optional() (union.Optional[T], error) {
	return union.Join(a.tag, func() (T, error) { return a.payload, nil })
}
