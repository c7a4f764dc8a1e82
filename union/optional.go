// Package union carries the two-arm encoding used for every optional field.
//
// On the wire an optional field is a tagged choice between a void arm
// (no<Field>, Absent) and a payload arm (<field>, Present). In memory it is an
// Optional[T]. Split and Join are the only conversions between the two and
// every codec goes through them.
package union

import (
	"bytes"
	"fmt"

	"github.com/segmentio/encoding/json"

	"marketmodel/xerr"
)

// Arm is the wire tag of an optional field.
type Arm uint8

const (
	Absent  Arm = 0
	Present Arm = 1
)

func (a Arm) String() string {
	switch a {
	case Absent:
		return "absent"
	case Present:
		return "present"
	default:
		return fmt.Sprintf("Arm(%d)", uint8(a))
	}
}

// ParseArm validates a decoded tag. Anything other than 0 or 1 is corrupt
// data and fails with MalformedUnion.
func ParseArm(raw uint64) (Arm, error) {
	switch raw {
	case 0:
		return Absent, nil
	case 1:
		return Present, nil
	}
	return 0, xerr.New(xerr.MalformedUnion, "union tag %d is neither arm", raw)
}

// Optional is a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPtr maps nil to None.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Optional[T]) IsSome() bool {
	return o.ok
}

func (o Optional[T]) Arm() Arm {
	if o.ok {
		return Present
	}
	return Absent
}

func (o Optional[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// Ptr returns nil for an absent value.
func (o Optional[T]) Ptr() *T {
	if !o.ok {
		return nil
	}
	v := o.value
	return &v
}

func (o Optional[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// Split is the encoding half of the adapter. The payload is the zero value
// when the arm is Absent and must not be written.
func Split[T any](o Optional[T]) (Arm, T) {
	return o.Arm(), o.value
}

// Join is the decoding half of the adapter. payload is only invoked for the
// Present arm.
func Join[T any](arm Arm, payload func() (T, error)) (Optional[T], error) {
	switch arm {
	case Absent:
		return None[T](), nil
	case Present:
		v, err := payload()
		if err != nil {
			return None[T](), err
		}
		return Some(v), nil
	}
	return None[T](), xerr.New(xerr.MalformedUnion, "union tag %d is neither arm", uint8(arm))
}

// JoinRaw validates a raw tag and joins it.
func JoinRaw[T any](raw uint64, payload func() (T, error)) (Optional[T], error) {
	arm, err := ParseArm(raw)
	if err != nil {
		return None[T](), err
	}
	return Join(arm, payload)
}

// Map converts the payload, keeping the arm.
func Map[T, U any](o Optional[T], f func(T) (U, error)) (Optional[U], error) {
	if !o.ok {
		return None[U](), nil
	}
	u, err := f(o.value)
	if err != nil {
		return None[U](), err
	}
	return Some(u), nil
}

// MarshalJSON writes null for the absent arm.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
