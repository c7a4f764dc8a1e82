package codec

import "reflect"

// Indirect dereferences a non-nil pointer so codecs can switch on entity
// values only. Anything else is returned unchanged.
func Indirect(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		return rv.Elem().Interface()
	}
	return v
}
