package xerr

import (
	"errors"
	"fmt"
)

// Code classifies failures raised by the data model and its codecs.
type Code int

const (
	RangeExceeded Code = iota + 1
	UnknownEnumerant
	MalformedUnion
	MalformedPayload
	UnsupportedType
	InvalidPair
)

// CodeError carries a Code plus a human readable message. Two CodeErrors
// match under errors.Is when their codes are equal, so callers test against
// the package sentinels regardless of the message.
type CodeError struct {
	Code Code   `json:"code"`
	Msg  string `json:"msg"`
}

var (
	ErrRangeExceeded    = NewErrCode(RangeExceeded)
	ErrUnknownEnumerant = NewErrCode(UnknownEnumerant)
	ErrMalformedUnion   = NewErrCode(MalformedUnion)
	ErrMalformedPayload = NewErrCode(MalformedPayload)
	ErrUnsupportedType  = NewErrCode(UnsupportedType)
	ErrInvalidPair      = NewErrCode(InvalidPair)
)

func (e *CodeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *CodeError) Is(target error) bool {
	var t *CodeError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func New(code Code, format string, args ...any) error {
	return &CodeError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func NewErrCode(code Code) error {
	return &CodeError{Code: code, Msg: MapErrMsg(code)}
}

func MapErrMsg(code Code) string {
	switch code {
	case RangeExceeded:
		return "value not representable in destination type"
	case UnknownEnumerant:
		return "enumeration ordinal not in registry"
	case MalformedUnion:
		return "union tag outside its two arms"
	case MalformedPayload:
		return "payload is corrupt or truncated"
	case UnsupportedType:
		return "type has no encoding in this format"
	case InvalidPair:
		return "pair identifier is not BASE/QUOTE"
	default:
		return "unknown error"
	}
}

// CodeOf returns the code of the first CodeError in err's chain, or 0.
func CodeOf(err error) Code {
	var ce *CodeError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return 0
}

func (c Code) String() string {
	switch c {
	case RangeExceeded:
		return "RangeExceeded"
	case UnknownEnumerant:
		return "UnknownEnumerant"
	case MalformedUnion:
		return "MalformedUnion"
	case MalformedPayload:
		return "MalformedPayload"
	case UnsupportedType:
		return "UnsupportedType"
	case InvalidPair:
		return "InvalidPair"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}
