package bridge

import (
	"math"

	"marketmodel/xerr"
)

const msPerSecond = 1000

// secondsToMillis fails instead of wrapping when s*1000 leaves int64.
func secondsToMillis(field string, s int64) (int64, error) {
	if s > math.MaxInt64/msPerSecond || s < math.MinInt64/msPerSecond {
		return 0, xerr.New(xerr.RangeExceeded, "%s: %d s does not fit in int64 milliseconds", field, s)
	}
	return s * msPerSecond, nil
}

// millisToSeconds truncates toward zero. The sub-second remainder is dropped.
func millisToSeconds(ms int64) int64 {
	return ms / msPerSecond
}

// unsignedMillisToSeconds narrows a legacy u64 millisecond value, truncating
// the sub-second remainder.
func unsignedMillisToSeconds(field string, ms uint64) (int64, error) {
	s := ms / msPerSecond
	if s > math.MaxInt64 {
		return 0, xerr.New(xerr.RangeExceeded, "%s: %d ms does not fit in int64 seconds", field, ms)
	}
	return int64(s), nil
}

// secondsToUnsignedMillis widens a signed second value into legacy u64
// milliseconds. Negative instants have no legacy encoding.
func secondsToUnsignedMillis(field string, s int64) (uint64, error) {
	if s < 0 {
		return 0, xerr.New(xerr.RangeExceeded, "%s: negative instant %d s has no unsigned encoding", field, s)
	}
	if uint64(s) > math.MaxUint64/msPerSecond {
		return 0, xerr.New(xerr.RangeExceeded, "%s: %d s does not fit in uint64 milliseconds", field, s)
	}
	return uint64(s) * msPerSecond, nil
}
