package logger

import (
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// callerDepth is the number of frames searched for a caller.
const callerDepth = 16

// callerHook reports the first frame outside the logging packages as the
// entry's caller, so wrappers like LogPerformanceEntry point at their user.
type callerHook struct {
	skip []string
}

func newCallerHook() *callerHook {
	return &callerHook{skip: []string{"github.com/sirupsen/logrus", "marketmodel/logger."}}
}

func (h *callerHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *callerHook) Fire(entry *logrus.Entry) error {
	pcs := make([]uintptr, callerDepth)
	// 3 skips runtime.Callers, Fire and the logrus hook dispatcher.
	frames := runtime.CallersFrames(pcs[:runtime.Callers(3, pcs)])
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !h.internal(frame.Function) {
			entry.Caller = &frame
			return nil
		}
		if !more {
			return nil
		}
	}
}

func (h *callerHook) internal(fn string) bool {
	for _, prefix := range h.skip {
		if strings.HasPrefix(fn, prefix) {
			return true
		}
	}
	return false
}
