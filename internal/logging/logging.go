package logging

import "go.uber.org/zap"

// New returns a development logger when debug is set, and a no-op logger
// otherwise. User-facing output goes through the command streams, not here.
func New(debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
