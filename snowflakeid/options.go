package snowflakeid

import "github.com/datatrails/go-datatrails-common/logger"

type Options struct {
	Clock Clock
	Log   logger.Logger
}

// Option configures a Generator
type Option func(*Options)

// WithClock replaces the default WallClock. Tests use it to hold time still.
func WithClock(clock Clock) Option {
	return func(o *Options) {
		o.Clock = clock
	}
}

// WithLogger enables logging of clock stalls. Without it the generator is
// silent.
func WithLogger(log logger.Logger) Option {
	return func(o *Options) {
		o.Log = log
	}
}
