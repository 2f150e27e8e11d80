package snowtesting

import (
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
)

// DefaultStartTimeMS is 2024-05-08T16:13:04Z, comfortably inside the id time
// range.
const DefaultStartTimeMS int64 = 1715184784000

type TestContext struct {
	Log   logger.Logger
	Clock *FakeClock
	T     *testing.T
}

type TestConfig struct {
	// StartTimeMS is the initial fake clock reading. It is normal to force it
	// to some fixed value so that the generated ids are the same from run to
	// run. Zero selects DefaultStartTimeMS.
	StartTimeMS     int64
	TestLabelPrefix string
	// LogLevel is passed to logger.New, defaults to NOOP
	LogLevel string
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	c := TestContext{
		T: t,
	}

	level := cfg.LogLevel
	if level == "" {
		level = "NOOP"
	}
	logger.New(level)
	c.Log = logger.Sugar.WithServiceName(cfg.TestLabelPrefix)

	start := cfg.StartTimeMS
	if start == 0 {
		start = DefaultStartTimeMS
	}
	c.Clock = NewFakeClock(start)

	return c
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

func (c *TestContext) GetClock() *FakeClock { return c.Clock }
