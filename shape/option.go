package shape

import (
	"strconv"
	"time"

	"github.com/godruoyi/go-snowflake"
	"github.com/google/uuid"
	"github.com/sgostarter/i/l"
)

type IDGenerator func() string

func SnowflakeIDGenerator() string {
	return strconv.FormatUint(snowflake.ID(), 36)
}

func UUIDGenerator() string {
	return uuid.NewString()
}

type Options struct {
	logger l.Wrapper
	events EventChannel
	idGen  IDGenerator
	now    func() time.Time
}

type Option func(o *Options)

func optionNew(option ...Option) *Options {
	opts := &Options{}
	for _, o := range option {
		o(opts)
	}

	if opts.logger == nil {
		opts.logger = l.NewNopLoggerWrapper()
	}

	if opts.idGen == nil {
		opts.idGen = SnowflakeIDGenerator
	}

	if opts.now == nil {
		opts.now = time.Now
	}

	if opts.events == nil {
		opts.events = NewEventChannel(opts.logger)
	}

	return opts
}

func WithLogger(logger l.Wrapper) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

// WithEventChannel shares one channel between shapes; envelopes carry the shape id.
func WithEventChannel(events EventChannel) Option {
	return func(o *Options) {
		o.events = events
	}
}

func WithIDGenerator(idGen IDGenerator) Option {
	return func(o *Options) {
		o.idGen = idGen
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.now = now
	}
}
