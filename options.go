package seqgo

// DefaultCapacity is the initial position-index capacity used when none is
// configured. It is also the growth floor: a zero-capacity array grows to
// DefaultCapacity on its first append.
const DefaultCapacity = 25

// growIncrement is the fixed capacity increment used by positional inserts.
// Positional inserts are already O(n), so linear growth bounds wasted space
// without changing their asymptotic cost; appends double instead to stay
// amortized O(1).
const growIncrement = 25

type options struct {
	capacity int
	logger   *Logger
}

// Option configures an Array at construction time.
type Option func(*options)

// WithCapacity sets the initial capacity of the position index. Values below
// zero are treated as zero. The array grows past this capacity on demand.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.capacity = n
	}
}

// WithLogger configures structured logging for growth, rebuild and snapshot
// events. Pass nil to keep logging disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		capacity: DefaultCapacity,
		logger:   NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
