package brainviz

// Option configures a kernel call.
//
// Example:
//
//	// Extract 64 levels using every available core
//	iso, err := brainviz.ExtractIsolines(v, f, s, levels, brainviz.WithWorkers(0))
type Option func(*options)

// options holds optional configuration shared by the kernels.
type options struct {
	// workers is the parallelism for independent batches (levels, sphere
	// replicas). 1 runs inline; 0 or negative means GOMAXPROCS.
	workers int

	// staggered rotates each latitude ring of a placed sphere by half a
	// column.
	staggered bool
}

func defaultOptions() options {
	return options{
		workers:   1,
		staggered: true,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithWorkers sets how many goroutines may process independent batches.
// Results are identical for every worker count. Zero or a negative value
// selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithStaggeredRings controls whether PlaceSpheres offsets successive
// latitude rings by half a column. Enabled by default.
func WithStaggeredRings(on bool) Option {
	return func(o *options) {
		o.staggered = on
	}
}
