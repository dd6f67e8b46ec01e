package delaunay

// DefaultPrecision is the distance under which two points are duplicates.
const DefaultPrecision = 1e-9

// DefaultSuperScale is the size of the super triangle relative to the
// classic box-derived one.
const DefaultSuperScale = 1e3

const (
	panicPrecision  = "delaunay: WithPrecision: precision must be > 0"
	panicSuperScale = "delaunay: WithSuperScale: scale must be >= 1"
)

type options struct {
	precision  float64
	superScale float64
}

func defaultOptions() options {
	return options{precision: DefaultPrecision, superScale: DefaultSuperScale}
}

// Option configures New.
type Option func(*options)

// WithPrecision sets the duplicate distance and the conflict tolerance.
func WithPrecision(eps float64) Option {
	if !(eps > 0) {
		panic(panicPrecision)
	}
	return func(o *options) { o.precision = eps }
}

// WithSuperScale scales the super triangle. Larger triangles lose fewer
// convex hull edges.
func WithSuperScale(s float64) Option {
	if !(s >= 1) {
		panic(panicSuperScale)
	}
	return func(o *options) { o.superScale = s }
}
