package terrain

import (
	"fmt"
	stdmath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/faultmesh/pkg/math"
)

// Params configures a terrain generation run.
type Params struct {
	Lattice
	Delta      float32 // Elevation change per fault iteration
	Iterations int     // Number of fault iterations
	Seed       int64   // Seed for the random fault source
}

// DefaultParams returns a 64x64 grid over [-0.5, 0.5]² with 100 fault
// iterations of 0.005 each.
func DefaultParams() Params {
	return Params{
		Lattice: Lattice{
			Div:    64,
			Bounds: math.Rect{MinX: -0.5, MaxX: 0.5, MinY: -0.5, MaxY: 0.5},
		},
		Delta:      0.005,
		Iterations: 100,
	}
}

// Validate checks all generation preconditions.
func (p Params) Validate() error {
	if err := p.Lattice.Validate(); err != nil {
		return err
	}
	if p.Iterations < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeIterations, p.Iterations)
	}
	d := float64(p.Delta)
	if stdmath.IsNaN(d) || stdmath.IsInf(d, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDelta, p.Delta)
	}
	return nil
}

// Stats summarizes a generation run.
type Stats struct {
	Fault      FaultStats
	Normals    NormalStats
	BuildTime  time.Duration
	FaultTime  time.Duration
	NormalTime time.Duration
}

// Total returns the time spent in all stages.
func (s Stats) Total() time.Duration {
	return s.BuildTime + s.FaultTime + s.NormalTime
}

// Terrain is the result of a generation run. It is not modified afterwards.
type Terrain struct {
	Params  Params
	Grid    *Grid
	Buffers *MeshBuffers
	Stats   Stats
}

type options struct {
	log    *zap.Logger
	source FaultSource
}

// Option customizes Generate.
type Option func(*options)

// WithLogger sets the logger used by all stages.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithFaultSource replaces the seeded random source.
func WithFaultSource(src FaultSource) Option {
	return func(o *options) {
		o.source = src
	}
}

// Generate builds the grid, displaces it and estimates normals.
func Generate(p Params, opts ...Option) (*Terrain, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("generating terrain: %w", err)
	}

	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.source == nil {
		o.source = NewRandomFaults(p.Seed)
	}
	log := o.log

	var stats Stats

	start := time.Now()
	grid, err := BuildGrid(p.Lattice)
	if err != nil {
		return nil, err
	}
	stats.BuildTime = time.Since(start)
	log.Debug("grid built",
		zap.Int("div", p.Div),
		zap.Int("vertices", grid.NumVertices()),
		zap.Int("faces", grid.NumFaces()))

	start = time.Now()
	displacer := FaultDisplacer{Delta: p.Delta, Iterations: p.Iterations, Log: log}
	stats.Fault = displacer.Displace(p.Bounds, grid.Plane(), grid.Heights(), o.source)
	stats.FaultTime = time.Since(start)

	start = time.Now()
	stats.Normals = NormalEstimator{Log: log}.Estimate(grid, grid.Normals())
	stats.NormalTime = time.Since(start)

	t := &Terrain{
		Params:  p,
		Grid:    grid,
		Buffers: grid.Buffers(),
		Stats:   stats,
	}

	lo, hi := grid.Heights().Range()
	log.Info("terrain generated",
		zap.Int("vertices", grid.NumVertices()),
		zap.Int("faces", grid.NumFaces()),
		zap.Int("iterations", p.Iterations),
		zap.Float32("min_z", lo),
		zap.Float32("max_z", hi),
		zap.Duration("elapsed", stats.Total()))
	return t, nil
}
