package terrain

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/faultmesh/pkg/math"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	require.NoError(t, p.Validate())
	assert.Equal(t, 64, p.Div)
	assert.Equal(t, float32(0.005), p.Delta)
	assert.Equal(t, 100, p.Iterations)
	assert.Equal(t, math.Rect{MinX: -0.5, MaxX: 0.5, MinY: -0.5, MaxY: 0.5}, p.Bounds)
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
		want   error
	}{
		{"zero div", func(p *Params) { p.Div = 0 }, ErrInvalidDivisions},
		{"degenerate bounds", func(p *Params) { p.Bounds.MaxY = p.Bounds.MinY }, ErrDegenerateBounds},
		{"negative iterations", func(p *Params) { p.Iterations = -1 }, ErrNegativeIterations},
		{"nan delta", func(p *Params) { p.Delta = float32(stdmath.NaN()) }, ErrInvalidDelta},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			assert.ErrorIs(t, p.Validate(), tt.want)

			_, err := Generate(p)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerateFlatScenario(t *testing.T) {
	p := Params{Lattice: Lattice{Div: 2, Bounds: unitSquare}, Delta: 1, Iterations: 0}
	tr, err := Generate(p)
	require.NoError(t, err)

	b := tr.Buffers
	assert.Equal(t, []float32{
		-1, -1, 0, 0, -1, 0, 1, -1, 0,
		-1, 0, 0, 0, 0, 0, 1, 0, 0,
		-1, 1, 0, 0, 1, 0, 1, 1, 0,
	}, b.Positions)
	assert.Equal(t, 8, b.NumFaces())
	for i := 0; i < b.NumVertices(); i++ {
		assert.Equal(t, math.UnitZ, b.Normal(i), "vertex %d", i)
	}
	assert.Zero(t, tr.Stats.Fault.Iterations)
}

func TestGenerateSingleFault(t *testing.T) {
	p := Params{Lattice: Lattice{Div: 1, Bounds: unitSquare}, Delta: 1, Iterations: 1}
	src := &FaultList{Faults: []Fault{{P: math.Vec2{}, N: math.FromAngle(0)}}}

	tr, err := Generate(p, WithFaultSource(src))
	require.NoError(t, err)

	assert.Equal(t, []float32{-1, 1, -1, 1}, tr.Grid.Heights().Values())
	assert.Equal(t, 2, tr.Stats.Fault.Raised)
	assert.Equal(t, 2, tr.Stats.Fault.Lowered)
}

func TestGenerateDeterministic(t *testing.T) {
	p := DefaultParams()
	p.Div = 16
	p.Seed = 2024

	a, err := Generate(p)
	require.NoError(t, err)
	b, err := Generate(p)
	require.NoError(t, err)

	assert.Equal(t, a.Buffers.Positions, b.Buffers.Positions)
	assert.Equal(t, a.Buffers.Normals, b.Buffers.Normals)
}

func TestGenerateUnitNormals(t *testing.T) {
	p := DefaultParams()
	p.Div = 20
	p.Seed = 9
	p.Iterations = 300

	tr, err := Generate(p)
	require.NoError(t, err)
	require.Zero(t, tr.Stats.Normals.Degenerate)

	for i := 0; i < tr.Buffers.NumVertices(); i++ {
		assert.InDelta(t, 1.0, tr.Buffers.Normal(i).F64().Length(), 1e-5)
	}
	assert.Equal(t, 2*len(tr.Buffers.Triangles), len(tr.Buffers.Edges))
}

func TestGenerateKeepsXY(t *testing.T) {
	p := DefaultParams()
	p.Div = 6
	p.Seed = 11

	flat, err := BuildGrid(p.Lattice)
	require.NoError(t, err)
	tr, err := Generate(p)
	require.NoError(t, err)

	for i := 0; i < flat.NumVertices(); i++ {
		assert.Equal(t, flat.Plane().At(i), tr.Grid.Plane().At(i))
	}
}

func TestGenerateLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := DefaultParams()
	p.Div = 4

	_, err := Generate(p, WithLogger(zap.New(core)))
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("grid built").Len())
	assert.Equal(t, 1, logs.FilterMessage("fault displacement done").Len())
	assert.Equal(t, 1, logs.FilterMessage("terrain generated").Len())
}
