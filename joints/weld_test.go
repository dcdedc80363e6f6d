package joints

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gojoint/geometry3D"
	"github.com/notargets/gojoint/host"
	"github.com/notargets/gojoint/mesh"
)

var weldChain = []int{mesh.WeldFirst, mesh.WeldMiddle, mesh.WeldLast}

func weldContext(t *testing.T, s *host.Session, visible []int) WeldContext {
	flagged, err := s.TripleJunctionCheck(nil)
	require.NoError(t, err)
	junction := make(map[int]bool)
	for _, e := range flagged {
		junction[e] = true
	}
	return WeldContext{
		Owners:    mesh.NewTopology(visible, s.ElementNodes),
		NodesOf:   s.ElementNodes,
		Weld:      map[int]bool{mesh.WeldFirst: true, mesh.WeldMiddle: true, mesh.WeldLast: true},
		Junction:  junction,
		Geometry:  s,
		Tolerance: 5,
	}
}

func TestWeldFixture(t *testing.T) {
	m := mesh.NewWeldJoint(geometry3D.NewCoord(0, -1, 0), geometry3D.NewCoord(0, 1, 0), 0, 0)
	flagged, err := host.NewSession(m).TripleJunctionCheck(nil)
	require.NoError(t, err)
	assert.Equal(t, []int{mesh.WeldStiffener, mesh.WeldJunction1, mesh.WeldJunction2}, flagged)
	topo := m.Topology()
	for n, owners := range map[int]int{2: 4, 3: 4, 6: 6, 7: 6} {
		assert.Len(t, topo.Owners(n), owners, "node %d", n)
	}
}

func TestClassifyWeldGroup(t *testing.T) {
	coord := geometry3D.NewCoord
	cases := []struct {
		name             string
		plate, stiffener geometry3D.Coord
		class            WeldClass
		err              error
	}{
		{"plate and stiffener in the weld plane", coord(0, -1, 0), coord(0, 1, 0), WeldSide, nil},
		{"tilted within tolerance", coord(0, -1, 0.05), coord(0, 1, -0.05), WeldSide, nil},
		{"plate and stiffener perpendicular to the weld", coord(0, 0, -1), coord(0, 0, -1), WeldCenter, nil},
		{"short elements not parallel", coord(0, 0, -1), coord(0, 1, 0), 0, ErrShortNotParallel},
		{"short elements at 45 degrees to the weld", coord(0, -1, -1), coord(0, 1, 1), 0, ErrObliqueGroup},
		{"tilted beyond tolerance", coord(0, -1, 0.2), coord(0, 1, -0.2), 0, ErrObliqueGroup},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := mesh.NewWeldJoint(tc.plate, tc.stiffener, 0, 0)
			s := host.NewSession(m)
			g, err := ClassifyWeldGroup(weldChain, weldContext(t, s, m.Elements))
			assert.Equal(t, mesh.WeldMiddle, g.Middle)
			assert.Equal(t, mesh.WeldPlate, g.Short1)
			assert.Equal(t, mesh.WeldStiffener, g.Short2)
			if tc.err != nil {
				assert.True(t, errors.Is(err, tc.err), "%v", err)
				assert.True(t, IsSkip(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.class, g.Class)
		})
	}
}

func TestClassifyWeldGroupAngles(t *testing.T) {
	m := mesh.NewWeldJoint(geometry3D.NewCoord(0, 0, -1), geometry3D.NewCoord(0, 0, -1), 0, 0)
	s := host.NewSession(m)
	// Reversed order has the same middle element
	g, err := ClassifyWeldGroup([]int{mesh.WeldLast, mesh.WeldMiddle, mesh.WeldFirst}, weldContext(t, s, m.Elements))
	require.NoError(t, err)
	assert.Equal(t, WeldCenter, g.Class)
	assert.InDelta(t, 0, g.Short, 1e-9)
	assert.InDelta(t, 90, g.Main, 1e-9)
	assert.InDelta(t, 90, g.Secondary, 1e-9)
}

func TestClassifyWeldGroupCritical(t *testing.T) {
	side := func() (*mesh.ShellMesh, *host.Session) {
		m := mesh.NewWeldJoint(geometry3D.NewCoord(0, -1, 0), geometry3D.NewCoord(0, 1, 0), 0, 0)
		return m, host.NewSession(m)
	}
	{ // A hidden fin leaves node 6 with five visible owners
		m, s := side()
		var visible []int
		for _, e := range m.Elements {
			if e != mesh.WeldFin1 {
				visible = append(visible, e)
			}
		}
		_, err := ClassifyWeldGroup(weldChain, weldContext(t, s, visible))
		assert.True(t, errors.Is(err, ErrNonstandardGroup))
	}
	{ // Without flagged shells there is no second short element
		m, s := side()
		wc := weldContext(t, s, m.Elements)
		wc.Junction = nil
		_, err := ClassifyWeldGroup(weldChain, wc)
		assert.True(t, errors.Is(err, ErrNoShortElements))
	}
	{ // A flagged plate is not a first short element
		m, s := side()
		wc := weldContext(t, s, m.Elements)
		wc.Junction[mesh.WeldPlate] = true
		_, err := ClassifyWeldGroup(weldChain, wc)
		assert.True(t, errors.Is(err, ErrNoShortElements))
	}
	{ // Two flagged shells on the upper edge are ambiguous
		m, s := side()
		wc := weldContext(t, s, m.Elements)
		wc.Weld = map[int]bool{mesh.WeldFirst: true, mesh.WeldLast: true}
		wc.Junction[mesh.WeldMiddle] = true
		_, err := ClassifyWeldGroup(weldChain, wc)
		assert.True(t, errors.Is(err, ErrNoShortElements))
	}
	{
		m, s := side()
		s.ForgetCoord(10)
		_, err := ClassifyWeldGroup(weldChain, weldContext(t, s, m.Elements))
		assert.True(t, errors.Is(err, ErrUndefinedGeometry))
	}
	{
		m, s := side()
		_, err := ClassifyWeldGroup(weldChain[:2], weldContext(t, s, m.Elements))
		assert.True(t, errors.Is(err, ErrNonstandardGroup))
		assert.Equal(t, "NonstandardGroup", Reason(err))
	}
}
