package extremity

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gojoint/geometry3D"
	"github.com/notargets/gojoint/mesh"
)

func TestExtract(t *testing.T) {
	// Nodes 1..4 on the bottom row, 5..8 on the top row
	m := mesh.NewQuadStrip(1, 3, 0, 0)
	topo := m.Topology()
	{
		tips, err := Extract(m.Elements, topo, nil)
		require.NoError(t, err)
		assert.Equal(t, [2]int{1, 3}, tips.Ends)
		assert.Equal(t, [2]int{1, 4}, tips.Nodes)
		assert.Equal(t, []int{2, 3, 5, 6, 7, 8}, tips.Remainder)
		assert.Empty(t, tips.Missing())
	}
	{ // Only junction nodes qualify
		tips, err := Extract(m.Elements, topo, map[int]bool{5: true, 8: true})
		require.NoError(t, err)
		assert.Equal(t, [2]int{5, 8}, tips.Nodes)
		assert.Equal(t, []int{1, 2, 3, 4, 6, 7}, tips.Remainder)
	}
	{ // A junction node shared with the neighbor is not free
		tips, err := Extract(m.Elements, topo, map[int]bool{5: true, 7: true})
		assert.True(t, errors.Is(err, ErrNoFreeNode))
		assert.Equal(t, [2]int{5, 0}, tips.Nodes)
		assert.Equal(t, []int{3}, tips.Missing())
		assert.Equal(t, []int{1, 2, 3, 4, 6, 7, 8}, tips.Remainder)
	}
}

func TestExtractTooFewEnds(t *testing.T) {
	ring := mesh.NewQuadRing(4, 0, 0)
	_, err := Extract(ring.Elements, ring.Topology(), nil)
	assert.True(t, errors.Is(err, ErrTooFewEnds))

	single := mesh.NewQuadStrip(1, 1, 0, 0)
	_, err = Extract(single.Elements, single.Topology(), nil)
	assert.True(t, errors.Is(err, ErrTooFewEnds))
}

func TestGroups(t *testing.T) {
	m := mesh.Merge(mesh.NewQuadStrip(1, 3, 0, 0), mesh.NewQuadStrip(1, 2, 100, 100))
	topo := m.Topology()
	groups := Groups(m.Elements, topo)
	require.Len(t, groups, 2)
	assert.ElementsMatch(t, []int{1, 2, 3}, groups[0])
	assert.ElementsMatch(t, []int{101, 102}, groups[1])

	tips, err := Extract(groups[1], topo, nil)
	require.NoError(t, err)
	assert.Equal(t, [2]int{101, 102}, tips.Ends)
	assert.Equal(t, [2]int{101, 103}, tips.Nodes)

}

func TestJunctionNodes(t *testing.T) {
	m := mesh.NewQuadStrip(1, 3, 0, 0)
	// Two fins on the edge {1,5} of element 1, and one on the edge {2,6} of elements 1 and 2
	for id := 20; id <= 25; id++ {
		m.AddNode(id, geometry3D.NewCoord(0, 0, float64(id)))
	}
	require.NoError(t, m.AddElement(10, []int{1, 5, 20, 21}))
	require.NoError(t, m.AddElement(11, []int{5, 1, 22, 23}))
	require.NoError(t, m.AddElement(12, []int{2, 6, 24, 25}))

	cases := []struct {
		name    string
		flagged []int
		want    map[int]bool
	}{
		{"no flagged elements", nil, map[int]bool{}},
		{"one element", []int{1}, map[int]bool{}},
		{"two elements sharing an edge", []int{1, 2}, map[int]bool{}},
		{"three owners of an edge", []int{1, 10, 11}, map[int]bool{1: true, 5: true}},
		{"three owners of two edges", []int{1, 2, 10, 11, 12}, map[int]bool{1: true, 5: true, 2: true, 6: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, JunctionNodes(tc.flagged, m.NodesOf))
		})
	}
}
