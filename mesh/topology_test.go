package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTopology(t *testing.T) {
	// Two quads sharing the edge {2,5}, a triangle touching the second quad at node 6 only
	nodes := map[int][]int{
		1: {1, 2, 5, 4},
		2: {2, 3, 6, 5, 0, 0}, // Trailing absent entries are dropped
		3: {6, 7, 8},
	}
	topo := NewTopology([]int{1, 2, 3, 2}, func(e int) []int { return nodes[e] })

	assert.Equal(t, []int{1, 2, 3}, topo.Elements)
	assert.Equal(t, []int{2, 3, 6, 5}, topo.ElementNodes[2])
	assert.Equal(t, []int{1, 2}, topo.Owners(2))
	assert.Equal(t, []int{2, 3}, topo.Owners(6))
	assert.Equal(t, []int{1}, topo.Owners(1))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, topo.Nodes)
	assert.Equal(t, []int{2, 5}, topo.SharedNodes(1, 2))
	assert.True(t, topo.SharesNode(2, 3))
	assert.False(t, topo.SharesNode(1, 3))

	anyAdj := topo.AnyNodeAdjacency()
	assert.Equal(t, AnyNode, anyAdj.Rule)
	assert.Equal(t, []int{2}, anyAdj.Neighbors(1))
	assert.Equal(t, []int{1, 3}, anyAdj.Neighbors(2))
	assert.True(t, anyAdj.Adjacent(3, 2))
	assert.False(t, anyAdj.Adjacent(1, 3))
	assert.Equal(t, 2, anyAdj.NumEdges())

	edge := topo.SharedEdgeAdjacency()
	assert.Equal(t, SharedEdge, edge.Rule)
	assert.Equal(t, []int{2}, edge.Neighbors(1))
	assert.Equal(t, []int{1}, edge.Neighbors(2))
	assert.Empty(t, edge.Neighbors(3))
	assert.Equal(t, 1, edge.NumEdges())
}

func TestRestrict(t *testing.T) {
	m := NewLapJoint(false, 0, 0)
	topo := m.Topology()
	require.Len(t, topo.Owners(LapCenterNode), 3)

	sub := topo.Restrict([]int{LapA, LapT, 99})
	assert.Equal(t, []int{LapT, LapA}, sub.Owners(LapCenterNode))
	assert.Equal(t, []int{LapT}, sub.Owners(LapCEdgeNode))
	assert.False(t, sub.Contains(99))
	assert.False(t, sub.Contains(LapC))
}

func TestSharedNodeCountsMatchesPairCounting(t *testing.T) {
	m := Merge(NewQuadStrip(2, 5, 0, 0), NewTriangleStar(4, 100, 100))
	topo := m.Topology()
	counts := topo.SharedNodeCounts()

	anyAdj := topo.AnyNodeAdjacency()
	edge := topo.SharedEdgeAdjacency()
	assert.Equal(t, anyAdj.NumEdges(), len(counts))
	nEdge := 0
	for ek, c := range counts {
		pair := ek.GetVertices(false)
		assert.True(t, anyAdj.Adjacent(pair[0], pair[1]))
		assert.Equal(t, c >= 2, edge.Adjacent(pair[0], pair[1]), "pair %v", pair)
		if c >= 2 {
			nEdge++
		}
	}
	assert.Equal(t, edge.NumEdges(), nEdge)

	st := topo.ComputeStatistics()
	assert.Equal(t, 14, st.Elements)
	assert.Equal(t, 2, st.AnyNodeComponents)
	// The star's triangles only touch at one node, so each is its own shared-edge component
	assert.Equal(t, 5, st.SharedEdgeComponents)
	assert.Equal(t, 10, st.LargestSharedEdgeComponent)
	assert.Equal(t, 4, st.MaxNodeValence)
}

func TestShellMesh(t *testing.T) {
	m := NewShellMesh()
	assert.Error(t, m.AddElement(0, []int{1, 2, 3}))
	assert.Error(t, m.AddElement(1, []int{1, 2, 0}))
	assert.Error(t, m.AddElement(1, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}))
	require.NoError(t, m.AddElement(1, []int{1, 2, 3, 0}))
	assert.Error(t, m.AddElement(1, []int{1, 2, 3}))
	assert.Equal(t, []int{1, 2, 3}, m.NodesOf(1))

	m.AddGroup("W", 7, 1)
	m.AddGroup("W", 7, 2)
	assert.Equal(t, []int{1, 2}, m.Group("W").Elements)
	assert.Nil(t, m.Group("missing"))
}
