package mesh

import (
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

func TestComponents(t *testing.T) {
	m := Merge(NewQuadStrip(1, 3, 0, 0), NewQuadRing(4, 100, 100), NewTriangleStar(3, 200, 200))
	tp := m.Topology()

	comps := Components(tp.Elements, tp.AnyNodeAdjacency())
	assert.Equal(t, [][]int{{1, 2, 3}, {101, 102, 104, 103}, {201, 202, 203}}, comps)

	// Restricting the element set splits the strip
	comps = Components([]int{3, 1}, tp.AnyNodeAdjacency())
	assert.Equal(t, [][]int{{3}, {1}}, comps)

	edgeComps := Components(tp.Elements, tp.SharedEdgeAdjacency())
	assert.Len(t, edgeComps, 5)
}

func TestDistances(t *testing.T) {
	m := NewQuadStrip(1, 5, 0, 0)
	tp := m.Topology()
	dist, parent, order := Distances(3, tp.SharedEdgeAdjacency(), MemberSet(tp.Elements))
	assert.Equal(t, map[int]int{1: 2, 2: 1, 3: 0, 4: 1, 5: 2}, dist)
	assert.Equal(t, 4, parent[5])
	assert.Equal(t, []int{3, 2, 4, 1, 5}, order)
}

// randomMesh builds a mesh of triangles over a small node pool so that random connectivity emerges
func randomMesh(tris [][3]int) (elements []int, nodesOf func(int) []int) {
	nodes := make(map[int][]int)
	for i, tri := range tris {
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			continue
		}
		nodes[i+1] = []int{tri[0], tri[1], tri[2]}
		elements = append(elements, i+1)
	}
	return elements, func(e int) []int { return nodes[e] }
}

func genTriangles() gopter.Gen {
	return gen.SliceOf(gen.SliceOfN(3, gen.IntRange(1, 25)).Map(func(v []int) [3]int {
		return [3]int{v[0], v[1], v[2]}
	}))
}

func TestComponentsArePartition(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("components partition the input", prop.ForAll(
		func(tris [][3]int) bool {
			elements, nodesOf := randomMesh(tris)
			tp := NewTopology(elements, nodesOf)
			for _, rule := range []AdjacencyRule{AnyNode, SharedEdge} {
				seen := make(map[int]int)
				for _, c := range Components(tp.Elements, tp.Adjacency(rule)) {
					for _, e := range c {
						seen[e]++
					}
				}
				if len(seen) != len(tp.Elements) {
					return false
				}
				for _, cnt := range seen {
					if cnt != 1 {
						return false
					}
				}
			}
			return true
		},
		genTriangles(),
	))

	properties.Property("shared-edge components nest in any-node components", prop.ForAll(
		func(tris [][3]int) bool {
			elements, nodesOf := randomMesh(tris)
			tp := NewTopology(elements, nodesOf)
			owner := make(map[int]int)
			for i, c := range Components(tp.Elements, tp.AnyNodeAdjacency()) {
				for _, e := range c {
					owner[e] = i
				}
			}
			for _, c := range Components(tp.Elements, tp.SharedEdgeAdjacency()) {
				for _, e := range c {
					if owner[e] != owner[c[0]] {
						return false
					}
				}
			}
			return true
		},
		genTriangles(),
	))

	properties.Property("components agree with gonum connected components", prop.ForAll(
		func(tris [][3]int) bool {
			elements, nodesOf := randomMesh(tris)
			tp := NewTopology(elements, nodesOf)
			adj := tp.AnyNodeAdjacency()
			g := simple.NewUndirectedGraph()
			for _, e := range tp.Elements {
				g.AddNode(simple.Node(e))
			}
			for _, e := range tp.Elements {
				for _, n := range adj.Neighbors(e) {
					if n > e {
						g.SetEdge(simple.Edge{F: simple.Node(e), T: simple.Node(n)})
					}
				}
			}
			want := canonical(func() (cc [][]int) {
				for _, c := range topo.ConnectedComponents(g) {
					var ids []int
					for _, n := range c {
						ids = append(ids, int(n.ID()))
					}
					cc = append(cc, ids)
				}
				return
			}())
			got := canonical(Components(tp.Elements, adj))
			if len(want) != len(got) {
				return false
			}
			for i := range want {
				if len(want[i]) != len(got[i]) {
					return false
				}
				for j := range want[i] {
					if want[i][j] != got[i][j] {
						return false
					}
				}
			}
			return true
		},
		genTriangles(),
	))

	properties.TestingRun(t)
}

func canonical(comps [][]int) [][]int {
	out := make([][]int, len(comps))
	for i, c := range comps {
		cc := append([]int(nil), c...)
		sort.Ints(cc)
		out[i] = cc
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
