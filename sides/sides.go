// Package sides splits two-row element strips into their two sides and finds the C side of a
// T-joint
package sides

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/notargets/gojoint/mesh"
)

var ErrNoSecondSide = errors.New("NoSecondSide")

// Split divides a strip that is two elements wide into its two rows using shared-edge adjacency.
// Side 1 is the walked row in walk order, side 2 the remaining elements ascending. The strip is
// assumed regular; irregular strips still return a partition but the rows may be mixed.
func Split(elements []int, topo *mesh.Topology) (side1, side2 []int) {
	if len(elements) == 0 {
		return
	}
	var (
		t      = topo.Restrict(elements)
		adj    = t.SharedEdgeAdjacency()
		sorted = append([]int(nil), elements...)
	)
	sort.Ints(sorted)

	start := sorted[0]
	for _, e := range sorted {
		if len(adj.Neighbors(e)) == 2 {
			start = e
			break
		}
	}
	visited := map[int]bool{start: true}
	side1 = []int{start}

	if next, ok := firstStep(start, adj, t); ok {
		prev, cur := start, next
		visited[cur] = true
		side1 = append(side1, cur)
		for i := 0; i < len(sorted); i++ {
			var found bool
			for _, n := range adj.Neighbors(cur) {
				if n != prev && !visited[n] && !t.SharesNode(n, prev) {
					next, found = n, true
					break
				}
			}
			if !found {
				break
			}
			prev, cur = cur, next
			visited[cur] = true
			side1 = append(side1, cur)
		}
	}

	for _, e := range sorted {
		if !visited[e] {
			side2 = append(side2, e)
		}
	}
	return
}

// firstStep picks the neighbor of start that leads away from it along the row
func firstStep(start int, adj *mesh.Adjacency, t *mesh.Topology) (next int, ok bool) {
	nbrs := adj.Neighbors(start)
	for _, n1 := range nbrs {
		for _, n2 := range adj.Neighbors(n1) {
			if n2 != start && !t.SharesNode(n2, start) {
				return n1, true
			}
		}
	}
	for _, n1 := range nbrs {
		for _, n2 := range adj.Neighbors(n1) {
			if n2 != start {
				return n1, true
			}
		}
	}
	return
}

// InferC returns, in candidate order, the candidates outside t, a and b that share at least two
// nodes with some element of t and fewer than two with every element of a and of b
func InferC(candidates, t, a, b []int, nodesOf func(e int) []int) (sideC []int) {
	labeled := make(map[int]bool, len(t)+len(a)+len(b))
	for _, set := range [][]int{t, a, b} {
		for _, e := range set {
			labeled[e] = true
		}
	}
	for _, e := range candidates {
		if labeled[e] {
			continue
		}
		nodes := nodeSet(nodesOf(e))
		if edgeWith(nodes, t, nodesOf) && !edgeWith(nodes, a, nodesOf) && !edgeWith(nodes, b, nodesOf) {
			sideC = append(sideC, e)
		}
	}
	return
}

// edgeWith reports whether some element of set shares two or more of the given nodes
func edgeWith(nodes map[int]bool, set []int, nodesOf func(e int) []int) bool {
	for _, e := range set {
		var shared int
		for n := range nodeSet(nodesOf(e)) {
			if nodes[n] {
				shared++
			}
		}
		if shared >= 2 {
			return true
		}
	}
	return false
}

func nodeSet(nodes []int) map[int]bool {
	set := make(map[int]bool, len(nodes))
	for _, n := range mesh.CleanNodeList(nodes) {
		set[n] = true
	}
	return set
}
