// Package extremity finds the free tip nodes at both ends of chains of elements
package extremity

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/notargets/gojoint/mesh"
)

var (
	ErrTooFewEnds = errors.New("TooFewEnds")
	ErrNoFreeNode = errors.New("NoFreeNode")
)

// Tips holds the outcome for one group. Node 0 means the end had no qualifying free node.
type Tips struct {
	Ends      [2]int
	Nodes     [2]int
	Remainder []int // Every group node not selected as a tip, ascending
}

// Missing returns the end elements that produced no tip node
func (t Tips) Missing() (ends []int) {
	for i, n := range t.Nodes {
		if n == 0 {
			ends = append(ends, t.Ends[i])
		}
	}
	return
}

// Groups partitions elements by shared-node adjacency
func Groups(elements []int, topo *mesh.Topology) [][]int {
	t := topo.Restrict(elements)
	return mesh.Components(elements, t.AnyNodeAdjacency())
}

// JunctionNodes returns the nodes owned by three or more of the flagged elements
func JunctionNodes(flagged []int, nodesOf func(e int) []int) (nodes map[int]bool) {
	usage := make(map[int]int)
	for _, e := range flagged {
		for _, n := range mesh.CleanNodeList(nodesOf(e)) {
			usage[n]++
		}
	}
	nodes = make(map[int]bool)
	for n, count := range usage {
		if count >= 3 {
			nodes[n] = true
		}
	}
	return
}

// Extract selects a tip node at each of the two lowest end elements of a group. A tip is a node
// of the end that its single neighbor does not own; with junction non-nil only junction nodes
// qualify. An ErrNoFreeNode result still carries the other tip and the remainder.
func Extract(group []int, topo *mesh.Topology, junction map[int]bool) (tips Tips, err error) {
	var (
		t    = topo.Restrict(group)
		adj  = t.AnyNodeAdjacency()
		ends []int
	)
	for _, e := range t.Elements {
		if len(adj.Neighbors(e)) == 1 {
			ends = append(ends, e)
		}
	}
	sort.Ints(ends)
	if len(ends) < 2 {
		err = errors.Wrapf(ErrTooFewEnds, "%d ends", len(ends))
		return
	}

	selected := make(map[int]bool)
	for i := 0; i < 2; i++ {
		end := ends[i]
		tips.Ends[i] = end
		neighbor := adj.Neighbors(end)[0]
		nodes := append([]int(nil), t.ElementNodes[end]...)
		sort.Ints(nodes)
		for _, n := range nodes {
			if t.OwnsNode(neighbor, n) || selected[n] {
				continue
			}
			if junction != nil && !junction[n] {
				continue
			}
			tips.Nodes[i] = n
			selected[n] = true
			break
		}
	}
	for _, n := range t.Nodes {
		if !selected[n] {
			tips.Remainder = append(tips.Remainder, n)
		}
	}
	if missing := tips.Missing(); len(missing) > 0 {
		err = errors.Wrapf(ErrNoFreeNode, "end elements %v", missing)
	}
	return
}
