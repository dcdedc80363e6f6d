package mesh

import (
	"sort"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/notargets/gojoint/types"
)

// AdjacencyRule selects how two elements become neighbors
type AdjacencyRule uint8

const (
	AnyNode    AdjacencyRule = iota // At least one shared node
	SharedEdge                      // At least two shared nodes
)

func (r AdjacencyRule) String() string {
	return [...]string{"AnyNode", "SharedEdge"}[r]
}

// Topology holds element to node incidence and its inversion
type Topology struct {
	Elements     []int         // Element IDs in input order, duplicates removed
	ElementNodes map[int][]int // Element -> ordered nodes
	NodeOwners   map[int][]int // Node -> owning elements, ascending
	Nodes        []int         // All referenced nodes, ascending
	member       map[int]bool
}

// NewTopology builds the incidence of the given elements. Node lists are taken from nodesOf and
// cleaned of absent and repeated entries.
func NewTopology(elements []int, nodesOf func(e int) []int) (t *Topology) {
	t = &Topology{
		ElementNodes: make(map[int][]int, len(elements)),
		NodeOwners:   make(map[int][]int),
		member:       make(map[int]bool, len(elements)),
	}
	owners := make(map[int]*treeset.Set)
	for _, e := range elements {
		if t.member[e] {
			continue
		}
		t.member[e] = true
		t.Elements = append(t.Elements, e)
		nodes := CleanNodeList(nodesOf(e))
		t.ElementNodes[e] = nodes
		for _, n := range nodes {
			s, ok := owners[n]
			if !ok {
				s = treeset.NewWithIntComparator()
				owners[n] = s
			}
			s.Add(e)
		}
	}
	for n, s := range owners {
		vals := s.Values()
		ids := make([]int, len(vals))
		for i, v := range vals {
			ids[i] = v.(int)
		}
		t.NodeOwners[n] = ids
		t.Nodes = append(t.Nodes, n)
	}
	sort.Ints(t.Nodes)
	return
}

// Restrict returns the topology of a subset of this topology's elements, so that node owners
// are counted only within the subset
func (t *Topology) Restrict(elements []int) *Topology {
	var sub []int
	for _, e := range elements {
		if t.member[e] {
			sub = append(sub, e)
		}
	}
	return NewTopology(sub, func(e int) []int { return t.ElementNodes[e] })
}

func (t *Topology) Contains(e int) bool { return t.member[e] }

// Owners returns the elements owning node n, ascending
func (t *Topology) Owners(n int) []int { return t.NodeOwners[n] }

// OwnsNode reports whether element e references node n
func (t *Topology) OwnsNode(e, n int) bool {
	for _, nn := range t.ElementNodes[e] {
		if nn == n {
			return true
		}
	}
	return false
}

// SharedNodes returns the nodes referenced by both elements, in the order of a's node list
func (t *Topology) SharedNodes(a, b int) (shared []int) {
	for _, n := range t.ElementNodes[a] {
		if t.OwnsNode(b, n) {
			shared = append(shared, n)
		}
	}
	return
}

// SharesNode reports whether a and b reference at least one common node
func (t *Topology) SharesNode(a, b int) bool {
	for _, n := range t.ElementNodes[a] {
		if t.OwnsNode(b, n) {
			return true
		}
	}
	return false
}

// Adjacency maps each element to its neighbors under one rule
type Adjacency struct {
	Rule      AdjacencyRule
	neighbors map[int][]int
}

func newAdjacency(rule AdjacencyRule, pairs [][2]int) (adj *Adjacency) {
	adj = &Adjacency{Rule: rule, neighbors: make(map[int][]int)}
	for _, p := range pairs {
		adj.neighbors[p[0]] = append(adj.neighbors[p[0]], p[1])
		adj.neighbors[p[1]] = append(adj.neighbors[p[1]], p[0])
	}
	for e, nbrs := range adj.neighbors {
		sort.Ints(nbrs)
		adj.neighbors[e] = nbrs
	}
	return
}

// AnyNodeAdjacency joins every pair of elements that co-own a node
func (t *Topology) AnyNodeAdjacency() *Adjacency {
	pc := types.PairCounter{}
	t.countOwnerPairs(pc)
	return newAdjacency(AnyNode, pc.Pairs(1))
}

// SharedEdgeAdjacency joins pairs of elements that co-own at least two distinct nodes
func (t *Topology) SharedEdgeAdjacency() *Adjacency {
	pc := types.PairCounter{}
	t.countOwnerPairs(pc)
	return newAdjacency(SharedEdge, pc.Pairs(2))
}

// Adjacency builds the graph for the given rule
func (t *Topology) Adjacency(rule AdjacencyRule) *Adjacency {
	if rule == SharedEdge {
		return t.SharedEdgeAdjacency()
	}
	return t.AnyNodeAdjacency()
}

func (t *Topology) countOwnerPairs(pc types.PairCounter) {
	// O(sum of owner count squared), node valence is small on real meshes
	for _, owners := range t.NodeOwners {
		for i := 0; i < len(owners); i++ {
			for j := i + 1; j < len(owners); j++ {
				pc.Add(owners[i], owners[j])
			}
		}
	}
}

// Neighbors returns the neighbors of e, ascending
func (a *Adjacency) Neighbors(e int) []int { return a.neighbors[e] }

// NeighborsWithin returns the neighbors of e that are members of the set, ascending
func (a *Adjacency) NeighborsWithin(e int, within map[int]bool) (nbrs []int) {
	for _, n := range a.neighbors[e] {
		if within[n] {
			nbrs = append(nbrs, n)
		}
	}
	return
}

func (a *Adjacency) Adjacent(e1, e2 int) bool {
	nbrs := a.neighbors[e1]
	i := sort.SearchInts(nbrs, e2)
	return i < len(nbrs) && nbrs[i] == e2
}

// NumEdges returns the number of distinct neighbor pairs
func (a *Adjacency) NumEdges() (n int) {
	for _, nbrs := range a.neighbors {
		n += len(nbrs)
	}
	return n / 2
}

// MemberSet converts a list of elements into a membership set
func MemberSet(elements []int) map[int]bool {
	set := make(map[int]bool, len(elements))
	for _, e := range elements {
		set[e] = true
	}
	return set
}
