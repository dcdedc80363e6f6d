package mesh

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/gojoint/types"
)

// IncidenceMatrix returns the sparse element x node incidence matrix B, with rows in element input
// order and columns in ascending node order
func (t *Topology) IncidenceMatrix() (B *sparse.CSR, nodeCol map[int]int) {
	nodeCol = make(map[int]int, len(t.Nodes))
	for j, n := range t.Nodes {
		nodeCol[n] = j
	}
	dok := sparse.NewDOK(len(t.Elements), len(t.Nodes))
	for i, e := range t.Elements {
		for _, n := range t.ElementNodes[e] {
			dok.Set(i, nodeCol[n], 1)
		}
	}
	B = dok.ToCSR()
	return
}

// SharedNodeCounts returns the number of nodes shared by each pair of distinct elements that share
// any, computed as the off diagonal of B*B^T
func (t *Topology) SharedNodeCounts() (counts types.PairCounter) {
	counts = types.PairCounter{}
	if len(t.Elements) == 0 || len(t.Nodes) == 0 {
		return
	}
	B, nodeCol := t.IncidenceMatrix()
	dokT := sparse.NewDOK(len(t.Nodes), len(t.Elements))
	for i, e := range t.Elements {
		for _, n := range t.ElementNodes[e] {
			dokT.Set(nodeCol[n], i, 1)
		}
	}
	var product sparse.CSR
	product.Mul(B, dokT.ToCSR())
	product.DoNonZero(func(i, j int, v float64) {
		if i < j {
			counts[types.NewEdgeKey([2]int{t.Elements[i], t.Elements[j]})] = int(v + 0.5)
		}
	})
	return
}

// Statistics summarises the two adjacency variants of a topology
type Statistics struct {
	Elements, Nodes            int
	AnyNodePairs               int
	SharedEdgePairs            int
	AnyNodeComponents          int
	SharedEdgeComponents       int
	MaxNodeValence             int
	LargestAnyNodeComponent    int
	LargestSharedEdgeComponent int
}

// ComputeStatistics derives pair counts from the sparse incidence product and component counts
// from both adjacency variants
func (t *Topology) ComputeStatistics() (st Statistics) {
	st.Elements, st.Nodes = len(t.Elements), len(t.Nodes)
	for _, c := range t.SharedNodeCounts() {
		st.AnyNodePairs++
		if c >= 2 {
			st.SharedEdgePairs++
		}
	}
	for _, owners := range t.NodeOwners {
		if len(owners) > st.MaxNodeValence {
			st.MaxNodeValence = len(owners)
		}
	}
	for _, c := range Components(t.Elements, t.AnyNodeAdjacency()) {
		st.AnyNodeComponents++
		if len(c) > st.LargestAnyNodeComponent {
			st.LargestAnyNodeComponent = len(c)
		}
	}
	for _, c := range Components(t.Elements, t.SharedEdgeAdjacency()) {
		st.SharedEdgeComponents++
		if len(c) > st.LargestSharedEdgeComponent {
			st.LargestSharedEdgeComponent = len(c)
		}
	}
	return
}
