package host

import (
	"sort"

	"github.com/notargets/gojoint/types"
	"github.com/notargets/gojoint/utils"
)

// TripleJunctionCheck flags every element of scope that owns a non-manifold edge, i.e. a corner
// node pair shared by three or more elements of the scope
func (s *Session) TripleJunctionCheck(scope []int) (flagged []int, err error) {
	if len(scope) == 0 {
		scope = s.Mesh.Elements
	}
	edgeOwners := make(map[types.EdgeKey][]int)
	for _, e := range scope {
		nodes, ok := s.Mesh.ElementNodes[e]
		if !ok {
			continue
		}
		seen := make(map[types.EdgeKey]bool)
		for _, edge := range utils.GetElementEdges(nodes) {
			ek := types.NewEdgeKey(edge)
			if seen[ek] {
				continue
			}
			seen[ek] = true
			edgeOwners[ek] = append(edgeOwners[ek], e)
		}
	}
	isFlagged := make(map[int]bool)
	for _, owners := range edgeOwners {
		if len(owners) < 3 {
			continue
		}
		for _, e := range owners {
			if !isFlagged[e] {
				isFlagged[e] = true
				flagged = append(flagged, e)
			}
		}
	}
	sort.Ints(flagged)
	return
}
