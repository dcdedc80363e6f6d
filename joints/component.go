package joints

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/notargets/gojoint/geometry3D"
	"github.com/notargets/gojoint/mesh"
	"github.com/notargets/gojoint/types"
)

// Geometry resolves coordinates and normals, both possibly undefined
type Geometry interface {
	NodeCoord(n int) geometry3D.Coord
	ElementNormal(e int) geometry3D.Coord
}

// Component is one joint group with its topology restricted to the group
type Component struct {
	Elements []int // Ascending
	Topo     *mesh.Topology
	Labels   types.LabelSet
}

// NewComponent restricts topo to elements, so node owners are counted within the group only
func NewComponent(elements []int, topo *mesh.Topology, labels types.LabelSet) *Component {
	sorted := append([]int(nil), elements...)
	sort.Ints(sorted)
	return &Component{
		Elements: sorted,
		Topo:     topo.Restrict(sorted),
		Labels:   labels,
	}
}

// Labeled returns the component elements carrying label, ascending
func (c *Component) Labeled(label types.Label) []int {
	return c.Labels.Filter(label, c.Elements)
}

// CenterCandidates returns every node owned by exactly one A, one B and one T element and by no C
// element, ascending
func (c *Component) CenterCandidates() (nodes []int) {
	for _, n := range c.Topo.Nodes {
		owners := c.Topo.Owners(n)
		if c.Labels.Count(types.LabelA, owners) == 1 &&
			c.Labels.Count(types.LabelB, owners) == 1 &&
			c.Labels.Count(types.LabelT, owners) == 1 &&
			c.Labels.Count(types.LabelC, owners) == 0 {
			nodes = append(nodes, n)
		}
	}
	return
}

// Joint holds the resolved anchor and reference nodes and the elements owning them
type Joint struct {
	Center, CEdge, CCorner, ACorner int
	A, B, T, C                      int
}

// resolve locates the center and reference nodes. The C-corner is only searched for when
// withCCorner is set.
func (c *Component) resolve(withCCorner bool) (j Joint, err error) {
	candidates := c.CenterCandidates()
	if len(candidates) == 0 {
		err = errors.Wrapf(ErrNoCenter, "no A/B/T triplet node among %d nodes", len(c.Topo.Nodes))
		return
	}
	j.Center = candidates[0]

	var okA, okB, okT bool
	owners := c.Topo.Owners(j.Center)
	if j.A, okA = c.ownerWith(owners, types.LabelA); !okA {
		err = errors.Wrapf(ErrUnresolvedABT, "center %d has no A owner", j.Center)
		return
	}
	if j.B, okB = c.ownerWith(owners, types.LabelB); !okB {
		err = errors.Wrapf(ErrUnresolvedABT, "center %d has no B owner", j.Center)
		return
	}
	if j.T, okT = c.ownerWith(owners, types.LabelT); !okT {
		err = errors.Wrapf(ErrUnresolvedABT, "center %d has no T owner", j.Center)
		return
	}

	var found bool
	for _, n := range c.sortedNodes(j.T, j.Center) {
		own := c.Topo.Owners(n)
		if len(own) != 2 {
			continue
		}
		other := own[0]
		if other == j.T {
			other = own[1]
		}
		if c.Labels.Get(other).Has(types.LabelC) {
			j.CEdge, j.C, found = n, other, true
			break
		}
	}
	if !found {
		err = errors.Wrapf(ErrNoCEdge, "T element %d", j.T)
		return
	}

	if withCCorner {
		if j.CCorner, found = c.soleOwnedNode(j.C, j.CEdge); !found {
			err = errors.Wrapf(ErrNoCCorner, "C element %d", j.C)
			return
		}
	}
	if j.ACorner, found = c.soleOwnedNode(j.A, j.Center); !found {
		err = errors.Wrapf(ErrNoACorner, "A element %d", j.A)
		return
	}
	return
}

func (c *Component) ownerWith(owners []int, label types.Label) (e int, ok bool) {
	for _, o := range owners {
		if c.Labels.Get(o).Has(label) {
			return o, true
		}
	}
	return
}

// sortedNodes returns the nodes of e other than exclude, ascending
func (c *Component) sortedNodes(e, exclude int) (nodes []int) {
	for _, n := range c.Topo.ElementNodes[e] {
		if n != exclude {
			nodes = append(nodes, n)
		}
	}
	sort.Ints(nodes)
	return
}

// soleOwnedNode finds the lowest node of e, other than exclude, that no other group element owns
func (c *Component) soleOwnedNode(e, exclude int) (n int, ok bool) {
	for _, nn := range c.sortedNodes(e, exclude) {
		if own := c.Topo.Owners(nn); len(own) == 1 && own[0] == e {
			return nn, true
		}
	}
	return
}

// coords fetches node coordinates, failing on the first undefined one
func coords(g Geometry, names []string, nodes ...int) (cs []geometry3D.Coord, err error) {
	for i, n := range nodes {
		c := g.NodeCoord(n)
		if !c.Defined {
			return nil, errors.Wrapf(ErrUndefinedGeometry, "%s node %d has no coordinate", names[i], n)
		}
		cs = append(cs, c)
	}
	return
}

// normals fetches element normals, failing on the first undefined one
func normals(g Geometry, names []string, elements ...int) (ns []geometry3D.Coord, err error) {
	for i, e := range elements {
		n := g.ElementNormal(e)
		if !n.Defined {
			return nil, errors.Wrapf(ErrUndefinedGeometry, "%s element %d has no normal", names[i], e)
		}
		ns = append(ns, n)
	}
	return
}

// directions normalizes to-from for each pair, failing on a difference no longer than eps
func directions(names []string, eps float64, pairs ...[2]geometry3D.Coord) (ds []geometry3D.Coord, err error) {
	for i, p := range pairs {
		d := geometry3D.Direction(p[0], p[1], eps)
		if !d.Defined {
			return nil, errors.Wrapf(ErrUndefinedGeometry, "direction %s has zero length", names[i])
		}
		ds = append(ds, d)
	}
	return
}

func aligned(a, b geometry3D.Coord, eps float64) bool {
	al, _ := geometry3D.Aligned(a, b, eps)
	return al
}
