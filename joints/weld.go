package joints

import (
	"math"

	"github.com/pkg/errors"

	"github.com/notargets/gojoint/geometry3D"
	"github.com/notargets/gojoint/mesh"
)

// WeldClass is the placement of a weld group relative to the plates it joins
type WeldClass uint8

const (
	WeldSide WeldClass = iota
	WeldCenter
)

// WeldClasses in output order
var WeldClasses = []WeldClass{WeldSide, WeldCenter}

func (c WeldClass) String() string {
	return [...]string{"side", "center"}[c]
}

// WeldContext is the mesh state a weld group is classified against
type WeldContext struct {
	Owners    *mesh.Topology // Visible shells
	NodesOf   func(e int) []int
	Weld      map[int]bool
	Junction  map[int]bool // Flagged by the triple-junction check
	Geometry  Geometry
	Tolerance float64 // Degrees
}

// WeldGroup is the outcome for one ordered weld group. Angles are between element normals, in
// degrees.
type WeldGroup struct {
	Class          WeldClass
	Middle         int
	Short1, Short2 int
	Short          float64 // Short1 to Short2
	Main           float64 // Middle to Short1
	Secondary      float64 // Middle to Short2
}

// ClassifyWeldGroup inspects the middle element of an ordered weld group. Of its first four
// nodes, two must be owned by four visible shells and two by six. The non-weld shell on the
// four-owner pair (Short1) and the single flagged non-weld shell on the six-owner pair (Short2)
// must be parallel; the group is then a side weld when the middle is parallel to Short1 and a
// center weld when it is parallel or perpendicular to either.
func ClassifyWeldGroup(ordered []int, wc WeldContext) (g WeldGroup, err error) {
	if len(ordered) < 3 {
		err = errors.Wrapf(ErrNonstandardGroup, "%d elements", len(ordered))
		return
	}
	g.Middle = ordered[len(ordered)/2]
	nodes := mesh.CleanNodeList(wc.NodesOf(g.Middle))
	if len(nodes) > 4 {
		nodes = nodes[:4]
	}
	var four, six []int
	for _, n := range nodes {
		switch len(wc.Owners.Owners(n)) {
		case 4:
			four = append(four, n)
		case 6:
			six = append(six, n)
		}
	}
	if len(four) != 2 || len(six) != 2 {
		err = errors.Wrapf(ErrNonstandardGroup, "element %d has %d four-owner and %d six-owner nodes",
			g.Middle, len(four), len(six))
		return
	}

	var found1 bool
	for _, e := range commonOwners(wc.Owners, four[0], four[1]) {
		if !wc.Weld[e] && !wc.Junction[e] {
			g.Short1, found1 = e, true
			break
		}
	}
	var flagged []int
	for _, e := range commonOwners(wc.Owners, six[0], six[1]) {
		if wc.Junction[e] && !wc.Weld[e] {
			flagged = append(flagged, e)
		}
	}
	if !found1 || len(flagged) != 1 {
		err = errors.Wrapf(ErrNoShortElements, "element %d", g.Middle)
		return
	}
	g.Short2 = flagged[0]

	var (
		nMid = wc.Geometry.ElementNormal(g.Middle)
		n1   = wc.Geometry.ElementNormal(g.Short1)
		n2   = wc.Geometry.ElementNormal(g.Short2)
		ok   [3]bool
	)
	g.Short, ok[0] = geometry3D.AngleDegrees(n1, n2)
	g.Main, ok[1] = geometry3D.AngleDegrees(nMid, n1)
	g.Secondary, ok[2] = geometry3D.AngleDegrees(nMid, n2)
	if !ok[0] || !ok[1] || !ok[2] {
		err = errors.Wrapf(ErrUndefinedGeometry, "normals of %d, %d and %d", g.Middle, g.Short1, g.Short2)
		return
	}

	tol := wc.Tolerance
	switch {
	case !parallel(g.Short, tol):
		err = errors.Wrapf(ErrShortNotParallel, "%.1f deg between %d and %d", g.Short, g.Short1, g.Short2)
	case parallel(g.Main, tol):
		g.Class = WeldSide
	case parallel(g.Secondary, tol), perpendicular(g.Main, tol), perpendicular(g.Secondary, tol):
		g.Class = WeldCenter
	default:
		err = errors.Wrapf(ErrObliqueGroup, "main %.1f deg, secondary %.1f deg", g.Main, g.Secondary)
	}
	return
}

// commonOwners returns the owners of both nodes, ascending
func commonOwners(t *mesh.Topology, a, b int) (common []int) {
	for _, e := range t.Owners(a) {
		if t.OwnsNode(e, b) {
			common = append(common, e)
		}
	}
	return
}

func parallel(deg, tol float64) bool {
	return deg < tol || math.Abs(deg-180) < tol
}

func perpendicular(deg, tol float64) bool {
	return math.Abs(deg-90) < tol
}
