package mesh

import (
	"math"

	"github.com/notargets/gojoint/geometry3D"
)

// Standard test meshes shared by the package tests of the classifiers, splitter, orderer and
// extractor. Node and element IDs are offset by base values so several fixtures can be merged
// into one mesh without collisions.

// NewQuadStrip creates a rows x cols grid of unit quads in the z=0 plane. Element (r,c) has ID
// elemBase + r*cols + c + 1, node (r,c) has ID nodeBase + r*(cols+1) + c + 1. All elements are
// placed in the group "STRIP".
func NewQuadStrip(rows, cols, nodeBase, elemBase int) (m *ShellMesh) {
	m = NewShellMesh()
	nodeID := func(r, c int) int { return nodeBase + r*(cols+1) + c + 1 }
	for r := 0; r <= rows; r++ {
		for c := 0; c <= cols; c++ {
			m.AddNode(nodeID(r, c), geometry3D.NewCoord(float64(c), float64(r), 0))
		}
	}
	var ids []int
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			id := elemBase + r*cols + c + 1
			mustAdd(m, id, []int{nodeID(r, c), nodeID(r, c+1), nodeID(r+1, c+1), nodeID(r+1, c)})
			ids = append(ids, id)
		}
	}
	m.AddGroup("STRIP", 1, ids...)
	return
}

// NewQuadRing creates a closed band of n quads around the z axis, each sharing an edge with its
// two neighbors. Element k has ID elemBase + k + 1. All elements are placed in the group "RING".
func NewQuadRing(n, nodeBase, elemBase int) (m *ShellMesh) {
	m = NewShellMesh()
	bottom := func(k int) int { return nodeBase + k%n + 1 }
	top := func(k int) int { return nodeBase + n + k%n + 1 }
	for k := 0; k < n; k++ {
		theta := 2 * math.Pi * float64(k) / float64(n)
		m.AddNode(bottom(k), geometry3D.NewCoord(math.Cos(theta), math.Sin(theta), 0))
		m.AddNode(top(k), geometry3D.NewCoord(math.Cos(theta), math.Sin(theta), 1))
	}
	var ids []int
	for k := 0; k < n; k++ {
		id := elemBase + k + 1
		mustAdd(m, id, []int{bottom(k), bottom(k + 1), top(k + 1), top(k)})
		ids = append(ids, id)
	}
	m.AddGroup("RING", 1, ids...)
	return
}

// NewTriangleStar creates n triangles that meet only at node nodeBase+1. Triangle i has ID
// elemBase + i + 1.
func NewTriangleStar(n, nodeBase, elemBase int) (m *ShellMesh) {
	m = NewShellMesh()
	center := nodeBase + 1
	m.AddNode(center, geometry3D.NewCoord(0, 0, 0))
	for i := 0; i < n; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(n)
		a1 := a0 + math.Pi/float64(2*n)
		n1, n2 := nodeBase+2*i+2, nodeBase+2*i+3
		m.AddNode(n1, geometry3D.NewCoord(math.Cos(a0), math.Sin(a0), 0))
		m.AddNode(n2, geometry3D.NewCoord(math.Cos(a1), math.Sin(a1), 0))
		mustAdd(m, elemBase+i+1, []int{center, n1, n2})
	}
	return
}

// Element IDs of the lap joint fixture, relative to elemBase
const (
	LapT = iota + 1
	LapC
	LapA
	LapB
)

// Node IDs of the lap joint fixture, relative to nodeBase
const (
	LapCenterNode = iota + 1
	LapCEdgeNode
	LapTFreeNode
	LapCCornerNode
	LapCFarNode
	LapACornerNode
	LapAFarNode
	LapBNode1
	LapBNode2
)

// NewLapJoint creates four triangles labeled through the groups "A", "B", "C" and "T":
//
//	T = (center, cEdge, tFree)   C = (cEdge, cCorner, cFar)
//	A = (center, aCorner, aFar)  B = (center, b1, b2)
//
// The center is the only node owned by A, B and T. With flipped false the C-edge points along +z
// and C faces +z, so the lap flags are f1=true, f3=true. With flipped true the C-edge points along
// -z and C faces -z, giving f1=true, f3=false.
func NewLapJoint(flipped bool, nodeBase, elemBase int) (m *ShellMesh) {
	m = NewShellMesh()
	n := func(local int) int { return nodeBase + local }
	e := func(local int) int { return elemBase + local }
	zc := 1.
	if flipped {
		zc = -1
	}
	m.AddNode(n(LapCenterNode), geometry3D.NewCoord(0, 0, 0))
	m.AddNode(n(LapCEdgeNode), geometry3D.NewCoord(0, 0, zc))
	m.AddNode(n(LapTFreeNode), geometry3D.NewCoord(1, 0, 0))
	if flipped {
		m.AddNode(n(LapCCornerNode), geometry3D.NewCoord(0, 1, zc))
		m.AddNode(n(LapCFarNode), geometry3D.NewCoord(1, 0, zc))
	} else {
		m.AddNode(n(LapCCornerNode), geometry3D.NewCoord(1, 0, zc))
		m.AddNode(n(LapCFarNode), geometry3D.NewCoord(0, 1, zc))
	}
	m.AddNode(n(LapACornerNode), geometry3D.NewCoord(-1, 0, 0))
	m.AddNode(n(LapAFarNode), geometry3D.NewCoord(-1, 1, 0))
	m.AddNode(n(LapBNode1), geometry3D.NewCoord(0, -1, 0))
	m.AddNode(n(LapBNode2), geometry3D.NewCoord(1, -1, 0))

	mustAdd(m, e(LapT), []int{n(LapCenterNode), n(LapCEdgeNode), n(LapTFreeNode)})
	mustAdd(m, e(LapC), []int{n(LapCEdgeNode), n(LapCCornerNode), n(LapCFarNode)})
	mustAdd(m, e(LapA), []int{n(LapCenterNode), n(LapACornerNode), n(LapAFarNode)})
	mustAdd(m, e(LapB), []int{n(LapCenterNode), n(LapBNode1), n(LapBNode2)})

	m.AddGroup("A", 1, e(LapA))
	m.AddGroup("B", 2, e(LapB))
	m.AddGroup("C", 3, e(LapC))
	m.AddGroup("T", 4, e(LapT))
	return
}

// Element IDs of the weld group fixture, relative to elemBase
const (
	WeldFirst = iota + 1
	WeldMiddle
	WeldLast
	WeldPlate
	WeldPlateLeft
	WeldPlateRight
	WeldStiffener
	WeldStiffenerLeft
	WeldStiffenerRight
	WeldFin1
	WeldFin2
	WeldFin3
	WeldFin4
	WeldJunction1
	WeldJunction2
)

// NewWeldJoint creates a chain of three weld quads along +x, y in [0,1], with the material
// "SHELL_MAT"; every other shell is "PLATE". Row nodes are
//
//	b0..b3 = nodeBase+1..4 at y=0    t0..t3 = nodeBase+5..8 at y=1
//	p_i = b_i + plate                s_i = t_i + stiffener
//
// The plate quads hang off the b row, the plate (b1,b2,p2,p1) sharing the lower edge of the
// middle weld. The stiffener quads hang off the t row, the stiffener (t1,t2,s2,s1) sharing its
// upper edge. Two fin triangles on each of t1 and t2 bring them to six owners, b1 and b2 have four.
// Two junction quads on the outer stiffener edge (s1,s2) make that edge non-manifold, so the
// stiffener is the only shell on the upper edge flagged by the triple-junction check.
//
// The weld faces +z. A plate offset d gives the plate the normal direction (0, -d.z, d.y), and the
// stiffener likewise.
func NewWeldJoint(plate, stiffener geometry3D.Coord, nodeBase, elemBase int) (m *ShellMesh) {
	m = NewShellMesh()
	n := func(local int) int { return nodeBase + local }
	e := func(local int) int { return elemBase + local }
	offset := func(x, y, z float64, d geometry3D.Coord) geometry3D.Coord {
		return geometry3D.NewCoord(x+d.V.X, y+d.V.Y, z+d.V.Z)
	}
	for i := 0; i < 4; i++ {
		x := float64(i)
		m.AddNode(n(1+i), geometry3D.NewCoord(x, 0, 0))
		m.AddNode(n(5+i), geometry3D.NewCoord(x, 1, 0))
		m.AddNode(n(9+i), offset(x, 0, 0, plate))
		m.AddNode(n(13+i), offset(x, 1, 0, stiffener))
	}
	b := func(i int) int { return n(1 + i) }
	t := func(i int) int { return n(5 + i) }
	p := func(i int) int { return n(9 + i) }
	s := func(i int) int { return n(13 + i) }

	mustAdd(m, e(WeldFirst), []int{b(0), b(1), t(1), t(0)})
	mustAdd(m, e(WeldMiddle), []int{b(1), b(2), t(2), t(1)})
	mustAdd(m, e(WeldLast), []int{b(2), b(3), t(3), t(2)})
	mustAdd(m, e(WeldPlate), []int{b(1), b(2), p(2), p(1)})
	mustAdd(m, e(WeldPlateLeft), []int{b(0), b(1), p(1), p(0)})
	mustAdd(m, e(WeldPlateRight), []int{b(2), b(3), p(3), p(2)})
	mustAdd(m, e(WeldStiffener), []int{t(1), t(2), s(2), s(1)})
	mustAdd(m, e(WeldStiffenerLeft), []int{t(0), t(1), s(1), s(0)})
	mustAdd(m, e(WeldStiffenerRight), []int{t(2), t(3), s(3), s(2)})

	for j := 0; j < 4; j++ {
		anchor, x := t(1), 1.
		if j >= 2 {
			anchor, x = t(2), 2.
		}
		y := 1 + 0.5*float64(j%2+1)
		n1, n2 := n(17+2*j), n(18+2*j)
		m.AddNode(n1, geometry3D.NewCoord(x, y, 6))
		m.AddNode(n2, geometry3D.NewCoord(x+0.25, y, 6))
		mustAdd(m, e(WeldFin1+j), []int{anchor, n1, n2})
	}

	up, out := geometry3D.NewCoord(0, 0, 2), geometry3D.NewCoord(0, 3, 0)
	s1, s2 := m.Nodes[s(1)].V, m.Nodes[s(2)].V
	m.AddNode(n(25), offset(s1.X, s1.Y, s1.Z, up))
	m.AddNode(n(26), offset(s2.X, s2.Y, s2.Z, up))
	m.AddNode(n(27), offset(s1.X, s1.Y, s1.Z, out))
	m.AddNode(n(28), offset(s2.X, s2.Y, s2.Z, out))
	mustAdd(m, e(WeldJunction1), []int{s(1), s(2), n(26), n(25)})
	mustAdd(m, e(WeldJunction2), []int{s(2), s(1), n(27), n(28)})

	for _, id := range m.Elements {
		m.Materials[id] = "PLATE"
	}
	for _, local := range []int{WeldFirst, WeldMiddle, WeldLast} {
		m.Materials[e(local)] = "SHELL_MAT"
	}
	return
}

// Merge combines meshes with disjoint IDs, concatenating groups of the same name
func Merge(meshes ...*ShellMesh) (m *ShellMesh) {
	m = NewShellMesh()
	for _, src := range meshes {
		for id, c := range src.Nodes {
			m.AddNode(id, c)
		}
		for _, e := range src.Elements {
			mustAdd(m, e, src.ElementNodes[e])
			if src.Hidden[e] {
				m.Hidden[e] = true
			}
			if mat, ok := src.Materials[e]; ok {
				m.Materials[e] = mat
			}
		}
		for _, g := range src.Groups {
			mg := m.AddGroup(g.Name, g.Tag, g.Elements...)
			mg.Children = append(mg.Children, g.Children...)
		}
	}
	return
}

func mustAdd(m *ShellMesh, id int, nodes []int) {
	if err := m.AddElement(id, nodes); err != nil {
		panic(err)
	}
}
