package joints

import (
	"github.com/notargets/gojoint/geometry3D"
	"github.com/notargets/gojoint/types"
)

// LapFlags are the four sign tests of a lap joint. F2 is recorded but takes no part in routing.
type LapFlags struct {
	F1, F2, F3, F4 bool
}

type LapResult struct {
	Joint
	Flags      LapFlags
	Assignment Assignment
}

type lapKey struct{ f1, f3, f4 bool }

// Sides A and B keyed by (f1, f3, f4). Rows differing only in f4 are identical and kept as is.
var lapSides = map[lapKey][2]Role{
	{true, true, true}:    {M452, M453},
	{true, true, false}:   {M452, M453},
	{true, false, true}:   {M453, M452},
	{true, false, false}:  {M453, M452},
	{false, true, true}:   {M451, M454},
	{false, true, false}:  {M451, M454},
	{false, false, true}:  {M454, M451},
	{false, false, false}: {M454, M451},
}

// LapSides returns the roles for sides A and B
func LapSides(f LapFlags) (sideA, sideB Role) {
	r := lapSides[lapKey{f.F1, f.F3, f.F4}]
	return r[0], r[1]
}

// LapCRole returns the role of the C side
func LapCRole(f LapFlags) Role {
	if f.F1 {
		return M453
	}
	return M450
}

// ClassifyLap resolves the lap joint reference nodes of c and routes its labeled elements
func ClassifyLap(c *Component, g Geometry, eps float64) (res *LapResult, err error) {
	var j Joint
	if j, err = c.resolve(true); err != nil {
		return
	}
	pts, err := coords(g, []string{"center", "C-edge", "C-corner", "A-corner"},
		j.Center, j.CEdge, j.CCorner, j.ACorner)
	if err != nil {
		return
	}
	ns, err := normals(g, []string{"C", "A", "B"}, j.C, j.A, j.B)
	if err != nil {
		return
	}
	center, cEdge, cCorner, aCorner := pts[0], pts[1], pts[2], pts[3]
	nC, nB := ns[0], ns[2]
	dirs, err := directions([]string{"v1", "v2", "v3"}, eps,
		[2]geometry3D.Coord{cEdge, center},
		[2]geometry3D.Coord{aCorner, center},
		[2]geometry3D.Coord{cCorner, cEdge})
	if err != nil {
		return
	}
	v1, v2, v3 := dirs[0], dirs[1], dirs[2]

	res = &LapResult{
		Joint: j,
		Flags: LapFlags{
			F1: aligned(v1, nC, eps),
			F2: aligned(v3, v2, eps),
			F3: aligned(v1, nB, eps),
			F4: aligned(v2, nB, eps),
		},
		Assignment: make(Assignment),
	}
	sideA, sideB := LapSides(res.Flags)
	res.Assignment.Add(LapCRole(res.Flags), c.Labeled(types.LabelC)...)
	res.Assignment.Add(sideA, c.Labeled(types.LabelA)...)
	res.Assignment.Add(sideB, c.Labeled(types.LabelB)...)
	return
}
