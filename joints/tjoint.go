package joints

import (
	"github.com/notargets/gojoint/geometry3D"
	"github.com/notargets/gojoint/types"
)

// TFlags are the sign tests of a T joint. G3 tells whether A and B face the same way.
type TFlags struct {
	G1, G2, G3 bool
}

type TResult struct {
	Joint
	Flags      TFlags
	Assignment Assignment
}

type tKey struct{ g1, g2 bool }

// A, B and T keyed by (g1, g2) when nA.nB > eps. Rows (true, false) and (false, false) are
// identical and kept as is.
var tAligned = map[tKey][3]Role{
	{true, true}:   {M203, M204, M205},
	{true, false}:  {M201, M202, M205},
	{false, false}: {M201, M202, M205},
	{false, true}:  {M202, M204, M205},
}

// A and B keyed by (g1, g2) otherwise, T always goes to M207
var tCrossed = map[tKey][2]Role{
	{true, true}:   {M201, M204},
	{true, false}:  {M201, M202},
	{false, false}: {M202, M203},
	{false, true}:  {M202, M201},
}

// TRoutes returns the roles for A, B and T
func TRoutes(f TFlags) (a, b, t Role) {
	k := tKey{f.G1, f.G2}
	if f.G3 {
		r := tAligned[k]
		return r[0], r[1], r[2]
	}
	r := tCrossed[k]
	return r[0], r[1], M207
}

// ClassifyT resolves the T joint reference nodes of c and routes its labeled elements.
// No C-corner is needed.
func ClassifyT(c *Component, g Geometry, eps float64) (res *TResult, err error) {
	var j Joint
	if j, err = c.resolve(false); err != nil {
		return
	}
	pts, err := coords(g, []string{"center", "C-edge", "A-corner"}, j.Center, j.CEdge, j.ACorner)
	if err != nil {
		return
	}
	ns, err := normals(g, []string{"T", "A", "B"}, j.T, j.A, j.B)
	if err != nil {
		return
	}
	center, cEdge, aCorner := pts[0], pts[1], pts[2]
	nT, nA, nB := ns[0], ns[1], ns[2]
	dirs, err := directions([]string{"v1", "v2"}, eps,
		[2]geometry3D.Coord{cEdge, center},
		[2]geometry3D.Coord{aCorner, center})
	if err != nil {
		return
	}
	v1, v2 := dirs[0], dirs[1]

	res = &TResult{
		Joint: j,
		Flags: TFlags{
			G1: aligned(v1, nA, eps),
			G2: aligned(v2, nT, eps),
			G3: aligned(nA, nB, eps),
		},
		Assignment: make(Assignment),
	}
	a, b, t := TRoutes(res.Flags)
	res.Assignment.Add(a, c.Labeled(types.LabelA)...)
	res.Assignment.Add(b, c.Labeled(types.LabelB)...)
	res.Assignment.Add(t, c.Labeled(types.LabelT)...)
	return
}
