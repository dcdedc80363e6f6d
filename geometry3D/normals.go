package geometry3D

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gojoint/utils"
)

// PolygonNormal computes the unit normal of a planar or mildly warped polygon using Newell's method.
// The orientation follows the right hand rule over the vertex order. Any undefined vertex, fewer
// than three vertices or a degenerate polygon yields Undefined.
func PolygonNormal(ring []Coord) Coord {
	if len(ring) < 3 {
		return Undefined
	}
	var n r3.Vec
	for i := range ring {
		cur, next := ring[i], ring[(i+1)%len(ring)]
		if !cur.Defined || !next.Defined {
			return Undefined
		}
		n.X += (cur.V.Y - next.V.Y) * (cur.V.Z + next.V.Z)
		n.Y += (cur.V.Z - next.V.Z) * (cur.V.X + next.V.X)
		n.Z += (cur.V.X - next.V.X) * (cur.V.Y + next.V.Y)
	}
	return Unit(FromVec(n), utils.EPSILON)
}

// Centroid of the defined vertices, undefined if any vertex is undefined
func Centroid(points []Coord) Coord {
	if len(points) == 0 {
		return Undefined
	}
	var c r3.Vec
	for _, p := range points {
		if !p.Defined {
			return Undefined
		}
		c = r3.Add(c, p.V)
	}
	return FromVec(r3.Scale(1/float64(len(points)), c))
}
