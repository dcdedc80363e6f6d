package geometry3D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Coord is a point or direction that may be undefined, e.g. a node the host could not resolve.
// Every operation on an undefined Coord yields an undefined Coord.
type Coord struct {
	V       r3.Vec
	Defined bool
}

var Undefined = Coord{}

func NewCoord(x, y, z float64) Coord {
	return Coord{V: r3.Vec{X: x, Y: y, Z: z}, Defined: true}
}

func FromVec(v r3.Vec) Coord {
	if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z) {
		return Undefined
	}
	return Coord{V: v, Defined: true}
}

// Sub returns to - from
func Sub(to, from Coord) Coord {
	if !to.Defined || !from.Defined {
		return Undefined
	}
	return FromVec(r3.Sub(to.V, from.V))
}

// Unit normalizes c; a direction no longer than eps is undefined
func Unit(c Coord, eps float64) Coord {
	if !c.Defined {
		return Undefined
	}
	if r3.Norm(c.V) <= eps {
		return Undefined
	}
	return FromVec(r3.Unit(c.V))
}

// Direction is Unit(Sub(to, from), eps)
func Direction(to, from Coord, eps float64) Coord {
	return Unit(Sub(to, from), eps)
}

func Dot(a, b Coord) (d float64, ok bool) {
	if !a.Defined || !b.Defined {
		return 0, false
	}
	return r3.Dot(a.V, b.V), true
}

// Aligned reports dot(a, b) > eps
func Aligned(a, b Coord, eps float64) (aligned, ok bool) {
	var d float64
	if d, ok = Dot(a, b); !ok {
		return
	}
	return d > eps, true
}

// AngleDegrees returns the angle between two directions in [0, 180]. The cosine is clamped so
// round-off on parallel unit vectors cannot leave the domain of acos.
func AngleDegrees(a, b Coord) (deg float64, ok bool) {
	if !a.Defined || !b.Defined {
		return 0, false
	}
	la, lb := r3.Norm(a.V), r3.Norm(b.V)
	if la == 0 || lb == 0 {
		return 0, false
	}
	cos := math.Max(-1, math.Min(1, r3.Dot(a.V, b.V)/(la*lb)))
	return math.Acos(cos) * 180 / math.Pi, true
}

// AllDefined reports whether every coordinate is defined
func AllDefined(cs ...Coord) bool {
	for _, c := range cs {
		if !c.Defined {
			return false
		}
	}
	return true
}
