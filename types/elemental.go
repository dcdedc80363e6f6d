package types

import (
	"fmt"
	"math"
)

/*
EdgeKey is an always positive number that stores a pair of mesh identities in a way that can be compared.
It keys both mesh edges (a pair of node IDs) and element pairs (two elements that co-own nodes).
A pair [4] and [0] is always stored as [0,4], in the ascending order of the values
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	// This packs two identities into two 32 bit unsigned integers to act as a hash and an indirect access method
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(i1 + i2<<32)
	return
}

func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	var (
		enTmp EdgeKey
	)
	enTmp = ek >> 32
	verts[1] = int(enTmp)
	verts[0] = int(ek - enTmp*(1<<32))
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

// PairCounter counts how many times each unordered pair has been seen
type PairCounter map[EdgeKey]int

func (pc PairCounter) Add(a, b int) {
	pc[NewEdgeKey([2]int{a, b})]++
}

// Pairs returns the pairs seen at least min times
func (pc PairCounter) Pairs(min int) (pairs [][2]int) {
	for ek, count := range pc {
		if count >= min {
			pairs = append(pairs, ek.GetVertices(false))
		}
	}
	return
}
