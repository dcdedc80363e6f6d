package utils

// ElementType represents the finite element kinds a shell mesh can carry

type ElementType int

const (
	Unknown ElementType = iota
	// 0D elements
	Point
	// 1D elements
	Line
	Line3 // 3-node line (quadratic)
	// 2D elements
	Triangle
	Quad
	Triangle6 // 6-node triangle (quadratic)
	Quad8     // 8-node quad (quadratic)
	// 3D elements, recognized by readers and then discarded
	Tet
	Hex
	Prism
	Pyramid
)

// String representation of element types
func (e ElementType) String() string {
	names := []string{
		"Unknown",
		"Point",
		"Line", "Line3",
		"Triangle", "Quad", "Triangle6", "Quad8",
		"Tet", "Hex", "Prism", "Pyramid",
	}
	if int(e) >= 0 && int(e) < len(names) {
		return names[e]
	}
	return "Invalid"
}

// GetDimension returns the spatial dimension of the element
func (e ElementType) GetDimension() int {
	switch e {
	case Point:
		return 0
	case Line, Line3:
		return 1
	case Triangle, Quad, Triangle6, Quad8:
		return 2
	case Tet, Hex, Prism, Pyramid:
		return 3
	default:
		return -1
	}
}

// GetNumNodes returns the number of nodes for each element type
func (e ElementType) GetNumNodes() int {
	switch e {
	case Point:
		return 1
	case Line:
		return 2
	case Line3:
		return 3
	case Triangle:
		return 3
	case Quad:
		return 4
	case Triangle6:
		return 6
	case Quad8:
		return 8
	case Tet:
		return 4
	case Hex:
		return 8
	case Prism:
		return 6
	case Pyramid:
		return 5
	default:
		return 0
	}
}

// IsShell reports whether the element is a planar shell element (3-8 nodes)
func (e ElementType) IsShell() bool {
	return e.GetDimension() == 2
}

// ShellTypeForNodeCount infers the shell kind from the length of a node list
func ShellTypeForNodeCount(n int) ElementType {
	switch n {
	case 3:
		return Triangle
	case 4:
		return Quad
	case 6:
		return Triangle6
	case 8:
		return Quad8
	default:
		return Unknown
	}
}

// GetCornerNodes returns the indices of corner nodes for higher-order elements
func (e ElementType) GetCornerNodes() []int {
	switch e {
	case Line3:
		return []int{0, 1}
	case Triangle6:
		return []int{0, 1, 2}
	case Quad8:
		return []int{0, 1, 2, 3}
	default:
		// For linear elements, all nodes are corner nodes
		n := e.GetNumNodes()
		nodes := make([]int, n)
		for i := 0; i < n; i++ {
			nodes[i] = i
		}
		return nodes
	}
}

// CornerRing returns the corner nodes of a shell element in ring order. Node lists whose length does
// not match a known shell kind are treated as a polygon of all their nodes.
func CornerRing(nodes []int) (ring []int) {
	etype := ShellTypeForNodeCount(len(nodes))
	if etype == Unknown {
		return append(ring, nodes...)
	}
	for _, i := range etype.GetCornerNodes() {
		ring = append(ring, nodes[i])
	}
	return
}

// GetElementEdges returns the edges of a shell element as corner node pairs
func GetElementEdges(nodes []int) (edges [][2]int) {
	ring := CornerRing(nodes)
	n := len(ring)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		edges = append(edges, [2]int{ring[i], ring[(i+1)%n]})
	}
	return
}
