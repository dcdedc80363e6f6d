package mesh

import (
	"fmt"
	"sort"

	"github.com/notargets/gojoint/geometry3D"
	"github.com/notargets/gojoint/utils"
)

// ElementGroup is a named collection of elements carried by a mesh file, e.g. an SU2 marker or a
// Gmsh physical group
type ElementGroup struct {
	Name     string
	Tag      int
	Elements []int
	Children []string // Names of nested groups
}

// ShellMesh is a surface mesh of shell elements with named element groups
type ShellMesh struct {
	// Geometry
	Nodes map[int]geometry3D.Coord // Node ID -> coordinate

	// Element data
	Elements     []int                     // Element IDs in file order
	ElementNodes map[int][]int             // Element ID -> ordered node IDs
	ElementTypes map[int]utils.ElementType // Element ID -> element kind
	Hidden       map[int]bool              // Elements excluded from visible-only queries
	Materials    map[int]string            // Element ID -> material name, when the file carries one

	// Named collections
	Groups []*ElementGroup

	// Mesh statistics
	NumElements int
	NumNodes    int
}

// NewShellMesh creates an empty shell mesh
func NewShellMesh() *ShellMesh {
	return &ShellMesh{
		Nodes:        make(map[int]geometry3D.Coord),
		ElementNodes: make(map[int][]int),
		ElementTypes: make(map[int]utils.ElementType),
		Hidden:       make(map[int]bool),
		Materials:    make(map[int]string),
	}
}

func (m *ShellMesh) AddNode(id int, c geometry3D.Coord) {
	if _, exists := m.Nodes[id]; !exists {
		m.NumNodes++
	}
	m.Nodes[id] = c
}

// CleanNodeList drops zero (absent) and repeated entries, keeping the order of the rest
func CleanNodeList(nodes []int) (clean []int) {
	seen := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		if n <= 0 || seen[n] {
			continue
		}
		seen[n] = true
		clean = append(clean, n)
	}
	return
}

// AddElement adds a shell element. The node list must hold 3 to 8 nodes once absent entries
// are dropped.
func (m *ShellMesh) AddElement(id int, nodes []int) error {
	if id <= 0 {
		return fmt.Errorf("element id must be positive, have %d", id)
	}
	if _, exists := m.ElementNodes[id]; exists {
		return fmt.Errorf("duplicate element id %d", id)
	}
	clean := CleanNodeList(nodes)
	if len(clean) < 3 || len(clean) > 8 {
		return fmt.Errorf("element %d: shell elements have 3 to 8 nodes, have %d", id, len(clean))
	}
	m.Elements = append(m.Elements, id)
	m.ElementNodes[id] = clean
	m.ElementTypes[id] = utils.ShellTypeForNodeCount(len(clean))
	m.NumElements++
	return nil
}

// AddGroup appends elements to the named group, creating it if needed
func (m *ShellMesh) AddGroup(name string, tag int, elements ...int) *ElementGroup {
	g := m.Group(name)
	if g == nil {
		g = &ElementGroup{Name: name, Tag: tag}
		m.Groups = append(m.Groups, g)
	}
	g.Elements = append(g.Elements, elements...)
	return g
}

func (m *ShellMesh) Group(name string) *ElementGroup {
	for _, g := range m.Groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// MaterialElements returns the elements of a material in file order
func (m *ShellMesh) MaterialElements(material string) (elements []int) {
	for _, e := range m.Elements {
		if m.Materials[e] == material {
			elements = append(elements, e)
		}
	}
	return
}

// NodesOf returns the ordered node list of an element
func (m *ShellMesh) NodesOf(e int) []int { return m.ElementNodes[e] }

// Topology builds the topology index over all elements of the mesh
func (m *ShellMesh) Topology() *Topology {
	return NewTopology(m.Elements, m.NodesOf)
}

// PrintStatistics prints mesh statistics
func (m *ShellMesh) PrintStatistics() {
	fmt.Printf("Mesh Statistics:\n")
	fmt.Printf("  Nodes: %d\n", m.NumNodes)
	fmt.Printf("  Elements: %d\n", m.NumElements)

	typeCounts := make(map[utils.ElementType]int)
	for _, e := range m.Elements {
		typeCounts[m.ElementTypes[e]]++
	}
	types := make([]utils.ElementType, 0, len(typeCounts))
	for t := range typeCounts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	fmt.Printf("  Element types:\n")
	for _, t := range types {
		fmt.Printf("    %s: %d\n", t, typeCounts[t])
	}

	fmt.Printf("  Groups:\n")
	for _, g := range m.Groups {
		fmt.Printf("    %s (tag %d): %d elements\n", g.Name, g.Tag, len(g.Elements))
	}
}
