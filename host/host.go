// Package host defines what the classification passes need from the modeling application that
// owns the mesh, and provides an in-memory Session that implements it.
package host

import (
	"github.com/pkg/errors"

	"github.com/notargets/gojoint/geometry3D"
)

var (
	ErrNoCollection     = errors.New("no such collection")
	ErrCollectionExists = errors.New("collection already exists")
	ErrKindMismatch     = errors.New("collection holds a different kind of member")
	ErrUnknownElement   = errors.New("unknown element")
	ErrNoMaterial       = errors.New("no elements of material")
)

// CollectionKind says whether a collection holds elements or nodes
type CollectionKind uint8

const (
	ElementCollection CollectionKind = iota
	NodeCollection
)

func (k CollectionKind) String() string {
	return [...]string{"elements", "nodes"}[k]
}

// Collection is a named set of elements or nodes, identified to the host by RoleID
type Collection struct {
	Name     string
	RoleID   int
	Kind     CollectionKind
	Members  []int
	Children []string // Nested collections
}

// ElementQuery scopes an element enumeration
type ElementQuery struct {
	Collection  string // Empty means the whole mesh
	VisibleOnly bool
	Recursive   bool // Descend into nested collections
}

// Host is the modeling application the passes run against
type Host interface {
	// Elements enumerates shell elements in a stable order
	Elements(q ElementQuery) ([]int, error)
	// ElementNodes returns the ordered incident nodes of an element, absent entries dropped
	ElementNodes(e int) []int
	// NodeCoord resolves a node position, Undefined if the host cannot resolve it
	NodeCoord(n int) geometry3D.Coord
	// ElementNormal returns the unit outward normal, Undefined if it cannot be computed
	ElementNormal(e int) geometry3D.Coord
	// MaterialElements lists the shells assigned the named material, visible or not
	MaterialElements(material string) ([]int, error)

	Collection(name string) (*Collection, bool)
	CreateCollection(name string, roleID int, kind CollectionKind) (*Collection, error)
	DeleteCollection(name string) error
	AppendElements(name string, elements []int) error
	AppendNodes(name string, nodes []int) error

	// TripleJunctionCheck runs the mesh quality check over scope (the whole mesh when empty) and
	// returns the flagged elements, ascending
	TripleJunctionCheck(scope []int) ([]int, error)
}
