package host

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/notargets/gojoint/geometry3D"
	"github.com/notargets/gojoint/mesh"
	"github.com/notargets/gojoint/utils"
)

// Session is an in-memory Host over a ShellMesh. Mesh groups become element collections whose
// role id is the group tag.
type Session struct {
	Mesh        *mesh.ShellMesh
	collections map[string]*Collection
}

var _ Host = (*Session)(nil)

func NewSession(m *mesh.ShellMesh) (s *Session) {
	s = &Session{
		Mesh:        m,
		collections: make(map[string]*Collection),
	}
	for _, g := range m.Groups {
		s.collections[g.Name] = &Collection{
			Name:     g.Name,
			RoleID:   g.Tag,
			Kind:     ElementCollection,
			Members:  append([]int(nil), g.Elements...),
			Children: append([]string(nil), g.Children...),
		}
	}
	return
}

// Collections returns all collections ordered by name
func (s *Session) Collections() (cols []*Collection) {
	for _, c := range s.collections {
		cols = append(cols, c)
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].Name < cols[j].Name })
	return
}

func (s *Session) Elements(q ElementQuery) (elements []int, err error) {
	var candidates []int
	if q.Collection == "" {
		candidates = s.Mesh.Elements
	} else {
		if candidates, err = s.collectElements(q.Collection, q.Recursive, map[string]bool{}); err != nil {
			return
		}
	}
	seen := make(map[int]bool, len(candidates))
	for _, e := range candidates {
		if seen[e] {
			continue
		}
		seen[e] = true
		if _, ok := s.Mesh.ElementNodes[e]; !ok {
			continue
		}
		if q.VisibleOnly && s.Mesh.Hidden[e] {
			continue
		}
		elements = append(elements, e)
	}
	return
}

func (s *Session) collectElements(name string, recursive bool, visiting map[string]bool) (elements []int, err error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, errors.Wrapf(ErrNoCollection, "collection %q", name)
	}
	if c.Kind != ElementCollection {
		return nil, errors.Wrapf(ErrKindMismatch, "collection %q holds %s", name, c.Kind)
	}
	visiting[name] = true
	elements = append(elements, c.Members...)
	if !recursive {
		return
	}
	for _, child := range c.Children {
		if visiting[child] {
			continue
		}
		var sub []int
		if sub, err = s.collectElements(child, recursive, visiting); err != nil {
			return
		}
		elements = append(elements, sub...)
	}
	return
}

func (s *Session) MaterialElements(material string) ([]int, error) {
	elements := s.Mesh.MaterialElements(material)
	if len(elements) == 0 {
		return nil, errors.Wrapf(ErrNoMaterial, "%q", material)
	}
	return elements, nil
}

func (s *Session) ElementNodes(e int) []int { return s.Mesh.ElementNodes[e] }

func (s *Session) NodeCoord(n int) geometry3D.Coord {
	return s.Mesh.Nodes[n]
}

func (s *Session) ElementNormal(e int) geometry3D.Coord {
	nodes, ok := s.Mesh.ElementNodes[e]
	if !ok {
		return geometry3D.Undefined
	}
	var ring []geometry3D.Coord
	for _, n := range utils.CornerRing(nodes) {
		ring = append(ring, s.NodeCoord(n))
	}
	return geometry3D.PolygonNormal(ring)
}

// ForgetCoord makes a node unresolvable, as a host does for nodes it cannot locate
func (s *Session) ForgetCoord(n int) {
	delete(s.Mesh.Nodes, n)
}

// SetHidden changes an element's visibility
func (s *Session) SetHidden(e int, hidden bool) {
	if hidden {
		s.Mesh.Hidden[e] = true
	} else {
		delete(s.Mesh.Hidden, e)
	}
}

// AddChild nests collection child under parent
func (s *Session) AddChild(parent, child string) error {
	p, ok := s.collections[parent]
	if !ok {
		return errors.Wrapf(ErrNoCollection, "collection %q", parent)
	}
	if _, ok = s.collections[child]; !ok {
		return errors.Wrapf(ErrNoCollection, "collection %q", child)
	}
	p.Children = append(p.Children, child)
	return nil
}

func (s *Session) Collection(name string) (*Collection, bool) {
	c, ok := s.collections[name]
	return c, ok
}

func (s *Session) CreateCollection(name string, roleID int, kind CollectionKind) (*Collection, error) {
	if _, exists := s.collections[name]; exists {
		return nil, errors.Wrapf(ErrCollectionExists, "collection %q", name)
	}
	c := &Collection{Name: name, RoleID: roleID, Kind: kind}
	s.collections[name] = c
	return c, nil
}

func (s *Session) DeleteCollection(name string) error {
	if _, exists := s.collections[name]; !exists {
		return errors.Wrapf(ErrNoCollection, "collection %q", name)
	}
	delete(s.collections, name)
	for _, c := range s.collections {
		kept := c.Children[:0]
		for _, child := range c.Children {
			if child != name {
				kept = append(kept, child)
			}
		}
		c.Children = kept
	}
	return nil
}

func (s *Session) AppendElements(name string, elements []int) error {
	c, err := s.target(name, ElementCollection)
	if err != nil {
		return err
	}
	for _, e := range elements {
		if _, ok := s.Mesh.ElementNodes[e]; !ok {
			return errors.Wrapf(ErrUnknownElement, "element %d", e)
		}
	}
	c.Members = append(c.Members, elements...)
	return nil
}

func (s *Session) AppendNodes(name string, nodes []int) error {
	c, err := s.target(name, NodeCollection)
	if err != nil {
		return err
	}
	c.Members = append(c.Members, nodes...)
	return nil
}

func (s *Session) target(name string, kind CollectionKind) (*Collection, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, errors.Wrapf(ErrNoCollection, "collection %q", name)
	}
	if c.Kind != kind {
		return nil, errors.Wrapf(ErrKindMismatch, "collection %q holds %s, not %s", name, c.Kind, kind)
	}
	return c, nil
}

// RestoreCollection installs a collection as persisted, replacing any of the same name
func (s *Session) RestoreCollection(c *Collection) {
	s.collections[c.Name] = c
}
