package readers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/gojoint/geometry3D"
	"github.com/notargets/gojoint/mesh"
	"github.com/notargets/gojoint/utils"
)

// SU2 element type codes
const (
	su2Line          = 3
	su2Triangle      = 5
	su2Quadrilateral = 9
)

// ReadSU2 reads an SU2 native format file
func ReadSU2(filename string) (*mesh.ShellMesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	m, err := ParseSU2(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

// ParseSU2 reads the shell elements of an SU2 mesh. Element i of NELEM becomes element i+1 and
// point i becomes node i+1. Each marker becomes a group holding the shell elements whose node
// sets match the marker's elements; line markers are ignored.
func ParseSU2(r io.Reader) (m *mesh.ShellMesh, err error) {
	m = mesh.NewShellMesh()
	scanner := bufio.NewScanner(r)
	var (
		ndime    int
		hasNDIME bool
		byNodes  = make(map[string]int)
	)

	next := func() (string, bool) {
		for scanner.Scan() {
			line := scanner.Text()
			if idx := strings.Index(line, "%"); idx >= 0 {
				line = line[:idx]
			}
			if line = strings.TrimSpace(line); line != "" {
				return line, true
			}
		}
		return "", false
	}
	keyword := func(line, key string) (n int, err error) {
		// Counts may be followed by a second value, as in "NPOIN= 9 8"
		fields := strings.Fields(strings.TrimPrefix(line, key))
		if len(fields) == 0 {
			return 0, fmt.Errorf("bad %s line %q", key, line)
		}
		if n, err = strconv.Atoi(fields[0]); err != nil {
			err = fmt.Errorf("bad %s line %q: %w", key, line, err)
		}
		return
	}

	for {
		line, ok := next()
		if !ok {
			break
		}
		switch {
		case strings.HasPrefix(line, "NDIME="):
			if ndime, err = keyword(line, "NDIME="); err != nil {
				return nil, err
			}
			if ndime != 2 && ndime != 3 {
				return nil, fmt.Errorf("unsupported dimension: NDIME=%d", ndime)
			}
			hasNDIME = true

		case strings.HasPrefix(line, "NELEM="):
			var nelem int
			if nelem, err = keyword(line, "NELEM="); err != nil {
				return nil, err
			}
			for i := 0; i < nelem; i++ {
				if line, ok = next(); !ok {
					return nil, fmt.Errorf("NELEM=%d but only %d elements", nelem, i)
				}
				fields := strings.Fields(line)
				su2Type, nodes, err := su2Element(fields)
				if err != nil {
					return nil, fmt.Errorf("element %d: %w", i, err)
				}
				if su2Type != su2Triangle && su2Type != su2Quadrilateral {
					continue
				}
				id := i + 1
				if err = m.AddElement(id, nodes); err != nil {
					return nil, err
				}
				byNodes[sortedKey(nodes)] = id
			}

		case strings.HasPrefix(line, "NPOIN="):
			if !hasNDIME {
				return nil, fmt.Errorf("NPOIN before NDIME")
			}
			var npoin int
			if npoin, err = keyword(line, "NPOIN="); err != nil {
				return nil, err
			}
			for i := 0; i < npoin; i++ {
				if line, ok = next(); !ok {
					return nil, fmt.Errorf("NPOIN=%d but only %d points", npoin, i)
				}
				fields := strings.Fields(line)
				if len(fields) < ndime {
					return nil, fmt.Errorf("point %d: need %d coordinates, have %q", i, ndime, line)
				}
				var xyz [3]float64
				for j := 0; j < ndime; j++ {
					if xyz[j], err = strconv.ParseFloat(fields[j], 64); err != nil {
						return nil, fmt.Errorf("point %d: %w", i, err)
					}
				}
				m.AddNode(i+1, geometry3D.NewCoord(xyz[0], xyz[1], xyz[2]))
			}

		case strings.HasPrefix(line, "NMARK="):
			var nmark int
			if nmark, err = keyword(line, "NMARK="); err != nil {
				return nil, err
			}
			for i := 0; i < nmark; i++ {
				if err = readMarker(next, keyword, m, byNodes, i+1); err != nil {
					return nil, err
				}
			}
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	if !hasNDIME {
		return nil, fmt.Errorf("missing NDIME")
	}
	return m, nil
}

func readMarker(next func() (string, bool), keyword func(string, string) (int, error),
	m *mesh.ShellMesh, byNodes map[string]int, tag int) (err error) {
	line, ok := next()
	if !ok || !strings.HasPrefix(line, "MARKER_TAG=") {
		return fmt.Errorf("marker %d: expected MARKER_TAG, have %q", tag, line)
	}
	name := strings.TrimSpace(strings.TrimPrefix(line, "MARKER_TAG="))
	if line, ok = next(); !ok {
		return fmt.Errorf("marker %s: missing MARKER_ELEMS", name)
	}
	var nelem int
	if nelem, err = keyword(line, "MARKER_ELEMS="); err != nil {
		return
	}
	var members []int
	for j := 0; j < nelem; j++ {
		if line, ok = next(); !ok {
			return fmt.Errorf("marker %s: MARKER_ELEMS=%d but only %d elements", name, nelem, j)
		}
		su2Type, nodes, err := su2Element(strings.Fields(line))
		if err != nil {
			return fmt.Errorf("marker %s element %d: %w", name, j, err)
		}
		if su2Type == su2Line {
			continue
		}
		id, found := byNodes[sortedKey(nodes)]
		if !found {
			return fmt.Errorf("marker %s element %d matches no shell element", name, j)
		}
		members = append(members, id)
	}
	m.AddGroup(name, tag, members...)
	return nil
}

// su2Element parses "type n0 n1 ... [index]" into 1-based node ids
func su2Element(fields []string) (su2Type int, nodes []int, err error) {
	if len(fields) < 2 {
		return 0, nil, fmt.Errorf("too few fields")
	}
	if su2Type, err = strconv.Atoi(fields[0]); err != nil {
		return
	}
	var numNodes int
	switch su2Type {
	case su2Line:
		numNodes = utils.Line.GetNumNodes()
	case su2Triangle:
		numNodes = utils.Triangle.GetNumNodes()
	case su2Quadrilateral:
		numNodes = utils.Quad.GetNumNodes()
	default:
		// Volume elements are not shells
		return su2Type, nil, nil
	}
	if len(fields) < numNodes+1 {
		return 0, nil, fmt.Errorf("type %d needs %d nodes, have %d fields", su2Type, numNodes, len(fields)-1)
	}
	for j := 0; j < numNodes; j++ {
		var v int
		if v, err = strconv.Atoi(fields[1+j]); err != nil {
			return
		}
		nodes = append(nodes, v+1)
	}
	return
}
