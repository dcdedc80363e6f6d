package readers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/notargets/gojoint/geometry3D"
	"github.com/notargets/gojoint/mesh"
	"github.com/notargets/gojoint/utils"
)

// Gmsh element type codes for the kinds a surface mesh carries
var gmshShellTypes = map[int]utils.ElementType{
	2:  utils.Triangle,
	3:  utils.Quad,
	9:  utils.Triangle6,
	16: utils.Quad8,
	10: utils.Quad8, // 9-node quad, center node dropped
}

// ReadGmsh reads a Gmsh format file (version 2.2, ASCII)
func ReadGmsh(filename string) (*mesh.ShellMesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	m, err := ParseGmsh(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

// ParseGmsh reads the shell elements of a Gmsh 2.2 mesh keeping Gmsh node and element ids.
// Elements are grouped by their physical tag, named from $PhysicalNames when present.
func ParseGmsh(r io.Reader) (m *mesh.ShellMesh, err error) {
	m = mesh.NewShellMesh()
	scanner := bufio.NewScanner(r)
	var (
		version   string
		names     = make(map[int]string)
		physicals = make(map[int][]int)
	)
	next := func(section string) (string, error) {
		if !scanner.Scan() {
			return "", fmt.Errorf("unexpected end of file in %s", section)
		}
		return strings.TrimSpace(scanner.Text()), nil
	}
	count := func(section string) (n int, err error) {
		var line string
		if line, err = next(section); err != nil {
			return
		}
		if n, err = strconv.Atoi(line); err != nil {
			err = fmt.Errorf("%s: bad count %q", section, line)
		}
		return
	}

	for scanner.Scan() {
		var line string
		switch strings.TrimSpace(scanner.Text()) {
		case "$MeshFormat":
			if line, err = next("$MeshFormat"); err != nil {
				return nil, err
			}
			parts := strings.Fields(line)
			if len(parts) < 2 {
				return nil, fmt.Errorf("bad $MeshFormat line %q", line)
			}
			version = parts[0]
			if !strings.HasPrefix(version, "2") {
				return nil, fmt.Errorf("Gmsh format version %s not supported", version)
			}
			if parts[1] != "0" {
				return nil, fmt.Errorf("binary Gmsh files not supported")
			}

		case "$PhysicalNames":
			var n int
			if n, err = count("$PhysicalNames"); err != nil {
				return nil, err
			}
			for i := 0; i < n; i++ {
				if line, err = next("$PhysicalNames"); err != nil {
					return nil, err
				}
				fields := strings.Fields(line)
				if len(fields) < 3 {
					return nil, fmt.Errorf("bad physical name %q", line)
				}
				tag, err := strconv.Atoi(fields[1])
				if err != nil {
					return nil, fmt.Errorf("bad physical tag %q: %w", line, err)
				}
				names[tag] = strings.Trim(strings.Join(fields[2:], " "), "\"")
			}

		case "$Nodes":
			var n int
			if n, err = count("$Nodes"); err != nil {
				return nil, err
			}
			for i := 0; i < n; i++ {
				if line, err = next("$Nodes"); err != nil {
					return nil, err
				}
				fields := strings.Fields(line)
				if len(fields) < 4 {
					return nil, fmt.Errorf("bad node line %q", line)
				}
				var (
					id  int
					xyz [3]float64
				)
				if id, err = strconv.Atoi(fields[0]); err != nil {
					return nil, fmt.Errorf("bad node id %q: %w", line, err)
				}
				for j := 0; j < 3; j++ {
					if xyz[j], err = strconv.ParseFloat(fields[1+j], 64); err != nil {
						return nil, fmt.Errorf("node %d: %w", id, err)
					}
				}
				m.AddNode(id, geometry3D.NewCoord(xyz[0], xyz[1], xyz[2]))
			}

		case "$Elements":
			var n int
			if n, err = count("$Elements"); err != nil {
				return nil, err
			}
			for i := 0; i < n; i++ {
				if line, err = next("$Elements"); err != nil {
					return nil, err
				}
				if err = gmshElement(m, physicals, strings.Fields(line)); err != nil {
					return nil, fmt.Errorf("element line %q: %w", line, err)
				}
			}
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	if version == "" {
		return nil, fmt.Errorf("missing $MeshFormat")
	}

	tags := make([]int, 0, len(physicals))
	for tag := range physicals {
		tags = append(tags, tag)
	}
	sort.Ints(tags)
	for _, tag := range tags {
		name, ok := names[tag]
		if !ok {
			name = fmt.Sprintf("PHYSICAL_%d", tag)
		}
		m.AddGroup(name, tag, physicals[tag]...)
	}
	return m, nil
}

// gmshElement parses "id type ntags tags... nodes..." and adds shell elements to the mesh
func gmshElement(m *mesh.ShellMesh, physicals map[int][]int, fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("too few fields")
	}
	var ints []int
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return err
		}
		ints = append(ints, v)
	}
	id, gmshType, ntags := ints[0], ints[1], ints[2]
	etype, shell := gmshShellTypes[gmshType]
	if !shell {
		return nil
	}
	offset := 3 + ntags
	numNodes := etype.GetNumNodes()
	if len(ints) < offset+numNodes {
		return fmt.Errorf("type %d needs %d nodes", gmshType, numNodes)
	}
	if err := m.AddElement(id, ints[offset:offset+numNodes]); err != nil {
		return err
	}
	if ntags > 0 && ints[3] != 0 {
		physicals[ints[3]] = append(physicals[ints[3]], id)
	}
	// The elementary entity stands in for the property, named by its tag
	if ntags > 1 {
		m.Materials[id] = strconv.Itoa(ints[4])
	}
	return nil
}
