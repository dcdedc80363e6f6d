package readers

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/notargets/gojoint/mesh"
)

// ReadMeshFile reads a surface mesh file based on extension
func ReadMeshFile(filename string) (*mesh.ShellMesh, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".msh":
		return ReadGmsh(filename)
	case ".su2":
		return ReadSU2(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}

// sortedKey identifies an element by its node set regardless of node order
func sortedKey(nodes []int) string {
	s := append([]int(nil), nodes...)
	sort.Ints(s)
	return fmt.Sprint(s)
}
