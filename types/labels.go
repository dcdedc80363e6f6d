package types

import "strings"

// Label is the set of joint roles carried by an element, one bit per role
type Label uint8

const (
	LabelA Label = 1 << iota
	LabelB
	LabelC
	LabelT
	LabelNone Label = 0
)

// AllLabels lists the single-role labels in their canonical scan order
var AllLabels = []Label{LabelA, LabelB, LabelC, LabelT}

var labelNames = map[Label]string{
	LabelA: "A",
	LabelB: "B",
	LabelC: "C",
	LabelT: "T",
}

func (l Label) Has(other Label) bool { return l&other == other && other != 0 }

func (l Label) With(other Label) Label { return l | other }

func (l Label) String() string {
	if l == LabelNone {
		return "-"
	}
	var parts []string
	for _, single := range AllLabels {
		if l.Has(single) {
			parts = append(parts, labelNames[single])
		}
	}
	return strings.Join(parts, "")
}

// NewLabel parses a single role name such as "A" or "t"
func NewLabel(name string) (l Label, ok bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for lbl, nm := range labelNames {
		if nm == name {
			return lbl, true
		}
	}
	return LabelNone, false
}

// LabelSet maps element identity to the union of labels assigned to it
type LabelSet map[int]Label

// Assign adds label to every element; repeated assignment is idempotent
func (ls LabelSet) Assign(label Label, elements []int) {
	for _, e := range elements {
		ls[e] = ls[e].With(label)
	}
}

func (ls LabelSet) Get(e int) Label { return ls[e] }

// Count returns how many of the elements carry label
func (ls LabelSet) Count(label Label, elements []int) (n int) {
	for _, e := range elements {
		if ls[e].Has(label) {
			n++
		}
	}
	return
}

// Filter returns the elements carrying label, in input order
func (ls LabelSet) Filter(label Label, elements []int) (out []int) {
	for _, e := range elements {
		if ls[e].Has(label) {
			out = append(out, e)
		}
	}
	return
}
