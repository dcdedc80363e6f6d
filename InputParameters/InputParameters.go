package InputParameters

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/go-playground/validator/v10"

	"github.com/notargets/gojoint/joints"
	"github.com/notargets/gojoint/mesh"
)

var validate = validator.New()

// OutputRole is the name and numeric role id of an output collection
type OutputRole struct {
	Name string `json:"Name" validate:"required,max=64"`
	ID   int    `json:"ID" validate:"min=1"`
}

// InputCollections names the collections each pass reads
type InputCollections struct {
	A           string `json:"A" validate:"required"`
	B           string `json:"B" validate:"required"`
	C           string `json:"C" validate:"required"`
	T           string `json:"T" validate:"required"`
	Strip       string `json:"Strip" validate:"required"`
	Chain       string `json:"Chain" validate:"required"`
	Extremity   string `json:"Extremity" validate:"required"`
	VisibleOnly bool   `json:"VisibleOnly"`
	Recursive   bool   `json:"Recursive"`
}

type SideOutputs struct {
	Side1 OutputRole `json:"Side1"`
	Side2 OutputRole `json:"Side2"`
	C     OutputRole `json:"C"`
}

// WeldParameters drive the material collection and the weld group classification
type WeldParameters struct {
	Material   string     `json:"Material" validate:"required"`
	Collection OutputRole `json:"Collection"` // Written from the material, read by the group pass
	Side       OutputRole `json:"Side"`
	Center     OutputRole `json:"Center"`
	Tolerance  float64    `json:"Tolerance" validate:"gt=0,lt=45"` // Degrees
}

type ExtremityOutputs struct {
	End1      OutputRole `json:"End1"`
	End2      OutputRole `json:"End2"`
	Remainder OutputRole `json:"Remainder"`
}

// RunParameters obtained from the YAML input file
type RunParameters struct {
	Title          string                `json:"Title"`
	Epsilon        float64               `json:"Epsilon" validate:"gt=0,lt=1"`
	JointAdjacency string                `json:"JointAdjacency" validate:"oneof=AnyNode SharedEdge"`
	OrderAdjacency string                `json:"OrderAdjacency" validate:"oneof=AnyNode SharedEdge"`
	Inputs         InputCollections      `json:"Inputs"`
	Lap            map[string]OutputRole `json:"Lap" validate:"dive"`
	T              map[string]OutputRole `json:"T" validate:"dive"`
	Sides          SideOutputs           `json:"Sides"`
	Ordered        OutputRole            `json:"Ordered"`
	Extremity      ExtremityOutputs      `json:"Extremity"`
	Weld           WeldParameters        `json:"Weld"`
}

// NewRunParameters returns the default catalog: lap roles M450..M455, T roles M201..M207 and the
// topology pass outputs, each named after its role with a matching id
func NewRunParameters() (rp *RunParameters) {
	rp = &RunParameters{
		Title:          "gojoint",
		Epsilon:        1.e-9,
		JointAdjacency: mesh.AnyNode.String(),
		OrderAdjacency: mesh.SharedEdge.String(),
		Inputs: InputCollections{
			A: "A", B: "B", C: "C", T: "T",
			Strip:     "STRIP",
			Chain:     "CHAIN",
			Extremity: "EXTREMITY",
		},
		Lap: make(map[string]OutputRole),
		T:   make(map[string]OutputRole),
		Sides: SideOutputs{
			Side1: OutputRole{"SIDE_1", 470},
			Side2: OutputRole{"SIDE_2", 471},
			C:     OutputRole{"SIDE_C", 472},
		},
		Ordered: OutputRole{"ORDERED", 480},
		Extremity: ExtremityOutputs{
			End1:      OutputRole{"END_1", 490},
			End2:      OutputRole{"END_2", 491},
			Remainder: OutputRole{"REMAINDER", 492},
		},
		Weld: WeldParameters{
			Material:   "SHELL_MAT",
			Collection: OutputRole{"weld_elements", 460},
			Side:       OutputRole{"T_Joint_side", 461},
			Center:     OutputRole{"T_Joint_center", 462},
			Tolerance:  5,
		},
	}
	for i, r := range joints.LapRoles {
		rp.Lap[string(r)] = OutputRole{Name: string(r), ID: 450 + i}
	}
	for i, r := range joints.TRoles {
		rp.T[string(r)] = OutputRole{Name: string(r), ID: 201 + i}
	}
	return
}

// Parse overlays the YAML document on the current values and validates the result
func (rp *RunParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, rp); err != nil {
		return fmt.Errorf("parsing run parameters: %w", err)
	}
	return rp.Validate()
}

// ReadFile parses a YAML parameter file over the defaults
func ReadFile(path string) (rp *RunParameters, err error) {
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	rp = NewRunParameters()
	if err = rp.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return
}

// Validate checks field constraints and the role catalog: every lap and T role present, and no
// name or id used twice across all outputs
func (rp *RunParameters) Validate() error {
	if err := validate.Struct(rp); err != nil {
		return formatValidationError(err)
	}
	for _, r := range joints.LapRoles {
		if _, ok := rp.Lap[string(r)]; !ok {
			return fmt.Errorf("Lap: missing role %s", r)
		}
	}
	for _, r := range joints.TRoles {
		if _, ok := rp.T[string(r)]; !ok {
			return fmt.Errorf("T: missing role %s", r)
		}
	}
	if len(rp.Lap) != len(joints.LapRoles) || len(rp.T) != len(joints.TRoles) {
		return fmt.Errorf("unknown role in catalog, lap roles are %v and T roles are %v",
			joints.LapRoles, joints.TRoles)
	}
	var (
		names = make(map[string]string)
		ids   = make(map[int]string)
	)
	for _, o := range rp.Outputs() {
		if prev, ok := names[o.Role.Name]; ok {
			return fmt.Errorf("output name %q used by both %s and %s", o.Role.Name, prev, o.Key)
		}
		if prev, ok := ids[o.Role.ID]; ok {
			return fmt.Errorf("output id %d used by both %s and %s", o.Role.ID, prev, o.Key)
		}
		names[o.Role.Name], ids[o.Role.ID] = o.Key, o.Key
	}
	return nil
}

// KeyedRole is an output role with its catalog key, such as "Lap.M450" or "Sides.C"
type KeyedRole struct {
	Key  string
	Role OutputRole
}

// Outputs lists every output role, lap and T roles first in role order
func (rp *RunParameters) Outputs() (out []KeyedRole) {
	for _, r := range joints.LapRoles {
		out = append(out, KeyedRole{"Lap." + string(r), rp.Lap[string(r)]})
	}
	for _, r := range joints.TRoles {
		out = append(out, KeyedRole{"T." + string(r), rp.T[string(r)]})
	}
	out = append(out,
		KeyedRole{"Sides.Side1", rp.Sides.Side1},
		KeyedRole{"Sides.Side2", rp.Sides.Side2},
		KeyedRole{"Sides.C", rp.Sides.C},
		KeyedRole{"Ordered", rp.Ordered},
		KeyedRole{"Extremity.End1", rp.Extremity.End1},
		KeyedRole{"Extremity.End2", rp.Extremity.End2},
		KeyedRole{"Extremity.Remainder", rp.Extremity.Remainder},
		KeyedRole{"Weld.Collection", rp.Weld.Collection},
		KeyedRole{"Weld.Side", rp.Weld.Side},
		KeyedRole{"Weld.Center", rp.Weld.Center},
	)
	return
}

// Role returns the output collection for a lap or T role
func (rp *RunParameters) Role(r joints.Role) (o OutputRole, ok bool) {
	if o, ok = rp.Lap[string(r)]; ok {
		return
	}
	o, ok = rp.T[string(r)]
	return
}

// Rule parses an adjacency rule name as validated
func Rule(name string) mesh.AdjacencyRule {
	if name == mesh.SharedEdge.String() {
		return mesh.SharedEdge
	}
	return mesh.AnyNode
}

func (rp *RunParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", rp.Title)
	fmt.Printf("%8.3g\t\t= Epsilon\n", rp.Epsilon)
	fmt.Printf("[%s]\t\t= Joint Adjacency\n", rp.JointAdjacency)
	fmt.Printf("[%s]\t= Order Adjacency\n", rp.OrderAdjacency)
	fmt.Printf("A=%s B=%s C=%s T=%s\t= Labels\n", rp.Inputs.A, rp.Inputs.B, rp.Inputs.C, rp.Inputs.T)
	fmt.Printf("%s, %g deg\t= Weld Material, Tolerance\n", rp.Weld.Material, rp.Weld.Tolerance)
	outputs := rp.Outputs()
	sort.SliceStable(outputs, func(i, j int) bool { return outputs[i].Role.ID < outputs[j].Role.ID })
	for _, o := range outputs {
		fmt.Printf("%4d %-12s\t= %s\n", o.Role.ID, o.Role.Name, o.Key)
	}
}

func formatValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	var msgs []string
	for _, fe := range ves {
		msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("invalid run parameters: %s", strings.Join(msgs, "; "))
}
