package passes

import (
	"fmt"
	"sort"
	"time"

	"github.com/ghodss/yaml"
)

// Skip records one component that produced no, or only partial, output
type Skip struct {
	Component int    `json:"component"` // 1-based, in discovery order
	First     int    `json:"firstElement"`
	Size      int    `json:"elements"`
	Reason    string `json:"reason"`
	Detail    string `json:"detail,omitempty"`
	Members   []int  `json:"members,omitempty"` // Critical weld groups list their elements
}

type Report struct {
	Pass       string         `json:"pass"`
	RunID      string         `json:"run"`
	Started    time.Time      `json:"started"`
	Elapsed    time.Duration  `json:"elapsed"`
	Components int            `json:"components"`
	Classified int            `json:"classified"`
	Inserted   int            `json:"inserted,omitempty"` // Elements attached by the orderer after its walk
	Outputs    map[string]int `json:"outputs"`            // Members appended per output collection
	Skips      []Skip         `json:"skips,omitempty"`
}

func newReport(pass, runID string) *Report {
	return &Report{
		Pass:    pass,
		RunID:   runID,
		Started: time.Now(),
		Outputs: make(map[string]int),
	}
}

// Lines returns one diagnostic line per skipped component
func (r *Report) Lines() (lines []string) {
	for _, s := range r.Skips {
		line := fmt.Sprintf("%s: component %d (first element %d, %d elements) skipped: %s",
			r.Pass, s.Component, s.First, s.Size, s.Reason)
		if len(s.Members) > 0 {
			line += fmt.Sprintf(" %v", s.Members)
		}
		lines = append(lines, line)
	}
	return
}

func (r *Report) Print() {
	fmt.Printf("[%s] run %s\n", r.Pass, r.RunID)
	fmt.Printf("%d\t\t= Components\n", r.Components)
	fmt.Printf("%d\t\t= Classified\n", r.Classified)
	fmt.Printf("%d\t\t= Skipped\n", len(r.Skips))
	if r.Inserted > 0 {
		fmt.Printf("%d\t\t= Inserted after walk\n", r.Inserted)
	}
	names := make([]string, 0, len(r.Outputs))
	for name := range r.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("Outputs[%s] = %d\n", name, r.Outputs[name])
	}
	for _, line := range r.Lines() {
		fmt.Println(line)
	}
	fmt.Printf("Elapsed = %v\n", r.Elapsed)
}

// YAML renders the report for the --report file
func (r *Report) YAML() ([]byte, error) {
	return yaml.Marshal(r)
}
