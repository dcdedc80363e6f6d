package passes

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/notargets/gojoint/InputParameters"
	"github.com/notargets/gojoint/geometry3D"
	"github.com/notargets/gojoint/host"
	"github.com/notargets/gojoint/mesh"
	"github.com/notargets/gojoint/metrics"
)

func newRunner(t *testing.T, s *host.Session) *Runner {
	r, err := NewRunner(s, InputParameters.NewRunParameters(), zaptest.NewLogger(t), metrics.NewRegistry())
	require.NoError(t, err)
	return r
}

func members(t *testing.T, s *host.Session, name string) []int {
	c, ok := s.Collection(name)
	require.True(t, ok, "collection %s", name)
	return c.Members
}

// Two lap joints: the first as built, the second flipped with IDs offset by 100
func twoLapJoints() *host.Session {
	return host.NewSession(mesh.Merge(mesh.NewLapJoint(false, 0, 0), mesh.NewLapJoint(true, 100, 100)))
}

func TestClassifyLap(t *testing.T) {
	s := twoLapJoints()
	r := newRunner(t, s)
	rep, err := r.ClassifyLap()
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Components)
	assert.Equal(t, 2, rep.Classified)
	assert.Empty(t, rep.Lines())
	assert.ElementsMatch(t, []int{2, 4, 102, 103}, members(t, s, "M453"))
	assert.ElementsMatch(t, []int{3, 104}, members(t, s, "M452"))
	for _, name := range []string{"M450", "M451", "M454", "M455"} {
		assert.Empty(t, members(t, s, name))
	}
	c, _ := s.Collection("M455")
	assert.Equal(t, 455, c.RoleID)
	assert.Equal(t, map[string]int{"M452": 2, "M453": 4}, rep.Outputs)

	// A rerun resets rather than accumulates
	_, err = r.ClassifyLap()
	require.NoError(t, err)
	assert.Len(t, members(t, s, "M453"), 4)
}

func TestMissingCenterSkipsOnlyItsComponent(t *testing.T) {
	s := twoLapJoints()
	s.ForgetCoord(100 + mesh.LapCenterNode)
	core, logs := observer.New(zapcore.WarnLevel)
	reg := metrics.NewRegistry()
	r, err := NewRunner(s, InputParameters.NewRunParameters(), zap.New(core), reg)
	require.NoError(t, err)

	rep, err := r.ClassifyLap()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"lap: component 2 (first element 103, 4 elements) skipped: UndefinedGeometry",
	}, rep.Lines())
	assert.Equal(t, 1, rep.Classified)
	assert.ElementsMatch(t, []int{2, 4}, members(t, s, "M453"))
	assert.Equal(t, []int{3}, members(t, s, "M452"))

	skipped := logs.FilterMessage("component skipped").All()
	require.Len(t, skipped, 1)
	fields := skipped[0].ContextMap()
	assert.Equal(t, "UndefinedGeometry", fields["reason"])
	assert.Equal(t, "lap", fields["pass"])
	assert.Equal(t, r.RunID.String(), fields["run"])

	assert.Equal(t, 1., testutil.ToFloat64(reg.SkipsTotal.WithLabelValues(PassLap, "UndefinedGeometry")))
	assert.Equal(t, 1., testutil.ToFloat64(reg.ComponentsTotal.WithLabelValues(PassLap, metrics.Classified)))
	assert.Equal(t, 1., testutil.ToFloat64(reg.PassesTotal.WithLabelValues(PassLap, "ok")))
}

func TestSetupErrorLeavesOutputs(t *testing.T) {
	s := twoLapJoints()
	_, err := s.CreateCollection("M453", 453, host.ElementCollection)
	require.NoError(t, err)
	require.NoError(t, s.AppendElements("M453", []int{2}))

	rp := InputParameters.NewRunParameters()
	rp.Inputs.A = "NOPE"
	r, err := NewRunner(s, rp, zaptest.NewLogger(t), nil)
	require.NoError(t, err)
	_, err = r.ClassifyLap()
	assert.True(t, errors.Is(err, host.ErrNoCollection))
	assert.Equal(t, []int{2}, members(t, s, "M453"))
	_, ok := s.Collection("M450")
	assert.False(t, ok)

	rp = InputParameters.NewRunParameters()
	rp.Epsilon = 0
	_, err = NewRunner(s, rp, nil, nil)
	assert.Error(t, err)
}

func TestClassifyT(t *testing.T) {
	s := twoLapJoints()
	rep, err := newRunner(t, s).ClassifyT()
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Classified)
	// A and B face opposite ways in both joints; only the flipped one has its C-edge along nA
	assert.Equal(t, []int{103}, members(t, s, "M201"))
	assert.ElementsMatch(t, []int{3, 104}, members(t, s, "M202"))
	assert.Equal(t, []int{4}, members(t, s, "M203"))
	assert.ElementsMatch(t, []int{1, 101}, members(t, s, "M207"))
	for _, name := range []string{"M204", "M205", "M206"} {
		assert.Empty(t, members(t, s, name))
	}
	_, lap := s.Collection("M450")
	assert.False(t, lap)
}

func TestSplitSides(t *testing.T) {
	s := host.NewSession(mesh.Merge(mesh.NewQuadStrip(2, 3, 0, 0), mesh.NewQuadStrip(1, 1, 100, 100)))
	rep, err := newRunner(t, s).SplitSides()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, members(t, s, "SIDE_1"))
	assert.Equal(t, []int{4, 5, 6}, members(t, s, "SIDE_2"))
	assert.Equal(t, []string{
		"sides: component 2 (first element 101, 1 elements) skipped: NoSecondSide",
	}, rep.Lines())
}

func TestInferSideC(t *testing.T) {
	// A, T and B are the quads of a strip; T has nodes 2, 3, 7 and 6
	m := mesh.NewQuadStrip(1, 3, 0, 0)
	for id := 20; id <= 22; id++ {
		m.AddNode(id, geometry3D.NewCoord(float64(id), 0, 1))
	}
	require.NoError(t, m.AddElement(10, []int{2, 3, 20})) // Fin on T only
	require.NoError(t, m.AddElement(11, []int{2, 6, 21})) // Fin on the edge T shares with A
	require.NoError(t, m.AddElement(12, []int{6, 7, 22})) // Fin on T only, hidden
	m.Hidden[12] = true
	m.AddGroup("A", 1, 1)
	m.AddGroup("T", 4, 2)
	m.AddGroup("B", 2, 3)
	s := host.NewSession(m)
	r := newRunner(t, s)

	rep, err := r.InferSideC()
	require.NoError(t, err)
	assert.Empty(t, rep.Lines())
	assert.Equal(t, []int{10}, members(t, s, "SIDE_C"))
	assert.Equal(t, 5, rep.Components)
	assert.Equal(t, 1, rep.Classified)
	c, _ := s.Collection("SIDE_C")
	assert.Equal(t, 472, c.RoleID)

	// Reruns rebuild the output from the current visibility
	s.SetHidden(12, false)
	_, err = r.InferSideC()
	require.NoError(t, err)
	assert.Equal(t, []int{10, 12}, members(t, s, "SIDE_C"))

	require.NoError(t, s.DeleteCollection("T"))
	_, err = r.InferSideC()
	assert.True(t, errors.Is(err, host.ErrNoCollection))
}

func TestOrderChains(t *testing.T) {
	m := mesh.NewQuadStrip(1, 5, 0, 0)
	m.AddNode(13, geometry3D.NewCoord(2, 2, 0))
	m.AddNode(14, geometry3D.NewCoord(3, 2, 0))
	require.NoError(t, m.AddElement(6, []int{9, 10, 14, 13}))
	m.AddGroup("CHAIN", 5, 3, 5, 1, 6, 4, 2)
	s := host.NewSession(m)
	rep, err := newRunner(t, s).OrderChains()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 6, 4, 5}, members(t, s, "ORDERED"))
	assert.Equal(t, 1, rep.Inserted)
	assert.Equal(t, 1, rep.Components)
}

func TestExtractExtremities(t *testing.T) {
	m := mesh.NewQuadStrip(1, 3, 0, 0)
	m.AddGroup("EXTREMITY", 6, 1, 2, 3)
	// Two fins on the edge {1,5} of element 1 make it a triple junction
	for id := 20; id <= 23; id++ {
		m.AddNode(id, geometry3D.NewCoord(0, 0, float64(id)))
	}
	require.NoError(t, m.AddElement(10, []int{1, 5, 20, 21}))
	require.NoError(t, m.AddElement(11, []int{5, 1, 22, 23}))
	s := host.NewSession(m)
	r := newRunner(t, s)

	rep, err := r.ExtractExtremities(false)
	require.NoError(t, err)
	assert.Empty(t, rep.Lines())
	assert.Equal(t, []int{1}, members(t, s, "END_1"))
	assert.Equal(t, []int{4}, members(t, s, "END_2"))
	assert.Equal(t, []int{2, 3, 5, 6, 7, 8}, members(t, s, "REMAINDER"))
	c, _ := s.Collection("END_1")
	assert.Equal(t, host.NodeCollection, c.Kind)

	rep, err = r.ExtractExtremities(true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"extremities: component 1 (first element 1, 3 elements) skipped: NoFreeNode",
	}, rep.Lines())
	assert.Equal(t, []int{1}, members(t, s, "END_1"))
	assert.Empty(t, members(t, s, "END_2"))
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8}, members(t, s, "REMAINDER"))
}

func TestReport(t *testing.T) {
	rep := newReport(PassOrder, "run-1")
	rep.Components = 2
	rep.Skips = append(rep.Skips, Skip{Component: 2, First: 7, Size: 3, Reason: "TooFewEnds"})
	data, err := rep.YAML()
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, "pass: order"), text)
	assert.True(t, strings.Contains(text, "reason: TooFewEnds"), text)
	assert.Equal(t, []string{"order: component 2 (first element 7, 3 elements) skipped: TooFewEnds"}, rep.Lines())
}
