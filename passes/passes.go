// Package passes runs the classification and topology passes against a host: it reads the
// input collections, resets the pass outputs, processes each component and reports the skips.
package passes

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/notargets/gojoint/InputParameters"
	"github.com/notargets/gojoint/extremity"
	"github.com/notargets/gojoint/host"
	"github.com/notargets/gojoint/joints"
	"github.com/notargets/gojoint/mesh"
	"github.com/notargets/gojoint/metrics"
	"github.com/notargets/gojoint/ordering"
	"github.com/notargets/gojoint/sides"
	"github.com/notargets/gojoint/types"
)

// Pass names used in reports, logs and metrics
const (
	PassLap         = "lap"
	PassT           = "tjoint"
	PassSides       = "sides"
	PassInferC      = "infer-c"
	PassOrder       = "order"
	PassExtremities = "extremities"
	PassMaterial    = "material"
	PassWeld        = "weld-groups"
)

type Runner struct {
	Host    host.Host
	Params  *InputParameters.RunParameters
	Logger  *zap.Logger
	Metrics *metrics.Registry // Optional
	RunID   uuid.UUID
}

// NewRunner validates the parameters once for all passes of the run
func NewRunner(h host.Host, rp *InputParameters.RunParameters, logger *zap.Logger, reg *metrics.Registry) (*Runner, error) {
	if err := rp.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		Host:    h,
		Params:  rp,
		Metrics: reg,
		RunID:   uuid.New(),
	}
	r.Logger = logger.With(zap.String("run", r.RunID.String()))
	return r, nil
}

func (r *Runner) query(name string) host.ElementQuery {
	return host.ElementQuery{
		Collection:  name,
		VisibleOnly: r.Params.Inputs.VisibleOnly,
		Recursive:   r.Params.Inputs.Recursive,
	}
}

// labeled reads the four label collections, returning the label union and the distinct
// elements in first-seen order
func (r *Runner) labeled() (elements []int, labels types.LabelSet, err error) {
	in := r.Params.Inputs
	labels = make(types.LabelSet)
	for _, src := range []struct {
		label types.Label
		name  string
	}{
		{types.LabelA, in.A}, {types.LabelB, in.B}, {types.LabelC, in.C}, {types.LabelT, in.T},
	} {
		var elems []int
		if elems, err = r.Host.Elements(r.query(src.name)); err != nil {
			return nil, nil, errors.Wrapf(err, "reading %s collection", src.label)
		}
		for _, e := range elems {
			if _, seen := labels[e]; !seen {
				elements = append(elements, e)
			}
		}
		labels.Assign(src.label, elems)
	}
	return
}

// reset deletes and recreates the output collections so a rerun never accumulates
func (r *Runner) reset(kind host.CollectionKind, outputs ...InputParameters.OutputRole) error {
	for _, o := range outputs {
		if err := r.Host.DeleteCollection(o.Name); err != nil && !errors.Is(err, host.ErrNoCollection) {
			return errors.Wrapf(err, "resetting %s", o.Name)
		}
		if _, err := r.Host.CreateCollection(o.Name, o.ID, kind); err != nil {
			return errors.Wrapf(err, "resetting %s", o.Name)
		}
	}
	return nil
}

func (r *Runner) emitElements(rep *Report, name string, elements []int) error {
	if len(elements) == 0 {
		return nil
	}
	if err := r.Host.AppendElements(name, elements); err != nil {
		return err
	}
	r.counted(rep, name, len(elements))
	return nil
}

func (r *Runner) emitNodes(rep *Report, name string, nodes []int) error {
	if len(nodes) == 0 {
		return nil
	}
	if err := r.Host.AppendNodes(name, nodes); err != nil {
		return err
	}
	r.counted(rep, name, len(nodes))
	return nil
}

func (r *Runner) counted(rep *Report, name string, n int) {
	rep.Outputs[name] += n
	if r.Metrics != nil {
		r.Metrics.RecordMembers(rep.Pass, name, n)
	}
}

// skip reports a component-local failure and lets the pass continue
func (r *Runner) skip(rep *Report, index int, comp []int, err error) {
	s := Skip{
		Component: index + 1,
		First:     comp[0],
		Size:      len(comp),
		Reason:    errors.Cause(err).Error(),
		Detail:    err.Error(),
	}
	rep.Skips = append(rep.Skips, s)
	r.Logger.Warn("component skipped",
		zap.String("pass", rep.Pass),
		zap.Int("component", s.Component),
		zap.Int("first_element", s.First),
		zap.Int("elements", s.Size),
		zap.String("reason", s.Reason),
		zap.Error(err))
	if r.Metrics != nil {
		r.Metrics.RecordSkip(rep.Pass, s.Reason)
	}
}

func (r *Runner) classified(rep *Report) {
	rep.Classified++
	if r.Metrics != nil {
		r.Metrics.RecordComponent(rep.Pass, metrics.Classified)
	}
}

func (r *Runner) begin(pass string) *Report {
	r.Logger.Debug("pass started", zap.String("pass", pass))
	return newReport(pass, r.RunID.String())
}

func (r *Runner) finish(rep *Report, err error) (*Report, error) {
	rep.Elapsed = time.Since(rep.Started)
	status := "ok"
	if err != nil {
		status = "error"
		r.Logger.Error("pass failed", zap.String("pass", rep.Pass), zap.Error(err))
	} else {
		r.Logger.Info("pass finished",
			zap.String("pass", rep.Pass),
			zap.Int("components", rep.Components),
			zap.Int("classified", rep.Classified),
			zap.Int("skipped", len(rep.Skips)),
			zap.Duration("elapsed", rep.Elapsed))
	}
	if r.Metrics != nil {
		r.Metrics.RecordPass(rep.Pass, status, rep.Elapsed)
	}
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *Runner) lapOutputs() (out []InputParameters.OutputRole) {
	for _, role := range joints.LapRoles {
		o, _ := r.Params.Role(role)
		out = append(out, o)
	}
	return
}

func (r *Runner) tOutputs() (out []InputParameters.OutputRole) {
	for _, role := range joints.TRoles {
		o, _ := r.Params.Role(role)
		out = append(out, o)
	}
	return
}

func (r *Runner) assign(rep *Report, a joints.Assignment) error {
	for _, role := range a.Roles() {
		o, _ := r.Params.Role(role)
		if err := r.emitElements(rep, o.Name, a[role]); err != nil {
			return err
		}
	}
	return nil
}

// classifier is ClassifyLap or ClassifyT reduced to the routed assignment
type classifier func(c *joints.Component, g joints.Geometry, eps float64) (joints.Assignment, error)

func lapClassifier(c *joints.Component, g joints.Geometry, eps float64) (joints.Assignment, error) {
	res, err := joints.ClassifyLap(c, g, eps)
	if err != nil {
		return nil, err
	}
	return res.Assignment, nil
}

func tClassifier(c *joints.Component, g joints.Geometry, eps float64) (joints.Assignment, error) {
	res, err := joints.ClassifyT(c, g, eps)
	if err != nil {
		return nil, err
	}
	return res.Assignment, nil
}

// ClassifyLap routes the A, B and C elements of every lap joint to the lap roles
func (r *Runner) ClassifyLap() (*Report, error) {
	rep := r.begin(PassLap)
	return r.finish(rep, r.classify(rep, lapClassifier, r.lapOutputs()))
}

// ClassifyT routes the A, B and T elements of every T joint to the T roles
func (r *Runner) ClassifyT() (*Report, error) {
	rep := r.begin(PassT)
	return r.finish(rep, r.classify(rep, tClassifier, r.tOutputs()))
}

func (r *Runner) classify(rep *Report, classify classifier, outputs []InputParameters.OutputRole) error {
	elements, labels, err := r.labeled()
	if err != nil {
		return err
	}
	topo := mesh.NewTopology(elements, r.Host.ElementNodes)
	comps := mesh.Components(topo.Elements, topo.Adjacency(InputParameters.Rule(r.Params.JointAdjacency)))
	rep.Components = len(comps)
	if err = r.reset(host.ElementCollection, outputs...); err != nil {
		return err
	}
	for i, comp := range comps {
		a, err := classify(joints.NewComponent(comp, topo, labels), r.Host, r.Params.Epsilon)
		if err != nil {
			if !joints.IsSkip(err) {
				return err
			}
			r.skip(rep, i, comp, err)
			continue
		}
		if err = r.assign(rep, a); err != nil {
			return err
		}
		r.classified(rep)
	}
	return nil
}

// strip reads the strip collection and partitions it by shared edges
func (r *Runner) strip() (elements []int, comps [][]int, err error) {
	if elements, err = r.Host.Elements(r.query(r.Params.Inputs.Strip)); err != nil {
		return nil, nil, errors.Wrap(err, "reading strip collection")
	}
	topo := mesh.NewTopology(elements, r.Host.ElementNodes)
	comps = mesh.Components(topo.Elements, topo.SharedEdgeAdjacency())
	return
}

// SplitSides writes the two rows of every strip component to the side outputs
func (r *Runner) SplitSides() (*Report, error) {
	rep := r.begin(PassSides)
	return r.finish(rep, r.splitSides(rep))
}

func (r *Runner) splitSides(rep *Report) error {
	elements, comps, err := r.strip()
	if err != nil {
		return err
	}
	rep.Components = len(comps)
	out := r.Params.Sides
	if err = r.reset(host.ElementCollection, out.Side1, out.Side2); err != nil {
		return err
	}
	topo := mesh.NewTopology(elements, r.Host.ElementNodes)
	for i, comp := range comps {
		s1, s2 := sides.Split(comp, topo)
		if len(s2) == 0 {
			r.skip(rep, i, comp, errors.Wrapf(sides.ErrNoSecondSide, "all %d elements on one row", len(s1)))
			continue
		}
		if err = r.emitElements(rep, out.Side1.Name, s1); err != nil {
			return err
		}
		if err = r.emitElements(rep, out.Side2.Name, s2); err != nil {
			return err
		}
		r.classified(rep)
	}
	return nil
}

// InferSideC rebuilds the C output from the visible shells outside T, A and B that share an
// edge with T but none with A or B
func (r *Runner) InferSideC() (*Report, error) {
	rep := r.begin(PassInferC)
	return r.finish(rep, r.inferSideC(rep))
}

func (r *Runner) inferSideC(rep *Report) error {
	in := r.Params.Inputs
	sets := make(map[string][]int, 3)
	for _, name := range []string{in.T, in.A, in.B} {
		elems, err := r.Host.Elements(r.query(name))
		if err != nil {
			return errors.Wrapf(err, "reading %s collection", name)
		}
		sets[name] = elems
	}
	candidates, err := r.Host.Elements(host.ElementQuery{VisibleOnly: true})
	if err != nil {
		return errors.Wrap(err, "reading visible shells")
	}
	out := r.Params.Sides.C
	if err = r.reset(host.ElementCollection, out); err != nil {
		return err
	}
	sideC := sides.InferC(candidates, sets[in.T], sets[in.A], sets[in.B], r.Host.ElementNodes)
	rep.Components = len(candidates)
	if err = r.emitElements(rep, out.Name, sideC); err != nil {
		return err
	}
	for range sideC {
		r.classified(rep)
	}
	return nil
}

// OrderChains appends every component of the chain collection to the ordered output in
// visiting order
func (r *Runner) OrderChains() (*Report, error) {
	rep := r.begin(PassOrder)
	return r.finish(rep, r.orderChains(rep))
}

func (r *Runner) orderChains(rep *Report) error {
	elements, err := r.Host.Elements(r.query(r.Params.Inputs.Chain))
	if err != nil {
		return errors.Wrap(err, "reading chain collection")
	}
	topo := mesh.NewTopology(elements, r.Host.ElementNodes)
	adj := topo.Adjacency(InputParameters.Rule(r.Params.OrderAdjacency))
	comps := mesh.Components(topo.Elements, adj)
	rep.Components = len(comps)
	if err = r.reset(host.ElementCollection, r.Params.Ordered); err != nil {
		return err
	}
	for i, comp := range comps {
		res := ordering.Order(comp, adj)
		if res.Inserted > 0 {
			rep.Inserted += res.Inserted
			r.Logger.Info("elements attached after walk",
				zap.String("pass", rep.Pass),
				zap.Int("component", i+1),
				zap.Stringer("kind", res.Kind),
				zap.Int("inserted", res.Inserted))
		}
		if err = r.emitElements(rep, r.Params.Ordered.Name, res.Elements); err != nil {
			return err
		}
		r.classified(rep)
	}
	return nil
}

// ExtractExtremities writes the tip nodes of every chain in the extremity collection to the two
// end outputs and all other chain nodes to the remainder. With junctionFiltered only nodes of
// elements flagged by the host's triple-junction check qualify as tips.
func (r *Runner) ExtractExtremities(junctionFiltered bool) (*Report, error) {
	rep := r.begin(PassExtremities)
	return r.finish(rep, r.extractExtremities(rep, junctionFiltered))
}

func (r *Runner) extractExtremities(rep *Report, junctionFiltered bool) error {
	elements, err := r.Host.Elements(r.query(r.Params.Inputs.Extremity))
	if err != nil {
		return errors.Wrap(err, "reading extremity collection")
	}
	var junction map[int]bool
	if junctionFiltered {
		flagged, err := r.Host.TripleJunctionCheck(nil)
		if err != nil {
			return errors.Wrap(err, "triple junction check")
		}
		junction = extremity.JunctionNodes(flagged, r.Host.ElementNodes)
	}
	topo := mesh.NewTopology(elements, r.Host.ElementNodes)
	groups := extremity.Groups(topo.Elements, topo)
	rep.Components = len(groups)
	out := r.Params.Extremity
	if err = r.reset(host.NodeCollection, out.End1, out.End2, out.Remainder); err != nil {
		return err
	}
	for i, g := range groups {
		tips, err := extremity.Extract(g, topo, junction)
		switch {
		case errors.Is(err, extremity.ErrTooFewEnds):
			r.skip(rep, i, g, err)
			continue
		case errors.Is(err, extremity.ErrNoFreeNode):
			r.skip(rep, i, g, err)
		case err != nil:
			return err
		default:
			r.classified(rep)
		}
		for k, name := range []string{out.End1.Name, out.End2.Name} {
			if n := tips.Nodes[k]; n != 0 {
				if err = r.emitNodes(rep, name, []int{n}); err != nil {
					return err
				}
			}
		}
		if err = r.emitNodes(rep, out.Remainder.Name, tips.Remainder); err != nil {
			return err
		}
	}
	return nil
}
