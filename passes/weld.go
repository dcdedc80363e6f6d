package passes

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/notargets/gojoint/InputParameters"
	"github.com/notargets/gojoint/host"
	"github.com/notargets/gojoint/joints"
	"github.com/notargets/gojoint/mesh"
	"github.com/notargets/gojoint/ordering"
)

// CollectMaterial rebuilds the weld collection from every shell of the weld material
func (r *Runner) CollectMaterial() (*Report, error) {
	rep := r.begin(PassMaterial)
	return r.finish(rep, r.collectMaterial(rep))
}

func (r *Runner) collectMaterial(rep *Report) error {
	w := r.Params.Weld
	elements, err := r.Host.MaterialElements(w.Material)
	if err != nil {
		return err
	}
	if err = r.reset(host.ElementCollection, w.Collection); err != nil {
		return err
	}
	rep.Components = 1
	if err = r.emitElements(rep, w.Collection.Name, elements); err != nil {
		return err
	}
	r.classified(rep)
	return nil
}

// ClassifyWeldGroups orders each connected group of the weld collection and appends groups of
// three or more elements to the side or center output. Groups that fit neither are reported as
// critical with their elements; shorter groups are left alone.
func (r *Runner) ClassifyWeldGroups() (*Report, error) {
	rep := r.begin(PassWeld)
	return r.finish(rep, r.classifyWeldGroups(rep))
}

func (r *Runner) classifyWeldGroups(rep *Report) error {
	w := r.Params.Weld
	welds, err := r.Host.Elements(r.query(w.Collection.Name))
	if err != nil {
		return errors.Wrap(err, "reading weld collection")
	}
	visible, err := r.Host.Elements(host.ElementQuery{VisibleOnly: true})
	if err != nil {
		return errors.Wrap(err, "reading visible shells")
	}
	flagged, err := r.Host.TripleJunctionCheck(nil)
	if err != nil {
		return errors.Wrap(err, "triple junction check")
	}
	wc := joints.WeldContext{
		Owners:    mesh.NewTopology(visible, r.Host.ElementNodes),
		NodesOf:   r.Host.ElementNodes,
		Weld:      mesh.MemberSet(welds),
		Junction:  mesh.MemberSet(flagged),
		Geometry:  r.Host,
		Tolerance: w.Tolerance,
	}

	topo := mesh.NewTopology(welds, r.Host.ElementNodes)
	adj := topo.AnyNodeAdjacency()
	comps := mesh.Components(topo.Elements, adj)
	rep.Components = len(comps)
	outputs := map[joints.WeldClass]InputParameters.OutputRole{
		joints.WeldSide:   w.Side,
		joints.WeldCenter: w.Center,
	}
	if err = r.reset(host.ElementCollection, w.Side, w.Center); err != nil {
		return err
	}

	grouped := make(map[joints.WeldClass][][]int, len(joints.WeldClasses))
	for _, class := range joints.WeldClasses {
		grouped[class] = nil
	}
	for i, comp := range comps {
		ordered := ordering.Order(comp, adj).Elements
		if len(ordered) < 3 {
			r.Logger.Debug("weld group too short",
				zap.String("pass", rep.Pass), zap.Int("component", i+1), zap.Int("elements", len(ordered)))
			continue
		}
		g, err := joints.ClassifyWeldGroup(ordered, wc)
		if err != nil {
			if !joints.IsSkip(err) {
				return err
			}
			r.skip(rep, i, ordered, err)
			rep.Skips[len(rep.Skips)-1].Members = ordered
			continue
		}
		r.Logger.Debug("weld group classified",
			zap.String("pass", rep.Pass),
			zap.Int("component", i+1),
			zap.Stringer("class", g.Class),
			zap.Int("middle", g.Middle),
			zap.Float64("main", g.Main),
			zap.Float64("secondary", g.Secondary))
		grouped[g.Class] = append(grouped[g.Class], ordered)
		r.classified(rep)
	}
	for _, class := range joints.WeldClasses {
		for _, group := range grouped[class] {
			if err = r.emitElements(rep, outputs[class].Name, group); err != nil {
				return err
			}
		}
	}
	return nil
}
