package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notargets/gojoint/InputParameters"
	"github.com/notargets/gojoint/host"
	"github.com/notargets/gojoint/mesh/readers"
	"github.com/notargets/gojoint/metrics"
	"github.com/notargets/gojoint/passes"
	"github.com/notargets/gojoint/store"
)

const exampleParameters = `
########################################
Title: "Flange welds"
Epsilon: 1.e-9
JointAdjacency: AnyNode     # or SharedEdge
OrderAdjacency: SharedEdge
Inputs:
  A: A
  B: B
  C: C
  T: T
  Strip: STRIP
  Chain: CHAIN
  Extremity: EXTREMITY
Lap:
  M453: {Name: LAP_C_POS, ID: 453}
Weld:
  Material: SHELL_MAT       # Gmsh meshes name materials by elementary entity tag
  Tolerance: 5              # degrees
########################################
`

// passFunc runs one pass of a prepared runner
type passFunc func(r *passes.Runner) (*passes.Report, error)

// runPass reads the mesh and parameters, restores persisted collections, runs the pass and
// then saves state, metrics and the report as requested by the flags
func runPass(ctx context.Context, run passFunc) (err error) {
	gridFile := viper.GetString("gridFile")
	if gridFile == "" {
		return fmt.Errorf("must supply a grid file (-F, --gridFile) in SU2 (.su2) or Gmsh (.msh) format")
	}
	m, err := readers.ReadMeshFile(gridFile)
	if err != nil {
		return err
	}
	rp := InputParameters.NewRunParameters()
	if ipFile := viper.GetString("inputParameters"); ipFile != "" {
		if rp, err = InputParameters.ReadFile(ipFile); err != nil {
			fmt.Printf("Example File:%s\n", exampleParameters)
			return err
		}
	}
	if viper.GetBool("verbose") {
		rp.Print()
	}

	sess := host.NewSession(m)
	var st *store.Store
	if statePath := viper.GetString("state"); statePath != "" {
		if st, err = store.Open(ctx, statePath); err != nil {
			return err
		}
		defer func() {
			if cerr := st.Close(); err == nil {
				err = cerr
			}
		}()
		var n int
		if n, err = st.Restore(ctx, sess); err != nil {
			return err
		}
		logger.Debug("restored collections", zap.String("state", statePath), zap.Int("collections", n))
	}

	reg := metrics.NewRegistry()
	runner, err := passes.NewRunner(sess, rp, logger, reg)
	if err != nil {
		return err
	}
	rep, err := run(runner)
	if metricsFile := viper.GetString("metrics-file"); metricsFile != "" {
		if werr := reg.WriteTextfile(metricsFile); werr != nil && err == nil {
			err = werr
		}
	}
	if err != nil {
		return err
	}
	rep.Print()

	if st != nil {
		if err = st.SaveCollections(ctx, sess.Collections()); err != nil {
			return err
		}
		if err = st.RecordRun(ctx, store.Run{
			ID:         runner.RunID,
			Pass:       rep.Pass,
			Started:    rep.Started,
			Components: rep.Components,
			Skipped:    len(rep.Skips),
		}); err != nil {
			return err
		}
	}
	if reportFile := viper.GetString("report"); reportFile != "" {
		var data []byte
		if data, err = rep.YAML(); err != nil {
			return err
		}
		if err = os.WriteFile(reportFile, data, 0644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

func passCommand(use, short string, run passFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(context.Background(), run)
		},
	}
}
