package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haldane/qcost/internal/application"
)

// newSweepCmd builds the sweep subcommand: estimates across a range
// of values for one axis, printed as CSV for plotting.
func newSweepCmd(root *rootFlags) *cobra.Command {
	flags := &estimateFlags{}
	var (
		axis        string
		values      []float64
		parallelism int
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Estimate across a range of system sizes or precisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}

			base, err := buildParameters(flags)
			if err != nil {
				return err
			}

			pipeline, err := application.NewEstimationPipeline(cfg, nil)
			if err != nil {
				return err
			}

			runner := application.NewSweepRunner(pipeline, parallelism)
			points, err := runner.Run(cmd.Context(), base, application.SweepAxis(axis), values)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "value,feasible,logical_qubits,physical_qubits,total_gates,circuit_depth,code_distance,runtime_seconds")
			for i, pt := range points {
				est := pt.Estimate
				fmt.Fprintf(out, "%g,%t,%d,%d,%d,%d,%d,%g\n",
					values[i], est.Feasible, est.LogicalQubits, est.PhysicalQubits,
					est.TotalGates, est.CircuitDepth, est.CodeDistance,
					est.EstimatedRuntime.Seconds)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.domain, "domain", "d", "", "application domain (required)")
	cmd.Flags().IntVarP(&flags.systemSize, "system-size", "n", 0, "base problem size N")
	cmd.Flags().Float64VarP(&flags.precision, "precision", "e", 0, "base target precision ε")
	cmd.Flags().Float64VarP(&flags.physicalErrorRate, "error-rate", "p", 0, "physical error rate (required)")
	cmd.Flags().Float64Var(&flags.hoppingParameter, "hopping", 0, "Fermi-Hubbard hopping parameter t")
	cmd.Flags().Float64Var(&flags.interactionStrength, "interaction", 0, "Fermi-Hubbard interaction strength U")
	cmd.Flags().StringVar(&flags.hardware, "hardware", "", "hardware profile: superconducting or trapped_ion")
	cmd.Flags().StringVar(&axis, "axis", string(application.SweepSystemSize),
		"axis to sweep: system_size or precision")
	cmd.Flags().Float64SliceVar(&values, "values", nil, "comma-separated axis values (required)")
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "max concurrent estimations (0 = NumCPU)")

	_ = cmd.MarkFlagRequired("domain")
	_ = cmd.MarkFlagRequired("error-rate")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}
