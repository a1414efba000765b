package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haldane/qcost/internal/application"
	"github.com/haldane/qcost/internal/domain"
)

// estimateFlags holds the parameter flags of the estimate command.
type estimateFlags struct {
	domain              string
	systemSize          int
	precision           float64
	physicalErrorRate   float64
	hoppingParameter    float64
	interactionStrength float64
	hardware            string
}

// newEstimateCmd builds the estimate subcommand: one pipeline run,
// rendered as a table.
func newEstimateCmd(root *rootFlags) *cobra.Command {
	flags := &estimateFlags{}

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate resources for one parameter set",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}

			params, err := buildParameters(flags)
			if err != nil {
				return err
			}

			pipeline, err := application.NewEstimationPipeline(cfg, nil)
			if err != nil {
				return err
			}

			est, err := pipeline.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			printEstimate(cmd, est)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.domain, "domain", "d", "", "application domain (required)")
	cmd.Flags().IntVarP(&flags.systemSize, "system-size", "n", 0, "problem size N (required)")
	cmd.Flags().Float64VarP(&flags.precision, "precision", "e", 0, "target precision ε (required)")
	cmd.Flags().Float64VarP(&flags.physicalErrorRate, "error-rate", "p", 0, "physical error rate (required)")
	cmd.Flags().Float64Var(&flags.hoppingParameter, "hopping", 0, "Fermi-Hubbard hopping parameter t")
	cmd.Flags().Float64Var(&flags.interactionStrength, "interaction", 0, "Fermi-Hubbard interaction strength U")
	cmd.Flags().StringVar(&flags.hardware, "hardware", "", "hardware profile: superconducting or trapped_ion")

	_ = cmd.MarkFlagRequired("domain")
	_ = cmd.MarkFlagRequired("system-size")
	_ = cmd.MarkFlagRequired("precision")
	_ = cmd.MarkFlagRequired("error-rate")
	return cmd
}

// buildParameters converts CLI flags into a Parameters record.
func buildParameters(flags *estimateFlags) (domain.Parameters, error) {
	d, err := domain.ParseDomain(flags.domain)
	if err != nil {
		return domain.Parameters{}, err
	}
	return domain.Parameters{
		Domain:              d,
		SystemSize:          flags.systemSize,
		Precision:           flags.precision,
		PhysicalErrorRate:   flags.physicalErrorRate,
		HoppingParameter:    flags.hoppingParameter,
		InteractionStrength: flags.interactionStrength,
		Hardware:            domain.HardwareProfile(flags.hardware),
	}, nil
}

// printEstimate renders an estimate as an aligned table with grouped
// and compact numbers.
func printEstimate(cmd *cobra.Command, est domain.ResourceEstimate) {
	p := domain.Printer()
	out := cmd.OutOrStdout()

	if !est.Feasible {
		fmt.Fprintf(out, "Feasible:        no\n")
		fmt.Fprintf(out, "Reason:          %s\n", est.Reason)
		fmt.Fprintf(out, "Logical qubits:  %s\n", p.Sprintf("%d", est.LogicalQubits))
		fmt.Fprintf(out, "Total gates:     %s (%s)\n",
			p.Sprintf("%d", est.TotalGates), domain.FormatCount(est.TotalGates))
		fmt.Fprintf(out, "Circuit depth:   %s\n", p.Sprintf("%d", est.CircuitDepth))
		return
	}

	fmt.Fprintf(out, "Feasible:        yes\n")
	fmt.Fprintf(out, "Logical qubits:  %s\n", p.Sprintf("%d", est.LogicalQubits))
	fmt.Fprintf(out, "Physical qubits: %s (%s)\n",
		p.Sprintf("%d", est.PhysicalQubits), domain.FormatCount(est.PhysicalQubits))
	fmt.Fprintf(out, "Total gates:     %s (%s)\n",
		p.Sprintf("%d", est.TotalGates), domain.FormatCount(est.TotalGates))
	fmt.Fprintf(out, "Circuit depth:   %s\n", p.Sprintf("%d", est.CircuitDepth))
	fmt.Fprintf(out, "Code distance:   %d\n", est.CodeDistance)
	fmt.Fprintf(out, "Space overhead:  %dx\n", est.SpaceOverhead)
	fmt.Fprintf(out, "Time overhead:   %dx\n", est.TimeOverhead)
	fmt.Fprintf(out, "Runtime:         %.3g %s\n", est.EstimatedRuntime.Value, est.EstimatedRuntime.Unit)
	fmt.Fprintf(out, "Gate rate:       %.3g gates/s\n", est.GatesPerSecond)
	fmt.Fprintf(out, "Alpha:           %.4g\n", est.BlockEncodingAlpha)
	if est.Capped {
		fmt.Fprintf(out, "Note:            estimate too large to display precisely; counts are lower bounds\n")
	}

	if len(est.ErrorBudget) > 0 {
		fmt.Fprintf(out, "Error budget:\n")
		for _, stage := range est.Stages {
			fmt.Fprintf(out, "  %-24s %5.1f%%\n", stage.Stage, est.ErrorBudget[stage.Stage]*100)
		}
	}
}
