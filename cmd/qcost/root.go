package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haldane/qcost/internal/application"
)

// rootFlags holds options shared by every subcommand.
type rootFlags struct {
	configPath string
}

// newRootCmd builds the qcost command tree.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "qcost",
		Short: "Fault-tolerant quantum resource estimator",
		Long: "qcost estimates the logical and physical hardware resources " +
			"(qubits, gates, runtime, error-correction overhead) required to " +
			"run quantum algorithms for a chosen application domain.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"path to an engine configuration YAML file")

	root.AddCommand(
		newEstimateCmd(flags),
		newSweepCmd(flags),
		newDomainsCmd(),
		newPrimitivesCmd(),
		newServeCmd(flags),
	)
	return root
}

// loadConfig resolves the engine configuration from the --config flag,
// falling back to defaults when unset.
func loadConfig(flags *rootFlags) (application.EngineConfig, error) {
	if flags.configPath == "" {
		return application.DefaultEngineConfig(), nil
	}
	cfg, err := application.LoadEngineConfig(flags.configPath)
	if err != nil {
		return application.EngineConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
