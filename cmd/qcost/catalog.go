package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haldane/qcost/internal/application"
	"github.com/haldane/qcost/internal/domain"
)

// newDomainsCmd builds the domains subcommand listing the supported
// application domains.
func newDomainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "List supported application domains",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, info := range domain.DomainCatalog() {
				fmt.Fprintf(out, "%s (%s)\n", info.Name, info.Domain)
				fmt.Fprintf(out, "  %s\n", info.Description)
				fmt.Fprintf(out, "  Complexity: %s\n", info.Complexity)
				fmt.Fprintf(out, "  Classical challenge: %s\n", info.ClassicalChallenge)
				fmt.Fprintf(out, "  Primitives: %v\n", info.Primitives)
			}
			return nil
		},
	}
}

// newPrimitivesCmd builds the primitives subcommand listing the
// algorithmic primitive catalog.
func newPrimitivesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "primitives",
		Short: "List algorithmic primitives and their cost scaling",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, info := range application.PrimitiveCatalog() {
				fmt.Fprintf(out, "%s (%s)\n", info.Name, info.Type)
				fmt.Fprintf(out, "  %s\n", info.Description)
				fmt.Fprintf(out, "  Complexity: %s\n", info.Complexity)
			}
			return nil
		},
	}
}
