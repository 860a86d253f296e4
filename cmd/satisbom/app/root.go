// Package app wires the satisbom subcommands.
package app

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the satisbom command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "satisbom",
		Short: "Compute optimal bills of materials for factory production lines",
		Long: `satisbom plans a production line: given target items with per-minute
rates, items already on hand and a recipe filter, it computes the recipe
rates, extracted resources, byproducts and buildings that meet the targets
while extracting as little as possible.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newBomCmd(), newDumpCmd(), newSearchCmd())
	return root
}
