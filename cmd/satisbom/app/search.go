package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Perococco/satisbom/pkg/infrastructure/catalog"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search PATTERN",
		Short: "Print the recipes and items whose id contains the pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := catalog.Load()
			if err != nil {
				return err
			}
			pattern := strings.ToLower(args[0])
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "=== Recipes ===")
			for _, recipe := range book.Recipes() {
				if strings.Contains(strings.ToLower(recipe.ID()), pattern) {
					fmt.Fprintf(out, "%-26s %s\n", recipe.ID(), recipe.String())
				}
			}

			fmt.Fprintln(out, "=== Items ===")
			itemIDs := make([]string, 0, len(book.Items()))
			for id := range book.Items() {
				if strings.Contains(strings.ToLower(id), pattern) {
					itemIDs = append(itemIDs, id)
				}
			}
			sort.Strings(itemIDs)
			for _, id := range itemIDs {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}
}
