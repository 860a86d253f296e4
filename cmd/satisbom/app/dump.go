package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Perococco/satisbom/pkg/application/dto"
	"github.com/Perococco/satisbom/pkg/application/services/planner"
)

func newDumpCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Serialize the default problem input as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := dto.FromProblemInput(planner.DefaultProblemInput()).Marshal()
			if err != nil {
				return err
			}
			data = append(data, '\n')

			if outputFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(outputFile, data, 0o644)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default stdout)")
	return cmd
}
