package app

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Perococco/satisbom/pkg/application/dto"
	"github.com/Perococco/satisbom/pkg/application/services/bomgraph"
	"github.com/Perococco/satisbom/pkg/application/services/planner"
	"github.com/Perococco/satisbom/pkg/domain/amount"
	"github.com/Perococco/satisbom/pkg/domain/entities"
	"github.com/Perococco/satisbom/pkg/domain/services"
	"github.com/Perococco/satisbom/pkg/infrastructure/catalog"
	"github.com/Perococco/satisbom/pkg/interfaces/cli/output"
)

type bomOptions struct {
	inputFile     string
	available     string
	filterSpec    string
	format        string
	outputFile    string
	ratioAmounts  bool
	useAbundances bool
	showLeftovers bool
}

func newBomCmd() *cobra.Command {
	opts := bomOptions{}

	cmd := &cobra.Command{
		Use:   "bom [flags] REACTANT...",
		Short: "Compute the bill of materials for the requested targets",
		Long: `Compute the bill of materials for the requested targets. Each REACTANT
is written N.item_id, a per-minute rate and an item id, e.g. 60.iron_plate.
With -i the problem is read from a JSON file and the command-line flags
override its fields.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBom(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.inputFile, "input", "i", "", "problem input JSON file")
	flags.StringVarP(&opts.available, "available", "a", "", "available items, comma-separated N.item_id")
	flags.StringVarP(&opts.filterSpec, "filter", "f", "", "recipe filter, comma-separated tokens")
	flags.StringVarP(&opts.format, "format", "F", "text", "output format: text, dot or png")
	flags.StringVarP(&opts.outputFile, "output", "o", "", "output file (default stdout)")
	flags.BoolVarP(&opts.ratioAmounts, "proper-fractions", "p", false, "format amounts as rational approximations")
	flags.BoolVarP(&opts.useAbundances, "use-abundances", "u", false, "weight extraction by resource abundance")
	flags.BoolVarP(&opts.showLeftovers, "with-leftovers", "w", true, "render byproduct leftovers")

	return cmd
}

func runBom(cmd *cobra.Command, opts bomOptions, args []string) error {
	input, err := assembleInput(cmd, opts, args)
	if err != nil {
		return err
	}

	book, err := catalog.Load()
	if err != nil {
		return err
	}

	bom, err := planner.Solve(input, book)
	if err != nil {
		return err
	}

	format := amount.FormatDecimal
	if opts.ratioAmounts {
		format = amount.FormatRatio
	}

	out, closeOut, err := openOutput(opts.outputFile)
	if err != nil {
		return err
	}
	defer closeOut()

	switch opts.format {
	case "text":
		return output.NewBomPrinter(out, format, opts.showLeftovers).Print(bom)
	case "dot":
		source, err := bomgraph.New(bom, format, opts.showLeftovers).DOT()
		if err != nil {
			return err
		}
		_, err = out.Write(source)
		return err
	case "png":
		source, err := bomgraph.New(bom, format, opts.showLeftovers).DOT()
		if err != nil {
			return err
		}
		return output.RenderPNG(source, out)
	default:
		return fmt.Errorf("unsupported output format '%s'", opts.format)
	}
}

// assembleInput builds the problem: the -i file or the default input first,
// then every explicitly set flag and the positional targets override it.
func assembleInput(cmd *cobra.Command, opts bomOptions, args []string) (planner.ProblemInput, error) {
	input := planner.DefaultProblemInput()

	if opts.inputFile != "" {
		data, err := os.ReadFile(opts.inputFile)
		if err != nil {
			return planner.ProblemInput{}, err
		}
		d, err := dto.UnmarshalProblemInput(data)
		if err != nil {
			return planner.ProblemInput{}, err
		}
		input, err = d.ToProblemInput()
		if err != nil {
			return planner.ProblemInput{}, err
		}
	}

	if len(args) > 0 {
		targets, err := parseReactants(args)
		if err != nil {
			return planner.ProblemInput{}, err
		}
		input.TargetItems = targets
	}
	if cmd.Flags().Changed("available") {
		available, err := parseReactants(splitList(opts.available))
		if err != nil {
			return planner.ProblemInput{}, err
		}
		input.AvailableItems = available
	}
	if cmd.Flags().Changed("filter") {
		filter, err := services.ParseRecipeFilter(opts.filterSpec)
		if err != nil {
			return planner.ProblemInput{}, err
		}
		input.Filter = filter
	}
	if cmd.Flags().Changed("use-abundances") {
		input.UseAbundances = opts.useAbundances
	}

	return input, nil
}

// parseReactants parses "N.item_id" tokens into an id -> rate map.
func parseReactants(tokens []string) (map[string]uint32, error) {
	reactants := make(map[string]uint32, len(tokens))
	for _, token := range tokens {
		quantity, itemID, ok := strings.Cut(token, ".")
		if !ok {
			return nil, entities.TargetParseError{Token: token}
		}
		n, err := strconv.ParseUint(quantity, 10, 32)
		if err != nil || itemID == "" {
			return nil, entities.TargetParseError{Token: token}
		}
		reactants[itemID] = uint32(n)
	}
	return reactants, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
