// Package output renders a solved bill of materials for the terminal and
// delegates graph rasterization to graphviz.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/Perococco/satisbom/pkg/domain/amount"
	"github.com/Perococco/satisbom/pkg/domain/entities"
)

var (
	recipeNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	itemStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	buildingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// BomPrinter writes the human-readable BoM report.
type BomPrinter struct {
	w             io.Writer
	format        amount.Format
	showLeftovers bool
}

// NewBomPrinter creates a printer. When showLeftovers is false the byproduct
// section is omitted.
func NewBomPrinter(w io.Writer, format amount.Format, showLeftovers bool) *BomPrinter {
	return &BomPrinter{w: w, format: format, showLeftovers: showLeftovers}
}

// Print writes the full report: targets, requirements, leftovers, the recipe
// table and the building table with power usage.
func (p *BomPrinter) Print(bom *entities.Bom) error {
	if err := p.printItems("To get:", bom.Targets); err != nil {
		return err
	}
	if err := p.printItems("You need:", bom.Requirements); err != nil {
		return err
	}
	if p.showLeftovers {
		if err := p.printItems("Leftovers:", bom.Leftovers); err != nil {
			return err
		}
	}
	if err := p.printRecipes(bom.Recipes); err != nil {
		return err
	}
	return p.printBuildings(bom.Buildings)
}

func (p *BomPrinter) printItems(header string, items []entities.ItemAmount) error {
	if len(items) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(p.w, header); err != nil {
		return err
	}
	for _, ia := range items {
		_, err := fmt.Fprintf(p.w, "%8s - %s\n", p.format.Format(ia.Amount), itemStyle.Render(ia.Item.ID()))
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *BomPrinter) printRecipes(recipes []entities.RecipeAmount) error {
	if _, err := fmt.Fprintln(p.w, "=== Recipes ==="); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(p.w, "  %7s - %-26s %3s %7s Detail\n", "#", "Name", "sec", "# Cons."); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(p.w, "---------------------------------------------------------"); err != nil {
		return err
	}
	for _, ra := range recipes {
		buildingsNeeded := ra.Amount / ra.Recipe.NbPerMinute()
		_, err := fmt.Fprintf(p.w, "  %7.7s - %-26s %3d %7s %s\n",
			p.format.Format(ra.Amount),
			recipeNameStyle.Render(ra.Recipe.ID()),
			ra.Recipe.Duration(),
			p.format.Format(buildingsNeeded),
			ra.Recipe.Reaction(ra.Amount),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *BomPrinter) printBuildings(buildings []entities.BuildingCount) error {
	if _, err := fmt.Fprintln(p.w, "=== Buildings ==="); err != nil {
		return err
	}
	var total int32
	for _, bc := range buildings {
		power := bc.Building.PowerUsage() * int32(bc.Count)
		total += power
		_, err := fmt.Fprintf(p.w, "%8d - %13s (%9d MW)\n", bc.Count, buildingStyle.Render(bc.Building.ID()), power)
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(p.w, "%8s   %13s (%9d MW)\n", "", "Total", total)
	return err
}
