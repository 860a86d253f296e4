package planner

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/Perococco/satisbom/pkg/domain/entities"
)

// constraintRow is one linear constraint over the recipe variables. An
// inequality row reads coeffs·x <= rhs and receives a slack variable; an
// equality row reads coeffs·x == rhs.
type constraintRow struct {
	coeffs []float64
	rhs    float64
	ineq   bool
}

// Solve filters the book with the input's recipe filter, formulates the
// linear program, minimizes it and evaluates the solution into a BoM.
func Solve(input ProblemInput, book entities.Book) (*entities.Bom, error) {
	filtered := book
	if input.Filter != nil {
		filtered = book.Filter(input.Filter.Matches)
	}

	p, err := formulate(input, filtered)
	if err != nil {
		return nil, err
	}

	rates, err := p.minimize()
	if err != nil {
		return nil, err
	}

	return p.assemble(rates), nil
}

// constraints classifies every balance expression E(i):
//   - resources must not accumulate (E <= 0) and respect their extraction
//     cap when it is positive (E >= -cap); a zero cap adds no row;
//   - targeted products must hit the requested rate exactly (E == target);
//   - other products must never go negative (E >= 0).
//
// The constant (available stock) part of E moves to the right-hand side.
func (p *problem) constraints() []constraintRow {
	rows := make([]constraintRow, 0, 2*len(p.items))
	for i := range p.items {
		coeffs := p.balance[i]
		avail := p.available[i]

		if resource, ok := entities.AsResource(p.items[i]); ok {
			rows = append(rows, constraintRow{coeffs: coeffs, rhs: -avail, ineq: true})
			if mq, capped := resource.MaxQtyPerMinute(); capped && mq > 0 {
				rows = append(rows, constraintRow{coeffs: negate(coeffs), rhs: mq + avail, ineq: true})
			}
			continue
		}

		if target, ok := p.target[i]; ok {
			rows = append(rows, constraintRow{coeffs: coeffs, rhs: target - avail})
			continue
		}
		rows = append(rows, constraintRow{coeffs: negate(coeffs), rhs: avail, ineq: true})
	}
	return rows
}

// minimize assembles the standard-form program (equalities over the recipe
// variables plus one slack per inequality, everything non-negative) and
// runs the simplex method. Solver failures surface as ResolutionError.
func (p *problem) minimize() ([]float64, error) {
	n := len(p.recipes)
	rows, err := liveRows(p.constraints())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return make([]float64, n), nil
	}

	slacks := 0
	for _, row := range rows {
		if row.ineq {
			slacks++
		}
	}
	cols := n + slacks

	c := append(p.objective(), make([]float64, slacks)...)
	a := mat.NewDense(len(rows), cols, nil)
	b := make([]float64, len(rows))

	slack := 0
	for r, row := range rows {
		coeffs := row.coeffs
		rhs := row.rhs
		sign := 1.0
		if rhs < 0 {
			// Simplex wants b >= 0; negating the whole row keeps the
			// constraint equivalent.
			sign = -1
			rhs = -rhs
		}
		for j, coeff := range coeffs {
			a.Set(r, j, sign*coeff)
		}
		if row.ineq {
			a.Set(r, n+slack, sign)
			slack++
		}
		b[r] = rhs
	}

	_, x, err := lp.Simplex(c, a, b, 0, nil)
	if err != nil {
		return nil, entities.ResolutionError{Cause: err}
	}
	return x[:n], nil
}

// liveRows drops constraints with no variable involvement: a zero row is
// either trivially satisfied or makes the whole program infeasible, and the
// simplex rejects zero rows outright.
func liveRows(rows []constraintRow) ([]constraintRow, error) {
	live := rows[:0]
	for _, row := range rows {
		if !isZero(row.coeffs) {
			live = append(live, row)
			continue
		}
		feasible := row.rhs >= -entities.Eps
		if !row.ineq {
			feasible = entities.IsNil(row.rhs)
		}
		if !feasible {
			return nil, entities.ResolutionError{Cause: lp.ErrInfeasible}
		}
	}
	return live, nil
}

func isZero(coeffs []float64) bool {
	for _, c := range coeffs {
		if c != 0 {
			return false
		}
	}
	return true
}

// assemble translates the solved rates into a BoM: used recipes above the
// dust threshold in book order, and every balance value classified as
// requirement (resources, extraction volume), target or leftover.
func (p *problem) assemble(rates []float64) *entities.Bom {
	var recipes []entities.RecipeAmount
	for j, recipe := range p.recipes {
		if !entities.IsNil(rates[j]) {
			recipes = append(recipes, entities.RecipeAmount{Recipe: recipe, Amount: rates[j]})
		}
	}

	var available []entities.ItemAmount
	for _, itemID := range sortedKeys(p.input.AvailableItems) {
		i := p.itemIndex[itemID]
		available = append(available, entities.ItemAmount{
			Item:   p.items[i],
			Amount: float64(p.input.AvailableItems[itemID]),
		})
	}

	var targets, requirements, leftovers []entities.ItemAmount
	for i, item := range p.items {
		amount := p.evaluate(i, rates)
		if entities.IsNil(amount) {
			continue
		}
		_, targeted := p.target[i]
		switch {
		case isResource(item):
			requirements = append(requirements, entities.ItemAmount{Item: item, Amount: -amount})
		case targeted:
			targets = append(targets, entities.ItemAmount{Item: item, Amount: amount})
		default:
			leftovers = append(leftovers, entities.ItemAmount{Item: item, Amount: amount})
		}
	}

	return entities.NewBom(targets, available, requirements, leftovers, recipes)
}

func isResource(item entities.Item) bool {
	_, ok := entities.AsResource(item)
	return ok
}

func negate(coeffs []float64) []float64 {
	neg := make([]float64, len(coeffs))
	for i, c := range coeffs {
		neg[i] = -c
	}
	return neg
}
