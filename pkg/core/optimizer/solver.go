package optimizer

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/jakechorley/fundplan/pkg/core/model"
)

const (
	// defaultMaxNodes caps branch-and-bound node exploration. Generous for
	// problem sizes of a few dozen lines; hitting it yields StatusSuboptimal.
	defaultMaxNodes = 100000

	// integralityTol decides when a relaxed funded variable counts as 0 or 1
	integralityTol = 1e-6

	// simplexTol is the convergence tolerance passed to the LP backend
	simplexTol = 1e-10
)

// solver runs LP-relaxation branch-and-bound over the funded binaries.
// It is purely functional: no state survives between solve calls.
type solver struct {
	maxNodes int
}

func newSolver() *solver {
	return &solver{maxNodes: defaultMaxNodes}
}

// rawSolution is the solver's variable assignment before result extraction.
type rawSolution struct {
	status    model.Status
	objective float64
	alloc     []float64
	funded    []float64
	nodes     int
}

// node is one branch-and-bound subproblem: the funded variables restricted
// to [lb_i, ub_i], each bound either 0 or 1.
type node struct {
	lb []float64
	ub []float64
}

func (nd node) branch(idx int, value float64) node {
	child := node{
		lb: append([]float64(nil), nd.lb...),
		ub: append([]float64(nil), nd.ub...),
	}
	child.lb[idx] = value
	child.ub[idx] = value
	return child
}

// solve runs the branch-and-bound search. Nodes are explored depth-first,
// fixed-to-1 child first; branching picks the most fractional funded
// variable with the lowest index breaking ties, so the search order and the
// returned assignment are deterministic for identical inputs.
func (s *solver) solve(m *milpModel) rawSolution {
	n := m.lineCount()

	root := node{lb: make([]float64, n), ub: make([]float64, n)}
	for i := range root.ub {
		root.ub[i] = 1
	}
	stack := []node{root}

	var (
		incumbent    []float64
		incumbentObj float64
		hasIncumbent bool
		rootSolved   bool
		capped       bool
		nodes        int
	)

	for len(stack) > 0 {
		if nodes >= s.maxNodes {
			capped = true
			break
		}

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes++

		obj, x, err := s.solveRelaxation(m, nd)
		atRoot := !rootSolved
		rootSolved = true
		if err != nil {
			if atRoot {
				if errors.Is(err, lp.ErrInfeasible) {
					return rawSolution{status: model.StatusInfeasible, nodes: nodes}
				}
				return rawSolution{status: model.StatusError, nodes: nodes}
			}
			// Infeasible or numerically failed subtree; nothing below it
			// can beat the incumbent.
			continue
		}

		// Bound check: the relaxation objective is an upper bound for the
		// whole subtree.
		if hasIncumbent && obj <= incumbentObj+integralityTol {
			continue
		}

		branchIdx := mostFractional(x[n:])
		if branchIdx < 0 {
			// Integral assignment; candidate incumbent.
			if !hasIncumbent || obj > incumbentObj {
				incumbent = append([]float64(nil), x...)
				incumbentObj = obj
				hasIncumbent = true
			}
			continue
		}

		// Push the 0-branch first so the 1-branch is explored first;
		// freeing the allocation tends to find strong incumbents early.
		stack = append(stack, nd.branch(branchIdx, 0))
		stack = append(stack, nd.branch(branchIdx, 1))
	}

	if !hasIncumbent {
		if capped {
			return rawSolution{status: model.StatusSuboptimal, nodes: nodes}
		}
		// The relaxation was feasible but no integral assignment exists
		// (e.g. a funded-count floor that no budget-respecting selection
		// can meet).
		return rawSolution{status: model.StatusInfeasible, nodes: nodes}
	}

	status := model.StatusOptimal
	if capped {
		status = model.StatusSuboptimal
	}
	return rawSolution{
		status:    status,
		objective: incumbentObj,
		alloc:     incumbent[:n],
		funded:    incumbent[n:],
		nodes:     nodes,
	}
}

// solveRelaxation solves the LP relaxation of one node. The static model
// rows plus the node's funded bounds are put in standard form by appending
// one slack variable per row, then handed to the simplex backend. Returns
// the maximization objective and the assignment of the 2n model variables.
func (s *solver) solveRelaxation(m *milpModel, nd node) (float64, []float64, error) {
	n := m.lineCount()
	nVars := 2 * n

	rows := make([][]float64, 0, len(m.g)+2*n)
	bounds := make([]float64, 0, len(m.h)+2*n)
	rows = append(rows, m.g...)
	bounds = append(bounds, m.h...)

	// funded_i <= ub_i and -funded_i <= -lb_i for this node
	for i := 0; i < n; i++ {
		upper := make([]float64, nVars)
		upper[n+i] = 1
		rows = append(rows, upper)
		bounds = append(bounds, nd.ub[i])

		if nd.lb[i] > 0 {
			lower := make([]float64, nVars)
			lower[n+i] = -1
			rows = append(rows, lower)
			bounds = append(bounds, -nd.lb[i])
		}
	}

	nRows := len(rows)
	total := nVars + nRows

	// Standard form: [G | I] x' = h with x' >= 0. All model variables are
	// already nonnegative, so no free-variable splitting is needed.
	a := mat.NewDense(nRows, total, nil)
	b := make([]float64, nRows)
	for r, row := range rows {
		for c, v := range row {
			if v != 0 {
				a.Set(r, c, v)
			}
		}
		a.Set(r, nVars+r, 1)
		b[r] = bounds[r]
	}

	// Simplex minimizes, the model maximizes.
	c := make([]float64, total)
	for i, v := range m.objective {
		c[i] = -v
	}

	optF, optX, err := lp.Simplex(c, a, b, simplexTol, nil)
	if err != nil {
		return 0, nil, err
	}

	x := make([]float64, nVars)
	copy(x, optX[:nVars])
	// Clamp simplex noise on the binaries.
	for i := n; i < nVars; i++ {
		x[i] = math.Min(1, math.Max(0, x[i]))
	}

	return -optF, x, nil
}

// mostFractional returns the index of the funded variable closest to 0.5,
// or -1 when every value is within integralityTol of 0 or 1. Ties go to the
// lowest index.
func mostFractional(funded []float64) int {
	best := -1
	bestScore := math.Inf(1)
	for i, v := range funded {
		if math.Min(v, 1-v) <= integralityTol {
			continue
		}
		score := math.Abs(v - 0.5)
		if score < bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}
