// Package dimacs loads and writes DIMACS CNF files, wrapping the teacher's
// own github.com/rhartert/dimacs reader behind an adapter that feeds a
// sat.Solver directly.
package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	extdimacs "github.com/rhartert/dimacs"

	"github.com/gocdcl/cdcl/internal/sat"
)

// Solver is the subset of *sat.Solver a DIMACS instance is loaded into.
type Solver interface {
	AddVariable() int
	AddClause([]sat.Literal) error
}

func openReader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// Load parses filename as a DIMACS CNF instance and adds its variables and
// clauses to solver (spec.md §6). Malformed input surfaces as a
// *sat.ParseError.
func Load(filename string, gzipped bool, solver Solver) error {
	r, err := openReader(filename, gzipped)
	if err != nil {
		return &sat.ParseError{Filename: filename, Reason: err.Error()}
	}
	defer r.Close()

	b := &builder{filename: filename, solver: solver}
	if err := extdimacs.ReadBuilder(r, b); err != nil {
		return &sat.ParseError{Filename: filename, Reason: err.Error()}
	}
	if !b.sawProblem {
		return &sat.ParseError{Filename: filename, Reason: "missing problem line"}
	}
	return nil
}

// builder adapts a Solver to extdimacs.Builder.
type builder struct {
	filename   string
	solver     Solver
	sawProblem bool
	nVars      int
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("unsupported problem type %q, want %q", problem, "cnf")
	}
	b.sawProblem = true
	b.nVars = nVars
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	if !b.sawProblem {
		return fmt.Errorf("clause line before problem line")
	}
	clause := make([]sat.Literal, len(tmpClause))
	for i, l := range tmpClause {
		if l > b.nVars || -l > b.nVars {
			return fmt.Errorf("literal %d outside variable range [1, %d]", l, b.nVars)
		}
		switch {
		case l < 0:
			clause[i] = sat.NegativeLiteral(-l - 1)
		case l > 0:
			clause[i] = sat.PositiveLiteral(l - 1)
		default:
			return fmt.Errorf("literal 0 inside a clause")
		}
	}
	return b.solver.AddClause(clause)
}

func (b *builder) Comment(_ string) error {
	return nil // ignore comments
}

// LoadInts adds nVars fresh variables and the given 1-indexed integer
// clauses (positive for the literal, negative for its negation, the same
// convention as a parsed DIMACS file) to solver. It lets callers that
// build clauses in memory, such as the einstein command, reuse the same
// literal-sign convention as file-based loading.
func LoadInts(solver Solver, nVars int, clauses [][]int) error {
	for i := 0; i < nVars; i++ {
		solver.AddVariable()
	}
	for _, c := range clauses {
		lits := make([]sat.Literal, len(c))
		for i, l := range c {
			switch {
			case l < 0:
				lits[i] = sat.NegativeLiteral(-l - 1)
			case l > 0:
				lits[i] = sat.PositiveLiteral(l - 1)
			default:
				return fmt.Errorf("literal 0 inside a clause")
			}
		}
		if err := solver.AddClause(lits); err != nil {
			return err
		}
	}
	return nil
}
