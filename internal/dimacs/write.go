package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	extdimacs "github.com/rhartert/dimacs"
)

// WriteCNF writes a DIMACS CNF file for the given 1-indexed, possibly
// negative literal clauses, used by the einstein command to emit the
// puzzle's encoding as a solver-ready file.
func WriteCNF(w io.Writer, nVars int, clauses [][]int) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", nVars, len(clauses)); err != nil {
		return err
	}
	for _, clause := range clauses {
		parts := make([]string, 0, len(clause)+1)
		for _, l := range clause {
			parts = append(parts, strconv.Itoa(l))
		}
		parts = append(parts, "0")
		if _, err := bw.WriteString(strings.Join(parts, " ") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteModels writes a ".cnf.models" file: one model per line, expressed as
// one literal per variable (positive for true, negative for false), in the
// format the teacher's integration tests load via ReadModels.
func WriteModels(w io.Writer, models [][]bool) error {
	bw := bufio.NewWriter(w)
	for _, model := range models {
		parts := make([]string, 0, len(model)+1)
		for i, b := range model {
			if b {
				parts = append(parts, strconv.Itoa(i+1))
			} else {
				parts = append(parts, strconv.Itoa(-(i + 1)))
			}
		}
		parts = append(parts, "0")
		if _, err := bw.WriteString(strings.Join(parts, " ") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadModels returns the list of models contained in a ".cnf.models" file,
// used by tests that check the solver's output against a precomputed
// reference model set.
func ReadModels(filename string) ([][]bool, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	b := &modelBuilder{}
	if err := extdimacs.ReadBuilder(file, b); err != nil {
		return nil, err
	}
	return b.models, nil
}

// modelBuilder adapts extdimacs.Builder to collect one model per clause
// line; a model file never has a problem line.
type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files should not have a problem line")
}

func (b *modelBuilder) Comment(_ string) error {
	return nil
}

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
