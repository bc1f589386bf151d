// Package bench implements the benchmark harness: it walks a directory
// tree of DIMACS instance families, solves each instance, and reports
// aggregate timing and branching statistics. It is the Go counterpart of
// original_source/main/Benchmark.py.
package bench

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocdcl/cdcl/internal/dimacs"
	"github.com/gocdcl/cdcl/internal/sat"
)

// VerdictMismatch reports that a solved instance's verdict did not match
// the verdict promised by its family's directory name, matching
// Benchmark.py's check_answer. A family run aborts at the first mismatch.
type VerdictMismatch struct {
	File string
	Want sat.LBool
	Got  sat.LBool
}

func (e *VerdictMismatch) Error() string {
	return fmt.Sprintf("%s: verdict mismatch: want %s, got %s", e.File, e.Want, e.Got)
}

// FamilyResult aggregates one family's run: Benchmark.py's "Total/Average
// time" and "Total/Average branching" report.
type FamilyResult struct {
	Directory      string
	Want           sat.LBool
	NumInstances   int
	TotalTime      time.Duration
	TotalBranching int64
}

// AverageTime returns TotalTime divided across NumInstances, or 0 if none
// ran.
func (r FamilyResult) AverageTime() time.Duration {
	if r.NumInstances == 0 {
		return 0
	}
	return r.TotalTime / time.Duration(r.NumInstances)
}

// AverageBranching returns TotalBranching divided across NumInstances, or 0
// if none ran.
func (r FamilyResult) AverageBranching() float64 {
	if r.NumInstances == 0 {
		return 0
	}
	return float64(r.TotalBranching) / float64(r.NumInstances)
}

// RunFamily solves every ".cnf" file directly inside dir, each with a fresh
// solver from newSolver, and aborts with a *VerdictMismatch on the first
// instance whose verdict doesn't match want — mirroring Benchmark.py's
// test(), which returns immediately on the first check_answer failure.
func RunFamily(dir string, want sat.LBool, newSolver func() *sat.Solver) (FamilyResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return FamilyResult{}, err
	}

	result := FamilyResult{Directory: dir, Want: want}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".cnf") {
			continue
		}
		path := filepath.Join(dir, e.Name())

		s := newSolver()
		if err := dimacs.Load(path, false, s); err != nil {
			return result, err
		}

		start := time.Now()
		got := s.Solve()
		result.TotalTime += time.Since(start)
		result.TotalBranching += s.NumBranchingInvocations()
		result.NumInstances++

		if got != want {
			return result, &VerdictMismatch{File: path, Want: want, Got: got}
		}
	}
	return result, nil
}

// RunAll walks root's immediate subdirectories, dispatching directories
// named "uuf*" as UNSAT families and "uf*" as SAT families (spec.md §6)
// and skipping anything else, matching Benchmark.py's test_all.
func RunAll(root string, newSolver func() *sat.Solver) ([]FamilyResult, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var results []FamilyResult
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		var want sat.LBool
		switch {
		case strings.HasPrefix(e.Name(), "uuf"):
			want = sat.False
		case strings.HasPrefix(e.Name(), "uf"):
			want = sat.True
		default:
			continue
		}

		result, err := RunFamily(filepath.Join(root, e.Name()), want, newSolver)
		results = append(results, result)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
