package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocdcl/cdcl/internal/sat"
)

func writeCNF(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func defaultSolver() *sat.Solver {
	return sat.NewSolver(sat.DefaultOptions)
}

func TestRunFamilySatisfiable(t *testing.T) {
	dir := t.TempDir()
	writeCNF(t, dir, "uf1.cnf", "p cnf 1 1\n1 0\n")
	writeCNF(t, dir, "uf2.cnf", "p cnf 2 1\n1 2 0\n")
	writeCNF(t, dir, "ignored.txt", "not a cnf file")

	result, err := RunFamily(dir, sat.True, defaultSolver)
	require.NoError(t, err)
	assert.Equal(t, 2, result.NumInstances)
	assert.Equal(t, sat.True, result.Want)
}

func TestRunFamilyAbortsOnVerdictMismatch(t *testing.T) {
	dir := t.TempDir()
	writeCNF(t, dir, "uf1.cnf", "p cnf 1 1\n1 0\n")

	_, err := RunFamily(dir, sat.False, defaultSolver)
	require.Error(t, err)
	mismatch, ok := err.(*VerdictMismatch)
	require.True(t, ok)
	assert.Equal(t, sat.False, mismatch.Want)
	assert.Equal(t, sat.True, mismatch.Got)
}

func TestRunAllDispatchesByDirectoryPrefix(t *testing.T) {
	root := t.TempDir()
	satDir := filepath.Join(root, "uf20-01")
	unsatDir := filepath.Join(root, "uuf20-01")
	require.NoError(t, os.Mkdir(satDir, 0o755))
	require.NoError(t, os.Mkdir(unsatDir, 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "other"), 0o755))

	writeCNF(t, satDir, "a.cnf", "p cnf 1 1\n1 0\n")
	writeCNF(t, unsatDir, "a.cnf", "p cnf 1 2\n1 0\n-1 0\n")

	results, err := RunAll(root, defaultSolver)
	require.NoError(t, err)
	require.Len(t, results, 2, "the 'other' directory must be skipped")

	byDir := map[string]FamilyResult{}
	for _, r := range results {
		byDir[r.Directory] = r
	}
	assert.Equal(t, sat.True, byDir[satDir].Want)
	assert.Equal(t, sat.False, byDir[unsatDir].Want)
}

func TestFamilyResultAverages(t *testing.T) {
	r := FamilyResult{}
	assert.Equal(t, float64(0), r.AverageBranching())
	assert.Equal(t, int64(0), int64(r.AverageTime()))
}
