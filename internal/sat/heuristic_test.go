package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// heuristicSolver builds a solver with nVars variables and the given original
// clauses, without running propagation, so each heuristic's Choose can be
// exercised against a known pending clause set.
func heuristicSolver(t *testing.T, nVars int, clauses ...[]Literal) *Solver {
	t.Helper()
	s := newTestSolver(t, nVars)
	for _, lits := range clauses {
		require.NoError(t, s.AddClause(lits))
	}
	return s
}

func TestOrderedChoosesLowestUnassigned(t *testing.T) {
	s := heuristicSolver(t, 3, []Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)})
	h := NewHeuristic(Ordered, 3, 1, DefaultVSIDSOptions)

	require.True(t, s.enqueue(PositiveLiteral(0), nil))
	l := h.Choose(s)
	assert.Equal(t, 1, l.VarID(), "variable 0 is assigned, so the lowest unassigned variable is 1")
	assert.True(t, l.IsPositive())
}

func TestRandomChoosesUnassignedVariable(t *testing.T) {
	s := heuristicSolver(t, 2, []Literal{PositiveLiteral(0), PositiveLiteral(1)})
	h := NewHeuristic(Random, 2, 7, DefaultVSIDSOptions)

	require.True(t, s.enqueue(PositiveLiteral(0), nil))
	l := h.Choose(s)
	assert.Equal(t, 1, l.VarID())
}

func TestDLISPicksMostFrequentPendingLiteral(t *testing.T) {
	s := heuristicSolver(t, 3,
		[]Literal{PositiveLiteral(0), PositiveLiteral(1)},
		[]Literal{PositiveLiteral(0), PositiveLiteral(2)},
		[]Literal{NegativeLiteral(1), PositiveLiteral(2)},
	)
	h := NewHeuristic(DLIS, 3, 1, DefaultVSIDSOptions)

	l := h.Choose(s)
	assert.Equal(t, PositiveLiteral(0), l, "variable 0's positive literal occurs in two pending clauses, tied only with variable 2's positive literal; the lower literal id wins")
}

func TestDLCSPicksHighestCombinedVariableCount(t *testing.T) {
	s := heuristicSolver(t, 2,
		[]Literal{PositiveLiteral(0), PositiveLiteral(1)},
		[]Literal{NegativeLiteral(0), PositiveLiteral(1)},
		[]Literal{PositiveLiteral(0), NegativeLiteral(1)},
	)
	h := NewHeuristic(DLCS, 2, 1, DefaultVSIDSOptions)

	l := h.Choose(s)
	assert.Equal(t, 0, l.VarID(), "variable 0 appears (either polarity) in all three clauses, variable 1 also in three: both tie at the top, lowest id wins")
}

func TestMOMRestrictsToSmallestPendingClauses(t *testing.T) {
	s := heuristicSolver(t, 3,
		[]Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)},
		[]Literal{PositiveLiteral(1), NegativeLiteral(2)},
	)
	h := NewHeuristic(MOM, 3, 1, DefaultVSIDSOptions)

	l := h.Choose(s)
	assert.Contains(t, []int{1, 2}, l.VarID(), "MOM must only count literals from the two-literal clause, the smallest pending one")
}

func TestJWWeightsShorterClausesMoreHeavily(t *testing.T) {
	s := heuristicSolver(t, 3,
		[]Literal{PositiveLiteral(0), PositiveLiteral(1)},
		[]Literal{PositiveLiteral(2), PositiveLiteral(0), PositiveLiteral(1)},
	)
	h := NewHeuristic(JW, 3, 1, DefaultVSIDSOptions)

	l := h.Choose(s)
	assert.Equal(t, 0, l.VarID(), "variable 0 appears in the binary clause (weight 1/4) and the ternary one (weight 1/8), 3/8 in all, more than variable 2's single 1/8; variable 1 ties at 3/8 and the lower literal id wins")
}

func TestTwoClauseFallsBackToRandomWithNoBinaryClauses(t *testing.T) {
	s := heuristicSolver(t, 3, []Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)})
	h := NewHeuristic(TwoClause, 3, 1, DefaultVSIDSOptions)

	l := h.Choose(s)
	assert.GreaterOrEqual(t, l.VarID(), 0)
	assert.True(t, s.trail.VarValue(l.VarID()) == Unknown)
}

func TestRDLISIsDeterministicGivenSeed(t *testing.T) {
	build := func() *Solver {
		return heuristicSolver(t, 3,
			[]Literal{PositiveLiteral(0), PositiveLiteral(1)},
			[]Literal{PositiveLiteral(0), PositiveLiteral(2)},
		)
	}
	h1 := NewHeuristic(RDLIS, 3, 42, DefaultVSIDSOptions)
	h2 := NewHeuristic(RDLIS, 3, 42, DefaultVSIDSOptions)

	assert.Equal(t, h1.Choose(build()), h2.Choose(build()), "same seed must produce the same pick")
}
