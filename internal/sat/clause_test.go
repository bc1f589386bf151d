package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSolver(t *testing.T, nVars int) *Solver {
	t.Helper()
	s := NewSolver(DefaultOptions)
	for i := 0; i < nVars; i++ {
		s.AddVariable()
	}
	return s
}

func TestNewClauseTautology(t *testing.T) {
	s := newTestSolver(t, 1)
	c, ok := NewClause(s, []Literal{PositiveLiteral(0), NegativeLiteral(0)}, false)
	assert.True(t, ok)
	assert.Nil(t, c, "a tautology must not be materialized as a clause")
}

func TestNewClauseDuplicateLiterals(t *testing.T) {
	s := newTestSolver(t, 2)
	c, ok := NewClause(s, []Literal{PositiveLiteral(0), PositiveLiteral(0), PositiveLiteral(1)}, false)
	require.True(t, ok)
	require.NotNil(t, c)
	assert.Len(t, c.Literals(), 2, "duplicate literals must be collapsed")
}

func TestNewClauseUnitEnqueues(t *testing.T) {
	s := newTestSolver(t, 1)
	c, ok := NewClause(s, []Literal{PositiveLiteral(0)}, false)
	require.True(t, ok)
	assert.Nil(t, c, "unit clauses are never materialized")
	assert.Equal(t, True, s.LitValue(PositiveLiteral(0)))
}

func TestNewClauseEmptyIsUnsat(t *testing.T) {
	s := newTestSolver(t, 1)
	require.NoError(t, s.AddClause([]Literal{PositiveLiteral(0)}))
	require.NoError(t, s.AddClause([]Literal{NegativeLiteral(0)}))
	assert.True(t, s.unsat)
	assert.Equal(t, False, s.Solve())
}

func TestClausePropagateForcesLiteral(t *testing.T) {
	s := newTestSolver(t, 2)
	require.NoError(t, s.AddClause([]Literal{PositiveLiteral(0), PositiveLiteral(1)}))

	require.True(t, s.enqueue(NegativeLiteral(0), nil))
	conflict := s.propagate()
	require.Nil(t, conflict)
	assert.Equal(t, True, s.LitValue(PositiveLiteral(1)), "the only remaining literal must be forced true")
}

func TestClausePropagateDetectsConflict(t *testing.T) {
	s := newTestSolver(t, 2)
	require.NoError(t, s.AddClause([]Literal{PositiveLiteral(0), PositiveLiteral(1)}))

	require.True(t, s.enqueue(NegativeLiteral(0), nil))
	require.True(t, s.enqueue(NegativeLiteral(1), nil))
	conflict := s.propagate()
	require.NotNil(t, conflict)
}

func TestExplainAssignExcludesForcedLiteral(t *testing.T) {
	s := newTestSolver(t, 3)
	c, ok := NewClause(s, []Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)}, true)
	require.True(t, ok)
	require.NotNil(t, c)

	explain := c.ExplainAssign()
	assert.Len(t, explain, len(c.Literals())-1)
	for _, l := range explain {
		assert.NotEqual(t, c.Literals()[0], l)
	}
}
