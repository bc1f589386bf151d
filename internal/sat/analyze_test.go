package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeAtLevelZeroReportsUnsat(t *testing.T) {
	s := newTestSolver(t, 1)
	conflict := newClause([]Literal{PositiveLiteral(0), NegativeLiteral(0)}, false)

	level, learnt := s.analyze(conflict)
	assert.Equal(t, -1, level)
	assert.Nil(t, learnt)
}

// TestAnalyzeFirstUIPSingleStep covers the case where the conflicting clause
// already has exactly one literal at the current decision level, so the
// decision literal itself is the first UIP and no resolution step is needed.
func TestAnalyzeFirstUIPSingleStep(t *testing.T) {
	s := newTestSolver(t, 3)

	s.trail.OpenLevel()
	require.True(t, s.trail.Enqueue(PositiveLiteral(0), nil))
	clauseA := newClause([]Literal{PositiveLiteral(1), NegativeLiteral(0)}, false)
	require.True(t, s.trail.Enqueue(PositiveLiteral(1), clauseA))

	s.trail.OpenLevel()
	require.True(t, s.trail.Enqueue(PositiveLiteral(2), nil))

	conflict := newClause([]Literal{NegativeLiteral(1), NegativeLiteral(2)}, false)

	level, learnt := s.analyze(conflict)
	assert.Equal(t, 1, level, "the only other literal (x1) was assigned at level 1")
	assert.Equal(t, NegativeLiteral(2), learnt[0], "the decision literal's negation is the first UIP")
	assert.ElementsMatch(t, []Literal{NegativeLiteral(2), NegativeLiteral(1)}, learnt)
}

// TestAnalyzeResolvesThroughIntermediateImplications covers a conflict that
// requires walking back through two propagated literals before reaching the
// single UIP, exercising the resolution loop's pending/ExplainAssign path.
func TestAnalyzeResolvesThroughIntermediateImplications(t *testing.T) {
	s := newTestSolver(t, 4)

	s.trail.OpenLevel() // level 1
	require.True(t, s.trail.Enqueue(PositiveLiteral(0), nil))

	s.trail.OpenLevel() // level 2
	require.True(t, s.trail.Enqueue(PositiveLiteral(1), nil))

	clauseB := newClause([]Literal{PositiveLiteral(2), NegativeLiteral(0), NegativeLiteral(1)}, false)
	require.True(t, s.trail.Enqueue(PositiveLiteral(2), clauseB))

	clauseD := newClause([]Literal{PositiveLiteral(3), NegativeLiteral(1), NegativeLiteral(2)}, false)
	require.True(t, s.trail.Enqueue(PositiveLiteral(3), clauseD))

	conflict := newClause([]Literal{NegativeLiteral(2), NegativeLiteral(3)}, false)

	level, learnt := s.analyze(conflict)
	assert.Equal(t, 1, level, "x0 is the only literal outside the current level once x3 and x2 resolve away")
	assert.Equal(t, NegativeLiteral(1), learnt[0], "x1 is the single UIP: every path from the decision to the conflict passes through it")
	assert.ElementsMatch(t, []Literal{NegativeLiteral(1), NegativeLiteral(0)}, learnt)
}
