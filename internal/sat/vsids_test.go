package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVSIDSBumpRaisesActivity(t *testing.T) {
	v := newVSIDSHeuristic(3, DefaultVSIDSOptions)
	before := v.scores[1]

	c := newClause([]Literal{PositiveLiteral(0), PositiveLiteral(1)}, true)
	v.Observe(c)

	assert.Greater(t, v.scores[1], before)
	assert.Equal(t, before, v.scores[2], "variables outside the learnt clause are not bumped")
}

func TestVSIDSChoosesHighestActivityFirst(t *testing.T) {
	v := newVSIDSHeuristic(3, DefaultVSIDSOptions)
	s := newTestSolver(t, 3)

	v.Observe(newClause([]Literal{PositiveLiteral(2)}, true))
	v.Observe(newClause([]Literal{PositiveLiteral(2)}, true))

	l := v.Choose(s)
	assert.Equal(t, 2, l.VarID(), "variable 2 was bumped twice and must be picked first")
}

func TestVSIDSSkipsAssignedVariables(t *testing.T) {
	v := newVSIDSHeuristic(2, DefaultVSIDSOptions)
	s := newTestSolver(t, 2)

	v.Observe(newClause([]Literal{PositiveLiteral(0)}, true))
	require.True(t, s.trail.Enqueue(PositiveLiteral(0), nil))

	l := v.Choose(s)
	assert.Equal(t, 1, l.VarID(), "variable 0 is assigned even though it has the higher activity")
}

func TestVSIDSUndoReinsertsIntoHeap(t *testing.T) {
	v := newVSIDSHeuristic(1, DefaultVSIDSOptions)
	s := newTestSolver(t, 1)

	_ = v.Choose(s) // pops variable 0 off the heap
	assert.False(t, v.inHeap[0])

	v.Undo(0, True)
	assert.True(t, v.inHeap[0], "Undo must make the variable selectable again")

	l := v.Choose(s)
	assert.Equal(t, 0, l.VarID())
}

func TestVSIDSPhaseSavingProposesLastValue(t *testing.T) {
	opts := DefaultVSIDSOptions
	opts.PhaseSaving = true
	v := newVSIDSHeuristic(1, opts)
	s := newTestSolver(t, 1)

	v.Undo(0, False)
	l := v.Choose(s)
	assert.False(t, l.IsPositive(), "phase saving must propose the previously-held value")
}

func TestVSIDSWithoutPhaseSavingDefaultsPositive(t *testing.T) {
	v := newVSIDSHeuristic(1, DefaultVSIDSOptions)
	s := newTestSolver(t, 1)

	v.Undo(0, False)
	l := v.Choose(s)
	assert.True(t, l.IsPositive(), "without phase saving, the default polarity is always positive")
}

func TestVSIDSResetClearsActivity(t *testing.T) {
	v := newVSIDSHeuristic(2, DefaultVSIDSOptions)
	v.Observe(newClause([]Literal{PositiveLiteral(0), PositiveLiteral(1)}, true))
	require.NotZero(t, v.scores[0])

	v.Reset()

	assert.Zero(t, v.scores[0])
	assert.Zero(t, v.scores[1])
	assert.Equal(t, float64(1), v.inc)
}

func TestVSIDSGrowAddsSelectableVariable(t *testing.T) {
	v := newVSIDSHeuristic(1, DefaultVSIDSOptions)
	s := newTestSolver(t, 1)
	s.AddVariable()
	v.Grow()

	require.True(t, s.trail.Enqueue(PositiveLiteral(0), nil))
	l := v.Choose(s)
	assert.Equal(t, 1, l.VarID())
}
