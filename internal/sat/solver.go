package sat

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gocdcl/cdcl/internal/logx"
)

// watcher represents a clause attached to the watch list of a literal.
type watcher struct {
	// clause is awoken when the watched literal becomes true.
	clause *Clause

	// guard is one of clause's other literals. If it is already true, the
	// clause cannot possibly be unit or conflicting and the watcher is
	// skipped without touching the clause at all.
	guard Literal
}

// Options configures a Solver. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	// Heuristic selects the branching policy (spec.md §4.6).
	Heuristic HeuristicKind

	// Seed seeds the policies that need randomness.
	Seed int64

	// VSIDS configures the VSIDS policy when Heuristic == VSIDS.
	VSIDS VSIDSOptions

	// RestartEnabled turns on the geometric restart policy (spec.md §4.7).
	RestartEnabled          bool
	RestartInitialThreshold int64
	RestartGrowthFactor     float64

	// ClauseDeletion opts into ReduceDB-style learnt-clause deletion. It
	// defaults to off: spec.md §5 mandates that learnt clauses accumulate
	// monotonically during a single solve.
	ClauseDeletion bool
	ClauseDecay    float64

	// MaxConflicts and Timeout bound the search; a negative value disables
	// the corresponding stop condition. Hitting either returns Unknown.
	MaxConflicts int64
	Timeout      time.Duration

	// Logger receives Debug-level entries per decision/backjump/restart. A
	// nil Logger is replaced by a disabled one, so logging costs nothing
	// unless a caller opts in.
	Logger *logrus.Logger
}

// DefaultOptions matches spec.md §9's recommended, non-aggressive defaults.
var DefaultOptions = Options{
	Heuristic:               VSIDS,
	Seed:                    1,
	VSIDS:                   DefaultVSIDSOptions,
	RestartEnabled:          true,
	RestartInitialThreshold: 100,
	RestartGrowthFactor:     1.5,
	ClauseDeletion:          false,
	ClauseDecay:             0.999,
	MaxConflicts:            -1,
	Timeout:                 -1,
}

// Stats accumulates search statistics surfaced to callers such as the
// benchmark harness.
type Stats struct {
	Conflicts    int64
	Restarts     int64
	Decisions    int64
	Propagations int64
}

// Solver implements the CDCL search loop over a ClauseStore/Trail pair,
// dispatching decisions to a pluggable Heuristic and restarts to an
// optional RestartPolicy.
type Solver struct {
	opts Options
	log  *logrus.Logger

	store *ClauseStore
	trail *Trail

	heuristic Heuristic
	restarts  *RestartPolicy

	watchers    [][]watcher
	tmpWatchers []watcher
	qHead       int

	seenVar *ResetSet

	clauseInc float64

	unsat bool

	Stats Stats

	startTime time.Time
}

// NewSolver returns an empty Solver (no variables, no clauses) configured
// per opts.
func NewSolver(opts Options) *Solver {
	log := opts.Logger
	if log == nil {
		log = logx.Disabled()
	}

	var restarts *RestartPolicy
	if opts.RestartEnabled {
		restarts = NewRestartPolicy(true, opts.RestartInitialThreshold, opts.RestartGrowthFactor)
	}

	return &Solver{
		opts:      opts,
		log:       log,
		store:     NewClauseStore(),
		trail:     NewTrail(),
		heuristic: NewHeuristic(opts.Heuristic, 0, opts.Seed, opts.VSIDS),
		restarts:  restarts,
		seenVar:   &ResetSet{},
		clauseInc: 1,
	}
}

// NewDefaultSolver returns a Solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// NumVariables returns the number of variables registered so far.
func (s *Solver) NumVariables() int { return s.trail.NumVariables() }

// NumAssigned returns the number of variables currently assigned.
func (s *Solver) NumAssigned() int { return s.trail.NumAssigned() }

// NumOriginals returns the number of original (non-learnt) clauses.
func (s *Solver) NumOriginals() int { return s.store.NumOriginals() }

// NumLearnts returns the number of learnt clauses currently retained.
func (s *Solver) NumLearnts() int { return s.store.NumLearnts() }

// NumBranchingInvocations returns the number of decisions made so far,
// i.e. how many times the heuristic's Choose was invoked (spec.md §6).
func (s *Solver) NumBranchingInvocations() int64 { return s.Stats.Decisions }

// LitValue returns the current truth value of literal l.
func (s *Solver) LitValue(l Literal) LBool { return s.trail.Value(l) }

// VarValue returns the current truth value of variable v.
func (s *Solver) VarValue(v int) LBool { return s.trail.VarValue(v) }

func (s *Solver) levelOf(v int) int      { return s.trail.LevelOf(v) }
func (s *Solver) reasonOf(v int) *Clause { return s.trail.ReasonOf(v) }

func (s *Solver) seen(v int) bool { return s.seenVar.Contains(v) }
func (s *Solver) seenMark(v int)  { s.seenVar.Add(v) }
func (s *Solver) seenClear()      { s.seenVar.Clear() }

// AddVariable registers one new variable and returns its 0-based id.
func (s *Solver) AddVariable() int {
	id := s.trail.NumVariables()
	s.trail.Grow()
	s.watchers = append(s.watchers, nil, nil)
	s.seenVar.Expand()
	s.heuristic.Grow()
	return id
}

// Watch registers clause c to be woken when watch becomes true. guard is
// another of c's literals, checked first to avoid loading c at all when
// the clause is already satisfied through it.
func (s *Solver) Watch(c *Clause, watch Literal, guard Literal) {
	s.watchers[watch] = append(s.watchers[watch], watcher{clause: c, guard: guard})
}

// Unwatch removes c from watch's watch list.
func (s *Solver) Unwatch(c *Clause, watch Literal) {
	list := s.watchers[watch]
	j := 0
	for i := 0; i < len(list); i++ {
		if list[i].clause != c {
			list[j] = list[i]
			j++
		}
	}
	s.watchers[watch] = list[:j]
}

func (s *Solver) enqueue(l Literal, reason *Clause) bool {
	return s.trail.Enqueue(l, reason)
}

// AddClause adds an original clause (spec.md §4.2). It must only be called
// at decision level 0. A clause found to be unsatisfiable at the root marks
// the whole instance unsat; Solve will then immediately return False.
func (s *Solver) AddClause(literals []Literal) error {
	if s.trail.DecisionLevel() != 0 {
		return fmt.Errorf("sat: AddClause called at decision level %d, want 0", s.trail.DecisionLevel())
	}
	c, ok := NewClause(s, literals, false)
	s.store.AddOriginal(c)
	if !ok {
		s.unsat = true
	}
	return nil
}

func (s *Solver) shouldStop() bool {
	if s.opts.MaxConflicts >= 0 && s.Stats.Conflicts >= s.opts.MaxConflicts {
		return true
	}
	if s.opts.Timeout >= 0 && time.Since(s.startTime) >= s.opts.Timeout {
		return true
	}
	return false
}

// backjump undoes every assignment above level, telling the heuristic about
// each undone variable so that policies with persistent state (VSIDS) stay
// consistent, and rewinds the propagation cursor accordingly.
func (s *Solver) backjump(level int) {
	s.trail.PopToLevel(level, func(l Literal) {
		s.heuristic.Undo(l.VarID(), Lift(l.IsPositive()))
	})
	if n := len(s.trail.Literals()); s.qHead > n {
		s.qHead = n
	}
}

// record turns a learnt clause's literals into a Clause, enqueues its
// forced First-UIP literal, and stores it unless a clause with identical
// content is already present.
func (s *Solver) record(learnt []Literal) {
	c, ok := NewClause(s, learnt, true)
	if !ok {
		internalErrorf("learnt clause is immediately falsified")
	}
	if c == nil {
		return // unit clause: NewClause already enqueued it directly.
	}
	if !s.enqueue(learnt[0], c) {
		internalErrorf("first-UIP literal already falsified after backjump")
	}
	if !s.store.AddLearnt(c) {
		c.Remove(s)
		return
	}
	s.heuristic.Observe(c)
	if s.opts.ClauseDeletion {
		s.bumpClauseActivity(c)
	}
}

func (s *Solver) bumpClauseActivity(c *Clause) {
	c.activity += s.clauseInc
	if c.activity > 1e100 {
		s.clauseInc *= 1e-100
		for _, l := range s.store.Learnts() {
			l.activity *= 1e-100
		}
	}
	s.clauseInc /= s.opts.ClauseDecay
}

// reduceDB discards every unlocked, unprotected learnt clause that is in
// the less active half of the learnt clauses or whose activity is below
// clauseInc divided by the number of learnt clauses. It is only invoked when Options.ClauseDeletion is
// set; it never touches original clauses and never changes the verdict.
func (s *Solver) reduceDB() {
	learnts := append([]*Clause(nil), s.store.Learnts()...)
	if len(learnts) == 0 {
		return
	}
	sort.Slice(learnts, func(i, j int) bool { return learnts[i].activity < learnts[j].activity })

	lim := s.clauseInc / float64(len(learnts))
	removable := map[*Clause]bool{}
	for i, c := range learnts {
		if c.locked(s) || c.protected {
			continue
		}
		if i < len(learnts)/2 || c.activity < lim {
			removable[c] = true
		}
	}
	for i := s.store.NumLearnts() - 1; i >= 0; i-- {
		c := s.store.Learnts()[i]
		if removable[c] {
			c.Remove(s)
			s.store.removeLearntAt(i)
		}
	}
}

// Solve runs the CDCL search loop to completion (spec.md §4.8) and returns
// True (SAT), False (UNSAT), or Unknown (a configured stop condition was
// hit). On True, Model returns the satisfying assignment.
func (s *Solver) Solve() LBool {
	s.startTime = time.Now()

	if s.unsat {
		return False
	}

	for {
		if conflict := s.propagate(); conflict != nil {
			s.Stats.Conflicts++
			s.log.Debugf("conflict at level %d: %s", s.trail.DecisionLevel(), conflict)

			if s.trail.DecisionLevel() == 0 {
				s.unsat = true
				return False
			}

			level, learnt := s.analyze(conflict)
			s.log.Debugf("backjump to level %d", level)
			s.backjump(level)
			s.record(learnt)

			if s.restarts != nil {
				s.restarts.OnConflict()
			}
			continue
		}

		if s.trail.DecisionLevel() == 0 && s.opts.ClauseDeletion && s.store.NumLearnts() > 0 {
			s.reduceDB()
		}

		if s.trail.NumAssigned() == s.trail.NumVariables() {
			if !s.Verify() {
				internalErrorf("verifier rejected a claimed model")
			}
			return True
		}

		if s.shouldStop() {
			return Unknown
		}

		if s.restarts != nil && s.restarts.ShouldRestart() {
			s.log.Debugf("restart at %d conflicts", s.Stats.Conflicts)
			s.backjump(0)
			s.heuristic.Reset()
			s.restarts.OnRestart()
			s.Stats.Restarts++
			continue
		}

		l := s.heuristic.Choose(s)
		s.Stats.Decisions++
		s.log.Debugf("decide %s at level %d", l, s.trail.DecisionLevel()+1)
		s.trail.OpenLevel()
		s.enqueue(l, nil)
	}
}

// Model returns the satisfying assignment after a True verdict, indexed by
// 0-based variable id.
func (s *Solver) Model() []bool {
	model := make([]bool, s.trail.NumVariables())
	for v := range model {
		model[v] = s.trail.VarValue(v) == True
	}
	return model
}
