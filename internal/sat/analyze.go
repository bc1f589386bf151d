package sat

// analyze performs First-UIP conflict analysis (spec.md §4.4) given a
// clause that is falsified under the current assignment at the current
// decision level. If that level is 0, it reports UNSAT via (-1, nil).
// Otherwise it returns the backjump level and the learnt clause, with the
// First-UIP literal always at index 0.
//
// The analyzer never mutates the trail or assignment state; it only reads
// reasons and levels.
func (s *Solver) analyze(conflict *Clause) (int, []Literal) {
	level := s.trail.DecisionLevel()
	if level == 0 {
		return -1, nil
	}

	s.seenClear()

	learnt := make([]Literal, 1, 8)
	trail := s.trail.Literals()
	nextIdx := len(trail) - 1

	pending := conflict.ExplainConflict()
	backjumpLevel := 0
	nImplicationPoints := 0
	var uip Literal

	for {
		for _, q := range pending {
			v := q.VarID()
			if s.seen(v) {
				continue
			}
			s.seenMark(v)
			if s.trail.LevelOf(v) == level {
				nImplicationPoints++
				continue
			}
			learnt = append(learnt, q.Opposite())
			if lvl := s.trail.LevelOf(v); lvl > backjumpLevel {
				backjumpLevel = lvl
			}
		}

		var reason *Clause
		for {
			uip = trail[nextIdx]
			nextIdx--
			reason = s.trail.ReasonOf(uip.VarID())
			if s.seen(uip.VarID()) {
				break
			}
		}

		nImplicationPoints--
		if nImplicationPoints <= 0 {
			break
		}
		if reason == nil {
			internalErrorf("conflict analysis reached a decision literal before a single UIP")
		}
		pending = reason.ExplainAssign()
	}

	learnt[0] = uip.Opposite()
	if len(learnt) == 1 {
		backjumpLevel = 0
	}

	return backjumpLevel, learnt
}
