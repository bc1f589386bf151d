package sat

// propagate performs unit propagation (BCP, spec.md §4.3) to closure using
// the two-watched-literal scheme: every literal enqueued since the last
// call is tested against the clauses watching it, which may enqueue further
// literals (extending the very trail this loop walks) or report a conflict.
//
// It returns the falsified clause on conflict, or nil once the trail has no
// more unprocessed literals.
func (s *Solver) propagate() *Clause {
	lits := s.trail.Literals()
	for s.qHead < len(lits) {
		l := lits[s.qHead]
		s.qHead++

		watchList := s.watchers[l]
		s.tmpWatchers = append(s.tmpWatchers[:0], watchList...)
		s.watchers[l] = watchList[:0]

		for i, w := range s.tmpWatchers {
			// The guard check is not necessary for correctness: it only
			// avoids loading a clause that cannot possibly be unit or
			// falsified because one of its other literals is already true.
			if s.LitValue(w.guard) == True {
				s.watchers[l] = append(s.watchers[l], w)
				continue
			}

			if w.clause.Propagate(s, l) {
				continue
			}

			s.watchers[l] = append(s.watchers[l], s.tmpWatchers[i+1:]...)
			return w.clause
		}

		lits = s.trail.Literals()
	}
	return nil
}
