package engine

// SkipToNext advances past the current step. In the rest phase it
// resolves the pending target (or computed next position) immediately
// instead of waiting out the rest clock; the finished exercise was
// already credited when it completed, so this call adds nothing to the
// completed tally. Elsewhere it takes the normal step-completed route
// with the step counted as skipped, then collapses the resulting rest.
func (s *Session) SkipToNext() {
	if !s.isPlaying || s.phase == PhaseCompleted {
		return
	}
	if s.showReady {
		s.SkipReadyCountdown()
		return
	}
	s.showLeadIn = false

	if s.phase == PhaseRest {
		s.leaveRest()
		return
	}
	s.advance(false)
	if s.phase == PhaseRest {
		s.leaveRest()
	}
}

// SkipToPrevious walks back one step, crossing phase boundaries to the
// last step of the preceding phase. It never lands on a rest screen and
// is a no-op at the very first step of the session.
func (s *Session) SkipToPrevious() {
	if !s.isPlaying || s.phase == PhaseCompleted {
		return
	}
	s.showLeadIn = false

	w := s.plan.WarmupCount()
	e := s.plan.ExerciseCount()

	switch s.phase {
	case PhaseWarmup:
		if s.exerciseIndex == 0 {
			return
		}
		s.enterWarmup(s.exerciseIndex - 1)

	case PhaseWorkout:
		switch {
		case s.exerciseIndex > 0:
			s.enterWorkout(s.exerciseIndex-1, s.round)
		case s.round > 1:
			s.enterWorkout(e-1, s.round-1)
		case w > 0:
			s.enterWarmup(w - 1)
		default:
			return
		}

	case PhaseCooldown:
		switch {
		case s.exerciseIndex > 0:
			s.enterCooldown(s.exerciseIndex - 1)
		case e > 0:
			s.enterWorkout(e-1, s.plan.MaxRounds)
		case w > 0:
			s.enterWarmup(w - 1)
		default:
			return
		}

	case PhaseRest:
		// Land back on the step the rest followed.
		s.pending = nil
		if s.restFrom == PhaseWarmup {
			s.enterWarmup(s.exerciseIndex)
		} else {
			s.enterWorkout(s.exerciseIndex, s.round)
		}

	default:
		return
	}
	s.beginLeadIn()
}

// JumpToGlobalIndex converts a 0-based index spanning all countable
// units (warm-up steps, main exercises across rounds, cool-down steps)
// into a position by successive range subtraction. Indices beyond the
// total route to completed rather than erroring.
func (s *Session) JumpToGlobalIndex(n int) {
	if !s.isPlaying || s.phase == PhaseCompleted {
		return
	}
	if n < 0 {
		n = 0
	}
	s.showReady = false
	s.showLeadIn = false
	s.pending = nil

	w := s.plan.WarmupCount()
	e := s.plan.ExerciseCount()
	r := s.plan.MaxRounds
	c := s.plan.CooldownCount()

	switch {
	case n < w:
		s.enterWarmup(n)
	case n < w+e*r:
		m := n - w
		s.enterWorkout(m%e, m/e+1)
	case n < w+e*r+c:
		s.enterCooldown(n - w - e*r)
	default:
		s.complete()
		return
	}
	s.beginLeadIn()
}

// RestartCurrentExercise resets the current step to its nominal duration
// and re-triggers its lead-in countdown. Indices and stats are left
// untouched.
func (s *Session) RestartCurrentExercise() {
	if !s.isPlaying || s.phase == PhaseCompleted {
		return
	}
	s.showLeadIn = false

	switch s.phase {
	case PhaseWarmup:
		s.enterWarmup(s.exerciseIndex)
	case PhaseWorkout:
		s.enterWorkout(s.exerciseIndex, s.round)
	case PhaseCooldown:
		s.enterCooldown(s.exerciseIndex)
	case PhaseRest:
		// Rewind the rest clock; no lead-in for rest screens.
		s.timeRemaining = s.totalTime
		return
	default:
		return
	}
	s.beginLeadIn()
}

// ResumeFromSnapshot restores a suspended session. A snapshot taken
// during a rest is never shown as a rest: the landing point is the next
// position the rest would have resolved to. Out-of-range snapshots are
// absorbed into the completed state. The ready countdown runs before the
// landing step goes live.
func (s *Session) ResumeFromSnapshot(snap Snapshot) {
	if s.isPlaying || s.phase == PhaseCompleted {
		return
	}
	s.isPlaying = true
	s.stats.StartedAt = s.now()

	w := s.plan.WarmupCount()
	e := s.plan.ExerciseCount()
	r := s.plan.MaxRounds
	c := s.plan.CooldownCount()

	if snap.SetIndex >= 1 {
		s.setIndex = snap.SetIndex
	}
	round := snap.Round
	if round < 1 {
		round = 1
	}

	switch snap.Phase {
	case PhaseIdleReady:
		// Nothing had started; behave like a fresh start.

	case PhaseWarmup:
		if snap.ExerciseIndex < 0 || snap.ExerciseIndex >= w {
			s.complete()
			return
		}
		s.enterWarmup(snap.ExerciseIndex)

	case PhaseWorkout:
		if snap.ExerciseIndex < 0 || snap.ExerciseIndex >= e || round > r {
			s.complete()
			return
		}
		s.enterWorkout(snap.ExerciseIndex, round)

	case PhaseRest:
		// The pending target was not persisted; recompute what follows a
		// between-exercise rest at the snapshot position.
		switch {
		case snap.ExerciseIndex < 0 || snap.ExerciseIndex >= e || round > r:
			s.complete()
			return
		case snap.ExerciseIndex+1 < e:
			s.enterWorkout(snap.ExerciseIndex+1, round)
		case round < r:
			s.setIndex++
			s.enterWorkout(0, round+1)
		case c > 0:
			s.enterCooldown(0)
		default:
			s.complete()
			return
		}

	case PhaseCooldown:
		if snap.ExerciseIndex < 0 || snap.ExerciseIndex >= c {
			s.complete()
			return
		}
		s.enterCooldown(snap.ExerciseIndex)

	default:
		s.complete()
		return
	}

	s.showReady = true
	s.countdownRemaining = s.timing.ReadyCountdownSeconds
}
