package engine

import (
	"log"
	"sync"
	"time"

	"github.com/lowaak/circuit-coach/internal/events"
	"github.com/lowaak/circuit-coach/internal/go_func_utils"
	"github.com/lowaak/circuit-coach/internal/plan"
)

// engineCommand represents intents sent to the engine goroutine
type engineCommand struct {
	kind commandKind
	n    int
	plan *plan.Normalized
	snap *Snapshot
}

type commandKind int

const (
	cmdSetPlan commandKind = iota
	cmdStart
	cmdPause
	cmdResume
	cmdComplete
	cmdSkipReady
	cmdLeadInDone
	cmdMarkDone
	cmdExtendRest
	cmdSkipRest
	cmdSkipNext
	cmdSkipPrev
	cmdJump
	cmdRestart
	cmdResumeSnapshot
)

// Engine owns a Session and drives it with a single 1-second ticker.
// All intents are serialized through one command channel into one
// goroutine, so the session only ever sees one mutation in flight.
// State snapshots and cues are published through events.
type Engine struct {
	logger *log.Logger
	timing Timing

	stateEvent *events.ChannelEvent[State]
	cueEvent   *events.CallbackEvent[Cue]

	// lastState mirrors the session's latest snapshot for synchronous reads
	mu        sync.RWMutex
	lastState State

	cmdChan      chan engineCommand
	doneChan     chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewEngine creates an engine with no plan loaded and starts its
// goroutine. Callers must Shutdown when done or the periodic driver
// leaks.
func NewEngine(timing Timing, logger *log.Logger) *Engine {
	if logger == nil {
		panic("Engine: logger cannot be nil")
	}

	e := &Engine{
		logger:     logger,
		timing:     timing,
		stateEvent: events.NewChannelEvent[State](true),
		cueEvent:   events.NewCallbackEvent[Cue](false),
		cmdChan:    make(chan engineCommand, 8),
		doneChan:   make(chan struct{}),
	}

	e.wg.Add(1)
	go_func_utils.SafeGo(logger, func() { e.runLoop() })

	return e
}

// ListenToState registers a channel to receive state snapshots.
// Returns a deregistration function.
func (e *Engine) ListenToState(ch chan<- State) func() {
	return e.stateEvent.Listen(ch)
}

// ListenToCues registers a callback invoked for each narrator cue.
// Returns a deregistration function.
func (e *Engine) ListenToCues(cb func(Cue)) func() {
	return e.cueEvent.Listen(cb)
}

// CurrentState returns the most recently published state.
func (e *Engine) CurrentState() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastState
}

// SetPlan loads a plan for the next session. Rejected while a session
// is in progress.
func (e *Engine) SetPlan(n plan.Normalized) {
	cp := n
	e.send(engineCommand{kind: cmdSetPlan, plan: &cp})
}

// StartSession begins the loaded plan from the top.
func (e *Engine) StartSession() { e.send(engineCommand{kind: cmdStart}) }

// PauseSession freezes the session and stops the periodic driver.
func (e *Engine) PauseSession() { e.send(engineCommand{kind: cmdPause}) }

// ResumeSession unfreezes a paused session.
func (e *Engine) ResumeSession() { e.send(engineCommand{kind: cmdResume}) }

// CompleteSession forces the terminal state.
func (e *Engine) CompleteSession() { e.send(engineCommand{kind: cmdComplete}) }

// SkipReadyCountdown collapses the ready countdown.
func (e *Engine) SkipReadyCountdown() { e.send(engineCommand{kind: cmdSkipReady}) }

// LeadInCountdownFinished reports that an externally rendered lead-in ended.
func (e *Engine) LeadInCountdownFinished() { e.send(engineCommand{kind: cmdLeadInDone}) }

// MarkExerciseDone completes the current rep-based exercise.
func (e *Engine) MarkExerciseDone() { e.send(engineCommand{kind: cmdMarkDone}) }

// ExtendRest lengthens the current rest period.
func (e *Engine) ExtendRest() { e.send(engineCommand{kind: cmdExtendRest}) }

// SkipRest ends the current rest immediately.
func (e *Engine) SkipRest() { e.send(engineCommand{kind: cmdSkipRest}) }

// SkipToNext advances past the current step.
func (e *Engine) SkipToNext() { e.send(engineCommand{kind: cmdSkipNext}) }

// SkipToPrevious walks back one step.
func (e *Engine) SkipToPrevious() { e.send(engineCommand{kind: cmdSkipPrev}) }

// JumpToGlobalIndex lands on an arbitrary unit of the session.
func (e *Engine) JumpToGlobalIndex(n int) { e.send(engineCommand{kind: cmdJump, n: n}) }

// RestartCurrentExercise rewinds the current step to its full duration.
func (e *Engine) RestartCurrentExercise() { e.send(engineCommand{kind: cmdRestart}) }

// ResumeFromSnapshot restores a suspended session.
func (e *Engine) ResumeFromSnapshot(snap Snapshot) {
	cp := snap
	e.send(engineCommand{kind: cmdResumeSnapshot, snap: &cp})
}

// Snapshot captures the resumable position of the current session.
func (e *Engine) Snapshot() Snapshot {
	st := e.CurrentState()
	return Snapshot{
		PlanName:      st.PlanName,
		Phase:         st.Phase,
		ExerciseIndex: st.ExerciseIndex,
		SetIndex:      st.SetIndex,
		Round:         st.Round,
		SavedAt:       time.Now(),
	}
}

// Shutdown stops the engine goroutine and its ticker. Safe to call more
// than once; only the first call has effect.
func (e *Engine) Shutdown() {
	e.shutdownOnce.Do(func() {
		e.logger.Printf("Engine: Shutting down")
		close(e.doneChan)
		e.wg.Wait()
		e.logger.Printf("Engine: Shutdown complete")
	})
}

func (e *Engine) send(cmd engineCommand) {
	select {
	case e.cmdChan <- cmd:
	case <-e.doneChan:
	}
}

// runLoop is the engine goroutine: the only place the session is
// touched. It owns the one periodic driver; pausing stops the ticker
// outright (no drift) and navigation resets it so a step never starts
// mid-second.
func (e *Engine) runLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(1 * time.Second)
	ticker.Stop() // armed when a session starts

	session := NewSession(plan.Normalize(plan.Plan{}), e.timing, nil)

	for {
		select {
		case <-e.doneChan:
			ticker.Stop()
			e.logger.Printf("Engine: Goroutine exiting")
			return

		case cmd := <-e.cmdChan:
			session = e.applyCommand(session, cmd, ticker)
			e.publish(session)

		case <-ticker.C:
			session.Tick()
			if session.State().Phase == PhaseCompleted {
				ticker.Stop()
			}
			e.publish(session)
		}
	}
}

func (e *Engine) applyCommand(session *Session, cmd engineCommand, ticker *time.Ticker) *Session {
	switch cmd.kind {
	case cmdSetPlan:
		st := session.State()
		if st.IsPlaying {
			e.logger.Printf("Engine: Cannot set plan while a session is in progress")
			return session
		}
		e.logger.Printf("Engine: Plan %q loaded (%d units)", cmd.plan.Plan.Name, cmd.plan.TotalUnits())
		return NewSession(*cmd.plan, e.timing, nil)

	case cmdStart:
		session.Start()
		ticker.Reset(1 * time.Second)
		e.logger.Printf("Engine: Session started")

	case cmdPause:
		session.Pause()
		ticker.Stop()
		e.logger.Printf("Engine: Session paused")

	case cmdResume:
		session.Resume()
		ticker.Reset(1 * time.Second)
		e.logger.Printf("Engine: Session resumed")

	case cmdComplete:
		session.Complete()
		ticker.Stop()
		e.logger.Printf("Engine: Session completed by request")

	case cmdSkipReady:
		session.SkipReadyCountdown()

	case cmdLeadInDone:
		session.FinishLeadInCountdown()

	case cmdMarkDone:
		session.MarkExerciseDone()

	case cmdExtendRest:
		session.ExtendRest()

	case cmdSkipRest:
		session.SkipRest()
		ticker.Reset(1 * time.Second)

	case cmdSkipNext:
		session.SkipToNext()
		ticker.Reset(1 * time.Second)

	case cmdSkipPrev:
		session.SkipToPrevious()
		ticker.Reset(1 * time.Second)

	case cmdJump:
		session.JumpToGlobalIndex(cmd.n)
		ticker.Reset(1 * time.Second)

	case cmdRestart:
		session.RestartCurrentExercise()
		ticker.Reset(1 * time.Second)

	case cmdResumeSnapshot:
		session.ResumeFromSnapshot(*cmd.snap)
		ticker.Reset(1 * time.Second)
		e.logger.Printf("Engine: Session resumed from snapshot (%s, exercise %d, round %d)",
			cmd.snap.Phase, cmd.snap.ExerciseIndex, cmd.snap.Round)
	}

	// A reset above only sticks while the session is actually running;
	// navigation intents arriving while idle, paused or completed must
	// not arm the periodic driver.
	if st := session.State(); !st.IsPlaying || st.IsPaused {
		ticker.Stop()
	}
	return session
}

func (e *Engine) publish(session *Session) {
	st := session.State()

	e.mu.Lock()
	e.lastState = st
	e.mu.Unlock()

	e.stateEvent.Notify(st)
	for _, c := range session.TakeCues() {
		e.cueEvent.Notify(c)
	}
}
