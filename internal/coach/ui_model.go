package coach

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/lowaak/circuit-coach/internal/engine"
	"github.com/lowaak/circuit-coach/internal/events"
	"github.com/lowaak/circuit-coach/internal/go_func_utils"
	"github.com/lowaak/circuit-coach/internal/plan"
)

// UIState holds the current state of the UI that views need to render
type UIState struct {
	Mode UIMode
}

// UIModel is the state hub between the engine and the views. It relays
// session state, keeps the plan library and the log tail, and publishes
// everything through events so views stay passive.
type UIModel struct {
	logEvent              *events.ChannelEvent[string]
	closeApplicationEvent *events.ChannelEvent[struct{}]
	uiStateEvent          *events.ChannelEvent[UIState]
	uiState               UIState
	plansEvent            *events.ChannelEvent[[]plan.Plan]
	plans                 []plan.Plan
	sessionStateEvent     *events.ChannelEvent[engine.State]
	sessionState          engine.State
	announcementEvent     *events.ChannelEvent[string]

	logLines []string
	logMu    sync.RWMutex
	mu       sync.RWMutex
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	logger   *log.Logger

	cueUnregister func()
}

const maxLogLines = 1000

func NewUIModel(eng *engine.Engine, logger *log.Logger, uiLogChan <-chan string) *UIModel {
	if eng == nil {
		panic("UIModel: engine cannot be nil")
	}
	if logger == nil {
		panic("UIModel: logger cannot be nil")
	}
	if uiLogChan == nil {
		panic("UIModel: uiLogChan cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())
	model := &UIModel{
		logEvent:              events.NewChannelEvent[string](false),
		closeApplicationEvent: events.NewChannelEvent[struct{}](true),
		uiStateEvent:          events.NewChannelEvent[UIState](true),
		uiState:               UIState{Mode: UIModePlanSelection},
		plansEvent:            events.NewChannelEvent[[]plan.Plan](true),
		sessionStateEvent:     events.NewChannelEvent[engine.State](true),
		announcementEvent:     events.NewChannelEvent[string](false),
		logLines:              make([]string, 0, maxLogLines),
		ctx:                   ctx,
		cancel:                cancel,
		logger:                logger,
	}

	// Relay session state from the engine
	model.wg.Add(1)
	go_func_utils.SafeGo(model.logger, func() { model.listenToEngineState(ctx, eng) })

	// Read from the UI log channel and populate logLines
	model.wg.Add(1)
	go_func_utils.SafeGo(model.logger, func() { model.readFromLogChannel(ctx, uiLogChan) })

	// Cues become coach announcements
	model.cueUnregister = eng.ListenToCues(func(c engine.Cue) { model.announce(c) })

	return model
}

// Shutdown stops all goroutines and waits for them to finish
func (m *UIModel) Shutdown() {
	m.logger.Println("UIModel: Shutting down")
	if m.cueUnregister != nil {
		m.cueUnregister()
	}
	m.cancel()
	m.wg.Wait()
	m.logger.Println("UIModel: Shutdown complete")
}

// ListenToLog registers a channel to receive log messages
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToLog(ch chan<- string) func() {
	return m.logEvent.Listen(ch)
}

// ListenToCloseApplication registers a channel to receive close application signals
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToCloseApplication(ch chan<- struct{}) func() {
	return m.closeApplicationEvent.Listen(ch)
}

// RequestCloseApplication signals that the application should close
func (m *UIModel) RequestCloseApplication() {
	m.closeApplicationEvent.Notify(struct{}{})
}

// ListenToUIState registers a channel to receive UI state changes
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToUIState(ch chan<- UIState) func() {
	return m.uiStateEvent.Listen(ch)
}

// GetUIState returns the current UI state
func (m *UIModel) GetUIState() UIState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.uiState
}

// SetMode updates the current UI mode and notifies listeners
func (m *UIModel) SetMode(mode UIMode) {
	m.mu.Lock()
	if m.uiState.Mode == mode {
		m.mu.Unlock()
		return
	}
	m.uiState.Mode = mode
	state := m.uiState
	m.mu.Unlock()

	m.uiStateEvent.Notify(state)
}

// ListenToPlans registers a channel to receive plan library changes
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToPlans(ch chan<- []plan.Plan) func() {
	return m.plansEvent.Listen(ch)
}

// GetPlans returns a copy of the current plan library
func (m *UIModel) GetPlans() []plan.Plan {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]plan.Plan, len(m.plans))
	copy(result, m.plans)
	return result
}

// SetPlans replaces the plan library and notifies listeners
func (m *UIModel) SetPlans(plans []plan.Plan) {
	m.mu.Lock()
	m.plans = make([]plan.Plan, len(plans))
	copy(m.plans, plans)
	snapshot := make([]plan.Plan, len(m.plans))
	copy(snapshot, m.plans)
	m.mu.Unlock()

	m.plansEvent.Notify(snapshot)
}

// PlanByIndex returns the plan at the given library index.
func (m *UIModel) PlanByIndex(index int) (plan.Plan, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if index < 0 || index >= len(m.plans) {
		return plan.Plan{}, false
	}
	return m.plans[index], true
}

// ListenToSessionState registers a channel to receive session state updates
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToSessionState(ch chan<- engine.State) func() {
	return m.sessionStateEvent.Listen(ch)
}

// GetSessionState returns the most recent session state
func (m *UIModel) GetSessionState() engine.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionState
}

// ListenToAnnouncements registers a channel to receive coach announcements
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToAnnouncements(ch chan<- string) func() {
	return m.announcementEvent.Listen(ch)
}

// listenToEngineState relays engine state into the model's own event so
// views only ever depend on the model.
func (m *UIModel) listenToEngineState(ctx context.Context, eng *engine.Engine) {
	defer m.wg.Done()

	stateChan := make(chan engine.State, 8)
	unregister := eng.ListenToState(stateChan)
	defer unregister()

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-stateChan:
			if !ok {
				return
			}
			m.mu.Lock()
			m.sessionState = st
			m.mu.Unlock()

			m.sessionStateEvent.Notify(st)
		}
	}
}

// announce turns an engine cue into a human line for the log pane and
// the announcement event.
func (m *UIModel) announce(c engine.Cue) {
	var line string
	switch c.Kind {
	case engine.CuePhaseEntered:
		switch c.Phase {
		case engine.PhaseWarmup:
			line = "Warm-up time"
		case engine.PhaseWorkout:
			line = "Main circuit, let's go"
		case engine.PhaseRest:
			line = "Rest"
		case engine.PhaseCooldown:
			line = "Cool-down"
		default:
			return
		}
	case engine.CueExerciseStarted:
		line = fmt.Sprintf("Next up: %s", c.StepName)
	case engine.CueCountdownTick:
		line = fmt.Sprintf("%d...", c.Seconds)
	case engine.CueSessionCompleted:
		line = "Session complete, great work!"
	default:
		return
	}

	m.logger.Printf("Coach: %s", line)
	m.announcementEvent.Notify(line)
}

// readFromLogChannel reads log lines from the channel and populates logLines
func (m *UIModel) readFromLogChannel(ctx context.Context, logChan <-chan string) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-logChan:
			if !ok {
				// Channel closed
				return
			}

			// Store in log lines buffer (max 1000 lines)
			m.logMu.Lock()
			m.logLines = append(m.logLines, line)
			if len(m.logLines) > maxLogLines {
				// Remove oldest lines, keep the most recent maxLogLines
				m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
			}
			m.logMu.Unlock()

			// Notify listeners for immediate display
			m.logEvent.Notify(line)
		}
	}
}

// GetLogTail returns the last n lines of logs
func (m *UIModel) GetLogTail(n int) []string {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	if n <= 0 {
		return []string{}
	}

	if n >= len(m.logLines) {
		// Return all lines
		result := make([]string, len(m.logLines))
		copy(result, m.logLines)
		return result
	}

	// Return last n lines
	result := make([]string, n)
	copy(result, m.logLines[len(m.logLines)-n:])
	return result
}
