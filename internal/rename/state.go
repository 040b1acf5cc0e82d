package rename

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// Phase is the stage a transaction has reached. Phases only move forward.
type Phase string

const (
	PhaseInitial    Phase = "initial"
	PhaseManifest   Phase = "manifest"
	PhaseQuarantine Phase = "quarantine"
	PhaseFinalize   Phase = "finalize"
	PhaseCommitted  Phase = "committed"
	PhaseFailed     Phase = "failed"
)

// ErrInvalidStateTransition is returned when an invalid phase transition is attempted
var ErrInvalidStateTransition = errors.New("invalid state transition")

var allowedTransitions = map[Phase][]Phase{
	PhaseInitial:    {PhaseManifest, PhaseFailed},
	PhaseManifest:   {PhaseQuarantine, PhaseFailed},
	PhaseQuarantine: {PhaseFinalize, PhaseFailed},
	PhaseFinalize:   {PhaseCommitted, PhaseFailed},
	PhaseCommitted:  {},
	PhaseFailed:     {},
}

func (p Phase) String() string {
	return string(p)
}

// IsTerminal returns true if the phase is a final one
func (p Phase) IsTerminal() bool {
	return p == PhaseCommitted || p == PhaseFailed
}

// Touched reports whether files may have been renamed once this phase was entered
func (p Phase) Touched() bool {
	return p == PhaseQuarantine || p == PhaseFinalize
}

func (p Phase) canTransitionTo(target Phase) bool {
	return slices.Contains(allowedTransitions[p], target)
}

// state tracks the phase of one transaction
type state struct {
	runID   string
	phase   Phase
	started time.Time
	updated time.Time
}

func newState(runID string) *state {
	now := time.Now()
	return &state{runID: runID, phase: PhaseInitial, started: now, updated: now}
}

func (s *state) transition(target Phase) error {
	if s.phase.IsTerminal() {
		return fmt.Errorf("%w: transaction already %s after %s",
			ErrInvalidStateTransition, s.phase, s.duration())
	}
	if !s.phase.canTransitionTo(target) {
		return fmt.Errorf("%w: cannot transition from %s to %s",
			ErrInvalidStateTransition, s.phase, target)
	}
	slog.Debug("transaction phase", "run_id", s.runID, "from", s.phase, "to", target)
	s.phase = target
	s.updated = time.Now()
	return nil
}

func (s *state) duration() time.Duration {
	return s.updated.Sub(s.started)
}
