/**
 * @description
 * This file contains the transfer progress state machine. A submission walks
 * five fixed stages (Request Submitted -> Verification -> Processing ->
 * Confirmation -> Completed); the machine itself is a pure transition
 * function over a single step counter so that, given an event sequence, the
 * resulting state sequence is fully deterministic and testable without any
 * wall-clock involvement. Scheduling of the events lives in the Runner.
 */

package transfer

// Event drives the progress state machine.
type Event int

const (
	// EventSubmit starts a run: step moves to 1 and the panel becomes
	// visible. Accepted whenever no panel is showing, so a resubmit after a
	// failed run restarts from step 1.
	EventSubmit Event = iota
	// EventAdvance moves one step forward, up to step 5.
	EventAdvance
	// EventFail aborts the run: the panel is hidden and the step freezes at
	// its current value. There is no rollback to step 0.
	EventFail
	// EventReset returns the machine to its initial state.
	EventReset
)

// State is the complete progress state: one step counter plus panel
// visibility. Stage active/completed flags are derived, never stored.
type State struct {
	Step     int  // 0 (idle) .. 5 (completed)
	Visible  bool // progress panel shown
	Complete bool // step 5 reached
}

// Transition applies ev to s and returns the next state. It is pure: no
// timers, no I/O, no mutation of s.
func Transition(s State, ev Event) State {
	switch ev {
	case EventSubmit:
		if !s.Visible {
			return State{Step: 1, Visible: true}
		}
	case EventAdvance:
		if s.Visible && s.Step >= 1 && s.Step < lastStep {
			next := State{Step: s.Step + 1, Visible: true}
			next.Complete = next.Step == lastStep
			return next
		}
	case EventFail:
		if s.Visible {
			return State{Step: s.Step, Visible: false}
		}
	case EventReset:
		return State{}
	}
	return s
}

const lastStep = 5

// Stage is one of the five fixed lifecycle phases shown to the user.
type Stage struct {
	ID            int
	Title         string
	Description   string
	EstimatedTime string
}

// Stages returns the fixed stage descriptors in order.
func Stages() []Stage {
	return []Stage{
		{ID: 1, Title: "Request Submitted", Description: "Your transfer request has been submitted and is being processed", EstimatedTime: "1-2 minutes"},
		{ID: 2, Title: "Verification", Description: "Verifying transaction details and security checks", EstimatedTime: "5-10 minutes"},
		{ID: 3, Title: "Processing", Description: "Transaction is being processed by the network", EstimatedTime: "15-30 minutes"},
		{ID: 4, Title: "Confirmation", Description: "Waiting for network confirmations", EstimatedTime: "Varies by network"},
		{ID: 5, Title: "Completed", Description: "Transfer has been successfully completed", EstimatedTime: ""},
	}
}

// StageStatus is the derived display status of one stage.
type StageStatus string

const (
	StagePending   StageStatus = "pending"
	StageActive    StageStatus = "active"
	StageCompleted StageStatus = "completed"
)

// StatusOf derives a stage's status from the current state. A stage is
// active once the step counter reaches its id and completed once the counter
// passes it.
func (s State) StatusOf(stage Stage) StageStatus {
	switch {
	case s.Step > stage.ID:
		return StageCompleted
	case s.Step >= stage.ID:
		return StageActive
	default:
		return StagePending
	}
}
