/**
 * @description
 * The Runner is the effect half of the transfer workflow: it owns a Form and
 * a progress State, and on submission it schedules the timed stage advances
 * while the real send-mail call executes concurrently in the background.
 *
 * Ordering guarantees:
 *   - Steps 2 and 3 are time-gated only; they fire on their fixed delays no
 *     matter how long the network call takes.
 *   - Steps 4 and 5 are gated on the call's resolution. A failed call aborts
 *     the run at whatever step is current (2 or 3) and hides the panel.
 *   - After step 5 the completed panel holds for a fixed window, then the
 *     form and the progress state reset to their initial values.
 *
 * Close releases every pending timer; no state is mutated after Close.
 */

package transfer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/selewanto/dashboard/internal/domain"
)

// SendFunc executes the real transfer submission (the send-mail POST).
type SendFunc func(ctx context.Context, req domain.MailRequest) error

// Notifier receives the transient success/error messages raised by a run.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Timings are the fixed delays between stage advances.
type Timings struct {
	Verify   time.Duration // step 1 -> 2
	Process  time.Duration // step 2 -> 3
	Confirm  time.Duration // call resolved -> step 4
	Complete time.Duration // step 4 -> 5
	Hold     time.Duration // step 5 shown before reset
}

// DefaultTimings returns the delays the dashboard animates with.
func DefaultTimings() Timings {
	return Timings{
		Verify:   2000 * time.Millisecond,
		Process:  3000 * time.Millisecond,
		Confirm:  2000 * time.Millisecond,
		Complete: 1500 * time.Millisecond,
		Hold:     5000 * time.Millisecond,
	}
}

var (
	// ErrNoCurrency is returned when submit is attempted before a currency
	// has been selected.
	ErrNoCurrency = errors.New("no currency selected")
	// ErrSubmissionInFlight is returned while a previous run is still active.
	ErrSubmissionInFlight = errors.New("a transfer submission is already in progress")
)

// Runner sequences one transfer submission at a time.
type Runner struct {
	form     *Form
	send     SendFunc
	notifier Notifier
	timings  Timings
	onChange func(State)

	mu      sync.Mutex
	state   State
	running bool

	done      chan struct{}
	closeOnce sync.Once
}

// NewRunner wires a runner around the given form, submission call, and
// notification sink. onChange, when non-nil, observes every state change.
func NewRunner(form *Form, send SendFunc, notifier Notifier, timings Timings, onChange func(State)) *Runner {
	return &Runner{
		form:     form,
		send:     send,
		notifier: notifier,
		timings:  timings,
		onChange: onChange,
		done:     make(chan struct{}),
	}
}

// State returns the current progress state.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// StageView pairs a stage descriptor with its derived display status.
type StageView struct {
	Stage  Stage
	Status StageStatus
}

// StageViews derives the per-stage statuses for the current state.
func (r *Runner) StageViews() []StageView {
	s := r.State()
	stages := Stages()
	views := make([]StageView, len(stages))
	for i, st := range stages {
		views[i] = StageView{Stage: st, Status: s.StatusOf(st)}
	}
	return views
}

// Submit validates the form and, when valid, starts the staged run. Field
// errors are returned for inline display; a missing currency raises an error
// notification and short-circuits before anything else happens.
func (r *Runner) Submit(ctx context.Context, email string, accountID int64) (FieldErrors, error) {
	if r.form.Request.Currency == "" {
		r.notifier.Error("Please select a currency")
		return nil, ErrNoCurrency
	}
	if errs := r.form.Validate(); len(errs) > 0 {
		return errs, nil
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	r.running = true
	r.mu.Unlock()

	mail := r.form.ComposeMail(email, accountID)
	r.apply(EventSubmit)
	go r.run(ctx, mail)
	return nil, nil
}

// Close cancels all pending timed transitions. Safe to call more than once.
func (r *Runner) Close() {
	r.closeOnce.Do(func() { close(r.done) })
}

func (r *Runner) run(ctx context.Context, mail domain.MailRequest) {
	callCh := make(chan error, 1)
	go func() { callCh <- r.send(ctx, mail) }()

	if !r.wait(r.timings.Verify) {
		return
	}
	r.apply(EventAdvance) // step 2: Verification

	// Step 3 is time-gated; the call's result is drained concurrently so a
	// rejection aborts without waiting out the timer.
	var callErr error
	resolved := false
	processTimer := time.NewTimer(r.timings.Process)
	defer processTimer.Stop()
waitProcess:
	for {
		select {
		case callErr = <-callCh:
			resolved = true
			if callErr != nil {
				r.fail()
				return
			}
			callCh = nil
		case <-processTimer.C:
			break waitProcess
		case <-r.done:
			return
		}
	}
	r.apply(EventAdvance) // step 3: Processing

	if !resolved {
		select {
		case callErr = <-callCh:
		case <-r.done:
			return
		}
		if callErr != nil {
			r.fail()
			return
		}
	}

	if !r.wait(r.timings.Confirm) {
		return
	}
	r.apply(EventAdvance) // step 4: Confirmation

	if !r.wait(r.timings.Complete) {
		return
	}
	r.apply(EventAdvance) // step 5: Completed
	r.notifier.Success("Transfer request submitted successfully!")

	if !r.wait(r.timings.Hold) {
		return
	}
	r.reset()
}

// wait blocks for d or until the runner is closed; it reports false when the
// runner closed first.
func (r *Runner) wait(d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-r.done:
		return false
	}
}

func (r *Runner) apply(ev Event) {
	r.mu.Lock()
	r.state = Transition(r.state, ev)
	next := r.state
	r.mu.Unlock()
	if r.onChange != nil {
		r.onChange(next)
	}
}

// fail and reset release the runner in the same critical section as the
// state change, so a caller that observes the terminal state may submit
// again immediately.
func (r *Runner) fail() {
	r.finish(EventFail)
	r.notifier.Error("Failed to submit transfer request. Please try again.")
}

func (r *Runner) reset() {
	r.form.Reset()
	r.finish(EventReset)
}

func (r *Runner) finish(ev Event) {
	r.mu.Lock()
	r.state = Transition(r.state, ev)
	next := r.state
	r.running = false
	r.mu.Unlock()
	if r.onChange != nil {
		r.onChange(next)
	}
}
