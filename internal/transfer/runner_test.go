package transfer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/selewanto/dashboard/internal/domain"
)

type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *fakeNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *fakeNotifier) lastError() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.errors) == 0 {
		return ""
	}
	return n.errors[len(n.errors)-1]
}

func (n *fakeNotifier) lastSuccess() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.successes) == 0 {
		return ""
	}
	return n.successes[len(n.successes)-1]
}

// stateRecorder collects every state change and lets tests block until an
// expected state shows up.
type stateRecorder struct {
	mu     sync.Mutex
	states []State
	ch     chan State
}

func newStateRecorder() *stateRecorder {
	return &stateRecorder{ch: make(chan State, 32)}
}

func (r *stateRecorder) observe(s State) {
	r.mu.Lock()
	r.states = append(r.states, s)
	r.mu.Unlock()
	r.ch <- s
}

func (r *stateRecorder) waitFor(t *testing.T, match func(State) bool) State {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-r.ch:
			if match(s) {
				return s
			}
		case <-deadline:
			t.Fatalf("timed out waiting for state; observed %+v", r.snapshot())
		}
	}
}

func (r *stateRecorder) snapshot() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]State, len(r.states))
	copy(out, r.states)
	return out
}

func testTimings() Timings {
	return Timings{
		Verify:   10 * time.Millisecond,
		Process:  15 * time.Millisecond,
		Confirm:  10 * time.Millisecond,
		Complete: 10 * time.Millisecond,
		Hold:     10 * time.Millisecond,
	}
}

func TestSubmitNoCurrency(t *testing.T) {
	notifier := &fakeNotifier{}
	r := NewRunner(NewForm(), nil, notifier, testTimings(), nil)
	defer r.Close()

	_, err := r.Submit(context.Background(), "user@example.com", 1)
	if !errors.Is(err, ErrNoCurrency) {
		t.Fatalf("expected ErrNoCurrency, got %v", err)
	}
	if notifier.lastError() != "Please select a currency" {
		t.Errorf("notification: got %q", notifier.lastError())
	}
	if s := r.State(); s != (State{}) {
		t.Errorf("state should stay idle, got %+v", s)
	}
}

func TestSubmitFieldErrors(t *testing.T) {
	f := NewForm()
	f.SelectCurrency("USDT")
	notifier := &fakeNotifier{}
	r := NewRunner(f, nil, notifier, testTimings(), nil)
	defer r.Close()

	errs, err := r.Submit(context.Background(), "user@example.com", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(errs) == 0 {
		t.Fatal("expected field errors for an empty form")
	}
	if s := r.State(); s != (State{}) {
		t.Errorf("state should stay idle, got %+v", s)
	}
}

func TestRunnerSuccessWalk(t *testing.T) {
	f := validForm()
	rec := newStateRecorder()
	notifier := &fakeNotifier{}
	var sent domain.MailRequest
	send := func(ctx context.Context, req domain.MailRequest) error {
		sent = req
		return nil
	}
	r := NewRunner(f, send, notifier, testTimings(), rec.observe)
	defer r.Close()

	errs, err := r.Submit(context.Background(), "user@example.com", 40271)
	if err != nil || len(errs) != 0 {
		t.Fatalf("submit failed: errs=%v err=%v", errs, err)
	}

	rec.waitFor(t, func(s State) bool { return s.Complete })
	rec.waitFor(t, func(s State) bool { return s == State{} })

	// The step counter climbed 1..5 in order with no skips.
	wantSteps := []int{1, 2, 3, 4, 5, 0}
	states := rec.snapshot()
	if len(states) != len(wantSteps) {
		t.Fatalf("observed %d states, want %d: %+v", len(states), len(wantSteps), states)
	}
	for i, s := range states {
		if s.Step != wantSteps[i] {
			t.Errorf("state %d: step %d, want %d", i, s.Step, wantSteps[i])
		}
	}

	if notifier.lastSuccess() != "Transfer request submitted successfully!" {
		t.Errorf("success notification: got %q", notifier.lastSuccess())
	}
	if sent.Subject != "Transfer - USDT" {
		t.Errorf("mail subject: got %q", sent.Subject)
	}

	// The hold window elapsed and cleared the form.
	if f.Request.Currency != "" || f.Request.Amount != "" {
		t.Errorf("form not reset after completion: %+v", f.Request)
	}
}

func TestRunnerRejectedCallAbortsEarly(t *testing.T) {
	f := validForm()
	rec := newStateRecorder()
	notifier := &fakeNotifier{}
	send := func(ctx context.Context, req domain.MailRequest) error {
		return errors.New("upstream unavailable")
	}
	r := NewRunner(f, send, notifier, testTimings(), rec.observe)
	defer r.Close()

	if _, err := r.Submit(context.Background(), "user@example.com", 1); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	final := rec.waitFor(t, func(s State) bool { return !s.Visible && s.Step > 0 })
	if final.Step != 2 && final.Step != 3 {
		t.Errorf("aborted run should freeze at step 2 or 3, got %d", final.Step)
	}
	if notifier.lastError() != "Failed to submit transfer request. Please try again." {
		t.Errorf("error notification: got %q", notifier.lastError())
	}

	// No rollback and no further advance.
	time.Sleep(50 * time.Millisecond)
	if s := r.State(); s != final {
		t.Errorf("state changed after abort: %+v", s)
	}
}

func TestRunnerRetryAfterFailure(t *testing.T) {
	f := validForm()
	rec := newStateRecorder()
	notifier := &fakeNotifier{}
	var mu sync.Mutex
	attempts := 0
	send := func(ctx context.Context, req domain.MailRequest) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts == 1 {
			return errors.New("upstream unavailable")
		}
		return nil
	}
	r := NewRunner(f, send, notifier, testTimings(), rec.observe)
	defer r.Close()

	if _, err := r.Submit(context.Background(), "user@example.com", 1); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	rec.waitFor(t, func(s State) bool { return !s.Visible && s.Step > 0 })

	// The failed run released the runner, so the same runner accepts a
	// fresh submit and the panel restarts from step 1.
	errs, err := r.Submit(context.Background(), "user@example.com", 1)
	if err != nil || len(errs) != 0 {
		t.Fatalf("retry submit failed: errs=%v err=%v", errs, err)
	}
	first := rec.waitFor(t, func(s State) bool { return s.Visible })
	if first.Step != 1 {
		t.Errorf("retry should restart at step 1, got %+v", first)
	}
	rec.waitFor(t, func(s State) bool { return s.Complete })
	rec.waitFor(t, func(s State) bool { return s == State{} })

	mu.Lock()
	defer mu.Unlock()
	if attempts != 2 {
		t.Errorf("expected 2 send attempts, got %d", attempts)
	}
}

func TestRunnerSlowCallGatesConfirmation(t *testing.T) {
	f := validForm()
	rec := newStateRecorder()
	notifier := &fakeNotifier{}
	release := make(chan struct{})
	send := func(ctx context.Context, req domain.MailRequest) error {
		<-release
		return nil
	}
	r := NewRunner(f, send, notifier, testTimings(), rec.observe)
	defer r.Close()

	if _, err := r.Submit(context.Background(), "user@example.com", 1); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	rec.waitFor(t, func(s State) bool { return s.Step == 3 })

	// Step 4 must not fire while the call is unresolved.
	time.Sleep(50 * time.Millisecond)
	if s := r.State(); s.Step != 3 {
		t.Fatalf("advanced past step 3 before the call resolved: %+v", s)
	}

	close(release)
	rec.waitFor(t, func(s State) bool { return s.Complete })
}

func TestRunnerRejectsConcurrentSubmit(t *testing.T) {
	f := validForm()
	notifier := &fakeNotifier{}
	release := make(chan struct{})
	defer close(release)
	send := func(ctx context.Context, req domain.MailRequest) error {
		<-release
		return nil
	}
	r := NewRunner(f, send, notifier, testTimings(), nil)
	defer r.Close()

	if _, err := r.Submit(context.Background(), "user@example.com", 1); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := r.Submit(context.Background(), "user@example.com", 1); !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}
}

func TestRunnerClose(t *testing.T) {
	f := validForm()
	rec := newStateRecorder()
	notifier := &fakeNotifier{}
	send := func(ctx context.Context, req domain.MailRequest) error { return nil }
	r := NewRunner(f, send, notifier, testTimings(), rec.observe)

	if _, err := r.Submit(context.Background(), "user@example.com", 1); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	rec.waitFor(t, func(s State) bool { return s.Step == 2 })
	r.Close()

	frozen := r.State()
	time.Sleep(50 * time.Millisecond)
	if s := r.State(); s != frozen {
		t.Errorf("state changed after Close: %+v", s)
	}
	r.Close() // idempotent
}

func TestStageViews(t *testing.T) {
	f := validForm()
	notifier := &fakeNotifier{}
	r := NewRunner(f, nil, notifier, testTimings(), nil)
	defer r.Close()

	views := r.StageViews()
	if len(views) != 5 {
		t.Fatalf("expected 5 stage views, got %d", len(views))
	}
	for _, v := range views {
		if v.Status != StagePending {
			t.Errorf("stage %d: got %q before submit", v.Stage.ID, v.Status)
		}
	}
}
