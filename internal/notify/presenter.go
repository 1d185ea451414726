/**
 * @description
 * Toast-style notification presenter. At most one message is visible at a
 * time: showing a new one immediately replaces the current one (there is no
 * queue), and every message expires on its own fixed display window.
 */

package notify

import (
	"sync"
	"time"
)

// Kind classifies a notification.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// Notification is one transient message.
type Notification struct {
	Kind    Kind
	Message string
}

// DefaultWindow is how long a message stays visible.
const DefaultWindow = 3000 * time.Millisecond

// Presenter holds the currently visible notification, if any.
type Presenter struct {
	window time.Duration

	mu      sync.Mutex
	current *Notification
	gen     uint64

	done      chan struct{}
	closeOnce sync.Once
}

// NewPresenter creates a presenter; window <= 0 selects DefaultWindow.
func NewPresenter(window time.Duration) *Presenter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Presenter{window: window, done: make(chan struct{})}
}

// Show displays a message, superseding any message currently visible. The
// replaced message's expiry timer is disarmed by the generation check.
func (p *Presenter) Show(kind Kind, message string) {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.current = &Notification{Kind: kind, Message: message}
	p.mu.Unlock()

	go func() {
		t := time.NewTimer(p.window)
		defer t.Stop()
		select {
		case <-t.C:
		case <-p.done:
			return
		}
		p.mu.Lock()
		if p.gen == gen {
			p.current = nil
		}
		p.mu.Unlock()
	}()
}

// Success shows a success message.
func (p *Presenter) Success(message string) { p.Show(Success, message) }

// Error shows an error message.
func (p *Presenter) Error(message string) { p.Show(Error, message) }

// Current returns the visible notification, if one is showing.
func (p *Presenter) Current() (Notification, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return Notification{}, false
	}
	return *p.current, true
}

// Close releases pending expiry timers. The presenter must not be used after.
func (p *Presenter) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}
