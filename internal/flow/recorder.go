package flow

import "sync"

// Outcome is what a submit asked the caller to do.
type Outcome struct {
	Navigated     bool
	Destination   Destination
	Message       string
	Notifications []Notification
}

// Recorder collects navigation and notifications so a request handler can
// act on them once Submit returns.
type Recorder struct {
	mu      sync.Mutex
	outcome Outcome
}

func (r *Recorder) Navigate(dest Destination, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcome.Navigated = true
	r.outcome.Destination = dest
	r.outcome.Message = message
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcome.Notifications = append(r.outcome.Notifications, n)
}

// Drain returns the recorded outcome and resets the recorder.
func (r *Recorder) Drain() Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.outcome
	r.outcome = Outcome{}
	return out
}
