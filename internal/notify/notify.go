// Package notify is the status surface the dashboard's toast layer consumes.
// Every catalog load and order submission reports its lifecycle here.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

type Notifier interface {
	Started(label string)
	Succeeded(label string)
	Failed(label string, err error)
}

type zapNotifier struct {
	logger *zap.Logger
}

// NewZapNotifier reports operation lifecycle through the service logger.
func NewZapNotifier(logger *zap.Logger) Notifier {
	return &zapNotifier{logger: logger}
}

func (n *zapNotifier) Started(label string) {
	n.logger.Info("operation started", zap.String("label", label))
}

func (n *zapNotifier) Succeeded(label string) {
	n.logger.Info("operation succeeded", zap.String("label", label))
}

func (n *zapNotifier) Failed(label string, err error) {
	n.logger.Error("operation failed", zap.String("label", label), zap.Error(err))
}

type nopNotifier struct{}

func NewNop() Notifier { return nopNotifier{} }

func (nopNotifier) Started(string)       {}
func (nopNotifier) Succeeded(string)     {}
func (nopNotifier) Failed(string, error) {}

type Phase string

const (
	PhaseStarted   Phase = "started"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

type Event struct {
	Phase Phase
	Label string
	Err   error
}

// Recorder captures events for assertions in tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Started(label string) {
	r.record(Event{Phase: PhaseStarted, Label: label})
}

func (r *Recorder) Succeeded(label string) {
	r.record(Event{Phase: PhaseSucceeded, Label: label})
}

func (r *Recorder) Failed(label string, err error) {
	r.record(Event{Phase: PhaseFailed, Label: label, Err: err})
}

func (r *Recorder) record(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
