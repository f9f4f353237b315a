// Package notify surfaces the outcome of user-initiated actions.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Notifier receives the outcome of an attempted action. Every remote
// failure is collapsed into a single Failure call naming the action; no
// status-code distinction is surfaced.
type Notifier interface {
	Success(action string)
	Failure(action string, err error)
}

// ZapNotifier logs notifications through zap.
type ZapNotifier struct {
	logger *zap.Logger
}

func NewZapNotifier(logger *zap.Logger) *ZapNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapNotifier{logger: logger}
}

func (n *ZapNotifier) Success(action string) {
	n.logger.Info("action succeeded", zap.String("action", action))
}

func (n *ZapNotifier) Failure(action string, err error) {
	n.logger.Warn("action failed", zap.String("action", action), zap.Error(err))
}

// Recorder captures notifications for inspection in tests.
type Recorder struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (r *Recorder) Success(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, action)
}

func (r *Recorder) Failure(action string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, action)
}

func (r *Recorder) Successes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.successes...)
}

func (r *Recorder) Failures() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.failures...)
}
