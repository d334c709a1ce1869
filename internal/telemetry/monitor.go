// Package telemetry provides structured logging and operation tracking
// for a tableau build: a per-build Monitor identified by a correlation
// id, handing out OperationTracker values that record start/complete/
// cancel timing through a zap.Logger.
package telemetry

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Monitor tracks one Build call's operations and emits structured log
// entries for each. The correlation id groups every entry from a single
// Build in a log aggregator, the way a request id would for an HTTP
// handler.
type Monitor struct {
	correlationID string
	logger        *zap.Logger
	startedAt     time.Time

	operationsStarted   atomic.Int64
	operationsCompleted atomic.Int64
	operationsCancelled atomic.Int64
}

// NewMonitor creates a Monitor with a fresh correlation id. A nil logger
// is replaced with zap.NewNop(), so callers that don't care about
// logging never need to special-case it.
func NewMonitor(logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		correlationID: uuid.NewString(),
		logger:        logger,
		startedAt:     time.Now(),
	}
}

// CorrelationID returns the build-scoped id every log entry from this
// monitor carries.
func (m *Monitor) CorrelationID() string { return m.correlationID }

// StartOperation begins tracking a named operation (e.g. "rule:conjunction-true").
func (m *Monitor) StartOperation(name string) *OperationTracker {
	m.operationsStarted.Inc()
	m.logger.Debug("operation started",
		zap.String("correlation_id", m.correlationID),
		zap.String("operation", name),
	)
	return &OperationTracker{monitor: m, name: name, startedAt: time.Now()}
}

// Logger returns the underlying zap logger, scoped with this monitor's
// correlation id, for callers that want to log outside an operation.
func (m *Monitor) Logger() *zap.Logger {
	return m.logger.With(zap.String("correlation_id", m.correlationID))
}

// Summary is a point-in-time snapshot of operation counts.
type Summary struct {
	OperationsStarted   int64
	OperationsCompleted int64
	OperationsCancelled int64
	Elapsed             time.Duration
}

// Snapshot returns the monitor's current counters.
func (m *Monitor) Snapshot() Summary {
	return Summary{
		OperationsStarted:   m.operationsStarted.Load(),
		OperationsCompleted: m.operationsCompleted.Load(),
		OperationsCancelled: m.operationsCancelled.Load(),
		Elapsed:             time.Since(m.startedAt),
	}
}

// OperationTracker tracks one in-flight operation; callers must call
// exactly one of Complete or Cancel.
type OperationTracker struct {
	monitor   *Monitor
	name      string
	startedAt time.Time
	done      atomic.Bool
}

// Complete records successful completion.
func (t *OperationTracker) Complete() {
	if !t.done.CAS(false, true) {
		return
	}
	duration := time.Since(t.startedAt)
	t.monitor.operationsCompleted.Inc()
	t.monitor.logger.Debug("operation completed",
		zap.String("correlation_id", t.monitor.correlationID),
		zap.String("operation", t.name),
		zap.Duration("duration", duration),
	)
}

// Cancel records cancellation.
func (t *OperationTracker) Cancel(cause error) {
	if !t.done.CAS(false, true) {
		return
	}
	duration := time.Since(t.startedAt)
	t.monitor.operationsCancelled.Inc()
	t.monitor.logger.Warn("operation cancelled",
		zap.String("correlation_id", t.monitor.correlationID),
		zap.String("operation", t.name),
		zap.Duration("duration", duration),
		zap.Error(cause),
	)
}
