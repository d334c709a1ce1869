package telemetry

import "testing"

func TestMonitorTracksOperations(t *testing.T) {
	m := NewMonitor(nil)

	tracker := m.StartOperation("rule:conjunction-true")
	tracker.Complete()

	other := m.StartOperation("rule:disjunction-true")
	other.Cancel(nil)

	snap := m.Snapshot()
	if snap.OperationsStarted != 2 {
		t.Errorf("OperationsStarted = %d, want 2", snap.OperationsStarted)
	}
	if snap.OperationsCompleted != 1 {
		t.Errorf("OperationsCompleted = %d, want 1", snap.OperationsCompleted)
	}
	if snap.OperationsCancelled != 1 {
		t.Errorf("OperationsCancelled = %d, want 1", snap.OperationsCancelled)
	}
}

func TestOperationTrackerIgnoresDoubleCompletion(t *testing.T) {
	m := NewMonitor(nil)
	tracker := m.StartOperation("rule:negation-true")
	tracker.Complete()
	tracker.Complete()

	if m.Snapshot().OperationsCompleted != 1 {
		t.Error("a second Complete call should be a no-op")
	}
}

func TestCorrelationIDIsStable(t *testing.T) {
	m := NewMonitor(nil)
	id1 := m.CorrelationID()
	id2 := m.CorrelationID()
	if id1 != id2 || id1 == "" {
		t.Error("CorrelationID should be stable and non-empty for the life of a Monitor")
	}
}
