package quorum

import (
	"context"
	"testing"
	"time"
)

func waitDone(t *testing.T, r *Run) {
	t.Helper()
	select {
	case <-r.Done():
	case <-time.After(time.Second):
		t.Fatal("run did not decide in time")
	}
}

func TestRunAllModeExitsZeroOnlyWhenAllDependenciesSucceed(t *testing.T) {
	r := NewRun(context.Background(), "all", 2)

	dep1 := New(context.Background(), "a", "all", 1, r.OnDependencyDecided)
	dep1.ReportSuccess()
	select {
	case <-r.Done():
		t.Fatal("run decided after only one of two dependencies succeeded")
	default:
	}

	dep2 := New(context.Background(), "b", "all", 1, r.OnDependencyDecided)
	dep2.ReportSuccess()

	waitDone(t, r)
	if r.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", r.ExitCode())
	}
}

func TestRunAllModeExitsOneOnFirstFailure(t *testing.T) {
	r := NewRun(context.Background(), "all", 2)

	dep := New(context.Background(), "a", "all", 1, r.OnDependencyDecided)
	dep.ReportFailure()

	waitDone(t, r)
	if r.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, want 1", r.ExitCode())
	}
}

func TestRunAnyModeExitsZeroOnFirstSuccess(t *testing.T) {
	r := NewRun(context.Background(), "any", 2)

	dep := New(context.Background(), "a", "all", 1, r.OnDependencyDecided)
	dep.ReportSuccess()

	waitDone(t, r)
	if r.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", r.ExitCode())
	}
}

func TestRunWithNoDependenciesExitsZero(t *testing.T) {
	r := NewRun(context.Background(), "all", 0)
	waitDone(t, r)
	if r.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", r.ExitCode())
	}
}
