package checkrunner

import (
	"context"
	"testing"
)

func lastResult(t *testing.T, results []CheckResult) CheckResult {
	t.Helper()
	if len(results) == 0 {
		t.Fatal("Run returned no results")
	}
	return results[len(results)-1]
}

func TestRunPassesWhenCheckExitsZero(t *testing.T) {
	t.Setenv("CHK", "exit 0")
	t.Setenv("CHK_RETRY_COUNT", "1")

	results, err := Run(context.Background(), []string{"CHK"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	result := lastResult(t, results)
	if !result.Passed {
		t.Errorf("got Passed=false, want true")
	}
}

func TestRunFailsAfterExhaustingRetries(t *testing.T) {
	t.Setenv("CHK", "exit 7")
	t.Setenv("CHK_RETRY_COUNT", "2")
	t.Setenv("CHK_RETRY_WAIT", "1")

	results, err := Run(context.Background(), []string{"CHK"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	result := lastResult(t, results)
	if result.Passed || result.ExitStatus != 7 {
		t.Errorf("got Passed=%v ExitStatus=%d, want Passed=false ExitStatus=7", result.Passed, result.ExitStatus)
	}
	if len(result.Attempts) != 2 {
		t.Errorf("got %d recorded attempts, want 2", len(result.Attempts))
	}
}

func TestRunDisabledCheckReportsSuccess(t *testing.T) {
	t.Setenv("CHK", "exit 1")
	t.Setenv("CHK_DISABLE", "true")

	results, err := Run(context.Background(), []string{"CHK"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	result := lastResult(t, results)
	if !result.Passed {
		t.Error("expected a disabled check to report success without running")
	}
	if len(result.Attempts) != 0 {
		t.Errorf("expected a disabled check to record no attempts, got %d", len(result.Attempts))
	}
}

func TestRunMissingVariableIsFatal(t *testing.T) {
	if _, err := Run(context.Background(), []string{"DEPWAIT_TEST_CHECK_NOT_SET"}); err == nil {
		t.Error("expected an error for a check naming an unset environment variable")
	}
}

func TestRunInvalidNameIsFatal(t *testing.T) {
	if _, err := Run(context.Background(), []string{"1invalid"}); err == nil {
		t.Error("expected an error for a check name that fails the naming grammar")
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	t.Setenv("FIRST", "exit 3")
	t.Setenv("FIRST_RETRY_COUNT", "1")
	t.Setenv("SECOND", "exit 0")

	results, err := Run(context.Background(), []string{"FIRST", "SECOND"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	result := lastResult(t, results)
	if result.Passed || result.Name != "FIRST" {
		t.Errorf("got Passed=%v Name=%q, want the run to stop at FIRST", result.Passed, result.Name)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want the run to stop after FIRST", len(results))
	}
}

func TestRunTimesOutAndRetries(t *testing.T) {
	t.Setenv("SLOW", "sleep 5")
	t.Setenv("SLOW_TIMEOUT", "1")
	t.Setenv("SLOW_RETRY_COUNT", "2")
	t.Setenv("SLOW_RETRY_WAIT", "1")

	results, err := Run(context.Background(), []string{"SLOW"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	result := lastResult(t, results)
	if result.Passed || result.ExitStatus != TimeoutExitStatus {
		t.Errorf("got Passed=%v ExitStatus=%d, want Passed=false ExitStatus=%d", result.Passed, result.ExitStatus, TimeoutExitStatus)
	}
}
