package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveEnvPrefix(t *testing.T) {
	t.Setenv("DEPWAIT_TEST_HOST", "db.internal")

	got, err := Resolve("@env:DEPWAIT_TEST_HOST", "test")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != "db.internal" {
		t.Errorf("got %q, want %q", got, "db.internal")
	}
}

func TestResolveEnvPrefixMissingIsFatal(t *testing.T) {
	if _, err := Resolve("@env:DEPWAIT_TEST_DOES_NOT_EXIST", "test"); err == nil {
		t.Error("expected an error for a missing environment variable")
	}
}

func TestResolveFilePrefix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secret")
	if err := os.WriteFile(path, []byte("s3cr3t\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := Resolve("@file:"+path, "test")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != "s3cr3t" {
		t.Errorf("got %q, want trimmed %q", got, "s3cr3t")
	}
}

func TestResolveFilePrefixUnreadableIsFatal(t *testing.T) {
	if _, err := Resolve("@file:/no/such/path", "test"); err == nil {
		t.Error("expected an error for an unreadable file")
	}
}

func TestResolveLiteralExpandsEnv(t *testing.T) {
	t.Setenv("DEPWAIT_TEST_PORT", "5432")

	got, err := Resolve("$DEPWAIT_TEST_PORT", "test")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != "5432" {
		t.Errorf("got %q, want %q", got, "5432")
	}
}

func TestResolveEmptyStringPassesThrough(t *testing.T) {
	got, err := Resolve("", "test")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty string", got)
	}
}

func TestResolvePortNumeric(t *testing.T) {
	port, err := ResolvePort(5432, "test")
	if err != nil {
		t.Fatalf("ResolvePort returned error: %v", err)
	}
	if port != 5432 {
		t.Errorf("got %d, want 5432", port)
	}
}

func TestResolvePortNumericString(t *testing.T) {
	port, err := ResolvePort("8080", "test")
	if err != nil {
		t.Fatalf("ResolvePort returned error: %v", err)
	}
	if port != 8080 {
		t.Errorf("got %d, want 8080", port)
	}
}

func TestResolvePortServiceName(t *testing.T) {
	port, err := ResolvePort("https", "test")
	if err != nil {
		t.Fatalf("ResolvePort returned error: %v", err)
	}
	if port != 443 {
		t.Errorf("got %d, want 443", port)
	}
}

func TestResolvePortUnknownServiceNameIsFatal(t *testing.T) {
	if _, err := ResolvePort("not-a-real-service-name", "test"); err == nil {
		t.Error("expected an error for an unresolvable service name")
	}
}
