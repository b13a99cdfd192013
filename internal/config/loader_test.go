package config

import (
	"strings"
	"testing"
)

func TestLoadFromStdin(t *testing.T) {
	doc, err := Load("-", strings.NewReader("mode: any\ndependencies:\n  db:\n    port: 5432\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if doc.Mode != "any" {
		t.Errorf("Mode = %q, want %q", doc.Mode, "any")
	}
	if _, ok := doc.Dependencies["db"]; !ok {
		t.Error("expected dependency \"db\" to be present")
	}
}

func TestLoadFromEnvInlineDocument(t *testing.T) {
	t.Setenv(EnvVar, `{"mode":"all","dependencies":{"db":{"port":5432}}}`)

	doc, err := Load("", strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if doc.Mode != "all" {
		t.Errorf("Mode = %q, want %q", doc.Mode, "all")
	}
}

func TestLoadNoSourceIsFatal(t *testing.T) {
	t.Setenv(EnvVar, "")
	if _, err := Load("", strings.NewReader("")); err == nil {
		t.Error("expected an error when no document source is available")
	}
}

func TestLoadInvalidDocumentIsFatal(t *testing.T) {
	if _, err := Load("-", strings.NewReader("not: [valid, json, or, a, real: document")); err == nil {
		t.Error("expected an error for an unparseable document")
	}
}

func TestLoadTemplateOnlyDocumentIsNotEmpty(t *testing.T) {
	doc, err := Load("-", strings.NewReader("template:\n  timeout: 30\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if *doc.Template.Timeout != 30 {
		t.Errorf("Template.Timeout = %v, want 30", doc.Template.Timeout)
	}
}

func TestDecodeFallsBackToStrictJSON(t *testing.T) {
	// The duplicate "mode" key is rejected by the YAML decoder but accepted
	// by encoding/json (last value wins), so only the fallback can decode it.
	doc, err := decode([]byte(`{"mode": "all", "mode": "any", "dependencies": {}}`), false)
	if err != nil {
		t.Fatalf("decode returned error: %v", err)
	}
	if doc.Mode != "any" {
		t.Errorf("Mode = %q, want %q", doc.Mode, "any")
	}
}
