// Package config loads and decodes the dependency document and applies
// dynamic value resolution to its string fields.
package config

import "strings"

// ProbeOptions carries the per-probe tunables that can be set at document
// level (as a template) and overridden per dependency.
type ProbeOptions struct {
	Mode         string `yaml:"mode" json:"mode"`
	InitialDelay *int   `yaml:"initialDelay" json:"initialDelay"`
	Delay        *int   `yaml:"delay" json:"delay"`
	Timeout      *int   `yaml:"timeout" json:"timeout"`
	Attempts     *int   `yaml:"attempts" json:"attempts"`
}

// Hard defaults: all, 0, 5, 15, 3.
const (
	DefaultMode         = "all"
	DefaultInitialDelay = 0
	DefaultDelay        = 5
	DefaultTimeout      = 15
	DefaultAttempts     = 3
)

// Merge combines this ProbeOptions (lower precedence) with override (higher
// precedence), returning a fully-populated ProbeOptions. Fields left unset
// in override fall back to this value; fields unset in both fall back to
// the hard defaults. Clamping (initialDelay >= 0, delay/timeout/attempts
// >= 1) is applied here so the result is always legal.
func (base ProbeOptions) Merge(override ProbeOptions) ProbeOptions {
	return ProbeOptions{
		Mode:         firstNonEmpty(override.Mode, base.Mode, DefaultMode),
		InitialDelay: intPtr(clamp(pickInt(override.InitialDelay, base.InitialDelay, DefaultInitialDelay), 0)),
		Delay:        intPtr(clamp(pickInt(override.Delay, base.Delay, DefaultDelay), 1)),
		Timeout:      intPtr(clamp(pickInt(override.Timeout, base.Timeout, DefaultTimeout), 1)),
		Attempts:     intPtr(clamp(pickInt(override.Attempts, base.Attempts, DefaultAttempts), 1)),
	}
}

// pickInt returns the first non-nil pointer's value, in precedence order,
// falling back to fallback if both are nil.
func pickInt(override, base *int, fallback int) int {
	if override != nil {
		return *override
	}
	if base != nil {
		return *base
	}
	return fallback
}

// Normalized mode, lower-cased, defaulting to "all".
func (o ProbeOptions) NormalizedMode() string {
	m := strings.ToLower(strings.TrimSpace(o.Mode))
	if m == "" {
		return DefaultMode
	}
	return m
}

func clamp(v, min int) int {
	if v < min {
		return min
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func intPtr(v int) *int { return &v }

// DependencySpec is the raw, pre-validation shape of a dependency entry as
// it appears in the document. Exactly one of URL, HTTP, or Host+Port(s)
// must resolve to a single addressing mode; see internal/dependency.Compile.
type DependencySpec struct {
	ProbeOptions `yaml:",inline"`

	URL   string        `yaml:"url" json:"url,omitempty"`
	HTTP  string        `yaml:"http" json:"http,omitempty"`
	Host  string        `yaml:"host" json:"host,omitempty"`
	Port  interface{}   `yaml:"port" json:"port,omitempty"`
	Ports []interface{} `yaml:"ports" json:"ports,omitempty"`
}

// Document is the root of the configuration schema.
type Document struct {
	Enabled      *bool                     `yaml:"enabled" json:"enabled"`
	Mode         string                    `yaml:"mode" json:"mode"`
	Template     ProbeOptions              `yaml:"template" json:"template"`
	Dependencies map[string]DependencySpec `yaml:"dependencies" json:"dependencies"`
}

// IsEnabled implements the enabled/default-true rule.
func (d Document) IsEnabled() bool {
	if d.Enabled == nil {
		return true
	}
	return *d.Enabled
}

// NormalizedMode is the run-level quorum mode, defaulting to "all".
func (d Document) NormalizedMode() string {
	m := strings.ToLower(strings.TrimSpace(d.Mode))
	if m == "" {
		return DefaultMode
	}
	return m
}
