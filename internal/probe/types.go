// Package probe implements the two probe kinds (TCP and HTTP) and the
// attempt loop shared between them.
package probe

import (
	"context"

	"depwait/internal/config"
)

// Kind identifies which wire-level check a Probe performs.
type Kind int

const (
	KindTCP Kind = iota
	KindHTTP
)

func (k Kind) String() string {
	if k == KindHTTP {
		return "http"
	}
	return "tcp"
}

// Reporter is the subset of a Dependency's quorum cell that a probe needs:
// whether the outcome is already decided, and how to report this probe's
// own attempt outcome. internal/quorum.Dependency implements this.
type Reporter interface {
	Decided() bool
	ReportSuccess()
	ReportFailure()
}

// Probe is a single compiled reachability check, owned by a Dependency.
type Probe struct {
	Kind    Kind
	Label   string // "host:port" or the HTTP URL, for logging
	Host    string
	Port    int
	URL     string
	Options config.ProbeOptions
}

// dialer abstracts the network call each kind makes, so the attempt loop
// (attempt.go) is kind-agnostic.
type dialer interface {
	attempt(ctx context.Context, p *Probe) (quiet bool, err error)
}
