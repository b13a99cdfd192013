// Package dependency implements the dependency compiler:
// turning a raw DependencySpec into a validated, fully-resolved set of
// probes plus the quorum metadata that governs them.
package dependency

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"depwait/internal/config"
	"depwait/internal/logger"
	"depwait/internal/probe"
	"depwait/internal/quorum"
)

// Compiled is one dependency's compiler output: the quorum cell that will
// decide its outcome, and the probes that feed it.
type Compiled struct {
	Dep    *quorum.Dependency
	Probes []*probe.Probe
}

// Compile validates and normalizes spec into a Compiled dependency. name is
// the dependency's key in the document; template is the document-level
// ProbeOptions default; onDecided is forwarded to quorum.New.
func Compile(ctx context.Context, name string, spec config.DependencySpec, template config.ProbeOptions, onDecided func(*quorum.Dependency, quorum.Result)) (*Compiled, error) {
	options := template.Merge(spec.ProbeOptions)

	probes, host, err := compileProbes(name, spec, options)
	if err != nil {
		return nil, fmt.Errorf("dependency %q: %w", name, err)
	}

	if !validHostname(host) {
		return nil, fmt.Errorf("dependency %q: host %q does not match a valid RFC 1123 hostname", name, host)
	}

	if err := smokeTestResolve(host); err != nil {
		return nil, fmt.Errorf("dependency %q: %w", name, err)
	}

	dep := quorum.New(ctx, name, options.NormalizedMode(), len(probes), onDecided)
	return &Compiled{Dep: dep, Probes: probes}, nil
}

// compileProbes implements the addressing-mode tie-break order,
// returning the compiled probes and the canonical host they resolve to.
func compileProbes(name string, spec config.DependencySpec, options config.ProbeOptions) ([]*probe.Probe, string, error) {
	present := 0
	if spec.URL != "" {
		present++
	}
	if spec.HTTP != "" {
		present++
	}
	if spec.Host != "" || spec.Port != nil || len(spec.Ports) > 0 {
		present++
	}
	if present > 1 {
		return nil, "", fmt.Errorf("exactly one of url, http, or host+port(s) may be given")
	}

	switch {
	case spec.URL != "":
		return compileURLProbe(name, spec.URL, options, probe.KindTCP)
	case spec.HTTP != "":
		return compileURLProbe(name, spec.HTTP, options, probe.KindHTTP)
	default:
		host := spec.Host
		if host == "" {
			host = name
		}
		return compileHostPortsProbes(name, host, spec, options)
	}
}

// compileURLProbe compiles the url (TCP) or http (HTTP) addressing mode
// into a single probe.
func compileURLProbe(name, raw string, options config.ProbeOptions, kind probe.Kind) ([]*probe.Probe, string, error) {
	resolved, err := config.Resolve(raw, fmt.Sprintf("dependency %q url/http", name))
	if err != nil {
		return nil, "", err
	}

	u, err := url.Parse(resolved)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return nil, "", fmt.Errorf("%q is not a valid URL with a scheme and a host", resolved)
	}

	if kind == probe.KindHTTP && u.Scheme != "http" && u.Scheme != "https" {
		return nil, "", fmt.Errorf("http dependency scheme must be http or https, got %q", u.Scheme)
	}

	host := u.Hostname()
	port := 0
	if p := u.Port(); p != "" {
		resolvedPort, err := config.ResolvePort(p, fmt.Sprintf("dependency %q url/http port", name))
		if err != nil {
			return nil, "", err
		}
		port = resolvedPort
	} else {
		defaultPort, ok := defaultPorts[strings.ToLower(u.Scheme)]
		if !ok {
			return nil, "", fmt.Errorf("scheme %q has no explicit port and no known default", u.Scheme)
		}
		port = defaultPort
	}

	if err := validatePort(port); err != nil {
		return nil, "", err
	}

	if kind == probe.KindHTTP {
		p := &probe.Probe{Kind: probe.KindHTTP, Label: resolved, URL: resolved, Options: options}
		return []*probe.Probe{p}, host, nil
	}

	p := &probe.Probe{
		Kind:    probe.KindTCP,
		Label:   net.JoinHostPort(host, fmt.Sprint(port)),
		Host:    host,
		Port:    port,
		Options: options,
	}
	return []*probe.Probe{p}, host, nil
}

// compileHostPortsProbes compiles one TCP probe per
// resolved port, with `ports` taking precedence over `port`.
func compileHostPortsProbes(name, rawHost string, spec config.DependencySpec, options config.ProbeOptions) ([]*probe.Probe, string, error) {
	host, err := config.Resolve(rawHost, fmt.Sprintf("dependency %q host", name))
	if err != nil {
		return nil, "", err
	}

	var rawPorts []interface{}
	if len(spec.Ports) > 0 {
		if spec.Port != nil {
			logger.Warnf("dependency %q: both port and ports given; ports takes precedence (port is deprecated)", name)
		}
		rawPorts = spec.Ports
	} else if spec.Port != nil {
		rawPorts = []interface{}{spec.Port}
	} else {
		return nil, "", fmt.Errorf("host given without port or ports")
	}

	probes := make([]*probe.Probe, 0, len(rawPorts))
	for _, raw := range rawPorts {
		port, err := config.ResolvePort(raw, fmt.Sprintf("dependency %q port", name))
		if err != nil {
			return nil, "", err
		}
		if err := validatePort(port); err != nil {
			return nil, "", err
		}
		probes = append(probes, &probe.Probe{
			Kind:    probe.KindTCP,
			Label:   net.JoinHostPort(host, fmt.Sprint(port)),
			Host:    host,
			Port:    port,
			Options: options,
		})
	}
	return probes, host, nil
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port %d is outside the valid range [1, 65535]", port)
	}
	return nil
}

// smokeTestResolve performs a best-effort name-resolution check at compile
// time. Transient DNS failures (EAI_AGAIN/EAI_NODATA/EAI_NONAME) are
// tolerated since probing will retry; other resolution errors are fatal.
func smokeTestResolve(host string) error {
	if net.ParseIP(host) != nil {
		return nil
	}
	_, err := net.LookupHost(host)
	if err == nil {
		return nil
	}
	if isTransientLookupError(err) {
		logger.Warnf("host %q did not resolve at compile time (%v); will retry during probing", host, err)
		return nil
	}
	return fmt.Errorf("host %q could not be resolved: %w", host, err)
}

func isTransientLookupError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsNotFound
	}
	return false
}
