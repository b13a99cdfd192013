package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"depwait/internal/logger"
)

const (
	envPrefix  = "@env:"
	filePrefix = "@file:"
)

// Resolve implements the dynamic resolver. label is used
// only for diagnostics, identifying which field is being resolved.
//
// - "@env:NAME" resolves to the value of environment variable NAME; a
//   missing variable is fatal.
// - "@file:PATH" resolves to the trimmed contents of PATH; an unreadable
//   file is fatal.
// - Anything else is expanded for $VAR / ${VAR} references against the
//   process environment and returned literally.
//
// Empty strings are returned unchanged without logging.
func Resolve(value, label string) (string, error) {
	if value == "" {
		return value, nil
	}

	switch {
	case strings.HasPrefix(value, envPrefix):
		name := strings.TrimPrefix(value, envPrefix)
		resolved, ok := os.LookupEnv(name)
		if !ok {
			return "", fmt.Errorf("%s: environment variable %q referenced by @env: is not set", label, name)
		}
		logger.Debugf("%s: resolved from environment variable %q", label, name)
		return resolved, nil

	case strings.HasPrefix(value, filePrefix):
		path := strings.TrimPrefix(value, filePrefix)
		contents, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("%s: cannot read file %q referenced by @file:: %w", label, path, err)
		}
		logger.Debugf("%s: resolved from file %q", label, path)
		return strings.TrimSpace(string(contents)), nil

	default:
		expanded := os.ExpandEnv(value)
		if expanded != value {
			logger.Debugf("%s: expanded %q to %q", label, value, expanded)
		}
		return expanded, nil
	}
}

// ResolvePort resolves a port value that may be a decimal integer, a
// numeric string, or a service name resolvable via the OS service-name
// database. Dynamic-value prefixes (@env:/@file:) are
// applied first when the value is a string.
func ResolvePort(value interface{}, label string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		resolved, err := Resolve(v, label)
		if err != nil {
			return 0, err
		}
		return resolvePortString(resolved, label)
	case nil:
		return 0, fmt.Errorf("%s: port value is missing", label)
	default:
		return 0, fmt.Errorf("%s: unsupported port value type %T", label, value)
	}
}

// resolvePortString interprets a resolved string value as either a decimal
// port number or a service name, consulting the OS service-name database
// (/etc/services on Unix) for the latter via net.LookupPort.
func resolvePortString(s, label string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%s: port value is empty", label)
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	port, err := net.LookupPort("tcp", s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is neither a port number nor a known service name: %w", label, s, err)
	}
	return port, nil
}
