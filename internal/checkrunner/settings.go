// Package checkrunner implements the retrying shell-check runner: each
// named environment variable holds a shell script body, run under a
// per-check timeout and retry budget.
package checkrunner

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"depwait/internal/logger"
)

var nameValidPattern = regexp.MustCompile(`(?i)^[a-z][a-z0-9_]*$`)

// Settings is one check's resolved timeout/retry/disable/debug knobs,
// after per-check overrides are merged with the global defaults.
type Settings struct {
	Disable    bool
	Debug      bool
	Timeout    int
	RetryCount int
	RetryWait  int
}

func hardDefaults() Settings {
	return Settings{
		Disable:    false,
		Debug:      false,
		Timeout:    0,
		RetryCount: 5,
		RetryWait:  5,
	}
}

// ValidName reports whether name matches the check-name grammar.
func ValidName(name string) bool {
	return nameValidPattern.MatchString(name)
}

// ResolveSettings reads the global overrides (TIMEOUT, RETRY_COUNT, ...)
// and then the per-check overrides (<NAME>_TIMEOUT, ...). A missing, empty,
// or unparseable value at either level simply falls through to the next:
// the unprefixed global, then the hard default.
func ResolveSettings(name string) Settings {
	global := hardDefaults()
	applyOverrides(&global, "")

	settings := global
	applyOverrides(&settings, strings.ToUpper(name)+"_")
	return settings
}

func applyOverrides(s *Settings, prefix string) {
	if v, ok := lookupNonEmpty(prefix + "DISABLE"); ok {
		if b, err := parseBool(v); err == nil {
			s.Disable = b
		} else {
			logger.Warnf("%sDISABLE=%q is invalid, ignoring", prefix, v)
		}
	}
	if v, ok := lookupNonEmpty(prefix + "DEBUG"); ok {
		if b, err := parseBool(v); err == nil {
			s.Debug = b
		} else {
			logger.Warnf("%sDEBUG=%q is invalid, ignoring", prefix, v)
		}
	}
	if v, ok := lookupNonEmpty(prefix + "TIMEOUT"); ok {
		if n, err := parseNonNegativeInt(v); err == nil {
			s.Timeout = n
		} else {
			logger.Warnf("%sTIMEOUT=%q is invalid, ignoring", prefix, v)
		}
	}
	if v, ok := lookupNonEmpty(prefix + "RETRY_COUNT"); ok {
		if n, err := parsePositiveInt(v); err == nil {
			s.RetryCount = n
		} else {
			logger.Warnf("%sRETRY_COUNT=%q is invalid, ignoring", prefix, v)
		}
	}
	if v, ok := lookupNonEmpty(prefix + "RETRY_WAIT"); ok {
		if n, err := parsePositiveInt(v); err == nil {
			s.RetryWait = n
		} else {
			logger.Warnf("%sRETRY_WAIT=%q is invalid, ignoring", prefix, v)
		}
	}
}

func lookupNonEmpty(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%q is not true or false", v)
	}
}

func parseNonNegativeInt(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%q is not a non-negative integer", v)
	}
	return n, nil
}

func parsePositiveInt(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%q is not a positive integer", v)
	}
	return n, nil
}
