package probe

import (
	"errors"
	"net"
	"os"
	"strings"
)

// isSilentNetError implements the TCP silence rules:
// EHOSTUNREACH, EHOSTDOWN, and transient DNS failures (EAI_AGAIN,
// EAI_NODATA) are suppressed from backtrace logging.
func isSilentNetError(err error) bool {
	if err == nil {
		return false
	}
	if isTransientDNSError(err) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if sysErr, ok := opErr.Err.(*os.SyscallError); ok {
			switch sysErr.Err.Error() {
			case "no route to host", "host is down":
				return true
			}
		}
	}
	msg := err.Error()
	return strings.Contains(msg, "no route to host") || strings.Contains(msg, "host is down")
}

// isTransientDNSError reports whether err is a DNS lookup failure of the
// kind POSIX calls EAI_AGAIN/EAI_NODATA/EAI_NONAME: temporary or
// not-found, both of which are expected to clear up on retry.
func isTransientDNSError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsNotFound
	}
	return false
}

// isQuietConnError is the connection-level half of the HTTP silence rules: refused,
// reset, aborted, broken pipe, or timeout on an HTTP attempt is quiet.
func isQuietConnError(err error) bool {
	if err == nil {
		return false
	}
	if isSilentNetError(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := err.Error()
	for _, needle := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"connection aborted",
		"EOF",
	} {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}

// isQuietStatus implements the HTTP status half of the silence rules: 502/503/504
// are quiet failed attempts.
func isQuietStatus(code int) bool {
	return code == 502 || code == 503 || code == 504
}
