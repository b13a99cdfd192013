package dependency

import "regexp"

// hostnamePattern implements the RFC 1123 label grammar for hostnames.
var hostnamePattern = regexp.MustCompile(`(?i)^([a-z0-9][a-z0-9-]*)?[a-z0-9]([.]([a-z0-9][a-z0-9-]*)?[a-z0-9])*$`)

func validHostname(host string) bool {
	return hostnamePattern.MatchString(host)
}
