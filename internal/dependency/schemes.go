package dependency

// defaultPorts maps a URL scheme to the port used when the URL carries
// none explicitly.
var defaultPorts = map[string]int{
	"ftp":    21,
	"ftps":   990,
	"gopher": 70,
	"http":   80,
	"https":  443,
	"ldap":   389,
	"ldaps":  636,
	"imap":   143,
	"imaps":  993,
	"pop":    110,
	"pops":   995,
	"smtp":   25,
	"smtps":  465,
	"ssh":    22,
	"sftp":   22,
	"telnet": 23,
	"nfs":    2049,
	"nntp":   119,
}
