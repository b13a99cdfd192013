package probe

import (
	"context"
	"fmt"
	"net"
	"time"
)

type tcpDialer struct{}

func (tcpDialer) attempt(ctx context.Context, p *Probe) (bool, error) {
	timeout := time.Duration(*p.Options.Timeout) * time.Second
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := (&net.Dialer{}).DialContext(dialCtx, "tcp", net.JoinHostPort(p.Host, fmt.Sprint(p.Port)))
	if err != nil {
		return isSilentNetError(err), err
	}
	defer conn.Close()
	return false, nil
}
