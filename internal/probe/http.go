package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type httpDialer struct{}

func (httpDialer) attempt(ctx context.Context, p *Probe) (bool, error) {
	timeout := time.Duration(*p.Options.Timeout) * time.Second
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, p.URL, nil)
	if err != nil {
		return false, fmt.Errorf("building request for %s: %w", p.URL, err)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return isQuietConnError(err), err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		err := fmt.Errorf("%s: unexpected status %d", p.URL, resp.StatusCode)
		return isQuietStatus(resp.StatusCode), err
	}
	return false, nil
}
