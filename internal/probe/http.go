package probe

import (
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dmaloney/lanprobe/internal/logger"
)

// HTTPProber is the fallback strategy for environments where raw dial
// outcomes are unavailable: request a tiny resource at the target with a
// cache-busting query parameter and treat any settlement before the
// deadline, success or protocol error, as evidence that something
// answered. Only the client's own timeout firing classifies as timeout.
type HTTPProber struct {
	timeout time.Duration
	client  *http.Client
	log     logger.Logger
}

// NewHTTPProber returns a new HTTPProber with the given per-probe timeout
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	transport := &http.Transport{
		// probed hosts routinely present self-signed certs
		TLSClientConfig:   &tls.Config{InsecureSkipVerify: true},
		DisableKeepAlives: true,
	}

	client := &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}

	return &HTTPProber{
		timeout: timeout,
		client:  client,
		log:     logger.New(),
	}
}

// Probe issues exactly one request to ip:port
func (p *HTTPProber) Probe(ip string, port Port) Result {
	scheme := "http"

	if port.Scheme == SchemeTLS {
		scheme = "https"
	}

	address := net.JoinHostPort(ip, strconv.Itoa(int(port.Number)))

	url := fmt.Sprintf(
		"%s://%s/pixel.gif?cachebust=%d",
		scheme,
		address,
		time.Now().UnixNano(),
	)

	result := Result{
		Port:     port,
		Strategy: StrategyHTTP,
	}

	start := time.Now()
	resp, err := p.client.Get(url)
	elapsed := time.Since(start)

	if err == nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		resp.Body.Close()
		result.Status = StatusResponsive
		result.Latency = &elapsed
		return result
	}

	if isTimeout(err) {
		p.log.Debug().Str("address", address).Msg("probe timed out")
		result.Status = StatusTimeout
		return result
	}

	// a failed load that settled before the deadline still means an
	// endpoint answered the underlying connection
	result.Status = StatusResponsive
	result.Latency = &elapsed

	return result
}
