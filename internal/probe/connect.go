package probe

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/dmaloney/lanprobe/internal/logger"
)

// dialFunc matches net.DialTimeout, overridable in tests
type dialFunc func(network, address string, timeout time.Duration) (net.Conn, error)

// ConnectProber infers liveness from the settlement timing of a plain
// connection attempt. A destination that actively answers, even with a
// protocol-level error such as a refused connection, settles before the
// deadline; a non-existent or unrouted destination hangs until the dial
// timeout fires. Settlement of any kind before the deadline therefore
// classifies as responsive.
type ConnectProber struct {
	timeout time.Duration
	dial    dialFunc
	log     logger.Logger
}

// NewConnectProber returns a new ConnectProber with the given per-probe timeout
func NewConnectProber(timeout time.Duration) *ConnectProber {
	return &ConnectProber{
		timeout: timeout,
		dial:    net.DialTimeout,
		log:     logger.New(),
	}
}

// Probe issues exactly one connection attempt to ip:port
func (p *ConnectProber) Probe(ip string, port Port) Result {
	address := net.JoinHostPort(ip, strconv.Itoa(int(port.Number)))

	result := Result{
		Port:     port,
		Strategy: StrategyConnect,
	}

	start := time.Now()
	conn, err := p.dial("tcp", address, p.timeout)
	elapsed := time.Since(start)

	if err == nil {
		conn.Close()
		result.Status = StatusResponsive
		result.Latency = &elapsed
		return result
	}

	if isTimeout(err) {
		p.log.Debug().Str("address", address).Msg("probe timed out")
		result.Status = StatusTimeout
		return result
	}

	// settled with a connection-level error before the deadline: some
	// endpoint answered at the network level
	result.Status = StatusResponsive
	result.Latency = &elapsed

	return result
}

// isTimeout reports whether err is the dial's own timeout mechanism firing,
// as opposed to a settlement carrying a protocol-level error
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
