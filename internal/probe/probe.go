package probe

import "time"

//go:generate mockgen -destination=../mock/probe/mock_probe.go -package=mock_probe . Prober

// Scheme represents the transport a service speaks on its port
type Scheme string

const (
	SchemePlain Scheme = "plain"
	SchemeTLS   Scheme = "tls"
)

// Strategy identifies the indirect probing technique used to infer liveness
type Strategy string

const (
	StrategyConnect Strategy = "connect"
	StrategyHTTP    Strategy = "http"
)

// Status classification of a single probe attempt
type Status string

const (
	StatusResponsive Status = "responsive"
	StatusTimeout    Status = "timeout"
)

// Port describes a single service port to probe
type Port struct {
	Number uint16 `json:"number"`
	Label  string `json:"label"`
	Scheme Scheme `json:"scheme"`
}

// Result represents the outcome of probing a single address:port pair.
// Latency is nil unless the attempt settled before the deadline.
type Result struct {
	Port     Port
	Status   Status
	Latency  *time.Duration
	Strategy Strategy
}

// Responsive returns true if the probe settled before its deadline
func (r Result) Responsive() bool {
	return r.Status == StatusResponsive
}

// Prober interface for executing one reachability check against a
// single address:port pair
type Prober interface {
	Probe(ip string, port Port) Result
}

// ForStrategy returns the prober implementation for the requested strategy.
// Strategy selection happens once per scan, never mid-scan.
func ForStrategy(strategy Strategy, timeout time.Duration) Prober {
	if strategy == StrategyHTTP {
		return NewHTTPProber(timeout)
	}

	return NewConnectProber(timeout)
}
