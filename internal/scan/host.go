package scan

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/dmaloney/lanprobe/internal/logger"
	"github.com/dmaloney/lanprobe/internal/probe"
)

// HostResult represents the outcome of probing every configured port on a
// single address. Ports hold one entry per probed port in ascending port
// order; a scan canceled mid-host carries the ports probed so far.
type HostResult struct {
	IP          string
	Ports       []probe.Result
	Reachable   bool
	CompletedAt time.Time
}

// HostScanner probes all configured ports for a single address, one port
// at a time
type HostScanner struct {
	prober probe.Prober
	ports  []probe.Port
	log    logger.Logger
}

// NewHostScanner returns a new HostScanner. The port list is copied and
// kept in ascending port order.
func NewHostScanner(prober probe.Prober, ports []probe.Port) *HostScanner {
	sorted := make([]probe.Port, len(ports))
	copy(sorted, ports)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Number < sorted[j].Number
	})

	return &HostScanner{
		prober: prober,
		ports:  sorted,
		log:    logger.New(),
	}
}

// Scan probes each port sequentially, checking the shared cancel flag
// before every port. A set flag ends the host early: the partial result is
// still returned, never discarded.
func (s *HostScanner) Scan(ip string, canceled *atomic.Bool) *HostResult {
	results := make([]probe.Result, 0, len(s.ports))

	for _, port := range s.ports {
		if canceled != nil && canceled.Load() {
			break
		}

		results = append(results, s.safeProbe(ip, port))
	}

	reachable := false

	for _, r := range results {
		if r.Responsive() {
			reachable = true
			break
		}
	}

	return &HostResult{
		IP:          ip,
		Ports:       results,
		Reachable:   reachable,
		CompletedAt: time.Now(),
	}
}

// safeProbe guards against a misbehaving prober: a panic is recorded as a
// timeout for that port so one bad attempt cannot abort the host scan
func (s *HostScanner) safeProbe(ip string, port probe.Port) (result probe.Result) {
	defer func() {
		if reason := recover(); reason != nil {
			s.log.Error().
				Interface("reason", reason).
				Str("ip", ip).
				Uint16("port", port.Number).
				Msg("probe attempt failed")

			result = probe.Result{
				Port:   port,
				Status: probe.StatusTimeout,
			}
		}
	}()

	return s.prober.Probe(ip, port)
}
