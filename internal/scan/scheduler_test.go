package scan_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmaloney/lanprobe/internal/probe"
	"github.com/dmaloney/lanprobe/internal/scan"
)

// slowProber tracks the highest number of simultaneous probes observed
type slowProber struct {
	delay       time.Duration
	inFlight    int32
	maxInFlight int32
}

func (p *slowProber) Probe(ip string, port probe.Port) probe.Result {
	current := atomic.AddInt32(&p.inFlight, 1)

	for {
		max := atomic.LoadInt32(&p.maxInFlight)

		if current <= max || atomic.CompareAndSwapInt32(&p.maxInFlight, max, current) {
			break
		}
	}

	time.Sleep(p.delay)

	atomic.AddInt32(&p.inFlight, -1)

	latency := p.delay

	return probe.Result{
		Port:     port,
		Status:   probe.StatusResponsive,
		Latency:  &latency,
		Strategy: probe.StrategyConnect,
	}
}

func testPorts() []probe.Port {
	return []probe.Port{
		{Number: 80, Label: "HTTP", Scheme: probe.SchemePlain},
	}
}

func TestScheduler(t *testing.T) {
	t.Run("emits one result per queued address", func(st *testing.T) {
		addresses := scan.EnumerateRange("10.0.0.1", "10.0.0.50")
		prober := &slowProber{delay: time.Millisecond}

		scheduler := scan.NewScheduler(8)
		hostScanner := scan.NewHostScanner(prober, testPorts())
		results := make(chan *scan.HostResult, len(addresses))

		go scheduler.Run(addresses, hostScanner, results)

		collected := []*scan.HostResult{}

		for result := range results {
			collected = append(collected, result)
		}

		assert.Equal(st, 50, len(collected))
	})

	t.Run("never exceeds the concurrency cap", func(st *testing.T) {
		addresses := scan.EnumerateRange("10.0.0.1", "10.0.0.40")
		prober := &slowProber{delay: time.Millisecond * 5}

		scheduler := scan.NewScheduler(4)
		hostScanner := scan.NewHostScanner(prober, testPorts())
		results := make(chan *scan.HostResult, len(addresses))

		go scheduler.Run(addresses, hostScanner, results)

		for range results {
		}

		assert.LessOrEqual(st, prober.maxInFlight, int32(4))
	})

	t.Run("cancellation abandons the queue but drains in-flight scans", func(st *testing.T) {
		addresses := scan.EnumerateRange("10.0.0.1", "10.0.0.20")
		prober := &slowProber{delay: time.Millisecond * 50}

		scheduler := scan.NewScheduler(2)
		hostScanner := scan.NewHostScanner(prober, testPorts())
		results := make(chan *scan.HostResult, len(addresses))

		go scheduler.Run(addresses, hostScanner, results)

		collected := []*scan.HostResult{}

		// cancel as soon as the first host lands; anything in flight
		// still produces a result before the channel closes
		first := <-results
		collected = append(collected, first)

		scheduler.Stop()

		for result := range results {
			collected = append(collected, result)
		}

		assert.True(st, scheduler.Canceled())
		assert.GreaterOrEqual(st, len(collected), 1)
		assert.Less(st, len(collected), 20)
	})

	t.Run("zero addresses completes immediately", func(st *testing.T) {
		scheduler := scan.NewScheduler(scan.DefaultConcurrency)
		hostScanner := scan.NewHostScanner(&slowProber{}, testPorts())
		results := make(chan *scan.HostResult, 1)

		go scheduler.Run([]string{}, hostScanner, results)

		_, open := <-results

		assert.False(st, open)
	})

	t.Run("defaults a non-positive concurrency", func(st *testing.T) {
		scheduler := scan.NewScheduler(0)

		assert.Equal(st, scan.DefaultConcurrency, scheduler.Concurrency())
	})
}
