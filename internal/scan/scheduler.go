package scan

import (
	"sync"
	"sync/atomic"

	"github.com/dmaloney/lanprobe/internal/logger"
)

// DefaultConcurrency default cap on simultaneously in-flight host scans
const DefaultConcurrency = 24

// Scheduler drains a FIFO queue of addresses through a bounded pool of
// concurrent host scans. The concurrency cap is fixed for the lifetime of
// one scan.
type Scheduler struct {
	concurrency int
	canceled    atomic.Bool
	semaphore   chan struct{}
	log         logger.Logger
}

// NewScheduler returns a new Scheduler with the given concurrency cap
func NewScheduler(concurrency int) *Scheduler {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Scheduler{
		concurrency: concurrency,
		semaphore:   make(chan struct{}, concurrency),
		log:         logger.New(),
	}
}

// Run launches host scans in queue order, never exceeding the concurrency
// cap, and emits each completed result as it arrives. Blocks until every
// launched scan has settled, then closes the results channel. Cancellation
// abandons the queue only: in-flight hosts finish and are still emitted.
func (s *Scheduler) Run(
	addresses []string,
	hostScanner *HostScanner,
	results chan<- *HostResult,
) {
	wg := &sync.WaitGroup{}

	for _, ip := range addresses {
		if s.canceled.Load() {
			s.log.Info().Msg("scan canceled, abandoning queued addresses")
			break
		}

		s.semaphore <- struct{}{} // acquire

		// the flag may have flipped while we waited on the semaphore
		if s.canceled.Load() {
			<-s.semaphore
			s.log.Info().Msg("scan canceled, abandoning queued addresses")
			break
		}

		wg.Add(1)

		go func(ip string) {
			defer wg.Done()
			results <- hostScanner.Scan(ip, &s.canceled)
			<-s.semaphore // release
		}(ip)
	}

	wg.Wait()
	close(results)
}

// Concurrency returns the fixed concurrency cap for this scheduler
func (s *Scheduler) Concurrency() int {
	return s.concurrency
}

// Stop prevents any new host scans from launching. Already-launched scans
// run to completion.
func (s *Scheduler) Stop() {
	s.canceled.Store(true)
}

// Canceled reports whether Stop has been called
func (s *Scheduler) Canceled() bool {
	return s.canceled.Load()
}
