package scan

import (
	"sort"
	"sync"
)

// Progress counters for an active scan. Monotonically non-decreasing while
// a scan runs; zeroed by Reset.
type Progress struct {
	Total     int
	Completed int
	Reachable int
}

// Aggregator maintains the ordered collection of completed host results.
// Reachable hosts sort before unreachable ones; within each group
// addresses order by their numeric per-octet value, so 10.0.0.2 sorts
// before 10.0.0.10. Completions arrive from many scan goroutines at once
// and are serialized through the mutex.
type Aggregator struct {
	mux      sync.Mutex
	results  []*HostResult
	progress Progress
}

// NewAggregator returns a new empty Aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{
		results: []*HostResult{},
	}
}

// SetTotal records the number of hosts targeted by the current scan
func (a *Aggregator) SetTotal(total int) {
	a.mux.Lock()
	defer a.mux.Unlock()

	a.progress.Total = total
}

// OnHostComplete inserts a completed host result, re-derives the full
// ordering, and bumps the progress counters
func (a *Aggregator) OnHostComplete(result *HostResult) {
	a.mux.Lock()
	defer a.mux.Unlock()

	a.results = append(a.results, result)

	// re-sorting the whole collection per arrival is fine at the host
	// counts we target (hundreds)
	sort.SliceStable(a.results, func(i, j int) bool {
		ri, rj := a.results[i], a.results[j]

		if ri.Reachable != rj.Reachable {
			return ri.Reachable
		}

		vi, _ := AddressValue(ri.IP)
		vj, _ := AddressValue(rj.IP)

		return vi < vj
	})

	a.progress.Completed++

	if result.Reachable {
		a.progress.Reachable++
	}
}

// Results returns a snapshot of the ordered result collection
func (a *Aggregator) Results() []*HostResult {
	a.mux.Lock()
	defer a.mux.Unlock()

	snapshot := make([]*HostResult, len(a.results))
	copy(snapshot, a.results)

	return snapshot
}

// Progress returns the current progress counters
func (a *Aggregator) Progress() Progress {
	a.mux.Lock()
	defer a.mux.Unlock()

	return a.progress
}

// Reset clears the collection and zeroes progress. Safe to call any number
// of times; used by both the new-scan and cancel flows.
func (a *Aggregator) Reset() {
	a.mux.Lock()
	defer a.mux.Unlock()

	a.results = []*HostResult{}
	a.progress = Progress{}
}
