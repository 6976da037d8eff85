package core

import (
	"errors"
	"sync"
	"time"

	"github.com/dmaloney/lanprobe/internal/config"
	"github.com/dmaloney/lanprobe/internal/event"
	"github.com/dmaloney/lanprobe/internal/logger"
	"github.com/dmaloney/lanprobe/internal/probe"
	"github.com/dmaloney/lanprobe/internal/scan"
)

// ProberFactory builds the prober for a scan from its configuration.
// Injected so tests can supply a fake prober.
type ProberFactory func(conf config.Config) probe.Prober

// DefaultProberFactory selects the configured strategy with the configured
// per-probe timeout
func DefaultProberFactory(conf config.Config) probe.Prober {
	timeout := time.Duration(conf.TimeoutMs) * time.Millisecond
	return probe.ForStrategy(conf.Strategy, timeout)
}

// EventListener represents a registered scan event listener
type EventListener struct {
	id      int
	channel chan *event.Event
}

// ResultListener represents a registered listener for ordered result
// snapshots
type ResultListener struct {
	id      int
	channel chan []*scan.HostResult
}

// Core ties the configuration service, the scan engine, and the result
// aggregator together, and fans completed results and scan events out to
// registered listeners. The rendering layer only ever talks to Core.
type Core struct {
	conf            *config.Config
	configService   config.Service
	proberFactory   ProberFactory
	aggregator      *scan.Aggregator
	scheduler       *scan.Scheduler
	scanning        bool
	generation      int
	evtListeners    []*EventListener
	resultListeners []*ResultListener
	nextListenerId  int
	mux             sync.Mutex
	log             logger.Logger
}

// New returns a new core module for the given configuration
func New(
	conf *config.Config,
	configService config.Service,
	proberFactory ProberFactory,
) *Core {
	return &Core{
		conf:            conf,
		configService:   configService,
		proberFactory:   proberFactory,
		aggregator:      scan.NewAggregator(),
		evtListeners:    []*EventListener{},
		resultListeners: []*ResultListener{},
		nextListenerId:  1,
		log:             logger.New(),
	}
}

// Conf returns a copy of the active configuration
func (c *Core) Conf() config.Config {
	c.mux.Lock()
	defer c.mux.Unlock()

	return *c.conf
}

// UpdateConfig persists and activates an updated configuration
func (c *Core) UpdateConfig(conf config.Config) error {
	updated, err := c.configService.Update(&conf)

	if err != nil {
		return err
	}

	c.mux.Lock()
	c.conf = updated
	c.mux.Unlock()

	return nil
}

// SetConfig activates a stored configuration by name
func (c *Core) SetConfig(name string) error {
	conf, err := c.configService.Get(name)

	if err != nil {
		return err
	}

	if err := c.configService.SetLastLoaded(name); err != nil {
		return err
	}

	c.mux.Lock()
	c.conf = conf
	c.mux.Unlock()

	return nil
}

// SetRange overrides the active address range without persisting it.
// Used for one-shot scans over an ad hoc target.
func (c *Core) SetRange(targets []string, rangeStart, rangeEnd string) {
	c.mux.Lock()
	defer c.mux.Unlock()

	conf := *c.conf
	conf.Targets = targets
	conf.RangeStart = rangeStart
	conf.RangeEnd = rangeEnd
	c.conf = &conf
}

// DeleteConfig removes a stored configuration by name
func (c *Core) DeleteConfig(name string) error {
	return c.configService.Delete(name)
}

// GetConfigs returns all stored configurations
func (c *Core) GetConfigs() ([]*config.Config, error) {
	return c.configService.GetAll()
}

// Scanning reports whether a scan is currently active
func (c *Core) Scanning() bool {
	c.mux.Lock()
	defer c.mux.Unlock()

	return c.scanning
}

// Progress returns the aggregator's progress counters
func (c *Core) Progress() scan.Progress {
	return c.aggregator.Progress()
}

// Results returns the aggregator's ordered result snapshot
func (c *Core) Results() []*scan.HostResult {
	return c.aggregator.Results()
}

// StartScan resolves the configured address range and launches a new scan.
// Invalid range input resolves to zero hosts and completes immediately;
// it is never surfaced as an error.
func (c *Core) StartScan() error {
	c.mux.Lock()

	if c.scanning {
		c.mux.Unlock()
		return errors.New("scan already in progress")
	}

	conf := *c.conf
	addresses := resolveAddresses(conf)

	hostScanner := scan.NewHostScanner(c.proberFactory(conf), conf.Ports)
	scheduler := scan.NewScheduler(conf.Concurrency)

	c.scheduler = scheduler
	c.scanning = true
	c.generation++
	generation := c.generation

	c.aggregator.Reset()
	c.aggregator.SetTotal(len(addresses))

	c.mux.Unlock()

	c.log.Info().
		Int("hosts", len(addresses)).
		Int("concurrency", conf.Concurrency).
		Str("strategy", string(conf.Strategy)).
		Msg("starting scan")

	c.sendEvent(&event.Event{
		Type:    event.ScanStartedEventType,
		Payload: c.aggregator.Progress(),
	})

	c.publishResults()

	results := make(chan *scan.HostResult, scheduler.Concurrency())

	go scheduler.Run(addresses, hostScanner, results)
	go c.consumeResults(generation, scheduler, results)

	return nil
}

// CancelScan stops launching new host scans. In-flight hosts drain
// naturally and their results are kept; the scan reports stopped once the
// drain finishes.
func (c *Core) CancelScan() {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.scheduler != nil {
		c.log.Info().Msg("canceling scan")
		c.scheduler.Stop()
	}
}

// Reset cancels any active scan and clears all accumulated results and
// progress. Results from still-draining hosts are discarded.
func (c *Core) Reset() {
	c.mux.Lock()

	if c.scheduler != nil {
		c.scheduler.Stop()
		c.scheduler = nil
	}

	c.scanning = false
	c.generation++

	c.aggregator.Reset()

	c.mux.Unlock()

	c.publishResults()
}

// Stop tears the core down
func (c *Core) Stop() {
	c.CancelScan()
}

// RegisterEventListener registers a listener channel for scan events
func (c *Core) RegisterEventListener(channel chan *event.Event) int {
	c.mux.Lock()
	defer c.mux.Unlock()

	listener := &EventListener{
		id:      c.nextListenerId,
		channel: channel,
	}

	c.evtListeners = append(c.evtListeners, listener)
	c.nextListenerId++

	return listener.id
}

// RemoveEventListener removes a registered event listener
func (c *Core) RemoveEventListener(id int) {
	c.mux.Lock()
	defer c.mux.Unlock()

	listeners := []*EventListener{}

	for _, listener := range c.evtListeners {
		if listener.id != id {
			listeners = append(listeners, listener)
		}
	}

	c.evtListeners = listeners
}

// RegisterResultListener registers a listener channel for ordered result
// snapshots
func (c *Core) RegisterResultListener(channel chan []*scan.HostResult) int {
	c.mux.Lock()
	defer c.mux.Unlock()

	listener := &ResultListener{
		id:      c.nextListenerId,
		channel: channel,
	}

	c.resultListeners = append(c.resultListeners, listener)
	c.nextListenerId++

	return listener.id
}

// RemoveResultListener removes a registered result listener
func (c *Core) RemoveResultListener(id int) {
	c.mux.Lock()
	defer c.mux.Unlock()

	listeners := []*ResultListener{}

	for _, listener := range c.resultListeners {
		if listener.id != id {
			listeners = append(listeners, listener)
		}
	}

	c.resultListeners = listeners
}

// consumeResults feeds completed host results into the aggregator until
// the scheduler drains, then reports the scan finished. Results belonging
// to a generation that was reset mid-flight are dropped.
func (c *Core) consumeResults(
	generation int,
	scheduler *scan.Scheduler,
	results <-chan *scan.HostResult,
) {
	for result := range results {
		if c.staleGeneration(generation) {
			continue
		}

		c.aggregator.OnHostComplete(result)

		c.sendEvent(&event.Event{
			Type:    event.HostUpdateEventType,
			Payload: result,
		})

		c.publishResults()
	}

	c.mux.Lock()

	current := generation == c.generation

	if current {
		c.scanning = false
		c.scheduler = nil
	}

	c.mux.Unlock()

	if !current {
		return
	}

	eventType := event.ScanCompleteEventType

	if scheduler.Canceled() {
		eventType = event.ScanStoppedEventType
	}

	progress := c.aggregator.Progress()

	c.log.Info().
		Int("completed", progress.Completed).
		Int("reachable", progress.Reachable).
		Msg("scan finished")

	c.sendEvent(&event.Event{
		Type:    eventType,
		Payload: progress,
	})
}

func (c *Core) staleGeneration(generation int) bool {
	c.mux.Lock()
	defer c.mux.Unlock()

	return generation != c.generation
}

func (c *Core) sendEvent(evt *event.Event) {
	c.mux.Lock()
	defer c.mux.Unlock()

	for _, listener := range c.evtListeners {
		listener.channel <- evt
	}
}

func (c *Core) publishResults() {
	snapshot := c.aggregator.Results()

	c.mux.Lock()
	defer c.mux.Unlock()

	for _, listener := range c.resultListeners {
		listener.channel <- snapshot
	}
}

// resolveAddresses turns the configured range into the concrete ordered
// address list. The manual start/end pair takes precedence when set.
func resolveAddresses(conf config.Config) []string {
	if conf.RangeStart != "" && conf.RangeEnd != "" {
		return scan.EnumerateRange(conf.RangeStart, conf.RangeEnd)
	}

	return scan.ExpandTargets(conf.Targets)
}
