package core_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/dmaloney/lanprobe/internal/config"
	"github.com/dmaloney/lanprobe/internal/core"
	"github.com/dmaloney/lanprobe/internal/event"
	mock_config "github.com/dmaloney/lanprobe/internal/mock/config"
	"github.com/dmaloney/lanprobe/internal/probe"
	"github.com/dmaloney/lanprobe/internal/scan"
)

// fakeProber answers every probe as responsive after an optional delay
type fakeProber struct {
	delay  time.Duration
	probes int32
}

func (p *fakeProber) Probe(ip string, port probe.Port) probe.Result {
	atomic.AddInt32(&p.probes, 1)

	if p.delay > 0 {
		time.Sleep(p.delay)
	}

	latency := time.Millisecond

	return probe.Result{
		Port:     port,
		Status:   probe.StatusResponsive,
		Latency:  &latency,
		Strategy: probe.StrategyConnect,
	}
}

func factoryFor(prober probe.Prober) core.ProberFactory {
	return func(conf config.Config) probe.Prober {
		return prober
	}
}

func coreConfig() *config.Config {
	return &config.Config{
		ID:         1,
		Name:       "default",
		RangeStart: "10.0.0.1",
		RangeEnd:   "10.0.0.5",
		Ports: []probe.Port{
			{Number: 80, Label: "HTTP", Scheme: probe.SchemePlain},
		},
		TimeoutMs:   config.DefaultTimeoutMs,
		Concurrency: 4,
		Strategy:    probe.StrategyConnect,
	}
}

func waitForEvent(
	t *testing.T,
	events chan *event.Event,
	eventType event.EventType,
) *event.Event {
	timeout := time.After(time.Second * 5)

	for {
		select {
		case evt := <-events:
			if evt.Type == eventType {
				return evt
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s event", eventType)
			return nil
		}
	}
}

func TestCore(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	t.Run("scans the configured range to completion", func(st *testing.T) {
		mockService := mock_config.NewMockService(ctrl)
		appCore := core.New(coreConfig(), mockService, factoryFor(&fakeProber{}))

		events := make(chan *event.Event, 100)
		results := make(chan []*scan.HostResult, 100)

		appCore.RegisterEventListener(events)
		appCore.RegisterResultListener(results)

		err := appCore.StartScan()

		assert.NoError(st, err)

		waitForEvent(st, events, event.ScanStartedEventType)
		waitForEvent(st, events, event.ScanCompleteEventType)

		assert.False(st, appCore.Scanning())

		progress := appCore.Progress()

		assert.Equal(st, 5, progress.Total)
		assert.Equal(st, 5, progress.Completed)
		assert.Equal(st, 5, progress.Reachable)

		hosts := appCore.Results()

		assert.Equal(st, 5, len(hosts))
		assert.Equal(st, "10.0.0.1", hosts[0].IP)
		assert.Equal(st, "10.0.0.5", hosts[4].IP)
	})

	t.Run("rejects starting a scan while one is active", func(st *testing.T) {
		mockService := mock_config.NewMockService(ctrl)
		prober := &fakeProber{delay: time.Millisecond * 100}
		appCore := core.New(coreConfig(), mockService, factoryFor(prober))

		events := make(chan *event.Event, 100)

		appCore.RegisterEventListener(events)

		err := appCore.StartScan()

		assert.NoError(st, err)
		assert.True(st, appCore.Scanning())

		err = appCore.StartScan()

		assert.Error(st, err)

		appCore.CancelScan()

		waitForEvent(st, events, event.ScanStoppedEventType)
	})

	t.Run("cancellation keeps the results already gathered", func(st *testing.T) {
		mockService := mock_config.NewMockService(ctrl)
		prober := &fakeProber{delay: time.Millisecond * 20}

		conf := coreConfig()
		conf.RangeEnd = "10.0.0.50"
		conf.Concurrency = 2

		appCore := core.New(conf, mockService, factoryFor(prober))

		events := make(chan *event.Event, 200)

		appCore.RegisterEventListener(events)

		err := appCore.StartScan()

		assert.NoError(st, err)

		waitForEvent(st, events, event.HostUpdateEventType)

		appCore.CancelScan()

		waitForEvent(st, events, event.ScanStoppedEventType)

		hosts := appCore.Results()

		assert.GreaterOrEqual(st, len(hosts), 1)
		assert.Less(st, len(hosts), 50)
	})

	t.Run("reset clears results and progress", func(st *testing.T) {
		mockService := mock_config.NewMockService(ctrl)
		appCore := core.New(coreConfig(), mockService, factoryFor(&fakeProber{}))

		events := make(chan *event.Event, 100)

		appCore.RegisterEventListener(events)

		err := appCore.StartScan()

		assert.NoError(st, err)

		waitForEvent(st, events, event.ScanCompleteEventType)
		assert.NotEmpty(st, appCore.Results())

		appCore.Reset()

		assert.Empty(st, appCore.Results())
		assert.Equal(st, scan.Progress{}, appCore.Progress())
		assert.False(st, appCore.Scanning())
	})

	t.Run("set range overrides the active range without persisting", func(st *testing.T) {
		mockService := mock_config.NewMockService(ctrl)
		appCore := core.New(coreConfig(), mockService, factoryFor(&fakeProber{}))

		events := make(chan *event.Event, 100)

		appCore.RegisterEventListener(events)

		appCore.SetRange(nil, "172.16.0.1", "172.16.0.3")

		err := appCore.StartScan()

		assert.NoError(st, err)

		waitForEvent(st, events, event.ScanCompleteEventType)

		hosts := appCore.Results()

		assert.Equal(st, 3, len(hosts))
		assert.Equal(st, "172.16.0.1", hosts[0].IP)
	})

	t.Run("updates and activates config", func(st *testing.T) {
		mockService := mock_config.NewMockService(ctrl)
		appCore := core.New(coreConfig(), mockService, factoryFor(&fakeProber{}))

		updated := coreConfig()
		updated.TimeoutMs = 5000

		mockService.EXPECT().
			Update(gomock.Any()).
			Return(updated, nil)

		err := appCore.UpdateConfig(*updated)

		assert.NoError(st, err)
		assert.Equal(st, 5000, appCore.Conf().TimeoutMs)
	})

	t.Run("activates a stored config by name", func(st *testing.T) {
		mockService := mock_config.NewMockService(ctrl)
		appCore := core.New(coreConfig(), mockService, factoryFor(&fakeProber{}))

		stored := coreConfig()
		stored.Name = "office"

		mockService.EXPECT().Get("office").Return(stored, nil)
		mockService.EXPECT().SetLastLoaded("office").Return(nil)

		err := appCore.SetConfig("office")

		assert.NoError(st, err)
		assert.Equal(st, "office", appCore.Conf().Name)
	})

	t.Run("delete and list delegate to the service", func(st *testing.T) {
		mockService := mock_config.NewMockService(ctrl)
		appCore := core.New(coreConfig(), mockService, factoryFor(&fakeProber{}))

		mockService.EXPECT().Delete("office").Return(nil)
		mockService.EXPECT().GetAll().Return([]*config.Config{coreConfig()}, nil)

		assert.NoError(st, appCore.DeleteConfig("office"))

		confs, err := appCore.GetConfigs()

		assert.NoError(st, err)
		assert.Equal(st, 1, len(confs))
	})
}
