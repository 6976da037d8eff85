package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/dmaloney/lanprobe/internal/core"
	"github.com/dmaloney/lanprobe/internal/event"
	"github.com/dmaloney/lanprobe/internal/logger"
	"github.com/dmaloney/lanprobe/internal/scan"
	"github.com/dmaloney/lanprobe/internal/ui/component"
	"github.com/dmaloney/lanprobe/internal/ui/key"
)

type view struct {
	ctx              context.Context
	cancel           context.CancelFunc
	app              *tview.Application
	root             *tview.Flex
	header           *component.Header
	hostTable        *component.HostTable
	appCore          *core.Core
	resultUpdateChan chan []*scan.HostResult
	eventUpdateChan  chan *event.Event
	resultListenerId int
	eventListenerId  int
	logger           logger.Logger
}

func newView(userIP string, appCore *core.Core) *view {
	log := logger.New()

	ctx, cancel := context.WithCancel(context.Background())

	app := tview.NewApplication()

	v := &view{
		ctx:     ctx,
		cancel:  cancel,
		appCore: appCore,
		app:     app,
		logger:  log,
	}

	conf := appCore.Conf()

	root := tview.NewFlex().SetDirection(tview.FlexRow)

	header := component.NewHeader(userIP, conf.Targets)
	hostTable := component.NewHostTable()

	root.
		AddItem(header.Primitive(), 12, 1, false).
		AddItem(hostTable.Primitive(), 0, 1, true)

	resultUpdateChan := make(chan []*scan.HostResult, 100)
	eventUpdateChan := make(chan *event.Event, 100)

	resultListenerId := appCore.RegisterResultListener(resultUpdateChan)
	eventListenerId := appCore.RegisterEventListener(eventUpdateChan)

	v.root = root
	v.header = header
	v.hostTable = hostTable
	v.resultUpdateChan = resultUpdateChan
	v.eventUpdateChan = eventUpdateChan
	v.resultListenerId = resultListenerId
	v.eventListenerId = eventListenerId

	return v
}

func (v *view) bindKeys() {
	v.app.SetInputCapture(func(evt *tcell.EventKey) *tcell.EventKey {
		if evt.Key() == key.KeyCtrlC {
			v.stop()
			return evt
		}

		switch evt.Rune() {
		case key.RuneScan:
			if err := v.appCore.StartScan(); err != nil {
				v.logger.Warn().Err(err).Msg("scan not started")
			}
			return nil
		case key.RuneStop:
			v.appCore.CancelScan()
			return nil
		case key.RuneReset:
			v.appCore.Reset()
			v.header.UpdateProgress(v.appCore.Progress())
			v.header.SetStatus("idle")
			return nil
		case key.RuneQuit:
			v.stop()
			return nil
		}

		return evt
	})
}

func (v *view) handleEvent(evt *event.Event) {
	v.header.UpdateProgress(v.appCore.Progress())

	switch evt.Type {
	case event.ScanStartedEventType:
		v.header.SetStatus("scanning")
	case event.HostUpdateEventType:
		v.header.SetStatus("scanning")
	case event.ScanStoppedEventType:
		v.header.SetStatus("canceled")
	case event.ScanCompleteEventType:
		v.header.SetStatus("complete")
	case event.FatalErrorEventType:
		v.logger.Error().Interface("payload", evt.Payload).Msg("fatal error event")
		v.stop()
	}
}

func (v *view) processBackgroundResultUpdates() {
	go func() {
		for {
			select {
			case <-v.ctx.Done():
				return
			case results := <-v.resultUpdateChan:
				v.app.QueueUpdateDraw(func() {
					v.hostTable.UpdateTable(results)
				})
			}
		}
	}()
}

func (v *view) processBackgroundEventUpdates() {
	go func() {
		for {
			select {
			case <-v.ctx.Done():
				return
			case evt := <-v.eventUpdateChan:
				v.app.QueueUpdateDraw(func() {
					v.handleEvent(evt)
				})
			}
		}
	}()
}

func (v *view) stop() {
	v.appCore.RemoveResultListener(v.resultListenerId)
	v.appCore.RemoveEventListener(v.eventListenerId)
	v.cancel()
	v.appCore.Stop()
	v.app.Stop()
}

func (v *view) run() error {
	v.bindKeys()
	v.processBackgroundResultUpdates()
	v.processBackgroundEventUpdates()
	return v.app.SetRoot(v.root, true).EnableMouse(true).Run()
}
