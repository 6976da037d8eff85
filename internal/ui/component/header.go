package component

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/dmaloney/lanprobe/internal/scan"
	"github.com/dmaloney/lanprobe/internal/ui/style"
)

const appText = `
██╗      █████╗ ███╗   ██╗██████╗ ██████╗  ██████╗ ██████╗ ███████╗
██║     ██╔══██╗████╗  ██║██╔══██╗██╔══██╗██╔═══██╗██╔══██╗██╔════╝
██║     ███████║██╔██╗ ██║██████╔╝██████╔╝██║   ██║██████╔╝█████╗
██║     ██╔══██║██║╚██╗██║██╔═══╝ ██╔══██╗██║   ██║██╔══██╗██╔══╝
███████╗██║  ██║██║ ╚████║██║     ██║  ██║╚██████╔╝██████╔╝███████╗
╚══════╝╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝     ╚═╝  ╚═╝ ╚═════╝ ╚═════╝ ╚══════╝`

// Header top of screen component showing the app banner, key legend,
// current target, and live scan progress
type Header struct {
	root         *tview.Flex
	progressText *tview.TextView
	statusText   *tview.TextView
}

// NewHeader returns a new Header
func NewHeader(userIP string, targets []string) *Header {
	h := &Header{}

	h.root = tview.NewFlex().SetDirection(tview.FlexRow)

	legendContainer := tview.NewFlex().SetDirection(tview.FlexColumn)

	title := tview.NewTextView().
		SetText(appText).
		SetTextAlign(tview.AlignLeft)
	title.SetTextColor(style.ColorPurple)

	legend := tview.NewFlex().SetDirection(tview.FlexRow)

	for _, entry := range []string{
		"s - start scan",
		"x - cancel scan",
		"r - reset results",
		"q - quit",
	} {
		text := tview.NewTextView().
			SetText(entry).
			SetTextAlign(tview.AlignLeft)
		text.SetTextColor(style.ColorOrange)
		legend.AddItem(text, 1, 1, false)
	}

	legendContainer.AddItem(title, 0, 2, false)
	legendContainer.AddItem(legend, 0, 1, false)

	currentTarget := tview.NewTextView().
		SetText(
			fmt.Sprintf(
				"IP: %s, Network Targets: %s",
				userIP,
				strings.Join(targets, ","),
			),
		)

	currentTarget.SetTextColor(style.ColorLightGreen)
	currentTarget.SetTextAlign(tview.AlignLeft)

	progressText := tview.NewTextView()
	progressText.SetTextColor(style.ColorLightGreen)
	progressText.SetTextAlign(tview.AlignLeft)

	statusText := tview.NewTextView().SetText("idle")
	statusText.SetTextColor(style.ColorOrange)
	statusText.SetTextAlign(tview.AlignLeft)

	h.root.AddItem(legendContainer, 0, 1, false)
	h.root.AddItem(currentTarget, 1, 1, false)
	h.root.AddItem(progressText, 1, 1, false)
	h.root.AddItem(statusText, 1, 1, false)

	h.progressText = progressText
	h.statusText = statusText

	h.UpdateProgress(scan.Progress{})

	return h
}

// Primitive returns the root primitive for this component
func (h *Header) Primitive() tview.Primitive {
	return h.root
}

// UpdateProgress refreshes the progress counter line
func (h *Header) UpdateProgress(progress scan.Progress) {
	h.progressText.SetText(
		fmt.Sprintf(
			"hosts scanned: %d/%d, reachable: %d",
			progress.Completed,
			progress.Total,
			progress.Reachable,
		),
	)
}

// SetStatus refreshes the scan status line
func (h *Header) SetStatus(status string) {
	h.statusText.SetText(status)
}
