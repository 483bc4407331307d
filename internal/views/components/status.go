package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar shows the last action result and the frame total.
// Setters must be called on the UI goroutine.
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	frameInfo   *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{
		statusLabel: widget.NewLabel("Ready"),
		frameInfo:   widget.NewLabel("Frames: 0"),
	}
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.frameInfo,
	)
	return sb
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

func (sb *StatusBar) SetFrameCount(count int) {
	sb.frameInfo.SetText(fmt.Sprintf("Frames: %d", count))
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
