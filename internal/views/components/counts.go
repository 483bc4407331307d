package components

import (
	"fmt"

	"photo-wall/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// CountsPanel lists how many frames use each size class
type CountsPanel struct {
	container *fyne.Container
	labels    map[models.SizeClass]*widget.Label
}

func NewCountsPanel() *CountsPanel {
	panel := &CountsPanel{
		labels: make(map[models.SizeClass]*widget.Label),
	}

	objects := []fyne.CanvasObject{widget.NewLabelWithStyle("Sizes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})}
	for _, size := range models.SizeClasses() {
		label := widget.NewLabel(CountText(size, 0))
		panel.labels[size] = label
		objects = append(objects, label)
	}
	panel.container = container.NewVBox(objects...)

	return panel
}

// SetCounts updates every label; must be called on the UI goroutine
func (cp *CountsPanel) SetCounts(counts map[models.SizeClass]int) {
	for size, label := range cp.labels {
		label.SetText(CountText(size, counts[size]))
	}
}

func (cp *CountsPanel) GetContainer() *fyne.Container {
	return cp.container
}

func CountText(size models.SizeClass, count int) string {
	return fmt.Sprintf("Size %s: %d", size, count)
}
