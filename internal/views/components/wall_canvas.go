package components

import (
	"image/color"

	"photo-wall/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// PointHandler receives a pointer position in wall coordinates
type PointHandler func(models.Point)

// WallCanvas draws frame presentations at their wall positions on a white
// background and reports pointer input. Wall pixels map 1:1 to canvas units.
type WallCanvas struct {
	widget.BaseWidget

	background *canvas.Rectangle
	images     map[string]*canvas.Image
	order      []*canvas.Image

	OnPrimaryPress   PointHandler
	OnDrag           PointHandler
	OnRelease        func()
	OnSecondaryPress PointHandler
	OnTertiaryPress  PointHandler
}

var (
	_ desktop.Mouseable      = (*WallCanvas)(nil)
	_ fyne.Draggable         = (*WallCanvas)(nil)
	_ fyne.SecondaryTappable = (*WallCanvas)(nil)
)

func NewWallCanvas() *WallCanvas {
	wc := &WallCanvas{
		background: canvas.NewRectangle(color.White),
		images:     make(map[string]*canvas.Image),
	}
	wc.ExtendBaseWidget(wc)
	return wc
}

// SetFrames replaces what is drawn. Images are reused by frame ID so dragging
// does not re-upload textures. Must be called on the UI goroutine.
func (wc *WallCanvas) SetFrames(frames []models.FrameView) {
	seen := make(map[string]bool, len(frames))
	order := make([]*canvas.Image, 0, len(frames))

	for _, frame := range frames {
		seen[frame.ID] = true

		img, ok := wc.images[frame.ID]
		if !ok {
			img = canvas.NewImageFromImage(frame.Image)
			img.FillMode = canvas.ImageFillStretch
			img.ScaleMode = canvas.ImageScaleSmooth
			wc.images[frame.ID] = img
		} else if img.Image != frame.Image {
			img.Image = frame.Image
			img.Refresh()
		}

		img.Move(fyne.NewPos(float32(frame.Position.X), float32(frame.Position.Y)))
		img.Resize(fyne.NewSize(float32(frame.Width), float32(frame.Height)))
		order = append(order, img)
	}

	for id := range wc.images {
		if !seen[id] {
			delete(wc.images, id)
		}
	}
	wc.order = order
	wc.Refresh()
}

// Width is the current drawable width, used for the initial flow layout
func (wc *WallCanvas) Width() float64 {
	return float64(wc.Size().Width)
}

func (wc *WallCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &wallRenderer{wall: wc}
}

func (wc *WallCanvas) MouseDown(ev *desktop.MouseEvent) {
	p := toPoint(ev.Position)
	switch ev.Button {
	case desktop.MouseButtonPrimary:
		if wc.OnPrimaryPress != nil {
			wc.OnPrimaryPress(p)
		}
	case desktop.MouseButtonTertiary:
		if wc.OnTertiaryPress != nil {
			wc.OnTertiaryPress(p)
		}
	}
}

func (wc *WallCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary && wc.OnRelease != nil {
		wc.OnRelease()
	}
}

func (wc *WallCanvas) Dragged(ev *fyne.DragEvent) {
	if wc.OnDrag != nil {
		wc.OnDrag(toPoint(ev.Position))
	}
}

func (wc *WallCanvas) DragEnd() {
	if wc.OnRelease != nil {
		wc.OnRelease()
	}
}

// TappedSecondary handles right click; MouseDown ignores the secondary button
// so the size is cycled once per click.
func (wc *WallCanvas) TappedSecondary(ev *fyne.PointEvent) {
	if wc.OnSecondaryPress != nil {
		wc.OnSecondaryPress(toPoint(ev.Position))
	}
}

func toPoint(pos fyne.Position) models.Point {
	return models.Point{X: float64(pos.X), Y: float64(pos.Y)}
}

type wallRenderer struct {
	wall *WallCanvas
}

func (r *wallRenderer) Layout(size fyne.Size) {
	r.wall.background.Resize(size)
}

func (r *wallRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (r *wallRenderer) Refresh() {
	r.wall.background.Refresh()
	for _, img := range r.wall.order {
		canvas.Refresh(img)
	}
}

func (r *wallRenderer) Objects() []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, len(r.wall.order)+1)
	objects = append(objects, r.wall.background)
	for _, img := range r.wall.order {
		objects = append(objects, img)
	}
	return objects
}

func (r *wallRenderer) Destroy() {}
