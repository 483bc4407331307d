package controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"photo-wall/internal/logger"
	"photo-wall/internal/models"

	"github.com/dustin/go-humanize"
)

// View receives everything the controller wants displayed
type View interface {
	ShowFrames(frames []models.FrameView)
	ShowCounts(counts map[models.SizeClass]int)
	SetStatus(message string)
	ShowError(title string, err error)
}

type WallOptions struct {
	StatePath      string
	DebounceWindow time.Duration
}

// WallController turns pointer events and toolbar actions into wall operations.
// It owns the drag state; the wall owns everything else.
type WallController struct {
	wall    *models.Wall
	view    View
	logger  logger.Logger
	options WallOptions

	mu       sync.Mutex
	dragging *models.Frame
	lastDrag models.Point
}

func NewWallController(wall *models.Wall, log logger.Logger, options WallOptions) *WallController {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	if options.StatePath == "" {
		options.StatePath = "wall_state.json"
	}
	if options.DebounceWindow < 0 {
		options.DebounceWindow = models.DefaultDebounceWindow
	}

	return &WallController{
		wall:    wall,
		logger:  log,
		options: options,
	}
}

// SetView associates the view with this controller and pushes the current wall
func (wc *WallController) SetView(view View) {
	wc.mu.Lock()
	wc.view = view
	wc.mu.Unlock()

	wc.Refresh()
}

// LoadDirectory replaces the wall with the images found in dir
func (wc *WallController) LoadDirectory(dir string, canvasWidth float64) error {
	wc.endDrag()
	wc.status(fmt.Sprintf("Loading images from %s...", dir))

	start := time.Now()
	report, err := wc.wall.LoadDirectory(dir, canvasWidth)
	if err != nil {
		wc.handleError("Load images failed", err)
		return err
	}

	message := fmt.Sprintf("Loaded %s images from %s", humanize.Comma(int64(report.Loaded)), filepath.Base(dir))
	if len(report.Skipped) > 0 {
		message += fmt.Sprintf(", skipped %d unreadable", len(report.Skipped))
	}
	wc.logger.Info("WallController", "directory loaded", map[string]interface{}{
		"dir":         dir,
		"loaded":      report.Loaded,
		"skipped":     len(report.Skipped),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	wc.Refresh()
	wc.status(message)
	return nil
}

// SaveState writes the layout to the configured state file
func (wc *WallController) SaveState() error {
	path := wc.options.StatePath
	if err := wc.wall.SaveState(path); err != nil {
		wc.handleError("Save failed", err)
		return err
	}

	message := fmt.Sprintf("Saved %d frames to %s", wc.wall.Len(), path)
	if info, err := os.Stat(path); err == nil {
		message += fmt.Sprintf(" (%s)", humanize.Bytes(uint64(info.Size())))
	}
	wc.status(message)
	return nil
}

// LoadState restores the layout from the configured state file
func (wc *WallController) LoadState() error {
	wc.endDrag()

	path := wc.options.StatePath
	if err := wc.wall.LoadState(path); err != nil {
		wc.handleError("Load failed", err)
		return err
	}

	wc.Refresh()
	wc.status(fmt.Sprintf("Restored %d frames from %s", wc.wall.Len(), path))
	return nil
}

// ClearWall removes every frame; the state file is left alone
func (wc *WallController) ClearWall() {
	wc.endDrag()
	removed := wc.wall.Len()
	wc.wall.Clear()

	wc.Refresh()
	wc.status(fmt.Sprintf("Cleared %d frames", removed))
}

// PrimaryPress starts dragging the frame under p, if any
func (wc *WallController) PrimaryPress(p models.Point) bool {
	frame := wc.wall.HitTest(p)

	wc.mu.Lock()
	defer wc.mu.Unlock()

	wc.dragging = frame
	wc.lastDrag = p
	return frame != nil
}

// Drag moves the dragged frame by the pointer delta since the previous event
func (wc *WallController) Drag(p models.Point) bool {
	wc.mu.Lock()
	frame := wc.dragging
	last := wc.lastDrag
	wc.lastDrag = p
	wc.mu.Unlock()

	if frame == nil {
		return false
	}

	pos := frame.Position()
	moved := wc.wall.MoveFrame(frame, models.Point{
		X: pos.X + p.X - last.X,
		Y: pos.Y + p.Y - last.Y,
	})
	if !moved {
		wc.endDrag()
		return false
	}

	wc.pushFrames()
	return true
}

func (wc *WallController) Release() {
	wc.endDrag()
}

// SecondaryPress selects the frame under p and cycles its size
func (wc *WallController) SecondaryPress(p models.Point) bool {
	frame := wc.wall.HitTest(p)
	if frame == nil {
		return false
	}

	wc.wall.Select(frame)
	if !wc.wall.ToggleSize(frame) {
		return false
	}

	wc.logger.Debug("WallController", "frame resized", map[string]interface{}{
		"source": frame.Source(),
		"size":   frame.Size().String(),
	})
	wc.Refresh()
	return true
}

// TertiaryPress deletes the frame nearest to p, subject to the debounce window
func (wc *WallController) TertiaryPress(p models.Point) bool {
	deleted := wc.wall.DeleteNearest(p, wc.options.DebounceWindow)
	if deleted == nil {
		return false
	}

	wc.mu.Lock()
	if wc.dragging == deleted {
		wc.dragging = nil
	}
	wc.mu.Unlock()

	wc.Refresh()
	wc.status(fmt.Sprintf("Removed %s", filepath.Base(deleted.Source())))
	return true
}

// Refresh pushes frames and size counts to the view
func (wc *WallController) Refresh() {
	wc.pushFrames()
	if view := wc.currentView(); view != nil {
		view.ShowCounts(wc.wall.CountsBySize())
	}
}

func (wc *WallController) pushFrames() {
	if view := wc.currentView(); view != nil {
		view.ShowFrames(wc.wall.Snapshot())
	}
}

func (wc *WallController) status(message string) {
	if view := wc.currentView(); view != nil {
		view.SetStatus(message)
	}
}

func (wc *WallController) handleError(title string, err error) {
	wc.logger.Error("WallController", err, map[string]interface{}{
		"action": title,
	})
	if view := wc.currentView(); view != nil {
		view.ShowError(title, err)
		view.SetStatus(title)
	}
}

func (wc *WallController) endDrag() {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	wc.dragging = nil
}

func (wc *WallController) currentView() View {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	return wc.view
}
