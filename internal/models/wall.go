package models

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"photo-wall/internal/logger"
	"photo-wall/internal/timeutil"
)

// DefaultDebounceWindow is the minimum gap between two honored deletions
const DefaultDebounceWindow = 50 * time.Millisecond

var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// IsSupportedImage reports whether name has a loadable image extension
func IsSupportedImage(name string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// WallConfig carries the collaborators and tunables of a Wall
type WallConfig struct {
	Layout      LayoutOptions
	DefaultSize SizeClass
	Clock       timeutil.Clock
	Logger      logger.Logger
}

// Wall owns the ordered collection of frames. Insertion order is z-order.
type Wall struct {
	mu         sync.RWMutex
	frames     []*Frame
	selected   *Frame
	lastDelete time.Time

	loader      SourceLoader
	renderer    Renderer
	layout      LayoutOptions
	defaultSize SizeClass
	clock       timeutil.Clock
	logger      logger.Logger
}

// FrameView is a read-only copy of a frame's state for drawing
type FrameView struct {
	ID          string
	Source      string
	Size        SizeClass
	Orientation Orientation
	Position    Point
	Width       int
	Height      int
	Image       image.Image
}

// LoadReport summarises a directory load
type LoadReport struct {
	Loaded  int
	Skipped []string
}

// NewWall creates an empty wall
func NewWall(loader SourceLoader, renderer Renderer, cfg WallConfig) *Wall {
	if cfg.Clock == nil {
		cfg.Clock = timeutil.RealClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NoOpLogger{}
	}
	if !cfg.DefaultSize.Valid() {
		cfg.DefaultSize = SizeSmall
	}

	return &Wall{
		loader:      loader,
		renderer:    renderer,
		layout:      cfg.Layout,
		defaultSize: cfg.DefaultSize,
		clock:       cfg.Clock,
		logger:      cfg.Logger,
	}
}

// LoadDirectory replaces the wall with one frame per supported image in dir,
// flowed across canvasWidth. Images that fail to decode are skipped.
func (w *Wall) LoadDirectory(dir string, canvasWidth float64) (LoadReport, error) {
	var report LoadReport

	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, fmt.Errorf("%w: failed to read %s: %w", ErrDirectory, dir, err)
	}

	frames := make([]*Frame, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsSupportedImage(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		frame, err := NewFrame(path, w.defaultSize, w.loader, w.renderer)
		if err != nil {
			w.logger.Warning("Wall", "skipping unreadable image", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			report.Skipped = append(report.Skipped, path)
			continue
		}
		frames = append(frames, frame)
	}

	sizes := make([]Size, len(frames))
	for i, frame := range frames {
		width, height := frame.RenderedSize()
		sizes[i] = Size{Width: float64(width), Height: float64(height)}
	}
	for i, pos := range FlowLayout(sizes, canvasWidth, w.layout) {
		frames[i].SetPosition(pos)
	}

	w.replace(frames)
	report.Loaded = len(frames)

	w.logger.Info("Wall", "directory loaded", map[string]interface{}{
		"dir":          dir,
		"loaded":       report.Loaded,
		"skipped":      len(report.Skipped),
		"canvas_width": canvasWidth,
	})

	return report, nil
}

// SaveState writes every frame's source, size and position to path.
// The file is replaced atomically so a failed save leaves the old layout intact.
func (w *Wall) SaveState(path string) error {
	records := w.Records()

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".wall_state-*.json")
	if err != nil {
		return fmt.Errorf("%w: failed to create %s: %w", ErrPersistence, path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: failed to set mode on %s: %w", ErrPersistence, path, err)
	}
	if err := EncodeState(tmp, records); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: failed to encode layout: %w", ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", ErrPersistence, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: failed to replace %s: %w", ErrPersistence, path, err)
	}

	w.logger.Info("Wall", "layout saved", map[string]interface{}{
		"path":   path,
		"frames": len(records),
	})
	return nil
}

// LoadState replaces the wall with the frames recorded in path, keeping their
// order, size and position. On any failure the current wall is left untouched.
func (w *Wall) LoadState(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: failed to read %s: %w", ErrPersistence, path, err)
	}

	records, err := DecodeState(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPersistence, path, err)
	}

	frames := make([]*Frame, 0, len(records))
	for i, record := range records {
		size, _ := SizeClassFromIndex(record.SizeIndex)
		frame, err := NewFrame(record.Path, size, w.loader, w.renderer)
		if err != nil {
			return fmt.Errorf("%w: record %d: %w", ErrPersistence, i, err)
		}
		frame.SetPosition(Point{X: record.Position[0], Y: record.Position[1]})
		frames = append(frames, frame)
	}

	w.replace(frames)

	w.logger.Info("Wall", "layout restored", map[string]interface{}{
		"path":   path,
		"frames": len(frames),
	})
	return nil
}

// Records returns the persisted form of every frame, in order
func (w *Wall) Records() []FrameRecord {
	w.mu.RLock()
	defer w.mu.RUnlock()

	records := make([]FrameRecord, len(w.frames))
	for i, frame := range w.frames {
		pos := frame.Position()
		records[i] = FrameRecord{
			Path:      frame.Source(),
			SizeIndex: int(frame.Size()),
			Position:  [2]float64{pos.X, pos.Y},
		}
	}
	return records
}

// HitTest returns the first frame, in insertion order, whose box contains p
func (w *Wall) HitTest(p Point) *Frame {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, frame := range w.frames {
		if frame.Contains(p) {
			return frame
		}
	}
	return nil
}

// NearestTo returns the frame whose center is closest to p; ties go to the earlier frame
func (w *Wall) NearestTo(p Point) *Frame {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.nearestLocked(p)
}

func (w *Wall) nearestLocked(p Point) *Frame {
	var nearest *Frame
	best := math.Inf(1)

	for _, frame := range w.frames {
		c := frame.Center()
		d := math.Hypot(p.X-c.X, p.Y-c.Y)
		if d < best {
			best = d
			nearest = frame
		}
	}
	return nearest
}

// DeleteNearest removes the frame nearest to p. A call arriving within window
// of the previous honored call is ignored and returns nil.
func (w *Wall) DeleteNearest(p Point, window time.Duration) *Frame {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.clock.Now()
	if !w.lastDelete.IsZero() && now.Sub(w.lastDelete) < window {
		w.logger.Debug("Wall", "deletion debounced", map[string]interface{}{
			"since_last_ms": now.Sub(w.lastDelete).Milliseconds(),
		})
		return nil
	}
	w.lastDelete = now

	nearest := w.nearestLocked(p)
	if nearest == nil {
		return nil
	}

	w.removeLocked(nearest)
	w.logger.Debug("Wall", "frame deleted", map[string]interface{}{
		"source": nearest.Source(),
		"x":      p.X,
		"y":      p.Y,
	})
	return nearest
}

func (w *Wall) removeLocked(frame *Frame) bool {
	for i, f := range w.frames {
		if f == frame {
			w.frames = append(w.frames[:i], w.frames[i+1:]...)
			if w.selected == frame {
				w.selected = nil
			}
			return true
		}
	}
	return false
}

// MoveFrame repositions frame. Overlaps are allowed.
func (w *Wall) MoveFrame(frame *Frame, p Point) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.containsLocked(frame) {
		return false
	}
	frame.SetPosition(p)
	return true
}

// ToggleSize cycles frame to its next size class
func (w *Wall) ToggleSize(frame *Frame) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.containsLocked(frame) {
		return false
	}
	frame.CycleSize()
	return true
}

func (w *Wall) containsLocked(frame *Frame) bool {
	if frame == nil {
		return false
	}
	for _, f := range w.frames {
		if f == frame {
			return true
		}
	}
	return false
}

// CountsBySize returns how many frames use each size class; every class is present
func (w *Wall) CountsBySize() map[SizeClass]int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	counts := make(map[SizeClass]int, len(sizeDimensions))
	for _, s := range SizeClasses() {
		counts[s] = 0
	}
	for _, frame := range w.frames {
		counts[frame.Size()]++
	}
	return counts
}

// Select marks frame as the current selection; nil clears it
func (w *Wall) Select(frame *Frame) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if frame != nil && !w.containsLocked(frame) {
		return
	}
	w.selected = frame
}

func (w *Wall) ClearSelection() {
	w.Select(nil)
}

func (w *Wall) Selected() *Frame {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.selected
}

// Frames returns the frames in z-order
func (w *Wall) Frames() []*Frame {
	w.mu.RLock()
	defer w.mu.RUnlock()

	frames := make([]*Frame, len(w.frames))
	copy(frames, w.frames)
	return frames
}

func (w *Wall) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.frames)
}

// Snapshot copies what a view needs to draw the wall
func (w *Wall) Snapshot() []FrameView {
	w.mu.RLock()
	defer w.mu.RUnlock()

	views := make([]FrameView, len(w.frames))
	for i, frame := range w.frames {
		width, height := frame.RenderedSize()
		views[i] = FrameView{
			ID:          frame.ID(),
			Source:      frame.Source(),
			Size:        frame.Size(),
			Orientation: frame.Orientation(),
			Position:    frame.Position(),
			Width:       width,
			Height:      height,
			Image:       frame.Presentation(),
		}
	}
	return views
}

// Clear removes every frame
func (w *Wall) Clear() {
	w.replace(nil)
}

func (w *Wall) replace(frames []*Frame) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.frames = frames
	w.selected = nil
}
