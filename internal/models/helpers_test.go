package models

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"photo-wall/internal/timeutil"
)

// fakeLoader serves blank images keyed by file base name
type fakeLoader struct {
	sizes map[string]image.Point
	calls int
}

func (l *fakeLoader) Load(path string) (image.Image, error) {
	l.calls++
	size, ok := l.sizes[filepath.Base(path)]
	if !ok {
		return nil, errors.New("cannot decode")
	}
	return image.NewGray(image.Rect(0, 0, size.X, size.Y)), nil
}

// fakeRenderer renders at 10 px per unit without touching pixels
type fakeRenderer struct {
	renders int
}

func (r *fakeRenderer) Render(_ image.Image, frame Dimensions) image.Image {
	r.renders++
	return image.NewGray(image.Rect(0, 0, int(frame.Width*10), int(frame.Height*10)))
}

func newTestWall(sizes map[string]image.Point) (*Wall, *timeutil.MockClock) {
	clock := timeutil.NewMockClock(time.Unix(1700000000, 0))
	wall := NewWall(&fakeLoader{sizes: sizes}, &fakeRenderer{}, WallConfig{
		Layout:      DefaultLayoutOptions(),
		DefaultSize: SizeSmall,
		Clock:       clock,
	})
	return wall, clock
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func mustFrame(t *testing.T, wall *Wall, source string, size SizeClass, at Point) *Frame {
	t.Helper()
	frame, err := NewFrame(source, size, wall.loader, wall.renderer)
	if err != nil {
		t.Fatalf("NewFrame(%s): %v", source, err)
	}
	frame.SetPosition(at)
	wall.mu.Lock()
	wall.frames = append(wall.frames, frame)
	wall.mu.Unlock()
	return frame
}
