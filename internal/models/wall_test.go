package models

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var portraitSource = image.Point{X: 300, Y: 600}

func TestWall_LoadDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.jpg", "b.PNG", "broken.jpg", "c.jpeg", "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir.jpg"), 0o755))

	wall, _ := newTestWall(map[string]image.Point{
		"a.jpg":  portraitSource,
		"b.PNG":  portraitSource,
		"c.jpeg": portraitSource,
	})

	report, err := wall.LoadDirectory(dir, 1000)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Loaded)
	assert.Equal(t, []string{filepath.Join(dir, "broken.jpg")}, report.Skipped)

	frames := wall.Frames()
	require.Len(t, frames, 3)
	assert.Equal(t, filepath.Join(dir, "a.jpg"), frames[0].Source())
	assert.Equal(t, filepath.Join(dir, "b.PNG"), frames[1].Source())
	assert.Equal(t, filepath.Join(dir, "c.jpeg"), frames[2].Source())

	for i, frame := range frames {
		assert.Equal(t, SizeSmall, frame.Size())
		assert.Equal(t, Point{X: 10 + float64(i)*150, Y: 10}, frame.Position())
	}
}

func TestWall_LoadDirectoryReplacesCollection(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	touch(t, first, "a.jpg", "b.jpg")
	touch(t, second, "c.jpg")

	wall, _ := newTestWall(map[string]image.Point{
		"a.jpg": portraitSource,
		"b.jpg": portraitSource,
		"c.jpg": portraitSource,
	})

	_, err := wall.LoadDirectory(first, 1000)
	require.NoError(t, err)
	wall.Select(wall.Frames()[0])

	_, err = wall.LoadDirectory(second, 1000)
	require.NoError(t, err)

	require.Equal(t, 1, wall.Len())
	assert.Equal(t, filepath.Join(second, "c.jpg"), wall.Frames()[0].Source())
	assert.Nil(t, wall.Selected())
}

func TestWall_LoadDirectoryErrors(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.jpg")
	wall, _ := newTestWall(map[string]image.Point{"a.jpg": portraitSource})
	_, err := wall.LoadDirectory(dir, 1000)
	require.NoError(t, err)

	_, err = wall.LoadDirectory(filepath.Join(dir, "nope"), 1000)
	assert.ErrorIs(t, err, ErrDirectory)

	_, err = wall.LoadDirectory(filepath.Join(dir, "a.jpg"), 1000)
	assert.ErrorIs(t, err, ErrDirectory)

	assert.Equal(t, 1, wall.Len(), "failed loads must keep the current wall")
}

func TestWall_HitTest(t *testing.T) {
	wall, _ := newTestWall(map[string]image.Point{"a.jpg": portraitSource, "b.jpg": portraitSource})
	a := mustFrame(t, wall, "a.jpg", SizeSmall, Point{X: 0, Y: 0})
	b := mustFrame(t, wall, "b.jpg", SizeSmall, Point{X: 100, Y: 100})

	assert.Nil(t, wall.HitTest(Point{X: 500, Y: 500}))
	assert.Same(t, a, wall.HitTest(Point{X: 5, Y: 5}))
	assert.Same(t, b, wall.HitTest(Point{X: 200, Y: 250}))
	// overlap: both boxes contain (120,120); first inserted wins
	assert.Same(t, a, wall.HitTest(Point{X: 120, Y: 120}))
}

func TestWall_NearestTo(t *testing.T) {
	wall, _ := newTestWall(map[string]image.Point{"a.jpg": portraitSource, "b.jpg": portraitSource})
	assert.Nil(t, wall.NearestTo(Point{}))

	a := mustFrame(t, wall, "a.jpg", SizeSmall, Point{X: 0, Y: 0})
	b := mustFrame(t, wall, "b.jpg", SizeSmall, Point{X: 200, Y: 0})

	assert.Same(t, a, wall.NearestTo(Point{X: 0, Y: 0}))
	assert.Same(t, b, wall.NearestTo(Point{X: 1000, Y: 90}))
	// equidistant from both centers (65,90) and (265,90)
	assert.Same(t, a, wall.NearestTo(Point{X: 165, Y: 90}))
}

func TestWall_DeleteNearestDebounce(t *testing.T) {
	wall, clock := newTestWall(map[string]image.Point{
		"a.jpg": portraitSource,
		"b.jpg": portraitSource,
		"c.jpg": portraitSource,
	})
	a := mustFrame(t, wall, "a.jpg", SizeSmall, Point{X: 0, Y: 0})
	mustFrame(t, wall, "b.jpg", SizeSmall, Point{X: 200, Y: 0})
	mustFrame(t, wall, "c.jpg", SizeSmall, Point{X: 400, Y: 0})

	deleted := wall.DeleteNearest(Point{X: 10, Y: 10}, DefaultDebounceWindow)
	assert.Same(t, a, deleted)

	clock.Advance(10 * time.Millisecond)
	assert.Nil(t, wall.DeleteNearest(Point{X: 10, Y: 10}, DefaultDebounceWindow))
	assert.Equal(t, 2, wall.Len(), "a second trigger inside the window removes nothing")

	clock.Advance(DefaultDebounceWindow)
	assert.NotNil(t, wall.DeleteNearest(Point{X: 10, Y: 10}, DefaultDebounceWindow))
	assert.Equal(t, 1, wall.Len())
}

func TestWall_DeleteOnlyFrameZeroesCounts(t *testing.T) {
	wall, _ := newTestWall(map[string]image.Point{"a.jpg": portraitSource})
	a := mustFrame(t, wall, "a.jpg", SizeMedium, Point{})
	wall.Select(a)

	require.Same(t, a, wall.DeleteNearest(Point{X: 500, Y: 500}, DefaultDebounceWindow))

	assert.Zero(t, wall.Len())
	assert.Nil(t, wall.Selected())
	assert.Equal(t, map[SizeClass]int{SizeLarge: 0, SizeMedium: 0, SizeSmall: 0}, wall.CountsBySize())
}

func TestWall_ToggleSizeAndCounts(t *testing.T) {
	wall, _ := newTestWall(map[string]image.Point{"a.jpg": portraitSource, "b.jpg": portraitSource})
	a := mustFrame(t, wall, "a.jpg", SizeSmall, Point{})
	mustFrame(t, wall, "b.jpg", SizeSmall, Point{X: 300})

	assert.Equal(t, map[SizeClass]int{SizeLarge: 0, SizeMedium: 0, SizeSmall: 2}, wall.CountsBySize())

	wall.Select(a)
	require.True(t, wall.ToggleSize(a))
	assert.Equal(t, SizeLarge, a.Size())
	assert.Same(t, a, wall.Selected())
	wall.ClearSelection()
	assert.Nil(t, wall.Selected())
	assert.Equal(t, map[SizeClass]int{SizeLarge: 1, SizeMedium: 0, SizeSmall: 1}, wall.CountsBySize())
}

func TestWall_MoveFrame(t *testing.T) {
	wall, _ := newTestWall(map[string]image.Point{"a.jpg": portraitSource})
	a := mustFrame(t, wall, "a.jpg", SizeSmall, Point{})

	require.True(t, wall.MoveFrame(a, Point{X: -40, Y: 75}))
	assert.Equal(t, Point{X: -40, Y: 75}, a.Position())

	stranger, err := NewFrame("a.jpg", SizeSmall, wall.loader, wall.renderer)
	require.NoError(t, err)
	assert.False(t, wall.MoveFrame(stranger, Point{X: 1, Y: 1}))
	assert.False(t, wall.ToggleSize(nil))
}

func TestWall_SnapshotCopiesState(t *testing.T) {
	wall, _ := newTestWall(map[string]image.Point{"a.jpg": portraitSource})
	a := mustFrame(t, wall, "a.jpg", SizeSmall, Point{X: 3, Y: 4})

	views := wall.Snapshot()
	require.Len(t, views, 1)
	assert.Equal(t, a.ID(), views[0].ID)
	assert.Equal(t, Point{X: 3, Y: 4}, views[0].Position)
	assert.Equal(t, 130, views[0].Width)
	assert.Equal(t, 180, views[0].Height)

	a.SetPosition(Point{X: 9, Y: 9})
	assert.Equal(t, Point{X: 3, Y: 4}, views[0].Position)
}
