package controllers

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"photo-wall/internal/models"
	"photo-wall/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct{}

func (stubLoader) Load(path string) (image.Image, error) {
	if strings.Contains(filepath.Base(path), "broken") {
		return nil, errors.New("cannot decode")
	}
	return image.NewGray(image.Rect(0, 0, 300, 600)), nil
}

type stubRenderer struct{}

func (stubRenderer) Render(_ image.Image, frame models.Dimensions) image.Image {
	return image.NewGray(image.Rect(0, 0, int(frame.Width*10), int(frame.Height*10)))
}

type mockView struct {
	frames   []models.FrameView
	counts   map[models.SizeClass]int
	statuses []string
	errors   []error
}

func (v *mockView) ShowFrames(frames []models.FrameView)       { v.frames = frames }
func (v *mockView) ShowCounts(counts map[models.SizeClass]int) { v.counts = counts }
func (v *mockView) SetStatus(message string)                   { v.statuses = append(v.statuses, message) }
func (v *mockView) ShowError(_ string, err error)              { v.errors = append(v.errors, err) }

func (v *mockView) lastStatus() string {
	if len(v.statuses) == 0 {
		return ""
	}
	return v.statuses[len(v.statuses)-1]
}

func newTestController(t *testing.T) (*WallController, *mockView, *timeutil.MockClock) {
	t.Helper()
	clock := timeutil.NewMockClock(time.Unix(1700000000, 0))
	wall := models.NewWall(stubLoader{}, stubRenderer{}, models.WallConfig{
		Layout:      models.DefaultLayoutOptions(),
		DefaultSize: models.SizeSmall,
		Clock:       clock,
	})

	controller := NewWallController(wall, nil, WallOptions{
		StatePath:      filepath.Join(t.TempDir(), "wall_state.json"),
		DebounceWindow: models.DefaultDebounceWindow,
	})
	view := &mockView{}
	controller.SetView(view)
	return controller, view, clock
}

func imageDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	return dir
}

func TestWallController_SetViewPushesEmptyWall(t *testing.T) {
	_, view, _ := newTestController(t)

	assert.Empty(t, view.frames)
	assert.Equal(t, map[models.SizeClass]int{models.SizeLarge: 0, models.SizeMedium: 0, models.SizeSmall: 0}, view.counts)
}

func TestWallController_LoadDirectory(t *testing.T) {
	controller, view, _ := newTestController(t)
	dir := imageDir(t, "a.jpg", "b.png", "broken.jpg")

	require.NoError(t, controller.LoadDirectory(dir, 1000))

	assert.Len(t, view.frames, 2)
	assert.Equal(t, 2, view.counts[models.SizeSmall])
	assert.Contains(t, view.lastStatus(), "Loaded 2 images")
	assert.Contains(t, view.lastStatus(), "skipped 1")
	assert.Empty(t, view.errors)
}

func TestWallController_LoadDirectoryError(t *testing.T) {
	controller, view, _ := newTestController(t)

	err := controller.LoadDirectory(filepath.Join(t.TempDir(), "missing"), 1000)
	assert.ErrorIs(t, err, models.ErrDirectory)
	require.Len(t, view.errors, 1)
	assert.ErrorIs(t, view.errors[0], models.ErrDirectory)
}

func TestWallController_DragMovesByDelta(t *testing.T) {
	controller, view, _ := newTestController(t)
	require.NoError(t, controller.LoadDirectory(imageDir(t, "a.jpg"), 1000))
	require.Equal(t, models.Point{X: 10, Y: 10}, view.frames[0].Position)

	require.True(t, controller.PrimaryPress(models.Point{X: 50, Y: 50}))
	assert.True(t, controller.Drag(models.Point{X: 60, Y: 45}))
	assert.True(t, controller.Drag(models.Point{X: 80, Y: 65}))
	controller.Release()

	assert.Equal(t, models.Point{X: 40, Y: 25}, view.frames[0].Position)
	assert.False(t, controller.Drag(models.Point{X: 500, Y: 500}), "drag after release moves nothing")
}

func TestWallController_PressOnEmptySpace(t *testing.T) {
	controller, _, _ := newTestController(t)
	require.NoError(t, controller.LoadDirectory(imageDir(t, "a.jpg"), 1000))

	assert.False(t, controller.PrimaryPress(models.Point{X: 900, Y: 900}))
	assert.False(t, controller.Drag(models.Point{X: 901, Y: 901}))
	assert.False(t, controller.SecondaryPress(models.Point{X: 900, Y: 900}))
}

func TestWallController_SecondaryPressCyclesSize(t *testing.T) {
	controller, view, _ := newTestController(t)
	require.NoError(t, controller.LoadDirectory(imageDir(t, "a.jpg"), 1000))

	require.True(t, controller.SecondaryPress(models.Point{X: 20, Y: 20}))

	assert.Equal(t, models.SizeLarge, view.frames[0].Size)
	assert.Equal(t, 1, view.counts[models.SizeLarge])
	assert.Equal(t, 0, view.counts[models.SizeSmall])
	assert.Equal(t, 210, view.frames[0].Width)
}

func TestWallController_TertiaryPressDebounced(t *testing.T) {
	controller, view, clock := newTestController(t)
	require.NoError(t, controller.LoadDirectory(imageDir(t, "a.jpg", "b.jpg", "c.jpg"), 1000))

	assert.True(t, controller.TertiaryPress(models.Point{X: 0, Y: 0}))
	assert.False(t, controller.TertiaryPress(models.Point{X: 0, Y: 0}))
	assert.Len(t, view.frames, 2)
	assert.Equal(t, "Removed a.jpg", view.lastStatus())

	clock.Advance(time.Second)
	assert.True(t, controller.TertiaryPress(models.Point{X: 0, Y: 0}))
	assert.Len(t, view.frames, 1)
	assert.Equal(t, 1, view.counts[models.SizeSmall])
}

func TestWallController_SaveAndLoadState(t *testing.T) {
	controller, view, _ := newTestController(t)
	require.NoError(t, controller.LoadDirectory(imageDir(t, "a.jpg", "b.jpg"), 1000))
	require.True(t, controller.SecondaryPress(models.Point{X: 20, Y: 20}))

	require.NoError(t, controller.SaveState())
	assert.Contains(t, view.lastStatus(), "Saved 2 frames")
	saved := view.frames

	require.NoError(t, controller.LoadDirectory(imageDir(t, "z.jpg"), 1000))
	require.Len(t, view.frames, 1)

	require.NoError(t, controller.LoadState())
	require.Len(t, view.frames, 2)
	for i := range saved {
		assert.Equal(t, saved[i].Source, view.frames[i].Source)
		assert.Equal(t, saved[i].Size, view.frames[i].Size)
		assert.Equal(t, saved[i].Position, view.frames[i].Position)
	}
}

func TestWallController_LoadStateMissingFile(t *testing.T) {
	controller, view, _ := newTestController(t)

	err := controller.LoadState()
	assert.ErrorIs(t, err, models.ErrPersistence)
	assert.Len(t, view.errors, 1)
}

func TestWallController_ClearWall(t *testing.T) {
	controller, view, _ := newTestController(t)
	require.NoError(t, controller.LoadDirectory(imageDir(t, "a.jpg", "b.jpg"), 1000))
	require.True(t, controller.PrimaryPress(models.Point{X: 20, Y: 20}))

	controller.ClearWall()

	assert.Empty(t, view.frames)
	assert.Equal(t, map[models.SizeClass]int{models.SizeLarge: 0, models.SizeMedium: 0, models.SizeSmall: 0}, view.counts)
	assert.Equal(t, "Cleared 2 frames", view.lastStatus())
	assert.False(t, controller.Drag(models.Point{X: 40, Y: 40}))
}
