package views

import (
	"photo-wall/internal/controllers"
	"photo-wall/internal/logger"
	"photo-wall/internal/models"
	"photo-wall/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// MainView is the photo wall window. It implements controllers.View; every
// update is marshalled onto the UI goroutine with fyne.Do.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	counts        *components.CountsPanel
	statusBar     *components.StatusBar
	wallCanvas    *components.WallCanvas

	controller *controllers.WallController
	logger     logger.Logger
}

var _ controllers.View = (*MainView)(nil)

func NewMainView(window fyne.Window, log logger.Logger) *MainView {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	view := &MainView{
		window: window,
		logger: log,
	}

	view.initializeComponents()
	view.buildLayout()
	view.setupKeyboard()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.toolbar = components.NewToolbar()
	mv.counts = components.NewCountsPanel()
	mv.statusBar = components.NewStatusBar()
	mv.wallCanvas = components.NewWallCanvas()
}

func (mv *MainView) buildLayout() {
	side := container.NewVBox(
		mv.counts.GetContainer(),
		widget.NewSeparator(),
		widget.NewLabel("Left drag: move\nRight click: resize\nMiddle click: remove"),
	)

	mv.mainContainer = container.NewBorder(
		mv.toolbar.GetContainer(),
		mv.statusBar.GetContainer(),
		nil,
		side,
		mv.wallCanvas,
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) setupKeyboard() {
	mv.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape && mv.window.FullScreen() {
			mv.window.SetFullScreen(false)
		}
	})
}

// Bind connects toolbar actions and pointer input to the controller
func (mv *MainView) Bind(controller *controllers.WallController) {
	mv.controller = controller

	mv.toolbar.SetLoadImagesHandler(mv.chooseDirectory)
	mv.toolbar.SetSaveHandler(func() {
		mv.runBusy(func() { _ = controller.SaveState() })
	})
	mv.toolbar.SetLoadHandler(func() {
		mv.runBusy(func() { _ = controller.LoadState() })
	})

	mv.toolbar.SetClearHandler(func() {
		mv.ShowConfirm("Clear wall", "Remove every frame from the wall?", func(confirmed bool) {
			if confirmed {
				controller.ClearWall()
			}
		})
	})

	mv.wallCanvas.OnPrimaryPress = func(p models.Point) { controller.PrimaryPress(p) }
	mv.wallCanvas.OnDrag = func(p models.Point) { controller.Drag(p) }
	mv.wallCanvas.OnRelease = controller.Release
	mv.wallCanvas.OnSecondaryPress = func(p models.Point) { controller.SecondaryPress(p) }
	mv.wallCanvas.OnTertiaryPress = func(p models.Point) { controller.TertiaryPress(p) }

	controller.SetView(mv)
}

func (mv *MainView) chooseDirectory() {
	folder := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			mv.ShowError("Load images failed", err)
			return
		}
		if uri == nil {
			return
		}
		mv.LoadDirectory(uri.Path())
	}, mv.window)
	folder.Show()
}

// LoadDirectory loads dir off the UI goroutine, flowing frames across the
// current canvas width
func (mv *MainView) LoadDirectory(dir string) {
	width := mv.wallCanvas.Width()
	if width <= 0 {
		width = float64(mv.window.Canvas().Size().Width)
	}
	mv.runBusy(func() { _ = mv.controller.LoadDirectory(dir, width) })
}

// runBusy runs task in the background with the toolbar disabled
func (mv *MainView) runBusy(task func()) {
	if mv.controller == nil {
		return
	}
	mv.toolbar.SetBusy(true)

	go func() {
		defer fyne.Do(func() {
			mv.toolbar.SetBusy(false)
		})
		task()
	}()
}

func (mv *MainView) ShowFrames(frames []models.FrameView) {
	fyne.Do(func() {
		mv.wallCanvas.SetFrames(frames)
		mv.statusBar.SetFrameCount(len(frames))
	})
}

func (mv *MainView) ShowCounts(counts map[models.SizeClass]int) {
	fyne.Do(func() {
		mv.counts.SetCounts(counts)
	})
}

func (mv *MainView) SetStatus(message string) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(message)
	})
}

func (mv *MainView) ShowError(title string, err error) {
	mv.logger.Warning("MainView", title, map[string]interface{}{
		"error": err.Error(),
	})
	fyne.Do(func() {
		dialog.ShowError(err, mv.window)
	})
}

func (mv *MainView) ShowConfirm(title, message string, callback func(bool)) {
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, callback, mv.window)
	})
}

func (mv *MainView) Show() {
	mv.window.Show()
}
