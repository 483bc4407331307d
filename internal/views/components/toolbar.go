package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the wall actions
type Toolbar struct {
	container        *fyne.Container
	loadImagesButton *widget.Button
	saveButton       *widget.Button
	loadButton       *widget.Button
	clearButton      *widget.Button

	loadImagesHandler func()
	saveHandler       func()
	loadHandler       func()
	clearHandler      func()
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.loadImagesButton = widget.NewButtonWithIcon("Load Images", theme.FolderOpenIcon(), func() {
		if t.loadImagesHandler != nil {
			t.loadImagesHandler()
		}
	})
	t.loadImagesButton.Importance = widget.HighImportance

	t.saveButton = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() {
		if t.saveHandler != nil {
			t.saveHandler()
		}
	})

	t.loadButton = widget.NewButtonWithIcon("Load", theme.HistoryIcon(), func() {
		if t.loadHandler != nil {
			t.loadHandler()
		}
	})

	t.clearButton = widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), func() {
		if t.clearHandler != nil {
			t.clearHandler()
		}
	})
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewHBox(
		t.loadImagesButton,
		widget.NewSeparator(),
		t.saveButton,
		t.loadButton,
		widget.NewSeparator(),
		t.clearButton,
	)
}

func (t *Toolbar) SetLoadImagesHandler(handler func()) {
	t.loadImagesHandler = handler
}

func (t *Toolbar) SetSaveHandler(handler func()) {
	t.saveHandler = handler
}

func (t *Toolbar) SetLoadHandler(handler func()) {
	t.loadHandler = handler
}

func (t *Toolbar) SetClearHandler(handler func()) {
	t.clearHandler = handler
}

// SetBusy disables every action while a load or save is running.
// Must be called on the UI goroutine.
func (t *Toolbar) SetBusy(busy bool) {
	for _, button := range []*widget.Button{t.loadImagesButton, t.saveButton, t.loadButton, t.clearButton} {
		if busy {
			button.Disable()
		} else {
			button.Enable()
		}
	}
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
