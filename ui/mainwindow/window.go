// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	appstate "diffraction-viewer/internal/app"
	"diffraction-viewer/internal/frame"
	"diffraction-viewer/internal/version"
	"diffraction-viewer/pkg/geometry"
	"diffraction-viewer/ui/canvas"
	"diffraction-viewer/ui/dialogs"
)

const prefKeyLastDir = "lastDirectory"

const idleCoordText = "Mouse: "

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	log   zerolog.Logger
	state *appstate.State

	canvas        *canvas.ImageCanvas
	coordLabel    *widget.Label
	projectionBtn *widget.Button

	// Menu items that need state tracking
	fitToWindowItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, state *appstate.State, log zerolog.Logger) *MainWindow {
	win := fyneApp.NewWindow("Diffraction Projection")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		log:    log.With().Str("component", "mainwindow").Logger(),
		state:  state,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupGestureHandlers()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewImageCanvas()

	mw.coordLabel = widget.NewLabel(idleCoordText)

	mw.projectionBtn = widget.NewButton("Show Projection Profile", mw.onShowProjection)
	mw.projectionBtn.Disable()

	quitBtn := widget.NewButton("Quit", func() { mw.app.Quit() })

	toolbar := mw.createToolbar()

	bottom := container.NewVBox(
		mw.projectionBtn,
		quitBtn,
		container.NewPadded(mw.coordLabel),
	)

	content := container.NewBorder(
		toolbar,               // top
		bottom,                // bottom
		nil,                   // left
		nil,                   // right
		mw.canvas.Container(), // center
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", func() {
		mw.onZoomOut()
	})
	zoomInBtn := widget.NewButton("+", func() {
		mw.onZoomIn()
	})
	fitBtn := widget.NewButton("Fit", func() {
		mw.onToggleFitToWindow()
	})
	actualBtn := widget.NewButton("1:1", func() {
		mw.onActualSize()
	})

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	openShortcut := &desktop.CustomShortcut{KeyName: fyne.KeyI, Modifier: fyne.KeyModifierControl}

	openItem := fyne.NewMenuItem("Select an Image...", mw.onOpenImage)
	openItem.Shortcut = openShortcut

	fileMenu := fyne.NewMenu("File", openItem)

	// View menu
	mw.fitToWindowItem = fyne.NewMenuItem("  Fit to Window", mw.onToggleFitToWindow)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))

	mw.Canvas().AddShortcut(openShortcut, func(fyne.Shortcut) {
		mw.onOpenImage()
	})
}

// setupGestureHandlers wires the selection gesture to the status bar, the
// application state, and the projection button.
func (mw *MainWindow) setupGestureHandlers() {
	g := mw.canvas.Gesture()

	g.OnBegin(func(start geometry.Point2D) {
		// A fresh gesture discards the committed rectangle; projection
		// stays disabled until the second press.
		mw.state.ClearSelection()
		mw.projectionBtn.Disable()
		mw.coordLabel.SetText(fmt.Sprintf("Rect: x0=%d y0=%d", int(start.X), int(start.Y)))
	})

	g.OnPreview(func(start, current geometry.Point2D, _ geometry.Rect) {
		mw.coordLabel.SetText(fmt.Sprintf("Rect: x0=%d y0=%d, x1=%d, y1=%d",
			int(start.X), int(start.Y), int(current.X), int(current.Y)))
	})

	g.OnCommit(func(r geometry.Rect) {
		mw.state.CommitSelection(r)
		mw.projectionBtn.Enable()
	})
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(appstate.EventFrameLoaded, func(data interface{}) {
		f, ok := data.(*frame.Frame)
		if !ok {
			return
		}
		mw.canvas.SetImage(frame.DisplayImage(f))
		mw.canvas.Refresh()
		mw.projectionBtn.Disable()
		mw.coordLabel.SetText(idleCoordText)
		mw.SetTitle("Diffraction Projection - " + filepath.Base(f.Path))
	})

	mw.state.On(appstate.EventSelectionCleared, func(interface{}) {
		mw.projectionBtn.Disable()
	})
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.app.Preferences().SetString(prefKeyLastDir, filepath.Dir(filePath))
}

// Menu and button handlers

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if reader == nil {
			mw.log.Info().Msg("no file selected")
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)

		if err := mw.state.LoadFrame(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter(frame.SupportedExtensions()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onShowProjection() {
	sums, ok := mw.state.Projection()
	if !ok {
		return
	}
	mw.log.Debug().Int("rows", len(sums)).Msg("showing projection profile")
	dialogs.ShowProjection(mw.Window, mw.log, sums)
}

func (mw *MainWindow) onZoomIn() {
	mw.disableFitToWindow()
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.disableFitToWindow()
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onToggleFitToWindow() {
	enabled := !mw.canvas.GetFitToWindow()
	mw.canvas.SetFitToWindow(enabled)

	if enabled {
		mw.fitToWindowItem.Label = "✓ Fit to Window"
	} else {
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onActualSize() {
	mw.disableFitToWindow()
	mw.canvas.SetZoom(1.0)
}

func (mw *MainWindow) disableFitToWindow() {
	if mw.canvas.GetFitToWindow() {
		mw.canvas.SetFitToWindow(false)
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Diffraction Projection",
		fmt.Sprintf("Diffraction Projection v%s\n\n"+
			"An interactive viewer for 2D diffraction images.\n"+
			"Draw a rectangle with two clicks, then view the\n"+
			"row-sum projection of the selected region.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
