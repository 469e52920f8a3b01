// Package main provides the entry point for the Diffraction Projection viewer.
package main

import (
	"os"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"github.com/rs/zerolog"

	appstate "diffraction-viewer/internal/app"
	"diffraction-viewer/internal/version"
	"diffraction-viewer/ui/mainwindow"
)

const (
	appTitle = "Diffraction Projection"
	appID    = "io.diffraction.projection-viewer"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()
	log.Info().Str("version", version.Version).Msgf("starting %s", appTitle)

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&appstate.ViewerTheme{})

	state := appstate.NewState(log)

	win := mainwindow.New(fyneApp, state, log)
	win.Resize(fyne.NewSize(900, 700))

	setupHotReload(win, log)

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary is
// recompiled during development.
func setupHotReload(win *mainwindow.MainWindow, log zerolog.Logger) {
	reloader := appstate.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Warn().Msg("hot reload: unable to determine executable path")
		return
	}

	log.Info().
		Str("path", reloader.ExecPath()).
		Time("modified", reloader.StartupTime()).
		Msg("hot reload: watching binary")

	reloader.OnNewBinary(func() {
		log.Info().Msg("hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if restart {
					log.Info().Msg("hot reload: restarting")
					if err := reloader.Restart(); err != nil {
						log.Error().Err(err).Msg("hot reload: restart failed")
					}
					return
				}
				reloader.ResetBaseline()
				reloader.Start()
			}, win)
	})

	reloader.Start()
}
