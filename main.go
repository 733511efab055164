// Vastu Chakra overlays the 16-direction compass and 32 entrance
// positions on a floor plan for Vastu Shastra analysis.
package main

import (
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"vastu-chakra/internal/app"
	"vastu-chakra/internal/version"
	"vastu-chakra/ui/mainwindow"
)

const appTitle = "Vastu Chakra"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("com.vastuchakra.app")
	fyneApp.Settings().SetTheme(&app.ChakraTheme{})

	appState := app.NewState()
	win := mainwindow.New(fyneApp, appState)
	win.Resize(fyne.NewSize(1280, 860))

	// Handle command line arguments
	if len(os.Args) > 1 {
		planPath := os.Args[1]
		if err := appState.LoadPlan(planPath); err != nil {
			log.Printf("Failed to load plan %s: %v", planPath, err)
		}
	}

	setupHotReload(win)

	win.ShowAndRun()
}

// setupHotReload configures restart detection for development builds.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("Restart",
			"A newer build of the application is available. Restart now?",
			func(restart bool) {
				if restart {
					log.Println("Hot reload: restarting...")
					if err := reloader.Restart(); err != nil {
						log.Printf("Hot reload: restart failed: %v", err)
					}
					return
				}
				reloader.ResetBaseline()
				reloader.Start()
			}, win.Window)
	})

	reloader.Start()
}
