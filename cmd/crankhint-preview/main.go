// CrankHint Preview: desktop tool for tuning hint overlay placement
//
// Edit arm targets on a scaled copy of the handheld screen, start and
// invalidate overlay sessions, and audit the scenario library.
//
// Build:
//   go build -o crankhint-preview ./cmd/crankhint-preview
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/CrankHint/internal/project"
	"github.com/piwi3910/CrankHint/internal/ui"
)

var version = "dev"

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Prefix:          "preview",
	})

	application := app.NewWithID("com.piwi3910.crankhint")
	window := application.NewWindow("CrankHint Preview")

	ui.Version = version
	appUI, err := ui.NewApp(window, project.DefaultConfigPath(), logger)
	if err != nil {
		logger.Fatal("load configuration", "err", err)
	}
	application.Settings().SetTheme(appUI.Theme())

	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1280, 760))
	window.CenterOnScreen()
	window.ShowAndRun()
}
