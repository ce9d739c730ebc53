package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/CrankHint/internal/engine"
	"github.com/piwi3910/CrankHint/internal/export"
	"github.com/piwi3910/CrankHint/internal/importer"
	"github.com/piwi3910/CrankHint/internal/model"
	"github.com/piwi3910/CrankHint/internal/project"
	"github.com/piwi3910/CrankHint/internal/ui/widgets"
)

const (
	canvasWidth  = 800
	canvasHeight = 480
	recentLimit  = 10
)

// App holds all application state and UI references.
type App struct {
	window       fyne.Window
	logger       *log.Logger
	config       model.AppConfig
	configPath   string
	store        model.ScenarioStore
	scenarioPath string
	theme        *PreviewTheme
	board        *Board
	tabs         *container.AppTabs

	// UI references for dynamic updates
	canvas         *widgets.PlacementCanvas
	xEntries       [model.MaxRoles]*widget.Entry
	yEntries       [model.MaxRoles]*widget.Entry
	actionCheck    *widget.Check
	tapRole        *widget.Select
	modeSelect     *widget.Select
	scenarioSelect *widget.Select
	statusLabel    *widget.Label
	slotContainer  *fyne.Container
	traceContainer *fyne.Container

	auditContainer    *fyne.Container
	auditResults      []engine.ComparisonResult
	geometryContainer *fyne.Container
}

// NewApp loads the configuration and scenario library and creates the
// preview state. The scenario library lives next to the config file.
func NewApp(window fyne.Window, configPath string, logger *log.Logger) (*App, error) {
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		return nil, err
	}
	scenarioPath := filepath.Join(filepath.Dir(configPath), "scenarios.json")
	store, err := project.LoadScenarios(scenarioPath)
	if err != nil {
		return nil, err
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	a := &App{
		window:       window,
		logger:       logger,
		config:       cfg,
		configPath:   configPath,
		store:        store,
		scenarioPath: scenarioPath,
		theme:        NewPreviewThemeFor(cfg.Theme),
		board:        NewBoard(cfg.Geometry, cfg.SearchMode, logger),
	}
	logger.Debug("preview loaded", "config", configPath, "scenarios", len(store.Scenarios), "geometry", cfg.Geometry.Name)
	return a, nil
}

// Theme returns the application theme built from the config.
func (a *App) Theme() fyne.Theme {
	return a.theme
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	undoItem := fyne.NewMenuItem("Undo", func() { a.undo() })
	undoItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	redoItem := fyne.NewMenuItem("Redo", func() { a.redo() })
	redoItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Import Scenarios...", func() {
			a.importScenarios()
		}),
		fyne.NewMenuItem("Save Targets as Scenario...", func() {
			a.showSaveScenarioDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Report...", func() {
			a.exportReport()
		}),
		fyne.NewMenuItem("Export Audit Workbook...", func() {
			a.exportAudit()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Back Up Data...", func() {
			a.backupData()
		}),
		fyne.NewMenuItem("Restore Data...", func() {
			a.restoreData()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		undoItem,
		redoItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Invalidate Overlays", func() {
			a.board.Invalidate()
			a.refresh()
		}),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Light Theme", func() { a.setTheme("light") }),
		fyne.NewMenuItem("Dark Theme", func() { a.setTheme("dark") }),
		fyne.NewMenuItem("System Theme", func() { a.setTheme("system") }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
	a.window.Canvas().AddShortcut(undoItem.Shortcut, func(fyne.Shortcut) { a.undo() })
	a.window.Canvas().AddShortcut(redoItem.Shortcut, func(fyne.Shortcut) { a.redo() })
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About CrankHint Preview",
		"CrankHint Preview\n\n"+
			"Places control hint overlays around a screen so they\n"+
			"point at their targets without covering any of them.\n\n"+
			"Version "+Version,
		a.window,
	)
}

// Version is shown in the about dialog.
var Version = "dev"

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	placementTab := container.NewTabItem("Placement", a.buildPlacementPanel())
	geometryTab := container.NewTabItem("Geometry", a.buildGeometryPanel())
	auditTab := container.NewTabItem("Audit", a.buildAuditPanel())

	a.tabs = container.NewAppTabs(placementTab, geometryTab, auditTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	a.refresh()
	return withToolTips(a.tabs, a.window.Canvas())
}

// ─── Placement Panel ───────────────────────────────────────

func (a *App) buildPlacementPanel() fyne.CanvasObject {
	bold := fyne.TextStyle{Bold: true}

	targetGrid := container.NewGridWithColumns(3,
		widget.NewLabelWithStyle("Role", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("X", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Y", fyne.TextAlignLeading, bold),
	)
	for i := 0; i < model.MaxRoles; i++ {
		role := model.Role(i + 1)
		a.xEntries[i] = widget.NewEntry()
		a.yEntries[i] = widget.NewEntry()
		a.xEntries[i].OnSubmitted = func(string) { a.applyTarget(role) }
		a.yEntries[i].OnSubmitted = func(string) { a.applyTarget(role) }
		targetGrid.Add(widget.NewLabel(role.String()))
		targetGrid.Add(a.xEntries[i])
		targetGrid.Add(a.yEntries[i])
	}

	a.actionCheck = widget.NewCheck("Action target active", func(on bool) {
		a.board.SetAction(on)
		a.refresh()
	})

	roleNames := make([]string, model.MaxRoles)
	for i := range roleNames {
		roleNames[i] = model.Role(i + 1).String()
	}
	a.tapRole = widget.NewSelect(roleNames, nil)
	a.tapRole.SetSelected(roleNames[0])

	targetsCard := widget.NewCard("Targets", "Press Enter to apply, or tap the screen", container.NewVBox(
		targetGrid,
		a.actionCheck,
		container.NewGridWithColumns(2, widget.NewLabel("Tap moves"), a.tapRole),
	))

	liveCheck := widget.NewCheck("Overlays follow targets", func(on bool) {
		a.board.Live = on
		if on {
			a.board.Invalidate()
		}
		a.refresh()
	})

	a.modeSelect = widget.NewSelect([]string{string(model.SearchCurated), string(model.SearchExhaustive)}, nil)
	a.modeSelect.SetSelected(string(a.board.Mode()))
	a.modeSelect.OnChanged = func(s string) {
		mode, err := model.ParseSearchMode(s)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.board.SetMode(mode)
		a.refresh()
	}

	placeBtn := widget.NewButtonWithIcon("Place", theme.MediaPlayIcon(), func() {
		a.place()
	})
	invalidateBtn := widget.NewButtonWithIcon("Invalidate", theme.ViewRefreshIcon(), func() {
		a.board.Invalidate()
		a.refresh()
	})
	undoBtn := newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo target edit", func() { a.undo() })
	redoBtn := newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo target edit", func() { a.redo() })

	a.statusLabel = widget.NewLabel("")
	a.statusLabel.Wrapping = fyne.TextWrapWord

	sessionCard := widget.NewCard("Session", "", container.NewVBox(
		container.NewGridWithColumns(2, widget.NewLabel("Search"), a.modeSelect),
		liveCheck,
		container.NewHBox(placeBtn, invalidateBtn, layout.NewSpacer(), undoBtn, redoBtn),
		a.statusLabel,
	))

	a.scenarioSelect = widget.NewSelect(a.store.Names(), nil)
	a.scenarioSelect.PlaceHolder = "(choose a scenario)"
	loadBtn := widget.NewButtonWithIcon("Load", theme.FolderOpenIcon(), func() {
		a.loadSelectedScenario()
	})
	saveBtn := widget.NewButtonWithIcon("Save As...", theme.DocumentSaveIcon(), func() {
		a.showSaveScenarioDialog()
	})
	scenarioCard := widget.NewCard("Scenario", "", container.NewVBox(
		a.scenarioSelect,
		container.NewHBox(loadBtn, saveBtn),
	))

	a.canvas = widgets.NewPlacementCanvas(a.board.Geometry(), canvasWidth, canvasHeight)
	a.canvas.OnTapped = func(p model.Point) {
		role := model.Role(a.tapRole.SelectedIndex() + 1)
		if role == model.RoleAction && !a.board.Action() {
			a.board.SetAction(true)
		}
		if err := a.board.SetTarget(role, p); err != nil {
			dialog.ShowError(err, a.window)
		}
		a.refresh()
	}

	scanCheck := widget.NewCheck("Scan path", func(on bool) {
		a.canvas.ShowScan = on
		a.canvas.Refresh()
	})
	clearanceCheck := widget.NewCheck("Clearances", func(on bool) {
		a.canvas.ShowClearances = on
		a.canvas.Refresh()
	})
	clearanceCheck.Checked = true

	a.slotContainer = container.NewVBox()
	a.traceContainer = container.NewVBox()
	traceBtn := widget.NewButtonWithIcon("Show All Orders", theme.ListIcon(), func() {
		a.showTrace()
	})

	left := container.NewVScroll(container.NewVBox(targetsCard, sessionCard, scenarioCard))
	right := container.NewVScroll(container.NewVBox(
		container.NewHBox(scanCheck, clearanceCheck),
		a.canvas,
		widget.NewSeparator(),
		a.slotContainer,
		container.NewHBox(traceBtn),
		a.traceContainer,
	))

	split := container.NewHSplit(left, right)
	split.SetOffset(0.3)
	return split
}

// refresh syncs every placement widget with the board.
func (a *App) refresh() {
	for i := 0; i < model.MaxRoles; i++ {
		p := a.board.Target(model.Role(i + 1))
		a.xEntries[i].SetText(strconv.Itoa(p.X))
		a.yEntries[i].SetText(strconv.Itoa(p.Y))
	}
	a.actionCheck.Checked = a.board.Action()
	a.actionCheck.Refresh()

	var set model.PlacementSet
	if a.board.Active() || a.board.Live {
		var err error
		set, err = a.board.Place()
		if err != nil {
			a.showPlacementError(err)
		}
	}
	a.canvas.Update(a.board.Geometry(), a.board.Targets(), set)
	a.refreshSlots(set)
	a.refreshStatus(set)
}

func (a *App) refreshStatus(set model.PlacementSet) {
	if !a.board.Active() {
		a.statusLabel.SetText("No overlays. Press Place to start a session.")
		return
	}
	a.statusLabel.SetText(fmt.Sprintf("Session %s\nCost %d with order %s",
		a.board.SessionID(), set.Cost, export.FormatOrder(set.Order)))
}

func (a *App) refreshSlots(set model.PlacementSet) {
	a.slotContainer.RemoveAll()
	if set.Empty() {
		return
	}

	bold := fyne.TextStyle{Bold: true}
	a.slotContainer.Add(container.NewGridWithColumns(4,
		widget.NewLabelWithStyle("Role", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Overlay", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Target", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Score", fyne.TextAlignLeading, bold),
	))
	for _, s := range set.Slots {
		t := a.board.Target(s.Role)
		a.slotContainer.Add(container.NewGridWithColumns(4,
			widget.NewLabel(s.Role.String()),
			widget.NewLabel(fmt.Sprintf("%d, %d", s.X, s.Y)),
			widget.NewLabel(fmt.Sprintf("%d, %d", t.X, t.Y)),
			widget.NewLabel(strconv.Itoa(s.Score)),
		))
	}
	a.slotContainer.Refresh()
}

// showTrace lists every processing order for the current targets.
func (a *App) showTrace() {
	a.traceContainer.RemoveAll()
	result, err := a.board.Trace()

	bold := fyne.TextStyle{Bold: true}
	a.traceContainer.Add(container.NewGridWithColumns(3,
		widget.NewLabelWithStyle("Order", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Cost", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, bold),
	))
	for i, at := range result.Attempts {
		cost := strconv.Itoa(at.Set.Cost)
		note := ""
		switch {
		case at.Err != nil:
			cost = "-"
			note = at.Err.Error()
		case i == result.BestIndex:
			note = "best"
		}
		a.traceContainer.Add(container.NewGridWithColumns(3,
			widget.NewLabel(export.FormatOrder(at.Order)),
			widget.NewLabel(cost),
			widget.NewLabel(note),
		))
	}
	if err != nil {
		warning := widget.NewLabel(err.Error())
		warning.Importance = widget.DangerImportance
		a.traceContainer.Add(warning)
	}
	a.traceContainer.Refresh()
}

func (a *App) showPlacementError(err error) {
	var perr *engine.PlacementError
	if errors.As(err, &perr) {
		err = fmt.Errorf("%s has no legal overlay position with this geometry (order %s)",
			perr.Role, export.FormatOrder(perr.Order))
	}
	a.logger.Warn("placement failed", "err", err)
	dialog.ShowError(err, a.window)
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) place() {
	if _, err := a.board.Place(); err != nil {
		a.showPlacementError(err)
		return
	}
	a.refresh()
}

func (a *App) applyTarget(role model.Role) {
	i := role - 1
	x, errX := strconv.Atoi(strings.TrimSpace(a.xEntries[i].Text))
	y, errY := strconv.Atoi(strings.TrimSpace(a.yEntries[i].Text))
	if errX != nil || errY != nil {
		dialog.ShowError(fmt.Errorf("%s target needs whole-pixel x and y", role), a.window)
		a.refresh()
		return
	}
	if err := a.board.SetTarget(role, model.Point{X: x, Y: y}); err != nil {
		dialog.ShowError(err, a.window)
	}
	a.refresh()
}

func (a *App) undo() {
	if a.board.Undo() {
		a.refresh()
	}
}

func (a *App) redo() {
	if a.board.Redo() {
		a.refresh()
	}
}

func (a *App) setTheme(name string) {
	a.theme.SetThemeName(name)
	fyne.CurrentApp().Settings().SetTheme(a.theme)
	a.config.Theme = name
	a.saveConfig()
}

func (a *App) saveConfig() {
	if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
		a.logger.Error("save config", "err", err)
		dialog.ShowError(err, a.window)
	}
}

func (a *App) saveScenarios() {
	if err := project.SaveScenarios(a.scenarioPath, a.store); err != nil {
		a.logger.Error("save scenarios", "err", err)
		dialog.ShowError(err, a.window)
		return
	}
	a.scenarioSelect.Options = a.store.Names()
	a.scenarioSelect.Refresh()
}

func (a *App) loadSelectedScenario() {
	name := a.scenarioSelect.Selected
	if name == "" {
		dialog.ShowInformation("No scenario", "Choose a scenario to load first.", a.window)
		return
	}
	sc := a.store.FindByName(name)
	if sc == nil {
		dialog.ShowError(fmt.Errorf("scenario %q not found", name), a.window)
		return
	}
	if err := a.board.LoadScenario(*sc); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.logger.Debug("scenario loaded", "name", sc.Name, "targets", len(sc.Targets))
	a.refresh()
}

func (a *App) showSaveScenarioDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Scenario name")
	descEntry := widget.NewEntry()

	form := dialog.NewForm("Save Targets as Scenario", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				dialog.ShowError(fmt.Errorf("scenario name cannot be empty"), a.window)
				return
			}
			if a.store.FindByName(name) != nil {
				dialog.ShowError(fmt.Errorf("scenario %q already exists", name), a.window)
				return
			}
			sc := a.board.Scenario(name)
			sc.Description = strings.TrimSpace(descEntry.Text)
			a.store.Add(sc)
			a.saveScenarios()
			a.scenarioSelect.SetSelected(name)
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 200))
	form.Show()
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) importScenarios() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		result := importer.Import(path, a.board.Geometry().ScreenHeight)
		a.config.AddRecentFile(path, recentLimit)
		a.saveConfig()
		a.handleImportResult(result)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".xlsx", ".xlsm", ".xls", ".dxf"}))
	d.Show()
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(errors.New(errorMsg), a.window)
	}
	for _, w := range result.Warnings {
		a.logger.Warn("import", "warning", w)
	}

	if len(result.Scenarios) > 0 {
		for _, sc := range result.Scenarios {
			a.store.Add(sc)
		}
		a.saveScenarios()

		msg := fmt.Sprintf("Successfully imported %d scenarios.", len(result.Scenarios))
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}

func (a *App) exportReport() {
	if len(a.store.Scenarios) == 0 {
		dialog.ShowInformation("No scenarios", "Add or import a scenario before exporting a report.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		placer := &engine.Placer{Geometry: a.board.Geometry(), Mode: a.board.Mode()}
		pages := export.PlanReport(placer, a.store.Scenarios)
		if err := export.ExportReport(path, placer.Geometry, placer.Mode, pages); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.logger.Info("report written", "path", path, "pages", len(pages))
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Report saved to %s", path), a.window)
	}, a.window)
	d.SetFileName("crankhint-report.pdf")
	d.Show()
}

func (a *App) backupData() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := project.ExportAllData(path, a.config, a.store); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Backup Complete", fmt.Sprintf("Data saved to %s", path), a.window)
	}, a.window)
	d.SetFileName("crankhint-backup.json")
	d.Show()
}

func (a *App) restoreData() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		data, err := project.ImportAllData(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowConfirm("Restore Data",
			fmt.Sprintf("Replace the configuration and %d scenarios with the backup from %s?",
				len(data.Scenarios.Scenarios), data.CreatedAt),
			func(ok bool) {
				if !ok {
					return
				}
				a.config = data.Config
				a.store = data.Scenarios
				if err := a.board.SetGeometry(a.config.Geometry); err != nil {
					dialog.ShowError(err, a.window)
				}
				a.board.SetMode(a.config.SearchMode)
				a.modeSelect.Selected = string(a.board.Mode())
				a.modeSelect.Refresh()
				a.saveConfig()
				a.saveScenarios()
				a.refreshGeometry()
				a.refresh()
			},
			a.window,
		)
	}, a.window)
}
