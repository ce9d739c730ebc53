package ui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CrankHint/internal/model"
	"github.com/piwi3910/CrankHint/internal/project"
)

// buildGeometryPanel shows the saved geometry profiles next to an editor for
// the geometry the board currently uses.
func (a *App) buildGeometryPanel() fyne.CanvasObject {
	profiles := a.loadProfiles()

	a.geometryContainer = container.NewVBox()

	var listWidget *widget.List
	listWidget = widget.NewList(
		func() int {
			return len(profiles)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.DocumentIcon()),
				widget.NewLabel("Profile Name"),
				layout.NewSpacer(),
				widget.NewLabel("(built-in)"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			box := obj.(*fyne.Container)
			nameLabel := box.Objects[1].(*widget.Label)
			tagLabel := box.Objects[3].(*widget.Label)
			g := profiles[id]
			nameLabel.SetText(g.Name)
			if id == 0 {
				tagLabel.SetText("(built-in)")
			} else {
				tagLabel.SetText(fmt.Sprintf("%dx%d", g.ScreenWidth, g.ScreenHeight))
			}
		},
	)
	listWidget.OnSelected = func(id widget.ListItemID) {
		a.showGeometryEditor(profiles[id])
	}

	reload := func() {
		profiles = a.loadProfiles()
		listWidget.Refresh()
	}

	saveBtn := widget.NewButtonWithIcon("Save Current", theme.DocumentSaveIcon(), func() {
		a.showSaveProfileDialog(reload)
	})
	importBtn := widget.NewButtonWithIcon("Import", theme.FolderOpenIcon(), func() {
		a.importProfileDialog()
	})
	reloadBtn := newIconButtonWithTooltip(theme.ViewRefreshIcon(), "Reload profiles from disk", reload)

	listPanel := container.NewBorder(
		widget.NewLabelWithStyle("Profiles", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(saveBtn, importBtn, layout.NewSpacer(), reloadBtn),
		nil, nil,
		listWidget,
	)
	detailPanel := container.NewBorder(
		widget.NewLabelWithStyle("Geometry", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVScroll(a.geometryContainer),
	)

	a.refreshGeometry()

	split := container.NewHSplit(listPanel, detailPanel)
	split.SetOffset(0.3)
	return split
}

// loadProfiles returns the built-in geometry followed by every readable
// profile in the profiles directory. Broken profiles are logged and skipped.
func (a *App) loadProfiles() []model.Geometry {
	profiles := []model.Geometry{model.DefaultGeometry()}
	found, err := project.ListGeometryProfiles(project.DefaultProfilesDir())
	if err != nil {
		a.logger.Warn("geometry profiles", "err", err)
	}
	return append(profiles, found...)
}

// refreshGeometry shows the board's current geometry in the editor.
func (a *App) refreshGeometry() {
	a.showGeometryEditor(a.board.Geometry())
}

// showGeometryEditor fills the detail pane with an editable copy of geo.
// Nothing changes until Apply succeeds.
func (a *App) showGeometryEditor(geo model.Geometry) {
	c := a.geometryContainer
	c.RemoveAll()

	draft := geo
	info := widget.NewLabel("")
	info.Wrapping = fyne.TextWrapWord

	updateInfo := func() {
		if err := draft.Validate(); err != nil {
			info.SetText(err.Error())
			info.Importance = widget.DangerImportance
			info.Refresh()
			return
		}
		min, max := draft.Inset()
		info.SetText(fmt.Sprintf("Scan area %d,%d to %d,%d\nStep %d (%d positions)",
			min.X, min.Y, max.X, max.Y, draft.Step, draft.PerimeterLength()))
		info.Importance = widget.MediumImportance
		info.Refresh()
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
				*val = v
				updateInfo()
			}
		}
		return e
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(draft.Name)
	nameEntry.OnChanged = func(text string) { draft.Name = strings.TrimSpace(text) }

	screenSection := widget.NewCard("Screen", "", container.NewGridWithColumns(2,
		widget.NewLabel("Name"), nameEntry,
		widget.NewLabel("Width (px)"), intEntry(&draft.ScreenWidth),
		widget.NewLabel("Height (px)"), intEntry(&draft.ScreenHeight),
	))
	scanSection := widget.NewCard("Scan", "", container.NewGridWithColumns(2,
		widget.NewLabel("Margin X (px)"), intEntry(&draft.MarginX),
		widget.NewLabel("Margin Y (px)"), intEntry(&draft.MarginY),
		widget.NewLabel("Step (px)"), intEntry(&draft.Step),
	))
	clearanceSection := widget.NewCard("Clearances", "", container.NewGridWithColumns(2,
		widget.NewLabel("Target clearance (px)"), intEntry(&draft.TargetClearance),
		widget.NewLabel("Overlay clearance X (px)"), intEntry(&draft.OverlayClearX),
		widget.NewLabel("Overlay clearance Y (px)"), intEntry(&draft.OverlayClearY),
	))

	applyBtn := widget.NewButtonWithIcon("Apply", theme.ConfirmIcon(), func() {
		if err := a.board.SetGeometry(draft); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.config.Geometry = draft
		a.saveConfig()
		a.canvas.Refresh()
		a.refresh()
		a.logger.Info("geometry applied", "name", draft.Name, "screen", fmt.Sprintf("%dx%d", draft.ScreenWidth, draft.ScreenHeight))
	})
	resetBtn := widget.NewButtonWithIcon("Reset", theme.ContentUndoIcon(), func() {
		a.refreshGeometry()
	})

	updateInfo()
	c.Add(container.NewVBox(
		screenSection,
		scanSection,
		clearanceSection,
		info,
		container.NewHBox(applyBtn, resetBtn),
	))
	c.Refresh()
}

func (a *App) showSaveProfileDialog(onSaved func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(a.board.Geometry().Name)

	form := dialog.NewForm("Save Geometry Profile", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Profile Name", nameEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				dialog.ShowError(fmt.Errorf("profile name cannot be empty"), a.window)
				return
			}
			if strings.ContainsAny(name, `/\`) {
				dialog.ShowError(fmt.Errorf("profile name %q must not contain path separators", name), a.window)
				return
			}
			geo := a.board.Geometry()
			geo.Name = name
			path := filepath.Join(project.DefaultProfilesDir(), name+".toml")
			if err := project.SaveGeometryProfile(path, geo); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.logger.Info("geometry profile saved", "path", path)
			onSaved()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 150))
	form.Show()
}

func (a *App) importProfileDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		geo, err := project.LoadGeometryProfile(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.showGeometryEditor(geo)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".toml"}))
	d.Show()
}
