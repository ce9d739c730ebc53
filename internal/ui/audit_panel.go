package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CrankHint/internal/engine"
	"github.com/piwi3910/CrankHint/internal/export"
)

// buildAuditPanel compares the curated order tables against every
// permutation for each scenario in the library.
func (a *App) buildAuditPanel() fyne.CanvasObject {
	a.auditContainer = container.NewVBox(
		widget.NewLabel("Run the audit to compare curated and exhaustive search over the scenario library."),
	)

	runBtn := widget.NewButtonWithIcon("Run Audit", theme.MediaPlayIcon(), func() {
		a.runAudit()
	})
	exportBtn := widget.NewButtonWithIcon("Export Workbook...", theme.DocumentSaveIcon(), func() {
		a.exportAudit()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Search Audit", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			runBtn,
			exportBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.auditContainer),
	)
}

func (a *App) runAudit() {
	a.auditResults = engine.CompareModes(a.board.Geometry(), a.store.Scenarios)
	a.refreshAudit()
}

func (a *App) refreshAudit() {
	a.auditContainer.RemoveAll()

	if len(a.auditResults) == 0 {
		a.auditContainer.Add(widget.NewLabel("The scenario library is empty."))
		return
	}

	bold := fyne.TextStyle{Bold: true}
	a.auditContainer.Add(container.NewGridWithColumns(6,
		widget.NewLabelWithStyle("Scenario", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Curated", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Exhaustive", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Regret", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Orders tried", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	))
	a.auditContainer.Add(widget.NewSeparator())

	for i := range a.auditResults {
		r := a.auditResults[i]
		if r.Err != nil {
			errLabel := widget.NewLabel(r.Err.Error())
			errLabel.Importance = widget.DangerImportance
			errLabel.Wrapping = fyne.TextWrapWord
			a.auditContainer.Add(container.NewGridWithColumns(6,
				widget.NewLabel(r.Scenario.Name),
				widget.NewLabel("-"), widget.NewLabel("-"), widget.NewLabel("-"),
				errLabel,
				widget.NewLabel(""),
			))
			continue
		}

		regret := widget.NewLabel(fmt.Sprintf("%d (%.1f%%)", r.Regret, r.RegretPercent()))
		if r.Regret > 0 {
			regret.Importance = widget.WarningImportance
		}
		sc := r.Scenario
		a.auditContainer.Add(container.NewGridWithColumns(6,
			widget.NewLabel(sc.Name),
			widget.NewLabel(fmt.Sprintf("%d (%s)", r.Curated.Cost, export.FormatOrder(r.Curated.Order))),
			widget.NewLabel(fmt.Sprintf("%d (%s)", r.Exhaustive.Cost, export.FormatOrder(r.Exhaustive.Order))),
			regret,
			widget.NewLabel(fmt.Sprintf("%d / %d", r.CuratedTried, r.ExhaustiveTried)),
			newIconButtonWithTooltip(theme.VisibilityIcon(), "Open on the placement tab", func() {
				if err := a.board.LoadScenario(sc); err != nil {
					dialog.ShowError(err, a.window)
					return
				}
				a.refresh()
				a.tabs.SelectIndex(0)
			}),
		))
	}

	s := engine.Summarize(a.auditResults)
	summary := fmt.Sprintf("%d scenarios, %d cost more with curated orders, %d failed",
		s.Scenarios, s.Suboptimal, s.Failed)
	if s.MaxRegret > 0 {
		summary += fmt.Sprintf(". Worst: %s (%d)", s.MaxName, s.MaxRegret)
	}
	summaryLabel := widget.NewLabel(summary)
	summaryLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.auditContainer.Add(widget.NewSeparator())
	a.auditContainer.Add(summaryLabel)
	a.auditContainer.Refresh()
}

func (a *App) exportAudit() {
	if len(a.auditResults) == 0 {
		a.runAudit()
	}
	if len(a.auditResults) == 0 {
		dialog.ShowInformation("No scenarios", "Add or import a scenario before exporting an audit.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := export.ExportAuditXLSX(path, a.auditResults); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.logger.Info("audit written", "path", path, "scenarios", len(a.auditResults))
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Audit saved to %s", path), a.window)
	}, a.window)
	d.SetFileName("crankhint-audit.xlsx")
	d.Show()
}
