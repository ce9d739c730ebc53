// Package export writes placement results to PDF reports and Excel workbooks.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/CrankHint/internal/engine"
	"github.com/piwi3910/CrankHint/internal/model"
)

// roleColor represents an RGB color for one role.
type roleColor struct {
	R, G, B int
}

// roleColors mirrors the color scheme used by the preview canvas, indexed by role-1.
var roleColors = []roleColor{
	{R: 33, G: 150, B: 243}, // blue
	{R: 76, G: 175, B: 80},  // green
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
}

func colorFor(r model.Role) roleColor {
	if r < 1 || int(r) > len(roleColors) {
		return roleColor{R: 120, G: 120, B: 120}
	}
	return roleColors[r-1]
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	drawWidth    = 170.0
	tableLeft    = marginLeft + drawWidth + 8.0
)

// ReportPage is one scenario with its search outcome.
type ReportPage struct {
	Scenario model.Scenario
	Result   engine.SearchResult
	Err      error
}

// PlanReport runs the placer over every scenario. Scenarios that cannot be
// placed keep their error so the report can show them.
func PlanReport(p *engine.Placer, scenarios []model.Scenario) []ReportPage {
	pages := make([]ReportPage, 0, len(scenarios))
	for _, sc := range scenarios {
		page := ReportPage{Scenario: sc}
		if err := model.ValidateTargets(sc.Targets); err != nil {
			page.Err = err
		} else {
			page.Result, page.Err = p.Evaluate(sc.Targets)
		}
		pages = append(pages, page)
	}
	return pages
}

// ExportReport generates a PDF document with one page per scenario showing
// the screen, the scan path, target clearances and the chosen overlays,
// followed by a summary page.
func ExportReport(path string, geo model.Geometry, mode model.SearchMode, pages []ReportPage) error {
	if len(pages) == 0 {
		return fmt.Errorf("no scenarios to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle("Overlay placement report", false)

	for i, page := range pages {
		pdf.AddPage()
		if err := renderScenarioPage(pdf, geo, page, i+1); err != nil {
			return fmt.Errorf("scenario %q: %w", page.Scenario.Name, err)
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, geo, mode, pages)

	return pdf.OutputFileAndClose(path)
}

// renderScenarioPage draws a single scenario on the current PDF page.
func renderScenarioPage(pdf *fpdf.Fpdf, geo model.Geometry, page ReportPage, num int) error {
	sc := page.Scenario

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Scenario %d: %s", num, sc.Name)
	pdf.CellFormat(pageWidth-marginLeft-marginRight-qrSize, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Targets: %d | Screen: %dx%d px | Geometry: %s", len(sc.Targets), geo.ScreenWidth, geo.ScreenHeight, geo.Name)
	if page.Err == nil {
		stats += fmt.Sprintf(" | Cost: %d", page.Result.Best.Cost)
	}
	pdf.CellFormat(drawWidth, 5, stats, "", 0, "L", false, 0, "")

	if err := drawScenarioCode(pdf, sc, geo, pageWidth-marginRight-qrSize, marginTop); err != nil {
		return err
	}

	scale := drawWidth / float64(geo.ScreenWidth)
	drawHeight := pageHeight - drawAreaTop - marginBottom - 20
	if h := float64(geo.ScreenHeight) * scale; h > drawHeight {
		scale = drawHeight / float64(geo.ScreenHeight)
	}
	s := screenTransform{scale: scale, x: marginLeft, y: drawAreaTop}

	drawScreen(pdf, geo, s)
	drawTargets(pdf, geo, sc.Targets, s)

	if page.Err != nil {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(tableLeft, drawAreaTop)
		pdf.MultiCell(pageWidth-tableLeft-marginRight, 5, "No placement: "+page.Err.Error(), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		return nil
	}

	drawOverlays(pdf, geo, sc.Targets, page.Result.Best, s)
	y := drawSlotTable(pdf, page.Result.Best, drawAreaTop)
	drawAttemptTable(pdf, page.Result, y+6)
	return nil
}

// screenTransform maps screen pixels to page millimetres.
type screenTransform struct {
	scale float64
	x, y  float64
}

func (s screenTransform) pt(p model.Point) (float64, float64) {
	return s.x + float64(p.X)*s.scale, s.y + float64(p.Y)*s.scale
}

// drawScreen renders the screen rectangle and the dashed scan path.
func drawScreen(pdf *fpdf.Fpdf, geo model.Geometry, s screenTransform) {
	pdf.SetFillColor(40, 44, 52)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(s.x, s.y, float64(geo.ScreenWidth)*s.scale, float64(geo.ScreenHeight)*s.scale, "FD")

	min, max := geo.Inset()
	x0, y0 := s.pt(min)
	x1, y1 := s.pt(max)
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.2)
	pdf.SetDashPattern([]float64{1, 1}, 0)
	pdf.Rect(x0, y0, x1-x0, y1-y0, "D")
	pdf.SetDashPattern([]float64{}, 0)

	// Scan start marker
	pdf.SetFillColor(200, 200, 200)
	pdf.Circle(x0, y0, 0.8, "F")
}

// drawTargets renders each target with its clearance circle.
func drawTargets(pdf *fpdf.Fpdf, geo model.Geometry, targets []model.TargetPoint, s screenTransform) {
	r := float64(geo.TargetClearance) * s.scale
	pdf.SetFont("Helvetica", "B", 7)
	for _, t := range targets {
		col := colorFor(t.Role)
		x, y := s.pt(t.Point())

		pdf.SetDrawColor(col.R, col.G, col.B)
		pdf.SetLineWidth(0.2)
		pdf.SetDashPattern([]float64{0.6, 0.6}, 0)
		pdf.Circle(x, y, r, "D")
		pdf.SetDashPattern([]float64{}, 0)

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Circle(x, y, 1.5, "F")

		pdf.SetTextColor(255, 255, 255)
		pdf.SetXY(x+2, y-2)
		pdf.CellFormat(4, 4, fmt.Sprintf("%d", t.Role), "", 0, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

// drawOverlays renders each placed overlay box and an arrow to its target.
func drawOverlays(pdf *fpdf.Fpdf, geo model.Geometry, targets []model.TargetPoint, set model.PlacementSet, s screenTransform) {
	w := float64(geo.OverlayClearX) * s.scale
	h := float64(geo.OverlayClearY) * s.scale
	for _, slot := range set.Slots {
		col := colorFor(slot.Role)
		x, y := s.pt(slot.Point())

		pdf.SetFillColor(245, 245, 245)
		pdf.SetDrawColor(col.R, col.G, col.B)
		pdf.SetLineWidth(0.4)
		pdf.Rect(x-w/2, y-h/2, w, h, "FD")

		pdf.SetFont("Helvetica", "", 6)
		pdf.SetTextColor(0, 0, 0)
		label := slot.Role.String()
		lw := pdf.GetStringWidth(label)
		pdf.SetXY(x-lw/2, y-2)
		pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")

		for _, t := range targets {
			if t.Role == slot.Role {
				tx, ty := s.pt(t.Point())
				drawArrow(pdf, x, y, tx, ty, col)
			}
		}
	}
}

// drawArrow draws a line from the overlay centre toward the target, stopping
// short of it, with a filled head.
func drawArrow(pdf *fpdf.Fpdf, x0, y0, x1, y1 float64, col roleColor) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length < 4 {
		return
	}
	ux, uy := dx/length, dy/length
	tipX, tipY := x1-ux*2.5, y1-uy*2.5

	pdf.SetDrawColor(col.R, col.G, col.B)
	pdf.SetLineWidth(0.35)
	pdf.Line(x0, y0, tipX, tipY)

	const head = 2.0
	bx, by := tipX-ux*head, tipY-uy*head
	px, py := -uy*head/2, ux*head/2
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.Polygon([]fpdf.PointType{
		{X: tipX, Y: tipY},
		{X: bx + px, Y: by + py},
		{X: bx - px, Y: by - py},
	}, "F")
}

// drawSlotTable lists the committed slot of each role and returns the y
// position below the table.
func drawSlotTable(pdf *fpdf.Fpdf, set model.PlacementSet, y float64) float64 {
	colWidths := []float64{24, 22, 22, 18}
	headers := []string{"Role", "Distance", "Overlay", "Score"}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(tableLeft, y)
	pdf.CellFormat(80, 6, "Placement", "", 0, "L", false, 0, "")
	y += 7

	tableHeader(pdf, tableLeft, y, colWidths, headers)
	y += 6

	pdf.SetFont("Helvetica", "", 8)
	for i, slot := range set.Slots {
		row := []string{
			slot.Role.String(),
			fmt.Sprintf("%.0f px", math.Sqrt(float64(slot.Score))),
			fmt.Sprintf("%d,%d", slot.X, slot.Y),
			fmt.Sprintf("%d", slot.Score),
		}
		tableRow(pdf, tableLeft, y, colWidths, row, i)
		y += 5
	}
	return y
}

// drawAttemptTable lists every processing order the search tried.
func drawAttemptTable(pdf *fpdf.Fpdf, result engine.SearchResult, y float64) {
	colWidths := []float64{30, 24, 32}
	headers := []string{"Order", "Cost", ""}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(tableLeft, y)
	pdf.CellFormat(80, 6, "Orders tried", "", 0, "L", false, 0, "")
	y += 7

	tableHeader(pdf, tableLeft, y, colWidths, headers)
	y += 6

	pdf.SetFont("Helvetica", "", 8)
	for i, a := range result.Attempts {
		if y > pageHeight-marginBottom-5 {
			break
		}
		mark := ""
		if i == result.BestIndex {
			mark = "best"
		}
		tableRow(pdf, tableLeft, y, colWidths, []string{FormatOrder(a.Order), fmt.Sprintf("%d", a.Set.Cost), mark}, i)
		y += 5
	}
}

func tableHeader(pdf *fpdf.Fpdf, x, y float64, widths []float64, headers []string) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for i, header := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(widths[i], 6, header, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
}

func tableRow(pdf *fpdf.Fpdf, x, y float64, widths []float64, cells []string, index int) {
	if index%2 == 0 {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	for j, cell := range cells {
		pdf.SetXY(x, y)
		pdf.CellFormat(widths[j], 5, cell, "1", 0, "C", true, 0, "")
		x += widths[j]
	}
}

// renderSummaryPage draws the final page with one row per scenario.
func renderSummaryPage(pdf *fpdf.Fpdf, geo model.Geometry, mode model.SearchMode, pages []ReportPage) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Placement Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Geometry", fmt.Sprintf("%s (%dx%d, step %d)", geo.Name, geo.ScreenWidth, geo.ScreenHeight, geo.Step)},
		{"Target clearance", fmt.Sprintf("%d px", geo.TargetClearance)},
		{"Overlay clearance", fmt.Sprintf("%d x %d px", geo.OverlayClearX, geo.OverlayClearY)},
		{"Search mode", string(mode)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	y += 5

	colWidths := []float64{70, 20, 35, 30, 30}
	headers := []string{"Scenario", "Targets", "Best order", "Cost", "Orders tried"}
	tableHeader(pdf, marginLeft, y, colWidths, headers)
	y += 6

	var failed []ReportPage
	pdf.SetFont("Helvetica", "", 9)
	for i, page := range pages {
		if y > pageHeight-marginBottom-10 {
			break
		}
		row := []string{page.Scenario.Name, fmt.Sprintf("%d", len(page.Scenario.Targets)), "-", "-", fmt.Sprintf("%d", len(page.Result.Attempts))}
		if page.Err != nil {
			failed = append(failed, page)
		} else {
			row[2] = FormatOrder(page.Result.Best.Order)
			row[3] = fmt.Sprintf("%d", page.Result.Best.Cost)
		}
		tableRow(pdf, marginLeft, y, colWidths, row, i)
		y += 5
	}

	if len(failed) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Scenarios without a placement", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, page := range failed {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(250, 5, fmt.Sprintf("- %s: %v", page.Scenario.Name, page.Err), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by CrankHint - overlay placement tuning", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// FormatOrder renders a processing order as "4-1-2-3".
func FormatOrder(order []model.Role) string {
	parts := make([]string, len(order))
	for i, r := range order {
		parts[i] = fmt.Sprintf("%d", r)
	}
	return strings.Join(parts, "-")
}
