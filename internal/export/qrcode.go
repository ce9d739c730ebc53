package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/CrankHint/internal/model"
)

// ScenarioCode holds the data encoded into each report page's QR code. It is
// enough to rebuild the scenario in the preview tool.
type ScenarioCode struct {
	Name     string   `json:"name"`
	Geometry string   `json:"geometry"`
	Targets  [][2]int `json:"targets"`
}

const qrSize = 28.0 // QR code size in mm

// NewScenarioCode builds the QR payload for a scenario.
func NewScenarioCode(sc model.Scenario, geo model.Geometry) ScenarioCode {
	code := ScenarioCode{
		Name:     sc.Name,
		Geometry: geo.Name,
		Targets:  make([][2]int, len(sc.Targets)),
	}
	for i, t := range sc.Targets {
		code.Targets[i] = [2]int{t.X, t.Y}
	}
	return code
}

// Scenario rebuilds a scenario from a decoded payload.
func (c ScenarioCode) Scenario() model.Scenario {
	points := make([]model.Point, len(c.Targets))
	for i, t := range c.Targets {
		points[i] = model.Point{X: t[0], Y: t[1]}
	}
	return model.NewScenario(c.Name, points...)
}

// EncodeScenarioQR renders the scenario payload as a QR code PNG.
func EncodeScenarioQR(sc model.Scenario, geo model.Geometry, size int) ([]byte, error) {
	data, err := json.Marshal(NewScenarioCode(sc, geo))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scenario code: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// drawScenarioCode places the scenario QR code at (x, y).
func drawScenarioCode(pdf *fpdf.Fpdf, sc model.Scenario, geo model.Geometry, x, y float64) error {
	png, err := EncodeScenarioQR(sc, geo, 256)
	if err != nil {
		return err
	}

	// Register QR image with a unique name
	imgName := fmt.Sprintf("qr_%s_%d", sc.ID, pdf.PageNo())
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x, y, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(x, y+qrSize)
	pdf.CellFormat(qrSize, 3, "scan to open", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}
