// Package report renders the task list as a shareable maintenance report.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fentz26/carcare/internal/models"
	"github.com/jung-kurt/gofpdf"
)

// Formats supported by Export.
const (
	FormatPDF  = "pdf"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Report is the input to Export.
type Report struct {
	Tasks       []models.Task
	Vehicle     *models.VehicleProfile
	GeneratedAt time.Time
}

// Export renders r in the given format.
func Export(r Report, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return exportJSON(r)
	case FormatCSV:
		return exportCSV(r)
	case FormatPDF:
		return exportPDF(r)
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

func exportJSON(r Report) ([]byte, error) {
	doc := struct {
		GeneratedAt time.Time              `json:"generated_at"`
		Vehicle     *models.VehicleProfile `json:"vehicle,omitempty"`
		Tasks       []models.Task          `json:"tasks"`
	}{r.GeneratedAt, r.Vehicle, r.Tasks}
	if doc.Tasks == nil {
		doc.Tasks = []models.Task{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

func exportCSV(r Report) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"number", "item", "priority", "description", "status"})
	for i, t := range r.Tasks {
		_ = w.Write([]string{strconv.Itoa(i + 1), t.Item, t.Priority, t.Description, t.Status()})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func exportPDF(r Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Car Maintenance Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 9)
	pdf.Cell(40, 6, "Generated "+r.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.Ln(6)
	if r.Vehicle != nil {
		v := r.Vehicle
		pdf.Cell(40, 6, fmt.Sprintf("Vehicle: %s, model year %d, %d km", v.Category, v.ModelYear, v.OdometerKm))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	if len(r.Tasks) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(40, 6, "No tasks available.")
	}
	for i, t := range r.Tasks {
		pdf.SetFont("Arial", "B", 10)
		pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s (Priority: %s) - [%s]", i+1, t.Item, t.Priority, t.Status()), "0", "L", false)
		if t.Description != "" {
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 6, "   "+t.Description, "0", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
