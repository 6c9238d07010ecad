package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/fentz26/carcare/internal/models"
)

func sampleReport() Report {
	return Report{
		Tasks: []models.Task{
			{ID: "a", Item: "Engine Oil", Priority: "High", Description: "Replace every 10,000 km"},
			{ID: "b", Item: "Tires", Priority: "Medium", Completed: true},
		},
		Vehicle:     &models.VehicleProfile{Category: models.CategorySedan, ModelYear: 2019, OdometerKm: 45000},
		GeneratedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestExportCSV(t *testing.T) {
	data, err := Export(sampleReport(), "CSV")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	want := []string{"2", "Tires", "Medium", "", "Done"}
	for i := range want {
		if rows[2][i] != want[i] {
			t.Errorf("column %d: expected %q, got %q", i, want[i], rows[2][i])
		}
	}
}

func TestExportJSON(t *testing.T) {
	data, err := Export(sampleReport(), FormatJSON)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	var doc struct {
		Vehicle models.VehicleProfile `json:"vehicle"`
		Tasks   []models.Task         `json:"tasks"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if doc.Vehicle.Category != models.CategorySedan || len(doc.Tasks) != 2 || !doc.Tasks[1].Completed {
		t.Errorf("unexpected document %+v", doc)
	}

	empty, err := Export(Report{}, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(empty, []byte(`"tasks": []`)) {
		t.Errorf("expected empty task array, got %s", empty)
	}
}

func TestExportPDF(t *testing.T) {
	data, err := Export(sampleReport(), FormatPDF)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("expected PDF header, got %q", data[:min(len(data), 8)])
	}

	if _, err := Export(Report{GeneratedAt: time.Now()}, FormatPDF); err != nil {
		t.Errorf("empty report failed: %v", err)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	if _, err := Export(sampleReport(), "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
