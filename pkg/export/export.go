// Package export renders a plant's care history as a workbook or a printable sheet.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/display"
)

const historySheet = "Historique"

var kindLabels = map[string]string{
	entities.CareWatering:    "Arrosage",
	entities.CareFertilizing: "Fertilisation",
	entities.CareRepotting:   "Rempotage",
	entities.CareDisease:     "Maladie",
}

// KindLabel is the French name of a care kind.
func KindLabel(kind string) string {
	if l, ok := kindLabels[kind]; ok {
		return l
	}
	return kind
}

// detail summarizes the kind-specific fields of e.
func detail(e entities.CareEvent) string {
	var parts []string
	add := func(label, v string) {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, label+v)
		}
	}
	switch e.Kind {
	case entities.CareFertilizing:
		add("", e.Product)
	case entities.CareRepotting:
		add("pot ", e.PotSize)
		add("", e.Substrate)
	case entities.CareDisease:
		add("", e.Disease)
		add("traitement ", e.Treatment)
		if e.Resolved {
			parts = append(parts, "résolu")
		}
	}
	return strings.Join(parts, ", ")
}

var historyHeader = []any{"Date", "Type", "Dose", "Détail", "Notes"}

// HistoryXLSX writes one row per event, in the given order.
func HistoryXLSX(p *entities.Plant, events []entities.CareEvent) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(historySheet, "A1", p.Name); err != nil {
		return nil, err
	}
	if p.Species != "" {
		if err := f.SetCellValue(historySheet, "B1", p.Species); err != nil {
			return nil, err
		}
	}
	if err := f.SetSheetRow(historySheet, "A3", &historyHeader); err != nil {
		return nil, err
	}
	for i, e := range events {
		row := []any{
			e.Date.Format("2006-01-02"),
			KindLabel(e.Kind),
			display.DoseLabel(e.Amount, e.Unit),
			detail(e),
			e.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(historySheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(historySheet, "A", "B", 14); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(historySheet, "C", "E", 28); err != nil {
		return nil, err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func intervalText(d *int) string {
	if d == nil {
		return "-"
	}
	return fmt.Sprintf("%d j", *d)
}

// CareSheetPDF renders a one-page summary: identity, tags, seasonal
// frequencies and the most recent events.
func CareSheetPDF(p *entities.Plant, tags display.TagGroups, freqs []entities.SeasonalFrequency, events []entities.CareEvent, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(p.Name), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(p.Name))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	for _, kv := range [][2]string{
		{"Espèce", p.Species},
		{"Famille", p.Family},
		{display.CategoryLocation, p.Location},
		{display.CategoryLight, p.Light},
		{display.CategoryHealth, p.HealthState},
	} {
		if kv[1] == "" {
			continue
		}
		pdf.Cell(0, 6, tr(kv[0]+" : "+kv[1]))
		pdf.Ln(5)
	}
	if len(tags.Manual) > 0 {
		names := make([]string, 0, len(tags.Manual))
		for _, t := range tags.Manual {
			names = append(names, t.Name)
		}
		pdf.Cell(0, 6, tr("Étiquettes : "+strings.Join(names, ", ")))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, tr("Saison"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, tr("Arrosage"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, tr("Fertilisation"), "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, f := range freqs {
		pdf.CellFormat(40, 6, tr(f.Season), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, tr(intervalText(f.WateringDays)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, tr(intervalText(f.FertilizingDays)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Dose", "1", 0, "C", false, 0, "")
	pdf.CellFormat(90, 6, tr("Détail"), "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, e := range events {
		pdf.CellFormat(25, 6, e.Date.Format("02/01/2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, tr(KindLabel(e.Kind)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, tr(display.DoseLabel(e.Amount, e.Unit)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(90, 6, tr(detail(e)), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 6, tr("Généré le "+now.Format("02/01/2006 15:04")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
