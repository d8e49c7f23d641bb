package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phpdave11/gofpdf"

	"Pipewrap/internal/calc/repair"
	"Pipewrap/internal/catalog"
)

type Input struct {
	Project string       `json:"project"`
	Author  string       `json:"author"`
	Title   string       `json:"title"`
	Case    repair.Input `json:"case"`
}

type Handler struct {
	Catalog *catalog.Catalog
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Composite Repair Design"
	}

	res, err := repair.Calculate(input.Case, h.Catalog)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	section(pdf, "Repair Case")
	line(pdf, "Pipe OD / wall", "%.1f mm / %.2f mm", input.Case.ODMM, input.Case.WallMM)
	line(pdf, "Defect", "%s, %s, L=%.0f mm, remaining wall %.2f mm",
		input.Case.Mechanism, input.Case.Location, input.Case.DefectLengthMM, input.Case.RemainingWallMM)
	line(pdf, "Service", "%.1f bar at %.1f C, design factor %.3f",
		input.Case.PressureBar, input.Case.DesignTempC, input.Case.DesignFactor)
	pdf.Ln(4)

	section(pdf, "Design Result")
	line(pdf, "Repair class", "thickness Type %s, overlap Type %s", res.ThicknessClass, res.OverlapClass)
	line(pdf, "Design strain", "%.4f%%", res.DesignStrain*100)
	line(pdf, "Laminate", "%d plies of %s, %.2f mm total", res.PlyCount, res.System, res.FinalThicknessMM)
	line(pdf, "Overlap / total length", "%.0f mm / %.0f mm", res.OverlapMM, res.TotalLengthMM)
	line(pdf, "Fabric", "%.2f m2", res.FabricAreaM2)
	line(pdf, "Resin / epoxy", "%.2f L / %.2f kg", res.ResinLiters, res.EpoxyKg)
	pdf.Ln(4)

	section(pdf, "Installation Checklist")
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range res.Checklist {
		pdf.MultiCell(0, 5, "- "+item, "", "L", false)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"repair-design.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
}

func line(pdf *gofpdf.Fpdf, label, format string, args ...any) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(55, 5, label)
	pdf.Cell(0, 5, fmt.Sprintf(format, args...))
	pdf.Ln(5)
}
