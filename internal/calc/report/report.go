package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"Girder/internal/calc/beam"
	"Girder/internal/calc/premium/autodesign"
	"Girder/internal/calc/section"

	"github.com/phpdave11/gofpdf"
	"gonum.org/v1/gonum/floats"
)

type Document struct {
	Project      string
	Author       string
	Title        string
	Notes        string
	Date         time.Time
	Analysis     *beam.Result
	Optimization *autodesign.Comparison
}

const (
	plotWidth  = 170.0
	plotHeight = 50.0
)

// Write renders doc as an A4 PDF.
func Write(w io.Writer, doc Document) error {
	if doc.Title == "" {
		doc.Title = "Beam Analysis Report"
	}
	if doc.Date.IsZero() {
		doc.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, false)
	pdf.SetAuthor(doc.Author, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, doc.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", doc.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", doc.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", doc.Date.Format("2006-01-02")))
	pdf.Ln(10)

	if doc.Analysis != nil {
		analysis(pdf, "Design", *doc.Analysis)
	}
	if doc.Optimization != nil {
		optimization(pdf, *doc.Optimization)
	}
	if doc.Notes != "" {
		heading(pdf, "Notes")
		pdf.MultiCell(0, 6, doc.Notes, "", "L", false)
	}
	return pdf.Output(w)
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, text)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
}

func table(pdf *gofpdf.Fpdf, rows [][2]string) {
	for _, r := range rows {
		pdf.CellFormat(70, 6, r[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(100, 6, r[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func describe(s section.Spec) string {
	names := make([]string, 0, len(s.Dimensions))
	for _, d := range s.Kind.Dimensions() {
		if v, ok := s.Dimensions[d.Name]; ok {
			names = append(names, fmt.Sprintf("%s %.1f", d.Name, v))
		}
	}
	return fmt.Sprintf("%s (%s mm)", s.Kind, strings.Join(names, ", "))
}

func analysis(pdf *gofpdf.Fpdf, title string, r beam.Result) {
	heading(pdf, title)
	table(pdf, [][2]string{
		{"Material", r.Material.Name},
		{"Section", describe(r.Section)},
		{"Support", string(r.Deflection.Support)},
		{"Span", fmt.Sprintf("%.3f m", r.Deflection.SpanM)},
		{"Area / inertia", fmt.Sprintf("%.4g m2 / %.4g m4", r.Properties.Area, r.Properties.Inertia)},
		{"Max moment / shear", fmt.Sprintf("%.2f kN m / %.2f kN", r.Stress.MaxMomentNM/1e3, r.Stress.MaxShearN/1e3)},
		{"Max bending stress", fmt.Sprintf("%.2f MPa", r.Stress.MaxBending/1e6)},
		{"Max shear stress", fmt.Sprintf("%.2f MPa", r.Stress.MaxShear/1e6)},
		{"Max von Mises stress", fmt.Sprintf("%.2f MPa", r.Stress.MaxVonMises/1e6)},
		{"Max deflection", fmt.Sprintf("%.2f mm at %.3f m (allowed %.2f mm)", r.Deflection.MaxDeflectionM*1e3, r.Deflection.MaxDeflectionAtM, r.Safety.AllowableDefl*1e3)},
		{"Fatigue life", fmt.Sprintf("%.3g cycles", r.Fatigue.CyclesToFailure)},
	})

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Safety factors")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	table(pdf, [][2]string{
		{"Bending", fmt.Sprintf("%.3f", r.Safety.BendingSF)},
		{"Shear", fmt.Sprintf("%.3f", r.Safety.ShearSF)},
		{"Von Mises", fmt.Sprintf("%.3f", r.Safety.VonMisesSF)},
		{"Fatigue", fmt.Sprintf("%.3f", r.Safety.FatigueSF)},
		{"Combined (governing)", fmt.Sprintf("%.3f (%s), required %.2f", r.Safety.CombinedSF, r.Safety.Governing, r.Safety.RequiredSF)},
		{"Status", string(r.Safety.Status)},
	})

	if len(r.Deflection.PositionsM) > 1 {
		mm := make([]float64, len(r.Deflection.DeflectionsM))
		floats.ScaleTo(mm, 1e3, r.Deflection.DeflectionsM)
		plot(pdf, "Deflection (mm) along span (m)", r.Deflection.PositionsM, mm)
	}
}

func optimization(pdf *gofpdf.Fpdf, c autodesign.Comparison) {
	pdf.AddPage()
	heading(pdf, "Optimization")
	o := c.Optimized
	table(pdf, [][2]string{
		{"Termination", fmt.Sprintf("%s after %d generations", o.Termination, o.Generations)},
		{"Evaluations", fmt.Sprintf("%d", o.Evaluations)},
		{"Best fitness", fmt.Sprintf("%.6g", o.BestFitness)},
		{"Constraints met", fmt.Sprintf("%t", o.Feasible)},
		{"Seed", fmt.Sprintf("%d", o.Seed)},
	})
	if c.Original != nil {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, "Original vs optimized")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 10)
		table(pdf, [][2]string{
			{"Original", fmt.Sprintf("%s, %s", c.Original.Material.Name, describe(c.Original.Section))},
			{"Optimized", fmt.Sprintf("%s, %s", o.Analysis.Material.Name, describe(o.Analysis.Section))},
			{"Combined SF", fmt.Sprintf("%.3f -> %.3f (x%.2f)", c.Original.Safety.CombinedSF, o.Analysis.Safety.CombinedSF, c.SafetyGain)},
			{"Status", fmt.Sprintf("%s -> %s", c.Original.Safety.Status, o.Analysis.Safety.Status)},
			{"Mass ratio", fmt.Sprintf("%.3f", c.MassRatio)},
		})
	}
	if len(o.History) > 1 {
		gens := make([]float64, len(o.History))
		floats.Span(gens, 1, float64(len(o.History)))
		plot(pdf, "Best fitness by generation", gens, o.History)
	}
	analysis(pdf, "Optimized design", o.Analysis)
}

// plot draws y(x) as a polyline in a framed box at the current position.
func plot(pdf *gofpdf.Fpdf, title string, x, y []float64) {
	if pdf.GetY()+plotHeight+20 > 280 {
		pdf.AddPage()
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, title)
	pdf.Ln(7)
	left, top := 20.0, pdf.GetY()
	pdf.Rect(left, top, plotWidth, plotHeight, "D")

	xMin, xMax := floats.Min(x), floats.Max(x)
	yMin, yMax := floats.Min(y), floats.Max(y)
	if xMax-xMin == 0 {
		xMax = xMin + 1
	}
	if yMax-yMin == 0 {
		yMin, yMax = yMin-1, yMax+1
	}
	px := func(v float64) float64 { return left + (v-xMin)/(xMax-xMin)*plotWidth }
	py := func(v float64) float64 { return top + plotHeight - (v-yMin)/(yMax-yMin)*plotHeight }

	pdf.SetDrawColor(30, 80, 180)
	for i := 1; i < len(x); i++ {
		pdf.Line(px(x[i-1]), py(y[i-1]), px(x[i]), py(y[i]))
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(left, top+plotHeight+4, fmt.Sprintf("%.3g", xMin))
	pdf.Text(left+plotWidth-10, top+plotHeight+4, fmt.Sprintf("%.3g", xMax))
	pdf.Text(left-15, top+3, fmt.Sprintf("%.3g", yMax))
	pdf.Text(left-15, top+plotHeight, fmt.Sprintf("%.3g", yMin))
	pdf.SetY(top + plotHeight + 8)
}
