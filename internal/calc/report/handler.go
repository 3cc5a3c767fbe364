package report

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"Girder/internal/calc/beam"
	"Girder/internal/calc/premium/autodesign"
)

type Input struct {
	Project  string                    `json:"project"`
	Author   string                    `json:"author"`
	Title    string                    `json:"title"`
	Notes    string                    `json:"notes"`
	Analysis *beam.Input               `json:"analysis,omitempty"`
	Optimize *autodesign.OptimizeInput `json:"optimize,omitempty"`
}

type Handler struct {
	Workers int
	Timeout time.Duration
}

// Generate recomputes the requested analysis and optimization and returns
// them as a PDF attachment.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	doc := Document{Project: input.Project, Author: input.Author, Title: input.Title, Notes: input.Notes}

	if input.Analysis != nil {
		res, err := beam.Calculate(*input.Analysis)
		if err != nil {
			http.Error(w, "Calculation error: "+err.Error(), beam.StatusFor(err))
			return
		}
		doc.Analysis = &res
	}
	if input.Optimize != nil {
		ctx := r.Context()
		if h.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, h.Timeout)
			defer cancel()
		}
		cmp, err := autodesign.Run(ctx, *input.Optimize, h.Workers)
		if err != nil {
			http.Error(w, "Optimization error: "+err.Error(), beam.StatusFor(err))
			return
		}
		doc.Optimization = &cmp
	}

	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		log.Printf("report: %v", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	w.Write(buf.Bytes())
}
