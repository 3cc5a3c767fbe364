package beam

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Girder/internal/calc/loads"
	"Girder/internal/calc/material"
	"Girder/internal/calc/section"
	"Girder/internal/runs"
)

type Handler struct {
	Runs runs.Recorder
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), StatusFor(err))
		return
	}
	if h.Runs != nil {
		if err := h.Runs.Record(r.Context(), runs.KindAnalysis, input, res); err != nil {
			log.Printf("record analysis run: %v", err)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// StatusFor maps engine errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, section.ErrInvalidDimension),
		errors.Is(err, loads.ErrInvalidLoadProfile),
		errors.Is(err, material.ErrUnknownMaterial):
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

func (h *Handler) Materials(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(material.All())
}

type sectionInfo struct {
	Type       section.Kind            `json:"type"`
	Dimensions []section.DimensionSpec `json:"dimensions"`
}

func (h *Handler) Sections(w http.ResponseWriter, r *http.Request) {
	out := make([]sectionInfo, 0, section.KindCount)
	for _, k := range section.Kinds() {
		out = append(out, sectionInfo{Type: k, Dimensions: k.Dimensions()})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
