package recommend

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Girder/internal/calc/beam"
	"Girder/internal/runs"
)

type Handler struct {
	Runs runs.Recorder
}

func (h *Handler) Height(w http.ResponseWriter, r *http.Request) {
	var input HeightInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Height(input)
	if err != nil {
		status := beam.StatusFor(err)
		if errors.Is(err, ErrNoFeasibleHeight) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, "Calculation error: "+err.Error(), status)
		return
	}
	if h.Runs != nil {
		if err := h.Runs.Record(r.Context(), runs.KindRecommend, input, res); err != nil {
			log.Printf("record recommendation run: %v", err)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
