package loads

import (
	"encoding/json"
	"errors"
	"net/http"
)

type Handler struct{}

func (h *Handler) Combine(w http.ResponseWriter, r *http.Request) {
	var input CombineInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Combine(input)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrInvalidLoadProfile) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, "Calculation error: "+err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
