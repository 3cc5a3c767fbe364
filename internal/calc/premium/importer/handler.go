package importer

import (
	"encoding/json"
	"errors"
	"net/http"

	"Girder/internal/calc/beam"
	"Girder/internal/calc/loads"
)

const MaxUploadSize = 10 << 20

type Handler struct{}

type ProfileImportResult struct {
	Profile loads.Profile `json:"profile"`
	Report  Report        `json:"report"`
}

// Profile accepts a multipart upload in field "file" and returns the parsed
// load profile.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		http.Error(w, "File too big", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	p, rep, err := Parse(file, header.Filename)
	if err != nil {
		status := beam.StatusFor(err)
		if errors.Is(err, ErrUnsupportedFormat) || errors.Is(err, ErrMissingColumns) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, "Invalid file: "+err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ProfileImportResult{Profile: p, Report: rep})
}
