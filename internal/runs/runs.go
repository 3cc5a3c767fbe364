package runs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"Girder/internal/auth"
	"Girder/internal/repo"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	KindAnalysis     = "analysis"
	KindOptimization = "optimization"
	KindBatch        = "batch"
	KindRecommend    = "recommendation"
)

// Recorder persists a finished tool run for the requesting user.
type Recorder interface {
	Record(ctx context.Context, kind string, input, output any) error
}

type Service struct {
	Repo repo.Repository
}

// Record stores the run under the user in ctx. Anonymous contexts are ignored.
func (s *Service) Record(ctx context.Context, kind string, input, output any) error {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return nil
	}
	in, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("encode %s input: %w", kind, err)
	}
	out, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("encode %s output: %w", kind, err)
	}
	_, err = s.Repo.SaveRun(ctx, repo.Run{UserID: userID, Kind: kind, Input: in, Output: out})
	return err
}

type Handler struct {
	Repo repo.Repository
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	list, err := h.Repo.ListRuns(r.Context(), userID)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid run id", http.StatusBadRequest)
		return
	}
	run, err := h.Repo.GetRun(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}
