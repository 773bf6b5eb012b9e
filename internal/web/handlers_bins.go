package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/binkeeper/binkeeper/internal/inventory"
)

func (s *Server) handleListBins(w http.ResponseWriter, r *http.Request) {
	bins, err := s.service.ListBins(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bins)
}

func (s *Server) handleCreateBin(w http.ResponseWriter, r *http.Request) {
	var in inventory.CreateBinInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	bin, err := s.service.CreateBin(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, bin)
}

func (s *Server) handleGetBin(w http.ResponseWriter, r *http.Request) {
	bin, err := s.service.GetBin(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bin)
}

func (s *Server) handleUpdateBin(w http.ResponseWriter, r *http.Request) {
	var in inventory.UpdateBinInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	bin, err := s.service.UpdateBin(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bin)
}

func (s *Server) handleDeleteBin(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteBin(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBinStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.BinStats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSeedBins(w http.ResponseWriter, r *http.Request) {
	bins, err := s.service.SeedBins(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, bins)
}
