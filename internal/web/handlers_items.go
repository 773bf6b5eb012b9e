package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/binkeeper/binkeeper/internal/inventory"
)

// jsonString accepts either a JSON string or a JSON number, so clients may
// send prices as "12.50" or 12.5 interchangeably.
type jsonString struct {
	value *string
}

func (j *jsonString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		j.value = &s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		v := n.String()
		j.value = &v
		return nil
	}
	return errors.New("expected a string or number")
}

type createItemRequest struct {
	Description string     `json:"description"`
	BinLocation string     `json:"binLocation"`
	Brand       string     `json:"brand"`
	Size        string     `json:"size"`
	Color       string     `json:"color"`
	Category    string     `json:"category"`
	Condition   string     `json:"condition"`
	Notes       string     `json:"notes"`
	Price       jsonString `json:"price"`
}

type updateItemRequest struct {
	Description *string    `json:"description"`
	BinLocation *string    `json:"binLocation"`
	Brand       *string    `json:"brand"`
	Size        *string    `json:"size"`
	Color       *string    `json:"color"`
	Category    *string    `json:"category"`
	Condition   *string    `json:"condition"`
	Notes       *string    `json:"notes"`
	Price       jsonString `json:"price"`
}

type sellItemRequest struct {
	SoldPrice jsonString `json:"soldPrice"`
	SoldDate  *time.Time `json:"soldDate"`
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.service.ListItems(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	item, err := s.service.CreateItem(r.Context(), inventory.CreateItemInput{
		Description: req.Description,
		BinLocation: req.BinLocation,
		Brand:       req.Brand,
		Size:        req.Size,
		Color:       req.Color,
		Category:    req.Category,
		Condition:   req.Condition,
		Notes:       req.Notes,
		Price:       req.Price.value,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.service.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	item, err := s.service.UpdateItem(r.Context(), chi.URLParam(r, "id"), inventory.UpdateItemInput{
		Description: req.Description,
		BinLocation: req.BinLocation,
		Brand:       req.Brand,
		Size:        req.Size,
		Color:       req.Color,
		Category:    req.Category,
		Condition:   req.Condition,
		Notes:       req.Notes,
		Price:       req.Price.value,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSellItem(w http.ResponseWriter, r *http.Request) {
	var req sellItemRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	item, err := s.service.SellItem(r.Context(), chi.URLParam(r, "id"), inventory.SellItemInput{
		SoldPrice: req.SoldPrice.value,
		SoldDate:  req.SoldDate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.service.SearchItems(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleItemsByBin(w http.ResponseWriter, r *http.Request) {
	items, err := s.service.ItemsByBin(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
