package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/ali-azimo/house-aj/internal/http/respond"
	"github.com/ali-azimo/house-aj/internal/storage"
)

const similarLimit = 4

// SimilarHandler serves related-listing lookups.
type SimilarHandler struct {
	houses storage.HouseStore
}

// NewSimilarHandler constructs the handler.
func NewSimilarHandler(houses storage.HouseStore) *SimilarHandler {
	return &SimilarHandler{houses: houses}
}

// Get returns up to four listings similar to the given one. The stored
// record decides the matching tier (category, then type, then room counts);
// the type path segment is kept for URL compatibility but the stored value
// wins.
func (h *SimilarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid house id")
		return
	}

	current, err := h.houses.GetHouse(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "house not found")
			return
		}
		log.Printf("similar: load house %d: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, "failed to fetch house")
		return
	}

	similar, err := h.houses.FindSimilar(r.Context(), current, similarLimit)
	if err != nil {
		log.Printf("similar: query for house %d: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, "failed to fetch similar houses")
		return
	}
	respond.JSON(w, http.StatusOK, "", similar)
}
