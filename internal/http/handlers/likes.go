package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ali-azimo/house-aj/internal/http/respond"
	"github.com/ali-azimo/house-aj/internal/middleware"
	"github.com/ali-azimo/house-aj/internal/models/dto"
	"github.com/ali-azimo/house-aj/internal/storage"
)

// LikeHandler owns the like toggle/count/check endpoints.
type LikeHandler struct {
	likes storage.LikeStore
}

// NewLikeHandler constructs the handler.
func NewLikeHandler(likes storage.LikeStore) *LikeHandler {
	return &LikeHandler{likes: likes}
}

// Toggle flips the caller's like on a house: insert when absent, remove when
// present. The response reports the resulting state.
func (h *LikeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.ToggleLikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.HouseID <= 0 {
		respond.Error(w, http.StatusBadRequest, "houseId is required")
		return
	}

	liked, err := h.likes.ToggleLike(r.Context(), identity.ID, req.HouseID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "house not found")
			return
		}
		log.Printf("toggle like user=%d house=%d: %v", identity.ID, req.HouseID, err)
		respond.Error(w, http.StatusInternalServerError, "failed to toggle like")
		return
	}
	respond.JSON(w, http.StatusOK, "", map[string]bool{"liked": liked})
}

// Count returns how many accounts like a house. Public.
func (h *LikeHandler) Count(w http.ResponseWriter, r *http.Request) {
	houseID, err := pathID(r, "houseId")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid house id")
		return
	}
	count, err := h.likes.CountLikes(r.Context(), houseID)
	if err != nil {
		log.Printf("count likes house=%d: %v", houseID, err)
		respond.Error(w, http.StatusInternalServerError, "failed to count likes")
		return
	}
	respond.JSON(w, http.StatusOK, "", map[string]int64{"houseId": houseID, "likes": count})
}

// Check reports whether the caller currently likes the house.
func (h *LikeHandler) Check(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	houseID, err := pathID(r, "houseId")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid house id")
		return
	}
	liked, err := h.likes.HasLiked(r.Context(), identity.ID, houseID)
	if err != nil {
		log.Printf("check like user=%d house=%d: %v", identity.ID, houseID, err)
		respond.Error(w, http.StatusInternalServerError, "failed to check like")
		return
	}
	respond.JSON(w, http.StatusOK, "", map[string]bool{"liked": liked})
}
