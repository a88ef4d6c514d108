package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/ali-azimo/house-aj/internal/auth"
	"github.com/ali-azimo/house-aj/internal/http/respond"
	"github.com/ali-azimo/house-aj/internal/middleware"
	"github.com/ali-azimo/house-aj/internal/models"
	"github.com/ali-azimo/house-aj/internal/models/dto"
	"github.com/ali-azimo/house-aj/internal/storage"
)

// UserHandler owns the account management endpoints.
type UserHandler struct {
	users storage.UserStore
}

// NewUserHandler constructs the handler.
func NewUserHandler(users storage.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// Get returns one account; only that account or an admin may look.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := auth.CanMutate(identity, id); err != nil {
		respond.Error(w, http.StatusForbidden, "not allowed to view this user")
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("get user %d: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	respond.JSON(w, http.StatusOK, "", user)
}

// Update changes the self-serviceable fields of an account, self-or-admin.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := auth.CanMutate(identity, id); err != nil {
		respond.Error(w, http.StatusForbidden, "not allowed to update this user")
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" {
		respond.Error(w, http.StatusBadRequest, "username and email are required")
		return
	}

	if err := h.users.UpdateUser(r.Context(), id, username, email); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "user not found")
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, http.StatusBadRequest, "email already registered")
		default:
			log.Printf("update user %d: %v", id, err)
			respond.Error(w, http.StatusInternalServerError, "failed to update user")
		}
		return
	}
	respond.JSON(w, http.StatusOK, "user updated successfully", nil)
}

// Delete removes an account, self-or-admin. The account's houses and likes
// are removed with it.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := auth.CanMutate(identity, id); err != nil {
		respond.Error(w, http.StatusForbidden, "not allowed to delete this user")
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("delete user %d: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	respond.JSON(w, http.StatusOK, "user deleted successfully", nil)
}

// List returns every account. Admin only; there is no self variant for a
// collection.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := auth.RequireRole(identity, models.RoleAdmin); err != nil {
		respond.Error(w, http.StatusForbidden, "only admins can list users")
		return
	}

	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		log.Printf("list users: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	respond.JSON(w, http.StatusOK, "", users)
}
