package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/ali-azimo/house-aj/internal/auth"
	"github.com/ali-azimo/house-aj/internal/http/respond"
	"github.com/ali-azimo/house-aj/internal/middleware"
	"github.com/ali-azimo/house-aj/internal/models"
	"github.com/ali-azimo/house-aj/internal/models/dto"
	"github.com/ali-azimo/house-aj/internal/storage"
)

// HouseHandler owns the listing CRUD and search endpoints.
type HouseHandler struct {
	houses storage.HouseStore
}

// NewHouseHandler constructs the handler.
func NewHouseHandler(houses storage.HouseStore) *HouseHandler {
	return &HouseHandler{houses: houses}
}

// Create registers a new listing owned by the authenticated account.
func (h *HouseHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.HouseInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	house, err := buildNewHouse(req, identity.ID)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.houses.CreateHouse(r.Context(), house)
	if err != nil {
		log.Printf("create house: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create house")
		return
	}
	respond.JSON(w, http.StatusCreated, "house created successfully", created)
}

// List serves the basic public catalog: offer, type, and limit filters,
// newest first.
func (h *HouseHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storage.HouseFilter{
		Type:  models.NormalizeTypeFilter(q.Get("type")),
		Offer: parseTriState(q.Get("offer")),
		Limit: parseIntOr(q.Get("limit"), 0),
	}
	houses, err := h.houses.SearchHouses(r.Context(), filter)
	if err != nil {
		log.Printf("list houses: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to list houses")
		return
	}
	respond.JSON(w, http.StatusOK, "", houses)
}

// Search serves the full filter set. Every parameter is optional; invalid
// sort and order values fall back to defaults rather than erroring.
func (h *HouseHandler) Search(w http.ResponseWriter, r *http.Request) {
	houses, err := h.houses.SearchHouses(r.Context(), parseSearchFilter(r))
	if err != nil {
		log.Printf("search houses: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to search houses")
		return
	}
	respond.JSON(w, http.StatusOK, "", houses)
}

// Get fetches one listing by id.
func (h *HouseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid house id")
		return
	}
	house, err := h.houses.GetHouse(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "house not found")
			return
		}
		log.Printf("get house %d: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, "failed to fetch house")
		return
	}
	respond.JSON(w, http.StatusOK, "", house)
}

// Update merges the provided fields into the stored listing after the
// owner-or-admin check. The merged result passes the same pricing validation
// as a create.
func (h *HouseHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid house id")
		return
	}

	house, err := h.houses.GetHouse(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "house not found")
			return
		}
		log.Printf("update house %d: load: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, "failed to fetch house")
		return
	}
	if err := auth.CanMutate(identity, house.OwnerID); err != nil {
		respond.Error(w, http.StatusForbidden, "not allowed to update this house")
		return
	}

	var req dto.HouseInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	merged, err := mergeHouse(house, req)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.houses.UpdateHouse(r.Context(), merged); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "house not found")
			return
		}
		log.Printf("update house %d: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, "failed to update house")
		return
	}
	respond.JSON(w, http.StatusOK, "house updated successfully", merged)
}

// Delete removes a listing after the owner-or-admin check.
func (h *HouseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid house id")
		return
	}

	house, err := h.houses.GetHouse(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "house not found")
			return
		}
		log.Printf("delete house %d: load: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, "failed to fetch house")
		return
	}
	if err := auth.CanMutate(identity, house.OwnerID); err != nil {
		respond.Error(w, http.StatusForbidden, "not allowed to delete this house")
		return
	}

	if err := h.houses.DeleteHouse(r.Context(), id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("delete house %d: %v", id, err)
		respond.Error(w, http.StatusInternalServerError, "failed to delete house")
		return
	}
	respond.JSON(w, http.StatusOK, "house deleted successfully", nil)
}

// ByOwner lists one account's houses; only that account or an admin may look.
func (h *HouseHandler) ByOwner(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	ownerID, err := pathID(r, "userId")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := auth.CanMutate(identity, ownerID); err != nil {
		respond.Error(w, http.StatusForbidden, "not allowed to view these houses")
		return
	}

	houses, err := h.houses.ListByOwner(r.Context(), ownerID)
	if err != nil {
		log.Printf("list houses of user %d: %v", ownerID, err)
		respond.Error(w, http.StatusInternalServerError, "failed to list houses")
		return
	}
	respond.JSON(w, http.StatusOK, "", houses)
}

func buildNewHouse(req dto.HouseInput, ownerID int64) (models.House, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" ||
		req.RegularPrice == nil || req.Bathroom == nil || req.Bedroom == nil ||
		req.Kitchen == nil || strings.TrimSpace(req.Type) == "" {
		return models.House{}, errors.New("name, description, regularPrice, bathroom, bedroom, kitchen, and type are required")
	}
	listingType, err := models.ParseListingType(req.Type)
	if err != nil {
		return models.House{}, err
	}

	house := models.House{
		OwnerID:      ownerID,
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Address:      strings.TrimSpace(req.Address),
		Category:     strings.TrimSpace(req.Category),
		RegularPrice: *req.RegularPrice,
		Bathroom:     *req.Bathroom,
		Bedroom:      *req.Bedroom,
		Kitchen:      *req.Kitchen,
		Available:    true,
		Type:         listingType,
		ImageURLs:    req.ImageURLs,
	}
	if req.DiscountPrice != nil {
		house.DiscountPrice = *req.DiscountPrice
	}
	if req.LivingRoom != nil {
		house.LivingRoom = *req.LivingRoom
	}
	if req.Parking != nil {
		house.Parking = *req.Parking
	}
	if req.Available != nil {
		house.Available = *req.Available
	}
	if req.Offer != nil {
		house.Offer = *req.Offer
	}
	if house.ImageURLs == nil {
		house.ImageURLs = []string{}
	}

	if house.Bathroom < 0 || house.Bedroom < 0 || house.Kitchen < 0 || house.LivingRoom < 0 {
		return models.House{}, errors.New("room counts must be non-negative")
	}
	if err := house.ValidatePricing(); err != nil {
		return models.House{}, err
	}
	return house, nil
}

func mergeHouse(house models.House, req dto.HouseInput) (models.House, error) {
	if strings.TrimSpace(req.Name) != "" {
		house.Name = strings.TrimSpace(req.Name)
	}
	if strings.TrimSpace(req.Description) != "" {
		house.Description = strings.TrimSpace(req.Description)
	}
	if strings.TrimSpace(req.Address) != "" {
		house.Address = strings.TrimSpace(req.Address)
	}
	if strings.TrimSpace(req.Category) != "" {
		house.Category = strings.TrimSpace(req.Category)
	}
	if strings.TrimSpace(req.Type) != "" {
		listingType, err := models.ParseListingType(req.Type)
		if err != nil {
			return models.House{}, err
		}
		house.Type = listingType
	}
	if req.RegularPrice != nil {
		house.RegularPrice = *req.RegularPrice
	}
	if req.DiscountPrice != nil {
		house.DiscountPrice = *req.DiscountPrice
	}
	if req.Bathroom != nil {
		house.Bathroom = *req.Bathroom
	}
	if req.Bedroom != nil {
		house.Bedroom = *req.Bedroom
	}
	if req.Kitchen != nil {
		house.Kitchen = *req.Kitchen
	}
	if req.LivingRoom != nil {
		house.LivingRoom = *req.LivingRoom
	}
	if req.Parking != nil {
		house.Parking = *req.Parking
	}
	if req.Available != nil {
		house.Available = *req.Available
	}
	if req.Offer != nil {
		house.Offer = *req.Offer
	}
	if req.ImageURLs != nil {
		house.ImageURLs = req.ImageURLs
	}

	if house.Bathroom < 0 || house.Bedroom < 0 || house.Kitchen < 0 || house.LivingRoom < 0 {
		return models.House{}, errors.New("room counts must be non-negative")
	}
	if err := house.ValidatePricing(); err != nil {
		return models.House{}, err
	}
	return house, nil
}

// parseSearchFilter reads the full filter set off the query string. Out-of-
// range and malformed values degrade to defaults; the store applies its own
// allow-lists on top.
func parseSearchFilter(r *http.Request) storage.HouseFilter {
	q := r.URL.Query()
	return storage.HouseFilter{
		SearchTerm: q.Get("searchTerm"),
		Type:       models.NormalizeTypeFilter(q.Get("type")),
		Parking:    parseTriState(q.Get("parking")),
		Offer:      parseTriState(q.Get("offer")),
		Available:  parseTriState(q.Get("available")),
		Sort:       q.Get("sort"),
		Order:      q.Get("order"),
		Limit:      parseIntOr(q.Get("limit"), 0),
		Offset:     parseIntOr(q.Get("startIndex"), 0),
	}
}

func parseTriState(raw string) *bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}

func parseIntOr(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return def
	}
	return n
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}
