package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/ali-azimo/house-aj/internal/auth"
	"github.com/ali-azimo/house-aj/internal/middleware"
	"github.com/ali-azimo/house-aj/internal/models"
	"github.com/ali-azimo/house-aj/internal/storage"
)

const (
	testSecret = "handler-test-secret"
	testIssuer = "house-aj-test"
)

func newTestTokens() *auth.TokenManager {
	return auth.NewTokenManager(testSecret, testIssuer, time.Hour)
}

// withIdentity wraps a handler func the same way the live routes do.
func withIdentity(tokens *auth.TokenManager, h http.HandlerFunc) http.Handler {
	return middleware.Auth(tokens, h)
}

type fakeUserStore struct {
	nextID int64
	users  map[int64]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: map[int64]models.User{}}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.nextID++
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (f *fakeUserStore) GetUser(_ context.Context, id int64) (models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) ListUsers(_ context.Context) ([]models.User, error) {
	ids := make([]int64, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, f.users[id])
	}
	return users, nil
}

func (f *fakeUserStore) UpdateUser(_ context.Context, id int64, username, email string) error {
	user, ok := f.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	user.Username = username
	user.Email = email
	f.users[id] = user
	return nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeHouseStore struct {
	nextID     int64
	houses     map[int64]models.House
	lastFilter storage.HouseFilter
}

func newFakeHouseStore() *fakeHouseStore {
	return &fakeHouseStore{nextID: 1, houses: map[int64]models.House{}}
}

func (f *fakeHouseStore) CreateHouse(_ context.Context, house models.House) (models.House, error) {
	house.ID = f.nextID
	house.CreatedAt = time.Now()
	house.UpdatedAt = house.CreatedAt
	f.nextID++
	f.houses[house.ID] = house
	return house, nil
}

func (f *fakeHouseStore) GetHouse(_ context.Context, id int64) (models.House, error) {
	house, ok := f.houses[id]
	if !ok {
		return models.House{}, storage.ErrNotFound
	}
	return house, nil
}

func (f *fakeHouseStore) UpdateHouse(_ context.Context, house models.House) error {
	if _, ok := f.houses[house.ID]; !ok {
		return storage.ErrNotFound
	}
	house.UpdatedAt = time.Now()
	f.houses[house.ID] = house
	return nil
}

func (f *fakeHouseStore) DeleteHouse(_ context.Context, id int64) error {
	if _, ok := f.houses[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.houses, id)
	return nil
}

func (f *fakeHouseStore) SearchHouses(_ context.Context, filter storage.HouseFilter) ([]models.House, error) {
	f.lastFilter = filter
	houses := []models.House{}
	for _, house := range f.houses {
		if filter.Type == models.TypeSale || filter.Type == models.TypeRent {
			if house.Type != filter.Type {
				continue
			}
		}
		if filter.Offer != nil && house.Offer != *filter.Offer {
			continue
		}
		houses = append(houses, house)
	}
	sort.Slice(houses, func(i, j int) bool { return houses[i].ID > houses[j].ID })
	return houses, nil
}

func (f *fakeHouseStore) ListByOwner(_ context.Context, ownerID int64) ([]models.House, error) {
	houses := []models.House{}
	for _, house := range f.houses {
		if house.OwnerID == ownerID {
			houses = append(houses, house)
		}
	}
	sort.Slice(houses, func(i, j int) bool { return houses[i].ID > houses[j].ID })
	return houses, nil
}

func (f *fakeHouseStore) FindSimilar(_ context.Context, current models.House, limit int) ([]models.House, error) {
	houses := []models.House{}
	for _, house := range f.houses {
		if house.ID == current.ID {
			continue
		}
		switch {
		case current.Category != "":
			if house.Category != current.Category {
				continue
			}
		case current.Type != "":
			if house.Type != current.Type {
				continue
			}
		default:
			if house.Bedroom != current.Bedroom || house.Bathroom != current.Bathroom {
				continue
			}
		}
		houses = append(houses, house)
		if len(houses) == limit {
			break
		}
	}
	return houses, nil
}

type likeKey struct {
	userID  int64
	houseID int64
}

type fakeLikeStore struct {
	likes  map[likeKey]bool
	houses *fakeHouseStore
}

func newFakeLikeStore(houses *fakeHouseStore) *fakeLikeStore {
	return &fakeLikeStore{likes: map[likeKey]bool{}, houses: houses}
}

func (f *fakeLikeStore) ToggleLike(_ context.Context, userID, houseID int64) (bool, error) {
	if _, ok := f.houses.houses[houseID]; !ok {
		return false, storage.ErrNotFound
	}
	key := likeKey{userID, houseID}
	if f.likes[key] {
		delete(f.likes, key)
		return false, nil
	}
	f.likes[key] = true
	return true, nil
}

func (f *fakeLikeStore) CountLikes(_ context.Context, houseID int64) (int64, error) {
	var count int64
	for key := range f.likes {
		if key.houseID == houseID {
			count++
		}
	}
	return count, nil
}

func (f *fakeLikeStore) HasLiked(_ context.Context, userID, houseID int64) (bool, error) {
	return f.likes[likeKey{userID, houseID}], nil
}
