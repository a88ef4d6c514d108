package storage

import (
	"context"
	"errors"

	"github.com/ali-azimo/house-aj/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// HouseFilter is the bag of optional search parameters. Zero values mean
// "no constraint"; the tri-state flags use nil for unspecified. The store
// normalizes sort, order, limit, and offset against its allow-lists before
// anything reaches the query, so arbitrary input can never land in an
// identifier position.
type HouseFilter struct {
	SearchTerm string
	Type       string // canonical: all, sale, rent
	Parking    *bool
	Offer      *bool
	Available  *bool
	Sort       string
	Order      string
	Limit      int
	Offset     int
}

// UserStore captures account persistence operations needed by handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, username, email string) error
	DeleteUser(ctx context.Context, id int64) error
}

// HouseStore captures listing persistence operations.
type HouseStore interface {
	CreateHouse(ctx context.Context, house models.House) (models.House, error)
	GetHouse(ctx context.Context, id int64) (models.House, error)
	UpdateHouse(ctx context.Context, house models.House) error
	DeleteHouse(ctx context.Context, id int64) error
	SearchHouses(ctx context.Context, filter HouseFilter) ([]models.House, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.House, error)
	FindSimilar(ctx context.Context, current models.House, limit int) ([]models.House, error)
}

// LikeStore captures the like association operations.
type LikeStore interface {
	ToggleLike(ctx context.Context, userID, houseID int64) (liked bool, err error)
	CountLikes(ctx context.Context, houseID int64) (int64, error)
	HasLiked(ctx context.Context, userID, houseID int64) (bool, error)
}
