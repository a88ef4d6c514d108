package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ali-azimo/house-aj/internal/models"
	"github.com/ali-azimo/house-aj/internal/storage"
)

const houseColumns = `id, owner_id, name, description, address, category,
	regular_price, discount_price, bathroom, bedroom, kitchen, living_room,
	parking, available, type, offer, image_urls, created_at, updated_at`

// CreateHouse inserts a listing and returns the stored row.
func (s *Store) CreateHouse(ctx context.Context, house models.House) (models.House, error) {
	const query = `
		INSERT INTO houses (owner_id, name, description, address, category,
			regular_price, discount_price, bathroom, bedroom, kitchen, living_room,
			parking, available, type, offer, image_urls)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + houseColumns + `;`
	row := s.pool.QueryRow(ctx, query,
		house.OwnerID, house.Name, house.Description, house.Address, house.Category,
		house.RegularPrice, house.DiscountPrice, house.Bathroom, house.Bedroom,
		house.Kitchen, house.LivingRoom, house.Parking, house.Available,
		house.Type, house.Offer, house.ImageURLs)
	return scanHouse(row)
}

// GetHouse fetches a listing by id.
func (s *Store) GetHouse(ctx context.Context, id int64) (models.House, error) {
	const query = `SELECT ` + houseColumns + ` FROM houses WHERE id = $1;`
	return scanHouse(s.pool.QueryRow(ctx, query, id))
}

// UpdateHouse rewrites the mutable fields of a listing. The caller decides
// permission; concurrent writers are ordered by the row lock alone.
func (s *Store) UpdateHouse(ctx context.Context, house models.House) error {
	const query = `
		UPDATE houses SET name = $1, description = $2, address = $3, category = $4,
			regular_price = $5, discount_price = $6, bathroom = $7, bedroom = $8,
			kitchen = $9, living_room = $10, parking = $11, available = $12,
			type = $13, offer = $14, image_urls = $15, updated_at = NOW()
		WHERE id = $16;`
	tag, err := s.pool.Exec(ctx, query,
		house.Name, house.Description, house.Address, house.Category,
		house.RegularPrice, house.DiscountPrice, house.Bathroom, house.Bedroom,
		house.Kitchen, house.LivingRoom, house.Parking, house.Available,
		house.Type, house.Offer, house.ImageURLs, house.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteHouse removes a listing.
func (s *Store) DeleteHouse(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM houses WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SearchHouses runs the compiled filter query. An empty result is a success.
func (s *Store) SearchHouses(ctx context.Context, filter storage.HouseFilter) ([]models.House, error) {
	query, args := buildSearchQuery(filter)
	return s.queryHouses(ctx, query, args...)
}

// ListByOwner returns one account's listings, newest first.
func (s *Store) ListByOwner(ctx context.Context, ownerID int64) ([]models.House, error) {
	const query = `SELECT ` + houseColumns + ` FROM houses
		WHERE owner_id = $1 ORDER BY created_at DESC, id DESC;`
	return s.queryHouses(ctx, query, ownerID)
}

// FindSimilar returns listings related to the current one using a three-tier
// fallback: same category when the listing has one, otherwise same
// transaction type, otherwise matching bedroom and bathroom counts.
func (s *Store) FindSimilar(ctx context.Context, current models.House, limit int) ([]models.House, error) {
	var (
		where string
		args  []any
	)
	switch {
	case current.Category != "":
		where = `id <> $1 AND category = $2`
		args = []any{current.ID, current.Category}
	case current.Type != "":
		where = `id <> $1 AND type = $2`
		args = []any{current.ID, current.Type}
	default:
		where = `id <> $1 AND bedroom = $2 AND bathroom = $3`
		args = []any{current.ID, current.Bedroom, current.Bathroom}
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT %s FROM houses WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d;`,
		houseColumns, where, len(args))
	return s.queryHouses(ctx, query, args...)
}

func (s *Store) queryHouses(ctx context.Context, query string, args ...any) ([]models.House, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	houses := []models.House{}
	for rows.Next() {
		house, err := scanHouse(rows)
		if err != nil {
			return nil, err
		}
		houses = append(houses, house)
	}
	return houses, rows.Err()
}

func scanHouse(row pgx.Row) (models.House, error) {
	var h models.House
	if err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Description, &h.Address, &h.Category,
		&h.RegularPrice, &h.DiscountPrice, &h.Bathroom, &h.Bedroom, &h.Kitchen, &h.LivingRoom,
		&h.Parking, &h.Available, &h.Type, &h.Offer, &h.ImageURLs, &h.CreatedAt, &h.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.House{}, storage.ErrNotFound
		}
		return models.House{}, err
	}
	if h.ImageURLs == nil {
		h.ImageURLs = []string{}
	}
	return h, nil
}
