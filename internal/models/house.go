package models

import (
	"fmt"
	"strings"
	"time"
)

// Listing transaction types as stored. The store only ever holds the
// canonical English values; Portuguese aliases from older clients are
// normalized on the way in.
const (
	TypeSale = "sale"
	TypeRent = "rent"
	TypeAll  = "all"
)

// typeAliases is the single localized-to-canonical mapping. Both the write
// path and the search filter go through it.
var typeAliases = map[string]string{
	"sale":     TypeSale,
	"venda":    TypeSale,
	"vender":   TypeSale,
	"rent":     TypeRent,
	"renda":    TypeRent,
	"arrendar": TypeRent,
	"all":      TypeAll,
	"todos":    TypeAll,
}

// ParseListingType normalizes a transaction type for the write path, where
// only sale or rent is acceptable.
func ParseListingType(raw string) (string, error) {
	canonical, ok := typeAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok || canonical == TypeAll {
		return "", fmt.Errorf("invalid listing type %q", raw)
	}
	return canonical, nil
}

// NormalizeTypeFilter maps a type query parameter to all/sale/rent.
// Empty or unrecognized input means no constraint.
func NormalizeTypeFilter(raw string) string {
	canonical, ok := typeAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return TypeAll
	}
	return canonical
}

// House is a property listing.
type House struct {
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"userRef"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Address       string    `json:"address,omitempty"`
	Category      string    `json:"category,omitempty"`
	RegularPrice  float64   `json:"regularPrice"`
	DiscountPrice float64   `json:"discountPrice"`
	Bathroom      int       `json:"bathroom"`
	Bedroom       int       `json:"bedroom"`
	Kitchen       int       `json:"kitchen"`
	LivingRoom    int       `json:"livingRoom"`
	Parking       bool      `json:"parking"`
	Available     bool      `json:"available"`
	Type          string    `json:"type"`
	Offer         bool      `json:"offer"`
	ImageURLs     []string  `json:"imageUrls"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidatePricing enforces the offer rule: a discounted listing must be
// strictly cheaper than its regular price. Violations are rejected at write
// time, never silently corrected.
func (h House) ValidatePricing() error {
	if h.RegularPrice < 0 || h.DiscountPrice < 0 {
		return fmt.Errorf("prices must be non-negative")
	}
	if h.Offer && h.DiscountPrice >= h.RegularPrice {
		return fmt.Errorf("discount price must be lower than regular price")
	}
	return nil
}
