package postgres

import (
	"fmt"
	"strings"

	"github.com/ali-azimo/house-aj/internal/models"
	"github.com/ali-azimo/house-aj/internal/storage"
)

const (
	defaultSort  = "created_at"
	defaultLimit = 9
	maxLimit     = 100
)

// sortColumns is the identifier allow-list. Anything outside it falls back to
// created_at; filter input never reaches the ORDER BY clause verbatim.
var sortColumns = map[string]string{
	"created_at":     "created_at",
	"createdAt":      "created_at",
	"regularPrice":   "regular_price",
	"regular_price":  "regular_price",
	"discountPrice":  "discount_price",
	"discount_price": "discount_price",
}

// buildSearchQuery compiles a filter into a parameterized SELECT. Every
// client-supplied value is bound as a parameter; the sort column and
// direction come from allow-lists only. Ties on the sort column break on id
// so identical inputs always produce the same ordering.
func buildSearchQuery(f storage.HouseFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + houseColumns + ` FROM houses WHERE 1=1`)
	var args []any

	if term := strings.TrimSpace(f.SearchTerm); term != "" {
		args = append(args, "%"+term+"%")
		fmt.Fprintf(&sb, " AND (name ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}
	if f.Type == models.TypeSale || f.Type == models.TypeRent {
		args = append(args, f.Type)
		fmt.Fprintf(&sb, " AND type = $%d", len(args))
	}
	for _, flag := range []struct {
		column string
		value  *bool
	}{
		{"parking", f.Parking},
		{"offer", f.Offer},
		{"available", f.Available},
	} {
		if flag.value == nil {
			continue
		}
		args = append(args, *flag.value)
		fmt.Fprintf(&sb, " AND %s = $%d", flag.column, len(args))
	}

	column, ok := sortColumns[f.Sort]
	if !ok {
		column = defaultSort
	}
	direction := "DESC"
	if strings.EqualFold(f.Order, "asc") {
		direction = "ASC"
	}
	fmt.Fprintf(&sb, " ORDER BY %s %s, id %s", column, direction, direction)

	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	args = append(args, offset)
	fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	sb.WriteString(";")

	return sb.String(), args
}
