package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"user", "customer", "admin"} {
		role, err := ParseRole(raw)
		require.NoError(t, err)
		assert.Equal(t, Role(raw), role)
	}

	for _, raw := range []string{"", "root", "Admin", "superuser"} {
		_, err := ParseRole(raw)
		assert.Error(t, err, "role %q must not parse", raw)
	}
}

func TestParseListingType(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"sale", TypeSale},
		{"venda", TypeSale},
		{"VENDA", TypeSale},
		{"rent", TypeRent},
		{"renda", TypeRent},
		{"arrendar", TypeRent},
		{" rent ", TypeRent},
	}
	for _, tt := range tests {
		got, err := ParseListingType(tt.raw)
		require.NoError(t, err, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
	}

	for _, raw := range []string{"", "all", "todos", "lease", "vendas"} {
		_, err := ParseListingType(raw)
		assert.Error(t, err, "type %q must not be writable", raw)
	}
}

func TestNormalizeTypeFilter(t *testing.T) {
	assert.Equal(t, TypeSale, NormalizeTypeFilter("venda"))
	assert.Equal(t, TypeRent, NormalizeTypeFilter("renda"))
	assert.Equal(t, TypeAll, NormalizeTypeFilter("todos"))
	assert.Equal(t, TypeAll, NormalizeTypeFilter(""))
	assert.Equal(t, TypeAll, NormalizeTypeFilter("garbage"))
}

func TestValidatePricing(t *testing.T) {
	base := House{RegularPrice: 1000, DiscountPrice: 800}

	assert.NoError(t, base.ValidatePricing())

	withOffer := base
	withOffer.Offer = true
	assert.NoError(t, withOffer.ValidatePricing())

	equalPrices := withOffer
	equalPrices.DiscountPrice = 1000
	assert.Error(t, equalPrices.ValidatePricing(), "discount equal to regular must be rejected")

	higher := withOffer
	higher.DiscountPrice = 1200
	assert.Error(t, higher.ValidatePricing())

	// Without the offer flag the discount value is not constrained.
	noOffer := base
	noOffer.DiscountPrice = 1200
	assert.NoError(t, noOffer.ValidatePricing())

	negative := House{RegularPrice: -1}
	assert.Error(t, negative.ValidatePricing())
}
