package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ali-azimo/house-aj/internal/auth"
	"github.com/ali-azimo/house-aj/internal/models"
)

func newLikesMux(likes *fakeLikeStore, tokens *auth.TokenManager) *http.ServeMux {
	h := NewLikeHandler(likes)
	mux := http.NewServeMux()
	mux.Handle("POST /likes/toggle", withIdentity(tokens, h.Toggle))
	mux.HandleFunc("GET /likes/count/{houseId}", h.Count)
	mux.Handle("GET /likes/check/{houseId}", withIdentity(tokens, h.Check))
	return mux
}

func likedFromBody(t *testing.T, body []byte) bool {
	t.Helper()
	var env struct {
		Data struct {
			Liked bool `json:"liked"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	return env.Data.Liked
}

func TestToggleLikeParity(t *testing.T) {
	houses := newFakeHouseStore()
	likes := newFakeLikeStore(houses)
	tokens := newTestTokens()
	mux := newLikesMux(likes, tokens)

	_, err := houses.CreateHouse(t.Context(), models.House{OwnerID: 1, Name: "casa", Type: models.TypeSale})
	require.NoError(t, err)

	token := mustToken(t, tokens, 5, models.RoleUser)

	// Starting from "not liked": odd toggles end liked, even toggles end not
	// liked.
	for i := 1; i <= 5; i++ {
		rec := doJSON(t, mux, http.MethodPost, "/likes/toggle", token, map[string]int64{"houseId": 1})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, i%2 == 1, likedFromBody(t, rec.Body.Bytes()), "toggle #%d", i)
	}

	rec := doJSON(t, mux, http.MethodGet, "/likes/check/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, likedFromBody(t, rec.Body.Bytes()))
}

func TestToggleLikeRequiresAuth(t *testing.T) {
	houses := newFakeHouseStore()
	mux := newLikesMux(newFakeLikeStore(houses), newTestTokens())

	rec := doJSON(t, mux, http.MethodPost, "/likes/toggle", "", map[string]int64{"houseId": 1})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestToggleLikeMissingHouse(t *testing.T) {
	houses := newFakeHouseStore()
	tokens := newTestTokens()
	mux := newLikesMux(newFakeLikeStore(houses), tokens)
	token := mustToken(t, tokens, 5, models.RoleUser)

	rec := doJSON(t, mux, http.MethodPost, "/likes/toggle", token, map[string]int64{"houseId": 42})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCountLikesNeverNegative(t *testing.T) {
	houses := newFakeHouseStore()
	likes := newFakeLikeStore(houses)
	tokens := newTestTokens()
	mux := newLikesMux(likes, tokens)

	_, err := houses.CreateHouse(t.Context(), models.House{OwnerID: 1, Name: "casa", Type: models.TypeSale})
	require.NoError(t, err)

	countOf := func() int64 {
		rec := doJSON(t, mux, http.MethodGet, "/likes/count/1", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var env struct {
			Data struct {
				Likes int64 `json:"likes"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		return env.Data.Likes
	}

	assert.Equal(t, int64(0), countOf())

	alice := mustToken(t, tokens, 5, models.RoleUser)
	bob := mustToken(t, tokens, 6, models.RoleUser)
	body := map[string]int64{"houseId": 1}

	doJSON(t, mux, http.MethodPost, "/likes/toggle", alice, body)
	doJSON(t, mux, http.MethodPost, "/likes/toggle", bob, body)
	assert.Equal(t, int64(2), countOf())

	// Toggling off twice in a row cannot push the count below zero.
	doJSON(t, mux, http.MethodPost, "/likes/toggle", alice, body)
	doJSON(t, mux, http.MethodPost, "/likes/toggle", alice, body)
	doJSON(t, mux, http.MethodPost, "/likes/toggle", alice, body)
	assert.Equal(t, int64(1), countOf())
	assert.GreaterOrEqual(t, countOf(), int64(0))
}
