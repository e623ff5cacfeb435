package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyrexapp/tyrex_client/internal/infrastructure/api"
)

func TestGetProfile_ParsesDecimalShapes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{
			"balance": {"walletUsd": {"$numberDecimal": "123.456"}, "walletSats": "42"},
			"cards": [{"_id": "c1", "cardTypeId": "ref", "nominalSats": 100000000, "status": "Active", "createdAt": "2026-01-01T00:00:00Z"}]
		}`))
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL, "tok-123", nil)
	profile, err := c.GetProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 123.456, profile.Balance.WalletUSD.Float64())
	assert.Equal(t, int64(42), profile.Balance.WalletSats.Int64())
	require.Len(t, profile.Cards, 1)
	assert.False(t, profile.Cards[0].CardType.Resolved)
	assert.Equal(t, int64(100000000), profile.Cards[0].NominalSats.Int64())
}

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "init-data", body["initData"])
			w.Write([]byte(`{"token": "fresh-token"}`))
		case "/cards/types":
			assert.Equal(t, "Bearer fresh-token", r.Header.Get("Authorization"))
			w.Write([]byte(`[{"_id": "t1", "name": "S21", "nominalSats": "100000000", "clientAPY": 12, "available": 3, "isActive": true}]`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL, "", nil)
	token, err := c.Login(context.Background(), "init-data")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)

	types, err := c.GetMarketTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, int64(100000000), types[0].NominalSats.Int64())
	assert.True(t, types[0].IsActive)
}

func TestBuyCard_SurfacesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "Insufficient balance"}`))
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL, "tok", nil)
	err := c.BuyCard(context.Background(), "type-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient balance")
}
