package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyrexapp/tyrex_client/internal/domain"
	"github.com/tyrexapp/tyrex_client/internal/numval"
	"github.com/tyrexapp/tyrex_client/internal/usecase"
	"go.uber.org/zap"
)

func newTestServer() *Server {
	store := usecase.NewStoreService(nil)
	store.IngestMarketSnapshot([]domain.RawCardType{{
		ID:          "type-1",
		Name:        "Antminer S21",
		NominalSats: numval.FromInt(100_000_000),
		ClientAPY:   numval.FromInt(12),
		Available:   numval.FromInt(5),
		IsActive:    true,
	}}, 50000)
	return NewServer(0, store, zap.NewNop())
}

func TestHandleState(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var view struct {
		BTCPrice string `json:"btc_price"`
		Market   []struct {
			PriceUSDT   string `json:"price_usdt"`
			IsAvailable bool   `json:"is_available"`
		} `json:"market_card_types"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "50000", view.BTCPrice)
	require.Len(t, view.Market, 1)
	assert.Equal(t, "50000", view.Market[0].PriceUSDT)
	assert.True(t, view.Market[0].IsAvailable)
}

func TestHandleStatus(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "50000", body["btc_price"])
}
