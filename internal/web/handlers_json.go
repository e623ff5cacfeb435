package web

import (
	"encoding/json"
	"net/http"

	"github.com/tyrexapp/tyrex_client/internal/domain"
	"go.uber.org/zap"
)

type stateView struct {
	BTCPrice string                  `json:"btc_price"`
	Balance  domain.Balance          `json:"balance"`
	Cards    []domain.Card           `json:"cards"`
	Market   []domain.MarketCardType `json:"market_card_types"`
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"status":    "ok",
		"btc_price": s.store.BTCPrice().String(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, stateView{
		BTCPrice: s.store.BTCPrice().String(),
		Balance:  s.store.Balance(),
		Cards:    s.store.Cards(),
		Market:   s.store.MarketCardTypes(),
	})
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.store.Balance())
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.store.Cards())
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.store.MarketCardTypes())
}
