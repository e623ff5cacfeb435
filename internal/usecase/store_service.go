package usecase

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tyrexapp/tyrex_client/internal/domain"
	"go.uber.org/zap"
)

// StoreService is the single in-memory source of truth for everything the UI
// renders about money, cards and the marketplace. It is a pure reducer over
// externally sourced snapshots and price ticks and performs no I/O itself.
// All mutations go through one mutex; readers always get a fully consistent
// copy, never a partially updated one.
type StoreService struct {
	mu       sync.Mutex
	btcPrice decimal.Decimal
	balance  domain.Balance
	cards    []domain.Card
	market   []domain.MarketCardType

	logger *zap.Logger
}

func NewStoreService(logger *zap.Logger) *StoreService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreService{logger: logger}
}

// IngestPriceTick records a new BTC/USD price and re-derives every market
// listing's USDT price from it. Non-positive or unchanged prices are no-ops
// so a re-delivered tick causes no redundant work downstream.
func (s *StoreService) IngestPriceTick(price float64) {
	if price <= 0 {
		return
	}
	p := decimal.NewFromFloat(price)

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Equal(s.btcPrice) {
		return
	}
	s.btcPrice = p

	for i := range s.market {
		s.market[i].PriceUSDT = listingPriceUSDT(s.market[i].NominalSats, p)
	}
}

// IngestMarketSnapshot replaces the marketplace listings wholesale. A nil
// slice (failed fetch upstream) leaves the previous listings untouched.
// currentPrice is the caller's best-known price; when it is not positive the
// store's own price is used, and when neither is known the server-provided
// override price is kept.
func (s *StoreService) IngestMarketSnapshot(raw []domain.RawCardType, currentPrice float64) {
	if raw == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	price := s.btcPrice
	if currentPrice > 0 {
		price = decimal.NewFromFloat(currentPrice)
	}

	market := make([]domain.MarketCardType, 0, len(raw))
	for _, t := range raw {
		id := t.ID
		if id == "" {
			id = t.AltID
		}

		nominalSats := t.NominalSats.Int64()
		nominalBTC := domain.SatsToBTC(nominalSats)

		priceUSDT := t.PriceUSDT.Decimal()
		if price.IsPositive() {
			priceUSDT = listingPriceUSDT(nominalSats, price)
		}

		available := t.Available.Int64()
		maxSupply := t.MaxSupply.Int64()
		if maxSupply == 0 {
			maxSupply = 100
		}

		market = append(market, domain.MarketCardType{
			ID:                id,
			Name:              t.Name,
			ImageURL:          t.ImageURL,
			NominalSats:       nominalSats,
			NominalBTC:        nominalBTC,
			NominalBTCDisplay: nominalBTC.StringFixed(8) + " BTC",
			PriceUSDT:         priceUSDT,
			ClientAPY:         fmt.Sprintf("%s%%", t.ClientAPY.Decimal().String()),
			ReferralAPY:       fmt.Sprintf("%s%%", t.ReferralAPY.Decimal().String()),
			Available:         available,
			MaxSupply:         maxSupply,
			IsAvailable:       t.IsActive && available > 0,
		})
	}

	s.market = market
	if currentPrice > 0 {
		s.btcPrice = price
	}
}

// IngestProfileSnapshot replaces the owned card set and recomputes the
// balance aggregate from scratch. A nil profile (failed fetch) is a no-op.
//
// StakingBTC sums nominal BTC of Active cards only. TotalBTC sums nominal BTC
// of every owned card regardless of status, including statuses this client
// does not recognize, so StakingBTC <= TotalBTC holds structurally.
func (s *StoreService) IngestProfileSnapshot(raw *domain.RawUserProfile, currentPrice float64) {
	if raw == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cards := make([]domain.Card, 0, len(raw.Cards))
	staking := decimal.Zero
	total := decimal.Zero

	for _, rc := range raw.Cards {
		c := normalizeCard(rc)
		if !c.Status.Known() {
			s.logger.Warn("Unrecognized card status",
				zap.String("card_id", c.ID),
				zap.String("status", string(c.Status)))
		}
		total = total.Add(c.NominalBTC)
		if c.Status == domain.StatusActive {
			staking = staking.Add(c.NominalBTC)
		}
		cards = append(cards, c)
	}

	s.cards = cards
	s.balance = domain.Balance{
		WalletUSD:            raw.Balance.WalletUSD.Decimal(),
		WalletSats:           raw.Balance.WalletSats.Int64(),
		ReferralSats:         raw.Balance.ReferralSats.Int64(),
		StakingBTC:           staking,
		TotalBTC:             total,
		TotalProfitUSD:       raw.Balance.TotalProfitUSD.Decimal(),
		PendingWithdrawalUSD: raw.Balance.PendingWithdrawalUSD.Decimal(),
	}

	if currentPrice > 0 {
		s.btcPrice = decimal.NewFromFloat(currentPrice)
	}
}

// TickSimulatedAccrual is a reserved extension point for client-side interest
// simulation. It must stay side-effect free and idempotent.
func (s *StoreService) TickSimulatedAccrual() {}

// BTCPrice returns the last ingested BTC/USD price, zero when none has
// arrived yet.
func (s *StoreService) BTCPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.btcPrice
}

// Balance returns the current balance aggregate.
func (s *StoreService) Balance() domain.Balance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// Cards returns a copy of the owned card set.
func (s *StoreService) Cards() []domain.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// MarketCardTypes returns a copy of the marketplace listings.
func (s *StoreService) MarketCardTypes() []domain.MarketCardType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.MarketCardType, len(s.market))
	copy(out, s.market)
	return out
}

// listingPriceUSDT derives a listing's USD price from its face value in sats,
// rounded to whole dollars.
func listingPriceUSDT(nominalSats int64, price decimal.Decimal) decimal.Decimal {
	return domain.SatsToUSD(nominalSats, price).Round(0)
}

func normalizeCard(rc domain.RawCard) domain.Card {
	name := rc.CardType.Name
	clientAPY := 0.0
	referralAPY := 0.0
	imageURL := rc.ImageURL

	if rc.CardType.Resolved {
		if name == "" {
			name = "Unknown"
		}
		clientAPY = rc.CardType.ClientAPY.Float64()
		referralAPY = rc.CardType.ReferralAPY.Float64()
		if imageURL == "" {
			imageURL = rc.CardType.ImageURL
		}
	} else {
		// Bare reference: the backend did not populate the card type.
		name = "Miner"
	}

	nominalSats := rc.NominalSats.Int64()

	var boughtAt time.Time
	if t, err := time.Parse(time.RFC3339, rc.CreatedAt); err == nil {
		boughtAt = t
	}
	var unlockAt *time.Time
	if t, err := time.Parse(time.RFC3339, rc.UnlockAt); err == nil && rc.UnlockAt != "" {
		unlockAt = &t
	}

	return domain.Card{
		ID:               rc.ID,
		Name:             name,
		ImageURL:         imageURL,
		SerialNumber:     rc.SerialNumber.Int64(),
		NominalSats:      nominalSats,
		NominalBTC:       domain.SatsToBTC(nominalSats),
		PurchasePriceUSD: rc.PurchasePriceUSD.Decimal(),
		ClientAPY:        clientAPY,
		ReferralAPY:      referralAPY,
		Status:           domain.CardStatus(rc.Status),
		CurrentProfitUSD: rc.CurrentProfitUSD.Decimal(),
		BoughtAt:         boughtAt,
		UnlockAt:         unlockAt,
		ListingPriceUSD:  rc.ListingPriceUSD.Decimal(),
	}
}
