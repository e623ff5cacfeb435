package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SatsPerBTC is the number of satoshis in one bitcoin.
const SatsPerBTC int64 = 100_000_000

var satsPerBTCDec = decimal.NewFromInt(SatsPerBTC)

// SatsToBTC converts a satoshi quantity to fractional BTC.
func SatsToBTC(sats int64) decimal.Decimal {
	return decimal.NewFromInt(sats).Div(satsPerBTCDec)
}

// SatsToUSD converts a satoshi quantity to USD at the given BTC price.
func SatsToUSD(sats int64, btcPrice decimal.Decimal) decimal.Decimal {
	return SatsToBTC(sats).Mul(btcPrice)
}

// CardStatus is the lifecycle state of a mining card. The set is closed on
// the backend; unrecognized values are carried through verbatim so aggregate
// computation can still run over them.
type CardStatus string

const (
	StatusInactive CardStatus = "Inactive"
	StatusActive   CardStatus = "Active"
	StatusCooling  CardStatus = "Cooling"
	StatusFinished CardStatus = "Finished"
	StatusOnSale   CardStatus = "OnSale"
)

// Known reports whether the status is one the client understands.
func (s CardStatus) Known() bool {
	switch s {
	case StatusInactive, StatusActive, StatusCooling, StatusFinished, StatusOnSale:
		return true
	}
	return false
}

// Card is one owned mining NFT, normalized from a profile snapshot.
type Card struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	ImageURL         string          `json:"image_url"`
	SerialNumber     int64           `json:"serial_number"`
	NominalSats      int64           `json:"nominal_sats"`
	NominalBTC       decimal.Decimal `json:"nominal_btc"`
	PurchasePriceUSD decimal.Decimal `json:"purchase_price_usd"`
	ClientAPY        float64         `json:"client_apy"`
	ReferralAPY      float64         `json:"referral_apy"`
	Status           CardStatus      `json:"status"`
	CurrentProfitUSD decimal.Decimal `json:"current_profit_usd"`
	BoughtAt         time.Time       `json:"bought_at"`
	UnlockAt         *time.Time      `json:"unlock_at,omitempty"`
	// ListingPriceUSD is only meaningful while Status is OnSale.
	ListingPriceUSD decimal.Decimal `json:"listing_price_usd"`
}

// Balance is the singleton money aggregate. It is recomputed in full on every
// profile snapshot, never patched field by field.
type Balance struct {
	WalletUSD            decimal.Decimal `json:"wallet_usd"`
	WalletSats           int64           `json:"wallet_sats"`
	ReferralSats         int64           `json:"referral_sats"`
	StakingBTC           decimal.Decimal `json:"staking_btc"`
	TotalBTC             decimal.Decimal `json:"total_btc"`
	TotalProfitUSD       decimal.Decimal `json:"total_profit_usd"`
	PendingWithdrawalUSD decimal.Decimal `json:"pending_withdrawal_usd"`
}

// ReferralUSD is the referral sub-balance converted at the given BTC price.
func (b Balance) ReferralUSD(btcPrice decimal.Decimal) decimal.Decimal {
	return SatsToUSD(b.ReferralSats, btcPrice)
}

// WalletSatsUSD is the wallet satoshi sub-balance converted at the given BTC price.
func (b Balance) WalletSatsUSD(btcPrice decimal.Decimal) decimal.Decimal {
	return SatsToUSD(b.WalletSats, btcPrice)
}

// MarketCardType is one purchasable collection in the marketplace, normalized
// from a market snapshot. PriceUSDT is re-derived on every price tick.
type MarketCardType struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	ImageURL          string          `json:"image_url"`
	NominalSats       int64           `json:"nominal_sats"`
	NominalBTC        decimal.Decimal `json:"nominal_btc"`
	NominalBTCDisplay string          `json:"nominal_btc_display"`
	PriceUSDT         decimal.Decimal `json:"price_usdt"`
	ClientAPY         string          `json:"client_apy"`
	ReferralAPY       string          `json:"referral_apy"`
	Available         int64           `json:"available"`
	MaxSupply         int64           `json:"max_supply"`
	IsAvailable       bool            `json:"is_available"`
}
