package domain

import (
	"encoding/json"

	"github.com/tyrexapp/tyrex_client/internal/numval"
)

// RawCardTypeRef is the cardTypeId field of a card record. The backend sends
// either a bare ObjectID string (unresolved reference) or the embedded card
// type document. A bare string yields an unresolved ref with zero APYs.
type RawCardTypeRef struct {
	ID          string
	Name        string
	ClientAPY   numval.Value
	ReferralAPY numval.Value
	ImageURL    string
	Resolved    bool
}

func (r *RawCardTypeRef) UnmarshalJSON(data []byte) error {
	*r = RawCardTypeRef{}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err == nil {
			r.ID = id
		}
		return nil
	}

	var obj struct {
		ID          string       `json:"_id"`
		Name        string       `json:"name"`
		ClientAPY   numval.Value `json:"clientAPY"`
		ReferralAPY numval.Value `json:"referralAPY"`
		ImageURL    string       `json:"imageUrl"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	r.ID = obj.ID
	r.Name = obj.Name
	r.ClientAPY = obj.ClientAPY
	r.ReferralAPY = obj.ReferralAPY
	r.ImageURL = obj.ImageURL
	r.Resolved = true
	return nil
}

// RawCard is one card record exactly as the backend sends it.
type RawCard struct {
	ID               string         `json:"_id"`
	CardType         RawCardTypeRef `json:"cardTypeId"`
	NominalSats      numval.Value   `json:"nominalSats"`
	PurchasePriceUSD numval.Value   `json:"purchasePriceUsd"`
	Status           string         `json:"status"`
	CreatedAt        string         `json:"createdAt"`
	CurrentProfitUSD numval.Value   `json:"currentProfitUsd"`
	UnlockAt         string         `json:"unlockAt,omitempty"`
	SerialNumber     numval.Value   `json:"serialNumber"`
	ImageURL         string         `json:"imageUrl"`
	ListingPriceUSD  numval.Value   `json:"listingPriceUsd"`
}

// RawBalance is the balance sub-object of a profile snapshot.
type RawBalance struct {
	WalletUSD            numval.Value `json:"walletUsd"`
	WalletSats           numval.Value `json:"walletSats"`
	ReferralSats         numval.Value `json:"referralSats"`
	PendingWithdrawalUSD numval.Value `json:"pendingWithdrawalUsd"`
	TotalProfitUSD       numval.Value `json:"totalProfitUsd"`
}

// RawUserProfile is the full /user/me payload.
type RawUserProfile struct {
	Balance RawBalance `json:"balance"`
	Cards   []RawCard  `json:"cards"`
}

// RawCardType is one /cards/types listing. Some backend revisions use "_id",
// others "id".
type RawCardType struct {
	ID          string       `json:"_id"`
	AltID       string       `json:"id"`
	Name        string       `json:"name"`
	ImageURL    string       `json:"imageUrl"`
	NominalSats numval.Value `json:"nominalSats"`
	PriceUSDT   numval.Value `json:"priceUSDT"`
	ClientAPY   numval.Value `json:"clientAPY"`
	ReferralAPY numval.Value `json:"referralAPY"`
	Available   numval.Value `json:"available"`
	MaxSupply   numval.Value `json:"maxSupply"`
	IsActive    bool         `json:"isActive"`
}
