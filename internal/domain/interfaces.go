package domain

import "context"

// BackendAPI is the REST surface of the Tyrex backend. Implementations must
// return errors for transport failures; callers decide whether to surface or
// keep the previous state.
type BackendAPI interface {
	Login(ctx context.Context, initData string) (string, error)
	GetProfile(ctx context.Context) (*RawUserProfile, error)
	GetMarketTypes(ctx context.Context) ([]RawCardType, error)
	BuyCard(ctx context.Context, cardTypeID string) error
	StartCard(ctx context.Context, cardID string) error
	StopCard(ctx context.Context, cardID string) error
	RequestWithdrawal(ctx context.Context, amountSats int64, walletAddress string) error
	RequestDeposit(ctx context.Context, amountSats int64, txHash string) error
}

// PriceSource delivers BTC/USD price ticks from a streaming feed.
type PriceSource interface {
	OnPriceUpdate(callback func(price float64))
	Connect() error
	Close() error
}
