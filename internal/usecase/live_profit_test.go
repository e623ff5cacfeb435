package usecase

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tyrexapp/tyrex_client/internal/domain"
)

func TestProfitTicker_PinnedWhenNotActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := NewProfitTicker(nil)
	p.timeNow = func() time.Time { return now }

	p.SetInputs(100_000_000, 36.5, 100000, domain.StatusCooling)
	p.SetBaseline(4.2)

	for i := 0; i < 5; i++ {
		now = now.Add(10 * time.Second)
		assert.Equal(t, 4.2, p.DisplayValue())
	}
}

func TestProfitTicker_MonotonicAccrual(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := NewProfitTicker(nil)
	p.timeNow = func() time.Time { return now }

	p.SetInputs(100_000_000, 36.5, 100000, domain.StatusActive)
	p.SetBaseline(0)

	// 1e8 sats * 36.5% / seconds-per-year / 1e8 * 100000 USD
	wantRate := 100_000_000 * 0.365 / (365.0 * 24 * 3600) / 100_000_000 * 100000

	at0 := p.DisplayValue()
	assert.Equal(t, 0.0, at0)

	prev := at0
	for i := 1; i <= 10; i++ {
		now = now.Add(time.Second)
		v := p.DisplayValue()
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}

	diff := prev - at0
	assert.InDelta(t, 10*wantRate, diff, 1e-9)
}

func TestProfitTicker_BaselineResetOverridesExtrapolation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var emitted []float64
	p := NewProfitTicker(func(usd float64) { emitted = append(emitted, usd) })
	p.timeNow = func() time.Time { return now }

	p.SetInputs(100_000_000, 36.5, 100000, domain.StatusActive)
	p.SetBaseline(1.0)
	now = now.Add(time.Minute)
	assert.Greater(t, p.DisplayValue(), 1.0)

	// A server sync supplies a fresh confirmed value; it fully overrides.
	p.SetBaseline(1.5)
	assert.Equal(t, 1.5, p.DisplayValue())
	assert.Equal(t, []float64{1.0, 1.5}, emitted)
}

func TestProfitTicker_ZeroRateEdgeCases(t *testing.T) {
	cases := []struct {
		name  string
		sats  int64
		apy   float64
		price float64
	}{
		{"zero price", 100_000_000, 36.5, 0},
		{"negative price", 100_000_000, 36.5, -1},
		{"zero apy", 100_000_000, 0, 100000},
		{"zero nominal", 0, 36.5, 100000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			p := NewProfitTicker(nil)
			p.timeNow = func() time.Time { return now }

			p.SetInputs(tc.sats, tc.apy, tc.price, domain.StatusActive)
			p.SetBaseline(2.5)
			now = now.Add(time.Hour)

			v := p.DisplayValue()
			assert.Equal(t, 2.5, v)
			assert.False(t, math.IsNaN(v))
		})
	}
}

func TestProfitTicker_StartStop(t *testing.T) {
	updates := make(chan float64, 64)
	p := NewProfitTicker(func(usd float64) { updates <- usd })
	p.interval = time.Millisecond

	p.SetInputs(100_000_000, 36.5, 100000, domain.StatusActive)
	p.SetBaseline(0)
	<-updates // baseline emit

	p.Start()
	p.Start() // second Start is a no-op

	select {
	case <-updates:
	case <-time.After(time.Second):
		t.Fatal("expected a ticker emit")
	}

	p.Stop()
	p.Stop() // idempotent
}
