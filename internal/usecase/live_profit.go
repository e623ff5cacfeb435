package usecase

import (
	"sync"
	"time"

	"github.com/tyrexapp/tyrex_client/internal/domain"
)

const secondsPerYear = 365 * 24 * 3600

// defaultProfitInterval keeps the counter animation smooth without burning
// CPU. 10 updates per second is plenty for rolling digits.
const defaultProfitInterval = 100 * time.Millisecond

// ProfitTicker produces a smoothly increasing display value for one card's
// accrued profit between two server-confirmed values. It is purely a
// presentation smoother: the extrapolated number never feeds back into the
// store, and every new server baseline fully overrides it.
//
// Each visible active card owns its own ProfitTicker; instances share no
// state. Start begins emitting on a short fixed interval, Stop cancels the
// timer. Callers must Stop the ticker when the card leaves the screen.
type ProfitTicker struct {
	mu          sync.Mutex
	nominalSats int64
	apy         float64
	btcPrice    float64
	status      domain.CardStatus
	baseline    float64
	baselineAt  time.Time

	interval time.Duration
	timeNow  func() time.Time // For testing
	onUpdate func(usd float64)
	stopCh   chan struct{}
}

func NewProfitTicker(onUpdate func(usd float64)) *ProfitTicker {
	return &ProfitTicker{
		interval: defaultProfitInterval,
		timeNow:  time.Now,
		onUpdate: onUpdate,
	}
}

// SetInputs re-supplies the card fields the accrual rate is derived from.
// Call it whenever the card's status, APY or the BTC price changes.
func (p *ProfitTicker) SetInputs(nominalSats int64, apy, btcPrice float64, status domain.CardStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nominalSats = nominalSats
	p.apy = apy
	p.btcPrice = btcPrice
	p.status = status
}

// SetBaseline anchors extrapolation to a fresh server-confirmed profit value
// and immediately emits it, so a server sync never shows as a jump backwards
// mid-frame.
func (p *ProfitTicker) SetBaseline(profitUSD float64) {
	p.mu.Lock()
	p.baseline = profitUSD
	p.baselineAt = p.timeNow()
	emit := p.onUpdate
	p.mu.Unlock()

	if emit != nil {
		emit(profitUSD)
	}
}

// DisplayValue is the number to render right now. Non-Active cards are pinned
// to the baseline; Active cards accrue linearly at the card's per-second USD
// rate since the baseline was set.
func (p *ProfitTicker) DisplayValue() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.status != domain.StatusActive {
		return p.baseline
	}

	elapsed := p.timeNow().Sub(p.baselineAt).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	return p.baseline + elapsed*p.usdPerSecondLocked()
}

// usdPerSecondLocked converts the card's APY into a USD accrual rate.
// Zero APY, price or nominal all degrade to a zero rate; there is no division
// by any of them, so no edge case can blow up.
func (p *ProfitTicker) usdPerSecondLocked() float64 {
	if p.nominalSats <= 0 || p.apy <= 0 || p.btcPrice <= 0 {
		return 0
	}
	annualSatsProfit := float64(p.nominalSats) * (p.apy / 100)
	satsPerSecond := annualSatsProfit / secondsPerYear
	return satsPerSecond / float64(domain.SatsPerBTC) * p.btcPrice
}

// Start begins emitting DisplayValue on the ticker interval. Starting an
// already running ticker is a no-op.
func (p *ProfitTicker) Start() {
	p.mu.Lock()
	if p.stopCh != nil {
		p.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	p.stopCh = stop
	p.mu.Unlock()

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if p.onUpdate != nil {
					p.onUpdate(p.DisplayValue())
				}
			case <-stop:
				return
			}
		}
	}()
}

// Stop cancels the emit timer. Safe to call multiple times.
func (p *ProfitTicker) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopCh != nil {
		close(p.stopCh)
		p.stopCh = nil
	}
}
