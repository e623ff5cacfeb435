package pricefeed

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// BinanceWSURL streams every BTCUSDT trade; we use the trade price as the
	// BTC/USD tick.
	BinanceWSURL = "wss://stream.binance.com:9443/ws/btcusdt@trade"

	readDeadline = 120 * time.Second
)

// BinanceFeed is a persistent WebSocket BTC/USD price source. It reconnects
// indefinitely with exponential backoff until Close is called and fans each
// tick out to the registered callbacks.
type BinanceFeed struct {
	wsURL  string
	logger *zap.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	callbacks []func(price float64)
	closed    chan struct{}
	closeOnce sync.Once
}

func NewBinanceFeed(wsURL string, logger *zap.Logger) *BinanceFeed {
	if wsURL == "" {
		wsURL = BinanceWSURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BinanceFeed{
		wsURL:  wsURL,
		logger: logger,
		closed: make(chan struct{}),
	}
}

// OnPriceUpdate registers a callback invoked for every tick. Register before
// Connect.
func (f *BinanceFeed) OnPriceUpdate(callback func(price float64)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callbacks = append(f.callbacks, callback)
}

// Connect dials the stream and starts the read/reconnect loop. The first dial
// failure is returned so startup problems surface immediately; later
// disconnects are retried in the background.
func (f *BinanceFeed) Connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial price feed: %w", err)
	}

	f.mu.Lock()
	f.conn = conn
	f.mu.Unlock()

	go f.run(conn)
	return nil
}

// Close stops the feed permanently.
func (f *BinanceFeed) Close() error {
	f.closeOnce.Do(func() { close(f.closed) })

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn != nil {
		err := f.conn.Close()
		f.conn = nil
		return err
	}
	return nil
}

func (f *BinanceFeed) run(conn *websocket.Conn) {
	retries := 0
	for {
		err := f.readLoop(conn)

		select {
		case <-f.closed:
			return
		default:
		}

		delay := CalculateBackoff(retries)
		retries++
		f.logger.Warn("Price feed disconnected, reconnecting",
			zap.Error(err), zap.Duration("backoff", delay))

		select {
		case <-time.After(delay):
		case <-f.closed:
			return
		}

		next, _, dialErr := websocket.DefaultDialer.Dial(f.wsURL, nil)
		if dialErr != nil {
			f.logger.Warn("Price feed reconnect failed", zap.Error(dialErr))
			conn = nil
			continue
		}

		f.mu.Lock()
		f.conn = next
		f.mu.Unlock()
		conn = next
		retries = 0
	}
}

func (f *BinanceFeed) readLoop(conn *websocket.Conn) error {
	if conn == nil {
		return fmt.Errorf("no connection")
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(10*time.Second))
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		conn.SetReadDeadline(time.Now().Add(readDeadline))

		price, err := ParseTradePrice(message)
		if err != nil {
			f.logger.Debug("Skipping unparsable feed message", zap.Error(err))
			continue
		}
		if price <= 0 {
			continue
		}

		f.mu.Lock()
		callbacks := make([]func(float64), len(f.callbacks))
		copy(callbacks, f.callbacks)
		f.mu.Unlock()

		for _, cb := range callbacks {
			cb(price)
		}
	}
}

// ParseTradePrice extracts the trade price from a Binance trade-stream
// message ({"e":"trade","p":"97123.45",...}).
func ParseTradePrice(message []byte) (float64, error) {
	var event struct {
		EventType string `json:"e"`
		Price     string `json:"p"`
	}
	if err := json.Unmarshal(message, &event); err != nil {
		return 0, err
	}
	if event.Price == "" {
		return 0, fmt.Errorf("no price in %q event", event.EventType)
	}
	return strconv.ParseFloat(event.Price, 64)
}
