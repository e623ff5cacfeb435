package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/tyrexapp/tyrex_client/internal/domain"
	"go.uber.org/zap"
)

// Client talks to the Tyrex backend REST API. It attaches the bearer token
// when one is set and surfaces transport/HTTP failures as errors; deciding
// whether to keep previous state on failure is the caller's job.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	mu    sync.Mutex
	token string
}

func NewClient(baseURL, token string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// SetToken replaces the bearer token, e.g. after Login.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) sendRequest(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("api error (%d): %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("api error (%d): %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Login exchanges Telegram initData for a bearer token and stores it on the
// client.
func (c *Client) Login(ctx context.Context, initData string) (string, error) {
	var result struct {
		Token string `json:"token"`
	}
	payload := map[string]string{"initData": initData}
	if err := c.sendRequest(ctx, http.MethodPost, "/auth/login", payload, &result); err != nil {
		return "", err
	}
	if result.Token == "" {
		return "", fmt.Errorf("login response carried no token")
	}
	c.SetToken(result.Token)
	return result.Token, nil
}

// GetProfile fetches the user's balance and cards snapshot.
func (c *Client) GetProfile(ctx context.Context) (*domain.RawUserProfile, error) {
	var profile domain.RawUserProfile
	if err := c.sendRequest(ctx, http.MethodGet, "/user/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetMarketTypes fetches the purchasable card type listings.
func (c *Client) GetMarketTypes(ctx context.Context) ([]domain.RawCardType, error) {
	var types []domain.RawCardType
	if err := c.sendRequest(ctx, http.MethodGet, "/cards/types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (c *Client) BuyCard(ctx context.Context, cardTypeID string) error {
	payload := map[string]string{"cardTypeId": cardTypeID}
	return c.sendRequest(ctx, http.MethodPost, "/cards/buy", payload, nil)
}

func (c *Client) StartCard(ctx context.Context, cardID string) error {
	return c.sendRequest(ctx, http.MethodPost, "/cards/"+cardID+"/start", nil, nil)
}

func (c *Client) StopCard(ctx context.Context, cardID string) error {
	return c.sendRequest(ctx, http.MethodPost, "/cards/"+cardID+"/stop", nil, nil)
}

func (c *Client) RequestWithdrawal(ctx context.Context, amountSats int64, walletAddress string) error {
	payload := map[string]any{
		"amountSats":    amountSats,
		"walletAddress": walletAddress,
	}
	return c.sendRequest(ctx, http.MethodPost, "/user/withdraw", payload, nil)
}

func (c *Client) RequestDeposit(ctx context.Context, amountSats int64, txHash string) error {
	payload := map[string]any{
		"amountSats": amountSats,
		"txHash":     txHash,
	}
	return c.sendRequest(ctx, http.MethodPost, "/user/deposit", payload, nil)
}
