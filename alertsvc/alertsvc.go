// Package alertsvc talks to the price-alert backend. The backend owns the
// alert records and fires the push notifications; this client only reads the
// registered alerts back so the engine can reconcile them into the coin set.
package alertsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/artkachenko/wenmoon"
)

// DefaultBaseURL is the production alert service root.
const DefaultBaseURL = "https://alerts.wenmoon.app/api/v1"

// Client talks to the alert service.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different service root. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// New creates an alert service client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// alertRecord is one row of the /alerts response.
type alertRecord struct {
	ID          string  `json:"id"`
	CoinID      string  `json:"coinId"`
	Symbol      string  `json:"symbol"`
	TargetPrice float64 `json:"targetPrice"`
	Direction   string  `json:"direction"` // "above" or "below"
	Active      bool    `json:"active"`
}

func (r alertRecord) alert() wenmoon.PriceAlert {
	direction := wenmoon.Above
	if r.Direction == string(wenmoon.Below) {
		direction = wenmoon.Below
	}
	return wenmoon.PriceAlert{
		ID:          r.ID,
		CoinID:      r.CoinID,
		Symbol:      r.Symbol,
		TargetPrice: wenmoon.USD(r.TargetPrice),
		Direction:   direction,
		Active:      r.Active,
	}
}

// FetchAlerts implements the wenmoon.AlertProvider interface. It returns
// every alert registered for this device, the full list the engine
// reconciles against.
func (c *Client) FetchAlerts(ctx context.Context, authToken, deviceToken string) ([]wenmoon.PriceAlert, error) {
	query := url.Values{}
	query.Set("deviceToken", deviceToken)
	addr := c.baseURL + "/alerts?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching alerts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot fetch alerts: %v", resp.Status)
	}

	var records []alertRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("error decoding alerts: %w", err)
	}
	alerts := make([]wenmoon.PriceAlert, 0, len(records))
	for _, r := range records {
		alerts = append(alerts, r.alert())
	}
	return alerts, nil
}

// RegisterAlert creates a new alert on the backend. The returned alert
// carries the server-assigned identity.
func (c *Client) RegisterAlert(ctx context.Context, authToken, deviceToken string, alert wenmoon.PriceAlert) (wenmoon.PriceAlert, error) {
	payload := alertRecord{
		ID:          alert.ID,
		CoinID:      alert.CoinID,
		Symbol:      alert.Symbol,
		TargetPrice: alert.TargetPrice.Decimal().InexactFloat64(),
		Direction:   string(alert.Direction),
		Active:      alert.Active,
	}
	body, err := json.Marshal(struct {
		alertRecord
		DeviceToken string `json:"deviceToken"`
	}{payload, deviceToken})
	if err != nil {
		return wenmoon.PriceAlert{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/alerts", bytes.NewReader(body))
	if err != nil {
		return wenmoon.PriceAlert{}, err
	}
	req.Header.Set("Authorization", "Bearer "+authToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return wenmoon.PriceAlert{}, fmt.Errorf("error registering alert: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return wenmoon.PriceAlert{}, fmt.Errorf("cannot register alert: %v", resp.Status)
	}

	var created alertRecord
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return wenmoon.PriceAlert{}, fmt.Errorf("error decoding registered alert: %w", err)
	}
	return created.alert(), nil
}

// DeleteAlert removes an alert from the backend.
func (c *Client) DeleteAlert(ctx context.Context, authToken, alertID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/alerts/"+url.PathEscape(alertID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error deleting alert %q: %w", alertID, err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("cannot delete alert %q: %v", alertID, resp.Status)
	}
	return nil
}
