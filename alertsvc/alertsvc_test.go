package alertsvc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/artkachenko/wenmoon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAlerts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alerts", r.URL.Path)
		assert.Equal(t, "Bearer auth-token", r.Header.Get("Authorization"))
		assert.Equal(t, "device-123", r.URL.Query().Get("deviceToken"))
		w.Write([]byte(`[
			{"id":"bitcoin-1","coinId":"bitcoin","symbol":"BTC","targetPrice":70000,"direction":"above","active":true},
			{"id":"ethereum-1","coinId":"ethereum","symbol":"ETH","targetPrice":2500,"direction":"below","active":true}
		]`))
	}))
	defer srv.Close()
	client := New(WithBaseURL(srv.URL))

	alerts, err := client.FetchAlerts(context.Background(), "auth-token", "device-123")
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "bitcoin-1", alerts[0].ID)
	assert.Equal(t, wenmoon.Above, alerts[0].Direction)
	assert.True(t, alerts[0].TargetPrice.Equal(wenmoon.USD(70000)))
	assert.Equal(t, wenmoon.Below, alerts[1].Direction)
}

func TestFetchAlerts_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()
	client := New(WithBaseURL(srv.URL))

	_, err := client.FetchAlerts(context.Background(), "bad-token", "device-123")
	require.Error(t, err)
}

func TestRegisterAlert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "device-123", payload["deviceToken"])
		assert.Equal(t, "bitcoin", payload["coinId"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"srv-42","coinId":"bitcoin","symbol":"BTC","targetPrice":70000,"direction":"above","active":true}`))
	}))
	defer srv.Close()
	client := New(WithBaseURL(srv.URL))

	created, err := client.RegisterAlert(context.Background(), "auth-token", "device-123", wenmoon.PriceAlert{
		CoinID:      "bitcoin",
		Symbol:      "BTC",
		TargetPrice: wenmoon.USD(70000),
		Direction:   wenmoon.Above,
		Active:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-42", created.ID, "server-assigned identity wins")
}

func TestDeleteAlert(t *testing.T) {
	deleted := ""
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		deleted = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()
	client := New(WithBaseURL(srv.URL))

	require.NoError(t, client.DeleteAlert(context.Background(), "auth-token", "bitcoin-1"))
	assert.Equal(t, "/alerts/bitcoin-1", deleted)
}
