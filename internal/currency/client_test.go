package currency_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelbook/internal/currency"
)

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/secret/latest/EUR", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","base_code":"EUR","conversion_rates":{"EUR":1,"USD":1.0834}}`))
	}))
	defer srv.Close()

	c := currency.NewClient(srv.URL+"/", "secret", time.Second)
	got, err := c.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.0834", got["USD"].String())
}

func TestClient_Fetch_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":"error","error-type":"invalid-key"}`))
	}))
	defer srv.Close()

	_, err := currency.NewClient(srv.URL, "bad", time.Second).Fetch(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid-key")
}

func TestClient_Fetch_HTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := currency.NewClient(srv.URL, "k", time.Second).Fetch(context.Background())

	assert.Error(t, err)
}

func TestClient_Fetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	_, err := currency.NewClient(srv.URL, "k", 20*time.Millisecond).Fetch(context.Background())

	assert.Error(t, err)
}

func TestClient_Fetch_noKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer srv.Close()

	_, err := currency.NewClient(srv.URL, "", time.Second).Fetch(context.Background())

	require.ErrorIs(t, err, currency.ErrNoAPIKey)
	assert.False(t, called)
}
