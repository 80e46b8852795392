package shipsgo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipdesk/backend/internal/domain/tracking"
)

func mustContainerID(t *testing.T) tracking.Identifier {
	t.Helper()
	id, err := tracking.NewContainerIdentifier("MSCU1234567")
	require.NoError(t, err)
	return id
}

func newV2Adapter(t *testing.T, baseURL string) *Adapter {
	t.Helper()
	adapter, err := NewAdapter(&Config{APIKey: "test-key", V2BaseURL: baseURL, Flavor: FlavorV2})
	require.NoError(t, err)
	return adapter
}

func TestNewAdapter(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		adapter, err := NewAdapter(NewConfig("key"))
		require.NoError(t, err)
		assert.NotNil(t, adapter)
	})

	t.Run("invalid config", func(t *testing.T) {
		adapter, err := NewAdapter(&Config{})
		assert.ErrorIs(t, err, ErrConfigMissingAPIKey)
		assert.Nil(t, adapter)
	})
}

func TestAdapter_TrackV2(t *testing.T) {
	t.Run("successful call is normalized", func(t *testing.T) {
		var gotToken, gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotToken = r.Header.Get("X-Shipsgo-User-Token")
			gotQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(v2SamplePayload))
		}))
		defer server.Close()

		adapter := newV2Adapter(t, server.URL)
		result, err := adapter.Track(context.Background(), mustContainerID(t))
		require.NoError(t, err)

		assert.Equal(t, "test-key", gotToken)
		assert.Contains(t, gotQuery, "container_number=MSCU1234567")
		assert.Contains(t, gotQuery, "include_milestones=true")
		assert.Contains(t, gotQuery, "include_map=true")
		assert.Contains(t, gotQuery, "include_route=true")
		assert.True(t, result.Success)
		assert.Equal(t, "MSCU1234567", result.ContainerNumber)
		assert.Len(t, result.Milestones, 2)
	})

	t.Run("bl identifier uses bl query key", func(t *testing.T) {
		var gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			_, _ = w.Write([]byte(`{"containerNumber": "MSCU1234567"}`))
		}))
		defer server.Close()

		id, err := tracking.NewBillOfLadingIdentifier("MAEU-12345678")
		require.NoError(t, err)

		adapter := newV2Adapter(t, server.URL)
		_, err = adapter.Track(context.Background(), id)
		require.NoError(t, err)
		assert.Contains(t, gotQuery, "bl_number=MAEU-12345678")
	})

	t.Run("status classification", func(t *testing.T) {
		tests := []struct {
			status   int
			wantCode string
		}{
			{http.StatusUnauthorized, tracking.ErrCodeProviderAuth},
			{http.StatusForbidden, tracking.ErrCodeProviderAuth},
			{http.StatusTooManyRequests, tracking.ErrCodeProviderRateLimit},
			{http.StatusNotFound, tracking.ErrCodeProviderNotFound},
			{http.StatusInternalServerError, tracking.ErrCodeProviderAPI},
			{http.StatusBadGateway, tracking.ErrCodeProviderAPI},
		}

		for _, tt := range tests {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			adapter := newV2Adapter(t, server.URL)
			_, err := adapter.Track(context.Background(), mustContainerID(t))
			server.Close()

			require.Error(t, err, "status %d", tt.status)
			terr, ok := tracking.AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, terr.Code, "status %d", tt.status)
		}
	})

	t.Run("not found carries the identifier", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		adapter := newV2Adapter(t, server.URL)
		_, err := adapter.Track(context.Background(), mustContainerID(t))
		terr, ok := tracking.AsError(err)
		require.True(t, ok)
		assert.Equal(t, "MSCU1234567", terr.Identifier)
	})

	t.Run("200 with success false is not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success": false, "message": "Container not found"}`))
		}))
		defer server.Close()

		adapter := newV2Adapter(t, server.URL)
		_, err := adapter.Track(context.Background(), mustContainerID(t))
		terr, ok := tracking.AsError(err)
		require.True(t, ok)
		assert.Equal(t, tracking.ErrCodeProviderNotFound, terr.Code)
		assert.Equal(t, "Container not found", terr.Message)
	})

	t.Run("malformed payload is a provider api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>gateway timeout</html>`))
		}))
		defer server.Close()

		adapter := newV2Adapter(t, server.URL)
		_, err := adapter.Track(context.Background(), mustContainerID(t))
		terr, ok := tracking.AsError(err)
		require.True(t, ok)
		assert.Equal(t, tracking.ErrCodeProviderAPI, terr.Code)
	})

	t.Run("unreachable upstream is a provider api error", func(t *testing.T) {
		adapter := newV2Adapter(t, "http://127.0.0.1:1")
		_, err := adapter.Track(context.Background(), mustContainerID(t))
		terr, ok := tracking.AsError(err)
		require.True(t, ok)
		assert.Equal(t, tracking.ErrCodeProviderAPI, terr.Code)
	})
}

func TestAdapter_TrackLegacy(t *testing.T) {
	newLegacyAdapter := func(t *testing.T, baseURL string) *Adapter {
		t.Helper()
		adapter, err := NewAdapter(&Config{APIKey: "legacy-code", LegacyBaseURL: baseURL, Flavor: FlavorLegacy})
		require.NoError(t, err)
		return adapter
	}

	t.Run("two-phase flow registers then fetches", func(t *testing.T) {
		var calls []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls = append(calls, r.Method+" "+r.URL.Path)
			switch r.URL.Path {
			case "/ContainerService/PostContainerInfo":
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "legacy-code", r.PostForm.Get("authCode"))
				assert.Equal(t, "MSCU1234567", r.PostForm.Get("containerNumber"))
				assert.Equal(t, legacyShippingLine, r.PostForm.Get("shippingLine"))
				_, _ = w.Write([]byte(`{"requestId": "req-777"}`))
			case "/ContainerService/GetContainerInfo/":
				assert.Equal(t, "req-777", r.URL.Query().Get("requestId"))
				assert.Equal(t, "legacy-code", r.URL.Query().Get("authCode"))
				assert.Equal(t, "true", r.URL.Query().Get("mapPoint"))
				assert.Equal(t, "true", r.URL.Query().Get("co2"))
				assert.Equal(t, "true", r.URL.Query().Get("containerType"))
				_, _ = w.Write([]byte(legacySamplePayload))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		adapter := newLegacyAdapter(t, server.URL)
		result, err := adapter.Track(context.Background(), mustContainerID(t))
		require.NoError(t, err)

		require.Equal(t, []string{
			"POST /ContainerService/PostContainerInfo",
			"GET /ContainerService/GetContainerInfo/",
		}, calls)
		assert.Equal(t, "MSCU1234567", result.ContainerNumber)
		assert.Len(t, result.Milestones, 3)
	})

	t.Run("missing request id falls back to the identifier", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/ContainerService/PostContainerInfo":
				_, _ = w.Write([]byte(`{}`))
			case "/ContainerService/GetContainerInfo/":
				assert.Equal(t, "MSCU1234567", r.URL.Query().Get("requestId"))
				_, _ = w.Write([]byte(legacySamplePayload))
			}
		}))
		defer server.Close()

		adapter := newLegacyAdapter(t, server.URL)
		_, err := adapter.Track(context.Background(), mustContainerID(t))
		require.NoError(t, err)
	})

	t.Run("registration failure stops the flow", func(t *testing.T) {
		var fetchCalled bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/ContainerService/PostContainerInfo":
				w.WriteHeader(http.StatusUnauthorized)
			case "/ContainerService/GetContainerInfo/":
				fetchCalled = true
			}
		}))
		defer server.Close()

		adapter := newLegacyAdapter(t, server.URL)
		_, err := adapter.Track(context.Background(), mustContainerID(t))
		terr, ok := tracking.AsError(err)
		require.True(t, ok)
		assert.Equal(t, tracking.ErrCodeProviderAuth, terr.Code)
		assert.False(t, fetchCalled)
	})
}

func TestParseLegacyRequestID(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		want  string
	}{
		{name: "json object", body: `{"requestId": "req-1"}`, want: "req-1"},
		{name: "quoted string", body: `"req-2"`, want: "req-2"},
		{name: "bare numeric", body: `123456`, want: "123456"},
		{name: "empty object", body: `{}`, want: ""},
		{name: "empty body", body: ``, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLegacyRequestID([]byte(tt.body)))
		})
	}
}
