package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/quill/internal/client"
	"github.com/davidbz/quill/internal/domain"
)

func newClient(t *testing.T, baseURL string) *client.Client {
	t.Helper()

	c, err := client.New(client.Config{BaseURL: baseURL, Token: "tok", Timeout: 5})
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	_, err := client.New(client.Config{})
	require.Error(t, err)
}

func TestClient_Generate(t *testing.T) {
	t.Run("should post prompt with bearer token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/v1/generate", r.URL.Path)
			require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

			var req domain.GenerationRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "Write", req.Prompt)
			require.Equal(t, "application/json", req.Config.String("responseMimeType"))

			_, _ = w.Write([]byte(`{"text":"Done"}`))
		}))
		defer server.Close()

		text, err := newClient(t, server.URL).Generate(context.Background(), "Write",
			domain.GenerationConfig{"responseMimeType": "application/json"})

		require.NoError(t, err)
		require.Equal(t, "Done", text)
	})

	t.Run("should decode error envelope", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"code":"upstream_error","message":"quota exceeded","status":429}`))
		}))
		defer server.Close()

		_, err := newClient(t, server.URL).Generate(context.Background(), "Write", nil)

		classified, ok := domain.AsError(err)
		require.True(t, ok)
		require.Equal(t, domain.KindUpstreamError, classified.Kind)
		require.Equal(t, "quota exceeded", classified.Message)
		require.Equal(t, http.StatusTooManyRequests, classified.Status)
	})

	t.Run("should keep configuration error kind", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":"no_api_key","message":"API key not configured","status":400}`))
		}))
		defer server.Close()

		_, err := newClient(t, server.URL).Generate(context.Background(), "Write", nil)

		require.ErrorIs(t, err, domain.ErrAPIKeyNotConfigured)
	})

	t.Run("should describe non-envelope failures", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "404 page not found", http.StatusNotFound)
		}))
		defer server.Close()

		_, err := newClient(t, server.URL).Generate(context.Background(), "Write", nil)

		classified, ok := domain.AsError(err)
		require.True(t, ok)
		require.Equal(t, http.StatusNotFound, classified.Status)
		require.Contains(t, classified.Message, "404")
	})

	t.Run("should classify transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		baseURL := server.URL
		server.Close()

		_, err := newClient(t, baseURL).Generate(context.Background(), "Write", nil)

		classified, ok := domain.AsError(err)
		require.True(t, ok)
		require.Equal(t, domain.KindUpstreamUnavailable, classified.Kind)
	})
}

func TestClient_Settings(t *testing.T) {
	t.Run("should read configured status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "/v1/settings/api-key", r.URL.Path)
			_, _ = w.Write([]byte(`{"configured":true}`))
		}))
		defer server.Close()

		configured, err := newClient(t, server.URL).APIKeyConfigured(context.Background())

		require.NoError(t, err)
		require.True(t, configured)
	})

	t.Run("should set and clear key", func(t *testing.T) {
		var methods []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			methods = append(methods, r.Method)
			if r.Method == http.MethodPut {
				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				require.Equal(t, "abc", body["apiKey"])
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		c := newClient(t, server.URL)
		require.NoError(t, c.SetAPIKey(context.Background(), "abc"))
		require.NoError(t, c.ClearAPIKey(context.Background()))
		require.Equal(t, []string{http.MethodPut, http.MethodDelete}, methods)
	})

	t.Run("should surface forbidden", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"code":"forbidden","message":"Sorry, you are not allowed to do that.","status":403}`))
		}))
		defer server.Close()

		err := newClient(t, server.URL).ClearAPIKey(context.Background())

		require.ErrorIs(t, err, domain.ErrForbidden)
	})
}
