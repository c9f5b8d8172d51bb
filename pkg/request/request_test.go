package request

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(&Config{BaseURL: server.URL})
	require.NoError(t, err)
	return client
}

func TestGet_DecodesResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/proxy/widgets/w1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(widget{ID: "w1", Name: "first"})
	})

	got, err := Get[*widget](context.Background(), client, "/widgets/w1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Name)
}

func TestPost_SendsJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var ids []string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ids))
		assert.Equal(t, []string{"a", "b"}, ids)

		json.NewEncoder(w).Encode([]string{"a"})
	})

	got, err := Post[[]string](context.Background(), client, "/presence/check", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)
}

func TestPut_NoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := Put[NoContent](context.Background(), client, "/notifications/read-all", nil)
	require.NoError(t, err)
}

func TestPut_NoContentIgnoresBody(t *testing.T) {
	bodies := map[string]string{
		"bool":   `true`,
		"string": `"ok"`,
		"array":  `[]`,
		"object": `{"success":true}`,
		"text":   `done`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(body))
			})

			_, err := Put[NoContent](context.Background(), client, "/notifications/n1/read", nil)
			require.NoError(t, err)
		})
	}
}

func TestGet_EmptyBodyYieldsZeroValue(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	got, err := Get[*widget](context.Background(), client, "/widgets/w1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGet_NullBodyYieldsNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	})

	got, err := Get[*widget](context.Background(), client, "/widgets/w1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRequest_ErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "message field",
			status:      http.StatusBadRequest,
			body:        `{"message":"name is required"}`,
			wantMessage: "name is required",
		},
		{
			name:        "error field",
			status:      http.StatusForbidden,
			body:        `{"error":"forbidden"}`,
			wantMessage: "forbidden",
		},
		{
			name:        "plain text body",
			status:      http.StatusBadGateway,
			body:        "upstream unavailable",
			wantMessage: "upstream unavailable",
		},
		{
			name:        "empty body",
			status:      http.StatusNotFound,
			wantMessage: "Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := Get[*widget](context.Background(), client, "/widgets/w1")
			require.Error(t, err)

			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, tt.status, reqErr.StatusCode)
			assert.Equal(t, tt.wantMessage, reqErr.Message)
			assert.Equal(t, http.MethodGet, reqErr.Method)
			assert.Equal(t, "/widgets/w1", reqErr.Path)
			assert.True(t, IsStatus(err, tt.status))
		})
	}
}

func TestRequest_DoesNotRetry(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := Get[*widget](context.Background(), client, "/widgets/w1")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRequest_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client, err := New(&Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = Get[*widget](context.Background(), client, "/widgets/w1")
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Zero(t, reqErr.StatusCode)
	assert.NotNil(t, reqErr.Unwrap())
}

func TestRequest_DecodeFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	})

	_, err := Get[*widget](context.Background(), client, "/widgets/w1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestRequest_InvalidPath(t *testing.T) {
	client := NewWithDoer("https://hermes.example.com", DefaultProxyPrefix, http.DefaultClient, nil)

	for _, path := range []string{"", "widgets"} {
		_, err := Get[*widget](context.Background(), client, path)
		assert.ErrorIs(t, err, ErrInvalidPath)
	}
}

func TestClient_URL(t *testing.T) {
	client := NewWithDoer("https://hermes.example.com/", "/api/proxy/", http.DefaultClient, nil)
	assert.Equal(t, "https://hermes.example.com/api/proxy/users/me", client.URL("/users/me"))
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		errorMsg string
	}{
		{
			name:   "valid config",
			config: &Config{BaseURL: "https://hermes.example.com"},
		},
		{
			name:     "missing base URL",
			config:   &Config{},
			errorMsg: "base_url",
		},
		{
			name:     "invalid URL scheme",
			config:   &Config{BaseURL: "ftp://hermes.example.com"},
			errorMsg: "scheme",
		},
		{
			name:     "proxy prefix without slash",
			config:   &Config{BaseURL: "https://hermes.example.com", ProxyPrefix: "api"},
			errorMsg: "proxy_prefix",
		},
		{
			name:     "negative max retries",
			config:   &Config{BaseURL: "https://hermes.example.com", MaxRetries: -1},
			errorMsg: "max_retries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config)
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{BaseURL: "https://hermes.example.com"}
	_, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, DefaultProxyPrefix, cfg.ProxyPrefix)
	assert.NotNil(t, cfg.TLSVerify)
	assert.NotZero(t, cfg.Timeout)
	assert.NotZero(t, cfg.RetryDelay)
	assert.NotNil(t, cfg.Logger)
}
