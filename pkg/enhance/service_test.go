package enhance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/raihanakbr/rofind-fe/pkg/config"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackendService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewService(&config.Config{
		BackendBaseURL:        server.URL,
		BackendRequestTimeout: 5 * time.Second,
	})
}

func TestServiceEnhanceDescription(t *testing.T) {
	t.Parallel()

	svc := newBackendService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/enhance-description", r.URL.Path)

		body := map[string]interface{}{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "920587237", body["id"])
		assert.Equal(t, "Adopt Me!", body["name"])
		assert.Equal(t, true, body["enhance_description"], "flag is forced on regardless of input")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"enhanced":"Raise magical pets with friends."}`))
	})

	result, err := svc.EnhanceDescription(context.Background(), DescriptionPayload{
		ID:          "920587237",
		Name:        "Adopt Me!",
		Genre:       "RPG",
		Description: "Raise pets",
	})
	require.NoError(t, err)
	assert.Equal(t, "Raise magical pets with friends.", result.Enhanced)
}

func TestServiceEnhanceDescriptionErrors(t *testing.T) {
	t.Parallel()

	t.Run("non-ok status", func(tt *testing.T) {
		svc := newBackendService(tt, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})

		result, err := svc.EnhanceDescription(context.Background(), DescriptionPayload{ID: "1", Name: "x"})
		require.Error(tt, err)
		assert.Nil(tt, result)
		assert.Contains(tt, err.Error(), "HTTP 400")
	})

	t.Run("malformed body", func(tt *testing.T) {
		svc := newBackendService(tt, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"enhanced":`))
		})

		_, err := svc.EnhanceDescription(context.Background(), DescriptionPayload{ID: "1", Name: "x"})
		require.Error(tt, err)
		assert.Contains(tt, err.Error(), "failed to parse enhancement JSON")
	})

	t.Run("unreachable backend", func(tt *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close()
		svc := NewService(&config.Config{BackendBaseURL: server.URL, BackendRequestTimeout: time.Second})

		_, err := svc.EnhanceDescription(context.Background(), DescriptionPayload{ID: "1", Name: "x"})
		require.Error(tt, err)
	})
}
