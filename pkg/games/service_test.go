package games

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingBackend captures every request body the service sends so tests can
// assert on the wire payload, not just the outcome.
type recordingBackend struct {
	mu       sync.Mutex
	requests []map[string]interface{}
	server   *httptest.Server
}

func newRecordingBackend(t *testing.T, handler func(w http.ResponseWriter, body map[string]interface{})) *recordingBackend {
	t.Helper()

	backend := &recordingBackend{}
	backend.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{}
		err := json.NewDecoder(r.Body).Decode(&body)
		require.NoError(t, err)

		backend.mu.Lock()
		backend.requests = append(backend.requests, body)
		backend.mu.Unlock()

		handler(w, body)
	}))
	t.Cleanup(backend.server.Close)
	return backend
}

func (b *recordingBackend) recorded() []map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]interface{}{}, b.requests...)
}

func newTestService(baseURL string) *Service {
	return &Service{
		baseURL:    baseURL,
		client:     &http.Client{},
		log:        logger.New(),
		llmTimeout: llmTimeout,
	}
}

func writeSearchResponse(w http.ResponseWriter, payload string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(payload))
}

const emptySearchResponse = `{"hits":{"total":{"value":0,"relation":"eq"},"hits":[]}}`

func defaultOptions(query string) SearchOptions {
	return SearchOptions{
		Query:    query,
		PageSize: DefaultPageSize,
		Page:     1,
		MaxPages: DefaultMaxPages,
	}
}

func TestServiceSearchBlankQuery(t *testing.T) {
	t.Parallel()

	backend := newRecordingBackend(t, func(w http.ResponseWriter, _ map[string]interface{}) {
		writeSearchResponse(w, emptySearchResponse)
	})
	svc := newTestService(backend.server.URL)

	for _, query := range []string{"", "   ", "\t\n"} {
		outcome := svc.Search(context.Background(), defaultOptions(query))
		require.NotNil(t, outcome)
		assert.Equal(t, []Game{}, outcome.Results)
		assert.Equal(t, int64(0), outcome.Total)
		assert.Equal(t, 1, outcome.CurrentPage)
		assert.Equal(t, 0, outcome.TotalPages)
		assert.Equal(t, []string{}, outcome.Suggestions)
	}

	assert.Empty(t, backend.recorded(), "blank queries should not reach the backend")
}

func TestServiceSearchClampsPage(t *testing.T) {
	t.Parallel()

	backend := newRecordingBackend(t, func(w http.ResponseWriter, _ map[string]interface{}) {
		writeSearchResponse(w, emptySearchResponse)
	})
	svc := newTestService(backend.server.URL)

	tests := []struct {
		name     string
		page     int
		expected int
	}{
		{name: "zero clamps up", page: 0, expected: 1},
		{name: "negative clamps up", page: -5, expected: 1},
		{name: "in range passes through", page: 7, expected: 7},
		{name: "beyond last clamps down", page: 15, expected: 10},
	}

	for i, test := range tests {
		t.Run(test.name, func(tt *testing.T) {
			opts := defaultOptions("tycoon")
			opts.Page = test.page

			outcome := svc.Search(context.Background(), opts)
			assert.Equal(tt, test.expected, outcome.CurrentPage)

			sent := backend.recorded()[i]
			assert.Equal(tt, float64(test.expected), sent["page"])
		})
	}
}

func TestServiceSearchSparseFilters(t *testing.T) {
	t.Parallel()

	backend := newRecordingBackend(t, func(w http.ResponseWriter, _ map[string]interface{}) {
		writeSearchResponse(w, emptySearchResponse)
	})
	svc := newTestService(backend.server.URL)

	t.Run("omits filters entirely when nothing is constrained", func(tt *testing.T) {
		opts := defaultOptions("obby")
		opts.Filters = &FilterSet{}
		svc.Search(context.Background(), opts)

		sent := backend.recorded()[len(backend.recorded())-1]
		assert.NotContains(tt, sent, "filters")
	})

	t.Run("omits unconstrained dimensions", func(tt *testing.T) {
		opts := defaultOptions("obby")
		opts.Filters = &FilterSet{
			Creators:   []string{"Gamefam", "Uplift", "Gamefam"},
			MaxPlayers: "10.0-20.0",
		}
		svc.Search(context.Background(), opts)

		sent := backend.recorded()[len(backend.recorded())-1]
		filters, ok := sent["filters"].(map[string]interface{})
		require.True(tt, ok)
		assert.Equal(tt, []interface{}{"Gamefam", "Uplift"}, filters["creators"])
		assert.Equal(tt, "10.0-20.0", filters["max_players"])
		assert.NotContains(tt, filters, "genre_l1")
		assert.NotContains(tt, filters, "genre_l2")
	})

	t.Run("nil filter set is no constraint", func(tt *testing.T) {
		opts := defaultOptions("obby")
		svc.Search(context.Background(), opts)

		sent := backend.recorded()[len(backend.recorded())-1]
		assert.NotContains(tt, sent, "filters")
	})
}

func TestServiceSearchRetriesOnceWithoutEnhancement(t *testing.T) {
	t.Parallel()

	backend := newRecordingBackend(t, func(w http.ResponseWriter, body map[string]interface{}) {
		if body["use_llm"] == true {
			time.Sleep(500 * time.Millisecond)
		}
		writeSearchResponse(w, `{"hits":{"total":{"value":1,"relation":"eq"},"hits":[{"_source":{"id":"1","name":"Adopt Me!"}}]}}`)
	})
	svc := newTestService(backend.server.URL)
	svc.llmTimeout = 50 * time.Millisecond

	opts := defaultOptions("pets")
	opts.UseLLM = true
	outcome := svc.Search(context.Background(), opts)

	require.Len(t, outcome.Results, 1)
	assert.Equal(t, "Adopt Me!", outcome.Results[0].Name)

	requests := backend.recorded()
	require.Len(t, requests, 2)
	assert.Equal(t, true, requests[0]["use_llm"])
	assert.Equal(t, false, requests[1]["use_llm"])
}

func TestServiceSearchTimeoutOnRetryDegrades(t *testing.T) {
	t.Parallel()

	backend := newRecordingBackend(t, func(w http.ResponseWriter, _ map[string]interface{}) {
		time.Sleep(500 * time.Millisecond)
		writeSearchResponse(w, emptySearchResponse)
	})
	svc := newTestService(backend.server.URL)
	svc.client.Timeout = 50 * time.Millisecond
	svc.llmTimeout = 50 * time.Millisecond

	opts := defaultOptions("pets")
	opts.UseLLM = true
	opts.Page = 3
	outcome := svc.Search(context.Background(), opts)

	assert.Equal(t, []Game{}, outcome.Results)
	assert.Equal(t, 3, outcome.CurrentPage)
	assert.Len(t, backend.recorded(), 2, "only one retry is allowed")
}

func TestServiceSearchDegradesToEmpty(t *testing.T) {
	t.Parallel()

	t.Run("non-ok status", func(tt *testing.T) {
		backend := newRecordingBackend(tt, func(w http.ResponseWriter, _ map[string]interface{}) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		svc := newTestService(backend.server.URL)

		opts := defaultOptions("tower")
		opts.Page = 99
		outcome := svc.Search(context.Background(), opts)

		assert.Equal(tt, []Game{}, outcome.Results)
		assert.Equal(tt, 10, outcome.CurrentPage)
		assert.Equal(tt, []string{}, outcome.Suggestions)
		assert.Len(tt, backend.recorded(), 1, "non-timeout failures are not retried")
	})

	t.Run("malformed body", func(tt *testing.T) {
		backend := newRecordingBackend(tt, func(w http.ResponseWriter, _ map[string]interface{}) {
			writeSearchResponse(w, `{"hits":`)
		})
		svc := newTestService(backend.server.URL)

		outcome := svc.Search(context.Background(), defaultOptions("tower"))
		assert.Equal(tt, []Game{}, outcome.Results)
		assert.Equal(tt, 1, outcome.CurrentPage)
	})

	t.Run("unreachable backend", func(tt *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
		server.Close()
		svc := newTestService(server.URL)

		outcome := svc.Search(context.Background(), defaultOptions("tower"))
		assert.Equal(tt, []Game{}, outcome.Results)
		assert.Equal(tt, 1, outcome.CurrentPage)
	})
}

func TestServiceSearchMapsResponse(t *testing.T) {
	t.Parallel()

	payload := `{
		"took": 12,
		"hits": {
			"total": {"value": 100, "relation": "eq"},
			"hits": [
				{
					"_source": {
						"id": 920587237,
						"name": "Adopt Me!",
						"description": "Raise pets",
						"creator": {"id": 1, "name": "Uplift Games", "type": "Group", "hasVerifiedBadge": true},
						"imageUrl": "https://cdn.example.com/adopt-me.png",
						"playing": 250000,
						"visits": 30000000000,
						"genre_l1": "RPG"
					},
					"highlight": {"name": ["<em>Adopt</em> Me!"]}
				},
				{
					"_source": {
						"id": "hidden-cove",
						"name": "Hidden Cove",
						"description": "Explore",
						"creator": "coveworks",
						"playing": 12,
						"visits": 3400
					}
				}
			]
		},
		"llm_enhancements": {
			"alternative_queries": ["pet adoption games", "animal roleplay"],
			"analysis": {
				"analysis": {
					"top_game": "Adopt Me!",
					"features": ["trading", {"name": "pets", "description": "raise and trade pets"}],
					"conclusion": "Strong matches for pet games."
				}
			}
		}
	}`

	backend := newRecordingBackend(t, func(w http.ResponseWriter, _ map[string]interface{}) {
		writeSearchResponse(w, payload)
	})
	svc := newTestService(backend.server.URL)

	outcome := svc.Search(context.Background(), defaultOptions("pets"))

	require.Len(t, outcome.Results, 2)
	assert.Equal(t, int64(100), outcome.Total)
	assert.Equal(t, 1, outcome.CurrentPage)
	assert.Equal(t, 5, outcome.TotalPages, "ceil(100/21)")
	assert.Equal(t, []string{"pet adoption games", "animal roleplay"}, outcome.Suggestions)

	first := outcome.Results[0]
	assert.Equal(t, ID("920587237"), first.ID)
	assert.Equal(t, `<span class="bg-yellow-500/30 text-white font-bold">Adopt</span> Me!`, first.FormattedName)
	assert.Equal(t, "https://cdn.example.com/adopt-me.png", first.Thumbnail)
	assert.Equal(t, "Uplift Games", first.Creator.Name)
	assert.False(t, first.Creator.NameOnly)
	assert.True(t, first.Creator.HasVerifiedBadge)

	second := outcome.Results[1]
	assert.Equal(t, ID("hidden-cove"), second.ID)
	assert.Equal(t, "Hidden Cove", second.FormattedName, "no highlight means the plain name")
	assert.Equal(t, "/placeholder.svg?height=200&width=400&text=Hidden+Cove", second.Thumbnail)
	assert.True(t, second.Creator.NameOnly)
	assert.Equal(t, "coveworks", second.Creator.Name)

	require.NotNil(t, outcome.LLMAnalysis)
	require.NotNil(t, outcome.LLMAnalysis.Structured)
	assert.Equal(t, "Adopt Me!", outcome.LLMAnalysis.Structured.TopGame)
	require.Len(t, outcome.LLMAnalysis.Structured.Features, 2)
	assert.Equal(t, "trading", outcome.LLMAnalysis.Structured.Features[0].Text)
	assert.Equal(t, "pets", outcome.LLMAnalysis.Structured.Features[1].Name)
	assert.Equal(t, "Strong matches for pet games.", outcome.LLMAnalysis.Structured.Conclusion)
}

func TestServiceSearchTotalPagesCapped(t *testing.T) {
	t.Parallel()

	backend := newRecordingBackend(t, func(w http.ResponseWriter, _ map[string]interface{}) {
		writeSearchResponse(w, `{"hits":{"total":{"value":5000,"relation":"gte"},"hits":[]}}`)
	})
	svc := newTestService(backend.server.URL)

	outcome := svc.Search(context.Background(), defaultOptions("simulator"))
	assert.Equal(t, int64(5000), outcome.Total)
	assert.Equal(t, 10, outcome.TotalPages, "capped at the max page count")
}
