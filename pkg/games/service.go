package games

import (
	"bytes"
	"context"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/raihanakbr/rofind-fe/pkg/config"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
)

const (
	// DefaultPageSize and DefaultMaxPages are part of the observable contract:
	// the results grid shows 21 games per page for at most 10 pages, so a
	// single query never surfaces more than 210 games.
	DefaultPageSize = 21
	DefaultMaxPages = 10

	// llmTimeout bounds AI-enhanced searches before falling back to a plain
	// search, since LLM processing can take far longer than a lexical query.
	llmTimeout = 15 * time.Second
)

// Service talks to the search backend and normalizes its responses into
// display-ready outcomes. It never returns an error: any failure degrades to
// an empty outcome so the page still renders.
type Service struct {
	baseURL    string
	client     *http.Client
	log        logger.Logger
	llmTimeout time.Duration
}

// NewService returns a Service pointed at the configured search backend.
func NewService(cfg *config.Config) *Service {
	return &Service{
		baseURL: cfg.BackendBaseURL,
		client: &http.Client{
			Timeout: cfg.BackendRequestTimeout,
		},
		log:        logger.New(),
		llmTimeout: llmTimeout,
	}
}

// SearchOptions carries one search invocation's inputs. PageSize and MaxPages
// are explicit rather than hardcoded so tests and future surfaces can vary
// them; handlers pass DefaultPageSize and DefaultMaxPages.
type SearchOptions struct {
	Query    string
	PageSize int
	Page     int
	MaxPages int
	UseLLM   bool
	Filters  *FilterSet
}

// Search runs one search against the backend. A blank query short-circuits to
// an empty outcome without a network call. When UseLLM is set and the backend
// doesn't answer within the LLM timeout, the search is retried exactly once
// with enhancement disabled; all other failures return an empty outcome.
func (svc *Service) Search(ctx context.Context, opts SearchOptions) *SearchOutcome {
	if strings.TrimSpace(opts.Query) == "" {
		return emptyOutcome(1)
	}

	page := clampPage(opts.Page, opts.MaxPages)

	outcome, timedOut := svc.attempt(ctx, opts, page, opts.UseLLM)
	if timedOut {
		// The retry forces use_llm off, so a second timeout can't recurse.
		outcome, _ = svc.attempt(ctx, opts, page, false)
	}
	return outcome
}

func clampPage(page, maxPages int) int {
	if page < 1 {
		page = 1
	}
	if page > maxPages {
		page = maxPages
	}
	return page
}

func emptyOutcome(page int) *SearchOutcome {
	return &SearchOutcome{
		Results:     []Game{},
		CurrentPage: page,
		Suggestions: []string{},
	}
}

type searchRequest struct {
	Query    string          `json:"query"`
	PageSize int             `json:"page_size"`
	Page     int             `json:"page"`
	UseLLM   bool            `json:"use_llm"`
	Filters  *requestFilters `json:"filters,omitempty"`
}

type requestFilters struct {
	Creators   []string `json:"creators,omitempty"`
	GenreL1    []string `json:"genre_l1,omitempty"`
	GenreL2    []string `json:"genre_l2,omitempty"`
	MaxPlayers string   `json:"max_players,omitempty"`
}

type searchResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total struct {
			Value    int64  `json:"value"`
			Relation string `json:"relation"`
		} `json:"total"`
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
	LLMEnhancements *llmEnhancements `json:"llm_enhancements"`
}

type searchHit struct {
	Source    Game `json:"_source"`
	Highlight struct {
		Name        []string `json:"name"`
		Description []string `json:"description"`
	} `json:"highlight"`
}

type llmEnhancements struct {
	AlternativeQueries []string  `json:"alternative_queries"`
	Analysis           *Analysis `json:"analysis"`
}

// attempt performs a single backend round trip. The second return value is
// true only when an LLM-enhanced request hit the deadline, which is the one
// failure Search retries.
func (svc *Service) attempt(ctx context.Context, opts SearchOptions, page int, useLLM bool) (*SearchOutcome, bool) {
	requestID := uuid.New()
	log := svc.log.ID(requestID.String()).Root(logger.Data{
		"query":   opts.Query,
		"page":    page,
		"use_llm": useLLM,
	})

	payload, err := json.Marshal(searchRequest{
		Query:    opts.Query,
		PageSize: opts.PageSize,
		Page:     page,
		UseLLM:   useLLM,
		Filters:  opts.Filters.request(),
	})
	if err != nil {
		log.Err(errors.WithStack(err)).Error("marshal search request error")
		return emptyOutcome(page), false
	}

	if useLLM {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, svc.llmTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.baseURL+"/api/search", bytes.NewReader(payload))
	if err != nil {
		log.Err(errors.WithStack(err)).Error("create search request error")
		return emptyOutcome(page), false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID.String())

	res, err := svc.client.Do(req)
	if err != nil {
		if useLLM && errors.Is(err, context.DeadlineExceeded) {
			log.Warn("enhanced search timed out, retrying without enhancement")
			return emptyOutcome(page), true
		}
		log.Err(errors.WithStack(err)).Error("search backend request error")
		return emptyOutcome(page), false
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		log.Warn("search backend returned non-ok status", logger.Data{"status": res.StatusCode})
		return emptyOutcome(page), false
	}

	decoded := searchResponse{}
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		log.Err(errors.WithStack(err)).Error("decode search response error")
		return emptyOutcome(page), false
	}

	return buildOutcome(&decoded, opts.PageSize, page, opts.MaxPages), false
}

func buildOutcome(res *searchResponse, pageSize, page, maxPages int) *SearchOutcome {
	results := make([]Game, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		game := hit.Source

		name := game.Name
		if len(hit.Highlight.Name) > 0 {
			name = hit.Highlight.Name[0]
		}
		game.FormattedName = RewriteHighlights(name)

		game.Thumbnail = game.ImageURL
		if game.Thumbnail == "" {
			game.Thumbnail = placeholderThumbnail(game.Name)
		}

		results = append(results, game)
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(res.Hits.Total.Value) / float64(pageSize)))
	}
	if totalPages > maxPages {
		totalPages = maxPages
	}

	suggestions := []string{}
	var analysis *Analysis
	if res.LLMEnhancements != nil {
		if len(res.LLMEnhancements.AlternativeQueries) > 0 {
			suggestions = res.LLMEnhancements.AlternativeQueries
		}
		analysis = res.LLMEnhancements.Analysis
	}

	return &SearchOutcome{
		Results:     results,
		Total:       res.Hits.Total.Value,
		CurrentPage: page,
		TotalPages:  totalPages,
		Suggestions: suggestions,
		LLMAnalysis: analysis,
	}
}

func placeholderThumbnail(name string) string {
	return "/placeholder.svg?height=200&width=400&text=" + url.QueryEscape(name)
}
