package aggregations

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/raihanakbr/rofind-fe/pkg/config"
	"github.com/segmentio/encoding/json"
)

// Service fetches facet aggregations from the search backend.
type Service struct {
	baseURL string
	client  *http.Client
}

// NewService returns a Service pointed at the configured search backend.
func NewService(cfg *config.Config) *Service {
	return &Service{
		baseURL: cfg.BackendBaseURL,
		client: &http.Client{
			Timeout: cfg.BackendRequestTimeout,
		},
	}
}

// Fetch retrieves the current facet buckets. Unlike search, there is no
// degraded rendering for the filter panel, so failures surface as errors.
func (svc *Service) Fetch(ctx context.Context) (*AggregationSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, svc.baseURL+"/api/aggregations", nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request for aggregations")
	}

	res, err := svc.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch aggregations")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("failed to fetch aggregations: HTTP %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read aggregations response")
	}

	set := AggregationSet{}
	if err := json.Unmarshal(body, &set); err != nil {
		return nil, errors.Wrap(err, "failed to parse aggregations JSON")
	}
	return &set, nil
}
