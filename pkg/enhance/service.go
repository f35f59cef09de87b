package enhance

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/raihanakbr/rofind-fe/pkg/config"
	"github.com/segmentio/encoding/json"
)

// Service proxies description-enhancement requests to the search backend.
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

// EnhanceDescription asks the backend LLM to rewrite a game description.
func (svc *Service) EnhanceDescription(ctx context.Context, payload DescriptionPayload) (*DescriptionResult, error) {
	payload.EnhanceDescription = true

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.baseURL+"/api/enhance-description", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request for description enhancement")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := svc.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to enhance description")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("failed to enhance description: HTTP %d", res.StatusCode)
	}

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read enhancement response")
	}

	result := DescriptionResult{}
	if err := json.Unmarshal(resBody, &result); err != nil {
		return nil, errors.Wrap(err, "failed to parse enhancement JSON")
	}
	return &result, nil
}
