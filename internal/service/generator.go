package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/yshzap/aigenbot/internal/domain"
)

// GeneratorService talks to the remote generation endpoint: one GET per
// request, no retries.
type GeneratorService struct {
	baseURL    string
	httpClient *http.Client
}

func NewGeneratorService(baseURL string, timeout time.Duration) *GeneratorService {
	return &GeneratorService{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type generationResponse struct {
	Status bool `json:"status"`
	Data   struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Generate requests one piece of media for the prompt and returns its URL.
// Failures come back as domain.ErrAPIRejected, domain.ErrMalformedResponse
// or a wrapped transport error; classify with domain.Kind.
func (s *GeneratorService) Generate(ctx context.Context, prompt string, m domain.Modality) (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse generation URL: %w", err)
	}
	// The prompt is untrusted free text; it only ever enters the URL
	// percent-encoded.
	q := u.Query()
	q.Set("prompt", prompt)
	q.Set("type", string(m))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request generation: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var parsed generationResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if !parsed.Status {
		return "", domain.ErrAPIRejected
	}
	if parsed.Data.URL == "" {
		return "", fmt.Errorf("%w: status ok but no media URL", domain.ErrMalformedResponse)
	}
	return parsed.Data.URL, nil
}
