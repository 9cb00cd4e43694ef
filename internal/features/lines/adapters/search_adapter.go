package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"dockboard/internal/core/config"
	"dockboard/internal/core/httpclient"
	"dockboard/internal/features/lines/domain"
)

// SearchAdapter implements the LineProvider port against the retail-ops
// line search endpoint.
type SearchAdapter struct {
	client *http.Client
	config config.RemoteAPIConfig
}

// NewSearchAdapter creates a new instance of SearchAdapter.
func NewSearchAdapter(cfg config.RemoteAPIConfig) *SearchAdapter {
	return &SearchAdapter{
		client: httpclient.NewClient(10 * time.Second),
		config: cfg,
	}
}

// searchResponse tolerates both response shapes the endpoint has used: a
// bare array and a results envelope.
type searchResponse struct {
	Results []domain.LineResult `json:"results"`
}

// SearchLines performs a free-text purchase-order line lookup.
func (a *SearchAdapter) SearchLines(ctx context.Context, query string) ([]domain.LineResult, error) {
	endpoint := fmt.Sprintf("%s/po/lines/search?q=%s", a.config.URL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if a.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.config.Token)
	} else {
		req.Header.Set("X-User-Id", a.config.UserID)
		req.Header.Set("X-User-Role", a.config.UserRole)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("retail-ops API returned status: %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var flat []domain.LineResult
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat, nil
	}

	var envelope searchResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("unrecognized search response shape: %w", err)
	}
	return envelope.Results, nil
}
