package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"creava/config"
)

// IdentityAPIClient writes user metadata back to the identity provider.
// The provider is the source of truth for the plan and the free-usage
// counter; this client only ever pushes the incremented counter.
type IdentityAPIClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewIdentityAPIClient(p config.Providers) *IdentityAPIClient {
	return &IdentityAPIClient{
		baseURL: strings.TrimRight(p.IdentityBaseURL, "/"),
		apiKey:  p.IdentityAPIKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (i *IdentityAPIClient) UpdateFreeUsage(ctx context.Context, userID string, freeUsage int64) error {
	if i.baseURL == "" || i.apiKey == "" {
		return fmt.Errorf("IDENTITY_API_URL or IDENTITY_API_KEY not set")
	}

	reqBody := map[string]any{
		"private_metadata": map[string]any{
			"free_usage": freeUsage,
		},
	}
	b, _ := json.Marshal(reqBody)

	endpoint := fmt.Sprintf("%s/users/%s/metadata", i.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+i.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("identity api error %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
