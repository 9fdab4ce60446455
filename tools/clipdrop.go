package tools

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"creava/config"
)

// ClipdropClient calls the Clipdrop text-to-image API. The response body is
// the raw image (PNG); it is handed to the image store unmodified.
type ClipdropClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClipdropClient(p config.Providers) *ClipdropClient {
	return &ClipdropClient{
		apiKey:  p.ClipdropAPIKey,
		baseURL: strings.TrimRight(p.ClipdropBaseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *ClipdropClient) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("CLIPDROP_API_KEY not set")
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("prompt", prompt); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/text-to-image/v1",
		&body,
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("clipdrop error %d: %s", resp.StatusCode, string(msg))
	}

	image, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("clipdrop returned an empty image")
	}
	return image, nil
}
