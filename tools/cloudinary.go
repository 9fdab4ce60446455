package tools

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"creava/config"
)

// Upload folders, one per edit flow.
const (
	backgroundRemovalFolder = "ai-remove-bg"
	objectRemovalFolder     = "remove-object"
)

// CloudinaryClient stores images and requests transformations by reference:
// upload first, then either an eager transformation (background removal) or
// a derived delivery URL (generative object removal). Transforming without
// storing is not supported by the API.
type CloudinaryClient struct {
	cloudName   string
	apiKey      string
	apiSecret   string
	uploadURL   string
	deliveryURL string
	client      *http.Client
	now         func() time.Time
}

func NewCloudinaryClient(p config.Providers) *CloudinaryClient {
	return &CloudinaryClient{
		cloudName:   p.CloudinaryCloudName,
		apiKey:      p.CloudinaryAPIKey,
		apiSecret:   p.CloudinaryAPISecret,
		uploadURL:   strings.TrimRight(p.CloudinaryUploadURL, "/"),
		deliveryURL: strings.TrimRight(p.CloudinaryDeliveryURL, "/"),
		client:      &http.Client{Timeout: 60 * time.Second},
		now:         time.Now,
	}
}

type uploadResult struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
}

// Upload stores a generated image and returns its secure URL.
func (c *CloudinaryClient) Upload(ctx context.Context, image []byte) (string, error) {
	res, err := c.upload(ctx, image, map[string]string{})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}

// RemoveBackground stores the image with an incoming background-removal
// transformation and returns the URL of the stripped result.
func (c *CloudinaryClient) RemoveBackground(ctx context.Context, image []byte) (string, error) {
	res, err := c.upload(ctx, image, map[string]string{
		"folder":         backgroundRemovalFolder,
		"transformation": "e_background_removal",
	})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}

// RemoveObject stores the image untouched and returns a delivery URL that
// applies the generative removal on fetch.
func (c *CloudinaryClient) RemoveObject(ctx context.Context, image []byte, object string) (string, error) {
	res, err := c.upload(ctx, image, map[string]string{
		"folder": objectRemovalFolder,
	})
	if err != nil {
		return "", err
	}
	effect := "e_gen_remove:" + url.PathEscape(object)
	return fmt.Sprintf("%s/%s/image/upload/%s/%s",
		c.deliveryURL, c.cloudName, effect, res.PublicID), nil
}

func (c *CloudinaryClient) upload(ctx context.Context, image []byte, params map[string]string) (uploadResult, error) {
	if c.cloudName == "" || c.apiKey == "" || c.apiSecret == "" {
		return uploadResult{}, fmt.Errorf("cloudinary credentials not set")
	}

	params["timestamp"] = strconv.FormatInt(c.now().Unix(), 10)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for k, v := range params {
		if err := form.WriteField(k, v); err != nil {
			return uploadResult{}, err
		}
	}
	if err := form.WriteField("api_key", c.apiKey); err != nil {
		return uploadResult{}, err
	}
	if err := form.WriteField("signature", c.sign(params)); err != nil {
		return uploadResult{}, err
	}
	dataURI := "data:image/png;base64," + base64.StdEncoding.EncodeToString(image)
	if err := form.WriteField("file", dataURI); err != nil {
		return uploadResult{}, err
	}
	if err := form.Close(); err != nil {
		return uploadResult{}, err
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", c.uploadURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return uploadResult{}, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return uploadResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return uploadResult{}, fmt.Errorf("cloudinary error %d: %s", resp.StatusCode, string(msg))
	}

	var res uploadResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return uploadResult{}, err
	}
	if res.SecureURL == "" {
		return uploadResult{}, fmt.Errorf("cloudinary returned no secure_url")
	}
	return res, nil
}

// sign produces the API signature: sha1 over the sorted request params
// concatenated with the secret.
func (c *CloudinaryClient) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}
