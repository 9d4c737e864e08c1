// Package imagehost talks to the Cloudinary-compatible image hosting service:
// it issues signed upload authorizations and fetches uploaded resources so the
// server never has to trust client-supplied asset metadata.
package imagehost

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Host is the image-hosting collaborator consumed by the photo service.
type Host interface {
	// SignUpload issues a short-lived signed upload authorization scoped to
	// the configured folder and a server-generated public id.
	SignUpload() (*UploadAuthorization, error)

	// Resource fetches an uploaded resource by its public id. The returned
	// metadata is the source of truth for dimensions, size and format.
	Resource(publicID string) (*Resource, error)

	// Folder returns the fixed folder prefix uploads are scoped to.
	Folder() string

	// ValidDeliveryURL reports whether the given URL host and path belong
	// to this hosting account.
	ValidDeliveryURL(rawURL string) bool
}

// UploadAuthorization is handed to the client, which performs the actual
// multipart upload directly against the hosting service.
type UploadAuthorization struct {
	CloudName string `json:"cloudName"`
	APIKey    string `json:"apiKey"`
	Folder    string `json:"folder"`
	PublicID  string `json:"publicId"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
}

// Resource is the hosting service's record of an uploaded asset.
type Resource struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bytes     int64  `json:"bytes"`
	Format    string `json:"format"`
}

type Config struct {
	CloudName  string
	APIKey     string
	APISecret  string
	Folder     string
	APIBaseURL string
}

type Client struct {
	httpClient *http.Client
	cloudName  string
	apiKey     string
	apiSecret  string
	folder     string
	baseURL    string
}

func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cloudName:  cfg.CloudName,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		folder:     strings.TrimSuffix(cfg.Folder, "/"),
		baseURL:    strings.TrimSuffix(cfg.APIBaseURL, "/"),
	}
}

func (c *Client) Folder() string {
	return c.folder
}

func (c *Client) SignUpload() (*UploadAuthorization, error) {
	// The public id is server-generated: clients never pick their own, which
	// rules out path traversal and overwriting another user's asset.
	publicID := uuid.New().String()
	timestamp := time.Now().Unix()

	params := map[string]string{
		"folder":    c.folder,
		"public_id": publicID,
		"timestamp": fmt.Sprintf("%d", timestamp),
	}

	return &UploadAuthorization{
		CloudName: c.cloudName,
		APIKey:    c.apiKey,
		Folder:    c.folder,
		PublicID:  publicID,
		Timestamp: timestamp,
		Signature: c.sign(params),
	}, nil
}

// sign computes the upload signature: SHA-1 over the sorted parameter string
// with the API secret appended.
func (c *Client) sign(params map[string]string) string {
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

func (c *Client) Resource(publicID string) (*Resource, error) {
	endpoint := fmt.Sprintf("%s/v1_1/%s/resources/image/upload/%s", c.baseURL, c.cloudName, publicID)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch resource: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("image host returned status %d: %s", resp.StatusCode, string(body))
	}

	resource := &Resource{}
	err = json.NewDecoder(resp.Body).Decode(resource)
	if err != nil {
		return nil, fmt.Errorf("failed to decode resource response: %w", err)
	}

	return resource, nil
}

// ValidDeliveryURL requires an https delivery URL on the hosting CDN scoped to
// this cloud.
func (c *Client) ValidDeliveryURL(rawURL string) bool {
	return validDeliveryURL(rawURL, c.cloudName)
}
