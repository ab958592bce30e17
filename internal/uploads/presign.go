// Package uploads coordinates the presign / transfer / confirm protocol
// against the external object-storage worker.
package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PresignClient talks to the presigning worker.
type PresignClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewPresignClient constructs a client for the worker at baseURL.
func NewPresignClient(baseURL, accessToken string) *PresignClient {
	return &PresignClient{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// PrepareRequest describes the object to be written.
type PrepareRequest struct {
	FileName  string `json:"fileName"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
}

// PresignedUpload is a scoped, time-limited write grant.
type PresignedUpload struct {
	URL       string `json:"url"`
	ObjectKey string `json:"objectKey"`
}

// PresignedView is a scoped, time-limited read grant.
type PresignedView struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expiresIn"`
}

// PreparePut requests a pre-signed write URL and object key.
func (c *PresignClient) PreparePut(ctx context.Context, req PrepareRequest) (*PresignedUpload, error) {
	var out PresignedUpload
	if err := c.post(ctx, "/presign/put", req, &out); err != nil {
		return nil, fmt.Errorf("uploads: prepare put: %w", err)
	}
	if out.URL == "" || out.ObjectKey == "" {
		return nil, fmt.Errorf("uploads: prepare put: incomplete grant")
	}
	return &out, nil
}

// PresignGet requests a pre-signed read URL for an existing object.
func (c *PresignClient) PresignGet(ctx context.Context, objectKey string) (*PresignedView, error) {
	var out PresignedView
	body := map[string]string{"objectKey": objectKey}
	if err := c.post(ctx, "/presign/get", body, &out); err != nil {
		return nil, fmt.Errorf("uploads: presign get: %w", err)
	}
	if out.URL == "" {
		return nil, fmt.Errorf("uploads: presign get: empty url")
	}
	return &out, nil
}

func (c *PresignClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("worker returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
