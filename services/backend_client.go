package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/accelconnect/restauration-gateway/utils"
)

// BackendError carries the AccelEats backend's status and message through
// to the caller verbatim.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.StatusCode, e.Message)
}

// BackendClient talks to the AccelEats REST API, the authoritative source
// for menus, orders, wallet and settlement. The caller's bearer token is
// forwarded on every request.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewBackendClient(baseURL string) *BackendClient {
	if baseURL == "" {
		baseURL = os.Getenv("ACCELEATS_API_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:9090/api"
	}
	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// doJSON performs one round trip. out may be nil when the response body is
// irrelevant; a non-2xx status becomes a *BackendError holding the body's
// message.
func (b *BackendClient) doJSON(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("backend %s %s -> %d: %s", method, path, resp.StatusCode, string(raw))
		}
		return &BackendError{StatusCode: resp.StatusCode, Message: extractMessage(raw)}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// extractMessage pulls a human-readable message out of an error body,
// falling back to the raw text.
func extractMessage(raw []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
