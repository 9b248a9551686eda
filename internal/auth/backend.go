// internal/auth/backend.go
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jobswipe-api/internal/common/errors"
	httpclient "jobswipe-api/internal/common/http"
)

// CredentialVerifier checks login credentials against an identity source.
type CredentialVerifier interface {
	Verify(ctx context.Context, creds Credentials) error
}

// BackendClient verifies credentials against the external auth backend.
// This service never stores passwords; it only signs tokens for identities
// the backend accepts.
type BackendClient struct {
	baseURL string
	client  *httpclient.Client
}

func NewBackendClient(baseURL string, timeout time.Duration) *BackendClient {
	return &BackendClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  httpclient.NewClient(timeout),
	}
}

// Verify posts the credentials to the backend's verify endpoint. A 200 means
// the credentials are valid; a 401/403 means they are not; anything else is
// a backend failure.
func (b *BackendClient) Verify(ctx context.Context, creds Credentials) error {
	payload, err := json.Marshal(creds)
	if err != nil {
		return errors.NewAuthBackendFailedError(err)
	}

	verifyURL := fmt.Sprintf("%s/v1/credentials/verify", b.baseURL)
	req, err := http.NewRequest(http.MethodPost, verifyURL, bytes.NewReader(payload))
	if err != nil {
		return errors.NewAuthBackendFailedError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.DoWithContext(ctx, req)
	if err != nil {
		return errors.NewAuthBackendFailedError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.NewAuthenticationFailedError("credential backend rejected login")
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errors.NewAuthBackendFailedError(
			fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(body)))
	}
}
