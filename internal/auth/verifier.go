// file: internal/auth/verifier.go
// version: 1.2.0
// guid: 8f3c6a1d-4e7b-4d2a-9c5f-1b8e4d7a0c3f

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// Identity is the authenticated principal attached to a request after token
// verification. It is immutable for the duration of the request and never
// persisted.
type Identity struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

// Sentinel errors; all of them map to HTTP 401 at the route layer.
var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Verifier validates a bearer token and yields the user identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Credentials is the service account material used to call the identity
// provider.
type Credentials struct {
	APIKey    string `json:"api_key"`
	ProjectID string `json:"project_id,omitempty"`
}

// LoadCredentials reads service credentials from a JSON file.
func LoadCredentials(path string) (*Credentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials %s: %w", path, err)
	}
	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials %s: %w", path, err)
	}
	if creds.APIKey == "" {
		return nil, fmt.Errorf("credentials %s: api_key is required", path)
	}
	return &creds, nil
}

// HTTPVerifier verifies tokens against a remote identity provider's
// accounts:lookup endpoint.
type HTTPVerifier struct {
	endpoint  string
	projectID string
	apiKey    string
	client    *http.Client
}

// NewHTTPVerifier creates a verifier for the given provider endpoint.
func NewHTTPVerifier(endpoint, projectID string, creds *Credentials) *HTTPVerifier {
	v := &HTTPVerifier{
		endpoint:  strings.TrimRight(endpoint, "/"),
		projectID: projectID,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
	if creds != nil {
		v.apiKey = creds.APIKey
	}
	return v
}

type lookupRequest struct {
	IDToken   string `json:"id_token"`
	ProjectID string `json:"project_id"`
}

type lookupResponse struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Error         struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Verify posts the token to the provider and decodes the identity.
func (v *HTTPVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	body, err := json.Marshal(lookupRequest{IDToken: token, ProjectID: v.projectID})
	if err != nil {
		return nil, err
	}

	url := v.endpoint + "/v1/accounts:lookup"
	if v.apiKey != "" {
		url += "?key=" + v.apiKey
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	var decoded lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("identity provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if strings.Contains(decoded.Error.Message, "EXPIRED") {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if decoded.UID == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UID:           decoded.UID,
		Email:         decoded.Email,
		EmailVerified: decoded.EmailVerified,
	}, nil
}

// MockVerifier is a func-backed verifier for tests.
type MockVerifier struct {
	VerifyFunc func(ctx context.Context, token string) (*Identity, error)
}

func (m *MockVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	return nil, ErrInvalidToken
}
