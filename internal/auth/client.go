package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrRejected is returned when the backend refuses the request.
var ErrRejected = errors.New("rejected by auth backend")

// APIError is the error body returned by the backend.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth backend returned %d", e.Status)
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return ErrRejected }

// Response is returned by the register and login endpoints.
type Response struct {
	Token string `json:"token"`
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Client is a thin HTTP client for the auth backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the backend rooted at baseURL
// (e.g. http://localhost:8080/api/v1/auth).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Login posts credentials to /login.
func (c *Client) Login(ctx context.Context, email, password string) (*Response, error) {
	var resp Response
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register posts a new account to /register.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Response, error) {
	var resp Response
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.post(ctx, "/register", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env struct {
			Error APIError `json:"error"`
		}
		apiErr := &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		if json.Unmarshal(respBody, &env) == nil && env.Error.Code != "" {
			apiErr = &env.Error
			apiErr.Status = resp.StatusCode
		}
		return apiErr
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from POST %s: %w", path, err)
	}
	return nil
}
