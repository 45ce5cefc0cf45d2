// Package api is the HTTP client for the custody server. It speaks the
// transfer protocol only: envelopes go up and come back as opaque bytes,
// encryption and decryption stay with the caller.
package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultHTTPTimeout = 30 * time.Second

// ObjectInfo is the metadata the server returns for a stored object.
type ObjectInfo struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

type credentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type contentResponse struct {
	Ciphertext  string `json:"ciphertext"`
	ContentType string `json:"content_type"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// APIError carries the HTTP status and server message of a failed call.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client talks to one custody server with one access token.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewClient creates a client for baseURL. token may be empty for the
// register and login calls.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultHTTPTimeout},
		token:   token,
	}
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, login, password string) error {
	return c.do(ctx, http.MethodPost, "/api/users/register",
		credentialsRequest{Login: login, Password: password}, nil)
}

// Login exchanges credentials for an access token and stores it on the
// client for subsequent calls.
func (c *Client) Login(ctx context.Context, login, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/users/login",
		credentialsRequest{Login: login, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	c.token = resp.AccessToken
	return resp.AccessToken, nil
}

// Upload sends an encrypted envelope as a multipart form.
func (c *Client) Upload(ctx context.Context, envelope []byte, displayName, contentType string) (ObjectInfo, error) {
	var info ObjectInfo

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("envelope", displayName)
	if err != nil {
		return info, err
	}
	if _, err := part.Write(envelope); err != nil {
		return info, err
	}
	if err := mw.WriteField("display_name", displayName); err != nil {
		return info, err
	}
	if err := mw.WriteField("content_type", contentType); err != nil {
		return info, err
	}
	if err := mw.Close(); err != nil {
		return info, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/objects", &buf)
	if err != nil {
		return info, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return info, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return info, decodeError(resp)
	}
	err = json.NewDecoder(resp.Body).Decode(&info)
	return info, err
}

// List returns the caller's objects, newest first.
func (c *Client) List(ctx context.Context) ([]ObjectInfo, error) {
	var list []ObjectInfo
	err := c.do(ctx, http.MethodGet, "/api/objects", nil, &list)
	return list, err
}

// FetchContent returns the envelope bytes and declared content type of one
// object.
func (c *Client) FetchContent(ctx context.Context, id string) ([]byte, string, error) {
	var resp contentResponse
	err := c.do(ctx, http.MethodGet, "/api/objects/"+url.PathEscape(id)+"/content", nil, &resp)
	if err != nil {
		return nil, "", err
	}

	data, err := base64.StdEncoding.DecodeString(resp.Ciphertext)
	if err != nil {
		return nil, "", fmt.Errorf("decode envelope: %w", err)
	}
	return data, resp.ContentType, nil
}

// Remove deletes one object.
func (c *Client) Remove(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/objects/"+url.PathEscape(id), nil, nil)
}

func (c *Client) setAuthHeader(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Message == "" {
		body.Message = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: body.Message}
}
