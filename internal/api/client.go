// Package api is the REST client for the invoice-generator backend.
//
// Endpoints:
//
//	POST /login            {email, password}        -> {user, token}
//	POST /register         {name, email, password}  -> 200 | {message}
//	GET  /products         Bearer auth              -> {products}
//	POST /addProduct       Bearer auth, Product     -> 200 | {message}
//	GET  /generate-invoice Bearer auth              -> {url}
//
// Non-2xx responses become *ServerError carrying the server's message; any
// other failure is a transport (network) error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/levitation-labs/invoicegen/internal/model"
)

// Client talks to one backend base URL with a fixed per-request timeout.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL. A zero timeout means no client-side
// timeout, matching browser fetch semantics.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupInput is the registration request body.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the successful login response.
type LoginResult struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Login authenticates with email/password.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var out LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/login", "", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, in SignupInput) error {
	return c.doJSON(ctx, http.MethodPost, "/register", "", in, nil)
}

// Products fetches the caller's product list.
func (c *Client) Products(ctx context.Context, token string) ([]model.Product, error) {
	var out struct {
		Products []model.Product `json:"products"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/products", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// AddProduct persists one product.
func (c *Client) AddProduct(ctx context.Context, token string, p model.Product) error {
	return c.doJSON(ctx, http.MethodPost, "/addProduct", token, p, nil)
}

// GenerateInvoice asks the backend to render an invoice and returns the
// download URL for the generated document.
func (c *Client) GenerateInvoice(ctx context.Context, token string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/generate-invoice", token, nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// doJSON performs one JSON round trip. token may be empty for the auth
// endpoints. out may be nil when the body is not needed.
func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	// correlate client and server logs
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newServerError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
