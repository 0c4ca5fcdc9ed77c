package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/studiowebux/restadmin/internal/types"
)

// GenericErrorMessage is used when a failed response carries no detail
const GenericErrorMessage = "API request failed"

// TLSConfig holds optional TLS/mTLS settings
type TLSConfig struct {
	CertFile           string `json:"certFile,omitempty" yaml:"cert_file,omitempty" mapstructure:"cert_file"`
	KeyFile            string `json:"keyFile,omitempty" yaml:"key_file,omitempty" mapstructure:"key_file"`
	CAFile             string `json:"caFile,omitempty" yaml:"ca_file,omitempty" mapstructure:"ca_file"`
	InsecureSkipVerify bool   `json:"insecureSkipVerify,omitempty" yaml:"insecure_skip_verify,omitempty" mapstructure:"insecure_skip_verify"`
}

// Options configures a Client
type Options struct {
	BaseURL    string
	Headers    map[string]string
	TLS        *TLSConfig
	HTTPClient *http.Client // overrides TLS when set
}

// Client issues JSON requests against a REST API
type Client struct {
	baseURL string
	headers map[string]string
	http    *http.Client
}

// Error is a non-success response from the API
type Error struct {
	Status int
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Detail
}

// NewClient creates a client for the given base URL
func NewClient(opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		var err error
		httpClient, err = buildHTTPClient(opts.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
		}
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		headers: maps.Clone(opts.Headers),
		http:    httpClient,
	}, nil
}

// Do performs one request and returns the parsed JSON body.
// A nil body sends no payload; an empty response body yields nil.
func (c *Client) Do(ctx context.Context, method, path string, body any, headers map[string]string) (any, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if !IsSuccessStatus(resp.StatusCode) {
		return nil, &Error{Status: resp.StatusCode, Detail: detailOf(data)}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	parsed, err := types.DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse response body: %w", err)
	}
	return parsed, nil
}

// List fetches every record of a model
func (c *Client) List(ctx context.Context, model string) ([]types.Record, error) {
	out, err := c.Do(ctx, http.MethodGet, CollectionPath(model), nil, nil)
	if err != nil {
		return nil, err
	}
	return types.RecordsFrom(out)
}

// Models fetches the models the server exposes (GET /api). Entries may be
// bare names or {"name", "fields"} definitions.
func (c *Client) Models(ctx context.Context) ([]types.ModelDef, error) {
	out, err := c.Do(ctx, http.MethodGet, "/api", nil, nil)
	if err != nil {
		return nil, err
	}

	obj, ok := out.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected models response: %T", out)
	}
	list, _ := obj["models"].([]any)
	models := make([]types.ModelDef, 0, len(list))
	for _, entry := range list {
		switch m := entry.(type) {
		case string:
			models = append(models, types.ModelDef{Name: m})
		case map[string]any:
			data, err := json.Marshal(m)
			if err != nil {
				return nil, fmt.Errorf("failed to read model definition: %w", err)
			}
			var def types.ModelDef
			if err := json.Unmarshal(data, &def); err != nil {
				return nil, fmt.Errorf("failed to read model definition: %w", err)
			}
			if def.Name != "" {
				models = append(models, def)
			}
		}
	}
	return models, nil
}

// Create posts a new record and returns the server's reply
func (c *Client) Create(ctx context.Context, model string, record types.Record) (any, error) {
	return c.Do(ctx, http.MethodPost, CollectionPath(model), record, nil)
}

// Update puts a (partial) record and returns the server's reply
func (c *Client) Update(ctx context.Context, model, id string, record types.Record) (any, error) {
	return c.Do(ctx, http.MethodPut, ItemPath(model, id), record, nil)
}

// Delete removes a record
func (c *Client) Delete(ctx context.Context, model, id string) error {
	_, err := c.Do(ctx, http.MethodDelete, ItemPath(model, id), nil, nil)
	return err
}

// CollectionPath returns /api/{model}
func CollectionPath(model string) string {
	return "/api/" + url.PathEscape(model)
}

// ItemPath returns /api/{model}/{id}
func ItemPath(model, id string) string {
	return CollectionPath(model) + "/" + url.PathEscape(id)
}

// detailOf extracts the "detail" message from an error body
func detailOf(data []byte) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return GenericErrorMessage
	}

	switch d := payload.Detail.(type) {
	case string:
		if d != "" {
			return d
		}
	case nil:
	default:
		// Validation errors arrive as a list of objects
		encoded, err := json.Marshal(d)
		if err == nil {
			return string(encoded)
		}
	}
	return GenericErrorMessage
}

// buildHTTPClient creates an HTTP client with optional TLS/mTLS configuration
func buildHTTPClient(tlsConfig *TLSConfig) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if tlsConfig != nil {
		tlsCfg := &tls.Config{
			InsecureSkipVerify: tlsConfig.InsecureSkipVerify,
		}

		// Load client certificate if provided (for mTLS)
		if tlsConfig.CertFile != "" && tlsConfig.KeyFile != "" {
			cert, err := tls.LoadX509KeyPair(tlsConfig.CertFile, tlsConfig.KeyFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load client certificate: %w", err)
			}
			tlsCfg.Certificates = []tls.Certificate{cert}
		}

		// Load CA certificate if provided (for server verification)
		if tlsConfig.CAFile != "" {
			caCert, err := os.ReadFile(tlsConfig.CAFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read CA certificate: %w", err)
			}
			caCertPool := x509.NewCertPool()
			if !caCertPool.AppendCertsFromPEM(caCert) {
				return nil, fmt.Errorf("failed to parse CA certificate")
			}
			tlsCfg.RootCAs = caCertPool
		}

		transport.TLSClientConfig = tlsCfg
	}

	return &http.Client{Transport: transport}, nil
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
