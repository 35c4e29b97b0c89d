package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const rpcPath = "/rest/v1/rpc/"

// HTTPConfig configures the PostgREST RPC client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	Schema     string
	HTTPClient *http.Client
}

// HTTPClient calls parameterless Postgres functions through the Supabase REST
// gateway. It implements admin.ProcedureCaller.
type HTTPClient struct {
	baseURL string
	apiKey  string
	schema  string
	client  *http.Client
}

// NewHTTPClient builds a client for the project at cfg.BaseURL.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("supabase: base url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("supabase: invalid base url: %w", err)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("supabase: api key is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPClient{
		baseURL: base,
		apiKey:  cfg.APIKey,
		schema:  cfg.Schema,
		client:  httpClient,
	}, nil
}

// Call invokes the named function and returns the raw JSON body.
func (c *HTTPClient) Call(ctx context.Context, procedure string) (json.RawMessage, error) {
	procedure = strings.TrimSpace(procedure)
	if procedure == "" {
		return nil, fmt.Errorf("supabase: procedure name is required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+rpcPath+url.PathEscape(procedure), bytes.NewReader([]byte("{}")))
	if err != nil {
		return nil, fmt.Errorf("supabase: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.schema != "" {
		req.Header.Set("Content-Profile", c.schema)
		req.Header.Set("Accept-Profile", c.schema)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase: http request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("supabase: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, newRemoteError(resp.StatusCode, body)
	}
	return json.RawMessage(body), nil
}
