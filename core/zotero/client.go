package zotero

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Store defines the remote collection store operations the engine consumes.
// All mutating calls are idempotent at this boundary: adding an item that is
// already a member, or removing one that is absent, is a no-op.
type Store interface {
	// ListCollections fetches the full collection forest.
	ListCollections(ctx context.Context) ([]Collection, error)
	// CollectionItemKeys returns the item keys currently in a collection.
	CollectionItemKeys(ctx context.Context, collectionKey string) ([]string, error)
	// CreateCollection creates a collection under the given parent.
	// An empty parentKey creates a top-level collection.
	CreateCollection(ctx context.Context, parentKey, name string) (Collection, error)
	// AddItems adds the given items to a collection. Returns the number
	// of items actually modified.
	AddItems(ctx context.Context, collectionKey string, itemKeys []string) (int, error)
	// RemoveItems removes the given items from a collection. Returns the
	// number of items actually modified.
	RemoveItems(ctx context.Context, collectionKey string, itemKeys []string) (int, error)
}

// batchSize is the Zotero API write batch limit.
const batchSize = 50

// APIError is a non-2xx response from the Zotero Web API.
type APIError struct {
	Code   int
	Status string
	Body   string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("zotero API error %d %s: %s", e.Code, e.Status, body)
}

// Client is an HTTP implementation of Store against the Zotero Web API v3.
type Client struct {
	base   string
	apiKey string
	http   *http.Client
}

var _ Store = (*Client)(nil)

// NewClient creates a new Zotero Web API client based on the configuration.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure timeout defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Create custom transport with strict timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration, // Connection setup timeout
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	base := fmt.Sprintf("%s/%ss/%s", strings.TrimRight(cfg.BaseURL, "/"), cfg.LibraryType, cfg.LibraryID)

	return &Client{
		base:   base,
		apiKey: cfg.APIKey,
		http:   &http.Client{Transport: transport},
	}, nil
}

// request performs one API call and decodes the JSON response into out
// (when out is non-nil). It returns the response headers.
func (c *Client) request(ctx context.Context, method, path string, params url.Values, payload any, out any) (http.Header, error) {
	u := c.base + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Zotero-API-Key", c.apiKey)
	req.Header.Set("Zotero-API-Version", "3")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zotero request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Code: resp.StatusCode, Status: resp.Status, Body: string(raw)}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.Header, nil
}

// apiCollection is the wire shape of one collection entry.
type apiCollection struct {
	Key  string `json:"key"`
	Data struct {
		Key     string `json:"key"`
		Name    string `json:"name"`
		Version int    `json:"version"`
		// false for top-level collections, otherwise the parent key
		ParentCollection any `json:"parentCollection"`
	} `json:"data"`
	Meta struct {
		NumItems int `json:"numItems"`
	} `json:"meta"`
}

func (a apiCollection) toCollection() Collection {
	parent := ""
	if s, ok := a.Data.ParentCollection.(string); ok {
		parent = s
	}
	key := a.Data.Key
	if key == "" {
		key = a.Key
	}
	return Collection{
		Key:       key,
		Name:      a.Data.Name,
		ParentKey: parent,
		Version:   a.Data.Version,
		NumItems:  a.Meta.NumItems,
	}
}

// ListCollections fetches all collections, following pagination.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	var collections []Collection
	start := 0
	limit := 100
	for {
		params := url.Values{
			"start": {strconv.Itoa(start)},
			"limit": {strconv.Itoa(limit)},
		}
		var page []apiCollection
		headers, err := c.request(ctx, http.MethodGet, "/collections", params, nil, &page)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		for _, a := range page {
			collections = append(collections, a.toCollection())
		}
		total, err := strconv.Atoi(headers.Get("Total-Results"))
		if err != nil {
			total = len(collections)
		}
		start += limit
		if start >= total {
			break
		}
	}
	return collections, nil
}

// CollectionItemKeys fetches the membership of a collection using the
// keys response format (one item key per line).
func (c *Client) CollectionItemKeys(ctx context.Context, collectionKey string) ([]string, error) {
	params := url.Values{"format": {"keys"}}
	u := c.base + "/collections/" + collectionKey + "/items?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Zotero-API-Key", c.apiKey)
	req.Header.Set("Zotero-API-Version", "3")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zotero request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Code: resp.StatusCode, Status: resp.Status, Body: string(raw)}
	}

	var keys []string
	for _, line := range strings.Split(string(raw), "\n") {
		if k := strings.TrimSpace(line); k != "" {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// createResponse is the wire shape of a write response.
type createResponse struct {
	Successful map[string]apiCollection `json:"successful"`
	Failed     map[string]struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"failed"`
}

// CreateCollection creates one collection under the given parent.
func (c *Client) CreateCollection(ctx context.Context, parentKey, name string) (Collection, error) {
	payload := map[string]any{"name": name}
	if parentKey != "" {
		payload["parentCollection"] = parentKey
	}

	var resp createResponse
	if _, err := c.request(ctx, http.MethodPost, "/collections", nil, []any{payload}, &resp); err != nil {
		return Collection{}, err
	}
	for _, a := range resp.Successful {
		return a.toCollection(), nil
	}
	for _, f := range resp.Failed {
		return Collection{}, &APIError{Code: f.Code, Status: "collection create failed", Body: f.Message}
	}
	return Collection{}, fmt.Errorf("collection create returned no result for %q", name)
}

// apiItem is the wire shape of one library item.
type apiItem struct {
	Key  string `json:"key"`
	Data struct {
		Key         string   `json:"key"`
		Version     int      `json:"version"`
		Collections []string `json:"collections"`
	} `json:"data"`
}

// itemUpdate patches an item's collection membership.
type itemUpdate struct {
	Key         string   `json:"key"`
	Version     int      `json:"version"`
	Collections []string `json:"collections"`
}

// AddItems adds items to a collection by patching their collections
// arrays in batches. Items already in the collection are left untouched.
func (c *Client) AddItems(ctx context.Context, collectionKey string, itemKeys []string) (int, error) {
	return c.patchItems(ctx, collectionKey, itemKeys, true)
}

// RemoveItems removes items from a collection in batches. Items not in
// the collection are left untouched.
func (c *Client) RemoveItems(ctx context.Context, collectionKey string, itemKeys []string) (int, error) {
	return c.patchItems(ctx, collectionKey, itemKeys, false)
}

func (c *Client) patchItems(ctx context.Context, collectionKey string, itemKeys []string, add bool) (int, error) {
	modified := 0
	for i := 0; i < len(itemKeys); i += batchSize {
		end := i + batchSize
		if end > len(itemKeys) {
			end = len(itemKeys)
		}
		batch := itemKeys[i:end]

		params := url.Values{
			"itemKey": {strings.Join(batch, ",")},
			"format":  {"json"},
		}
		var items []apiItem
		if _, err := c.request(ctx, http.MethodGet, "/items", params, nil, &items); err != nil {
			return modified, err
		}

		var updates []itemUpdate
		for _, item := range items {
			collections := item.Data.Collections
			member := false
			for _, k := range collections {
				if k == collectionKey {
					member = true
					break
				}
			}
			switch {
			case add && !member:
				updates = append(updates, itemUpdate{
					Key:         item.Data.Key,
					Version:     item.Data.Version,
					Collections: append(collections, collectionKey),
				})
			case !add && member:
				kept := make([]string, 0, len(collections)-1)
				for _, k := range collections {
					if k != collectionKey {
						kept = append(kept, k)
					}
				}
				updates = append(updates, itemUpdate{
					Key:         item.Data.Key,
					Version:     item.Data.Version,
					Collections: kept,
				})
			}
		}

		if len(updates) > 0 {
			if _, err := c.request(ctx, http.MethodPost, "/items", nil, updates, nil); err != nil {
				return modified, err
			}
			modified += len(updates)
		}
	}
	return modified, nil
}
