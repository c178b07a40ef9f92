// Package registry resolves JSON schema sources. A registry is loaded
// from a schemas.json config listing entries by id; sources may be local
// file paths or http(s) URLs. Remote fetches share one HTTP client and a
// rate limiter so link resolution stays polite to schema hosts.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Entry describes one registered schema.
type Entry struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Source        string   `json:"source"`
	SchemaVersion string   `json:"schemaVersion"`
	Links         []string `json:"links"`
}

type config struct {
	Schemas []Entry `json:"schemas"`
}

// Registry maps schema ids to their sources and fetches schema content.
type Registry struct {
	entries map[string]Entry
	order   []string
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures a Registry.
type Option func(*Registry)

// WithHTTPClient replaces the HTTP client used for remote sources.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Registry) { r.client = client }
}

// WithRateLimit caps remote fetches at n per second.
func WithRateLimit(n float64) Option {
	return func(r *Registry) { r.limiter = rate.NewLimiter(rate.Limit(n), 1) }
}

// Load reads a schemas.json config and returns the registry it
// describes.
func Load(path string, opts ...Option) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}
	return Parse(data, opts...)
}

// Parse builds a registry from raw schemas.json content.
func Parse(data []byte, opts ...Option) (*Registry, error) {
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed schemas config: %w", err)
	}
	r := &Registry{
		entries: make(map[string]Entry, len(cfg.Schemas)),
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(4), 1),
	}
	for _, e := range cfg.Schemas {
		if e.ID == "" {
			continue
		}
		if _, ok := r.entries[e.ID]; !ok {
			r.order = append(r.order, e.ID)
		}
		r.entries[e.ID] = e
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// IDs returns the known schema ids in config order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Lookup returns the entry registered under id.
func (r *Registry) Lookup(id string) (Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// GetSource returns the schema content for an id, URL or file path. Ids
// resolve through the registry first; anything else is treated as a
// source string directly.
func (r *Registry) GetSource(ctx context.Context, idOrSource string) (string, error) {
	source := idOrSource
	if e, ok := r.entries[idOrSource]; ok {
		source = e.Source
	}
	if isHTTPURL(source) {
		return r.fetch(ctx, source)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("cannot read schema %q: %w", idOrSource, err)
	}
	return string(data), nil
}

// ResolveLinks returns the schema content for idOrSource and,
// recursively, every linked schema, keyed by id. Cycles between links
// are visited once.
func (r *Registry) ResolveLinks(ctx context.Context, idOrSource string) (map[string]string, error) {
	resolved := make(map[string]string)
	if err := r.resolve(ctx, idOrSource, resolved); err != nil {
		return nil, err
	}
	return resolved, nil
}

func (r *Registry) resolve(ctx context.Context, idOrSource string, resolved map[string]string) error {
	if _, ok := resolved[idOrSource]; ok {
		return nil
	}
	content, err := r.GetSource(ctx, idOrSource)
	if err != nil {
		return err
	}
	resolved[idOrSource] = content
	if e, ok := r.entries[idOrSource]; ok {
		for _, link := range e.Links {
			if err := r.resolve(ctx, link, resolved); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Registry) fetch(ctx context.Context, url string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cannot fetch schema %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cannot fetch schema %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
