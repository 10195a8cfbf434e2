// Package catalog looks up per-100g nutrient profiles for foods by name
// against the coaching platform's food catalog API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const defaultBaseURL = "https://api.totalgains.app"

// FoodProfile is a catalog hit: nutrients normalized to 100 g, plus an
// optional serving definition ("1 unidad weighs 35 g").
type FoodProfile struct {
	Name          string
	Kcal          float64
	ProteinG      float64
	CarbsG        float64
	FatG          float64
	ServingUnit   string
	ServingWeight float64
}

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client

	cache *gocache.Cache
}

// NewClient builds a catalog client with a 15-minute lookup cache so
// repeated edits of the same food do not refetch the profile.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		cache:   gocache.New(15*time.Minute, 30*time.Minute),
	}
}

type searchResponse struct {
	Foods []struct {
		Name      string `json:"name"`
		Nutrients struct {
			Kcal    float64 `json:"kcal"`
			Protein float64 `json:"protein"`
			Carbs   float64 `json:"carbs"`
			Fat     float64 `json:"fat"`
		} `json:"nutrients"`
		ServingSize *struct {
			Unit   string  `json:"unit"`
			Weight float64 `json:"weight"`
		} `json:"servingSize"`
	} `json:"foods"`
}

// Search returns catalog foods matching the query, best match first.
func (c *Client) Search(ctx context.Context, query string) ([]FoodProfile, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}

	cacheKey := strings.ToLower(query)
	if c.cache != nil {
		if hit, ok := c.cache.Get(cacheKey); ok {
			return hit.([]FoodProfile), nil
		}
	}

	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	reqURL := fmt.Sprintf("%s/foods/search?q=%s", base, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog search %q: %w", query, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog search %q: unexpected status %d", query, resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	profiles := make([]FoodProfile, 0, len(decoded.Foods))
	for _, f := range decoded.Foods {
		p := FoodProfile{
			Name:     f.Name,
			Kcal:     f.Nutrients.Kcal,
			ProteinG: f.Nutrients.Protein,
			CarbsG:   f.Nutrients.Carbs,
			FatG:     f.Nutrients.Fat,
		}
		if f.ServingSize != nil && f.ServingSize.Weight > 0 {
			p.ServingUnit = f.ServingSize.Unit
			p.ServingWeight = f.ServingSize.Weight
		}
		profiles = append(profiles, p)
	}

	if c.cache != nil {
		c.cache.Set(cacheKey, profiles, gocache.DefaultExpiration)
	}
	return profiles, nil
}

// Lookup returns the best catalog match for a food name.
func (c *Client) Lookup(ctx context.Context, name string) (FoodProfile, error) {
	profiles, err := c.Search(ctx, name)
	if err != nil {
		return FoodProfile{}, err
	}
	if len(profiles) == 0 {
		return FoodProfile{}, fmt.Errorf("no catalog match for %q", name)
	}
	return profiles[0], nil
}
