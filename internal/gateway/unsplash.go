package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/go-querystring/query"
	"github.com/naka-gawa/portfolio-stats/internal/config"
	"github.com/naka-gawa/portfolio-stats/internal/domain"
	"github.com/sirupsen/logrus"
)

const defaultUnsplashURL = "https://api.unsplash.com"

// ImageSearcher defines the behavior of a gateway searching for photos.
type ImageSearcher interface {
	// SearchImage returns the top-ranked photo for query, or nil when the
	// provider has no match.
	SearchImage(ctx context.Context, query, orientation string) (*domain.ImageResult, error)
}

// UnsplashGateway is the concrete implementation of the ImageSearcher interface.
type UnsplashGateway struct {
	httpClient *http.Client
	baseURL    string
	accessKey  string
	logger     logrus.FieldLogger
}

// searchParams is encoded into the search/photos query string.
type searchParams struct {
	Query       string `url:"query"`
	Page        int    `url:"page"`
	PerPage     int    `url:"per_page"`
	OrderBy     string `url:"order_by"`
	Orientation string `url:"orientation"`
}

type searchResponse struct {
	Results *[]unsplashPhoto `json:"results"`
}

type unsplashPhoto struct {
	ID          string  `json:"id"`
	Description *string `json:"description"`
	URLs        struct {
		Regular string `json:"regular"`
		Thumb   string `json:"thumb"`
	} `json:"urls"`
	Width  *int `json:"width"`
	Height *int `json:"height"`
}

// NewUnsplashGateway creates an UnsplashGateway. It fails with
// domain.ErrConfiguration when no access key is configured.
func NewUnsplashGateway(cfg config.UnsplashConfig, httpClient *http.Client, logger logrus.FieldLogger) (ImageSearcher, error) {
	if cfg.AccessKey == "" {
		return nil, fmt.Errorf("%w: missing %s environment variable", domain.ErrConfiguration, strings.Join(config.UnsplashKeyNames, " or "))
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultUnsplashURL
	}
	return &UnsplashGateway{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		accessKey:  cfg.AccessKey,
		logger:     logger,
	}, nil
}

// SearchImage asks for one relevance-ordered result and normalizes it.
// Transport failures wrap domain.ErrTransport and unexpected payloads wrap
// domain.ErrMalformedResponse; callers decide whether to keep going.
func (g *UnsplashGateway) SearchImage(ctx context.Context, q, orientation string) (*domain.ImageResult, error) {
	if orientation == "" {
		orientation = domain.DefaultOrientation
	}
	values, err := query.Values(searchParams{
		Query:       q,
		Page:        1,
		PerPage:     1,
		OrderBy:     "relevant",
		Orientation: orientation,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search parameters: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search/photos?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Accept-Version", "v1")
	req.Header.Set("Authorization", "Client-ID "+g.accessKey)

	g.logger.WithField("query", q).Debug("Searching Unsplash...")
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: search request failed: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: Unsplash API returned status: %d", domain.ErrTransport, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", domain.ErrTransport, err)
	}

	var data searchResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal search results: %w", domain.ErrMalformedResponse, err)
	}
	if data.Results == nil {
		return nil, fmt.Errorf("%w: response has no results field", domain.ErrMalformedResponse)
	}
	if len(*data.Results) == 0 {
		return nil, nil
	}

	photo := (*data.Results)[0]
	if photo.ID == "" || photo.URLs.Regular == "" || photo.URLs.Thumb == "" {
		return nil, fmt.Errorf("%w: top result is missing id or urls", domain.ErrMalformedResponse)
	}
	if photo.Width == nil || photo.Height == nil {
		return nil, fmt.Errorf("%w: top result is missing dimensions", domain.ErrMalformedResponse)
	}
	result := &domain.ImageResult{
		ID:      photo.ID,
		Regular: photo.URLs.Regular,
		Thumb:   photo.URLs.Thumb,
		Width:   *photo.Width,
		Height:  *photo.Height,
	}
	if photo.Description != nil {
		result.Description = *photo.Description
	}
	return result, nil
}
