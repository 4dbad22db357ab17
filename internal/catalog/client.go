package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/flicktrack/flicktrack/internal/apperror"
	"github.com/flicktrack/flicktrack/internal/config"
)

// Catalog is the read-only movie catalog contract. The HTTP client and the
// Redis cache both implement it, so handlers never know whether a response
// came from TMDB or from cache.
type Catalog interface {
	Movie(ctx context.Context, id int) (*MovieDetail, error)
	MovieList(ctx context.Context, kind ListKind, page int) ([]Movie, error)
	Reviews(ctx context.Context, id int) ([]Review, error)
	Similar(ctx context.Context, id int) ([]Movie, error)
	WatchProviders(ctx context.Context, id int) ([]Provider, error)
	AllProviders(ctx context.Context) ([]Provider, error)
}

// Client talks to the TMDB v3 API with a server-side bearer token.
type Client struct {
	baseURL string
	token   string
	region  string
	http    *http.Client
}

// NewClient creates a catalog client from config. The http.Client timeout
// bounds every outbound request.
func NewClient(cfg config.CatalogConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.AccessToken,
		region:  cfg.Region,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Movie fetches full movie details with trailers appended in one request.
func (c *Client) Movie(ctx context.Context, id int) (*MovieDetail, error) {
	q := url.Values{}
	q.Set("language", "en-US")
	q.Set("append_to_response", "videos")

	detail := &MovieDetail{}
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id), q, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// MovieList fetches one page of a catalog list. Unknown kinds fall back to
// the discover feed, matching how the browse page treats filter tabs.
func (c *Client) MovieList(ctx context.Context, kind ListKind, page int) ([]Movie, error) {
	q := url.Values{}
	q.Set("language", "en-US")
	q.Set("page", strconv.Itoa(page))

	var path string
	switch kind {
	case ListNew:
		path = "/movie/now_playing"
	case ListPopular:
		path = "/movie/popular"
	case ListHighlyRated:
		path = "/movie/top_rated"
	default:
		path = "/discover/movie"
		q.Set("sort_by", "popularity.desc")
		q.Set("include_adult", "false")
		q.Set("include_video", "false")
	}

	var body struct {
		Results []Movie `json:"results"`
	}
	if err := c.get(ctx, path, q, &body); err != nil {
		return nil, err
	}
	if body.Results == nil {
		body.Results = make([]Movie, 0)
	}
	return body.Results, nil
}

// Reviews fetches reviews for a movie, flattened to author/content/rating.
func (c *Client) Reviews(ctx context.Context, id int) ([]Review, error) {
	var body struct {
		Results []struct {
			Author        string `json:"author"`
			Content       string `json:"content"`
			AuthorDetails struct {
				Rating *float64 `json:"rating"`
			} `json:"author_details"`
		} `json:"results"`
	}
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id)+"/reviews", nil, &body); err != nil {
		return nil, err
	}

	reviews := make([]Review, 0, len(body.Results))
	for _, r := range body.Results {
		reviews = append(reviews, Review{
			Author:  r.Author,
			Content: r.Content,
			Rating:  r.AuthorDetails.Rating,
		})
	}
	return reviews, nil
}

// Similar fetches recommendations for a movie.
func (c *Client) Similar(ctx context.Context, id int) ([]Movie, error) {
	var body struct {
		Results []Movie `json:"results"`
	}
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id)+"/recommendations", nil, &body); err != nil {
		return nil, err
	}
	if body.Results == nil {
		body.Results = make([]Movie, 0)
	}
	return body.Results, nil
}

// WatchProviders returns the flat-rate streaming providers offering a movie
// in the configured region. A movie with no providers in the region yields
// an empty list, not an error.
func (c *Client) WatchProviders(ctx context.Context, id int) ([]Provider, error) {
	var body struct {
		Results map[string]struct {
			Flatrate []Provider `json:"flatrate"`
		} `json:"results"`
	}
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id)+"/watch/providers", nil, &body); err != nil {
		return nil, err
	}

	regional, ok := body.Results[c.region]
	if !ok || regional.Flatrate == nil {
		return make([]Provider, 0), nil
	}
	return regional.Flatrate, nil
}

// AllProviders returns every streaming provider available in the configured
// region, sorted by TMDB's display priority.
func (c *Client) AllProviders(ctx context.Context) ([]Provider, error) {
	q := url.Values{}
	q.Set("watch_region", c.region)

	var body struct {
		Results []struct {
			Provider
			DisplayPriority int `json:"display_priority"`
		} `json:"results"`
	}
	if err := c.get(ctx, "/watch/providers/movie", q, &body); err != nil {
		return nil, err
	}

	sort.SliceStable(body.Results, func(i, j int) bool {
		return body.Results[i].DisplayPriority < body.Results[j].DisplayPriority
	})

	providers := make([]Provider, 0, len(body.Results))
	for _, r := range body.Results {
		providers = append(providers, r.Provider)
	}
	return providers, nil
}

// get performs an authenticated GET and decodes the JSON body into out.
// Upstream failures are wrapped so no TMDB detail leaks to clients.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return apperror.NewUpstream(fmt.Errorf("building catalog request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.NewUpstream(fmt.Errorf("calling catalog: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperror.NewNotFound("movie not found")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return apperror.NewUpstream(fmt.Errorf("catalog returned status %d for %s", resp.StatusCode, path))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewUpstream(fmt.Errorf("decoding catalog response: %w", err))
	}
	return nil
}
