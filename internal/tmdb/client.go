package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Result represents a single TMDB search match or detail payload.
type Result struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Name          string  `json:"name"`
	OriginalTitle string  `json:"original_title"`
	OriginalName  string  `json:"original_name"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	FirstAirDate  string  `json:"first_air_date"`
	PosterPath    string  `json:"poster_path"`
	Popularity    float64 `json:"popularity"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int64   `json:"vote_count"`
}

// Response models the TMDB paginated search response.
type Response struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// TranslationData carries the localized fields of one translation.
type TranslationData struct {
	Title    string `json:"title"`
	Name     string `json:"name"`
	Overview string `json:"overview"`
}

// Translation is one localized title/overview variant.
type Translation struct {
	ISO3166 string          `json:"iso_3166_1"`
	ISO639  string          `json:"iso_639_1"`
	Data    TranslationData `json:"data"`
}

// Translations models the TMDB translations payload for one record.
type Translations struct {
	ID           int64         `json:"id"`
	Translations []Translation `json:"translations"`
}

// SearchOptions contains optional search parameters.
type SearchOptions struct {
	Year int
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRateLimit overrides the default request rate limit.
func WithRateLimit(limiter *rate.Limiter) Option {
	return func(c *Client) {
		if limiter != nil {
			c.limiter = limiter
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}

	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		// TMDB allows ~40 requests per 10 seconds; stay under it.
		limiter: rate.NewLimiter(rate.Every(300*time.Millisecond), 4),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchMovie searches TMDB movies for the supplied title.
func (c *Client) SearchMovie(ctx context.Context, query string, opts SearchOptions) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)
	if opts.Year > 0 {
		params.Set("primary_release_year", strconv.Itoa(opts.Year))
	}

	var payload Response
	if err := c.get(ctx, "/search/movie", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SearchTV searches TMDB TV shows for the supplied title.
func (c *Client) SearchTV(ctx context.Context, query string, opts SearchOptions) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)
	if opts.Year > 0 {
		params.Set("first_air_date_year", strconv.Itoa(opts.Year))
	}

	var payload Response
	if err := c.get(ctx, "/search/tv", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetMovieDetails fetches movie details by TMDB id.
func (c *Client) GetMovieDetails(ctx context.Context, movieID int64) (*Result, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload Result
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), url.Values{}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetTVDetails fetches TV show details by TMDB id.
func (c *Client) GetTVDetails(ctx context.Context, showID int64) (*Result, error) {
	if showID <= 0 {
		return nil, errors.New("show id must be positive")
	}
	var payload Result
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", showID), url.Values{}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetMovieTranslations fetches the translation list for a movie.
func (c *Client) GetMovieTranslations(ctx context.Context, movieID int64) (*Translations, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload Translations
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/translations", movieID), url.Values{}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetTVTranslations fetches the translation list for a TV show.
func (c *Client) GetTVTranslations(ctx context.Context, showID int64) (*Translations, error) {
	if showID <= 0 {
		return nil, errors.New("show id must be positive")
	}
	var payload Translations
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/translations", showID), url.Values{}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb %s returned %d (latency=%v)", path, resp.StatusCode, latency)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}
