package tmdb

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cinelog/cinelog/internal/pkg/cache"
)

const (
	defaultBaseURL  = "https://api.themoviedb.org/3"
	cacheKeyMovie   = "tmdb:movie:%d"
	cacheExpiration = 24 * time.Hour
)

// Movie is the subset of TMDB movie details the pages need.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Runtime     int     `json:"runtime"`
	VoteAverage float64 `json:"vote_average"`
}

// Client fetches movie metadata from TMDB. The API key is injected at
// construction; responses are cached to keep page loads off the upstream.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Movie returns details for one movie, cache-first.
func (c *Client) Movie(id int) (*Movie, error) {
	key := fmt.Sprintf(cacheKeyMovie, id)
	if cached, err := cache.Get(key); err == nil && cached != "" {
		var m Movie
		if err := json.Unmarshal([]byte(cached), &m); err == nil {
			return &m, nil
		}
	}

	if c.apiKey == "" {
		return nil, fmt.Errorf("tmdb api key is not set")
	}

	url := fmt.Sprintf("%s/movie/%d?api_key=%s", c.baseURL, id, c.apiKey)
	resp, err := c.http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to TMDB API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TMDB API returned status %d for movie %d", resp.StatusCode, id)
	}

	var m Movie
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode TMDB API response: %v", err)
	}

	if raw, err := json.Marshal(m); err == nil {
		_ = cache.Set(key, string(raw), cacheExpiration)
	}

	return &m, nil
}
