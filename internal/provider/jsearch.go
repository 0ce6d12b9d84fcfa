package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"jobfinder-engine/internal/query"
)

// JSearch talks to a jsearch.p.rapidapi.com-style search endpoint. The
// provider performs search and ranking; this client only constructs requests
// and decodes the response envelope.
type JSearch struct {
	host    string
	apiKey  func() (string, error)
	hc      *http.Client
	limiter *rate.Limiter
	retries int
	baseURL string // test override; empty means https://<host>
}

type Options struct {
	Host           string
	APIKey         func() (string, error)
	RequestsPerSec float64
	Burst          int
	Timeout        time.Duration
	Retries        int
	BaseURL        string
}

func NewJSearch(opts Options) *JSearch {
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 2
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	return &JSearch{
		host:    opts.Host,
		apiKey:  opts.APIKey,
		hc:      &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSec), opts.Burst),
		retries: opts.Retries,
		baseURL: opts.BaseURL,
	}
}

type envelope struct {
	Status string    `json:"status"`
	Data   []Listing `json:"data"`
}

func (c *JSearch) Search(ctx context.Context, q query.ProviderQuery, p query.Params) ([]Listing, error) {
	key, err := c.apiKey()
	if err != nil {
		return nil, fmt.Errorf("provider api key: %w", err)
	}

	base := c.baseURL
	if base == "" {
		base = "https://" + c.host
	}

	vals := url.Values{}
	vals.Set("query", q.Query)
	vals.Set("page", "1")
	vals.Set("num_pages", strconv.Itoa(p.NumPages))
	vals.Set("date_posted", p.DatePosted)
	if q.RemoteOnly {
		vals.Set("remote_jobs_only", "true")
	}
	reqURL := base + "/search?" + vals.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			// fixed-count backoff; the core pipeline never retries on its own
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		listings, retryable, err := c.doSearch(ctx, reqURL, key)
		if err == nil {
			return listings, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, lastErr
}

func (c *JSearch) doSearch(ctx context.Context, reqURL, key string) (listings []Listing, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("X-RapidAPI-Key", key)
	req.Header.Set("X-RapidAPI-Host", c.host)
	req.Header.Set("User-Agent", "JobFinder/1.0 (+local)")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("provider get: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 500 {
		return nil, true, fmt.Errorf("provider status %d", res.StatusCode)
	}
	if res.StatusCode >= 400 {
		return nil, false, fmt.Errorf("provider status %d", res.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, false, fmt.Errorf("provider decode: %w", err)
	}
	if env.Status != "" && env.Status != "OK" {
		return nil, false, fmt.Errorf("provider status %q", env.Status)
	}
	return env.Data, false, nil
}
