// Package client fetches leaderboard pages from the stats API. Pages are
// requested strictly one after another with a fixed pause in between to stay
// under the API's rate limit; any failed page aborts the whole fetch.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/openmohaa/diabotical-leaderboard/internal/cache"
	"github.com/openmohaa/diabotical-leaderboard/internal/metrics"
	"github.com/openmohaa/diabotical-leaderboard/internal/models"
)

// DefaultURL is the public Diabotical leaderboard endpoint.
const DefaultURL = "https://www.diabotical.com/api/v0/stats/leaderboard"

// MaxBodySize limits the size of a page response to 1MB
const MaxBodySize = 1048576

// Request pacing used by the legacy service
const (
	DefaultTimeout   = 2 * time.Second
	DefaultPageDelay = 200 * time.Millisecond
)

const userAgent = "diabotical-leaderboard-cli"

// Config configures the client
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	PageDelay   time.Duration
	ExactPaging bool
	RunID       string
	Cache       cache.Store
	CacheTTL    time.Duration
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
	HTTPClient  *http.Client
}

// Client issues paginated leaderboard requests
type Client struct {
	baseURL     string
	http        *http.Client
	pageDelay   time.Duration
	exactPaging bool
	runID       string
	cache       cache.Store
	cacheTTL    time.Duration
	metrics     *metrics.Metrics
	logger      *zap.SugaredLogger
}

// New creates a client. An empty BaseURL or Timeout falls back to the
// public endpoint and DefaultTimeout. PageDelay is used as given; zero
// disables the pause.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:     cfg.BaseURL,
		http:        httpClient,
		pageDelay:   cfg.PageDelay,
		exactPaging: cfg.ExactPaging,
		runID:       cfg.RunID,
		cache:       cfg.Cache,
		cacheTTL:    cfg.CacheTTL,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger.Sugar(),
	}
}

// Fetch returns exactly min(count, available) entries of mode's leaderboard
// in offset order. The page delay is waited before every page but the first;
// nothing follows the last call, so the API sees the same spacing as a pause
// after each page.
func (c *Client) Fetch(ctx context.Context, mode models.GameMode, count int) ([]models.Entry, error) {
	start := time.Now()
	entries, err := c.fetch(ctx, mode, count)
	if err != nil {
		c.metrics.FetchFailed(errorKind(err))
		c.logger.Warnw("Leaderboard fetch failed", "mode", mode, "count", count, "error", err)
		return nil, err
	}

	c.metrics.EntriesReturned(len(entries))
	c.logger.Infow("Leaderboard fetched",
		"mode", mode,
		"count", count,
		"entries", len(entries),
		"duration", time.Since(start),
	)
	return entries, nil
}

func (c *Client) fetch(ctx context.Context, mode models.GameMode, count int) ([]models.Entry, error) {
	if _, err := models.ParseGameMode(string(mode)); err != nil {
		return nil, err
	}
	if count < 1 || count > models.MaxEntryCount {
		return nil, &models.ArgumentError{Field: "count", Reason: fmt.Sprintf("%d is outside 1..%d", count, models.MaxEntryCount)}
	}

	pages := c.pageCount(count)
	if pages < 2 {
		pages = 1
	}

	entries := make([]models.Entry, 0, pages*PageSize)
	for i := 0; i < pages; i++ {
		offset := i * PageSize
		if i > 0 {
			if err := c.pause(ctx); err != nil {
				return nil, &ConnectivityError{Offset: offset, Err: err}
			}
		}

		page, err := c.fetchPage(ctx, mode, offset)
		if err != nil {
			return nil, err
		}
		entries = append(entries, page...)
	}

	if err := ValidateEntries(entries); err != nil {
		return nil, err
	}
	if len(entries) > count {
		entries = entries[:count]
	}
	return entries, nil
}

func (c *Client) pageCount(count int) int {
	if c.exactPaging {
		return ExactPageCount(count)
	}
	return PageCount(count)
}

func (c *Client) pause(ctx context.Context) error {
	if c.pageDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(c.pageDelay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ValidateEntries rejects an empty result and checks that the first entry
// carries user_id and country. The remaining entries are trusted to share
// its structure.
func ValidateEntries(entries []models.Entry) error {
	if len(entries) == 0 {
		return ErrEmptyResult
	}
	for _, field := range []string{models.FieldUserID, models.FieldCountry} {
		if !entries[0].Has(field) {
			return &SchemaError{Field: field}
		}
	}
	return nil
}

func (c *Client) fetchPage(ctx context.Context, mode models.GameMode, offset int) ([]models.Entry, error) {
	key := cache.PageKey(string(mode), offset)

	if c.cache != nil {
		body, err := c.cache.Get(ctx, key)
		switch {
		case err == nil:
			if entries, err := decodePage(body); err == nil {
				c.metrics.PageFetched(string(mode), metrics.SourceCache)
				c.logger.Debugw("Leaderboard page served from cache", "mode", mode, "offset", offset)
				return entries, nil
			}
			c.logger.Warnw("Discarding unreadable cached page", "key", key)
		case !errors.Is(err, cache.ErrMiss):
			c.logger.Warnw("Page cache lookup failed", "key", key, "error", err)
		}
	}

	body, err := c.get(ctx, mode, offset)
	if err != nil {
		return nil, err
	}
	entries, err := decodePage(body)
	if err != nil {
		return nil, &DecodeError{Offset: offset, Err: err}
	}
	c.metrics.PageFetched(string(mode), metrics.SourceNetwork)

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
			c.logger.Warnw("Failed to cache leaderboard page", "key", key, "error", err)
		}
	}
	return entries, nil
}

func (c *Client) get(ctx context.Context, mode models.GameMode, offset int) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, &ConnectivityError{Offset: offset, Err: err}
	}
	q := u.Query()
	q.Set("mode", string(mode))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &ConnectivityError{Offset: offset, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.runID != "" {
		req.Header.Set("X-Request-ID", c.runID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveRequest(time.Since(start))
	if err != nil {
		return nil, &ConnectivityError{Offset: offset, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, MaxBodySize))
		return nil, &HTTPError{Offset: offset, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, &ConnectivityError{Offset: offset, Err: err}
	}
	if len(body) > MaxBodySize {
		return nil, &DecodeError{Offset: offset, Err: fmt.Errorf("response body exceeds %d bytes", MaxBodySize)}
	}

	c.logger.Debugw("Fetched leaderboard page",
		"mode", mode,
		"offset", offset,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start),
	)
	return body, nil
}

// decodePage extracts the entries of one response body.
func decodePage(body []byte) ([]models.Entry, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	raw, ok := envelope["leaderboard"]
	if !ok {
		return nil, errMissingLeaderboard
	}

	var entries []models.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	return entries, nil
}
