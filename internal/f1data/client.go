// Package f1data fetches season schedules and session results from an
// Ergast-compatible HTTP API, optionally through a local SQLite cache.
package f1data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"f1-race-analysis/internal/cache"
	"f1-race-analysis/internal/logger"
	"f1-race-analysis/internal/models"
)

const component = "F1Data"

// ErrNoData is returned when the API answers but holds nothing for the request.
var ErrNoData = errors.New("no data for session")

type Options struct {
	BaseURL     string
	Timeout     time.Duration
	CacheDir    string
	CacheMaxAge time.Duration
	HTTPClient  *http.Client
}

type Client struct {
	baseURL  string
	http     *http.Client
	logger   logger.Logger
	cacheDir string
	maxAge   time.Duration

	mu    sync.Mutex
	cache *cache.Store
}

func NewClient(opts Options, log logger.Logger) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	if log == nil {
		log = logger.NoOp{}
	}

	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		http:     httpClient,
		logger:   log,
		cacheDir: opts.CacheDir,
		maxAge:   opts.CacheMaxAge,
	}
}

// EnableCache opens the response cache. Calling it again after a
// successful open is a no-op; after a failure it retries.
func (c *Client) EnableCache() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cache != nil {
		return nil
	}

	store, err := cache.Open(c.cacheDir)
	if err != nil {
		return err
	}
	c.cache = store

	fields := map[string]interface{}{"dir": c.cacheDir}
	if c.maxAge > 0 {
		purged, err := store.Purge(c.maxAge)
		if err != nil {
			c.logger.Warning(component, "cache purge failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		fields["purged"] = purged
	}
	c.logger.Debug(component, "response cache enabled", fields)
	return nil
}

// GetEvents returns the season schedule in round order as served.
func (c *Client) GetEvents(ctx context.Context, year int) ([]models.Event, error) {
	var resp response
	if err := c.get(ctx, fmt.Sprintf("%d.json", year), &resp); err != nil {
		return nil, fmt.Errorf("schedule %d: %w", year, err)
	}

	races := resp.MRData.RaceTable.Races
	events := make([]models.Event, 0, len(races))
	for _, r := range races {
		round, err := strconv.Atoi(r.Round)
		if err != nil {
			c.logger.Warning(component, "unparsable round number", map[string]interface{}{
				"year":  year,
				"round": r.Round,
				"event": r.RaceName,
			})
			round = models.NoRound
		}
		events = append(events, models.Event{
			RoundNumber: round,
			EventName:   r.RaceName,
			Country:     r.Circuit.Location.Country,
			Date:        r.Date,
			Type:        r.format(),
		})
	}

	c.logger.Info(component, "schedule loaded", map[string]interface{}{
		"year":   year,
		"events": len(events),
	})
	return events, nil
}

// LoadSession fetches the results for one session, which also warms the
// cache for the viewer. Session codes are Q, SQ, S and R.
func (c *Client) LoadSession(ctx context.Context, year, round int, code string) (*models.SessionData, error) {
	var path string
	switch code {
	case "Q":
		path = fmt.Sprintf("%d/%d/qualifying.json", year, round)
	case "S":
		path = fmt.Sprintf("%d/%d/sprint.json", year, round)
	case "SQ":
		// sprint qualifying has no result table; the round schedule must list it
		path = fmt.Sprintf("%d/%d.json", year, round)
	case "R", "":
		code = "R"
		path = fmt.Sprintf("%d/%d/results.json", year, round)
	default:
		return nil, fmt.Errorf("unknown session code %q", code)
	}

	var resp response
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("session %d/%d/%s: %w", year, round, code, err)
	}

	races := resp.MRData.RaceTable.Races
	if len(races) == 0 {
		return nil, fmt.Errorf("session %d/%d/%s: %w", year, round, code, ErrNoData)
	}
	r := races[0]

	data := &models.SessionData{
		Year:      year,
		Round:     round,
		Code:      code,
		EventName: r.RaceName,
	}
	switch code {
	case "Q":
		data.Entries = len(r.QualifyingResults)
	case "S":
		data.Entries = len(r.SprintResults)
	case "SQ":
		if r.SprintQualifying != nil || r.SprintShootout != nil {
			data.Entries = 1
		}
	default:
		data.Entries = len(r.Results)
	}
	if data.Entries == 0 {
		return nil, fmt.Errorf("session %d/%d/%s: %w", year, round, code, ErrNoData)
	}

	c.logger.Info(component, "session loaded", map[string]interface{}{
		"year":    year,
		"round":   round,
		"session": code,
		"entries": data.Entries,
	})
	return data, nil
}

// Close releases the cache if it was opened
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cache == nil {
		return nil
	}
	err := c.cache.Close()
	c.cache = nil
	return err
}

func (c *Client) cacheStore() *cache.Store {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	url := c.baseURL + "/" + path + "?limit=100"

	store := c.cacheStore()
	if store != nil {
		body, ok, err := store.Get(url, c.maxAge)
		if errors.Is(err, cache.ErrClosed) {
			store = nil
		} else if err != nil {
			c.logger.Warning(component, "cache read failed", map[string]interface{}{
				"url":   url,
				"error": err.Error(),
			})
		} else if ok {
			if err := json.Unmarshal(body, out); err == nil {
				c.logger.Debug(component, "cache hit", map[string]interface{}{"url": url})
				return nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if store != nil {
		if err := store.Put(url, body); err != nil && !errors.Is(err, cache.ErrClosed) {
			c.logger.Warning(component, "cache write failed", map[string]interface{}{
				"url":   url,
				"error": err.Error(),
			})
		}
	}
	return nil
}
