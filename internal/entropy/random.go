// Package entropy provides the randomness source for a run: true random
// numbers from random.org with a local pool, or a seeded pseudo-random
// source when no API key is configured or the API is unavailable.
package entropy

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

const (
	defaultEndpoint = "https://api.random.org/json-rpc/4/invoke"
	batchSize       = 100
	lowWater        = 10
	retryAfter      = time.Minute
)

// NewSource returns a rand.Source64 for the given settings. Without an API
// key the source is a plain seeded math/rand source, so runs are
// reproducible.
func NewSource(apiKey string, seed int64) rand.Source64 {
	if apiKey == "" {
		return rand.NewSource(seed).(rand.Source64)
	}
	return NewClient(apiKey, defaultEndpoint, seed)
}

// Client provides true random numbers from random.org with a local pool.
// It implements rand.Source64 and is safe for concurrent use.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client

	mu       sync.Mutex
	pool     []uint64
	fallback rand.Source64
	retryAt  time.Time // No API calls before this after a failure
}

// NewClient creates a random.org client posting to endpoint. The seed
// drives the fallback source.
func NewClient(apiKey, endpoint string, seed int64) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
		fallback: rand.NewSource(seed).(rand.Source64),
	}
}

// Enabled returns true if the client has a valid API key.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Uint64 returns a random 64-bit value from the pool, refilling from
// random.org when low. Falls back to the seeded source on API failure.
func (c *Client) Uint64() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pool) < lowWater && time.Now().After(c.retryAt) {
		if err := c.refill(); err != nil {
			slog.Debug("random.org refill failed, using fallback", "error", err)
			c.retryAt = time.Now().Add(retryAfter)
		}
	}

	if len(c.pool) == 0 {
		return c.fallback.Uint64()
	}

	val := c.pool[0]
	c.pool = c.pool[1:]
	return val
}

// Int63 returns a non-negative 63-bit value.
func (c *Client) Int63() int64 {
	return int64(c.Uint64() >> 1)
}

// Seed reseeds the fallback source and drops pooled values.
func (c *Client) Seed(seed int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fallback.Seed(seed)
	c.pool = nil
}

// Pooled returns how many true random values are buffered.
func (c *Client) Pooled() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pool)
}

func (c *Client) refill() error {
	req := map[string]any{
		"jsonrpc": "2.0",
		"method":  "generateBlobs",
		"params": map[string]any{
			"apiKey": c.apiKey,
			"n":      batchSize,
			"size":   64,
			"format": "hex",
		},
		"id": 1,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	resp, err := c.client.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	var result struct {
		Result struct {
			Random struct {
				Data []string `json:"data"`
			} `json:"random"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if result.Error != nil {
		return fmt.Errorf("API error: %s", result.Error.Message)
	}

	added := 0
	for _, blob := range result.Result.Random.Data {
		raw, err := hex.DecodeString(blob)
		if err != nil || len(raw) != 8 {
			continue
		}
		var v uint64
		for _, b := range raw {
			v = v<<8 | uint64(b)
		}
		c.pool = append(c.pool, v)
		added++
	}
	if added == 0 {
		return fmt.Errorf("no usable values in response")
	}
	slog.Debug("random.org pool refilled", "count", added)
	return nil
}
