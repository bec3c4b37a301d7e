// Package analysis calls the external prescription analysis endpoint.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/config"
)

var (
	ErrDisabled    = errors.New("prescription analysis is not configured")
	ErrUnavailable = errors.New("prescription analysis is temporarily unavailable")
	ErrEmptyResult = errors.New("analysis returned an empty summary")
)

const (
	breakerName          = "prescription-analysis"
	breakerTripAfter     = 3
	breakerOpenFor       = 30 * time.Second
	maxResponseBodyBytes = 1 << 20
)

type Request struct {
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
	FileType string `json:"file_type"`
}

type response struct {
	Summary string `json:"summary"`
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	cb       *gobreaker.CircuitBreaker[string]
	log      *zap.Logger
}

func NewClient(cfg config.AnalysisConfig, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimSpace(cfg.Endpoint),
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: cfg.Timeout},
		log:      log,
	}
	c.cb = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     breakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripAfter
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Enabled() bool {
	return c.endpoint != ""
}

// Analyze posts the document reference and returns the summary text.
func (c *Client) Analyze(ctx context.Context, req Request) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	summary, err := c.cb.Execute(func() (string, error) {
		return c.do(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return "", err
	}
	return summary, nil
}

func (c *Client) do(ctx context.Context, req Request) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encoding analysis request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building analysis request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("calling analysis endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return "", fmt.Errorf("reading analysis response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("analysis endpoint returned %d", resp.StatusCode)
	}

	var out response
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decoding analysis response: %w", err)
	}
	if strings.TrimSpace(out.Summary) == "" {
		return "", ErrEmptyResult
	}
	return out.Summary, nil
}
