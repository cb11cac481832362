// Package geocoder resolves free-form addresses to coordinates with Nominatim.
package geocoder

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"themisai-backend/logger"
	"themisai-backend/models"

	"github.com/go-resty/resty/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// Status tags why a lookup did or did not produce a point
type Status string

const (
	StatusResolved     Status = "resolved"
	StatusEmptyAddress Status = "empty_address"
	StatusNotFound     Status = "not_found"
	StatusServiceError Status = "service_error"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "themisai-lawyer-recommender/1.0"
	DefaultTimeout   = 10 * time.Second
)

// Result is the outcome of a lookup. Point is only meaningful when Status is StatusResolved.
type Result struct {
	Point       models.GeoPoint
	DisplayName string
	Status      Status
	Err         error
}

// Found reports whether the lookup produced a point
func (r Result) Found() bool {
	return r.Status == StatusResolved
}

// Geocoder resolves an address. Failures are reported in Result, never as errors.
type Geocoder interface {
	Resolve(ctx context.Context, address string) Result
}

type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Nominatim is a single-attempt client for the Nominatim search API
type Nominatim struct {
	client       *resty.Client
	countryCodes string
	limiter      *rate.Limiter
	cache        *lru.Cache[string, Result]
	logger       logger.Logger
}

// Option configures a Nominatim client
type Option func(*nominatimConfig)

type nominatimConfig struct {
	baseURL      string
	userAgent    string
	countryCodes string
	timeout      time.Duration
	cacheSize    int
	minInterval  time.Duration
	logger       logger.Logger
}

// WithBaseURL overrides the service root
func WithBaseURL(url string) Option {
	return func(c *nominatimConfig) { c.baseURL = url }
}

// WithUserAgent sets the identifying User-Agent required by the usage policy
func WithUserAgent(ua string) Option {
	return func(c *nominatimConfig) { c.userAgent = ua }
}

// WithCountryCodes restricts results, e.g. "id"
func WithCountryCodes(codes string) Option {
	return func(c *nominatimConfig) { c.countryCodes = codes }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *nominatimConfig) { c.timeout = d }
}

// WithCacheSize enables an LRU cache of lookups. Zero disables it.
func WithCacheSize(size int) Option {
	return func(c *nominatimConfig) { c.cacheSize = size }
}

// WithMinInterval spaces outgoing requests. Zero disables limiting.
func WithMinInterval(d time.Duration) Option {
	return func(c *nominatimConfig) { c.minInterval = d }
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(c *nominatimConfig) { c.logger = l }
}

// NewNominatim creates a client
func NewNominatim(opts ...Option) (*Nominatim, error) {
	cfg := &nominatimConfig{
		baseURL:      DefaultBaseURL,
		userAgent:    DefaultUserAgent,
		countryCodes: "id",
		timeout:      DefaultTimeout,
		minInterval:  time.Second,
		logger:       logger.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.userAgent == "" {
		return nil, errors.New("nominatim requires a User-Agent")
	}

	n := &Nominatim{
		client: resty.New().
			SetBaseURL(strings.TrimRight(cfg.baseURL, "/")).
			SetTimeout(cfg.timeout).
			SetHeader("User-Agent", cfg.userAgent).
			SetHeader("Accept", "application/json").
			SetRetryCount(0),
		countryCodes: cfg.countryCodes,
		logger:       cfg.logger,
	}
	if cfg.minInterval > 0 {
		n.limiter = rate.NewLimiter(rate.Every(cfg.minInterval), 1)
	}
	if cfg.cacheSize > 0 {
		cache, err := lru.New[string, Result](cfg.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("init geocode cache: %w", err)
		}
		n.cache = cache
	}
	return n, nil
}

// Resolve looks up the top candidate for address
func (n *Nominatim) Resolve(ctx context.Context, address string) Result {
	address = strings.TrimSpace(address)
	if address == "" {
		return Result{Status: StatusEmptyAddress}
	}

	key := cacheKey(address)
	if n.cache != nil {
		if res, ok := n.cache.Get(key); ok {
			return res
		}
	}

	res := n.lookup(ctx, address)
	if res.Status == StatusServiceError {
		n.logger.Warn("geocode failed", "address", address, "error", res.Err)
		return res
	}
	if n.cache != nil {
		n.cache.Add(key, res)
	}
	return res
}

func (n *Nominatim) lookup(ctx context.Context, address string) Result {
	if n.limiter != nil {
		if err := n.limiter.Wait(ctx); err != nil {
			return Result{Status: StatusServiceError, Err: err}
		}
	}

	var places []place
	params := map[string]string{
		"q":      address,
		"format": "jsonv2",
		"limit":  "1",
	}
	if n.countryCodes != "" {
		params["countrycodes"] = n.countryCodes
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&places).
		Get("/search")
	if err != nil {
		return Result{Status: StatusServiceError, Err: fmt.Errorf("nominatim request failed: %w", err)}
	}
	if resp.IsError() {
		return Result{Status: StatusServiceError, Err: fmt.Errorf("nominatim returned status %d", resp.StatusCode())}
	}
	if len(places) == 0 {
		return Result{Status: StatusNotFound}
	}

	first := places[0]
	lat, latErr := strconv.ParseFloat(first.Lat, 64)
	lon, lonErr := strconv.ParseFloat(first.Lon, 64)
	if err := errors.Join(latErr, lonErr); err != nil {
		return Result{Status: StatusServiceError, Err: fmt.Errorf("invalid coordinates in nominatim response: %w", err)}
	}

	return Result{
		Point:       models.GeoPoint{Lat: lat, Lon: lon},
		DisplayName: first.DisplayName,
		Status:      StatusResolved,
	}
}

func cacheKey(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}

var _ Geocoder = (*Nominatim)(nil)
