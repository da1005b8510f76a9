// Package explorer is the HTTP client for a Blockscout-compatible /api/v2
// explorer API, plus a caching decorator backed by the response cache.
package explorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/rshade/tokenscope/internal/query"
	"github.com/rshade/tokenscope/internal/token"
)

// Default client settings.
const (
	DefaultTimeout        = 15 * time.Second
	defaultMaxElapsedTime = 30 * time.Second
	defaultInitialBackoff = 500 * time.Millisecond
	defaultMaxBackoff     = 5 * time.Second
	maxErrorBodyBytes     = 512
)

// Client fetches the resources shown on a token page.
type Client interface {
	Token(ctx context.Context, hash string) (token.Token, error)
	Address(ctx context.Context, hash string) (token.AddressInfo, error)
	TokenTransfers(ctx context.Context, hash string, params query.PageParams) (query.Page[token.Transfer], error)
	TokenHolders(ctx context.Context, hash string, params query.PageParams) (query.Page[token.Holder], error)
	TokenInventory(ctx context.Context, hash string, params query.PageParams) (query.Page[token.Instance], error)
	BackendVersion(ctx context.Context) (string, error)
}

// listEnvelope is the wire shape of a keyset-paginated listing.
type listEnvelope[T any] struct {
	Items          []T            `json:"items"`
	NextPageParams map[string]any `json:"next_page_params"`
}

// HTTPClient implements Client over HTTP with retry on 429 and 5xx.
type HTTPClient struct {
	baseURL        *url.URL
	client         *http.Client
	logger         zerolog.Logger
	maxElapsedTime time.Duration
	initialBackoff time.Duration
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.client = c }
}

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) Option {
	return func(h *HTTPClient) { h.logger = l }
}

// WithRetry bounds the total retry time and the first backoff interval.
// A zero maxElapsed disables retries.
func WithRetry(maxElapsed, initial time.Duration) Option {
	return func(h *HTTPClient) {
		h.maxElapsedTime = maxElapsed
		h.initialBackoff = initial
	}
}

// NewHTTPClient creates a client for the explorer at baseURL, e.g.
// "https://eth.blockscout.com". A trailing "/api/v2" is accepted.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrEmptyBaseURL
	}
	u, err := url.Parse(strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/api/v2"))
	if err != nil {
		return nil, fmt.Errorf("invalid explorer API URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid explorer API URL %q: scheme and host are required", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &HTTPClient{
		baseURL:        u,
		client:         &http.Client{Timeout: timeout},
		logger:         zerolog.Nop(),
		maxElapsedTime: defaultMaxElapsedTime,
		initialBackoff: defaultInitialBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Token fetches token metadata.
func (c *HTTPClient) Token(ctx context.Context, hash string) (token.Token, error) {
	var out token.Token
	err := c.get(ctx, query.ResourceToken, "/api/v2/tokens/"+url.PathEscape(hash), nil, &out)
	return out, err
}

// Address fetches the contract address info.
func (c *HTTPClient) Address(ctx context.Context, hash string) (token.AddressInfo, error) {
	var out token.AddressInfo
	err := c.get(ctx, query.ResourceAddress, "/api/v2/addresses/"+url.PathEscape(hash), nil, &out)
	return out, err
}

// TokenTransfers fetches one page of token transfers.
func (c *HTTPClient) TokenTransfers(
	ctx context.Context,
	hash string,
	params query.PageParams,
) (query.Page[token.Transfer], error) {
	return getList[token.Transfer](ctx, c, query.ResourceTokenTransfers, "/api/v2/tokens/"+url.PathEscape(hash)+"/transfers", params)
}

// TokenHolders fetches one page of token holders.
func (c *HTTPClient) TokenHolders(
	ctx context.Context,
	hash string,
	params query.PageParams,
) (query.Page[token.Holder], error) {
	return getList[token.Holder](ctx, c, query.ResourceTokenHolders, "/api/v2/tokens/"+url.PathEscape(hash)+"/holders", params)
}

// TokenInventory fetches one page of NFT instances.
func (c *HTTPClient) TokenInventory(
	ctx context.Context,
	hash string,
	params query.PageParams,
) (query.Page[token.Instance], error) {
	return getList[token.Instance](ctx, c, query.ResourceTokenInventory, "/api/v2/tokens/"+url.PathEscape(hash)+"/instances", params)
}

// BackendVersion returns the explorer backend version string.
func (c *HTTPClient) BackendVersion(ctx context.Context) (string, error) {
	var out struct {
		BackendVersion string `json:"backend_version"`
	}
	if err := c.get(ctx, "backend_version", "/api/v2/config/backend-version", nil, &out); err != nil {
		return "", err
	}
	return out.BackendVersion, nil
}

func getList[T any](
	ctx context.Context,
	c *HTTPClient,
	resource query.Resource,
	path string,
	params query.PageParams,
) (query.Page[T], error) {
	var env listEnvelope[T]
	if err := c.get(ctx, resource, path, params, &env); err != nil {
		return query.Page[T]{}, err
	}
	return query.Page[T]{Items: env.Items, NextPageParams: flattenParams(env.NextPageParams)}, nil
}

// flattenParams converts next_page_params values into query-string form.
// Null values are dropped.
func flattenParams(raw map[string]any) query.PageParams {
	if len(raw) == 0 {
		return nil
	}
	out := make(query.PageParams, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			out[k] = val
		case json.Number:
			out[k] = val.String()
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(val)
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}

// get performs a GET with retry and decodes the JSON body into out.
func (c *HTTPClient) get(
	ctx context.Context,
	resource query.Resource,
	path string,
	params query.PageParams,
	out any,
) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = params.Encode()
	target := u.String()

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return backoff.Permanent(&FetchError{Resource: resource, Err: err})
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			c.logger.Warn().Ctx(ctx).Err(err).Str("url", target).Msg("explorer request failed, retrying")
			return &FetchError{Resource: resource, Err: err}
		}
		defer func() {
			if closeErr := resp.Body.Close(); closeErr != nil {
				c.logger.Warn().Ctx(ctx).Err(closeErr).Str("url", target).Msg("failed to close response body")
			}
		}()

		if resp.StatusCode != http.StatusOK {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
			fetchErr := &FetchError{
				Resource:   resource,
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(snippet))),
			}
			if retryable(resp.StatusCode) {
				c.logger.Warn().Ctx(ctx).Int("status", resp.StatusCode).Str("url", target).Msg("explorer busy, retrying with backoff")
				return fetchErr
			}
			return backoff.Permanent(fetchErr)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(&FetchError{Resource: resource, Err: fmt.Errorf("read body: %w", err)})
		}
		return nil
	}

	start := time.Now()
	if err := backoff.Retry(operation, backoff.WithContext(c.backoffPolicy(), ctx)); err != nil {
		c.logger.Debug().Ctx(ctx).Err(err).Str("resource", string(resource)).Msg("explorer fetch failed")
		return err
	}

	// Keyset cursors can carry integers wider than a float64 mantissa.
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return &FetchError{Resource: resource, Err: fmt.Errorf("decode response: %w", err)}
	}

	c.logger.Debug().
		Ctx(ctx).
		Str("resource", string(resource)).
		Str("url", target).
		Dur("elapsed", time.Since(start)).
		Msg("explorer fetch complete")
	return nil
}

// backoffPolicy returns the retry schedule for one request.
func (c *HTTPClient) backoffPolicy() backoff.BackOff {
	if c.maxElapsedTime <= 0 {
		return &backoff.StopBackOff{}
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialBackoff
	b.MaxInterval = defaultMaxBackoff
	b.MaxElapsedTime = c.maxElapsedTime
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5
	return b
}
