package explorer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/rshade/tokenscope/internal/cache"
	"github.com/rshade/tokenscope/internal/query"
	"github.com/rshade/tokenscope/internal/token"
)

// CachingClient serves responses from a cache.Store and falls through to the
// wrapped Client on a miss. Errors are never cached. Cache read and write
// failures are logged and otherwise ignored.
type CachingClient struct {
	next   Client
	store  cache.Store
	logger zerolog.Logger
}

// NewCachingClient wraps next with store.
func NewCachingClient(next Client, store cache.Store, logger zerolog.Logger) *CachingClient {
	return &CachingClient{next: next, store: store, logger: logger}
}

type cachedPage[T any] struct {
	Items          []T              `json:"items"`
	NextPageParams query.PageParams `json:"next_page_params,omitempty"`
}

// Token implements Client.
func (c *CachingClient) Token(ctx context.Context, hash string) (token.Token, error) {
	return cached(ctx, c, query.ResourceToken, hash, nil, func() (token.Token, error) {
		return c.next.Token(ctx, hash)
	})
}

// Address implements Client.
func (c *CachingClient) Address(ctx context.Context, hash string) (token.AddressInfo, error) {
	return cached(ctx, c, query.ResourceAddress, hash, nil, func() (token.AddressInfo, error) {
		return c.next.Address(ctx, hash)
	})
}

// TokenTransfers implements Client.
func (c *CachingClient) TokenTransfers(
	ctx context.Context,
	hash string,
	params query.PageParams,
) (query.Page[token.Transfer], error) {
	return cachedList(ctx, c, query.ResourceTokenTransfers, hash, params, c.next.TokenTransfers)
}

// TokenHolders implements Client.
func (c *CachingClient) TokenHolders(
	ctx context.Context,
	hash string,
	params query.PageParams,
) (query.Page[token.Holder], error) {
	return cachedList(ctx, c, query.ResourceTokenHolders, hash, params, c.next.TokenHolders)
}

// TokenInventory implements Client.
func (c *CachingClient) TokenInventory(
	ctx context.Context,
	hash string,
	params query.PageParams,
) (query.Page[token.Instance], error) {
	return cachedList(ctx, c, query.ResourceTokenInventory, hash, params, c.next.TokenInventory)
}

// BackendVersion is not cached.
func (c *CachingClient) BackendVersion(ctx context.Context) (string, error) {
	return c.next.BackendVersion(ctx)
}

func cachedList[T any](
	ctx context.Context,
	c *CachingClient,
	resource query.Resource,
	hash string,
	params query.PageParams,
	fetch func(context.Context, string, query.PageParams) (query.Page[T], error),
) (query.Page[T], error) {
	p, err := cached(ctx, c, resource, hash, params, func() (cachedPage[T], error) {
		page, fetchErr := fetch(ctx, hash, params)
		if fetchErr != nil {
			return cachedPage[T]{}, fetchErr
		}
		return cachedPage[T]{Items: page.Items, NextPageParams: page.NextPageParams}, nil
	})
	if err != nil {
		return query.Page[T]{}, err
	}
	return query.Page[T]{Items: p.Items, NextPageParams: p.NextPageParams}, nil
}

func cached[T any](
	ctx context.Context,
	c *CachingClient,
	resource query.Resource,
	hash string,
	params query.PageParams,
	fetch func() (T, error),
) (T, error) {
	key := cache.GenerateKey(string(resource), hash, params.Encode())
	log := c.logger.With().Str("resource", string(resource)).Logger()

	entry, err := c.store.Get(key)
	switch {
	case err == nil:
		var out T
		decodeErr := json.Unmarshal(entry.Data, &out)
		if decodeErr == nil {
			log.Debug().Ctx(ctx).Dur("age", entry.Age()).Msg("cache hit")
			return out, nil
		}
		log.Warn().Ctx(ctx).Err(decodeErr).Msg("discarding undecodable cache entry")
		if delErr := c.store.Delete(key); delErr != nil {
			log.Warn().Ctx(ctx).Err(delErr).Msg("cache delete failed")
		}
	case errors.Is(err, cache.ErrCacheNotFound), errors.Is(err, cache.ErrCacheExpired), errors.Is(err, cache.ErrCacheDisabled):
	default:
		log.Warn().Ctx(ctx).Err(err).Msg("cache read failed")
	}

	out, err := fetch()
	if err != nil {
		return out, err
	}

	data, marshalErr := json.Marshal(out)
	if marshalErr != nil {
		log.Warn().Ctx(ctx).Err(marshalErr).Msg("cannot encode response for cache")
		return out, nil
	}
	if setErr := c.store.Set(key, string(resource), data); setErr != nil && !errors.Is(setErr, cache.ErrCacheDisabled) {
		log.Warn().Ctx(ctx).Err(setErr).Msg("cache write failed")
	}
	return out, nil
}
