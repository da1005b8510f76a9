package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tokenscope/internal/cache"
	"github.com/rshade/tokenscope/internal/query"
	"github.com/rshade/tokenscope/internal/token"
)

const testHash = "0x2B51Ae4412F79c3c1cB12AA40Ea4ECEb4e80511a"

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewHTTPClient(srv.URL+"/api/v2/", time.Second, WithRetry(time.Second, time.Millisecond))
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_Validation(t *testing.T) {
	_, err := NewHTTPClient("  ", 0)
	assert.ErrorIs(t, err, ErrEmptyBaseURL)

	_, err = NewHTTPClient("eth.blockscout.com", 0)
	assert.Error(t, err)

	c, err := NewHTTPClient("https://eth.blockscout.com/api/v2", 0)
	require.NoError(t, err)
	assert.Equal(t, "https://eth.blockscout.com", c.baseURL.String())
}

func TestHTTPClient_Token(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/tokens/"+testHash, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"address":"` + testHash + `","name":"Tether","symbol":"USDT","type":"ERC-20","decimals":"6","holders":"100"}`))
	})

	tok, err := c.Token(context.Background(), testHash)
	require.NoError(t, err)
	assert.Equal(t, "Tether", tok.Name)
	assert.Equal(t, token.KindFungible, tok.Kind())
	require.NotNil(t, tok.Decimals)
	assert.Equal(t, "6", *tok.Decimals)
}

func TestHTTPClient_ListPagination(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/tokens/"+testHash+"/holders", r.URL.Path)
		if r.URL.Query().Get("items_count") == "50" {
			_, _ = w.Write([]byte(`{"items":[{"address":{"hash":"0x02"},"value":"5"}],"next_page_params":null}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"items":[{"address":{"hash":"0x01","is_contract":false},"value":"10"}],
			"next_page_params":{"items_count":50,"value":"10","address_hash":"0x01","id":null}
		}`))
	})

	first, err := c.TokenHolders(context.Background(), testHash, nil)
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	assert.Equal(t, "0x01", first.Items[0].Address.Hash)
	assert.Equal(t, query.PageParams{"items_count": "50", "value": "10", "address_hash": "0x01"}, first.NextPageParams)

	second, err := c.TokenHolders(context.Background(), testHash, first.NextPageParams)
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "0x02", second.Items[0].Address.Hash)
	assert.Nil(t, second.NextPageParams)
}

func TestHTTPClient_LargeIntegerCursorKeepsPrecision(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"items":[{"address":{"hash":"0x01"},"value":"123456789012345678901234"}],
			"next_page_params":{"value":123456789012345678901234,"items_count":50,"address_hash":"0x01"}
		}`))
	})

	page, err := c.TokenHolders(context.Background(), testHash, nil)
	require.NoError(t, err)
	assert.Equal(t, query.PageParams{
		"value":        "123456789012345678901234",
		"items_count":  "50",
		"address_hash": "0x01",
	}, page.NextPageParams)
	assert.Equal(t, "address_hash=0x01&items_count=50&value=123456789012345678901234", page.NextPageParams.Encode())
}

func TestHTTPClient_TransfersAndInventory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/tokens/" + testHash + "/transfers":
			_, _ = w.Write([]byte(`{"items":[{"tx_hash":"0xaa","log_index":3,"from":{"hash":"0x01"},"to":{"hash":"0x02"},
				"total":{"value":"1000","decimals":"2"},"type":"token_transfer","timestamp":"2024-01-02T03:04:05.000000Z"}],
				"next_page_params":null}`))
		case "/api/v2/tokens/" + testHash + "/instances":
			_, _ = w.Write([]byte(`{"items":[{"id":"7","metadata":{"name":"Punk #7"}}],"next_page_params":{"unique_token":7}}`))
		default:
			http.NotFound(w, r)
		}
	})

	transfers, err := c.TokenTransfers(context.Background(), testHash, nil)
	require.NoError(t, err)
	require.Len(t, transfers.Items, 1)
	assert.Equal(t, 3, transfers.Items[0].LogIndex)
	require.NotNil(t, transfers.Items[0].Timestamp)
	assert.Equal(t, 2024, transfers.Items[0].Timestamp.Year())

	inventory, err := c.TokenInventory(context.Background(), testHash, nil)
	require.NoError(t, err)
	require.Len(t, inventory.Items, 1)
	assert.Equal(t, "Punk #7", inventory.Items[0].InstanceName())
	assert.Equal(t, query.PageParams{"unique_token": "7"}, inventory.NextPageParams)
}

func TestHTTPClient_NotFoundIsPermanent(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not found"}`))
	})

	_, err := c.Address(context.Background(), testHash)
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.True(t, fetchErr.IsNotFound())
	assert.Equal(t, query.ResourceAddress, fetchErr.Resource)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPClient_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"backend_version":"v6.3.0-beta"}`))
	})

	v, err := c.BackendVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v6.3.0-beta", v)
	assert.Equal(t, int32(3), calls.Load())
	assert.NoError(t, CheckBackendVersion(v))
}

func TestHTTPClient_NoRetryWhenDisabled(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL, time.Second, WithRetry(0, 0))
	require.NoError(t, err)

	_, err = c.Token(context.Background(), testHash)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusBadGateway, fetchErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCheckBackendVersion(t *testing.T) {
	assert.NoError(t, CheckBackendVersion("5.0.0"))
	assert.NoError(t, CheckBackendVersion("v6.10.1"))
	assert.ErrorIs(t, CheckBackendVersion("4.1.8"), ErrUnsupportedBackend)
	assert.Error(t, CheckBackendVersion("unknown"))
}

// fakeClient counts calls and serves fixed data.
type fakeClient struct {
	Client
	tokenCalls   int
	holdersCalls int
	err          error
}

func (f *fakeClient) Token(_ context.Context, hash string) (token.Token, error) {
	f.tokenCalls++
	if f.err != nil {
		return token.Token{}, f.err
	}
	return token.Token{Address: hash, Name: "Cached", Type: token.TypeERC721}, nil
}

func (f *fakeClient) TokenHolders(_ context.Context, _ string, params query.PageParams) (query.Page[token.Holder], error) {
	f.holdersCalls++
	return query.Page[token.Holder]{
		Items:          []token.Holder{{Address: token.AddressParam{Hash: "0x01"}, Value: params["items_count"]}},
		NextPageParams: query.PageParams{"items_count": "50"},
	}, nil
}

func TestCachingClient(t *testing.T) {
	store, err := cache.NewFileStore(t.TempDir(), true, 60, 0)
	require.NoError(t, err)
	inner := &fakeClient{}
	c := NewCachingClient(inner, store, zerolog.Nop())
	ctx := context.Background()

	for range 2 {
		tok, tokErr := c.Token(ctx, testHash)
		require.NoError(t, tokErr)
		assert.Equal(t, "Cached", tok.Name)
	}
	assert.Equal(t, 1, inner.tokenCalls)

	page, err := c.TokenHolders(ctx, testHash, query.PageParams{"items_count": "50"})
	require.NoError(t, err)
	again, err := c.TokenHolders(ctx, testHash, query.PageParams{"items_count": "50"})
	require.NoError(t, err)
	assert.Equal(t, page, again)
	assert.Equal(t, 1, inner.holdersCalls)

	_, err = c.TokenHolders(ctx, testHash, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.holdersCalls, "different params miss the cache")
}

func TestCachingClient_ErrorsNotCached(t *testing.T) {
	store, err := cache.NewFileStore(t.TempDir(), true, 60, 0)
	require.NoError(t, err)
	inner := &fakeClient{err: errors.New("boom")}
	c := NewCachingClient(inner, store, zerolog.Nop())

	_, err = c.Token(context.Background(), testHash)
	require.Error(t, err)
	inner.err = nil
	_, err = c.Token(context.Background(), testHash)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.tokenCalls)

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Entries)
}

func TestFlattenParams(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"a":1.5,"b":true,"c":null,"d":"x","e":123456789}`), &raw))
	assert.Equal(t, query.PageParams{"a": "1.5", "b": "true", "d": "x", "e": "123456789"}, flattenParams(raw))
	assert.Nil(t, flattenParams(nil))

	dec := json.NewDecoder(strings.NewReader(`{"value":123456789012345678901234,"n":2}`))
	dec.UseNumber()
	var wide map[string]any
	require.NoError(t, dec.Decode(&wide))
	assert.Equal(t, query.PageParams{"value": "123456789012345678901234", "n": "2"}, flattenParams(wide))
}

// recordingStore records deletions on top of a real file store.
type recordingStore struct {
	*cache.FileStore
	deleted []string
}

func (s *recordingStore) Delete(key string) error {
	s.deleted = append(s.deleted, key)
	return s.FileStore.Delete(key)
}

func TestCachingClient_DropsUndecodableEntry(t *testing.T) {
	fs, err := cache.NewFileStore(t.TempDir(), true, 60, 0)
	require.NoError(t, err)
	store := &recordingStore{FileStore: fs}
	key := cache.GenerateKey(string(query.ResourceToken), testHash, "")
	require.NoError(t, store.Set(key, string(query.ResourceToken), json.RawMessage(`"not a token"`)))

	inner := &fakeClient{}
	c := NewCachingClient(inner, store, zerolog.Nop())
	tok, err := c.Token(context.Background(), testHash)
	require.NoError(t, err)
	assert.Equal(t, "Cached", tok.Name)
	assert.Equal(t, 1, inner.tokenCalls)
	assert.Equal(t, []string{key}, store.deleted)

	entry, err := fs.Get(key)
	require.NoError(t, err)
	var cached token.Token
	require.NoError(t, json.Unmarshal(entry.Data, &cached), "fresh response replaces the bad entry")
}
