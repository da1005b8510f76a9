package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Lifecycle(t *testing.T) {
	r := Placeholder([]string{"stub"})
	assert.True(t, r.IsPlaceholderData)
	assert.False(t, r.Ready())

	r = r.Begin()
	assert.True(t, r.IsLoading)
	assert.Equal(t, []string{"stub"}, r.Data)

	ok := r.Resolve([]string{"real"})
	assert.True(t, ok.Ready())
	assert.False(t, ok.IsLoading)
	assert.False(t, ok.IsPlaceholderData)

	failed := r.Fail(errors.New("boom"))
	assert.False(t, failed.Ready())
	assert.True(t, failed.IsError)
	assert.False(t, failed.IsPlaceholderData)
	assert.Equal(t, []string{"stub"}, failed.Data, "placeholder rows stay displayable after failure")
}

func TestPageParams_Encode(t *testing.T) {
	assert.Empty(t, PageParams(nil).Encode())

	params := PageParams{"items_count": "50", "block_number": "100"}
	assert.Equal(t, "block_number=100&items_count=50", params.Encode())
}

func TestPager(t *testing.T) {
	p := NewPager()
	assert.Equal(t, 1, p.Page())
	assert.Nil(t, p.Current())
	assert.False(t, p.IsVisible())
	assert.False(t, p.Next(), "no next page advertised yet")

	p.Observe(PageParams{"cursor": "a"})
	assert.True(t, p.HasNextPage())
	assert.True(t, p.IsVisible())

	require.True(t, p.Next())
	assert.Equal(t, 2, p.Page())
	assert.Equal(t, PageParams{"cursor": "a"}, p.Current())
	assert.True(t, p.CanGoBackwards())
	assert.True(t, p.IsVisible(), "page 2 is visible even without a next page")

	p.Observe(nil)
	assert.False(t, p.HasNextPage())

	require.True(t, p.Prev())
	assert.Equal(t, 1, p.Page())
	assert.True(t, p.HasNextPage(), "page we left is the next page again")
	assert.False(t, p.Prev())

	p.Reset()
	assert.Equal(t, 1, p.Page())
	assert.False(t, p.HasNextPage())
}

func TestBinding_WantIsGatedAndDeduplicated(t *testing.T) {
	b := NewBinding(ResourceTokenHolders, []string{"stub"})

	_, ok := b.Want(true)
	assert.False(t, ok, "no hash yet")

	b.Reset("0xabc", []string{"stub"})
	_, ok = b.Want(false)
	assert.False(t, ok, "disabled binding never requests")

	req, ok := b.Want(true)
	require.True(t, ok)
	assert.Equal(t, Request{Resource: ResourceTokenHolders, Hash: "0xabc"}, req)
	assert.True(t, b.Result().IsLoading)
	assert.True(t, b.Pagination().IsLoading)

	_, ok = b.Want(true)
	assert.False(t, ok, "request already in flight")

	accepted := b.Receive(req, Page[string]{Items: []string{"a", "b"}, NextPageParams: PageParams{"n": "2"}}, nil)
	assert.True(t, accepted)
	assert.True(t, b.Result().Ready())
	assert.Equal(t, []string{"a", "b"}, b.Result().Data)
	assert.True(t, b.Pagination().IsVisible)

	_, ok = b.Want(true)
	assert.False(t, ok, "page already loaded")

	b.Invalidate()
	_, ok = b.Want(true)
	assert.True(t, ok, "invalidated page is fetched again")
}

func TestBinding_DropsStaleResponses(t *testing.T) {
	b := NewBinding(ResourceTokenTransfers, []int{0})
	b.Reset("0xold", []int{0})
	oldReq, ok := b.Want(true)
	require.True(t, ok)

	b.Reset("0xnew", []int{0})
	accepted := b.Receive(oldReq, Page[int]{Items: []int{1}}, nil)
	assert.False(t, accepted)
	assert.True(t, b.Result().IsPlaceholderData)

	newReq, ok := b.Want(true)
	require.True(t, ok)
	assert.Equal(t, "0xnew", newReq.Hash)
}

func TestBinding_PageNavigation(t *testing.T) {
	b := NewBinding(ResourceTokenInventory, []int{0})
	b.Reset("0xabc", []int{0})

	req, _ := b.Want(true)
	b.Receive(req, Page[int]{Items: []int{1}, NextPageParams: PageParams{"id": "10"}}, nil)

	require.True(t, b.NextPage())
	req2, ok := b.Want(true)
	require.True(t, ok)
	assert.Equal(t, PageParams{"id": "10"}, req2.Params)

	// A late response for page one no longer applies.
	assert.False(t, b.Receive(req, Page[int]{Items: []int{9}}, nil))

	assert.True(t, b.Receive(req2, Page[int]{Items: []int{2}}, nil))
	assert.Equal(t, 2, b.Pagination().Page)
	assert.False(t, b.Pagination().HasNextPage)

	require.True(t, b.PrevPage())
	_, ok = b.Want(true)
	assert.True(t, ok, "previous page is refetched")
	assert.Equal(t, 1, b.Pagination().Page)
}

func TestBinding_ErrorIsRecorded(t *testing.T) {
	b := NewBinding(ResourceTokenHolders, []string{"stub"})
	b.Reset("0xabc", []string{"stub"})
	req, _ := b.Want(true)

	assert.True(t, b.Receive(req, Page[string]{}, errors.New("502")))
	assert.True(t, b.Result().IsError)
	assert.Equal(t, []string{"stub"}, b.Result().Data)

	_, ok := b.Want(true)
	assert.False(t, ok, "failed page is not retried automatically")
}

func TestBinding_Reseed(t *testing.T) {
	b := NewBinding(ResourceTokenTransfers, []string{"a"})
	b.Reseed([]string{"b"})
	assert.Equal(t, []string{"b"}, b.Result().Data)

	b.Reset("0xabc", nil)
	req, _ := b.Want(true)
	b.Receive(req, Page[string]{Items: []string{"real"}}, nil)
	b.Reseed([]string{"c"})
	assert.Equal(t, []string{"real"}, b.Result().Data)
}

func TestSingle(t *testing.T) {
	s := NewSingle(ResourceToken, "seed")
	_, ok := s.Want(true)
	assert.False(t, ok, "no hash yet")

	s.Reset("0xabc")
	_, ok = s.Want(false)
	assert.False(t, ok)

	req, ok := s.Want(true)
	require.True(t, ok)
	assert.True(t, s.Result().IsLoading)
	assert.True(t, s.Result().IsPlaceholderData)
	_, ok = s.Want(true)
	assert.False(t, ok, "in flight")

	assert.True(t, s.Receive(req, "real", nil))
	assert.True(t, s.Result().Ready())
	assert.Equal(t, "real", s.Result().Data)
	_, ok = s.Want(true)
	assert.False(t, ok, "loaded")

	s.Reset("0xdef")
	assert.False(t, s.Receive(req, "late", nil))
	assert.Equal(t, "seed", s.Result().Data)

	req, ok = s.Want(true)
	require.True(t, ok)
	assert.True(t, s.Receive(req, "", errors.New("boom")))
	assert.True(t, s.Result().IsError)
	assert.False(t, s.Result().IsPlaceholderData)

	s.Invalidate()
	_, ok = s.Want(true)
	assert.True(t, ok)
}
