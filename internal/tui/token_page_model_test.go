package tui

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tokenscope/internal/page"
	"github.com/rshade/tokenscope/internal/query"
	"github.com/rshade/tokenscope/internal/token"
)

const testHash = "0x2B51Ae4412F79c3c1cB12AA40Ea4ECEb4e80511a"

func strPtr(s string) *string { return &s }

type fakeExplorer struct {
	tokenType     string
	failToken     bool
	failTransfers bool
	calls         map[query.Resource]int
}

func (f *fakeExplorer) fetch(_ context.Context, req query.Request) page.Response {
	if f.calls == nil {
		f.calls = map[query.Resource]int{}
	}
	f.calls[req.Resource]++

	resp := page.Response{Request: req}
	switch req.Resource {
	case query.ResourceToken:
		if f.failToken {
			resp.Err = errors.New("explorer unavailable")
			return resp
		}
		resp.Token = token.Token{
			Address:     testHash,
			Name:        "Foo",
			Symbol:      "FOO",
			Type:        f.tokenType,
			Decimals:    strPtr("2"),
			Holders:     strPtr("12345"),
			TotalSupply: strPtr("100000"),
		}
	case query.ResourceAddress:
		resp.Address = token.AddressInfo{Hash: testHash, IsContract: true, IsVerified: true, HasMethodsRead: true}
	case query.ResourceTokenTransfers:
		if f.failTransfers {
			resp.Err = errors.New("transfers unavailable")
			return resp
		}
		ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		resp.Transfers = query.Page[token.Transfer]{
			Items: []token.Transfer{{
				TxHash:    "0xabcdef0123456789",
				From:      token.AddressParam{Hash: "0x1111111111111111111111111111111111111111"},
				To:        token.AddressParam{Hash: "0x2222222222222222222222222222222222222222"},
				Total:     token.TransferTotal{Value: strPtr("123456"), Decimals: strPtr("2")},
				Timestamp: &ts,
			}},
			NextPageParams: query.PageParams{"block_number": "1"},
		}
	case query.ResourceTokenHolders:
		resp.Holders = query.Page[token.Holder]{
			Items: []token.Holder{{Address: token.AddressParam{Hash: testHash}, Value: "25000"}},
		}
	case query.ResourceTokenInventory:
		resp.Inventory = query.Page[token.Instance]{
			Items: []token.Instance{{ID: "42", Metadata: map[string]any{"name": "Foo #42"}}},
		}
	}
	return resp
}

// run executes cmd and feeds every fetch result back into the model until
// no fetches remain. Other messages are dropped.
func run(t *testing.T, m TokenPageModel, cmd tea.Cmd) TokenPageModel {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case FetchedMsg:
			updated, more := m.Update(msg)
			m = updated.(TokenPageModel)
			queue = append(queue, more)
		}
	}
	return m
}

func press(t *testing.T, m TokenPageModel, msg tea.KeyMsg) TokenPageModel {
	t.Helper()
	updated, cmd := m.Update(msg)
	return run(t, updated.(TokenPageModel), cmd)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newLoadedModel(t *testing.T, fake *fakeExplorer, opts TokenPageOptions) TokenPageModel {
	t.Helper()
	opts.Fetch = fake.fetch
	opts.Now = func() time.Time { return time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC) }
	m := NewTokenPageModel(context.Background(), opts)
	return run(t, m, m.Init())
}

func TestTokenPageModel_InitialLoad(t *testing.T) {
	fake := &fakeExplorer{tokenType: token.TypeERC20}
	m := NewTokenPageModel(context.Background(), TokenPageOptions{
		Route: page.Route{Hash: testHash},
		Fetch: fake.fetch,
	})
	assert.Equal(t, page.StateFetchingEntity, m.Controller().State())
	assert.Contains(t, m.View(), "Loading token")

	m = run(t, m, m.Init())
	ctrl := m.Controller()
	assert.Equal(t, page.StateEntityReady, ctrl.State())
	assert.Equal(t, 1, fake.calls[query.ResourceTokenTransfers])
	assert.Zero(t, fake.calls[query.ResourceTokenHolders])

	view := m.View()
	assert.Contains(t, view, "Foo (FOO) token")
	assert.Contains(t, view, "Contract ✓")
	assert.Contains(t, view, "1,234.56")
	assert.Contains(t, view, "12,345")
	assert.Contains(t, view, "Page 1")
	assert.Equal(t, "Foo (FOO) token details | tokenscope", m.title)
}

func TestTokenPageModel_TabNavigation(t *testing.T) {
	fake := &fakeExplorer{tokenType: token.TypeERC721}
	m := newLoadedModel(t, fake, TokenPageOptions{Route: page.Route{Hash: testHash}})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, page.TabHolders, m.Controller().DisplayedTab())
	assert.Equal(t, 1, fake.calls[query.ResourceTokenHolders])
	assert.Contains(t, m.View(), "25%")

	m = press(t, m, runes("3"))
	assert.Equal(t, page.TabInventory, m.Controller().DisplayedTab())
	assert.Contains(t, m.View(), "Foo #42")

	m = press(t, m, runes("4"))
	assert.Equal(t, page.TabContract, m.Controller().DisplayedTab())
	assert.Contains(t, m.View(), "Read contract")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, page.TabTransfers, m.Controller().DisplayedTab(), "wraps around")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, page.TabContract, m.Controller().DisplayedTab())

	m = press(t, m, runes("9"))
	assert.Equal(t, page.TabContract, m.Controller().DisplayedTab(), "out of range jump is ignored")

	assert.Equal(t, 1, fake.calls[query.ResourceTokenTransfers], "transfers page stays loaded")
}

func TestTokenPageModel_Paging(t *testing.T) {
	fake := &fakeExplorer{tokenType: token.TypeERC20}
	m := newLoadedModel(t, fake, TokenPageOptions{Route: page.Route{Hash: testHash}})

	m = press(t, m, runes("n"))
	assert.Equal(t, 2, fake.calls[query.ResourceTokenTransfers])
	assert.Equal(t, 2, m.Controller().Pagination(false).Pagination.Page)

	m = press(t, m, runes("r"))
	assert.Equal(t, 3, fake.calls[query.ResourceTokenTransfers])
}

func TestTokenPageModel_ConstrainedHidesPagination(t *testing.T) {
	fake := &fakeExplorer{tokenType: token.TypeERC20}
	m := newLoadedModel(t, fake, TokenPageOptions{Route: page.Route{Hash: testHash}})
	assert.Contains(t, m.View(), "Page 1")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	m = updated.(TokenPageModel)
	assert.True(t, m.Constrained())
	assert.NotContains(t, m.View(), "Page 1")
}

func TestTokenPageModel_BackLink(t *testing.T) {
	fake := &fakeExplorer{tokenType: token.TypeERC20}

	m := newLoadedModel(t, fake, TokenPageOptions{Route: page.Route{Hash: testHash}})
	updated, cmd := m.Update(runes("b"))
	m = updated.(TokenPageModel)
	_, followed := m.FollowBack()
	assert.False(t, followed, "no referrer, no back link")
	assert.Nil(t, cmd)

	m = newLoadedModel(t, fake, TokenPageOptions{
		Route:    page.Route{Hash: testHash},
		Referrer: "https://eth.blockscout.com/tokens",
	})
	assert.Contains(t, m.View(), page.BackLinkLabel)

	updated, cmd = m.Update(runes("b"))
	m = updated.(TokenPageModel)
	link, followed := m.FollowBack()
	assert.True(t, followed)
	assert.Equal(t, "https://eth.blockscout.com/tokens", link)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestTokenPageModel_FetchError(t *testing.T) {
	fake := &fakeExplorer{tokenType: token.TypeERC20, failToken: true}
	m := newLoadedModel(t, fake, TokenPageOptions{Route: page.Route{Hash: testHash}})

	assert.Equal(t, page.StateEntityFailed, m.Controller().State())
	view := m.View()
	assert.Contains(t, view, "explorer unavailable")
	assert.Contains(t, view, token.ShortHash(testHash)+" token")
	for _, stub := range []string{"Placeholder", "PLC", "16,026"} {
		assert.NotContains(t, view, stub, "placeholder token is never shown as real")
	}
	assert.Zero(t, fake.calls[query.ResourceTokenTransfers])

	fake.failToken = false
	m = press(t, m, runes("r"))
	assert.Equal(t, page.StateEntityReady, m.Controller().State())
	assert.Equal(t, 2, fake.calls[query.ResourceToken])
}

func TestTokenPageModel_PendingListingShowsSkeleton(t *testing.T) {
	fake := &fakeExplorer{tokenType: token.TypeERC20}
	m := NewTokenPageModel(context.Background(), TokenPageOptions{
		Route: page.Route{Hash: testHash},
		Fetch: fake.fetch,
	})
	// Answer the entity fetches and leave the transfers fetch outstanding.
	for _, req := range m.pending {
		updated, _ := m.Update(FetchedMsg{Response: fake.fetch(context.Background(), req)})
		m = updated.(TokenPageModel)
	}
	require.Equal(t, page.StateFetchingResource, m.Controller().State())
	require.True(t, m.Controller().Transfers().IsPlaceholderData)

	view := m.View()
	assert.Contains(t, view, "Foo (FOO) token")
	assert.Contains(t, view, skeletonCell)
	assert.NotContains(t, view, token.ShortHash("0x62d597ebcf3e8d60096dd0363bc2f0f5e2df27ba1dacd696c51aa7c9409f3193"))
	assert.NotContains(t, view, "There are no records")
}

func TestTokenPageModel_ListingError(t *testing.T) {
	fake := &fakeExplorer{tokenType: token.TypeERC20, failTransfers: true}
	m := newLoadedModel(t, fake, TokenPageOptions{Route: page.Route{Hash: testHash}})

	view := m.View()
	assert.Contains(t, view, "transfers unavailable")
	assert.Contains(t, view, "Records could not be loaded.")
	assert.NotContains(t, view, "0x62d5", "placeholder transfers are never shown as real")
	assert.Contains(t, view, "Foo (FOO) token", "entity stays displayed")
}

func TestTokenPageModel_StaleTabShowsNoRows(t *testing.T) {
	fake := &fakeExplorer{tokenType: token.TypeERC20}
	m := newLoadedModel(t, fake, TokenPageOptions{Route: page.Route{Hash: testHash, Tab: page.TabInventory}})

	assert.Equal(t, page.TabTransfers, m.Controller().DisplayedTab())
	assert.Equal(t, page.ActiveNone, m.Controller().Active())
	view := m.View()
	assert.Contains(t, view, "Nothing to show on this tab.")
	assert.NotContains(t, view, "0x62d5")
	assert.Zero(t, fake.calls[query.ResourceTokenTransfers])
}

func TestTokenPageModel_Quit(t *testing.T) {
	m := NewTokenPageModel(context.Background(), TokenPageOptions{})
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, updated.(TokenPageModel).quitting)
}

func TestDetectOutputMode(t *testing.T) {
	assert.Equal(t, OutputJSON, DetectOutputMode("json", false, os.Stdout))
	assert.Equal(t, OutputPlain, DetectOutputMode("table", true, os.Stdout))
	assert.Equal(t, OutputPlain, DetectOutputMode("table", false, nil))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, OutputPlain, DetectOutputMode("table", false, f))

	w, h := TerminalSize(f)
	assert.Equal(t, defaultWidth, w)
	assert.Equal(t, defaultHeight, h)
}

func TestAge(t *testing.T) {
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time { ts := now.Add(-d); return &ts }

	assert.Equal(t, "-", age(nil, now))
	assert.Equal(t, "now", age(at(10*time.Second), now))
	assert.Equal(t, "5m", age(at(5*time.Minute), now))
	assert.Equal(t, "3h", age(at(3*time.Hour), now))
	assert.Equal(t, "2d", age(at(49*time.Hour), now))
}

func TestTransferValue(t *testing.T) {
	assert.Equal(t, "#7", transferValue(token.TransferTotal{TokenID: strPtr("7")}))
	assert.Equal(t, "#7 ×3", transferValue(token.TransferTotal{TokenID: strPtr("7"), Value: strPtr("3")}))
	assert.Equal(t, "1.5", transferValue(token.TransferTotal{Value: strPtr("15"), Decimals: strPtr("1")}))
	assert.Equal(t, "-", transferValue(token.TransferTotal{}))
}
