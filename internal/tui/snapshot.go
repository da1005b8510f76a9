package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rshade/tokenscope/internal/page"
	"github.com/rshade/tokenscope/internal/query"
	"github.com/rshade/tokenscope/internal/token"
)

// tabPadding is the column gap in plain output.
const tabPadding = 2

// Snapshot is a one-shot rendering of a settled token page.
type Snapshot struct {
	Meta       page.Meta           `json:"meta"`
	Location   string              `json:"location"`
	Token      *SnapshotToken      `json:"token,omitempty"`
	Tabs       []SnapshotTab       `json:"tabs"`
	Tab        string              `json:"tab"`
	SubTab     string              `json:"sub_tab,omitempty"`
	Active     string              `json:"active"`
	Pagination *SnapshotPagination `json:"pagination,omitempty"`
	Columns    []string            `json:"columns,omitempty"`
	Rows       [][]string          `json:"rows,omitempty"`
	BackLink   string              `json:"back_link,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// SnapshotToken summarizes the token entity.
type SnapshotToken struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol,omitempty"`
	Type        string `json:"type"`
	Holders     string `json:"holders"`
	TotalSupply string `json:"total_supply,omitempty"`
	Verified    bool   `json:"verified"`
}

// SnapshotTab is one visible tab.
type SnapshotTab struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Verified bool     `json:"verified,omitempty"`
	SubTabs  []string `json:"sub_tabs,omitempty"`
}

// SnapshotPagination is the pagination chrome of the selected tab.
type SnapshotPagination struct {
	Resource       string `json:"resource"`
	Page           int    `json:"page"`
	HasNextPage    bool   `json:"has_next_page"`
	CanGoBackwards bool   `json:"can_go_backwards"`
}

// BuildSnapshot captures the controller state. constrained hides the
// pagination chrome as the interactive view would.
func BuildSnapshot(ctrl *page.Controller, referrer string, constrained bool, now time.Time) Snapshot {
	snap := Snapshot{
		Meta:     ctrl.Meta(),
		Location: ctrl.Route().Location(),
		Tab:      string(ctrl.DisplayedTab()),
		SubTab:   string(ctrl.DisplayedSubTab()),
		Active:   ctrl.Active().String(),
	}
	if link, ok := page.BackLink(referrer); ok {
		snap.BackLink = link
	}
	if err := ctrl.Err(); err != nil {
		snap.Error = err.Error()
	} else if err := ctrl.ListingErr(); err != nil {
		snap.Error = err.Error()
	}

	if res := ctrl.Token(); res.Ready() {
		tok := res.Data
		snap.Token = &SnapshotToken{
			Address:  tok.Address,
			Name:     token.DisplayName(tok),
			Symbol:   token.TrimSymbol(tok.Symbol),
			Type:     tok.Type,
			Holders:  token.FormatCount(tok.Holders),
			Verified: ctrl.Contract().Ready() && ctrl.Contract().Data.IsVerified,
		}
		if tok.TotalSupply != nil {
			snap.Token.TotalSupply = token.FormatAmount(*tok.TotalSupply, tok.Decimals)
		}
	}

	for _, tab := range ctrl.Tabs() {
		st := SnapshotTab{ID: string(tab.ID), Title: tab.Title, Verified: tab.Verified}
		for _, sub := range tab.SubTabIDs {
			st.SubTabs = append(st.SubTabs, string(sub))
		}
		snap.Tabs = append(snap.Tabs, st)
	}

	if chrome := ctrl.Pagination(constrained); chrome.Visible && chrome.Pagination != nil {
		snap.Pagination = snapshotPagination(chrome.Resource, *chrome.Pagination)
	}

	if l := listingTable(ctrl, now); l.state != listingInactive {
		for _, c := range l.columns {
			snap.Columns = append(snap.Columns, c.Title)
		}
		if l.state == listingReady {
			for _, r := range l.rows {
				snap.Rows = append(snap.Rows, []string(r))
			}
		}
	}
	return snap
}

func snapshotPagination(resource query.Resource, p query.Pagination) *SnapshotPagination {
	return &SnapshotPagination{
		Resource:       string(resource),
		Page:           p.Page,
		HasNextPage:    p.HasNextPage,
		CanGoBackwards: p.CanGoBackwards,
	}
}

// RenderSnapshotJSON writes snap as indented JSON.
func RenderSnapshotJSON(w io.Writer, snap Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snap); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// RenderSnapshotPlain writes snap as unstyled text with a tab-aligned table.
func RenderSnapshotPlain(w io.Writer, snap Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	if snap.BackLink != "" {
		fmt.Fprintf(tw, "< %s (%s)\n", page.BackLinkLabel, snap.BackLink)
	}
	fmt.Fprintln(tw, snap.Meta.Title)
	if snap.Location != "" {
		fmt.Fprintf(tw, "Location\t%s\n", snap.Location)
	}
	if snap.Token != nil {
		fmt.Fprintf(tw, "Contract\t%s\n", snap.Token.Address)
		fmt.Fprintf(tw, "Type\t%s\n", snap.Token.Type)
		fmt.Fprintf(tw, "Holders\t%s\n", snap.Token.Holders)
		if snap.Token.TotalSupply != "" {
			fmt.Fprintf(tw, "Supply\t%s\n", snap.Token.TotalSupply)
		}
	}

	labels := make([]string, 0, len(snap.Tabs))
	for _, tab := range snap.Tabs {
		label := tab.Title
		if tab.Verified {
			label += " ✓"
		}
		if tab.ID == snap.Tab {
			label = "[" + label + "]"
		}
		labels = append(labels, label)
	}
	fmt.Fprintf(tw, "\n%s\n", strings.Join(labels, "  "))
	if snap.SubTab != "" {
		fmt.Fprintf(tw, "Section\t%s\n", snap.SubTab)
	}
	if p := snap.Pagination; p != nil {
		fmt.Fprintf(tw, "Page\t%d (next: %t, back: %t)\n", p.Page, p.HasNextPage, p.CanGoBackwards)
	}
	fmt.Fprintln(tw)

	if len(snap.Columns) > 0 {
		fmt.Fprintln(tw, strings.Join(snap.Columns, "\t"))
		for _, row := range snap.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		if len(snap.Rows) == 0 {
			fmt.Fprintln(tw, "(no rows)")
		}
	}
	if snap.Error != "" {
		fmt.Fprintf(tw, "Error\t%s\n", snap.Error)
	}
	return tw.Flush()
}
