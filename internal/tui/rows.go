package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"github.com/rshade/tokenscope/internal/page"
	"github.com/rshade/tokenscope/internal/query"
	"github.com/rshade/tokenscope/internal/token"
)

// Column widths.
const (
	colHash   = 13
	colMethod = 12
	colValue  = 22
	colAge    = 10
	colShare  = 10
	colID     = 16
	colName   = 28
)

// skeletonCell fills a column while its listing has no server data.
const skeletonCell = "░"

// listingState is how much of the displayed listing may be shown.
type listingState int

const (
	// listingReady holds rows from a server response.
	listingReady listingState = iota
	// listingPending has not received its first response yet.
	listingPending
	// listingFailed has no usable rows after a fetch error.
	listingFailed
	// listingInactive is not being fetched for the displayed tab.
	listingInactive
)

// listing is the table of the displayed tab.
type listing struct {
	columns []table.Column
	rows    []table.Row
	state   listingState
}

// listingTable returns the table for the displayed tab. Rows come from server
// data only; a pending listing gets skeleton rows and a failed or inactive
// one gets none. The contract tab has no table.
func listingTable(ctrl *page.Controller, now time.Time) listing {
	tab := ctrl.DisplayedTab()
	if tab == page.TabContract {
		return listing{state: listingInactive}
	}
	active := ctrl.Active() == page.ResourceForTab(tab)
	tok := ctrl.Token().Data

	var l listing
	seeded := 0
	switch tab {
	case page.TabHolders:
		res := ctrl.Holders()
		l = listing{columns: holderColumns(), state: stateOf(res, active)}
		seeded = len(res.Data)
		if l.state == listingReady {
			l.rows = holderRows(res.Data, tok)
		}
	case page.TabInventory:
		res := ctrl.Inventory()
		l = listing{columns: inventoryColumns(), state: stateOf(res, active)}
		seeded = len(res.Data)
		if l.state == listingReady {
			l.rows = inventoryRows(res.Data)
		}
	default:
		res := ctrl.Transfers()
		l = listing{columns: transferColumns(tok.Kind()), state: stateOf(res, active)}
		seeded = len(res.Data)
		if l.state == listingReady {
			l.rows = transferRows(res.Data, now)
		}
	}
	if l.state == listingPending {
		l.rows = skeletonRows(l.columns, seeded)
	}
	return l
}

func stateOf[T any](res query.Result[T], active bool) listingState {
	switch {
	case !active:
		return listingInactive
	case res.Ready():
		return listingReady
	case res.IsError:
		return listingFailed
	}
	return listingPending
}

func skeletonRows(columns []table.Column, n int) []table.Row {
	rows := make([]table.Row, 0, n)
	for range n {
		row := make(table.Row, len(columns))
		for i, c := range columns {
			row[i] = strings.Repeat(skeletonCell, max(c.Width-2, 1))
		}
		rows = append(rows, row)
	}
	return rows
}

func transferColumns(kind token.Kind) []table.Column {
	valueTitle := "Value"
	if kind.IsNFT() {
		valueTitle = "Token ID"
	}
	return []table.Column{
		{Title: "Txn", Width: colHash},
		{Title: "Method", Width: colMethod},
		{Title: "From", Width: colHash},
		{Title: "To", Width: colHash},
		{Title: valueTitle, Width: colValue},
		{Title: "Age", Width: colAge},
	}
}

func transferRows(transfers []token.Transfer, now time.Time) []table.Row {
	rows := make([]table.Row, 0, len(transfers))
	for _, tr := range transfers {
		method := ""
		if tr.Method != nil {
			method = *tr.Method
		}
		rows = append(rows, table.Row{
			token.ShortHash(tr.TxHash),
			method,
			token.ShortHash(tr.From.Hash),
			token.ShortHash(tr.To.Hash),
			transferValue(tr.Total),
			age(tr.Timestamp, now),
		})
	}
	return rows
}

// transferValue shows the token ID for NFT transfers and the scaled amount
// otherwise. ERC-1155 transfers carry both.
func transferValue(total token.TransferTotal) string {
	switch {
	case total.TokenID != nil && total.Value != nil:
		return "#" + *total.TokenID + " ×" + *total.Value
	case total.TokenID != nil:
		return "#" + *total.TokenID
	case total.Value != nil:
		return token.FormatAmount(*total.Value, total.Decimals)
	default:
		return "-"
	}
}

func holderColumns() []table.Column {
	return []table.Column{
		{Title: "Holder", Width: 44},
		{Title: "Quantity", Width: colValue},
		{Title: "Share", Width: colShare},
	}
}

func holderRows(holders []token.Holder, tok token.Token) []table.Row {
	rows := make([]table.Row, 0, len(holders))
	for _, h := range holders {
		rows = append(rows, table.Row{
			token.ChecksumAddress(h.Address.Hash),
			token.FormatAmount(h.Value, tok.Decimals),
			token.Share(h.Value, tok.TotalSupply),
		})
	}
	return rows
}

func inventoryColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: colID},
		{Title: "Name", Width: colName},
		{Title: "Owner", Width: colHash},
	}
}

func inventoryRows(instances []token.Instance) []table.Row {
	rows := make([]table.Row, 0, len(instances))
	for _, inst := range instances {
		owner := "-"
		if inst.Owner != nil {
			owner = token.ShortHash(inst.Owner.Hash)
		}
		name := inst.InstanceName()
		if name == "" {
			name = "-"
		}
		rows = append(rows, table.Row{inst.ID, name, owner})
	}
	return rows
}

// age renders a coarse relative time like "3m" or "2d".
func age(ts *time.Time, now time.Time) string {
	if ts == nil {
		return "-"
	}
	d := now.Sub(*ts)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + "m"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d.Hours())) + "h"
	default:
		return strconv.Itoa(int(d.Hours()/24)) + "d"
	}
}
