package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/tokenscope/internal/page"
	"github.com/rshade/tokenscope/internal/token"
)

// skeletonTabWidth is the width of one placeholder tab.
const skeletonTabWidth = 12

// spacerLines is the filler drawn below the tabs on wide layouts.
const spacerLines = 2

// View renders the page (Bubble Tea interface).
func (m TokenPageModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderDetails())
	b.WriteString("\n\n")
	b.WriteString(m.renderTabBar())
	b.WriteString("\n")
	if m.Constrained() {
		b.WriteString("\n")
	}
	b.WriteString(m.renderContent())
	b.WriteString("\n")

	err := m.ctrl.Err()
	if err == nil {
		err = m.ctrl.ListingErr()
	}
	if err != nil {
		b.WriteString(ErrorStyle.Render("Error: " + err.Error() + " (r to retry)"))
		b.WriteString("\n")
	}
	if m.ctrl.ShowSpacer() && !m.Constrained() {
		b.WriteString(strings.Repeat("\n", spacerLines))
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m TokenPageModel) renderHeader() string {
	res := m.ctrl.Token()
	if res.IsError {
		return TitleStyle.Render(token.ShortHash(m.ctrl.Route().Hash) + " token")
	}
	if !res.Ready() {
		return m.loading.View() + " " + InfoStyle.Render("Loading token…")
	}

	tok := res.Data
	name := tok.Name
	if name == "" {
		name = "Unnamed"
	}
	if tok.Symbol != "" {
		name += " (" + token.TrimSymbol(tok.Symbol) + ")"
	}
	header := TitleStyle.Render(name+" token") + " " + TagStyle.Render(tok.Type)
	if m.backLink != "" {
		header = LinkStyle.Render("← "+page.BackLinkLabel) + "  " + header
	}
	return header
}

func (m TokenPageModel) renderDetails() string {
	tok := m.ctrl.Token()
	contract := m.ctrl.Contract()
	if tok.IsError || contract.IsError {
		return InfoStyle.Render("Token details unavailable.")
	}
	if !tok.Ready() || !contract.Ready() {
		return SkeletonStyle.Render(strings.Repeat("░", skeletonTabWidth*3))
	}

	parts := []string{
		LabelStyle.Render("Contract ") + ValueStyle.Render(token.ChecksumAddress(contract.Data.Hash)),
	}
	if contract.Data.IsVerified {
		parts = append(parts, OKStyle.Render("verified"))
	}
	parts = append(parts,
		LabelStyle.Render("Holders ")+ValueStyle.Render(token.FormatCount(tok.Data.Holders)),
	)
	if tok.Data.TotalSupply != nil {
		parts = append(parts,
			LabelStyle.Render("Supply ")+ValueStyle.Render(token.FormatAmount(*tok.Data.TotalSupply, tok.Data.Decimals)),
		)
	}
	sep := "   "
	if m.Constrained() {
		sep = "\n"
	}
	return strings.Join(parts, sep)
}

func (m TokenPageModel) renderTabBar() string {
	tabs := m.ctrl.Tabs()
	if m.ctrl.ShowSkeleton() {
		skel := make([]string, 0, len(tabs))
		for range tabs {
			skel = append(skel, SkeletonStyle.Render(strings.Repeat("▒", skeletonTabWidth)))
		}
		return strings.Join(skel, " ")
	}

	displayed := m.ctrl.DisplayedTab()
	rendered := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		label := strconv.Itoa(i+1) + " " + tab.Label()
		if tab.ID == displayed {
			rendered = append(rendered, ActiveTabStyle.Render(label))
		} else {
			rendered = append(rendered, TabStyle.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	chrome := m.ctrl.Pagination(m.Constrained())
	if !chrome.Visible || chrome.Pagination == nil {
		return bar
	}
	p := chrome.Pagination
	prev, next := "‹", "›"
	if !p.CanGoBackwards {
		prev = " "
	}
	if !p.HasNextPage {
		next = " "
	}
	pager := fmt.Sprintf("%s Page %d %s", prev, p.Page, next)
	if p.IsLoading {
		pager = m.loading.View() + " " + pager
	}
	pager = PaginationStyle.Render(pager)

	gap := m.width - lipgloss.Width(bar) - lipgloss.Width(pager)
	if gap < 1 {
		gap = 1
	}
	return bar + strings.Repeat(" ", gap) + pager
}

func (m TokenPageModel) renderContent() string {
	if m.ctrl.DisplayedTab() == page.TabContract {
		return m.renderContract()
	}
	if m.ctrl.ShowSkeleton() {
		return InfoStyle.Render("Waiting for token details…")
	}
	switch m.listing {
	case listingInactive:
		return InfoStyle.Render("Nothing to show on this tab.")
	case listingFailed:
		return InfoStyle.Render("Records could not be loaded.")
	case listingReady, listingPending:
	}
	view := m.table.View()
	if m.listing == listingReady && len(m.table.Rows()) == 0 {
		view += "\n" + InfoStyle.Render("There are no records for this token.")
	}
	return view
}

func (m TokenPageModel) renderContract() string {
	info := m.ctrl.Contract().Data
	var b strings.Builder

	subs := m.ctrl.ContractTabs()
	displayed := m.ctrl.DisplayedSubTab()
	rendered := make([]string, 0, len(subs))
	for _, sub := range subs {
		if sub.ID == displayed {
			rendered = append(rendered, ActiveTabStyle.Render(sub.Title))
		} else {
			rendered = append(rendered, TabStyle.Render(sub.Title))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(LabelStyle.Render(fmt.Sprintf("%-16s", label)))
		b.WriteString(ValueStyle.Render(value))
		b.WriteString("\n")
	}
	row("Address", token.ChecksumAddress(info.Hash))
	if info.Name != nil {
		row("Name", *info.Name)
	}
	if info.IsVerified {
		row("Verified", OKStyle.Render("yes"))
	} else {
		row("Verified", "no")
	}
	if info.ImplementationAddress != nil {
		row("Implementation", token.ChecksumAddress(*info.ImplementationAddress))
	}
	if info.CreatorAddressHash != nil {
		row("Creator", token.ChecksumAddress(*info.CreatorAddressHash))
	}
	if info.CreationTxHash != nil {
		row("Creation txn", *info.CreationTxHash)
	}
	return strings.TrimRight(b.String(), "\n")
}
