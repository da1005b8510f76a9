package page

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrMissingIdentifier is reported when the route carries no address hash.
var ErrMissingIdentifier = errors.New("route has no address hash")

const tokenPathPrefix = "/token/"

// Route is the navigable location of a token page.
type Route struct {
	Hash   string
	Tab    TabID
	SubTab TabID
}

// ParseRoute accepts a bare hash, a path such as "/token/0xabc?tab=holders",
// or a full URL with such a path. A contract sub-tab in the tab parameter
// selects the contract tab.
func ParseRoute(location string) (Route, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Route{}, nil
	}
	if !strings.Contains(location, "/") && !strings.Contains(location, "?") {
		return Route{Hash: location}, nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return Route{}, fmt.Errorf("parse location %q: %w", location, err)
	}

	var r Route
	path := strings.TrimRight(u.Path, "/")
	if idx := strings.Index(path, tokenPathPrefix); idx >= 0 {
		rest := path[idx+len(tokenPathPrefix):]
		r.Hash, _, _ = strings.Cut(rest, "/")
	} else if !strings.Contains(path, "/") {
		r.Hash = path
	}
	return r.WithTab(TabID(u.Query().Get("tab"))), nil
}

// Validate returns ErrMissingIdentifier when the hash is empty.
func (r Route) Validate() error {
	if r.Hash == "" {
		return ErrMissingIdentifier
	}
	return nil
}

// SelectedTab returns the top-level tab, defaulting to DefaultTab.
func (r Route) SelectedTab() TabID {
	if r.Tab == "" {
		return DefaultTab
	}
	return r.Tab
}

// WithTab returns the route with id selected. Contract sub-tabs select the
// contract tab and remember the sub-tab.
func (r Route) WithTab(id TabID) Route {
	switch {
	case id == "":
		r.Tab, r.SubTab = "", ""
	case isContractSubTab(id):
		r.Tab, r.SubTab = TabContract, id
	default:
		r.Tab, r.SubTab = id, ""
	}
	return r
}

// Location renders the route as a path with its tab query parameter.
func (r Route) Location() string {
	loc := tokenPathPrefix + r.Hash
	tab := r.Tab
	if r.SubTab != "" {
		tab = r.SubTab
	}
	if tab == "" {
		return loc
	}
	return loc + "?" + url.Values{"tab": {string(tab)}}.Encode()
}
