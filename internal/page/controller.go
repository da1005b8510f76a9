package page

import (
	"github.com/rshade/tokenscope/internal/query"
	"github.com/rshade/tokenscope/internal/token"
)

// State is the coarse lifecycle of a page.
type State int

// Page states.
const (
	StateInitializing State = iota
	StateFetchingEntity
	StateEntityFailed
	StateEntityReady
	StateFetchingResource
)

// String returns a readable state name.
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateFetchingEntity:
		return "fetching_entity"
	case StateEntityFailed:
		return "entity_failed"
	case StateEntityReady:
		return "entity_ready"
	case StateFetchingResource:
		return "fetching_resource"
	default:
		return "unknown"
	}
}

// Response is the outcome of one request, fed back through Apply. Only the
// field matching Request.Resource is read.
type Response struct {
	Request   query.Request
	Token     token.Token
	Address   token.AddressInfo
	Transfers query.Page[token.Transfer]
	Holders   query.Page[token.Holder]
	Inventory query.Page[token.Instance]
	Err       error
}

type listing interface {
	Paginated
	NextPage() bool
	PrevPage() bool
	Invalidate()
	InFlight() bool
}

// Controller holds the state of one token page. It is not safe for
// concurrent use; drive it from a single event loop.
//
// Every mutating method returns the requests that became due. The caller
// runs them (in any order, concurrently if it likes) and passes each result
// to Apply.
type Controller struct {
	route     Route
	templates MetaTemplates

	entity    *query.Single[token.Token]
	contract  *query.Single[token.AddressInfo]
	transfers *query.Binding[token.Transfer]
	holders   *query.Binding[token.Holder]
	inventory *query.Binding[token.Instance]

	active  ActiveResource
	tabs    []VisibleTab
	subTabs []ContractTab

	meta       Meta
	metaEntity string
}

// NewController creates an idle controller. Call SetRoute to start it.
func NewController(templates MetaTemplates) *Controller {
	c := &Controller{
		templates: templates,
		entity:    query.NewSingle(query.ResourceToken, token.StubTokenInfo()),
		contract:  query.NewSingle(query.ResourceAddress, token.StubAddressInfo()),
		transfers: query.NewBinding(query.ResourceTokenTransfers, token.StubTransfers(token.KindFungible)),
		holders:   query.NewBinding(query.ResourceTokenHolders, token.StubHolders()),
		inventory: query.NewBinding(query.ResourceTokenInventory, token.StubInstances()),
	}
	c.recompute()
	return c
}

// SetRoute applies a route change. A new hash resets every query and the
// page meta; a tab change only moves the activation.
func (c *Controller) SetRoute(r Route) []query.Request {
	if r.Hash != c.route.Hash {
		c.entity.Reset(r.Hash)
		c.contract.Reset(r.Hash)
		c.transfers.Reset(r.Hash, token.StubTransfers(token.KindFungible))
		c.holders.Reset(r.Hash, token.StubHolders())
		c.inventory.Reset(r.Hash, token.StubInstances())
		c.meta = c.templates.Render(r.Hash)
		c.metaEntity = ""
	}
	c.route = r
	c.recompute()
	return c.collect()
}

// SelectTab is SetRoute with only the tab changed.
func (c *Controller) SelectTab(id TabID) []query.Request {
	return c.SetRoute(c.route.WithTab(id))
}

// Apply feeds back a response. Responses for a hash or page the controller
// has moved away from are ignored.
func (c *Controller) Apply(resp Response) []query.Request {
	req := resp.Request
	switch req.Resource {
	case query.ResourceToken:
		c.entity.Receive(req, resp.Token, resp.Err)
	case query.ResourceAddress:
		c.contract.Receive(req, resp.Address, resp.Err)
	case query.ResourceTokenTransfers:
		c.transfers.Receive(req, resp.Transfers, resp.Err)
	case query.ResourceTokenHolders:
		c.holders.Receive(req, resp.Holders, resp.Err)
	case query.ResourceTokenInventory:
		c.inventory.Receive(req, resp.Inventory, resp.Err)
	}
	c.recompute()
	return c.collect()
}

// NextPage advances the active listing.
func (c *Controller) NextPage() []query.Request {
	if l := c.activeListing(); l != nil {
		l.NextPage()
	}
	return c.collect()
}

// PrevPage moves the active listing back one page.
func (c *Controller) PrevPage() []query.Request {
	if l := c.activeListing(); l != nil {
		l.PrevPage()
	}
	return c.collect()
}

// Refetch reloads whatever failed: the token and contract queries if either
// errored, otherwise the current page of the active listing.
func (c *Controller) Refetch() []query.Request {
	entityFailed := c.entity.Result().IsError
	contractFailed := c.contract.Result().IsError
	switch {
	case entityFailed || contractFailed:
		if entityFailed {
			c.entity.Invalidate()
		}
		if contractFailed {
			c.contract.Invalidate()
		}
	default:
		if l := c.activeListing(); l != nil {
			l.Invalidate()
		}
	}
	return c.collect()
}

// recompute derives tabs, activation and meta from the current state. It
// runs after every change to the route or a query result.
func (c *Controller) recompute() {
	entity := c.entity.Result()
	contract := c.contract.Result()

	var tok token.Token
	var info token.AddressInfo
	if entity.Ready() {
		tok = entity.Data
	}
	if contract.Ready() {
		info = contract.Data
	}

	c.subTabs = ContractSubTabs(info)
	c.tabs = AssembleTabs(tok, info, c.subTabs)
	c.active = Activate(c.route, c.tabs, entity.Ready(), contract.Ready())

	if entity.Ready() {
		c.transfers.Reseed(token.StubTransfers(tok.Kind()))
		if tok.Address != c.metaEntity {
			c.meta = c.meta.WithEntity(tok)
			c.metaEntity = tok.Address
		}
	}
}

// collect asks each query whether it needs fetching. Calling it marks the
// returned requests as in flight.
func (c *Controller) collect() []query.Request {
	var reqs []query.Request
	hasHash := c.route.Hash != ""
	if req, ok := c.entity.Want(hasHash); ok {
		reqs = append(reqs, req)
	}
	if req, ok := c.contract.Want(hasHash); ok {
		reqs = append(reqs, req)
	}
	if req, ok := c.transfers.Want(c.active.Enabled(query.ResourceTokenTransfers)); ok {
		reqs = append(reqs, req)
	}
	if req, ok := c.holders.Want(c.active.Enabled(query.ResourceTokenHolders)); ok {
		reqs = append(reqs, req)
	}
	if req, ok := c.inventory.Want(c.active.Enabled(query.ResourceTokenInventory)); ok {
		reqs = append(reqs, req)
	}
	return reqs
}

func (c *Controller) activeListing() listing {
	switch c.active {
	case ActiveTransfers:
		return c.transfers
	case ActiveHolders:
		return c.holders
	case ActiveInventory:
		return c.inventory
	case ActiveNone:
	}
	return nil
}

// Route returns the current route.
func (c *Controller) Route() Route {
	return c.route
}

// Active returns the listing currently allowed to fetch.
func (c *Controller) Active() ActiveResource {
	return c.active
}

// Tabs returns the assembled tab list.
func (c *Controller) Tabs() []VisibleTab {
	return c.tabs
}

// ContractTabs returns the derived contract sub-tabs.
func (c *Controller) ContractTabs() []ContractTab {
	return c.subTabs
}

// DisplayedTab is the tab whose content is shown. A selected tab that is not
// in the tab list falls back to DefaultTab.
func (c *Controller) DisplayedTab() TabID {
	selected := c.route.SelectedTab()
	if tab, ok := FindTab(c.tabs, selected); ok {
		return tab.ID
	}
	return DefaultTab
}

// DisplayedSubTab is the contract sub-tab shown when the contract tab is
// displayed: the routed one when it exists, otherwise the first.
func (c *Controller) DisplayedSubTab() TabID {
	if c.DisplayedTab() != TabContract || len(c.subTabs) == 0 {
		return ""
	}
	for _, sub := range c.subTabs {
		if sub.ID == c.route.SubTab {
			return sub.ID
		}
	}
	return c.subTabs[0].ID
}

// Pagination returns the pagination chrome for the displayed tab.
func (c *Controller) Pagination(constrained bool) PaginationChrome {
	return SelectPagination(c.DisplayedTab(), Bindings{
		Transfers: c.transfers,
		Holders:   c.holders,
		Inventory: c.inventory,
	}, constrained)
}

// Meta returns the page title and description.
func (c *Controller) Meta() Meta {
	return c.meta
}

// ShowSkeleton reports whether the tab shell should render as a skeleton.
func (c *Controller) ShowSkeleton() bool {
	return c.entity.Result().IsPlaceholderData || c.contract.Result().IsPlaceholderData
}

// ShowSpacer reports whether the trailing filler below the tabs is drawn.
func (c *Controller) ShowSpacer() bool {
	r := c.entity.Result()
	return !r.IsLoading && !r.IsError
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	entity, contract := c.entity.Result(), c.contract.Result()
	switch {
	case c.route.Hash == "":
		return StateInitializing
	case entity.IsError || contract.IsError:
		return StateEntityFailed
	case !entity.Ready() || !contract.Ready():
		return StateFetchingEntity
	}
	if l := c.activeListing(); l != nil && l.InFlight() {
		return StateFetchingResource
	}
	return StateEntityReady
}

// Err returns ErrMissingIdentifier without a hash, otherwise the first
// token or contract fetch error.
func (c *Controller) Err() error {
	if err := c.route.Validate(); err != nil {
		return err
	}
	if r := c.entity.Result(); r.IsError {
		return r.Err
	}
	if r := c.contract.Result(); r.IsError {
		return r.Err
	}
	return nil
}

// ListingErr returns the fetch error of the active listing's current page.
func (c *Controller) ListingErr() error {
	switch c.active {
	case ActiveTransfers:
		return c.transfers.Result().Err
	case ActiveHolders:
		return c.holders.Result().Err
	case ActiveInventory:
		return c.inventory.Result().Err
	case ActiveNone:
	}
	return nil
}

// Token returns the token query.
func (c *Controller) Token() query.Result[token.Token] {
	return c.entity.Result()
}

// Contract returns the contract address query.
func (c *Controller) Contract() query.Result[token.AddressInfo] {
	return c.contract.Result()
}

// Transfers returns the transfers listing.
func (c *Controller) Transfers() query.Result[[]token.Transfer] {
	return c.transfers.Result()
}

// Holders returns the holders listing.
func (c *Controller) Holders() query.Result[[]token.Holder] {
	return c.holders.Result()
}

// Inventory returns the inventory listing.
func (c *Controller) Inventory() query.Result[[]token.Instance] {
	return c.inventory.Result()
}
