package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/tokenscope/internal/config"
	"github.com/rshade/tokenscope/internal/explorer"
	"github.com/rshade/tokenscope/internal/page"
	"github.com/rshade/tokenscope/internal/query"
	"github.com/rshade/tokenscope/internal/token"
	"github.com/rshade/tokenscope/internal/tui"
)

// ErrPageFailed is returned after a snapshot whose token or contract query
// failed. The page, including the error, has already been written.
var ErrPageFailed = errors.New("token page could not be loaded")

// tokenOptions holds the flags of the token command.
type tokenOptions struct {
	tab      string
	referrer string
	output   string
	plain    bool
}

// NewTokenCmd creates the token command, which opens the page of one token.
func NewTokenCmd() *cobra.Command {
	var opts tokenOptions

	cmd := &cobra.Command{
		Use:   "token <address | /token/<address>?tab=... | URL>",
		Short: "Show a token page",
		Long: `Shows the token page for an address: details, then tabs for transfers,
holders, inventory (NFT collections only) and the contract.

On a terminal the page is interactive. With --plain, --output json, or when
stdout is not a terminal, the page is loaded once and printed.`,
		Example: `  tokenscope token 0xdAC17F958D2ee523a2206206994597C13D831ec7
  tokenscope token 0xdAC17F958D2ee523a2206206994597C13D831ec7 --tab holders --plain
  tokenscope token "/token/0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D?tab=inventory" --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.tab, "tab", "", "tab to open: token_transfers, holders, inventory, contract or a contract section")
	cmd.Flags().StringVar(&opts.referrer, "referrer", "", "page this one was opened from; a tokens list enables the back link")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "output format: table or json")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print a plain text snapshot instead of the interactive page")

	return cmd
}

// parseTokenRoute turns the argument and --tab into a route with a
// checksummed hash.
func parseTokenRoute(location, tab string) (page.Route, error) {
	route, err := page.ParseRoute(location)
	if err != nil {
		return page.Route{}, err
	}
	if err := route.Validate(); err != nil {
		return page.Route{}, err
	}
	if !token.IsAddress(route.Hash) {
		return page.Route{}, fmt.Errorf("%w: %q", explorer.ErrInvalidHash, route.Hash)
	}
	route.Hash = token.ChecksumAddress(route.Hash)
	if tab != "" {
		route = route.WithTab(page.TabID(tab))
	}
	return route, nil
}

func runToken(cmd *cobra.Command, location string, opts tokenOptions) error {
	if opts.output != "table" && opts.output != "json" {
		return fmt.Errorf("unsupported output format: %s", opts.output)
	}
	route, err := parseTokenRoute(location, opts.tab)
	if err != nil {
		return err
	}

	cfg := config.GetGlobalConfig()
	client, err := newExplorerClient(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	fetch := func(ctx context.Context, req query.Request) page.Response {
		return page.Execute(ctx, client, req)
	}
	templates := page.MetaTemplates{
		Title:       cfg.UI.TitleTemplate,
		Description: cfg.UI.DescriptionTemplate,
	}

	outFile, _ := cmd.OutOrStdout().(*os.File)
	mode := tui.DetectOutputMode(opts.output, opts.plain, outFile)
	logger.Debug().
		Ctx(ctx).
		Str("hash", route.Hash).
		Str("tab", string(route.SelectedTab())).
		Str("api_url", cfg.Explorer.APIURL).
		Msg("opening token page")

	if mode == tui.OutputInteractive {
		return runInteractiveTokenPage(ctx, cmd.OutOrStdout(), outFile, tui.TokenPageOptions{
			Route:            route,
			Referrer:         opts.referrer,
			Fetch:            fetch,
			Templates:        templates,
			ConstrainedWidth: cfg.UI.ConstrainedWidth,
		})
	}

	width, _ := tui.TerminalSize(outFile)
	return renderTokenSnapshot(ctx, cmd.OutOrStdout(), snapshotOptions{
		route:       route,
		referrer:    opts.referrer,
		fetch:       fetch,
		templates:   templates,
		constrained: width < cfg.UI.ConstrainedWidth,
		json:        mode == tui.OutputJSON,
	})
}

func runInteractiveTokenPage(ctx context.Context, w io.Writer, out *os.File, opts tui.TokenPageOptions) error {
	if logToTerminal {
		ctx = zerolog.Nop().WithContext(ctx)
	}
	opts.Width, opts.Height = tui.TerminalSize(out)

	p := tea.NewProgram(
		tui.NewTokenPageModel(ctx, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(w),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}

	if m, ok := final.(tui.TokenPageModel); ok {
		if link, followed := m.FollowBack(); followed {
			_, _ = fmt.Fprintln(w, link)
		}
	}
	return nil
}

// snapshotOptions configures a one-shot rendering.
type snapshotOptions struct {
	route       page.Route
	referrer    string
	fetch       page.FetchFunc
	templates   page.MetaTemplates
	constrained bool
	json        bool
	now         time.Time
}

// renderTokenSnapshot settles the page and prints it. The token and contract
// queries run concurrently, then the first page of the active listing.
func renderTokenSnapshot(ctx context.Context, w io.Writer, opts snapshotOptions) error {
	ctrl := page.NewController(opts.templates)
	if err := page.Settle(ctx, ctrl, opts.fetch, ctrl.SetRoute(opts.route)); err != nil {
		return fmt.Errorf("loading token page: %w", err)
	}

	now := opts.now
	if now.IsZero() {
		now = time.Now()
	}
	snap := tui.BuildSnapshot(ctrl, opts.referrer, opts.constrained, now)

	var err error
	if opts.json {
		err = tui.RenderSnapshotJSON(w, snap)
	} else {
		err = tui.RenderSnapshotPlain(w, snap)
	}
	if err != nil {
		return err
	}

	if pageErr := ctrl.Err(); pageErr != nil {
		logger.Error().Ctx(ctx).Err(pageErr).Str("hash", opts.route.Hash).Msg("token page failed")
		return fmt.Errorf("%w: %w", ErrPageFailed, pageErr)
	}
	return nil
}
