// pocketvault drives the wallet shell's theme from a terminal.
//
// Usage:
//
//	pocketvault [flags] show|toggle|set <light|dark>
//
// Flags:
//
//	-config string   Path to configuration file (default: $XDG_CONFIG_HOME/pocketvault/config.toml)
//	-locale string   Override the configured locale
//	-ephemeral       Keep the theme in memory only
//	-palette         Print the active palette after the command
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/atomic"

	"github.com/pocketvault/pocketvault/pkg/pocketvault"
	"github.com/pocketvault/pocketvault/pkg/pocketvault/config"
	"github.com/pocketvault/pocketvault/pkg/pocketvault/constants"
	"github.com/pocketvault/pocketvault/pkg/pocketvault/i18n"
	"github.com/pocketvault/pocketvault/pkg/pocketvault/platform/terminal"
	"github.com/pocketvault/pocketvault/pkg/pocketvault/router"
	"github.com/pocketvault/pocketvault/pkg/pocketvault/storage"
	"github.com/pocketvault/pocketvault/pkg/pocketvault/theme"
)

const (
	routeShow   router.Route = "show"
	routeToggle router.Route = "toggle"
	routeSet    router.Route = "set"
)

const statusBarWidth = 40

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pocketvault", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to configuration file")
	locale := fs.String("locale", "", "override the configured locale")
	ephemeral := fs.Bool("ephemeral", false, "keep the theme in memory only")
	showPalette := fs.Bool("palette", false, "print the active palette after the command")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	start, input, err := parseCommand(fs.Args())
	if err != nil {
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	opts := pocketvault.OptionsFromConfig(cfg)
	opts.QuietConsole = true
	if *locale != "" {
		opts.Locale = *locale
	}
	if *ephemeral {
		opts.Store = storage.NewMemoryStore(nil)
	}

	saveFailed := atomic.NewBool(false)
	opts.OnThemeFailure = func(err error) {
		var pf *theme.PersistenceFailure
		if errors.As(err, &pf) && pf.Op == theme.OpWrite {
			saveFailed.Store(true)
		}
	}
	opts.StatusBar = terminal.NewStatusBar(stdout, "PocketVault", statusBarWidth)

	app, err := pocketvault.Init(opts)
	if err != nil {
		fmt.Fprintf(stderr, "init: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()
	if err := app.Theme().WaitReady(ctx); err != nil {
		fmt.Fprintf(stderr, "load theme: %v\n", err)
		return 1
	}

	registerScreens(app, stdout, *showPalette)
	runErr := pocketvault.Guard("cli", func() error {
		return app.Router().Run(start, input)
	})

	if err := app.Close(ctx); err != nil {
		fmt.Fprintf(stderr, "close: %v\n", err)
	}
	if saveFailed.Load() {
		fmt.Fprintln(stderr, app.Localizer().Message(i18n.MsgThemeSaveFailed, nil))
	}
	if runErr != nil {
		fmt.Fprintln(stderr, app.Localizer().Message(i18n.MsgErrorUnexpected, nil))
		pocketvault.GetLogger().Error("command failed", "error", runErr)
		return 1
	}
	return 0
}

func parseCommand(args []string) (router.Route, any, error) {
	if len(args) == 0 {
		return routeShow, nil, nil
	}

	switch route := router.Route(args[0]); route {
	case routeShow, routeToggle:
		if len(args) != 1 {
			return "", nil, fmt.Errorf("%s takes no arguments", route)
		}
		return route, nil, nil
	case routeSet:
		if len(args) != 2 {
			return "", nil, errors.New("set requires a mode: light or dark")
		}
		mode, err := theme.ParseMode(args[1])
		if err != nil {
			return "", nil, err
		}
		return routeSet, mode, nil
	default:
		return "", nil, fmt.Errorf("unknown command %q", args[0])
	}
}

// registerScreens wires the CLI commands as routes. Mutating commands report
// the change and then hand over to the show screen.
func registerScreens(app *pocketvault.App, out io.Writer, showPalette bool) {
	themes := app.Theme()
	loc := app.Localizer()

	app.Router().
		Register(routeToggle, func(any) (any, error) {
			themes.Toggle()
			return themes.Mode(), nil
		}).
		Register(routeSet, func(input any) (any, error) {
			themes.SetMode(input.(theme.Mode))
			return themes.Mode(), nil
		}).
		Register(routeShow, func(any) (any, error) {
			state := themes.State()
			fmt.Fprintln(out, loc.Message(i18n.MsgThemeCurrent, map[string]any{"Mode": loc.ModeLabel(state.Mode)}))
			if showPalette {
				fmt.Fprint(out, terminal.RenderPalette(lipgloss.NewRenderer(out), state.Theme))
			}
			return nil, nil
		}).
		OnTransition(func(from router.Route, result any, _ *router.Stack) (router.Route, any) {
			if from == routeShow {
				return router.RouteExit, nil
			}
			mode := result.(theme.Mode)
			fmt.Fprintln(out, loc.Message(i18n.MsgThemeSwitched, map[string]any{"Mode": loc.ModeLabel(mode)}))
			return routeShow, nil
		})
}
