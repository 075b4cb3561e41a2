package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/controller"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/store/sqlitestore"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

// App carries root flags and the resources opened for one invocation.
type App struct {
	ConfigPath string
	Backend    string
	Theme      string
	Filter     string
	Debug      bool
	Group      bool
	NoColor    bool

	cfg     config.Config
	log     *slog.Logger
	closers []io.Closer
}

// exitError carries a process exit code (1 error, 2 usage).
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErr(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

// usageArgs reports positional-argument mistakes as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &exitError{code: 2, err: fmt.Errorf("usage: todo %s", cmd.Use)}
		}
		return nil
	}
}

// Execute runs the command line and returns the process exit code
// (0 ok, 1 error, 2 usage).
func Execute(args []string, stdout, stderr io.Writer) int {
	app := &App{}
	defer app.close()

	root := newRootCmd(app)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(context.Background())
	if err == nil {
		return 0
	}
	ui.Fail(stderr, err.Error())
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

// NewRootCmd builds the command tree with a fresh App.
func NewRootCmd() *cobra.Command { return newRootCmd(&App{}) }

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "todo - a tiny todo list (interactive TUI + scriptable CLI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  todo                      # interactive list
  todo add "Buy milk"
  todo ls --filter active
  todo done 2
  todo edit 1 "Buy oat milk"
  todo rm 3
  todo clear
  todo find milk
`),
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), app)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: 2, err: err}
	})

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.load()
	}

	f := cmd.PersistentFlags()
	f.StringVar(&app.ConfigPath, "config", "", "config file (default "+config.DefaultPath+")")
	f.StringVar(&app.Backend, "backend", "", "storage backend: json or sqlite")
	f.StringVar(&app.Theme, "theme", "", "theme: classic, neon or mono")
	f.StringVar(&app.Filter, "filter", "", "route to show: all, active or completed")
	f.BoolVar(&app.Debug, "debug", false, "log debug records")
	f.BoolVar(&app.Group, "group", false, "group output by pending/done")
	f.BoolVar(&app.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newListCmd(app),
		newAddCmd(app),
		newDoneCmd(app),
		newEditCmd(app),
		newRemoveCmd(app),
		newClearCmd(app),
		newFindCmd(app),
	)
	return cmd
}

// load resolves configuration, applying flag overrides, and opens the log.
func (a *App) load() error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	if a.Backend != "" {
		if cfg.Backend, err = config.ParseBackend(a.Backend); err != nil {
			return usageErr("%v", err)
		}
	}
	if a.Theme != "" {
		cfg.Theme = a.Theme
	}
	if a.Debug {
		cfg.LogLevel = slog.LevelDebug
	}
	ui.SetTheme(cfg.Theme)
	if a.NoColor {
		ui.SetColor(ui.ColorNever)
	}

	log, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	a.closers = append(a.closers, closer)
	return nil
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}

// openModel opens the configured store. The returned path is the file to
// watch for outside edits, empty when watching does not apply.
func (a *App) openModel(ctx context.Context) (*model.Model, string, error) {
	var (
		store     model.Store
		watchPath string
	)
	switch a.cfg.Backend {
	case config.BackendSQLite:
		s, err := sqlitestore.Open(ctx, a.cfg.DataDir)
		if err != nil {
			return nil, "", fmt.Errorf("open sqlite: %w", err)
		}
		store = s
	default:
		s, err := jsonstore.Open(a.cfg.DataDir)
		if err != nil {
			return nil, "", fmt.Errorf("open json store: %w", err)
		}
		store, watchPath = s, s.Path()
	}
	a.closers = append(a.closers, store)
	a.log.Debug("store opened", "backend", a.cfg.Backend, "dir", a.cfg.DataDir)
	if !a.cfg.Watch {
		watchPath = ""
	}
	return model.New(ctx, store, a.log), watchPath, nil
}

// routeHash turns the --filter flag (or the configured default) into a
// location hash for SetView.
func (a *App) routeHash() string {
	page := a.Filter
	if page == "" {
		page = a.cfg.DefaultRoute
	}
	return "#/" + strings.ToLower(strings.TrimSpace(page))
}

func runTUI(ctx context.Context, app *App) error {
	m, watchPath, err := app.openModel(ctx)
	if err != nil {
		return err
	}
	screen := tui.New(tui.Options{Theme: app.cfg.Theme, Logger: app.log, WatchPath: watchPath})
	ctrl := controller.New(m, screen, controller.WithLogger(app.log))
	screen.OnRoute(ctrl.SetView)
	screen.OnRefresh(ctrl.Refresh)
	ctrl.SetView(app.routeHash())
	return screen.Run()
}
