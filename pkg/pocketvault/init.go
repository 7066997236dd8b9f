// Package pocketvault boots the client shell of the PocketVault wallet:
// logging, locale resolution, the saved theme and the navigation host.
//
// Init builds an App once at process start; the App is then handed to the
// screens that need it instead of being looked up globally.
package pocketvault

import (
	"context"
	"log/slog"

	"github.com/pocketvault/pocketvault/pkg/pocketvault/config"
	"github.com/pocketvault/pocketvault/pkg/pocketvault/constants"
	"github.com/pocketvault/pocketvault/pkg/pocketvault/i18n"
	"github.com/pocketvault/pocketvault/pkg/pocketvault/internal"
	"github.com/pocketvault/pocketvault/pkg/pocketvault/router"
	"github.com/pocketvault/pocketvault/pkg/pocketvault/storage"
	"github.com/pocketvault/pocketvault/pkg/pocketvault/theme"
)

// Options configures Init.
type Options struct {
	LogPath         string          // Full path for the rotated log file; empty logs to stderr only
	LogLevel        string          // Application log level: debug, info, warn, error
	Locale          string          // Requested locale (BCP 47 or POSIX); empty uses English
	Store           storage.Store   // Preference store; nil opens a FileStore at PreferencesPath
	PreferencesPath string          // Used when Store is nil; empty uses storage.DefaultPath()
	ThemeKey        string          // Store key of the saved theme mode (default: theme.DefaultKey)
	StatusBar       theme.StatusBar // Host status bar; nil when the host has none
	OnThemeFailure  func(error)     // Receives theme persistence failures after they are logged
	QuietConsole    bool            // Keep logs off stderr; they still reach LogPath
}

// OptionsFromConfig maps loaded configuration onto Options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		LogPath:         cfg.LogPath,
		LogLevel:        cfg.LogLevel,
		Locale:          cfg.Locale,
		PreferencesPath: cfg.PreferencesPath,
		ThemeKey:        cfg.ThemeKey,
	}
}

// App is the process-wide state owner.
type App struct {
	store     storage.Store
	themes    *theme.Manager
	localizer *i18n.Localizer
	router    *router.Router
}

// Init configures logging, resolves the locale, opens the preference store
// and starts loading the saved theme. It must be called once, before any
// screen renders. Theme loading continues in the background; App.Theme()
// reports IsLoading until it finishes.
func Init(options Options) (*App, error) {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}
	internal.SetConsoleOutput(!options.QuietConsole)
	internal.SetRawLogLevel(options.LogLevel)

	if constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}

	localizer, err := i18n.Bootstrap(options.Locale)
	if err != nil {
		return nil, NewInfrastructureError("load_catalogs", err)
	}

	store := options.Store
	if store == nil {
		store = storage.NewFileStore(options.PreferencesPath)
	}

	themes := theme.NewManager(store, options.StatusBar, theme.Options{
		Key:       options.ThemeKey,
		Logger:    internal.GetInternalLogger(),
		OnFailure: options.OnThemeFailure,
	})

	GetLogger().Info("pocketvault started", "locale", localizer.Tag().String())

	return &App{
		store:     store,
		themes:    themes,
		localizer: localizer,
		router:    router.New(),
	}, nil
}

// Theme returns the theme manager.
func (a *App) Theme() *theme.Manager {
	return a.themes
}

// Localizer returns the localizer for the resolved locale.
func (a *App) Localizer() *i18n.Localizer {
	return a.localizer
}

// Router returns the navigation host.
func (a *App) Router() *router.Router {
	return a.router
}

// Store returns the preference store.
func (a *App) Store() storage.Store {
	return a.store
}

// Close waits for pending preference writes, bounded by ctx, and closes the
// log file. It must be called before program exit.
func (a *App) Close(ctx context.Context) error {
	err := a.themes.Close(ctx)
	if cerr := internal.CloseLogger(); err == nil {
		err = cerr
	}
	return err
}

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
