package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dukahq/dukapos/internal/pos/keystore"
	"github.com/dukahq/dukapos/internal/pos/routing"
	"github.com/dukahq/dukapos/internal/pos/session"
	"github.com/dukahq/dukapos/pkg/possdk"
	"github.com/dukahq/dukapos/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the terminal with all its dependencies wired:
// the credential keystore, the gateway client, the session store and the
// landing-destination resolver.
type Application struct {
	cfg    Config
	logger *slog.Logger

	keystore *keystore.Store
	api      *possdk.Client
	session  *session.Store
	resolver *routing.Resolver
}

// New creates an Application with all dependencies initialized. The keystore
// directory is created if missing so first runs work out of the box.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "dukapos",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initKeystore(); err != nil {
		return nil, err
	}
	app.initClient()

	app.session = session.New(app.api, app.logger)
	app.resolver = routing.NewResolver(app.api, app.logger)

	return app, nil
}

func (app *Application) Logger() *slog.Logger        { return app.logger }
func (app *Application) Config() Config              { return app.cfg }
func (app *Application) API() *possdk.Client         { return app.api }
func (app *Application) Session() *session.Store     { return app.session }
func (app *Application) Resolver() *routing.Resolver { return app.resolver }

// Close releases the keystore. Safe to call once after use.
func (app *Application) Close() error {
	if app.keystore == nil {
		return nil
	}
	if err := app.keystore.Close(); err != nil {
		app.logger.Error("error closing keystore", "error", err)
		return err
	}
	return nil
}

func (app *Application) initKeystore() error {
	if dir := filepath.Dir(app.cfg.KeystorePath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create keystore directory: %w", err)
		}
	}

	masterKey, err := keystore.LoadMasterKey(app.cfg.MasterKeyPath)
	if err != nil {
		return fmt.Errorf("failed to load keystore master key: %w", err)
	}

	ks, err := keystore.Open(app.cfg.KeystorePath, masterKey)
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}
	app.keystore = ks
	return nil
}

func (app *Application) initClient() {
	app.api = possdk.New(app.cfg.APIBaseURL, app.keystore,
		possdk.WithLogger(app.logger),
		possdk.WithRateLimit(app.cfg.RateRPS, app.cfg.RateBurst),
		possdk.WithSessionExpiredHook(func() {
			fmt.Fprintln(os.Stderr, "session expired, please log in again")
		}),
	)
	app.api.HTTPClient.Timeout = app.cfg.HTTPTimeout
}
