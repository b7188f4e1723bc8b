package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/mokka-studios/datatable/internal/catalog"
	"github.com/mokka-studios/datatable/internal/config"
	"github.com/mokka-studios/datatable/internal/logging"
	"github.com/mokka-studios/datatable/internal/paths"
	"github.com/mokka-studios/datatable/pkg/actions"
	"github.com/mokka-studios/datatable/pkg/sqlite"
	"github.com/mokka-studios/datatable/pkg/types"
)

// validEntities is a comma-separated list of entity types for error output.
var validEntities = strings.Join(types.StandardEntityTypes, ", ")

// env is the resolved configuration and attached backend of one command.
type env struct {
	ctx     context.Context
	cfg     config.Config
	log     *logrus.Logger
	backend types.Backend
	json    bool
	out     io.Writer
}

// loadConfig resolves the config and data directories and loads config.yaml.
func loadConfig(flags *rootFlags) (config.Config, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return config.Config{}, sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := config.Load(configDir)
	if err != nil {
		return config.Config{}, userError(fmt.Errorf("load config: %w", err))
	}
	cfg.DataDir, err = paths.ResolveDataDir(flags.dataDir, cfg.DataDir)
	if err != nil {
		return config.Config{}, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	return cfg, nil
}

// attach loads the configuration and attaches the backend. The caller must
// call close.
func attach(cmd *cobra.Command, flags *rootFlags) (*env, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, userError(err)
	}
	backend := sqlite.NewBackend(log)
	if err := backend.Attach(cfg.Storage()); err != nil {
		return nil, sysError(fmt.Errorf("attach backend: %w", err))
	}
	log.WithFields(logrus.Fields{"backend": cfg.Backend, "data_dir": cfg.DataDir}).Debug("backend attached")
	return &env{ctx: cmd.Context(), cfg: cfg, log: log, backend: backend, json: flags.jsonMode, out: cmd.OutOrStdout()}, nil
}

func (e *env) close() {
	if err := e.backend.Detach(); err != nil {
		e.log.WithError(err).Warn("detach failed")
	}
}

// options are the session options for the configured page size and locale.
// Success notifications are printed unless output is JSON.
func (e *env) options() catalog.Options {
	locale, err := language.Parse(e.cfg.Locale)
	if err != nil {
		locale = language.English
	}
	return catalog.Options{
		PageSize: e.cfg.PageSize,
		Locale:   locale,
		Logger:   e.log,
		Notifier: actions.NotifierFunc(func(n actions.Notification) {
			if n.Level == actions.LevelSuccess && !e.json {
				fmt.Fprintln(e.out, n.Message)
			}
		}),
	}
}

// handlers run a command against a session of each entity type.
type handlers struct {
	customers  func(*catalog.Session[types.Customer]) error
	products   func(*catalog.Session[types.Product]) error
	categories func(*catalog.Session[types.Category]) error
}

// open loads the named entity type into a session and passes it to the
// matching handler.
func (e *env) open(entity string, h handlers) error {
	ctx, opts := e.ctx, e.options()
	switch entity {
	case types.EntityCustomers:
		s, err := catalog.Open(ctx, catalog.Customers(), e.backend.Customers(), opts)
		if err != nil {
			return classify(err)
		}
		return h.customers(s)
	case types.EntityProducts:
		cats := e.backend.Categories().List(ctx)
		if err := cats.Err(); err != nil {
			return classify(err)
		}
		s, err := catalog.Open(ctx, catalog.Products(cats.Data), e.backend.Products(), opts)
		if err != nil {
			return classify(err)
		}
		return h.products(s)
	case types.EntityCategories:
		s, err := catalog.Open(ctx, catalog.Categories(), e.backend.Categories(), opts)
		if err != nil {
			return classify(err)
		}
		return h.categories(s)
	}
	return userError(fmt.Errorf("%w %q (valid: %s)", types.ErrUnknownEntityType, entity, validEntities))
}

// classify maps configuration errors to system failures and everything
// else to user errors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	if types.IsConfigurationError(err) {
		return sysError(err)
	}
	return userError(err)
}

// withEnv attaches the backend, runs fn and detaches.
func withEnv(cmd *cobra.Command, flags *rootFlags, fn func(*env) error) error {
	e, err := attach(cmd, flags)
	if err != nil {
		return err
	}
	defer e.close()
	return classify(fn(e))
}
