package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ruminaider/template-switcher/internal/config"
	"github.com/ruminaider/template-switcher/internal/fixture"
	"github.com/ruminaider/template-switcher/internal/home"
	"github.com/ruminaider/template-switcher/internal/paths"
	"github.com/ruminaider/template-switcher/internal/records"
	"github.com/ruminaider/template-switcher/internal/switcher"
	"github.com/ruminaider/template-switcher/internal/wpapi"
)

// source is where records come from: a site or a fixture file.
type source interface {
	records.Store
	records.TemplateCreator
	records.HomeLookup
}

// session holds everything a command needs after flags and config are read.
type session struct {
	cfg     config.Config
	cfgPath string
	source  source
	name    string
	logger  *slog.Logger
	closeFn func() error
}

func (s *session) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return paths.ConfigFile()
}

// openSession loads the config, sets up logging and opens the record source.
func openSession() (*session, error) {
	path := resolvedConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if fixturePath != "" {
		cfg.Fixture = fixturePath
	}
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrNoSource) {
			return nil, fmt.Errorf("%w: run 'template-switcher config init' or pass --fixture", err)
		}
		return nil, err
	}

	logger, closeFn, err := openLogger(logFile, debug)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, cfgPath: path, logger: logger, closeFn: closeFn}

	if cfg.Fixture != "" {
		store, err := fixture.Load(cfg.Fixture)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.source = store
		s.name = filepath.Base(cfg.Fixture)
	} else {
		client, err := wpapi.NewClient(wpapi.ClientConfig{
			SiteURL:     cfg.SiteURL,
			Username:    cfg.Username,
			AppPassword: cfg.AppPassword,
			Timeout:     cfg.Timeout,
			Logger:      logger,
		})
		if err != nil {
			s.Close()
			return nil, err
		}
		s.source = client
		s.name = cfg.SiteURL
	}
	logger.Debug("session opened", "source", s.name, "config", path)
	return s, nil
}

// openLogger returns a text logger writing to path. Logging is off unless a
// path is given or debug is set; debug without a path logs to the default
// log file, since the terminal belongs to the UI.
func openLogger(path string, debug bool) (*slog.Logger, func() error, error) {
	if path == "" && !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil
	}
	if path == "" {
		path = paths.LogFile()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f.Close, nil
}

// activeFromConfig converts the persisted selection. The second result is
// false when nothing was persisted.
func activeFromConfig(a *config.Active) (switcher.ActiveSelection, bool) {
	if a == nil {
		return nil, false
	}
	kind := switcher.KindTemplate
	if a.Kind == switcher.KindTemplatePart.String() {
		kind = switcher.KindTemplatePart
	}
	return switcher.NewActiveSelection(kind, records.ID(a.ID)), true
}

func activeToConfig(a switcher.ActiveSelection) *config.Active {
	return &config.Active{Kind: a.Kind().String(), ID: int64(a.ActiveID())}
}

// newController builds a controller whose callbacks update its own active
// selection.
func newController(active switcher.ActiveSelection) *switcher.Controller {
	var ctrl *switcher.Controller
	ctrl = switcher.New(switcher.Options{
		Active: active,
		Callbacks: switcher.Callbacks{
			OnActiveTemplateChange: func(id records.ID) {
				ctrl.SetActive(switcher.ActiveTemplate{ID: id})
			},
			OnActiveTemplatePartChange: func(id records.ID) {
				ctrl.SetActive(switcher.ActiveTemplatePart{ID: id})
			},
			OnAddTemplate: func(id records.ID) {
				ctrl.SetActive(switcher.ActiveTemplate{ID: id})
			},
		},
	})
	return ctrl
}

// loadAll fills ctrl synchronously. It is used by the non-interactive
// commands; the TUI loads the same data through tea.Cmds.
func loadAll(ctx context.Context, s *session, ctrl *switcher.Controller) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	homeCh := newResolver(s).Start(ctx)
	tok, started := ctrl.BeginHomeResolution()

	theme, err := s.source.CurrentTheme(ctx)
	if err != nil {
		return fmt.Errorf("loading theme: %w", err)
	}
	ctrl.SetTheme(theme)

	templates, err := s.source.Templates(ctx, records.Query{Resolved: true})
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	ctrl.SetTemplates(templates)
	ids := make([]records.ID, 0, len(templates))
	for _, t := range templates {
		ids = append(ids, t.ID)
	}
	ctrl.SetCandidateIDs(ids)

	parts, err := s.source.TemplateParts(ctx, records.Query{
		Resolved: true,
		Status:   switcher.TemplatePartStatuses,
		Theme:    theme.Stylesheet,
	})
	if err != nil {
		return fmt.Errorf("loading template parts: %w", err)
	}
	ctrl.SetTemplateParts(parts)

	id := <-homeCh
	if started {
		ctrl.FinishHomeResolution(tok, id)
	}
	return nil
}

func newResolver(s *session) *home.Resolver {
	return home.NewResolver(s.source, s.source, s.logger)
}
