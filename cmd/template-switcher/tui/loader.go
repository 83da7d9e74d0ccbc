package tui

import (
	"context"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/template-switcher/internal/home"
	"github.com/ruminaider/template-switcher/internal/records"
	"github.com/ruminaider/template-switcher/internal/switcher"
)

// Loader turns store calls into tea.Cmds. Each call gets its own timeout so a
// slow request never blocks the event loop.
type Loader struct {
	Store    records.Store
	Creator  records.TemplateCreator
	Resolver *home.Resolver
	Timeout  time.Duration
	Logger   *slog.Logger
}

func (l Loader) context() (context.Context, context.CancelFunc) {
	if l.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), l.Timeout)
}

func (l Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.Logger
}

func (l Loader) loadTheme() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := l.context()
		defer cancel()
		theme, err := l.Store.CurrentTheme(ctx)
		if err != nil {
			l.logger().Warn("loading theme", "error", err)
		}
		return themeLoadedMsg{theme: theme, err: err}
	}
}

func (l Loader) loadTemplates() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := l.context()
		defer cancel()
		tmpl, err := l.Store.Templates(ctx, records.Query{Resolved: true})
		if err != nil {
			l.logger().Warn("loading templates", "error", err)
		} else {
			l.logger().Debug("templates loaded", "count", len(tmpl))
		}
		return templatesLoadedMsg{templates: tmpl, err: err}
	}
}

func (l Loader) loadTemplateParts(stylesheet string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := l.context()
		defer cancel()
		parts, err := l.Store.TemplateParts(ctx, records.Query{
			Resolved: true,
			Status:   switcher.TemplatePartStatuses,
			Theme:    stylesheet,
		})
		if err != nil {
			l.logger().Warn("loading template parts", "error", err)
		} else {
			l.logger().Debug("template parts loaded", "count", len(parts), "theme", stylesheet)
		}
		return templatePartsLoadedMsg{parts: parts, err: err}
	}
}

func (l Loader) resolveHome(tok switcher.Token) tea.Cmd {
	if l.Resolver == nil {
		return func() tea.Msg {
			return homeResolvedMsg{token: tok, id: home.None()}
		}
	}
	return func() tea.Msg {
		ctx, cancel := l.context()
		defer cancel()
		return homeResolvedMsg{token: tok, id: l.Resolver.Resolve(ctx)}
	}
}

func (l Loader) createTemplate(slug string) tea.Cmd {
	return func() tea.Msg {
		if l.Creator == nil {
			return templateCreatedMsg{err: errReadOnly}
		}
		ctx, cancel := l.context()
		defer cancel()
		rec, err := l.Creator.CreateTemplate(ctx, slug)
		if err != nil {
			l.logger().Warn("creating template", "slug", slug, "error", err)
		} else {
			l.logger().Info("template created", "slug", slug, "id", rec.ID)
		}
		return templateCreatedMsg{template: rec, err: err}
	}
}
