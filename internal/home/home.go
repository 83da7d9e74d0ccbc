// Package home determines which template backs the site's front page.
package home

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/ruminaider/template-switcher/internal/records"
)

type state int

const (
	stateUnresolved state = iota
	stateNone
	stateResolved
)

// ID is the outcome of home resolution: unresolved until the lookup finishes,
// then either a record id or "none".
type ID struct {
	state state
	id    records.ID
}

// Unresolved returns the initial, pending value.
func Unresolved() ID { return ID{} }

// None returns the value for "no home record could be determined".
func None() ID { return ID{state: stateNone} }

// Of returns a resolved home id.
func Of(id records.ID) ID { return ID{state: stateResolved, id: id} }

// Resolved reports whether the lookup has finished (with or without a match).
func (h ID) Resolved() bool { return h.state != stateUnresolved }

// Get returns the home record id when one was found.
func (h ID) Get() (records.ID, bool) {
	return h.id, h.state == stateResolved
}

// Matches reports whether id is the resolved home record.
func (h ID) Matches(id records.ID) bool {
	return h.state == stateResolved && h.id == id
}

func (h ID) String() string {
	switch h.state {
	case stateNone:
		return "none"
	case stateResolved:
		return strconv.FormatInt(int64(h.id), 10)
	default:
		return "unresolved"
	}
}

var (
	errLookupFailed = errors.New("home lookup reported failure")
	errNoMatch      = errors.New("no template matches home slug")
)

// Resolver performs the one-shot home lookup.
type Resolver struct {
	Lookup records.HomeLookup
	Store  records.Store
	Logger *slog.Logger
}

// NewResolver creates a Resolver. A nil logger discards output.
func NewResolver(lookup records.HomeLookup, store records.Store, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{Lookup: lookup, Store: store, Logger: logger}
}

// Resolve runs the lookup and always returns a resolved ID. Every failure is
// collapsed into None.
func (r *Resolver) Resolve(ctx context.Context) ID {
	id, err := r.resolve(ctx)
	if err != nil {
		r.logger().Debug("home resolution failed", "error", err)
		return None()
	}
	r.logger().Debug("home resolved", "id", id)
	return Of(id)
}

// Start runs Resolve in its own goroutine. The returned channel yields
// exactly one value and is then closed.
func (r *Resolver) Start(ctx context.Context) <-chan ID {
	ch := make(chan ID, 1)
	go func() {
		defer close(ch)
		ch <- r.Resolve(ctx)
	}()
	return ch
}

func (r *Resolver) resolve(ctx context.Context) (id records.ID, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("home lookup panicked: %v", p)
		}
	}()

	res, err := r.Lookup.FindTemplate(ctx)
	if err != nil {
		return 0, fmt.Errorf("finding home template: %w", err)
	}
	if !res.Success {
		return 0, errLookupFailed
	}
	if res.ID != nil {
		return *res.ID, nil
	}

	// The endpoint matched a template by slug only; look the id up ourselves.
	if res.PostName == "" {
		return 0, fmt.Errorf("%w: empty slug", errNoMatch)
	}
	matches, err := r.Store.Templates(ctx, records.Query{Resolved: true, Slug: res.PostName})
	if err != nil {
		return 0, fmt.Errorf("looking up template %q: %w", res.PostName, err)
	}
	if len(matches) == 0 {
		return 0, fmt.Errorf("%w: %q", errNoMatch, res.PostName)
	}
	return matches[0].ID, nil
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}
