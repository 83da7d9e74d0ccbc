package records

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// ID identifies a template or template-part record.
type ID int64

// Status is the post status of a record.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublish   Status = "publish"
	StatusAutoDraft Status = "auto-draft"
	StatusPending   Status = "pending"
	StatusPrivate   Status = "private"
	StatusFuture    Status = "future"
	StatusTrash     Status = "trash"
)

var knownStatuses = []Status{
	StatusDraft, StatusPublish, StatusAutoDraft, StatusPending,
	StatusPrivate, StatusFuture, StatusTrash,
}

// ErrInvalidRecord is returned when a record from the store is missing a
// required field.
var ErrInvalidRecord = errors.New("invalid record")

// ParseStatus converts a raw status string into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !slices.Contains(knownStatuses, st) {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

// Customized reports whether the record has been edited by the user, i.e.
// its status is anything other than auto-draft.
func (s Status) Customized() bool {
	return s != StatusAutoDraft
}

// TemplateRecord is a full-page template.
type TemplateRecord struct {
	ID      ID
	Slug    string
	Status  Status
	Title   string
	Content string
	Theme   string
}

// Validate checks the fields every template needs.
func (r TemplateRecord) Validate() error {
	return validateCommon("template", r.ID, r.Slug, r.Status)
}

// TemplatePartRecord is a reusable fragment such as a header or footer. Parts
// are scoped to the theme that provides them.
type TemplatePartRecord struct {
	ID      ID
	Slug    string
	Status  Status
	Title   string
	Content string
	Theme   string
	Area    string
}

// Validate checks the fields every template part needs.
func (r TemplatePartRecord) Validate() error {
	if err := validateCommon("template part", r.ID, r.Slug, r.Status); err != nil {
		return err
	}
	if r.Theme == "" {
		return fmt.Errorf("%w: template part %d has no theme", ErrInvalidRecord, r.ID)
	}
	return nil
}

func validateCommon(kind string, id ID, slug string, status Status) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s id must be positive, got %d", ErrInvalidRecord, kind, id)
	}
	if slug == "" {
		return fmt.Errorf("%w: %s %d has no slug", ErrInvalidRecord, kind, id)
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return fmt.Errorf("%w: %s %d: %v", ErrInvalidRecord, kind, id, err)
	}
	return nil
}

// ThemeRecord describes the active theme.
type ThemeRecord struct {
	Stylesheet  string
	Template    string
	Name        string
	Description string
	Version     string
	Author      string
	ThemeURI    string
}

// Query narrows a record listing. Zero-valued fields do not filter.
type Query struct {
	Resolved bool
	Slug     string
	Status   []Status
	Theme    string
}

// MatchesTemplate reports whether r satisfies the query.
func (q Query) MatchesTemplate(r TemplateRecord) bool {
	return q.matches(r.Slug, r.Status, r.Theme)
}

// MatchesTemplatePart reports whether r satisfies the query.
func (q Query) MatchesTemplatePart(r TemplatePartRecord) bool {
	return q.matches(r.Slug, r.Status, r.Theme)
}

func (q Query) matches(slug string, status Status, theme string) bool {
	if q.Slug != "" && q.Slug != slug {
		return false
	}
	if len(q.Status) > 0 && !slices.Contains(q.Status, status) {
		return false
	}
	if q.Theme != "" && q.Theme != theme {
		return false
	}
	return true
}

// Store is the read-only view of the site's records.
type Store interface {
	Templates(ctx context.Context, q Query) ([]TemplateRecord, error)
	TemplateParts(ctx context.Context, q Query) ([]TemplatePartRecord, error)
	CurrentTheme(ctx context.Context) (ThemeRecord, error)
}

// TemplateCreator creates new templates.
type TemplateCreator interface {
	CreateTemplate(ctx context.Context, slug string) (TemplateRecord, error)
}

// FindResult is the payload of the home lookup endpoint.
type FindResult struct {
	Success bool
	// ID is nil when the endpoint could not map the root path to a record id.
	ID       *ID
	PostName string
}

// HomeLookup asks the site which record backs its root path.
type HomeLookup interface {
	FindTemplate(ctx context.Context) (FindResult, error)
}
