// Package fixture is a YAML-backed record store. It serves the same
// interfaces as the REST client so the switcher can run against a local file.
package fixture

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/ruminaider/template-switcher/internal/records"
	"go.yaml.in/yaml/v3"
)

// File is the on-disk layout of a fixture.
type File struct {
	Theme         Theme    `yaml:"theme"`
	Home          Home     `yaml:"home"`
	Templates     []Record `yaml:"templates"`
	TemplateParts []Record `yaml:"template_parts,omitempty"`
}

// Theme mirrors records.ThemeRecord.
type Theme struct {
	Stylesheet  string `yaml:"stylesheet"`
	Template    string `yaml:"template,omitempty"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Version     string `yaml:"version,omitempty"`
	Author      string `yaml:"author,omitempty"`
	ThemeURI    string `yaml:"theme_uri,omitempty"`
}

// Home is the canned response of the home lookup endpoint.
type Home struct {
	Success  bool   `yaml:"success"`
	ID       *int64 `yaml:"id"`
	PostName string `yaml:"post_name,omitempty"`
	// Error makes the lookup fail as if the request could not be made.
	Error string `yaml:"error,omitempty"`
}

// Record is a template or template part.
type Record struct {
	ID      int64  `yaml:"id"`
	Slug    string `yaml:"slug"`
	Status  string `yaml:"status"`
	Title   string `yaml:"title,omitempty"`
	Content string `yaml:"content,omitempty"`
	Theme   string `yaml:"theme,omitempty"`
	Area    string `yaml:"area,omitempty"`
}

// Store serves a fixture from memory. Created templates are written back to
// the source file when the store was loaded from one.
type Store struct {
	mu    sync.Mutex
	path  string
	theme records.ThemeRecord
	home  Home
	tmpl  []records.TemplateRecord
	parts []records.TemplatePartRecord
}

var (
	_ records.Store           = (*Store)(nil)
	_ records.TemplateCreator = (*Store)(nil)
	_ records.HomeLookup      = (*Store)(nil)
)

// Load reads a fixture file.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// Parse builds a Store from fixture YAML. Every record is validated.
func Parse(data []byte) (*Store, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return New(f)
}

// New builds a Store from an in-memory fixture.
func New(f File) (*Store, error) {
	s := &Store{
		home: f.Home,
		theme: records.ThemeRecord{
			Stylesheet:  f.Theme.Stylesheet,
			Template:    f.Theme.Template,
			Name:        f.Theme.Name,
			Description: f.Theme.Description,
			Version:     f.Theme.Version,
			Author:      f.Theme.Author,
			ThemeURI:    f.Theme.ThemeURI,
		},
	}
	if s.theme.Stylesheet == "" {
		return nil, fmt.Errorf("fixture theme has no stylesheet")
	}

	for _, r := range f.Templates {
		t := records.TemplateRecord{
			ID: records.ID(r.ID), Slug: r.Slug, Status: records.Status(r.Status),
			Title: r.Title, Content: r.Content, Theme: r.Theme,
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		s.tmpl = append(s.tmpl, t)
	}
	for _, r := range f.TemplateParts {
		p := records.TemplatePartRecord{
			ID: records.ID(r.ID), Slug: r.Slug, Status: records.Status(r.Status),
			Title: r.Title, Content: r.Content, Theme: r.Theme, Area: r.Area,
		}
		if p.Theme == "" {
			p.Theme = s.theme.Stylesheet
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		s.parts = append(s.parts, p)
	}
	return s, nil
}

// Templates returns templates matching q in file order.
func (s *Store) Templates(ctx context.Context, q records.Query) ([]records.TemplateRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []records.TemplateRecord
	for _, t := range s.tmpl {
		if q.MatchesTemplate(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// TemplateParts returns template parts matching q in file order.
func (s *Store) TemplateParts(ctx context.Context, q records.Query) ([]records.TemplatePartRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []records.TemplatePartRecord
	for _, p := range s.parts {
		if q.MatchesTemplatePart(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// CurrentTheme returns the fixture theme.
func (s *Store) CurrentTheme(ctx context.Context) (records.ThemeRecord, error) {
	if err := ctx.Err(); err != nil {
		return records.ThemeRecord{}, err
	}
	return s.theme, nil
}

// FindTemplate returns the canned home lookup response.
func (s *Store) FindTemplate(ctx context.Context) (records.FindResult, error) {
	if err := ctx.Err(); err != nil {
		return records.FindResult{}, err
	}
	if s.home.Error != "" {
		return records.FindResult{}, fmt.Errorf("find template: %s", s.home.Error)
	}
	res := records.FindResult{Success: s.home.Success, PostName: s.home.PostName}
	if s.home.ID != nil {
		id := records.ID(*s.home.ID)
		res.ID = &id
	}
	return res, nil
}

// CreateTemplate appends a published template with the next free id.
func (s *Store) CreateTemplate(ctx context.Context, slug string) (records.TemplateRecord, error) {
	if err := ctx.Err(); err != nil {
		return records.TemplateRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tmpl {
		if t.Slug == slug {
			return records.TemplateRecord{}, fmt.Errorf("template %q already exists", slug)
		}
	}

	var maxID records.ID
	for _, t := range s.tmpl {
		maxID = max(maxID, t.ID)
	}
	for _, p := range s.parts {
		maxID = max(maxID, p.ID)
	}
	t := records.TemplateRecord{
		ID: maxID + 1, Slug: slug, Status: records.StatusPublish,
		Title: slug, Theme: s.theme.Stylesheet,
	}
	if err := t.Validate(); err != nil {
		return records.TemplateRecord{}, err
	}
	s.tmpl = append(s.tmpl, t)

	if s.path != "" {
		if err := s.saveLocked(); err != nil {
			s.tmpl = s.tmpl[:len(s.tmpl)-1]
			return records.TemplateRecord{}, err
		}
	}
	return t, nil
}

func (s *Store) saveLocked() error {
	f := File{
		Theme: Theme{
			Stylesheet:  s.theme.Stylesheet,
			Template:    s.theme.Template,
			Name:        s.theme.Name,
			Description: s.theme.Description,
			Version:     s.theme.Version,
			Author:      s.theme.Author,
			ThemeURI:    s.theme.ThemeURI,
		},
		Home: s.home,
	}
	for _, t := range s.tmpl {
		f.Templates = append(f.Templates, Record{
			ID: int64(t.ID), Slug: t.Slug, Status: string(t.Status),
			Title: t.Title, Content: t.Content, Theme: t.Theme,
		})
	}
	for _, p := range s.parts {
		f.TemplateParts = append(f.TemplateParts, Record{
			ID: int64(p.ID), Slug: p.Slug, Status: string(p.Status),
			Title: p.Title, Content: p.Content, Theme: p.Theme, Area: p.Area,
		})
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding fixture: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	return nil
}
