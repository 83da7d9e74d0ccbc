// Package switcher holds the state behind the template switcher: the derived
// choice lists, the hover/preview state and the active selection.
package switcher

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ruminaider/template-switcher/internal/home"
	"github.com/ruminaider/template-switcher/internal/records"
)

var (
	// ErrActiveNotFound is wrapped by LookupError.
	ErrActiveNotFound = errors.New("active id not found in choices")
	// ErrNoTemplates is returned by DefaultSelection for an empty site.
	ErrNoTemplates = errors.New("site has no templates to select")
)

// LookupError reports that the active selection does not exist in the list it
// addresses. This means the caller passed inconsistent state.
type LookupError struct {
	ID   records.ID
	Kind Kind
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Kind, e.ID, ErrActiveNotFound)
}

func (e *LookupError) Unwrap() error { return ErrActiveNotFound }

// ActiveSelection is either ActiveTemplate or ActiveTemplatePart.
type ActiveSelection interface {
	ActiveID() records.ID
	Kind() Kind
	isActiveSelection()
}

// ActiveTemplate selects a template.
type ActiveTemplate struct{ ID records.ID }

func (a ActiveTemplate) ActiveID() records.ID { return a.ID }
func (a ActiveTemplate) Kind() Kind           { return KindTemplate }
func (ActiveTemplate) isActiveSelection()     {}

// ActiveTemplatePart selects a template part.
type ActiveTemplatePart struct{ ID records.ID }

func (a ActiveTemplatePart) ActiveID() records.ID { return a.ID }
func (a ActiveTemplatePart) Kind() Kind           { return KindTemplatePart }
func (ActiveTemplatePart) isActiveSelection()     {}

// NewActiveSelection builds the selection for kind.
func NewActiveSelection(kind Kind, id records.ID) ActiveSelection {
	if kind == KindTemplatePart {
		return ActiveTemplatePart{ID: id}
	}
	return ActiveTemplate{ID: id}
}

// DefaultSelection picks the "index" template, or the first one listed, for
// callers with nothing selected yet.
func DefaultSelection(templates []records.TemplateRecord) (ActiveSelection, error) {
	for _, t := range templates {
		if t.Slug == "index" {
			return ActiveTemplate{ID: t.ID}, nil
		}
	}
	if len(templates) == 0 {
		return nil, ErrNoTemplates
	}
	return ActiveTemplate{ID: templates[0].ID}, nil
}

// Callbacks are invoked when the user picks something. Nil callbacks are
// skipped.
type Callbacks struct {
	OnActiveTemplateChange     func(id records.ID)
	OnActiveTemplatePartChange func(id records.ID)
	OnAddTemplate              func(id records.ID)
}

// Options configures a Controller.
type Options struct {
	CandidateIDs []records.ID
	Active       ActiveSelection
	Callbacks    Callbacks
}

// Token identifies one home resolution attempt.
type Token uint64

// AddTemplateRequest is what the add-template dialog receives.
type AddTemplateRequest struct {
	CandidateIDs []records.ID
	IsOpen       bool
}

// PreviewItem is the hovered record, resolved against the current lists.
type PreviewItem struct {
	Kind    Kind
	ID      records.ID
	Slug    string
	Title   string
	Status  records.Status
	Content string
	Area    string
}

// Controller composes home resolution, projection and selection state.
// It is not safe for concurrent use; the owning event loop serializes access.
type Controller struct {
	candidates []records.ID
	active     ActiveSelection
	callbacks  Callbacks

	homeID       home.ID
	homeStarted  bool
	homePending  Token
	generation   Token
	closed       bool
	dropdownOpen bool

	templates       []records.TemplateRecord
	templatesLoaded bool
	parts           []records.TemplatePartRecord
	partsLoaded     bool
	theme           *records.ThemeRecord

	projection Projection
	selection  Selection
}

// New creates a Controller. The active selection defaults to template 0.
func New(opts Options) *Controller {
	active := opts.Active
	if active == nil {
		active = ActiveTemplate{}
	}
	return &Controller{
		candidates: slices.Clone(opts.CandidateIDs),
		active:     active,
		callbacks:  opts.Callbacks,
	}
}

// --- Inputs ---

// SetActive replaces the active selection.
func (c *Controller) SetActive(a ActiveSelection) {
	c.active = a
}

// Active returns the active selection.
func (c *Controller) Active() ActiveSelection {
	return c.active
}

// SetCandidateIDs replaces the candidate id set.
func (c *Controller) SetCandidateIDs(ids []records.ID) {
	c.candidates = slices.Clone(ids)
}

// CandidateIDs returns a copy of the candidate id set.
func (c *Controller) CandidateIDs() []records.ID {
	return slices.Clone(c.candidates)
}

// SetTemplates stores a resolved template snapshot.
func (c *Controller) SetTemplates(templates []records.TemplateRecord) {
	c.templates = slices.Clone(templates)
	c.templatesLoaded = true
	c.reproject()
}

// Templates returns the current template snapshot.
func (c *Controller) Templates() []records.TemplateRecord {
	return slices.Clone(c.templates)
}

// SetTemplateParts stores a resolved template-part snapshot.
func (c *Controller) SetTemplateParts(parts []records.TemplatePartRecord) {
	c.parts = slices.Clone(parts)
	c.partsLoaded = true
	c.reproject()
}

// SetTheme stores the current theme.
func (c *Controller) SetTheme(theme records.ThemeRecord) {
	c.theme = &theme
	c.reproject()
}

// Theme returns the current theme once known.
func (c *Controller) Theme() (records.ThemeRecord, bool) {
	if c.theme == nil {
		return records.ThemeRecord{}, false
	}
	return *c.theme, true
}

// --- Home resolution ---

// BeginHomeResolution marks the single home lookup as started. It returns
// false if a lookup was already started or the controller is closed.
func (c *Controller) BeginHomeResolution() (Token, bool) {
	if c.homeStarted || c.closed {
		return 0, false
	}
	c.homeStarted = true
	c.generation++
	c.homePending = c.generation
	return c.homePending, true
}

// FinishHomeResolution applies a home lookup result. Results for stale
// tokens, repeated completions and unresolved values are ignored.
func (c *Controller) FinishHomeResolution(tok Token, id home.ID) bool {
	if c.closed || tok == 0 || tok != c.homePending || c.homeID.Resolved() || !id.Resolved() {
		return false
	}
	c.homeID = id
	c.homePending = 0
	c.reproject()
	return true
}

// HomeID returns the current home id.
func (c *Controller) HomeID() home.ID {
	return c.homeID
}

// Close discards any pending home resolution.
func (c *Controller) Close() {
	c.closed = true
	c.generation++
	c.homePending = 0
}

// --- Projection ---

func (c *Controller) reproject() {
	p := Projection{}
	if c.templatesLoaded {
		p.Templates = ChoiceList{Items: ProjectTemplates(c.templates, c.homeID), Resolved: true}
	}
	// Parts are scoped by theme, so they stay absent until the theme is known.
	if c.partsLoaded && c.theme != nil {
		p.TemplateParts = ChoiceList{Items: ProjectTemplateParts(c.parts, c.theme.Stylesheet), Resolved: true}
	}
	c.projection = p
}

// Projection returns both choice lists.
func (c *Controller) Projection() Projection {
	return c.projection
}

// TemplateChoices returns the template list.
func (c *Controller) TemplateChoices() ChoiceList {
	return c.projection.Templates
}

// TemplatePartChoices returns the template-part list.
func (c *Controller) TemplatePartChoices() ChoiceList {
	return c.projection.TemplateParts
}

// TemplatesValue returns the active id for the template list, or false when
// a template part is active.
func (c *Controller) TemplatesValue() (records.ID, bool) {
	if a, ok := c.active.(ActiveTemplate); ok {
		return a.ID, true
	}
	return 0, false
}

// TemplatePartsValue returns the active id for the template-part list, or
// false when a template is active.
func (c *Controller) TemplatePartsValue() (records.ID, bool) {
	if a, ok := c.active.(ActiveTemplatePart); ok {
		return a.ID, true
	}
	return 0, false
}

// Label returns the slug shown on the dropdown toggle. It is empty while the
// addressed list is unresolved. If the list is resolved but does not contain
// the active id, a *LookupError is returned.
func (c *Controller) Label() (string, error) {
	list := c.projection.Templates
	if c.active.Kind() == KindTemplatePart {
		list = c.projection.TemplateParts
	}
	if !list.Resolved {
		return "", nil
	}
	choice, ok := list.Find(c.active.ActiveID())
	if !ok {
		return "", &LookupError{ID: c.active.ActiveID(), Kind: c.active.Kind()}
	}
	return choice.Slug, nil
}

// --- Events ---

// SelectTemplate reports a pick in the template list.
func (c *Controller) SelectTemplate(id records.ID) {
	if c.callbacks.OnActiveTemplateChange != nil {
		c.callbacks.OnActiveTemplateChange(id)
	}
}

// SelectTemplatePart reports a pick in the template-part list.
func (c *Controller) SelectTemplatePart(id records.ID) {
	if c.callbacks.OnActiveTemplatePartChange != nil {
		c.callbacks.OnActiveTemplatePartChange(id)
	}
}

// HoverTemplate previews a template.
func (c *Controller) HoverTemplate(id records.ID) {
	c.selection.Hover(id, KindTemplate)
}

// HoverTemplatePart previews a template part.
func (c *Controller) HoverTemplatePart(id records.ID) {
	c.selection.Hover(id, KindTemplatePart)
}

// ClearHover drops the hover target.
func (c *Controller) ClearHover() {
	c.selection.ClearHover()
}

// Hovered returns the raw hover target.
func (c *Controller) Hovered() (HoverTarget, bool) {
	return c.selection.Hovered()
}

// EnterTheme shows the theme preview.
func (c *Controller) EnterTheme() {
	c.selection.SetThemePreview(true)
}

// LeaveTheme hides the theme preview.
func (c *Controller) LeaveTheme() {
	c.selection.SetThemePreview(false)
}

// OpenDropdown shows the choice lists.
func (c *Controller) OpenDropdown() {
	c.dropdownOpen = true
}

// CloseDropdown hides the choice lists.
func (c *Controller) CloseDropdown() {
	c.dropdownOpen = false
}

// DropdownOpen reports whether the choice lists are shown.
func (c *Controller) DropdownOpen() bool {
	return c.dropdownOpen
}

// RequestNewTemplate closes the dropdown and opens the add-template dialog.
func (c *Controller) RequestNewTemplate() {
	c.CloseDropdown()
	c.selection.OpenAddTemplate()
}

// CloseAddTemplate dismisses the add-template dialog.
func (c *Controller) CloseAddTemplate() {
	c.selection.CloseAddTemplate()
}

// CompleteAddTemplate closes the dialog and reports the new template id.
func (c *Controller) CompleteAddTemplate(id records.ID) {
	c.selection.CloseAddTemplate()
	if c.callbacks.OnAddTemplate != nil {
		c.callbacks.OnAddTemplate(id)
	}
}

// AddTemplateRequest returns the props for the add-template dialog.
func (c *Controller) AddTemplateRequest() AddTemplateRequest {
	return AddTemplateRequest{
		CandidateIDs: slices.Clone(c.candidates),
		IsOpen:       c.selection.AddTemplateOpen(),
	}
}

// --- Previews ---

// Preview returns the hovered item if it is still present in its list.
func (c *Controller) Preview() (PreviewItem, bool) {
	h, ok := c.selection.Hovered()
	if !ok || h.ID == 0 {
		return PreviewItem{}, false
	}
	switch h.Kind {
	case KindTemplate:
		if _, ok := c.projection.Templates.Find(h.ID); !ok {
			return PreviewItem{}, false
		}
		for _, t := range c.templates {
			if t.ID == h.ID {
				return PreviewItem{
					Kind: KindTemplate, ID: t.ID, Slug: t.Slug, Title: t.Title,
					Status: t.Status, Content: t.Content,
				}, true
			}
		}
	case KindTemplatePart:
		if _, ok := c.projection.TemplateParts.Find(h.ID); !ok {
			return PreviewItem{}, false
		}
		for _, p := range c.parts {
			if p.ID == h.ID {
				return PreviewItem{
					Kind: KindTemplatePart, ID: p.ID, Slug: p.Slug, Title: p.Title,
					Status: p.Status, Content: p.Content, Area: p.Area,
				}, true
			}
		}
	}
	return PreviewItem{}, false
}

// ThemePreview returns the current theme while the theme preview is visible.
func (c *Controller) ThemePreview() (records.ThemeRecord, bool) {
	if !c.selection.ThemePreviewVisible() || c.theme == nil {
		return records.ThemeRecord{}, false
	}
	return *c.theme, true
}
