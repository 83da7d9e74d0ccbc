package switcher

import (
	"github.com/ruminaider/template-switcher/internal/home"
	"github.com/ruminaider/template-switcher/internal/records"
)

// Markers appended to choice labels.
const (
	HomeMarker       = "⌂"
	CustomizedMarker = "●"
)

// Kind distinguishes the two selectable lists.
type Kind int

const (
	KindTemplate Kind = iota
	KindTemplatePart
)

func (k Kind) String() string {
	switch k {
	case KindTemplate:
		return "template"
	case KindTemplatePart:
		return "template-part"
	default:
		return "unknown"
	}
}

// Choice is one selectable row.
type Choice struct {
	Label      string
	Value      records.ID
	Slug       string
	IsHome     bool
	Customized bool
}

// ChoiceList is an ordered list of choices. Resolved is false until the
// underlying record query has returned; an unresolved list is absent, which
// is not the same as an empty one.
type ChoiceList struct {
	Items    []Choice
	Resolved bool
}

// Find returns the choice whose value is id.
func (l ChoiceList) Find(id records.ID) (Choice, bool) {
	for _, c := range l.Items {
		if c.Value == id {
			return c, true
		}
	}
	return Choice{}, false
}

// Projection holds both derived lists.
type Projection struct {
	Templates     ChoiceList
	TemplateParts ChoiceList
}

// TemplatePartStatuses are the statuses a template part must have to be listed.
var TemplatePartStatuses = []records.Status{records.StatusPublish, records.StatusAutoDraft}

// ProjectTemplates builds the template choices in store order.
func ProjectTemplates(templates []records.TemplateRecord, homeID home.ID) []Choice {
	choices := make([]Choice, 0, len(templates))
	for _, t := range templates {
		isHome := homeID.Matches(t.ID)
		customized := t.Status.Customized()
		choices = append(choices, Choice{
			Label:      composeLabel(t.Slug, isHome, customized),
			Value:      t.ID,
			Slug:       t.Slug,
			IsHome:     isHome,
			Customized: customized,
		})
	}
	return choices
}

// ProjectTemplateParts builds the template-part choices for the given theme
// stylesheet. Parts from other themes or with other statuses are dropped.
func ProjectTemplateParts(parts []records.TemplatePartRecord, stylesheet string) []Choice {
	q := records.Query{Status: TemplatePartStatuses, Theme: stylesheet}
	choices := make([]Choice, 0, len(parts))
	for _, p := range parts {
		if !q.MatchesTemplatePart(p) {
			continue
		}
		customized := p.Status.Customized()
		choices = append(choices, Choice{
			Label:      composeLabel(p.Slug, false, customized),
			Value:      p.ID,
			Slug:       p.Slug,
			Customized: customized,
		})
	}
	return choices
}

func composeLabel(slug string, isHome, customized bool) string {
	label := slug
	if isHome {
		label += " " + HomeMarker
	}
	if customized {
		label += " " + CustomizedMarker
	}
	return label
}
