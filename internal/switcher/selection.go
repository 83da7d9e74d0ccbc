package switcher

import "github.com/ruminaider/template-switcher/internal/records"

// HoverTarget is the item currently being previewed.
type HoverTarget struct {
	ID   records.ID
	Kind Kind
}

// Selection holds transient UI state: the hover target and the visibility of
// the theme preview and the add-template dialog.
type Selection struct {
	hover           *HoverTarget
	themePreview    bool
	addTemplateOpen bool
}

// Hover replaces the hover target.
func (s *Selection) Hover(id records.ID, kind Kind) {
	s.hover = &HoverTarget{ID: id, Kind: kind}
}

// ClearHover removes the hover target.
func (s *Selection) ClearHover() {
	s.hover = nil
}

// Hovered returns the current hover target, if any.
func (s Selection) Hovered() (HoverTarget, bool) {
	if s.hover == nil {
		return HoverTarget{}, false
	}
	return *s.hover, true
}

func (s *Selection) SetThemePreview(visible bool) {
	s.themePreview = visible
}

func (s Selection) ThemePreviewVisible() bool {
	return s.themePreview
}

func (s *Selection) OpenAddTemplate() {
	s.addTemplateOpen = true
}

func (s *Selection) CloseAddTemplate() {
	s.addTemplateOpen = false
}

func (s Selection) AddTemplateOpen() bool {
	return s.addTemplateOpen
}
