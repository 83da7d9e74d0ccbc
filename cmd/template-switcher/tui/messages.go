package tui

import (
	"github.com/ruminaider/template-switcher/internal/home"
	"github.com/ruminaider/template-switcher/internal/records"
	"github.com/ruminaider/template-switcher/internal/switcher"
)

// --- Loader results ---

// themeLoadedMsg carries the current theme.
type themeLoadedMsg struct {
	theme records.ThemeRecord
	err   error
}

// templatesLoadedMsg carries a resolved template listing.
type templatesLoadedMsg struct {
	templates []records.TemplateRecord
	err       error
}

// templatePartsLoadedMsg carries a resolved template-part listing.
type templatePartsLoadedMsg struct {
	parts []records.TemplatePartRecord
	err   error
}

// homeResolvedMsg completes the home lookup started under token.
type homeResolvedMsg struct {
	token switcher.Token
	id    home.ID
}

// templateCreatedMsg is the result of the add-template dialog.
type templateCreatedMsg struct {
	template records.TemplateRecord
	err      error
}

// --- Inter-component messages ---

// OverlayCloseMsg is emitted when the overlay is dismissed.
type OverlayCloseMsg struct {
	Result    string // chosen entry, or empty
	Confirmed bool   // true = Enter, false = Esc
}
