package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/template-switcher/internal/records"
	"github.com/ruminaider/template-switcher/internal/switcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplates() []records.TemplateRecord {
	return []records.TemplateRecord{
		{ID: 5, Slug: "front-page", Status: records.StatusPublish, Content: "<!-- wp:site-title /-->"},
		{ID: 42, Slug: "index", Status: records.StatusAutoDraft},
		{ID: 7, Slug: "home", Status: records.StatusAutoDraft},
	}
}

func testParts() []records.TemplatePartRecord {
	return []records.TemplatePartRecord{
		{ID: 11, Slug: "header", Status: records.StatusPublish, Theme: "tt1-blocks", Area: "header"},
		{ID: 12, Slug: "footer", Status: records.StatusAutoDraft, Theme: "tt1-blocks", Area: "footer"},
		{ID: 13, Slug: "sidebar", Status: records.StatusDraft, Theme: "tt1-blocks"},
	}
}

// newTestController returns a loaded controller whose callbacks update the
// active selection the way the command wires them.
func newTestController(active switcher.ActiveSelection) *switcher.Controller {
	var ctrl *switcher.Controller
	ctrl = switcher.New(switcher.Options{
		Active: active,
		Callbacks: switcher.Callbacks{
			OnActiveTemplateChange:     func(id records.ID) { ctrl.SetActive(switcher.ActiveTemplate{ID: id}) },
			OnActiveTemplatePartChange: func(id records.ID) { ctrl.SetActive(switcher.ActiveTemplatePart{ID: id}) },
			OnAddTemplate:              func(id records.ID) { ctrl.SetActive(switcher.ActiveTemplate{ID: id}) },
		},
	})
	ctrl.SetTheme(records.ThemeRecord{Stylesheet: "tt1-blocks", Name: "TT1 Blocks"})
	ctrl.SetTemplates(testTemplates())
	ctrl.SetTemplateParts(testParts())
	return ctrl
}

func dropdownKey(d Dropdown, ctrl *switcher.Controller, msg tea.KeyMsg) Dropdown {
	d, _ = d.Update(msg, ctrl)
	return d
}

func TestDropdown_OpenHoversActive(t *testing.T) {
	ctrl := newTestController(switcher.ActiveTemplate{ID: 42})
	d := NewDropdown()
	d.Open(ctrl)

	assert.True(t, ctrl.DropdownOpen())
	item, ok := ctrl.Preview()
	require.True(t, ok)
	assert.Equal(t, records.ID(42), item.ID)
	assert.Equal(t, "index", item.Slug)
}

func TestDropdown_RowsAndGroups(t *testing.T) {
	ctrl := newTestController(switcher.ActiveTemplate{ID: 5})
	d := NewDropdown()
	d.Open(ctrl)

	view := d.View()
	assert.Contains(t, view, "Templates")
	assert.Contains(t, view, "+ New")
	assert.Contains(t, view, "Template Parts")
	assert.Contains(t, view, "Current theme")
	assert.Contains(t, view, "TT1 Blocks")
	assert.Contains(t, view, "front-page "+switcher.CustomizedMarker)
	assert.Contains(t, view, "✓")
	assert.NotContains(t, view, "sidebar", "draft parts are not listed")
}

func TestDropdown_Placeholders(t *testing.T) {
	ctrl := switcher.New(switcher.Options{})
	d := NewDropdown()
	d.Open(ctrl)
	assert.Contains(t, d.View(), "loading…")

	ctrl.SetTemplates(nil)
	d.Refresh(ctrl)
	assert.Contains(t, d.View(), "(none)")
}

func TestDropdown_CursorDrivesHover(t *testing.T) {
	ctrl := newTestController(switcher.ActiveTemplate{ID: 7})
	d := NewDropdown()
	d.Open(ctrl)

	// home -> + New
	d = dropdownKey(d, ctrl, tea.KeyMsg{Type: tea.KeyDown})
	_, ok := ctrl.Preview()
	assert.False(t, ok, "action row has no preview")

	// + New -> header part (skips the group label)
	d = dropdownKey(d, ctrl, tea.KeyMsg{Type: tea.KeyDown})
	item, ok := ctrl.Preview()
	require.True(t, ok)
	assert.Equal(t, switcher.KindTemplatePart, item.Kind)
	assert.Equal(t, records.ID(11), item.ID)
	assert.Equal(t, "header", item.Area)

	// footer -> theme
	d = dropdownKey(d, ctrl, tea.KeyMsg{Type: tea.KeyDown})
	d = dropdownKey(d, ctrl, tea.KeyMsg{Type: tea.KeyDown})
	_, ok = ctrl.Preview()
	assert.False(t, ok)
	theme, ok := ctrl.ThemePreview()
	require.True(t, ok)
	assert.Equal(t, "tt1-blocks", theme.Stylesheet)

	// Moving past the last row is a no-op.
	d = dropdownKey(d, ctrl, tea.KeyMsg{Type: tea.KeyDown})
	_, ok = ctrl.ThemePreview()
	assert.True(t, ok)

	d = dropdownKey(d, ctrl, tea.KeyMsg{Type: tea.KeyUp})
	_, ok = ctrl.ThemePreview()
	assert.False(t, ok, "leaving the theme row hides its preview")
}

func TestDropdown_SelectTemplatePart(t *testing.T) {
	ctrl := newTestController(switcher.ActiveTemplate{ID: 7})
	d := NewDropdown()
	d.Open(ctrl)

	d = dropdownKey(d, ctrl, tea.KeyMsg{Type: tea.KeyDown})
	d = dropdownKey(d, ctrl, tea.KeyMsg{Type: tea.KeyDown})
	dropdownKey(d, ctrl, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, ctrl.DropdownOpen())
	assert.Equal(t, switcher.ActiveTemplatePart{ID: 11}, ctrl.Active())
	label, err := ctrl.Label()
	require.NoError(t, err)
	assert.Equal(t, "header", label)
	_, ok := ctrl.Hovered()
	assert.False(t, ok, "closing drops the hover target")
}

func TestDropdown_NewRequestsAddTemplate(t *testing.T) {
	ctrl := newTestController(switcher.ActiveTemplate{ID: 7})
	d := NewDropdown()
	d.Open(ctrl)

	d = dropdownKey(d, ctrl, tea.KeyMsg{Type: tea.KeyDown})
	dropdownKey(d, ctrl, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, ctrl.DropdownOpen())
	assert.True(t, ctrl.AddTemplateRequest().IsOpen)
}

func TestDropdown_FollowsKeyMap(t *testing.T) {
	runes := func(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

	ctrl := newTestController(switcher.ActiveTemplate{ID: 7})
	d := NewDropdown()
	d.Open(ctrl)

	// home -> + New -> home -> index
	d = dropdownKey(d, ctrl, runes("j"))
	d = dropdownKey(d, ctrl, runes("k"))
	d = dropdownKey(d, ctrl, runes("k"))
	item, ok := ctrl.Preview()
	require.True(t, ok)
	assert.Equal(t, "index", item.Slug)

	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeySpace}, keys.Select))
	dropdownKey(d, ctrl, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, switcher.ActiveTemplate{ID: 42}, ctrl.Active())

	d.Open(ctrl)
	dropdownKey(d, ctrl, runes("n"))
	assert.False(t, ctrl.DropdownOpen())
	assert.True(t, ctrl.AddTemplateRequest().IsOpen)
}

func TestDropdown_EscCloses(t *testing.T) {
	ctrl := newTestController(switcher.ActiveTemplate{ID: 5})
	d := NewDropdown()
	d.Open(ctrl)
	dropdownKey(d, ctrl, tea.KeyMsg{Type: tea.KeyEscape})

	assert.False(t, ctrl.DropdownOpen())
	assert.Equal(t, switcher.ActiveTemplate{ID: 5}, ctrl.Active())
}

func TestDropdown_RefreshKeepsCursor(t *testing.T) {
	ctrl := newTestController(switcher.ActiveTemplate{ID: 42})
	d := NewDropdown()
	d.Open(ctrl)

	tmpl := append([]records.TemplateRecord{{ID: 99, Slug: "404", Status: records.StatusPublish}}, testTemplates()...)
	ctrl.SetTemplates(tmpl)
	d.Refresh(ctrl)

	item, ok := ctrl.Preview()
	require.True(t, ok)
	assert.Equal(t, records.ID(42), item.ID)
}

func TestDropdown_Scrolls(t *testing.T) {
	ctrl := newTestController(switcher.ActiveTemplate{ID: 5})
	d := NewDropdown()
	d.SetHeight(4)
	d.Open(ctrl)
	assert.Contains(t, d.View(), "↓ more")

	for range 6 {
		d = dropdownKey(d, ctrl, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Contains(t, d.View(), "↑ more")
	assert.Contains(t, d.View(), "TT1 Blocks")
}
