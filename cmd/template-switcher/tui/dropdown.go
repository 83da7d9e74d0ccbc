package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/ruminaider/template-switcher/internal/records"
	"github.com/ruminaider/template-switcher/internal/switcher"
)

type rowKind int

const (
	rowHeader rowKind = iota
	rowPlaceholder
	rowTemplate
	rowTemplatePart
	rowNew
	rowTheme
)

// dropdownRow is a single line of the open dropdown.
type dropdownRow struct {
	kind   rowKind
	label  string
	id     records.ID
	active bool
}

func (r dropdownRow) selectable() bool {
	switch r.kind {
	case rowTemplate, rowTemplatePart, rowNew, rowTheme:
		return true
	}
	return false
}

// Dropdown is the grouped choice list: templates, template parts and the
// current theme. Moving the cursor drives the controller's hover state.
type Dropdown struct {
	rows   []dropdownRow
	cursor int
	offset int
	height int
}

// NewDropdown creates an empty dropdown.
func NewDropdown() Dropdown {
	return Dropdown{height: 16}
}

// SetHeight sets the number of visible rows.
func (d *Dropdown) SetHeight(h int) {
	d.height = max(h, 3)
	d.clampScroll()
}

// Open rebuilds the rows and puts the cursor on the active choice.
func (d *Dropdown) Open(ctrl *switcher.Controller) {
	ctrl.OpenDropdown()
	d.rows = buildRows(ctrl)
	d.cursor = -1
	d.offset = 0
	for i, r := range d.rows {
		if r.active {
			d.cursor = i
			break
		}
	}
	if d.cursor < 0 {
		d.cursor = d.firstSelectable()
	}
	d.clampScroll()
	d.syncHover(ctrl)
}

// Close hides the dropdown and drops any preview.
func (d *Dropdown) Close(ctrl *switcher.Controller) {
	ctrl.CloseDropdown()
	ctrl.ClearHover()
	ctrl.LeaveTheme()
}

// Refresh rebuilds the rows after the lists changed, keeping the cursor on
// the same record when it is still present.
func (d *Dropdown) Refresh(ctrl *switcher.Controller) {
	var prev dropdownRow
	if d.cursor >= 0 && d.cursor < len(d.rows) {
		prev = d.rows[d.cursor]
	}
	d.rows = buildRows(ctrl)
	d.cursor = d.firstSelectable()
	for i, r := range d.rows {
		if r.kind == prev.kind && r.id == prev.id && r.selectable() {
			d.cursor = i
			break
		}
	}
	d.clampScroll()
	if ctrl.DropdownOpen() {
		d.syncHover(ctrl)
	}
}

// Update handles keys while the dropdown is open.
func (d Dropdown) Update(msg tea.Msg, ctrl *switcher.Controller) (Dropdown, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch {
	case key.Matches(km, keys.Up):
		d.moveCursor(-1)
		d.syncHover(ctrl)
	case key.Matches(km, keys.Down):
		d.moveCursor(+1)
		d.syncHover(ctrl)
	case key.Matches(km, keys.New):
		d.Close(ctrl)
		ctrl.RequestNewTemplate()
	case key.Matches(km, keys.Close):
		d.Close(ctrl)
	case key.Matches(km, keys.Select):
		if d.cursor < 0 || d.cursor >= len(d.rows) {
			return d, nil
		}
		row := d.rows[d.cursor]
		switch row.kind {
		case rowTemplate:
			d.Close(ctrl)
			ctrl.SelectTemplate(row.id)
		case rowTemplatePart:
			d.Close(ctrl)
			ctrl.SelectTemplatePart(row.id)
		case rowNew:
			d.Close(ctrl)
			ctrl.RequestNewTemplate()
		}
	}
	return d, nil
}

// View renders the visible rows.
func (d Dropdown) View() string {
	var b strings.Builder

	visible := d.height
	hasAbove := d.offset > 0
	hasBelow := d.offset+visible < len(d.rows)
	if hasAbove {
		visible--
	}
	if hasBelow {
		visible--
	}
	visible = max(visible, 1)

	if hasAbove {
		b.WriteString(DimStyle.Render("  ↑ more") + "\n")
	}
	end := min(d.offset+visible, len(d.rows))
	labelWidth := DropdownWidth - 6
	for i := d.offset; i < end; i++ {
		row := d.rows[i]
		cursor := "  "
		if i == d.cursor {
			cursor = "> "
		}
		switch row.kind {
		case rowHeader:
			b.WriteString(HeaderStyle.Render(row.label))
		case rowPlaceholder:
			b.WriteString("  " + DimStyle.Render(row.label))
		case rowNew:
			text := ActionStyle.Render(row.label)
			if i == d.cursor {
				text = ActionStyle.Bold(true).Render(row.label)
			}
			b.WriteString(cursor + text)
		default:
			label := ansi.Truncate(row.label, labelWidth, "…")
			if i == d.cursor {
				label = CursorStyle.Render(label)
			}
			label = styleMarkers(label)
			check := " "
			if row.active {
				check = ActiveChoiceStyle.Render("✓")
			}
			b.WriteString(cursor + check + " " + label)
		}
		b.WriteString("\n")
	}
	if hasBelow {
		b.WriteString(DimStyle.Render("  ↓ more") + "\n")
	}
	return DropdownStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func buildRows(ctrl *switcher.Controller) []dropdownRow {
	var rows []dropdownRow

	tmplActive, isTmpl := ctrl.TemplatesValue()
	rows = append(rows, dropdownRow{kind: rowHeader, label: "Templates"})
	rows = appendChoices(rows, ctrl.TemplateChoices(), rowTemplate, tmplActive, isTmpl)
	rows = append(rows, dropdownRow{kind: rowNew, label: "+ New"})

	partActive, isPart := ctrl.TemplatePartsValue()
	rows = append(rows, dropdownRow{kind: rowHeader, label: "Template Parts"})
	rows = appendChoices(rows, ctrl.TemplatePartChoices(), rowTemplatePart, partActive, isPart)

	rows = append(rows, dropdownRow{kind: rowHeader, label: "Current theme"})
	if theme, ok := ctrl.Theme(); ok {
		name := theme.Name
		if name == "" {
			name = theme.Stylesheet
		}
		rows = append(rows, dropdownRow{kind: rowTheme, label: name})
	} else {
		rows = append(rows, dropdownRow{kind: rowPlaceholder, label: "loading…"})
	}
	return rows
}

func appendChoices(rows []dropdownRow, list switcher.ChoiceList, kind rowKind, activeID records.ID, activeKind bool) []dropdownRow {
	if !list.Resolved {
		return append(rows, dropdownRow{kind: rowPlaceholder, label: "loading…"})
	}
	if len(list.Items) == 0 {
		return append(rows, dropdownRow{kind: rowPlaceholder, label: "(none)"})
	}
	for _, c := range list.Items {
		rows = append(rows, dropdownRow{
			kind:   kind,
			label:  c.Label,
			id:     c.Value,
			active: activeKind && c.Value == activeID,
		})
	}
	return rows
}

func styleMarkers(label string) string {
	label = strings.ReplaceAll(label, switcher.HomeMarker, HomeMarkerStyle.Render(switcher.HomeMarker))
	return strings.ReplaceAll(label, switcher.CustomizedMarker, CustomizedMarkerStyle.Render(switcher.CustomizedMarker))
}

// syncHover points the controller's preview state at the cursor row.
func (d *Dropdown) syncHover(ctrl *switcher.Controller) {
	if d.cursor < 0 || d.cursor >= len(d.rows) {
		ctrl.ClearHover()
		ctrl.LeaveTheme()
		return
	}
	row := d.rows[d.cursor]
	switch row.kind {
	case rowTemplate:
		ctrl.LeaveTheme()
		ctrl.HoverTemplate(row.id)
	case rowTemplatePart:
		ctrl.LeaveTheme()
		ctrl.HoverTemplatePart(row.id)
	case rowTheme:
		ctrl.ClearHover()
		ctrl.EnterTheme()
	default:
		ctrl.ClearHover()
		ctrl.LeaveTheme()
	}
}

func (d *Dropdown) firstSelectable() int {
	for i, r := range d.rows {
		if r.selectable() {
			return i
		}
	}
	return -1
}

func (d *Dropdown) moveCursor(dir int) {
	next := d.cursor + dir
	for next >= 0 && next < len(d.rows) {
		if d.rows[next].selectable() {
			d.cursor = next
			d.clampScroll()
			return
		}
		next += dir
	}
}

func (d *Dropdown) clampScroll() {
	if d.height <= 0 || d.cursor < 0 {
		return
	}
	effective := d.height
	if len(d.rows) > d.height {
		effective -= 2
	}
	effective = max(effective, 1)
	// Keep the group header above the first choice in view.
	top := d.cursor
	if top > 0 && d.rows[top-1].kind == rowHeader {
		top--
	}
	if top < d.offset {
		d.offset = top
	}
	if d.cursor >= d.offset+effective {
		d.offset = d.cursor - effective + 1
	}
	d.offset = max(min(d.offset, len(d.rows)-effective), 0)
}
