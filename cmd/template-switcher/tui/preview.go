package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/template-switcher/internal/records"
	"github.com/ruminaider/template-switcher/internal/switcher"
)

// Preview shows the hovered template or template part, or the current theme
// while the theme row is hovered.
type Preview struct {
	viewport viewport.Model
	style    string
	width    int
	height   int
	key      string // identifies what is currently shown
	visible  bool
}

// NewPreview creates a preview that highlights markup with the given chroma
// style.
func NewPreview(style string) Preview {
	return Preview{
		viewport: viewport.New(40, 10),
		style:    style,
	}
}

// SetSize sets the outer dimensions of the preview box.
func (p *Preview) SetSize(width, height int) {
	p.width = width
	p.height = height
	// Border and padding take two columns on each side and one row each.
	p.viewport.Width = max(width-4, 10)
	p.viewport.Height = max(height-4, 3)
}

// Visible reports whether there is anything to show.
func (p Preview) Visible() bool {
	return p.visible
}

// Sync loads whatever the controller currently wants previewed. Scrolling is
// kept while the previewed item stays the same.
func (p *Preview) Sync(ctrl *switcher.Controller) {
	if theme, ok := ctrl.ThemePreview(); ok {
		p.show("theme:"+theme.Stylesheet, renderTheme(theme))
		return
	}
	if item, ok := ctrl.Preview(); ok {
		p.show(fmt.Sprintf("%s:%d", item.Kind, item.ID), p.renderItem(item))
		return
	}
	p.visible = false
	p.key = ""
}

func (p *Preview) show(key, content string) {
	p.visible = true
	if key == p.key {
		return
	}
	p.key = key
	p.viewport.SetContent(content)
	p.viewport.GotoTop()
}

// Update scrolls the preview.
func (p Preview) Update(msg tea.Msg) (Preview, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "pgup", "ctrl+u":
			p.viewport.HalfPageUp()
		case "pgdown", "ctrl+d":
			p.viewport.HalfPageDown()
		}
	}
	return p, nil
}

// View renders the preview box.
func (p Preview) View() string {
	if !p.visible {
		return ""
	}
	return PreviewStyle.Width(max(p.width-2, 10)).Render(p.viewport.View())
}

func (p Preview) renderItem(item switcher.PreviewItem) string {
	var b strings.Builder
	title := item.Title
	if title == "" {
		title = item.Slug
	}
	b.WriteString(PreviewTitleStyle.Render(title) + "\n")
	writeField(&b, "slug", item.Slug)
	writeField(&b, "kind", item.Kind.String())
	if item.Area != "" {
		writeField(&b, "area", item.Area)
	}
	status := string(item.Status)
	if item.Status.Customized() {
		status += " (customized)"
	}
	writeField(&b, "status", status)
	b.WriteString("\n")

	if item.Content == "" {
		b.WriteString(DimStyle.Render("(empty)"))
		return b.String()
	}
	b.WriteString(highlight(item.Content, p.style))
	return b.String()
}

func renderTheme(theme records.ThemeRecord) string {
	var b strings.Builder
	name := theme.Name
	if name == "" {
		name = theme.Stylesheet
	}
	b.WriteString(PreviewTitleStyle.Render(name) + "\n")
	writeField(&b, "stylesheet", theme.Stylesheet)
	if theme.Template != "" && theme.Template != theme.Stylesheet {
		writeField(&b, "parent", theme.Template)
	}
	writeField(&b, "version", theme.Version)
	writeField(&b, "author", theme.Author)
	writeField(&b, "uri", theme.ThemeURI)
	if theme.Description != "" {
		b.WriteString("\n" + theme.Description)
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(PreviewLabelStyle.Render(label+": ") + value + "\n")
}

// highlight renders block markup with chroma. The raw text is returned if the
// lexer or style cannot be applied.
func highlight(content, style string) string {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, content, "html", "terminal256", style); err != nil {
		return content
	}
	return buf.String()
}
