package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// overlayMaxRows caps the visible choices before the list scrolls.
const overlayMaxRows = 10

// Overlay renders a centered modal list of choices on top of existing content.
type Overlay struct {
	title   string
	message string   // shown when there are no choices
	choices []string // choice list
	cursor  int      // selected choice index
	offset  int      // scroll offset
	active  bool
}

// NewChoiceOverlay creates a list-of-choices dialog. When choices is empty the
// dialog shows message instead and can only be dismissed.
func NewChoiceOverlay(title string, choices []string, message string) Overlay {
	return Overlay{
		title:   title,
		message: message,
		choices: choices,
		active:  true,
	}
}

// Active returns whether the overlay is currently shown.
func (o Overlay) Active() bool {
	return o.active
}

// Update handles key messages for the overlay.
func (o Overlay) Update(msg tea.Msg) (Overlay, tea.Cmd) {
	if !o.active {
		return o, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			o.active = false
			return o, func() tea.Msg {
				return OverlayCloseMsg{Confirmed: false}
			}
		case "up", "k":
			if o.cursor > 0 {
				o.cursor--
			}
		case "down", "j":
			if o.cursor < len(o.choices)-1 {
				o.cursor++
			}
		case "enter":
			o.active = false
			if len(o.choices) == 0 {
				return o, func() tea.Msg {
					return OverlayCloseMsg{Confirmed: false}
				}
			}
			result := o.choices[o.cursor]
			return o, func() tea.Msg {
				return OverlayCloseMsg{Result: result, Confirmed: true}
			}
		}
	}
	o.clampScroll()
	return o, nil
}

func (o *Overlay) clampScroll() {
	if o.cursor < o.offset {
		o.offset = o.cursor
	}
	if o.cursor >= o.offset+overlayMaxRows {
		o.offset = o.cursor - overlayMaxRows + 1
	}
}

// View renders the overlay box. It does not composite over a background;
// that is the caller's responsibility using Composite().
func (o Overlay) View() string {
	if !o.active {
		return ""
	}

	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render(o.title))
	b.WriteString("\n\n")

	if len(o.choices) == 0 {
		b.WriteString(o.message)
		b.WriteString("\n\n")
		b.WriteString(OverlayScrollHintStyle.Render("Esc: close"))
		return OverlayStyle.Render(b.String())
	}

	end := min(o.offset+overlayMaxRows, len(o.choices))
	if o.offset > 0 {
		b.WriteString(OverlayScrollHintStyle.Render("  ↑ more") + "\n")
	}
	for i := o.offset; i < end; i++ {
		if i == o.cursor {
			b.WriteString(OverlayChoiceCursorStyle.Render("> " + o.choices[i]))
		} else {
			b.WriteString("  " + o.choices[i])
		}
		b.WriteString("\n")
	}
	if end < len(o.choices) {
		b.WriteString(OverlayScrollHintStyle.Render("  ↓ more") + "\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(colorOverlay0).Render("Enter: create  Esc: cancel"))

	return OverlayStyle.Render(b.String())
}

// Composite places the overlay box centered on top of the background string.
// The background is expected to be a fully rendered terminal frame.
func Composite(background string, overlay string, totalWidth, totalHeight int) string {
	if overlay == "" {
		return background
	}

	bgLines := strings.Split(background, "\n")

	// Pad background to fill the screen height.
	for len(bgLines) < totalHeight {
		bgLines = append(bgLines, "")
	}

	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		overlayWidth = max(overlayWidth, ansi.StringWidth(line))
	}

	startRow := max((totalHeight-len(overlayLines))/2, 0)
	startCol := max((totalWidth-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		row := startRow + i
		if row >= len(bgLines) {
			break
		}

		// Cut the background by display cells so styled lines keep their
		// escape sequences intact on both sides of the overlay.
		bgLine := bgLines[row]
		bgWidth := ansi.StringWidth(bgLine)
		left := ansi.Truncate(bgLine, startCol, "")
		if w := ansi.StringWidth(left); w < startCol {
			left += strings.Repeat(" ", startCol-w)
		}
		right := ""
		if overlayEnd := startCol + ansi.StringWidth(overlayLine); overlayEnd < bgWidth {
			right = ansi.TruncateLeft(bgLine, overlayEnd, "")
		}

		bgLines[row] = left + overlayLine + right
	}

	return strings.Join(bgLines, "\n")
}
