package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/ruminaider/template-switcher/internal/records"
	"github.com/ruminaider/template-switcher/internal/switcher"
)

var errReadOnly = errors.New("record source cannot create templates")

// Options configures the root model.
type Options struct {
	// Source is shown in the header, e.g. the site URL or fixture path.
	Source string
	// HighlightStyle is the chroma style used for template previews.
	HighlightStyle string
	// PickDefault selects "index" (or the first template) once templates
	// load. Set it when no active selection was configured.
	PickDefault bool
}

// Model is the root bubbletea model. It owns no switcher state itself; the
// controller is the source of truth and the model renders it.
type Model struct {
	ctrl   *switcher.Controller
	loader Loader
	opts   Options

	dropdown Dropdown
	preview  Preview
	overlay  Overlay
	spinner  spinner.Model
	help     help.Model

	width    int
	height   int
	ready    bool
	pending  int // loads in flight
	creating bool
	status   string
	loadErr  error
	err      error
	quitting bool

	lastActive switcher.ActiveSelection
	homeToken  switcher.Token
	homeQueued bool
}

// NewModel creates the root model.
func NewModel(ctrl *switcher.Controller, loader Loader, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	m := Model{
		ctrl:       ctrl,
		loader:     loader,
		opts:       opts,
		dropdown:   NewDropdown(),
		preview:    NewPreview(opts.HighlightStyle),
		spinner:    s,
		help:       help.New(),
		pending:    2,
		lastActive: ctrl.Active(),
	}
	if tok, ok := ctrl.BeginHomeResolution(); ok {
		m.homeToken = tok
		m.homeQueued = true
		m.pending++
	}
	return m
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// Active returns the active selection.
func (m Model) Active() switcher.ActiveSelection {
	return m.ctrl.Active()
}

// Init satisfies tea.Model. It starts every load, including the single home
// lookup.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.loader.loadTheme(), m.loader.loadTemplates()}
	if m.homeQueued {
		cmds = append(cmds, m.loader.resolveHome(m.homeToken))
	}
	return tea.Batch(cmds...)
}

// Update satisfies tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	if m.quitting {
		return m, tea.Quit
	}
	if err := m.sync(); err != nil {
		m.err = err
		m.quitting = true
		m.ctrl.Close()
		return m, tea.Quit
	}
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case themeLoadedMsg:
		m.pending--
		if msg.err != nil {
			m.loadErr = fmt.Errorf("loading theme: %w", msg.err)
			return m, nil
		}
		m.ctrl.SetTheme(msg.theme)
		m.pending++
		return m, m.loader.loadTemplateParts(msg.theme.Stylesheet)

	case templatesLoadedMsg:
		m.pending--
		if msg.err != nil {
			m.loadErr = fmt.Errorf("loading templates: %w", msg.err)
			return m, nil
		}
		m.ctrl.SetTemplates(msg.templates)
		m.ctrl.SetCandidateIDs(templateIDs(msg.templates))
		if m.opts.PickDefault {
			m.opts.PickDefault = false
			active, err := switcher.DefaultSelection(msg.templates)
			if err != nil {
				m.err = err
				m.quitting = true
				return m, nil
			}
			m.ctrl.SetActive(active)
			m.lastActive = m.ctrl.Active()
		}
		m.dropdown.Refresh(m.ctrl)
		return m, nil

	case templatePartsLoadedMsg:
		m.pending--
		if msg.err != nil {
			m.loadErr = fmt.Errorf("loading template parts: %w", msg.err)
			return m, nil
		}
		m.ctrl.SetTemplateParts(msg.parts)
		m.dropdown.Refresh(m.ctrl)
		return m, nil

	case homeResolvedMsg:
		m.pending--
		if m.ctrl.FinishHomeResolution(msg.token, msg.id) {
			m.dropdown.Refresh(m.ctrl)
		}
		return m, nil

	case templateCreatedMsg:
		m.creating = false
		m.status = ""
		if msg.err != nil {
			m.ctrl.CloseAddTemplate()
			m.loadErr = fmt.Errorf("creating template: %w", msg.err)
			return m, nil
		}
		tmpl := append(m.ctrl.Templates(), msg.template)
		m.ctrl.SetTemplates(tmpl)
		m.ctrl.SetCandidateIDs(templateIDs(tmpl))
		m.ctrl.CompleteAddTemplate(msg.template.ID)
		m.dropdown.Refresh(m.ctrl)
		return m, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
		m.quitting = true
		return m, nil
	}

	if m.overlay.Active() {
		return m.updateOverlay(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.ctrl.DropdownOpen() {
		if key.Matches(km, keys.ScrollUp, keys.ScrollDown) {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(km)
			return m, cmd
		}
		var cmd tea.Cmd
		m.dropdown, cmd = m.dropdown.Update(km, m.ctrl)
		return m, cmd
	}

	switch {
	case key.Matches(km, keys.Quit):
		m.quitting = true
	case key.Matches(km, keys.Toggle):
		m.loadErr = nil
		m.dropdown.Open(m.ctrl)
	case key.Matches(km, keys.New):
		m.ctrl.RequestNewTemplate()
	case key.Matches(km, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateOverlay(msg tea.Msg) (Model, tea.Cmd) {
	wasActive := m.overlay.Active()
	var cmd tea.Cmd
	m.overlay, cmd = m.overlay.Update(msg)

	// Handle the close directly instead of sending it through the event loop.
	if wasActive && !m.overlay.Active() && cmd != nil {
		if closeMsg := extractOverlayClose(cmd); closeMsg != nil {
			if !closeMsg.Confirmed {
				m.ctrl.CloseAddTemplate()
				return m, nil
			}
			m.creating = true
			m.status = "Creating " + closeMsg.Result + "…"
			return m, m.loader.createTemplate(closeMsg.Result)
		}
	}
	return m, cmd
}

// sync brings the view state in line with the controller after every
// message. An inconsistent active selection ends the program.
func (m *Model) sync() error {
	// The dialog waits for the template list so it can tell what is missing.
	req := m.ctrl.AddTemplateRequest()
	if req.IsOpen && !m.overlay.Active() && !m.creating && m.ctrl.TemplateChoices().Resolved {
		missing := switcher.MissingTemplateSlugs(m.ctrl.Templates(), req.CandidateIDs)
		m.overlay = NewChoiceOverlay("Add template", missing, "Every default template already exists.")
	}

	m.preview.Sync(m.ctrl)

	label, err := m.ctrl.Label()
	if err != nil {
		return err
	}
	if active := m.ctrl.Active(); active != m.lastActive {
		m.lastActive = active
		m.status = fmt.Sprintf("Editing %s: %s", active.Kind(), label)
	}
	return nil
}

func (m *Model) layout() {
	m.help.Width = m.width
	// Header and status bar take one row each, the dropdown border two.
	m.dropdown.SetHeight(m.height - 4)
	m.preview.SetSize(max(m.width-DropdownWidth-4, 20), m.height-2)
}

// View satisfies tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	var body string
	if m.ctrl.DropdownOpen() {
		body = m.dropdown.View()
		if m.preview.Visible() {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.preview.View())
		}
	}

	header := m.headerView()
	status := m.statusView()
	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(status), 0)
	body = clampHeight(body, bodyHeight)
	if gap := bodyHeight - lipgloss.Height(body); gap > 0 {
		body += strings.Repeat("\n", gap)
	}

	view := header + "\n" + body + "\n" + status
	if m.overlay.Active() {
		return Composite(view, m.overlay.View(), m.width, m.height)
	}
	return view
}

func (m Model) headerView() string {
	title := TitleStyle.Render("Template switcher")

	label, _ := m.ctrl.Label()
	var toggle string
	switch {
	case label == "" && m.pending > 0:
		toggle = ToggleStyle.Render(m.spinner.View() + " loading")
	case label == "":
		toggle = ToggleStyle.Render("—")
	case m.ctrl.DropdownOpen():
		toggle = ToggleOpenStyle.Render(label + " ▴")
	default:
		toggle = ToggleStyle.Render(label + " ▾")
	}

	line := title + "  " + toggle
	if m.opts.Source != "" {
		line += "  " + DimStyle.Render(m.opts.Source)
	}
	return ansi.Truncate(line, m.width, "…")
}

func (m Model) statusView() string {
	helpView := m.help.View(keys)
	var left string
	switch {
	case m.loadErr != nil:
		left = StatusErrorStyle.Render(m.loadErr.Error())
	case m.status != "":
		left = m.status
	case m.pending > 0:
		left = m.spinner.View() + " loading"
	}
	if left == "" {
		return StatusBarStyle.Width(m.width).Render(helpView)
	}
	if m.help.ShowAll {
		return StatusBarStyle.Width(m.width).Render(left + "\n" + helpView)
	}

	gap := max(m.width-2-ansi.StringWidth(left)-ansi.StringWidth(helpView), 1)
	return StatusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + helpView)
}

func clampHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= maxLines {
		return s
	}
	return strings.Join(lines[:maxLines], "\n")
}

func templateIDs(templates []records.TemplateRecord) []records.ID {
	ids := make([]records.ID, 0, len(templates))
	for _, t := range templates {
		ids = append(ids, t.ID)
	}
	return ids
}

// extractOverlayClose runs cmd synchronously to read the close message. The
// overlay's commands are plain closures, so this is safe.
func extractOverlayClose(cmd tea.Cmd) *OverlayCloseMsg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if m, ok := msg.(OverlayCloseMsg); ok {
		return &m
	}
	return nil
}

// Ensure Model satisfies tea.Model at compile time.
var _ tea.Model = Model{}
