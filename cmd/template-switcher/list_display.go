package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/ruminaider/template-switcher/internal/records"
	"github.com/ruminaider/template-switcher/internal/switcher"
)

// printSwitcher writes the active selection, both choice lists and the
// current theme. An active id missing from its list is returned as a
// *switcher.LookupError before anything is written.
func printSwitcher(w io.Writer, ctrl *switcher.Controller) error {
	label, err := ctrl.Label()
	if err != nil {
		return err
	}
	tmplActive, isTmpl := ctrl.TemplatesValue()
	partActive, isPart := ctrl.TemplatePartsValue()

	fmt.Fprintln(w, "ACTIVE")
	active := ctrl.Active()
	if label == "" {
		fmt.Fprintf(w, "  %s (id %d, not loaded)\n", active.Kind(), active.ActiveID())
	} else {
		fmt.Fprintf(w, "  %s %s (id %d)\n", active.Kind(), label, active.ActiveID())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "TEMPLATES")
	printChoices(w, ctrl.TemplateChoices(), tmplActive, isTmpl)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "TEMPLATE PARTS")
	printChoices(w, ctrl.TemplatePartChoices(), partActive, isPart)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "CURRENT THEME")
	theme, ok := ctrl.Theme()
	if !ok {
		fmt.Fprintln(w, "  (unknown)")
		return nil
	}
	name := theme.Name
	if name == "" {
		name = theme.Stylesheet
	}
	line := fmt.Sprintf("  %s (%s)", name, theme.Stylesheet)
	if theme.Version != "" {
		line += " " + theme.Version
	}
	fmt.Fprintln(w, line)
	return nil
}

// printChoices writes one row per choice with the active one checked. Labels
// are padded by display width since the markers are multi-byte.
func printChoices(w io.Writer, list switcher.ChoiceList, activeID records.ID, activeKind bool) {
	if !list.Resolved {
		fmt.Fprintln(w, "  (not loaded)")
		return
	}
	if len(list.Items) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}

	width := 0
	for _, c := range list.Items {
		width = max(width, ansi.StringWidth(c.Label))
	}
	for _, c := range list.Items {
		check := " "
		if activeKind && c.Value == activeID {
			check = "✓"
		}
		pad := strings.Repeat(" ", width-ansi.StringWidth(c.Label))
		fmt.Fprintf(w, "  %s %s%s  (id %d)\n", check, c.Label, pad, c.Value)
	}
}
