package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/ruminaider/template-switcher/cmd/template-switcher/tui"
	"github.com/ruminaider/template-switcher/internal/config"
	"github.com/ruminaider/template-switcher/internal/switcher"
	"github.com/spf13/cobra"
)

func runSwitch(cmd *cobra.Command, args []string) error {
	// TTY guard: fall back to list when stdin is not a terminal
	// (piping, CI, scripts, etc.)
	if !term.IsTerminal(os.Stdin.Fd()) {
		return listCmd.RunE(cmd, args)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	active, configured := activeFromConfig(s.cfg.Active)
	ctrl := newController(active)
	defer ctrl.Close()

	model := tui.NewModel(ctrl, tui.Loader{
		Store:    s.source,
		Creator:  s.source,
		Resolver: newResolver(s),
		Timeout:  s.cfg.Timeout,
		Logger:   s.logger,
	}, tui.Options{
		Source:         s.name,
		HighlightStyle: s.cfg.HighlightStyle,
		PickDefault:    !configured,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	final := finalModel.(tui.Model)
	if err := final.Err(); err != nil {
		return withActiveHint(err, s.cfgPath)
	}

	return persistActive(s, final.Active(), configured)
}

// withActiveHint tells the user how to recover from a stale active selection.
func withActiveHint(err error, cfgPath string) error {
	var lookupErr *switcher.LookupError
	if errors.As(err, &lookupErr) {
		return fmt.Errorf("%w (remove 'active' from %s to pick a default)", err, cfgPath)
	}
	return err
}

// persistActive saves the selection if it differs from the configured one.
func persistActive(s *session, active switcher.ActiveSelection, configured bool) error {
	next := activeToConfig(active)
	if configured && *next == *s.cfg.Active {
		return nil
	}
	if active.ActiveID() == 0 {
		return nil
	}
	if err := config.SaveActive(s.cfgPath, next); err != nil {
		return err
	}
	s.logger.Info("active selection saved", "kind", next.Kind, "id", next.ID)
	return nil
}
