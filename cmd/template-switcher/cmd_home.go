package main

import (
	"fmt"

	"github.com/ruminaider/template-switcher/internal/home"
	"github.com/ruminaider/template-switcher/internal/switcher"
	"github.com/spf13/cobra"
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show which template renders the site's home page",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		ctrl := newController(nil)
		defer ctrl.Close()
		if err := loadAll(cmd.Context(), s, ctrl); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), formatHome(ctrl.HomeID(), ctrl.TemplateChoices()))
		return nil
	},
}

// formatHome describes the home template. A failed lookup reads the same as
// a site without one.
func formatHome(id home.ID, choices switcher.ChoiceList) string {
	hid, ok := id.Get()
	if !ok {
		return "No home template."
	}
	if c, found := choices.Find(hid); found {
		return fmt.Sprintf("%s %s (id %d)", switcher.HomeMarker, c.Slug, hid)
	}
	return fmt.Sprintf("%s id %d (not in the template list)", switcher.HomeMarker, hid)
}
