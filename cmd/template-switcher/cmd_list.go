package main

import (
	"github.com/ruminaider/template-switcher/internal/switcher"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates, template parts and the current theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		active, configured := activeFromConfig(s.cfg.Active)
		ctrl := newController(active)
		defer ctrl.Close()
		if err := loadAll(cmd.Context(), s, ctrl); err != nil {
			return err
		}
		if !configured {
			def, err := switcher.DefaultSelection(ctrl.Templates())
			if err != nil {
				return err
			}
			ctrl.SetActive(def)
		}

		if err := printSwitcher(cmd.OutOrStdout(), ctrl); err != nil {
			return withActiveHint(err, s.cfgPath)
		}
		return nil
	},
}
