package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/ruminaider/template-switcher/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage template-switcher configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(resolvedConfigPath())
		if err != nil {
			return err
		}
		if fixturePath != "" {
			cfg.Fixture = fixturePath
		}
		data, err := config.Marshal(cfg.Redacted())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(os.Stdin.Fd()) {
			return errors.New("config init needs a terminal; edit the config file directly instead")
		}
		path := resolvedConfigPath()
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		if err := promptConfig(&cfg); err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
		// The password may have come from the environment; keep it out of the file.
		if env := os.Getenv(config.PasswordEnv); env != "" && cfg.AppPassword == env {
			cfg.AppPassword = ""
		}
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		fmt.Printf("✓ Config written to %s\n", path)
		return nil
	},
}

const (
	sourceSite    = "site"
	sourceFixture = "fixture"
)

func promptConfig(cfg *config.Config) error {
	src := sourceSite
	if cfg.Fixture != "" && cfg.SiteURL == "" {
		src = sourceFixture
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where do templates come from?").
				Options(
					huh.NewOption("A WordPress site (REST API)", sourceSite),
					huh.NewOption("A local YAML fixture", sourceFixture),
				).
				Value(&src),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Site URL").
				Placeholder("https://example.com").
				Value(&cfg.SiteURL).
				Validate(validateSiteURL),
			huh.NewInput().
				Title("Username").
				Value(&cfg.Username),
			huh.NewInput().
				Title("Application password").
				Description(fmt.Sprintf("Leave empty to read it from $%s.", config.PasswordEnv)).
				EchoMode(huh.EchoModePassword).
				Value(&cfg.AppPassword),
		).WithHideFunc(func() bool { return src != sourceSite }),
		huh.NewGroup(
			huh.NewInput().
				Title("Fixture path").
				Placeholder("site.yaml").
				Value(&cfg.Fixture).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("a fixture path is required")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return src != sourceFixture }),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Preview highlight style").
				Options(huh.NewOptions("monokai", "dracula", "github-dark", "nord", "solarized-dark")...).
				Value(&cfg.HighlightStyle),
		),
	).Run()
	if err != nil {
		return err
	}

	if src == sourceSite {
		cfg.Fixture = ""
	} else {
		cfg.SiteURL, cfg.Username, cfg.AppPassword = "", "", ""
	}
	return nil
}

func validateSiteURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("enter an http or https URL")
	}
	return nil
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
