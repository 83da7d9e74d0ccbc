package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// Persistent flags.
var (
	configPath  string
	fixturePath string
	logFile     string
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:   "template-switcher",
	Short: "Switch between block theme templates and template parts",
	Long: "template-switcher lists the templates and template parts of a block theme site, " +
		"marks the home template, and lets you pick the one to edit.",
	SilenceUsage: true,
	RunE:         runSwitch,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("template-switcher %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.template-switcher/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&fixturePath, "fixture", "", "read records from a YAML fixture instead of a site")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(homeCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
