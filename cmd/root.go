package cmd

import (
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X github.com/Zachkp/portfolio/cmd.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Single-page developer portfolio",
	Long: `portfolio serves a personal portfolio page with an editable skills list,
a sortable project gallery and a resume download counter.

Run it as a web server (serve) or in the terminal (tui).`,
	Version:      version,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
