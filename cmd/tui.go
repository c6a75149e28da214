package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/projects"
	"github.com/Zachkp/portfolio/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the portfolio in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	state, err := loadPageState(cfg)
	if err != nil {
		return err
	}

	db, err := analytics.Open(cfg.Analytics.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	return tui.Run(tui.New(tui.Options{
		Portfolio:      state.portfolio,
		Skills:         state.skills,
		Projects:       projects.NewView(state.catalog),
		Downloads:      db,
		SkillAnimation: cfg.UI.SkillAnimation,
		ProjectFade:    cfg.UI.ProjectFade,
	}))
}
