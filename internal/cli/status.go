package cli

import (
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/sportsboard/internal/app/seasons"
)

func (a *App) statusCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current and upcoming windows and today's D-day label",
		Args:  exactArgs(0, "none"),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if all {
				return a.printReports(svc.StatusAll(cmd.Context()))
			}
			report, err := svc.Status(cmd.Context(), a.domain)
			if err != nil {
				return err
			}
			return a.printReports([]seasons.Report{report})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "report every known domain")
	return cmd
}
