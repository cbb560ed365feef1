package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/sportsboard/internal/app/seasons"
)

func (a *App) startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <name> <startDate> <endDate>",
		Short: "Mark a tournament active now (daily updates)",
		Args:  exactArgs(3, "<name> <startDate> <endDate>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			res, err := svc.Start(cmd.Context(), a.domain, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return a.printResult(res)
		},
	}
}

func (a *App) endCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "Clear the active tournament and revert to the idle update frequency",
		Args:  exactArgs(0, "none"),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			res, err := svc.End(cmd.Context(), a.domain)
			if errors.Is(err, seasons.ErrNoActiveWindow) {
				a.printNotice("no active tournament for " + a.domain + "; nothing to end")
				return nil
			}
			if err != nil {
				return err
			}
			return a.printResult(res)
		},
	}
}

func (a *App) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <startDate> <endDate>",
		Short: "Queue an upcoming tournament without activating it",
		Args:  exactArgs(3, "<name> <startDate> <endDate>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			res, err := svc.Add(cmd.Context(), a.domain, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return a.printResult(res)
		},
	}
}

func (a *App) autoCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "auto",
		Short: "Expire a finished tournament or promote the next queued one",
		Args:  exactArgs(0, "none"),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if all {
				results, err := svc.AutoAll(cmd.Context())
				if err != nil {
					return err
				}
				return a.printAuto(results)
			}
			res, err := svc.Auto(cmd.Context(), a.domain)
			if err != nil {
				return err
			}
			return a.printAuto([]seasons.AutoResult{res})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "check every known domain")
	return cmd
}

func (a *App) seasonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "season",
		Short: "Manage keyed season windows",
		Args:  exactArgs(0, "a subcommand"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var confirmed bool
	set := &cobra.Command{
		Use:   "set <key> <start> <end>",
		Short: "Add or replace a season window",
		Args:  exactArgs(3, "<key> <start> <end>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			res, err := svc.SetSeason(cmd.Context(), a.domain, args[0], args[1], args[2], confirmed)
			if err != nil {
				return err
			}
			return a.printResult(res)
		},
	}
	set.Flags().BoolVar(&confirmed, "confirmed", false, "mark the dates as officially confirmed")

	rm := &cobra.Command{
		Use:   "rm <key>",
		Short: "Remove a season window",
		Args:  exactArgs(1, "<key>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			res, err := svc.RemoveSeason(cmd.Context(), a.domain, args[0])
			if err != nil {
				return err
			}
			return a.printResult(res)
		},
	}

	cmd.AddCommand(set, rm)
	return cmd
}
