package main

import (
	"github.com/spf13/cobra"

	"github.com/baechuer/peoplehub/internal/bootstrap"
)

var leavesCmd = &cobra.Command{
	Use:   "leaves",
	Short: "Leave balance maintenance",
}

var leavesAccrueCmd = &cobra.Command{
	Use:   "accrue",
	Short: "Run one monthly leave accrual now",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := bootstrap.AccrueLeaves(cmd.Context(), cfg, bootstrap.DefaultDeps())
		if err != nil {
			return err
		}
		lg.Info().Int64("employees", n).Msg("leaves accrued")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed initial data",
}

var seedAdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Create the superadmin from SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD",
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := bootstrap.SeedAdmin(cmd.Context(), cfg, bootstrap.DefaultDeps())
		if err != nil {
			return err
		}
		if !created {
			lg.Info().Msg("superadmin already exists")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(leavesCmd, seedCmd)
	leavesCmd.AddCommand(leavesAccrueCmd)
	seedCmd.AddCommand(seedAdminCmd)
}
