package mealplan

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TitogeremitoDev/mealplan-cli/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			log.Debug("doctor report: %+v", report)
			fmt.Fprintf(cmd.OutOrStdout(), "Drifted recipe totals: %d\n", report.DriftedRecipes)
			fmt.Fprintf(cmd.OutOrStdout(), "Orphan recipe children: %d\n", report.OrphanChildren)
			fmt.Fprintf(cmd.OutOrStdout(), "Degraded entries: %d\n", report.DegradedEntries)
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Repaired recipe totals: %d\n", report.RepairedRecipes)
				// Re-check after repairs so exit status reflects final state.
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if report.DriftedRecipes > 0 || report.OrphanChildren > 0 {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Re-sum drifted recipe totals")
}
