package mealplan

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TitogeremitoDev/mealplan-cli/internal/display"
	"github.com/TitogeremitoDev/mealplan-cli/internal/service"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage meal plans",
}

var (
	planName   string
	planClient string
	planNotes  string
)

var planAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a meal plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.PlanInput{
			Name:   planName,
			Client: planClient,
			Notes:  planNotes,
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreatePlan(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created plan %d\n", id)
			return nil
		})
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meal plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			plans, err := service.ListPlans(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tCLIENT")
			for _, p := range plans {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", p.ID, p.Name, p.Client)
			}
			return nil
		})
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Show a plan with meals, options, and macro totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			summary, err := service.SummarizePlan(sqldb, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), display.RenderPlan(summary))
			return nil
		})
	},
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <id|name>",
	Short: "Delete a meal plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeletePlan(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan %q\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planAddCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planDeleteCmd)

	planAddCmd.Flags().StringVar(&planName, "name", "", "Plan name")
	planAddCmd.Flags().StringVar(&planClient, "client", "", "Client name")
	planAddCmd.Flags().StringVar(&planNotes, "notes", "", "Free-form notes")
	_ = planAddCmd.MarkFlagRequired("name")
}
