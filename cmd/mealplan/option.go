package mealplan

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TitogeremitoDev/mealplan-cli/internal/service"
)

var optionCmd = &cobra.Command{
	Use:   "option",
	Short: "Manage meal options (alternatives within a meal)",
}

var (
	optionMealID int64
	optionName   string
)

var optionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an option to a meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddOption(sqldb, optionMealID, optionName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added option %d\n", id)
			return nil
		})
	},
}

var optionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List options of a meal with macro totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			options, err := service.ListOptions(sqldb, optionMealID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tPOS\tNAME\tKCAL\tP\tC\tF")
			for _, o := range options {
				totals, err := service.OptionTotals(sqldb, o.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d\t%s\t%d\t%.1f\t%.1f\t%.1f\n",
					o.ID, o.Position, o.Name, totals.Kcal, totals.ProteinG, totals.CarbsG, totals.FatG)
			}
			return nil
		})
	},
}

var optionDeleteCmd = &cobra.Command{
	Use:   "delete <option-id>",
	Short: "Delete a meal option",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("option id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteOption(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted option %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(optionCmd)
	optionCmd.AddCommand(optionAddCmd)
	optionCmd.AddCommand(optionListCmd)
	optionCmd.AddCommand(optionDeleteCmd)

	optionCmd.PersistentFlags().Int64Var(&optionMealID, "meal", 0, "Meal id")
	optionAddCmd.Flags().StringVar(&optionName, "name", "", "Option name")
	_ = optionAddCmd.MarkFlagRequired("name")
}
