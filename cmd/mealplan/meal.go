package mealplan

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TitogeremitoDev/mealplan-cli/internal/service"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Manage meals inside a plan",
}

var (
	mealPlan string
	mealName string
)

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a meal to a plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddMeal(sqldb, mealPlan, mealName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added meal %d\n", id)
			return nil
		})
	},
}

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meals of a plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			meals, err := service.ListMeals(sqldb, mealPlan)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tPOS\tNAME")
			for _, m := range meals {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d\t%s\n", m.ID, m.Position, m.Name)
			}
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <meal-id>",
	Short: "Delete a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("meal id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteMeal(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAddCmd)
	mealCmd.AddCommand(mealListCmd)
	mealCmd.AddCommand(mealDeleteCmd)

	mealCmd.PersistentFlags().StringVar(&mealPlan, "plan", "", "Plan id or name")
	mealAddCmd.Flags().StringVar(&mealName, "name", "", "Meal name (e.g. Desayuno)")
	_ = mealAddCmd.MarkFlagRequired("name")
}
