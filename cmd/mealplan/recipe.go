package mealplan

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TitogeremitoDev/mealplan-cli/internal/display"
	"github.com/TitogeremitoDev/mealplan-cli/internal/model"
	"github.com/TitogeremitoDev/mealplan-cli/internal/service"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Manage composite recipes inside a meal option",
}

var (
	recipeOptionID int64
	recipeName     string
	recipeServings float64

	recipeIngredientRecipeID int64
	recipeIngredientName     string
	recipeIngredientAmount   float64
	recipeIngredientUnit     string
	recipeIngredientKcal100  float64
	recipeIngredientProtein  float64
	recipeIngredientCarbs    float64
	recipeIngredientFat      float64
)

var recipeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a composite recipe",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddCompositeFood(sqldb, recipeOptionID, recipeName, recipeServings, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created recipe %d\n", id)
			return nil
		})
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <recipe-id>",
	Short: "Show a composite recipe with its ingredients",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("recipe id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			food, err := service.GetFood(sqldb, id)
			if err != nil {
				return err
			}
			if food.Kind != model.KindComposite {
				return fmt.Errorf("food %d is not a composite recipe", id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), display.RenderFood(*food))
			for _, c := range food.Children {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", display.RenderFood(c))
			}
			return nil
		})
	},
}

var recipeIngredientCmd = &cobra.Command{
	Use:   "ingredient",
	Short: "Manage recipe ingredients",
}

var recipeIngredientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an ingredient to a composite recipe",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			in := service.FoodInput{
				Name:   recipeIngredientName,
				Amount: recipeIngredientAmount,
				Unit:   recipeIngredientUnit,
			}
			if recipeIngredientKcal100 > 0 || recipeIngredientProtein > 0 || recipeIngredientCarbs > 0 || recipeIngredientFat > 0 {
				in.Per100g = &model.Nutrients{
					Kcal:     recipeIngredientKcal100,
					ProteinG: recipeIngredientProtein,
					CarbsG:   recipeIngredientCarbs,
					FatG:     recipeIngredientFat,
				}
			}
			id, err := service.AddRecipeIngredient(sqldb, recipeIngredientRecipeID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added ingredient %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(recipeCmd)
	recipeCmd.AddCommand(recipeAddCmd)
	recipeCmd.AddCommand(recipeShowCmd)
	recipeCmd.AddCommand(recipeIngredientCmd)
	recipeIngredientCmd.AddCommand(recipeIngredientAddCmd)

	recipeAddCmd.Flags().Int64Var(&recipeOptionID, "option", 0, "Meal option id")
	recipeAddCmd.Flags().StringVar(&recipeName, "name", "", "Recipe name")
	recipeAddCmd.Flags().Float64Var(&recipeServings, "servings", 1, "Serving multiplier")
	_ = recipeAddCmd.MarkFlagRequired("name")

	recipeIngredientAddCmd.Flags().Int64Var(&recipeIngredientRecipeID, "recipe", 0, "Composite recipe id")
	recipeIngredientAddCmd.Flags().StringVar(&recipeIngredientName, "name", "", "Ingredient name")
	recipeIngredientAddCmd.Flags().Float64Var(&recipeIngredientAmount, "amount", 0, "Amount in the given unit")
	recipeIngredientAddCmd.Flags().StringVar(&recipeIngredientUnit, "unit", "gramos", "Unit key")
	recipeIngredientAddCmd.Flags().Float64Var(&recipeIngredientKcal100, "kcal", 0, "Calories per 100g")
	recipeIngredientAddCmd.Flags().Float64Var(&recipeIngredientProtein, "protein", 0, "Protein g per 100g")
	recipeIngredientAddCmd.Flags().Float64Var(&recipeIngredientCarbs, "carbs", 0, "Carbs g per 100g")
	recipeIngredientAddCmd.Flags().Float64Var(&recipeIngredientFat, "fat", 0, "Fat g per 100g")
	_ = recipeIngredientAddCmd.MarkFlagRequired("recipe")
	_ = recipeIngredientAddCmd.MarkFlagRequired("name")
}
