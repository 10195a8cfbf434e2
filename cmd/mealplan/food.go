package mealplan

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TitogeremitoDev/mealplan-cli/internal/display"
	"github.com/TitogeremitoDev/mealplan-cli/internal/model"
	"github.com/TitogeremitoDev/mealplan-cli/internal/provider/catalog"
	"github.com/TitogeremitoDev/mealplan-cli/internal/service"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage food entries inside a meal option",
}

var (
	foodOptionID      int64
	foodName          string
	foodAmount        float64
	foodUnit          string
	foodKcal100       float64
	foodProtein100    float64
	foodCarbs100      float64
	foodFat100        float64
	foodServingUnit   string
	foodServingWeight float64
	foodFromCatalog   bool

	foodEditAmount float64
	foodEditUnit   string

	foodScaleServings float64
)

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a food to a meal option",
	Long:  "Add a food to a meal option. Per-100g nutrient flags seed the macro calculation; --from-catalog fetches the profile by name instead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			in := service.FoodInput{
				Name:   foodName,
				Amount: foodAmount,
				Unit:   foodUnit,
			}
			if foodFromCatalog {
				profile, err := catalogClient(sqldb).Lookup(cmd.Context(), foodName)
				if err != nil {
					return err
				}
				log.Debug("catalog profile for %q: %+v", foodName, profile)
				in.Per100g = &model.Nutrients{
					Kcal:     profile.Kcal,
					ProteinG: profile.ProteinG,
					CarbsG:   profile.CarbsG,
					FatG:     profile.FatG,
				}
				if profile.ServingWeight > 0 {
					in.Serving = &model.ServingSize{Unit: profile.ServingUnit, WeightG: profile.ServingWeight}
				}
			} else if foodKcal100 > 0 || foodProtein100 > 0 || foodCarbs100 > 0 || foodFat100 > 0 {
				in.Per100g = &model.Nutrients{
					Kcal:     foodKcal100,
					ProteinG: foodProtein100,
					CarbsG:   foodCarbs100,
					FatG:     foodFat100,
				}
			}
			if in.Serving == nil && foodServingWeight > 0 && foodServingUnit != "" {
				in.Serving = &model.ServingSize{Unit: foodServingUnit, WeightG: foodServingWeight}
			}

			id, err := service.AddFood(sqldb, foodOptionID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added food %d\n", id)
			return nil
		})
	},
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List foods of a meal option",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			foods, err := service.ListOptionFoods(sqldb, foodOptionID)
			if err != nil {
				return err
			}
			for _, f := range foods {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", f.ID, display.RenderFood(f))
				for _, c := range f.Children {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t  %s\n", c.ID, display.RenderFood(c))
				}
			}
			totals, err := service.OptionTotals(sqldb, foodOptionID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "TOTAL\t%d kcal P:%.1f C:%.1f G:%.1f\n",
				totals.Kcal, totals.ProteinG, totals.CarbsG, totals.FatG)
			return nil
		})
	},
}

var foodEditCmd = &cobra.Command{
	Use:   "edit <food-id>",
	Short: "Edit a food's amount and/or unit",
	Long:  "Edit a food's amount and/or unit through the density-preserving protocol: converting to 'a_gusto' zeroes the portion but remembers its nutrient density; converting back restores it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			edit := service.PortionEdit{Unit: foodEditUnit}
			if cmd.Flags().Changed("amount") {
				amount := foodEditAmount
				edit.Amount = &amount
			}
			changed, err := service.EditFoodPortion(sqldb, id, edit)
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(cmd.OutOrStdout(), "No change")
				return nil
			}
			food, err := service.GetFood(sqldb, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), display.RenderFood(*food))
			return nil
		})
	},
}

var foodCycleUnitCmd = &cobra.Command{
	Use:   "cycle-unit <food-id>",
	Short: "Advance a food to the next unit in the cycling order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			next, err := service.CycleFoodUnit(sqldb, id)
			if err != nil {
				return err
			}
			food, err := service.GetFood(sqldb, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unit is now %s\n", service.UnitLabelLong(next))
			fmt.Fprintln(cmd.OutOrStdout(), display.RenderFood(*food))
			return nil
		})
	},
}

var foodScaleCmd = &cobra.Command{
	Use:   "scale <food-id>",
	Short: "Rescale a composite recipe to a new serving multiplier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			servings := foodScaleServings
			changed, err := service.EditFoodPortion(sqldb, id, service.PortionEdit{Amount: &servings})
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(cmd.OutOrStdout(), "No change")
				return nil
			}
			food, err := service.GetFood(sqldb, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), display.RenderFood(*food))
			for _, c := range food.Children {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", display.RenderFood(c))
			}
			return nil
		})
	},
}

var foodRemoveCmd = &cobra.Command{
	Use:   "remove <food-id>",
	Short: "Remove a food entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteFood(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed food %d\n", id)
			return nil
		})
	},
}

var foodLookupCmd = &cobra.Command{
	Use:   "lookup <name>",
	Short: "Look up a per-100g profile in the food catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			profiles, err := catalogClient(sqldb).Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "NAME\tKCAL/100g\tP\tC\tF\tSERVING")
			for _, p := range profiles {
				serving := "-"
				if p.ServingWeight > 0 {
					serving = fmt.Sprintf("1 %s = %.0fg", p.ServingUnit, p.ServingWeight)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n",
					p.Name, p.Kcal, p.ProteinG, p.CarbsG, p.FatG, serving)
			}
			return nil
		})
	},
}

// catalogClient builds the catalog client from stored config, with
// environment variables as fallback for fresh databases.
func catalogClient(sqldb *sql.DB) *catalog.Client {
	baseURL, _, err := service.GetConfig(sqldb, service.ConfigCatalogBaseURL)
	if err != nil {
		log.Warn("read catalog config: %v", err)
	}
	apiKey, _, err := service.GetConfig(sqldb, service.ConfigCatalogAPIKey)
	if err != nil {
		log.Warn("read catalog config: %v", err)
	}
	if baseURL == "" {
		baseURL = envOr("CATALOG_BASE_URL", "")
	}
	if apiKey == "" {
		apiKey = envOr("CATALOG_API_KEY", "")
	}
	return catalog.NewClient(baseURL, apiKey)
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodAddCmd)
	foodCmd.AddCommand(foodListCmd)
	foodCmd.AddCommand(foodEditCmd)
	foodCmd.AddCommand(foodCycleUnitCmd)
	foodCmd.AddCommand(foodScaleCmd)
	foodCmd.AddCommand(foodRemoveCmd)
	foodCmd.AddCommand(foodLookupCmd)

	foodCmd.PersistentFlags().Int64Var(&foodOptionID, "option", 0, "Meal option id")

	foodAddCmd.Flags().StringVar(&foodName, "name", "", "Food name")
	foodAddCmd.Flags().Float64Var(&foodAmount, "amount", 0, "Amount in the given unit")
	foodAddCmd.Flags().StringVar(&foodUnit, "unit", "gramos", "Unit key (gramos, unidad, cucharada, a_gusto, ...)")
	foodAddCmd.Flags().Float64Var(&foodKcal100, "kcal", 0, "Calories per 100g")
	foodAddCmd.Flags().Float64Var(&foodProtein100, "protein", 0, "Protein g per 100g")
	foodAddCmd.Flags().Float64Var(&foodCarbs100, "carbs", 0, "Carbs g per 100g")
	foodAddCmd.Flags().Float64Var(&foodFat100, "fat", 0, "Fat g per 100g")
	foodAddCmd.Flags().StringVar(&foodServingUnit, "serving-unit", "", "Serving unit for this food (e.g. unidad)")
	foodAddCmd.Flags().Float64Var(&foodServingWeight, "serving-weight", 0, "What one serving unit weighs in grams")
	foodAddCmd.Flags().BoolVar(&foodFromCatalog, "from-catalog", false, "Fetch the per-100g profile from the food catalog")
	_ = foodAddCmd.MarkFlagRequired("name")

	foodEditCmd.Flags().Float64Var(&foodEditAmount, "amount", 0, "New amount")
	foodEditCmd.Flags().StringVar(&foodEditUnit, "unit", "", "New unit key")

	foodScaleCmd.Flags().Float64Var(&foodScaleServings, "servings", 0, "New serving multiplier")
	_ = foodScaleCmd.MarkFlagRequired("servings")
}
