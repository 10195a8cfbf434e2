package service

import (
	"database/sql"
	"fmt"

	"github.com/TitogeremitoDev/mealplan-cli/internal/model"
)

// OptionTotals sums the absolute macros of an option's top-level entries.
// Composite children are excluded: their parents already carry the sum.
func OptionTotals(db *sql.DB, optionID int64) (model.Macros, error) {
	if optionID <= 0 {
		return model.Macros{}, fmt.Errorf("option id must be > 0")
	}
	var kcal int
	var protein, carbs, fat float64
	err := db.QueryRow(`
SELECT COALESCE(SUM(kcal), 0), COALESCE(SUM(protein_g), 0), COALESCE(SUM(carbs_g), 0), COALESCE(SUM(fat_g), 0)
FROM foods
WHERE option_id = ? AND parent_id IS NULL
`, optionID).Scan(&kcal, &protein, &carbs, &fat)
	if err != nil {
		return model.Macros{}, fmt.Errorf("aggregate option %d: %w", optionID, err)
	}
	return model.Macros{Kcal: kcal, ProteinG: round1(protein), CarbsG: round1(carbs), FatG: round1(fat)}, nil
}

type OptionSummary struct {
	Option model.MealOption
	Totals model.Macros
	Foods  []model.FoodEntry
}

type MealSummary struct {
	Meal    model.Meal
	Options []OptionSummary
}

type PlanSummary struct {
	Plan   model.Plan
	Meals  []MealSummary
	Totals model.Macros
}

// SummarizePlan loads a plan with every meal, option, and food entry plus
// aggregated totals, ready for rendering. Plan totals take each meal's
// first option as the representative choice.
func SummarizePlan(db *sql.DB, planIdentifier string) (*PlanSummary, error) {
	plan, err := ResolvePlan(db, planIdentifier)
	if err != nil {
		return nil, err
	}
	meals, err := ListMeals(db, planIdentifier)
	if err != nil {
		return nil, err
	}

	summary := &PlanSummary{Plan: *plan}
	var planKcal int
	var planProtein, planCarbs, planFat float64
	for _, meal := range meals {
		options, err := ListOptions(db, meal.ID)
		if err != nil {
			return nil, err
		}
		ms := MealSummary{Meal: meal}
		for i, opt := range options {
			totals, err := OptionTotals(db, opt.ID)
			if err != nil {
				return nil, err
			}
			foods, err := ListOptionFoods(db, opt.ID)
			if err != nil {
				return nil, err
			}
			ms.Options = append(ms.Options, OptionSummary{Option: opt, Totals: totals, Foods: foods})
			if i == 0 {
				planKcal += totals.Kcal
				planProtein += totals.ProteinG
				planCarbs += totals.CarbsG
				planFat += totals.FatG
			}
		}
		summary.Meals = append(summary.Meals, ms)
	}
	summary.Totals = model.Macros{
		Kcal:     planKcal,
		ProteinG: round1(planProtein),
		CarbsG:   round1(planCarbs),
		FatG:     round1(planFat),
	}
	return summary, nil
}
