package service

import (
	"math"
	"strings"

	"github.com/TitogeremitoDev/mealplan-cli/internal/model"
)

// foodUnitWeights covers foods whose natural "unidad" weight is not the
// registry default. Matched by case-insensitive substring on the food name.
var foodUnitWeights = []struct {
	match   string
	weightG float64
}{
	{"huevo", 60},
	{"clara", 35},
	{"platano", 120},
	{"plátano", 120},
	{"banana", 120},
	{"manzana", 180},
	{"naranja", 150},
	{"kiwi", 75},
	{"datil", 8},
	{"dátil", 8},
	{"nuez", 5},
}

// ResolveUnitWeight determines what one unit of a food weighs in grams.
//
// Priority, first match wins:
//  1. gram-like units are always 1:1 (a serving size stored against the
//     100 g reference must never rescale real gram amounts)
//  2. an explicit non-gram serving override with a positive weight
//  3. the food-name heuristic table
//  4. the unit registry factor
//  5. the 100 g fallback for unknown units
func ResolveUnitWeight(unit, foodName string, serving *model.ServingSize) float64 {
	key := normalizeUnitKey(unit)
	if key == "gramos" || key == "g" || key == "ml" {
		return 1
	}
	if serving != nil && serving.WeightG > 0 {
		servingUnit := normalizeUnitKey(serving.Unit)
		if servingUnit != "" && servingUnit != "g" && servingUnit != "gramos" {
			return serving.WeightG
		}
	}
	if w, ok := foodHeuristicWeight(foodName); ok {
		return w
	}
	if def, ok := unitTable[key]; ok {
		return def.factor
	}
	return defaultUnitWeightG
}

// ConvertToGrams returns the total weight in grams that amount represents,
// or 0 for the free unit and absent or invalid amounts.
func ConvertToGrams(amount float64, unit, foodName string, serving *model.ServingSize) float64 {
	if math.IsNaN(amount) || amount <= 0 {
		return 0
	}
	if IsFreeUnit(unit) {
		return 0
	}
	return amount * ResolveUnitWeight(unit, foodName, serving)
}

func foodHeuristicWeight(foodName string) (float64, bool) {
	name := strings.ToLower(strings.TrimSpace(foodName))
	if name == "" {
		return 0, false
	}
	for _, h := range foodUnitWeights {
		if strings.Contains(name, h.match) {
			return h.weightG, true
		}
	}
	return 0, false
}
