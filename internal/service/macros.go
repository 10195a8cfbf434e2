package service

import (
	"math"

	"github.com/TitogeremitoDev/mealplan-cli/internal/model"
)

// roundEpsilon absorbs float artifacts like 2.4999999 before rounding.
const roundEpsilon = 1e-9

// CalculateMacros scales a per-100g profile to the absolute macros of a
// portion. Calories round to a whole number, the gram macros to one
// decimal place; both conventions are load-bearing for display parity.
func CalculateMacros(amount float64, unit string, per100g *model.Nutrients, foodName string, serving *model.ServingSize) model.Macros {
	if per100g == nil {
		return model.Macros{}
	}
	grams := ConvertToGrams(amount, unit, foodName, serving)
	if grams <= 0 {
		return model.Macros{}
	}
	factor := grams / 100
	return model.Macros{
		Kcal:     roundKcal(per100g.Kcal * factor),
		ProteinG: round1(per100g.ProteinG * factor),
		CarbsG:   round1(per100g.CarbsG * factor),
		FatG:     round1(per100g.FatG * factor),
	}
}

// MacrosFromDensity scales a density snapshot to the absolute macros of
// totalGrams of food.
func MacrosFromDensity(snap model.DensitySnapshot, totalGrams float64) model.Macros {
	if totalGrams <= 0 {
		return model.Macros{}
	}
	perGram := snap.Nutrients
	if snap.Basis == model.BasisPer100g {
		perGram = model.Nutrients{
			Kcal:     snap.Nutrients.Kcal / 100,
			ProteinG: snap.Nutrients.ProteinG / 100,
			CarbsG:   snap.Nutrients.CarbsG / 100,
			FatG:     snap.Nutrients.FatG / 100,
		}
	}
	return model.Macros{
		Kcal:     roundKcal(perGram.Kcal * totalGrams),
		ProteinG: round1(perGram.ProteinG * totalGrams),
		CarbsG:   round1(perGram.CarbsG * totalGrams),
		FatG:     round1(perGram.FatG * totalGrams),
	}
}

func scaleMacros(m model.Macros, ratio float64) model.Macros {
	return model.Macros{
		Kcal:     roundKcal(float64(m.Kcal) * ratio),
		ProteinG: round1(m.ProteinG * ratio),
		CarbsG:   round1(m.CarbsG * ratio),
		FatG:     round1(m.FatG * ratio),
	}
}

func roundKcal(v float64) int {
	return int(math.Round(v + roundEpsilon))
}

func round1(v float64) float64 {
	return math.Round((v+roundEpsilon)*10) / 10
}

func round2(v float64) float64 {
	return math.Round((v+roundEpsilon)*100) / 100
}
