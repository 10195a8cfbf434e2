package service

import (
	"math"

	"github.com/TitogeremitoDev/mealplan-cli/internal/model"
)

// SumChildren recomputes a composite recipe's macros as the exact sum over
// its children. Totals are always re-summed, never patched incrementally,
// so repeated edits cannot drift.
func SumChildren(children []model.FoodEntry) model.Macros {
	var kcal int
	var protein, carbs, fat float64
	for _, c := range children {
		kcal += c.Macros.Kcal
		protein += c.Macros.ProteinG
		carbs += c.Macros.CarbsG
		fat += c.Macros.FatG
	}
	return model.Macros{
		Kcal:     kcal,
		ProteinG: round1(protein),
		CarbsG:   round1(carbs),
		FatG:     round1(fat),
	}
}

// ScaleComposite rescales a composite recipe to a new serving multiplier:
// every child's amount and macros scale by newAmount/oldAmount, and the
// parent totals are re-summed from the scaled children. Reports whether
// anything changed; invalid multipliers are ignored.
func ScaleComposite(parent *model.FoodEntry, newAmount float64) bool {
	if parent == nil || parent.Kind != model.KindComposite {
		return false
	}
	if math.IsNaN(newAmount) || newAmount <= 0 {
		return false
	}
	if parent.Amount <= 0 || newAmount == parent.Amount {
		return false
	}

	ratio := newAmount / parent.Amount
	for i := range parent.Children {
		child := &parent.Children[i]
		child.Amount = round2(child.Amount * ratio)
		child.Macros = scaleMacros(child.Macros, ratio)
	}
	parent.Amount = newAmount
	parent.Macros = SumChildren(parent.Children)
	return true
}
