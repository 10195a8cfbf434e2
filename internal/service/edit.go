package service

import (
	"math"

	"github.com/TitogeremitoDev/mealplan-cli/internal/model"
)

// PortionEdit carries the fields a user touched on a portion control.
// A nil Amount means the amount box was not submitted; an empty Unit means
// the unit was not changed.
type PortionEdit struct {
	Amount *float64
	Unit   string
}

// ApplyPortionEdit mutates a food entry according to an amount/unit edit,
// preserving nutrient density across transitions through the free unit.
// It reports whether the entry changed. Invalid numeric input (NaN or
// negative amounts) is silently ignored: transient states while typing must
// never corrupt the entry, so the edit is a no-op rather than an error.
func ApplyPortionEdit(e *model.FoodEntry, edit PortionEdit) bool {
	if e == nil {
		return false
	}
	if edit.Amount != nil && (math.IsNaN(*edit.Amount) || *edit.Amount < 0) {
		return false
	}

	newUnit := e.Unit
	if edit.Unit != "" {
		newUnit = normalizeUnitKey(edit.Unit)
	}

	switch {
	case !IsFreeUnit(e.Unit) && IsFreeUnit(newUnit):
		return convertToFree(e)
	case IsFreeUnit(e.Unit) && !IsFreeUnit(newUnit):
		return restoreFromFree(e, edit.Amount, newUnit)
	case IsFreeUnit(e.Unit):
		// Already free; amounts are pinned to zero until a weighed unit
		// is chosen again.
		return false
	default:
		return editWeighed(e, edit.Amount, newUnit)
	}
}

// convertToFree zeroes the visible amount and macros but first captures a
// per-gram density snapshot so the profile survives the round trip. An
// existing snapshot is kept: repeated lossy transitions must not overwrite
// the original density.
func convertToFree(e *model.FoodEntry) bool {
	grams := ConvertToGrams(e.Amount, e.Unit, e.Name, e.Serving)
	if grams > 0 && e.Snapshot == nil {
		e.Snapshot = &model.DensitySnapshot{
			Basis: model.BasisPerGram,
			Nutrients: model.Nutrients{
				Kcal:     float64(e.Macros.Kcal) / grams,
				ProteinG: e.Macros.ProteinG / grams,
				CarbsG:   e.Macros.CarbsG / grams,
				FatG:     e.Macros.FatG / grams,
			},
		}
	}
	e.Amount = 0
	e.Unit = FreeUnit
	e.Macros = model.Macros{}
	return true
}

// restoreFromFree re-weighs a free entry. The restoration amount is the
// submitted one when positive, else 100 for gram-style units and 1 for
// everything else. Density comes from the snapshot when present, then from
// the per-100g reference; with neither the entry stays at zero and is
// marked degraded so callers can surface the data loss.
func restoreFromFree(e *model.FoodEntry, submitted *float64, newUnit string) bool {
	amount := 0.0
	if submitted != nil && *submitted > 0 {
		amount = *submitted
	} else if newUnit == "gramos" || newUnit == "ml" {
		amount = 100
	} else {
		amount = 1
	}

	grams := ConvertToGrams(amount, newUnit, e.Name, e.Serving)
	switch {
	case e.Snapshot != nil:
		e.Macros = MacrosFromDensity(*e.Snapshot, grams)
		e.Degraded = false
	case e.Per100g != nil:
		e.Macros = CalculateMacros(amount, newUnit, e.Per100g, e.Name, e.Serving)
		e.Degraded = false
	default:
		e.Macros = model.Macros{}
		e.Degraded = true
	}

	e.Amount = amount
	e.Unit = newUnit
	e.FromRisky = true
	return true
}

func editWeighed(e *model.FoodEntry, submitted *float64, newUnit string) bool {
	unitChanged := newUnit != e.Unit
	amountChanged := submitted != nil && *submitted > 0 && *submitted != e.Amount

	if amountChanged {
		return requantify(e, *submitted, newUnit)
	}
	if unitChanged {
		return convertUnit(e, newUnit)
	}
	return false
}

// convertUnit changes the unit without touching macros: the same physical
// portion, displayed differently. The amount is back-solved so total grams
// stay identical, except when the source unit is risky (zero factor, or
// two factor-1 units where density is ambiguous); then the amount is left
// alone rather than scaled into nonsense.
func convertUnit(e *model.FoodEntry, newUnit string) bool {
	oldWeight := ResolveUnitWeight(e.Unit, e.Name, e.Serving)
	newWeight := ResolveUnitWeight(newUnit, e.Name, e.Serving)

	if oldWeight == 0 || (oldWeight == 1 && newWeight == 1) {
		e.Unit = newUnit
		e.FromRisky = true
		return true
	}

	e.Amount = round2(e.Amount * oldWeight / newWeight)
	e.Unit = newUnit
	return true
}

// requantify handles "this many of this unit now": the user is redefining
// the portion, and macros follow the best density information available.
func requantify(e *model.FoodEntry, newAmount float64, newUnit string) bool {
	newGrams := ConvertToGrams(newAmount, newUnit, e.Name, e.Serving)
	oldGrams := ConvertToGrams(e.Amount, e.Unit, e.Name, e.Serving)

	switch {
	case e.Snapshot != nil:
		e.Macros = MacrosFromDensity(*e.Snapshot, newGrams)
		e.FromRisky = false
	case e.FromRisky:
		// The previous unit carried no trustworthy weight, so the known
		// calories stand and this edit just pins their weight.
		e.FromRisky = false
	case oldGrams > 0:
		e.Macros = scaleMacros(e.Macros, newGrams/oldGrams)
	case e.Per100g != nil:
		e.Macros = CalculateMacros(newAmount, newUnit, e.Per100g, e.Name, e.Serving)
	}

	e.Amount = newAmount
	e.Unit = newUnit
	return true
}
