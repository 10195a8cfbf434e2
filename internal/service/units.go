package service

import (
	"fmt"
	"math"
	"strings"
)

// FreeUnit is the "a gusto / sin pesar" unit: no defined quantity, macros
// are always zero while an entry carries it.
const FreeUnit = "a_gusto"

// FreeLabel is what portion chips show for the free unit regardless of amount.
const FreeLabel = "Libre"

// defaultUnitWeightG is the fallback weight for unknown units.
const defaultUnitWeightG = 100

type unitDef struct {
	factor    float64
	label     string
	labelLong string
}

var unitTable = map[string]unitDef{
	"gramos":      {factor: 1, label: "g", labelLong: "Gramos"},
	"ml":          {factor: 1, label: "ml", labelLong: "Mililitros"},
	"kilogramos":  {factor: 1000, label: "kg", labelLong: "Kilogramos"},
	"litros":      {factor: 1000, label: "l", labelLong: "Litros"},
	"unidad":      {factor: 1, label: "ud", labelLong: "Unidad"}, // variable, name heuristics refine it
	"racion":      {factor: 100, label: "ración", labelLong: "Ración"},
	"cucharada":   {factor: 15, label: "cda", labelLong: "Cucharada"},
	"cucharadita": {factor: 5, label: "cdta", labelLong: "Cucharadita"},
	"taza":        {factor: 200, label: "taza", labelLong: "Taza"},
	"punado":      {factor: 30, label: "puñado", labelLong: "Puñado"},
	"rebanada":    {factor: 30, label: "reb", labelLong: "Rebanada"},
	"loncha":      {factor: 20, label: "loncha", labelLong: "Loncha"},
	"rodaja":      {factor: 25, label: "rodaja", labelLong: "Rodaja"},
	"scoop":       {factor: 30, label: "scoop", labelLong: "Scoop"},
	FreeUnit:      {factor: 0, label: FreeLabel, labelLong: "A gusto / Sin pesar"},
}

// unitCycleOrder is the fixed enumeration the unit-cycling control walks.
var unitCycleOrder = []string{
	"gramos",
	"unidad",
	"racion",
	"cucharada",
	"cucharadita",
	"taza",
	"punado",
	"scoop",
	"rebanada",
	"loncha",
	"rodaja",
	FreeUnit,
}

// neverPluralized holds units whose name reads the same at any amount.
var neverPluralized = map[string]bool{
	"gramos":     true,
	"ml":         true,
	"kilogramos": true,
	"litros":     true,
}

// pluralExceptions maps unit keys whose plural is not key+"s".
var pluralExceptions = map[string]string{
	"unidad":   "unidades",
	"racion":   "raciones",
	"punado":   "puñados",
	"rebanada": "rebanadas",
}

// LookupUnit resolves a unit key to its definition. Unknown keys degrade to
// a generic 100 g-per-unit definition instead of failing, so partially
// migrated plan documents stay renderable.
func LookupUnit(key string) unitDef {
	if def, ok := unitTable[normalizeUnitKey(key)]; ok {
		return def
	}
	return unitDef{factor: defaultUnitWeightG, label: key, labelLong: key}
}

// UnitFactor returns the gram-equivalence factor for a unit key.
func UnitFactor(key string) float64 {
	return LookupUnit(key).factor
}

// UnitLabel returns the short display label for a unit key.
func UnitLabel(key string) string {
	return LookupUnit(key).label
}

// UnitLabelLong returns the long display label for a unit key.
func UnitLabelLong(key string) string {
	return LookupUnit(key).labelLong
}

// IsFreeUnit reports whether key is the free/unweighed unit.
func IsFreeUnit(key string) bool {
	return normalizeUnitKey(key) == FreeUnit
}

// CycleUnit returns the next unit key in the fixed cycling order, wrapping
// at the end. Unknown keys restart the cycle at gramos.
func CycleUnit(key string) string {
	current := normalizeUnitKey(key)
	for i, k := range unitCycleOrder {
		if k == current {
			return unitCycleOrder[(i+1)%len(unitCycleOrder)]
		}
	}
	return unitCycleOrder[0]
}

// CycleableUnits returns the unit keys in cycling order.
func CycleableUnits() []string {
	out := make([]string, len(unitCycleOrder))
	copy(out, unitCycleOrder)
	return out
}

// FormatAmountWithUnit renders an amount and unit the way portion chips
// display them: "Libre" for the free unit or a missing amount, singular at
// exactly 1, plural otherwise. Gram-style units never pluralize.
func FormatAmountWithUnit(amount float64, key string) string {
	if IsFreeUnit(key) {
		return FreeLabel
	}
	if amount <= 0 || math.IsNaN(amount) {
		return FreeLabel
	}
	return fmt.Sprintf("%s %s", formatAmount(amount), unitNameForAmount(amount, key))
}

func unitNameForAmount(amount float64, key string) string {
	k := normalizeUnitKey(key)
	if neverPluralized[k] {
		return k
	}
	if amount == 1 {
		return k
	}
	if plural, ok := pluralExceptions[k]; ok {
		return plural
	}
	return k + "s"
}

func formatAmount(amount float64) string {
	if amount == math.Trunc(amount) {
		return fmt.Sprintf("%d", int64(amount))
	}
	return fmt.Sprintf("%.1f", amount)
}

func normalizeUnitKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
