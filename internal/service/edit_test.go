package service_test

import (
	"math"
	"testing"

	"github.com/TitogeremitoDev/mealplan-cli/internal/model"
	"github.com/TitogeremitoDev/mealplan-cli/internal/service"
)

func floatPtr(v float64) *float64 { return &v }

func weighedEntry() *model.FoodEntry {
	return &model.FoodEntry{
		Kind:   model.KindSimple,
		Name:   "Arroz blanco",
		Amount: 150,
		Unit:   "gramos",
		Macros: model.Macros{Kcal: 300, ProteinG: 6, CarbsG: 66, FatG: 0.6},
	}
}

func TestConvertToFreeCapturesDensitySnapshot(t *testing.T) {
	t.Parallel()
	e := weighedEntry()
	changed := service.ApplyPortionEdit(e, service.PortionEdit{Unit: "a_gusto"})
	if !changed {
		t.Fatalf("expected free transition to report a change")
	}
	if e.Unit != "a_gusto" || e.Amount != 0 {
		t.Fatalf("expected zeroed free entry, got amount=%v unit=%q", e.Amount, e.Unit)
	}
	if e.Macros != (model.Macros{}) {
		t.Fatalf("free entries carry zero macros, got %+v", e.Macros)
	}
	if e.Snapshot == nil {
		t.Fatalf("expected a density snapshot")
	}
	if e.Snapshot.Basis != model.BasisPerGram {
		t.Fatalf("expected per-gram snapshot, got %q", e.Snapshot.Basis)
	}
	if math.Abs(e.Snapshot.Nutrients.Kcal-2.0) > 1e-9 {
		t.Fatalf("expected 2.0 kcal/g in snapshot, got %v", e.Snapshot.Nutrients.Kcal)
	}
}

func TestConvertToFreeKeepsExistingSnapshot(t *testing.T) {
	t.Parallel()
	e := weighedEntry()
	original := &model.DensitySnapshot{
		Basis:     model.BasisPerGram,
		Nutrients: model.Nutrients{Kcal: 1.5},
	}
	e.Snapshot = original
	service.ApplyPortionEdit(e, service.PortionEdit{Unit: "a_gusto"})
	if e.Snapshot != original {
		t.Fatalf("a repeated free transition must not overwrite the snapshot")
	}
}

func TestRestoreFromFreeViaSnapshot(t *testing.T) {
	t.Parallel()
	e := weighedEntry()
	service.ApplyPortionEdit(e, service.PortionEdit{Unit: "a_gusto"})

	changed := service.ApplyPortionEdit(e, service.PortionEdit{Amount: floatPtr(200), Unit: "gramos"})
	if !changed {
		t.Fatalf("expected restoration to report a change")
	}
	if e.Amount != 200 || e.Unit != "gramos" {
		t.Fatalf("expected 200 gramos, got %v %q", e.Amount, e.Unit)
	}
	if e.Macros.Kcal != 400 {
		t.Fatalf("expected 400 kcal after restoring 200 g at 2 kcal/g, got %d", e.Macros.Kcal)
	}
	if math.Abs(e.Macros.ProteinG-8) > 1e-9 {
		t.Fatalf("expected 8 g protein, got %v", e.Macros.ProteinG)
	}
	if !e.FromRisky {
		t.Fatalf("restoration from free must flag the entry as risky")
	}
	if e.Degraded {
		t.Fatalf("snapshot restoration must not be degraded")
	}
}

func TestRestoreFromFreeDefaultAmounts(t *testing.T) {
	t.Parallel()
	e := weighedEntry()
	service.ApplyPortionEdit(e, service.PortionEdit{Unit: "a_gusto"})
	service.ApplyPortionEdit(e, service.PortionEdit{Unit: "gramos"})
	if e.Amount != 100 {
		t.Fatalf("gram restoration without an amount defaults to 100, got %v", e.Amount)
	}
	if e.Macros.Kcal != 200 {
		t.Fatalf("expected 200 kcal at 2 kcal/g, got %d", e.Macros.Kcal)
	}

	e2 := weighedEntry()
	service.ApplyPortionEdit(e2, service.PortionEdit{Unit: "a_gusto"})
	service.ApplyPortionEdit(e2, service.PortionEdit{Unit: "racion"})
	if e2.Amount != 1 {
		t.Fatalf("non-gram restoration without an amount defaults to 1, got %v", e2.Amount)
	}
}

func TestRestoreFromFreeFallsBackToPer100g(t *testing.T) {
	t.Parallel()
	e := &model.FoodEntry{
		Kind:    model.KindSimple,
		Name:    "Avena",
		Amount:  0,
		Unit:    "a_gusto",
		Per100g: &model.Nutrients{Kcal: 370, ProteinG: 13, CarbsG: 60, FatG: 7},
	}
	service.ApplyPortionEdit(e, service.PortionEdit{Amount: floatPtr(50), Unit: "gramos"})
	if e.Macros.Kcal != 185 {
		t.Fatalf("expected per-100g fallback to give 185 kcal, got %d", e.Macros.Kcal)
	}
	if e.Degraded {
		t.Fatalf("per-100g restoration must not be degraded")
	}
}

func TestRestoreFromFreeDegradesWithoutDensity(t *testing.T) {
	t.Parallel()
	e := &model.FoodEntry{Kind: model.KindSimple, Name: "Mix casero", Unit: "a_gusto"}
	service.ApplyPortionEdit(e, service.PortionEdit{Amount: floatPtr(80), Unit: "gramos"})
	if e.Macros != (model.Macros{}) {
		t.Fatalf("degraded restoration must keep zero macros, got %+v", e.Macros)
	}
	if !e.Degraded {
		t.Fatalf("expected the entry to be marked degraded")
	}
	if e.Amount != 80 || e.Unit != "gramos" {
		t.Fatalf("expected the portion itself to restore, got %v %q", e.Amount, e.Unit)
	}
}

func TestPureUnitConversionPreservesMacros(t *testing.T) {
	t.Parallel()
	e := &model.FoodEntry{
		Kind:    model.KindSimple,
		Name:    "Pollo",
		Amount:  100,
		Unit:    "gramos",
		Macros:  model.Macros{Kcal: 200, ProteinG: 30, CarbsG: 0, FatG: 8},
		Serving: &model.ServingSize{Unit: "unidad", WeightG: 50},
	}
	changed := service.ApplyPortionEdit(e, service.PortionEdit{Unit: "unidad"})
	if !changed {
		t.Fatalf("expected conversion to report a change")
	}
	if e.Amount != 2 {
		t.Fatalf("expected 100 g to become 2 unidades of 50 g, got %v", e.Amount)
	}
	if e.Macros.Kcal != 200 {
		t.Fatalf("a pure unit conversion must not touch macros, got %d kcal", e.Macros.Kcal)
	}
	if e.FromRisky {
		t.Fatalf("a well-defined conversion is not risky")
	}
}

func TestRiskyUnitConversionKeepsAmount(t *testing.T) {
	t.Parallel()
	// gramos and ml both weigh 1 g per unit; back-solving is ambiguous.
	e := &model.FoodEntry{
		Kind:   model.KindSimple,
		Name:   "Leche",
		Amount: 250,
		Unit:   "ml",
		Macros: model.Macros{Kcal: 115, ProteinG: 8.5},
	}
	service.ApplyPortionEdit(e, service.PortionEdit{Unit: "gramos"})
	if e.Amount != 250 {
		t.Fatalf("ambiguous conversion must leave the amount alone, got %v", e.Amount)
	}
	if e.Unit != "gramos" {
		t.Fatalf("expected unit change to gramos, got %q", e.Unit)
	}
	if !e.FromRisky {
		t.Fatalf("ambiguous factor-1 conversion must flag the entry as risky")
	}
}

func TestRequantifyScalesByGramRatio(t *testing.T) {
	t.Parallel()
	e := weighedEntry()
	service.ApplyPortionEdit(e, service.PortionEdit{Amount: floatPtr(300)})
	if e.Amount != 300 {
		t.Fatalf("expected amount 300, got %v", e.Amount)
	}
	if e.Macros.Kcal != 600 {
		t.Fatalf("doubling grams doubles calories, got %d", e.Macros.Kcal)
	}
	if math.Abs(e.Macros.CarbsG-132) > 1e-9 {
		t.Fatalf("expected 132 g carbs, got %v", e.Macros.CarbsG)
	}
}

func TestRequantifyPrefersSnapshotDensity(t *testing.T) {
	t.Parallel()
	e := weighedEntry()
	e.Snapshot = &model.DensitySnapshot{
		Basis:     model.BasisPerGram,
		Nutrients: model.Nutrients{Kcal: 3, ProteinG: 0.2, CarbsG: 0.1, FatG: 0.1},
	}
	service.ApplyPortionEdit(e, service.PortionEdit{Amount: floatPtr(100)})
	if e.Macros.Kcal != 300 {
		t.Fatalf("expected snapshot density 3 kcal/g to win, got %d kcal", e.Macros.Kcal)
	}
	if e.FromRisky {
		t.Fatalf("requantifying through a snapshot clears the risky flag")
	}
}

func TestRequantifyAfterRiskyPinsWeight(t *testing.T) {
	t.Parallel()
	e := &model.FoodEntry{
		Kind:      model.KindSimple,
		Name:      "Leche",
		Amount:    250,
		Unit:      "gramos",
		Macros:    model.Macros{Kcal: 115, ProteinG: 8.5},
		FromRisky: true,
	}
	service.ApplyPortionEdit(e, service.PortionEdit{Amount: floatPtr(300)})
	if e.Macros.Kcal != 115 {
		t.Fatalf("a risky entry keeps its known calories on the next edit, got %d", e.Macros.Kcal)
	}
	if e.Amount != 300 {
		t.Fatalf("expected the new amount to stick, got %v", e.Amount)
	}
	if e.FromRisky {
		t.Fatalf("the risky flag is consumed by the pinning edit")
	}
}

func TestInvalidAmountIsSilentNoOp(t *testing.T) {
	t.Parallel()
	e := weighedEntry()
	if service.ApplyPortionEdit(e, service.PortionEdit{Amount: floatPtr(-5)}) {
		t.Fatalf("negative amount should be a no-op")
	}
	if service.ApplyPortionEdit(e, service.PortionEdit{Amount: floatPtr(math.NaN())}) {
		t.Fatalf("NaN amount should be a no-op")
	}
	if e.Amount != 150 || e.Unit != "gramos" || e.Macros.Kcal != 300 {
		t.Fatalf("invalid edits must not mutate the entry, got %v %q %d kcal", e.Amount, e.Unit, e.Macros.Kcal)
	}
}

func TestEditWithoutChangesIsNoOp(t *testing.T) {
	t.Parallel()
	e := weighedEntry()
	if service.ApplyPortionEdit(e, service.PortionEdit{}) {
		t.Fatalf("an empty edit should be a no-op")
	}
	if service.ApplyPortionEdit(e, service.PortionEdit{Amount: floatPtr(150), Unit: "gramos"}) {
		t.Fatalf("re-submitting the current amount and unit should be a no-op")
	}
}

func TestFreeEntryIgnoresAmountOnlyEdits(t *testing.T) {
	t.Parallel()
	e := weighedEntry()
	service.ApplyPortionEdit(e, service.PortionEdit{Unit: "a_gusto"})
	if service.ApplyPortionEdit(e, service.PortionEdit{Amount: floatPtr(50)}) {
		t.Fatalf("free entries keep amount pinned at zero")
	}
	if e.Amount != 0 {
		t.Fatalf("expected amount to stay 0, got %v", e.Amount)
	}
}
