package service_test

import (
	"math"
	"testing"

	"github.com/TitogeremitoDev/mealplan-cli/internal/model"
	"github.com/TitogeremitoDev/mealplan-cli/internal/service"
)

func porridgeChildren() []model.FoodEntry {
	return []model.FoodEntry{
		{Kind: model.KindSimple, Name: "Avena", Amount: 60, Unit: "gramos",
			Macros: model.Macros{Kcal: 222, ProteinG: 7.8, CarbsG: 36, FatG: 4.2}},
		{Kind: model.KindSimple, Name: "Leche", Amount: 250, Unit: "ml",
			Macros: model.Macros{Kcal: 115, ProteinG: 8.5, CarbsG: 12, FatG: 4}},
		{Kind: model.KindSimple, Name: "Plátano", Amount: 1, Unit: "unidad",
			Macros: model.Macros{Kcal: 107, ProteinG: 1.3, CarbsG: 27.4, FatG: 0.4}},
	}
}

func TestSumChildren(t *testing.T) {
	t.Parallel()
	got := service.SumChildren(porridgeChildren())
	if got.Kcal != 444 {
		t.Fatalf("expected 444 kcal, got %d", got.Kcal)
	}
	if math.Abs(got.ProteinG-17.6) > 1e-9 {
		t.Fatalf("expected 17.6 g protein, got %v", got.ProteinG)
	}
	if math.Abs(got.CarbsG-75.4) > 1e-9 {
		t.Fatalf("expected 75.4 g carbs, got %v", got.CarbsG)
	}
	if math.Abs(got.FatG-8.6) > 1e-9 {
		t.Fatalf("expected 8.6 g fat, got %v", got.FatG)
	}
}

func TestSumChildrenEmpty(t *testing.T) {
	t.Parallel()
	if got := service.SumChildren(nil); got != (model.Macros{}) {
		t.Fatalf("empty recipe should sum to zero, got %+v", got)
	}
}

func TestScaleComposite(t *testing.T) {
	t.Parallel()
	children := porridgeChildren()
	parent := &model.FoodEntry{
		Kind:     model.KindComposite,
		Name:     "Porridge",
		Amount:   1,
		Unit:     "racion",
		Macros:   service.SumChildren(children),
		Children: children,
	}

	if !service.ScaleComposite(parent, 2) {
		t.Fatalf("expected scaling to report a change")
	}
	if parent.Amount != 2 {
		t.Fatalf("expected 2 raciones, got %v", parent.Amount)
	}
	if parent.Children[0].Amount != 120 {
		t.Fatalf("expected avena to double to 120 g, got %v", parent.Children[0].Amount)
	}
	if parent.Children[0].Macros.Kcal != 444 {
		t.Fatalf("expected avena calories to double, got %d", parent.Children[0].Macros.Kcal)
	}
	if parent.Macros.Kcal != 888 {
		t.Fatalf("parent totals come from the re-sum, got %d kcal", parent.Macros.Kcal)
	}
	if math.Abs(parent.Macros.ProteinG-35.2) > 1e-9 {
		t.Fatalf("expected 35.2 g protein, got %v", parent.Macros.ProteinG)
	}
}

func TestScaleCompositeInvalidInputs(t *testing.T) {
	t.Parallel()
	children := porridgeChildren()
	parent := &model.FoodEntry{
		Kind:     model.KindComposite,
		Name:     "Porridge",
		Amount:   1,
		Unit:     "racion",
		Macros:   service.SumChildren(children),
		Children: children,
	}

	if service.ScaleComposite(parent, 0) {
		t.Fatalf("zero multiplier should be a no-op")
	}
	if service.ScaleComposite(parent, -2) {
		t.Fatalf("negative multiplier should be a no-op")
	}
	if service.ScaleComposite(parent, math.NaN()) {
		t.Fatalf("NaN multiplier should be a no-op")
	}
	if service.ScaleComposite(parent, 1) {
		t.Fatalf("scaling to the current amount should be a no-op")
	}
	if parent.Children[0].Amount != 60 {
		t.Fatalf("no-op scaling must not touch children, got %v", parent.Children[0].Amount)
	}

	simple := &model.FoodEntry{Kind: model.KindSimple, Name: "Avena", Amount: 60, Unit: "gramos"}
	if service.ScaleComposite(simple, 2) {
		t.Fatalf("simple entries are not scalable recipes")
	}
}
