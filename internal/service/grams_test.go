package service_test

import (
	"testing"

	"github.com/TitogeremitoDev/mealplan-cli/internal/model"
	"github.com/TitogeremitoDev/mealplan-cli/internal/service"
)

func TestResolveUnitWeightGramUnitsIgnoreOverrides(t *testing.T) {
	t.Parallel()
	serving := &model.ServingSize{Unit: "unidad", WeightG: 60}
	if got := service.ResolveUnitWeight("gramos", "Huevo", serving); got != 1 {
		t.Fatalf("gram amounts must never rescale, got %v", got)
	}
	if got := service.ResolveUnitWeight("ml", "Leche", serving); got != 1 {
		t.Fatalf("ml amounts must never rescale, got %v", got)
	}
}

func TestResolveUnitWeightServingOverrideWins(t *testing.T) {
	t.Parallel()
	serving := &model.ServingSize{Unit: "unidad", WeightG: 52}
	// The explicit serving beats the huevo heuristic (60 g).
	if got := service.ResolveUnitWeight("unidad", "Huevo M", serving); got != 52 {
		t.Fatalf("expected serving override 52, got %v", got)
	}
}

func TestResolveUnitWeightGramServingDoesNotOverride(t *testing.T) {
	t.Parallel()
	// A serving stored against the 100 g reference is not a per-unit weight.
	serving := &model.ServingSize{Unit: "gramos", WeightG: 100}
	if got := service.ResolveUnitWeight("unidad", "Huevo", serving); got != 60 {
		t.Fatalf("expected heuristic weight 60, got %v", got)
	}
}

func TestResolveUnitWeightNameHeuristics(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		want float64
	}{
		{"Huevo L", 60},
		{"Clara de huevo", 35},
		{"Plátano canario", 120},
		{"Banana", 120},
		{"Manzana roja", 180},
		{"Naranja", 150},
		{"Kiwi", 75},
		{"Dátil medjool", 8},
		{"Nuez pelada", 5},
	}
	for _, tc := range cases {
		if got := service.ResolveUnitWeight("unidad", tc.name, nil); got != tc.want {
			t.Fatalf("heuristic for %q: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestResolveUnitWeightClaraBeatsHuevo(t *testing.T) {
	t.Parallel()
	// "Clara de huevo" matches both substrings; clara is listed first.
	if got := service.ResolveUnitWeight("unidad", "clara de huevo", nil); got != 35 {
		t.Fatalf("expected clara weight 35, got %v", got)
	}
}

func TestResolveUnitWeightRegistryFallback(t *testing.T) {
	t.Parallel()
	if got := service.ResolveUnitWeight("cucharada", "Aceite de oliva", nil); got != 15 {
		t.Fatalf("expected registry factor 15, got %v", got)
	}
	if got := service.ResolveUnitWeight("fanega", "Trigo", nil); got != 100 {
		t.Fatalf("expected 100 g fallback for unknown unit, got %v", got)
	}
}

func TestConvertToGrams(t *testing.T) {
	t.Parallel()
	if got := service.ConvertToGrams(150, "gramos", "Arroz", nil); got != 150 {
		t.Fatalf("expected 150 g, got %v", got)
	}
	if got := service.ConvertToGrams(2, "unidad", "Huevo", nil); got != 120 {
		t.Fatalf("expected 2 huevos = 120 g, got %v", got)
	}
	if got := service.ConvertToGrams(3, "cucharada", "Aceite", nil); got != 45 {
		t.Fatalf("expected 45 g, got %v", got)
	}
}

func TestConvertToGramsInvalidAndFree(t *testing.T) {
	t.Parallel()
	if got := service.ConvertToGrams(0, "gramos", "Arroz", nil); got != 0 {
		t.Fatalf("zero amount should be 0 g, got %v", got)
	}
	if got := service.ConvertToGrams(-10, "gramos", "Arroz", nil); got != 0 {
		t.Fatalf("negative amount should be 0 g, got %v", got)
	}
	if got := service.ConvertToGrams(5, "a_gusto", "Verdura", nil); got != 0 {
		t.Fatalf("free unit should be 0 g, got %v", got)
	}
}
