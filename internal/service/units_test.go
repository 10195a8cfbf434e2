package service_test

import (
	"testing"

	"github.com/TitogeremitoDev/mealplan-cli/internal/service"
)

func TestFormatAmountWithUnit(t *testing.T) {
	t.Parallel()
	cases := []struct {
		amount float64
		unit   string
		want   string
	}{
		{150, "gramos", "150 gramos"},
		{1, "unidad", "1 unidad"},
		{3, "unidad", "3 unidades"},
		{2, "racion", "2 raciones"},
		{2, "punado", "2 puñados"},
		{2, "cucharada", "2 cucharadas"},
		{1.5, "taza", "1.5 tazas"},
		{250, "ml", "250 ml"},
		{2, "kilogramos", "2 kilogramos"},
		{0, "gramos", "Libre"},
		{5, "a_gusto", "Libre"},
	}
	for _, tc := range cases {
		if got := service.FormatAmountWithUnit(tc.amount, tc.unit); got != tc.want {
			t.Fatalf("format %v %s: expected %q, got %q", tc.amount, tc.unit, tc.want, got)
		}
	}
}

func TestUnitFactorKnownUnits(t *testing.T) {
	t.Parallel()
	cases := []struct {
		unit string
		want float64
	}{
		{"gramos", 1},
		{"ml", 1},
		{"kilogramos", 1000},
		{"litros", 1000},
		{"cucharada", 15},
		{"cucharadita", 5},
		{"taza", 200},
		{"punado", 30},
		{"rebanada", 30},
		{"loncha", 20},
		{"rodaja", 25},
		{"scoop", 30},
		{"racion", 100},
		{"a_gusto", 0},
	}
	for _, tc := range cases {
		if got := service.UnitFactor(tc.unit); got != tc.want {
			t.Fatalf("factor for %s: expected %v, got %v", tc.unit, tc.want, got)
		}
	}
}

func TestUnitFactorUnknownUnitDefaults(t *testing.T) {
	t.Parallel()
	if got := service.UnitFactor("fanega"); got != 100 {
		t.Fatalf("expected unknown unit to default to 100 g, got %v", got)
	}
	if got := service.UnitLabel("fanega"); got != "fanega" {
		t.Fatalf("expected unknown unit label to echo the key, got %q", got)
	}
}

func TestCycleUnitOrder(t *testing.T) {
	t.Parallel()
	if got := service.CycleUnit("gramos"); got != "unidad" {
		t.Fatalf("expected gramos -> unidad, got %q", got)
	}
	if got := service.CycleUnit("rodaja"); got != "a_gusto" {
		t.Fatalf("expected rodaja -> a_gusto, got %q", got)
	}
	if got := service.CycleUnit("a_gusto"); got != "gramos" {
		t.Fatalf("expected cycle to wrap back to gramos, got %q", got)
	}
}

func TestCycleUnitUnknownRestartsAtGrams(t *testing.T) {
	t.Parallel()
	if got := service.CycleUnit("fanega"); got != "gramos" {
		t.Fatalf("expected unknown unit to restart cycle, got %q", got)
	}
}

func TestCycleUnitVisitsEveryUnitOnce(t *testing.T) {
	t.Parallel()
	units := service.CycleableUnits()
	seen := map[string]bool{}
	current := units[0]
	for range units {
		if seen[current] {
			t.Fatalf("unit %q visited twice before completing the cycle", current)
		}
		seen[current] = true
		current = service.CycleUnit(current)
	}
	if current != units[0] {
		t.Fatalf("expected full cycle to return to %q, got %q", units[0], current)
	}
	if len(seen) != len(units) {
		t.Fatalf("expected %d distinct units, saw %d", len(units), len(seen))
	}
}

func TestIsFreeUnit(t *testing.T) {
	t.Parallel()
	if !service.IsFreeUnit("a_gusto") {
		t.Fatalf("a_gusto should be free")
	}
	if !service.IsFreeUnit("  A_GUSTO ") {
		t.Fatalf("free unit check should normalize case and spacing")
	}
	if service.IsFreeUnit("gramos") {
		t.Fatalf("gramos should not be free")
	}
}
