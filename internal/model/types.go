package model

import "time"

// EntryKind discriminates simple food entries from composite recipes.
type EntryKind string

const (
	KindSimple    EntryKind = "simple"
	KindComposite EntryKind = "composite"
)

// SnapshotBasis says how a density snapshot is normalized.
type SnapshotBasis string

const (
	BasisPerGram SnapshotBasis = "per_gram"
	BasisPer100g SnapshotBasis = "per_100g"
)

// Nutrients is a reference profile: per-100g for catalog data, per-gram
// inside a density snapshot. Never store portion-absolute values here.
type Nutrients struct {
	Kcal     float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

// Macros are the absolute values computed for an actual portion.
// Calories are kept as a whole number, the rest to one decimal place.
type Macros struct {
	Kcal     int
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

// ServingSize describes what "1 unit" of a specific food weighs in grams.
type ServingSize struct {
	Unit    string
	WeightG float64
}

// DensitySnapshot preserves a food's nutrient density across a transition
// to the free (unweighed) unit so the original profile can be restored.
type DensitySnapshot struct {
	Basis     SnapshotBasis
	Nutrients Nutrients
}

type FoodEntry struct {
	ID       int64
	OptionID int64
	ParentID *int64
	Position int
	Kind     EntryKind
	Name     string
	Amount   float64
	Unit     string
	Macros   Macros
	Per100g  *Nutrients
	Serving  *ServingSize
	Snapshot *DensitySnapshot
	// FromRisky marks that the last transition came from the free unit or
	// an ambiguous factor-1 conversion, so the next amount edit defines a
	// new weight instead of rescaling macros.
	FromRisky bool
	// Degraded marks a free-unit restoration that had neither a snapshot
	// nor a per-100g reference and therefore lost its nutrition data.
	Degraded  bool
	Children  []FoodEntry
	CreatedAt time.Time
	UpdatedAt time.Time
}

type MealOption struct {
	ID        int64
	MealID    int64
	Name      string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Meal struct {
	ID        int64
	PlanID    int64
	Name      string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Plan struct {
	ID        int64
	Name      string
	Client    string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
