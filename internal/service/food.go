package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/TitogeremitoDev/mealplan-cli/internal/model"
)

type FoodInput struct {
	Name    string
	Amount  float64
	Unit    string
	Per100g *model.Nutrients
	Serving *model.ServingSize
	// Macros overrides the per-100g calculation when the caller already has
	// absolute values (AI imports, combos saved with their portions).
	Macros *model.Macros
}

const foodColumns = `
id, option_id, parent_id, position, kind, name, amount, unit,
kcal, protein_g, carbs_g, fat_g,
per100g_kcal, per100g_protein_g, per100g_carbs_g, per100g_fat_g,
serving_unit, serving_weight_g,
snapshot_basis, snapshot_kcal, snapshot_protein_g, snapshot_carbs_g, snapshot_fat_g,
from_risky, degraded, created_at, updated_at`

// AddFood inserts a simple food entry into a meal option. When no absolute
// macros are supplied they are derived from the per-100g profile.
func AddFood(db *sql.DB, optionID int64, in FoodInput) (int64, error) {
	if err := validateFoodInput(optionID, in); err != nil {
		return 0, err
	}
	entry := entryFromInput(optionID, in)
	return insertFood(db, &entry, nil)
}

// AddCompositeFood inserts a composite recipe with its child ingredients.
// The parent's macros are the sum of the children; its amount is the
// serving multiplier, starting at 1 unless the caller says otherwise.
func AddCompositeFood(db *sql.DB, optionID int64, name string, servings float64, children []FoodInput) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("recipe name is required")
	}
	if servings <= 0 {
		servings = 1
	}
	childEntries := make([]model.FoodEntry, 0, len(children))
	for _, in := range children {
		if err := validateFoodInput(optionID, in); err != nil {
			return 0, err
		}
		childEntries = append(childEntries, entryFromInput(optionID, in))
	}

	parent := model.FoodEntry{
		OptionID: optionID,
		Kind:     model.KindComposite,
		Name:     strings.TrimSpace(name),
		Amount:   servings,
		Unit:     "racion",
		Macros:   SumChildren(childEntries),
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin add recipe tx: %w", err)
	}
	parentID, err := insertFood(tx, &parent, nil)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	for i := range childEntries {
		childEntries[i].ParentID = &parentID
		if _, err := insertFood(tx, &childEntries[i], &parentID); err != nil {
			_ = tx.Rollback()
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit add recipe tx: %w", err)
	}
	return parentID, nil
}

// AddRecipeIngredient appends a child ingredient to an existing composite
// recipe and re-sums the parent totals.
func AddRecipeIngredient(db *sql.DB, recipeID int64, in FoodInput) (int64, error) {
	parent, err := GetFood(db, recipeID)
	if err != nil {
		return 0, err
	}
	if parent.Kind != model.KindComposite {
		return 0, fmt.Errorf("food %d is not a composite recipe", recipeID)
	}
	if err := validateFoodInput(parent.OptionID, in); err != nil {
		return 0, err
	}
	entry := entryFromInput(parent.OptionID, in)
	entry.ParentID = &parent.ID
	id, err := insertFood(db, &entry, &parent.ID)
	if err != nil {
		return 0, err
	}
	if err := resumParent(db, parent.ID); err != nil {
		return 0, err
	}
	return id, nil
}

// GetFood loads a food entry; composite entries come back with their
// children in insertion order.
func GetFood(db *sql.DB, foodID int64) (*model.FoodEntry, error) {
	if foodID <= 0 {
		return nil, fmt.Errorf("food id must be > 0")
	}
	row := db.QueryRow(`SELECT `+foodColumns+` FROM foods WHERE id = ?`, foodID)
	entry, err := scanFood(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("food %d not found", foodID)
		}
		return nil, fmt.Errorf("load food %d: %w", foodID, err)
	}
	if entry.Kind == model.KindComposite {
		children, err := loadChildren(db, entry.ID)
		if err != nil {
			return nil, err
		}
		entry.Children = children
	}
	return entry, nil
}

// ListOptionFoods returns the top-level entries of a meal option, children
// attached to their composite parents.
func ListOptionFoods(db *sql.DB, optionID int64) ([]model.FoodEntry, error) {
	if optionID <= 0 {
		return nil, fmt.Errorf("option id must be > 0")
	}
	rows, err := db.Query(`
SELECT `+foodColumns+`
FROM foods
WHERE option_id = ? AND parent_id IS NULL
ORDER BY position, id
`, optionID)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	defer rows.Close()

	items := make([]model.FoodEntry, 0)
	for rows.Next() {
		entry, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		items = append(items, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}
	for i := range items {
		if items[i].Kind != model.KindComposite {
			continue
		}
		children, err := loadChildren(db, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Children = children
	}
	return items, nil
}

func DeleteFood(db *sql.DB, foodID int64) error {
	if foodID <= 0 {
		return fmt.Errorf("food id must be > 0")
	}
	entry, err := GetFood(db, foodID)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`DELETE FROM foods WHERE id = ?`, foodID); err != nil {
		return fmt.Errorf("delete food %d: %w", foodID, err)
	}
	if entry.ParentID != nil {
		return resumParent(db, *entry.ParentID)
	}
	return nil
}

// EditFoodPortion applies an amount/unit edit to a stored entry through the
// density-preserving protocol and persists the result. Composite parents
// take amount edits as serving-multiplier scaling. Invalid input is a
// silent no-op, mirroring lenient form-input behavior; changed reports
// whether anything was written.
func EditFoodPortion(db *sql.DB, foodID int64, edit PortionEdit) (bool, error) {
	entry, err := GetFood(db, foodID)
	if err != nil {
		return false, err
	}

	var changed bool
	if entry.Kind == model.KindComposite {
		if edit.Amount == nil {
			return false, nil
		}
		changed = ScaleComposite(entry, *edit.Amount)
	} else {
		changed = ApplyPortionEdit(entry, edit)
	}
	if !changed {
		return false, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin edit tx: %w", err)
	}
	if err := updateFood(tx, entry); err != nil {
		_ = tx.Rollback()
		return false, err
	}
	for i := range entry.Children {
		if err := updateFood(tx, &entry.Children[i]); err != nil {
			_ = tx.Rollback()
			return false, err
		}
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit edit tx: %w", err)
	}

	if entry.ParentID != nil {
		if err := resumParent(db, *entry.ParentID); err != nil {
			return true, err
		}
	}
	return true, nil
}

// CycleFoodUnit advances an entry to the next unit in the cycling order,
// going through the same edit protocol a manual unit change would.
func CycleFoodUnit(db *sql.DB, foodID int64) (string, error) {
	entry, err := GetFood(db, foodID)
	if err != nil {
		return "", err
	}
	if entry.Kind == model.KindComposite {
		return "", fmt.Errorf("composite recipe %d has no cycleable unit", foodID)
	}
	next := CycleUnit(entry.Unit)
	if _, err := EditFoodPortion(db, foodID, PortionEdit{Unit: next}); err != nil {
		return "", err
	}
	return next, nil
}

// resumParent recomputes a composite parent's totals as the exact sum of
// its stored children.
func resumParent(db *sql.DB, parentID int64) error {
	children, err := loadChildren(db, parentID)
	if err != nil {
		return err
	}
	total := SumChildren(children)
	_, err = db.Exec(`
UPDATE foods
SET kcal = ?, protein_g = ?, carbs_g = ?, fat_g = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, total.Kcal, total.ProteinG, total.CarbsG, total.FatG, parentID)
	if err != nil {
		return fmt.Errorf("update recipe totals %d: %w", parentID, err)
	}
	return nil
}

func loadChildren(db *sql.DB, parentID int64) ([]model.FoodEntry, error) {
	rows, err := db.Query(`
SELECT `+foodColumns+`
FROM foods
WHERE parent_id = ?
ORDER BY position, id
`, parentID)
	if err != nil {
		return nil, fmt.Errorf("load recipe ingredients: %w", err)
	}
	defer rows.Close()

	items := make([]model.FoodEntry, 0)
	for rows.Next() {
		entry, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		items = append(items, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe ingredients: %w", err)
	}
	return items, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertFood(db execer, e *model.FoodEntry, parentID *int64) (int64, error) {
	per100gKcal, per100gProtein, per100gCarbs, per100gFat := per100gColumns(e.Per100g)
	servingUnit, servingWeight := servingColumns(e.Serving)
	basis, snapKcal, snapProtein, snapCarbs, snapFat := snapshotColumns(e.Snapshot)

	res, err := db.Exec(`
INSERT INTO foods(
  option_id, parent_id, position, kind, name, amount, unit,
  kcal, protein_g, carbs_g, fat_g,
  per100g_kcal, per100g_protein_g, per100g_carbs_g, per100g_fat_g,
  serving_unit, serving_weight_g,
  snapshot_basis, snapshot_kcal, snapshot_protein_g, snapshot_carbs_g, snapshot_fat_g,
  from_risky, degraded
)
VALUES(?, ?, (SELECT IFNULL(MAX(position), 0) + 1 FROM foods WHERE option_id = ?), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, e.OptionID, parentID, e.OptionID, string(e.Kind), e.Name, e.Amount, e.Unit,
		e.Macros.Kcal, e.Macros.ProteinG, e.Macros.CarbsG, e.Macros.FatG,
		per100gKcal, per100gProtein, per100gCarbs, per100gFat,
		servingUnit, servingWeight,
		basis, snapKcal, snapProtein, snapCarbs, snapFat,
		boolToInt(e.FromRisky), boolToInt(e.Degraded))
	if err != nil {
		return 0, fmt.Errorf("insert food %q: %w", e.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve food id: %w", err)
	}
	e.ID = id
	return id, nil
}

func updateFood(db execer, e *model.FoodEntry) error {
	per100gKcal, per100gProtein, per100gCarbs, per100gFat := per100gColumns(e.Per100g)
	servingUnit, servingWeight := servingColumns(e.Serving)
	basis, snapKcal, snapProtein, snapCarbs, snapFat := snapshotColumns(e.Snapshot)

	res, err := db.Exec(`
UPDATE foods
SET amount = ?, unit = ?, kcal = ?, protein_g = ?, carbs_g = ?, fat_g = ?,
    per100g_kcal = ?, per100g_protein_g = ?, per100g_carbs_g = ?, per100g_fat_g = ?,
    serving_unit = ?, serving_weight_g = ?,
    snapshot_basis = ?, snapshot_kcal = ?, snapshot_protein_g = ?, snapshot_carbs_g = ?, snapshot_fat_g = ?,
    from_risky = ?, degraded = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, e.Amount, e.Unit, e.Macros.Kcal, e.Macros.ProteinG, e.Macros.CarbsG, e.Macros.FatG,
		per100gKcal, per100gProtein, per100gCarbs, per100gFat,
		servingUnit, servingWeight,
		basis, snapKcal, snapProtein, snapCarbs, snapFat,
		boolToInt(e.FromRisky), boolToInt(e.Degraded), e.ID)
	if err != nil {
		return fmt.Errorf("update food %d: %w", e.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("food %d not found", e.ID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFood(row rowScanner) (*model.FoodEntry, error) {
	var e model.FoodEntry
	var kind string
	var parentID sql.NullInt64
	var per100gKcal, per100gProtein, per100gCarbs, per100gFat sql.NullFloat64
	var servingUnit string
	var servingWeight float64
	var basis string
	var snapKcal, snapProtein, snapCarbs, snapFat float64
	var fromRisky, degraded int

	if err := row.Scan(
		&e.ID, &e.OptionID, &parentID, &e.Position, &kind, &e.Name, &e.Amount, &e.Unit,
		&e.Macros.Kcal, &e.Macros.ProteinG, &e.Macros.CarbsG, &e.Macros.FatG,
		&per100gKcal, &per100gProtein, &per100gCarbs, &per100gFat,
		&servingUnit, &servingWeight,
		&basis, &snapKcal, &snapProtein, &snapCarbs, &snapFat,
		&fromRisky, &degraded, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Kind = model.EntryKind(kind)
	if parentID.Valid {
		e.ParentID = &parentID.Int64
	}
	if per100gKcal.Valid {
		e.Per100g = &model.Nutrients{
			Kcal:     per100gKcal.Float64,
			ProteinG: per100gProtein.Float64,
			CarbsG:   per100gCarbs.Float64,
			FatG:     per100gFat.Float64,
		}
	}
	if servingWeight > 0 && servingUnit != "" {
		e.Serving = &model.ServingSize{Unit: servingUnit, WeightG: servingWeight}
	}
	if basis != "" {
		e.Snapshot = &model.DensitySnapshot{
			Basis: model.SnapshotBasis(basis),
			Nutrients: model.Nutrients{
				Kcal:     snapKcal,
				ProteinG: snapProtein,
				CarbsG:   snapCarbs,
				FatG:     snapFat,
			},
		}
	}
	e.FromRisky = fromRisky != 0
	e.Degraded = degraded != 0
	return &e, nil
}

func entryFromInput(optionID int64, in FoodInput) model.FoodEntry {
	entry := model.FoodEntry{
		OptionID: optionID,
		Kind:     model.KindSimple,
		Name:     strings.TrimSpace(in.Name),
		Amount:   in.Amount,
		Unit:     normalizeUnitKey(in.Unit),
		Per100g:  in.Per100g,
		Serving:  in.Serving,
	}
	if IsFreeUnit(entry.Unit) {
		entry.Amount = 0
		return entry
	}
	if in.Macros != nil {
		entry.Macros = *in.Macros
	} else if in.Per100g != nil {
		entry.Macros = CalculateMacros(in.Amount, entry.Unit, in.Per100g, entry.Name, in.Serving)
	}
	return entry
}

func validateFoodInput(optionID int64, in FoodInput) error {
	if optionID <= 0 {
		return fmt.Errorf("option id must be > 0")
	}
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("food name is required")
	}
	if err := validateNonNegativeFloat("amount", in.Amount); err != nil {
		return err
	}
	if strings.TrimSpace(in.Unit) == "" {
		return fmt.Errorf("food unit is required")
	}
	if in.Macros != nil {
		if err := validateNonNegativeInt("calories", in.Macros.Kcal); err != nil {
			return err
		}
		if err := validateNonNegativeFloat("protein", in.Macros.ProteinG); err != nil {
			return err
		}
		if err := validateNonNegativeFloat("carbs", in.Macros.CarbsG); err != nil {
			return err
		}
		if err := validateNonNegativeFloat("fat", in.Macros.FatG); err != nil {
			return err
		}
	}
	return nil
}

func per100gColumns(n *model.Nutrients) (any, any, any, any) {
	if n == nil {
		return nil, nil, nil, nil
	}
	return n.Kcal, n.ProteinG, n.CarbsG, n.FatG
}

func servingColumns(s *model.ServingSize) (string, float64) {
	if s == nil {
		return "", 0
	}
	return s.Unit, s.WeightG
}

func snapshotColumns(s *model.DensitySnapshot) (string, float64, float64, float64, float64) {
	if s == nil {
		return "", 0, 0, 0, 0
	}
	return string(s.Basis), s.Nutrients.Kcal, s.Nutrients.ProteinG, s.Nutrients.CarbsG, s.Nutrients.FatG
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
