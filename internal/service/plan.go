package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/TitogeremitoDev/mealplan-cli/internal/model"
)

type PlanInput struct {
	Name   string
	Client string
	Notes  string
}

func CreatePlan(db *sql.DB, in PlanInput) (int64, error) {
	if strings.TrimSpace(in.Name) == "" {
		return 0, fmt.Errorf("plan name is required")
	}
	res, err := db.Exec(`
INSERT INTO plans(name, client, notes)
VALUES(?, ?, ?)
`, strings.TrimSpace(in.Name), strings.TrimSpace(in.Client), strings.TrimSpace(in.Notes))
	if err != nil {
		return 0, fmt.Errorf("create plan: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve plan id: %w", err)
	}
	return id, nil
}

func ListPlans(db *sql.DB) ([]model.Plan, error) {
	rows, err := db.Query(`
SELECT id, name, client, notes, created_at, updated_at
FROM plans
ORDER BY name
`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	items := make([]model.Plan, 0)
	for rows.Next() {
		var p model.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Client, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plans: %w", err)
	}
	return items, nil
}

func ResolvePlan(db *sql.DB, idOrName string) (*model.Plan, error) {
	idOrName = strings.TrimSpace(idOrName)
	if idOrName == "" {
		return nil, fmt.Errorf("plan identifier is required")
	}
	var row *sql.Row
	if id, err := parseIDLoose(idOrName); err == nil {
		row = db.QueryRow(`
SELECT id, name, client, notes, created_at, updated_at
FROM plans WHERE id = ?
`, id)
	} else {
		row = db.QueryRow(`
SELECT id, name, client, notes, created_at, updated_at
FROM plans WHERE LOWER(name) = ?
`, strings.ToLower(idOrName))
	}
	var p model.Plan
	if err := row.Scan(&p.ID, &p.Name, &p.Client, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan %q not found", idOrName)
		}
		return nil, fmt.Errorf("resolve plan %q: %w", idOrName, err)
	}
	return &p, nil
}

func DeletePlan(db *sql.DB, idOrName string) error {
	plan, err := ResolvePlan(db, idOrName)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`DELETE FROM plans WHERE id = ?`, plan.ID); err != nil {
		return fmt.Errorf("delete plan %d: %w", plan.ID, err)
	}
	return nil
}

func AddMeal(db *sql.DB, planIdentifier, name string) (int64, error) {
	plan, err := ResolvePlan(db, planIdentifier)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("meal name is required")
	}
	res, err := db.Exec(`
INSERT INTO meals(plan_id, name, position)
VALUES(?, ?, (SELECT IFNULL(MAX(position), 0) + 1 FROM meals WHERE plan_id = ?))
`, plan.ID, strings.TrimSpace(name), plan.ID)
	if err != nil {
		return 0, fmt.Errorf("add meal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve meal id: %w", err)
	}
	return id, nil
}

func ListMeals(db *sql.DB, planIdentifier string) ([]model.Meal, error) {
	plan, err := ResolvePlan(db, planIdentifier)
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(`
SELECT id, plan_id, name, position, created_at, updated_at
FROM meals
WHERE plan_id = ?
ORDER BY position, id
`, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	items := make([]model.Meal, 0)
	for rows.Next() {
		var m model.Meal
		if err := rows.Scan(&m.ID, &m.PlanID, &m.Name, &m.Position, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meals: %w", err)
	}
	return items, nil
}

func DeleteMeal(db *sql.DB, mealID int64) error {
	if mealID <= 0 {
		return fmt.Errorf("meal id must be > 0")
	}
	res, err := db.Exec(`DELETE FROM meals WHERE id = ?`, mealID)
	if err != nil {
		return fmt.Errorf("delete meal %d: %w", mealID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("meal %d not found", mealID)
	}
	return nil
}

func AddOption(db *sql.DB, mealID int64, name string) (int64, error) {
	if mealID <= 0 {
		return 0, fmt.Errorf("meal id must be > 0")
	}
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("option name is required")
	}
	res, err := db.Exec(`
INSERT INTO meal_options(meal_id, name, position)
VALUES(?, ?, (SELECT IFNULL(MAX(position), 0) + 1 FROM meal_options WHERE meal_id = ?))
`, mealID, strings.TrimSpace(name), mealID)
	if err != nil {
		return 0, fmt.Errorf("add meal option: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve meal option id: %w", err)
	}
	return id, nil
}

func ListOptions(db *sql.DB, mealID int64) ([]model.MealOption, error) {
	if mealID <= 0 {
		return nil, fmt.Errorf("meal id must be > 0")
	}
	rows, err := db.Query(`
SELECT id, meal_id, name, position, created_at, updated_at
FROM meal_options
WHERE meal_id = ?
ORDER BY position, id
`, mealID)
	if err != nil {
		return nil, fmt.Errorf("list meal options: %w", err)
	}
	defer rows.Close()

	items := make([]model.MealOption, 0)
	for rows.Next() {
		var o model.MealOption
		if err := rows.Scan(&o.ID, &o.MealID, &o.Name, &o.Position, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan meal option: %w", err)
		}
		items = append(items, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal options: %w", err)
	}
	return items, nil
}

func DeleteOption(db *sql.DB, optionID int64) error {
	if optionID <= 0 {
		return fmt.Errorf("option id must be > 0")
	}
	res, err := db.Exec(`DELETE FROM meal_options WHERE id = ?`, optionID)
	if err != nil {
		return fmt.Errorf("delete meal option %d: %w", optionID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("meal option %d not found", optionID)
	}
	return nil
}

func parseIDLoose(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("not a valid id")
	}
	return id, nil
}
