package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/TitogeremitoDev/mealplan-cli/internal/db"
	"github.com/TitogeremitoDev/mealplan-cli/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mealplan.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

// newTestOption creates a plan/meal/option chain and returns the option id.
func newTestOption(t *testing.T, sqldb *sql.DB) int64 {
	t.Helper()
	if _, err := service.CreatePlan(sqldb, service.PlanInput{Name: "Volumen octubre"}); err != nil {
		t.Fatalf("create plan: %v", err)
	}
	mealID, err := service.AddMeal(sqldb, "Volumen octubre", "Desayuno")
	if err != nil {
		t.Fatalf("add meal: %v", err)
	}
	optionID, err := service.AddOption(sqldb, mealID, "Opción 1")
	if err != nil {
		t.Fatalf("add option: %v", err)
	}
	return optionID
}
