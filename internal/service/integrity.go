package service

import (
	"database/sql"
	"fmt"
	"math"
)

type DoctorReport struct {
	DriftedRecipes  int `json:"drifted_recipes"`
	OrphanChildren  int `json:"orphan_children"`
	DegradedEntries int `json:"degraded_entries"`
	RepairedRecipes int `json:"repaired_recipes,omitempty"`
}

// macroSumTolerance allows for the 1-decimal rounding of child macros.
const macroSumTolerance = 0.051

// RunDoctor scans the plan document for drift: composite recipes whose
// stored totals no longer equal the sum of their children, children whose
// parent is not a composite entry, and entries in the degraded state. With
// repair set, drifted recipe totals are rewritten from the re-sum.
func RunDoctor(db *sql.DB, repair bool) (DoctorReport, error) {
	var report DoctorReport

	parents, err := compositeIDs(db)
	if err != nil {
		return report, err
	}
	for _, id := range parents {
		children, err := loadChildren(db, id)
		if err != nil {
			return report, err
		}
		expected := SumChildren(children)

		var kcal int
		var protein, carbs, fat float64
		if err := db.QueryRow(`SELECT kcal, protein_g, carbs_g, fat_g FROM foods WHERE id = ?`, id).
			Scan(&kcal, &protein, &carbs, &fat); err != nil {
			return report, fmt.Errorf("load recipe totals %d: %w", id, err)
		}

		if kcal == expected.Kcal &&
			math.Abs(protein-expected.ProteinG) < macroSumTolerance &&
			math.Abs(carbs-expected.CarbsG) < macroSumTolerance &&
			math.Abs(fat-expected.FatG) < macroSumTolerance {
			continue
		}
		report.DriftedRecipes++
		if repair {
			if err := resumParent(db, id); err != nil {
				return report, err
			}
			report.RepairedRecipes++
		}
	}

	if err := db.QueryRow(`
SELECT COUNT(1)
FROM foods child
JOIN foods parent ON parent.id = child.parent_id
WHERE parent.kind != 'composite'
`).Scan(&report.OrphanChildren); err != nil {
		return report, fmt.Errorf("count orphan children: %w", err)
	}

	if err := db.QueryRow(`SELECT COUNT(1) FROM foods WHERE degraded = 1`).Scan(&report.DegradedEntries); err != nil {
		return report, fmt.Errorf("count degraded entries: %w", err)
	}

	return report, nil
}

func compositeIDs(db *sql.DB) ([]int64, error) {
	rows, err := db.Query(`SELECT id FROM foods WHERE kind = 'composite' ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list composite recipes: %w", err)
	}
	defer rows.Close()
	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan composite id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate composite ids: %w", err)
	}
	return ids, nil
}
