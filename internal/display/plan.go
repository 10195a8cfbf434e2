// Package display renders plan summaries for the terminal with lipgloss.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TitogeremitoDev/mealplan-cli/internal/model"
	"github.com/TitogeremitoDev/mealplan-cli/internal/service"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#bae6fd"))

	mealStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#a7f3d0"))

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	kcalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	macroStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	degradedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	freeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Italic(true)
)

// RenderPlan formats a full plan summary: meals, options, food rows, and
// aggregated totals.
func RenderPlan(s *service.PlanSummary) string {
	var b strings.Builder

	header := s.Plan.Name
	if s.Plan.Client != "" {
		header += " — " + s.Plan.Client
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(renderMacros(s.Totals))
	b.WriteString("\n")

	for _, meal := range s.Meals {
		b.WriteString("\n")
		b.WriteString(mealStyle.Render(meal.Meal.Name))
		b.WriteString("\n")
		for _, opt := range meal.Options {
			b.WriteString(optionStyle.Render(fmt.Sprintf("  %s", opt.Option.Name)))
			b.WriteString("  ")
			b.WriteString(renderMacros(opt.Totals))
			b.WriteString("\n")
			for _, food := range opt.Foods {
				b.WriteString(renderFoodRow(food, "    "))
				for _, child := range food.Children {
					b.WriteString(renderFoodRow(child, "      "))
				}
			}
		}
	}
	return b.String()
}

// RenderFood formats one food entry line.
func RenderFood(food model.FoodEntry) string {
	return strings.TrimRight(renderFoodRow(food, ""), "\n")
}

func renderFoodRow(food model.FoodEntry, indent string) string {
	portion := service.FormatAmountWithUnit(food.Amount, food.Unit)
	if service.IsFreeUnit(food.Unit) {
		portion = freeStyle.Render(portion)
	}
	line := fmt.Sprintf("%s%s  %s  %s", indent, food.Name, portion, renderMacros(food.Macros))
	if food.Degraded {
		line += "  " + degradedStyle.Render("sin datos")
	}
	return line + "\n"
}

func renderMacros(m model.Macros) string {
	return fmt.Sprintf("%s %s",
		kcalStyle.Render(fmt.Sprintf("%d kcal", m.Kcal)),
		macroStyle.Render(fmt.Sprintf("P:%.1f C:%.1f G:%.1f", m.ProteinG, m.CarbsG, m.FatG)),
	)
}
