package mealplan

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TitogeremitoDev/mealplan-cli/internal/app"
	"github.com/TitogeremitoDev/mealplan-cli/internal/logger"
)

var (
	dbPath  string
	verbose bool
)

var log = logger.New(logger.LevelNormal, nil)

var rootCmd = &cobra.Command{
	Use:   "mealplan",
	Short: "mealplan edits coaching meal plans from your terminal",
	Long:  "mealplan is a local-first meal-plan authoring CLI with unit-aware portion editing, composite recipes, and macro aggregation.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		app.LoadEnv()
		if verbose {
			log.SetLevel(logger.LevelVerbose)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}
