package mealplan

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/TitogeremitoDev/mealplan-cli/internal/service"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mealplan local configuration",
}

var (
	cfgCatalogBaseURL string
	cfgCatalogAPIKey  string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			updates := 0
			if cmd.Flags().Changed("catalog-url") {
				if err := service.SetConfig(sqldb, service.ConfigCatalogBaseURL, cfgCatalogBaseURL); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("catalog-api-key") {
				if err := service.SetConfig(sqldb, service.ConfigCatalogAPIKey, cfgCatalogAPIKey); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			cfg, err := service.ListConfig(sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(cfg))
			for k := range cfg {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, cfg[k])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)

	configSetCmd.Flags().StringVar(&cfgCatalogBaseURL, "catalog-url", "", "Food catalog base URL")
	configSetCmd.Flags().StringVar(&cfgCatalogAPIKey, "catalog-api-key", "", "Food catalog API key")
}
