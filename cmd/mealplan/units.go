package mealplan

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/TitogeremitoDev/mealplan-cli/internal/service"
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "Inspect the unit registry",
}

var unitsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cycleable units with gram factors",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "KEY\tLABEL\tNAME\tGRAMS/UNIT")
		for _, key := range service.CycleableUnits() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.0f\n",
				key, service.UnitLabel(key), service.UnitLabelLong(key), service.UnitFactor(key))
		}
	},
}

var unitsFormatCmd = &cobra.Command{
	Use:   "format <amount> <unit>",
	Short: "Format an amount with its unit, pluralized",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), service.FormatAmountWithUnit(amount, args[1]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unitsCmd)
	unitsCmd.AddCommand(unitsListCmd)
	unitsCmd.AddCommand(unitsFormatCmd)
}
