package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the menu the server would load",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("xlsx")
		if path == "" {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path = cfg.CatalogXLSX
		}
		c, err := loadCatalog(path)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, it := range c.Items() {
			fmt.Fprintf(out, "%s\n", it.Name)
			for _, sec := range c.Sections(it) {
				fmt.Fprintf(out, "  %s: %s\n", sec.Title, strings.Join(sec.Toppings, ", "))
			}
		}
		fmt.Fprintf(out, "%d item(s)\n", c.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().String("xlsx", "", "validate and print this workbook instead of CATALOG_XLSX")
}
