package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "List the configured declaration codes",
	Long: `List the declaration code table, one code per material, in
material priority order.

Examples:
  tariffmill codes --db parts.db
  tariffmill codes --db parts.db -f table`,
	Args: cobra.NoArgs,
	RunE: runCodes,
}

func init() {
	rootCmd.AddCommand(codesCmd)
}

func runCodes(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	codes := store.Snapshot().Codes()

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(codes)
	case "table":
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "MATERIAL\tCODE\tDESCRIPTION")
		for _, c := range codes {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Material, c.Code, c.Description)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}
