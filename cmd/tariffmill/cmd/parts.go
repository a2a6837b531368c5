package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/tariffmill/internal/model"
)

var searchTerm string

var partsCmd = &cobra.Command{
	Use:   "parts [part-number]",
	Short: "Look up parts in the reference database",
	Long: `Look up a part record by exact part number, or search by substring.

Examples:
  tariffmill parts BTT-4100 --db parts.db
  tariffmill parts --search bench --db parts.db -f table`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParts,
}

func init() {
	rootCmd.AddCommand(partsCmd)

	partsCmd.Flags().StringVar(&searchTerm, "search", "", "Search part numbers and descriptions by substring")
}

func runParts(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && searchTerm == "" {
		return fmt.Errorf("provide a part number or --search term")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	snap := store.Snapshot()

	var parts []model.PartRecord
	if len(args) == 1 {
		part, ok := snap.Part(args[0])
		if !ok {
			return fmt.Errorf("part %q not found", args[0])
		}
		parts = []model.PartRecord{part}
	} else {
		parts = snap.SearchParts(searchTerm)
		if len(parts) == 0 {
			return fmt.Errorf("no parts matching %q", searchTerm)
		}
	}

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(parts)
	case "table":
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "PART\tHTS\tSTEEL\tALUMINUM\tCOPPER\tWOOD\tAUTO\tDESCRIPTION")
		for _, p := range parts {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				p.PartNumber, p.HTSCode,
				p.SteelRatio.String(), p.AluminumRatio.String(), p.CopperRatio.String(),
				p.WoodRatio.String(), p.AutomotiveRatio.String(),
				p.Description,
			)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}
