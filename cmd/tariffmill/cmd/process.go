package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rezonia/tariffmill/internal/mapping"
	"github.com/rezonia/tariffmill/internal/model"
	"github.com/rezonia/tariffmill/internal/pipeline"
)

var (
	outputFile     string
	declaredTotal  string
	manufacturerID string
	profilePath    string
	tolerance      string
	quantityPlaces int32
)

var processCmd = &cobra.Command{
	Use:   "process <invoice.csv>",
	Short: "Process a commercial invoice CSV",
	Long: `Process a commercial invoice CSV against the reference database.

Each line is matched to its part record, classified by material content,
and split into derivative lines with values prorated by material ratio.
The computed total is reconciled against the declared invoice total.

Column names are resolved through a mapping profile; the default profile
expects part_number, description, quantity, net_weight and total_price.

Examples:
  tariffmill process invoice.csv --db parts.db --declared-total 12500.00
  tariffmill process invoice.csv --profile supplier-a.yaml -f table
  tariffmill process invoice.csv -o result.json`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	processCmd.Flags().StringVar(&declaredTotal, "declared-total", "", "Declared invoice total; defaults to the sum of line values")
	processCmd.Flags().StringVar(&manufacturerID, "manufacturer", "", "Manufacturer ID (MID) recorded on the run")
	processCmd.Flags().StringVar(&profilePath, "profile", "", "Column mapping profile (YAML)")
	processCmd.Flags().StringVar(&tolerance, "tolerance", "", "Reconciliation tolerance override")
	processCmd.Flags().Int32Var(&quantityPlaces, "quantity-places", 2, "Decimal places for prorated quantities")
}

func runProcess(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	profile := mapping.DefaultProfile()
	if profilePath != "" {
		profile, err = mapping.LoadProfile(profilePath)
		if err != nil {
			return err
		}
		printVerbose("Using mapping profile %q\n", profile.Name)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open invoice: %w", err)
	}
	defer f.Close()

	items, err := mapping.NewMapper(profile).Read(f)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no line items in %s", args[0])
	}
	printVerbose("Read %d line items\n", len(items))

	total, err := resolveDeclaredTotal(items)
	if err != nil {
		return err
	}

	opts := []pipeline.Option{pipeline.WithQuantityPlaces(quantityPlaces)}
	if domestic != "" {
		opts = append(opts, pipeline.WithDomesticCountry(domestic))
	}
	if tolerance != "" {
		tol, err := decimal.NewFromString(tolerance)
		if err != nil {
			return fmt.Errorf("invalid tolerance %q: %w", tolerance, err)
		}
		opts = append(opts, pipeline.WithTolerance(tol))
	}

	result := pipeline.NewPipeline(store, opts...).ProcessInvoice(items, total, manufacturerID)

	for _, w := range result.Warnings {
		printVerbose("Warning (line %d, %s): %s\n", w.Line, w.Kind, w.Message)
	}
	if !result.Reconciliation.Matched {
		fmt.Fprintf(os.Stderr, "Reconciliation mismatch: computed %s, declared %s (discrepancy %s)\n",
			result.Reconciliation.ComputedTotal, total, result.Reconciliation.Discrepancy)
	}

	return outputResult(result)
}

// resolveDeclaredTotal parses the --declared-total flag, falling back to
// the sum of line values when the invoice footer is not supplied.
func resolveDeclaredTotal(items []model.LineItem) (decimal.Decimal, error) {
	if declaredTotal != "" {
		total, err := decimal.NewFromString(strings.ReplaceAll(declaredTotal, ",", ""))
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid declared total %q: %w", declaredTotal, err)
		}
		return total, nil
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Value)
	}
	return total, nil
}

func outputResult(result *pipeline.Result) error {
	var writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	switch outputFormat {
	case "json":
		return outputJSON(writer, result)
	case "table":
		return outputTable(writer, result)
	case "csv":
		return outputCSV(writer, result)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputJSON(w *os.File, result *pipeline.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputTable(w *os.File, result *pipeline.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tPART\tMATERIAL\tCODE\tORIGIN\tVALUE\tFLAGS")
	fmt.Fprintln(tw, "----\t----\t--------\t----\t------\t-----\t-----")

	for _, line := range result.Lines {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			line.LineNumber,
			line.PartNumber,
			line.Material,
			line.DeclarationCode,
			line.Origin,
			line.Value.StringFixed(2),
			lineFlags(line),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	rec := result.Reconciliation
	status := "OK"
	if !rec.Matched {
		status = fmt.Sprintf("MISMATCH (%s)", rec.Discrepancy)
	}
	_, err := fmt.Fprintf(w, "\nComputed %s, declared %s: %s\n",
		rec.ComputedTotal.StringFixed(2), rec.DeclaredTotal.StringFixed(2), status)
	return err
}

func outputCSV(w *os.File, result *pipeline.Result) error {
	fmt.Fprintln(w, "line_number,part_number,description,hts_code,mid,material,declaration_code,origin,value,quantity,net_weight,flags")

	for _, line := range result.Lines {
		fmt.Fprintf(w, "%d,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s\n",
			line.LineNumber,
			escapeCSV(line.PartNumber),
			escapeCSV(line.Description),
			line.HTSCode,
			line.MID,
			line.Material,
			line.DeclarationCode,
			line.Origin,
			line.Value.StringFixed(2),
			line.Quantity.String(),
			line.NetWeight.String(),
			lineFlags(line),
		)
	}

	return nil
}

func lineFlags(line model.DerivativeLine) string {
	var flags []string
	if line.Excluded {
		flags = append(flags, "excluded")
	}
	if line.Unmatched {
		flags = append(flags, "unmatched")
	}
	if line.NeedsReview {
		flags = append(flags, "needs-review")
	}
	if line.Failed {
		flags = append(flags, "failed")
	}
	return strings.Join(flags, ";")
}

func escapeCSV(s string) string {
	if strings.Contains(s, ",") || strings.Contains(s, "\"") || strings.Contains(s, "\n") {
		return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
	}
	return s
}
