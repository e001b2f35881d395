package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"calckit/internal/calculators"
	"calckit/internal/export"
	"calckit/internal/finance"
	"calckit/internal/prefs"
	"calckit/internal/registry"
	"calckit/internal/tables"
	"calckit/pkg/api"
)

var (
	// Global flags
	serverURL     string
	overridesPath string

	// run flags
	inputJSON string
	inputFile string

	// export flags
	exportOut       string
	exportTitle     string
	exportPrincipal float64
	exportRatePct   float64
	exportYears     int
	exportTableID   string
	exportAmount    float64
	exportCurrency  string
)

var rootCmd = &cobra.Command{
	Use:   "calckit",
	Short: "Typed calculator engine: catalog, HTTP API, saved state, workbook export",
	Long: `calckit hosts a catalog of small, pure calculators (mortgage, 401k,
transaction taxes, TDEE, IBU, ...) behind stable slugs. Every calculator
takes JSON input over defaults and returns a typed JSON result.

Run calculators locally, or point --server at a running instance to go
through its HTTP API.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the calculator catalog",
	RunE:  runList,
}

var runCmd = &cobra.Command{
	Use:   "run <slug>",
	Short: "Run one calculator and print its result",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalculator,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export calculation workbooks",
}

var exportAmortizationCmd = &cobra.Command{
	Use:   "amortization",
	Short: "Export an amortization schedule workbook",
	RunE:  runExportAmortization,
}

var exportBracketsCmd = &cobra.Command{
	Use:   "brackets",
	Short: "Export a bracket breakdown workbook",
	RunE:  runExportBrackets,
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Inspect bracket tables",
}

var tablesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the bracket table catalog",
	RunE:  runTablesList,
}

var tablesValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a YAML override file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTablesValidate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Base URL of a calckit server (default: run in process)")
	rootCmd.PersistentFlags().StringVar(&overridesPath, "overrides", "", "YAML bracket table overrides to load")

	runCmd.Flags().StringVar(&inputJSON, "input", "", "Input JSON (default: calculator defaults)")
	runCmd.Flags().StringVar(&inputFile, "input-file", "", "Path to a file with input JSON")

	exportAmortizationCmd.Flags().Float64Var(&exportPrincipal, "principal", 300000, "Loan principal")
	exportAmortizationCmd.Flags().Float64Var(&exportRatePct, "rate", 6.5, "Annual interest rate, percent")
	exportAmortizationCmd.Flags().IntVar(&exportYears, "years", 30, "Loan term in years")
	exportAmortizationCmd.Flags().StringVar(&exportTitle, "title", "", "Workbook title")
	exportAmortizationCmd.Flags().StringVar(&exportOut, "out", "", "Output path (default: reports/amortization.xlsx)")
	exportAmortizationCmd.Flags().StringVar(&exportCurrency, "currency", "USD", "Currency label")

	exportBracketsCmd.Flags().StringVar(&exportTableID, "table", tables.UKIncome2024, "Bracket table ID")
	exportBracketsCmd.Flags().Float64Var(&exportAmount, "amount", 50000, "Amount to assess")
	exportBracketsCmd.Flags().StringVar(&exportOut, "out", "", "Output path (default: reports/brackets.xlsx)")
	exportBracketsCmd.Flags().StringVar(&exportCurrency, "currency", "USD", "Currency label")

	exportCmd.AddCommand(exportAmortizationCmd)
	exportCmd.AddCommand(exportBracketsCmd)
	tablesCmd.AddCommand(tablesListCmd)
	tablesCmd.AddCommand(tablesValidateCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(tablesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLocalCatalog() (*tables.Catalog, error) {
	cat := tables.Builtin()
	if overridesPath != "" {
		if err := cat.LoadOverrides(overridesPath); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

func newLocalRegistry() (*registry.Registry, error) {
	cat, err := newLocalCatalog()
	if err != nil {
		return nil, err
	}
	reg := registry.New()
	if err := calculators.RegisterAll(reg, cat); err != nil {
		return nil, err
	}
	return reg, nil
}

func runList(cmd *cobra.Command, args []string) error {
	type row struct {
		slug, name, category string
	}
	var rows []row

	if serverURL != "" {
		calcs, err := api.NewClient(serverURL, zap.NewNop()).List(cmd.Context())
		if err != nil {
			return err
		}
		for _, c := range calcs {
			rows = append(rows, row{c.Slug, c.Name, c.Category})
		}
	} else {
		reg, err := newLocalRegistry()
		if err != nil {
			return err
		}
		for _, d := range reg.List() {
			rows = append(rows, row{d.Slug, d.Name, d.Category})
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tNAME\tCATEGORY")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.slug, r.name, r.category)
	}
	return w.Flush()
}

func resolveInput() (json.RawMessage, error) {
	if inputJSON != "" && inputFile != "" {
		return nil, fmt.Errorf("--input and --input-file are mutually exclusive")
	}
	if inputJSON != "" {
		return json.RawMessage(inputJSON), nil
	}
	if inputFile != "" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return nil, fmt.Errorf("read input file: %w", err)
		}
		return data, nil
	}
	return nil, nil
}

func runCalculator(cmd *cobra.Command, args []string) error {
	slug := args[0]
	input, err := resolveInput()
	if err != nil {
		return err
	}

	var result json.RawMessage
	if serverURL != "" {
		result, err = api.NewClient(serverURL, zap.NewNop()).Run(cmd.Context(), slug, input)
		if err != nil {
			return err
		}
	} else {
		reg, err := newLocalRegistry()
		if err != nil {
			return err
		}
		out, err := reg.Run(slug, input)
		if err != nil {
			return err
		}
		result, err = json.Marshal(out)
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, result, "", "  "); err != nil {
		return fmt.Errorf("format result: %w", err)
	}
	fmt.Println(pretty.String())
	return nil
}

func runExportAmortization(cmd *cobra.Command, args []string) error {
	currency, err := prefs.ParseCurrency(exportCurrency)
	if err != nil {
		return err
	}

	schedule, err := finance.Amortize(exportPrincipal, exportRatePct/100/12, exportYears*12)
	if err != nil {
		return err
	}

	title := exportTitle
	if title == "" {
		title = fmt.Sprintf("%.0f over %d years at %.2f%%", exportPrincipal, exportYears, exportRatePct)
	}
	f, err := export.AmortizationWorkbook(export.AmortizationMeta{
		Title:         title,
		Currency:      currency,
		Principal:     exportPrincipal,
		AnnualRatePct: exportRatePct,
		TermYears:     exportYears,
	}, schedule)
	if err != nil {
		return err
	}
	defer f.Close()

	path, err := saveWorkbook(f, "amortization")
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", path)
	return nil
}

func runExportBrackets(cmd *cobra.Command, args []string) error {
	currency, err := prefs.ParseCurrency(exportCurrency)
	if err != nil {
		return err
	}

	cat, err := newLocalCatalog()
	if err != nil {
		return err
	}
	table, err := cat.Get(exportTableID)
	if err != nil {
		return err
	}
	assessment, err := table.Assess(exportAmount)
	if err != nil {
		return err
	}

	f, err := export.BracketWorkbook(exportTableID, currency, assessment)
	if err != nil {
		return err
	}
	defer f.Close()

	path, err := saveWorkbook(f, "brackets")
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", path)
	return nil
}

func saveWorkbook(f *excelize.File, defaultName string) (string, error) {
	if exportOut == "" {
		return export.SaveReport(f, defaultName)
	}
	if err := f.SaveAs(exportOut); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}
	return exportOut, nil
}

func runTablesList(cmd *cobra.Command, args []string) error {
	cat, err := newLocalCatalog()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tBANDS")
	for _, id := range cat.IDs() {
		table, err := cat.Get(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\n", id, len(table.Bands()))
	}
	return w.Flush()
}

func runTablesValidate(cmd *cobra.Command, args []string) error {
	cat := tables.Builtin()
	if err := cat.LoadOverrides(args[0]); err != nil {
		return err
	}
	fmt.Printf("%s: valid\n", args[0])
	return nil
}
