// Command gwls resolves global warming level crossing windows from the
// published CMIP reference documents.
//
// Usage:
//
//	gwls -cmip cmip6 -model ACCESS-ESM1-5 -ensemble r1i1p1f1 -pathway ssp585 -gwl 2.0
//	gwls -table -cmip cmip6 -format csv
//
// Documents are fetched from GitHub raw content. With -local-dir pointing
// at a checkout of mathause/cmip_warming_levels, the checkout serves as a
// fallback when the fetch fails.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/AusClimateService/gwls/internal/adapter/reference"
	"github.com/AusClimateService/gwls/internal/domain"
	"github.com/AusClimateService/gwls/internal/lookup"
	"github.com/AusClimateService/gwls/internal/observability"
)

type options struct {
	cmip     string
	model    string
	ensemble string
	pathway  string
	gwl      float64
	table    bool
	format   string
	baseURL  string
	localDir string
	timeout  time.Duration
	verbose  bool
}

func main() {
	var opts options
	flag.StringVar(&opts.cmip, "cmip", "", "CMIP phase: cmip5 or cmip6")
	flag.StringVar(&opts.model, "model", "", "climate model name, e.g. ACCESS-ESM1-5")
	flag.StringVar(&opts.ensemble, "ensemble", "", "ensemble member, e.g. r1i1p1f1")
	flag.StringVar(&opts.pathway, "pathway", "", "emissions pathway, e.g. ssp585")
	flag.Float64Var(&opts.gwl, "gwl", 0, "global warming level in °C, e.g. 2.0")
	flag.BoolVar(&opts.table, "table", false, "print the phase's full lookup table instead of resolving one query")
	flag.StringVar(&opts.format, "format", "text", "output format: text, json, or csv")
	flag.StringVar(&opts.baseURL, "base-url", reference.DefaultBaseURL, "base URL for reference documents")
	flag.StringVar(&opts.localDir, "local-dir", "", "local checkout of the reference repository, used as fallback")
	flag.DurationVar(&opts.timeout, "timeout", 30*time.Second, "fetch timeout")
	flag.BoolVar(&opts.verbose, "v", false, "verbose logging")
	flag.Parse()

	os.Exit(run(opts))
}

func run(opts options) int {
	switch opts.format {
	case "text", "json", "csv":
	default:
		fmt.Fprintf(os.Stderr, "gwls: invalid format %q: must be text, json, or csv\n", opts.format)
		return 2
	}
	if opts.format == "csv" && !opts.table {
		fmt.Fprintln(os.Stderr, "gwls: csv output requires -table")
		return 2
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	metrics := observability.NewMetrics()

	var source reference.Source = reference.NewGitHubSource(opts.baseURL, opts.timeout, logger, metrics)
	if opts.localDir != "" {
		local := reference.NewLocalSource(opts.localDir, logger, metrics)
		source = reference.NewFallback(source, local, logger)
	}
	service := lookup.NewService(source, logger, metrics)

	ctx := context.Background()
	if opts.table {
		return runTable(ctx, service, opts)
	}
	return runResolve(ctx, service, opts)
}

func runResolve(ctx context.Context, service *lookup.Service, opts options) int {
	q := domain.Query{
		Phase:    opts.cmip,
		Model:    opts.model,
		Ensemble: opts.ensemble,
		Pathway:  opts.pathway,
		Level:    opts.gwl,
	}

	// Normalized up front so json output carries canonical spellings.
	q, err := q.Normalize()
	if err != nil {
		fmt.Fprintln(os.Stderr, "gwls:", err)
		return 2
	}

	window, err := service.ResolveYearRange(ctx, q)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gwls:", err)
		return exitCode(err)
	}

	if opts.format == "json" {
		out := struct {
			Phase     string  `json:"cmip"`
			Model     string  `json:"model"`
			Ensemble  string  `json:"ensemble"`
			Pathway   string  `json:"pathway"`
			GWL       float64 `json:"gwl"`
			StartYear int     `json:"start_year"`
			EndYear   int     `json:"end_year"`
		}{q.Phase, q.Model, q.Ensemble, q.Pathway, q.Level, window.Start, window.End}
		return printJSON(out)
	}

	fmt.Printf("%d %d\n", window.Start, window.End)
	return 0
}

func runTable(ctx context.Context, service *lookup.Service, opts options) int {
	table, err := service.LookupTable(ctx, opts.cmip)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gwls:", err)
		return exitCode(err)
	}

	switch opts.format {
	case "json":
		return printJSON(table)
	case "csv":
		if err := writeCSV(os.Stdout, table); err != nil {
			fmt.Fprintln(os.Stderr, "gwls: write csv:", err)
			return 1
		}
	default:
		writeText(os.Stdout, table)
	}
	return 0
}

func printJSON(v any) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, "gwls: encode json:", err)
		return 1
	}
	return 0
}

func writeCSV(w io.Writer, table domain.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"gwl", "model", "ensemble", "pathway", "start_year", "end_year"}); err != nil {
		return err
	}
	for _, row := range table.Rows {
		record := []string{
			row.GWL, row.Model, row.Ensemble, row.Pathway,
			strconv.Itoa(row.StartYear), strconv.Itoa(row.EndYear),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeText(w io.Writer, table domain.Table) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GWL\tMODEL\tENSEMBLE\tPATHWAY\tSTART\tEND")
	for _, row := range table.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n",
			row.GWL, row.Model, row.Ensemble, row.Pathway, row.StartYear, row.EndYear)
	}
	tw.Flush() //nolint:errcheck // stdout writes surface on process exit
}

// exitCode distinguishes caller mistakes from lookup and source failures.
func exitCode(err error) int {
	if domain.IsInvalidArgument(err) {
		return 2
	}
	return 1
}
