package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/farxc/sil_dashboard/internal/env"
	"github.com/farxc/sil_dashboard/internal/logger"
	"github.com/farxc/sil_dashboard/internal/programacao"
	"github.com/farxc/sil_dashboard/internal/programacao/catalog"
	"github.com/farxc/sil_dashboard/internal/programacao/filter"
	"github.com/farxc/sil_dashboard/internal/render"
	"github.com/spf13/cobra"
)

type reportOptions struct {
	dir         string
	catalogPath string
	mode        string
	year        string
	month       string
	region      string
	branch      string
	asJSON      bool
	logLevel    string
}

func newRootCmd() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the SIL Log-In schedule dashboard for a folder of CSV exports",
		Long: `report loads every ';' delimited programações export in --dir, derives
branch and region from the carrier tax id and prints the KPI tiles and chart
series for the selected region, branch and period.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.dir, "dir", env.GetString("DATA_DIR", "./data"), "directory holding the CSV exports")
	f.StringVar(&opts.catalogPath, "catalog", env.GetString("CATALOG_PATH", ""), "YAML file overriding the reference tables")
	f.StringVar(&opts.mode, "mode", "year", "date filter mode: year or month")
	f.StringVar(&opts.year, "year", filter.All, "year, or All")
	f.StringVar(&opts.month, "month", filter.All, "month number or name (month mode)")
	f.StringVar(&opts.region, "region", filter.All, "region, or All")
	f.StringVar(&opts.branch, "branch", filter.All, "branch, or All")
	f.BoolVar(&opts.asJSON, "json", false, "print the dashboard as JSON")
	f.StringVar(&opts.logLevel, "loglevel", env.GetString("LOG_LEVEL", "warn"), "log level: debug, info, warn or error")

	return cmd
}

func runReport(cmd *cobra.Command, opts reportOptions) error {
	appLogger := logger.New(logger.ParseLevel(opts.logLevel))
	defer appLogger.Sync()

	cat := catalog.Default()
	if opts.catalogPath != "" {
		loaded, err := catalog.Load(opts.catalogPath)
		if err != nil {
			return err
		}
		cat = loaded
	}

	sel, err := filter.ParseSelection(opts.region, opts.branch, opts.mode, opts.year, opts.month)
	if err != nil {
		return err
	}

	ds, _, err := programacao.Load(cmd.Context(), opts.dir, cat, appLogger)
	if err != nil {
		return err
	}

	d, err := programacao.BuildDashboard(ds, sel, cat)
	if err != nil {
		return err
	}

	return writeDashboard(cmd.OutOrStdout(), d, opts.asJSON)
}

func writeDashboard(w io.Writer, d *programacao.Dashboard, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	_, err := fmt.Fprint(w, render.Dashboard(d, render.DefaultStyles()))
	return err
}
