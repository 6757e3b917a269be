package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/roobyn/sap-bi/internal/logging"
	"github.com/roobyn/sap-bi/internal/scan"
)

var (
	scanFolder    string
	scanObjects   []string
	scanKeepGoing bool
	scanWorkers   int
	scanFilter    string
	scanOutput    string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a folder of Webi reports for result-object usages",
	Long: `Walks the direct children of an infostore folder, inspects every Web
Intelligence report in it and reports which data providers use the given
result objects. Matching is exact and case-sensitive.`,
	Example: `  # Where are "Revenue" and "Fiscal Year" used in folder 123456?
  biscan scan --folder 123456 --object Revenue --object "Fiscal Year"

  # Repeat scan from a config file, skipping broken reports
  biscan scan --config finance-scan.yaml --keep-going`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := mergeScanConfig(); err != nil {
			return err
		}
		if scanFolder == "" {
			return fmt.Errorf("must provide --folder")
		}
		if len(scanObjects) == 0 {
			return fmt.Errorf("must provide at least one --object")
		}

		filter, err := compileFilter(scanFilter)
		if err != nil {
			return err
		}

		cli, err := f.GetClient()
		if err != nil {
			return err
		}

		token, logoff, err := openSession(cmd.Context(), cli)
		if err != nil {
			return logError(err, "failed to log on")
		}
		defer logoff()

		walker := scan.NewWalker(cli, logging.NewZLogger(log.Logger))
		walker.ContinueOnError = scanKeepGoing
		walker.Workers = scanWorkers

		records, failures, err := walker.WalkFolder(cmd.Context(), token, scanFolder, scanObjects)
		if err != nil {
			return logError(err, fmt.Sprintf("failed to scan folder %s", scanFolder))
		}

		if filter != nil {
			records, err = applyFilter(filter, records)
			if err != nil {
				return err
			}
		}

		if err := renderRecords(records, failures); err != nil {
			return err
		}

		if len(failures) > 0 {
			log.Warn().Msgf("%s %d report(s) could not be inspected", redCross, len(failures))
		}
		logSuccess("found %d usage(s) of %d object(s) in folder %s",
			len(records), len(scanObjects), scanFolder)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanFolder, "folder", "F", "", "Infostore folder id to scan")
	scanCmd.Flags().StringArrayVarP(&scanObjects, "object", "o", nil,
		"Result-object name to search for (repeatable)")
	scanCmd.Flags().BoolVar(&scanKeepGoing, "keep-going", false,
		"Record failing reports and continue instead of aborting")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 1,
		"Concurrent report inspections (output order stays deterministic)")
	scanCmd.Flags().StringVar(&scanFilter, "filter", "",
		`Expression to filter matches, e.g. 'DataProvider == "DP1"'`)
	scanCmd.Flags().StringVar(&scanOutput, "output", "table", "Output format (table, json)")
	scanCmd.Flags().StringVarP(&f.ConfigPath, "config", "c", "", "Scan configuration file")

	f.bindAuthFlags(scanCmd.Flags())
}

// mergeScanConfig fills unset flags from the scan config file, if one
// was given. Flags always win.
func mergeScanConfig() error {
	if f.ConfigPath == "" {
		return nil
	}
	cfg, err := f.LoadScanConfig()
	if err != nil {
		return err
	}
	if scanFolder == "" {
		scanFolder = cfg.Folder
	}
	if len(scanObjects) == 0 {
		scanObjects = cfg.Objects
	}
	if f.RemoteAddr == "" {
		f.RemoteAddr = cfg.Server
	}
	if f.Username == "" {
		f.Username = cfg.Auth.Username
	}
	if f.PasswordEnv == "" {
		f.PasswordEnv = cfg.Auth.PasswordEnv
	}
	if f.AuthMode == "" {
		f.AuthMode = cfg.Auth.Mode
	}
	if f.Timeout == 0 {
		f.Timeout = cfg.Scan.Timeout
	}
	if scanWorkers <= 1 && cfg.Scan.Workers > 1 {
		scanWorkers = cfg.Scan.Workers
	}
	if cfg.Scan.KeepGoing {
		scanKeepGoing = true
	}
	return nil
}

func compileFilter(code string) (*filterProgram, error) {
	if code == "" {
		return nil, nil
	}
	program, err := expr.Compile(code, expr.Env(scan.MatchRecord{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter expression: %w", err)
	}
	return &filterProgram{program: program}, nil
}

func renderRecords(records []scan.MatchRecord, failures []scan.ReportFailure) error {
	if scanOutput == "json" {
		out := struct {
			Matches  []scan.MatchRecord   `json:"matches"`
			Failures []scan.ReportFailure `json:"failures,omitempty"`
		}{Matches: records, Failures: failures}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	t := newTable()
	t.AppendHeader(table.Row{"Report Path", "Report", "Data Provider", "Object"})
	for _, rec := range records {
		t.AppendRow(table.Row{
			truncate(rec.ReportPath, 48),
			bold(rec.ReportName),
			rec.DataProvider,
			rec.ObjectName,
		})
	}
	applyTableFormat(t)
	t.Render()
	return nil
}
