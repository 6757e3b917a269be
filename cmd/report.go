package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/roobyn/sap-bi/internal/scan"
)

var reportObjects []string

var reportCmd = &cobra.Command{
	Use:     "report <report-id>",
	Short:   "Scan a single Webi report for result-object usages",
	Args:    cobra.ExactArgs(1),
	Example: `  biscan report 7433 --object Revenue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reportID := args[0]
		if len(reportObjects) == 0 {
			return fmt.Errorf("must provide at least one --object")
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

		inspector := scan.NewInspector(cli)
		records, err := inspector.InspectReport(cmd.Context(), token, reportID, reportObjects)
		if err != nil {
			return logError(err, fmt.Sprintf("failed to inspect report %s", reportID))
		}

		if err := renderRecords(records, nil); err != nil {
			return err
		}
		log.Info().Msgf("found %d usage(s) in report %s", len(records), reportID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringArrayVarP(&reportObjects, "object", "o", nil,
		"Result-object name to search for (repeatable)")
	reportCmd.Flags().StringVar(&scanOutput, "output", "table", "Output format (table, json)")

	f.bindAuthFlags(reportCmd.Flags())
}
