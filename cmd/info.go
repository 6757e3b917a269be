package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roobyn/sap-bi/internal/buildinfo"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about this biscan build",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := buildinfo.GetBuildInfo()
		fmt.Println(bold("\n── biscan Build Information ──"))
		fmt.Printf("  %s:    %s\n", faint("Version"), info.Version)
		fmt.Printf("  %s:     %s\n", faint("Commit"), info.CommitHash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
