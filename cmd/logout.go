package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roobyn/sap-bi/internal/cliconfig"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved credential for a BI server",
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := f.GetRemoteAddr()
		if err != nil {
			return err
		}

		cfg, err := cliconfig.Load()
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("no credentials saved")
			}
			return err
		}

		removed, err := cfg.RemoveCredential(server)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("no credential saved for %s", server)
		}
		if err := cliconfig.Save(cfg); err != nil {
			return err
		}

		host, _ := cliconfig.HostKey(server)
		logSuccess("removed credentials for %s", bold(host))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
