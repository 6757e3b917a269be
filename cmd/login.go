package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/roobyn/sap-bi/internal/cliconfig"
	"github.com/roobyn/sap-bi/pkg/biprws"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify and save a credential for a BI server",
	Long: `Performs a logon against the server to verify the credential, revokes
the session again and saves the credential locally so future scans can
run without --username/--password-env.`,
	Example: `  biscan login --server http://bi-host:6405/biprws --username jdoe`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := f.GetRemoteAddr()
		if err != nil {
			return err
		}
		if f.Username == "" {
			return fmt.Errorf("must provide --username")
		}

		password, err := resolvePassword()
		if err != nil {
			return err
		}

		cli, err := f.GetClient()
		if err != nil {
			return err
		}
		cred := biprws.Credential{
			Username: f.Username,
			Password: password,
			AuthMode: f.AuthMode,
		}

		log.Info().Msgf("verifying credential against %s...", server)
		token, err := cli.Logon(cmd.Context(), cred)
		if err != nil {
			return logError(err, "logon failed, credential not saved")
		}
		// the verification session is not needed any further
		if err := cli.Logoff(cmd.Context(), token); err != nil {
			log.Warn().Msgf("failed to log off verification session: %v", err)
		}

		cfg, err := cliconfig.Load()
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg = &cliconfig.CLIConfig{}
		}
		if err := cfg.SetCredential(server, &cliconfig.Credential{
			Username: cred.Username,
			Password: cred.Password,
			AuthMode: cred.AuthMode,
		}); err != nil {
			return err
		}
		if err := cliconfig.Save(cfg); err != nil {
			return logError(err, "logon succeeded but could not save credentials")
		}

		host, _ := cliconfig.HostKey(server)
		logSuccess("saved credentials for %s", bold(host))
		return nil
	},
}

// resolvePassword reads the password from --password-env, BISCAN_PASSWORD
// or, on a terminal, an interactive prompt.
func resolvePassword() (string, error) {
	if f.PasswordEnv != "" {
		pw, ok := os.LookupEnv(f.PasswordEnv)
		if !ok {
			return "", fmt.Errorf("password environment variable %q is not set", f.PasswordEnv)
		}
		return pw, nil
	}
	if pw := os.Getenv("BISCAN_PASSWORD"); pw != "" {
		return pw, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no password given (use --password-env or BISCAN_PASSWORD)")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}

func init() {
	rootCmd.AddCommand(loginCmd)

	f.bindAuthFlags(loginCmd.Flags())
}
