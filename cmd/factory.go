package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/roobyn/sap-bi/internal/cliconfig"
	"github.com/roobyn/sap-bi/internal/config"
	"github.com/roobyn/sap-bi/pkg/biprws"
)

type Factory struct {
	// RemoteAddr is the BIPRWS base URL to connect to.
	RemoteAddr string

	// Command-specific flags
	ConfigPath  string // scan configuration file (server, folder, objects)
	Username    string
	PasswordEnv string
	AuthMode    string
	Timeout     time.Duration
}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) GetRemoteAddr() (string, error) {
	server := f.RemoteAddr // prio 1: command-line flag
	if server == "" {
		server = viper.GetString(ServerKey) // prio 2: config/env
	}
	if server == "" {
		return "", fmt.Errorf("server address not configured (use --server or set BISCAN_SERVER)")
	}
	return server, nil
}

// GetClient returns a BIPRWS client for the configured server.
func (f *Factory) GetClient() (*biprws.Client, error) {
	server, err := f.GetRemoteAddr()
	if err != nil {
		return nil, err
	}
	opts := []biprws.Option{
		biprws.WithUserAgent("biscan"),
	}
	if f.Timeout > 0 {
		opts = append(opts, biprws.WithTimeout(f.Timeout))
	}
	return biprws.New(server, opts...), nil
}

// GetCredential resolves the credential for a server. Flags win over the
// BISCAN_PASSWORD environment variable, which wins over credentials
// saved via 'biscan login'.
func (f *Factory) GetCredential(server string) (biprws.Credential, error) {
	cred := biprws.Credential{
		Username: f.Username,
		AuthMode: f.AuthMode,
	}

	if f.PasswordEnv != "" {
		pw, ok := os.LookupEnv(f.PasswordEnv)
		if !ok {
			return biprws.Credential{}, fmt.Errorf("password environment variable %q is not set", f.PasswordEnv)
		}
		cred.Password = pw
	} else if pw := os.Getenv("BISCAN_PASSWORD"); pw != "" {
		cred.Password = pw
	}

	if cred.Username != "" && cred.Password != "" {
		return cred, nil
	}

	// fall back to saved credentials
	cfg, err := cliconfig.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return biprws.Credential{}, fmt.Errorf("no credential given and none saved (use --username or 'biscan login')")
		}
		return biprws.Credential{}, err
	}
	saved, err := cfg.GetCredential(server)
	if err != nil {
		if errors.Is(err, cliconfig.ErrCredentialNotFound) {
			return biprws.Credential{}, fmt.Errorf("no credential saved for %s (use --username or 'biscan login')", server)
		}
		return biprws.Credential{}, err
	}

	if cred.Username == "" {
		cred.Username = saved.Username
	}
	if cred.Password == "" {
		cred.Password = saved.Password
	}
	if cred.AuthMode == "" {
		cred.AuthMode = saved.AuthMode
	}
	return cred, nil
}

func (f *Factory) LoadScanConfig() (*config.Config, error) {
	if f.ConfigPath == "" {
		return nil, fmt.Errorf("scan config file not specified (use --config)")
	}
	return config.Load(f.ConfigPath)
}

func (f *Factory) bindAuthFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&f.Username, "username", "u", "", "BI platform username")
	flags.StringVar(&f.PasswordEnv, "password-env", "",
		"Environment variable holding the password (default BISCAN_PASSWORD)")
	flags.StringVar(&f.AuthMode, "auth", "",
		"Authentication mode (secWinAD, secEnterprise, secLDAP; default secWinAD)")
	flags.DurationVar(&f.Timeout, "timeout", 0, "Per-request HTTP timeout (default 30s)")
}
