// Package config loads the scan configuration file. Everything in it
// can also be given as flags or environment variables; the file is for
// repeat scans against the same server.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/roobyn/sap-bi/pkg/biprws"
)

type Config struct {
	// Server is the BIPRWS base URL, e.g. "http://bi-host:6405/biprws".
	Server string `yaml:"server"`

	// Folder is the infostore id of the folder to walk.
	Folder string `yaml:"folder"`

	// Objects are the result-object names to search for. Matching is
	// exact and case-sensitive.
	Objects []string `yaml:"objects"`

	Auth AuthConfig `yaml:"auth"`
	Scan ScanConfig `yaml:"scan"`
}

type AuthConfig struct {
	// Mode selects the BI authentication backend (secWinAD,
	// secEnterprise, secLDAP). Empty means secWinAD.
	Mode string `yaml:"mode"`

	Username string `yaml:"username"`

	// PasswordEnv names an environment variable holding the password,
	// so the secret stays out of the file.
	PasswordEnv string `yaml:"password_env"`
}

type ScanConfig struct {
	// Workers caps concurrent report inspections. 0 or 1 keeps the walk
	// sequential.
	Workers int `yaml:"workers"`

	// KeepGoing records failing reports instead of aborting the walk.
	KeepGoing bool `yaml:"keep_going"`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `yaml:"timeout"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file '%s': %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file '%s': %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file '%s': %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server == "" {
		return fmt.Errorf("server is required")
	}
	if c.Folder == "" {
		return fmt.Errorf("folder is required")
	}
	if len(c.Objects) == 0 {
		return fmt.Errorf("at least one object name is required")
	}
	for i, name := range c.Objects {
		if name == "" {
			return fmt.Errorf("objects[%d] is empty", i)
		}
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Scan.Validate(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	return nil
}

func (a *AuthConfig) Validate() error {
	switch a.Mode {
	case "", biprws.DefaultAuthMode, "secEnterprise", "secLDAP", "secSAPR3":
	default:
		return fmt.Errorf("unknown auth mode %q", a.Mode)
	}
	return nil
}

func (s *ScanConfig) Validate() error {
	if s.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// Password resolves the configured password from the environment.
func (a *AuthConfig) Password() (string, error) {
	if a.PasswordEnv == "" {
		return "", nil
	}
	pw, ok := os.LookupEnv(a.PasswordEnv)
	if !ok {
		return "", fmt.Errorf("password environment variable %q is not set", a.PasswordEnv)
	}
	return pw, nil
}
