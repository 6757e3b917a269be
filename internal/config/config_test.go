package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server: http://bi-host:6405/biprws
folder: "123456"
objects:
  - Revenue
  - Fiscal Year
auth:
  mode: secEnterprise
  username: jdoe
  password_env: BI_PASSWORD
scan:
  workers: 4
  keep_going: true
  timeout: 45s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Server != "http://bi-host:6405/biprws" {
		t.Errorf("Server = %q", cfg.Server)
	}
	if cfg.Folder != "123456" {
		t.Errorf("Folder = %q, want 123456", cfg.Folder)
	}
	if want := []string{"Revenue", "Fiscal Year"}; !reflect.DeepEqual(cfg.Objects, want) {
		t.Errorf("Objects = %v, want %v", cfg.Objects, want)
	}
	if cfg.Auth.Mode != "secEnterprise" || cfg.Auth.Username != "jdoe" {
		t.Errorf("Auth = %+v", cfg.Auth)
	}
	if cfg.Scan.Workers != 4 || !cfg.Scan.KeepGoing || cfg.Scan.Timeout != 45*time.Second {
		t.Errorf("Scan = %+v", cfg.Scan)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "Missing Server",
			content: "folder: \"1\"\nobjects: [Revenue]\n",
			wantMsg: "server is required",
		},
		{
			name:    "Missing Folder",
			content: "server: http://h/biprws\nobjects: [Revenue]\n",
			wantMsg: "folder is required",
		},
		{
			name:    "No Objects",
			content: "server: http://h/biprws\nfolder: \"1\"\n",
			wantMsg: "at least one object name",
		},
		{
			name:    "Empty Object Name",
			content: "server: http://h/biprws\nfolder: \"1\"\nobjects: [\"\"]\n",
			wantMsg: "objects[0] is empty",
		},
		{
			name:    "Unknown Auth Mode",
			content: "server: http://h/biprws\nfolder: \"1\"\nobjects: [Revenue]\nauth:\n  mode: secBogus\n",
			wantMsg: "unknown auth mode",
		},
		{
			name:    "Negative Workers",
			content: "server: http://h/biprws\nfolder: \"1\"\nobjects: [Revenue]\nscan:\n  workers: -1\n",
			wantMsg: "workers must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Load() error = %v, want message containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestAuthPassword(t *testing.T) {
	t.Setenv("BI_TEST_PASSWORD", "hunter2")

	a := AuthConfig{PasswordEnv: "BI_TEST_PASSWORD"}
	pw, err := a.Password()
	if err != nil {
		t.Fatalf("Password() unexpected error: %v", err)
	}
	if pw != "hunter2" {
		t.Errorf("Password() = %q, want hunter2", pw)
	}

	a = AuthConfig{PasswordEnv: "BI_TEST_PASSWORD_UNSET"}
	if _, err := a.Password(); err == nil {
		t.Error("Password() expected error for unset variable")
	}
}
