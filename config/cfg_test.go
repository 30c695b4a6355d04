package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"oklchify/config"
)

func TestLoadConfigurationDefaults(t *testing.T) {
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("version = %d, want 1", cfg.Version)
	}
	if cfg.Conversion.BackupOriginals {
		t.Error("backups must be off by default")
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("file level = %q, want none", cfg.Logging.FileLogger.Level)
	}

	for _, ext := range []string{".js", ".mjs", ".cjs", ".jsx", ".ts", ".mts", ".tsx"} {
		if !cfg.Conversion.IsTokenExtension(ext) {
			t.Errorf("default token extensions must include %q", ext)
		}
	}
	if cfg.Conversion.IsTokenExtension(".css") || cfg.Conversion.IsTokenExtension(".txt") {
		t.Error("token extensions must not cover non-token files")
	}
}

func TestLoadConfigurationOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oklchify.yaml")
	data := `version: 1
conversion:
  backup_originals: true
  token_extensions:
    - .js
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if !cfg.Conversion.BackupOriginals {
		t.Error("file value did not override default")
	}
	if !cfg.Conversion.IsTokenExtension(".js") || cfg.Conversion.IsTokenExtension(".tsx") {
		t.Errorf("token extensions not replaced by file: %v", cfg.Conversion.TokenExtensions)
	}
	// defaults for untouched sections survive
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfigurationRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("version: 1\nnonsense: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadConfiguration(path); err == nil {
		t.Error("unknown fields must be rejected")
	}
}

func TestLoadConfigurationRejectsBadVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("version: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadConfiguration(path); err == nil {
		t.Error("unsupported version must be rejected")
	}
}

func TestCleanFileName(t *testing.T) {
	if got := config.CleanFileName(string(os.PathSeparator) + "name"); got != "name" {
		t.Errorf("CleanFileName() = %q, want %q", got, "name")
	}
	if got := config.CleanFileName(""); got != "_bad_file_name_" {
		t.Errorf("CleanFileName() = %q, want placeholder", got)
	}
}

func TestPrepareAndDump(t *testing.T) {
	data, err := config.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !strings.Contains(string(data), "token_extensions") {
		t.Errorf("default configuration looks incomplete:\n%s", data)
	}

	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	out, err := config.Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(out), "version: 1") {
		t.Errorf("dumped configuration missing version:\n%s", out)
	}
}
