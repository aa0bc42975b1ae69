// file: cmd/root_test.go
// version: 1.0.0
// guid: 3f6b9e1d-8c2a-4f70-9d4e-5a1b7c0e2f83

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/shopkit/storefront/internal/config"
)

func TestInitConfigUsesHomeConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".storefront.yaml")
	if err := os.WriteFile(configPath, []byte("environment: production\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	origCfgFile := cfgFile
	origDBPath := databasePath
	origConfig := config.AppConfig
	defer func() {
		cfgFile = origCfgFile
		databasePath = origDBPath
		config.AppConfig = origConfig
	}()

	t.Setenv("HOME", tempDir)
	cfgFile = ""
	databasePath = ""

	viper.Reset()
	initConfig()

	if config.AppConfig.Environment != "production" {
		t.Fatalf("expected environment from config file, got %q", config.AppConfig.Environment)
	}
}

func TestInitConfigExplicitFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("cache_ttl_seconds: 30\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	origCfgFile := cfgFile
	origConfig := config.AppConfig
	defer func() {
		cfgFile = origCfgFile
		config.AppConfig = origConfig
	}()

	cfgFile = configPath

	viper.Reset()
	initConfig()

	if got := config.AppConfig.CacheTTL.Seconds(); got != 30 {
		t.Fatalf("expected 30s cache TTL from config file, got %v", got)
	}
}

func TestOpenStoreCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "data", "store.pebble")

	origConfig := config.AppConfig
	defer func() {
		config.AppConfig = origConfig
	}()
	config.AppConfig.DatabasePath = dbPath

	st, err := openStore()
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer st.Close()

	if _, err := os.Stat(filepath.Dir(dbPath)); err != nil {
		t.Fatalf("expected database directory to exist: %v", err)
	}
}

func TestImportProductsCommand(t *testing.T) {
	tempDir := t.TempDir()
	csvPath := filepath.Join(tempDir, "products.csv")
	csv := "product_id,name,description,price,image_url,stock,category\n" +
		"p1,Mug,Ceramic mug,9.99,https://img/mug.png,25,kitchen\n"
	if err := os.WriteFile(csvPath, []byte(csv), 0o644); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}

	origConfig := config.AppConfig
	defer func() {
		config.AppConfig = origConfig
	}()
	config.AppConfig.DatabasePath = filepath.Join(tempDir, "store.pebble")

	if err := importProductsCmd.RunE(importProductsCmd, []string{csvPath}); err != nil {
		t.Fatalf("import-products failed: %v", err)
	}
}

func TestImportProductsCommandMissingFile(t *testing.T) {
	tempDir := t.TempDir()

	origConfig := config.AppConfig
	defer func() {
		config.AppConfig = origConfig
	}()
	config.AppConfig.DatabasePath = filepath.Join(tempDir, "store.pebble")

	if err := importProductsCmd.RunE(importProductsCmd, []string{filepath.Join(tempDir, "missing.csv")}); err == nil {
		t.Fatal("expected error for missing csv file")
	}
}
