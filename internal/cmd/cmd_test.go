package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		schemaOutputFile = ""
		exportFormat = "xlsx"
		exportOutput = ""
		cfgFile = ""
	})
	return rootCmd.Execute()
}

func TestSchemaToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sql", "schema.sql")

	if err := execute(t, "--no-color", "schema", "sqlite", "-o", out); err != nil {
		t.Fatalf("schema command failed: %v", err)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	for _, table := range []string{"employers", "vacancies"} {
		if !strings.Contains(string(content), table) {
			t.Errorf("schema does not mention %s", table)
		}
	}
}

func TestSchemaUnknownDriver(t *testing.T) {
	if err := execute(t, "--no-color", "schema", "oracle"); err == nil {
		t.Error("Expected error for unknown driver")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	err := execute(t, "--no-color", "export", "--format", "pdf")
	if err == nil || !strings.Contains(err.Error(), "unknown export format") {
		t.Errorf("Expected unknown format error, got %v", err)
	}
}

func TestSearchRequiresKeyword(t *testing.T) {
	if err := execute(t, "--no-color", "search"); err == nil {
		t.Error("Expected error without a keyword")
	}
}

func TestUnreadableConfigFailsQueries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.ini")
	if err := os.WriteFile(path, []byte("[mysql]\nhost=db\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := execute(t, "--no-color", "--config", path, "companies")
	if err == nil || !strings.Contains(err.Error(), "reading config") {
		t.Errorf("Expected config error, got %v", err)
	}
}
