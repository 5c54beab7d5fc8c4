package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/willfong/hh-vacancies/internal/database"
)

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema [driver]",
	Short: "Output the reference database schema",
	Long: `Output the SQL schema of the tables hhq reads.

Available drivers:
  postgres  PostgreSQL (default: the configured driver)
  mysql     MySQL / MariaDB
  sqlite    SQLite

The collector normally creates these tables; the schema is useful for
setting up a test database.

Examples:
  hhq schema                          # Schema for the configured driver
  hhq schema sqlite -o schema.sql     # Save the SQLite schema to a file
  hhq schema postgres | psql hh_db    # Create the tables`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

var schemaOutputFile string

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVarP(&schemaOutputFile, "output", "o", "", "output file (default: stdout)")
}

func runSchema(cmd *cobra.Command, args []string) error {
	u := newUI()

	driver := viper.GetString("database.driver")
	if len(args) > 0 {
		driver = args[0]
	}

	content, err := database.Schema(driver)
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}

	if schemaOutputFile == "" {
		fmt.Print(content)
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(schemaOutputFile)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
	}

	if err := os.WriteFile(schemaOutputFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	fmt.Fprintln(os.Stderr, u.Success("Schema written to: "+schemaOutputFile))
	return nil
}
