package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/willfong/hh-vacancies/internal/config"
	"github.com/willfong/hh-vacancies/internal/database"
	"github.com/willfong/hh-vacancies/internal/ui"
)

var (
	cfgFile string
	verbose bool
	noColor bool

	// configErr is reported by commands that need the configuration
	configErr error
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hhq",
	Short: "Query the hh.ru vacancy database",
	Long: `Read-only reports over the hh_db employers/vacancies database.

The database is filled by a separate collector; hhq only reads it.
Connection settings come from a config file (hhq.yaml, or a database.ini
with a [postgresql] section), a .env file, HHQ_* environment variables
and flags, in increasing order of priority.

Example usage:
  hhq companies
  hhq avg-salary --driver mysql --host db.local --user hh
  hhq search python
  hhq export --format xlsx --output report.xlsx`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./hhq.yaml, ~/.config/hhq/hhq.yaml or ./database.ini)")
	flags.String("driver", config.DBDriver, "database driver (postgres, mysql, sqlite)")
	flags.String("host", config.DBHost, "database host")
	flags.Int("port", 0, "database port (default: driver's standard port)")
	flags.String("user", "", "database user")
	flags.String("password", "", "database password")
	flags.String("path", config.DBSQLitePath, "database file for the sqlite driver")
	flags.String("dsn", "", "full connection string, overrides the individual settings")
	flags.Duration("timeout", config.QueryTimeout, "timeout for the command's queries (0 = none)")
	flags.String("currency", config.Currency, "currency used to display salaries")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVar(&noColor, "no-color", false, "disable colors and animations")

	bindFlag("database.driver", "driver")
	bindFlag("database.host", "host")
	bindFlag("database.port", "port")
	bindFlag("database.user", "user")
	bindFlag("database.password", "password")
	bindFlag("database.path", "path")
	bindFlag("database.dsn", "dsn")
	bindFlag("query_timeout", "timeout")
	bindFlag("output.currency", "currency")
	bindFlag("verbose", "verbose")

	// Set version template
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

// initConfig reads in the .env file, the config file and ENV variables.
func initConfig() {
	if _, err := config.LoadDotEnv(config.EnvFiles...); err != nil {
		fmt.Fprintln(os.Stderr, newUI().Warning(fmt.Sprintf("Reading .env: %v", err)))
	}

	config.BindEnv()

	configErr = nil
	if err := readConfigFile(); err != nil {
		configErr = fmt.Errorf("reading config: %w", err)
	}
}

// readConfigFile loads --config, or the first of hhq.{yaml,toml,json} in
// the working directory or ~/.config/hhq, or else ./database.ini.
func readConfigFile() error {
	if strings.EqualFold(filepath.Ext(cfgFile), ".ini") {
		return useIniFile(cfgFile)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("hhq")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "hhq"))
		}
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) && cfgFile == "" {
		// Fall back to the collector's database.ini
		if _, statErr := os.Stat("database.ini"); statErr == nil {
			return useIniFile("database.ini")
		}
		return nil
	}
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintln(os.Stderr, newUI().Muted("Using config file: "+viper.ConfigFileUsed()))
	}
	return nil
}

func useIniFile(path string) error {
	if err := config.ReadIniFile(path); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintln(os.Stderr, newUI().Muted("Using config file: "+path))
	}
	return nil
}

// newUI returns a UI honouring --no-color. Progress output goes to stderr
// so that query results on stdout can be piped.
func newUI() *ui.UI {
	u := ui.New()
	if noColor {
		u.SetNoColor(true)
	}
	u.Out = os.Stderr
	return u
}

// printError reports a command failure on stderr
func printError(err error) {
	u := newUI()
	fmt.Fprintln(os.Stderr, u.Error(err.Error()))
	if database.IsConnectionError(err) {
		fmt.Fprintln(os.Stderr, u.Muted("Check the connection settings (--driver, --host, --user, --dsn) and that the server is reachable."))
	}
}
