// Package cmd implements the tablekit CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tablekit/tablekit/pkg/logging"
)

var (
	configFile string

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tablekit",
	Short: "Build tables from record files",
	Long: `Tablekit reads loosely structured record files (YAML or JSON) and
builds tables from them: columns are derived from each record's fields and
reconciled against the growing table, so records with drifting shapes and
types still land in one coherent table.

Cells that cannot be converted to their column's type are left unset rather
than failing the whole record.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.tablekit.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringP("format", "f", "", "output format (table, wide, json, yaml, markdown)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "write output to file instead of stdout")

	bindFlags(rootCmd.PersistentFlags())
}

// bindFlags binds persistent flags to viper keys of the same name.
func bindFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if err := viper.BindPFlag(f.Name, f); err != nil {
			fmt.Fprintf(os.Stderr, "binding flag %s: %v\n", f.Name, err)
		}
	})
}

// initConfig reads in the config file and environment variables.
func initConfig() {
	// Load .env before viper reads the environment; missing files are fine.
	_ = godotenv.Load()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".tablekit")
		}
	}

	viper.SetEnvPrefix("TABLEKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Config file is optional.
	_ = viper.ReadInConfig()
}

// setup configures logging before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	if levelStr := viper.GetString("log-level"); levelStr != "" {
		level, err := zerolog.ParseLevel(levelStr)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", levelStr, err)
		}
		zerolog.SetGlobalLevel(level)
	}
	return nil
}

// outputWriter returns the destination for command output, honoring --output.
func outputWriter() (*os.File, func(), error) {
	path := viper.GetString("output")
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}

	return f, func() {
		if err := f.Close(); err != nil {
			logging.Err(err).Str("path", path).Msg("closing output file")
		}
	}, nil
}
