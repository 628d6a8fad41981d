package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"pexelsearch/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// globalOptions holds flags shared by every subcommand
type globalOptions struct {
	configFile string
	logLevel   string
	apiKey     string
	profile    string
	noColor    bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "pexelsearch",
		Short: "Search Pexels photos from the command line",
		Long: `pexelsearch queries the Pexels photo search API and prints the results.

The API key is taken from, in order:
  - the --api-key flag
  - the PEXELS_API_KEY environment variable (or a .env file)
  - the configuration file
  - the system keychain (use 'pexelsearch auth login' to store it)`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (default is ./.pexelsearch.yaml or ~/.config/pexelsearch/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.apiKey, "api-key", "", "Pexels API key")
	rootCmd.PersistentFlags().StringVar(&opts.profile, "profile", "", "stored credential profile (default \"default\")")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.SetVersionTemplate(`pexelsearch {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		newSearchCmd(opts),
		newConfigCmd(opts),
		newAuthCmd(opts),
	)

	return rootCmd
}

// printer returns a Printer for the command's output stream
func (o *globalOptions) printer(cmd *cobra.Command) *ui.Printer {
	if o.noColor {
		return ui.NewPlainPrinter(cmd.OutOrStdout())
	}
	return ui.NewPrinter(cmd.OutOrStdout())
}

// errPrinter returns a Printer for the command's error stream
func (o *globalOptions) errPrinter(cmd *cobra.Command) *ui.Printer {
	if o.noColor {
		return ui.NewPlainPrinter(cmd.ErrOrStderr())
	}
	return ui.NewPrinter(cmd.ErrOrStderr())
}

// baseFlags collects the global flags that override configuration
func (o *globalOptions) baseFlags() map[string]interface{} {
	flags := make(map[string]interface{})
	if o.apiKey != "" {
		flags["api-key"] = o.apiKey
	}
	if o.logLevel != "" {
		flags["log-level"] = o.logLevel
	}
	return flags
}
