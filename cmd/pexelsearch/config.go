package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pexelsearch/pkg/config"
)

const defaultConfigPath = ".pexelsearch.yaml"

const exampleConfig = `# pexelsearch configuration
#
# Environment variables override this file:
#   PEXELS_API_KEY, PEXELSEARCH_LIMIT, PEXELSEARCH_TIMEOUT, PEXELSEARCH_RETRY_ATTEMPTS, ...

pexels:
  # Leave empty to use PEXELS_API_KEY or the system keychain
  api_key: ""
  base_url: "https://api.pexels.com"
  user_agent: "pexelsearch/1.0"

search:
  # Photos returned per search
  limit: 40
  offset: 0
  # Page size ceiling, 1-40
  max_per_page: 40

request:
  timeout: 10s

retry:
  # Total attempts per request, including the first
  max_attempts: 2
  delay: 2s

rate_limit:
  # Outbound pacing; 0 disables it
  requests_per_minute: 0
  burst: 1
  # Warn when fewer requests than this remain in the quota
  low_watermark: 10

logging:
  # debug, info, warn, error
  level: "info"
  file: ""
`

func newConfigCmd(global *globalOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example configuration file",
		Long:  "Write an example configuration file to --config, or ./" + defaultConfigPath + " by default.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, global)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, global)
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigValidate(cmd, global)
		},
	}

	configCmd.AddCommand(initCmd, showCmd, validateCmd)
	return configCmd
}

func runConfigInit(cmd *cobra.Command, global *globalOptions) error {
	path := global.configFile
	if path == "" {
		path = defaultConfigPath
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file already exists: %s", path)
	}

	if err := os.WriteFile(path, []byte(exampleConfig), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := global.printer(cmd)
	out.Success("Configuration file created: " + path)
	out.Muted("Set pexels.api_key, or run 'pexelsearch auth login'")
	return nil
}

func runConfigShow(cmd *cobra.Command, global *globalOptions) error {
	cfg, err := config.LoadUnvalidated(global.configFile, global.baseFlags())
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg.Masked())
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	out := global.printer(cmd)
	out.Highlight("Current configuration")
	fmt.Fprint(out.Writer(), string(data))
	out.Muted("Sources, highest priority first: flags, environment (PEXELS_API_KEY, PEXELSEARCH_*), .env, config file, defaults")
	return nil
}

func runConfigValidate(cmd *cobra.Command, global *globalOptions) error {
	if _, err := loadConfig(global, global.baseFlags()); err != nil {
		return err
	}
	global.printer(cmd).Success("Configuration is valid")
	return nil
}
