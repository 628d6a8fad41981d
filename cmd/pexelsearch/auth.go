package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pexelsearch/pkg/auth"
	"pexelsearch/pkg/config"
	"pexelsearch/pkg/logger"
	"pexelsearch/pkg/pexels"
)

// credentialManager is replaced in tests
var credentialManager = auth.NewManager

func newAuthCmd(global *globalOptions) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored Pexels API key",
	}

	var verify bool
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Store a Pexels API key in the system keychain",
		Long: `Store a Pexels API key in the system keychain.

The key is read from --api-key, or prompted for without echo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, global, verify)
		},
	}
	loginCmd.Flags().BoolVar(&verify, "verify", true, "make a one-photo search to check the key first")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := credentialManager().Delete(global.profile); err != nil {
				return err
			}
			global.printer(cmd).Success("API key removed")
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show where an API key is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, global)
		},
	}

	authCmd.AddCommand(loginCmd, logoutCmd, statusCmd)
	return authCmd
}

func runLogin(cmd *cobra.Command, global *globalOptions, verify bool) error {
	out := global.printer(cmd)

	key := global.apiKey
	if key == "" {
		auth.ShowAPIKeyGuide(out.Writer())
		fmt.Fprint(out.Writer(), "API key: ")
		var err error
		key, err = readSecret(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("no API key entered")
	}

	if verify {
		if err := verifyKey(global, key); err != nil {
			return err
		}
	}

	cred := &auth.Credential{Profile: global.profile, APIKey: key}
	if err := credentialManager().Store(cred); err != nil {
		return err
	}

	out.Success("API key stored")
	out.Info("Profile", cred.Profile)
	out.Info("Key", cred.Masked().APIKey)
	return nil
}

func runStatus(cmd *cobra.Command, global *globalOptions) error {
	out := global.printer(cmd)
	manager := credentialManager()

	for _, st := range manager.Status(global.profile) {
		state := "not set"
		if st.Present {
			state = "set"
		}
		out.Info(string(st.Source), state)
	}

	cred, source, err := manager.Retrieve(global.profile)
	if err != nil {
		out.Warning("No API key available")
		return nil
	}
	out.Info("Active key", fmt.Sprintf("%s (from %s)", cred.Masked().APIKey, source))
	return nil
}

// verifyKey makes a single one-photo search with key
func verifyKey(global *globalOptions, key string) error {
	cfg, err := config.LoadUnvalidated(global.configFile, global.baseFlags())
	if err != nil {
		return err
	}
	cfg.Pexels.APIKey = key
	cfg.Search.Limit = 1
	cfg.Search.Offset = 0
	cfg.Retry.MaxAttempts = 1

	client, err := pexels.NewClientFromConfig(cfg, logger.NewNopLogger())
	if err != nil {
		return err
	}
	photos, err := client.Search("nature")
	if err != nil {
		return err
	}
	if len(photos) == 0 {
		return errors.New("verification search returned no photos; check the key or pass --verify=false")
	}
	return nil
}

// readSecret reads a line without echo when in is a terminal
func readSecret(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
