package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appConfig "github.com/casedesk/cli/internal/config"
	"github.com/casedesk/cli/internal/format"
	"github.com/casedesk/cli/internal/utils"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "CLI configuration commands",
	Long: `CLI configuration commands for Casedesk CLI.

This command group shows the current configuration and sets values.`,
}

// showCmd prints the effective configuration
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return format.Print(appConfig.Get())
	},
}

// setCmd updates one key
var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value, e.g. 'casedesk config set server.url https://api.example.com'",
	Args:  cobra.ExactArgs(2),
	RunE:  runSet,
}

// pathCmd prints the config file in use
var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), viper.ConfigFileUsed())
		return nil
	},
}

func runSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	switch key {
	case "server.url":
		if err := utils.ValidateURL(value); err != nil {
			return err
		}
	case "session.backend":
		switch value {
		case appConfig.BackendFile, appConfig.BackendBolt, appConfig.BackendMemory:
		default:
			return utils.NewValidationError(key, fmt.Sprintf("unknown session backend %q", value))
		}
	}

	if err := appConfig.SetValue(key, value); err != nil {
		return err
	}

	format.PrintSuccess("✓ %s = %s", key, value)
	return nil
}

func init() {
	ConfigCmd.AddCommand(showCmd)
	ConfigCmd.AddCommand(setCmd)
	ConfigCmd.AddCommand(pathCmd)
}
