package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/casedesk/cli/cmd/auth"
	"github.com/casedesk/cli/cmd/calendar"
	"github.com/casedesk/cli/cmd/cases"
	"github.com/casedesk/cli/cmd/config"
	"github.com/casedesk/cli/cmd/dashboard"
	"github.com/casedesk/cli/cmd/devserver"
	appConfig "github.com/casedesk/cli/internal/config"
)

var (
	cfgFile        string
	debug          bool
	output         string
	server         string
	sessionBackend string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "casedesk",
	Short: "Casedesk CLI - case management for legal practices",
	Long: `Casedesk CLI gives command-line access to the practice's case
management backend: sign in with your mobile number, OTP and PIN, then
review the dashboard, your cases and upcoming hearings.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := appConfig.Initialize(cfgFile); err != nil {
			return fmt.Errorf("failed to initialize configuration: %w", err)
		}

		if debug {
			appConfig.SetDebug(true)
		}

		if output != "" {
			appConfig.SetOutputFormat(output)
		}

		cfg := appConfig.Get()
		if server != "" {
			cfg.Server.URL = server
		}
		if sessionBackend != "" && sessionBackend != cfg.Session.Backend {
			cfg.Session.Backend = sessionBackend
			cfg.Session.Path = appConfig.DefaultSessionPath(sessionBackend)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.casedesk.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output format (table, json, yaml, text)")
	rootCmd.PersistentFlags().StringVar(&server, "server", "", "backend URL (overrides server.url)")
	rootCmd.PersistentFlags().StringVar(&sessionBackend, "session-backend", "", "session storage (file, bolt, memory)")

	// Add subcommands
	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(dashboard.DashboardCmd)
	rootCmd.AddCommand(cases.CasesCmd)
	rootCmd.AddCommand(calendar.CalendarCmd)
	rootCmd.AddCommand(config.ConfigCmd)
	rootCmd.AddCommand(devserver.DevserverCmd)
}
