package auth

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/casedesk/cli/internal/app"
	authpkg "github.com/casedesk/cli/internal/auth"
	"github.com/casedesk/cli/internal/config"
	"github.com/casedesk/cli/internal/format"
	"github.com/casedesk/cli/internal/loginflow"
)

// AuthCmd represents the auth command
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long: `Authentication commands for Casedesk CLI.

This command group includes login, logout and session status.`,
}

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to Casedesk",
	Long: `Authenticate with your mobile number, the OTP sent to it, and your PIN.

Values not given as flags are prompted for.`,
	RunE: runLogin,
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from Casedesk",
	Long:  "Remove the stored session from this machine",
	RunE:  runLogout,
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long:  "Display current authentication status and user information",
	RunE:  runStatus,
}

func runLogin(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	mobile, _ := cmd.Flags().GetString("mobile")
	otp, _ := cmd.Flags().GetString("otp")
	pin, _ := cmd.Flags().GetString("pin")

	a, err := app.Open(config.Get())
	if err != nil {
		return err
	}
	defer a.Close()

	if _, allowed := a.Guard.Resolve(authpkg.LoginRoute); !allowed {
		if !force {
			sess := a.Manager.Session()
			format.PrintInfo("Already logged in as %s. Use --force to sign in again.", sess.User.DisplayName())
			return nil
		}
		a.Manager.Logout()
	}

	flow := loginflow.New(a.Manager)
	prompter := &Prompter{
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		Mobile: mobile,
		OTP:    otp,
		PIN:    pin,
	}
	if err := prompter.Run(cmd.Context(), flow); err != nil {
		if notice := partialLoginNotice(flow, a.Manager); notice != "" {
			format.PrintWarning("%s", notice)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	format.PrintSuccess("✓ Successfully logged in as %s", a.Manager.Session().User.DisplayName())
	return nil
}

// partialLoginNotice explains the session left behind when login stops at
// the PIN step. The OTP step already stored a usable session.
func partialLoginNotice(flow *loginflow.Flow, m *authpkg.Manager) string {
	if flow.Phase() != loginflow.AwaitingPIN || !m.IsAuthenticated() {
		return ""
	}
	return fmt.Sprintf("PIN not entered. The session from OTP verification for %s was kept; "+
		"run 'casedesk auth login --force' to finish or 'casedesk auth logout' to discard it.",
		m.Session().User.DisplayName())
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := app.Open(config.Get())
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.Manager.IsAuthenticated() {
		format.PrintInfo("Not logged in")
		return nil
	}

	name := a.Manager.Session().User.DisplayName()
	a.Manager.Logout()
	format.PrintSuccess("✓ Logged out %s", name)
	return nil
}

// StatusReport is the output of auth status
type StatusReport struct {
	LoggedIn  bool   `json:"logged_in" yaml:"logged_in"`
	Server    string `json:"server" yaml:"server"`
	UserID    string `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	User      string `json:"user,omitempty" yaml:"user,omitempty"`
	Mobile    string `json:"mobile,omitempty" yaml:"mobile,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	Expired   bool   `json:"expired,omitempty" yaml:"expired,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := app.Open(config.Get())
	if err != nil {
		return err
	}
	defer a.Close()

	return format.Print(BuildStatus(a.Manager, a.Config.Server.URL, time.Now()))
}

// BuildStatus summarises the session held by m
func BuildStatus(m *authpkg.Manager, server string, now time.Time) StatusReport {
	report := StatusReport{Server: server}

	sess := m.Session()
	if sess == nil {
		return report
	}

	report.LoggedIn = true
	report.UserID = string(sess.User.ID)
	report.User = sess.User.DisplayName()
	report.Mobile = sess.User.Mobile

	if info, ok := authpkg.InspectToken(sess.Token); ok && !info.ExpiresAt.IsZero() {
		report.ExpiresAt = info.ExpiresAt.Format(time.RFC3339)
		report.Expired = info.Expired(now)
	}
	return report
}

func init() {
	loginCmd.Flags().StringP("mobile", "m", "", "10-digit mobile number")
	loginCmd.Flags().String("otp", "", "6-digit OTP (prompted if omitted)")
	loginCmd.Flags().String("pin", "", "4-digit PIN (prompted if omitted)")
	loginCmd.Flags().BoolP("force", "f", false, "sign in again even if a session exists")

	AuthCmd.AddCommand(loginCmd)
	AuthCmd.AddCommand(logoutCmd)
	AuthCmd.AddCommand(statusCmd)
}
