package dashboard

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/casedesk/cli/internal/app"
	"github.com/casedesk/cli/internal/auth"
	"github.com/casedesk/cli/internal/cases"
	"github.com/casedesk/cli/internal/config"
	"github.com/casedesk/cli/internal/format"
)

// DashboardCmd shows case statistics, recent cases and upcoming hearings
var DashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the case overview",
	Long:  "Display case statistics, recent cases and upcoming hearings",
	RunE:  runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	a, err := app.Open(config.Get())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Require(auth.DashboardRoute); err != nil {
		return err
	}

	token := a.Manager.Token()
	all, err := a.Client.ListCases(cmd.Context(), token)
	if err != nil {
		return fmt.Errorf("failed to load cases: %w", err)
	}
	hearings, err := a.Client.ListHearings(cmd.Context(), token)
	if err != nil {
		return fmt.Errorf("failed to load hearings: %w", err)
	}

	return format.Print(cases.BuildDashboard(all, hearings, time.Now().Format(time.DateOnly)))
}
