package calendar

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

// CalendarCmd lists hearings
var CalendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show scheduled hearings",
	Long:  "List hearings in date order. Past hearings are hidden unless --all is given.",
	RunE:  runCalendar,
}

func runCalendar(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	from, _ := cmd.Flags().GetString("from")

	a, err := app.Open(config.Get())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Require(auth.CalendarRoute); err != nil {
		return err
	}

	hearings, err := a.Client.ListHearings(cmd.Context(), a.Manager.Token())
	if err != nil {
		return fmt.Errorf("failed to list hearings: %w", err)
	}

	if all {
		from = ""
	} else if from == "" {
		from = time.Now().Format(time.DateOnly)
	}

	return format.Print(cases.Upcoming(hearings, from, -1))
}

func init() {
	CalendarCmd.Flags().Bool("all", false, "include past hearings")
	CalendarCmd.Flags().String("from", "", "first date to show (YYYY-MM-DD, default today)")
}
