package cases

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/casedesk/cli/internal/app"
	"github.com/casedesk/cli/internal/auth"
	casespkg "github.com/casedesk/cli/internal/cases"
	"github.com/casedesk/cli/internal/config"
	"github.com/casedesk/cli/internal/format"
	"github.com/casedesk/cli/internal/utils"
)

// CasesCmd represents the cases command
var CasesCmd = &cobra.Command{
	Use:   "cases",
	Short: "Case management commands",
	Long: `Case management commands for Casedesk CLI.

This command group lists and searches cases and shows case details.`,
}

// listCmd lists cases
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cases",
	Long:  "List cases, optionally filtered by search text (case number, title, client) and status",
	RunE:  runList,
}

// showCmd shows one case
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show case details",
	Long:  "Display detailed information about a specific case",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runList(cmd *cobra.Command, args []string) error {
	search, _ := cmd.Flags().GetString("search")
	status, _ := cmd.Flags().GetString("status")

	if err := utils.ValidateStatusFilter(status); err != nil {
		return err
	}

	a, err := app.Open(config.Get())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Require(auth.CasesRoute); err != nil {
		return err
	}

	all, err := a.Client.ListCases(cmd.Context(), a.Manager.Token())
	if err != nil {
		return fmt.Errorf("failed to list cases: %w", err)
	}

	filter := casespkg.Filter{Search: search, Status: status}
	return format.Print(filter.Apply(all))
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return utils.NewValidationError("id", fmt.Sprintf("invalid case id %q", args[0]))
	}

	a, err := app.Open(config.Get())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Require(fmt.Sprintf("%s/%d", auth.CasesRoute, id)); err != nil {
		return err
	}

	c, err := a.Client.GetCase(cmd.Context(), a.Manager.Token(), id)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return fmt.Errorf("case %d not found", id)
		}
		return fmt.Errorf("failed to get case: %w", err)
	}

	return format.Print(c)
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "search by case number, title, or client")
	listCmd.Flags().String("status", casespkg.StatusAll, "filter by status (all, active, pending, closed)")

	CasesCmd.AddCommand(listCmd)
	CasesCmd.AddCommand(showCmd)
}
