package format

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/casedesk/cli/internal/models"
)

// TableFormatter handles table output formatting
type TableFormatter struct {
	useColors bool
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(useColors bool) *TableFormatter {
	return &TableFormatter{
		useColors: useColors,
	}
}

// Format formats data as a table
func (f *TableFormatter) Format(w io.Writer, data interface{}) error {
	if data == nil {
		fmt.Fprintln(w, "No data to display")
		return nil
	}

	switch v := data.(type) {
	case []models.Case:
		return f.formatCases(w, v)
	case []models.Hearing:
		return f.formatHearings(w, v)
	case models.Dashboard:
		return f.formatDashboard(w, &v)
	case *models.Dashboard:
		return f.formatDashboard(w, v)
	case map[string]interface{}:
		return f.formatSingleMap(w, v)
	default:
		return f.formatReflection(w, data)
	}
}

func (f *TableFormatter) formatCases(w io.Writer, cases []models.Case) error {
	if len(cases) == 0 {
		fmt.Fprintln(w, "No cases found matching your criteria")
		return nil
	}

	table := f.newTable(w, []string{"ID", "Case Number", "Title", "Client", "Court", "Filing Date", "Next Hearing", "Status", "Priority"})
	for _, c := range cases {
		table.Append([]string{
			strconv.Itoa(c.ID),
			c.CaseNumber,
			c.Title,
			c.Client,
			c.Court,
			c.FilingDate,
			f.highlight(c.NextHearing),
			f.status(c.Status),
			c.Priority,
		})
	}
	table.Render()
	return nil
}

func (f *TableFormatter) formatHearings(w io.Writer, hearings []models.Hearing) error {
	if len(hearings) == 0 {
		fmt.Fprintln(w, "No upcoming hearings")
		return nil
	}

	table := f.newTable(w, []string{"Date", "Time", "Case Number", "Title", "Court"})
	for _, h := range hearings {
		table.Append([]string{f.highlight(h.Date), h.Time, h.CaseNumber, h.Title, h.Court})
	}
	table.Render()
	return nil
}

func (f *TableFormatter) formatDashboard(w io.Writer, d *models.Dashboard) error {
	stats := f.newTable(w, []string{"Total Cases", "Pending Cases", "Closed Cases", "Urgent Cases"})
	stats.Append([]string{
		strconv.Itoa(d.Stats.TotalCases),
		strconv.Itoa(d.Stats.PendingCases),
		strconv.Itoa(d.Stats.ClosedCases),
		strconv.Itoa(d.Stats.UrgentCases),
	})
	stats.Render()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent Cases")
	recent := f.newTable(w, []string{"Case Number", "Title", "Next Hearing", "Status"})
	for _, c := range d.RecentCases {
		recent.Append([]string{c.CaseNumber, c.Title, c.NextHearing, f.status(c.Status)})
	}
	recent.Render()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Upcoming Hearings")
	return f.formatHearings(w, d.UpcomingHearings)
}

// formatSingleMap formats a single map as a vertical table
func (f *TableFormatter) formatSingleMap(w io.Writer, data map[string]interface{}) error {
	table := f.newTable(w, []string{"Property", "Value"})
	for key, value := range data {
		table.Append([]string{formatHeader(key), f.formatValue(value)})
	}
	table.Render()
	return nil
}

// formatReflection uses reflection to format unknown types
func (f *TableFormatter) formatReflection(w io.Writer, data interface{}) error {
	v := reflect.ValueOf(data)
	t := reflect.TypeOf(data)

	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			fmt.Fprintln(w, "No data to display")
			return nil
		}
		v = v.Elem()
		t = t.Elem()
	}

	if v.Kind() != reflect.Struct {
		fmt.Fprintf(w, "%v\n", data)
		return nil
	}

	table := f.newTable(w, []string{"Field", "Value"})
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if field.IsExported() {
			table.Append([]string{formatHeader(field.Name), f.formatValue(v.Field(i).Interface())})
		}
	}
	table.Render()
	return nil
}

func (f *TableFormatter) newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	if f.useColors {
		colors := make([]tablewriter.Colors, len(headers))
		for i := range colors {
			colors[i] = tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiBlueColor}
		}
		table.SetHeaderColor(colors...)
	}
	return table
}

func (f *TableFormatter) status(s string) string {
	if !f.useColors {
		return s
	}
	switch s {
	case models.StatusActive:
		return color.GreenString(s)
	case models.StatusPending:
		return color.YellowString(s)
	case models.StatusClosed:
		return color.HiBlackString(s)
	}
	return s
}

func (f *TableFormatter) highlight(s string) string {
	if f.useColors {
		return color.RedString(s)
	}
	return s
}

// formatValue formats a value for display
func (f *TableFormatter) formatValue(value interface{}) string {
	if value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case bool:
		if f.useColors {
			if v {
				return color.GreenString("true")
			}
			return color.RedString("false")
		}
		return strconv.FormatBool(v)
	case float32, float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatHeader turns snake_case and CamelCase keys into Title Case
func formatHeader(header string) string {
	var words []string
	for _, part := range strings.Split(header, "_") {
		words = append(words, splitCamel(part)...)
	}
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

func splitCamel(s string) []string {
	var (
		words []string
		start int
	)
	for i := 1; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' && s[i-1] >= 'a' && s[i-1] <= 'z' {
			words = append(words, s[start:i])
			start = i
		}
	}
	if start < len(s) {
		words = append(words, s[start:])
	}
	return words
}
