package format

import (
	"fmt"
	"io"
	"reflect"

	"github.com/casedesk/cli/internal/models"
)

// TextFormatter handles simple text output formatting
type TextFormatter struct{}

// NewTextFormatter creates a new text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format formats data as simple text
func (f *TextFormatter) Format(w io.Writer, data interface{}) error {
	if data == nil {
		fmt.Fprintln(w, "No data")
		return nil
	}

	switch v := data.(type) {
	case string:
		fmt.Fprintln(w, v)
	case []models.Case:
		for _, c := range v {
			fmt.Fprintf(w, "%s  %s  (%s, %s)  next: %s\n", c.CaseNumber, c.Title, c.Client, c.Status, c.NextHearing)
		}
	case []models.Hearing:
		for _, h := range v {
			fmt.Fprintf(w, "%s %s  %s  %s  %s\n", h.Date, h.Time, h.CaseNumber, h.Title, h.Court)
		}
	default:
		return f.formatReflection(w, data)
	}
	return nil
}

// formatReflection prints exported struct fields one per line
func (f *TextFormatter) formatReflection(w io.Writer, data interface{}) error {
	v := reflect.ValueOf(data)
	t := reflect.TypeOf(data)

	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			fmt.Fprintln(w, "No data")
			return nil
		}
		v = v.Elem()
		t = t.Elem()
	}

	if v.Kind() != reflect.Struct {
		fmt.Fprintf(w, "%v\n", data)
		return nil
	}

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if field.IsExported() {
			fmt.Fprintf(w, "%s: %v\n", formatHeader(field.Name), v.Field(i).Interface())
		}
	}
	return nil
}
