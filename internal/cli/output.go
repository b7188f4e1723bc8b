package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/mokka-studios/datatable/pkg/actions"
)

// newTable returns a left-aligned table writer.
func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// printFields renders label/value pairs as a two column table.
func printFields(w io.Writer, fields []actions.Field) {
	table := newTable(w, []string{"Field", "Value"})
	for _, f := range fields {
		table.Append([]string{f.Label, f.Value})
	}
	table.Render()
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return sysError(fmt.Errorf("encode json: %w", err))
	}
	return nil
}
