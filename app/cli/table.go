package cli

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"go.hackfix.me/hexo/web/client"
)

func newTable(header []string, data [][]string, w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("   ")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(data)

	return table
}

func renderEntries(entries []client.Entry, w io.Writer) {
	data := make([][]string, 0, len(entries))
	for _, e := range entries {
		data = append(data, []string{e.Key, string(e.Value.Raw())})
	}
	newTable([]string{"Key", "Value"}, data, w).Render()
}
