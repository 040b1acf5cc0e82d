package table

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/babarot/imgsort/internal/core/types"
	"github.com/babarot/imgsort/internal/rename"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

type PrintOptions struct {
	// Size returns the size of an item; nil hides the size column
	Size func(types.ItemID) int64

	// ShowUnchanged includes items that already carry their final name
	ShowUnchanged bool
}

// PrintPlan writes the rename plan as a table
func PrintPlan(w io.Writer, steps []rename.Step, opts PrintOptions) {
	rows := steps
	if !opts.ShowUnchanged {
		rows = lo.Reject(steps, func(s rename.Step, _ int) bool { return s.Unchanged() })
	}

	header := []string{"#", "Current", "New", "Thumb"}
	if opts.Size != nil {
		header = append(header, "Size")
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetColumnSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, s := range rows {
		thumb := "-"
		if s.Item.HasThumb() {
			thumb = "yes"
		}
		row := []string{
			strconv.Itoa(s.Rank),
			s.Item.Name(),
			filepath.Base(s.Dst),
			thumb,
		}
		if opts.Size != nil {
			row = append(row, humanize.Bytes(uint64(opts.Size(s.Item.ID))))
		}
		table.Append(row)
	}
	if len(rows) > 0 {
		table.Render()
	}

	green := color.New(color.FgHiGreen).SprintfFunc()
	white := color.New(color.FgWhite).SprintfFunc()
	fmt.Fprintf(w, "\n%s %s\n",
		green("%d to rename,", len(rows)),
		white("%d already in place", len(steps)-len(rows)),
	)
}
