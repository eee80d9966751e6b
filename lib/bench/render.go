// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bench

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
)

// maxNameWidth bounds the sample column; longer names are truncated
// with an ellipsis.
const maxNameWidth = 24

const columnSeparator = "  "

var (
	headerColor  = lipgloss.Color("#7aa2f7")
	fastestColor = lipgloss.Color("#9ece6a")
	lossyColor   = lipgloss.Color("#565f89")
)

// RenderTable writes the report as an aligned table: one row per
// sample, one column per contestant, each cell showing the average
// time and throughput. The fastest lossless contestant on each sample
// is highlighted. profile selects the color depth; termenv.Ascii
// produces plain text.
func RenderTable(w io.Writer, report *Report, profile termenv.Profile) error {
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	headerStyle := renderer.NewStyle().Bold(true).Foreground(headerColor)
	fastestStyle := renderer.NewStyle().Bold(true).Foreground(fastestColor)
	lossyStyle := renderer.NewStyle().Foreground(lossyColor)
	plainStyle := renderer.NewStyle()

	contestants := report.contestantNames()
	lossy := report.lossyContestants()

	header := append([]string{"sample", "size", "escaped"}, contestants...)
	rows := make([][]string, 0, len(report.Samples))
	fastest := make([]string, 0, len(report.Samples))
	for _, sample := range report.Samples {
		row := []string{
			sample.Name,
			humanize.IBytes(uint64(sample.Size)),
			humanize.Comma(int64(sample.Escaped)),
		}
		best := ""
		var bestAverage time.Duration
		for _, contestant := range contestants {
			result, ok := report.Lookup(contestant, sample.Name)
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, formatCell(result))
			if !lossy[contestant] && (best == "" || result.Average < bestAverage) {
				best, bestAverage = contestant, result.Average
			}
		}
		rows = append(rows, row)
		fastest = append(fastest, best)
	}

	widths := make([]int, len(header))
	for index, cell := range header {
		widths[index] = ansi.StringWidth(cell)
	}
	for _, row := range rows {
		for index, cell := range row {
			widths[index] = max(widths[index], ansi.StringWidth(cell))
		}
	}
	widths[0] = min(widths[0], maxNameWidth)

	var output strings.Builder
	fmt.Fprintf(&output, "run %s  %s  %d runs\n\n",
		report.RunID, report.Started.UTC().Format(time.RFC3339), report.Runs)

	headerCells := make([]string, len(header))
	for index, cell := range header {
		headerCells[index] = headerStyle.Render(pad(cell, widths[index], index > 0))
	}
	output.WriteString(strings.Join(headerCells, columnSeparator) + "\n")

	for rowIndex, row := range rows {
		cells := make([]string, len(row))
		for index, cell := range row {
			style := plainStyle
			if index >= 3 {
				contestant := contestants[index-3]
				switch {
				case contestant == fastest[rowIndex]:
					style = fastestStyle
				case lossy[contestant]:
					style = lossyStyle
				}
			}
			cells[index] = style.Render(pad(cell, widths[index], index > 0))
		}
		output.WriteString(strings.Join(cells, columnSeparator) + "\n")
	}

	_, err := io.WriteString(w, output.String())
	return err
}

// formatCell renders a result as "1.234ms 812 MB/s".
func formatCell(result Result) string {
	average := result.Average
	switch {
	case average >= time.Millisecond:
		average = average.Round(time.Microsecond)
	case average >= time.Microsecond:
		average = average.Round(time.Nanosecond * 10)
	}
	throughput := result.Throughput()
	if throughput == 0 {
		return average.String()
	}
	return average.String() + " " + humanize.Bytes(uint64(throughput)) + "/s"
}

// pad truncates cell to width and pads it with spaces, on the left
// when alignRight is set.
func pad(cell string, width int, alignRight bool) string {
	if ansi.StringWidth(cell) > width {
		cell = ansi.Truncate(cell, width, "…")
	}
	padding := strings.Repeat(" ", max(0, width-ansi.StringWidth(cell)))
	if alignRight {
		return padding + cell
	}
	return cell + padding
}
