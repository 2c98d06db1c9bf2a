package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/JakeFAU/careerscan/internal/crawler"
)

// Status output formats.
const (
	StatusLines = "lines"
	StatusTable = "table"
)

// StatusLine formats one firm the way the status report prints it.
func StatusLine(r crawler.FirmResult) string {
	if r.Jobs {
		return fmt.Sprintf("%s: openings found → %s", r.Firm, strings.Join(r.Pages, ", "))
	}
	return fmt.Sprintf("%s: %s", r.Firm, r.Summary())
}

// WriteStatus prints one line per firm, in the order given.
func WriteStatus(w io.Writer, results []crawler.FirmResult) error {
	for _, r := range results {
		if _, err := fmt.Fprintln(w, StatusLine(r)); err != nil {
			return fmt.Errorf("write status line: %w", err)
		}
	}
	return nil
}

// WriteStatusTable renders the same information as WriteStatus as a table.
func WriteStatusTable(w io.Writer, results []crawler.FirmResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Firm", "Openings", "Pages / Note"})

	found := 0
	for i, r := range results {
		detail := r.Summary()
		if r.Jobs {
			found++
			detail = strings.Join(r.Pages, "\n")
		}
		t.AppendRow(table.Row{i + 1, r.Firm, yesNo(r.Jobs), detail})
	}
	t.AppendFooter(table.Row{"Total", len(results), found, ""})
	t.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
