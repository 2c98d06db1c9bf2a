package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/JakeFAU/careerscan/internal/crawler"
)

// DefaultOutputPath is where itemized results are written.
const DefaultOutputPath = "openings.csv"

// NoOpeningsMessage is printed when an itemized scan finds nothing.
const NoOpeningsMessage = "No openings found."

const sheetName = "Openings"

// Header is the column row of the openings file.
var Header = []string{"firm_url", "opening_title", "job_link"}

// Flatten concatenates the openings of every result in order.
func Flatten(results []crawler.ScanResult) []crawler.Opening {
	var out []crawler.Opening
	for _, r := range results {
		out = append(out, r.Openings...)
	}
	return out
}

// WriteCSV writes the header and one row per opening.
func WriteCSV(w io.Writer, openings []crawler.Opening) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, o := range openings {
		if err := cw.Write([]string{o.FirmURL, o.Title, o.Link}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// SaveOpenings writes openings to path, as an Excel workbook when the path
// ends in .xlsx and as CSV otherwise.
func SaveOpenings(path string, openings []crawler.Opening) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return saveXLSX(path, openings)
	}
	return saveCSV(path, openings)
}

// WriteItemized saves the openings file and prints the confirmation to out.
// When there are no openings nothing is written to disk.
func WriteItemized(out io.Writer, path string, openings []crawler.Opening) error {
	if len(openings) == 0 {
		if _, err := fmt.Fprintln(out, NoOpeningsMessage); err != nil {
			return fmt.Errorf("write message: %w", err)
		}
		return nil
	}
	if err := SaveOpenings(path, openings); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "Saved %d openings to %s\n", len(openings), path); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

func saveCSV(path string, openings []crawler.Opening) (err error) {
	f, err := os.Create(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := WriteCSV(f, openings); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func saveXLSX(path string, openings []crawler.Opening) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // in-memory workbook

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	if err := setRow(f, 1, Header); err != nil {
		return err
	}
	for i, o := range openings {
		if err := setRow(f, i+2, []string{o.FirmURL, o.Title, o.Link}); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return fmt.Errorf("set %s: %w", cell, err)
		}
	}
	return nil
}
