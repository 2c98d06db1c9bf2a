package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JakeFAU/careerscan/internal/crawler"
)

var sampleOpenings = []crawler.Opening{
	{FirmURL: "https://example.com", Title: "Open Positions", Link: "https://example.com/careers"},
	{FirmURL: "https://b.test", Title: "Architect, Senior", Link: "https://b.test/jobs/1"},
}

func TestFlattenKeepsOrder(t *testing.T) {
	t.Parallel()

	got := Flatten([]crawler.ScanResult{
		{Openings: sampleOpenings[:1]},
		{},
		{Openings: sampleOpenings[1:]},
	})
	require.Equal(t, sampleOpenings, got)
	require.Empty(t, Flatten(nil))
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleOpenings))
	require.Equal(t,
		"firm_url,opening_title,job_link\n"+
			"https://example.com,Open Positions,https://example.com/careers\n"+
			"https://b.test,\"Architect, Senior\",https://b.test/jobs/1\n",
		buf.String())
}

func TestWriteItemizedNoOpenings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "openings.csv")
	var out bytes.Buffer
	require.NoError(t, WriteItemized(&out, path, nil))
	require.Equal(t, "No openings found.\n", out.String())
	_, err := os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteItemizedCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "openings.csv")
	var out bytes.Buffer
	require.NoError(t, WriteItemized(&out, path, sampleOpenings))
	require.Equal(t, "Saved 2 openings to "+path+"\n", out.String())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck // test cleanup
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"firm_url", "opening_title", "job_link"},
		{"https://example.com", "Open Positions", "https://example.com/careers"},
		{"https://b.test", "Architect, Senior", "https://b.test/jobs/1"},
	}, rows)
}

func TestWriteItemizedXLSX(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "openings.xlsx")
	var out bytes.Buffer
	require.NoError(t, WriteItemized(&out, path, sampleOpenings))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck // test cleanup
	rows, err := f.GetRows("Openings")
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"firm_url", "opening_title", "job_link"},
		{"https://example.com", "Open Positions", "https://example.com/careers"},
		{"https://b.test", "Architect, Senior", "https://b.test/jobs/1"},
	}, rows)
}

func TestSaveOpeningsBadPath(t *testing.T) {
	t.Parallel()

	err := SaveOpenings(filepath.Join(t.TempDir(), "missing", "openings.csv"), sampleOpenings)
	require.Error(t, err)
}
