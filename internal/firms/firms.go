// Package firms reads the list of firm home pages to scan.
package firms

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads one firm URL per line from path. Surrounding whitespace is
// trimmed and blank lines are skipped; lines are not validated as URLs.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open firm list %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	firms, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read firm list %s: %w", path, err)
	}
	return firms, nil
}

// Parse reads firm URLs from r using the same rules as Load.
func Parse(r io.Reader) ([]string, error) {
	var firms []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		firms = append(firms, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan lines: %w", err)
	}
	return firms, nil
}
