package source

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// OpenText reads a report text dump (PDF text extraction output). The
// dumps come out of the extraction tooling as Latin-1, pages separated
// by form feeds. Each page becomes one sheet whose rows are its
// non-empty lines, one cell per row.
func OpenText(path string) ([]Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open text report %s, error %q", path, err)
	}
	defer f.Close()
	return readText(f, path)
}

func readText(r io.Reader, name string) ([]Sheet, error) {
	b, err := ioutil.ReadAll(charmap.ISO8859_1.NewDecoder().Reader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to decode text report %s, error %q", name, err)
	}
	var sheets []Sheet
	for i, page := range strings.Split(string(b), "\f") {
		var rows [][]string
		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
			if line == "" {
				continue
			}
			rows = append(rows, []string{line})
		}
		if len(rows) == 0 {
			continue
		}
		sheets = append(sheets, Sheet{Name: fmt.Sprintf("page-%d", i+1), Rows: rows})
	}
	return sheets, nil
}

// Lines flattens a sheet built by OpenText back into its lines.
func (s Sheet) Lines() []string {
	lines := make([]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		if len(row) > 0 {
			lines = append(lines, row[0])
		}
	}
	return lines
}
