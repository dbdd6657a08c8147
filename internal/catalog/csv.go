package catalog

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// ReadCSV splits an uploaded menu CSV into header and data rows.
// Ragged rows are tolerated; the normalizer treats short rows as
// having empty cells.
func ReadCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, errors.New("empty or unreadable CSV file")
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// skip malformed lines, keep loading the rest
			continue
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}
