// Package export renders a loaded DataFile as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/maxwell-fr/ffreader/pkg/flatfile"
)

// CSV writes a header row followed by one row per record. fields selects and
// orders the columns; when empty, all fields are emitted in definition order
// (taken from the first record). Records missing a requested field fail the
// export with flatfile.ErrFieldNotFound.
func CSV(w io.Writer, df *flatfile.DataFile, fields []string) error {
	records := df.Records()
	if len(records) == 0 {
		return nil
	}
	if len(fields) == 0 {
		for _, f := range records[0].Fields() {
			fields = append(fields, f.Name)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(fields); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	row := make([]string, len(fields))
	for _, record := range records {
		selected, err := record.Select(fields...)
		if err != nil {
			return fmt.Errorf("line %d: %w", record.Line(), err)
		}
		for i, f := range selected {
			row[i] = f.Value
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for line %d: %w", record.Line(), err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// JSON writes the records as a JSON array of objects, keys in definition
// order.
func JSON(w io.Writer, df *flatfile.DataFile) error {
	enc := json.NewEncoder(w)
	return enc.Encode(df.Records())
}
