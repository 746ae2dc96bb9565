package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/dygy/guitarset/internal/augment"
)

// LabelTable is the tabular label structure parallel to the feature
// tensor: one row per augmented sample, columns = flattened effect
// parameter keys plus group, model and chords.
type LabelTable struct {
	Columns []string
	Rows    []map[string]any
}

// BuildTable collects per-sample labels into a table and appends the
// file-derived metadata columns. files must be in enumeration order;
// each file contributes nAugment consecutive rows.
func BuildTable(labels []augment.Labels, files []TrackFile, nAugment int) LabelTable {
	// Union of flattened keys. Under the classification exercise some rows
	// miss skipped effects' keys, so every row has to be scanned.
	keys := map[string]bool{}
	for _, l := range labels {
		for k := range l {
			if k != "group" {
				keys[k] = true
			}
		}
	}
	columns := make([]string, 0, len(keys)+3)
	for k := range keys {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	columns = append(columns, "group", "model", "chords")

	rows := make([]map[string]any, len(labels))
	for i, l := range labels {
		row := make(map[string]any, len(l)+2)
		for k, v := range l {
			row[k] = v
		}
		f := files[i/nAugment]
		row["model"] = f.Model
		row["chords"] = f.Chord
		rows[i] = row
	}

	return LabelTable{Columns: columns, Rows: rows}
}

// WriteCSV renders the table with a leading row-index column. Cells for
// keys a row does not carry (effects skipped under classification) stay
// empty.
func (t LabelTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{""}, t.Columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(t.Columns)+1)
	for i, row := range t.Rows {
		record[0] = fmt.Sprint(i)
		for j, col := range t.Columns {
			if v, ok := row[col]; ok {
				record[j+1] = fmt.Sprint(v)
			} else {
				record[j+1] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
