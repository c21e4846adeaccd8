package plan

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// csvHeader is the fixed two-column header for assignment files.
var csvHeader = []string{"geo_id", "district"}

// WriteAssignmentsCSV writes the plan's current assignment to w in the
// flat "geo_id,district" format: one header row, then one row per block
// with its GeoId code (written verbatim, leading zeros preserved) and its
// district as a plain decimal integer (no zero-padding).
func (pl *Plan) WriteAssignmentsCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("plan: WriteAssignmentsCSV: %w", err)
	}
	for i, id := range pl.geoIDs {
		district := pl.part.Assignment(i)
		if err := cw.Write([]string{id.Code, strconv.Itoa(district)}); err != nil {
			return fmt.Errorf("plan: WriteAssignmentsCSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadAssignmentsCSV reads a "geo_id,district" assignment file from r and
// applies it via SetAssignments. Blocks present in the graph but absent
// from the file default to district 0 (unassigned), matching
// SetAssignments' contract.
func (pl *Plan) ReadAssignmentsCSV(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("plan: ReadAssignmentsCSV: reading header: %w", err)
	}
	if header[0] != csvHeader[0] || header[1] != csvHeader[1] {
		return fmt.Errorf("plan: ReadAssignmentsCSV: unexpected header %v, want %v", header, csvHeader)
	}

	assignments := make(map[string]int)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("plan: ReadAssignmentsCSV: %w", err)
		}
		district, err := strconv.Atoi(record[1])
		if err != nil {
			return fmt.Errorf("plan: ReadAssignmentsCSV: invalid district %q for GeoId %q: %w", record[1], record[0], err)
		}
		assignments[record[0]] = district
	}

	return pl.SetAssignments(assignments)
}
