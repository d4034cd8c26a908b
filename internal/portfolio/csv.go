package portfolio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadOptions controls file ingestion.
type LoadOptions struct {
	// Delimiter for the file. If 0, auto-detects among ',', ';', '\t'
	// from the header line.
	Delimiter rune
}

// Load reads a portfolio file from disk.
func Load(path string, opt LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	ds, err := LoadReader(f, opt)
	if err != nil {
		return nil, err
	}
	slog.Debug("portfolio loaded",
		"source", path,
		"rows", ds.Len(),
		"missing_columns", ds.MissingColumns())
	return ds, nil
}

// LoadReader reads a portfolio file from rd. An empty input (no header at
// all) yields an empty dataset, not an error; absent columns are recorded
// and surface later as schema errors from the computations that need them.
// Malformed numeric or boolean cells fail the load with row and column
// context. Out-of-set status/segment values are not errors.
func LoadReader(rd io.Reader, opt LoadOptions) (*Dataset, error) {
	br := bufio.NewReader(rd)
	delim := opt.Delimiter
	if delim == 0 {
		peek, _ := br.Peek(4096)
		delim = sniffDelimiter(peek)
	}
	r := csv.NewReader(br)
	r.Comma = delim
	r.ReuseRecord = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Dataset{present: map[string]bool{}, delim: delim}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	present := make(map[string]bool, len(RequiredColumns()))
	for _, c := range RequiredColumns() {
		if _, ok := idx[c]; ok {
			present[c] = true
		}
	}

	ds := &Dataset{
		header:  append([]string(nil), header...),
		present: present,
		delim:   delim,
	}
	row := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", row+1, err)
		}
		row++
		raw := append([]string(nil), rec...)
		parsed, err := parseRecord(raw, idx, present, row)
		if err != nil {
			return nil, err
		}
		ds.records = append(ds.records, parsed)
	}
	return ds, nil
}

func parseRecord(raw []string, idx map[string]int, present map[string]bool, row int) (Record, error) {
	rec := Record{raw: raw}
	cell := func(col string) (string, bool) {
		if !present[col] {
			return "", false
		}
		i := idx[col]
		if i >= len(raw) {
			return "", false
		}
		return strings.TrimSpace(raw[i]), true
	}

	if v, ok := cell(ColStatus); ok {
		rec.Status = ParseStatus(v)
	}
	if v, ok := cell(ColSegment); ok {
		rec.Segment = ParseSegment(v)
	}
	if v, ok := cell(ColPaymentMethod); ok {
		rec.PaymentMethod = v
	}
	if v, ok := cell(ColProfession); ok {
		rec.Profession = v
	}
	if v, ok := cell(ColIrregularReason); ok {
		rec.IrregularReason = v
	}

	var err error
	if v, ok := cell(ColPaymentRegular); ok {
		if rec.PaymentRegular, err = parseBoolCell(v, ColPaymentRegular, row); err != nil {
			return Record{}, err
		}
	}
	if v, ok := cell(ColVisitCovered); ok {
		if rec.VisitCovered, err = parseBoolCell(v, ColVisitCovered, row); err != nil {
			return Record{}, err
		}
	}
	if v, ok := cell(ColGotLegalNotice); ok {
		if rec.GotLegalNotice, err = parseBoolCell(v, ColGotLegalNotice, row); err != nil {
			return Record{}, err
		}
	}
	if v, ok := cell(ColLoanAmount); ok {
		if rec.LoanAmount, err = parseFloatCell(v, ColLoanAmount, row); err != nil {
			return Record{}, err
		}
	}
	if v, ok := cell(ColEMIAmount); ok {
		if rec.EMIAmount, err = parseFloatCell(v, ColEMIAmount, row); err != nil {
			return Record{}, err
		}
	}
	if v, ok := cell(ColPaidEMIs); ok {
		if rec.PaidEMIs, err = parseIntCell(v, ColPaidEMIs, row); err != nil {
			return Record{}, err
		}
	}
	if v, ok := cell(ColDPD); ok {
		if rec.DPD, err = parseIntCell(v, ColDPD, row); err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}

// Empty cells are treated as missing and parse to the zero value.

func parseBoolCell(v, col string, row int) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("row %d: column %s: invalid boolean %q", row, col, v)
	}
	return b, nil
}

func parseFloatCell(v, col string, row int) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	// ParseFloat accepts "NaN" and "Inf" spellings; downstream arithmetic
	// needs finite values, so those fail the load like any malformed cell.
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("row %d: column %s: invalid number %q", row, col, v)
	}
	return f, nil
}

func parseIntCell(v, col string, row int) (int, error) {
	if v == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	// Whole-valued floats ("12.0") appear in spreadsheet exports. Values
	// outside int range would convert to an implementation-defined result,
	// so they fail the load instead.
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return 0, fmt.Errorf("row %d: column %s: invalid integer %q", row, col, v)
	}
	return int(f), nil
}

// sniffDelimiter picks the most frequent candidate separator in the first
// line. Comma wins ties.
func sniffDelimiter(b []byte) rune {
	line := string(b)
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	best, bestN := ',', strings.Count(line, ",")
	if n := strings.Count(line, ";"); n > bestN {
		best, bestN = ';', n
	}
	if n := strings.Count(line, "\t"); n > bestN {
		best = '\t'
	}
	return best
}

// Export writes the dataset header and each record's retained raw fields to
// w using the dataset's delimiter, so an exported subset reproduces the
// corresponding input rows exactly.
func Export(w io.Writer, d *Dataset) error {
	cw := csv.NewWriter(w)
	if d.delim != 0 {
		cw.Comma = d.delim
	}
	if len(d.header) > 0 {
		if err := cw.Write(d.header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for i, r := range d.records {
		if err := cw.Write(r.raw); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile writes the dataset to path via Export.
func ExportFile(path string, d *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	if err := Export(f, d); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}
	slog.Debug("portfolio exported", "path", path, "rows", d.Len())
	return nil
}

// ExportFileName returns the conventional timestamped export name.
func ExportFileName(t time.Time) string {
	return "portfolio_" + t.Format("20060102_150405") + ".csv"
}
