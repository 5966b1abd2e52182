package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"olistInsights/pkg/apperrors"

	"github.com/shopspring/decimal"
)

// Olist timestamps are naive local date-times; they are kept as UTC wall
// clock values so no zone arithmetic ever shifts them.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// record is one CSV line addressed by header name. The first conversion
// error sticks and is reported by err.
type record struct {
	file   string
	line   int
	header map[string]int
	fields []string
	fail   error
}

func (r *record) raw(col string) string {
	idx, ok := r.header[col]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

func (r *record) setErr(col, value string, err error) {
	if r.fail == nil {
		r.fail = fmt.Errorf("%w: %s line %d column %s: cannot parse %q: %v", apperrors.ErrLoad, r.file, r.line, col, value, err)
	}
}

func (r *record) err() error {
	return r.fail
}

func (r *record) str(col string) string {
	return r.raw(col)
}

func (r *record) integer(col string) int {
	v := r.raw(col)
	if v == "" {
		r.setErr(col, v, errors.New("value is required"))
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		// some exports write integer columns as "3.0"
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || f != float64(int(f)) {
			r.setErr(col, v, err)
			return 0
		}
		n = int(f)
	}
	return n
}

func (r *record) optInteger(col string) *int {
	if r.raw(col) == "" {
		return nil
	}
	n := r.integer(col)
	return &n
}

func (r *record) float(col string) float64 {
	v := r.raw(col)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.setErr(col, v, err)
		return 0
	}
	return f
}

func (r *record) money(col string) decimal.Decimal {
	v := r.raw(col)
	d, err := decimal.NewFromString(v)
	if err != nil {
		r.setErr(col, v, err)
		return decimal.Zero
	}
	return d
}

func (r *record) timestamp(col string) time.Time {
	v := r.raw(col)
	t, err := parseTime(v)
	if err != nil {
		r.setErr(col, v, err)
	}
	return t
}

func (r *record) optTimestamp(col string) *time.Time {
	if r.raw(col) == "" {
		return nil
	}
	t := r.timestamp(col)
	return &t
}

func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, errors.New("value is required")
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unsupported timestamp layout")
}

// readTable streams path and calls fn for every data row. All required
// columns must be present in the header.
func readTable(path string, required []string, fn func(*record) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrLoad, err)
	}
	defer f.Close()

	return decodeTable(f, path, required, fn)
}

func decodeTable(in io.Reader, name string, required []string, fn func(*record) error) error {
	reader := csv.NewReader(in)
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1

	head, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %s: missing header row", apperrors.ErrLoad, name)
		}
		return fmt.Errorf("%w: %s: %v", apperrors.ErrLoad, name, err)
	}

	header := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		header[strings.ToLower(strings.Trim(h, `"`))] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := header[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s: missing columns %s", apperrors.ErrLoad, name, strings.Join(missing, ", "))
	}

	line := 1
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("%w: %s line %d: %v", apperrors.ErrLoad, name, line, err)
		}
		if len(fields) != len(head) {
			return fmt.Errorf("%w: %s line %d: expected %d fields, got %d", apperrors.ErrLoad, name, line, len(head), len(fields))
		}

		rec := &record{file: name, line: line, header: header, fields: fields}
		if err := fn(rec); err != nil {
			return err
		}
		if err := rec.err(); err != nil {
			return err
		}
	}
}
