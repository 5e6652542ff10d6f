package encoding

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/martinohmann/dts/internal/value"
)

// decodeCSV reads rows into arrays of strings. The first row is treated as
// a header row and skipped unless CSVWithoutHeaders is set; with
// CSVHeadersAsKeys each data row becomes an object keyed by the headers.
func decodeCSV(data []byte, opts DecodeOptions) (value.Value, error) {
	r := csv.NewReader(bytes.NewReader(data))
	if opts.CSVDelimiter != 0 {
		r.Comma = opts.CSVDelimiter
	}

	records, err := r.ReadAll()
	if err != nil {
		return value.Null(), fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if opts.CSVHeadersAsKeys {
		if len(records) == 0 {
			return value.Null(), fmt.Errorf("%w: CSV input with headers as keys requires a header row", ErrDecode)
		}
		headers := records[0]
		rows := make([]value.Value, 0, len(records)-1)
		for _, record := range records[1:] {
			obj := value.NewObject()
			for i, header := range headers {
				obj.Set(header, value.String(record[i]))
			}
			rows = append(rows, value.Obj(obj))
		}
		return value.Array(rows...), nil
	}

	if !opts.CSVWithoutHeaders && len(records) > 0 {
		records = records[1:]
	}

	rows := make([]value.Value, 0, len(records))
	for _, record := range records {
		fields := make([]value.Value, len(record))
		for i, field := range record {
			fields[i] = value.String(field)
		}
		rows = append(rows, value.Array(fields...))
	}
	return value.Array(rows...), nil
}

func encodeCSV(v value.Value, opts EncodeOptions) ([]byte, error) {
	rows, ok := v.AsArray()
	if !ok {
		return nil, fmt.Errorf("%w: CSV output requires an array of rows, got %s", ErrEncode, v.Kind())
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if opts.CSVDelimiter != 0 {
		w.Comma = opts.CSVDelimiter
	}

	if opts.KeysAsCSVHeaders {
		if err := encodeCSVWithHeaders(w, rows); err != nil {
			return nil, err
		}
	} else {
		if err := encodeCSVRows(w, rows); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

func encodeCSVRows(w *csv.Writer, rows []value.Value) error {
	for i, row := range rows {
		fields, ok := row.AsArray()
		if !ok {
			return fmt.Errorf("%w: CSV row %d is not an array, got %s", ErrEncode, i, row.Kind())
		}

		record := make([]string, len(fields))
		for j, field := range fields {
			cell, err := csvCell(field)
			if err != nil {
				return fmt.Errorf("%w: CSV row %d, column %d: %v", ErrEncode, i, j, err)
			}
			record[j] = cell
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("%w: %v", ErrEncode, err)
		}
	}
	return nil
}

// encodeCSVWithHeaders takes the header row from the keys of the first
// object. Missing keys in later rows become empty cells, extra keys are
// dropped.
func encodeCSVWithHeaders(w *csv.Writer, rows []value.Value) error {
	if len(rows) == 0 {
		return nil
	}

	first, ok := rows[0].AsObject()
	if !ok {
		return fmt.Errorf("%w: CSV output with keys as headers requires objects, got %s", ErrEncode, rows[0].Kind())
	}

	headers := first.Keys()
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	for i, row := range rows {
		obj, ok := row.AsObject()
		if !ok {
			return fmt.Errorf("%w: CSV row %d is not an object, got %s", ErrEncode, i, row.Kind())
		}

		record := make([]string, len(headers))
		for j, header := range headers {
			val, ok := obj.Get(header)
			if !ok {
				continue
			}
			cell, err := csvCell(val)
			if err != nil {
				return fmt.Errorf("%w: CSV row %d, key %q: %v", ErrEncode, i, header, err)
			}
			record[j] = cell
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("%w: %v", ErrEncode, err)
		}
	}
	return nil
}

func csvCell(v value.Value) (string, error) {
	switch v.Kind() {
	case value.KindNull:
		return "", nil
	case value.KindString:
		s, _ := v.AsString()
		return s, nil
	case value.KindBool, value.KindNumber:
		return v.String(), nil
	default:
		return "", fmt.Errorf("cannot represent %s as a CSV cell", v.Kind())
	}
}
