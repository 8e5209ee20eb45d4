// Package tsv loads wide-format, tab-separated tables into core.RawTable values.
package tsv

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/csimplestring/go-csv/detector"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ChrisMcGann/potomato/pkg/core"
)

const sniffSize = 64 << 10

// Reader reads a header line, then the rows of a tab-separated table.
type Reader struct {
	csv    *csv.Reader
	header []string
	closer io.Closer
	log    logrus.FieldLogger
	line   int
}

// Open opens the file at path, decompressing it if needed, and reads its header.
// The caller must Close the returned Reader.
func Open(path string, log logrus.FieldLogger) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %s", path)
	}

	r, err := NewReader(f, log)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "cannot read %s", path)
	}
	r.closer = f
	return r, nil
}

// NewReader reads the header of a tab-separated table from r.
func NewReader(r io.Reader, log logrus.FieldLogger) (*Reader, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	in, dt, err := MaybeDecompress(r)
	if err != nil {
		return nil, err
	}
	if dt != DataTypeNoCompression {
		log.Debugf("Reading %s compressed input", dt)
	}

	br := bufio.NewReaderSize(in, sniffSize)
	if head, _ := br.Peek(sniffSize); len(head) > 0 {
		checkDelimiter(head, log)
	}

	cr := csv.NewReader(br)
	cr.Comma = '\t'
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("input is empty, expected a header line")
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot read header")
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	return &Reader{csv: cr, header: header, log: log, line: 1}, nil
}

// checkDelimiter warns when the input does not look tab-delimited.
func checkDelimiter(head []byte, log logrus.FieldLogger) {
	delimiters := detector.New().DetectDelimiter(bytes.NewReader(head), '"')
	if len(delimiters) == 0 {
		return
	}
	for _, d := range delimiters {
		if d == "\t" {
			return
		}
	}
	log.Warnf("Input looks %q-delimited, but only tab-separated tables are supported", delimiters[0])
}

// Header returns the column names.
func (r *Reader) Header() []string {
	return append([]string(nil), r.header...)
}

// ReadTable reads the remaining rows, keeping only the named columns in the given
// order. A nil columns slice keeps every column.
func (r *Reader) ReadTable(columns []string) (*core.RawTable, error) {
	if columns == nil {
		columns = r.header
	}

	pos := make(map[string]int, len(r.header))
	for i, name := range r.header {
		pos[name] = i
	}
	idx := make([]int, len(columns))
	for i, name := range columns {
		p, ok := pos[name]
		if !ok {
			return nil, errors.Errorf("column %q not in header", name)
		}
		idx[i] = p
	}

	t := &core.RawTable{Columns: make([]core.Column, len(columns))}
	for i, name := range columns {
		t.Columns[i].Name = name
	}

	for {
		rec, err := r.csv.Read()
		if err == io.EOF {
			break
		}
		r.line++
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", r.line)
		}
		for i, p := range idx {
			t.Columns[i].Cells = append(t.Columns[i].Cells, rec[p])
		}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	r.log.Debugf("Read %d rows, %d of %d columns", t.NumRows(), len(columns), len(r.header))
	return t, nil
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// ReadAll reads a complete table from r.
func ReadAll(r io.Reader, log logrus.FieldLogger) (*core.RawTable, error) {
	tr, err := NewReader(r, log)
	if err != nil {
		return nil, err
	}
	return tr.ReadTable(nil)
}
