// Package sqlite provides SQLite database writing for protein datasets
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/ChrisMcGann/potomato/pkg/core"
)

// Date format for HeaderTable (ISO 8601)
const headerDateFormat = "2006-01-02"

// Writer handles writing datasets to SQLite database files
type Writer struct {
	db            *sql.DB
	tx            *sql.Tx
	outputPath    string
	proteinStmt   *sql.Stmt
	sampleStmt    *sql.Stmt
	intensityStmt *sql.Stmt
	proteinIDs    map[string]int64
	sampleIDs     map[string]int64
	closed        bool
}

// NewWriter creates a new SQLite writer. The schema is created if missing; rows are
// added to an existing database, so IDs collide unless outputPath is new.
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		proteinIDs: make(map[string]int64),
		sampleIDs:  make(map[string]int64),
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	w.tx = tx

	if err := w.prepareStatements(); err != nil {
		tx.Rollback()
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ProteinTable (
		ProteinId INTEGER PRIMARY KEY,
		Protein TEXT NOT NULL UNIQUE,
		Identifiers TEXT
	);

	CREATE TABLE IF NOT EXISTS SampleTable (
		SampleId INTEGER PRIMARY KEY,
		Sample TEXT NOT NULL UNIQUE,
		Condition TEXT
	);

	CREATE TABLE IF NOT EXISTS IntensityTable (
		ProteinId INTEGER REFERENCES ProteinTable(ProteinId),
		SampleId INTEGER REFERENCES SampleTable(SampleId),
		Intensity DOUBLE,
		PRIMARY KEY (ProteinId, SampleId)
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT,
		IdentifierColumns TEXT,
		Scale TEXT,
		Conditions TEXT
	);
	`

	if _, err := w.db.Exec(schema); err != nil {
		return errors.Wrap(err, "failed to create tables")
	}
	return nil
}

// prepareStatements prepares SQL statements for batch insertion
func (w *Writer) prepareStatements() error {
	var err error

	w.proteinStmt, err = w.tx.Prepare(`INSERT INTO ProteinTable (ProteinId, Protein, Identifiers) VALUES (?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "failed to prepare protein statement")
	}

	w.sampleStmt, err = w.tx.Prepare(`INSERT INTO SampleTable (SampleId, Sample, Condition) VALUES (?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "failed to prepare sample statement")
	}

	w.intensityStmt, err = w.tx.Prepare(`INSERT INTO IntensityTable (ProteinId, SampleId, Intensity) VALUES (?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "failed to prepare intensity statement")
	}

	return nil
}

// WriteDataset writes every record of d and the dataset header
func (w *Writer) WriteDataset(d *core.ProteinDataset) error {
	primary := 0
	idCols := d.IDColumns()
	for i, c := range idCols {
		if c == d.PrimaryIDColumn() {
			primary = i
		}
	}

	for _, rec := range d.Records() {
		if err := w.writeRecord(rec, primary); err != nil {
			return err
		}
	}

	_, err := w.tx.Exec(`
		INSERT INTO HeaderTable (version, CreationDate, IdentifierColumns, Scale, Conditions)
		VALUES (?, ?, ?, ?, ?)
	`, 1, time.Now().Format(headerDateFormat), strings.Join(idCols, ","), d.Scale().String(),
		strings.Join(d.Conditions().Tags(), ","))
	if err != nil {
		return errors.Wrap(err, "failed to insert header")
	}
	return nil
}

func (w *Writer) writeRecord(rec core.Record, primary int) error {
	protein := rec.IDs[primary]
	proteinID, ok := w.proteinIDs[protein]
	if !ok {
		proteinID = int64(len(w.proteinIDs) + 1)
		if _, err := w.proteinStmt.Exec(proteinID, protein, strings.Join(rec.IDs, "\t")); err != nil {
			return errors.Wrapf(err, "failed to insert protein %s", protein)
		}
		w.proteinIDs[protein] = proteinID
	}

	sampleID, ok := w.sampleIDs[rec.Sample]
	if !ok {
		sampleID = int64(len(w.sampleIDs) + 1)
		if _, err := w.sampleStmt.Exec(sampleID, rec.Sample, rec.Condition); err != nil {
			return errors.Wrapf(err, "failed to insert sample %s", rec.Sample)
		}
		w.sampleIDs[rec.Sample] = sampleID
	}

	// Missing intensities are stored as NULL
	if _, err := w.intensityStmt.Exec(proteinID, sampleID, rec.Intensity); err != nil {
		return errors.Wrapf(err, "failed to insert intensity for %s in %s", protein, rec.Sample)
	}
	return nil
}

// Finalize commits pending rows and closes the database
func (w *Writer) Finalize() error {
	if w.closed {
		return nil
	}
	w.closed = true

	w.closeStatements()
	if err := w.tx.Commit(); err != nil {
		w.db.Close()
		return errors.Wrap(err, "failed to commit")
	}

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Close discards uncommitted rows and closes the database. It is a no-op after Finalize.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	w.closeStatements()
	w.tx.Rollback()
	return w.db.Close()
}

func (w *Writer) closeStatements() {
	for _, stmt := range []*sql.Stmt{w.proteinStmt, w.sampleStmt, w.intensityStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
}

// WriteFile writes d to a new SQLite database at path, replacing any existing file.
func WriteFile(path string, d *core.ProteinDataset) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to replace %s", path)
	}

	w, err := NewWriter(path)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.WriteDataset(d); err != nil {
		return err
	}
	return w.Finalize()
}
