package store

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/thaodangspace/crashlogs/internal/report"
)

const schema = `
CREATE TABLE IF NOT EXISTS crashes (
    type TEXT,
    crash_path TEXT NOT NULL,
    pid TEXT,
    path TEXT,
    identifier TEXT,
    version TEXT,
    parent TEXT,
    responsible TEXT,
    uid TEXT,
    datetime TEXT,
    crashed_thread TEXT,
    exception_type TEXT,
    exception_codes TEXT,
    exception_notes TEXT,
    registers TEXT,
    stack_trace TEXT
);

CREATE INDEX IF NOT EXISTS idx_crashes_crash_path ON crashes(crash_path);
CREATE INDEX IF NOT EXISTS idx_crashes_uid ON crashes(uid);
`

// Store persists parsed crash records in a SQLite database so they can be
// queried after the scan.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the crashes
// table exists. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=OFF")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create crashes table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert appends one record to the crashes table. Absent fields are stored
// as NULL so the table stays as sparse as the records.
func (s *Store) Insert(rec report.Record) error {
	builder := sq.Insert("crashes").Columns(report.Columns...)

	vals := make([]interface{}, len(report.Columns))
	for i, col := range report.Columns {
		if v := rec.Get(col); v != "" {
			vals[i] = v
		}
	}
	builder = builder.Values(vals...)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert crash record: %w", err)
	}
	return nil
}

// InsertAll inserts records in order, stopping at the first failure.
func (s *Store) InsertAll(records []report.Record) error {
	for _, rec := range records {
		if err := s.Insert(rec); err != nil {
			return err
		}
	}
	return nil
}

// All returns every stored record in insertion order.
func (s *Store) All() ([]report.Record, error) {
	return s.query(sq.Select(report.Columns...).From("crashes").OrderBy("rowid"))
}

// ByUID returns the stored records whose uid column matches uid, in
// insertion order.
func (s *Store) ByUID(uid string) ([]report.Record, error) {
	return s.query(sq.Select(report.Columns...).
		From("crashes").
		Where(sq.Eq{"uid": uid}).
		OrderBy("rowid"))
}

func (s *Store) query(builder sq.SelectBuilder) ([]report.Record, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query crashes: %w", err)
	}
	defer rows.Close()

	var records []report.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(rows *sql.Rows) (report.Record, error) {
	cols := make([]sql.NullString, len(report.Columns))
	dest := make([]interface{}, len(cols))
	for i := range cols {
		dest[i] = &cols[i]
	}

	var rec report.Record
	if err := rows.Scan(dest...); err != nil {
		return rec, fmt.Errorf("failed to scan crash record: %w", err)
	}

	fields := make(map[string]string, len(cols))
	for i, col := range report.Columns {
		if cols[i].Valid {
			fields[col] = cols[i].String
		}
	}
	return report.FromFields(fields), nil
}
