package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"meridian-hq/callisto/pkg/study"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/study.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements the study.Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger

	putStmt   *sql.Stmt
	countStmt *sql.Stmt
	listStmt  *sql.Stmt
	dataStmt  *sql.Stmt
}

// NewSQLiteStorage creates a new SQLite storage backend.
// It initializes the database schema and enables WAL mode if configured.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "study.storage.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, study.NewStorageError("sqlite", "", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize sets up the database schema, pragmas and prepared statements.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return study.NewStorageError("sqlite", "", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return study.NewStorageError("sqlite", "", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return study.NewStorageError("sqlite", "", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return study.NewStorageError("sqlite", "", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return study.NewStorageError("sqlite", "", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return study.NewStorageError("sqlite", "", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return s.prepareStatements()
}

// prepareStatements pre-compiles the hot-path SQL statements.
func (s *SQLiteStorage) prepareStatements() error {
	var err error

	s.putStmt, err = s.db.Prepare(`
		INSERT OR REPLACE INTO records (collection, id, created_at, fields, data)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return study.NewStorageError("sqlite", "", "prepare_put", err)
	}

	s.countStmt, err = s.db.Prepare(`SELECT COUNT(*) FROM records WHERE collection = ?`)
	if err != nil {
		return study.NewStorageError("sqlite", "", "prepare_count", err)
	}

	s.listStmt, err = s.db.Prepare(`
		SELECT id, created_at, fields, data FROM records
		WHERE collection = ?
		ORDER BY created_at, id
		LIMIT ? OFFSET ?`)
	if err != nil {
		return study.NewStorageError("sqlite", "", "prepare_list", err)
	}

	// Data-only projection used by payload schema discovery: the fields
	// column is never read, keeping the scan I/O proportional to payload
	// size alone.
	s.dataStmt, err = s.db.Prepare(`
		SELECT id, created_at, data FROM records
		WHERE collection = ?
		ORDER BY created_at, id
		LIMIT ? OFFSET ?`)
	if err != nil {
		return study.NewStorageError("sqlite", "", "prepare_list_data", err)
	}

	return nil
}

// Put inserts or replaces a record in the named collection.
func (s *SQLiteStorage) Put(ctx context.Context, collection string, record *study.Record) error {
	fieldsJSON, err := json.Marshal(record.Fields)
	if err != nil {
		return study.NewStorageError("sqlite", collection, "marshal_fields", err)
	}

	var dataJSON any
	if record.Data != nil {
		b, err := json.Marshal(record.Data)
		if err != nil {
			return study.NewStorageError("sqlite", collection, "marshal_data", err)
		}
		dataJSON = string(b)
	}

	_, err = s.putStmt.ExecContext(ctx,
		collection,
		record.ID,
		record.CreatedAt.UTC(),
		string(fieldsJSON),
		dataJSON,
	)
	if err != nil {
		return study.NewStorageError("sqlite", collection, "put", err)
	}

	return nil
}

// List returns records from the named collection in stable (createdAt, id)
// order. A zero or negative limit means no limit.
func (s *SQLiteStorage) List(ctx context.Context, collection string, query *study.Query) ([]*study.Record, error) {
	if query == nil {
		query = &study.Query{}
	}

	limit := query.Limit
	if limit <= 0 {
		limit = -1 // SQLite: negative LIMIT means unbounded
	}

	stmt := s.listStmt
	if query.DataOnly {
		stmt = s.dataStmt
	}

	rows, err := stmt.QueryContext(ctx, collection, limit, query.Offset)
	if err != nil {
		return nil, study.NewStorageError("sqlite", collection, "list", err)
	}
	defer rows.Close()

	var records []*study.Record
	for rows.Next() {
		record, err := scanRecord(rows, query.DataOnly)
		if err != nil {
			return nil, study.NewStorageError("sqlite", collection, "scan", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, study.NewStorageError("sqlite", collection, "list", err)
	}

	return records, nil
}

// scanRecord scans one row into a study.Record, decoding the JSON columns.
func scanRecord(rows *sql.Rows, dataOnly bool) (*study.Record, error) {
	var (
		id         string
		createdAt  time.Time
		fieldsJSON sql.NullString
		dataJSON   sql.NullString
	)

	if dataOnly {
		if err := rows.Scan(&id, &createdAt, &dataJSON); err != nil {
			return nil, err
		}
	} else {
		if err := rows.Scan(&id, &createdAt, &fieldsJSON, &dataJSON); err != nil {
			return nil, err
		}
	}

	record := &study.Record{
		ID:        id,
		CreatedAt: createdAt.UTC(),
	}

	if fieldsJSON.Valid && fieldsJSON.String != "" {
		if err := json.Unmarshal([]byte(fieldsJSON.String), &record.Fields); err != nil {
			return nil, fmt.Errorf("decode fields: %w", err)
		}
	}

	if dataJSON.Valid && dataJSON.String != "" {
		if err := json.Unmarshal([]byte(dataJSON.String), &record.Data); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}

	return record, nil
}

// Count returns the number of records in the named collection.
func (s *SQLiteStorage) Count(ctx context.Context, collection string) (int64, error) {
	var count int64
	if err := s.countStmt.QueryRowContext(ctx, collection).Scan(&count); err != nil {
		return 0, study.NewStorageError("sqlite", collection, "count", err)
	}
	return count, nil
}

// Ping verifies the database is reachable.
func (s *SQLiteStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return study.NewStorageError("sqlite", "", "ping", err)
	}
	return nil
}

// Close releases the database connection and prepared statements.
func (s *SQLiteStorage) Close() error {
	for _, stmt := range []*sql.Stmt{s.putStmt, s.countStmt, s.listStmt, s.dataStmt} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}

	if err := s.db.Close(); err != nil {
		return study.NewStorageError("sqlite", "", "close", err)
	}

	s.logger.Debug("SQLite storage closed")
	return nil
}
