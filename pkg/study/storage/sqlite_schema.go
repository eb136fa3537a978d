package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the study database schema.
const Schema = `
-- Study records, one row per record across all collections.
-- Core fields and the open data payload are stored as JSON text; the
-- scan-order columns (created_at, id) are broken out so listing stays an
-- index walk regardless of record size.
CREATE TABLE IF NOT EXISTS records (
    collection TEXT NOT NULL,
    id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    fields TEXT NOT NULL,
    data TEXT,

    PRIMARY KEY (collection, id)
);

CREATE INDEX IF NOT EXISTS idx_records_scan
    ON records(collection, created_at, id);

-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
`

// InsertSchemaVersion records the schema version after creation.
const InsertSchemaVersion = `
INSERT OR IGNORE INTO schema_version (version) VALUES (?);
`

// GetSchemaVersion retrieves the current schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
