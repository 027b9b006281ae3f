// ABOUTME: SQLite database schema for the document knowledge base
// ABOUTME: Creates documents, segments, and embeddings tables with cascade deletes
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Source documents table (one row per ingested file)
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    filename TEXT NOT NULL,
    format TEXT,
    ingested_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Segments table (chunked document text)
CREATE TABLE IF NOT EXISTS segments (
    id TEXT PRIMARY KEY,
    document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    position_index INTEGER NOT NULL,
    char_start INTEGER NOT NULL,
    char_end INTEGER NOT NULL
);

-- Embeddings table (one vector per segment, stored as BLOB)
CREATE TABLE IF NOT EXISTS embeddings (
    segment_id TEXT PRIMARY KEY REFERENCES segments(id) ON DELETE CASCADE,
    document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes for common lookups
CREATE INDEX IF NOT EXISTS idx_segments_document ON segments(document_id);
CREATE INDEX IF NOT EXISTS idx_segments_position ON segments(document_id, position_index);
CREATE INDEX IF NOT EXISTS idx_embeddings_document ON embeddings(document_id);
`
