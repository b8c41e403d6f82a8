package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS drafts (
    draft_key            TEXT PRIMARY KEY,
    body                 TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);
`
