package db

// Schema for the phone record store (one row per raw phone-number string)
const createRecordsTable = `
CREATE TABLE IF NOT EXISTS phone_records (
    phone_number TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    carrier TEXT NOT NULL DEFAULT '',
    city TEXT NOT NULL DEFAULT '',
    country TEXT NOT NULL DEFAULT '',
    timezone TEXT NOT NULL DEFAULT '',
    number_type TEXT NOT NULL DEFAULT '',
    national_format TEXT NOT NULL DEFAULT '',
    international_format TEXT NOT NULL DEFAULT '',
    spam_score REAL NOT NULL DEFAULT 0,
    source TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// Lookup refresh: every metadata column is overwritten, name is kept
const upsertLookupRecord = `
INSERT INTO phone_records (
    phone_number, name, carrier, city, country, timezone, number_type,
    national_format, international_format, spam_score, source, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(phone_number) DO UPDATE SET
    carrier = excluded.carrier,
    city = excluded.city,
    country = excluded.country,
    timezone = excluded.timezone,
    number_type = excluded.number_type,
    national_format = excluded.national_format,
    international_format = excluded.international_format,
    spam_score = excluded.spam_score,
    updated_at = excluded.updated_at
`

// Contribution or seed: the whole row is replaced
const replaceRecord = `
INSERT OR REPLACE INTO phone_records (
    phone_number, name, carrier, city, country, timezone, number_type,
    national_format, international_format, spam_score, source, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const recordColumns = `
    phone_number, name, carrier, city, country, timezone, number_type,
    national_format, international_format, spam_score, source, updated_at
`

const selectRecord = `SELECT` + recordColumns + `FROM phone_records WHERE phone_number = ?`

const selectRecords = `SELECT` + recordColumns + `FROM phone_records ORDER BY phone_number ASC`

const selectRecordCount = `
SELECT COUNT(*) FROM phone_records
`

// Schema for the search history log (append-only, seq gives chronological order)
const createHistoryTable = `
CREATE TABLE IF NOT EXISTS search_history (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    entry_id TEXT NOT NULL UNIQUE,
    phone_number TEXT NOT NULL,
    name TEXT NOT NULL,
    carrier TEXT NOT NULL,
    city TEXT NOT NULL,
    country TEXT NOT NULL,
    timezone TEXT NOT NULL,
    number_type TEXT NOT NULL,
    national_format TEXT NOT NULL,
    international_format TEXT NOT NULL,
    spam_score REAL NOT NULL,
    searched_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_phone ON search_history(phone_number);
`

const insertHistoryEntry = `
INSERT INTO search_history (
    entry_id, phone_number, name, carrier, city, country, timezone, number_type,
    national_format, international_format, spam_score, searched_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const historyColumns = `
    seq, entry_id, phone_number, name, carrier, city, country, timezone, number_type,
    national_format, international_format, spam_score, searched_at
`

// Most recent first
const selectHistory = `SELECT` + historyColumns + `FROM search_history ORDER BY seq DESC`

const selectHistoryLimit = `SELECT` + historyColumns + `FROM search_history ORDER BY seq DESC LIMIT ?`

const selectHistoryCount = `
SELECT COUNT(*) FROM search_history
`
