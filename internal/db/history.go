package db

import (
	"database/sql"
	"fmt"

	"github.com/rs/xid"
	"github.com/thesavant42/phonefinder/internal/models"
)

// AppendHistory appends a snapshot of r to the search history log.
// The log is append-only; there is no update or delete.
func (db *DB) AppendHistory(r models.PhoneRecord) (models.HistoryEntry, error) {
	entry := models.HistoryEntry{
		ID:         xid.New().String(),
		Record:     r,
		SearchedAt: db.now().UTC(),
	}
	// Snapshots carry only the exported field set
	entry.Record.Source = ""
	entry.Record.UpdatedAt = entry.SearchedAt

	result, err := db.conn.Exec(insertHistoryEntry,
		entry.ID,
		r.PhoneNumber,
		r.Name,
		r.Carrier,
		r.City,
		r.Country,
		r.Timezone,
		string(r.NumberType),
		r.NationalFormat,
		r.InternationalFormat,
		r.SpamScore,
		formatTimestamp(entry.SearchedAt),
	)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("failed to append history for %s: %w", r.PhoneNumber, err)
	}

	entry.Seq, err = result.LastInsertId()
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("failed to read history sequence: %w", err)
	}
	return entry, nil
}

// GetHistory returns the search history, most recent first
func (db *DB) GetHistory() ([]models.HistoryEntry, error) {
	rows, err := db.conn.Query(selectHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	return scanHistory(rows)
}

// GetRecentHistory returns at most limit entries, most recent first
func (db *DB) GetRecentHistory(limit int) ([]models.HistoryEntry, error) {
	rows, err := db.conn.Query(selectHistoryLimit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	return scanHistory(rows)
}

// CountHistory returns the number of history entries
func (db *DB) CountHistory() (int, error) {
	var count int
	if err := db.conn.QueryRow(selectHistoryCount).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return count, nil
}

func scanHistory(rows *sql.Rows) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		var numberType, searchedAt string
		err := rows.Scan(
			&e.Seq,
			&e.ID,
			&e.Record.PhoneNumber,
			&e.Record.Name,
			&e.Record.Carrier,
			&e.Record.City,
			&e.Record.Country,
			&e.Record.Timezone,
			&numberType,
			&e.Record.NationalFormat,
			&e.Record.InternationalFormat,
			&e.Record.SpamScore,
			&searchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.Record.NumberType = models.NumberType(numberType)
		e.SearchedAt, err = parseTimestamp(searchedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse searched_at of history entry %s: %w", e.ID, err)
		}
		e.Record.UpdatedAt = e.SearchedAt
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
