package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/thesavant42/phonefinder/internal/models"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// UpsertLookup stores freshly resolved metadata for a number.
// A new row takes r.Name; an existing row keeps its name and source.
func (db *DB) UpsertLookup(r models.PhoneRecord) error {
	if err := db.exec(upsertLookupRecord, r, models.SourceLookup); err != nil {
		return fmt.Errorf("failed to upsert record %s: %w", r.PhoneNumber, err)
	}
	return nil
}

// ReplaceRecord overwrites the whole row for r.PhoneNumber
func (db *DB) ReplaceRecord(r models.PhoneRecord) error {
	source := r.Source
	if source == "" {
		source = models.SourceContribution
	}
	if err := db.exec(replaceRecord, r, source); err != nil {
		return fmt.Errorf("failed to replace record %s: %w", r.PhoneNumber, err)
	}
	return nil
}

// InsertRecords replaces multiple records in one transaction
func (db *DB) InsertRecords(records []models.PhoneRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(replaceRecord)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	updatedAt := formatTimestamp(db.now())
	for _, r := range records {
		source := r.Source
		if source == "" {
			source = models.SourceSeed
		}
		if _, err := stmt.Exec(recordArgs(r, source, updatedAt)...); err != nil {
			return fmt.Errorf("failed to insert record %s: %w", r.PhoneNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRecord returns the record for a raw phone number, if present
func (db *DB) GetRecord(phoneNumber string) (models.PhoneRecord, bool, error) {
	r, err := scanRecord(db.conn.QueryRow(selectRecord, phoneNumber))
	if errors.Is(err, sql.ErrNoRows) {
		return models.PhoneRecord{}, false, nil
	}
	if err != nil {
		return models.PhoneRecord{}, false, fmt.Errorf("failed to get record %s: %w", phoneNumber, err)
	}
	return r, true, nil
}

// GetRecords returns every stored record ordered by phone number
func (db *DB) GetRecords() ([]models.PhoneRecord, error) {
	rows, err := db.conn.Query(selectRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []models.PhoneRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountRecords returns the number of stored records
func (db *DB) CountRecords() (int, error) {
	var count int
	if err := db.conn.QueryRow(selectRecordCount).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

func (db *DB) exec(query string, r models.PhoneRecord, source string) error {
	_, err := db.conn.Exec(query, recordArgs(r, source, formatTimestamp(db.now()))...)
	return err
}

func recordArgs(r models.PhoneRecord, source, updatedAt string) []any {
	return []any{
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
		source,
		updatedAt,
	}
}

func scanRecord(row rowScanner) (models.PhoneRecord, error) {
	var r models.PhoneRecord
	var numberType, updatedAt string
	err := row.Scan(
		&r.PhoneNumber,
		&r.Name,
		&r.Carrier,
		&r.City,
		&r.Country,
		&r.Timezone,
		&numberType,
		&r.NationalFormat,
		&r.InternationalFormat,
		&r.SpamScore,
		&r.Source,
		&updatedAt,
	)
	if err != nil {
		return models.PhoneRecord{}, err
	}
	r.NumberType = models.NumberType(numberType)
	r.UpdatedAt, err = parseTimestamp(updatedAt)
	if err != nil {
		return models.PhoneRecord{}, fmt.Errorf("failed to parse updated_at for %s: %w", r.PhoneNumber, err)
	}
	return r, nil
}
