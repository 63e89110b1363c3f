package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thesavant42/phonefinder/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func sampleRecord(phone, name string) models.PhoneRecord {
	return models.PhoneRecord{
		PhoneNumber:         phone,
		Name:                name,
		Carrier:             "Verizon",
		City:                "New Jersey",
		Country:             "United States",
		Timezone:            "America/New_York",
		NumberType:          models.NumberTypeFixedLineOrMobile,
		NationalFormat:      "(201) 555-0123",
		InternationalFormat: "+1 201-555-0123",
		SpamScore:           0.2,
	}
}

func TestNewDatabasesAreIsolated(t *testing.T) {
	rq := require.New(t)

	a := newTestDB(t)
	b := newTestDB(t)

	rq.NoError(a.ReplaceRecord(sampleRecord("+12015550123", "A")))

	count, err := b.CountRecords()
	rq.NoError(err)
	rq.Zero(count)
}

func TestUpsertLookupKeepsName(t *testing.T) {
	rq := require.New(t)
	database := newTestDB(t)

	rq.NoError(database.ReplaceRecord(sampleRecord("+12015550123", "Jane Roe")))

	refreshed := sampleRecord("+12015550123", models.UnknownLookupName)
	refreshed.Carrier = "AT&T"
	refreshed.SpamScore = 0.35
	rq.NoError(database.UpsertLookup(refreshed))

	got, ok, err := database.GetRecord("+12015550123")
	rq.NoError(err)
	rq.True(ok)
	rq.Equal("Jane Roe", got.Name)
	rq.Equal("AT&T", got.Carrier)
	rq.Equal(0.35, got.SpamScore)
	rq.Equal(models.SourceContribution, got.Source)
	rq.False(got.UpdatedAt.IsZero())
}

func TestUpsertLookupCreatesRecord(t *testing.T) {
	rq := require.New(t)
	database := newTestDB(t)

	rq.NoError(database.UpsertLookup(sampleRecord("+12015550123", models.UnknownLookupName)))

	got, ok, err := database.GetRecord("+12015550123")
	rq.NoError(err)
	rq.True(ok)
	rq.Equal(models.UnknownLookupName, got.Name)
	rq.Equal(models.NumberTypeFixedLineOrMobile, got.NumberType)
	rq.Equal(models.SourceLookup, got.Source)
}

func TestReplaceRecordOverwritesEverything(t *testing.T) {
	rq := require.New(t)
	database := newTestDB(t)

	rq.NoError(database.UpsertLookup(sampleRecord("+12015550123", models.UnknownLookupName)))

	replacement := models.PhoneRecord{PhoneNumber: "+12015550123", Name: "Unknown", Carrier: "Airtel"}
	rq.NoError(database.ReplaceRecord(replacement))

	got, _, err := database.GetRecord("+12015550123")
	rq.NoError(err)
	rq.Equal("Unknown", got.Name)
	rq.Equal("Airtel", got.Carrier)
	rq.Empty(got.City)
	rq.Zero(got.SpamScore)

	count, err := database.CountRecords()
	rq.NoError(err)
	rq.Equal(1, count)
}

func TestGetRecordMissing(t *testing.T) {
	rq := require.New(t)
	database := newTestDB(t)

	_, ok, err := database.GetRecord("+10000000000")
	rq.NoError(err)
	rq.False(ok)
}

func TestInsertRecordsAndList(t *testing.T) {
	rq := require.New(t)
	database := newTestDB(t)

	rq.NoError(database.InsertRecords([]models.PhoneRecord{
		sampleRecord("+919876543210", "Priya Sharma"),
		sampleRecord("+1234567890", "John Doe"),
	}))

	records, err := database.GetRecords()
	rq.NoError(err)
	rq.Len(records, 2)
	rq.Equal("+1234567890", records[0].PhoneNumber)
	rq.Equal(models.SourceSeed, records[0].Source)
}

func TestHistoryIsAppendOnlyMostRecentFirst(t *testing.T) {
	rq := require.New(t)
	database := newTestDB(t)

	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	database.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	first, err := database.AppendHistory(sampleRecord("+12015550123", "first"))
	rq.NoError(err)
	second, err := database.AppendHistory(sampleRecord("+12015550123", "second"))
	rq.NoError(err)
	third, err := database.AppendHistory(sampleRecord("+447400123456", "third"))
	rq.NoError(err)

	rq.Less(first.Seq, second.Seq)
	rq.Less(second.Seq, third.Seq)
	rq.NotEqual(first.ID, second.ID)

	entries, err := database.GetHistory()
	rq.NoError(err)
	rq.Len(entries, 3)
	rq.Equal([]string{"third", "second", "first"}, []string{
		entries[0].Record.Name, entries[1].Record.Name, entries[2].Record.Name,
	})
	rq.Equal(third.ID, entries[0].ID)
	rq.True(entries[0].SearchedAt.After(entries[2].SearchedAt))
	rq.Equal(models.NumberTypeFixedLineOrMobile, entries[2].Record.NumberType)

	recent, err := database.GetRecentHistory(1)
	rq.NoError(err)
	rq.Len(recent, 1)
	rq.Equal("third", recent[0].Record.Name)

	count, err := database.CountHistory()
	rq.NoError(err)
	rq.Equal(3, count)
}

func TestHistorySnapshotIsIndependentOfRecord(t *testing.T) {
	rq := require.New(t)
	database := newTestDB(t)

	rec := sampleRecord("+12015550123", "before")
	rq.NoError(database.ReplaceRecord(rec))
	_, err := database.AppendHistory(rec)
	rq.NoError(err)

	rec.Name = "after"
	rq.NoError(database.ReplaceRecord(rec))

	entries, err := database.GetHistory()
	rq.NoError(err)
	rq.Equal("before", entries[0].Record.Name)
}

func TestCorruptTimestampsAreReported(t *testing.T) {
	rq := require.New(t)
	database := newTestDB(t)

	rq.NoError(database.ReplaceRecord(sampleRecord("+12015550123", "Jane Roe")))
	_, err := database.AppendHistory(sampleRecord("+12015550123", "Jane Roe"))
	rq.NoError(err)

	_, err = database.conn.Exec(`UPDATE phone_records SET updated_at = 'yesterday'`)
	rq.NoError(err)
	_, err = database.conn.Exec(`UPDATE search_history SET searched_at = 'not a time'`)
	rq.NoError(err)

	_, _, err = database.GetRecord("+12015550123")
	rq.ErrorContains(err, "unable to parse timestamp: yesterday")

	_, err = database.GetRecords()
	rq.ErrorContains(err, "failed to parse updated_at")

	_, err = database.GetHistory()
	rq.ErrorContains(err, "unable to parse timestamp: not a time")
}
