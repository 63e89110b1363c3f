// Package session owns the mutable state of one PhoneFinder session: the record
// store, the search history log and the most recent lookup. It reconciles freshly
// resolved metadata with stored records.
package session

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/thesavant42/phonefinder/internal/models"
	"github.com/thesavant42/phonefinder/internal/spam"
)

// Resolver validates a raw number and returns its metadata
type Resolver interface {
	Resolve(raw string) (models.Metadata, error)
}

// Store persists records and the search history for the session
type Store interface {
	UpsertLookup(r models.PhoneRecord) error
	ReplaceRecord(r models.PhoneRecord) error
	InsertRecords(records []models.PhoneRecord) error
	GetRecord(phoneNumber string) (models.PhoneRecord, bool, error)
	GetRecords() ([]models.PhoneRecord, error)
	CountRecords() (int, error)
	AppendHistory(r models.PhoneRecord) (models.HistoryEntry, error)
	GetHistory() ([]models.HistoryEntry, error)
	GetRecentHistory(limit int) ([]models.HistoryEntry, error)
	CountHistory() (int, error)
}

// Stats counts what the session has stored so far
type Stats struct {
	Records  int
	Searches int
}

// DemoRecords are the records a fresh session starts with when seeding is enabled
var DemoRecords = []models.PhoneRecord{
	{PhoneNumber: "+1234567890", Name: "John Doe", Carrier: "Verizon", City: "New York", Country: "United States", SpamScore: 0.2, Source: models.SourceSeed},
	{PhoneNumber: "+919876543210", Name: "Priya Sharma", Carrier: "Airtel", City: "Delhi", Country: "India", SpamScore: 0.5, Source: models.SourceSeed},
}

// Session serialises all lookups and contributions against one store
type Session struct {
	mu       sync.Mutex
	store    Store
	resolver Resolver
	scorer   *spam.Scorer
	logger   *log.Logger
	validate *validator.Validate
	last     *models.PhoneRecord
}

// New creates a session. A nil scorer is deterministic; a nil logger discards output.
func New(store Store, resolver Resolver, scorer *spam.Scorer, logger *log.Logger) *Session {
	if scorer == nil {
		scorer = spam.NewScorer()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		store:    store,
		resolver: resolver,
		scorer:   scorer,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Seed inserts records as-is, replacing any existing rows with the same number
func (s *Session) Seed(records []models.PhoneRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.InsertRecords(records); err != nil {
		return fmt.Errorf("failed to seed records: %w", err)
	}
	s.logger.Debug("seeded records", "count", len(records))
	return nil
}

// Lookup resolves a number, reconciles it with the store and appends a history entry.
// An existing record keeps its name; every metadata field and the spam score are refreshed.
func (s *Session) Lookup(raw string) (models.PhoneRecord, error) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return models.PhoneRecord{}, ErrEmptyInput
	}

	md, err := s.resolver.Resolve(key)
	if err != nil {
		return models.PhoneRecord{}, err
	}

	fresh := s.recordFrom(key, md)
	fresh.Name = models.UnknownLookupName
	fresh.Source = models.SourceLookup

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.UpsertLookup(fresh); err != nil {
		return models.PhoneRecord{}, err
	}
	stored, ok, err := s.store.GetRecord(key)
	if err != nil {
		return models.PhoneRecord{}, err
	}
	if !ok {
		return models.PhoneRecord{}, fmt.Errorf("record %s missing after upsert", key)
	}

	entry, err := s.store.AppendHistory(stored)
	if err != nil {
		return models.PhoneRecord{}, err
	}

	s.last = &stored
	s.logger.Debug("lookup",
		"number", key,
		"type", stored.NumberType,
		"score", stored.SpamScore,
		"history", entry.Seq)
	return stored, nil
}

// Contribute stores user-supplied data for a number, replacing any existing record.
// Phone number and carrier are required; a blank name becomes "Unknown" and a blank
// city falls back to the resolved city.
func (s *Session) Contribute(c models.Contribution) (models.PhoneRecord, error) {
	c = models.Contribution{
		PhoneNumber: strings.TrimSpace(c.PhoneNumber),
		Name:        strings.TrimSpace(c.Name),
		City:        strings.TrimSpace(c.City),
		Carrier:     strings.TrimSpace(c.Carrier),
	}
	if err := s.checkRequired(c); err != nil {
		return models.PhoneRecord{}, err
	}

	md, err := s.resolver.Resolve(c.PhoneNumber)
	if err != nil {
		return models.PhoneRecord{}, err
	}

	rec := s.recordFrom(c.PhoneNumber, md)
	rec.Name = lo.Ternary(c.Name != "", c.Name, models.UnknownValue)
	rec.Carrier = c.Carrier
	rec.City = lo.Ternary(c.City != "", c.City, md.City)
	rec.Source = models.SourceContribution

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ReplaceRecord(rec); err != nil {
		return models.PhoneRecord{}, err
	}
	stored, _, err := s.store.GetRecord(rec.PhoneNumber)
	if err != nil {
		return models.PhoneRecord{}, err
	}

	s.logger.Debug("contribution", "number", rec.PhoneNumber, "carrier", rec.Carrier)
	return stored, nil
}

// History returns every lookup of this session, most recent first
func (s *Session) History() ([]models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GetHistory()
}

// RecentHistory returns at most limit lookups, most recent first
func (s *Session) RecentHistory(limit int) ([]models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GetRecentHistory(limit)
}

// Stats returns the number of stored records and history entries
func (s *Session) Stats() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.CountRecords()
	if err != nil {
		return Stats{}, err
	}
	searches, err := s.store.CountHistory()
	if err != nil {
		return Stats{}, err
	}
	return Stats{Records: records, Searches: searches}, nil
}

// Records returns every stored record
func (s *Session) Records() ([]models.PhoneRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GetRecords()
}

// Record returns the stored record for a raw phone number
func (s *Session) Record(phoneNumber string) (models.PhoneRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GetRecord(strings.TrimSpace(phoneNumber))
}

// LastLookup returns the result of the most recent successful lookup
func (s *Session) LastLookup() (models.PhoneRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return models.PhoneRecord{}, false
	}
	return *s.last, true
}

// Explain returns the spam score terms for a number without touching the store
func (s *Session) Explain(raw string) (spam.Breakdown, error) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return spam.Breakdown{}, ErrEmptyInput
	}
	md, err := s.resolver.Resolve(key)
	if err != nil {
		return spam.Breakdown{}, err
	}
	return s.scorer.Breakdown(md.NationalNumber, md.NumberType), nil
}

func (s *Session) recordFrom(phoneNumber string, md models.Metadata) models.PhoneRecord {
	return models.PhoneRecord{
		PhoneNumber:         phoneNumber,
		Carrier:             md.Carrier,
		City:                md.City,
		Country:             md.Country,
		Timezone:            md.Timezone,
		NumberType:          md.NumberType,
		NationalFormat:      md.NationalFormat,
		InternationalFormat: md.InternationalFormat,
		SpamScore:           s.scorer.Score(md.NationalNumber, md.NumberType),
	}
}

func (s *Session) checkRequired(c models.Contribution) error {
	err := s.validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate contribution: %w", err)
	}

	missing := lo.Map(verrs, func(fe validator.FieldError, _ int) string {
		if fe.Field() == "PhoneNumber" {
			return "phone number"
		}
		return strings.ToLower(fe.Field())
	})
	return &RequiredFieldError{Fields: missing}
}
