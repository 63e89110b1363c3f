package ui

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"github.com/thesavant42/phonefinder/internal/db"
	"github.com/thesavant42/phonefinder/internal/models"
	"github.com/thesavant42/phonefinder/internal/phone"
	"github.com/thesavant42/phonefinder/internal/session"
	"github.com/thesavant42/phonefinder/internal/spam"
)

func newTestModel(t *testing.T) (Model, *session.Session, string) {
	t.Helper()
	database, err := db.New()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	s := session.New(database, phone.NewResolver("en", 0, nil), spam.NewScorer(), nil)
	dir := t.TempDir()
	return NewModel(s, Options{HighSpamThreshold: 0.7, ExportDir: dir}), s, dir
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm
}

func TestEmptySearchIsRejected(t *testing.T) {
	rq := require.New(t)
	m, s, _ := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	rq.Equal(session.ErrEmptyInput.Error(), m.StatusMsg)
	rq.Equal(StatusError, m.StatusKind)
	rq.Nil(m.result)

	history, err := s.History()
	rq.NoError(err)
	rq.Empty(history)
}

func TestSearchShowsResultAndHistory(t *testing.T) {
	rq := require.New(t)
	m, _, _ := newTestModel(t)

	m.search.SetValue("+18002345678")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	rq.NotNil(m.result)
	rq.Equal(models.NumberTypeTollFree, m.result.NumberType)
	rq.Len(m.entries, 1)
	rq.Len(m.history.Rows(), 1)

	m.search.SetValue("+447400123456")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	rq.Len(m.entries, 2)
	rq.Equal("+447400123456", m.history.Rows()[0][2])

	view := m.View()
	rq.Contains(view, "Search History (2)")
	rq.Contains(view, "+44 7400 123456")
}

func TestInvalidSearchShowsError(t *testing.T) {
	rq := require.New(t)
	m, _, _ := newTestModel(t)

	m.search.SetValue("hello")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	rq.Equal(StatusError, m.StatusKind)
	rq.Contains(m.StatusMsg, "Error parsing phone number")
	rq.Empty(m.entries)
}

func TestHistorySelectionShowsSnapshot(t *testing.T) {
	rq := require.New(t)
	m, _, _ := newTestModel(t)

	for _, n := range []string{"+18002345678", "+12015550123"} {
		m.search.SetValue(n)
		m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	rq.Equal(focusHistory, m.focus)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	rq.Equal(originHistory, m.resultOrigin)
	rq.Equal(int64(1), m.resultSeq)
	rq.Equal("+18002345678", m.result.PhoneNumber)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	rq.Equal(focusSearch, m.focus)
	rq.False(m.Quitting)
}

func TestExportShortcut(t *testing.T) {
	rq := require.New(t)
	m, _, dir := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	rq.Equal(StatusError, m.StatusKind, "nothing to export before a lookup")

	m.search.SetValue("+12015550123")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	rq.Equal(StatusSuccess, m.StatusKind)
	rq.FileExists(filepath.Join(dir, "phone_lookup_+12015550123.json"))
}

func TestContributionFormCancel(t *testing.T) {
	rq := require.New(t)
	m, _, _ := newTestModel(t)

	m.search.SetValue("+919876543210")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	rq.Equal(focusForm, m.focus)
	rq.Equal("+919876543210", m.contribution.PhoneNumber)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	rq.Equal(focusSearch, m.focus)
	rq.Nil(m.form)
	rq.Equal("Contribution cancelled", m.StatusMsg)
}

func TestSubmitContribution(t *testing.T) {
	rq := require.New(t)
	m, s, _ := newTestModel(t)

	next, _ := m.startForm(models.Contribution{PhoneNumber: " +919876543210 ", Carrier: "Airtel"})
	m = next.(Model)

	next, _ = m.submitContribution()
	m = next.(Model)

	rq.Equal(focusSearch, m.focus)
	rq.Equal(originContribution, m.resultOrigin)
	rq.Equal("Unknown", m.result.Name)
	rq.Equal("Airtel", m.result.Carrier)
	rq.Equal(StatusSuccess, m.StatusKind)

	rec, ok, err := s.Record("+919876543210")
	rq.NoError(err)
	rq.True(ok)
	rq.Equal("Airtel", rec.Carrier)

	history, err := s.History()
	rq.NoError(err)
	rq.Empty(history)
}

func TestSubmitContributionMissingCarrierKeepsForm(t *testing.T) {
	rq := require.New(t)
	m, _, _ := newTestModel(t)

	next, _ := m.startForm(models.Contribution{PhoneNumber: "+919876543210", Name: "Priya"})
	m = next.(Model)

	next, _ = m.submitContribution()
	m = next.(Model)

	rq.Equal(focusForm, m.focus)
	rq.Equal(StatusError, m.StatusKind)
	rq.Contains(m.StatusMsg, "Required field missing: carrier")
	rq.Equal("Priya", m.contribution.Name)
}

func TestHighSpamWarning(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer
	FprintRecord(&buf, models.PhoneRecord{PhoneNumber: "+18002345678", SpamScore: 0.7}, 0.7)
	rq.Contains(buf.String(), HighSpamWarning)

	buf.Reset()
	FprintRecord(&buf, models.PhoneRecord{PhoneNumber: "+12015550123", SpamScore: 0.69}, 0.7)
	rq.NotContains(buf.String(), HighSpamWarning)
}

func TestQuit(t *testing.T) {
	rq := require.New(t)
	m, _, _ := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	rq.True(next.(Model).Quitting)
	rq.NotNil(cmd)
	rq.Empty(next.(Model).View())
}

func TestSearchStripsControlCharacters(t *testing.T) {
	rq := require.New(t)
	m, s, _ := newTestModel(t)

	m.search.SetValue("\x7f+12015550123\x00")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	rq.Equal(StatusSuccess, m.StatusKind)
	rq.Equal("+12015550123", m.result.PhoneNumber)

	_, ok, err := s.Record("+12015550123")
	rq.NoError(err)
	rq.True(ok)
}

func TestCleanContributionStripsControlCharacters(t *testing.T) {
	rq := require.New(t)

	c := CleanContribution(models.Contribution{
		PhoneNumber: " +919876543210\x7f",
		Name:        "Pri\x7fya\x00",
		City:        "\x01Delhi ",
		Carrier:     "Airtel\x7f",
	})
	rq.Equal(models.Contribution{
		PhoneNumber: "+919876543210",
		Name:        "Priya",
		City:        "Delhi",
		Carrier:     "Airtel",
	}, c)
}

func TestContributionFormPrefillsStoredRecord(t *testing.T) {
	rq := require.New(t)
	m, s, _ := newTestModel(t)

	_, err := s.Contribute(models.Contribution{PhoneNumber: "+919876543210", Name: "Priya Sharma", Carrier: "Airtel"})
	rq.NoError(err)

	m.search.SetValue("+919876543210")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	rq.Equal(focusForm, m.focus)
	rq.Equal("Priya Sharma", m.contribution.Name)
	rq.Equal("Airtel", m.contribution.Carrier)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	// placeholder names from a plain lookup are not carried into the form
	m.search.SetValue("+12015550123")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	rq.Equal("+12015550123", m.contribution.PhoneNumber)
	rq.Empty(m.contribution.Name)
}

func TestViewShowsStoreCounts(t *testing.T) {
	rq := require.New(t)
	m, s, _ := newTestModel(t)
	rq.Contains(m.View(), "0 records stored")

	for i := 0; i <= historyLimit; i++ {
		_, err := s.Lookup("+12015550123")
		rq.NoError(err)
	}
	_, err := s.Contribute(models.Contribution{PhoneNumber: "+919876543210", Carrier: "Airtel"})
	rq.NoError(err)

	m.search.SetValue("+18002345678")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	rq.Len(m.entries, historyLimit)
	rq.Equal("+18002345678", m.entries[0].Record.PhoneNumber)

	view := m.View()
	rq.Contains(view, "3 records stored")
	rq.Contains(view, fmt.Sprintf("Search History (latest %d of %d)", historyLimit, historyLimit+2))
}
