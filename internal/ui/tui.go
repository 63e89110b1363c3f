package ui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/thesavant42/phonefinder/internal/models"
	"github.com/thesavant42/phonefinder/internal/phone"
	"github.com/thesavant42/phonefinder/internal/session"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/samber/lo"
)

const (
	statusTTL = 5 * time.Second

	// historyLimit caps the rows loaded into the history table
	historyLimit = 200
)

type focusArea int

const (
	focusSearch focusArea = iota
	focusHistory
	focusForm
)

// resultOrigin describes where the record in the result panel came from
type resultOrigin int

const (
	originLookup resultOrigin = iota
	originHistory
	originContribution
)

// Options configures the interactive model
type Options struct {
	HighSpamThreshold float64
	ExportDir         string
	Logger            *log.Logger
}

// Model is the interactive PhoneFinder screen: search box, result panel,
// contribution form and search history.
type Model struct {
	PageState

	session   *session.Session
	logger    *log.Logger
	threshold float64
	exportDir string

	search  textinput.Model
	history table.Model
	entries []models.HistoryEntry
	stats   session.Stats
	focus   focusArea

	form         *huh.Form
	contribution *models.Contribution

	result       *models.PhoneRecord
	resultOrigin resultOrigin
	resultSeq    int64
}

// NewModel creates the interactive model for a session
func NewModel(s *session.Session, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	layout := DefaultLayout()

	ti := textinput.New()
	ti.Prompt = "☎  "
	ti.Placeholder = "Enter phone number with country code (e.g., +1234567890)"
	ti.CharLimit = 32
	ti.Width = layout.InnerWidth - 6
	ti.Focus()

	m := Model{
		PageState: NewPageState(layout),
		session:   s,
		logger:    logger,
		threshold: opts.HighSpamThreshold,
		exportDir: opts.ExportDir,
		search:    ti,
		history:   InitTable(CalculateColumns(HistoryColumns(), layout.TableWidth), nil, layout),
	}
	m.refreshHistory()
	return m
}

// Run starts the interactive program in the alternate screen
func Run(s *session.Session, opts Options) error {
	p := tea.NewProgram(NewModel(s, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(size.Width, size.Height)
		return m, nil
	}

	if m.focus == focusForm {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocused(msg)
	}

	m.ClearExpiredStatus()

	switch keyMsg.String() {
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit

	case "esc":
		if m.focus == focusHistory {
			m.focusSearch()
			return m, nil
		}
		m.Quitting = true
		return m, tea.Quit

	case "tab", "shift+tab":
		if m.focus == focusSearch && len(m.entries) > 0 {
			m.focus = focusHistory
			m.search.Blur()
			m.history.Focus()
			return m, nil
		}
		m.focusSearch()
		return m, nil

	case "ctrl+n":
		return m.openForm()

	case "ctrl+s":
		m.export()
		return m, nil

	case "enter":
		if m.focus == focusHistory {
			m.showHistoryEntry(m.history.Cursor())
			return m, nil
		}
		m.lookup()
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == focusHistory {
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	}
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) resize(width, height int) {
	if !m.UpdateLayout(width, height) {
		return
	}
	m.search.Width = m.Layout.InnerWidth - 6
	m.history.SetColumns(CalculateColumns(HistoryColumns(), m.Layout.TableWidth))
	m.history.SetHeight(m.Layout.TableHeight)
	if m.form != nil {
		m.form = m.form.WithWidth(m.Layout.InnerWidth - 2)
	}
}

func (m *Model) focusSearch() {
	m.focus = focusSearch
	m.history.Blur()
	m.search.Focus()
}

func (m *Model) lookup() {
	input := phone.Sanitize(m.search.Value())

	rec, err := m.session.Lookup(input)
	if err != nil {
		m.SetStatus(err.Error(), StatusError, 0)
		return
	}

	m.result = &rec
	m.resultOrigin = originLookup
	m.refreshHistory()
	m.history.GotoTop()
	m.SetStatus(fmt.Sprintf("Lookup complete for %s", rec.PhoneNumber), StatusSuccess, statusTTL)
}

func (m *Model) showHistoryEntry(i int) {
	if i < 0 || i >= len(m.entries) {
		return
	}
	entry := m.entries[i]
	rec := entry.Record
	m.result = &rec
	m.resultOrigin = originHistory
	m.resultSeq = entry.Seq
}

func (m *Model) export() {
	rec, ok := m.session.LastLookup()
	if !ok {
		m.SetStatus("Nothing to export yet. Look up a number first.", StatusError, statusTTL)
		return
	}

	path, err := ExportLookupJSON(rec, m.exportDir)
	if err != nil {
		m.logger.Error("export failed", "number", rec.PhoneNumber, "err", err)
		m.SetStatus(err.Error(), StatusError, 0)
		return
	}

	m.logger.Debug("exported lookup", "number", rec.PhoneNumber, "path", path)
	m.SetStatus("Exported to "+path, StatusSuccess, statusTTL)
}

func (m *Model) refreshHistory() {
	entries, err := m.session.RecentHistory(historyLimit)
	if err != nil {
		m.SetStatus(fmt.Sprintf("failed to load history: %v", err), StatusError, 0)
		return
	}
	stats, err := m.session.Stats()
	if err != nil {
		m.SetStatus(fmt.Sprintf("failed to count records: %v", err), StatusError, 0)
		return
	}
	m.entries = entries
	m.stats = stats
	m.history.SetRows(lo.Map(entries, func(e models.HistoryEntry, _ int) table.Row {
		return table.Row{
			fmt.Sprintf("%d", e.Seq),
			e.SearchedAt.Local().Format("15:04:05"),
			e.Record.PhoneNumber,
			e.Record.Name,
			e.Record.Country,
			e.Record.NumberType.String(),
			fmt.Sprintf("%.2f", e.Record.SpamScore),
		}
	}))
}

// openForm switches to the contribution form, pre-filled with the search value
// or the number of the record on screen. Known details of a stored record are
// filled in too.
func (m Model) openForm() (tea.Model, tea.Cmd) {
	prefill := phone.Sanitize(m.search.Value())
	if prefill == "" && m.result != nil {
		prefill = m.result.PhoneNumber
	}

	c := models.Contribution{PhoneNumber: prefill}
	if prefill != "" {
		rec, ok, err := m.session.Record(prefill)
		if err != nil {
			m.logger.Debug("stored record unavailable", "number", prefill, "err", err)
		}
		if ok {
			c.Name = knownValue(rec.Name)
			c.City = knownValue(rec.City)
			c.Carrier = knownValue(rec.Carrier)
		}
	}
	return m.startForm(c)
}

// knownValue drops the placeholders stored for missing details
func knownValue(s string) string {
	if s == models.UnknownValue || s == models.UnknownLookupName {
		return ""
	}
	return s
}

func (m Model) startForm(c models.Contribution) (tea.Model, tea.Cmd) {
	m.contribution = &c
	m.form = NewContributionForm(m.contribution).WithWidth(m.Layout.InnerWidth - 2)
	m.focus = focusForm
	m.search.Blur()
	m.history.Blur()
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	fm, cmd := m.form.Update(msg)
	if f, ok := fm.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.submitContribution()
	case huh.StateAborted:
		m.closeForm()
		m.SetStatus("Contribution cancelled", StatusInfo, statusTTL)
		return m, nil
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.contribution = nil
	m.focusSearch()
}

func (m Model) submitContribution() (tea.Model, tea.Cmd) {
	c := CleanContribution(*m.contribution)

	rec, err := m.session.Contribute(c)
	if err != nil {
		var required *session.RequiredFieldError
		if !errors.As(err, &required) {
			m.logger.Debug("contribution rejected", "number", c.PhoneNumber, "err", err)
		}
		next, cmd := m.startForm(c)
		nm := next.(Model)
		nm.SetStatus(err.Error(), StatusError, 0)
		return nm, cmd
	}

	m.closeForm()
	m.result = &rec
	m.resultOrigin = originContribution
	m.refreshHistory()
	m.SetStatus(fmt.Sprintf("Thank you! Your contribution for %s has been saved.", rec.PhoneNumber), StatusSuccess, statusTTL)
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	b := NewPageView(m.Layout).
		Title("PhoneFinder").
		Subtitle(fmt.Sprintf("Phone number lookup, spam scoring and community contributions | %d records stored", m.stats.Records)).
		Divider()

	if m.focus == focusForm {
		return b.CustomContent(m.form.View()).
			Status(m.statusLine()).
			Help("enter: next | shift+tab: back | esc: cancel").
			Build()
	}

	b.Section("Search").CustomContent(m.search.View())
	m.renderResult(b)

	heading := fmt.Sprintf("Search History (%d)", m.stats.Searches)
	if m.stats.Searches > len(m.entries) {
		heading = fmt.Sprintf("Search History (latest %d of %d)", len(m.entries), m.stats.Searches)
	}
	b.Section(heading)
	if len(m.entries) == 0 {
		b.DimText("No searches yet")
	} else {
		b.Table(m.history)
	}

	help := "enter: search | tab: history | ctrl+n: contribute | ctrl+s: export | esc: quit"
	if m.focus == focusHistory {
		help = "↑/↓: navigate | enter: show | tab/esc: back to search"
	}
	return b.Status(m.statusLine()).Help(help).Build()
}

func (m Model) renderResult(b *PageViewBuilder) {
	switch m.resultOrigin {
	case originHistory:
		b.Section(fmt.Sprintf("Result (history #%d)", m.resultSeq))
	case originContribution:
		b.Section("Result (contributed)")
	default:
		b.Section("Result")
	}

	if m.result == nil {
		b.DimText("No lookup yet")
		return
	}

	for _, f := range recordFields(*m.result) {
		b.Field(f[0], f[1])
	}
	b.CustomContent(LabelStyle.Render("Spam Score") + FormatScore(m.result.SpamScore, m.threshold))
	if IsHighSpam(m.result.SpamScore, m.threshold) {
		b.Warning(HighSpamWarning)
	}
}

func (m Model) statusLine() string {
	if !m.HasStatus() {
		return ""
	}
	return m.RenderStatus()
}
