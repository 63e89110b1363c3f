package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/thesavant42/phonefinder/internal/models"

	"github.com/charmbracelet/lipgloss"
)

// HighSpamWarning is shown when a record's spam score reaches the threshold
const HighSpamWarning = "High spam score detected!"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBorder).
			MarginBottom(1)

	scoreLowStyle  = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	scoreMidStyle  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	scoreHighStyle = lipgloss.NewStyle().Foreground(ColorBorder).Bold(true)
)

// IsHighSpam reports whether score is at or above the warning threshold
func IsHighSpam(score, threshold float64) bool {
	return score >= threshold
}

// FormatScore renders a spam score with two decimals, colored by band
func FormatScore(score, threshold float64) string {
	s := fmt.Sprintf("%.2f", score)
	switch {
	case IsHighSpam(score, threshold):
		return scoreHighStyle.Render(s)
	case score >= threshold/2:
		return scoreMidStyle.Render(s)
	default:
		return scoreLowStyle.Render(s)
	}
}

// recordFields returns the displayed fields of a record in display order
func recordFields(r models.PhoneRecord) [][2]string {
	return [][2]string{
		{"Phone Number", r.PhoneNumber},
		{"Name", r.Name},
		{"Carrier", r.Carrier},
		{"City", r.City},
		{"Country", r.Country},
		{"Timezone", r.Timezone},
		{"Number Type", r.NumberType.String()},
		{"National Format", r.NationalFormat},
		{"International Format", r.InternationalFormat},
	}
}

// FprintRecord writes a styled report of one record
//
// This is a CLI report (non-interactive): lipgloss is used only for colors,
// the structure is plain string formatting.
func FprintRecord(w io.Writer, r models.PhoneRecord, threshold float64) {
	fmt.Fprintln(w, headerStyle.Render("Lookup Result"))
	for _, f := range recordFields(r) {
		fmt.Fprintf(w, "%s%s\n", LabelStyle.Render(f[0]), RenderNormal(f[1]))
	}
	fmt.Fprintf(w, "%s%s\n", LabelStyle.Render("Spam Score"), FormatScore(r.SpamScore, threshold))
	if IsHighSpam(r.SpamScore, threshold) {
		fmt.Fprintln(w, WarningStyle.Render(HighSpamWarning))
	}
	fmt.Fprintln(w)
}

// FprintHistory writes the search history, most recent first
func FprintHistory(w io.Writer, entries []models.HistoryEntry) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Search History (%d)", len(entries))))
	if len(entries) == 0 {
		fmt.Fprintln(w, RenderDim("No searches yet"))
		return
	}

	colWidths := []int{4, 20, 34, 20, 6}
	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s",
		colWidths[0], "#",
		colWidths[1], "Phone Number",
		colWidths[2], "Name",
		colWidths[3], "Country",
		colWidths[4], "Spam")
	fmt.Fprintln(w, TitleStyle.Render(header))
	fmt.Fprintln(w, RenderDim(strings.Repeat("─", StringWidth(header))))

	for _, e := range entries {
		fmt.Fprintln(w, RenderNormal(fmt.Sprintf("%-*d %-*s %-*s %-*s %-*.2f",
			colWidths[0], e.Seq,
			colWidths[1], truncateToWidth(e.Record.PhoneNumber, colWidths[1]),
			colWidths[2], truncateToWidth(e.Record.Name, colWidths[2]),
			colWidths[3], truncateToWidth(e.Record.Country, colWidths[3]),
			colWidths[4], e.Record.SpamScore)))
	}
	fmt.Fprintln(w)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(SuccessStyle.Render(message))
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Println(ErrorStyle.Render("Error: " + message))
}
