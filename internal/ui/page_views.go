package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
)

// PageViewBuilder provides a fluent API for building page views.
// It handles titles, dividers, spacing and the two-box layout.
//
//	return NewPageView(m.Layout).
//	    Title("PhoneFinder").
//	    Divider().
//	    CustomContent(m.search.View()).
//	    Table(m.history).
//	    Status(m.StatusMsg).
//	    Help("enter: search | esc: quit").
//	    Build()
type PageViewBuilder struct {
	layout     Layout
	content    strings.Builder
	helpText   string
	hadContent bool
}

// NewPageView creates a new PageViewBuilder with the given layout.
func NewPageView(layout Layout) *PageViewBuilder {
	return &PageViewBuilder{layout: layout}
}

// Title adds a title line (bold white).
func (b *PageViewBuilder) Title(title string) *PageViewBuilder {
	b.content.WriteString(RenderTitle(title))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Subtitle adds a subtitle line (dim gray).
func (b *PageViewBuilder) Subtitle(subtitle string) *PageViewBuilder {
	b.content.WriteString(RenderDim(subtitle))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Divider adds a full-width horizontal divider.
func (b *PageViewBuilder) Divider() *PageViewBuilder {
	b.content.WriteString(FullWidthDivider(b.layout.InnerWidth))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Section adds a titled sub-section header (accented yellow).
func (b *PageViewBuilder) Section(title string) *PageViewBuilder {
	if b.hadContent {
		b.content.WriteString("\n")
	}
	b.content.WriteString(AccentStyle.Render(title))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Field adds a "label  value" line.
func (b *PageViewBuilder) Field(label, value string) *PageViewBuilder {
	b.content.WriteString(LabelStyle.Render(label))
	b.content.WriteString(RenderNormal(value))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Warning adds a warning line.
func (b *PageViewBuilder) Warning(msg string) *PageViewBuilder {
	b.content.WriteString(RenderWarning(msg))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// DimText adds dimmed text content.
func (b *PageViewBuilder) DimText(text string) *PageViewBuilder {
	b.content.WriteString(RenderDim(text))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// CustomContent adds pre-rendered content.
func (b *PageViewBuilder) CustomContent(content string) *PageViewBuilder {
	b.content.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.content.WriteString("\n")
	}
	b.hadContent = true
	return b
}

// Table adds a table with full-width selection highlighting.
func (b *PageViewBuilder) Table(t table.Model) *PageViewBuilder {
	b.content.WriteString(RenderTableWithSelection(t, b.layout))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Status adds a pre-rendered status line (if not empty).
func (b *PageViewBuilder) Status(rendered string) *PageViewBuilder {
	if rendered != "" {
		if b.hadContent {
			b.content.WriteString("\n")
		}
		b.content.WriteString(rendered)
		b.content.WriteString("\n")
		b.hadContent = true
	}
	return b
}

// Help sets the help text for the footer box.
func (b *PageViewBuilder) Help(helpText string) *PageViewBuilder {
	b.helpText = helpText
	return b
}

// Build constructs the final view string with two-box layout.
func (b *PageViewBuilder) Build() string {
	return TwoBoxView(b.content.String(), b.helpText, b.layout)
}
