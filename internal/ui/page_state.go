package ui

import (
	"time"
)

// StatusKind selects how the status line is rendered
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusError
)

// PageState contains state every page needs: layout and a status line.
type PageState struct {
	Layout       Layout
	StatusMsg    string
	StatusKind   StatusKind
	StatusExpiry time.Time
	Quitting     bool

	now func() time.Time
}

// NewPageState creates a new PageState with the given layout.
func NewPageState(layout Layout) PageState {
	return PageState{Layout: layout, now: time.Now}
}

// SetStatus sets a status message that expires after the given duration.
// If duration is 0, the status message does not expire.
func (p *PageState) SetStatus(msg string, kind StatusKind, duration time.Duration) {
	p.StatusMsg = msg
	p.StatusKind = kind
	if duration > 0 {
		p.StatusExpiry = p.clock().Add(duration)
	} else {
		p.StatusExpiry = time.Time{}
	}
}

// ClearStatus removes the status message.
func (p *PageState) ClearStatus() {
	p.StatusMsg = ""
	p.StatusExpiry = time.Time{}
}

// ClearExpiredStatus clears the status message if it has expired.
func (p *PageState) ClearExpiredStatus() {
	if !p.StatusExpiry.IsZero() && p.clock().After(p.StatusExpiry) {
		p.ClearStatus()
	}
}

// HasStatus returns true if there is a non-empty status message.
func (p *PageState) HasStatus() bool {
	return p.StatusMsg != ""
}

// RenderStatus renders the status line in the style of its kind.
func (p *PageState) RenderStatus() string {
	switch p.StatusKind {
	case StatusError:
		return RenderError(p.StatusMsg)
	case StatusSuccess:
		return SuccessStyle.Render(p.StatusMsg)
	default:
		return StatusMsgStyle.Render(p.StatusMsg)
	}
}

// UpdateLayout updates the layout and returns true if it changed.
func (p *PageState) UpdateLayout(width, height int) bool {
	newLayout := NewLayout(width, height)
	if newLayout != p.Layout {
		p.Layout = newLayout
		return true
	}
	return false
}

func (p *PageState) clock() time.Time {
	if p.now == nil {
		return time.Now()
	}
	return p.now()
}
