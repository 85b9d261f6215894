package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RowMark is the visual treatment of one list row.
type RowMark int

const (
	RowPlain RowMark = iota
	RowSelected
	RowLifted    // row being dragged
	RowHighlight // drop candidate under the pointer
)

// Row is one renderable list entry.
type Row struct {
	Text string
	Mark RowMark
}

var (
	rowSelectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	rowLiftedStyle    = lipgloss.NewStyle().Faint(true)
	rowHighlightStyle = lipgloss.NewStyle().Reverse(true)
)

var boxTitleStyle = lipgloss.NewStyle().Bold(true)

// Box frames static content with a rounded border and an optional bold title
// line. Tabs without row lists (profile, empty drafts) render through it.
type Box struct {
	Title   string
	Content string
}

func (b Box) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(width - 2).
		Height(max(1, height-2))
	body := b.Content
	if b.Title != "" {
		body = boxTitleStyle.Render(b.Title) + "\n" + body
	}
	return frame.Render(body)
}

// RowList renders rows top to bottom, one line each, clipped to the cell.
type RowList struct {
	Title string
	Rows  []Row
}

func (l RowList) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := make([]string, 0, len(l.Rows)+1)
	if l.Title != "" {
		lines = append(lines, ansi.Truncate(l.Title, width, ""))
	}
	for _, r := range l.Rows {
		prefix := "  "
		text := r.Text
		var line string
		switch r.Mark {
		case RowSelected:
			line = rowSelectedStyle.Render("> " + text)
		case RowLifted:
			line = rowLiftedStyle.Render("^ " + text)
		case RowHighlight:
			line = rowHighlightStyle.Render("v " + text)
		default:
			line = prefix + text
		}
		lines = append(lines, ansi.Truncate(line, width, ""))
		if len(lines) >= height {
			break
		}
	}
	return strings.Join(lines, "\n")
}
