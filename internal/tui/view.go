package tui

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/thiagokokada/guit-go/internal/app"
	"github.com/thiagokokada/guit-go/internal/git"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24

	minPaneWidth  = 10
	minPaneHeight = 3
	borderSize    = 2
	paddingSize   = 2
)

// now is replaced in tests to get stable relative times.
var now = time.Now

type segment struct {
	text  string
	style lipgloss.Style
}

func (m Model) View() string {
	width, height := m.width, m.height
	if width <= 0 || height <= 0 {
		width, height = fallbackWidth, fallbackHeight
	}

	footer := m.renderFooter(width)
	mainHeight := max(height-lipgloss.Height(footer), 3*minPaneHeight)

	leftWidth := max(width*30/100, minPaneWidth)
	rightWidth := max(width-leftWidth, minPaneWidth)

	statusHeight := max(mainHeight*40/100, minPaneHeight)
	commitsHeight := max(mainHeight*40/100, minPaneHeight)
	branchesHeight := max(mainHeight-statusHeight-commitsHeight, minPaneHeight)

	active := m.state.Active()
	branchKind := git.BranchLocal
	if kind, ok := active.BranchKind(); ok {
		branchKind = kind
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderStatus(active.Kind() == app.PaneStatus, leftWidth, statusHeight),
		m.renderCommits(active.Kind() == app.PaneCommits, leftWidth, commitsHeight),
		m.renderBranches(branchKind, active.Kind() == app.PaneBranches, leftWidth, branchesHeight),
	)
	right := m.renderReflog(active.Kind() == app.PaneReflog, rightWidth, mainHeight)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		footer,
	)
}

func (m Model) renderStatus(active bool, width, height int) string {
	view := m.state.StatusView()
	lines := make([][]segment, 0, len(view.Items))
	for _, rec := range view.Items {
		lines = append(lines, []segment{
			{text: rec.Code(), style: m.styles.Hash},
			{text: " " + rec.Path, style: m.styles.Normal},
		})
	}
	title := "Status"
	if head := m.state.Head(); head != "" {
		title += " (" + head + ")"
	}
	return m.renderPane(title, lines, view.Cursor, view.HasCursor, active, width, height)
}

func (m Model) renderCommits(active bool, width, height int) string {
	view := m.state.CommitsView()
	lines := make([][]segment, 0, len(view.Items))
	for _, rec := range view.Items {
		lines = append(lines, m.commitLine(rec, initials(rec.Author)))
	}
	return m.renderPane("Commits", lines, view.Cursor, view.HasCursor, active, width, height)
}

func (m Model) renderBranches(kind git.BranchKind, active bool, width, height int) string {
	view := m.state.BranchesView(kind)
	lines := make([][]segment, 0, len(view.Items))
	for _, rec := range view.Items {
		marker := "  "
		if rec.IsHead {
			marker = "* "
		}
		lines = append(lines, []segment{
			{text: marker, style: m.styles.Hash},
			{text: rec.Name, style: m.styles.Normal},
			{text: " " + rec.ShortHash, style: m.styles.Dim},
		})
	}
	title := app.BranchesPane(kind).String()
	return m.renderPane(title, lines, view.Cursor, view.HasCursor, active, width, height)
}

func (m Model) renderReflog(active bool, width, height int) string {
	view := m.state.ReflogView()
	lines := make([][]segment, 0, len(view.Items))
	for _, rec := range view.Items {
		lines = append(lines, m.commitLine(rec, rec.Author))
	}
	return m.renderPane("Reflog", lines, view.Cursor, view.HasCursor, active, width, height)
}

func (m Model) commitLine(rec git.CommitRecord, author string) []segment {
	line := []segment{
		{text: rec.ShortHash, style: m.styles.Hash},
		{text: " " + author, style: m.styles.Author},
		{text: " " + rec.Summary, style: m.styles.Normal},
	}
	if !rec.When.IsZero() {
		line = append(line, segment{
			text:  " (" + humanize.RelTime(rec.When, now(), "ago", "from now") + ")",
			style: m.styles.Dim,
		})
	}
	return line
}

func (m Model) renderPane(title string, lines [][]segment, cursor int, hasCursor bool, active bool, width, height int) string {
	box := m.styles.Border
	if active {
		box = m.styles.ActiveBorder
	}
	innerWidth := max(width-borderSize-paddingSize, 1)
	// one line goes to the title
	rows := max(height-borderSize-1, 1)

	body := make([]string, 0, rows+1)
	body = append(body, m.styles.Title.Render(runewidth.Truncate(title, innerWidth, "…")))
	if len(lines) == 0 {
		body = append(body, m.styles.Dim.Render("(empty)"))
	} else {
		start := windowStart(cursor, hasCursor, rows)
		end := min(start+rows, len(lines))
		for idx := start; idx < end; idx++ {
			body = append(body, renderLine(lines[idx], innerWidth, hasCursor && idx == cursor, m.styles.Highlighted))
		}
	}
	return box.
		Width(width - borderSize).
		Height(height - borderSize).
		Render(strings.Join(body, "\n"))
}

func (m Model) renderFooter(width int) string {
	var lines []string
	if notice := m.state.Notice(); notice != "" {
		lines = append(lines, m.styles.Error.Render(notice))
	}
	lines = append(lines, m.help.View(m.keys))
	return m.styles.Border.
		Width(max(width-borderSize, 1)).
		Render(strings.Join(lines, "\n"))
}

// windowStart returns the first visible row so that the cursor stays on
// screen.
func windowStart(cursor int, hasCursor bool, rows int) int {
	if !hasCursor || rows <= 0 || cursor < rows {
		return 0
	}
	return cursor - rows + 1
}

// renderLine truncates segments to width and styles them. A highlighted line
// is painted in one style and padded to the full width.
func renderLine(segs []segment, width int, highlighted bool, hl lipgloss.Style) string {
	var b strings.Builder
	remaining := width
	for _, seg := range segs {
		if remaining <= 0 {
			break
		}
		text := seg.text
		if runewidth.StringWidth(text) > remaining {
			text = runewidth.Truncate(text, remaining, "…")
		}
		remaining -= runewidth.StringWidth(text)
		style := seg.style
		if highlighted {
			style = hl
		}
		b.WriteString(style.Render(text))
	}
	if highlighted && remaining > 0 {
		b.WriteString(hl.Render(strings.Repeat(" ", remaining)))
	}
	return b.String()
}

// initials turns "Jane Q Doe" into "JQD".
func initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		if r == utf8.RuneError {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
