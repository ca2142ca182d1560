package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	minSplitWidth = 90
	headerLines   = 2
)

func (m appModel) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	height := m.height
	if height <= 0 {
		height = 24
	}

	header := m.viewHeader(width)
	footer := m.viewFooter(width)
	bodyH := height - headerLines - lipgloss.Height(footer)
	if bodyH < 3 {
		bodyH = 3
	}

	var body string
	switch {
	case m.loading:
		body = normalizePane(m.spinner.View()+" loading sheet…", width, bodyH)
	case m.mode == modeConfirm:
		body = normalizePane(renderConfirm(width, "Delete "+kindLabel(m.target.kind)+"?", m.confirmBody()), width, bodyH)
	case width >= minSplitWidth:
		listW := width * 3 / 5
		detailW := width - listW - 1
		list := normalizePane(m.viewRows(listW, bodyH), listW, bodyH)
		sep := normalizePane(strings.Repeat("│\n", bodyH), 1, bodyH)
		detail := normalizePane(m.viewDetail(detailW), detailW, bodyH)
		body = lipgloss.JoinHorizontal(lipgloss.Top, list, styleMuted().Render(sep), detail)
	default:
		body = normalizePane(m.viewRows(width, bodyH), width, bodyH)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m appModel) viewHeader(width int) string {
	st := m.tree.Stats()
	title := styleTitle().Render("Question Sheet")
	summary := fmt.Sprintf(" %d/%d solved (%d%%) ", st.Solved, st.Total, st.Percent())
	bar := m.progress.ViewAs(float64(st.Percent()) / 100)
	line := truncate(title+summary+bar, width)
	rule := styleMuted().Render(strings.Repeat(glyphHRule(), width))
	return line + "\n" + rule
}

// viewRows renders the visible window of rows, scrolled so the cursor stays on screen.
func (m appModel) viewRows(width, height int) string {
	if len(m.rows) == 0 {
		return styleMuted().Render("No topics yet. Press a to add one.")
	}
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := start + height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		ln := truncate(renderRow(m.rows[i]), width)
		if i == m.cursor {
			pad := width - lipgloss.Width(ln)
			if pad > 0 {
				ln += strings.Repeat(" ", pad)
			}
			ln = styleSelected().Render(ln)
		}
		lines = append(lines, ln)
	}
	return strings.Join(lines, "\n")
}

func renderRow(r sheetRow) string {
	indent := strings.Repeat("  ", r.depth)
	switch r.kind {
	case rowQuestion:
		box := glyphUnchecked()
		if r.question.Solved {
			box = glyphChecked()
		}
		diff := lipgloss.NewStyle().Foreground(difficultyColor(string(r.question.Difficulty))).Render(string(r.question.Difficulty))
		return indent + "  " + box + " " + r.title + " " + diff
	default:
		twisty := " "
		if r.hasChildren {
			twisty = glyphTwistyExpanded()
			if r.collapsed {
				twisty = glyphTwistyCollapsed()
			}
		}
		title := r.title
		if r.kind == rowTopic {
			title = lipgloss.NewStyle().Bold(true).Render(title)
		}
		counts := styleMuted().Render(fmt.Sprintf(" %d/%d", r.stats.Solved, r.stats.Total))
		return indent + twisty + " " + title + counts
	}
}

func (m appModel) viewDetail(width int) string {
	r, ok := m.selected()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(r.title))
	b.WriteString("\n")
	switch r.kind {
	case rowQuestion:
		q := r.question
		meta := []string{string(q.Difficulty)}
		if q.Solved {
			meta = append(meta, "solved")
		}
		b.WriteString(styleMuted().Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
		if len(q.Tags) > 0 {
			b.WriteString(styleMuted().Render("tags: " + strings.Join(q.Tags, ", ")))
			b.WriteString("\n")
		}
		if q.VideoLink != "" {
			b.WriteString(styleMuted().Render("video: " + q.VideoLink))
			b.WriteString("\n")
		}
	default:
		b.WriteString(styleMuted().Render(fmt.Sprintf("%d/%d solved (%d%%)", r.stats.Solved, r.stats.Total, r.stats.Percent())))
		b.WriteString("\n")
		b.WriteString(m.progress.ViewAs(float64(r.stats.Percent()) / 100))
		b.WriteString("\n")
	}
	if desc := renderMarkdown(r.description, width); desc != "" {
		b.WriteString("\n")
		b.WriteString(desc)
	}
	return b.String()
}

func (m appModel) viewFooter(width int) string {
	var lines []string
	if m.mode == modeInput {
		lines = append(lines, renderInputLine(width, m.input.Placeholder+":", m.input.View()))
	}
	if m.status != "" {
		st := styleMuted()
		if m.isError {
			st = styleError()
		}
		status := m.status
		if m.saving {
			status = m.spinner.View() + " " + status
		}
		lines = append(lines, truncate(st.Render(status), width))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m appModel) confirmBody() string {
	r := m.target
	switch r.kind {
	case rowTopic, rowSubTopic:
		return fmt.Sprintf("%q and its %d questions will be removed.", r.title, r.stats.Total)
	default:
		return fmt.Sprintf("%q will be removed.", r.title)
	}
}

func kindLabel(k rowKind) string {
	switch k {
	case rowTopic:
		return "topic"
	case rowSubTopic:
		return "sub-topic"
	default:
		return "question"
	}
}
