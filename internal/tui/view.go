package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/charmbracelet/glamour"

	"github.com/venda-crm/venda/internal/agenda"
	"github.com/venda-crm/venda/internal/drag"
	"github.com/venda-crm/venda/internal/models"
	"github.com/venda-crm/venda/internal/pipeline"
)

// view is the main view dispatcher.
func (m *Model) view() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 {
		view.Content = "Loading..."
		return view
	}

	var content string
	switch m.mode {
	case loginMode, leadFormMode, reminderFormMode:
		content = m.renderFormScreen()
	case agendaMode:
		content = m.renderAgenda()
	case confirmMode:
		content = m.renderConfirm()
	case helpMode:
		content = m.renderHelp()
	default:
		content = m.renderBoard()
	}

	view.Content = content
	return view
}

func (m *Model) renderFormScreen() string {
	if m.form == nil {
		return ""
	}
	title := "Sign In"
	switch m.mode {
	case leadFormMode:
		if m.editingLeadID > 0 {
			title = "Edit Lead"
		} else {
			title = "New Lead"
		}
	case reminderFormMode:
		title = "New Follow-Up"
	}

	body := m.styles.SectionHeader.Render(title) + "\n\n" + m.form.View()
	if m.errText != "" {
		body += "\n" + m.styles.ErrorBanner.Render(m.errText)
	}
	box := m.styles.FormBox.Width(min(m.width-4, 64)).Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderBoard draws the kanban columns side by side.
func (m *Model) renderBoard() string {
	groups := m.board.Groups
	if len(groups) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.styles.Subtle.Render("No pipeline stages configured."))
	}

	colWidth := max(minColumnWidth, m.width/len(groups)-2)
	colHeight := m.height - 3

	hover := ""
	if m.dragger.State() == drag.DraggingOver {
		hover = m.dragger.OverStage()
	}

	cols := make([]string, 0, len(groups))
	for i, g := range groups {
		selected := i == m.selStage
		cols = append(cols, m.renderColumn(g.Stage.Title, g.Stage.Color, g, colWidth, colHeight, selected, hover == g.Stage.Title))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	return lipgloss.JoinVertical(lipgloss.Left, board, m.statusBar())
}

func (m *Model) renderColumn(title, color string, g pipeline.StageGroup, width, height int, selected, hovered bool) string {
	headerStyle := m.styles.ColumnHeader.Foreground(lipgloss.Color(color))
	header := headerStyle.Render(fmt.Sprintf("%s (%d)", title, g.Count()))
	total := m.styles.Subtle.Render(fmt.Sprintf("$%.0f", g.TotalValue))

	var cards []string
	if g.Count() == 0 {
		cards = append(cards, m.styles.Subtle.Italic(true).Render("No leads"))
	}

	dragging := m.dragger.State() != drag.Idle
	draggedID := 0
	if dragging {
		draggedID = m.dragger.Lead().ID
	}

	maxCards := max((height-4)/cardHeight, 1)
	for j, l := range g.Leads {
		if j >= maxCards {
			cards = append(cards, m.styles.Subtle.Render(fmt.Sprintf("▼ %d more", g.Count()-maxCards)))
			break
		}
		style := m.styles.Card
		if dragging && l.ID == draggedID {
			style = m.styles.CardDragged
		} else if selected && j == m.selLead {
			style = m.styles.CardSelected
		}
		cards = append(cards, style.Width(width-4).Render(renderCard(l)))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{header + " " + total}, cards...)...)

	colStyle := m.styles.Column
	if hovered {
		colStyle = m.styles.ColumnHover
	}
	return colStyle.Width(width).Height(height).Render(body)
}

func renderCard(l models.Lead) string {
	return fmt.Sprintf("%s\n$%.0f · %s", l.Name, l.EstimatedValue, l.Date)
}

// renderAgenda draws the follow-up dashboard grouped by urgency bucket.
func (m *Model) renderAgenda() string {
	var b strings.Builder
	b.WriteString(m.styles.SectionHeader.Render("Follow-Ups"))
	b.WriteString("\n\n")

	entries := m.agendaReminders()
	if len(entries) == 0 {
		b.WriteString(m.styles.Subtle.Render("No follow-up reminders."))
	}

	idx := 0
	var selected *models.Reminder
	for _, bucket := range agenda.Buckets {
		rs := m.cats[bucket]
		if len(rs) == 0 {
			continue
		}
		b.WriteString(m.styles.ColumnHeader.Render(fmt.Sprintf("%s (%d)", bucket, len(rs))))
		b.WriteString("\n")
		for _, r := range rs {
			line := fmt.Sprintf("  [%s] %s — %s · %s",
				r.Type, r.Title, r.LeadName, r.ReminderDateTime.Format("Jan 02 15:04"))
			if idx == m.agendaSel {
				line = m.styles.CardSelected.Render(line)
				sel := r
				selected = &sel
			} else if r.Completed {
				line = m.styles.Subtle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
			idx++
		}
		b.WriteString("\n")
	}

	if selected != nil && selected.Notes != "" {
		b.WriteString(m.styles.SectionHeader.Render("Notes"))
		b.WriteString("\n")
		b.WriteString(renderNotes(selected.Notes, min(m.width-4, 80)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, b.String(), m.statusBar())
}

// renderNotes renders reminder notes as markdown. Falls back to the raw text
// if glamour can't render it.
func renderNotes(notes string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return notes
	}
	out, err := r.Render(notes)
	if err != nil {
		return notes
	}
	return out
}

func (m *Model) renderConfirm() string {
	prompt := ""
	if m.confirm != nil {
		prompt = m.confirm.prompt
	}
	box := m.styles.FormBox.Render(prompt)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderHelp() string {
	km := m.app.Config.KeyMappings
	rows := [][2]string{
		{km.AddLead, "add lead"},
		{km.EditLead, "edit lead"},
		{km.DeleteLead, "delete lead"},
		{km.ArchiveLead, "archive lead"},
		{km.DuplicateLead, "duplicate lead"},
		{"space", "grab / move lead"},
		{"enter", "drop lead"},
		{"esc", "cancel drag / close"},
		{km.AddReminder, "add follow-up"},
		{km.ToggleAgenda, "toggle agenda"},
		{km.CompleteReminder, "complete follow-up (agenda)"},
		{km.Retry, "retry failed load"},
		{km.Logout, "sign out"},
		{km.Quit, "quit"},
	}

	var b strings.Builder
	b.WriteString(m.styles.SectionHeader.Render("Keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", r[0], r[1]))
	}
	box := m.styles.HelpBox.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// statusBar shows the signed-in user, pending-operation spinner, orphan
// warnings and the most recent error.
func (m *Model) statusBar() string {
	parts := []string{}
	if m.user != nil {
		parts = append(parts, m.user.Name)
	}
	if m.busy {
		parts = append(parts, m.spin.View()+" working")
	}
	if m.dragger.State() != drag.Idle {
		target := "moving " + m.dragger.Lead().Name
		if st, ok := m.app.Config.Stages.ByTitle(m.dragger.OverStage()); ok {
			target += " → " + lipgloss.NewStyle().
				Foreground(lipgloss.Color(st.Color)).
				Render(st.Title)
		}
		parts = append(parts, target)
	}
	if n := len(m.board.Orphans); n > 0 {
		parts = append(parts, m.styles.ErrorBanner.Render(
			fmt.Sprintf("%d lead(s) reference unknown stages", n)))
	}
	if m.errText != "" {
		suffix := ""
		if m.retry != nil {
			suffix = fmt.Sprintf(" (%s to retry)", m.app.Config.KeyMappings.Retry)
		}
		parts = append(parts, m.styles.ErrorBanner.Render(m.errText+suffix))
	}
	parts = append(parts, m.styles.Subtle.Render("? help"))
	return m.styles.StatusBar.Render(strings.Join(parts, "  ·  "))
}
