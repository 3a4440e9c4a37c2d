package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/venda-crm/venda/internal/drag"
)

// handleKey dispatches key presses for the non-form modes.
func (m *Model) handleKey(key tea.KeyMsg) tea.Cmd {
	k := key.String()
	km := m.app.Config.KeyMappings

	// Global bindings
	switch k {
	case "ctrl+c":
		return tea.Quit
	case km.Retry:
		if m.retry != nil {
			cmd := m.retry()
			m.retry = nil
			m.errText = ""
			m.busy = true
			return cmd
		}
	}

	switch m.mode {
	case confirmMode:
		return m.handleConfirmKey(k)
	case helpMode:
		m.mode = boardMode
		return nil
	case agendaMode:
		return m.handleAgendaKey(k)
	case boardMode:
		return m.handleBoardKey(k)
	}
	return nil
}

func (m *Model) handleBoardKey(k string) tea.Cmd {
	km := m.app.Config.KeyMappings

	// While a lead is grabbed, movement keys hover columns instead of
	// moving the cursor.
	if m.dragger.State() != drag.Idle {
		return m.handleDragKey(k)
	}

	// One store mutation at a time: edits are ignored until the pending
	// operation resolves, so overlapping writes cannot be queued from the
	// keyboard during the simulated-latency window.
	if m.busy {
		switch k {
		case km.AddLead, km.EditLead, km.DeleteLead, km.ArchiveLead,
			km.DuplicateLead, km.AddReminder, km.GrabLead, "space":
			return nil
		}
	}

	switch k {
	case km.Quit:
		return tea.Quit
	case km.ShowHelp:
		m.mode = helpMode
	case km.ToggleAgenda:
		m.mode = agendaMode
		m.agendaSel = 0
	case km.Logout:
		m.busy = true
		return m.logoutCmd()

	case km.PrevStage, "left":
		if m.selStage > 0 {
			m.selStage--
			m.selLead = 0
			m.clampCursor()
		}
	case km.NextStage, "right":
		if m.selStage < len(m.board.Groups)-1 {
			m.selStage++
			m.selLead = 0
			m.clampCursor()
		}
	case km.PrevLead, "up":
		if m.selLead > 0 {
			m.selLead--
		}
	case km.NextLead, "down":
		if m.selLead < m.currentGroupSize()-1 {
			m.selLead++
		}

	case km.AddLead:
		m.mode = leadFormMode
		stage := ""
		if len(m.board.Groups) > 0 {
			stage = m.board.Groups[m.selStage].Stage.Title
		}
		m.leadForm = newLeadFormValues(nil, stage)
		m.form = newLeadForm(m.leadForm, m.app.Config.Stages)

	case km.EditLead:
		if lead, ok := m.selectedLead(); ok {
			m.mode = leadFormMode
			m.editingLeadID = lead.ID
			m.leadForm = newLeadFormValues(&lead, lead.Column)
			m.form = newLeadForm(m.leadForm, m.app.Config.Stages)
		}

	case km.DeleteLead:
		if lead, ok := m.selectedLead(); ok {
			m.confirm = &confirmState{
				kind:     confirmDeleteLead,
				id:       lead.ID,
				prompt:   fmt.Sprintf("Delete lead %q? (y/n)", lead.Name),
				returnTo: boardMode,
			}
			m.mode = confirmMode
		}

	case km.ArchiveLead:
		if lead, ok := m.selectedLead(); ok {
			m.busy = true
			id := lead.ID
			return opCmd(func(ctx context.Context) error {
				return m.app.Leads.Archive(ctx, id)
			})
		}

	case km.DuplicateLead:
		if lead, ok := m.selectedLead(); ok {
			m.busy = true
			id := lead.ID
			return opCmd(func(ctx context.Context) error {
				_, err := m.app.Leads.Duplicate(ctx, id)
				return err
			})
		}

	case km.AddReminder:
		if lead, ok := m.selectedLead(); ok {
			m.mode = reminderFormMode
			m.reminderForm = newReminderFormValues(lead)
			m.form = newReminderForm(m.reminderForm)
		}

	case km.GrabLead, "space":
		if lead, ok := m.selectedLead(); ok {
			m.dragger.Start(lead)
			m.dragger.Enter(lead.Column)
		}
	}
	return nil
}

// handleDragKey moves the grabbed card across columns. Left/right hover the
// neighboring stage; drop requests the stage change; esc cancels.
func (m *Model) handleDragKey(k string) tea.Cmd {
	km := m.app.Config.KeyMappings

	switch k {
	case "esc":
		m.dragger.Cancel()

	case km.PrevStage, "left":
		if m.selStage > 0 {
			m.dragger.Leave(m.hoverStage(), false)
			m.selStage--
			m.dragger.Enter(m.hoverStage())
		}
	case km.NextStage, "right":
		if m.selStage < len(m.board.Groups)-1 {
			m.dragger.Leave(m.hoverStage(), false)
			m.selStage++
			m.dragger.Enter(m.hoverStage())
		}

	case km.DropLead, "enter":
		if m.busy {
			return nil
		}
		m.dragger.Drop(m.hoverStage())
		if req := m.drop; req != nil {
			m.drop = nil
			m.busy = true
			return m.changeStageCmd(req.lead.ID, req.stage)
		}
	}
	return nil
}

// hoverStage is the stage title under the board cursor.
func (m *Model) hoverStage() string {
	if m.selStage < len(m.board.Groups) {
		return m.board.Groups[m.selStage].Stage.Title
	}
	return ""
}

func (m *Model) currentGroupSize() int {
	if m.selStage < len(m.board.Groups) {
		return m.board.Groups[m.selStage].Count()
	}
	return 0
}

func (m *Model) handleAgendaKey(k string) tea.Cmd {
	km := m.app.Config.KeyMappings
	entries := m.agendaReminders()

	if m.busy {
		switch k {
		case km.CompleteReminder, km.DeleteReminder:
			return nil
		}
	}

	switch k {
	case km.Quit:
		return tea.Quit
	case km.ToggleAgenda, "esc":
		m.mode = boardMode
	case km.PrevLead, "up":
		if m.agendaSel > 0 {
			m.agendaSel--
		}
	case km.NextLead, "down":
		if m.agendaSel < len(entries)-1 {
			m.agendaSel++
		}

	case km.CompleteReminder:
		if m.agendaSel < len(entries) {
			r := entries[m.agendaSel].reminder
			if !r.Completed {
				m.busy = true
				return opCmd(func(ctx context.Context) error {
					_, err := m.app.Reminders.MarkCompleted(ctx, r.ID)
					return err
				})
			}
		}

	case km.DeleteReminder:
		if m.agendaSel < len(entries) {
			r := entries[m.agendaSel].reminder
			m.confirm = &confirmState{
				kind:     confirmDeleteReminder,
				id:       r.ID,
				prompt:   fmt.Sprintf("Delete follow-up %q? (y/n)", r.Title),
				returnTo: agendaMode,
			}
			m.mode = confirmMode
		}
	}
	return nil
}

func (m *Model) handleConfirmKey(k string) tea.Cmd {
	c := m.confirm
	if c == nil {
		m.mode = boardMode
		return nil
	}

	switch k {
	case "y", "Y":
		m.confirm = nil
		m.mode = c.returnTo
		m.busy = true
		switch c.kind {
		case confirmDeleteLead:
			return opCmd(func(ctx context.Context) error {
				return m.app.Leads.Delete(ctx, c.id)
			})
		case confirmDeleteReminder:
			return opCmd(func(ctx context.Context) error {
				return m.app.Reminders.Delete(ctx, c.id)
			})
		}
	case "n", "N", "esc":
		m.confirm = nil
		m.mode = c.returnTo
	}
	return nil
}
