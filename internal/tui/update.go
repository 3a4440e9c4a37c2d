package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
)

// update is the message dispatcher. It returns the next command; the model
// mutates in place.
func (m *Model) update(msg tea.Msg) tea.Cmd {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		return nil
	}

	// Async results are handled regardless of mode.
	if cmd, handled := m.handleAsync(msg); handled {
		return cmd
	}

	// Forms own the keyboard while open.
	switch m.mode {
	case loginMode, leadFormMode, reminderFormMode:
		return m.updateForm(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(key)
	}

	// Everything else feeds the spinner so it keeps animating while an
	// operation is pending.
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return cmd
}

// handleAsync consumes command-result messages. The bool result reports
// whether the message was one of ours.
func (m *Model) handleAsync(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case sessionCheckedMsg:
		if msg.user == nil {
			m.openLogin()
			return nil, true
		}
		m.user = msg.user
		m.mode = boardMode
		m.busy = true
		return m.loadDataCmd(), true

	case dataLoadedMsg:
		m.busy = false
		m.errText = ""
		m.retry = nil
		m.leads = msg.leads
		m.reminders = msg.reminders
		m.rebuildViews()
		return nil, true

	case loadFailedMsg:
		m.busy = false
		m.errText = fmt.Sprintf("Failed to load data: %v", msg.err)
		m.retry = m.loadDataCmd
		return nil, true

	case opDoneMsg:
		// mutation persisted; refresh from the store's actual state
		m.busy = true
		return m.loadDataCmd(), true

	case opFailedMsg:
		m.busy = false
		m.errText = fmt.Sprintf("Operation failed: %v", msg.err)
		return nil, true

	case loginDoneMsg:
		m.busy = false
		m.user = msg.user
		m.form = nil
		m.loginFormVals = nil
		m.mode = boardMode
		m.busy = true
		return m.loadDataCmd(), true

	case loginFailedMsg:
		m.busy = false
		m.errText = fmt.Sprintf("Login failed: %v", msg.err)
		m.openLogin()
		return nil, true

	case loggedOutMsg:
		m.busy = false
		m.user = nil
		m.openLogin()
		return nil, true

	case storeChangedMsg:
		// another view mutated the store; reload and re-arm the listener
		cmds := []tea.Cmd{m.listenForChanges()}
		if !m.busy {
			m.busy = true
			cmds = append(cmds, m.loadDataCmd())
		}
		return tea.Batch(cmds...), true
	}
	return nil, false
}

// updateForm drives the open huh form until it completes or is cancelled.
func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" && m.mode != loginMode {
		m.closeForm()
		return nil
	}
	if m.form == nil {
		return nil
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State != huh.StateCompleted {
		return cmd
	}

	switch m.mode {
	case loginMode:
		v := m.loginFormVals
		m.busy = true
		return tea.Batch(cmd, m.loginCmd(v.Email, v.Password))

	case leadFormMode:
		v := m.leadForm
		id := m.editingLeadID
		m.closeForm()
		m.busy = true
		if id > 0 {
			return tea.Batch(cmd, opCmd(func(ctx context.Context) error {
				_, err := m.app.Leads.Update(ctx, v.updateRequest(id))
				return err
			}))
		}
		return tea.Batch(cmd, opCmd(func(ctx context.Context) error {
			_, err := m.app.Leads.Create(ctx, v.createRequest())
			return err
		}))

	case reminderFormMode:
		v := m.reminderForm
		m.closeForm()
		req, err := v.createRequest()
		if err != nil {
			m.errText = fmt.Sprintf("Invalid reminder: %v", err)
			return cmd
		}
		m.busy = true
		return tea.Batch(cmd, opCmd(func(ctx context.Context) error {
			_, err := m.app.Reminders.Create(ctx, req)
			return err
		}))
	}
	return cmd
}

func (m *Model) openLogin() {
	m.mode = loginMode
	m.loginFormVals = &loginValues{}
	m.form = newLoginForm(m.loginFormVals)
}

func (m *Model) closeForm() {
	m.form = nil
	m.leadForm = nil
	m.reminderForm = nil
	m.editingLeadID = 0
	m.mode = boardMode
}
