package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/venda-crm/venda/internal/events"
	"github.com/venda-crm/venda/internal/models"
)

// now is a test hook for the agenda's reference time.
var now = time.Now

// Messages produced by store-backed commands. Each store operation runs in a
// command goroutine and reports back exactly once; the model only changes in
// response to these messages.
type (
	sessionCheckedMsg struct{ user *models.User }

	dataLoadedMsg struct {
		leads     []models.Lead
		reminders []models.Reminder
	}
	loadFailedMsg struct{ err error }

	opDoneMsg   struct{}
	opFailedMsg struct{ err error }

	loginDoneMsg   struct{ user *models.User }
	loginFailedMsg struct{ err error }
	loggedOutMsg   struct{}

	storeChangedMsg struct{ evt events.Event }
)

// checkSessionCmd resolves the stored session marker, if any.
func (m *Model) checkSessionCmd() tea.Cmd {
	return func() tea.Msg {
		user, err := m.app.Session.CurrentUser(context.Background())
		if err != nil {
			return sessionCheckedMsg{user: nil}
		}
		return sessionCheckedMsg{user: user}
	}
}

// loadDataCmd reloads both collections. The lead store falls back to seed
// data internally, so only the reminder read can fail here.
func (m *Model) loadDataCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		leads, err := m.app.Leads.List(ctx)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		reminders, err := m.app.Reminders.List(ctx)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return dataLoadedMsg{leads: leads, reminders: reminders}
	}
}

// opCmd runs a mutating store operation and reports completion or failure.
func opCmd(op func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := op(context.Background()); err != nil {
			return opFailedMsg{err: err}
		}
		return opDoneMsg{}
	}
}

// changeStageCmd requests the stage transition emitted by a drop.
func (m *Model) changeStageCmd(leadID int, stage string) tea.Cmd {
	return opCmd(func(ctx context.Context) error {
		_, err := m.app.Leads.ChangeStage(ctx, leadID, stage)
		return err
	})
}

func (m *Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.app.Session.Login(context.Background(), email, password)
		if err != nil {
			return loginFailedMsg{err: err}
		}
		return loginDoneMsg{user: user}
	}
}

func (m *Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.app.Session.Logout(context.Background()); err != nil {
			return opFailedMsg{err: err}
		}
		return loggedOutMsg{}
	}
}

// listenForChanges waits for the next store change event. Re-armed after
// each delivery.
func (m *Model) listenForChanges() tea.Cmd {
	return func() tea.Msg {
		return storeChangedMsg{evt: <-m.changes}
	}
}
