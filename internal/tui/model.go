// Package tui implements the terminal board: a kanban view of leads grouped
// by pipeline stage, a follow-up agenda, huh forms for CRUD, and the mock
// login gate. State only ever refreshes from the stores after an operation
// resolves; nothing is updated optimistically.
package tui

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"

	"github.com/venda-crm/venda/internal/agenda"
	"github.com/venda-crm/venda/internal/app"
	"github.com/venda-crm/venda/internal/drag"
	"github.com/venda-crm/venda/internal/events"
	"github.com/venda-crm/venda/internal/models"
	"github.com/venda-crm/venda/internal/pipeline"
)

// mode identifies which interaction layer owns the keyboard.
type mode int

const (
	loginMode mode = iota
	boardMode
	agendaMode
	leadFormMode
	reminderFormMode
	confirmMode
	helpMode
)

// confirmKind distinguishes what a pending y/n confirmation will do.
type confirmKind int

const (
	confirmDeleteLead confirmKind = iota
	confirmDeleteReminder
)

type confirmState struct {
	kind   confirmKind
	id     int
	prompt string
	// return here after the confirmation resolves
	returnTo mode
}

// dropRequest is captured by the drag coordinator's callback and turned
// into a stage-change command by Update.
type dropRequest struct {
	lead  models.Lead
	stage string
}

// Model holds all TUI state. Methods use pointer receivers; App wraps the
// model to satisfy tea.Model.
type Model struct {
	app    *app.App
	styles Styles

	mode          mode
	width, height int

	// signed-in user; nil until the login gate passes
	user *models.User

	// store snapshots, refreshed after every resolved operation
	leads     []models.Lead
	reminders []models.Reminder
	board     pipeline.Board
	cats      agenda.Categories

	// board cursor
	selStage int
	selLead  int

	// agenda cursor: flattened index across buckets
	agendaSel int

	// drag state machine; drop holds the emitted request until Update
	// consumes it
	dragger *drag.Coordinator
	drop    *dropRequest

	// forms
	form          *huh.Form
	leadForm      *leadFormValues
	reminderForm  *reminderFormValues
	loginFormVals *loginValues
	editingLeadID int
	confirm       *confirmState

	// async operation state
	busy    bool
	spin    spinner.Model
	errText string
	// re-invoked by the retry key after a failed operation
	retry func() tea.Cmd

	// store change notifications from the event bus
	changes chan events.Event
}

// NewModel builds the TUI model on the application container.
func NewModel(a *app.App) *Model {
	m := &Model{
		app:     a,
		styles:  NewStyles(a.Config.Theme),
		mode:    loginMode,
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		changes: make(chan events.Event, 16),
	}
	m.dragger = drag.New(func(lead models.Lead, stage string) {
		m.drop = &dropRequest{lead: lead, stage: stage}
	})
	a.Bus.Subscribe(func(evt events.Event) {
		select {
		case m.changes <- evt:
		default:
			// channel full: a reload is already pending, drop the signal
		}
	})
	return m
}

// App wraps the Model to implement tea.Model.
type App struct {
	model *Model
}

// NewApp creates the Bubble Tea application around the container.
func NewApp(a *app.App) *App {
	return &App{model: NewModel(a)}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.model.initCmd()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.model.update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() tea.View {
	return a.model.view()
}

// Model exposes the underlying model for tests.
func (a *App) Model() *Model {
	return a.model
}

func (m *Model) initCmd() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.checkSessionCmd(), m.listenForChanges())
}

// rebuildViews recomputes the derived board and agenda from the current
// snapshots.
func (m *Model) rebuildViews() {
	m.board = pipeline.Build(m.leads, m.app.Config.Stages)
	m.cats = agenda.Categorize(m.reminders, now())
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if len(m.board.Groups) == 0 {
		m.selStage, m.selLead = 0, 0
		return
	}
	if m.selStage >= len(m.board.Groups) {
		m.selStage = len(m.board.Groups) - 1
	}
	if m.selStage < 0 {
		m.selStage = 0
	}
	count := m.board.Groups[m.selStage].Count()
	if m.selLead >= count {
		m.selLead = count - 1
	}
	if m.selLead < 0 {
		m.selLead = 0
	}
}

// selectedLead returns the lead under the board cursor, if any.
func (m *Model) selectedLead() (models.Lead, bool) {
	if m.selStage >= len(m.board.Groups) {
		return models.Lead{}, false
	}
	group := m.board.Groups[m.selStage]
	if m.selLead >= len(group.Leads) {
		return models.Lead{}, false
	}
	return group.Leads[m.selLead], true
}

// agendaReminders returns the agenda entries in display order, tagged with
// their bucket.
func (m *Model) agendaReminders() []agendaEntry {
	var entries []agendaEntry
	for _, b := range agenda.Buckets {
		for _, r := range m.cats[b] {
			entries = append(entries, agendaEntry{bucket: b, reminder: r})
		}
	}
	return entries
}

type agendaEntry struct {
	bucket   agenda.Bucket
	reminder models.Reminder
}
