// Package drag tracks the in-flight movement of a lead card between board
// columns. One coordinator exists per board view. It never touches the lead
// store: on a valid drop it emits a single callback and the caller decides
// what to do with it.
package drag

import "github.com/venda-crm/venda/internal/models"

// State of the coordinator.
type State int

const (
	// Idle: nothing is being moved.
	Idle State = iota
	// Dragging: a lead has been picked up, no column hovered yet.
	Dragging
	// DraggingOver: a lead is held over a candidate column.
	DraggingOver
)

// DropFunc receives the dragged lead and the target stage title when a drop
// lands on a stage that differs from the lead's current one.
type DropFunc func(lead models.Lead, targetStage string)

// Coordinator is the drag state machine.
type Coordinator struct {
	state  State
	lead   models.Lead
	over   string
	onDrop DropFunc
}

// New returns an idle coordinator that calls onDrop for effective drops.
func New(onDrop DropFunc) *Coordinator {
	return &Coordinator{onDrop: onDrop}
}

// State returns the current state.
func (c *Coordinator) State() State {
	return c.state
}

// Lead returns the lead being dragged. Only meaningful outside Idle.
func (c *Coordinator) Lead() models.Lead {
	return c.lead
}

// OverStage returns the hovered stage title, or "" when none.
func (c *Coordinator) OverStage() string {
	if c.state != DraggingOver {
		return ""
	}
	return c.over
}

// Start picks up a lead. Starting while a drag is in flight replaces it.
func (c *Coordinator) Start(lead models.Lead) {
	c.state = Dragging
	c.lead = lead
	c.over = ""
}

// Enter records the column under the pointer for highlighting. Ignored when
// nothing is being dragged.
func (c *Coordinator) Enter(stageTitle string) {
	if c.state == Idle {
		return
	}
	c.state = DraggingOver
	c.over = stageTitle
}

// Leave clears the hovered column. toChild reports whether the pointer moved
// onto a descendant of the same column; those crossings are ignored so the
// highlight doesn't flicker at card boundaries.
func (c *Coordinator) Leave(stageTitle string, toChild bool) {
	if c.state != DraggingOver || c.over != stageTitle || toChild {
		return
	}
	c.state = Dragging
	c.over = ""
}

// Drop ends the drag on the given stage. If the stage differs from the
// lead's current one, onDrop fires exactly once with the lead and target.
// Dropping on the lead's own stage is a no-op. State is reset to Idle before
// the callback runs, so a failing downstream stage change finds the
// coordinator already settled.
func (c *Coordinator) Drop(stageTitle string) {
	if c.state == Idle {
		return
	}
	lead := c.lead
	c.reset()
	if lead.Column == stageTitle {
		return
	}
	if c.onDrop != nil {
		c.onDrop(lead, stageTitle)
	}
}

// Cancel abandons the drag without emitting anything.
func (c *Coordinator) Cancel() {
	c.reset()
}

func (c *Coordinator) reset() {
	c.state = Idle
	c.lead = models.Lead{}
	c.over = ""
}
