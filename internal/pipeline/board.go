// Package pipeline derives the kanban board view from the current store
// snapshot. It never mutates anything; the board is recomputed from scratch
// on every render.
package pipeline

import (
	"sort"

	"github.com/venda-crm/venda/internal/models"
)

// StageGroup is one board column: a stage and the active leads in it.
type StageGroup struct {
	Stage      models.Stage
	Leads      []models.Lead
	TotalValue float64
}

// Count returns the number of leads in the group.
func (g StageGroup) Count() int {
	return len(g.Leads)
}

// Board is the grouped view of the pipeline. Orphans holds active leads
// whose stage matches no configured title; the original client silently
// dropped these from the board, which hid bad data. They are surfaced here
// so the UI can warn instead.
type Board struct {
	Groups  []StageGroup
	Orphans []models.Lead
}

// TotalValue sums the estimated value across all groups.
func (b Board) TotalValue() float64 {
	var total float64
	for _, g := range b.Groups {
		total += g.TotalValue
	}
	return total
}

// Build groups leads by exact title match against the configured stages.
// Stages are stable-sorted by ascending order; leads keep their storage
// order within each group. Archived leads are excluded entirely.
func Build(leads []models.Lead, stages models.StageSet) Board {
	sorted := make([]models.Stage, len(stages))
	copy(sorted, stages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	groups := make([]StageGroup, len(sorted))
	index := make(map[string]int, len(sorted))
	for i, st := range sorted {
		groups[i] = StageGroup{Stage: st}
		index[st.Title] = i
	}

	var orphans []models.Lead
	for _, l := range leads {
		if l.Archived {
			continue
		}
		i, ok := index[l.Column]
		if !ok {
			orphans = append(orphans, l)
			continue
		}
		groups[i].Leads = append(groups[i].Leads, l)
		groups[i].TotalValue += l.EstimatedValue
	}

	return Board{Groups: groups, Orphans: orphans}
}
