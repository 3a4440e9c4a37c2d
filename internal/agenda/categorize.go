// Package agenda buckets follow-up reminders by urgency for the dashboard
// view.
package agenda

import (
	"time"

	"github.com/venda-crm/venda/internal/models"
)

// Bucket identifies an agenda section.
type Bucket int

const (
	Overdue Bucket = iota
	Today
	Tomorrow
	ThisWeek
	Later
	Completed
)

// String returns the display label for the bucket.
func (b Bucket) String() string {
	switch b {
	case Overdue:
		return "Overdue"
	case Today:
		return "Today"
	case Tomorrow:
		return "Tomorrow"
	case ThisWeek:
		return "This Week"
	case Later:
		return "Later"
	case Completed:
		return "Completed"
	}
	return "Unknown"
}

// Buckets lists the sections in dashboard display order.
var Buckets = []Bucket{Overdue, Today, Tomorrow, ThisWeek, Later, Completed}

// Categories holds the bucketed reminders. Within each bucket the source
// order is preserved; any sorting is the caller's business.
type Categories map[Bucket][]models.Reminder

// Categorize buckets reminders against the given reference time. Completed
// reminders land in Completed regardless of date. For the rest: scheduled
// strictly before the start of the current day is Overdue, then the current
// day, the next day, the remainder of the current calendar week (weeks start
// Sunday, as in the original client), and everything beyond is Later.
func Categorize(reminders []models.Reminder, now time.Time) Categories {
	cats := Categories{}
	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	dayAfter := today.AddDate(0, 0, 2)
	weekEnd := startOfWeek(now).AddDate(0, 0, 7)

	for _, r := range reminders {
		b := bucketFor(r, today, tomorrow, dayAfter, weekEnd)
		cats[b] = append(cats[b], r)
	}
	return cats
}

func bucketFor(r models.Reminder, today, tomorrow, dayAfter, weekEnd time.Time) Bucket {
	if r.Completed {
		return Completed
	}
	t := r.ReminderDateTime.In(today.Location())
	switch {
	case t.Before(today):
		return Overdue
	case t.Before(tomorrow):
		return Today
	case t.Before(dayAfter):
		return Tomorrow
	case t.Before(weekEnd):
		return ThisWeek
	default:
		return Later
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfWeek(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}
