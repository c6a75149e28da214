package projects

import "time"

type Status int

const (
	StatusOngoing Status = iota
	StatusCompleted
	StatusDueToday
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "Completed"
	case StatusDueToday:
		return "Due Today!"
	default:
		return "Ongoing"
	}
}

// Class is the CSS class used for the status line on a card.
func (s Status) Class() string {
	switch s {
	case StatusCompleted:
		return "text-success"
	case StatusDueToday:
		return "text-warning"
	default:
		return "text-primary"
	}
}

// StatusOf compares calendar days only. Each instant is read in its own
// location before the time of day is dropped.
func StatusOf(deadline, now time.Time) Status {
	switch c := day(deadline).Compare(day(now)); {
	case c > 0:
		return StatusOngoing
	case c < 0:
		return StatusCompleted
	default:
		return StatusDueToday
	}
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Card is a project ready to render, with status computed for one instant.
type Card struct {
	Project
	Status       Status
	DeadlineText string
}

// Cards computes status for every project against now. Call it at render
// time; the result goes stale as the date advances.
func Cards(list []Project, now time.Time) []Card {
	out := make([]Card, len(list))
	for i, p := range list {
		out[i] = Card{
			Project:      p,
			Status:       StatusOf(p.Deadline, now),
			DeadlineText: p.Deadline.Format("1/2/2006"),
		}
	}
	return out
}
