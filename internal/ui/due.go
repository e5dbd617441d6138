package ui

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Makepad-fr/tasks/internal/model"
)

const dueLayout = "Jan 2, 2006"

var titleCase = cases.Title(language.English)

// FormatDue renders a stored YYYY-MM-DD date as "Jan 15, 2024 (in 3 days)"
// relative to now. Unparseable values are shown verbatim.
func FormatDue(due string, now time.Time) string {
	if due == "" {
		return "no due date"
	}
	d, err := time.ParseInLocation(time.DateOnly, due, now.Location())
	if err != nil {
		return due
	}
	return fmt.Sprintf("%s (%s)", d.Format(dueLayout), relativeDays(d, now))
}

// Overdue reports whether an incomplete todo's due date is before today.
func Overdue(t *model.Todo, now time.Time) bool {
	if t.Completed || t.DueDate == "" {
		return false
	}
	d, err := time.ParseInLocation(time.DateOnly, t.DueDate, now.Location())
	if err != nil {
		return false
	}
	return d.Before(startOfDay(now))
}

func relativeDays(d, now time.Time) string {
	days := int(math.Round(d.Sub(startOfDay(now)).Hours() / 24))
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 1:
		return fmt.Sprintf("in %d days", days)
	default:
		return fmt.Sprintf("%d days ago", -days)
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// PriorityLabel is the display form of p, colored by the theme.
func PriorityLabel(p model.Priority) string {
	label := titleCase.String(string(p))
	switch p {
	case model.PriorityHigh:
		return current.High.Render(label)
	case model.PriorityLow:
		return current.Low.Render(label)
	default:
		return current.Medium.Render(label)
	}
}
