package tutoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/linkudp/linkudp-cli/core"
	"github.com/linkudp/linkudp-cli/core/user"
)

type Course struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Tutor is the tutor reference embedded in a tutoring listing.
type Tutor struct {
	ID   int       `json:"id"`
	User user.User `json:"user"`
	Bio  string    `json:"bio,omitempty"`
}

// Tutoring is a schedulable session record linking a tutor, a course and a
// time window. All fields are backend-owned; the client never mutates them.
type Tutoring struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Location    string `json:"location,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Status      string `json:"status"`
	Tutor       Tutor  `json:"tutor"`
	Course      Course `json:"course"`
}

// Schedule renders the session date and start time for listings.
func (t Tutoring) Schedule() string {
	start, err := parseBackendTime(t.StartTime)
	if err != nil {
		return t.Date + " " + t.StartTime
	}
	date, derr := parseBackendTime(t.Date)
	if derr != nil {
		date = start
	}
	return fmt.Sprintf("%s %s", date.Format("02-01-2006"), start.Format("15:04"))
}

// DurationHours computes the session length from its time window.
// Returns 0 when the window cannot be parsed.
func (t Tutoring) DurationHours() float64 {
	start, err1 := parseBackendTime(t.StartTime)
	end, err2 := parseBackendTime(t.EndTime)
	if err1 != nil || err2 != nil || !end.After(start) {
		return 0
	}
	return end.Sub(start).Hours()
}

// parseBackendTime accepts the timestamp shapes the backend has been seen
// emitting for session windows: RFC3339 or bare HH:MM.
func parseBackendTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "15:04"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// matches reports whether the listing matches a search term, checking title,
// course name and tutor name the way the list page filters.
func (t Tutoring) matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Course.Name), term) ||
		strings.Contains(strings.ToLower(t.Tutor.User.FullName), term)
}

// Filter returns the listings matching a case-insensitive search term.
func Filter(list []Tutoring, term string) []Tutoring {
	term = core.CleanString(term)
	matched := make([]Tutoring, 0, len(list))
	for _, t := range list {
		if t.matches(term) {
			matched = append(matched, t)
		}
	}
	return matched
}

// NewTutoring is the POST /tutorias payload of the creation form.
type NewTutoring struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	CourseID    int    `json:"courseId" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required,hhmm"`
	EndTime     string `json:"end_time" validate:"required,hhmm"`
	Location    string `json:"location,omitempty"`
}

func (nt *NewTutoring) Validate() error {
	nt.Title = core.CleanString(nt.Title)
	nt.Location = core.CleanString(nt.Location)
	return core.Validate.Struct(nt)
}
