package ui

import (
	"encoding/json"
	"strings"
	"time"
)

// CalendarEvent is the UI projection of a backend event record.
type CalendarEvent struct {
	ID       string
	Summary  string
	Start    time.Time
	End      time.Time
	Complete bool
}

// WeekStart returns midnight on the Sunday of t's week, in t's location.
func WeekStart(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// InWeek reports whether the event starts within the seven days beginning
// at weekStart.
func InWeek(e CalendarEvent, weekStart time.Time) bool {
	return !e.Start.Before(weekStart) && e.Start.Before(weekStart.AddDate(0, 0, 7))
}

// FilterWeek keeps only the events of the week beginning at weekStart,
// bucketed by weekday (index 0 = Sunday). Buckets follow calendar days,
// not elapsed hours, so weeks containing a DST transition stay seven
// buckets wide.
func FilterWeek(events []CalendarEvent, weekStart time.Time) [7][]CalendarEvent {
	var days [7][]CalendarEvent
	for _, e := range events {
		if !InWeek(e, weekStart) {
			continue
		}
		start := e.Start.In(weekStart.Location())
		for day := 6; day >= 0; day-- {
			if !start.Before(weekStart.AddDate(0, 0, day)) {
				days[day] = append(days[day], e)
				break
			}
		}
	}
	return days
}

// rawEvent tolerates the two shapes the backend emits: flat ISO strings and
// nested {dateTime, timeZone} objects; ids may be strings or numbers.
type rawEvent struct {
	ID       json.RawMessage `json:"id"`
	Summary  string          `json:"summary"`
	Start    json.RawMessage `json:"start"`
	End      json.RawMessage `json:"end"`
	Complete bool            `json:"complete"`
	IsDone   bool            `json:"is_done"`
}

// ParseEvents converts a backend events array into UI projections. Entries
// whose start time cannot be parsed are dropped rather than failing the
// whole page.
func ParseEvents(raw json.RawMessage) ([]CalendarEvent, error) {
	var items []rawEvent
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	events := make([]CalendarEvent, 0, len(items))
	for _, item := range items {
		start, ok := parseEventTime(item.Start)
		if !ok {
			continue
		}
		end, _ := parseEventTime(item.End)
		events = append(events, CalendarEvent{
			ID:       parseEventID(item.ID),
			Summary:  item.Summary,
			Start:    start,
			End:      end,
			Complete: item.Complete || item.IsDone,
		})
	}
	return events, nil
}

func parseEventID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func parseEventTime(raw json.RawMessage) (time.Time, bool) {
	if len(raw) == 0 {
		return time.Time{}, false
	}

	var flat string
	if err := json.Unmarshal(raw, &flat); err == nil {
		return parseTimestamp(flat)
	}

	var nested struct {
		DateTime string `json:"dateTime"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil && nested.DateTime != "" {
		return parseTimestamp(nested.DateTime)
	}

	return time.Time{}, false
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
