package availability

import (
	"context"
	"fmt"
	"time"

	"tadreeb/clients/schedule"
	"tadreeb/models"

	"go.uber.org/zap"
)

// Time-of-day stepping used when presenting selectable times.
const (
	SlotIncrement = 30 * time.Minute
	HourStep      = time.Hour
)

// Model turns the trainer's recurring weekly schedule into a fast
// day-of-week admissibility test, and booked appointments into advisory
// time exclusions. The booking collaborator stays the authority: a
// client-accepted date/time it rejects surfaces as a booking error.
type Model struct {
	Client schedule.Client
	Logger *zap.Logger
}

func NewModel(client schedule.Client, logger *zap.Logger) *Model {
	return &Model{Client: client, Logger: logger}
}

// Windows fetches the current weekly schedule snapshot. A fetch failure is
// deliberately fail-open: booking must never be blocked by a scheduling
// data outage, so the error is logged and an empty set is returned, which
// IsDateSelectable treats as "every future date is selectable".
func (m *Model) Windows(ctx context.Context) []models.AvailabilityWindow {
	windows, err := m.Client.FetchWindows(ctx)
	if err != nil {
		m.Logger.Error("availability fetch failed, failing open", zap.Error(err))
		return nil
	}
	return windows
}

// IsDateSelectable reports whether date can be picked in the schedule step.
// A date qualifies iff it is today or later and its weekday appears in at
// least one window. An empty window set admits every future-or-today date.
func IsDateSelectable(date time.Time, windows []models.AvailabilityWindow) bool {
	return isDateSelectableAt(date, windows, time.Now())
}

func isDateSelectableAt(date time.Time, windows []models.AvailabilityWindow, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	if day.Before(today) {
		return false
	}
	if len(windows) == 0 {
		return true
	}
	for _, w := range windows {
		if w.Day == date.Weekday() {
			return true
		}
	}
	return false
}

// SelectableDays maps every day of the given month to its selectability.
func (m *Model) SelectableDays(ctx context.Context, month time.Month, year int) map[string]bool {
	windows := m.Windows(ctx)
	days := make(map[string]bool)
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.Local); d.Month() == month; d = d.AddDate(0, 0, 1) {
		days[d.Format("2006-01-02")] = IsDateSelectable(d, windows)
	}
	return days
}

// BookedSlots fetches the reserved intervals for a month. Unlike the
// weekly schedule this is not fail-open; exclusions are advisory and the
// caller may simply present no exclusions on error.
func (m *Model) BookedSlots(ctx context.Context, month time.Month, year int) ([]models.BookedSlot, error) {
	slots, err := m.Client.FetchBookedSlots(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("booked slots fetch failed: %w", err)
	}
	return slots, nil
}

// ExcludedTimes returns the "HH:MM" starts on date that fall inside an
// already-booked interval, in half-hour increments.
func ExcludedTimes(date string, slots []models.BookedSlot) []string {
	var excluded []string
	for _, s := range slots {
		if s.Date != date {
			continue
		}
		start, err1 := parseClock(s.StartTime)
		end, err2 := parseClock(s.EndTime)
		if err1 != nil || err2 != nil || !start.Before(end) {
			continue
		}
		for t := start; t.Before(end); t = t.Add(SlotIncrement) {
			excluded = append(excluded, t.Format("15:04"))
		}
	}
	return excluded
}

// TimesBetween lists "HH:MM" values from start to end exclusive, stepped by
// the given granularity (SlotIncrement or HourStep).
func TimesBetween(startTime, endTime string, step time.Duration) ([]string, error) {
	start, err := parseClock(startTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(endTime)
	if err != nil {
		return nil, err
	}
	var times []string
	for t := start; t.Before(end); t = t.Add(step) {
		times = append(times, t.Format("15:04"))
	}
	return times, nil
}

func parseClock(s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t, nil
}
