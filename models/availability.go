package models

import "time"

// AvailabilityWindow is one recurring weekly window during which the trainer
// accepts bookings. The schedule is year-independent: a window applies to
// every date whose weekday matches Day.
type AvailabilityWindow struct {
	Day       time.Weekday `json:"day"`
	StartTime string       `json:"startTime"` // "HH:MM", e.g. "09:00"
	EndTime   string       `json:"endTime"`   // "HH:MM", e.g. "17:30"
}

// BookedSlot is an already-reserved interval on a concrete date. Slot
// exclusion built from these is advisory only; the booking collaborator is
// the authority and may still reject a client-accepted time.
type BookedSlot struct {
	Date      string `json:"date"` // "2006-01-02"
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ParseWeekday maps the collaborator's symbolic day names onto time.Weekday.
func ParseWeekday(s string) (time.Weekday, bool) {
	switch s {
	case "sunday", "Sunday":
		return time.Sunday, true
	case "monday", "Monday":
		return time.Monday, true
	case "tuesday", "Tuesday":
		return time.Tuesday, true
	case "wednesday", "Wednesday":
		return time.Wednesday, true
	case "thursday", "Thursday":
		return time.Thursday, true
	case "friday", "Friday":
		return time.Friday, true
	case "saturday", "Saturday":
		return time.Saturday, true
	}
	return time.Sunday, false
}
