package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"tadreeb/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockScheduleClient struct {
	mock.Mock
}

func (m *MockScheduleClient) FetchWindows(ctx context.Context) ([]models.AvailabilityWindow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AvailabilityWindow), args.Error(1)
}

func (m *MockScheduleClient) FetchBookedSlots(ctx context.Context, month time.Month, year int) ([]models.BookedSlot, error) {
	args := m.Called(ctx, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BookedSlot), args.Error(1)
}

func TestIsDateSelectable_EmptyWindowsFailOpen(t *testing.T) {
	now := time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC) // a Wednesday

	assert.True(t, isDateSelectableAt(now, nil, now), "today must be selectable")
	assert.True(t, isDateSelectableAt(now.AddDate(0, 0, 1), nil, now))
	assert.True(t, isDateSelectableAt(now.AddDate(0, 1, 0), nil, now))
	assert.False(t, isDateSelectableAt(now.AddDate(0, 0, -1), nil, now))
	assert.False(t, isDateSelectableAt(now.AddDate(-1, 0, 0), nil, now))
}

func TestIsDateSelectable_MondayOnly(t *testing.T) {
	windows := []models.AvailabilityWindow{
		{Day: time.Monday, StartTime: "09:00", EndTime: "17:00"},
	}
	now := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC) // Wednesday

	nextMonday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Monday, nextMonday.Weekday())
	assert.True(t, isDateSelectableAt(nextMonday, windows, now))
	assert.True(t, isDateSelectableAt(nextMonday.AddDate(0, 0, 7), windows, now))

	// Non-Mondays are rejected even in the future.
	assert.False(t, isDateSelectableAt(nextMonday.AddDate(0, 0, 1), windows, now))
	assert.False(t, isDateSelectableAt(now, windows, now))

	// Past Mondays are rejected.
	lastMonday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Monday, lastMonday.Weekday())
	assert.False(t, isDateSelectableAt(lastMonday, windows, now))
}

func TestIsDateSelectable_TodayInclusive(t *testing.T) {
	now := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC) // Monday, late evening
	windows := []models.AvailabilityWindow{
		{Day: time.Monday, StartTime: "09:00", EndTime: "17:00"},
	}
	// Today counts regardless of the current time of day.
	today := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.True(t, isDateSelectableAt(today, windows, now))
}

func TestWindows_FetchErrorFailsOpen(t *testing.T) {
	client := new(MockScheduleClient)
	client.On("FetchWindows", mock.Anything).Return(nil, errors.New("upstream down"))

	model := NewModel(client, zap.NewNop())
	windows := model.Windows(context.Background())

	assert.Empty(t, windows)
	// Empty set means every future date stays selectable.
	assert.True(t, IsDateSelectable(time.Now().AddDate(0, 0, 3), windows))
	client.AssertExpectations(t)
}

func TestSelectableDays_MapsWholeMonth(t *testing.T) {
	client := new(MockScheduleClient)
	client.On("FetchWindows", mock.Anything).Return([]models.AvailabilityWindow{
		{Day: time.Saturday, StartTime: "10:00", EndTime: "14:00"},
	}, nil)

	model := NewModel(client, zap.NewNop())
	year := time.Now().Year() + 1
	days := model.SelectableDays(context.Background(), time.January, year)

	assert.Len(t, days, 31)
	for dateStr, selectable := range days {
		d, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		assert.NoError(t, err)
		assert.Equal(t, d.Weekday() == time.Saturday, selectable, dateStr)
	}
}

func TestExcludedTimes(t *testing.T) {
	slots := []models.BookedSlot{
		{Date: "2026-05-04", StartTime: "10:00", EndTime: "11:30"},
		{Date: "2026-05-05", StartTime: "09:00", EndTime: "10:00"},
	}

	excluded := ExcludedTimes("2026-05-04", slots)
	assert.Equal(t, []string{"10:00", "10:30", "11:00"}, excluded)

	assert.Empty(t, ExcludedTimes("2026-05-06", slots))
}

func TestTimesBetween(t *testing.T) {
	halfHours, err := TimesBetween("09:00", "11:00", SlotIncrement)
	assert.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, halfHours)

	hours, err := TimesBetween("09:00", "12:00", HourStep)
	assert.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, hours)

	_, err = TimesBetween("9am", "11:00", HourStep)
	assert.Error(t, err)
}
