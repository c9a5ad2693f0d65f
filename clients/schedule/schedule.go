package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tadreeb/models"
)

// Client fetches the trainer's recurring weekly schedule and the already
// booked appointments from the scheduling collaborator.
type Client interface {
	FetchWindows(ctx context.Context) ([]models.AvailabilityWindow, error)
	FetchBookedSlots(ctx context.Context, month time.Month, year int) ([]models.BookedSlot, error)
}

// HTTPClient is the JSON-over-HTTP implementation of Client.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type windowDTO struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FetchWindows returns the full year-independent weekly schedule.
func (c *HTTPClient) FetchWindows(ctx context.Context) ([]models.AvailabilityWindow, error) {
	url := fmt.Sprintf("%s/availability", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build availability request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("availability fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("availability fetch returned status %d", resp.StatusCode)
	}

	var dtos []windowDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("failed to decode availability response: %w", err)
	}

	windows := make([]models.AvailabilityWindow, 0, len(dtos))
	for _, d := range dtos {
		day, ok := models.ParseWeekday(d.Day)
		if !ok {
			// Unknown day names are skipped rather than failing the whole set.
			continue
		}
		windows = append(windows, models.AvailabilityWindow{
			Day:       day,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}
	return windows, nil
}

// FetchBookedSlots returns the reserved intervals for the given month.
func (c *HTTPClient) FetchBookedSlots(ctx context.Context, month time.Month, year int) ([]models.BookedSlot, error) {
	url := fmt.Sprintf("%s/appointments?month=%d&year=%d", c.BaseURL, int(month), year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build appointments request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("appointments fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("appointments fetch returned status %d", resp.StatusCode)
	}

	var slots []models.BookedSlot
	if err := json.NewDecoder(resp.Body).Decode(&slots); err != nil {
		return nil, fmt.Errorf("failed to decode appointments response: %w", err)
	}
	return slots, nil
}
