package handlers

import (
	"net/http"
	"strconv"
	"time"

	"tadreeb/services/availability"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes the selectable-day map and booked slots.
type AvailabilityHandler struct {
	Model  *availability.Model
	Logger *zap.Logger
}

func NewAvailabilityHandler(model *availability.Model, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Model: model, Logger: logger}
}

func monthYearParams(c *gin.Context) (time.Month, int) {
	now := time.Now()
	month, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if year <= 0 {
		year = now.Year()
	}
	return time.Month(month), year
}

// GetSelectableDays handles GET /api/availability/days.
func (h *AvailabilityHandler) GetSelectableDays(c *gin.Context) {
	month, year := monthYearParams(c)
	days := h.Model.SelectableDays(c.Request.Context(), month, year)
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// GetBookedSlots handles GET /api/availability/booked. Exclusions are
// advisory; an empty list on error keeps the schedule step usable.
func (h *AvailabilityHandler) GetBookedSlots(c *gin.Context) {
	month, year := monthYearParams(c)
	slots, err := h.Model.BookedSlots(c.Request.Context(), month, year)
	if err != nil {
		h.Logger.Warn("GetBookedSlots: fetch failed, returning empty exclusions",
			zap.Int("month", int(month)), zap.Int("year", year), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"booked": []any{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"booked": slots})
}
