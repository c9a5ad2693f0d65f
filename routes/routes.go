package routes

import (
	"tadreeb/handlers"
	"tadreeb/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router needs.
type HandlerBundle struct {
	Booking      *handlers.BookingHandler
	Catalog      *handlers.CatalogHandler
	Availability *handlers.AvailabilityHandler
}

// RegisterRoutes registers all endpoints for the booking core.
func RegisterRoutes(r *gin.Engine, h *HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.OptionalAuth())

	booking := api.Group("/booking")
	{
		booking.POST("/session", h.Booking.StartSession)
		booking.GET("/session/:sessionID", h.Booking.GetSession)
		booking.PUT("/session/:sessionID/step", h.Booking.SubmitStep)
		booking.POST("/session/:sessionID/back", h.Booking.Back)
		booking.POST("/session/:sessionID/confirm", h.Booking.Confirm)
		booking.DELETE("/session/:sessionID", h.Booking.CancelSession)
	}

	catalog := api.Group("/catalog")
	{
		catalog.GET("/courses", h.Catalog.GetCourses)
		catalog.GET("/lessons", h.Catalog.GetLessons)
		catalog.GET("/lessons/:lessonID/options", h.Catalog.GetLessonOptions)
		catalog.GET("/consultations", h.Catalog.GetConsultationTypes)
	}

	avail := api.Group("/availability")
	{
		avail.GET("/days", h.Availability.GetSelectableDays)
		avail.GET("/booked", h.Availability.GetBookedSlots)
	}
}
