package handlers

import (
	"errors"
	"net/http"

	checkoutClient "tadreeb/clients/checkout"
	"tadreeb/middleware"
	"tadreeb/models"
	"tadreeb/services/checkout"
	"tadreeb/services/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the wizard session lifecycle.
type BookingHandler struct {
	Wizard *wizard.Service
	Logger *zap.Logger
}

func NewBookingHandler(w *wizard.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Wizard: w, Logger: logger}
}

func sessionView(session *models.WizardSession) gin.H {
	return gin.H{
		"sessionID":   session.SessionID,
		"bookingType": session.BookingType,
		"step":        wizard.CurrentStep(session),
		"draft":       session.Draft,
	}
}

// StartSession handles POST /api/booking/session.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var body struct {
		BookingType models.BookingType   `json:"bookingType" binding:"required"`
		Item        *models.BookableItem `json:"item,omitempty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Wizard.Start(c.Request.Context(), body.BookingType, body.Item)
	if err != nil {
		h.Logger.Error("StartSession: failed to start wizard", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sessionView(session))
}

// GetSession handles GET /api/booking/session/:sessionID.
func (h *BookingHandler) GetSession(c *gin.Context) {
	session, err := h.Wizard.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(session))
}

// SubmitStep handles PUT /api/booking/session/:sessionID/step.
func (h *BookingHandler) SubmitStep(c *gin.Context) {
	var input wizard.StepInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Wizard.SubmitStep(c.Request.Context(), c.Param("sessionID"), input)
	if err != nil {
		var verr *wizard.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   verr.Message,
				"step":    verr.Step,
				"session": sessionView(session),
			})
			return
		}
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionView(session))
}

// Back handles POST /api/booking/session/:sessionID/back.
func (h *BookingHandler) Back(c *gin.Context) {
	session, err := h.Wizard.Back(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(session))
}

// Confirm handles POST /api/booking/session/:sessionID/confirm.
func (h *BookingHandler) Confirm(c *gin.Context) {
	ctx := checkoutClient.WithToken(c.Request.Context(), middleware.BearerToken(c))

	result, session, err := h.Wizard.Confirm(ctx, c.Param("sessionID"))
	if err != nil {
		if errors.Is(err, checkout.ErrCheckoutInFlight) {
			// Double-click: the first submission is still pending.
			c.JSON(http.StatusConflict, gin.H{"error": "a submission is already in progress"})
			return
		}
		var verr *wizard.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": verr.Message,
				"step":  verr.Step,
			})
			return
		}
		respondSessionError(c, err)
		return
	}

	status := http.StatusOK
	if result.Outcome == models.CheckoutAuthRequired {
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{
		"result":  result,
		"session": sessionView(session),
	})
}

// CancelSession handles DELETE /api/booking/session/:sessionID.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	if err := h.Wizard.Cancel(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.Logger.Error("CancelSession: failed to cancel", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

func respondSessionError(c *gin.Context, err error) {
	if errors.Is(err, wizard.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
