package checkout

import (
	"context"
	"errors"
	"net/http"
	"sync"

	checkoutClient "tadreeb/clients/checkout"
	"tadreeb/models"

	"go.uber.org/zap"
)

// ErrCheckoutInFlight is returned when a second hand-off is attempted for
// a session whose first hand-off has not resolved yet. Callers treat it as
// a no-op; it exists to collapse double-clicks into one collaborator call.
var ErrCheckoutInFlight = errors.New("checkout already in flight for this session")

// Handoff requests a checkout session from the payment collaborator and
// deterministically interprets the answer.
type Handoff struct {
	Client    checkoutClient.Client
	SignUpURL string
	Logger    *zap.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewHandoff(client checkoutClient.Client, signUpURL string, logger *zap.Logger) *Handoff {
	return &Handoff{
		Client:    client,
		SignUpURL: signUpURL,
		Logger:    logger,
		inFlight:  make(map[string]bool),
	}
}

// Initiate performs the terminal hand-off for a finalized draft. The
// returned result is always one of redirect / success / failure /
// auth-required; collaborator failures never escape as raw errors. The
// only error return is ErrCheckoutInFlight.
func (h *Handoff) Initiate(ctx context.Context, sessionID string, req models.CheckoutRequest) (models.CheckoutResult, error) {
	if !h.acquire(sessionID) {
		return models.CheckoutResult{}, ErrCheckoutInFlight
	}
	defer h.release(sessionID)

	resp, err := h.Client.CreateSession(ctx, req)
	if err != nil {
		h.Logger.Error("checkout session request failed",
			zap.String("sessionID", sessionID), zap.Error(err))
		return failureResult(), nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Not an error: the caller must authenticate first, keeping their
		// booking intent. The draft stays in the session store.
		h.Logger.Info("checkout rejected with 401, redirecting to sign-up",
			zap.String("sessionID", sessionID))
		return models.CheckoutResult{
			Outcome:     models.CheckoutAuthRequired,
			RedirectURL: h.SignUpURL,
		}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		h.Logger.Warn("checkout session returned non-2xx",
			zap.String("sessionID", sessionID), zap.Int("status", resp.StatusCode))
		return failureResult(), nil
	}

	result := Interpret(resp.Body)
	if result.Outcome == models.CheckoutFailure {
		h.Logger.Warn("checkout response matched no known shape",
			zap.String("sessionID", sessionID))
	}
	return result, nil
}

func (h *Handoff) acquire(sessionID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.inFlight[sessionID] {
		return false
	}
	h.inFlight[sessionID] = true
	return true
}

func (h *Handoff) release(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.inFlight, sessionID)
}
