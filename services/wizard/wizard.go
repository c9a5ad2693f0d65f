package wizard

import (
	"context"
	"fmt"
	"strings"

	"tadreeb/models"
	"tadreeb/services/availability"
	"tadreeb/services/checkout"
	"tadreeb/services/pricing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service drives the ordered steps of a booking flow. Forward movement is
// gated on the current step's validator; backward movement is always
// allowed and never clears entered data. Within one session, transitions
// are strictly sequential.
type Service struct {
	Store        SessionStore
	Availability *availability.Model
	Handoff      *checkout.Handoff
	ReturnURL    string
	CancelURL    string
	Logger       *zap.Logger
}

// StepInput carries one step's submitted data.
type StepInput struct {
	Item         *models.BookableItem `json:"item,omitempty"`
	PersonalInfo *models.PersonalInfo `json:"personalInfo,omitempty"`
	Date         string               `json:"date,omitempty"`
	Time         string               `json:"time,omitempty"`
	Currency     string               `json:"currency,omitempty"`
}

// Start opens a new wizard session. For consultation flows the chosen
// consultation type arrives here, since their first step is personal info.
func (s *Service) Start(ctx context.Context, bt models.BookingType, item *models.BookableItem) (*models.WizardSession, error) {
	if _, err := StepsFor(bt); err != nil {
		return nil, err
	}

	session := &models.WizardSession{
		SessionID:   uuid.New().String(),
		BookingType: bt,
		StepIndex:   0,
		Draft:       models.BookingDraft{Item: item},
	}
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}

	s.Logger.Info("booking wizard started",
		zap.String("sessionID", session.SessionID),
		zap.String("bookingType", string(bt)))
	return session, nil
}

// Get returns the current session snapshot.
func (s *Service) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.Store.Get(ctx, sessionID)
}

// CurrentStep names the step the session is at.
func CurrentStep(session *models.WizardSession) models.WizardStep {
	if session.Submitted {
		return models.StepSubmitted
	}
	steps, err := StepsFor(session.BookingType)
	if err != nil || session.StepIndex >= len(steps) {
		return models.StepSubmitted
	}
	return steps[session.StepIndex]
}

// SubmitStep records the current step's data and, when the step validates,
// advances to the next one. At the final step it records and validates
// without advancing; Confirm performs the terminal transition.
func (s *Service) SubmitStep(ctx context.Context, sessionID string, input StepInput) (*models.WizardSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Submitted {
		return nil, fmt.Errorf("booking session %s is already submitted", sessionID)
	}

	steps, err := StepsFor(session.BookingType)
	if err != nil {
		return nil, err
	}
	step := steps[session.StepIndex]

	applyInput(step, &session.Draft, input)
	if err := s.validateStep(ctx, step, &session.Draft); err != nil {
		// The draft keeps whatever was entered; only the transition is
		// rejected.
		if saveErr := s.Store.Save(ctx, session); saveErr != nil {
			return nil, saveErr
		}
		return session, err
	}

	if session.StepIndex < len(steps)-1 {
		session.StepIndex++
	}
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Back moves one step backward without clearing any entered data. Going
// back from the first step is a no-op rather than an error.
func (s *Service) Back(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Submitted {
		return nil, fmt.Errorf("booking session %s is already submitted", sessionID)
	}
	if session.StepIndex > 0 {
		session.StepIndex--
	}
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Confirm runs the terminal action: validate the final step, assemble the
// submission payload and hand off to checkout. Success or redirect
// discards the draft and marks the session submitted; failure and
// auth-required leave the draft in place so the user can retry without
// re-entering anything.
func (s *Service) Confirm(ctx context.Context, sessionID string) (models.CheckoutResult, *models.WizardSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return models.CheckoutResult{}, nil, err
	}
	if session.Submitted {
		return models.CheckoutResult{}, nil, fmt.Errorf("booking session %s is already submitted", sessionID)
	}

	steps, err := StepsFor(session.BookingType)
	if err != nil {
		return models.CheckoutResult{}, nil, err
	}
	final := steps[len(steps)-1]
	if session.StepIndex != len(steps)-1 {
		return models.CheckoutResult{}, session, invalid(final, "earlier steps are not complete")
	}
	if err := s.validateStep(ctx, final, &session.Draft); err != nil {
		return models.CheckoutResult{}, session, err
	}
	// The validator may have auto-selected a single-offer currency.
	if err := s.Store.Save(ctx, session); err != nil {
		return models.CheckoutResult{}, nil, err
	}

	result, err := s.Handoff.Initiate(ctx, sessionID, s.buildRequest(session))
	if err != nil {
		// In-flight guard tripped: the first submission is still pending,
		// this one is a no-op.
		return models.CheckoutResult{}, session, err
	}

	switch result.Outcome {
	case models.CheckoutRedirect, models.CheckoutSuccess:
		session.Submitted = true
		if err := s.Store.Delete(ctx, sessionID); err != nil {
			s.Logger.Warn("failed to discard submitted booking session",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
	default:
		// Draft preserved for retry; for auth-required it also survives
		// the sign-up redirect until the session TTL runs out.
	}

	s.Logger.Info("booking hand-off finished",
		zap.String("sessionID", sessionID),
		zap.String("outcome", string(result.Outcome)))
	return result, session, nil
}

// Cancel discards the draft unconditionally. No partial-submission side
// effects exist because nothing is sent before Confirm.
func (s *Service) Cancel(ctx context.Context, sessionID string) error {
	return s.Store.Delete(ctx, sessionID)
}

func (s *Service) buildRequest(session *models.WizardSession) models.CheckoutRequest {
	draft := session.Draft
	req := models.CheckoutRequest{
		Currency:  strings.ToLower(draft.Currency),
		Name:      draft.PersonalInfo.Name,
		Email:     draft.PersonalInfo.Email,
		Phone:     draft.PersonalInfo.Phone,
		Date:      draft.Date,
		StartTime: draft.Time,
		ReturnURL: s.ReturnURL,
		CancelURL: s.CancelURL,
	}
	if draft.Item != nil {
		req.ItemID = draft.Item.ID
		req.ItemKind = string(draft.Item.Kind)
		req.ItemTitle = draft.Item.Title
		req.Amount = pricing.Amount(*draft.Item, draft.Currency)
	}
	return req
}
