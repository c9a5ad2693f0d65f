package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	checkoutClient "tadreeb/clients/checkout"
	"tadreeb/models"
	"tadreeb/services/availability"
	"tadreeb/services/checkout"
	"tadreeb/services/pricing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// memStore round-trips sessions through JSON like the Redis store does.
type memStore struct {
	m map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{m: make(map[string][]byte)}
}

func (s *memStore) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	data, ok := s.m[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	var session models.WizardSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *memStore) Save(ctx context.Context, session *models.WizardSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.m[session.SessionID] = data
	return nil
}

func (s *memStore) Delete(ctx context.Context, sessionID string) error {
	delete(s.m, sessionID)
	return nil
}

type stubScheduleClient struct {
	windows []models.AvailabilityWindow
	err     error
}

func (s *stubScheduleClient) FetchWindows(ctx context.Context) ([]models.AvailabilityWindow, error) {
	return s.windows, s.err
}

func (s *stubScheduleClient) FetchBookedSlots(ctx context.Context, month time.Month, year int) ([]models.BookedSlot, error) {
	return nil, nil
}

type stubCheckoutClient struct {
	calls    int
	response checkoutClient.RawResponse
	lastReq  models.CheckoutRequest
}

func (s *stubCheckoutClient) CreateSession(ctx context.Context, req models.CheckoutRequest) (checkoutClient.RawResponse, error) {
	s.calls++
	s.lastReq = req
	return s.response, nil
}

func newTestService(sched *stubScheduleClient, co *stubCheckoutClient) (*Service, *memStore) {
	store := newMemStore()
	svc := &Service{
		Store:        store,
		Availability: availability.NewModel(sched, zap.NewNop()),
		Handoff:      checkout.NewHandoff(co, "/signup", zap.NewNop()),
		ReturnURL:    "https://site.example/booking/return",
		CancelURL:    "https://site.example/booking/cancel",
		Logger:       zap.NewNop(),
	}
	return svc, store
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func aedOnlyOption() *models.BookableItem {
	return &models.BookableItem{
		ID:       "opt-7",
		Kind:     models.ItemLessonOption,
		Title:    "One-on-one session",
		PriceAED: 1000.0,
		PriceUSD: 0.0,
	}
}

func TestStart_UnknownBookingType(t *testing.T) {
	svc, _ := newTestService(&stubScheduleClient{}, &stubCheckoutClient{})

	_, err := svc.Start(context.Background(), models.BookingType("yoga"), nil)
	assert.Error(t, err)
}

func TestSubmitStep_ItemGate(t *testing.T) {
	svc, _ := newTestService(&stubScheduleClient{}, &stubCheckoutClient{})
	session, err := svc.Start(context.Background(), models.BookingPrivateLesson, nil)
	assert.NoError(t, err)

	// No item selected: transition rejected, state unchanged.
	session, err = svc.SubmitStep(context.Background(), session.SessionID, StepInput{})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, models.StepSelectItem, CurrentStep(session))

	// With an item the wizard moves to the schedule step.
	session, err = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Item: aedOnlyOption()})
	assert.NoError(t, err)
	assert.Equal(t, models.StepSchedule, CurrentStep(session))
}

func TestSubmitStep_ScheduleGate(t *testing.T) {
	svc, _ := newTestService(&stubScheduleClient{}, &stubCheckoutClient{})
	session, _ := svc.Start(context.Background(), models.BookingPrivateLesson, nil)
	session, _ = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Item: aedOnlyOption()})

	// Missing time: stay at schedule.
	session, err := svc.SubmitStep(context.Background(), session.SessionID, StepInput{Date: futureDate(3)})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, models.StepSchedule, CurrentStep(session))

	// Date and time together pass.
	session, err = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Time: "10:00"})
	assert.NoError(t, err)
	assert.Equal(t, models.StepConfirm, CurrentStep(session))
}

func TestSubmitStep_ScheduleRejectsUnavailableWeekday(t *testing.T) {
	sched := &stubScheduleClient{windows: []models.AvailabilityWindow{
		{Day: time.Monday, StartTime: "09:00", EndTime: "17:00"},
	}}
	svc, _ := newTestService(sched, &stubCheckoutClient{})
	session, _ := svc.Start(context.Background(), models.BookingPrivateLesson, nil)
	session, _ = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Item: aedOnlyOption()})

	// Find a future non-Monday.
	d := time.Now().AddDate(0, 0, 7)
	for d.Weekday() == time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	_, err := svc.SubmitStep(context.Background(), session.SessionID, StepInput{
		Date: d.Format("2006-01-02"), Time: "10:00",
	})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	// A future Monday passes.
	m := time.Now().AddDate(0, 0, 7)
	for m.Weekday() != time.Monday {
		m = m.AddDate(0, 0, 1)
	}
	session, err = svc.SubmitStep(context.Background(), session.SessionID, StepInput{
		Date: m.Format("2006-01-02"), Time: "10:00",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.StepConfirm, CurrentStep(session))
}

func TestSubmitStep_AvailabilityOutageFailsOpen(t *testing.T) {
	sched := &stubScheduleClient{err: errors.New("schedule service down")}
	svc, _ := newTestService(sched, &stubCheckoutClient{})
	session, _ := svc.Start(context.Background(), models.BookingPrivateLesson, nil)
	session, _ = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Item: aedOnlyOption()})

	// Any future date is accepted when the schedule cannot be fetched.
	session, err := svc.SubmitStep(context.Background(), session.SessionID, StepInput{
		Date: futureDate(2), Time: "14:30",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.StepConfirm, CurrentStep(session))
}

func TestBack_PreservesDraft(t *testing.T) {
	svc, _ := newTestService(&stubScheduleClient{}, &stubCheckoutClient{})
	session, _ := svc.Start(context.Background(), models.BookingPrivateLesson, nil)
	session, _ = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Item: aedOnlyOption()})
	session, _ = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Date: futureDate(3), Time: "10:00"})
	assert.Equal(t, models.StepConfirm, CurrentStep(session))

	session, err := svc.Back(context.Background(), session.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, models.StepSchedule, CurrentStep(session))
	assert.Equal(t, futureDate(3), session.Draft.Date)
	assert.Equal(t, "10:00", session.Draft.Time)
	assert.Equal(t, "opt-7", session.Draft.Item.ID)

	// Going forward again without changing anything re-validates and lands
	// on the same step with the same draft.
	session, err = svc.SubmitStep(context.Background(), session.SessionID, StepInput{})
	assert.NoError(t, err)
	assert.Equal(t, models.StepConfirm, CurrentStep(session))
	assert.Equal(t, futureDate(3), session.Draft.Date)
}

func TestPersonalInfoGate(t *testing.T) {
	svc, _ := newTestService(&stubScheduleClient{}, &stubCheckoutClient{})
	consultation := &models.BookableItem{ID: "c-1", Kind: models.ItemConsultation, Title: "Nutrition consult", PriceUSD: 50.0}
	session, _ := svc.Start(context.Background(), models.BookingConsultation, consultation)
	assert.Equal(t, models.StepPersonalInfo, CurrentStep(session))

	_, err := svc.SubmitStep(context.Background(), session.SessionID, StepInput{
		PersonalInfo: &models.PersonalInfo{Name: "Sara", Email: "", Phone: "0501234567"},
	})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	session, err = svc.SubmitStep(context.Background(), session.SessionID, StepInput{
		PersonalInfo: &models.PersonalInfo{Name: "Sara", Email: "sara@example.com", Phone: "0501234567"},
	})
	assert.NoError(t, err)
	assert.Equal(t, models.StepSchedule, CurrentStep(session))
}

func TestConfirm_SingleCurrencyAutoSelected(t *testing.T) {
	co := &stubCheckoutClient{response: checkoutClient.RawResponse{
		StatusCode: 200,
		Body:       []byte(`{"data": {"redirect_url": "https://pay.example/x"}}`),
	}}
	svc, store := newTestService(&stubScheduleClient{}, co)
	session, _ := svc.Start(context.Background(), models.BookingPrivateLesson, nil)
	session, _ = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Item: aedOnlyOption()})
	session, _ = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Date: futureDate(3), Time: "10:00"})

	result, session, err := svc.Confirm(context.Background(), session.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, models.CheckoutRedirect, result.Outcome)
	assert.Equal(t, "https://pay.example/x", result.RedirectURL)
	assert.True(t, session.Submitted)

	// AED was the only offer: auto-selected, lowercase on the wire.
	assert.Equal(t, 1, co.calls)
	assert.Equal(t, "aed", co.lastReq.Currency)
	assert.Equal(t, "opt-7", co.lastReq.ItemID)
	assert.Equal(t, 1000.0, co.lastReq.Amount)

	// Draft discarded after the successful hand-off.
	_, err = store.Get(context.Background(), session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConfirm_DualCurrencyRequiresExplicitChoice(t *testing.T) {
	co := &stubCheckoutClient{response: checkoutClient.RawResponse{
		StatusCode: 200,
		Body:       []byte(`{"status": "success"}`),
	}}
	svc, _ := newTestService(&stubScheduleClient{}, co)

	dual := &models.BookableItem{ID: "opt-9", Kind: models.ItemLessonOption, Title: "Dual", PriceAED: 1000.0, PriceUSD: 272.0}
	session, _ := svc.Start(context.Background(), models.BookingPrivateLesson, nil)
	session, _ = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Item: dual})
	session, _ = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Date: futureDate(3), Time: "10:00"})

	// No implicit default for dual-currency items.
	_, _, err := svc.Confirm(context.Background(), session.SessionID)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Zero(t, co.calls)

	// Record the explicit choice at the confirm step, then hand off.
	session, err = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Currency: "usd"})
	assert.NoError(t, err)
	result, session, err := svc.Confirm(context.Background(), session.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, models.CheckoutSuccess, result.Outcome)
	assert.True(t, session.Submitted)
	assert.Equal(t, "usd", co.lastReq.Currency)
}

func TestConfirm_NoPricingBlocks(t *testing.T) {
	co := &stubCheckoutClient{}
	svc, _ := newTestService(&stubScheduleClient{}, co)

	unpriced := &models.BookableItem{ID: "opt-0", Kind: models.ItemLessonOption, Title: "Unpriced"}
	session, _ := svc.Start(context.Background(), models.BookingPrivateLesson, nil)
	session, _ = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Item: unpriced})
	session, _ = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Date: futureDate(3), Time: "10:00"})

	_, _, err := svc.Confirm(context.Background(), session.SessionID)
	assert.ErrorIs(t, err, pricing.ErrNoPricing)
	assert.Zero(t, co.calls)
}

func TestConfirm_FailurePreservesDraft(t *testing.T) {
	co := &stubCheckoutClient{response: checkoutClient.RawResponse{
		StatusCode: 200,
		Body:       []byte(`{"message": "queued"}`),
	}}
	svc, store := newTestService(&stubScheduleClient{}, co)
	session, _ := svc.Start(context.Background(), models.BookingPrivateLesson, nil)
	session, _ = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Item: aedOnlyOption()})
	session, _ = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Date: futureDate(3), Time: "10:00"})

	result, session, err := svc.Confirm(context.Background(), session.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, models.CheckoutFailure, result.Outcome)
	assert.False(t, session.Submitted)

	// The user can retry without re-entering anything.
	kept, err := store.Get(context.Background(), session.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, "opt-7", kept.Draft.Item.ID)
	assert.Equal(t, futureDate(3), kept.Draft.Date)
}

func TestConfirm_UnauthorizedKeepsDraftAndRedirectsToSignUp(t *testing.T) {
	co := &stubCheckoutClient{response: checkoutClient.RawResponse{
		StatusCode: http.StatusUnauthorized,
	}}
	svc, store := newTestService(&stubScheduleClient{}, co)
	session, _ := svc.Start(context.Background(), models.BookingPrivateLesson, nil)
	session, _ = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Item: aedOnlyOption()})
	session, _ = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Date: futureDate(3), Time: "10:00"})

	result, session, err := svc.Confirm(context.Background(), session.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, models.CheckoutAuthRequired, result.Outcome)
	assert.Equal(t, "/signup", result.RedirectURL)
	assert.False(t, session.Submitted)

	// The draft survives the sign-up redirect.
	kept, err := store.Get(context.Background(), session.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, "opt-7", kept.Draft.Item.ID)
}

func TestConfirm_RejectedBeforeFinalStep(t *testing.T) {
	co := &stubCheckoutClient{}
	svc, _ := newTestService(&stubScheduleClient{}, co)
	session, _ := svc.Start(context.Background(), models.BookingPrivateLesson, nil)
	session, _ = svc.SubmitStep(context.Background(), session.SessionID, StepInput{Item: aedOnlyOption()})

	_, _, err := svc.Confirm(context.Background(), session.SessionID)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Zero(t, co.calls)
}

func TestCancel_DiscardsDraft(t *testing.T) {
	svc, store := newTestService(&stubScheduleClient{}, &stubCheckoutClient{})
	session, _ := svc.Start(context.Background(), models.BookingPrivateLesson, nil)

	assert.NoError(t, svc.Cancel(context.Background(), session.SessionID))
	_, err := store.Get(context.Background(), session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
