package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tadreeb/models"
	"tadreeb/services/availability"
	"tadreeb/services/pricing"
)

// Step orderings per booking type. Consultations already have their type
// chosen before the wizard opens, so they start at personal info; private
// lessons pick an option first and confirm instead of a payment step.
var stepOrderings = map[models.BookingType][]models.WizardStep{
	models.BookingConsultation:  {models.StepPersonalInfo, models.StepSchedule, models.StepPayment},
	models.BookingPrivateLesson: {models.StepSelectItem, models.StepSchedule, models.StepConfirm},
}

// StepsFor returns the configured ordering for a booking type.
func StepsFor(bt models.BookingType) ([]models.WizardStep, error) {
	steps, ok := stepOrderings[bt]
	if !ok {
		return nil, fmt.Errorf("unknown booking type %q", bt)
	}
	return steps, nil
}

// ValidationError blocks a forward transition; it is surfaced inline at
// the step and fully recoverable by user correction.
type ValidationError struct {
	Step    models.WizardStep
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func invalid(step models.WizardStep, message string) error {
	return &ValidationError{Step: step, Message: message}
}

// validateStep runs the step-local validator against the draft. Validators
// run on every forward attempt, including after going back and returning;
// validity is re-checked, never cached.
func (s *Service) validateStep(ctx context.Context, step models.WizardStep, draft *models.BookingDraft) error {
	switch step {
	case models.StepSelectItem:
		if draft.Item == nil || draft.Item.ID == "" {
			return invalid(step, "an item must be selected")
		}
		return nil

	case models.StepPersonalInfo:
		info := draft.PersonalInfo
		if strings.TrimSpace(info.Name) == "" ||
			strings.TrimSpace(info.Email) == "" ||
			strings.TrimSpace(info.Phone) == "" {
			return invalid(step, "name, email and phone are required")
		}
		return nil

	case models.StepSchedule:
		if draft.Date == "" || draft.Time == "" {
			return invalid(step, "both date and time must be set")
		}
		date, err := time.ParseInLocation("2006-01-02", draft.Date, time.Local)
		if err != nil {
			return invalid(step, "invalid date")
		}
		if !availability.IsDateSelectable(date, s.Availability.Windows(ctx)) {
			return invalid(step, "the selected date is not available")
		}
		return nil

	case models.StepPayment, models.StepConfirm:
		if draft.Item == nil || draft.Item.ID == "" {
			return invalid(step, "an item must be selected")
		}
		offers := pricing.ResolveOffers(*draft.Item)
		if !offers.HasAED && !offers.HasUSD {
			return &ValidationError{Step: step, Message: "no pricing available", Cause: pricing.ErrNoPricing}
		}
		if draft.Currency == "" {
			// Exactly one offered currency is auto-selected without a
			// prompt; two offered currencies demand an explicit choice.
			def := pricing.PickDefaultCurrency(offers)
			if def == "" {
				return invalid(step, "a currency must be chosen")
			}
			draft.Currency = def
			return nil
		}
		if (draft.Currency == pricing.CurrencyAED && !offers.HasAED) ||
			(draft.Currency == pricing.CurrencyUSD && !offers.HasUSD) {
			return invalid(step, "the chosen currency is not offered for this item")
		}
		return nil
	}

	return fmt.Errorf("no validator for step %q", step)
}

// applyInput merges submitted data into the draft, touching only the
// fields the current step owns so a stray payload cannot corrupt earlier
// steps.
func applyInput(step models.WizardStep, draft *models.BookingDraft, input StepInput) {
	switch step {
	case models.StepSelectItem:
		if input.Item != nil {
			draft.Item = input.Item
		}
	case models.StepPersonalInfo:
		if input.PersonalInfo != nil {
			draft.PersonalInfo = *input.PersonalInfo
		}
	case models.StepSchedule:
		if input.Date != "" {
			draft.Date = input.Date
		}
		if input.Time != "" {
			draft.Time = input.Time
		}
	case models.StepPayment, models.StepConfirm:
		if input.Currency != "" {
			draft.Currency = strings.ToUpper(input.Currency)
		}
	}
}
