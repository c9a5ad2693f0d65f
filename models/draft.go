package models

// BookingType selects the wizard's step ordering.
type BookingType string

const (
	BookingConsultation  BookingType = "consultation"
	BookingPrivateLesson BookingType = "privateLesson"
)

// WizardStep is one step of the booking wizard.
type WizardStep string

const (
	StepSelectItem   WizardStep = "selectItem"
	StepPersonalInfo WizardStep = "personalInfo"
	StepSchedule     WizardStep = "schedule"
	StepPayment      WizardStep = "payment"
	StepConfirm      WizardStep = "confirm"
	StepSubmitted    WizardStep = "submitted"
)

// PersonalInfo is the contact block collected by the wizard. Format
// validation of email/phone is a UI concern; the core only requires
// non-emptiness.
type PersonalInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BookingDraft is the mutable aggregate a wizard session builds across
// steps. It is owned by exactly one session, discarded on cancel or on a
// successful checkout hand-off, and never shared between bookings.
type BookingDraft struct {
	Item         *BookableItem `json:"item,omitempty"`
	Date         string        `json:"date,omitempty"` // "2006-01-02"
	Time         string        `json:"time,omitempty"` // "HH:MM"
	PersonalInfo PersonalInfo  `json:"personalInfo"`
	Currency     string        `json:"currency,omitempty"` // "AED" or "USD"
}

// WizardSession holds a draft plus the wizard's position. Sessions are
// JSON-marshalled into the session store keyed by SessionID.
type WizardSession struct {
	SessionID   string       `json:"sessionId"`
	BookingType BookingType  `json:"bookingType"`
	StepIndex   int          `json:"stepIndex"`
	Draft       BookingDraft `json:"draft"`
	Submitted   bool         `json:"submitted"`
}
