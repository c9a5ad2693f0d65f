package models

// CheckoutRequest is the payload sent to the checkout-session collaborator.
type CheckoutRequest struct {
	ItemID    string  `json:"itemId"`
	ItemKind  string  `json:"itemKind"`
	ItemTitle string  `json:"itemTitle,omitempty"`
	Currency  string  `json:"currency"` // lowercase on the wire, e.g. "aed"
	Amount    float64 `json:"amount,omitempty"`
	Name      string  `json:"name,omitempty"`
	Email     string  `json:"email,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Date      string  `json:"date,omitempty"`
	StartTime string  `json:"startTime,omitempty"`
	ReturnURL string  `json:"returnUrl"`
	CancelURL string  `json:"cancelUrl"`
}

// CheckoutOutcome is the interpreted terminal state of a checkout call.
type CheckoutOutcome string

const (
	// CheckoutRedirect carries a URL the browser must be sent to.
	CheckoutRedirect CheckoutOutcome = "redirect"
	// CheckoutSuccess means the collaborator completed without a redirect
	// (free item, already enrolled).
	CheckoutSuccess CheckoutOutcome = "success"
	// CheckoutFailure is a generic could-not-process terminal state.
	CheckoutFailure CheckoutOutcome = "failure"
	// CheckoutAuthRequired means the caller is not authenticated and must
	// be sent to the sign-up entry point; the draft stays intact.
	CheckoutAuthRequired CheckoutOutcome = "authRequired"
)

// CheckoutResult is ephemeral: it is consumed immediately to navigate the
// browser away or surface an error, never persisted.
type CheckoutResult struct {
	Outcome     CheckoutOutcome `json:"outcome"`
	RedirectURL string          `json:"redirectUrl,omitempty"`
	Reason      string          `json:"reason,omitempty"`
}
