package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"tadreeb/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeClient creates a Stripe Checkout session and reports its URL in the
// same top-level redirect_url shape the site collaborator uses, so the
// hand-off interpreter stays provider-agnostic.
type StripeClient struct{}

func NewStripeClient(apiKey string) *StripeClient {
	stripe.Key = apiKey
	return &StripeClient{}
}

func (c *StripeClient) CreateSession(ctx context.Context, req models.CheckoutRequest) (RawResponse, error) {
	if req.Amount <= 0 {
		return RawResponse{}, fmt.Errorf("stripe checkout requires a positive amount, got %.2f", req.Amount)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.ReturnURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(strings.ToLower(req.Currency)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ItemTitle),
					},
					UnitAmount: stripe.Int64(int64(math.Round(req.Amount * 100))),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}

	s, err := session.New(params)
	if err != nil {
		return RawResponse{}, fmt.Errorf("stripe checkout session creation failed: %w", err)
	}

	body, err := json.Marshal(map[string]string{"redirect_url": s.URL})
	if err != nil {
		return RawResponse{}, fmt.Errorf("failed to encode stripe session response: %w", err)
	}
	return RawResponse{StatusCode: 200, Body: body}, nil
}
