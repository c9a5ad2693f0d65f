package checkout

import (
	"encoding/json"

	"tadreeb/models"
)

// The checkout collaborator has answered in several shapes over time:
// redirect URLs at the top level or under a "data" envelope, and success
// indicators as a boolean or the string "success", again at either level.
// Interpretation is an explicit ordered rule list tried in sequence so the
// compatibility shim stays auditable in one place. Redirect shapes win
// over inline-success shapes.
var extractionRules = []extractionRule{
	{name: "redirect.top", apply: redirectAt(nil)},
	{name: "redirect.data", apply: redirectAt([]string{"data"})},
	{name: "success.top", apply: successAt(nil)},
	{name: "success.data", apply: successAt([]string{"data"})},
}

type extractionRule struct {
	name  string
	apply func(body map[string]any) (models.CheckoutResult, bool)
}

var redirectKeys = []string{"redirect_url", "redirectUrl", "url"}

var successKeys = []string{"success", "status", "state"}

// Interpret maps a raw 2xx response body onto a CheckoutResult. Malformed
// JSON or a body matching no rule is the generic failure.
func Interpret(body []byte) models.CheckoutResult {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return failureResult()
	}
	for _, rule := range extractionRules {
		if result, ok := rule.apply(parsed); ok {
			return result
		}
	}
	return failureResult()
}

func failureResult() models.CheckoutResult {
	return models.CheckoutResult{
		Outcome: models.CheckoutFailure,
		Reason:  "could not process your booking",
	}
}

func redirectAt(path []string) func(map[string]any) (models.CheckoutResult, bool) {
	return func(body map[string]any) (models.CheckoutResult, bool) {
		scope, ok := descend(body, path)
		if !ok {
			return models.CheckoutResult{}, false
		}
		for _, key := range redirectKeys {
			if url, ok := scope[key].(string); ok && url != "" {
				return models.CheckoutResult{
					Outcome:     models.CheckoutRedirect,
					RedirectURL: url,
				}, true
			}
		}
		return models.CheckoutResult{}, false
	}
}

func successAt(path []string) func(map[string]any) (models.CheckoutResult, bool) {
	return func(body map[string]any) (models.CheckoutResult, bool) {
		scope, ok := descend(body, path)
		if !ok {
			return models.CheckoutResult{}, false
		}
		for _, key := range successKeys {
			switch v := scope[key].(type) {
			case bool:
				if v {
					return models.CheckoutResult{Outcome: models.CheckoutSuccess}, true
				}
			case string:
				if v == "success" {
					return models.CheckoutResult{Outcome: models.CheckoutSuccess}, true
				}
			}
		}
		return models.CheckoutResult{}, false
	}
}

func descend(body map[string]any, path []string) (map[string]any, bool) {
	scope := body
	for _, key := range path {
		next, ok := scope[key].(map[string]any)
		if !ok {
			return nil, false
		}
		scope = next
	}
	return scope, true
}
