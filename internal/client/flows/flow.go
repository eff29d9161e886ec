// Package flows implements the credential-flow contract shared by every
// screen: a field schema with validation rules, one REST endpoint, the
// form-to-body field renaming, a success predicate, and the mapping of the
// response to an outcome (message, navigation, session data).
package flows

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"

	"github.com/medexpertise/portal/internal/client/api"
	"github.com/medexpertise/portal/internal/common"
)

// ErrSubmissionInFlight is returned when submit is invoked while a previous
// submission of the same flow instance has not finished. At most one
// submission per form instance is ever in flight.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// Predicate decides whether a 2xx response body actually indicates success.
// The backend is inconsistent across endpoints, so each flow carries the
// predicate its endpoint honors.
type Predicate func(*api.Envelope) bool

// StatusSuccess accepts bodies with status == "success" (the common shape).
func StatusSuccess(env *api.Envelope) bool { return env.Status == "success" }

// SuccessFlag accepts bodies with a true boolean "success" field (the
// patient password-reset family).
func SuccessFlag(env *api.Envelope) bool { return env.Success }

// TokenPresent accepts bodies carrying a token unless status says "error"
// (admin login returns {admin, token} without a status on success).
func TokenPresent(env *api.Envelope) bool { return env.Status != "error" && env.Token != "" }

// Outcome is the result of one submit attempt. Exactly one of the three
// cases holds: field errors (validation stopped the submit), a failure
// message, or OK with an optional navigation target and session data.
type Outcome struct {
	OK          bool
	Message     string
	Next        string
	FieldErrors map[string]string

	// Token and User are populated on success so sign-in screens can hand
	// them to the session store. Empty for non-login flows.
	Token string
	User  json.RawMessage
}

// Flow binds a form to one backend endpoint.
type Flow struct {
	Name           string
	Endpoint       string
	Form           Form
	Success        Predicate // nil means StatusSuccess
	Next           string    // route to navigate to on success, "" stays
	SuccessMessage string
	FailureMessage string

	busy atomic.Bool
}

// Submit validates values, posts them to the flow's endpoint, and maps the
// response to an Outcome. Validation failures never reach the network.
// Every error class is terminal for the attempt; nothing is retried.
func (f *Flow) Submit(ctx context.Context, client api.Client, values map[string]string) (Outcome, error) {
	if errs := f.Form.Validate(values); len(errs) > 0 {
		return Outcome{FieldErrors: errs}, nil
	}

	if !f.busy.CompareAndSwap(false, true) {
		return Outcome{}, ErrSubmissionInFlight
	}
	defer f.busy.Store(false)

	env, err := client.Post(ctx, f.Endpoint, f.Form.Body(values))
	if err != nil {
		return f.failure(env, err), nil
	}

	pred := f.Success
	if pred == nil {
		pred = StatusSuccess
	}
	if !pred(env) {
		return Outcome{Message: firstNonEmpty(env.Message, f.FailureMessage, "Request failed. Please try again.")}, nil
	}

	return Outcome{
		OK:      true,
		Message: firstNonEmpty(f.SuccessMessage, env.Message),
		Next:    f.Next,
		Token:   env.Token,
		User:    env.UserObject(),
	}, nil
}

// failure converts an API error class into the user-facing outcome. The
// envelope may be nil for transport failures.
func (f *Flow) failure(env *api.Envelope, err error) Outcome {
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		return Outcome{Message: "Incorrect email or password."}
	case errors.Is(err, common.ErrValidation):
		out := Outcome{Message: "Validation failed."}
		if env != nil {
			out.Message = firstNonEmpty(env.Message, out.Message)
			if msg := env.FieldError("password"); msg != "" {
				out.FieldErrors = map[string]string{"password": msg}
			}
		}
		return out
	case errors.Is(err, common.ErrServer):
		return Outcome{Message: "Server error. Your account may be unverified. Please try again later."}
	default:
		return Outcome{Message: "An unexpected error occurred. Please try again."}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
