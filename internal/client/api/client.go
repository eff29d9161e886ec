// Package api is the single call path to the backend REST API. Every request
// goes through it so the bearer token, request IDs and error classification
// are applied uniformly.
package api

import (
	"context"
	"encoding/json"
)

// Client defines the calls the flow layer needs.
type Client interface {
	// Post sends a flat JSON object to path and decodes the response
	// envelope. The envelope is returned alongside classification errors
	// (common.ErrUnauthorized and friends) so callers can still read the
	// server's message.
	Post(ctx context.Context, path string, body map[string]string) (*Envelope, error)

	// Ping checks backend reachability.
	Ping(ctx context.Context) error
}

// Envelope is the decoded response body plus the HTTP status code. The
// backend is inconsistent about its success indicator, so all known shapes
// are captured and the per-flow predicate picks the authoritative one.
type Envelope struct {
	StatusCode int

	Status  string `json:"status"`  // "success" / "error"
	Success bool   `json:"success"` // patient password-reset family
	Message string `json:"message"`
	Token   string `json:"token"`

	// Raw holds the full body for fields with no fixed name, such as the
	// role-specific user object and 422 sub-errors.
	Raw map[string]json.RawMessage `json:"-"`
}

// userObjectKeys lists where the backend may put the signed-in user record:
// either a generic "user" field or one named after the role.
var userObjectKeys = []string{"user", "admin", "doctor", "patient", "pharmacy", "lab"}

// UserObject returns the user record from the body, or nil if none.
func (e *Envelope) UserObject() json.RawMessage {
	for _, k := range userObjectKeys {
		if v, ok := e.Raw[k]; ok && len(v) > 0 && v[0] == '{' {
			return v
		}
	}
	return nil
}

// FieldError returns the server-side message for one field from a 422 body
// of the shape {"errors": {"password": ["..."]}}, or "" if absent.
func (e *Envelope) FieldError(field string) string {
	raw, ok := e.Raw["errors"]
	if !ok {
		return ""
	}
	var errs map[string][]string
	if err := json.Unmarshal(raw, &errs); err != nil {
		return ""
	}
	if msgs := errs[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// DecodeEnvelope builds an Envelope from a raw response body.
func DecodeEnvelope(statusCode int, body []byte) *Envelope {
	env := &Envelope{StatusCode: statusCode}
	// Both decodes are best-effort: an HTML error page or empty body still
	// yields a usable envelope with just the status code.
	_ = json.Unmarshal(body, env)
	_ = json.Unmarshal(body, &env.Raw)
	return env
}
