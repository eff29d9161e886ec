// Package roles describes the five platform roles, their backend endpoint
// families, and the screen route table.
package roles

// Role is one of the five account types the platform serves.
type Role string

const (
	Admin    Role = "admin"
	Doctor   Role = "doctor"
	Patient  Role = "patient"
	Pharmacy Role = "pharmacy"
	Lab      Role = "lab"
)

// All lists every role.
var All = []Role{Admin, Doctor, Patient, Pharmacy, Lab}

// Action names one credential operation against the backend.
type Action string

const (
	ActionLogin    Action = "login"
	ActionRegister Action = "register"
	ActionForgot   Action = "forgot"
	ActionReset    Action = "reset"
	ActionVerify   Action = "verify"
	ActionGetOTP   Action = "get-otp"
)

// Endpoint returns the REST path for the role/action pair. The second return
// is false for pairs the backend does not serve (admin has no self-service
// registration).
//
// Patient email verification lives at /verify-otp instead of /verify; the
// quirk comes from the backend and must be preserved.
func (r Role) Endpoint(a Action) (string, bool) {
	if r == Admin && a == ActionRegister {
		return "", false
	}

	base := "/api/" + string(r)
	switch a {
	case ActionLogin:
		return base + "/login", true
	case ActionRegister:
		return base + "/register", true
	case ActionForgot:
		return base + "/password/forgot", true
	case ActionReset:
		return base + "/password/reset", true
	case ActionVerify:
		if r == Patient {
			return base + "/verify-otp", true
		}
		return base + "/verify", true
	case ActionGetOTP:
		return base + "/get-otp", true
	default:
		return "", false
	}
}
