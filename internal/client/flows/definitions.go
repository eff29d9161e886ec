package flows

import "github.com/medexpertise/portal/internal/client/roles"

// One constructor per credential action, parameterized by role. Field names,
// body keys, validation rules, success predicates and navigation targets
// match the web portal's screens, quirks included.

func emailField() Field {
	return Field{
		Name:  "email",
		Label: "Email",
		Rules: []Rule{Required("Email is required"), Email()},
	}
}

func passwordField() Field {
	return Field{
		Name:   "password",
		Label:  "Password",
		Secret: true,
		Rules:  []Rule{Required("Password is required"), Password()},
	}
}

func confirmPasswordField(bodyKey string) Field {
	return Field{
		Name:    "confirmPassword",
		BodyKey: bodyKey,
		Label:   "Confirm Password",
		Secret:  true,
		Rules: []Rule{
			Required("Confirm password is required"),
			Match("password", "Passwords must match"),
		},
	}
}

func otpField() Field {
	return Field{
		Name:  "otp",
		Label: "Enter OTP",
		Rules: []Rule{Required("OTP is required"), ExactDigits(6, "OTP must be 6 digits")},
	}
}

// SignIn builds the sign-in flow for a role. On success the caller receives
// the token and user object for the session store and navigates to the
// role's dashboard.
func SignIn(role roles.Role) *Flow {
	endpoint, _ := role.Endpoint(roles.ActionLogin)

	// Admin login answers {admin, token} with no status field on success,
	// so token presence is the authoritative indicator there.
	var pred Predicate = StatusSuccess
	if role == roles.Admin {
		pred = TokenPresent
	}

	return &Flow{
		Name:           string(role) + " sign-in",
		Endpoint:       endpoint,
		Form:           Form{Fields: []Field{emailField(), passwordField()}},
		Success:        pred,
		Next:           roles.HomeRoute(role),
		SuccessMessage: "Login successful.",
		FailureMessage: "Invalid email or password.",
	}
}

// registration captures what varies between the four sign-up screens.
type registration struct {
	nameLabel string
	nameRules []Rule
	idName    string
	idBodyKey string
	idLabel   string
	nextRoute string
}

var registrations = map[roles.Role]registration{
	roles.Doctor: {
		nameLabel: "Name",
		nameRules: []Rule{Required("Name is required")},
		idName:    "SSN",
		idBodyKey: "SSN",
		idLabel:   "SSN",
		nextRoute: roles.RouteDoctorRegOTP,
	},
	roles.Patient: {
		nameLabel: "Patient Name",
		nameRules: []Rule{Required("Patient name is required")},
		idName:    "SSN",
		idBodyKey: "SSN",
		idLabel:   "SSN",
		nextRoute: roles.RoutePatientRegOTP,
	},
	roles.Pharmacy: {
		nameLabel: "Pharmacy Name",
		nameRules: []Rule{Required("Pharmacy name is required")},
		idName:    "pharmacyId",
		idBodyKey: "pharmacy_id",
		idLabel:   "Pharmacy ID",
		nextRoute: roles.RoutePharmacyRegOTP,
	},
	roles.Lab: {
		nameLabel: "Laboratory Name",
		nameRules: []Rule{
			Required("Laboratory name is required"),
			MinLen(4, "Laboratory name"),
			MaxLen(30, "Laboratory name"),
		},
		idName:    "laboratoryId",
		idBodyKey: "lab_id",
		idLabel:   "Laboratory ID",
		nextRoute: roles.RouteLabRegOTP,
	},
}

// Register builds the sign-up flow for a role, or nil for admin (the
// backend has no admin self-registration).
func Register(role roles.Role) *Flow {
	endpoint, ok := role.Endpoint(roles.ActionRegister)
	if !ok {
		return nil
	}
	reg := registrations[role]

	return &Flow{
		Name:     string(role) + " sign-up",
		Endpoint: endpoint,
		Form: Form{Fields: []Field{
			{Name: "name", Label: reg.nameLabel, Rules: reg.nameRules},
			emailField(),
			{
				Name:    reg.idName,
				BodyKey: reg.idBodyKey,
				Label:   reg.idLabel,
				Rules: []Rule{
					Required(reg.idLabel + " is required"),
					Digits("Please enter a valid " + reg.idLabel),
				},
			},
			passwordField(),
			confirmPasswordField("password_confirmation"),
		}},
		Next:           reg.nextRoute,
		SuccessMessage: "Registration successful! Please check your email for OTP verification.",
		FailureMessage: "Registration failed. Please try again.",
	}
}

var forgotNext = map[roles.Role]string{
	roles.Admin:    roles.RouteAdminOTP,
	roles.Doctor:   roles.RouteDoctorReset,
	roles.Patient:  roles.RoutePatientForgotOTP,
	roles.Pharmacy: roles.RoutePharmacyForgotOTP,
	roles.Lab:      roles.RouteLabForgotOTP,
}

// Forgot builds the password-forgot flow: email in, OTP mailed out.
func Forgot(role roles.Role) *Flow {
	endpoint, _ := role.Endpoint(roles.ActionForgot)

	return &Flow{
		Name:           string(role) + " forgot-password",
		Endpoint:       endpoint,
		Form:           Form{Fields: []Field{emailField()}},
		Next:           forgotNext[role],
		SuccessMessage: "OTP sent successfully! Please check your email.",
		FailureMessage: "Failed to send OTP. Please try again.",
	}
}

var verifyNext = map[roles.Role]string{
	// The doctor screen drops straight into the dashboard after email
	// verification; the others return to sign-in.
	roles.Doctor:   roles.RouteHome,
	roles.Patient:  roles.RoutePatientSignIn,
	roles.Pharmacy: roles.RoutePharmacySignIn,
	roles.Lab:      roles.RouteLabSignIn,
}

// Verify builds the registration OTP-verification flow.
func Verify(role roles.Role) *Flow {
	endpoint, _ := role.Endpoint(roles.ActionVerify)

	return &Flow{
		Name:           string(role) + " verify",
		Endpoint:       endpoint,
		Form:           Form{Fields: []Field{emailField(), otpField()}},
		Next:           verifyNext[role],
		SuccessMessage: "OTP verified successfully.",
		FailureMessage: "OTP verification failed.",
	}
}

var signInRoutes = map[roles.Role]string{
	roles.Admin:    roles.RouteAdminSignIn,
	roles.Doctor:   roles.RouteDoctorSignIn,
	roles.Patient:  roles.RoutePatientSignIn,
	roles.Pharmacy: roles.RoutePharmacySignIn,
	roles.Lab:      roles.RouteLabSignIn,
}

// Reset builds the password-reset flow. The confirmation field is validated
// locally and never transmitted; the wire body is {email, otp, password},
// as the backend expects.
func Reset(role roles.Role) *Flow {
	endpoint, _ := role.Endpoint(roles.ActionReset)

	// The patient reset endpoint answers {"success": true} instead of the
	// usual {"status": "success"}.
	var pred Predicate = StatusSuccess
	if role == roles.Patient {
		pred = SuccessFlag
	}

	return &Flow{
		Name:     string(role) + " reset-password",
		Endpoint: endpoint,
		Form: Form{Fields: []Field{
			emailField(),
			otpField(),
			passwordField(),
			confirmPasswordField("-"),
		}},
		Success:        pred,
		Next:           signInRoutes[role],
		SuccessMessage: "Password reset successfully. Please sign in.",
		FailureMessage: "Password reset failed. Please try again.",
	}
}

// ResendOTP builds the resend flow used by OTP screens. Callers gate it
// behind a Cooldown.
func ResendOTP(role roles.Role) *Flow {
	endpoint, _ := role.Endpoint(roles.ActionGetOTP)

	return &Flow{
		Name:           string(role) + " resend-otp",
		Endpoint:       endpoint,
		Form:           Form{Fields: []Field{emailField()}},
		SuccessMessage: "A new OTP has been sent to your email.",
		FailureMessage: "Failed to resend OTP.",
	}
}
