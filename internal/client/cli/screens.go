package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/medexpertise/portal/internal/client/flows"
	"github.com/medexpertise/portal/internal/client/roles"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// resolveRoute applies the authentication guard: protected routes require a
// present user object, nothing more. Everything else passes through.
func (a *App) resolveRoute(path string) string {
	if roles.Protected[path] && !a.store.IsAuthenticated() {
		return roles.UnauthenticatedLanding
	}
	return path
}

// Navigate moves to path (subject to the guard) and renders the screen
// there. Screens may hand back a follow-up route, e.g. a sign-in screen
// navigating to the dashboard on success.
func (a *App) Navigate(ctx context.Context, path string) {
	target := a.resolveRoute(path)
	if target != path {
		printlnFn("Please sign in to continue.")
	}
	a.route = target

	if next := a.render(ctx, target); next != "" && next != target {
		a.Navigate(ctx, next)
	}
}

// Logout clears the persisted session and returns to the landing screen.
func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear session", "error", err)
		return err
	}
	a.route = roles.UnauthenticatedLanding
	printlnFn("Signed out.")
	return nil
}

// render shows the screen at path and returns the route to continue to, or
// "" to stay.
func (a *App) render(ctx context.Context, path string) string {
	switch path {
	case roles.RouteMainLogin:
		return a.mainLoginScreen()
	case roles.RouteAdminLanding:
		return a.adminLandingScreen()

	case roles.RouteAdminSignIn:
		return a.signInScreen(ctx, roles.Admin)
	case roles.RouteDoctorSignIn:
		return a.signInScreen(ctx, roles.Doctor)
	case roles.RoutePatientSignIn, roles.RoutePatientLogin:
		return a.signInScreen(ctx, roles.Patient)
	case roles.RoutePharmacySignIn:
		return a.signInScreen(ctx, roles.Pharmacy)
	case roles.RouteLabSignIn:
		return a.signInScreen(ctx, roles.Lab)

	case roles.RouteDoctorSignUp:
		return a.flowScreen(ctx, flows.Register(roles.Doctor))
	case roles.RoutePatientSignUp:
		return a.flowScreen(ctx, flows.Register(roles.Patient))
	case roles.RoutePharmacySignUp:
		return a.flowScreen(ctx, flows.Register(roles.Pharmacy))
	case roles.RouteLabSignUp:
		return a.flowScreen(ctx, flows.Register(roles.Lab))

	case roles.RouteAdminForgot:
		return a.flowScreen(ctx, flows.Forgot(roles.Admin))
	case roles.RouteDoctorForgot:
		return a.flowScreen(ctx, flows.Forgot(roles.Doctor))
	case roles.RoutePatientForgot:
		return a.flowScreen(ctx, flows.Forgot(roles.Patient))
	case roles.RoutePharmacyForgot:
		return a.flowScreen(ctx, flows.Forgot(roles.Pharmacy))
	case roles.RouteLabForgot:
		return a.flowScreen(ctx, flows.Forgot(roles.Lab))

	case roles.RouteDoctorRegOTP:
		return a.otpScreen(ctx, roles.Doctor, flows.Verify(roles.Doctor))
	case roles.RoutePatientRegOTP:
		return a.otpScreen(ctx, roles.Patient, flows.Verify(roles.Patient))
	case roles.RoutePharmacyRegOTP:
		return a.otpScreen(ctx, roles.Pharmacy, flows.Verify(roles.Pharmacy))
	case roles.RouteLabRegOTP:
		return a.otpScreen(ctx, roles.Lab, flows.Verify(roles.Lab))

	case roles.RouteAdminOTP:
		return a.otpScreen(ctx, roles.Admin, forgotVerify(roles.Admin, roles.RouteAdminReset))
	case roles.RoutePatientForgotOTP:
		return a.otpScreen(ctx, roles.Patient, forgotVerify(roles.Patient, roles.RoutePatientReset))
	case roles.RoutePharmacyForgotOTP:
		return a.otpScreen(ctx, roles.Pharmacy, forgotVerify(roles.Pharmacy, roles.RoutePharmacyReset))
	case roles.RouteLabForgotOTP:
		return a.otpScreen(ctx, roles.Lab, forgotVerify(roles.Lab, roles.RouteLabReset))

	case roles.RouteAdminReset:
		return a.flowScreen(ctx, flows.Reset(roles.Admin))
	case roles.RouteDoctorReset:
		return a.flowScreen(ctx, flows.Reset(roles.Doctor))
	case roles.RoutePatientReset:
		return a.flowScreen(ctx, flows.Reset(roles.Patient))
	case roles.RoutePharmacyReset:
		return a.flowScreen(ctx, flows.Reset(roles.Pharmacy))
	case roles.RouteLabReset:
		return a.flowScreen(ctx, flows.Reset(roles.Lab))

	case roles.RouteHome, roles.RoutePatientHome, roles.RouteProfile,
		roles.RouteSettings, roles.RouteDoctors, roles.RoutePatients,
		roles.RoutePharmacies, roles.RouteLabs:
		a.dashboardScreen(path)
		return ""

	default:
		printlnFn("Unknown route:", path)
		return ""
	}
}

// forgotVerify adapts the role's OTP-verification flow to the forgot-password
// path, where success continues to the reset screen instead of sign-in.
func forgotVerify(role roles.Role, resetRoute string) *flows.Flow {
	f := flows.Verify(role)
	f.Next = resetRoute
	return f
}

// promptForm collects a value for every field of the form.
func (a *App) promptForm(form flows.Form) (map[string]string, error) {
	values := make(map[string]string, len(form.Fields))
	for _, field := range form.Fields {
		var (
			v   string
			err error
		)
		if field.Secret {
			v, err = getSecret(field.Label, os.Stdout)
		} else {
			v, err = getSimpleText(a.reader, field.Label, os.Stdout)
		}
		if err != nil {
			return nil, err
		}
		values[field.Name] = v
	}
	return values, nil
}

func (a *App) printOutcome(out flows.Outcome) {
	for field, msg := range out.FieldErrors {
		printlnFn(field + ": " + msg)
	}
	if out.Message != "" {
		printlnFn(out.Message)
	}
}

// flowScreen runs one prompt-validate-submit round of a credential flow and
// returns the follow-up route on success.
func (a *App) flowScreen(ctx context.Context, f *flows.Flow) string {
	values, err := a.promptForm(f.Form)
	if err != nil {
		return ""
	}

	out, err := f.Submit(ctx, a.api, values)
	if err != nil {
		printlnFn(err.Error())
		return ""
	}

	a.printOutcome(out)
	if out.OK {
		return out.Next
	}
	return ""
}

// signInScreen is a flowScreen that additionally persists the session. When
// the backend returns a token but no user object, a minimal record is stored
// so the guard still recognizes the session.
func (a *App) signInScreen(ctx context.Context, role roles.Role) string {
	f := flows.SignIn(role)

	values, err := a.promptForm(f.Form)
	if err != nil {
		return ""
	}

	out, err := f.Submit(ctx, a.api, values)
	if err != nil {
		printlnFn(err.Error())
		return ""
	}

	a.printOutcome(out)
	if !out.OK {
		return ""
	}

	user := out.User
	if user == nil {
		user, _ = json.Marshal(map[string]string{"email": values["email"], "role": string(role)})
	}
	if err := a.store.SignIn(ctx, user, out.Token); err != nil {
		a.log.Error(ctx, "failed to persist session", "error", err)
		printlnFn("Could not save the session. Please try again.")
		return ""
	}

	return out.Next
}

// otpScreen prompts for the email and the 6-digit code. Typing "resend" at
// the code prompt requests a new OTP, subject to the role's cooldown.
func (a *App) otpScreen(ctx context.Context, role roles.Role, verify *flows.Flow) string {
	email, err := getSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return ""
	}

	cd := a.cooldown(role)
	for {
		otp, err := getSimpleText(a.reader, `Enter OTP ("resend" to request a new code, empty to cancel)`, os.Stdout)
		if err != nil || otp == "" {
			return ""
		}
		if otp == "resend" {
			a.resendOTP(ctx, role, email, cd)
			continue
		}

		out, err := verify.Submit(ctx, a.api, map[string]string{"email": email, "otp": otp})
		if err != nil {
			printlnFn(err.Error())
			return ""
		}

		a.printOutcome(out)
		if out.OK {
			return out.Next
		}
		return ""
	}
}

func (a *App) resendOTP(ctx context.Context, role roles.Role, email string, cd *flows.Cooldown) {
	if !cd.Ready() {
		printlnFn(fmt.Sprintf("Resend available in %d seconds.", int(cd.Remaining()/time.Second)))
		return
	}

	out, err := flows.ResendOTP(role).Submit(ctx, a.api, map[string]string{"email": email})
	if err != nil {
		printlnFn(err.Error())
		return
	}

	a.printOutcome(out)
	if out.OK {
		cd.Start()
	}
}
