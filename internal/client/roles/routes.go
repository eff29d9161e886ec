package roles

// Screen route paths. They mirror the web frontend's route table one to one.
const (
	RouteMainLogin    = "/main-login"
	RouteAdminLanding = "/admin"

	RouteAdminSignIn = "/admin-signin"
	RouteAdminForgot = "/admin-forgot"
	RouteAdminOTP    = "/admin-otp"
	RouteAdminReset  = "/admin-reset"

	RoutePatientSignUp    = "/patient-signup"
	RoutePatientSignIn    = "/patient-signin"
	RoutePatientLogin     = "/patient-login"
	RoutePatientForgot    = "/patient-forgot"
	RoutePatientForgotOTP = "/patient-forgot-otp"
	RoutePatientRegOTP    = "/patient-reg-otp"
	RoutePatientReset     = "/patient-reset"

	RouteDoctorSignIn = "/doctor-signin"
	RouteDoctorSignUp = "/doctor-signup"
	RouteDoctorForgot = "/doctor-forgot"
	RouteDoctorRegOTP = "/doctor-reg-otp"
	RouteDoctorReset  = "/doctor-reset"

	RoutePharmacySignUp    = "/pharmacy-signup"
	RoutePharmacySignIn    = "/pharmacy-signin"
	RoutePharmacyForgot    = "/pharmacy-forgot"
	RoutePharmacyForgotOTP = "/pharmacy-forgot-otp"
	RoutePharmacyRegOTP    = "/pharmacy-reg-otp"
	RoutePharmacyReset     = "/pharmacy-reset"

	RouteLabSignUp    = "/lab-signup"
	RouteLabSignIn    = "/lab-signin"
	RouteLabForgot    = "/lab-forgot"
	RouteLabForgotOTP = "/lab-forgot-otp"
	RouteLabRegOTP    = "/lab-reg-otp"
	RouteLabReset     = "/lab-reset"

	RouteHome        = "/home"
	RouteProfile     = "/profile"
	RouteSettings    = "/settings"
	RouteDoctors     = "/doctors"
	RoutePatients    = "/patients"
	RoutePharmacies  = "/pharmacy"
	RouteLabs        = "/labs"
	RoutePatientHome = "/patient-home"
)

// Protected lists the dashboard routes gated by the authentication guard.
var Protected = map[string]bool{
	RouteHome:        true,
	RouteProfile:     true,
	RouteSettings:    true,
	RouteDoctors:     true,
	RoutePatients:    true,
	RoutePharmacies:  true,
	RouteLabs:        true,
	RoutePatientHome: true,
}

// UnauthenticatedLanding is where the guard redirects signed-out visitors.
const UnauthenticatedLanding = RouteMainLogin

// HomeRoute returns the dashboard route a role lands on after sign-in.
func HomeRoute(r Role) string {
	if r == Patient {
		return RoutePatientHome
	}
	return RouteHome
}

// SignInRoute implements the registration role selector: a pure lookup from
// the selected role string to that role's sign-in screen. Admin and patient
// use dedicated entry routes instead of the selector.
func SignInRoute(selected string) (string, bool) {
	switch selected {
	case "doctor":
		return RouteDoctorSignIn, true
	case "pharmacist":
		return RoutePharmacySignIn, true
	case "laboratory":
		return RouteLabSignIn, true
	default:
		return "", false
	}
}
