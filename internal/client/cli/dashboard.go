package cli

import (
	"encoding/json"
	"os"

	"github.com/medexpertise/portal/internal/client/roles"
)

// mainLoginScreen is the role selector shown to signed-out visitors. Admin
// and patient have dedicated entry points; the remaining roles share the
// selector lookup.
func (a *App) mainLoginScreen() string {
	choice, err := getSimpleText(a.reader,
		"Sign in as (admin, patient, doctor, pharmacist, laboratory; empty to cancel)", os.Stdout)
	if err != nil || choice == "" {
		return ""
	}

	switch choice {
	case "admin":
		return roles.RouteAdminLanding
	case "patient":
		return roles.RoutePatientSignIn
	}

	if route, ok := roles.SignInRoute(choice); ok {
		return route
	}
	printlnFn("Unknown role:", choice)
	return ""
}

func (a *App) adminLandingScreen() string {
	choice, err := getSimpleText(a.reader,
		"Admin portal: (1) sign in, (2) forgot password (empty to cancel)", os.Stdout)
	if err != nil {
		return ""
	}

	switch choice {
	case "1":
		return roles.RouteAdminSignIn
	case "2":
		return roles.RouteAdminForgot
	default:
		return ""
	}
}

var dashboardTitles = map[string]string{
	roles.RouteHome:        "Dashboard",
	roles.RoutePatientHome: "Patient Dashboard",
	roles.RouteProfile:     "Profile",
	roles.RouteSettings:    "Settings",
	roles.RouteDoctors:     "Doctors",
	roles.RoutePatients:    "Patients",
	roles.RoutePharmacies:  "Pharmacies",
	roles.RouteLabs:        "Laboratories",
}

// dashboardScreen renders a signed-in page. The profile page shows the
// stored user record; the rest are navigation shells.
func (a *App) dashboardScreen(path string) {
	printlnFn("=== " + dashboardTitles[path] + " ===")

	if path == roles.RouteProfile {
		var pretty map[string]json.RawMessage
		if err := json.Unmarshal(a.store.User(), &pretty); err == nil {
			for k, v := range pretty {
				printlnFn(k + ": " + string(v))
			}
		}
	}

	printlnFn("Pages: /home /profile /settings /doctors /patients /pharmacy /labs")
}
