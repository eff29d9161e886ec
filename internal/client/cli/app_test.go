package cli

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medexpertise/portal/internal/client/api"
	"github.com/medexpertise/portal/internal/client/config"
	"github.com/medexpertise/portal/internal/client/flows"
	"github.com/medexpertise/portal/internal/client/roles"
	"github.com/medexpertise/portal/internal/client/session"
	"github.com/medexpertise/portal/internal/logging"

	_ "modernc.org/sqlite"
)

type fakeAPI struct {
	lastPath string
	lastBody map[string]string
	calls    int

	env     *api.Envelope
	err     error
	pingErr error
}

func (f *fakeAPI) Post(ctx context.Context, path string, body map[string]string) (*api.Envelope, error) {
	f.calls++
	f.lastPath = path
	f.lastBody = body
	return f.env, f.err
}

func (f *fakeAPI) Ping(ctx context.Context) error { return f.pingErr }

func newTestApp(t *testing.T, client api.Client) *App {
	t.Helper()

	db, err := sql.Open("sqlite", "file:clitest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE localdata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	store := session.NewStore(db)
	require.NoError(t, store.Hydrate(context.Background()))

	return &App{
		config:    cfg,
		log:       logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		db:        db,
		store:     store,
		api:       client,
		reader:    bufio.NewReader(strings.NewReader("")),
		route:     roles.UnauthenticatedLanding,
		Mode:      ModeUnknown,
		cooldowns: make(map[roles.Role]*flows.Cooldown),
	}
}

// scriptInputs replaces both input seams with a queue of canned answers.
func scriptInputs(t *testing.T, answers ...string) {
	t.Helper()
	origText, origSecret := getSimpleText, getSecret
	t.Cleanup(func() { getSimpleText, getSecret = origText, origSecret })

	pop := func() string {
		require.NotEmpty(t, answers, "screen asked for more input than scripted")
		v := answers[0]
		answers = answers[1:]
		return v
	}
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return pop(), nil }
	getSecret = func(string, io.Writer) (string, error) { return pop(), nil }
}

func TestGuardRedirectsSignedOutVisitors(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})

	for _, path := range []string{roles.RouteHome, roles.RouteProfile, roles.RoutePatientHome, roles.RouteLabs} {
		assert.Equal(t, roles.RouteMainLogin, app.resolveRoute(path), path)
	}

	// Credential screens stay reachable without a session.
	assert.Equal(t, roles.RouteDoctorSignIn, app.resolveRoute(roles.RouteDoctorSignIn))
	assert.Equal(t, roles.RouteMainLogin, app.resolveRoute(roles.RouteMainLogin))
}

func TestGuardAdmitsBySessionPresenceOnly(t *testing.T) {
	app := newTestApp(t, &fakeAPI{})

	// A user object with no token still passes; the guard never inspects
	// token validity.
	require.NoError(t, app.store.SignIn(context.Background(), json.RawMessage(`{"id":1}`), ""))
	assert.Equal(t, roles.RouteHome, app.resolveRoute(roles.RouteHome))
}

func TestSignInScreenPersistsSession(t *testing.T) {
	silenceOutput(t)
	scriptInputs(t, "d@e.com", "Abcdef1!")

	client := &fakeAPI{env: api.DecodeEnvelope(200, []byte(`{"status":"success","token":"T","user":{"id":9}}`))}
	app := newTestApp(t, client)

	next := app.signInScreen(context.Background(), roles.Doctor)

	assert.Equal(t, roles.RouteHome, next)
	assert.Equal(t, "/api/doctor/login", client.lastPath)
	assert.True(t, app.isSignedIn())
	assert.Equal(t, "T", app.store.Token())
	assert.JSONEq(t, `{"id":9}`, string(app.store.User()))
}

func TestSignInScreenSynthesizesMinimalUser(t *testing.T) {
	silenceOutput(t)
	scriptInputs(t, "a@b.com", "Abcdef1!")

	// Admin login answers {admin:..., token} but some role endpoints return
	// only a token; the stored record must still satisfy the guard.
	client := &fakeAPI{env: api.DecodeEnvelope(200, []byte(`{"status":"success","token":"T"}`))}
	app := newTestApp(t, client)

	next := app.signInScreen(context.Background(), roles.Pharmacy)

	assert.Equal(t, roles.RouteHome, next)
	assert.True(t, app.isSignedIn())
	assert.JSONEq(t, `{"email":"a@b.com","role":"pharmacy"}`, string(app.store.User()))
}

func TestSignInScreenFailureLeavesSessionEmpty(t *testing.T) {
	silenceOutput(t)
	scriptInputs(t, "a@b.com", "Abcdef1!")

	client := &fakeAPI{env: api.DecodeEnvelope(200, []byte(`{"status":"error","message":"account not found"}`))}
	app := newTestApp(t, client)

	next := app.signInScreen(context.Background(), roles.Doctor)

	assert.Empty(t, next)
	assert.False(t, app.isSignedIn())
}

func TestLogoutClearsSessionAndLands(t *testing.T) {
	silenceOutput(t)

	app := newTestApp(t, &fakeAPI{})
	require.NoError(t, app.store.SignIn(context.Background(), json.RawMessage(`{"id":1}`), "T"))
	app.route = roles.RouteHome

	require.NoError(t, app.Logout(context.Background()))

	assert.False(t, app.isSignedIn())
	assert.Equal(t, roles.RouteMainLogin, app.route)
	assert.Empty(t, app.store.Token())
}

func TestOTPScreenResendRespectsCooldown(t *testing.T) {
	silenceOutput(t)
	scriptInputs(t,
		"d@e.com", // email
		"resend",  // first resend goes through and arms the cooldown
		"resend",  // second one is rejected locally
		"123456",  // then verify
	)

	client := &fakeAPI{env: api.DecodeEnvelope(200, []byte(`{"status":"success"}`))}
	app := newTestApp(t, client)

	next := app.otpScreen(context.Background(), roles.Doctor, flows.Verify(roles.Doctor))

	assert.Equal(t, roles.RouteHome, next)
	// One resend post plus one verify post; the cooled-down resend never
	// reached the network.
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "/api/doctor/verify", client.lastPath)
	assert.False(t, app.cooldown(roles.Doctor).Ready())
}

func TestMainLoginSelector(t *testing.T) {
	silenceOutput(t)

	tests := []struct {
		choice string
		want   string
	}{
		{choice: "admin", want: roles.RouteAdminLanding},
		{choice: "patient", want: roles.RoutePatientSignIn},
		{choice: "doctor", want: roles.RouteDoctorSignIn},
		{choice: "pharmacist", want: roles.RoutePharmacySignIn},
		{choice: "laboratory", want: roles.RouteLabSignIn},
		{choice: "gardener", want: ""},
		{choice: "", want: ""},
	}

	for _, tt := range tests {
		t.Run("choice "+tt.choice, func(t *testing.T) {
			scriptInputs(t, tt.choice)
			app := newTestApp(t, &fakeAPI{})
			assert.Equal(t, tt.want, app.mainLoginScreen())
		})
	}
}

func TestConnectivityProbeFlipsMode(t *testing.T) {
	client := &fakeAPI{}
	app := newTestApp(t, client)

	app.checkOnline(context.Background())
	assert.Equal(t, ModeOnline, app.Mode)

	client.pingErr = errors.New("connection refused")
	app.checkOnline(context.Background())
	assert.Equal(t, ModeOffline, app.Mode)
}
