package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/medexpertise/portal/internal/client/api"
	"github.com/medexpertise/portal/internal/client/config"
	"github.com/medexpertise/portal/internal/client/flows"
	"github.com/medexpertise/portal/internal/client/roles"
	"github.com/medexpertise/portal/internal/client/session"
	"github.com/medexpertise/portal/internal/client/storage"
	"github.com/medexpertise/portal/internal/logging"
)

// Mode reflects the last known reachability of the backend. It only affects
// the status shown in the prompt; screens always attempt their requests.
type Mode string

const (
	ModeUnknown Mode = "unknown"
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB
	store  *session.Store
	api    api.Client
	reader *bufio.Reader

	route     string
	Mode      Mode
	cooldowns map[roles.Role]*flows.Cooldown
}

// NewApp opens the local database, restores any persisted session, and wires
// the REST client with the session store as its token source.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := session.NewStore(db)
	if err := store.Hydrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:    cfg,
		log:       log,
		db:        db,
		store:     store,
		api:       api.NewRest(cfg.APIBaseURL, cfg.RequestTimeout, store, log),
		reader:    bufio.NewReader(os.Stdin),
		route:     roles.UnauthenticatedLanding,
		Mode:      ModeUnknown,
		cooldowns: make(map[roles.Role]*flows.Cooldown),
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// Run starts the background connectivity watcher and the REPL. It blocks
// until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn("Medical Expertise portal (type 'help' for commands)")
	a.Navigate(ctx, a.route)
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isSignedIn() bool {
	return a.store.IsAuthenticated()
}

func (a *App) status() string {
	if a.isSignedIn() {
		return a.route + " [signed in, " + string(a.Mode) + "]"
	}
	return a.route + " [" + string(a.Mode) + "]"
}

// cooldown returns the resend-OTP cooldown for a role, creating it on first
// use. One cooldown per role outlives individual screen visits.
func (a *App) cooldown(r roles.Role) *flows.Cooldown {
	cd, ok := a.cooldowns[r]
	if !ok {
		cd = flows.NewCooldown(a.config.ResendCooldown)
		a.cooldowns[r] = cd
	}
	return cd
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

// StartOnlineStatusWatcher periodically probes the backend health route and
// updates Mode. It returns when ctx is cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	err := a.api.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
	} else {
		a.setMode(ctx, ModeOnline)
	}
}
