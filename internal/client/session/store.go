// Package session owns the client-side record of who is signed in: the
// role-specific user object returned by the backend and the bearer token.
// It is the single writer of the durable "user" and "token" keys.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/medexpertise/portal/internal/client/repositories/localdata"
	"github.com/medexpertise/portal/internal/dbx"
)

// Durable storage keys. They match the localStorage keys used by the web
// frontend so the on-disk contract stays recognizable.
const (
	userKey  = "user"
	tokenKey = "token"
)

// Store is the single source of truth for the current session. Reads are
// side-effect-free; all mutation goes through Hydrate, SignIn and Clear,
// which persist both keys in one transaction before touching memory.
type Store struct {
	db *sql.DB

	mu    sync.RWMutex
	user  json.RawMessage
	token string
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo(db dbx.DBTX) localdata.Repository {
	return localdata.NewSQLiteRepository(db)
}

// Hydrate loads the session from durable storage. It is called once at
// process start. A stored user blob that is not a JSON object triggers a
// fail-safe wipe of both keys rather than a partial recovery.
func (s *Store) Hydrate(ctx context.Context) error {
	repo := s.repo(s.db)

	rawUser, err := repo.Get(ctx, userKey)
	if err != nil {
		return err
	}
	rawToken, err := repo.Get(ctx, tokenKey)
	if err != nil {
		return err
	}

	if rawUser != nil && !validUserBlob(rawUser) {
		if err := s.wipe(ctx); err != nil {
			return err
		}
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = rawUser
	s.token = string(rawToken)
	return nil
}

// SignIn persists the user object and token atomically and then updates the
// in-memory session.
func (s *Store) SignIn(ctx context.Context, user json.RawMessage, token string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, userKey, user); err != nil {
			return err
		}
		return repo.Set(ctx, tokenKey, []byte(token))
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.token = token
	return nil
}

// Clear wipes the session from durable storage and memory (logout).
func (s *Store) Clear(ctx context.Context) error {
	return s.wipe(ctx)
}

func (s *Store) wipe(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Delete(ctx, userKey); err != nil {
			return err
		}
		return repo.Delete(ctx, tokenKey)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	return nil
}

// User returns the opaque user object, or nil when signed out.
func (s *Store) User() json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Token returns the bearer token, or "" when none is held.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a user object is present. Token validity
// is deliberately not checked: presence alone gates access, matching the
// frontend contract.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func validUserBlob(b []byte) bool {
	var obj map[string]json.RawMessage
	return json.Unmarshal(b, &obj) == nil
}
