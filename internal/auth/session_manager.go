// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyturn Contributors

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/keyturn/keyturn/internal/storage"
)

// SessionKey is the storage key holding the JSON-encoded current Session.
const SessionKey = "auth:current-session"

// MinPasswordLength is the minimum accepted password length on signup.
const MinPasswordLength = 6

// OperationRecorder receives the outcome of each session operation.
// *observability.Metrics satisfies it.
type OperationRecorder interface {
	RecordOperation(operation, status string)
}

// SessionManager mediates login, signup, logout, and startup hydration,
// and owns the single current Session together with its durable mirror.
//
// Hydrate must run once before any other operation; earlier calls fail
// with CodeNotReady. A mutex serializes operations so the read-check-write
// sequence in Signup stays safe under concurrent callers.
type SessionManager struct {
	mu       sync.Mutex
	registry *Registry
	store    storage.Store
	logger   *slog.Logger
	recorder OperationRecorder

	current  *Session
	hydrated bool
}

// ManagerOption configures a SessionManager.
type ManagerOption func(*SessionManager)

// WithLogger sets the logger used for operation logging.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *SessionManager) {
		m.logger = logger
	}
}

// WithRecorder sets the recorder notified of operation outcomes.
func WithRecorder(recorder OperationRecorder) ManagerOption {
	return func(m *SessionManager) {
		m.recorder = recorder
	}
}

// NewSessionManager creates a SessionManager. The returned manager is not
// ready until Hydrate has run.
func NewSessionManager(registry *Registry, store storage.Store, opts ...ManagerOption) (*SessionManager, error) {
	if registry == nil {
		return nil, oops.Errorf("registry is required")
	}
	if store == nil {
		return nil, oops.Errorf("storage service is required")
	}

	m := &SessionManager{
		registry: registry,
		store:    store,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Hydrate restores the current Session from durable storage. It runs the
// restore at most once per manager; later calls are no-ops. Malformed or
// absent session data hydrates to "logged out", never an error. Hydrate
// only reads; it never writes the session slot back.
func (m *SessionManager) Hydrate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hydrated {
		return nil
	}

	raw, ok, err := m.store.Get(ctx, SessionKey)
	if err != nil {
		m.record("hydrate", err)
		return err
	}

	if ok {
		var session Session
		if json.Unmarshal([]byte(raw), &session) == nil {
			m.current = &session
		}
	}
	m.hydrated = true

	m.logger.Info("session hydrated", "logged_in", m.current != nil)
	m.record("hydrate", nil)
	return nil
}

// Ready reports whether hydration has resolved.
func (m *SessionManager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hydrated
}

// Current returns the current Session, if any.
func (m *SessionManager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

// Login authenticates an existing account and makes it the current
// session. Validation and credential failures leave both the in-memory
// session and the durable mirror untouched.
func (m *SessionManager) Login(ctx context.Context, email, password string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.login(ctx, email, password)
	m.record("login", err)
	if err != nil {
		return Session{}, err
	}

	m.logger.Info("login succeeded", "account_id", session.ID)
	return session, nil
}

func (m *SessionManager) login(ctx context.Context, email, password string) (Session, error) {
	if err := m.requireHydrated(); err != nil {
		return Session{}, err
	}

	if email == "" {
		return Session{}, oops.Code(CodeValidation).Errorf("Email is required")
	}
	if _, ok := NormalizeEmail(email); !ok {
		return Session{}, oops.Code(CodeValidation).Errorf("Invalid email")
	}
	if password == "" {
		return Session{}, oops.Code(CodeValidation).Errorf("Password is required")
	}

	account, err := m.registry.FindByNormalizedEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, oops.Code(CodeInvalidCredentials).Errorf("User not found")
		}
		return Session{}, err
	}

	// Plaintext comparison reproduces the registry's storage format. A
	// hardened deployment would store a salted hash and verify it here
	// without changing the validation contract.
	if account.Password != password {
		return Session{}, oops.Code(CodeInvalidCredentials).Errorf("Incorrect password")
	}

	return m.commit(ctx, sessionOf(account))
}

// Signup registers a new account and makes it the current session. The
// email is stored as typed; uniqueness is checked against its normalized
// form. The name is stored trimmed.
func (m *SessionManager) Signup(ctx context.Context, name, email, password string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.signup(ctx, name, email, password)
	m.record("signup", err)
	if err != nil {
		return Session{}, err
	}

	m.logger.Info("signup succeeded", "account_id", session.ID)
	return session, nil
}

func (m *SessionManager) signup(ctx context.Context, name, email, password string) (Session, error) {
	if err := m.requireHydrated(); err != nil {
		return Session{}, err
	}

	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return Session{}, oops.Code(CodeValidation).Errorf("Name is required")
	}
	if _, ok := NormalizeEmail(email); !ok {
		return Session{}, oops.Code(CodeValidation).Errorf("Email is required")
	}
	if len(password) < MinPasswordLength {
		return Session{}, oops.Code(CodeValidation).Errorf("Password must be at least %d characters", MinPasswordLength)
	}

	_, err := m.registry.FindByNormalizedEmail(ctx, email)
	if err == nil {
		return Session{}, oops.Code(CodeConflict).Errorf("An account with this email already exists")
	}
	if !errors.Is(err, ErrNotFound) {
		return Session{}, err
	}

	account := Account{
		ID:       newAccountID(),
		Name:     trimmedName,
		Email:    email,
		Password: password,
	}
	if err := m.registry.Insert(ctx, account); err != nil {
		return Session{}, err
	}

	return m.commit(ctx, sessionOf(account))
}

// Logout clears the current session and removes its durable mirror. It
// succeeds even when no session exists.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.logout(ctx)
	m.record("logout", err)
	if err != nil {
		return err
	}

	m.logger.Info("logout succeeded")
	return nil
}

func (m *SessionManager) logout(ctx context.Context) error {
	if err := m.requireHydrated(); err != nil {
		return err
	}

	m.current = nil
	return m.store.Remove(ctx, SessionKey)
}

// commit sets session as current and persists it. The two updates are one
// logical commit: when the persist fails the error propagates but the
// in-memory state is not rolled back (known limitation).
func (m *SessionManager) commit(ctx context.Context, session Session) (Session, error) {
	m.current = &session

	data, err := json.Marshal(session)
	if err != nil {
		return Session{}, oops.Code("STORAGE_SET_FAILED").
			With("operation", "encode session").
			Wrap(err)
	}
	if err := m.store.Set(ctx, SessionKey, string(data)); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (m *SessionManager) requireHydrated() error {
	if !m.hydrated {
		return oops.Code(CodeNotReady).Errorf("session state is still hydrating")
	}
	return nil
}

func (m *SessionManager) record(operation string, err error) {
	if m.recorder == nil {
		return
	}
	m.recorder.RecordOperation(operation, statusOf(err))
}

// statusOf maps an operation outcome to a metric status label.
func statusOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsValidation(err):
		return "validation"
	case IsAuth(err):
		return "auth"
	case IsConflict(err):
		return "conflict"
	case IsNotReady(err):
		return "not_ready"
	case IsStorage(err):
		return "storage"
	default:
		return "error"
	}
}

// newAccountID generates an opaque unique account ID. ULIDs keep the
// timestamp-plus-randomness shape of the original scheme with far more
// entropy.
func newAccountID() string {
	return ulid.Make().String()
}
