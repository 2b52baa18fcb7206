// AngelaMos | 2026
// manager.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campaignhq/campaign-backend/internal/config"
	"github.com/campaignhq/campaign-backend/internal/core"
	"github.com/campaignhq/campaign-backend/internal/kvstore"
	"github.com/campaignhq/campaign-backend/internal/ratelimit"
	"github.com/campaignhq/campaign-backend/internal/user"
	"github.com/campaignhq/campaign-backend/internal/validation"
)

const loginRateKeyPrefix = "login_"

// Manager orchestrates login, logout, invites, registration completion and
// approval. It owns the process-wide current-session slot and enforces the
// lockout and rate-limit policy. Read-modify-write sequences on a user
// record run under the manager's lock so attempt counting stays atomic.
type Manager struct {
	store   *user.Store
	kv      kvstore.Store
	limiter *ratelimit.Limiter
	clock   core.Clock
	policy  config.SecurityConfig
	baseURL string
	sink    AttemptSink

	attempts *AttemptLog

	mu      sync.Mutex
	session *Session
}

type ManagerConfig struct {
	Store   *user.Store
	KV      kvstore.Store
	Limiter *ratelimit.Limiter
	Clock   core.Clock
	Policy  config.SecurityConfig
	BaseURL string
	Sink    AttemptSink
}

func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Clock == nil {
		cfg.Clock = core.SystemClock()
	}
	if cfg.Limiter == nil {
		cfg.Limiter = ratelimit.New(cfg.Clock)
	}
	applyPolicyDefaults(&cfg.Policy)

	return &Manager{
		store:    cfg.Store,
		kv:       cfg.KV,
		limiter:  cfg.Limiter,
		clock:    cfg.Clock,
		policy:   cfg.Policy,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		sink:     cfg.Sink,
		attempts: NewAttemptLog(),
		session:  loadSession(cfg.KV),
	}
}

func applyPolicyDefaults(p *config.SecurityConfig) {
	if p.MaxLoginAttempts <= 0 {
		p.MaxLoginAttempts = 5
	}
	if p.LockoutDuration <= 0 {
		p.LockoutDuration = 15 * time.Minute
	}
	if p.SessionExpiry <= 0 {
		p.SessionExpiry = 24 * time.Hour
	}
	if p.TokenExpiry <= 0 {
		p.TokenExpiry = 48 * time.Hour
	}
	if p.LoginAttempts <= 0 {
		p.LoginAttempts = 5
	}
	if p.LoginWindow <= 0 {
		p.LoginWindow = 15 * time.Minute
	}
}

// Login authenticates the email/password pair and, on success, issues a
// session token and moves the current-session slot to the user.
func (m *Manager) Login(
	ctx context.Context,
	email, password string,
) (*user.UserResponse, error) {
	input := validation.LoginInput{Email: email, Password: password}
	if result := validation.Validate(input); !result.OK {
		return nil, &ValidationError{Violations: result.Errors}
	}

	email = validation.Sanitize(email)
	rateKey := loginRateKeyPrefix + strings.ToLower(email)

	if !m.limiter.Allow(rateKey, m.policy.LoginAttempts, m.policy.LoginWindow) {
		return nil, &RateLimitError{RetryAfter: m.policy.LoginWindow}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()

	u, err := m.store.GetByEmail(email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// Burn the same hashing work so unknown emails are not
			// distinguishable by timing, then fail identically.
			//nolint:errcheck // result is discarded on purpose
			_, _ = core.VerifyPasswordTimingSafe(password, "", "")
			m.recordAttempt(ctx, email, now, false)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if u.IsLocked(now) {
		m.recordAttempt(ctx, email, now, false)
		return nil, ErrAccountLocked
	}

	if !u.PasswordSet {
		m.recordAttempt(ctx, email, now, false)
		return nil, ErrRegistrationIncomplete
	}

	switch u.Status {
	case user.StatusPendingApproval:
		m.recordAttempt(ctx, email, now, false)
		return nil, ErrPendingApproval
	case user.StatusInactive:
		m.recordAttempt(ctx, email, now, false)
		return nil, ErrAccountDeactivated
	case user.StatusActive:
	}

	valid, err := core.VerifyPassword(password, u.PasswordHash, u.PasswordSalt)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		u.LoginAttempts++
		if u.LoginAttempts >= m.policy.MaxLoginAttempts {
			lockedUntil := now.Add(m.policy.LockoutDuration)
			u.LockedUntil = &lockedUntil
			slog.Warn("account locked after repeated failures",
				"email", u.Email,
				"attempts", u.LoginAttempts,
			)
		}
		if err := m.store.Update(u); err != nil {
			return nil, err
		}
		m.recordAttempt(ctx, email, now, false)
		return nil, ErrInvalidCredentials
	}

	token, err := core.GenerateSecureToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	expiry := now.Add(m.policy.SessionExpiry)
	lastLogin := now

	u.LoginAttempts = 0
	u.LockedUntil = nil
	u.LastLogin = &lastLogin
	u.SessionToken = token
	u.SessionExpiry = &expiry

	if err := m.store.Update(u); err != nil {
		return nil, err
	}

	sess := &Session{UserID: u.ID, Token: token, Expiry: expiry}
	if err := persistSession(m.kv, sess); err != nil {
		return nil, err
	}
	m.session = sess

	m.recordAttempt(ctx, email, now, true)

	resp := user.ToUserResponse(u)
	return &resp, nil
}

// Logout clears the current-session pointer only. The session token on the
// user record stays until it expires naturally or a new login overwrites it;
// there is no server-side revocation list.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := clearSession(m.kv); err != nil {
		return err
	}

	m.session = nil
	return nil
}

// CreateUserResult pairs the created projection with the registration link
// handed to the invitee.
type CreateUserResult struct {
	User             user.UserResponse `json:"user"`
	RegistrationLink string            `json:"registrationLink"`
}

// CreateUser invites a new user on behalf of the currently signed-in caller.
// The record always starts pending approval with no password; the invitee
// finishes via CompleteRegistration and, for login, ApproveUser.
func (m *Manager) CreateUser(
	ctx context.Context,
	input validation.CreateUserInput,
) (*CreateUserResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	caller, err := m.currentUserLocked()
	if err != nil {
		return nil, err
	}

	if result := validation.Validate(input); !result.OK {
		return nil, &ValidationError{Violations: result.Errors}
	}

	role := user.Role(input.Role)
	if !caller.Role.CanCreate(role) {
		return nil, ErrForbidden
	}

	email := validation.Sanitize(input.Email)

	if _, err := m.store.GetByEmail(email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("check duplicate email: %w", err)
	}

	token, err := core.GenerateSecureToken()
	if err != nil {
		return nil, fmt.Errorf("generate registration token: %w", err)
	}

	now := m.clock.Now()
	tokenExpiry := now.Add(m.policy.TokenExpiry)

	record := &user.SecureUser{
		ID:                uuid.New().String(),
		Email:             email,
		FirstName:         validation.Sanitize(input.FirstName),
		LastName:          validation.Sanitize(input.LastName),
		Role:              role,
		Status:            user.StatusPendingApproval,
		PasswordSet:       false,
		RegistrationToken: token,
		TokenExpiry:       &tokenExpiry,
		CreatedBy:         caller.ID,
		CreatedAt:         now,
	}

	if err := m.store.Insert(record); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	slog.Info("user invited",
		"email", record.Email,
		"role", record.Role,
		"created_by", caller.ID,
	)

	return &CreateUserResult{
		User:             user.ToUserResponse(record),
		RegistrationLink: m.baseURL + "/register?token=" + token,
	}, nil
}

// ValidateToken resolves an outstanding registration token. Expired tokens
// are indistinguishable from ones that never existed; both return nil.
func (m *Manager) ValidateToken(token string) *user.UserResponse {
	if token == "" {
		return nil
	}

	u, err := m.store.GetByRegistrationToken(token)
	if err != nil {
		return nil
	}

	if u.TokenExpired(m.clock.Now()) {
		return nil
	}

	resp := user.ToUserResponse(u)
	return &resp
}

// CompleteRegistration exchanges an invite token for a password. The status
// is left untouched: a pending record stays pending until an admin approves
// it.
func (m *Manager) CompleteRegistration(
	ctx context.Context,
	input validation.RegistrationInput,
) error {
	if result := validation.Validate(input); !result.OK {
		return &ValidationError{Violations: result.Errors}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.store.GetByRegistrationToken(input.Token)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("lookup token: %w", err)
	}

	if u.TokenExpired(m.clock.Now()) {
		return ErrTokenExpired
	}

	hash, salt, err := core.HashPassword(input.Password, nil)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	u.PasswordHash = hash
	u.PasswordSalt = salt
	u.PasswordSet = true
	u.RegistrationToken = ""
	u.TokenExpiry = nil

	if name := validation.Sanitize(input.FirstName); name != "" {
		u.FirstName = name
	}
	if name := validation.Sanitize(input.LastName); name != "" {
		u.LastName = name
	}

	if err := m.store.Update(u); err != nil {
		return err
	}

	slog.Info("registration completed", "email", u.Email)
	return nil
}

// ApproveUser activates a pending record. Admin only; idempotent for
// already-active records.
func (m *Manager) ApproveUser(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireAdminLocked(); err != nil {
		return err
	}

	u, err := m.store.GetByID(userID)
	if err != nil {
		return err
	}

	if u.Status == user.StatusActive {
		return nil
	}

	u.Status = user.StatusActive
	if err := m.store.Update(u); err != nil {
		return err
	}

	slog.Info("user approved", "email", u.Email)
	return nil
}

// RejectUser hard-deletes the record. Admin only; idempotent for records
// already gone.
func (m *Manager) RejectUser(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireAdminLocked(); err != nil {
		return err
	}

	return m.store.Delete(userID)
}

// GetAllUsers returns secret-free projections of every record.
func (m *Manager) GetAllUsers() []user.UserResponse {
	return user.ToUserResponseList(m.store.All())
}

// GetPendingUsers returns projections of records awaiting approval.
func (m *Manager) GetPendingUsers() []user.UserResponse {
	return user.ToUserResponseList(m.store.ByStatus(user.StatusPendingApproval))
}

// CurrentUser resolves the current session, if any, to its user projection.
// Expiry is evaluated lazily: an expired slot simply yields no user.
func (m *Manager) CurrentUser() *user.UserResponse {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, err := m.currentUserLocked()
	if err != nil {
		return nil
	}

	resp := user.ToUserResponse(u)
	return &resp
}

// VerifySession checks a presented session token against the current-session
// slot. Used by the HTTP layer to authenticate bearer tokens.
func (m *Manager) VerifySession(token string) (*user.UserResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil || m.session.Token != token {
		return nil, core.ErrTokenInvalid
	}

	if m.session.Expired(m.clock.Now()) {
		return nil, core.ErrTokenExpired
	}

	u, err := m.store.GetByID(m.session.UserID)
	if err != nil {
		return nil, core.ErrTokenInvalid
	}

	resp := user.ToUserResponse(u)
	return &resp, nil
}

// SessionToken returns the bearer token of the current session, or empty
// when no session is active.
func (m *Manager) SessionToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil || m.session.Expired(m.clock.Now()) {
		return ""
	}
	return m.session.Token
}

// Attempts exposes the in-memory login attempt log.
func (m *Manager) Attempts() []LoginAttempt {
	return m.attempts.All()
}

// AttemptCount reports the size of the in-memory attempt log.
func (m *Manager) AttemptCount() int {
	return m.attempts.Len()
}

func (m *Manager) currentUserLocked() (*user.SecureUser, error) {
	if m.session == nil || m.session.Expired(m.clock.Now()) {
		return nil, ErrForbidden
	}

	u, err := m.store.GetByID(m.session.UserID)
	if err != nil {
		return nil, ErrForbidden
	}

	return u, nil
}

func (m *Manager) requireAdminLocked() error {
	caller, err := m.currentUserLocked()
	if err != nil {
		return err
	}

	if caller.Role != user.RoleAdmin {
		return ErrForbidden
	}

	return nil
}

func (m *Manager) recordAttempt(
	ctx context.Context,
	email string,
	at time.Time,
	success bool,
) {
	attempt := LoginAttempt{Email: email, Timestamp: at, Success: success}
	m.attempts.Record(attempt)

	if m.sink != nil {
		if err := m.sink.RecordAttempt(ctx, attempt); err != nil {
			slog.Warn("audit sink write failed", "error", err)
		}
	}
}
