// Package session performs the identity operations shared by every
// authenticated page of the client: login, registration, profile updates,
// profile lookup and logout. It owns the persisted session token and the
// role-based navigation that follows each operation.
package session

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/linkudp/linkudp-cli/core"
	"github.com/linkudp/linkudp-cli/core/user"
	"github.com/linkudp/linkudp-cli/services/linkapi"
	"github.com/linkudp/linkudp-cli/storage/token"
)

var (
	// user-facing failure states, worded as the pages display them
	ErrLoginFailed     = errors.New("Credenciales inválidas o error de servidor")
	ErrRegisterFailed  = errors.New("Error al crear la cuenta. Revisa los datos ingresados.")
	ErrSaveProfile     = errors.New("No se pudo guardar el perfil.")
	ErrUnauthenticated = errors.New("Token no encontrado")

	// ErrBusy rejects an identity operation started while another is in
	// flight. Identity operations are never queued or coalesced.
	ErrBusy = errors.New("otra operación de sesión está en curso")
)

// API is the slice of the backend client the manager needs.
type API interface {
	Login(ctx context.Context, creds user.Credentials) (string, error)
	Register(ctx context.Context, data user.RegisterData) (string, error)
	Me(ctx context.Context, token string) (*user.Profile, error)
	UpdateStudentProfile(ctx context.Context, token string, data user.UpdateStudentProfile) (*user.Profile, error)
	UpdateGeneralProfile(ctx context.Context, token string, data user.UpdateGeneralProfile) (*user.Profile, error)
	UpdateTutorProfile(ctx context.Context, token string, data user.UpdateTutorProfile) (*user.Profile, error)
}

var _ API = (*linkapi.Client)(nil)

type Manager struct {
	api    API
	tokens token.Store
	nav    Navigator
	logger core.Logger

	busy int32 // one mutating identity operation at a time
}

func NewManager(api API, tokens token.Store, nav Navigator, logger core.Logger) *Manager {
	return &Manager{api: api, tokens: tokens, nav: nav, logger: logger}
}

func (m *Manager) begin() error {
	if !atomic.CompareAndSwapInt32(&m.busy, 0, 1) {
		return ErrBusy
	}
	return nil
}

func (m *Manager) end() { atomic.StoreInt32(&m.busy, 0) }

// Login exchanges credentials for a token, persists it, fetches the profile
// and navigates to the dashboard of the returned role. On failure no token
// is written and no navigation happens.
func (m *Manager) Login(ctx context.Context, creds user.Credentials) (*user.Profile, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.end()

	if err := creds.Validate(); err != nil {
		return nil, err
	}

	tok, err := m.api.Login(ctx, creds)
	if err != nil {
		m.logger.Warn("login failed", "email", creds.Email, "error", err)
		return nil, ErrLoginFailed
	}
	if err := m.tokens.Set(tok); err != nil {
		return nil, err
	}

	profile, err := m.api.Me(ctx, tok)
	if err != nil {
		// Token is valid and kept; without a role the student dashboard is
		// the documented default.
		m.logger.Warn("profile fetch after login failed", "error", err)
		m.nav.Push(RouteStudentDashboard)
		return nil, nil
	}

	m.nav.Push(DashboardFor(profile.User.Role))
	return profile, nil
}

// Register creates an account, persists its token and navigates to the
// onboarding flow of the requested role.
func (m *Manager) Register(ctx context.Context, data user.RegisterData) (*user.Profile, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.end()

	if err := data.Validate(); err != nil {
		return nil, err
	}

	tok, err := m.api.Register(ctx, data)
	if err != nil {
		m.logger.Warn("registration failed", "email", data.Email, "error", err)
		return nil, ErrRegisterFailed
	}
	if err := m.tokens.Set(tok); err != nil {
		return nil, err
	}

	if claimed, err := peekRole(tok); err != nil {
		m.logger.Debug("could not decode access token", "error", err)
	} else if claimed != data.Role {
		m.logger.Debug("role claim differs from requested role", "requested", data.Role, "claimed", claimed)
	}

	profile, err := m.api.Me(ctx, tok)
	if err != nil {
		m.logger.Warn("profile fetch after register failed", "error", err)
		m.nav.Push(RouteStudentOnboarding)
		return nil, nil
	}

	m.nav.Push(OnboardingFor(profile.User.Role))
	return profile, nil
}

// UpdateStudentProfile patches the caller's student profile. Requires a
// persisted token; navigates to the student dashboard only on success.
func (m *Manager) UpdateStudentProfile(ctx context.Context, data user.UpdateStudentProfile) (*user.Profile, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.end()

	tok, err := m.tokens.Get()
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, ErrUnauthenticated
	}

	if err := data.Validate(); err != nil {
		return nil, err
	}

	profile, err := m.api.UpdateStudentProfile(ctx, tok, data)
	if err != nil {
		m.logger.Warn("student profile update failed", "error", err)
		return nil, ErrSaveProfile
	}

	m.nav.Push(RouteStudentDashboard)
	return profile, nil
}

// UpdateTutorProfile patches the caller's base user fields and then the
// tutor-specific fields; it aborts after the first failing call. No
// navigation: the tutor profile editor stays in place.
func (m *Manager) UpdateTutorProfile(ctx context.Context, general user.UpdateGeneralProfile, specific user.UpdateTutorProfile) (*user.Profile, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.end()

	tok, err := m.tokens.Get()
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, ErrUnauthenticated
	}

	if err := general.Validate(); err != nil {
		return nil, err
	}
	if err := specific.Validate(); err != nil {
		return nil, err
	}

	if _, err = m.api.UpdateGeneralProfile(ctx, tok, general); err != nil {
		m.logger.Warn("general profile update failed", "error", err)
		return nil, ErrSaveProfile
	}
	profile, err := m.api.UpdateTutorProfile(ctx, tok, specific)
	if err != nil {
		m.logger.Warn("tutor profile update failed", "error", err)
		return nil, ErrSaveProfile
	}
	return profile, nil
}

// CurrentProfile is the idempotent read of the caller's full profile.
// Without a persisted token it returns nil and issues no request. When the
// backend rejects the token, the slot is cleared and nil is returned;
// transport failures leave the token untouched.
func (m *Manager) CurrentProfile(ctx context.Context) (*user.Profile, error) {
	tok, err := m.tokens.Get()
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, nil
	}

	profile, err := m.api.Me(ctx, tok)
	if err != nil {
		var apiErr *linkapi.APIError
		if errors.Is(err, linkapi.ErrUnauthenticated) || errors.As(err, &apiErr) {
			if cerr := m.tokens.Clear(); cerr != nil {
				m.logger.Error("clearing rejected token failed", "error", cerr)
			}
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// Logout clears the token and navigates to the login route, regardless of
// prior state. No backend call is made.
func (m *Manager) Logout() error {
	err := m.tokens.Clear()
	m.nav.Push(RouteLogin)
	return err
}

// watcher is implemented by token stores that can report external changes.
type watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// WatchInvalidation reports external changes to the token slot (another
// process logging in or out). Stores without watch support return ok=false.
func (m *Manager) WatchInvalidation(ctx context.Context) (<-chan struct{}, bool, error) {
	w, ok := m.tokens.(watcher)
	if !ok {
		return nil, false, nil
	}
	ch, err := w.Watch(ctx)
	if err != nil {
		return nil, true, err
	}
	return ch, true, nil
}
