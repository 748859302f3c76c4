package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/admindash/console/internal/core/domain"
	"github.com/admindash/console/internal/core/ports"
)

// SessionService owns the authentication state of the console process:
// who is signed in, whether a login is in flight and the last login error.
type SessionService struct {
	store ports.TokenStore
	api   ports.AuthAPI
	nav   ports.Navigator
	log   zerolog.Logger
	now   func() time.Time

	mu        sync.RWMutex
	state     domain.Session
	listeners map[int]func(domain.Session)
	nextID    int
}

// NewSessionService returns a service in the anonymous state. Call Init to
// pick up a persisted credential.
func NewSessionService(store ports.TokenStore, api ports.AuthAPI, nav ports.Navigator, log zerolog.Logger) *SessionService {
	return &SessionService{
		store:     store,
		api:       api,
		nav:       nav,
		log:       log,
		now:       time.Now,
		listeners: make(map[int]func(domain.Session)),
	}
}

// State returns a snapshot of the current session.
func (s *SessionService) State() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.state)
}

// Authenticated reports whether an operator is signed in.
func (s *SessionService) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Authenticated
}

// Subscribe registers fn to receive a snapshot after every transition and
// returns a function that removes it.
func (s *SessionService) Subscribe(fn func(domain.Session)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Init derives the starting state from the token store. A stored credential
// is trusted optimistically; only a JWT that has visibly expired is dropped.
func (s *SessionService) Init(ctx context.Context) domain.Session {
	token, err := s.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoCredential) {
			s.log.Warn().Err(err).Msg("token store read failed, starting anonymous")
		}
		return s.update(func(st *domain.Session) { *st = domain.Session{} })
	}

	user, expired := userFromToken(token, s.now())
	if expired {
		if err := s.store.Clear(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to clear expired credential")
		}
		s.log.Info().Msg("stored credential expired, starting anonymous")
		return s.update(func(st *domain.Session) { *st = domain.Session{} })
	}

	s.log.Info().Str("email", user.Email).Msg("restored session from stored credential")
	return s.update(func(st *domain.Session) {
		*st = domain.Session{Authenticated: true, User: user}
	})
}

// Login authenticates against the API and, on success, persists the
// credential and moves to the authenticated state.
func (s *SessionService) Login(ctx context.Context, email, password string) domain.LoginResult {
	s.update(func(st *domain.Session) {
		st.Loading = true
		st.Error = ""
	})
	defer s.settle()

	resp, err := s.api.Login(ctx, email, password)
	if err == nil && (resp == nil || resp.Token == "") {
		err = domain.ErrInvalidLoginResponse
	}
	if err == nil {
		if storeErr := s.store.Set(ctx, resp.Token); storeErr != nil {
			s.log.Error().Err(storeErr).Msg("failed to persist credential")
			err = storeErr
		}
	}
	if err != nil {
		msg := domain.ErrorMessage(err)
		s.update(func(st *domain.Session) {
			*st = domain.Session{Error: msg}
		})
		s.log.Info().Str("email", email).Str("reason", msg).Msg("login failed")
		return domain.LoginResult{Error: msg}
	}

	user := resp.User
	if user == nil {
		user, _ = userFromToken(resp.Token, s.now())
		if user == nil {
			user = &domain.User{}
		}
	}
	s.update(func(st *domain.Session) {
		*st = domain.Session{Authenticated: true, User: user}
	})
	s.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("login succeeded")

	return domain.LoginResult{Success: true, User: cloneUser(user)}
}

// Logout drops the credential and returns to the anonymous state. Calling it
// while anonymous is harmless.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear credential on logout")
	}
	s.update(func(st *domain.Session) { *st = domain.Session{} })
	s.log.Info().Msg("logged out")
}

// Expire handles the HTTP client's session-expired notification. The client
// has already cleared the token store. A login still in flight keeps its
// loading flag.
func (s *SessionService) Expire(_ context.Context) {
	s.update(func(st *domain.Session) { *st = domain.Session{Loading: st.Loading} })
	s.log.Warn().Msg("session expired")
	if s.nav != nil {
		s.nav.Navigate(LoginPath)
	}
}

// ClearError drops the last login error, as the auth screen does on input.
func (s *SessionService) ClearError() {
	s.mu.RLock()
	hasErr := s.state.Error != ""
	s.mu.RUnlock()
	if hasErr {
		s.update(func(st *domain.Session) { st.Error = "" })
	}
}

// settle makes sure no transition leaves Loading stuck.
func (s *SessionService) settle() {
	s.mu.RLock()
	loading := s.state.Loading
	s.mu.RUnlock()
	if loading {
		s.update(func(st *domain.Session) { st.Loading = false })
	}
}

func (s *SessionService) update(fn func(st *domain.Session)) domain.Session {
	s.mu.Lock()
	fn(&s.state)
	s.state.ChangedAt = s.now()
	snap := snapshot(s.state)
	listeners := make([]func(domain.Session), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
	return snap
}

func snapshot(st domain.Session) domain.Session {
	st.User = cloneUser(st.User)
	return st
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// userFromToken reads the profile claims of a JWT without verifying it; the
// console has no key and the server re-validates on every call. Tokens that
// are not JWTs yield an empty profile.
func userFromToken(token string, now time.Time) (user *domain.User, expired bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return &domain.User{}, false
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && !exp.After(now) {
		return nil, true
	}

	user = &domain.User{}
	if sub, err := claims.GetSubject(); err == nil {
		user.Email = sub
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		user.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		user.Name = name
	}
	if role, ok := claims["role"].(string); ok {
		user.Role = domain.Role(role)
	}
	if id, ok := claims["id"].(float64); ok {
		user.ID = int64(id)
	}
	return user, false
}
