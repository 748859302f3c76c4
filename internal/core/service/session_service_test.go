package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/admindash/console/internal/core/domain"
)

type stubTokenStore struct {
	token    string
	has      bool
	getErr   error
	setErr   error
	clears   int
	setCalls int
}

func (s *stubTokenStore) Get(_ context.Context) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	if !s.has {
		return "", domain.ErrNoCredential
	}
	return s.token, nil
}

func (s *stubTokenStore) Set(_ context.Context, token string) error {
	s.setCalls++
	if s.setErr != nil {
		return s.setErr
	}
	s.token, s.has = token, true
	return nil
}

func (s *stubTokenStore) Clear(_ context.Context) error {
	s.clears++
	s.token, s.has = "", false
	return nil
}

func (s *stubTokenStore) Ping(_ context.Context) error { return nil }

type stubAuthAPI struct {
	loginFn func(ctx context.Context, email, password string) (*domain.AuthResponse, error)
}

func (a *stubAuthAPI) Login(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	return a.loginFn(ctx, email, password)
}

func (a *stubAuthAPI) Register(_ context.Context, _, _, _ string, _ domain.Role) (*domain.AuthResponse, error) {
	return nil, errors.New("not implemented")
}

type recordingNavigator struct {
	paths []string
}

func (n *recordingNavigator) Navigate(path string) { n.paths = append(n.paths, path) }

func newSession(store *stubTokenStore, api *stubAuthAPI, nav *recordingNavigator) *SessionService {
	return NewSessionService(store, api, nav, zerolog.Nop())
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func TestSession_StartsAnonymous(t *testing.T) {
	svc := newSession(&stubTokenStore{}, &stubAuthAPI{}, &recordingNavigator{})

	st := svc.State()
	if st.Authenticated || st.User != nil || st.Loading || st.Error != "" {
		t.Fatalf("unexpected initial state: %+v", st)
	}
}

func TestSession_Login_Success(t *testing.T) {
	store := &stubTokenStore{}
	var loadingDuringCall bool
	var svc *SessionService
	api := &stubAuthAPI{loginFn: func(_ context.Context, email, password string) (*domain.AuthResponse, error) {
		if email != "a@b.com" || password != "x" {
			t.Fatalf("unexpected args: %s %s", email, password)
		}
		loadingDuringCall = svc.State().Loading
		return &domain.AuthResponse{Token: "T", User: &domain.User{ID: 1, Email: "a@b.com", Role: domain.RoleAdmin}}, nil
	}}
	svc = newSession(store, api, &recordingNavigator{})

	res := svc.Login(context.Background(), "a@b.com", "x")
	if !res.Success || res.Error != "" {
		t.Fatalf("expected success, got %+v", res)
	}
	if !loadingDuringCall {
		t.Fatalf("expected loading to be true while the call is in flight")
	}

	st := svc.State()
	if !st.Authenticated || st.User == nil || st.User.Email != "a@b.com" || st.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected state after login: %+v", st)
	}
	if st.Loading {
		t.Fatalf("loading not reset after success")
	}
	if store.token != "T" {
		t.Fatalf("expected token T in store, got %q", store.token)
	}
}

func TestSession_Login_FailureRecordsMessage(t *testing.T) {
	store := &stubTokenStore{}
	api := &stubAuthAPI{loginFn: func(context.Context, string, string) (*domain.AuthResponse, error) {
		return nil, &domain.APIError{Message: "Invalid credentials!", Kind: domain.KindServer, Status: 400}
	}}
	svc := newSession(store, api, &recordingNavigator{})

	res := svc.Login(context.Background(), "a@b.com", "bad")
	if res.Success {
		t.Fatalf("expected failure")
	}
	if res.Error != "Invalid credentials!" {
		t.Fatalf("unexpected error message: %q", res.Error)
	}

	st := svc.State()
	if st.Authenticated || st.User != nil {
		t.Fatalf("expected anonymous state, got %+v", st)
	}
	if st.Loading {
		t.Fatalf("loading not reset after failure")
	}
	if st.Error != "Invalid credentials!" {
		t.Fatalf("expected error recorded in state, got %q", st.Error)
	}
	if store.setCalls != 0 {
		t.Fatalf("store must not be written on failure")
	}
}

func TestSession_Login_ClearsPreviousError(t *testing.T) {
	calls := 0
	api := &stubAuthAPI{loginFn: func(context.Context, string, string) (*domain.AuthResponse, error) {
		calls++
		if calls == 1 {
			return nil, &domain.APIError{Message: "User not found!", Kind: domain.KindServer}
		}
		return &domain.AuthResponse{Token: "T2", User: &domain.User{Email: "a@b.com"}}, nil
	}}
	svc := newSession(&stubTokenStore{}, api, &recordingNavigator{})

	_ = svc.Login(context.Background(), "a@b.com", "x")
	if svc.State().Error == "" {
		t.Fatalf("expected error after first attempt")
	}
	_ = svc.Login(context.Background(), "a@b.com", "x")
	if st := svc.State(); st.Error != "" || !st.Authenticated {
		t.Fatalf("expected clean authenticated state, got %+v", st)
	}
}

func TestSession_Login_MissingTokenIsFailure(t *testing.T) {
	api := &stubAuthAPI{loginFn: func(context.Context, string, string) (*domain.AuthResponse, error) {
		return &domain.AuthResponse{User: &domain.User{Email: "a@b.com"}}, nil
	}}
	svc := newSession(&stubTokenStore{}, api, &recordingNavigator{})

	res := svc.Login(context.Background(), "a@b.com", "x")
	if res.Success || res.Error != domain.ErrInvalidLoginResponse.Error() {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestSession_Login_StoreFailureStaysAnonymous(t *testing.T) {
	store := &stubTokenStore{setErr: errors.New("disk full")}
	api := &stubAuthAPI{loginFn: func(context.Context, string, string) (*domain.AuthResponse, error) {
		return &domain.AuthResponse{Token: "T"}, nil
	}}
	svc := newSession(store, api, &recordingNavigator{})

	res := svc.Login(context.Background(), "a@b.com", "x")
	if res.Success || res.Error != "disk full" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if svc.Authenticated() {
		t.Fatalf("expected anonymous state")
	}
}

func TestSession_Login_UserFromTokenWhenResponseHasNone(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "ops@example.com", "role": "MODERATOR", "exp": time.Now().Add(time.Hour).Unix()})
	api := &stubAuthAPI{loginFn: func(context.Context, string, string) (*domain.AuthResponse, error) {
		return &domain.AuthResponse{Token: token}, nil
	}}
	svc := newSession(&stubTokenStore{}, api, &recordingNavigator{})

	res := svc.Login(context.Background(), "ops@example.com", "x")
	if !res.Success || res.User.Email != "ops@example.com" || res.User.Role != domain.RoleModerator {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestSession_LoginThenLogout(t *testing.T) {
	store := &stubTokenStore{}
	api := &stubAuthAPI{loginFn: func(context.Context, string, string) (*domain.AuthResponse, error) {
		return &domain.AuthResponse{Token: "T", User: &domain.User{ID: 1, Email: "a@b.com"}}, nil
	}}
	svc := newSession(store, api, &recordingNavigator{})

	_ = svc.Login(context.Background(), "a@b.com", "x")
	svc.Logout(context.Background())

	st := svc.State()
	if st.Authenticated || st.User != nil {
		t.Fatalf("expected anonymous after logout, got %+v", st)
	}
	if store.has {
		t.Fatalf("expected token store to be empty")
	}

	svc.Logout(context.Background())
	if st := svc.State(); st.Authenticated || st.User != nil {
		t.Fatalf("second logout changed state: %+v", st)
	}
	if store.has {
		t.Fatalf("expected token store to stay empty")
	}
}

func TestSession_Init_NoToken(t *testing.T) {
	svc := newSession(&stubTokenStore{}, &stubAuthAPI{}, &recordingNavigator{})

	if st := svc.Init(context.Background()); st.Authenticated {
		t.Fatalf("expected anonymous, got %+v", st)
	}
}

func TestSession_Init_StoreErrorStartsAnonymous(t *testing.T) {
	store := &stubTokenStore{getErr: errors.New("connection refused")}
	svc := newSession(store, &stubAuthAPI{}, &recordingNavigator{})

	if st := svc.Init(context.Background()); st.Authenticated {
		t.Fatalf("expected anonymous, got %+v", st)
	}
}

func TestSession_Init_ValidJWT(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"sub":  "admin@example.com",
		"name": "Admin User",
		"role": "ADMIN",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	store := &stubTokenStore{token: token, has: true}
	svc := newSession(store, &stubAuthAPI{}, &recordingNavigator{})

	st := svc.Init(context.Background())
	if !st.Authenticated {
		t.Fatalf("expected authenticated")
	}
	if st.User.Email != "admin@example.com" || st.User.Name != "Admin User" || st.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", st.User)
	}
}

func TestSession_Init_ExpiredJWTIsCleared(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "a@b.com", "exp": time.Now().Add(-time.Minute).Unix()})
	store := &stubTokenStore{token: token, has: true}
	svc := newSession(store, &stubAuthAPI{}, &recordingNavigator{})

	if st := svc.Init(context.Background()); st.Authenticated {
		t.Fatalf("expected anonymous for expired token")
	}
	if store.has || store.clears != 1 {
		t.Fatalf("expected expired token to be cleared once, clears=%d", store.clears)
	}
}

func TestSession_Init_OpaqueTokenIsTrusted(t *testing.T) {
	store := &stubTokenStore{token: "opaque-token", has: true}
	svc := newSession(store, &stubAuthAPI{}, &recordingNavigator{})

	st := svc.Init(context.Background())
	if !st.Authenticated || st.User == nil {
		t.Fatalf("expected optimistic authenticated state, got %+v", st)
	}
}

func TestSession_Expire(t *testing.T) {
	store := &stubTokenStore{token: "T", has: true}
	nav := &recordingNavigator{}
	svc := newSession(store, &stubAuthAPI{}, nav)
	_ = svc.Init(context.Background())

	svc.Expire(context.Background())

	if svc.Authenticated() {
		t.Fatalf("expected anonymous after expiry")
	}
	if len(nav.paths) != 1 || nav.paths[0] != LoginPath {
		t.Fatalf("expected navigation to %s, got %v", LoginPath, nav.paths)
	}
}

func TestSession_ExpireDuringLoginKeepsLoading(t *testing.T) {
	var loadingAfterExpire bool
	var svc *SessionService
	api := &stubAuthAPI{loginFn: func(ctx context.Context, _, _ string) (*domain.AuthResponse, error) {
		svc.Expire(ctx)
		loadingAfterExpire = svc.State().Loading
		return &domain.AuthResponse{Token: "T", User: &domain.User{Email: "a@b.com"}}, nil
	}}
	nav := &recordingNavigator{}
	svc = newSession(&stubTokenStore{}, api, nav)

	res := svc.Login(context.Background(), "a@b.com", "x")

	if !loadingAfterExpire {
		t.Fatalf("expected loading to stay true while login is in flight")
	}
	if !res.Success || !svc.Authenticated() || svc.State().Loading {
		t.Fatalf("unexpected final state: %+v (result %+v)", svc.State(), res)
	}
	if len(nav.paths) != 1 {
		t.Fatalf("expected one navigation, got %v", nav.paths)
	}
}

func TestSession_SubscribeSeesEveryTransition(t *testing.T) {
	api := &stubAuthAPI{loginFn: func(context.Context, string, string) (*domain.AuthResponse, error) {
		return &domain.AuthResponse{Token: "T", User: &domain.User{Email: "a@b.com"}}, nil
	}}
	svc := newSession(&stubTokenStore{}, api, &recordingNavigator{})

	var seen []domain.Session
	unsubscribe := svc.Subscribe(func(s domain.Session) { seen = append(seen, s) })

	_ = svc.Login(context.Background(), "a@b.com", "x")
	if len(seen) != 2 {
		t.Fatalf("expected 2 transitions (loading, authenticated), got %d", len(seen))
	}
	if !seen[0].Loading || seen[0].Authenticated {
		t.Fatalf("first transition should be loading: %+v", seen[0])
	}
	if seen[1].Loading || !seen[1].Authenticated {
		t.Fatalf("second transition should be authenticated: %+v", seen[1])
	}

	unsubscribe()
	svc.Logout(context.Background())
	if len(seen) != 2 {
		t.Fatalf("listener called after unsubscribe")
	}
}

func TestSession_ClearError(t *testing.T) {
	api := &stubAuthAPI{loginFn: func(context.Context, string, string) (*domain.AuthResponse, error) {
		return nil, &domain.APIError{Message: "nope", Kind: domain.KindServer}
	}}
	svc := newSession(&stubTokenStore{}, api, &recordingNavigator{})

	_ = svc.Login(context.Background(), "a@b.com", "x")
	svc.ClearError()
	if st := svc.State(); st.Error != "" {
		t.Fatalf("expected error cleared, got %q", st.Error)
	}
}
