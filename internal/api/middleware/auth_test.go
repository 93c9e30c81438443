package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

type stubAuthenticator struct {
	users map[string]*domain.User
	seen  string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*domain.User, error) {
	s.seen = token
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, domain.E(domain.KindUnauthenticated, "not authorized to access this route")
}

func newAuthenticator() *stubAuthenticator {
	return &stubAuthenticator{users: map[string]*domain.User{
		"good": {ID: "u1", Role: domain.RolePublisher},
	}}
}

func runProtect(t *testing.T, auth Authenticator, prepare func(*http.Request)) (echo.Context, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	prepare(req)
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := Protect(auth)(func(echo.Context) error {
		called = true
		return nil
	})(c)
	return c, called, err
}

func TestProtect_BearerHeader(t *testing.T) {
	auth := newAuthenticator()
	c, called, err := runProtect(t, auth, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer good")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	u, ok := CurrentUser(c)
	if !ok || u.ID != "u1" {
		t.Fatalf("expected user u1 in context, got %+v", u)
	}
}

func TestProtect_Cookie(t *testing.T) {
	auth := newAuthenticator()
	_, called, err := runProtect(t, auth, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "good"})
	})
	if err != nil || !called {
		t.Fatalf("expected cookie auth to pass, err=%v", err)
	}
	if auth.seen != "good" {
		t.Fatalf("authenticator saw %q", auth.seen)
	}
}

func TestProtect_NonBearerHeaderFallsBackToCookie(t *testing.T) {
	for _, header := range []string{"Basic dXNlcjpwdw==", "Bearer "} {
		auth := newAuthenticator()
		c, called, err := runProtect(t, auth, func(r *http.Request) {
			r.Header.Set(echo.HeaderAuthorization, header)
			r.AddCookie(&http.Cookie{Name: CookieName, Value: "good"})
		})
		if err != nil || !called {
			t.Fatalf("%q: expected cookie auth to pass, err=%v", header, err)
		}
		if u, ok := CurrentUser(c); !ok || u.ID != "u1" || auth.seen != "good" {
			t.Fatalf("%q: unexpected user %+v (saw %q)", header, u, auth.seen)
		}
	}
}

func TestProtect_Rejects(t *testing.T) {
	cases := map[string]func(*http.Request){
		"missing":     func(*http.Request) {},
		"wrong type":  func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Basic good") },
		"bad token":   func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer forged") },
		"empty token": func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer ") },
	}
	for name, prepare := range cases {
		t.Run(name, func(t *testing.T) {
			c, called, err := runProtect(t, newAuthenticator(), prepare)
			if called {
				t.Fatalf("next handler must not run")
			}
			if !errors.Is(err, domain.ErrUnauthenticated) {
				t.Fatalf("expected unauthenticated, got %v", err)
			}
			if _, ok := CurrentUser(c); ok {
				t.Fatalf("no user may be stored on rejection")
			}
		})
	}
}
