package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/comfinserv/taxdesk/internal/pkg/jwt"
)

type staticClock struct {
	now time.Time
}

func (c *staticClock) Now() time.Time {
	return c.now
}

type staticUUID struct{}

func (staticUUID) Generate() string {
	return "test-token-id"
}

func newAuthJWT(t *testing.T) *jwt.Symmetric {
	t.Helper()

	s, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer:    "taxdesk-test",
		Audiences: []string{"taxdesk-test"},
		TTL:       time.Hour,
		TempTTL:   15 * time.Minute,
		Clock:     &staticClock{now: time.Now()},
		UUID:      staticUUID{},
	})
	if err != nil {
		t.Fatalf("failed to build jwt: %v", err)
	}

	return s
}

func TestChain(t *testing.T) {
	t.Run("FirstMiddlewareIsOutermost", func(t *testing.T) {
		// Arrange
		var order []string
		tag := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}
		h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			order = append(order, "handler")
		}), tag("outer"), tag("inner"))

		// Act
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		// Assert
		if len(order) != 3 || order[0] != "outer" || order[1] != "inner" || order[2] != "handler" {
			t.Fatalf("unexpected call order: %v", order)
		}
	})

	t.Run("NoMiddlewareReturnsHandler", func(t *testing.T) {
		// Arrange
		called := false
		h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			called = true
		}))

		// Act
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		// Assert
		if !called {
			t.Fatal("expected the handler to be called")
		}
	})
}

func TestMiddlewareAuthentication(t *testing.T) {
	public := map[string]map[string]struct{}{
		http.MethodPost: {
			"/api/forms/tax": {},
		},
	}

	serve := func(t *testing.T, s *jwt.Symmetric, method, path, authorization string) (int, *jwt.Claims) {
		t.Helper()

		var seen *jwt.Claims
		h := middlewareAuthentication(s, public)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = jwt.GetAuth(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(method, path, nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		return rec.Code, seen
	}

	t.Run("BearerTokenOnPublicEndpointSetsClaims", func(t *testing.T) {
		// Arrange
		s := newAuthJWT(t)
		token, err := s.Generate(42, "user")
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		// Act
		code, clm := serve(t, s, http.MethodPost, "/api/forms/tax", "Bearer "+token)

		// Assert
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if clm == nil || clm.UserID != 42 {
			t.Fatalf("expected claims for user 42, got %+v", clm)
		}
	})

	t.Run("PublicEndpointWithoutTokenIsAnonymous", func(t *testing.T) {
		// Arrange
		s := newAuthJWT(t)

		// Act
		code, clm := serve(t, s, http.MethodPost, "/api/forms/tax", "")

		// Assert
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if clm != nil {
			t.Fatalf("expected no claims, got %+v", clm)
		}
	})

	t.Run("BadTokenOnPublicEndpointIsAnonymous", func(t *testing.T) {
		// Arrange
		s := newAuthJWT(t)

		// Act
		code, clm := serve(t, s, http.MethodPost, "/api/forms/tax", "Bearer not-a-token")

		// Assert
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if clm != nil {
			t.Fatalf("expected no claims, got %+v", clm)
		}
	})

	t.Run("ProtectedEndpointRequiresToken", func(t *testing.T) {
		// Arrange
		s := newAuthJWT(t)

		// Act
		code, _ := serve(t, s, http.MethodGet, "/api/forms/mine", "")

		// Assert
		if code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", code)
		}
	})

	t.Run("ProtectedEndpointRejectsBadToken", func(t *testing.T) {
		// Arrange
		s := newAuthJWT(t)

		// Act
		code, _ := serve(t, s, http.MethodGet, "/api/forms/mine", "Bearer not-a-token")

		// Assert
		if code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", code)
		}
	})

	t.Run("ProtectedEndpointSetsClaims", func(t *testing.T) {
		// Arrange
		s := newAuthJWT(t)
		token, err := s.Generate(7, "admin")
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		// Act
		code, clm := serve(t, s, http.MethodGet, "/api/admin/forms", "Bearer "+token)

		// Assert
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if clm == nil || clm.UserID != 7 || clm.Role != "admin" {
			t.Fatalf("expected claims for admin 7, got %+v", clm)
		}
	})
}
